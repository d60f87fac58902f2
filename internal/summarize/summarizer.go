package summarize

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"
)

const (
	defaultInstruction = "Summarize the following meeting transcript. " +
		"Focus on key decisions, action items, and important discussions. " +
		"Keep it concise and structured."

	combineInstruction = "Combine these section summaries into a cohesive meeting summary."
)

// Summarize produces a summary of the text. Inputs longer than the chunk
// limit are split, summarized chunk by chunk, then the chunk summaries are
// merged with one final combine pass.
func (s *implSummarizer) Summarize(ctx context.Context, text string) (string, error) {
	if len(text) <= s.maxChunkSize {
		return s.summarizeChunk(ctx, text, defaultInstruction)
	}

	chunks := SplitText(text, s.maxChunkSize)
	s.logger.Info(ctx, "Summarizing %d chunks (%d chars total)", len(chunks), len(text))

	chunkSummaries := make([]string, 0, len(chunks))
	for i, chunk := range chunks {
		summary, err := s.summarizeChunk(ctx, chunk, defaultInstruction)
		if err != nil {
			return "", fmt.Errorf("summarize chunk %d/%d: %w", i+1, len(chunks), err)
		}
		chunkSummaries = append(chunkSummaries, summary)
	}

	combined := strings.Join(chunkSummaries, "\n")
	return s.summarizeChunk(ctx, combined, combineInstruction)
}

func (s *implSummarizer) summarizeChunk(ctx context.Context, text, instruction string) (string, error) {
	prompt := fmt.Sprintf("%s\n\nTranscript:\n%s", instruction, text)
	out, err := s.chain.Generate(ctx, prompt)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

// SplitText splits text into chunks of at most chunkSize characters,
// preferring to break at a paragraph boundary and then at a space so a cut
// never lands mid-word when any whitespace exists in the window.
func SplitText(text string, chunkSize int) []string {
	if chunkSize <= 0 || len(text) <= chunkSize {
		return []string{text}
	}

	var chunks []string
	rest := text
	for len(rest) > chunkSize {
		window := rest[:chunkSize]

		cut := strings.LastIndex(window, "\n")
		if cut <= 0 {
			cut = strings.LastIndex(window, " ")
		}
		if cut <= 0 {
			// No break point in the window; cut at the limit, backing up
			// so the slice never lands inside a multi-byte rune.
			cut = chunkSize
			for cut > 0 && !utf8.RuneStart(rest[cut]) {
				cut--
			}
			if cut == 0 {
				cut = chunkSize
			}
		}

		chunks = append(chunks, rest[:cut])
		rest = strings.TrimLeft(rest[cut:], " \n")
	}
	if rest != "" {
		chunks = append(chunks, rest)
	}
	return chunks
}
