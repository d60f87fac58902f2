package pipeline

import (
	"context"
	"fmt"
	"strings"
)

const refineInstruction = "You are an expert transcriber. " +
	"You will be given a raw automated transcription that may contain spelling errors, " +
	"phonetic misinterpretations, or context errors.\n" +
	"Correct the spelling and grammar while strictly preserving the original meaning.\n" +
	"Output ONLY the corrected text. Do not add any explanations or preambles.\n"

// refineTranscript runs the raw transcript through the refine provider
// chain. Refinement is best-effort: if every provider fails the transcript
// passes through unchanged rather than failing the job.
func (o *Orchestrator) refineTranscript(ctx context.Context, st State) Update {
	if st.Error != "" {
		return Update{}
	}
	if st.TranscriptText == "" {
		o.logger.Warn(ctx, "[%s] no transcript text to refine", st.MeetingID)
		return Update{}
	}

	prompt := fmt.Sprintf("%s\nRaw Transcript:\n%s", refineInstruction, st.TranscriptText)

	refined, err := o.refineChain.Generate(ctx, prompt)
	if err != nil {
		o.logger.Error(ctx, "[%s] transcript refinement failed, keeping raw text: %v", st.MeetingID, err)
		return Update{}
	}

	return Update{TranscriptText: strings.TrimSpace(refined)}
}
