package pipeline

import (
	"context"
	"fmt"
)

// transcribeAudio turns the cleaned audio into timed segments and the
// joined transcript text. The clean track is preferred; the raw extraction
// is the fallback when cleaning failed to produce one.
func (o *Orchestrator) transcribeAudio(ctx context.Context, st State) Update {
	if st.Error != "" {
		return Update{}
	}

	audioPath := st.CleanAudioPath
	if audioPath == "" {
		audioPath = st.AudioPath
	}

	segments, err := o.transcriber.Run(ctx, audioPath)
	if err != nil {
		return Update{Error: fmt.Sprintf("Transcription Failed: %v", err)}
	}

	return Update{
		Segments:       segments,
		TranscriptText: JoinSegments(segments),
	}
}
