package pipeline

import (
	"context"
	"fmt"
)

// extractAudio pulls the audio track out of the input recording. It is the
// entry stage, so there is no prior error to check.
func (o *Orchestrator) extractAudio(ctx context.Context, st State) Update {
	audioPath, err := o.extractor.Run(ctx, st.InputPath)
	if err != nil {
		return Update{Error: fmt.Sprintf("Audio Extraction Failed: %v", err)}
	}
	return Update{AudioPath: audioPath}
}

// cleanAudio filters the extracted track before transcription.
func (o *Orchestrator) cleanAudio(ctx context.Context, st State) Update {
	if st.Error != "" {
		return Update{}
	}

	cleanPath, err := o.cleaner.Run(ctx, st.AudioPath)
	if err != nil {
		return Update{Error: fmt.Sprintf("Audio Cleaning Failed: %v", err)}
	}
	return Update{CleanAudioPath: cleanPath}
}
