package pipeline

import "meetingflow/internal/events"

// StageName identifies one step of the pipeline.
type StageName string

const (
	StageExtractAudio  StageName = "extract_audio"
	StageCleanAudio    StageName = "clean_audio"
	StageTranscribe    StageName = "transcribe"
	StageRefine        StageName = "refine_transcript"
	StageSummarize     StageName = "summarize"
	StageExtractEvents StageName = "extract_events"
	StageDistribute    StageName = "distribute"
	StageEnd           StageName = "end"
)

// transitions is the linear part of the stage graph. The single conditional
// edge (out of summarize) lives in next so it can be tested as a pure
// function of state.
var transitions = map[StageName]StageName{
	StageExtractAudio:  StageCleanAudio,
	StageCleanAudio:    StageTranscribe,
	StageTranscribe:    StageRefine,
	StageRefine:        StageSummarize,
	StageExtractEvents: StageDistribute,
	StageDistribute:    StageEnd,
}

// next returns the stage that follows current. Event extraction only runs
// when the job is error-free and the transcript passes the keyword gate;
// everything else flows straight to distribution.
func next(current StageName, st State) StageName {
	if current == StageSummarize {
		if st.Error != "" || !events.ShouldExtract(st.TranscriptText) {
			return StageDistribute
		}
		return StageExtractEvents
	}
	return transitions[current]
}
