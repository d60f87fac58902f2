package pipeline

import (
	"context"

	"meetingflow/internal/distribute"
	"meetingflow/internal/events"
	"meetingflow/internal/llm"
	"meetingflow/internal/logger"
	"meetingflow/internal/media"
	"meetingflow/internal/summarize"
	"meetingflow/internal/transcribe"
)

// Orchestrator runs one job through the fixed stage graph. Each stage
// executes exactly once; failures are recorded in state and flow forward,
// and distribution always runs last, even after a failure.
type Orchestrator struct {
	extractor   media.Transformer
	cleaner     media.Transformer
	transcriber transcribe.Transcriber
	refineChain *llm.Chain
	summarizer  summarize.Summarizer
	events      *events.Extractor
	distributor distribute.Distributor
	logger      logger.Logger
}

// New wires the orchestrator from its capabilities. All provider selection
// already happened in the registry; nothing here reads ambient state.
func New(
	extractor media.Transformer,
	cleaner media.Transformer,
	transcriber transcribe.Transcriber,
	refineChain *llm.Chain,
	summarizer summarize.Summarizer,
	eventExtractor *events.Extractor,
	distributor distribute.Distributor,
	log logger.Logger,
) *Orchestrator {
	return &Orchestrator{
		extractor:   extractor,
		cleaner:     cleaner,
		transcriber: transcriber,
		refineChain: refineChain,
		summarizer:  summarizer,
		events:      eventExtractor,
		distributor: distributor,
		logger:      log,
	}
}

// Run executes the stage graph to completion and returns the terminal state.
func (o *Orchestrator) Run(ctx context.Context, st State) State {
	current := StageExtractAudio
	for current != StageEnd {
		o.logger.Info(ctx, "[%s] stage %s", st.MeetingID, current)
		st = merge(st, o.runStage(ctx, current, st))
		current = next(current, st)
	}
	return st
}

func (o *Orchestrator) runStage(ctx context.Context, stage StageName, st State) Update {
	switch stage {
	case StageExtractAudio:
		return o.extractAudio(ctx, st)
	case StageCleanAudio:
		return o.cleanAudio(ctx, st)
	case StageTranscribe:
		return o.transcribeAudio(ctx, st)
	case StageRefine:
		return o.refineTranscript(ctx, st)
	case StageSummarize:
		return o.summarizeTranscript(ctx, st)
	case StageExtractEvents:
		return o.extractEvents(ctx, st)
	case StageDistribute:
		return o.distribute(ctx, st)
	}
	return Update{}
}
