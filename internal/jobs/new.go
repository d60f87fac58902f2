package jobs

import (
	"context"
	"sync"

	"meetingflow/internal/export"
	"meetingflow/internal/logger"
	"meetingflow/internal/pipeline"
	"meetingflow/internal/store"
)

type implRunner struct {
	orchestrator *pipeline.Orchestrator
	store        *store.Store
	export       export.Writer
	logger       logger.Logger

	// baseCtx outlives the submitting request so background jobs are not
	// cancelled when an HTTP handler returns.
	baseCtx context.Context
	wg      sync.WaitGroup
}

// New creates a Runner. baseCtx should span the process lifetime.
func New(baseCtx context.Context, orch *pipeline.Orchestrator, st *store.Store, exp export.Writer, log logger.Logger) Runner {
	return &implRunner{
		orchestrator: orch,
		store:        st,
		export:       exp,
		logger:       log,
		baseCtx:      baseCtx,
	}
}
