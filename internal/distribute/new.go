package distribute

import (
	"time"

	"meetingflow/internal/integrations"
	"meetingflow/internal/logger"
)

type implDistributor struct {
	// deliverers are attempted in slice order for each participant, so the
	// per-run action order is deterministic.
	deliverers    []integrations.Deliverer
	maxConcurrent int
	timeout       time.Duration
	logger        logger.Logger
}

// New creates a Distributor over the given deliverers. Participants are
// processed concurrently, bounded by maxConcurrent, with a per-delivery
// timeout.
func New(deliverers []integrations.Deliverer, maxConcurrent int, timeout time.Duration, log logger.Logger) Distributor {
	if maxConcurrent <= 0 {
		maxConcurrent = 4
	}
	return &implDistributor{
		deliverers:    deliverers,
		maxConcurrent: maxConcurrent,
		timeout:       timeout,
		logger:        log,
	}
}
