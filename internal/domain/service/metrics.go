package service

import (
	"time"

	"agora/internal/domain/entity"
)

// Reconcile outcomes reported to SessionMetrics.
const (
	ReconcileFetched = "fetched"
	ReconcileCreated = "created"
	ReconcileFailed  = "failed"
	ReconcileStale   = "stale"
)

// SessionMetrics records reconciler activity.
type SessionMetrics interface {
	AuthEvent(kind entity.AuthEventKind)
	ReconcileOutcome(outcome string, took time.Duration)
	ProfileUpdate(outcome string)
	BootstrapFailed()
	MailboxDepth(depth int)
}
