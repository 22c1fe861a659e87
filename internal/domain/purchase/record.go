package purchase

import (
	"time"

	"github.com/google/uuid"
)

type RecordStatus string

const (
	RecordCompleted           RecordStatus = "completed"
	RecordNeedsReconciliation RecordStatus = "needs_reconciliation"
)

func (s RecordStatus) IsValid() bool {
	switch s {
	case RecordCompleted, RecordNeedsReconciliation:
		return true
	default:
		return false
	}
}

// Record is the audit entry of a purchase whose funds were claimed.
type Record struct {
	ID         uuid.UUID
	TenantID   string
	ProductID  string
	BuyerID    string
	SenderName string
	SenderID   string
	LinkID     string
	Link       string
	Quantity   int
	Total      int64
	Amount     int64
	Status     RecordStatus
	Outcome    Outcome
	Detail     string
	CreatedAt  time.Time
}
