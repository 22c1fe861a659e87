package response

import (
	"paylink-vending/internal/domain/purchase"
	"paylink-vending/internal/usecase/commands"

	"github.com/google/uuid"
)

type PurchaseResponse struct {
	Outcome             string           `json:"outcome"`
	State               string           `json:"state"`
	Progress            []ProgressStep   `json:"progress"`
	Payload             purchase.Payload `json:"payload"`
	RecordID            string           `json:"record_id,omitempty"`
	NeedsReconciliation bool             `json:"needs_reconciliation"`
}

type ProgressStep struct {
	State   string `json:"state"`
	Message string `json:"message"`
}

func FromPurchaseResult(r *commands.PurchaseResult, progress []ProgressStep) *PurchaseResponse {
	res := &PurchaseResponse{
		Outcome:             r.Outcome.String(),
		State:               r.State.String(),
		Progress:            progress,
		Payload:             r.Payload,
		NeedsReconciliation: r.NeedsReconciliation,
	}
	if res.Progress == nil {
		res.Progress = []ProgressStep{}
	}
	if r.RecordID != uuid.Nil {
		res.RecordID = r.RecordID.String()
	}
	return res
}
