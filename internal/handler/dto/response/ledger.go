package response

import (
	"paylink-vending/internal/usecase/queries"
)

type LinkStatusResponse struct {
	LinkID     string `json:"link_id"`
	Consumed   bool   `json:"consumed"`
	Status     string `json:"status"`
	LeaseUntil *int64 `json:"lease_until,omitempty"`
	UpdatedAt  *int64 `json:"updated_at,omitempty"`
}

func FromLinkStatusView(v *queries.LinkStatusView) *LinkStatusResponse {
	res := &LinkStatusResponse{
		LinkID:   v.LinkID,
		Consumed: v.Consumed,
		Status:   v.Status,
	}
	if v.LeaseUntil != nil {
		u := v.LeaseUntil.Unix()
		res.LeaseUntil = &u
	}
	if v.UpdatedAt != nil {
		u := v.UpdatedAt.Unix()
		res.UpdatedAt = &u
	}
	return res
}

type PurchaseRecordResponse struct {
	ID         string `json:"id"`
	ProductID  string `json:"product_id"`
	BuyerID    string `json:"buyer_id"`
	SenderName string `json:"sender_name"`
	SenderID   string `json:"sender_id"`
	LinkID     string `json:"link_id"`
	Quantity   int    `json:"quantity"`
	Total      int64  `json:"total"`
	Amount     int64  `json:"amount"`
	Status     string `json:"status"`
	Outcome    string `json:"outcome"`
	Detail     string `json:"detail,omitempty"`
	CreatedAt  int64  `json:"created_at"`
}

type PurchaseRecordPageResponse struct {
	Records    []*PurchaseRecordResponse `json:"records"`
	NextCursor string                    `json:"next_cursor,omitempty"`
}

func FromPurchaseRecordPage(page *queries.PurchaseRecordPage) PurchaseRecordPageResponse {
	return PurchaseRecordPageResponse{
		Records:    FromPurchaseRecords(page.Records),
		NextCursor: page.NextCursor,
	}
}

func FromPurchaseRecords(items []*queries.PurchaseRecordView) []*PurchaseRecordResponse {
	res := make([]*PurchaseRecordResponse, len(items))
	for i, it := range items {
		res[i] = &PurchaseRecordResponse{
			ID:         it.ID.String(),
			ProductID:  it.ProductID,
			BuyerID:    it.BuyerID,
			SenderName: it.SenderName,
			SenderID:   it.SenderID,
			LinkID:     it.LinkID,
			Quantity:   it.Quantity,
			Total:      it.Total,
			Amount:     it.Amount,
			Status:     it.Status,
			Outcome:    it.Outcome,
			Detail:     it.Detail,
			CreatedAt:  it.CreatedAt.Unix(),
		}
	}
	return res
}
