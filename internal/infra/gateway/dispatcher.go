// Package gateway delivers goods and notices through the chat gateway's HTTP API.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"paylink-vending/internal/pkg/errs"
	"paylink-vending/internal/usecase/shared"
)

type Dispatcher struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

func NewDispatcher(baseURL, token string, timeout time.Duration) *Dispatcher {
	return NewDispatcherWithHTTP(baseURL, token, &http.Client{Timeout: timeout})
}

func NewDispatcherWithHTTP(baseURL, token string, hc *http.Client) *Dispatcher {
	return &Dispatcher{
		baseURL:    strings.TrimRight(baseURL, "/"),
		token:      token,
		httpClient: hc,
	}
}

type credentialBody struct {
	Login  string `json:"login"`
	Secret string `json:"secret"`
	Note   string `json:"note,omitempty"`
}

type deliveryBody struct {
	TenantID    string           `json:"tenant_id"`
	BuyerID     string           `json:"buyer_id"`
	ProductID   string           `json:"product_id"`
	ProductName string           `json:"product_name"`
	Quantity    int              `json:"quantity"`
	URL         string           `json:"url,omitempty"`
	Credentials []credentialBody `json:"credentials,omitempty"`
}

type roleBody struct {
	TenantID string `json:"tenant_id"`
	BuyerID  string `json:"buyer_id"`
	RoleID   string `json:"role_id"`
}

type purchaseLogBody struct {
	TenantID    string `json:"tenant_id"`
	BuyerID     string `json:"buyer_id"`
	ProductName string `json:"product_name"`
	Quantity    int    `json:"quantity"`
	Total       int64  `json:"total"`
	SenderName  string `json:"sender_name"`
	SenderID    string `json:"sender_id"`
	SenderIcon  string `json:"sender_icon,omitempty"`
	Link        string `json:"link"`
}

func (d *Dispatcher) DeliverGoods(ctx context.Context, dv shared.Delivery) error {
	body := deliveryBody{
		TenantID:    dv.TenantID,
		BuyerID:     dv.BuyerID,
		ProductID:   dv.ProductID,
		ProductName: dv.ProductName,
		Quantity:    dv.Quantity,
		URL:         dv.URL,
	}
	for _, c := range dv.Credentials {
		body.Credentials = append(body.Credentials, credentialBody{Login: c.Login, Secret: c.Secret, Note: c.Note})
	}
	if err := d.post(ctx, "/deliveries", body); err != nil {
		return errs.Mark(errs.Wrap(err, "deliver goods"), errs.ErrDispatchFailed)
	}
	return nil
}

func (d *Dispatcher) GrantRole(ctx context.Context, tenantID, buyerID, roleID string) error {
	return errs.Wrap(d.post(ctx, "/roles", roleBody{TenantID: tenantID, BuyerID: buyerID, RoleID: roleID}), "grant role")
}

func (d *Dispatcher) PostPurchaseLog(ctx context.Context, l shared.PurchaseLog) error {
	body := purchaseLogBody{
		TenantID:    l.TenantID,
		BuyerID:     l.BuyerID,
		ProductName: l.ProductName,
		Quantity:    l.Quantity,
		Total:       l.Total,
		SenderName:  l.SenderName,
		SenderID:    l.SenderID,
		SenderIcon:  l.SenderIcon,
		Link:        l.Link,
	}
	return errs.Wrap(d.post(ctx, "/purchase-logs", body), "post purchase log")
}

func (d *Dispatcher) post(ctx context.Context, path string, in any) error {
	b, err := json.Marshal(in)
	if err != nil {
		return errs.Wrap(err, "encode request")
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.baseURL+path, bytes.NewReader(b))
	if err != nil {
		return errs.Wrap(err, "build request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+d.token)

	resp, err := d.httpClient.Do(req)
	if err != nil {
		return errs.Wrapf(err, "POST %s", path)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 1<<16))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return errs.Newf("POST %s: gateway returned %d", path, resp.StatusCode)
	}
	return nil
}
