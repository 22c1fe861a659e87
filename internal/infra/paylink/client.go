// Package paylink talks to the payment provider's P2P link API.
package paylink

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"paylink-vending/internal/domain/purchase"
	"paylink-vending/internal/domain/session"
	"paylink-vending/internal/pkg/errs"
	"paylink-vending/internal/usecase/shared"
)

const maxBodyBytes = 1 << 20

type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return NewClientWithHTTP(baseURL, &http.Client{Timeout: timeout})
}

func NewClientWithHTTP(baseURL string, hc *http.Client) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: hc,
	}
}

type linkResponse struct {
	Header struct {
		ResultCode    string `json:"resultCode"`
		ResultMessage string `json:"resultMessage"`
	} `json:"header"`
	Payload struct {
		Sender struct {
			DisplayName string `json:"displayName"`
			ExternalID  string `json:"externalId"`
			PhotoURL    string `json:"photoUrl"`
		} `json:"sender"`
		PendingP2PInfo struct {
			Amount int64 `json:"amount"`
		} `json:"pendingP2PInfo"`
		Message struct {
			Data struct {
				Status string `json:"status"`
			} `json:"data"`
		} `json:"message"`
	} `json:"payload"`
}

type receiveRequest struct {
	Passcode string `json:"passcode,omitempty"`
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

type tokenResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// Verify checks the access token. Only a 401/403 is ErrProviderUnauthorized; transport
// failures and other statuses are ErrProviderUnavailable and must not spend the refresh token.
func (c *Client) Verify(ctx context.Context, s shared.ProviderSession) error {
	status, _, err := c.do(ctx, http.MethodGet, "/me", s.AccessToken, nil)
	if err != nil {
		return errs.Mark(errs.Wrap(err, "verify session"), errs.ErrProviderUnavailable)
	}
	switch status {
	case http.StatusOK:
		return nil
	case http.StatusUnauthorized, http.StatusForbidden:
		return errs.Mark(errs.Newf("verify session: provider returned %d", status), errs.ErrProviderUnauthorized)
	default:
		return errs.Mark(errs.Newf("verify session: provider returned %d", status), errs.ErrProviderUnavailable)
	}
}

func (c *Client) Refresh(ctx context.Context, refreshToken string) (session.TokenPair, error) {
	status, body, err := c.do(ctx, http.MethodPost, "/oauth/refresh", "", refreshRequest{RefreshToken: refreshToken})
	if err != nil {
		return session.TokenPair{}, errs.Mark(errs.Wrap(err, "refresh session"), errs.ErrSessionExpired)
	}
	if status != http.StatusOK {
		return session.TokenPair{}, errs.Mark(errs.Newf("refresh session: provider returned %d", status), errs.ErrSessionExpired)
	}
	var tr tokenResponse
	if err := json.Unmarshal(body, &tr); err != nil {
		return session.TokenPair{}, errs.Mark(errs.Wrap(err, "decode refresh response"), errs.ErrSessionExpired)
	}
	pair, err := session.NewTokenPair(tr.AccessToken, tr.RefreshToken)
	if err != nil {
		return session.TokenPair{}, errs.Mark(errs.Wrap(err, "refresh response"), errs.ErrSessionExpired)
	}
	return pair, nil
}

func (c *Client) CheckLink(ctx context.Context, s shared.ProviderSession, link string) (shared.LinkInfo, error) {
	id := purchase.LinkID(link)
	if id == "" {
		return shared.LinkInfo{}, errs.Mark(errs.New("check link: empty link id"), errs.ErrLinkCheckFailed)
	}

	status, body, err := c.do(ctx, http.MethodGet, "/links/"+url.PathEscape(id), s.AccessToken, nil)
	if err != nil {
		return shared.LinkInfo{}, errs.Mark(errs.Wrap(err, "check link"), errs.ErrLinkCheckFailed)
	}
	switch {
	case status == http.StatusUnauthorized:
		return shared.LinkInfo{}, errs.Mark(errs.New("check link: access token rejected"), errs.ErrSessionExpired)
	case status != http.StatusOK:
		return shared.LinkInfo{}, errs.Mark(errs.Newf("check link: provider returned %d", status), errs.ErrLinkCheckFailed)
	}

	var lr linkResponse
	if err := json.Unmarshal(body, &lr); err != nil {
		return shared.LinkInfo{}, errs.Mark(errs.Wrap(err, "decode link response"), errs.ErrLinkCheckFailed)
	}
	info := shared.LinkInfo{
		SenderName: lr.Payload.Sender.DisplayName,
		SenderID:   lr.Payload.Sender.ExternalID,
		IconURL:    lr.Payload.Sender.PhotoURL,
		Amount:     lr.Payload.PendingP2PInfo.Amount,
		Status:     lr.Payload.Message.Data.Status,
	}
	if info.Status == "" {
		info.Status = "UNKNOWN"
	}
	if info.Amount <= 0 {
		return shared.LinkInfo{}, errs.Mark(errs.Newf("check link: amount %d is not positive", info.Amount), errs.ErrLinkCheckFailed)
	}
	return info, nil
}

func (c *Client) Claim(ctx context.Context, s shared.ProviderSession, link, password string) error {
	id := purchase.LinkID(link)
	if id == "" {
		return errs.Mark(errs.New("claim: empty link id"), errs.ErrClaimFailed)
	}

	status, body, err := c.do(ctx, http.MethodPost, "/links/"+url.PathEscape(id)+"/receive", s.AccessToken, receiveRequest{Passcode: password})
	if err != nil {
		return errs.Mark(errs.Wrap(err, "claim"), errs.ErrClaimFailed)
	}
	switch status {
	case http.StatusOK, http.StatusCreated, http.StatusNoContent:
		return nil
	case http.StatusUnauthorized:
		return errs.Mark(errs.New("claim: access token rejected"), errs.ErrSessionExpired)
	case http.StatusConflict, http.StatusGone:
		return errs.Mark(errs.Newf("claim: link already received (%d)", status), errs.ErrLinkAlreadyUsed)
	default:
		return errs.Mark(errs.Newf("claim: provider returned %d: %s", status, snippet(body)), errs.ErrClaimFailed)
	}
}

func (c *Client) do(ctx context.Context, method, path, accessToken string, in any) (int, []byte, error) {
	var reqBody io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return 0, nil, errs.Wrap(err, "encode request")
		}
		reqBody = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return 0, nil, errs.Wrap(err, "build request")
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+accessToken)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, nil, errs.Wrap(err, fmt.Sprintf("%s %s", method, path))
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return resp.StatusCode, nil, errs.Wrap(err, "read response body")
	}
	return resp.StatusCode, body, nil
}

func snippet(b []byte) string {
	const n = 200
	if len(b) > n {
		return string(b[:n]) + "..."
	}
	return string(b)
}
