// Package audit talks to the external ledger-audit collaborator. Every
// posted entry and team change gets an audit record whose reference is
// stored verbatim alongside the row.
package audit

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/smallbooks/smallbooks_backend/internal/core/domain"
	"github.com/smallbooks/smallbooks_backend/internal/core/ports"
)

// HTTPAuditService calls the audit collaborator's createAction endpoint.
type HTTPAuditService struct {
	baseURL string
	client  *http.Client
}

// NewHTTPAuditService creates an audit client for the given base URL.
func NewHTTPAuditService(baseURL string) *HTTPAuditService {
	return &HTTPAuditService{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

var _ ports.AuditService = (*HTTPAuditService)(nil)

type createActionRequest struct {
	Description string          `json:"description"`
	Payload     json.RawMessage `json:"payload,omitempty"`
}

type createActionResponse struct {
	Txid         string `json:"txid"`
	RawTx        string `json:"rawTx"`
	OutputScript string `json:"outputScript"`
	Metadata     string `json:"metadata"`
}

// CreateAction records one action and returns the collaborator's opaque
// reference. The reference is stored as-is; this service never interprets it.
func (s *HTTPAuditService) CreateAction(ctx context.Context, description string, payload []byte) (domain.AuditRef, error) {
	body, err := json.Marshal(createActionRequest{Description: description, Payload: payload})
	if err != nil {
		return domain.AuditRef{}, fmt.Errorf("failed to marshal audit request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/createAction", bytes.NewReader(body))
	if err != nil {
		return domain.AuditRef{}, fmt.Errorf("failed to build audit request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return domain.AuditRef{}, fmt.Errorf("audit service unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return domain.AuditRef{}, fmt.Errorf("audit service returned status %d", resp.StatusCode)
	}

	var out createActionResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return domain.AuditRef{}, fmt.Errorf("failed to decode audit response: %w", err)
	}

	return domain.AuditRef{
		Txid:         out.Txid,
		RawTx:        out.RawTx,
		OutputScript: out.OutputScript,
		Metadata:     out.Metadata,
	}, nil
}
