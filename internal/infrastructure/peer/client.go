// Package peer implements the outbound half of the cross-system sync
// protocol: signed webhook deliveries to the counterpart deployment.
package peer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/loopdesk/loopdesk/internal/domain/sync"
	"github.com/loopdesk/loopdesk/internal/shared/config"
)

const (
	syncKeyHeader = "X-Sync-Key"

	defaultDispatchTimeout = 5 * time.Second
)

// Client posts webhook events to the peer deployment. Every request carries
// the shared sync key header; the peer rejects anything without it.
type Client interface {
	Post(ctx context.Context, kind sync.EventKind, payload interface{}) error
}

type httpClient struct {
	baseURL    string
	peerPrefix string
	syncKey    string
	client     *http.Client
}

// NewClient builds a peer client from the sync configuration. peerPrefix is
// the webhook route prefix on the receiving side, e.g. "/webhooks/peer".
func NewClient(cfg *config.SyncConfig, peerPrefix string) Client {
	timeout := defaultDispatchTimeout
	if cfg.DispatchTimeoutSeconds > 0 {
		timeout = time.Duration(cfg.DispatchTimeoutSeconds) * time.Second
	}

	return &httpClient{
		baseURL:    strings.TrimRight(cfg.PeerBaseURL, "/"),
		peerPrefix: peerPrefix,
		syncKey:    cfg.SyncKey,
		client:     &http.Client{Timeout: timeout},
	}
}

func (c *httpClient) Post(ctx context.Context, kind sync.EventKind, payload interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal %s payload: %w", kind, err)
	}

	url := c.baseURL + kind.Path(c.peerPrefix)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build %s request: %w", kind, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(syncKeyHeader, c.syncKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to deliver %s: %w", kind, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("peer rejected %s with status %d: %s", kind, resp.StatusCode, string(snippet))
	}

	// Drain so the connection can be reused.
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}
