// Package azure calls the Azure Document Intelligence prebuilt-receipt
// model over REST and adapts its field shapes into the receipt package's
// provider-agnostic document.
package azure

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Tieahapani/Scanpal-Intelligent-Receipt-Organizer/internal/common"
)

const modelID = "prebuilt-receipt"

// Config holds the provider endpoint and polling behavior.
type Config struct {
	Endpoint     string
	APIKey       string
	APIVersion   string        // default 2023-07-31
	PollInterval time.Duration // default 1s
	Timeout      time.Duration // overall analyze deadline, default 60s
}

type Client struct {
	cfg Config
	hc  *http.Client
	log *slog.Logger
}

func NewClient(cfg Config, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.APIVersion == "" {
		cfg.APIVersion = "2023-07-31"
	}
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = time.Second
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 60 * time.Second
	}
	return &Client{
		cfg: cfg,
		hc:  &http.Client{Timeout: cfg.Timeout},
		log: logger,
	}
}

// AnalyzeReceipt submits the image and polls the analyze operation until it
// completes. Returns common.ErrNoDocument when the service finds no receipt
// in the image; every other failure is an upstream provider error.
func (c *Client) AnalyzeReceipt(ctx context.Context, image []byte, contentType string) (*AnalyzeResult, error) {
	reqID := uuid.New().String()
	start := time.Now()

	ctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	opURL, err := c.submit(ctx, reqID, image, contentType)
	if err != nil {
		return nil, err
	}

	result, err := c.poll(ctx, reqID, opURL)
	if err != nil {
		return nil, err
	}

	c.log.Info("ocr.analyze.done",
		"req_id", reqID,
		"documents", len(result.Documents),
		"pages", len(result.Pages),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)

	if len(result.Documents) == 0 {
		return nil, common.ErrNoDocument
	}
	return result, nil
}

func (c *Client) submit(ctx context.Context, reqID string, image []byte, contentType string) (string, error) {
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	url := fmt.Sprintf("%s/formrecognizer/documentModels/%s:analyze?api-version=%s",
		strings.TrimRight(c.cfg.Endpoint, "/"), modelID, c.cfg.APIVersion)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(image))
	if err != nil {
		return "", fmt.Errorf("build analyze request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Ocp-Apim-Subscription-Key", c.cfg.APIKey)

	c.log.Info("ocr.analyze.submit", "req_id", reqID, "bytes", len(image), "content_type", contentType)

	resp, err := c.hc.Do(req)
	if err != nil {
		return "", fmt.Errorf("submit analyze: %w", err)
	}
	defer closeBody(resp.Body, c.log, reqID)

	if resp.StatusCode != http.StatusAccepted {
		raw, _ := io.ReadAll(resp.Body)
		c.log.Error("ocr.analyze.submit_rejected", "req_id", reqID, "status", resp.StatusCode, "body", string(raw))
		return "", fmt.Errorf("analyze submit: non-202 status %d: %w", resp.StatusCode, common.ErrUpstream)
	}

	opURL := resp.Header.Get("Operation-Location")
	if opURL == "" {
		return "", fmt.Errorf("analyze submit: missing Operation-Location header: %w", common.ErrUpstream)
	}
	return opURL, nil
}

func (c *Client) poll(ctx context.Context, reqID, opURL string) (*AnalyzeResult, error) {
	for {
		op, err := c.fetchOperation(ctx, reqID, opURL)
		if err != nil {
			return nil, err
		}

		switch op.Status {
		case "succeeded":
			if op.AnalyzeResult == nil {
				return nil, fmt.Errorf("analyze succeeded without a result: %w", common.ErrUpstream)
			}
			return op.AnalyzeResult, nil
		case "failed":
			msg := "unknown"
			if op.Error != nil {
				msg = op.Error.Code + ": " + op.Error.Message
			}
			c.log.Error("ocr.analyze.failed", "req_id", reqID, "error", msg)
			return nil, fmt.Errorf("analyze failed: %s: %w", msg, common.ErrUpstream)
		}

		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("analyze poll: %w", ctx.Err())
		case <-time.After(c.cfg.PollInterval):
		}
	}
}

func (c *Client) fetchOperation(ctx context.Context, reqID, opURL string) (*analyzeOperation, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, opURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build poll request: %w", err)
	}
	req.Header.Set("Ocp-Apim-Subscription-Key", c.cfg.APIKey)

	resp, err := c.hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("poll analyze: %w", err)
	}
	defer closeBody(resp.Body, c.log, reqID)

	raw, _ := io.ReadAll(resp.Body)
	if resp.StatusCode/100 != 2 {
		c.log.Error("ocr.analyze.poll_error", "req_id", reqID, "status", resp.StatusCode, "body", string(raw))
		return nil, fmt.Errorf("analyze poll: non-2xx status %d: %w", resp.StatusCode, common.ErrUpstream)
	}

	var op analyzeOperation
	if err := json.Unmarshal(raw, &op); err != nil {
		return nil, fmt.Errorf("decode analyze operation: %w", err)
	}
	return &op, nil
}

func closeBody(body io.ReadCloser, logger *slog.Logger, reqID string) {
	if err := body.Close(); err != nil {
		logger.Warn("ocr.response_body_close_error", "req_id", reqID, "error", err)
	}
}
