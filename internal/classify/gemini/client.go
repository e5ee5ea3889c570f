// Package gemini implements the classify.Classifier interface over the
// Gemini generative API.
package gemini

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"github.com/google/uuid"
	"google.golang.org/api/option"

	"github.com/Tieahapani/Scanpal-Intelligent-Receipt-Organizer/internal/classify"
)

type Config struct {
	APIKey  string
	Model   string        // default gemini-2.0-flash
	Timeout time.Duration // default 30s
}

type Client struct {
	cfg Config
	log *slog.Logger
}

func NewClient(cfg Config, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Model == "" {
		cfg.Model = "gemini-2.0-flash"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	return &Client{cfg: cfg, log: logger}
}

// Classify sends the combined currency/category prompt and parses the JSON
// reply. Quota and transport errors propagate so the HTTP layer can map a
// retryable 429 distinctly; an answer outside the closed sets does not
// error, it is clamped to the defaults.
func (c *Client) Classify(ctx context.Context, in classify.Input) (classify.Result, error) {
	if strings.TrimSpace(c.cfg.APIKey) == "" {
		return classify.Result{}, errors.New("GEMINI_API_KEY is empty")
	}

	rid := uuid.New().String()
	start := time.Now()
	ctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	cl, err := genai.NewClient(ctx, option.WithAPIKey(c.cfg.APIKey))
	if err != nil {
		return classify.Result{}, fmt.Errorf("gemini client: %w", err)
	}
	defer cl.Close()

	m := cl.GenerativeModel(c.cfg.Model)
	m.GenerationConfig = genai.GenerationConfig{
		Temperature:      ptrFloat32(0),
		ResponseMIMEType: "application/json",
	}

	prompt := classify.BuildPrompt(in)
	c.log.Info("classify.request",
		"req_id", rid,
		"model", c.cfg.Model,
		"merchant", in.Merchant,
		"items", len(in.Items),
		"lines", len(in.RawLines),
	)

	resp, err := m.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		c.log.Error("classify.error",
			"req_id", rid, "error", err,
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return classify.Result{}, fmt.Errorf("gemini generate: %w", err)
	}

	text := firstText(resp)
	if text == "" {
		return classify.Result{}, fmt.Errorf("gemini: empty response")
	}

	res, err := classify.ParseResponse(text)
	if err != nil {
		c.log.Error("classify.bad_response",
			"req_id", rid, "error", err, "content", text,
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return classify.Result{}, err
	}

	c.log.Info("classify.done",
		"req_id", rid,
		"currency", res.Currency,
		"category", res.Category,
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return res, nil
}

func firstText(resp *genai.GenerateContentResponse) string {
	for _, cand := range resp.Candidates {
		if cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if txt, ok := part.(genai.Text); ok && strings.TrimSpace(string(txt)) != "" {
				return string(txt)
			}
		}
	}
	return ""
}

func ptrFloat32(v float32) *float32 { return &v }
