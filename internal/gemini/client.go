// Package gemini asks Gemini for quotation line items through the genai SDK.
package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"google.golang.org/genai"

	"github.com/rpggio/quotestudio/internal/domain/project"
	"github.com/rpggio/quotestudio/internal/domain/suggest"
)

const (
	DefaultModel   = "gemini-3-pro-preview"
	DefaultTimeout = 60 * time.Second

	thinkingBudget int32 = 4000
)

// ErrNoAPIKey is returned by New when no key is configured.
var ErrNoAPIKey = errors.New("gemini api key is required")

// Options configures the client. BaseURL and HTTPClient override the SDK
// defaults, mainly for tests.
type Options struct {
	APIKey     string
	Model      string
	BaseURL    string
	Timeout    time.Duration
	HTTPClient *http.Client
	Logger     *slog.Logger
}

// Client implements the suggestion service on top of Gemini.
type Client struct {
	models  *genai.Models
	model   string
	timeout time.Duration
	logger  *slog.Logger
}

// New creates a Client.
func New(opts Options) (*Client, error) {
	if strings.TrimSpace(opts.APIKey) == "" {
		return nil, ErrNoAPIKey
	}
	if opts.Model == "" {
		opts.Model = DefaultModel
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	client, err := genai.NewClient(context.Background(), &genai.ClientConfig{
		APIKey:      opts.APIKey,
		Backend:     genai.BackendGeminiAPI,
		HTTPClient:  opts.HTTPClient,
		HTTPOptions: genai.HTTPOptions{BaseURL: opts.BaseURL},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}
	return &Client{
		models:  client.Models,
		model:   opts.Model,
		timeout: opts.Timeout,
		logger:  opts.Logger,
	}, nil
}

// Suggest returns suggested line items for a free-text project description.
func (c *Client) Suggest(ctx context.Context, prompt string) ([]suggest.Suggestion, error) {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return nil, suggest.ErrEmptyPrompt
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	start := time.Now()
	resp, err := c.models.GenerateContent(ctx, c.model, genai.Text(instruction(prompt)), &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   responseSchema(),
		ThinkingConfig:   &genai.ThinkingConfig{ThinkingBudget: genai.Ptr(thinkingBudget)},
	})
	if err != nil {
		var apiErr genai.APIError
		if errors.As(err, &apiErr) {
			return nil, fmt.Errorf("gemini returned %d: %w", apiErr.Code, err)
		}
		return nil, fmt.Errorf("gemini request failed: %w", err)
	}
	c.logger.Debug("gemini response", "model", c.model, "duration_ms", time.Since(start).Milliseconds())

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return []suggest.Suggestion{}, nil
	}

	var suggestions []suggest.Suggestion
	if err := json.Unmarshal([]byte(text), &suggestions); err != nil {
		return nil, fmt.Errorf("failed to parse suggestions: %w", err)
	}
	return suggestions, nil
}

func instruction(prompt string) string {
	return fmt.Sprintf(`請根據以下專案描述生成結構化的報價清單（請使用繁體中文）："%s"。
請提供至少 6-10 個相關的報價項目，涵蓋標準的製作類別（創意策略、動態製作、後期剪輯、音效製作、專案管理）。
價格應符合高階動態設計工作室或廣告製作公司的市場行情（台幣或港幣概念）。`, prompt)
}

func responseSchema() *genai.Schema {
	categories := make([]string, 0, len(project.Categories()))
	for _, c := range project.Categories() {
		categories = append(categories, string(c))
	}
	return &genai.Schema{
		Type: genai.TypeArray,
		Items: &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"name":               {Type: genai.TypeString},
				"description":        {Type: genai.TypeString},
				"category":           {Type: genai.TypeString, Enum: categories},
				"unit":               {Type: genai.TypeString},
				"suggestedQuantity":  {Type: genai.TypeNumber},
				"suggestedUnitPrice": {Type: genai.TypeNumber},
			},
			Required: []string{"name", "description", "category", "unit", "suggestedQuantity", "suggestedUnitPrice"},
		},
	}
}
