// Package intent turns free text into typed ledger commands using the
// Gemini API. The core never sees natural language: everything that
// leaves this package is a services.Command, validated field by field.
package intent

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"despesas/internal/core"
	applog "despesas/internal/log"
	"despesas/internal/services"

	"google.golang.org/genai"
)

// DefaultModel balances latency and extraction quality for short chat
// messages.
const DefaultModel = "gemini-1.5-flash"

// Extractor classifies one message per call. It is safe for concurrent
// use; the underlying client multiplexes requests.
type Extractor struct {
	client *genai.Client
	model  string
	logger *applog.Logger
}

// NewExtractor builds a Gemini-backed extractor. Credentials come from
// the environment (GEMINI_API_KEY / GOOGLE_API_KEY), which the client
// resolves itself.
func NewExtractor(ctx context.Context, model string, logger *applog.Logger) (*Extractor, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		HTTPOptions: genai.HTTPOptions{APIVersion: "v1"},
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	if model == "" {
		model = DefaultModel
	}

	return &Extractor{
		client: client,
		model:  model,
		logger: logger.WithComponent(applog.ComponentIntent),
	}, nil
}

// Extract classifies text into a command. On any failure it returns the
// unrecognized command together with the error, so callers can log the
// cause and still answer the user with the help message.
func (e *Extractor) Extract(ctx context.Context, text string) (services.Command, error) {
	unrecognized := services.Command{Op: services.OpUnrecognized}

	contents := []*genai.Content{
		{
			Role: "user",
			Parts: []*genai.Part{
				{Text: fmt.Sprintf(intentPrompt, text)},
			},
		},
	}

	resp, err := e.client.Models.GenerateContent(ctx, e.model, contents, nil)
	if err != nil {
		return unrecognized, fmt.Errorf("generate content: %w", err)
	}

	raw := resp.Text()
	if raw == "" {
		return unrecognized, fmt.Errorf("empty response from model")
	}

	var payload intentPayload
	if err := json.Unmarshal([]byte(cleanModelJSON(raw)), &payload); err != nil {
		return unrecognized, fmt.Errorf("unmarshal intent JSON: %w (raw: %q)", err, raw)
	}

	cmd := payload.toCommand()
	e.logger.DebugContext(ctx, "Intent extracted",
		applog.FieldOperation, string(cmd.Op))
	return cmd, nil
}

// intentPayload mirrors the loosely-typed JSON the model emits. It is
// converted into a typed command exactly once, here at the boundary.
type intentPayload struct {
	Intent      string   `json:"intent"`
	Value       *float64 `json:"value"`
	Category    string   `json:"category"`
	ID          *int64   `json:"id"`
	NewValue    *float64 `json:"new_value"`
	NewCategory *string  `json:"new_category"`
	Period      string   `json:"period"`
	Limit       int      `json:"limit"`
}

func (p intentPayload) toCommand() services.Command {
	switch services.Operation(p.Intent) {
	case services.OpGreet:
		return services.Command{Op: services.OpGreet}

	case services.OpCreateExpense:
		cmd := services.Command{Op: services.OpCreateExpense}
		if p.Value != nil {
			cmd.Create = &services.CreateParams{Value: p.Value, Category: p.Category}
		}
		return cmd

	case services.OpDeleteExpense:
		cmd := services.Command{Op: services.OpDeleteExpense}
		if p.ID != nil {
			cmd.Delete = &services.DeleteParams{ID: *p.ID}
		}
		return cmd

	case services.OpEditExpense:
		cmd := services.Command{Op: services.OpEditExpense}
		if p.ID != nil {
			cmd.Edit = &services.EditParams{
				ID:       *p.ID,
				Value:    p.NewValue,
				Category: p.NewCategory,
			}
		}
		return cmd

	case services.OpListExpenses, services.OpRenderChart, services.OpRenderSpreadsheet:
		return services.Command{
			Op: services.Operation(p.Intent),
			Query: &services.QueryParams{
				Period:   core.ParsePeriod(p.Period),
				Category: p.Category,
				Limit:    p.Limit,
			},
		}

	default:
		return services.Command{Op: services.OpUnrecognized}
	}
}

// cleanModelJSON strips Markdown fences and surrounding prose the model
// sometimes adds despite instructions, keeping the outermost object.
func cleanModelJSON(raw string) string {
	s := strings.TrimSpace(raw)

	if strings.HasPrefix(s, "```") {
		if idx := strings.Index(s, "\n"); idx != -1 {
			s = s[idx+1:]
		}
		if idx := strings.LastIndex(s, "```"); idx != -1 {
			s = s[:idx]
		}
		s = strings.TrimSpace(s)
	}

	if start := strings.Index(s, "{"); start != -1 {
		if end := strings.LastIndex(s, "}"); end > start {
			s = s[start : end+1]
		}
	}

	return strings.TrimSpace(s)
}
