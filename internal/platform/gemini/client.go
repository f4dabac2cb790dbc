package gemini

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/yungbote/speechcoach-backend/internal/generation"
	"github.com/yungbote/speechcoach-backend/internal/platform/logger"
)

const ProviderName = "gemini"

var harmCategories = []genai.HarmCategory{
	genai.HarmCategoryHarassment,
	genai.HarmCategoryHateSpeech,
	genai.HarmCategorySexuallyExplicit,
	genai.HarmCategoryDangerousContent,
}

// Client is a generation.Capability backed by one Gemini model and one API key.
type Client struct {
	log    *logger.Logger
	client *genai.Client
	model  *genai.GenerativeModel
	name   string
}

func New(ctx context.Context, log *logger.Logger, apiKey string, settings generation.Settings, opts ...option.ClientOption) (*Client, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, fmt.Errorf("gemini: missing api key")
	}
	if log == nil {
		log = logger.Nop()
	}
	client, err := genai.NewClient(ctx, append([]option.ClientOption{option.WithAPIKey(apiKey)}, opts...)...)
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	model := client.GenerativeModel(settings.Model)
	configureModel(model, settings)

	return &Client{
		log:    log.With("client", "GeminiClient", "model", settings.Model),
		client: client,
		model:  model,
		name:   settings.Model,
	}, nil
}

func configureModel(model *genai.GenerativeModel, settings generation.Settings) {
	model.SetTemperature(settings.Temperature)
	model.SetTopP(settings.TopP)
	model.SetTopK(settings.TopK)
	model.SetMaxOutputTokens(settings.MaxOutputTokens)
	if settings.BlockNone {
		model.SafetySettings = make([]*genai.SafetySetting, 0, len(harmCategories))
		for _, cat := range harmCategories {
			model.SafetySettings = append(model.SafetySettings, &genai.SafetySetting{
				Category:  cat,
				Threshold: genai.HarmBlockNone,
			})
		}
	}
}

// NewFactory returns a factory building one instrumented client per API key.
func NewFactory(log *logger.Logger, settings generation.Settings) generation.Factory {
	return generation.FactoryFunc{
		Name: ProviderName,
		Fn: func(ctx context.Context, apiKey string) (generation.Capability, error) {
			c, err := New(ctx, log, apiKey, settings)
			if err != nil {
				return nil, err
			}
			return generation.Instrument(log, c, ProviderName, settings.Model), nil
		},
	}
}

func (c *Client) Model() string { return c.name }

func (c *Client) Close() error {
	return c.client.Close()
}

func (c *Client) GenerateText(ctx context.Context, prompt string) (string, error) {
	resp, err := c.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("gemini generate: %w", err)
	}
	return c.textOrEmpty(resp)
}

func (c *Client) GenerateWithBlob(ctx context.Context, instruction string, blob generation.Blob) (string, error) {
	if len(blob.Data) == 0 {
		return "", fmt.Errorf("gemini generate: empty blob")
	}
	resp, err := c.model.GenerateContent(ctx,
		genai.Text(instruction),
		genai.Blob{MIMEType: blob.MIMEType, Data: blob.Data},
	)
	if err != nil {
		return "", fmt.Errorf("gemini generate: %w", err)
	}
	return c.textOrEmpty(resp)
}

func (c *Client) textOrEmpty(resp *genai.GenerateContentResponse) (string, error) {
	text := extractText(resp)
	if strings.TrimSpace(text) == "" {
		if resp != nil {
			for i, cand := range resp.Candidates {
				if cand != nil && cand.FinishReason != genai.FinishReasonStop {
					c.log.Warn("gemini candidate stopped early", "candidate", i, "finish_reason", cand.FinishReason.String())
				}
			}
		}
		return "", generation.ErrEmptyResponse
	}
	return text, nil
}

// extractText concatenates every text part of every candidate.
func extractText(resp *genai.GenerateContentResponse) string {
	if resp == nil {
		return ""
	}
	var sb strings.Builder
	for _, cand := range resp.Candidates {
		if cand == nil || cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if t, ok := part.(genai.Text); ok {
				sb.WriteString(string(t))
			}
		}
	}
	return sb.String()
}
