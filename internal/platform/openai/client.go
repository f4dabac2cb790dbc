package openai

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/yungbote/speechcoach-backend/internal/generation"
	"github.com/yungbote/speechcoach-backend/internal/platform/logger"
)

const (
	ProviderName   = "openai"
	DefaultBaseURL = "https://api.openai.com"
	DefaultModel   = "gpt-4o-audio-preview"
)

type Config struct {
	BaseURL string
	Model   string
	Timeout time.Duration
}

// Client is a generation.Capability over an OpenAI-compatible chat-completions endpoint.
// Each call is a single attempt.
type Client struct {
	log        *logger.Logger
	baseURL    string
	apiKey     string
	model      string
	settings   generation.Settings
	httpClient *http.Client
}

func NewClient(log *logger.Logger, apiKey string, cfg Config, settings generation.Settings) (*Client, error) {
	return NewClientWithHTTPClient(log, apiKey, cfg, settings, nil)
}

func NewClientWithHTTPClient(log *logger.Logger, apiKey string, cfg Config, settings generation.Settings, httpClient *http.Client) (*Client, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, fmt.Errorf("openai: missing api key")
	}
	if log == nil {
		log = logger.Nop()
	}
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	model := strings.TrimSpace(cfg.Model)
	if model == "" {
		model = DefaultModel
	}
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = 180 * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	return &Client{
		log:        log.With("client", "OpenAIClient", "model", model),
		baseURL:    baseURL,
		apiKey:     apiKey,
		model:      model,
		settings:   settings,
		httpClient: httpClient,
	}, nil
}

func NewFactory(log *logger.Logger, cfg Config, settings generation.Settings) generation.Factory {
	return generation.FactoryFunc{
		Name: ProviderName,
		Fn: func(ctx context.Context, apiKey string) (generation.Capability, error) {
			c, err := NewClient(log, apiKey, cfg, settings)
			if err != nil {
				return nil, err
			}
			return generation.Instrument(log, c, ProviderName, c.model), nil
		},
	}
}

type contentPart struct {
	Type       string      `json:"type"`
	Text       string      `json:"text,omitempty"`
	InputAudio *inputAudio `json:"input_audio,omitempty"`
}

type inputAudio struct {
	Data   string `json:"data"`
	Format string `json:"format"`
}

type chatMessage struct {
	Role    string        `json:"role"`
	Content []contentPart `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float32       `json:"temperature"`
	TopP        float32       `json:"top_p"`
	MaxTokens   int32         `json:"max_tokens,omitempty"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Role    string `json:"role"`
			Content string `json:"content"`
			Refusal string `json:"refusal,omitempty"`
		} `json:"message"`
	} `json:"choices"`
}

type openAIHTTPError struct {
	StatusCode int
	Body       string
}

func (e *openAIHTTPError) Error() string {
	return fmt.Sprintf("openai http %d: %s", e.StatusCode, e.Body)
}

func (e *openAIHTTPError) HTTPStatusCode() int {
	if e == nil {
		return 0
	}
	return e.StatusCode
}

func (c *Client) GenerateText(ctx context.Context, prompt string) (string, error) {
	return c.complete(ctx, []contentPart{{Type: "text", Text: prompt}})
}

func (c *Client) GenerateWithBlob(ctx context.Context, instruction string, blob generation.Blob) (string, error) {
	format, err := audioFormat(blob.MIMEType)
	if err != nil {
		return "", err
	}
	return c.complete(ctx, []contentPart{
		{Type: "text", Text: instruction},
		{Type: "input_audio", InputAudio: &inputAudio{
			Data:   base64.StdEncoding.EncodeToString(blob.Data),
			Format: format,
		}},
	})
}

func (c *Client) complete(ctx context.Context, parts []contentPart) (string, error) {
	req := chatRequest{
		Model:       c.model,
		Messages:    []chatMessage{{Role: "user", Content: parts}},
		Temperature: c.settings.Temperature,
		TopP:        c.settings.TopP,
		MaxTokens:   c.settings.MaxOutputTokens,
	}
	raw, err := c.doOnce(ctx, http.MethodPost, "/v1/chat/completions", req)
	if err != nil {
		return "", err
	}
	var resp chatResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return "", fmt.Errorf("openai decode error: %w", err)
	}
	var out strings.Builder
	for _, ch := range resp.Choices {
		if ch.Message.Refusal != "" {
			return "", fmt.Errorf("model refused: %s", ch.Message.Refusal)
		}
		out.WriteString(ch.Message.Content)
	}
	if strings.TrimSpace(out.String()) == "" {
		return "", generation.ErrEmptyResponse
	}
	return out.String(), nil
}

func (c *Client) doOnce(ctx context.Context, method, path string, body any) ([]byte, error) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(body); err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, &buf)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	raw, readErr := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	if readErr != nil {
		return nil, readErr
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &openAIHTTPError{StatusCode: resp.StatusCode, Body: string(raw)}
	}
	return raw, nil
}

// audioFormat maps a MIME type to the input_audio format name.
func audioFormat(mime string) (string, error) {
	mime = strings.ToLower(strings.TrimSpace(mime))
	if i := strings.IndexByte(mime, ';'); i >= 0 {
		mime = mime[:i]
	}
	switch mime {
	case "audio/wav", "audio/x-wav", "audio/wave", "audio/vnd.wave":
		return "wav", nil
	case "audio/mp3", "audio/mpeg":
		return "mp3", nil
	default:
		return "", fmt.Errorf("openai: unsupported audio type %q", mime)
	}
}
