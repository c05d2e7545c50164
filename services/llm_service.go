package services

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"multimodel-api/config"
	"multimodel-api/models"

	openai "github.com/sashabaranov/go-openai"
)

// ModelCaller generates text from one upstream model.
type ModelCaller interface {
	Name() string
	Generate(ctx context.Context, input string, req *models.ChatRequest) (string, error)
}

// ChatProfile fixes the persona and sampling parameters of a chat-completion model.
type ChatProfile struct {
	Name               string
	Provider           string
	Model              string
	SystemPrompt       string
	DefaultTemperature float32
	MaxTokens          int
	TopP               float32
	FrequencyPenalty   float32
	PresencePenalty    float32
}

// DeepSeekProfile is the analytical first stage.
func DeepSeekProfile(model string) ChatProfile {
	return ChatProfile{
		Name:               models.StageDeepSeek,
		Provider:           "DeepSeek",
		Model:              model,
		SystemPrompt:       deepSeekSystemPrompt,
		DefaultTemperature: 0.7,
		MaxTokens:          1200,
		TopP:               0.9,
		FrequencyPenalty:   0.1,
		PresencePenalty:    0.1,
	}
}

// QwenProfile is the implementation stage.
func QwenProfile(model string) ChatProfile {
	return ChatProfile{
		Name:               models.StageQwen,
		Provider:           "Qwen",
		Model:              model,
		SystemPrompt:       qwenSystemPrompt,
		DefaultTemperature: 0.5,
		MaxTokens:          1800,
		TopP:               0.95,
	}
}

// ChatCompletionCaller talks to an OpenAI-compatible chat completions endpoint.
type ChatCompletionCaller struct {
	client  *openai.Client
	profile ChatProfile
	timeout time.Duration
}

// NewChatCompletionCaller creates a caller for profile against the Fireworks endpoint.
func NewChatCompletionCaller(cfg *config.Config, profile ChatProfile) *ChatCompletionCaller {
	clientConfig := openai.DefaultConfig(cfg.Providers.FireworksAPIKey)
	if cfg.Providers.FireworksBaseURL != "" {
		clientConfig.BaseURL = cfg.Providers.FireworksBaseURL
	}
	clientConfig.HTTPClient = &http.Client{Timeout: cfg.ProviderTimeout()}

	return &ChatCompletionCaller{
		client:  openai.NewClientWithConfig(clientConfig),
		profile: profile,
		timeout: cfg.ProviderTimeout(),
	}
}

func (s *ChatCompletionCaller) Name() string {
	return s.profile.Name
}

// Generate sends the system persona and input as a single-turn chat and
// returns the first choice's content.
func (s *ChatCompletionCaller) Generate(ctx context.Context, input string, req *models.ChatRequest) (string, error) {
	chatReq := openai.ChatCompletionRequest{
		Model: s.profile.Model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: s.profile.SystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: input},
		},
		MaxTokens:        s.profile.MaxTokens,
		Temperature:      req.TemperatureOr(s.profile.DefaultTemperature),
		TopP:             s.profile.TopP,
		FrequencyPenalty: s.profile.FrequencyPenalty,
		PresencePenalty:  s.profile.PresencePenalty,
		Stream:           false,
	}

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	resp, err := s.client.CreateChatCompletion(ctx, chatReq)
	if err != nil {
		return "", s.upstreamError(err)
	}

	if len(resp.Choices) == 0 {
		return "", &UpstreamError{Provider: s.profile.Provider, Body: "no choices in response"}
	}

	return resp.Choices[0].Message.Content, nil
}

func (s *ChatCompletionCaller) upstreamError(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return &UpstreamError{Provider: s.profile.Provider, StatusCode: apiErr.HTTPStatusCode, Body: apiErr.Message, Err: err}
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		body := strings.TrimSpace(string(reqErr.Body))
		if body == "" && reqErr.Err != nil {
			body = reqErr.Err.Error()
		}
		return &UpstreamError{Provider: s.profile.Provider, StatusCode: reqErr.HTTPStatusCode, Body: body, Err: err}
	}
	return &UpstreamError{Provider: s.profile.Provider, Err: err}
}
