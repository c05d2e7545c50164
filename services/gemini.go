package services

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"multimodel-api/config"
	"multimodel-api/models"

	"github.com/bytedance/sonic"
)

// GeminiCaller calls Google's generateContent endpoint.
type GeminiCaller struct {
	baseURL string
	apiKey  string
	model   string
	client  *http.Client
	timeout time.Duration
}

func NewGeminiCaller(cfg *config.Config) *GeminiCaller {
	return &GeminiCaller{
		baseURL: cfg.Providers.GoogleBaseURL,
		apiKey:  cfg.Providers.GoogleAPIKey,
		model:   cfg.Providers.GeminiModel,
		client:  &http.Client{Timeout: cfg.ProviderTimeout()},
		timeout: cfg.ProviderTimeout(),
	}
}

func (g *GeminiCaller) Name() string {
	return models.StageGemini
}

func (g *GeminiCaller) buildRequest(input string, req *models.ChatRequest) models.GeminiRequest {
	return models.GeminiRequest{
		Contents: []models.GeminiContent{{
			Parts: []models.GeminiPart{{Text: fmt.Sprintf(geminiPromptTemplate, input)}},
		}},
		GenerationConfig: models.GeminiGenerationConfig{
			Temperature:     req.TemperatureOr(0.4),
			TopK:            40,
			TopP:            0.95,
			MaxOutputTokens: 2400,
			CandidateCount:  1,
			StopSequences:   []string{},
		},
		SafetySettings: []models.GeminiSafetySetting{
			{Category: "HARM_CATEGORY_HARASSMENT", Threshold: "BLOCK_MEDIUM_AND_ABOVE"},
			{Category: "HARM_CATEGORY_HATE_SPEECH", Threshold: "BLOCK_MEDIUM_AND_ABOVE"},
		},
	}
}

// Generate embeds input in the synthesis persona and returns the first candidate's text.
func (g *GeminiCaller) Generate(ctx context.Context, input string, req *models.ChatRequest) (string, error) {
	if g.model == "" {
		return "", NewConfigurationError("GEMINI_MODEL is not set")
	}

	jsonData, err := sonic.Marshal(g.buildRequest(input, req))
	if err != nil {
		return "", fmt.Errorf("marshaling gemini request: %w", err)
	}

	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	endpoint := fmt.Sprintf("%s/models/%s:generateContent", g.baseURL, url.PathEscape(g.model))
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(jsonData))
	if err != nil {
		return "", fmt.Errorf("creating gemini request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-goog-api-key", g.apiKey)

	resp, err := g.client.Do(httpReq)
	if err != nil {
		return "", &UpstreamError{Provider: "Gemini", Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &UpstreamError{Provider: "Gemini", Body: "reading response body", Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", &UpstreamError{Provider: "Gemini", StatusCode: resp.StatusCode, Body: string(body)}
	}

	var genResp models.GeminiResponse
	if err := sonic.Unmarshal(body, &genResp); err != nil {
		return "", &UpstreamError{Provider: "Gemini", Body: "invalid response format", Err: err}
	}

	if len(genResp.Candidates) == 0 || genResp.Candidates[0].Content == nil || len(genResp.Candidates[0].Content.Parts) == 0 {
		return "", &UpstreamError{Provider: "Gemini", Body: "invalid response format"}
	}

	return genResp.Candidates[0].Content.Parts[0].Text, nil
}
