package services

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"

	"multimodel-api/config"
	"multimodel-api/models"
)

// stubCaller records its inputs and returns a canned response.
type stubCaller struct {
	name   string
	output string
	err    error
	inputs []string
}

func (s *stubCaller) Name() string { return s.name }

func (s *stubCaller) Generate(ctx context.Context, input string, req *models.ChatRequest) (string, error) {
	s.inputs = append(s.inputs, input)
	if s.err != nil {
		return "", s.err
	}
	return s.output, nil
}

func newStubPipeline(cfg *config.Config) (*Pipeline, *stubCaller, *stubCaller, *stubCaller) {
	deepseek := &stubCaller{name: "deepseek", output: strings.Repeat("A", 60)}
	qwen := &stubCaller{name: "qwen", output: strings.Repeat("B", 900)}
	gemini := &stubCaller{name: "gemini", output: strings.Repeat("C", 1100)}
	return NewPipeline(cfg, deepseek, qwen, gemini), deepseek, qwen, gemini
}

func TestPipeline_AllStages(t *testing.T) {
	p, deepseek, qwen, gemini := newStubPipeline(testConfig("http://fw", "http://google"))
	req := &models.ChatRequest{Message: "Write a sort function"}

	result, err := p.Run(context.Background(), req)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if want := []string{"deepseek", "qwen", "gemini"}; !reflect.DeepEqual(result.ModelsUsed, want) {
		t.Errorf("models_used = %v, want %v", result.ModelsUsed, want)
	}
	if result.FinalResponse != strings.Repeat("C", 1100) {
		t.Error("final response should be the gemini output")
	}
	if result.ConfidenceScore != 100 {
		t.Errorf("confidence = %d, want 100", result.ConfidenceScore)
	}

	if deepseek.inputs[0] != "Write a sort function" {
		t.Errorf("deepseek input = %q", deepseek.inputs[0])
	}
	if want := BuildQwenInput(req.Message, strPtr(deepseek.output)); qwen.inputs[0] != want {
		t.Errorf("qwen input = %.40q...", qwen.inputs[0])
	}
	if want := BuildGeminiContext(req.Message, strPtr(deepseek.output), strPtr(qwen.output)); gemini.inputs[0] != want {
		t.Errorf("gemini input mismatch")
	}
}

func TestPipeline_SingleStage(t *testing.T) {
	tests := []struct {
		stage string
		want  []string
	}{
		{"deepseek", []string{"deepseek"}},
		{"qwen", []string{"qwen"}},
		{"gemini", []string{"gemini"}},
	}

	for _, tt := range tests {
		t.Run(tt.stage, func(t *testing.T) {
			p, deepseek, qwen, gemini := newStubPipeline(testConfig("http://fw", "http://google"))

			result, err := p.Run(context.Background(), &models.ChatRequest{Message: "hi", Stage: tt.stage})
			if err != nil {
				t.Fatalf("run failed: %v", err)
			}
			if !reflect.DeepEqual(result.ModelsUsed, tt.want) {
				t.Errorf("models_used = %v, want %v", result.ModelsUsed, tt.want)
			}

			calls := map[string]int{"deepseek": len(deepseek.inputs), "qwen": len(qwen.inputs), "gemini": len(gemini.inputs)}
			for name, n := range calls {
				want := 0
				if name == tt.stage {
					want = 1
				}
				if n != want {
					t.Errorf("%s called %d times, want %d", name, n, want)
				}
			}
		})
	}
}

func TestPipeline_QwenWithoutDeepSeekGetsRawMessage(t *testing.T) {
	p, _, qwen, _ := newStubPipeline(testConfig("http://fw", "http://google"))

	if _, err := p.Run(context.Background(), &models.ChatRequest{Message: "raw", Stage: "qwen"}); err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if qwen.inputs[0] != "raw" {
		t.Errorf("qwen input = %q, want raw message", qwen.inputs[0])
	}
}

func TestPipeline_MissingKeysMakeNoCalls(t *testing.T) {
	cfg := testConfig("", "http://google")
	cfg.Providers.FireworksAPIKey = ""
	p, deepseek, qwen, gemini := newStubPipeline(cfg)

	_, err := p.Run(context.Background(), &models.ChatRequest{Message: "hi"})
	if !IsConfiguration(err) {
		t.Fatalf("expected configuration error, got %v", err)
	}
	if !strings.Contains(err.Error(), "FIREWORKS_API_KEY, FIREWORKS_BASE_URL") {
		t.Errorf("error should name missing keys: %v", err)
	}
	if len(deepseek.inputs)+len(qwen.inputs)+len(gemini.inputs) != 0 {
		t.Error("no caller should run when configuration is missing")
	}
}

func TestPipeline_FailureAbortsRemainingStages(t *testing.T) {
	p, _, qwen, gemini := newStubPipeline(testConfig("http://fw", "http://google"))
	qwen.err = &UpstreamError{Provider: "Qwen", StatusCode: 500, Body: "boom"}

	_, err := p.Run(context.Background(), &models.ChatRequest{Message: "hi"})
	if err == nil {
		t.Fatal("expected error")
	}
	if !IsUpstream(err) || !strings.HasPrefix(err.Error(), "Processing failed: Qwen API error (500)") {
		t.Errorf("unexpected error: %v", err)
	}
	if len(gemini.inputs) != 0 {
		t.Error("gemini should not run after qwen failed")
	}
}

func TestPipeline_PartialResults(t *testing.T) {
	cfg := testConfig("http://fw", "http://google")
	cfg.Pipeline.PartialResults = true
	p, deepseek, qwen, gemini := newStubPipeline(cfg)
	qwen.err = errors.New("connection reset")

	result, err := p.Run(context.Background(), &models.ChatRequest{Message: "hi"})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if want := []string{"deepseek", "gemini"}; !reflect.DeepEqual(result.ModelsUsed, want) {
		t.Errorf("models_used = %v, want %v", result.ModelsUsed, want)
	}
	if want := []string{"qwen"}; !reflect.DeepEqual(result.FailedModels, want) {
		t.Errorf("failed_models = %v, want %v", result.FailedModels, want)
	}
	if result.Qwen != nil {
		t.Error("failed stage output should be null")
	}
	if want := BuildGeminiContext("hi", strPtr(deepseek.output), nil); gemini.inputs[0] != want {
		t.Error("gemini should only see successful outputs")
	}
}

func TestPipeline_PartialResultsAllFailed(t *testing.T) {
	cfg := testConfig("http://fw", "http://google")
	cfg.Pipeline.PartialResults = true
	p, deepseek, _, _ := newStubPipeline(cfg)
	deepseek.err = errors.New("down")

	if _, err := p.Run(context.Background(), &models.ChatRequest{Message: "hi", Stage: "deepseek"}); err == nil {
		t.Fatal("expected error when every selected stage fails")
	}
}
