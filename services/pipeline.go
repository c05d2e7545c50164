package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"

	"multimodel-api/config"
	"multimodel-api/logger"
	"multimodel-api/models"
)

// Pipeline runs DeepSeek, Qwen and Gemini one after another, each stage
// seeing the outputs of the stages before it.
type Pipeline struct {
	cfg      *config.Config
	deepseek ModelCaller
	qwen     ModelCaller
	gemini   ModelCaller
	now      func() time.Time
}

// NewPipeline wires the three stage callers.
func NewPipeline(cfg *config.Config, deepseek, qwen, gemini ModelCaller) *Pipeline {
	return &Pipeline{
		cfg:      cfg,
		deepseek: deepseek,
		qwen:     qwen,
		gemini:   gemini,
		now:      time.Now,
	}
}

// Run executes the stages selected by req.Stage. By default the first failing
// stage aborts the run; with partial results enabled the failure is recorded
// and the remaining stages continue with whatever succeeded.
func (p *Pipeline) Run(ctx context.Context, req *models.ChatRequest) (*models.PipelineResult, error) {
	start := p.now()
	entry := logger.FromContext(ctx)

	if err := ValidateAPIKeys(p.cfg); err != nil {
		return nil, fmt.Errorf("Processing failed: %w", err)
	}

	result := &models.PipelineResult{ModelsUsed: []string{}}

	stages := []struct {
		caller ModelCaller
		input  func() string
		output **string
	}{
		{p.deepseek, func() string { return req.Message }, &result.DeepSeek},
		{p.qwen, func() string { return BuildQwenInput(req.Message, result.DeepSeek) }, &result.Qwen},
		{p.gemini, func() string { return BuildGeminiContext(req.Message, result.DeepSeek, result.Qwen) }, &result.Gemini},
	}

	var lastErr error
	for _, stage := range stages {
		name := stage.caller.Name()
		if !req.Runs(name) {
			continue
		}

		stageStart := p.now()
		entry.WithFields(log.Fields{"model": name, "event": "stage_started"}).Info("Starting model stage")

		text, err := stage.caller.Generate(ctx, stage.input(), req)
		if err != nil {
			entry.WithFields(log.Fields{
				"model": name,
				"error": err.Error(),
				"event": "stage_failed",
			}).Error("Model stage failed")

			if !p.cfg.Pipeline.PartialResults || IsConfiguration(err) || errors.Is(err, context.Canceled) {
				return nil, fmt.Errorf("Processing failed: %w", err)
			}
			result.FailedModels = append(result.FailedModels, name)
			lastErr = err
			continue
		}

		*stage.output = &text
		result.ModelsUsed = append(result.ModelsUsed, name)

		entry.WithFields(log.Fields{
			"model":      name,
			"chars":      len(text),
			"latency_ms": p.now().Sub(stageStart).Milliseconds(),
			"event":      "stage_completed",
		}).Info("Model stage completed")
	}

	if lastErr != nil && len(result.ModelsUsed) == 0 {
		return nil, fmt.Errorf("Processing failed: %w", lastErr)
	}

	result.FinalResponse = Synthesize(result, req.Message)
	result.ConfidenceScore = ConfidenceScore(result)
	result.ProcessingTime = p.now().Sub(start).Milliseconds()

	return result, nil
}
