package models

// Stage names accepted in ChatRequest.Stage.
const (
	StageAll      = "all"
	StageDeepSeek = "deepseek"
	StageQwen     = "qwen"
	StageGemini   = "gemini"
)

// ChatSettings carries per-request generation overrides
type ChatSettings struct {
	Temperature *float32 `json:"temperature,omitempty" binding:"omitempty,gte=0,lte=2"` // 0 keeps the model default
}

// ChatRequest is the body of POST /api/chat
type ChatRequest struct {
	Message  string        `json:"message" binding:"required,notblank"`
	Stage    string        `json:"stage,omitempty" binding:"omitempty,oneof=all deepseek qwen gemini"`
	Settings *ChatSettings `json:"settings,omitempty"`
}

// Runs reports whether the named model stage is selected by the request.
func (r *ChatRequest) Runs(stage string) bool {
	return r.Stage == "" || r.Stage == StageAll || r.Stage == stage
}

// TemperatureOr returns the requested temperature, or def when none (or zero) was sent.
func (r *ChatRequest) TemperatureOr(def float32) float32 {
	if r.Settings == nil || r.Settings.Temperature == nil || *r.Settings.Temperature == 0 {
		return def
	}
	return *r.Settings.Temperature
}

// PipelineResult is the outcome of one multi-model run
type PipelineResult struct {
	DeepSeek        *string  `json:"deepseek"`
	Qwen            *string  `json:"qwen"`
	Gemini          *string  `json:"gemini"`
	FinalResponse   string   `json:"final_response"`
	ModelsUsed      []string `json:"models_used"`
	FailedModels    []string `json:"failed_models,omitempty"`
	ConfidenceScore int      `json:"confidence_score"`
	ProcessingTime  int64    `json:"processing_time"` // milliseconds
}

// ChatResponse is the success envelope of POST /api/chat
type ChatResponse struct {
	Success        bool            `json:"success"`
	Data           *PipelineResult `json:"data"`
	Timestamp      string          `json:"timestamp"`
	ProcessingTime int64           `json:"processing_time"`
}

// ErrorResponse is the body of every non-2xx response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// ModelFlags reports which model identifiers are configured
type ModelFlags struct {
	DeepSeek bool `json:"deepseek"`
	Qwen     bool `json:"qwen"`
	Gemini   bool `json:"gemini"`
}

// HealthResponse is the body of GET /api/health
type HealthResponse struct {
	Status      string      `json:"status"` // "healthy" or "unhealthy"
	Timestamp   string      `json:"timestamp"`
	Environment string      `json:"environment,omitempty"`
	Models      *ModelFlags `json:"models,omitempty"`
	Error       string      `json:"error,omitempty"`
}
