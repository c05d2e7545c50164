package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"sync"
	"time"

	"multimodel-api/config"
	"multimodel-api/logger"
	"multimodel-api/models"
	"multimodel-api/services"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
	log "github.com/sirupsen/logrus"
)

const timestampLayout = "2006-01-02T15:04:05.000Z07:00"

var registerOnce sync.Once

// RegisterValidators adds the custom binding tags used by request models.
func RegisterValidators() {
	registerOnce.Do(func() {
		if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
			v.RegisterValidation("notblank", validators.NotBlank)
		}
	})
}

// ChatPipeline runs the multi-model pipeline for one request.
type ChatPipeline interface {
	Run(ctx context.Context, req *models.ChatRequest) (*models.PipelineResult, error)
}

// ChatHandler handles /api/chat
type ChatHandler struct {
	pipeline ChatPipeline
	limiter  services.RateLimiter
	config   *config.Config
}

// NewChatHandler creates a new chat handler
func NewChatHandler(pipeline ChatPipeline, limiter services.RateLimiter, cfg *config.Config) *ChatHandler {
	RegisterValidators()
	return &ChatHandler{
		pipeline: pipeline,
		limiter:  limiter,
		config:   cfg,
	}
}

// Chat runs the pipeline for a user message
// POST /api/chat
func (h *ChatHandler) Chat(c *gin.Context) {
	requestID := c.GetString("request_id")
	entry := log.WithField("request_id", requestID)

	var req models.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		entry.WithFields(log.Fields{
			"error": err.Error(),
			"event": "validation_failed",
		}).Warn("Request validation failed")

		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "Invalid request",
			Message: validationMessage(err),
		})
		return
	}

	clientID := clientIdentifier(c)
	allowed, err := h.limiter.Allow(c.Request.Context(), clientID)
	if err != nil {
		entry.WithFields(log.Fields{
			"client": clientID,
			"error":  err.Error(),
			"event":  "rate_limiter_error",
		}).Warn("Rate limiter unavailable, allowing request")
		allowed = true
	}
	if !allowed {
		entry.WithFields(log.Fields{
			"client": clientID,
			"event":  "rate_limited",
		}).Warn("Client exceeded rate limit")

		c.JSON(http.StatusTooManyRequests, models.ErrorResponse{
			Error:   "Rate limit exceeded",
			Message: "Please wait before sending another message",
		})
		return
	}

	entry.WithFields(log.Fields{
		"stage": req.Stage,
		"event": "validated",
	}).Info("Request validated")

	ctx := logger.WithContext(c.Request.Context(), entry)
	result, err := h.pipeline.Run(ctx, &req)
	if err != nil {
		entry.WithFields(pipelineErrorFields(err)).Error("Multi-model processing failed")

		message := "Processing failed"
		if h.config.IsDevelopment() {
			message = err.Error()
		}
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "Internal server error",
			Message: message,
		})
		return
	}

	entry.WithFields(log.Fields{
		"models_used": result.ModelsUsed,
		"confidence":  result.ConfidenceScore,
		"latency_ms":  result.ProcessingTime,
		"event":       "success",
	}).Info("Request successful")

	c.JSON(http.StatusOK, models.ChatResponse{
		Success:        true,
		Data:           result,
		Timestamp:      time.Now().UTC().Format(timestampLayout),
		ProcessingTime: result.ProcessingTime,
	})
}

// Preflight answers CORS preflight requests
// OPTIONS /api/chat
func (h *ChatHandler) Preflight(c *gin.Context) {
	c.Status(http.StatusOK)
}

// MethodNotAllowed is the body for any method without a route
func MethodNotAllowed(c *gin.Context) {
	c.JSON(http.StatusMethodNotAllowed, models.ErrorResponse{
		Error:   "Method not allowed",
		Message: "Only POST requests are supported",
	})
}

// pipelineErrorFields identifies the failing provider or error code, plus the
// underlying transport or decode error when there is one.
func pipelineErrorFields(err error) log.Fields {
	fields := log.Fields{
		"error":     err.Error(),
		"timestamp": time.Now().UTC().Format(timestampLayout),
		"event":     "pipeline_error",
	}

	var upErr *services.UpstreamError
	var appErr *services.AppError
	switch {
	case errors.As(err, &upErr):
		fields["code"] = "UPSTREAM_ERROR"
		fields["provider"] = upErr.Provider
		if upErr.StatusCode != 0 {
			fields["status_code"] = upErr.StatusCode
		}
		if upErr.Body != "" {
			fields["upstream_body"] = upErr.Body
		}
		if upErr.Err != nil {
			fields["cause"] = upErr.Err.Error()
		}
	case errors.As(err, &appErr):
		fields["code"] = appErr.Code
	case errors.Is(err, context.DeadlineExceeded):
		fields["code"] = "TIMEOUT"
	case errors.Is(err, context.Canceled):
		fields["code"] = "CANCELED"
	}
	return fields
}

func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		for _, fe := range verrs {
			switch fe.Field() {
			case "Stage":
				return "stage must be one of: all, deepseek, qwen, gemini"
			case "Temperature":
				return "settings.temperature must be between 0 and 2"
			}
		}
	}
	return "Valid message is required"
}

// clientIdentifier keys the rate limiter: the first X-Forwarded-For hop, else the peer address.
func clientIdentifier(c *gin.Context) string {
	if forwarded := c.GetHeader("X-Forwarded-For"); forwarded != "" {
		if first := strings.TrimSpace(strings.Split(forwarded, ",")[0]); first != "" {
			return first
		}
	}
	return c.RemoteIP()
}
