package services

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"multimodel-api/models"
)

const (
	minAnswerLength   = 100
	minResponseLength = 50
	fallbackEchoLimit = 100
)

// BuildQwenInput prefixes the user request with the DeepSeek analysis when there is one.
func BuildQwenInput(message string, deepseek *string) string {
	if deepseek == nil || *deepseek == "" {
		return message
	}
	return fmt.Sprintf("Based on this analysis: %s\n\nUser request: %s", *deepseek, message)
}

// BuildGeminiContext lays out the request, any prior model outputs and the
// synthesis objectives as blank-line separated sections, always in that order.
func BuildGeminiContext(message string, deepseek, qwen *string) string {
	sections := []string{"ORIGINAL USER REQUEST:\n" + message}
	if deepseek != nil && *deepseek != "" {
		sections = append(sections, "DEEPSEEK V3-0324 ANALYSIS:\n"+*deepseek)
	}
	if qwen != nil && *qwen != "" {
		sections = append(sections, "QWEN3-30B-A3B IMPLEMENTATION:\n"+*qwen)
	}
	sections = append(sections, synthesisObjectives)
	return strings.Join(sections, "\n\n")
}

// Synthesize picks the most downstream answer that is long enough, falling back
// to an apology that echoes the start of the message.
func Synthesize(result *models.PipelineResult, message string) string {
	for _, candidate := range []*string{result.Gemini, result.Qwen, result.DeepSeek} {
		if candidate != nil && utf8.RuneCountInString(strings.TrimSpace(*candidate)) > minAnswerLength {
			return *candidate
		}
	}
	return fallbackResponse(message)
}

func fallbackResponse(message string) string {
	echo := message
	if runes := []rune(message); len(runes) > fallbackEchoLimit {
		echo = string(runes[:fallbackEchoLimit]) + "..."
	}
	return fmt.Sprintf(fallbackTemplate, echo)
}

// ConfidenceScore is a length heuristic in [0, 100].
func ConfidenceScore(result *models.PipelineResult) int {
	score := 0
	score += lengthScore(result.DeepSeek, 30, 500)
	score += lengthScore(result.Qwen, 35, 800)
	score += lengthScore(result.Gemini, 35, 1000)

	if score > 100 {
		return 100
	}
	if score < 0 {
		return 0
	}
	return score
}

func lengthScore(text *string, base, bonusAfter int) int {
	if text == nil {
		return 0
	}
	n := utf8.RuneCountInString(*text)
	score := 0
	if n > minResponseLength {
		score += base
	}
	if n > bonusAfter {
		score += 5
	}
	return score
}
