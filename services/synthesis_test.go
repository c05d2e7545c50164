package services

import (
	"strings"
	"testing"

	"multimodel-api/models"
)

func strPtr(s string) *string { return &s }

func TestBuildQwenInput(t *testing.T) {
	if got := BuildQwenInput("sort this", nil); got != "sort this" {
		t.Errorf("without analysis = %q", got)
	}
	if got := BuildQwenInput("sort this", strPtr("")); got != "sort this" {
		t.Errorf("with empty analysis = %q", got)
	}
	want := "Based on this analysis: use quicksort\n\nUser request: sort this"
	if got := BuildQwenInput("sort this", strPtr("use quicksort")); got != want {
		t.Errorf("with analysis = %q, want %q", got, want)
	}
}

func TestBuildGeminiContext_SectionOrder(t *testing.T) {
	message := "Write a sort function\nwith  odd   spacing"

	tests := []struct {
		name     string
		deepseek *string
		qwen     *string
		want     []string
	}{
		{"message only", nil, nil, []string{
			"ORIGINAL USER REQUEST:\n" + message,
			synthesisObjectives,
		}},
		{"deepseek only", strPtr("analysis"), nil, []string{
			"ORIGINAL USER REQUEST:\n" + message,
			"DEEPSEEK V3-0324 ANALYSIS:\nanalysis",
			synthesisObjectives,
		}},
		{"qwen only", nil, strPtr("code"), []string{
			"ORIGINAL USER REQUEST:\n" + message,
			"QWEN3-30B-A3B IMPLEMENTATION:\ncode",
			synthesisObjectives,
		}},
		{"both", strPtr("analysis"), strPtr("code"), []string{
			"ORIGINAL USER REQUEST:\n" + message,
			"DEEPSEEK V3-0324 ANALYSIS:\nanalysis",
			"QWEN3-30B-A3B IMPLEMENTATION:\ncode",
			synthesisObjectives,
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := BuildGeminiContext(message, tt.deepseek, tt.qwen)
			if want := strings.Join(tt.want, "\n\n"); got != want {
				t.Errorf("context =\n%s\nwant\n%s", got, want)
			}
			if !strings.Contains(got, message) {
				t.Error("original message must appear verbatim")
			}
		})
	}
}

func TestSynthesize_Priority(t *testing.T) {
	long := func(c string) *string { return strPtr(strings.Repeat(c, 101)) }

	tests := []struct {
		name   string
		result models.PipelineResult
		want   string
	}{
		{"gemini wins", models.PipelineResult{DeepSeek: long("a"), Qwen: long("b"), Gemini: long("c")}, *long("c")},
		{"short gemini falls to qwen", models.PipelineResult{DeepSeek: long("a"), Qwen: long("b"), Gemini: strPtr("short")}, *long("b")},
		{"padded gemini is trimmed first", models.PipelineResult{Qwen: long("b"), Gemini: strPtr("   " + strings.Repeat("c", 100) + "   ")}, *long("b")},
		{"deepseek last", models.PipelineResult{DeepSeek: long("a")}, *long("a")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Synthesize(&tt.result, "msg"); got != tt.want {
				t.Errorf("Synthesize() = %.20q..., want %.20q...", got, tt.want)
			}
		})
	}
}

func TestSynthesize_Fallback(t *testing.T) {
	got := Synthesize(&models.PipelineResult{DeepSeek: strPtr("tiny")}, "hello")
	if !strings.Contains(got, `**Your message:** "hello"`) {
		t.Errorf("fallback should echo short message verbatim:\n%s", got)
	}

	message := strings.Repeat("x", 150)
	got = Synthesize(&models.PipelineResult{}, message)
	if !strings.Contains(got, `"`+strings.Repeat("x", 100)+`..."`) {
		t.Errorf("fallback should truncate to 100 characters with ellipsis:\n%s", got)
	}
	if strings.Contains(got, strings.Repeat("x", 101)) {
		t.Error("fallback echoed more than 100 characters")
	}
}

func TestConfidenceScore(t *testing.T) {
	rep := func(n int) *string { return strPtr(strings.Repeat("z", n)) }

	tests := []struct {
		name   string
		result models.PipelineResult
		want   int
	}{
		{"none", models.PipelineResult{}, 0},
		{"all short", models.PipelineResult{DeepSeek: rep(50), Qwen: rep(50), Gemini: rep(50)}, 0},
		{"deepseek only", models.PipelineResult{DeepSeek: rep(51)}, 30},
		{"deepseek bonus", models.PipelineResult{DeepSeek: rep(501)}, 35},
		{"qwen and gemini", models.PipelineResult{Qwen: rep(60), Gemini: rep(60)}, 70},
		{"all base", models.PipelineResult{DeepSeek: rep(60), Qwen: rep(60), Gemini: rep(60)}, 100},
		{"example clamps", models.PipelineResult{DeepSeek: rep(60), Qwen: rep(900), Gemini: rep(1100)}, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ConfidenceScore(&tt.result); got != tt.want {
				t.Errorf("ConfidenceScore() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestConfidenceScore_MonotonicAndBounded(t *testing.T) {
	lengths := []int{-1, 0, 51, 501, 801, 1001}
	text := func(n int) *string {
		if n < 0 {
			return nil
		}
		return strPtr(strings.Repeat("q", n))
	}
	score := func(d, q, g int) int {
		return ConfidenceScore(&models.PipelineResult{DeepSeek: text(d), Qwen: text(q), Gemini: text(g)})
	}

	for i, d := range lengths {
		for j, q := range lengths {
			for k, g := range lengths {
				s := score(d, q, g)
				if s < 0 || s > 100 {
					t.Fatalf("score(%d,%d,%d) = %d out of range", d, q, g, s)
				}
				if i+1 < len(lengths) && score(lengths[i+1], q, g) < s {
					t.Errorf("longer deepseek lowered score at (%d,%d,%d)", d, q, g)
				}
				if j+1 < len(lengths) && score(d, lengths[j+1], g) < s {
					t.Errorf("longer qwen lowered score at (%d,%d,%d)", d, q, g)
				}
				if k+1 < len(lengths) && score(d, q, lengths[k+1]) < s {
					t.Errorf("longer gemini lowered score at (%d,%d,%d)", d, q, g)
				}
			}
		}
	}
}
