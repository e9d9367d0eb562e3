package service

import (
	"strings"
	"testing"

	"github.com/prepwise/prepwise/internal/model"
)

func modelPrep() model.PreparationContext {
	return model.PreparationContext{
		TargetRole: "Backend Engineer",
		Skills:     []string{"Go", "PostgreSQL"},
	}
}

func TestExtractJSONBlock(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{
			name: "bare array",
			raw:  `["a", "b"]`,
			want: `["a", "b"]`,
		},
		{
			name: "fenced json block",
			raw:  "Here you go:\n```json\n[\"a\", \"b\"]\n```\nHope that helps!",
			want: `["a", "b"]`,
		},
		{
			name: "fence without language tag",
			raw:  "```\n{\"results\": []}\n```",
			want: `{"results": []}`,
		},
		{
			name: "prose around an object",
			raw:  `Sure. {"score": 7} Done.`,
			want: `{"score": 7}`,
		},
		{
			name: "no json at all",
			raw:  "I cannot answer that.",
			want: "",
		},
		{
			name: "empty input",
			raw:  "",
			want: "",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := extractJSONBlock(tt.raw); got != tt.want {
				t.Errorf("extractJSONBlock(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}

func TestParseQuestionList(t *testing.T) {
	questions, err := parseQuestionList("```json\n[\"One?\", \" Two? \", \"\"]\n```")
	if err != nil {
		t.Fatalf("parseQuestionList failed: %v", err)
	}
	if len(questions) != 2 {
		t.Fatalf("got %d questions, want 2 (blank entries dropped)", len(questions))
	}
	if questions[1] != "Two?" {
		t.Errorf("questions[1] = %q, want trimmed %q", questions[1], "Two?")
	}

	if _, err := parseQuestionList("no array here"); err == nil {
		t.Error("expected an error for a response without JSON")
	}
	if _, err := parseQuestionList("[]"); err == nil {
		t.Error("expected an error for an empty array")
	}
	if _, err := parseQuestionList(`[1, 2]`); err == nil {
		t.Error("expected an error for non-string entries")
	}
}

func TestParseGradingResult(t *testing.T) {
	raw := "```json\n" + `{
		"results": [
			{"score": 7.5, "feedback": "good", "model_answer": "...", "suggestions": ["s"], "topics_to_revise": ["t"]},
			{"score": 15, "feedback": "inflated", "model_answer": "...", "suggestions": [], "topics_to_revise": []}
		],
		"overall_topics_to_revise": ["system design"]
	}` + "\n```"

	result, err := parseGradingResult(raw, 2)
	if err != nil {
		t.Fatalf("parseGradingResult failed: %v", err)
	}
	if result.PerQuestion[0].Score != 7.5 {
		t.Errorf("score[0] = %v, want 7.5", result.PerQuestion[0].Score)
	}
	if result.PerQuestion[1].Score != 10 {
		t.Errorf("score[1] = %v, want clamped to 10", result.PerQuestion[1].Score)
	}
	if len(result.OverallTopicsToRevise) != 1 {
		t.Errorf("overall topics = %d entries, want 1", len(result.OverallTopicsToRevise))
	}

	if _, err := parseGradingResult(raw, 5); err == nil {
		t.Error("expected an error when the result count does not match")
	}
	if _, err := parseGradingResult("nothing here", 2); err == nil {
		t.Error("expected an error for a response without JSON")
	}
}

func TestClampScore(t *testing.T) {
	if got := clampScore(-1); got != 0 {
		t.Errorf("clampScore(-1) = %v, want 0", got)
	}
	if got := clampScore(11); got != 10 {
		t.Errorf("clampScore(11) = %v, want 10", got)
	}
	if got := clampScore(6.4); got != 6.4 {
		t.Errorf("clampScore(6.4) = %v, want 6.4", got)
	}
}

func TestDropRepeatedQuestions(t *testing.T) {
	asked := []string{"What is a goroutine?", "Explain database indexing."}
	candidates := []string{
		"what is a goroutine?",
		"How does garbage collection work in Go?",
		"Explain database indexing.",
		"Describe a time you disagreed with a teammate.",
	}
	kept := dropRepeatedQuestions(candidates, asked)
	if len(kept) != 2 {
		t.Fatalf("kept %d questions, want 2", len(kept))
	}
	for _, q := range kept {
		if strings.EqualFold(q, asked[0]) || strings.EqualFold(q, asked[1]) {
			t.Errorf("repeated question slipped through: %q", q)
		}
	}
}

// Distinct questions that merely share common interview wording must all
// survive the dedupe pass; only near-identical texts are repeats.
func TestDropRepeatedQuestionsKeepsDistinctQuestions(t *testing.T) {
	asked := []string{"What is Go?", "Tell me about yourself."}
	candidates := []string{
		"Explain how goroutines differ from OS threads.",
		"What characteristics signal good test coverage?",
		"How would you design a rate limiter for an API?",
		"Walk me through a recent debugging session.",
		"What trade-offs come with microservices?",
	}
	kept := dropRepeatedQuestions(candidates, asked)
	if len(kept) != len(candidates) {
		t.Fatalf("kept %d of %d distinct questions: %v", len(kept), len(candidates), kept)
	}
}

func TestIsRepeatedQuestion(t *testing.T) {
	cases := []struct {
		q, prev string
		want    bool
	}{
		{"What is a goroutine?", "what is a goroutine?", true},
		{"  What is a goroutine? ", "What is a goroutine?", true},
		{"What is a goroutine??", "What is a goroutine?", true},
		{"What is Go?", "Tell me about yourself.", false},
		{"What characteristics signal good test coverage?", "What is Go?", false},
		{"How do channels work?", "How do mutexes work?", false},
	}
	for _, tc := range cases {
		if got := isRepeatedQuestion(tc.q, tc.prev); got != tc.want {
			t.Errorf("isRepeatedQuestion(%q, %q) = %v, want %v", tc.q, tc.prev, got, tc.want)
		}
	}
}

func TestBuildQuestionPromptListsExclusions(t *testing.T) {
	prompt := buildQuestionPrompt(modelPrep(), []string{"Old question?"}, 5)
	if !strings.Contains(prompt, "Old question?") {
		t.Error("prompt does not list the already-asked question")
	}
	if !strings.Contains(prompt, "Backend Engineer") {
		t.Error("prompt does not mention the target role")
	}
	if !strings.Contains(prompt, "exactly 5") {
		t.Error("prompt does not pin the batch size")
	}
}
