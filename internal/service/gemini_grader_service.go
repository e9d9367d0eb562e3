package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"github.com/prepwise/prepwise/config"
	"github.com/prepwise/prepwise/internal/model"
	"github.com/rs/zerolog/log"
	"google.golang.org/api/option"
)

// QuestionAnswer is one (question, answer) pair submitted for grading.
type QuestionAnswer struct {
	Question string
	Answer   string
}

// QuestionGrade is the grading result for a single answer, on the 0-10 scale.
type QuestionGrade struct {
	Score          float64  `json:"score"`
	Feedback       string   `json:"feedback"`
	ModelAnswer    string   `json:"model_answer"`
	Suggestions    []string `json:"suggestions"`
	TopicsToRevise []string `json:"topics_to_revise"`
}

// BatchGradingResult is positionally aligned with the submitted pairs; the
// caller merges by index, not by ID.
type BatchGradingResult struct {
	PerQuestion           []QuestionGrade `json:"results"`
	OverallTopicsToRevise []string        `json:"overall_topics_to_revise"`
}

// AnswerGraderService scores all answers of a level in one upstream call.
type AnswerGraderService interface {
	GradeBatch(ctx context.Context, prep model.PreparationContext, pairs []QuestionAnswer) (*BatchGradingResult, error)
}

type geminiGraderService struct {
	client *genai.GenerativeModel
	cfg    *config.Config
}

func NewAnswerGraderService(cfg *config.Config) (AnswerGraderService, error) {
	if cfg.Gemini.APIKey == "" {
		log.Warn().Msg("GEMINI_API_KEY is not set. AnswerGraderService will be non-functional.")
		return &geminiGraderService{cfg: cfg, client: nil}, nil
	}
	ctx := context.Background()
	client, err := genai.NewClient(ctx, option.WithAPIKey(cfg.Gemini.APIKey))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Gemini client: %w", err)
	}
	return &geminiGraderService{client: client.GenerativeModel(cfg.Gemini.Model), cfg: cfg}, nil
}

func (s *geminiGraderService) GradeBatch(ctx context.Context, prep model.PreparationContext, pairs []QuestionAnswer) (*BatchGradingResult, error) {
	if s.client == nil {
		return nil, &UpstreamError{Provider: "gemini", Code: UpstreamCodeBadCredentials,
			Err: fmt.Errorf("gemini client not initialized")}
	}
	if len(pairs) == 0 {
		return nil, fmt.Errorf("%w: no answers to grade", ErrValidation)
	}

	prompt := buildGradingPrompt(prep, pairs)
	resp, err := s.client.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		log.Error().Err(err).Int("answers", len(pairs)).Msg("Gemini API error during batch grading")
		return nil, mapGeminiError("gemini", err)
	}

	text := responseText(resp)
	if text == "" {
		return nil, &UpstreamError{Provider: "gemini", Code: UpstreamCodeUnavailable,
			Err: fmt.Errorf("gemini returned no text content")}
	}

	result, err := parseGradingResult(text, len(pairs))
	if err != nil {
		log.Warn().Err(err).Str("rawResponse", text).Msg("Failed to parse grading result from Gemini response")
		return nil, &UpstreamError{Provider: "gemini", Code: UpstreamCodeUnavailable, Err: err}
	}
	return result, nil
}

func buildGradingPrompt(prep model.PreparationContext, pairs []QuestionAnswer) string {
	var b strings.Builder
	b.WriteString("You are an experienced technical interviewer grading a candidate's mock interview answers.\n")
	fmt.Fprintf(&b, "The candidate is targeting the role of %s", prep.TargetRole)
	if prep.TargetCompany != "" {
		fmt.Fprintf(&b, " at %s", prep.TargetCompany)
	}
	b.WriteString(".\n\n")

	b.WriteString("Grade each of the following question/answer pairs:\n\n")
	for i, pair := range pairs {
		fmt.Fprintf(&b, "Question %d: %s\n", i+1, pair.Question)
		fmt.Fprintf(&b, "Answer %d:\n---\n%s\n---\n\n", i+1, pair.Answer)
	}

	b.WriteString("For every answer provide:\n")
	b.WriteString("- score: a number from 0 to 10\n")
	b.WriteString("- feedback: specific, constructive feedback on the answer\n")
	b.WriteString("- model_answer: a strong example answer to the question\n")
	b.WriteString("- suggestions: a list of concrete improvements\n")
	b.WriteString("- topics_to_revise: a list of topics the candidate should revisit\n\n")
	b.WriteString("Respond with ONLY a JSON object in this exact shape, results in the same order as the questions:\n")
	b.WriteString(`{"results": [{"score": 7, "feedback": "...", "model_answer": "...", "suggestions": ["..."], "topics_to_revise": ["..."]}], "overall_topics_to_revise": ["..."]}`)
	b.WriteString("\n")
	return b.String()
}

func parseGradingResult(raw string, expected int) (*BatchGradingResult, error) {
	block := extractJSONBlock(raw)
	if block == "" {
		return nil, fmt.Errorf("response contains no JSON object")
	}
	var result BatchGradingResult
	if err := json.Unmarshal([]byte(block), &result); err != nil {
		return nil, fmt.Errorf("could not decode grading result: %w", err)
	}
	if len(result.PerQuestion) != expected {
		return nil, fmt.Errorf("grading result has %d entries, expected %d", len(result.PerQuestion), expected)
	}
	for i := range result.PerQuestion {
		result.PerQuestion[i].Score = clampScore(result.PerQuestion[i].Score)
	}
	return &result, nil
}
