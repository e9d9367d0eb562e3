package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/prepwise/prepwise/config"
	"github.com/prepwise/prepwise/internal/model"
	"github.com/rs/zerolog/log"
	"google.golang.org/api/option"
)

// QuestionGeneratorService requests a batch of interview questions from the
// generative-language API. Repetition avoidance against excludeTexts is
// best-effort: the prompt lists them and a fuzzy post-filter drops anything
// the model repeats anyway.
type QuestionGeneratorService interface {
	GenerateQuestions(ctx context.Context, prep model.PreparationContext, excludeTexts []string, count int) ([]string, error)
}

type geminiQuestionService struct {
	client *genai.GenerativeModel
	cfg    *config.Config
}

func NewQuestionGeneratorService(cfg *config.Config) (QuestionGeneratorService, error) {
	if cfg.Gemini.APIKey == "" {
		log.Warn().Msg("GEMINI_API_KEY is not set. QuestionGeneratorService will be non-functional.")
		return &geminiQuestionService{cfg: cfg, client: nil}, nil
	}
	ctx := context.Background()
	client, err := genai.NewClient(ctx, option.WithAPIKey(cfg.Gemini.APIKey))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Gemini client: %w", err)
	}
	return &geminiQuestionService{client: client.GenerativeModel(cfg.Gemini.Model), cfg: cfg}, nil
}

func (s *geminiQuestionService) GenerateQuestions(ctx context.Context, prep model.PreparationContext, excludeTexts []string, count int) ([]string, error) {
	if s.client == nil {
		return nil, &UpstreamError{Provider: "gemini", Code: UpstreamCodeBadCredentials,
			Err: fmt.Errorf("gemini client not initialized")}
	}

	prompt := buildQuestionPrompt(prep, excludeTexts, count)
	resp, err := s.client.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		log.Error().Err(err).Str("role", prep.TargetRole).Msg("Gemini API error during question generation")
		return nil, mapGeminiError("gemini", err)
	}

	text := responseText(resp)
	if text == "" {
		return nil, &UpstreamError{Provider: "gemini", Code: UpstreamCodeUnavailable,
			Err: fmt.Errorf("gemini returned no text content")}
	}

	questions, err := parseQuestionList(text)
	if err != nil {
		log.Warn().Err(err).Str("rawResponse", text).Msg("Failed to parse question list from Gemini response")
		return nil, &UpstreamError{Provider: "gemini", Code: UpstreamCodeUnavailable, Err: err}
	}

	questions = dropRepeatedQuestions(questions, excludeTexts)
	if len(questions) < count {
		return nil, &UpstreamError{Provider: "gemini", Code: UpstreamCodeUnavailable,
			Err: fmt.Errorf("gemini produced %d usable questions, need %d", len(questions), count)}
	}
	return questions[:count], nil
}

func buildQuestionPrompt(prep model.PreparationContext, excludeTexts []string, count int) string {
	var b strings.Builder
	b.WriteString("You are an experienced technical interviewer preparing a candidate for a real interview.\n")
	fmt.Fprintf(&b, "Generate exactly %d interview questions for the following candidate profile:\n", count)
	fmt.Fprintf(&b, "- Target role: %s\n", prep.TargetRole)
	if prep.TargetCompany != "" {
		fmt.Fprintf(&b, "- Target company: %s\n", prep.TargetCompany)
	}
	if prep.Industry != "" {
		fmt.Fprintf(&b, "- Industry: %s\n", prep.Industry)
	}
	if prep.ExperienceBand != "" {
		fmt.Fprintf(&b, "- Experience level: %s\n", prep.ExperienceBand)
	}
	if len(prep.Skills) > 0 {
		fmt.Fprintf(&b, "- Key skills: %s\n", strings.Join(prep.Skills, ", "))
	}
	if len(prep.FocusAreas) > 0 {
		fmt.Fprintf(&b, "- Focus areas: %s\n", strings.Join(prep.FocusAreas, ", "))
	}

	if len(excludeTexts) > 0 {
		b.WriteString("\nDo NOT repeat or rephrase any of these already-asked questions:\n")
		for _, text := range excludeTexts {
			fmt.Fprintf(&b, "- %s\n", text)
		}
	}

	b.WriteString("\nRespond with ONLY a JSON array of question strings, nothing else. Example:\n")
	b.WriteString(`["First question?", "Second question?"]`)
	b.WriteString("\n")
	return b.String()
}

func parseQuestionList(raw string) ([]string, error) {
	block := extractJSONBlock(raw)
	if block == "" {
		return nil, fmt.Errorf("response contains no JSON array")
	}
	var questions []string
	if err := json.Unmarshal([]byte(block), &questions); err != nil {
		return nil, fmt.Errorf("could not decode question array: %w", err)
	}
	out := questions[:0]
	for _, q := range questions {
		q = strings.TrimSpace(q)
		if q != "" {
			out = append(out, q)
		}
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("question array is empty")
	}
	return out, nil
}

// dropRepeatedQuestions removes candidates that match an excluded text after
// normalization, including close paraphrases the model slipped through.
// Dedupe is best-effort: only near-identical texts are dropped, so shared
// interview phrasing never empties a valid batch.
func dropRepeatedQuestions(questions, excludeTexts []string) []string {
	if len(excludeTexts) == 0 {
		return questions
	}
	kept := make([]string, 0, len(questions))
	for _, q := range questions {
		repeated := false
		for _, prev := range excludeTexts {
			if isRepeatedQuestion(q, prev) {
				repeated = true
				break
			}
		}
		if !repeated {
			kept = append(kept, q)
		}
	}
	return kept
}

// isRepeatedQuestion treats two texts as the same question when their edit
// distance is within a quarter of the longer text, case-insensitively.
func isRepeatedQuestion(q, prev string) bool {
	a := strings.ToLower(strings.TrimSpace(q))
	b := strings.ToLower(strings.TrimSpace(prev))
	if a == b {
		return true
	}
	longer := len([]rune(a))
	if l := len([]rune(b)); l > longer {
		longer = l
	}
	if longer == 0 {
		return false
	}
	return fuzzy.LevenshteinDistance(a, b)*4 <= longer
}
