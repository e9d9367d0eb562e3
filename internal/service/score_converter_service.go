package service

import (
	"fmt"
	"math"
)

// Scores are kept on the grader's 0-10 scale everywhere inside the system;
// the dashboard shows 0-100. Conversion happens only at the DTO boundary.
const (
	MaxInternalScore = 10.0
	MaxDisplayScore  = 100.0
)

type ScoreConverterService interface {
	ToDisplayScore(internal float64) (float64, error)
}

type scoreConverterServiceImpl struct{}

func NewScoreConverterService() ScoreConverterService {
	return &scoreConverterServiceImpl{}
}

// ToDisplayScore converts a canonical 0-10 score to the 0-100 display scale,
// rounded to one decimal place.
func (s *scoreConverterServiceImpl) ToDisplayScore(internal float64) (float64, error) {
	if internal < 0 || internal > MaxInternalScore {
		return 0, fmt.Errorf("internal score %.2f is out of valid range (0-%.1f)", internal, MaxInternalScore)
	}
	display := internal / MaxInternalScore * MaxDisplayScore
	return math.Round(display*10) / 10, nil
}
