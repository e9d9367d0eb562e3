package service

import "testing"

func TestToDisplayScore(t *testing.T) {
	sc := NewScoreConverterService()

	tests := []struct {
		internal float64
		want     float64
	}{
		{0, 0},
		{6, 60},
		{7.2, 72},
		{7.25, 72.5},
		{10, 100},
	}
	for _, tt := range tests {
		got, err := sc.ToDisplayScore(tt.internal)
		if err != nil {
			t.Fatalf("ToDisplayScore(%v) failed: %v", tt.internal, err)
		}
		if got != tt.want {
			t.Errorf("ToDisplayScore(%v) = %v, want %v", tt.internal, got, tt.want)
		}
	}

	if _, err := sc.ToDisplayScore(-0.1); err == nil {
		t.Error("expected an error for a negative score")
	}
	if _, err := sc.ToDisplayScore(10.1); err == nil {
		t.Error("expected an error for a score above the internal maximum")
	}
}
