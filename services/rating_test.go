package services

import "testing"

func TestAverageRating(t *testing.T) {
	tests := []struct {
		name      string
		scores    []int
		wantAvg   float64
		wantTotal int
	}{
		{"empty", nil, 0, 0},
		{"single", []int{4}, 4.0, 1},
		{"five and three", []int{5, 3}, 4.0, 2},
		{"rounds to one decimal", []int{5, 4, 4}, 4.3, 3},
		{"rounds halves up", []int{4, 3}, 3.5, 2},
		{"repeating decimal", []int{3, 3, 4}, 3.3, 3},
		{"all fives", []int{5, 5, 5, 5}, 5.0, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			avg, total := AverageRating(tt.scores)
			if avg != tt.wantAvg || total != tt.wantTotal {
				t.Fatalf("AverageRating(%v) = (%v, %d), want (%v, %d)",
					tt.scores, avg, total, tt.wantAvg, tt.wantTotal)
			}
		})
	}
}
