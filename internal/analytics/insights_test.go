package analytics

import (
	"strings"
	"testing"
)

func types(insights []Insight) []string {
	out := make([]string, len(insights))
	for i, in := range insights {
		out[i] = in.Type
	}
	return out
}

func equal(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestGenerateInsights(t *testing.T) {
	tests := []struct {
		name     string
		current  []int
		previous []int
		journals int
		want     []string
	}{
		{
			name:     "improving and consistent",
			current:  []int{5, 5, 4, 5, 5},
			previous: []int{3, 3},
			want:     []string{"Positive Trend", "Great Consistency", "Emotional Stability"},
		},
		{
			name:     "dip",
			current:  []int{2, 2, 2},
			previous: []int{4, 4},
			want:     []string{"Check-in Reminder", "Emotional Stability"},
		},
		{
			name:     "steady with few entries",
			current:  []int{3, 4},
			previous: []int{3},
			want:     []string{"Steady Progress", "Track More Often"},
		},
		{
			name:     "volatile without history",
			current:  []int{1, 5, 1, 5},
			journals: 3,
			want:     []string{"Reflective Practice", "Variable Emotions"},
		},
		{
			name:     "moderate variance yields nothing",
			current:  []int{2, 3, 4, 3},
			want:     []string{},
		},
		{
			name: "empty",
			want: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := GenerateInsights(tt.current, tt.previous, tt.journals, RangeWeek)
			if !equal(types(got), tt.want) {
				t.Errorf("insights = %v, want %v", types(got), tt.want)
			}
		})
	}
}

func TestGenerateInsightsMessages(t *testing.T) {
	got := GenerateInsights([]int{5, 5, 4, 5, 5}, []int{3, 3}, 0, RangeWeek)
	want := "Your mood has improved significantly this week! You're averaging 4.8/5, which is 1.8 points higher than last week. Keep up the great work!"
	if got[0].Message != want {
		t.Errorf("message = %q, want %q", got[0].Message, want)
	}
	if got[0].Sentiment != SentimentPositive {
		t.Errorf("sentiment = %q, want %q", got[0].Sentiment, SentimentPositive)
	}

	single := GenerateInsights([]int{3}, nil, 0, RangeDay)
	if len(single) != 1 || !strings.Contains(single[0].Message, "1 mood entry this day") {
		t.Errorf("single entry insight = %+v", single)
	}
}
