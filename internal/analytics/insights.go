package analytics

import "fmt"

type Sentiment string

const (
	SentimentPositive Sentiment = "positive"
	SentimentNeutral  Sentiment = "neutral"
	SentimentCaution  Sentiment = "caution"
)

type Insight struct {
	Type      string    `json:"type"`
	Message   string    `json:"message"`
	Sentiment Sentiment `json:"sentiment"`
}

// GenerateInsights evaluates the insight rules in a fixed order: mood trend,
// check-in consistency, journaling, then mood variance. current and previous
// are the mood scores of the two windows; journals is the journal count.
func GenerateInsights(current, previous []int, journals int, r Range) []Insight {
	insights := make([]Insight, 0, 4)

	avg, hasCurrent := Mean(current)
	prevAvg, hasPrevious := Mean(previous)

	if hasCurrent && avg > 0 && hasPrevious {
		diff := avg - prevAvg
		switch {
		case diff > moodDeadBand:
			insights = append(insights, Insight{
				Type: "Positive Trend",
				Message: fmt.Sprintf("Your mood has improved significantly this %s! You're averaging %.1f/5, which is %.1f points higher than %s. Keep up the great work!",
					r, avg, diff, r.PreviousLabel()),
				Sentiment: SentimentPositive,
			})
		case diff < -moodDeadBand:
			insights = append(insights, Insight{
				Type: "Check-in Reminder",
				Message: fmt.Sprintf("Your mood has dipped this %s. Consider reaching out to your support network or scheduling time for self-care activities. Remember, it's okay to have difficult periods.",
					r),
				Sentiment: SentimentCaution,
			})
		default:
			insights = append(insights, Insight{
				Type: "Steady Progress",
				Message: fmt.Sprintf("Your mood has remained relatively stable this %s, averaging around %.1f/5. Consistency is a positive sign of emotional balance.",
					r, avg),
				Sentiment: SentimentNeutral,
			})
		}
	}

	count := len(current)
	switch {
	case count >= 5:
		insights = append(insights, Insight{
			Type: "Great Consistency",
			Message: fmt.Sprintf("You've logged %d mood check-ins this %s! Regular tracking helps identify patterns and supports your wellness journey.",
				count, r),
			Sentiment: SentimentPositive,
		})
	case count > 0 && count < 3:
		noun := "entries"
		if count == 1 {
			noun = "entry"
		}
		insights = append(insights, Insight{
			Type: "Track More Often",
			Message: fmt.Sprintf("You've logged %d mood %s this %s. Try checking in more frequently to gain better insights into your emotional patterns.",
				count, noun, r),
			Sentiment: SentimentNeutral,
		})
	}

	if journals >= 3 {
		insights = append(insights, Insight{
			Type: "Reflective Practice",
			Message: fmt.Sprintf("You've written %d journal entries! Journaling is proven to reduce stress and improve self-awareness. Your commitment to reflection is admirable.",
				journals),
			Sentiment: SentimentPositive,
		})
	}

	if count >= 3 {
		v := Variance(current)
		switch {
		case v < stableVarianceLo:
			insights = append(insights, Insight{
				Type:      "Emotional Stability",
				Message:   "Your moods have been quite stable this period, with minimal fluctuation. This suggests good emotional regulation.",
				Sentiment: SentimentPositive,
			})
		case v > stableVarianceHi:
			insights = append(insights, Insight{
				Type:      "Variable Emotions",
				Message:   "You've experienced a wide range of emotions this period. Consider identifying triggers and discussing patterns with a mental health professional if needed.",
				Sentiment: SentimentNeutral,
			})
		}
	}

	return insights
}
