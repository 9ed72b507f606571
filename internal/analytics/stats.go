package analytics

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/mindora/wellness/internal/models"
)

// Trend directions.
const (
	TrendUp     = "up"
	TrendDown   = "down"
	TrendStable = "stable"
)

// Metric selects the wording of a comparison.
type Metric int

const (
	MetricMood Metric = iota
	MetricEntries
	MetricJournals
)

const (
	trendThreshold   = 0.3
	moodDeadBand     = 0.5
	notApplicable    = "N/A"
	stableVarianceLo = 0.5
	stableVarianceHi = 1.5
)

// Scores extracts the mood value of each entry in order.
func Scores(entries []models.MoodEntry) []int {
	out := make([]int, len(entries))
	for i, e := range entries {
		out[i] = e.Mood
	}
	return out
}

// Mean returns the arithmetic mean and false for an empty input.
func Mean(values []int) (float64, bool) {
	if len(values) == 0 {
		return 0, false
	}
	sum := 0
	for _, v := range values {
		sum += v
	}
	return float64(sum) / float64(len(values)), true
}

// FormatAverage renders the mean with one decimal, or "N/A" when empty.
func FormatAverage(values []int) string {
	avg, ok := Mean(values)
	if !ok {
		return notApplicable
	}
	return fmt.Sprintf("%.1f", avg)
}

// RoundedMean is the mean rounded to one decimal, as displayed. Comparisons
// and trends on mood operate on this value.
func RoundedMean(values []int) (float64, bool) {
	avg, ok := Mean(values)
	if !ok {
		return 0, false
	}
	return math.Round(avg*10) / 10, true
}

// Variance is the population variance, zero for an empty input.
func Variance(values []int) float64 {
	avg, ok := Mean(values)
	if !ok {
		return 0
	}
	var sum float64
	for _, v := range values {
		d := float64(v) - avg
		sum += d * d
	}
	return sum / float64(len(values))
}

// MinMax returns the lowest and highest score.
func MinMax(values []int) (lo, hi int, ok bool) {
	if len(values) == 0 {
		return 0, 0, false
	}
	lo, hi = values[0], values[0]
	for _, v := range values[1:] {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	return lo, hi, true
}

// ThresholdDistribution buckets scores by cut-off; used by the JSON, HTML and
// CSV outputs.
type ThresholdDistribution struct {
	Excellent int `json:"excellent"`
	Good      int `json:"good"`
	Neutral   int `json:"neutral"`
	Low       int `json:"low"`
	Poor      int `json:"poor"`
}

func NewThresholdDistribution(values []int) ThresholdDistribution {
	var d ThresholdDistribution
	for _, v := range values {
		f := float64(v)
		switch {
		case f >= 4.5:
			d.Excellent++
		case f >= 3.5:
			d.Good++
		case f >= 2.5:
			d.Neutral++
		case f >= 1.5:
			d.Low++
		default:
			d.Poor++
		}
	}
	return d
}

func (d ThresholdDistribution) Total() int {
	return d.Excellent + d.Good + d.Neutral + d.Low + d.Poor
}

// ExactDistribution buckets scores by exact value; used by the clinical
// workbook.
type ExactDistribution struct {
	Excellent int `json:"excellent"`
	Good      int `json:"good"`
	Okay      int `json:"okay"`
	Poor      int `json:"poor"`
	VeryPoor  int `json:"veryPoor"`
}

func NewExactDistribution(values []int) ExactDistribution {
	var d ExactDistribution
	for _, v := range values {
		switch v {
		case 5:
			d.Excellent++
		case 4:
			d.Good++
		case 3:
			d.Okay++
		case 2:
			d.Poor++
		default:
			d.VeryPoor++
		}
	}
	return d
}

func (d ExactDistribution) Total() int {
	return d.Excellent + d.Good + d.Okay + d.Poor + d.VeryPoor
}

// Trend classifies the change from previous to current. A missing previous
// value is stable, as is a change of at most 0.3 either way.
func Trend(current float64, previous *float64) string {
	if previous == nil {
		return TrendStable
	}
	diff := current - *previous
	switch {
	case diff > trendThreshold:
		return TrendUp
	case diff < -trendThreshold:
		return TrendDown
	}
	return TrendStable
}

// Comparison phrases current against previous for display. It is empty when
// either side is missing or previous is zero.
func Comparison(current, previous *float64, r Range, m Metric) string {
	if current == nil || previous == nil || *previous == 0 {
		return ""
	}
	label := r.PreviousLabel()
	diff := *current - *previous

	if m == MetricMood {
		switch {
		case diff > moodDeadBand:
			return fmt.Sprintf("%.1f points higher than %s", diff, label)
		case diff < -moodDeadBand:
			return fmt.Sprintf("%.1f points lower than %s", math.Abs(diff), label)
		}
		return "Similar to " + label
	}

	pct := math.Abs(diff / *previous * 100)
	switch {
	case diff > 0:
		return fmt.Sprintf("%.0f%% more than %s", pct, label)
	case diff < 0:
		return fmt.Sprintf("%.0f%% less than %s", pct, label)
	}
	return "Same as " + label
}

// DailyAverage is the mean score of one calendar day.
type DailyAverage struct {
	Date     time.Time
	Average  float64
	CheckIns int
}

// DailyAverages groups entries by local calendar date, oldest first.
func DailyAverages(entries []models.MoodEntry, loc *time.Location) []DailyAverage {
	type acc struct {
		day   time.Time
		sum   int
		count int
	}
	byDay := make(map[string]*acc)
	for _, e := range entries {
		d := e.Date.In(loc)
		key := d.Format("2006-01-02")
		a, ok := byDay[key]
		if !ok {
			a = &acc{day: time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, loc)}
			byDay[key] = a
		}
		a.sum += e.Mood
		a.count++
	}

	out := make([]DailyAverage, 0, len(byDay))
	for _, a := range byDay {
		out = append(out, DailyAverage{
			Date:     a.day,
			Average:  float64(a.sum) / float64(a.count),
			CheckIns: a.count,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out
}

func ptr(f float64) *float64 { return &f }
