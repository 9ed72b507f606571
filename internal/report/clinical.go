package report

import (
	"fmt"
	"strings"

	"github.com/mindora/wellness/internal/analytics"
)

var rule = strings.Repeat("═", 59)

// clinicalNarrative builds the observation and recommendation lines of the
// Clinical Insights sheet.
func clinicalNarrative(m *Model) []string {
	lines := []string{rule, "CLINICAL OBSERVATIONS", rule, ""}

	if avg, ok := analytics.RoundedMean(m.Scores); ok {
		switch {
		case avg >= 4:
			lines = append(lines,
				"✓ Patient reports consistently positive mood states during this period.",
				"  Average score indicates good emotional well-being.")
		case avg >= 3:
			lines = append(lines,
				"• Patient reports moderate mood states with room for improvement.",
				"  Consider exploring factors contributing to neutral emotional state.")
		default:
			lines = append(lines,
				"⚠ Patient reports concerning mood patterns requiring attention.",
				"  Recommend additional support, intervention, or therapy adjustment.")
		}
	}
	lines = append(lines, "")

	switch n := len(m.Moods); {
	case n >= 14:
		lines = append(lines,
			"✓ Excellent data quality with consistent daily tracking.",
			"  High compliance provides reliable trend analysis.")
	case n >= 7:
		lines = append(lines,
			"• Good data collection observed.",
			"  Encourage more frequent check-ins for enhanced pattern recognition.")
	default:
		lines = append(lines,
			"⚠ Limited data points noted.",
			"  Recommend encouraging more regular mood tracking for comprehensive assessment.")
	}
	lines = append(lines, "")

	d := m.Exact
	if d.Excellent > 0 || d.Good > 0 {
		lines = append(lines,
			"✓ Patient demonstrates capacity for positive emotional states.",
			fmt.Sprintf("  %.1f%% of entries show good or excellent mood.", m.percent(d.Excellent+d.Good, len(m.Moods))))
	}
	lines = append(lines, "")

	if d.VeryPoor > 2 || d.Poor > 3 {
		lines = append(lines,
			"⚠ Notable instances of low mood detected.",
			"  Recommend discussing:",
			"  - Specific triggers and circumstances",
			"  - Current coping strategies effectiveness",
			"  - Need for additional support systems")
	}

	lines = append(lines, "", rule, "CLINICAL RECOMMENDATIONS", rule, "",
		"1. Continue regular mood tracking to establish and monitor baseline patterns", "",
		"2. Work with patient to identify specific triggers associated with mood changes", "",
		"3. Review and discuss patterns during therapy sessions", "",
		"4. Consider integrating additional wellness activities:",
		"   - Mindfulness exercises",
		"   - Physical activity",
		"   - Sleep hygiene improvements", "",
		"5. Review journal entries for qualitative insights and deeper understanding", "",
		"6. Assess need for treatment plan adjustments based on observed trends", "",
		rule, "DISCLAIMER", rule, "",
		"This report is generated from patient self-reported data and should be used",
		"as a supplementary tool in clinical assessment. It is not intended to serve",
		"as a diagnostic instrument and should not replace professional clinical judgment.", "",
		"All information is confidential and protected under HIPAA regulations.",
		"Sharing of this report should follow appropriate clinical and legal protocols.",
	)
	return lines
}

func moodCategory(score int) string {
	switch score {
	case 5:
		return "Excellent"
	case 4:
		return "Good"
	case 3:
		return "Okay"
	case 2:
		return "Poor"
	}
	return "Very Poor"
}
