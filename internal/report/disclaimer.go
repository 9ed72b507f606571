package report

const (
	platformName = "Mindora Wellness Platform"

	disclaimer = "This is self-reported data for personal reflection and professional discussion only. " +
		"Not a medical diagnosis or diagnostic instrument. The information presented reflects personal " +
		"wellness tracking and should not be used as a substitute for professional medical advice, " +
		"diagnosis, or treatment. Always consult a qualified healthcare professional for clinical advice. " +
		"This data belongs to the user and is provided for personal use or to share with trained " +
		"professionals at the user's discretion."

	shortDisclaimer = "This is self-reported data for personal reflection and professional discussion only. " +
		"Not a medical diagnosis. Consult qualified professional for clinical advice."
)
