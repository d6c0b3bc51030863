package events

const (
	StreamName   = "INSIGHT_EVENTS"
	StreamMaxAge = "720h" // 30 days
)

func SubjectAssessmentScored(assessmentID string) string {
	return "insight.assessment." + assessmentID + ".scored"
}

func SubjectDatasetImported() string {
	return "insight.dataset.imported"
}
