package events

import "time"

type AssessmentScoredEvent struct {
	AssessmentID string    `json:"assessment_id"`
	Score        int       `json:"score"`
	RiskBand     string    `json:"risk_band"`
	Class        *int      `json:"class,omitempty"`
	Probability  *float64  `json:"probability,omitempty"`
	Timestamp    time.Time `json:"timestamp"`
}

type DatasetImportedEvent struct {
	Source    string    `json:"source"`
	Records   int       `json:"records"`
	Years     []int     `json:"years,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}
