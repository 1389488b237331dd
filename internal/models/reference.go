package models

// Subject is a row of GET /subjects
type Subject struct {
	SubjectID int64  `json:"subject_id"`
	Code      string `json:"code"`
}

// Term is a row of GET /terms
type Term struct {
	TermID   int64  `json:"term_id"`
	Semester string `json:"semester"`
	Year     int    `json:"year"`
}
