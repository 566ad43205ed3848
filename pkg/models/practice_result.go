package models

import "time"

// PracticeResult records the outcome of one finished practice session
// for the history view.
type PracticeResult struct {
	ID             int64     `json:"id" db:"id"`
	UserID         int64     `json:"user_id" db:"user_id"`
	Mode           string    `json:"mode" db:"mode"`
	TotalQuestions int       `json:"total_questions" db:"total_questions"`
	CorrectAnswers int       `json:"correct_answers" db:"correct_answers"`
	Score          int       `json:"score" db:"score"`
	StartedAt      time.Time `json:"started_at" db:"started_at"`
	Duration       int       `json:"duration" db:"duration"` // seconds
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
}
