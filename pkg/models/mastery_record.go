package models

import "time"

// Mastery level bounds. Level 1 is a freshly added word, level 5 is
// fully retained.
const (
	MinLevel = 1
	MaxLevel = 5
)

// MasteryRecord tracks how well a user retains a single word.
// One record exists per (user, word) pair.
//
// Level stays within [MinLevel, MaxLevel] and moves at most one step
// per graded review. NextReview is nil until scheduling kicks in and
// a nil NextReview means the word is always due. Scheduling fields
// (Level, ReviewCount, LastReviewed, NextReview) are mutated only by
// the spaced repetition transition; everything else is metadata.
type MasteryRecord struct {
	ID            int64      `json:"id" db:"id"`
	UserID        int64      `json:"user_id" db:"user_id"`
	WordID        int64      `json:"word_id" db:"word_id"`
	Level         int        `json:"level" db:"level"`
	ReviewCount   int        `json:"review_count" db:"review_count"`
	LastReviewed  *time.Time `json:"last_reviewed" db:"last_reviewed"`
	NextReview    *time.Time `json:"next_review" db:"next_review"`
	IsFavorite    bool       `json:"is_favorite" db:"is_favorite"`
	Notes         string     `json:"notes" db:"notes"`
	Source        string     `json:"source" db:"source"`
	SourceDetails string     `json:"source_details" db:"source_details"`
	CreatedAt     time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at" db:"updated_at"`
}
