package database

import (
	"fmt"
	"strings"

	"github.com/example/vocabengine/pkg/models"
)

// RecordRepository handles database operations for mastery records.
// It backs the notebook store's persister.
type RecordRepository struct{}

// NewRecordRepository creates a new repository instance
func NewRecordRepository() *RecordRepository {
	return &RecordRepository{}
}

// LoadRecords returns all mastery records for a user
func (r *RecordRepository) LoadRecords(userID int64) ([]models.MasteryRecord, error) {
	var records []models.MasteryRecord

	query := "SELECT * FROM mastery_records WHERE user_id = ? ORDER BY created_at"
	if DB.DriverName() == "postgres" {
		query = strings.Replace(query, "?", "$1", -1)
	}

	err := DB.Select(&records, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load mastery records: %v", err)
	}
	return records, nil
}

// SaveRecord creates or updates the record for (user, word)
func (r *RecordRepository) SaveRecord(userID int64, rec models.MasteryRecord) error {
	if DB.DriverName() == "postgres" {
		query := `
			INSERT INTO mastery_records (
				user_id, word_id, level, review_count, last_reviewed, next_review,
				is_favorite, notes, source, source_details
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
			ON CONFLICT (user_id, word_id) DO UPDATE SET
				level = EXCLUDED.level,
				review_count = EXCLUDED.review_count,
				last_reviewed = EXCLUDED.last_reviewed,
				next_review = EXCLUDED.next_review,
				is_favorite = EXCLUDED.is_favorite,
				notes = EXCLUDED.notes,
				source = EXCLUDED.source,
				source_details = EXCLUDED.source_details,
				updated_at = NOW()
		`
		_, err := DB.Exec(
			query,
			userID,
			rec.WordID,
			rec.Level,
			rec.ReviewCount,
			rec.LastReviewed,
			rec.NextReview,
			rec.IsFavorite,
			rec.Notes,
			rec.Source,
			rec.SourceDetails,
		)
		if err != nil {
			return fmt.Errorf("failed to save mastery record: %v", err)
		}
		return nil
	}

	// SQLite path
	query := `
		INSERT INTO mastery_records (
			user_id, word_id, level, review_count, last_reviewed, next_review,
			is_favorite, notes, source, source_details, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
		ON CONFLICT (user_id, word_id) DO UPDATE SET
			level = excluded.level,
			review_count = excluded.review_count,
			last_reviewed = excluded.last_reviewed,
			next_review = excluded.next_review,
			is_favorite = excluded.is_favorite,
			notes = excluded.notes,
			source = excluded.source,
			source_details = excluded.source_details,
			updated_at = CURRENT_TIMESTAMP
	`
	_, err := DB.Exec(
		query,
		userID,
		rec.WordID,
		rec.Level,
		rec.ReviewCount,
		rec.LastReviewed,
		rec.NextReview,
		rec.IsFavorite,
		rec.Notes,
		rec.Source,
		rec.SourceDetails,
	)
	if err != nil {
		return fmt.Errorf("failed to save mastery record: %v", err)
	}
	return nil
}

// DeleteRecord removes the record for (user, word)
func (r *RecordRepository) DeleteRecord(userID, wordID int64) error {
	query := "DELETE FROM mastery_records WHERE user_id = ? AND word_id = ?"
	if DB.DriverName() == "postgres" {
		query = strings.Replace(query, "?", "$1", 1)
		query = strings.Replace(query, "?", "$2", 1)
	}

	_, err := DB.Exec(query, userID, wordID)
	if err != nil {
		return fmt.Errorf("failed to delete mastery record: %v", err)
	}
	return nil
}

// ClearRecords removes all records for a user
func (r *RecordRepository) ClearRecords(userID int64) error {
	query := "DELETE FROM mastery_records WHERE user_id = ?"
	if DB.DriverName() == "postgres" {
		query = strings.Replace(query, "?", "$1", -1)
	}

	_, err := DB.Exec(query, userID)
	if err != nil {
		return fmt.Errorf("failed to clear mastery records: %v", err)
	}
	return nil
}

// DueCountsByUser returns, for every user with due words, how many
// records are due right now. Used by the review reminder job.
func (r *RecordRepository) DueCountsByUser() (map[int64]int, error) {
	var query string
	if DB.DriverName() == "postgres" {
		query = `
			SELECT user_id, COUNT(*) AS due
			FROM mastery_records
			WHERE next_review IS NULL OR next_review <= NOW()
			GROUP BY user_id
		`
	} else {
		query = `
			SELECT user_id, COUNT(*) AS due
			FROM mastery_records
			WHERE next_review IS NULL OR next_review <= datetime('now')
			GROUP BY user_id
		`
	}

	rows, err := DB.Queryx(query)
	if err != nil {
		return nil, fmt.Errorf("failed to count due records: %v", err)
	}
	defer rows.Close()

	counts := make(map[int64]int)
	for rows.Next() {
		var userID int64
		var due int
		if err := rows.Scan(&userID, &due); err != nil {
			return nil, fmt.Errorf("failed to scan due count: %v", err)
		}
		counts[userID] = due
	}
	return counts, rows.Err()
}
