package database

import (
	"fmt"
	"strings"

	"github.com/example/vocabengine/pkg/models"
)

// PracticeResultRepository handles database operations for practice
// session history
type PracticeResultRepository struct{}

// NewPracticeResultRepository creates a new repository instance
func NewPracticeResultRepository() *PracticeResultRepository {
	return &PracticeResultRepository{}
}

// Create inserts a finished session's result
func (r *PracticeResultRepository) Create(result *models.PracticeResult) error {
	if DB.DriverName() == "postgres" {
		query := `
			INSERT INTO practice_results (user_id, mode, total_questions, correct_answers, score, started_at, duration)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			RETURNING id, created_at
		`
		return DB.QueryRow(
			query,
			result.UserID,
			result.Mode,
			result.TotalQuestions,
			result.CorrectAnswers,
			result.Score,
			result.StartedAt,
			result.Duration,
		).Scan(&result.ID, &result.CreatedAt)
	}

	// SQLite path (no RETURNING)
	query := `
		INSERT INTO practice_results (user_id, mode, total_questions, correct_answers, score, started_at, duration, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
	`
	res, err := DB.Exec(
		query,
		result.UserID,
		result.Mode,
		result.TotalQuestions,
		result.CorrectAnswers,
		result.Score,
		result.StartedAt,
		result.Duration,
	)
	if err != nil {
		return fmt.Errorf("failed to create practice result: %v", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert ID: %v", err)
	}
	result.ID = id

	err = DB.QueryRow("SELECT created_at FROM practice_results WHERE id = ?", result.ID).
		Scan(&result.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to get created_at: %v", err)
	}

	return nil
}

// GetByUser returns a user's practice history, newest first
func (r *PracticeResultRepository) GetByUser(userID int64, limit int) ([]models.PracticeResult, error) {
	var results []models.PracticeResult

	query := "SELECT * FROM practice_results WHERE user_id = ? ORDER BY created_at DESC LIMIT ?"
	if DB.DriverName() == "postgres" {
		query = strings.Replace(query, "?", "$1", 1)
		query = strings.Replace(query, "?", "$2", 1)
	}

	err := DB.Select(&results, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get practice results: %v", err)
	}
	return results, nil
}

// AverageScore returns the user's mean score across all sessions,
// or 0 when there is no history
func (r *PracticeResultRepository) AverageScore(userID int64) (float64, error) {
	var avg float64

	query := "SELECT COALESCE(AVG(score), 0) FROM practice_results WHERE user_id = ?"
	if DB.DriverName() == "postgres" {
		query = strings.Replace(query, "?", "$1", -1)
	}

	err := DB.Get(&avg, query, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to get average score: %v", err)
	}
	return avg, nil
}
