package database

import (
	"fmt"
	"strings"

	"github.com/example/vocabengine/pkg/models"
)

// WordRepository handles database operations for words. It is the
// content collaborator: the practice and stats packages read words
// through it.
type WordRepository struct{}

// NewWordRepository creates a new repository instance
func NewWordRepository() *WordRepository {
	return &WordRepository{}
}

// GetAll returns all words
func (r *WordRepository) GetAll() ([]models.Word, error) {
	var words []models.Word
	err := DB.Select(&words, "SELECT * FROM words ORDER BY word")
	if err != nil {
		return nil, fmt.Errorf("failed to get words: %v", err)
	}
	return words, nil
}

// GetByID returns a word by ID
func (r *WordRepository) GetByID(id int64) (*models.Word, error) {
	var word models.Word

	query := "SELECT * FROM words WHERE id = ?"
	if DB.DriverName() == "postgres" {
		query = strings.Replace(query, "?", "$1", -1)
	}

	err := DB.Get(&word, query, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get word by ID: %v", err)
	}
	return &word, nil
}

// GetByBand returns words for a specific CEFR band
func (r *WordRepository) GetByBand(band models.Band) ([]models.Word, error) {
	var words []models.Word

	query := "SELECT * FROM words WHERE cefr = ? ORDER BY word"
	if DB.DriverName() == "postgres" {
		query = strings.Replace(query, "?", "$1", -1)
	}

	err := DB.Select(&words, query, string(band))
	if err != nil {
		return nil, fmt.Errorf("failed to get words by band: %v", err)
	}
	return words, nil
}

// SampleWords returns up to count random words matching the filter.
// Implements the word source the practice engine samples from.
func (r *WordRepository) SampleWords(count int, filter models.WordFilter) ([]models.Word, error) {
	var words []models.Word

	where := ""
	args := []interface{}{}
	if filter.Band != "" {
		where += " AND cefr = ?"
		args = append(args, string(filter.Band))
	}
	if filter.PartOfSpeech != "" {
		where += " AND pos = ?"
		args = append(args, filter.PartOfSpeech)
	}
	args = append(args, count)

	query := "SELECT * FROM words WHERE 1=1" + where + " ORDER BY RANDOM() LIMIT ?"
	if DB.DriverName() == "postgres" {
		for i := 1; strings.Contains(query, "?"); i++ {
			query = strings.Replace(query, "?", fmt.Sprintf("$%d", i), 1)
		}
	}

	err := DB.Select(&words, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to sample words: %v", err)
	}
	return words, nil
}

// Create inserts a new word
func (r *WordRepository) Create(word *models.Word) error {
	if DB.DriverName() == "postgres" {
		query := `
			INSERT INTO words (word, meaning, meaning_vi, pos, pronunciation, example, example_vi, cefr, audio_url)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
			RETURNING id, created_at, updated_at
		`
		return DB.QueryRow(
			query,
			word.Word,
			word.Meaning,
			word.MeaningVi,
			word.PartOfSpeech,
			word.Pronunciation,
			word.Example,
			word.ExampleVi,
			string(word.CEFR),
			word.AudioURL,
		).Scan(&word.ID, &word.CreatedAt, &word.UpdatedAt)
	}

	// SQLite path (no RETURNING)
	query := `
		INSERT INTO words (word, meaning, meaning_vi, pos, pronunciation, example, example_vi, cefr, audio_url, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
	`
	result, err := DB.Exec(
		query,
		word.Word,
		word.Meaning,
		word.MeaningVi,
		word.PartOfSpeech,
		word.Pronunciation,
		word.Example,
		word.ExampleVi,
		string(word.CEFR),
		word.AudioURL,
	)
	if err != nil {
		return fmt.Errorf("failed to create word: %v", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert ID: %v", err)
	}
	word.ID = id

	err = DB.QueryRow("SELECT created_at, updated_at FROM words WHERE id = ?", word.ID).
		Scan(&word.CreatedAt, &word.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to get timestamps: %v", err)
	}

	return nil
}

// Update modifies an existing word
func (r *WordRepository) Update(word *models.Word) error {
	if DB.DriverName() == "postgres" {
		query := `
			UPDATE words SET
				word = $1,
				meaning = $2,
				meaning_vi = $3,
				pos = $4,
				pronunciation = $5,
				example = $6,
				example_vi = $7,
				cefr = $8,
				audio_url = $9,
				updated_at = NOW()
			WHERE id = $10
			RETURNING updated_at
		`
		return DB.QueryRow(
			query,
			word.Word,
			word.Meaning,
			word.MeaningVi,
			word.PartOfSpeech,
			word.Pronunciation,
			word.Example,
			word.ExampleVi,
			string(word.CEFR),
			word.AudioURL,
			word.ID,
		).Scan(&word.UpdatedAt)
	}

	query := `
		UPDATE words SET
			word = ?,
			meaning = ?,
			meaning_vi = ?,
			pos = ?,
			pronunciation = ?,
			example = ?,
			example_vi = ?,
			cefr = ?,
			audio_url = ?,
			updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`
	_, err := DB.Exec(
		query,
		word.Word,
		word.Meaning,
		word.MeaningVi,
		word.PartOfSpeech,
		word.Pronunciation,
		word.Example,
		word.ExampleVi,
		string(word.CEFR),
		word.AudioURL,
		word.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update word: %v", err)
	}

	err = DB.QueryRow("SELECT updated_at FROM words WHERE id = ?", word.ID).Scan(&word.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to get updated_at: %v", err)
	}

	return nil
}

// Delete removes a word
func (r *WordRepository) Delete(id int64) error {
	query := "DELETE FROM words WHERE id = ?"
	if DB.DriverName() == "postgres" {
		query = strings.Replace(query, "?", "$1", -1)
	}

	_, err := DB.Exec(query, id)
	if err != nil {
		return fmt.Errorf("failed to delete word: %v", err)
	}

	return nil
}

// Search searches for words by pattern matching on the word or its
// meanings
func (r *WordRepository) Search(query string) ([]models.Word, error) {
	var words []models.Word
	pattern := "%" + query + "%"

	if DB.DriverName() == "postgres" {
		sqlQuery := `
			SELECT * FROM words
			WHERE word ILIKE $1 OR meaning ILIKE $1 OR meaning_vi ILIKE $1
			ORDER BY word
		`
		err := DB.Select(&words, sqlQuery, pattern)
		if err != nil {
			return nil, fmt.Errorf("failed to search words: %v", err)
		}
	} else {
		sqlQuery := `
			SELECT * FROM words
			WHERE LOWER(word) LIKE LOWER(?) OR LOWER(meaning) LIKE LOWER(?) OR LOWER(meaning_vi) LIKE LOWER(?)
			ORDER BY word
		`
		err := DB.Select(&words, sqlQuery, pattern, pattern, pattern)
		if err != nil {
			return nil, fmt.Errorf("failed to search words: %v", err)
		}
	}

	return words, nil
}

// GetByWordAndPos returns the word with the exact spelling and part
// of speech, used by the importer to detect duplicates.
func (r *WordRepository) GetByWordAndPos(word, pos string) (*models.Word, error) {
	var found models.Word

	query := "SELECT * FROM words WHERE word = ? AND pos = ?"
	if DB.DriverName() == "postgres" {
		query = strings.Replace(query, "?", "$1", 1)
		query = strings.Replace(query, "?", "$2", 1)
	}

	err := DB.Get(&found, query, word, pos)
	if err != nil {
		return nil, err
	}
	return &found, nil
}
