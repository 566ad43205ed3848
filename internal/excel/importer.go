package excel

import (
	"database/sql"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/example/vocabengine/internal/database"
	"github.com/example/vocabengine/pkg/models"
	"github.com/xuri/excelize/v2"
)

// ImportConfig defines the import configuration
type ImportConfig struct {
	FilePath            string // Path to the Excel or CSV file
	WordColumn          string // Column with the word
	MeaningColumn       string // Column with the English meaning
	MeaningViColumn     string // Column with the Vietnamese meaning
	PosColumn           string // Column with the part of speech
	PronunciationColumn string // Column with the IPA pronunciation
	ExampleColumn       string // Column with the example sentence
	CEFRColumn          string // Column with the CEFR band
	SheetName           string // Name of the sheet to import
	StartRow            int    // The row to start importing from (1-based index)
}

// DefaultImportConfig returns the default import configuration
func DefaultImportConfig() ImportConfig {
	return ImportConfig{
		WordColumn:          "A",
		MeaningColumn:       "B",
		MeaningViColumn:     "C",
		PosColumn:           "D",
		PronunciationColumn: "E",
		ExampleColumn:       "F",
		CEFRColumn:          "G",
		SheetName:           "Sheet1",
		StartRow:            2, // By default, start from the second row (skip header)
	}
}

// ImportResult holds the result of an import operation
type ImportResult struct {
	TotalProcessed int
	Created        int
	Updated        int
	Skipped        int
	Errors         []string
}

// ImportWords imports words from an Excel or CSV file
func ImportWords(config ImportConfig) (*ImportResult, error) {
	ext := strings.ToLower(filepath.Ext(config.FilePath))

	if ext == ".csv" {
		return importFromCSV(config)
	}

	return importFromExcel(config)
}

// importFromExcel imports words from an Excel file
func importFromExcel(config ImportConfig) (*ImportResult, error) {
	f, err := excelize.OpenFile(config.FilePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows(config.SheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to get rows: %v", err)
	}

	wordRepo := database.NewWordRepository()
	result := &ImportResult{
		Errors: make([]string, 0),
	}

	for i, row := range rows {
		// Skip header rows
		if i < config.StartRow-1 {
			continue
		}

		result.TotalProcessed++

		if err := processRow(row, config, wordRepo, result); err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("Row %d: %v", i+1, err))
		}
	}

	return result, nil
}

// importFromCSV imports words from a CSV file with the same column
// layout as the Excel sheet
func importFromCSV(config ImportConfig) (*ImportResult, error) {
	file, err := os.Open(config.FilePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file: %v", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1 // Allow variable number of fields
	reader.LazyQuotes = true

	wordRepo := database.NewWordRepository()
	result := &ImportResult{
		Errors: make([]string, 0),
	}

	rowNum := 0
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("error reading CSV: %v", err)
		}

		rowNum++

		// Skip header rows
		if rowNum < config.StartRow {
			continue
		}

		result.TotalProcessed++

		if err := processRow(row, config, wordRepo, result); err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("Row %d: %v", rowNum, err))
		}
	}

	return result, nil
}

// processRow maps one row's cells onto a word and creates or updates
// it
func processRow(row []string, config ImportConfig, wordRepo *database.WordRepository, result *ImportResult) error {
	word := cellValue(row, config.WordColumn)
	meaning := cellValue(row, config.MeaningColumn)
	meaningVi := cellValue(row, config.MeaningViColumn)
	pos := cellValue(row, config.PosColumn)
	pronunciation := cellValue(row, config.PronunciationColumn)
	example := cellValue(row, config.ExampleColumn)
	cefr := models.Band(strings.ToUpper(cellValue(row, config.CEFRColumn)))

	if word == "" {
		result.Skipped++
		return nil
	}
	if meaning == "" {
		return fmt.Errorf("meaning cannot be empty")
	}
	if cefr != "" && !cefr.Valid() {
		return fmt.Errorf("invalid CEFR band %q", cefr)
	}

	existing, err := wordRepo.GetByWordAndPos(word, pos)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("failed to look up existing word: %v", err)
	}

	if existing != nil {
		existing.Meaning = meaning
		existing.MeaningVi = meaningVi
		existing.Pronunciation = pronunciation
		existing.Example = example
		existing.CEFR = cefr

		if err := wordRepo.Update(existing); err != nil {
			return fmt.Errorf("failed to update word: %v", err)
		}
		result.Updated++
		return nil
	}

	newWord := &models.Word{
		Word:          word,
		Meaning:       meaning,
		MeaningVi:     meaningVi,
		PartOfSpeech:  pos,
		Pronunciation: pronunciation,
		Example:       example,
		CEFR:          cefr,
	}
	if err := wordRepo.Create(newWord); err != nil {
		return fmt.Errorf("failed to create word: %v", err)
	}
	result.Created++

	return nil
}

// cellValue returns the trimmed cell at the given Excel column
// letter, or "" when the row is too short
func cellValue(row []string, column string) string {
	if column == "" {
		return ""
	}
	idx := columnToIndex(column)
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// columnToIndex converts an Excel column letter to a zero-based index
func columnToIndex(column string) int {
	column = strings.ToUpper(column)
	index := 0
	for i := 0; i < len(column); i++ {
		index = index*26 + int(column[i]-'A'+1)
	}
	return index - 1
}
