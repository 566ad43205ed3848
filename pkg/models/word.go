package models

import "time"

// Word represents a vocabulary word served by the content layer.
// The engine only reads words; authoring and storage belong to the
// content collaborator.
type Word struct {
	ID            int64     `json:"id" db:"id"`
	Word          string    `json:"word" db:"word"`
	Meaning       string    `json:"meaning" db:"meaning"`
	MeaningVi     string    `json:"meaning_vi" db:"meaning_vi"`
	PartOfSpeech  string    `json:"pos" db:"pos"`
	Pronunciation string    `json:"pronunciation" db:"pronunciation"`
	Example       string    `json:"example" db:"example"`
	ExampleVi     string    `json:"example_vi" db:"example_vi"`
	CEFR          Band      `json:"cefr" db:"cefr"`
	AudioURL      string    `json:"audio_url" db:"audio_url"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time `json:"updated_at" db:"updated_at"`
}

// WordFilter narrows word sampling for practice sessions.
// Zero values mean "no restriction".
type WordFilter struct {
	Band         Band   `json:"band"`
	PartOfSpeech string `json:"pos"`
}

// Matches reports whether the word satisfies the filter.
func (f WordFilter) Matches(w Word) bool {
	if f.Band != "" && w.CEFR != f.Band {
		return false
	}
	if f.PartOfSpeech != "" && w.PartOfSpeech != f.PartOfSpeech {
		return false
	}
	return true
}
