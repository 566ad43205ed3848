package practice

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/example/vocabengine/pkg/models"
)

// Mode selects which question archetypes a session draws from.
type Mode string

const (
	// ModeMixed rotates through all archetypes.
	ModeMixed Mode = "mixed"
	// ModeMultipleChoice asks for the meaning among four options.
	ModeMultipleChoice Mode = "multiple-choice"
	// ModeTyping shows the meaning and asks the learner to type the word.
	ModeTyping Mode = "typing"
	// ModeFillBlank blanks the word out of its example sentence.
	ModeFillBlank Mode = "fill-blank"
)

// QuestionType is the archetype of a single question.
type QuestionType string

const (
	MultipleChoice QuestionType = "multiple-choice"
	Typing         QuestionType = "typing"
	FillBlank      QuestionType = "fill-blank"
)

// distractorCount is the number of wrong options in a multiple-choice
// question.
const distractorCount = 3

// Question is one drill item bound to a vocabulary word.
type Question struct {
	Word     models.Word
	Type     QuestionType
	Prompt   string
	Options  []string // multiple-choice only
	Sentence string   // fill-blank only
	Answer   string   // expected answer, compared case-insensitively
}

// WordSource supplies words for question generation. Implemented by
// the content layer; sampling order is expected to be random.
type WordSource interface {
	SampleWords(count int, filter models.WordFilter) ([]models.Word, error)
}

// buildQuestions samples words and turns them into questions. The
// result length is min(count, available). Distractor meanings prefer
// words of the same CEFR band before falling back to the whole pool.
func buildQuestions(src WordSource, count int, filter models.WordFilter, mode Mode, rnd *rand.Rand) ([]Question, error) {
	words, err := src.SampleWords(count, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to sample words: %w", err)
	}
	if len(words) == 0 {
		return nil, nil
	}
	if len(words) > count {
		words = words[:count]
	}

	// A wider unfiltered pool feeds multiple-choice distractors.
	pool, err := src.SampleWords((count+1)*(distractorCount+1), models.WordFilter{})
	if err != nil {
		return nil, fmt.Errorf("failed to sample distractor pool: %w", err)
	}

	questions := make([]Question, 0, len(words))
	for i, word := range words {
		qt := questionTypeFor(mode, i, word, rnd)
		questions = append(questions, makeQuestion(word, qt, pool, rnd))
	}
	return questions, nil
}

func questionTypeFor(mode Mode, index int, word models.Word, rnd *rand.Rand) QuestionType {
	switch mode {
	case ModeMultipleChoice:
		return MultipleChoice
	case ModeTyping:
		return Typing
	case ModeFillBlank:
		if word.Example != "" {
			return FillBlank
		}
		return Typing
	default:
		types := []QuestionType{MultipleChoice, Typing}
		if word.Example != "" {
			types = append(types, FillBlank)
		}
		return types[rnd.Intn(len(types))]
	}
}

func makeQuestion(word models.Word, qt QuestionType, pool []models.Word, rnd *rand.Rand) Question {
	q := Question{Word: word, Type: qt}

	switch qt {
	case MultipleChoice:
		q.Prompt = word.Word
		q.Answer = word.Meaning
		q.Options = buildOptions(word, pool, rnd)
	case FillBlank:
		q.Prompt = word.Meaning
		q.Answer = word.Word
		q.Sentence = blankOutWord(word.Example, word.Word)
	default: // Typing
		q.Prompt = word.Meaning
		q.Answer = word.Word
	}
	return q
}

// buildOptions collects distractor meanings and shuffles them in with
// the correct one. Same-band words come first so the wrong answers
// feel plausible.
func buildOptions(word models.Word, pool []models.Word, rnd *rand.Rand) []string {
	distractors := make([]string, 0, distractorCount)
	seen := map[string]bool{strings.ToLower(word.Meaning): true}

	add := func(candidates []models.Word) {
		for _, w := range candidates {
			if len(distractors) >= distractorCount {
				return
			}
			if w.ID == word.ID || w.Meaning == "" {
				continue
			}
			key := strings.ToLower(w.Meaning)
			if seen[key] {
				continue
			}
			seen[key] = true
			distractors = append(distractors, w.Meaning)
		}
	}

	var sameBand, others []models.Word
	for _, w := range pool {
		if w.CEFR == word.CEFR {
			sameBand = append(sameBand, w)
		} else {
			others = append(others, w)
		}
	}
	add(sameBand)
	add(others)

	options := append(distractors, word.Meaning)
	rnd.Shuffle(len(options), func(i, j int) {
		options[i], options[j] = options[j], options[i]
	})
	return options
}

// blankOutWord replaces the first case-insensitive occurrence of the
// word in the sentence with underscores. If the word never appears,
// the blank is appended so the question stays answerable.
func blankOutWord(sentence, word string) string {
	const blank = "_______"

	idx := strings.Index(strings.ToLower(sentence), strings.ToLower(word))
	if idx < 0 {
		return sentence + " " + blank
	}
	return sentence[:idx] + blank + sentence[idx+len(word):]
}
