package entity

import "strings"

// Difficulty represents the difficulty tier assigned to a word.
type Difficulty string

const (
	DifficultyUnspecified  Difficulty = ""
	DifficultyBeginner     Difficulty = "beginner"
	DifficultyIntermediate Difficulty = "intermediate"
	DifficultyAdvanced     Difficulty = "advanced"
)

// Word is one vocabulary item served by the remote word service.
// Immutable once fetched; the session owns it for the duration of one round.
type Word struct {
	ID         int64      `json:"id"`
	Text       string     `json:"word"`
	Definition string     `json:"definition"`
	Difficulty Difficulty `json:"difficulty_level"`
}

// ParseDifficulty converts an arbitrary string into a supported Difficulty value.
func ParseDifficulty(level string) Difficulty {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "beginner":
		return DifficultyBeginner
	case "intermediate":
		return DifficultyIntermediate
	case "advanced":
		return DifficultyAdvanced
	default:
		return DifficultyUnspecified
	}
}

// NormalizeDifficulty ensures the difficulty falls back to a supported value
// (defaults to Beginner).
func NormalizeDifficulty(d Difficulty) Difficulty {
	switch d {
	case DifficultyBeginner, DifficultyIntermediate, DifficultyAdvanced:
		return d
	default:
		return DifficultyBeginner
	}
}

// Code returns the lowercase difficulty code (without defaulting).
func (d Difficulty) Code() string {
	return strings.TrimSpace(string(d))
}
