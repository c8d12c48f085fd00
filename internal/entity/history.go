package entity

import "time"

// HistoryKey is the fixed storage key the history log lives under.
const HistoryKey = "wordHistory"

// HistoryEntry is one persisted record of a completed, scored attempt.
// Append-only; never mutated after creation.
type HistoryEntry struct {
	Word              string     `json:"word"`
	Sentence          string     `json:"sentence"`
	Score             float64    `json:"score"`
	Difficulty        Difficulty `json:"difficulty"`
	Timestamp         time.Time  `json:"timestamp"`
	Suggestion        string     `json:"suggestion,omitempty"`
	CorrectedSentence string     `json:"corrected_sentence,omitempty"`
}
