package entity

// Band is the qualitative tier used to color score feedback.
type Band string

const (
	BandNone    Band = ""
	BandSuccess Band = "success"
	BandWarning Band = "warning"
	BandDanger  Band = "danger"
)

// Score thresholds are inclusive lower bounds of their bands.
const (
	successThreshold = 8.0
	warningThreshold = 6.0
)

// BandForScore maps a numeric score onto its feedback band.
func BandForScore(score float64) Band {
	switch {
	case score >= successThreshold:
		return BandSuccess
	case score >= warningThreshold:
		return BandWarning
	default:
		return BandDanger
	}
}

// Evaluation is the scoring service's verdict on a submitted sentence.
type Evaluation struct {
	Score             float64
	Suggestion        string
	Level             Difficulty
	CorrectedSentence string
}

// RoundState is the full observable state of one practice round. Values are
// copied out of the session, so a snapshot stays stable while rendering.
type RoundState struct {
	Word       *Word
	Sentence   string
	Score      float64
	Band       Band
	Feedback   string
	Corrected  string
	Submitted  bool
	Submitting bool
	Loading    bool
	Err        string
}

// RoundPhase is the coarse position of a round in its lifecycle.
type RoundPhase int

const (
	PhaseLoading RoundPhase = iota
	PhaseErrored
	PhaseSubmitting
	PhaseSubmitted
	PhaseReady
)

// Phase derives the round phase from the state flags. A fetch error with no
// word loaded is terminal for the round; a submit error keeps the round open.
func (s RoundState) Phase() RoundPhase {
	switch {
	case s.Loading:
		return PhaseLoading
	case s.Word == nil:
		return PhaseErrored
	case s.Submitting:
		return PhaseSubmitting
	case s.Submitted:
		return PhaseSubmitted
	default:
		return PhaseReady
	}
}
