package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/eslsoft/sentnet/internal/entity"
	"github.com/eslsoft/sentnet/internal/repository"
)

// User-facing messages surfaced through round state.
const (
	msgWordFetchFailed = "Could not load a new word. Check your connection and try again."
	msgSubmitFailed    = "Could not score your sentence. Please try again."
)

// SessionUsecase is the single authority over round state. Every operation
// returns the resulting state snapshot.
type SessionUsecase interface {
	// LoadNewWord fetches a fresh word and resets the round. On failure the
	// current word is cleared so no stale word can be acted on.
	LoadNewWord(ctx context.Context) entity.RoundState
	// EditSentence stores the text verbatim. Editing a submitted round
	// reopens it, zeroing score and feedback but preserving the text.
	EditSentence(text string) entity.RoundState
	// SubmitSentence scores the trimmed sentence. A missing word or blank
	// trimmed sentence is a silent no-op.
	SubmitSentence(ctx context.Context) entity.RoundState
	// AdvanceToNextWord clears any error and loads the next word.
	AdvanceToNextWord(ctx context.Context) entity.RoundState
	// Snapshot returns the current round state.
	Snapshot() entity.RoundState
}

type sessionUsecase struct {
	words   repository.WordService
	history repository.HistoryRepository
	logger  *logrus.Logger
	now     func() time.Time

	mu    sync.Mutex
	state entity.RoundState
	// loadSeq tags each issued load; only the most recently issued load may
	// apply its result. wordSeq bumps whenever the current word is replaced
	// or cleared, invalidating in-flight submissions for the old word.
	loadSeq uint64
	wordSeq uint64
}

// NewSessionUsecase creates a session controller in the Loading-ready state.
func NewSessionUsecase(words repository.WordService, history repository.HistoryRepository, logger *logrus.Logger) SessionUsecase {
	return &sessionUsecase{
		words:   words,
		history: history,
		logger:  logger,
		now:     time.Now,
		state:   entity.RoundState{Loading: true},
	}
}

func (s *sessionUsecase) LoadNewWord(ctx context.Context) entity.RoundState {
	s.mu.Lock()
	s.loadSeq++
	seq := s.loadSeq
	s.state.Loading = true
	s.state.Err = ""
	s.mu.Unlock()

	word, err := s.words.FetchWord(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()

	if seq != s.loadSeq {
		// A newer load was issued while this one was in flight.
		s.logger.Debugf("discarding stale word load (seq %d < %d)", seq, s.loadSeq)
		return s.state
	}

	s.wordSeq++
	if err != nil {
		s.logger.Warnf("word fetch failed: %v", err)
		s.state = entity.RoundState{Err: msgWordFetchFailed}
		return s.state
	}

	s.state = entity.RoundState{Word: word}
	return s.state
}

func (s *sessionUsecase) EditSentence(text string) entity.RoundState {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.Sentence = text
	if s.state.Submitted {
		s.state.Submitted = false
		s.state.Score = 0
		s.state.Band = entity.BandNone
	}
	// Editing is starting fresh: drop feedback and any error annotation.
	s.state.Feedback = ""
	s.state.Corrected = ""
	s.state.Err = ""
	return s.state
}

func (s *sessionUsecase) SubmitSentence(ctx context.Context) entity.RoundState {
	s.mu.Lock()
	if s.state.Word == nil || s.state.Submitting {
		defer s.mu.Unlock()
		return s.state
	}
	trimmed := strings.TrimSpace(s.state.Sentence)
	if trimmed == "" {
		defer s.mu.Unlock()
		return s.state
	}

	s.state.Submitting = true
	s.state.Err = ""
	word := *s.state.Word
	wordSeq := s.wordSeq
	s.mu.Unlock()

	eval, err := s.words.ValidateSentence(ctx, word.ID, trimmed)

	s.mu.Lock()
	defer s.mu.Unlock()

	if wordSeq != s.wordSeq {
		// The round moved on while the submission was in flight.
		s.logger.Debugf("discarding stale submission for word %q", word.Text)
		return s.state
	}

	s.state.Submitting = false
	if err != nil {
		s.state.Err = submitErrorMessage(err)
		s.logger.Warnf("sentence validation failed: %v", err)
		return s.state
	}

	s.state.Score = eval.Score
	s.state.Band = entity.BandForScore(eval.Score)
	s.state.Feedback = eval.Suggestion
	s.state.Corrected = eval.CorrectedSentence
	s.state.Submitted = true

	difficulty := word.Difficulty
	if eval.Level != entity.DifficultyUnspecified {
		difficulty = eval.Level
	}
	entry := entity.HistoryEntry{
		Word:              word.Text,
		Sentence:          trimmed,
		Score:             eval.Score,
		Difficulty:        difficulty,
		Timestamp:         s.now(),
		Suggestion:        eval.Suggestion,
		CorrectedSentence: eval.CorrectedSentence,
	}
	if err := s.history.Append(ctx, entry); err != nil {
		// The round already succeeded; a persistence hiccup must not undo it.
		s.logger.Warnf("history append failed: %v", err)
	}

	return s.state
}

func (s *sessionUsecase) AdvanceToNextWord(ctx context.Context) entity.RoundState {
	s.mu.Lock()
	s.state.Err = ""
	s.mu.Unlock()

	return s.LoadNewWord(ctx)
}

func (s *sessionUsecase) Snapshot() entity.RoundState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// submitErrorMessage converts a validation failure into the user-facing
// string, preferring a server-supplied message over the generic fallback.
func submitErrorMessage(err error) string {
	var svcErr *entity.ServiceError
	if errors.As(err, &svcErr) {
		if svcErr.Message != "" {
			return svcErr.Message
		}
		return fmt.Sprintf("The scoring service returned an error (HTTP %d). Please try again.", svcErr.StatusCode)
	}
	return msgSubmitFailed
}
