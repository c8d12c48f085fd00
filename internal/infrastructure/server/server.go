// Package server hosts the local practice server: the same two endpoints the
// remote word service exposes, backed by a canned word bank and a placeholder
// scorer, so the client can be exercised offline.
package server

import (
	"context"
	"encoding/json"
	"math/rand"
	"net/http"
	"strings"

	"github.com/rs/cors"
	"github.com/sirupsen/logrus"

	"github.com/eslsoft/sentnet/internal/entity"
	"github.com/eslsoft/sentnet/internal/infrastructure/config"
)

// Server represents the local practice server.
type Server struct {
	config     *config.Config
	httpServer *http.Server
	logger     *logrus.Logger
	words      []entity.Word
}

// NewServer creates a new server instance.
func NewServer(cfg *config.Config, logger *logrus.Logger) *Server {
	s := &Server{
		config: cfg,
		logger: logger,
		words:  wordBank(),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/words/random", s.handleRandomWord)
	mux.HandleFunc("POST /api/sentences/check", s.handleCheckSentence)

	handler := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost},
		AllowedHeaders: []string{"Content-Type", "Cache-Control", "Pragma"},
	}).Handler(requestLogger(logger, mux))

	s.httpServer = &http.Server{
		Addr:    cfg.ServeAddr(),
		Handler: handler,
	}
	return s
}

// Start starts the HTTP server.
func (s *Server) Start() error {
	s.logger.Infof("practice server starting on %s", s.httpServer.Addr)
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down practice server...")
	return s.httpServer.Shutdown(ctx)
}

type wordPayload struct {
	ID         int64  `json:"id"`
	Word       string `json:"word"`
	Definition string `json:"definition"`
	Difficulty string `json:"difficulty_level"`
}

type checkPayload struct {
	WordID   int64  `json:"word_id"`
	Sentence string `json:"sentence"`
}

type checkResult struct {
	Score      float64 `json:"score"`
	Suggestion string  `json:"suggestion"`
	Level      string  `json:"level"`
}

type errorResult struct {
	Message string `json:"message"`
}

func (s *Server) handleRandomWord(w http.ResponseWriter, r *http.Request) {
	word := s.words[rand.Intn(len(s.words))]
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	_ = json.NewEncoder(w).Encode(wordPayload{
		ID:         word.ID,
		Word:       word.Text,
		Definition: word.Definition,
		Difficulty: word.Difficulty.Code(),
	})
}

func (s *Server) handleCheckSentence(w http.ResponseWriter, r *http.Request) {
	var payload checkPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	var word *entity.Word
	for i := range s.words {
		if s.words[i].ID == payload.WordID {
			word = &s.words[i]
			break
		}
	}
	if word == nil {
		writeError(w, http.StatusNotFound, "unknown word")
		return
	}
	if strings.TrimSpace(payload.Sentence) == "" {
		writeError(w, http.StatusUnprocessableEntity, "sentence must not be empty")
		return
	}

	score, suggestion := placeholderScore(*word, payload.Sentence)
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(checkResult{
		Score:      score,
		Suggestion: suggestion,
		Level:      word.Difficulty.Code(),
	})
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(errorResult{Message: message})
}

// placeholderScore is a crude local stand-in for the real scoring service.
// It only checks that the target word appears and that the sentence has some
// substance; real scoring lives in the remote service.
func placeholderScore(word entity.Word, sentence string) (float64, string) {
	lower := strings.ToLower(sentence)
	if !strings.Contains(lower, strings.ToLower(word.Text)) {
		return 2.0, "Your sentence should use the word \"" + word.Text + "\"."
	}

	words := len(strings.Fields(sentence))
	switch {
	case words < 4:
		return 5.5, "Try a longer sentence that shows what the word means."
	case words < 8:
		return 7.0, "Good. Add more context to make the meaning unmistakable."
	default:
		return 8.5, "Nice use of \"" + word.Text + "\" in context."
	}
}

func wordBank() []entity.Word {
	return []entity.Word{
		{ID: 1, Text: "meticulous", Definition: "showing great attention to detail; very careful and precise", Difficulty: entity.DifficultyIntermediate},
		{ID: 2, Text: "resilient", Definition: "able to recover quickly from difficult conditions", Difficulty: entity.DifficultyBeginner},
		{ID: 3, Text: "ephemeral", Definition: "lasting for a very short time", Difficulty: entity.DifficultyAdvanced},
		{ID: 4, Text: "pragmatic", Definition: "dealing with things sensibly and realistically", Difficulty: entity.DifficultyIntermediate},
		{ID: 5, Text: "ubiquitous", Definition: "present, appearing, or found everywhere", Difficulty: entity.DifficultyAdvanced},
		{ID: 6, Text: "candid", Definition: "truthful and straightforward; frank", Difficulty: entity.DifficultyBeginner},
		{ID: 7, Text: "tenacious", Definition: "holding firmly to a purpose or opinion", Difficulty: entity.DifficultyIntermediate},
		{ID: 8, Text: "obfuscate", Definition: "to make something unclear or unintelligible", Difficulty: entity.DifficultyAdvanced},
		{ID: 9, Text: "diligent", Definition: "showing steady and earnest effort in work", Difficulty: entity.DifficultyBeginner},
		{ID: 10, Text: "equivocal", Definition: "open to more than one interpretation; ambiguous", Difficulty: entity.DifficultyAdvanced},
	}
}
