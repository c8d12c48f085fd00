package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sirupsen/logrus"

	"github.com/eslsoft/sentnet/internal/entity"
)

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	return logger
}

func TestFetchWord_BypassesCaches(t *testing.T) {
	var gotCacheControl, gotPragma string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/words/random" {
			t.Fatalf("unexpected path %q", r.URL.Path)
		}
		gotCacheControl = r.Header.Get("Cache-Control")
		gotPragma = r.Header.Get("Pragma")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id": 42, "word": "ephemeral", "definition": "short-lived", "difficulty_level": "Advanced"}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, testLogger())
	word, err := client.FetchWord(context.Background())
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	if gotCacheControl != "no-cache" || gotPragma != "no-cache" {
		t.Fatalf("cache bypass headers missing: %q / %q", gotCacheControl, gotPragma)
	}
	if word.ID != 42 || word.Text != "ephemeral" || word.Definition != "short-lived" {
		t.Fatalf("unexpected word: %+v", word)
	}
	if word.Difficulty != entity.DifficultyAdvanced {
		t.Fatalf("difficulty not parsed: %q", word.Difficulty)
	}
}

func TestFetchWord_NonSuccessStatusIsFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "teapot", http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, testLogger())
	if _, err := client.FetchWord(context.Background()); err == nil {
		t.Fatal("expected error for non-2xx status")
	}
}

func TestValidateSentence_CoercesStringScore(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/sentences/check" || r.Method != http.MethodPost {
			t.Fatalf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"score": "7.5", "suggestion": "add detail", "level": "intermediate", "corrected_sentence": "Fixed."}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, testLogger())
	eval, err := client.ValidateSentence(context.Background(), 1, "some sentence")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	if eval.Score != 7.5 {
		t.Fatalf("string score not coerced: %v", eval.Score)
	}
	if eval.Suggestion != "add detail" || eval.CorrectedSentence != "Fixed." {
		t.Fatalf("unexpected eval: %+v", eval)
	}
	if eval.Level != entity.DifficultyIntermediate {
		t.Fatalf("level not parsed: %q", eval.Level)
	}
}

func TestValidateSentence_MissingOrBadScoreDefaultsToZero(t *testing.T) {
	bodies := []string{
		`{"suggestion": "no score here"}`,
		`{"score": null}`,
		`{"score": "not-a-number"}`,
	}
	for _, body := range bodies {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(body))
		}))

		client := NewClient(srv.URL, testLogger())
		eval, err := client.ValidateSentence(context.Background(), 1, "x")
		srv.Close()
		if err != nil {
			t.Fatalf("body %s: unexpected err: %v", body, err)
		}
		if eval.Score != 0 {
			t.Fatalf("body %s: expected score 0, got %v", body, eval.Score)
		}
	}
}

func TestValidateSentence_ServerMessagePreferred(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"message": "service unavailable"}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, testLogger())
	_, err := client.ValidateSentence(context.Background(), 1, "x")

	var svcErr *entity.ServiceError
	if !errors.As(err, &svcErr) {
		t.Fatalf("expected ServiceError, got %v", err)
	}
	if svcErr.Message != "service unavailable" || svcErr.StatusCode != http.StatusInternalServerError {
		t.Fatalf("unexpected service error: %+v", svcErr)
	}
}

func TestValidateSentence_UnparseableFailureBodyTolerated(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte(`<html>bad gateway</html>`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, testLogger())
	_, err := client.ValidateSentence(context.Background(), 1, "x")

	var svcErr *entity.ServiceError
	if !errors.As(err, &svcErr) {
		t.Fatalf("expected ServiceError, got %v", err)
	}
	if svcErr.Message != "" || svcErr.StatusCode != http.StatusBadGateway {
		t.Fatalf("unexpected service error: %+v", svcErr)
	}
}
