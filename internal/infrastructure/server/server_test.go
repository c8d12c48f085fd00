package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sirupsen/logrus"

	"github.com/eslsoft/sentnet/internal/adapter/api"
	"github.com/eslsoft/sentnet/internal/infrastructure/config"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	s := NewServer(&config.Config{}, logger)
	srv := httptest.NewServer(s.httpServer.Handler)
	t.Cleanup(srv.Close)
	return srv
}

func TestRandomWord_ReturnsValidPayload(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/api/words/random")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	var payload wordPayload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if payload.ID == 0 || payload.Word == "" || payload.Definition == "" {
		t.Fatalf("incomplete word payload: %+v", payload)
	}
}

func TestCheckSentence_ScoresByLengthAndUsage(t *testing.T) {
	srv := newTestServer(t)

	cases := []struct {
		sentence string
		want     float64
	}{
		{"Something unrelated entirely.", 2.0},
		{"Fame is ephemeral.", 5.5},
		{"Fame is ephemeral and fades so quickly.", 7.0},
		{"Fame is ephemeral, fading long before anyone expects it to disappear.", 8.5},
	}
	for _, tc := range cases {
		result := check(t, srv, checkPayload{WordID: 3, Sentence: tc.sentence})
		if result.Score != tc.want {
			t.Fatalf("%q: score = %v, want %v", tc.sentence, result.Score, tc.want)
		}
		if result.Suggestion == "" {
			t.Fatalf("%q: expected a suggestion", tc.sentence)
		}
	}
}

func TestCheckSentence_EmptySentenceRejected(t *testing.T) {
	srv := newTestServer(t)

	body, _ := json.Marshal(checkPayload{WordID: 3, Sentence: "   "})
	resp, err := http.Post(srv.URL+"/api/sentences/check", "application/json", bytes.NewReader(body))
	if err != nil {
		t.Fatalf("post: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	var failure errorResult
	if err := json.NewDecoder(resp.Body).Decode(&failure); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if failure.Message == "" {
		t.Fatal("expected an error message")
	}
}

func TestCheckSentence_UnknownWordRejected(t *testing.T) {
	srv := newTestServer(t)

	body, _ := json.Marshal(checkPayload{WordID: 9999, Sentence: "whatever"})
	resp, err := http.Post(srv.URL+"/api/sentences/check", "application/json", bytes.NewReader(body))
	if err != nil {
		t.Fatalf("post: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("status = %d", resp.StatusCode)
	}
}

// The client adapter and the local server speak the same wire format.
func TestClientAgainstLocalServer(t *testing.T) {
	srv := newTestServer(t)
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)

	client := api.NewClient(srv.URL, logger)
	ctx := context.Background()

	word, err := client.FetchWord(ctx)
	if err != nil {
		t.Fatalf("fetch word: %v", err)
	}
	if word.Text == "" {
		t.Fatalf("empty word: %+v", word)
	}

	eval, err := client.ValidateSentence(ctx, word.ID, "The word "+word.Text+" fits neatly into this practice sentence.")
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if eval.Score <= 0 {
		t.Fatalf("expected positive score, got %v", eval.Score)
	}
}

func check(t *testing.T, srv *httptest.Server, payload checkPayload) checkResult {
	t.Helper()
	body, _ := json.Marshal(payload)
	resp, err := http.Post(srv.URL+"/api/sentences/check", "application/json", bytes.NewReader(body))
	if err != nil {
		t.Fatalf("post: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	var result checkResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		t.Fatalf("decode: %v", err)
	}
	return result
}
