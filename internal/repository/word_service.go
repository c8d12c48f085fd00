package repository

import (
	"context"

	"github.com/eslsoft/sentnet/internal/entity"
)

// WordService is the remote collaborator that picks words and scores sentences.
type WordService interface {
	// FetchWord returns a fresh word, bypassing any intermediate caches.
	FetchWord(ctx context.Context) (*entity.Word, error)
	// ValidateSentence submits a candidate sentence for the given word and
	// returns the service's evaluation. Failures carrying a server-supplied
	// message are returned as *entity.ServiceError.
	ValidateSentence(ctx context.Context, wordID int64, sentence string) (*entity.Evaluation, error)
}
