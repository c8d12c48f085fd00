// Package filterexpr compiles user-supplied CEL filter expressions and
// evaluates them against history entries in memory.
package filterexpr

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/cel-go/cel"
)

// Entry is the evaluation input for one history record.
type Entry struct {
	Word        string
	Sentence    string
	Score       float64
	Difficulty  string
	SubmittedAt time.Time
}

// Predicate reports whether an entry matches a compiled filter.
type Predicate func(Entry) (bool, error)

// MatchAll accepts every entry. Returned for blank filters.
func MatchAll(Entry) (bool, error) { return true, nil }

func buildEnv() (*cel.Env, error) {
	return cel.NewEnv(
		cel.Variable("word", cel.StringType),
		cel.Variable("sentence", cel.StringType),
		cel.Variable("score", cel.DoubleType),
		cel.Variable("difficulty", cel.StringType),
		cel.Variable("submitted_at", cel.TimestampType),
	)
}

// Compile parses and type-checks a filter expression. The expression must
// evaluate to a boolean, e.g. `score >= 8.0 && difficulty == "advanced"`.
func Compile(filter string) (Predicate, error) {
	filter = strings.TrimSpace(filter)
	if filter == "" {
		return MatchAll, nil
	}

	env, err := buildEnv()
	if err != nil {
		return nil, fmt.Errorf("build filter env: %w", err)
	}

	ast, issues := env.Compile(filter)
	if issues != nil && issues.Err() != nil {
		return nil, fmt.Errorf("invalid filter: %w", issues.Err())
	}
	if ast.OutputType() != cel.BoolType {
		return nil, fmt.Errorf("filter must evaluate to a boolean, got %s", ast.OutputType())
	}

	prg, err := env.Program(ast)
	if err != nil {
		return nil, fmt.Errorf("compile filter: %w", err)
	}

	return func(e Entry) (bool, error) {
		out, _, err := prg.Eval(map[string]any{
			"word":         e.Word,
			"sentence":     e.Sentence,
			"score":        e.Score,
			"difficulty":   e.Difficulty,
			"submitted_at": e.SubmittedAt,
		})
		if err != nil {
			return false, fmt.Errorf("evaluate filter: %w", err)
		}
		matched, ok := out.Value().(bool)
		if !ok {
			return false, fmt.Errorf("filter produced %T, expected bool", out.Value())
		}
		return matched, nil
	}, nil
}
