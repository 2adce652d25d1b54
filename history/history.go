// Package history persists the per-user log of generation requests and responses.
package history

import (
	"context"
	"time"
)

// Kind identifies which conversation flow produced a record.
type Kind string

const (
	// KindVacancyResponse marks records produced by the vacancy response flow.
	KindVacancyResponse Kind = "vacancy_response"
	// KindShortText marks records produced by the short text flow.
	KindShortText Kind = "short_text"
	// KindResumeImprovement marks records produced by the resume improvement flow.
	KindResumeImprovement Kind = "resume_improvement"
	// KindFreeQuestion marks records produced by the free question flow.
	KindFreeQuestion Kind = "free_question"
)

// Valid reports whether k is one of the known request kinds.
func (k Kind) Valid() bool {
	switch k {
	case KindVacancyResponse, KindShortText, KindResumeImprovement, KindFreeQuestion:
		return true
	}
	return false
}

// DefaultRecentLimit bounds how many records history views show.
const DefaultRecentLimit = 10

// Record is one immutable request/response entry.
type Record struct {
	ID     int64     `db:"id"`
	UserID int64     `db:"user_id"`
	Date   time.Time `db:"date"`
	Kind   Kind      `db:"request_type"`
	Input  string    `db:"input_data"`
	Output string    `db:"output_data"`
}

// Store is the append-only persistence contract for request history.
type Store interface {
	// Append inserts one immutable record. No deduplication is performed.
	Append(ctx context.Context, userID int64, kind Kind, input, output string) error
	// Recent returns up to limit records for the user, most recent first.
	Recent(ctx context.Context, userID int64, limit int) ([]Record, error)
	// Purge deletes all records for the user. Purging a user with no
	// records is not an error.
	Purge(ctx context.Context, userID int64) error
}
