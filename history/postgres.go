package history

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"freelancebot/core/logger"
	"log/slog"
)

// Postgres implements Store on top of the migration-managed history table.
type Postgres struct {
	db *sqlx.DB
}

// NewPostgres wraps an open sqlx connection.
func NewPostgres(db *sqlx.DB) *Postgres {
	return &Postgres{db: db}
}

// Append inserts one record with the current timestamp.
func (s *Postgres) Append(ctx context.Context, userID int64, kind Kind, input, output string) error {
	start := time.Now()
	const q = `
		INSERT INTO history (user_id, date, request_type, input_data, output_data)
		VALUES ($1, now(), $2, $3, $4)`
	_, err := s.db.ExecContext(ctx, q, userID, string(kind), input, output)
	if err != nil {
		logger.SVCHistory.Error("append failed",
			slog.String("event", "history.append"),
			slog.Int64("user_id", userID),
			slog.String("kind", string(kind)),
			slog.String("err", err.Error()),
		)
		return fmt.Errorf("history append: %w", err)
	}
	logger.SVCHistory.Debug("record appended",
		slog.String("event", "history.append"),
		slog.Int64("user_id", userID),
		slog.String("kind", string(kind)),
		slog.Duration("duration", logger.Took(start)),
	)
	return nil
}

// Recent returns up to limit records ordered by date descending.
func (s *Postgres) Recent(ctx context.Context, userID int64, limit int) ([]Record, error) {
	if limit <= 0 {
		limit = DefaultRecentLimit
	}
	const q = `
		SELECT id, user_id, date, request_type, input_data, output_data
		FROM history
		WHERE user_id = $1
		ORDER BY date DESC, id DESC
		LIMIT $2`
	records := []Record{}
	if err := s.db.SelectContext(ctx, &records, q, userID, limit); err != nil {
		logger.SVCHistory.Error("recent query failed",
			slog.String("event", "history.recent"),
			slog.Int64("user_id", userID),
			slog.String("err", err.Error()),
		)
		return nil, fmt.Errorf("history recent: %w", err)
	}
	return records, nil
}

// Purge deletes all records for the user.
func (s *Postgres) Purge(ctx context.Context, userID int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM history WHERE user_id = $1`, userID)
	if err != nil {
		logger.SVCHistory.Error("purge failed",
			slog.String("event", "history.purge"),
			slog.Int64("user_id", userID),
			slog.String("err", err.Error()),
		)
		return fmt.Errorf("history purge: %w", err)
	}
	deleted, _ := res.RowsAffected()
	logger.SVCHistory.Info("history purged",
		slog.String("event", "history.purge"),
		slog.Int64("user_id", userID),
		slog.Int64("count", deleted),
	)
	return nil
}
