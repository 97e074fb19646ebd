package journal

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/starford/notebookd/internal/actions"
	"github.com/starford/notebookd/internal/state"
	"github.com/starford/notebookd/internal/store"
)

// DefaultLimit is the number of entries Recent returns when limit <= 0.
const DefaultLimit = 50

// Entry is one journaled command. Command holds the command's JSON form.
type Entry struct {
	Seq       int64           `json:"seq"`
	Type      string          `json:"type"`
	Command   json.RawMessage `json:"command"`
	CreatedAt time.Time       `json:"createdAt"`
}

// Journal defines the journal operations consumers depend on.
type Journal interface {
	Append(ctx context.Context, cmd actions.Command, at time.Time) (int64, error)
	Recent(ctx context.Context, limit int) ([]Entry, error)
	Count(ctx context.Context) (int, error)
}

var _ Journal = (*DB)(nil)

// Append records cmd and returns its sequence number.
func (db *DB) Append(ctx context.Context, cmd actions.Command, at time.Time) (int64, error) {
	payload, err := json.Marshal(redact(cmd))
	if err != nil {
		return 0, fmt.Errorf("journal: encode %s: %w", cmd.Type, err)
	}
	res, err := db.conn.ExecContext(ctx,
		`INSERT INTO commands (type, payload, created_at) VALUES (?, ?, ?)`,
		cmd.Type, string(payload), at.UTC())
	if err != nil {
		return 0, fmt.Errorf("journal: append: %w", err)
	}
	return res.LastInsertId()
}

const redacted = "[redacted]"

// redact blanks credentials so they never reach the journal file.
func redact(cmd actions.Command) actions.Command {
	switch p := cmd.Payload.(type) {
	case actions.SetGithubTokenPayload:
		if p.GithubToken != "" {
			p.GithubToken = redacted
		}
		cmd.Payload = p
	case actions.SetHostPayload:
		if p.Host.Token != "" {
			p.Host.Token = redacted
		}
		cmd.Payload = p
	}
	return cmd
}

// Recent returns up to limit entries, newest first.
func (db *DB) Recent(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}
	rows, err := db.conn.QueryContext(ctx,
		`SELECT seq, type, payload, created_at FROM commands ORDER BY seq DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("journal: recent: %w", err)
	}
	defer rows.Close()

	var out []Entry
	for rows.Next() {
		var e Entry
		var payload string
		if err := rows.Scan(&e.Seq, &e.Type, &payload, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("journal: scan: %w", err)
		}
		e.Command = json.RawMessage(payload)
		out = append(out, e)
	}
	return out, rows.Err()
}

// Count returns the number of journaled commands.
func (db *DB) Count(ctx context.Context) (int, error) {
	var n int
	if err := db.conn.QueryRowContext(ctx, `SELECT count(*) FROM commands`).Scan(&n); err != nil {
		return 0, fmt.Errorf("journal: count: %w", err)
	}
	return n, nil
}

// Listener returns a store listener that appends every command to j.
// Failures are logged and do not interrupt dispatch.
func Listener(j Journal, logger *slog.Logger) store.Listener {
	return func(cmd actions.Command, _ *state.State) {
		if _, err := j.Append(context.Background(), cmd, time.Now()); err != nil {
			logger.Warn("journal: append failed", slog.String("type", cmd.Type), slog.String("error", err.Error()))
		}
	}
}
