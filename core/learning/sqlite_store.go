package learning

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

const interactionSchema = `
CREATE TABLE IF NOT EXISTS chat_interactions (
	seq        INTEGER PRIMARY KEY AUTOINCREMENT,
	id         TEXT NOT NULL,
	user_id    TEXT NOT NULL,
	input      TEXT NOT NULL,
	output     TEXT NOT NULL,
	channel    TEXT NOT NULL DEFAULT '',
	topics     TEXT NOT NULL DEFAULT '[]',
	created_at TIMESTAMP NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_chat_interactions_user ON chat_interactions(user_id, seq);
`

// SQLiteStore is a durable InteractionStore backed by SQLite. It satisfies
// the same contract as MemoryStore, including front-first trimming.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (creating if needed) the database at path and
// ensures the schema exists. Use ":memory:" for an ephemeral database.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open interaction store: %w", err)
	}

	// Serialize access: modernc sqlite handles one writer at a time.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(interactionSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create interaction schema: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Close releases the underlying database handle.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) Append(ctx context.Context, interaction ChatInteraction) error {
	topics, err := json.Marshal(interaction.Topics)
	if err != nil {
		return fmt.Errorf("marshal topics: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO chat_interactions (id, user_id, input, output, channel, topics, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		interaction.ID,
		interaction.UserID,
		interaction.Input,
		interaction.Output,
		interaction.Channel,
		string(topics),
		interaction.Timestamp.UTC(),
	)
	if err != nil {
		return fmt.Errorf("append interaction: %w", err)
	}
	return nil
}

func (s *SQLiteStore) History(ctx context.Context, userID string) ([]ChatInteraction, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, user_id, input, output, channel, topics, created_at
		 FROM chat_interactions WHERE user_id = ? ORDER BY seq`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("query history: %w", err)
	}
	defer rows.Close()

	var history []ChatInteraction
	for rows.Next() {
		var interaction ChatInteraction
		var topics string
		var createdAt time.Time

		if err := rows.Scan(
			&interaction.ID,
			&interaction.UserID,
			&interaction.Input,
			&interaction.Output,
			&interaction.Channel,
			&topics,
			&createdAt,
		); err != nil {
			return nil, fmt.Errorf("scan interaction: %w", err)
		}

		if err := json.Unmarshal([]byte(topics), &interaction.Topics); err != nil {
			return nil, fmt.Errorf("unmarshal topics: %w", err)
		}
		interaction.Timestamp = createdAt

		history = append(history, interaction)
	}
	return history, rows.Err()
}

func (s *SQLiteStore) Count(ctx context.Context, userID string) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM chat_interactions WHERE user_id = ?`,
		userID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count interactions: %w", err)
	}
	return count, nil
}

func (s *SQLiteStore) TrimOldest(ctx context.Context, userID string, keep int) error {
	if keep < 0 {
		keep = 0
	}

	_, err := s.db.ExecContext(ctx,
		`DELETE FROM chat_interactions
		 WHERE user_id = ?
		   AND seq NOT IN (
			SELECT seq FROM chat_interactions
			WHERE user_id = ?
			ORDER BY seq DESC
			LIMIT ?
		 )`,
		userID, userID, keep,
	)
	if err != nil {
		return fmt.Errorf("trim interactions: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Clear(ctx context.Context, userID string) error {
	_, err := s.db.ExecContext(ctx,
		`DELETE FROM chat_interactions WHERE user_id = ?`,
		userID,
	)
	if err != nil {
		return fmt.Errorf("clear interactions: %w", err)
	}
	return nil
}
