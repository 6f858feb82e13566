package analytics

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"petrocore-backend/internal/chatbot"

	_ "modernc.org/sqlite"
)

// SQLiteSink is the durable Sink variant: same contract as MemorySink, backed
// by a SQLite file. database/sql serializes access, so no extra locking is
// needed here.
type SQLiteSink struct {
	db *sql.DB
}

var _ Sink = (*SQLiteSink)(nil)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS sessions (
	session_id    TEXT PRIMARY KEY,
	start_time    INTEGER NOT NULL,
	end_time      INTEGER,
	message_count INTEGER NOT NULL DEFAULT 0,
	language      TEXT NOT NULL DEFAULT '',
	lead_score    INTEGER NOT NULL DEFAULT 0,
	intents       TEXT NOT NULL DEFAULT '',
	conversion    TEXT NOT NULL DEFAULT 'none'
);
CREATE INDEX IF NOT EXISTS idx_sessions_start_time ON sessions (start_time);

CREATE TABLE IF NOT EXISTS turns (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	session_id TEXT NOT NULL,
	role       TEXT NOT NULL,
	content    TEXT NOT NULL,
	timestamp  INTEGER NOT NULL,
	intent     TEXT NOT NULL DEFAULT '',
	confidence REAL NOT NULL DEFAULT 0,
	language   TEXT NOT NULL DEFAULT ''
);
CREATE INDEX IF NOT EXISTS idx_turns_session ON turns (session_id);
`

// NewSQLiteSink opens (or creates) the analytics database at path. Use
// ":memory:" for an ephemeral database in tests.
func NewSQLiteSink(path string) (*SQLiteSink, error) {
	dsn := path
	if path != ":memory:" {
		dsn = path + "?_journal=WAL&_busy_timeout=5000"
	}
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open analytics database: %w", err)
	}
	if _, err := db.Exec(sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply analytics schema: %w", err)
	}
	return &SQLiteSink{db: db}, nil
}

// StartSession inserts the session row if it does not exist yet.
func (s *SQLiteSink) StartSession(sessionID string, lang chatbot.Language, start time.Time) error {
	_, err := s.db.Exec(
		`INSERT INTO sessions (session_id, start_time, language) VALUES (?, ?, ?)
		 ON CONFLICT(session_id) DO NOTHING`,
		sessionID, start.UnixMilli(), string(lang),
	)
	if err != nil {
		return fmt.Errorf("start session %s: %w", sessionID, err)
	}
	return nil
}

// RecordTurn inserts the turn event and bumps the session message count.
func (s *SQLiteSink) RecordTurn(event TurnEvent) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("record turn: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(
		`INSERT INTO turns (session_id, role, content, timestamp, intent, confidence, language)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		event.SessionID, string(event.Role), event.Content, event.Timestamp.UnixMilli(),
		string(event.Intent), event.Confidence, string(event.Language),
	); err != nil {
		return fmt.Errorf("record turn for session %s: %w", event.SessionID, err)
	}
	if _, err := tx.Exec(
		`UPDATE sessions SET message_count = message_count + 1 WHERE session_id = ?`,
		event.SessionID,
	); err != nil {
		return fmt.Errorf("bump message count for session %s: %w", event.SessionID, err)
	}
	return tx.Commit()
}

// RecordIntent appends the intent to the session's first-seen intent set.
func (s *SQLiteSink) RecordIntent(sessionID string, intent chatbot.Intent, _ float64) error {
	var joined string
	err := s.db.QueryRow(`SELECT intents FROM sessions WHERE session_id = ?`, sessionID).Scan(&joined)
	if err == sql.ErrNoRows {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read intents for session %s: %w", sessionID, err)
	}
	intents := appendIntent(splitIntents(joined), intent)
	if _, err := s.db.Exec(
		`UPDATE sessions SET intents = ? WHERE session_id = ?`,
		joinIntents(intents), sessionID,
	); err != nil {
		return fmt.Errorf("update intents for session %s: %w", sessionID, err)
	}
	return nil
}

// UpdateSession refreshes the aggregate fields; a non-none conversion sticks.
func (s *SQLiteSink) UpdateSession(sessionID string, leadScore int, lang chatbot.Language, conversion chatbot.ConversionEvent) error {
	query := `UPDATE sessions SET lead_score = ?`
	args := []any{leadScore}
	if lang != "" {
		query += `, language = ?`
		args = append(args, string(lang))
	}
	if conversion != "" && conversion != chatbot.ConversionNone {
		query += `, conversion = ?`
		args = append(args, string(conversion))
	}
	query += ` WHERE session_id = ?`
	args = append(args, sessionID)

	if _, err := s.db.Exec(query, args...); err != nil {
		return fmt.Errorf("update session %s: %w", sessionID, err)
	}
	return nil
}

// EndSession stamps the end time; the first end wins.
func (s *SQLiteSink) EndSession(sessionID string, end time.Time) error {
	if _, err := s.db.Exec(
		`UPDATE sessions SET end_time = ? WHERE session_id = ? AND end_time IS NULL`,
		end.UnixMilli(), sessionID,
	); err != nil {
		return fmt.Errorf("end session %s: %w", sessionID, err)
	}
	return nil
}

// Report aggregates sessions started within [from, to). The fold itself is
// shared with MemorySink so both backends report identically.
func (s *SQLiteSink) Report(from, to time.Time) (*Report, error) {
	rows, err := s.db.Query(
		`SELECT session_id, start_time, end_time, message_count, language, lead_score, intents, conversion
		 FROM sessions WHERE start_time >= ? AND start_time < ?`,
		from.UnixMilli(), to.UnixMilli(),
	)
	if err != nil {
		return nil, fmt.Errorf("query sessions for report: %w", err)
	}
	defer rows.Close()

	var sessions []ConversationMetrics
	for rows.Next() {
		var (
			m        ConversationMetrics
			startMs  int64
			endMs    sql.NullInt64
			language string
			intents  string
			conv     string
		)
		if err := rows.Scan(&m.SessionID, &startMs, &endMs, &m.MessageCount, &language, &m.LeadScore, &intents, &conv); err != nil {
			return nil, fmt.Errorf("scan session row: %w", err)
		}
		m.StartTime = time.UnixMilli(startMs)
		if endMs.Valid {
			t := time.UnixMilli(endMs.Int64)
			m.EndTime = &t
		}
		m.Language = chatbot.Language(language)
		m.Intents = splitIntents(intents)
		m.Conversion = chatbot.ConversionEvent(conv)
		sessions = append(sessions, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate session rows: %w", err)
	}
	return computeReport(from, to, sessions), nil
}

// Close releases the underlying database handle.
func (s *SQLiteSink) Close() error {
	return s.db.Close()
}

func splitIntents(joined string) []chatbot.Intent {
	if joined == "" {
		return nil
	}
	parts := strings.Split(joined, ",")
	intents := make([]chatbot.Intent, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			intents = append(intents, chatbot.Intent(p))
		}
	}
	return intents
}

func joinIntents(intents []chatbot.Intent) string {
	parts := make([]string, 0, len(intents))
	for _, i := range intents {
		parts = append(parts, string(i))
	}
	return strings.Join(parts, ",")
}
