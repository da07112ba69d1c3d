package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SessionRecord is one finished session in the history table.
type SessionRecord struct {
	ID          int64
	SessionID   uuid.UUID
	Player      string // SSH user, empty for local play
	Outcome     string // "won" or "lost"
	Score       int
	Ticks       uint64
	Economy     string
	CoinsEarned decimal.Decimal
	TotalCoins  decimal.Decimal
	CreatedAt   time.Time
}

// Stats aggregates the session history.
type Stats struct {
	Sessions    int
	Wins        int
	HighScore   int
	TotalEarned decimal.Decimal
	LastPlayed  time.Time
}

// RecordSession appends a finished session to the history.
// Returns the ID of the inserted record.
func (s *Store) RecordSession(rec SessionRecord) (int64, error) {
	result, err := s.db.Exec(
		`INSERT INTO sessions
		 (session_id, player, outcome, score, ticks, economy, coins_earned, total_coins)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.SessionID.String(),
		rec.Player,
		rec.Outcome,
		rec.Score,
		int64(rec.Ticks),
		rec.Economy,
		rec.CoinsEarned.String(),
		rec.TotalCoins.String(),
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot record session: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}
	return id, nil
}

// RecentSessions returns the newest sessions first.
func (s *Store) RecentSessions(limit int) ([]SessionRecord, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT id, session_id, player, outcome, score, ticks, economy, coins_earned, total_coins, created_at
		 FROM sessions
		 ORDER BY created_at DESC, id DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query sessions: %w", err)
	}
	defer rows.Close()

	var records []SessionRecord
	for rows.Next() {
		rec, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return records, nil
}

// SessionByID looks up one session. Returns nil when it does not exist.
func (s *Store) SessionByID(id uuid.UUID) (*SessionRecord, error) {
	row := s.db.QueryRow(
		`SELECT id, session_id, player, outcome, score, ticks, economy, coins_earned, total_coins, created_at
		 FROM sessions WHERE session_id = ?`,
		id.String(),
	)
	rec, err := scanSession(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// Stats aggregates every recorded session.
func (s *Store) Stats() (*Stats, error) {
	stats := &Stats{TotalEarned: decimal.Zero}

	var lastPlayed any
	err := s.db.QueryRow(
		`SELECT COUNT(*),
		        COALESCE(SUM(CASE WHEN outcome = 'won' THEN 1 ELSE 0 END), 0),
		        COALESCE(MAX(score), 0),
		        MAX(created_at)
		 FROM sessions`,
	).Scan(&stats.Sessions, &stats.Wins, &stats.HighScore, &lastPlayed)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get stats: %w", err)
	}
	stats.LastPlayed = parseTime(lastPlayed)

	// Coins are stored as exact decimal text, so sum them here rather than in SQL.
	rows, err := s.db.Query("SELECT coins_earned FROM sessions")
	if err != nil {
		return nil, fmt.Errorf("storage: cannot sum coins: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var raw string
		if err := rows.Scan(&raw); err != nil {
			return nil, fmt.Errorf("storage: cannot scan coins: %w", err)
		}
		if d, err := decimal.NewFromString(raw); err == nil {
			stats.TotalEarned = stats.TotalEarned.Add(d)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return stats, nil
}

// ClearSessions deletes the whole history. The wallet is untouched.
func (s *Store) ClearSessions() error {
	if _, err := s.db.Exec("DELETE FROM sessions"); err != nil {
		return fmt.Errorf("storage: cannot clear sessions: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSession(r rowScanner) (SessionRecord, error) {
	var (
		rec       SessionRecord
		sessionID string
		ticks     int64
		earned    string
		total     string
		createdAt any
	)
	err := r.Scan(
		&rec.ID,
		&sessionID,
		&rec.Player,
		&rec.Outcome,
		&rec.Score,
		&ticks,
		&rec.Economy,
		&earned,
		&total,
		&createdAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return rec, err
	}
	if err != nil {
		return rec, fmt.Errorf("storage: cannot scan row: %w", err)
	}

	rec.SessionID, _ = uuid.Parse(sessionID)
	rec.Ticks = uint64(max(ticks, 0))
	rec.CoinsEarned, _ = decimal.NewFromString(earned)
	rec.TotalCoins, _ = decimal.NewFromString(total)
	rec.CreatedAt = parseTime(createdAt)
	return rec, nil
}
