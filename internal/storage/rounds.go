package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Round outcomes as stored in the rounds table.
const (
	OutcomeWon       = "won"
	OutcomeLost      = "lost"
	OutcomeAbandoned = "abandoned"
)

// Round is the record of one finished or abandoned round.
type Round struct {
	ID        int64
	RoundID   string // UUID, generated by SaveRound when empty
	LevelID   string
	Seed      int64
	Outcome   string
	Clicks    int
	Absorbed  int
	Total     int
	Score     int
	Duration  time.Duration
	Session   string // SSH user or empty for local play
	CreatedAt time.Time
}

// RoundStats aggregates rounds for one level.
type RoundStats struct {
	LevelID     string
	Rounds      int
	Wins        int
	Losses      int
	BestScore   int
	AvgClicks   float64
	TotalPlayed time.Duration
}

// WinRate returns the share of rounds won.
func (rs RoundStats) WinRate() float64 {
	if rs.Rounds == 0 {
		return 0
	}
	return float64(rs.Wins) / float64(rs.Rounds)
}

// SaveRound records a round and returns its UUID.
func (s *Store) SaveRound(r Round) (string, error) {
	if r.RoundID == "" {
		r.RoundID = uuid.NewString()
	} else if _, err := uuid.Parse(r.RoundID); err != nil {
		return "", fmt.Errorf("storage: invalid round id %q: %w", r.RoundID, err)
	}

	_, err := s.db.Exec(
		`INSERT INTO rounds
		 (round_id, level_id, seed, outcome, clicks, absorbed, total, score, duration_ms, session)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.RoundID,
		r.LevelID,
		r.Seed,
		r.Outcome,
		r.Clicks,
		r.Absorbed,
		r.Total,
		r.Score,
		r.Duration.Milliseconds(),
		r.Session,
	)
	if err != nil {
		return "", fmt.Errorf("storage: cannot save round: %w", err)
	}
	return r.RoundID, nil
}

const roundColumns = `id, round_id, level_id, seed, outcome, clicks, absorbed, total, score, duration_ms, session, created_at`

type scanner interface {
	Scan(dest ...any) error
}

func scanRound(sc scanner) (Round, error) {
	var r Round
	var durationMS int64
	var createdAt any
	err := sc.Scan(
		&r.ID,
		&r.RoundID,
		&r.LevelID,
		&r.Seed,
		&r.Outcome,
		&r.Clicks,
		&r.Absorbed,
		&r.Total,
		&r.Score,
		&durationMS,
		&r.Session,
		&createdAt,
	)
	if err != nil {
		return Round{}, err
	}
	r.Duration = time.Duration(durationMS) * time.Millisecond
	r.CreatedAt = parseTime(createdAt)
	return r, nil
}

// RoundByID retrieves a round by its UUID. Returns nil if it does not exist.
func (s *Store) RoundByID(roundID string) (*Round, error) {
	row := s.db.QueryRow(`SELECT `+roundColumns+` FROM rounds WHERE round_id = ?`, roundID)
	r, err := scanRound(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query round: %w", err)
	}
	return &r, nil
}

// RecentRounds retrieves the most recent rounds, newest first.
// An empty levelID matches every level.
func (s *Store) RecentRounds(levelID string, limit int) ([]Round, error) {
	if limit <= 0 {
		limit = 20
	}

	var (
		rows *sql.Rows
		err  error
	)
	if levelID == "" {
		rows, err = s.db.Query(
			`SELECT `+roundColumns+` FROM rounds ORDER BY created_at DESC, id DESC LIMIT ?`,
			limit,
		)
	} else {
		rows, err = s.db.Query(
			`SELECT `+roundColumns+` FROM rounds WHERE level_id = ? ORDER BY created_at DESC, id DESC LIMIT ?`,
			levelID, limit,
		)
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query rounds: %w", err)
	}
	defer rows.Close()

	var rounds []Round
	for rows.Next() {
		r, err := scanRound(rows)
		if err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		rounds = append(rounds, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return rounds, nil
}

// RoundStats aggregates the rounds of one level.
func (s *Store) RoundStats(levelID string) (RoundStats, error) {
	stats := RoundStats{LevelID: levelID}
	var best sql.NullInt64
	var avgClicks sql.NullFloat64
	var totalMS sql.NullInt64

	err := s.db.QueryRow(
		`SELECT COUNT(*),
		        COALESCE(SUM(CASE WHEN outcome = ? THEN 1 ELSE 0 END), 0),
		        COALESCE(SUM(CASE WHEN outcome = ? THEN 1 ELSE 0 END), 0),
		        MAX(score), AVG(clicks), SUM(duration_ms)
		 FROM rounds WHERE level_id = ?`,
		OutcomeWon, OutcomeLost, levelID,
	).Scan(&stats.Rounds, &stats.Wins, &stats.Losses, &best, &avgClicks, &totalMS)
	if err != nil {
		return stats, fmt.Errorf("storage: cannot query round stats: %w", err)
	}

	if best.Valid {
		stats.BestScore = int(best.Int64)
	}
	if avgClicks.Valid {
		stats.AvgClicks = avgClicks.Float64
	}
	if totalMS.Valid {
		stats.TotalPlayed = time.Duration(totalMS.Int64) * time.Millisecond
	}
	return stats, nil
}

// AllRoundStats returns stats for every level with at least one round.
func (s *Store) AllRoundStats() ([]RoundStats, error) {
	rows, err := s.db.Query("SELECT DISTINCT level_id FROM rounds ORDER BY level_id")
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query levels: %w", err)
	}

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			rows.Close()
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		ids = append(ids, id)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	all := make([]RoundStats, 0, len(ids))
	for _, id := range ids {
		st, err := s.RoundStats(id)
		if err != nil {
			return nil, err
		}
		all = append(all, st)
	}
	return all, nil
}
