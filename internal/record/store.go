package record

import (
	"context"
	"database/sql"
)

// Record is one finished (or in-progress) game as persisted for history and
// standings. Live play state stays in the memory store; this row only tracks
// ownership and the final line.
type Record struct {
	GameID     string `json:"gameId"`
	UserID     string `json:"userId,omitempty"`
	AnonID     string `json:"-"`
	HomeTeam   string `json:"homeTeam"`
	AwayTeam   string `json:"awayTeam"`
	PlayerSide string `json:"playerSide"`
	Status     string `json:"status"`
	HomeScore  int    `json:"homeScore"`
	AwayScore  int    `json:"awayScore"`
	Innings    int    `json:"innings"`
	StartedAt  string `json:"startedAt"`
	FinishedAt string `json:"finishedAt,omitempty"`
}

type Store struct{ db *sql.DB }

func NewStore(db *sql.DB) *Store { return &Store{db: db} }

// Insert writes the ownership row when a game starts. Exactly one of
// r.UserID / r.AnonID should be set.
func (s *Store) Insert(ctx context.Context, r Record) error {
	userID := sql.NullString{String: r.UserID, Valid: r.UserID != ""}
	anonID := sql.NullString{String: r.AnonID, Valid: r.AnonID != ""}
	_, err := s.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO game_records
		     (id, user_id, anonymous_id, home_team, away_team, player_side, status, started_at)
		 VALUES (?,?,?,?,?,?,?,?)`,
		r.GameID, userID, anonID, r.HomeTeam, r.AwayTeam, r.PlayerSide, "active", r.StartedAt,
	)
	return err
}

// Finish stamps the final line onto the record. Only the first call for a
// game transitions the row; the returned bool reports whether this call did,
// so callers can bump user stats exactly once.
func (s *Store) Finish(ctx context.Context, gameID string, homeScore, awayScore, innings int, finishedAt string) (bool, error) {
	res, err := s.db.ExecContext(ctx,
		`UPDATE game_records
		    SET status='final', home_score=?, away_score=?, innings=?, finished_at=?
		  WHERE id=? AND status='active'`,
		homeScore, awayScore, innings, finishedAt, gameID,
	)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}

// Claim transfers any anonymous games to a user account after auth.
func (s *Store) Claim(ctx context.Context, anonID, userID string) error {
	if anonID == "" || userID == "" {
		return nil
	}
	_, err := s.db.ExecContext(ctx,
		`UPDATE game_records SET user_id=?, anonymous_id=NULL WHERE anonymous_id=?`,
		userID, anonID,
	)
	return err
}

// RecentForUser lists a user's games, newest first.
func (s *Store) RecentForUser(ctx context.Context, userID string, limit int) ([]Record, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, home_team, away_team, player_side, status,
		        COALESCE(home_score,0), COALESCE(away_score,0), COALESCE(innings,0),
		        started_at, COALESCE(finished_at,'')
		   FROM game_records
		  WHERE user_id=?
		  ORDER BY started_at DESC
		  LIMIT ?`, userID, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		var r Record
		if err := rows.Scan(&r.GameID, &r.HomeTeam, &r.AwayTeam, &r.PlayerSide, &r.Status,
			&r.HomeScore, &r.AwayScore, &r.Innings, &r.StartedAt, &r.FinishedAt); err != nil {
			return nil, err
		}
		r.UserID = userID
		out = append(out, r)
	}
	return out, rows.Err()
}

// LBRow is one standings line: a user ranked by wins.
type LBRow struct {
	Username string `json:"username"`
	Wins     int    `json:"wins"`
	Losses   int    `json:"losses"`
}

// Leaderboard ranks users by wins, then fewest losses.
func (s *Store) Leaderboard(ctx context.Context, limit int) ([]LBRow, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT username, wins, losses
		   FROM users
		  WHERE wins > 0 OR losses > 0
		  ORDER BY wins DESC, losses ASC, username ASC
		  LIMIT ?`, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []LBRow
	for rows.Next() {
		var r LBRow
		if err := rows.Scan(&r.Username, &r.Wins, &r.Losses); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
