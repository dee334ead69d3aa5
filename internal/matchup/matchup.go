package matchup

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/binary"
	"time"
)

// DateKey returns YYYY-MM-DD in UTC.
func DateKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// Index returns a deterministic pick for a date using
// HMAC(salt, YYYY-MM-DD || label) % n. The label separates independent
// draws for the same date (home team, away team, weather, ...).
func Index(date time.Time, salt, label string, n int) int {
	if n <= 0 {
		return 0
	}
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(DateKey(date)))
	h.Write([]byte(label))
	sum := h.Sum(nil)
	v := binary.BigEndian.Uint64(sum[:8])
	return int(v % uint64(n))
}

// Pair returns two distinct deterministic indexes for a date: the featured
// home and away clubs. With n < 2 both indexes are zero.
func Pair(date time.Time, salt string, n int) (home, away int) {
	if n < 2 {
		return 0, 0
	}
	home = Index(date, salt, "home", n)
	// Draw the away club from the remaining n-1 slots, skipping home.
	away = Index(date, salt, "away", n-1)
	if away >= home {
		away++
	}
	return home, away
}
