// internal/roster/roster.go
//
// Provides league roster management for the game engine.
//
// Responsibilities:
//   - Load the league (teams, batters, pitchers) from an environment-provided
//     file or fall back to the embedded default league.
//   - Build game-ready lineups (best nine batters by OPS) and pitching
//     staffs (best ERA starts, the rest fill the bullpen).
//   - Supply utility functions like Team, Teams, RandomOpponent, and Counts.
//
// Initialization behavior (Init):
//   1. If LEAGUE_FILE is set, load the league from that path.
//   2. Otherwise, fall back to the embedded league in assets/league.json.
//
// Environment variables:
//   LEAGUE_FILE=/path/to/league.json
//
// Constraints:
//   • A team needs at least one batter and one pitcher to be playable.
//   • Lineups are always exactly nine batters; short rosters are rejected
//     at load time rather than padded silently.
//   • Initialization is run once (sync.Once).

package roster

import (
	"crypto/rand"
	"encoding/json"
	"fmt"
	"math/big"
	"os"
	"sort"
	"sync"

	"github.com/baldmike/baseball-game-sub001/assets"
	"github.com/baldmike/baseball-game-sub001/internal/game"
)

// lineupSize is the number of batters a game lineup carries.
const lineupSize = 9

// Team is one league club with its full roster.
type Team struct {
	ID           int            `json:"id"`
	Name         string         `json:"name"`
	Abbreviation string         `json:"abbreviation"`
	Players      []game.Player  `json:"players"`
	Pitchers     []game.Pitcher `json:"pitchers"`
}

// Summary is the list-endpoint projection of a team.
type Summary struct {
	ID           int    `json:"id"`
	Name         string `json:"name"`
	Abbreviation string `json:"abbreviation"`
}

type league struct {
	Teams []Team `json:"teams"`
}

var (
	initOnce   sync.Once
	teams      []Team
	teamsByID  map[int]*Team
	initialErr error
)

// Init loads the league exactly once. Returns an error if the league ends up
// empty or a team's roster is too short to field a lineup.
func Init() error {
	initOnce.Do(func() {
		var raw []byte
		var err error

		if path := os.Getenv("LEAGUE_FILE"); path != "" {
			raw, err = os.ReadFile(path)
			if err != nil {
				initialErr = fmt.Errorf("roster: read %s: %w", path, err)
				return
			}
		} else {
			raw, err = assets.LeagueJSON()
			if err != nil {
				initialErr = fmt.Errorf("roster: embedded league: %w", err)
				return
			}
		}

		var lg league
		if err := json.Unmarshal(raw, &lg); err != nil {
			initialErr = fmt.Errorf("roster: parse league: %w", err)
			return
		}
		if len(lg.Teams) == 0 {
			initialErr = fmt.Errorf("roster: league has no teams")
			return
		}

		byID := make(map[int]*Team, len(lg.Teams))
		for i := range lg.Teams {
			t := &lg.Teams[i]
			if len(t.Players) < lineupSize {
				initialErr = fmt.Errorf("roster: team %q has %d batters, need %d", t.Name, len(t.Players), lineupSize)
				return
			}
			if len(t.Pitchers) == 0 {
				initialErr = fmt.Errorf("roster: team %q has no pitchers", t.Name)
				return
			}
			byID[t.ID] = t
		}

		teams = lg.Teams
		teamsByID = byID
	})
	return initialErr
}

// Teams returns the league as list summaries, ordered by ID.
func Teams() []Summary {
	out := make([]Summary, 0, len(teams))
	for _, t := range teams {
		out = append(out, Summary{ID: t.ID, Name: t.Name, Abbreviation: t.Abbreviation})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// ByID returns the full roster for one club.
func ByID(id int) (*Team, bool) {
	t, ok := teamsByID[id]
	return t, ok
}

// Lineup builds the team's starting nine: the best batters by OPS
// (AVG + SLG), in descending order.
func Lineup(teamID int) ([]game.Player, error) {
	t, ok := teamsByID[teamID]
	if !ok {
		return nil, fmt.Errorf("roster: unknown team %d", teamID)
	}
	batters := append([]game.Player(nil), t.Players...)
	sort.SliceStable(batters, func(i, j int) bool {
		return ops(batters[i]) > ops(batters[j])
	})
	return batters[:lineupSize], nil
}

// Rotation returns the team's starter (lowest ERA) and the rest of the staff
// as the bullpen, best arms first.
func Rotation(teamID int) (game.Pitcher, []game.Pitcher, error) {
	t, ok := teamsByID[teamID]
	if !ok {
		return game.Pitcher{}, nil, fmt.Errorf("roster: unknown team %d", teamID)
	}
	staff := append([]game.Pitcher(nil), t.Pitchers...)
	sort.SliceStable(staff, func(i, j int) bool {
		return staff[i].Stats.ERA < staff[j].Stats.ERA
	})
	return staff[0], staff[1:], nil
}

// RandomOpponent returns a cryptographically random team other than the
// excluded one. With a single-team league the exclusion is ignored.
func RandomOpponent(excludeID int) (*Team, error) {
	candidates := make([]*Team, 0, len(teams))
	for i := range teams {
		if teams[i].ID != excludeID {
			candidates = append(candidates, &teams[i])
		}
	}
	if len(candidates) == 0 {
		if len(teams) == 0 {
			return nil, fmt.Errorf("roster: league not loaded")
		}
		return &teams[0], nil
	}
	nBig, err := rand.Int(rand.Reader, big.NewInt(int64(len(candidates))))
	if err != nil {
		return candidates[0], nil
	}
	return candidates[nBig.Int64()], nil
}

// Counts returns the loaded league size: (teams, batters, pitchers).
func Counts() (teamCount, batterCount, pitcherCount int) {
	for _, t := range teams {
		batterCount += len(t.Players)
		pitcherCount += len(t.Pitchers)
	}
	return len(teams), batterCount, pitcherCount
}

func ops(p game.Player) float64 {
	return p.Stats.AVG + p.Stats.SLG
}
