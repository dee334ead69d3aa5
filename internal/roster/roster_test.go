package roster

import (
	"testing"

	"github.com/baldmike/baseball-game-sub001/internal/game"
)

func initLeague(t *testing.T) {
	t.Helper()
	if err := Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}
}

func TestInitEmbeddedLeague(t *testing.T) {
	initLeague(t)
	teamCount, batters, pitchers := Counts()
	if teamCount < 2 {
		t.Fatalf("league has %d teams, need at least 2 for a matchup", teamCount)
	}
	if batters == 0 || pitchers == 0 {
		t.Fatalf("empty rosters: %d batters, %d pitchers", batters, pitchers)
	}
}

func TestTeamsOrderedByID(t *testing.T) {
	initLeague(t)
	sums := Teams()
	for i := 1; i < len(sums); i++ {
		if sums[i].ID <= sums[i-1].ID {
			t.Fatalf("teams out of order at %d: %d after %d", i, sums[i].ID, sums[i-1].ID)
		}
	}
	for _, s := range sums {
		if s.Name == "" || s.Abbreviation == "" {
			t.Errorf("team %d missing name or abbreviation", s.ID)
		}
	}
}

func TestByID(t *testing.T) {
	initLeague(t)
	first := Teams()[0]
	got, ok := ByID(first.ID)
	if !ok {
		t.Fatalf("team %d not found", first.ID)
	}
	if got.Name != first.Name {
		t.Errorf("name %q, want %q", got.Name, first.Name)
	}
	if _, ok := ByID(-42); ok {
		t.Error("found a team that does not exist")
	}
}

func TestLineupBestNineByOPS(t *testing.T) {
	initLeague(t)
	teamID := Teams()[0].ID
	lineup, err := Lineup(teamID)
	if err != nil {
		t.Fatal(err)
	}
	if len(lineup) != 9 {
		t.Fatalf("lineup has %d batters, want 9", len(lineup))
	}
	for i := 1; i < len(lineup); i++ {
		if ops(lineup[i]) > ops(lineup[i-1]) {
			t.Errorf("lineup not sorted by OPS at slot %d", i)
		}
	}

	// The bench must not out-hit anyone in the lineup.
	team, _ := ByID(teamID)
	inLineup := make(map[int]bool, len(lineup))
	for _, p := range lineup {
		inLineup[p.ID] = true
	}
	worst := ops(lineup[len(lineup)-1])
	for _, p := range team.Players {
		if !inLineup[p.ID] && ops(p) > worst {
			t.Errorf("benched %s (OPS %.3f) over a weaker starter (%.3f)", p.Name, ops(p), worst)
		}
	}

	if _, err := Lineup(-1); err == nil {
		t.Error("unknown team should error")
	}
}

func TestRotationStarterHasBestERA(t *testing.T) {
	initLeague(t)
	teamID := Teams()[0].ID
	starter, bullpen, err := Rotation(teamID)
	if err != nil {
		t.Fatal(err)
	}
	for _, arm := range bullpen {
		if arm.Stats.ERA < starter.Stats.ERA {
			t.Errorf("bullpen arm %s (%.2f) beats the starter (%.2f)", arm.Name, arm.Stats.ERA, starter.Stats.ERA)
		}
	}
	team, _ := ByID(teamID)
	if len(bullpen) != len(team.Pitchers)-1 {
		t.Errorf("bullpen size %d, want %d", len(bullpen), len(team.Pitchers)-1)
	}
}

func TestRandomOpponentExcludes(t *testing.T) {
	initLeague(t)
	exclude := Teams()[0].ID
	for i := 0; i < 50; i++ {
		opp, err := RandomOpponent(exclude)
		if err != nil {
			t.Fatal(err)
		}
		if opp.ID == exclude {
			t.Fatal("drew the excluded team")
		}
	}
}

func TestLineupPlayable(t *testing.T) {
	// A roster-built lineup must make a playable game configuration.
	initLeague(t)
	sums := Teams()
	home, away := sums[0].ID, sums[1].ID

	homeLineup, err := Lineup(home)
	if err != nil {
		t.Fatal(err)
	}
	awayLineup, err := Lineup(away)
	if err != nil {
		t.Fatal(err)
	}
	homeStarter, homePen, err := Rotation(home)
	if err != nil {
		t.Fatal(err)
	}
	awayStarter, awayPen, err := Rotation(away)
	if err != nil {
		t.Fatal(err)
	}

	s := game.New(game.Config{
		GameID:      "roster-smoke",
		HomeLineup:  homeLineup,
		AwayLineup:  awayLineup,
		HomePitcher: &homeStarter,
		AwayPitcher: &awayStarter,
		HomeBullpen: homePen,
		AwayBullpen: awayPen,
		RNG:         game.NewSeededRNG(5),
	})
	s.Simulate()
	if s.GameStatus != game.StatusFinal {
		t.Fatalf("roster-built game did not finish: %s", s.GameStatus)
	}
}
