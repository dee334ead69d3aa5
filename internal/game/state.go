// internal/game/state.go
//
// Game record construction, derived accessors, and snapshots.
//
// PlayerRole is deliberately not independent state: it is a pure function of
// PlayerSide and IsTop (home bats in bottom halves), recomputed at
// construction and at every half-inning flip. Storing it redundantly invites
// drift; deriving it cannot.

package game

import "fmt"

const regulationInnings = 9

// Config describes a new game. Lineups must carry nine batters; when a side
// is empty a generic league-average lineup is synthesized so the box score
// arrays stay aligned.
type Config struct {
	GameID string

	HomeTeam         string
	AwayTeam         string
	HomeAbbreviation string
	AwayAbbreviation string

	HomeLineup []Player
	AwayLineup []Player

	HomePitcher *Pitcher
	AwayPitcher *Pitcher
	HomeBullpen []Pitcher
	AwayBullpen []Pitcher

	Weather   Weather
	TimeOfDay TimeOfDay

	// PlayerSide defaults to home when unset.
	PlayerSide Side

	// RNG defaults to the crypto-backed source.
	RNG RandomSource

	// Tuning defaults to DefaultTuning.
	Tuning *Tuning
}

// New constructs an active game record at the top of the first inning.
func New(cfg Config) *State {
	s := &State{
		GameID:           cfg.GameID,
		Inning:           1,
		IsTop:            true,
		AwayScore:        make([]int, regulationInnings),
		HomeScore:        make([]int, regulationInnings),
		AwayTeam:         cfg.AwayTeam,
		HomeTeam:         cfg.HomeTeam,
		AwayAbbreviation: cfg.AwayAbbreviation,
		HomeAbbreviation: cfg.HomeAbbreviation,
		AwayLineup:       ensureLineup(cfg.AwayLineup, "Away"),
		HomeLineup:       ensureLineup(cfg.HomeLineup, "Home"),
		HomePitcher:      cfg.HomePitcher,
		AwayPitcher:      cfg.AwayPitcher,
		HomeBullpen:      append([]Pitcher(nil), cfg.HomeBullpen...),
		AwayBullpen:      append([]Pitcher(nil), cfg.AwayBullpen...),
		Weather:          cfg.Weather,
		TimeOfDay:        cfg.TimeOfDay,
		PlayerSide:       cfg.PlayerSide,
		GameStatus:       StatusActive,
		rng:              cfg.RNG,
		tuning:           DefaultTuning(),
	}
	if s.PlayerSide == "" {
		s.PlayerSide = SideHome
	}
	if s.rng == nil {
		s.rng = DefaultRNG()
	}
	if cfg.Tuning != nil {
		s.tuning = *cfg.Tuning
	}
	s.Runners = [3]int{noRunner, noRunner, noRunner}
	if s.HomePitcher != nil {
		s.HomePitcherLine = PitcherLine{PitcherID: s.HomePitcher.ID}
	}
	if s.AwayPitcher != nil {
		s.AwayPitcherLine = PitcherLine{PitcherID: s.AwayPitcher.ID}
	}
	s.PlayerRole = s.deriveRole()
	s.refreshBatter()

	msg := "Play Ball!"
	if s.HomeTeam != "" && s.AwayTeam != "" {
		msg = fmt.Sprintf("Play Ball! %s vs %s!", s.AwayTeam, s.HomeTeam)
	}
	s.log(msg)
	return s
}

// ensureLineup pads or synthesizes a nine-batter lineup.
func ensureLineup(in []Player, label string) []Player {
	out := append([]Player(nil), in...)
	for i := len(out); i < 9; i++ {
		out = append(out, Player{
			ID:   -(i + 1),
			Name: fmt.Sprintf("%s Batter %d", label, i+1),
			Stats: BattingStats{
				AVG:   leagueAVG,
				SLG:   leagueSLG,
				KRate: leagueKRate,
			},
		})
	}
	return out[:9]
}

// deriveRole computes the user's role from the fixed side and the half:
// the home club bats in bottom halves, the away club in top halves.
func (s *State) deriveRole() Role {
	battingHome := !s.IsTop
	playerBatting := (s.PlayerSide == SideHome) == battingHome
	if playerBatting {
		return RoleBatting
	}
	return RolePitching
}

// battingSide is the club currently at the plate.
func (s *State) battingSide() Side {
	if s.IsTop {
		return SideAway
	}
	return SideHome
}

// fieldingSide is the club currently pitching.
func (s *State) fieldingSide() Side {
	if s.IsTop {
		return SideHome
	}
	return SideAway
}

// battingLineup returns the lineup at the plate.
func (s *State) battingLineup() []Player {
	if s.IsTop {
		return s.AwayLineup
	}
	return s.HomeLineup
}

// batterSlot is the current batter's lineup index (0..8).
func (s *State) batterSlot() int {
	if s.IsTop {
		return s.AwayBatterIdx % 9
	}
	return s.HomeBatterIdx % 9
}

// CurrentBatter returns the batter due up.
func (s *State) CurrentBatter() *Player {
	return &s.battingLineup()[s.batterSlot()]
}

// refreshBatter syncs the convenience fields the snapshot consumers read.
func (s *State) refreshBatter() {
	b := s.CurrentBatter()
	s.CurrentBatterIndex = s.batterSlot()
	s.CurrentBatterName = b.Name
}

// advanceBatter moves the batting side to its next lineup slot.
func (s *State) advanceBatter() {
	if s.IsTop {
		s.AwayBatterIdx = (s.AwayBatterIdx + 1) % 9
	} else {
		s.HomeBatterIdx = (s.HomeBatterIdx + 1) % 9
	}
	s.refreshBatter()
}

// batterBox returns the current batter's box score line.
func (s *State) batterBox() *BoxScoreLine {
	slot := s.batterSlot()
	if s.IsTop {
		return &s.AwayBox[slot]
	}
	return &s.HomeBox[slot]
}

// runnerBox returns the box score line for the batting side's lineup slot.
func (s *State) runnerBox(slot int) *BoxScoreLine {
	if s.IsTop {
		return &s.AwayBox[slot]
	}
	return &s.HomeBox[slot]
}

// fieldingPitcher is the pitcher currently on the mound.
func (s *State) fieldingPitcher() *Pitcher {
	if s.IsTop {
		return s.HomePitcher
	}
	return s.AwayPitcher
}

// fieldingPitcherLine is the appearance line being charged right now.
func (s *State) fieldingPitcherLine() *PitcherLine {
	if s.IsTop {
		return &s.HomePitcherLine
	}
	return &s.AwayPitcherLine
}

// fieldingPitchCount is the pitch counter for the side on the mound.
func (s *State) fieldingPitchCount() *int {
	if s.IsTop {
		return &s.HomePitchCount
	}
	return &s.AwayPitchCount
}

// log appends to the play log and sets the last-play pointer.
func (s *State) log(msg string) {
	s.PlayLog = append(s.PlayLog, msg)
	s.LastPlay = msg
}

// logf is log with formatting.
func (s *State) logf(format string, args ...any) {
	s.log(fmt.Sprintf(format, args...))
}

// reject records an explanatory message for an invalid action. Only the
// last-play pointer changes; counters and the play log stay untouched.
func (s *State) reject(msg string) {
	s.LastPlay = msg
}

// Snapshot returns an immutable deep copy of the record. The ordered
// sequence of snapshots taken after each transition replays the game.
func (s *State) Snapshot() *State {
	cp := *s
	cp.AwayScore = append([]int(nil), s.AwayScore...)
	cp.HomeScore = append([]int(nil), s.HomeScore...)
	cp.AwayLineup = append([]Player(nil), s.AwayLineup...)
	cp.HomeLineup = append([]Player(nil), s.HomeLineup...)
	cp.HomeBullpen = append([]Pitcher(nil), s.HomeBullpen...)
	cp.AwayBullpen = append([]Pitcher(nil), s.AwayBullpen...)
	cp.Scorecard = append([]ScorecardEntry(nil), s.Scorecard...)
	cp.PlayLog = append([]string(nil), s.PlayLog...)
	if s.HomePitcher != nil {
		p := *s.HomePitcher
		cp.HomePitcher = &p
	}
	if s.AwayPitcher != nil {
		p := *s.AwayPitcher
		cp.AwayPitcher = &p
	}
	cp.rng = nil
	return &cp
}

// RNG exposes the record's sampling source to the decision policies.
func (s *State) RNG() RandomSource { return s.rng }
