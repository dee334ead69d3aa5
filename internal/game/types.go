// internal/game/types.go
//
// Core type definitions for the baseball simulation engine.
// Defines:
//   - Outcome / PitchType / Weather / TimeOfDay / Side / Role / Status enums.
//   - Player and stat shapes (season stats plus optional home/away splits).
//   - State: the single mutable game record owned by the rules engine.
//   - Snapshot-supporting sub-records: box score lines, pitcher lines,
//     scorecard entries.

package game

// Outcome is one discrete play result drawn from the probability tables.
type Outcome string

const (
	OutcomeBall           Outcome = "ball"
	OutcomeStrikeLooking  Outcome = "strike_looking"
	OutcomeStrikeSwinging Outcome = "strike_swinging"
	OutcomeFoul           Outcome = "foul"
	OutcomeSingle         Outcome = "single"
	OutcomeDouble         Outcome = "double"
	OutcomeTriple         Outcome = "triple"
	OutcomeHomerun        Outcome = "homerun"
	OutcomeGroundout      Outcome = "groundout"
	OutcomeFlyout         Outcome = "flyout"
	OutcomeLineout        Outcome = "lineout"
	OutcomePopout         Outcome = "popout"
	OutcomeSacrificeOut   Outcome = "sacrifice_out"
)

// PitchType identifies what the pitcher throws.
type PitchType string

const (
	PitchFastball  PitchType = "fastball"
	PitchCurveball PitchType = "curveball"
	PitchSlider    PitchType = "slider"
	PitchChangeup  PitchType = "changeup"
)

// BatAction is the batter's choice for one pitch.
type BatAction string

const (
	ActionSwing BatAction = "swing"
	ActionTake  BatAction = "take"
	ActionBunt  BatAction = "bunt"
)

// Weather names a game-wide weather condition. Unknown values are a no-op
// in the modifier pipeline.
type Weather string

const (
	WeatherClear   Weather = "clear"
	WeatherWindOut Weather = "wind_out"
	WeatherWindIn  Weather = "wind_in"
	WeatherRain    Weather = "rain"
	WeatherDome    Weather = "dome"
)

// TimeOfDay affects hit/strikeout weights and the fielding error chance.
type TimeOfDay string

const (
	TimeDay      TimeOfDay = "day"
	TimeTwilight TimeOfDay = "twilight"
	TimeNight    TimeOfDay = "night"
)

// Side distinguishes the two clubs.
type Side string

const (
	SideHome Side = "home"
	SideAway Side = "away"
)

// Role is what the user-controlled side is doing right now. It is derived
// from PlayerSide and the half-inning flag, never stored independently.
type Role string

const (
	RolePitching Role = "pitching"
	RoleBatting  Role = "batting"
)

// Status is the game lifecycle state.
type Status string

const (
	StatusActive Status = "active"
	StatusFinal  Status = "final"
)

// ScorecardResult classifies one completed plate appearance.
type ScorecardResult string

const (
	ResultSingle       ScorecardResult = "single"
	ResultDouble       ScorecardResult = "double"
	ResultTriple       ScorecardResult = "triple"
	ResultHomerun      ScorecardResult = "homerun"
	ResultWalk         ScorecardResult = "walk"
	ResultStrikeout    ScorecardResult = "strikeout"
	ResultGroundout    ScorecardResult = "groundout"
	ResultFlyout       ScorecardResult = "flyout"
	ResultLineout      ScorecardResult = "lineout"
	ResultPopout       ScorecardResult = "popout"
	ResultDoublePlay   ScorecardResult = "double_play"
	ResultSacrifice    ScorecardResult = "sacrifice_out"
	ResultReachedError ScorecardResult = "reached_on_error"
)

// BattingStats are a batter's season (or split) rate stats.
type BattingStats struct {
	AVG    float64 `json:"avg" yaml:"avg"`
	SLG    float64 `json:"slg" yaml:"slg"`
	KRate  float64 `json:"k_rate" yaml:"k_rate"`
	HRRate float64 `json:"hr_rate,omitempty" yaml:"hr_rate,omitempty"`
}

// PitchingStats are a pitcher's season (or split) rate stats.
type PitchingStats struct {
	ERA    float64 `json:"era" yaml:"era"`
	KPer9  float64 `json:"k_per_9" yaml:"k_per_9"`
	BBPer9 float64 `json:"bb_per_9" yaml:"bb_per_9"`
}

// BattingSplits condition a batter's stats on the team's home/away role.
type BattingSplits struct {
	Home BattingStats `json:"home" yaml:"home"`
	Away BattingStats `json:"away" yaml:"away"`
}

// PitchingSplits condition a pitcher's stats on the team's home/away role.
type PitchingSplits struct {
	Home PitchingStats `json:"home" yaml:"home"`
	Away PitchingStats `json:"away" yaml:"away"`
}

// Player is an immutable lineup entry: identity plus season stats and
// optional splits.
type Player struct {
	ID       int            `json:"id"`
	Name     string         `json:"name"`
	Position string         `json:"position"`
	Stats    BattingStats   `json:"stats"`
	Splits   *BattingSplits `json:"splits,omitempty"`
}

// ActiveStats resolves the stats used for a plate appearance: the split
// matching the batting team's side when splits exist, else season stats.
func (p *Player) ActiveStats(side Side) BattingStats {
	if p.Splits != nil {
		if side == SideHome {
			return p.Splits.Home
		}
		return p.Splits.Away
	}
	return p.Stats
}

// Pitcher is an immutable pitching entry with optional home/away splits.
type Pitcher struct {
	ID     int             `json:"id"`
	Name   string          `json:"name"`
	Stats  PitchingStats   `json:"stats"`
	Splits *PitchingSplits `json:"splits,omitempty"`
}

// ActiveStats resolves the pitcher's stats for the side he pitches for.
func (p *Pitcher) ActiveStats(side Side) PitchingStats {
	if p.Splits != nil {
		if side == SideHome {
			return p.Splits.Home
		}
		return p.Splits.Away
	}
	return p.Stats
}

// BoxScoreLine is one batter's counting stats, aligned 1:1 with the lineup.
type BoxScoreLine struct {
	AB      int `json:"ab"`
	R       int `json:"r"`
	H       int `json:"h"`
	Doubles int `json:"doubles"`
	Triples int `json:"triples"`
	HR      int `json:"hr"`
	RBI     int `json:"rbi"`
	BB      int `json:"bb"`
	SO      int `json:"so"`
	SB      int `json:"sb"`
}

// PitcherLine is the appearance line for the side's current pitcher.
type PitcherLine struct {
	PitcherID   int `json:"pitcher_id"`
	OutsPitched int `json:"outs_pitched"` // thirds of innings
	Hits        int `json:"hits"`
	Runs        int `json:"runs"`
	EarnedRuns  int `json:"earned_runs"`
	Walks       int `json:"walks"`
	Strikeouts  int `json:"strikeouts"`
}

// ScorecardEntry records the terminal classification of one plate appearance.
type ScorecardEntry struct {
	Inning int             `json:"inning"`
	IsTop  bool            `json:"is_top"`
	Batter string          `json:"batter"`
	Result ScorecardResult `json:"result"`
	RBI    int             `json:"rbi"`
}

// noRunner marks an empty runner slot in State.Runners.
const noRunner = -1

// State is the single mutable game record. It is owned exclusively by the
// rules engine in this package; callers must not mutate it directly and must
// not invoke operations concurrently on the same record.
type State struct {
	GameID string `json:"game_id"`
	Inning int    `json:"inning"`
	IsTop  bool   `json:"is_top"`

	Outs    int `json:"outs"`
	Balls   int `json:"balls"`
	Strikes int `json:"strikes"`

	// Bases[i] is occupied iff Runners[i] != -1; Runners holds the lineup
	// slot of the occupying runner. errRunners flags runners who reached on
	// a fielding error (their runs score unearned).
	Bases      [3]bool `json:"bases"`
	Runners    [3]int  `json:"runners"`
	errRunners [3]bool

	AwayScore  []int `json:"away_score"`
	HomeScore  []int `json:"home_score"`
	AwayTotal  int   `json:"away_total"`
	HomeTotal  int   `json:"home_total"`
	AwayHits   int   `json:"away_hits"`
	HomeHits   int   `json:"home_hits"`
	AwayErrors int   `json:"away_errors"`
	HomeErrors int   `json:"home_errors"`

	AwayTeam         string `json:"away_team,omitempty"`
	HomeTeam         string `json:"home_team,omitempty"`
	AwayAbbreviation string `json:"away_abbreviation,omitempty"`
	HomeAbbreviation string `json:"home_abbreviation,omitempty"`

	AwayLineup []Player `json:"away_lineup,omitempty"`
	HomeLineup []Player `json:"home_lineup,omitempty"`

	AwayBox [9]BoxScoreLine `json:"away_box"`
	HomeBox [9]BoxScoreLine `json:"home_box"`

	AwayBatterIdx int `json:"away_batter_idx"`
	HomeBatterIdx int `json:"home_batter_idx"`

	CurrentBatterIndex int    `json:"current_batter_index"`
	CurrentBatterName  string `json:"current_batter_name"`

	HomePitcher *Pitcher `json:"home_pitcher,omitempty"`
	AwayPitcher *Pitcher `json:"away_pitcher,omitempty"`

	HomePitcherLine PitcherLine `json:"home_pitcher_line"`
	AwayPitcherLine PitcherLine `json:"away_pitcher_line"`

	HomePitchCount int `json:"home_pitch_count"`
	AwayPitchCount int `json:"away_pitch_count"`

	HomeBullpen []Pitcher `json:"home_bullpen,omitempty"`
	AwayBullpen []Pitcher `json:"away_bullpen,omitempty"`

	Weather   Weather   `json:"weather,omitempty"`
	TimeOfDay TimeOfDay `json:"time_of_day,omitempty"`

	// PlayerSide is fixed for the life of the game; PlayerRole is recomputed
	// from PlayerSide and IsTop on construction and at every half-inning flip.
	PlayerSide Side   `json:"player_side"`
	PlayerRole Role   `json:"player_role"`
	GameStatus Status `json:"game_status"`

	Scorecard []ScorecardEntry `json:"scorecard"`
	PlayLog   []string         `json:"play_log"`
	LastPlay  string           `json:"last_play"`

	// rng is the single sampling source for every probability draw made by
	// operations on this record. Tests substitute deterministic sources.
	rng RandomSource

	tuning Tuning
}
