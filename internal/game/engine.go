// internal/game/engine.go
//
// The rules engine: public operations on the game record and the shared
// outcome-resolution path. All operations validate the game status and the
// derived player role before acting; a rejected action updates only the
// last-play message and leaves every counter untouched.

package game

import (
	"strings"
)

// atBatOpts carries the optional outcome hooks for ProcessAtBat. Both are
// explicit arguments rather than ambient state so tests and production share
// the same seam.
type atBatOpts struct {
	override *Outcome
	filter   func(Outcome) Outcome
}

// AtBatOption configures one ProcessAtBat call.
type AtBatOption func(*atBatOpts)

// WithOutcomeOverride replaces the sampled outcome before resolution.
func WithOutcomeOverride(o Outcome) AtBatOption {
	return func(opts *atBatOpts) { opts.override = &o }
}

// WithOutcomeFilter rewrites the sampled outcome before resolution, e.g. to
// suppress extra-base hits in a scenario test.
func WithOutcomeFilter(f func(Outcome) Outcome) AtBatOption {
	return func(opts *atBatOpts) { opts.filter = f }
}

// ProcessPitch handles one pitch thrown by the user. The CPU batter decides
// swing or take and the outcome feeds the shared resolution path.
func (s *State) ProcessPitch(pt PitchType) {
	if s.GameStatus != StatusActive {
		s.reject("Game is final — no more pitches.")
		return
	}
	if s.PlayerRole != RolePitching {
		s.reject("You're batting right now, not pitching!")
		return
	}
	if _, ok := swingOutcomes[pt]; !ok {
		s.reject("Unknown pitch type: " + string(pt))
		return
	}

	pc := s.fieldingPitchCount()
	*pc++
	batter := s.CurrentBatter()

	swings := DecideSwing(s.rng, s.Balls, s.Strikes)
	outcome := s.resolvePitchOutcome(pt, swings)
	action := "takes"
	if swings {
		action = "swings"
	}
	msg := "You throw a " + string(pt) + ". " + batter.Name + " " + action + ": " + formatOutcome(outcome) + "!"
	s.applyOutcome(outcome, msg)
}

// ProcessAtBat handles one pitch while the user bats. The CPU pitcher picks
// the pitch; for a bunt the dedicated bunt table resolves instead. If the
// CPU pitcher has reached the replacement ceiling, the next bullpen arm takes
// over before the pitch.
func (s *State) ProcessAtBat(action BatAction, opts ...AtBatOption) {
	if s.GameStatus != StatusActive {
		s.reject("Game is final — no more at-bats.")
		return
	}
	if s.PlayerRole != RoleBatting {
		s.reject("You're pitching right now, not batting!")
		return
	}
	if action != ActionSwing && action != ActionTake && action != ActionBunt {
		s.reject("Unknown action: " + string(action))
		return
	}

	var o atBatOpts
	for _, opt := range opts {
		opt(&o)
	}

	s.maybeAutoReplacePitcher()

	pt := PickPitch(s.rng)
	pc := s.fieldingPitchCount()
	*pc++

	if action == ActionBunt {
		outcome := BuntTable().Pick(s.rng)
		outcome = o.commit(outcome)
		msg := "Pitcher throws a " + string(pt) + ". You square to bunt: " + formatOutcome(outcome) + "!"
		s.applyBuntOutcome(outcome, msg)
		return
	}

	outcome := s.resolvePitchOutcome(pt, action == ActionSwing)
	outcome = o.commit(outcome)
	verb := "take"
	if action == ActionSwing {
		verb = "swing"
	}
	msg := "Pitcher throws a " + string(pt) + ". You " + verb + ": " + formatOutcome(outcome) + "!"
	s.applyOutcome(outcome, msg)
}

// commit applies the override and filter hooks, override first.
func (o *atBatOpts) commit(sampled Outcome) Outcome {
	out := sampled
	if o.override != nil {
		out = *o.override
	}
	if o.filter != nil {
		out = o.filter(out)
	}
	return out
}

// resolvePitchOutcome runs the modifier pipeline for one live pitch:
// base table → stats → fatigue → weather → time of day → selection.
func (s *State) resolvePitchOutcome(pt PitchType, swings bool) Outcome {
	pitcher := s.fieldingPitcher()

	if !swings {
		table, _ := TakeTable(pt)
		if pitcher != nil {
			table = ApplyTakeStatsMod(table, pitcher.ActiveStats(s.fieldingSide()))
		}
		table = ApplyWeatherMod(table, s.Weather)
		return table.Pick(s.rng)
	}

	table, _ := SwingTable(pt)
	batter := s.CurrentBatter().ActiveStats(s.battingSide())
	var pstats *PitchingStats
	if pitcher != nil {
		st := pitcher.ActiveStats(s.fieldingSide())
		pstats = &st
	}
	table = ApplyStatsMod(table, batter, pstats)
	table = ApplyFatigueMod(table, *s.fieldingPitchCount())
	table = ApplyWeatherMod(table, s.Weather)
	table = ApplyTimeOfDayMod(table, s.TimeOfDay)
	return table.Pick(s.rng)
}

// maybeAutoReplacePitcher swaps in the next bullpen arm for the CPU side
// once its pitcher hits the replacement ceiling, so the acting pitcher for
// this plate appearance starts fresh.
func (s *State) maybeAutoReplacePitcher() {
	side := s.fieldingSide()
	count := *s.fieldingPitchCount()
	if count < s.tuning.AutoReplacePitchCount {
		return
	}
	var pen []Pitcher
	if side == SideHome {
		pen = s.HomeBullpen
	} else {
		pen = s.AwayBullpen
	}
	if len(pen) == 0 {
		return
	}
	s.SwitchPitcher(side, pen[0])
}

// SwitchPitcher replaces the side's current pitcher with the reliever,
// resets the side's pitch count, and starts a fresh appearance line. The
// reliever's active stats resolve at each use from the side he pitches for,
// never cached across changes.
func (s *State) SwitchPitcher(side Side, reliever Pitcher) {
	if s.GameStatus != StatusActive {
		s.reject("Game is final — no pitching changes.")
		return
	}
	r := reliever
	if side == SideHome {
		s.HomePitcher = &r
		s.HomePitchCount = 0
		s.HomePitcherLine = PitcherLine{PitcherID: r.ID}
		s.HomeBullpen = removePitcher(s.HomeBullpen, r.ID)
	} else {
		s.AwayPitcher = &r
		s.AwayPitchCount = 0
		s.AwayPitcherLine = PitcherLine{PitcherID: r.ID}
		s.AwayBullpen = removePitcher(s.AwayBullpen, r.ID)
	}
	s.logf("Pitching change: %s takes the mound.", r.Name)
}

func removePitcher(pen []Pitcher, id int) []Pitcher {
	out := pen[:0]
	for _, p := range pen {
		if p.ID != id {
			out = append(out, p)
		}
	}
	return out
}

// applyOutcome routes a sampled swing/take outcome to its handler.
func (s *State) applyOutcome(outcome Outcome, msg string) {
	s.log(msg)

	switch {
	case outcome == OutcomeBall:
		s.Balls++
		if s.Balls >= 4 {
			s.walk()
		}
	case outcome == OutcomeStrikeLooking || outcome == OutcomeStrikeSwinging:
		s.Strikes++
		if s.Strikes >= 3 {
			s.strikeout("Strikeout!")
		}
	case outcome == OutcomeFoul:
		// A foul never produces strike three.
		if s.Strikes < 2 {
			s.Strikes++
		}
	case battedOutOutcomes[outcome]:
		s.battedOut(outcome)
	case hitOutcomes[outcome]:
		s.recordHit(outcome)
	default:
		// Out-of-vocabulary outcome from a filter hook: recoverable.
		s.log("No play: unrecognized outcome " + string(outcome))
	}
}

// applyBuntOutcome resolves an outcome drawn from the bunt table.
func (s *State) applyBuntOutcome(outcome Outcome, msg string) {
	s.log(msg)

	switch outcome {
	case OutcomeSacrificeOut:
		s.sacrificeBunt()
	case OutcomeFoul:
		if s.Strikes >= 2 {
			s.strikeout("Bunt foul with two strikes — strikeout!")
			return
		}
		s.Strikes++
	case OutcomePopout:
		// Bunt popped up: the batter is out and every runner holds.
		s.completePlateAppearance(ResultPopout, true)
		s.recordOuts(1)
	case OutcomeSingle:
		s.buntSingle()
	case OutcomeGroundout:
		// Beaten to the bag with no advancement: a plain out, no sacrifice.
		s.completePlateAppearance(ResultGroundout, true)
		s.recordOuts(1)
	}
}

// walk handles ball four: forced runners advance, the batter takes first.
func (s *State) walk() {
	batterSlot := s.batterSlot()
	box := s.batterBox()
	box.BB++
	s.fieldingPitcherLine().Walks++

	runs := 0
	if s.Bases[0] && s.Bases[1] && s.Bases[2] {
		s.scoreRun(s.Runners[2], !s.errRunners[2], true)
		s.clearBase(2)
		runs++
	}
	if s.Bases[0] && s.Bases[1] {
		s.moveRunner(1, 2)
	}
	if s.Bases[0] {
		s.moveRunner(0, 1)
	}
	s.placeRunner(0, batterSlot, false)

	s.logf("%s walks.", s.CurrentBatterName)
	if runs > 0 {
		s.logRuns(runs)
	}
	s.addScorecard(ResultWalk, runs)
	s.resetCount()
	s.advanceBatter()
	s.checkWalkOff()
}

// strikeout retires the batter on strikes.
func (s *State) strikeout(msg string) {
	s.batterBox().SO++
	pl := s.fieldingPitcherLine()
	pl.Strikeouts++
	pl.OutsPitched++
	s.log(msg)
	s.addScorecard(ResultStrikeout, 0)
	s.Outs++
	s.resetCount()
	s.advanceBatter()
	s.afterOuts()
}

// battedOut handles groundouts, flyouts, lineouts, and popouts, including
// the fielding-error conversion and the groundout double-play branch.
func (s *State) battedOut(outcome Outcome) {
	if s.rng.Float64() < ErrorChance(s.TimeOfDay) {
		s.reachedOnError()
		return
	}

	// Double play: groundout, runner on first, fewer than two outs.
	if outcome == OutcomeGroundout && s.Bases[0] && s.Outs < 2 {
		if s.rng.Float64() < s.tuning.DoublePlayChance {
			s.doublePlay()
			return
		}
	}

	s.completePlateAppearance(outResult(outcome), true)
	s.recordOuts(1)
}

// doublePlay turns a groundout into two outs: the first-base runner is
// erased, the batter is out, trail runners advance, a runner on third scores.
func (s *State) doublePlay() {
	s.batterBox().AB++
	pl := s.fieldingPitcherLine()
	pl.OutsPitched += 2

	s.clearBase(0)
	rbi := 0
	if s.Bases[2] {
		s.scoreRun(s.Runners[2], !s.errRunners[2], true)
		s.clearBase(2)
		rbi++
	}
	if s.Bases[1] {
		s.moveRunner(1, 2)
	}

	s.log("Double play!")
	if rbi > 0 {
		s.logRuns(rbi)
	}
	s.addScorecard(ResultDoublePlay, rbi)
	s.Outs += 2
	s.resetCount()
	s.advanceBatter()
	s.checkWalkOff()
	s.afterOuts()
}

// reachedOnError converts a routine out into the batter reaching first on a
// fielding error. Runners advance one base; any run is unearned with no RBI.
// The error is charged to the fielding team.
func (s *State) reachedOnError() {
	batterSlot := s.batterSlot()
	s.batterBox().AB++
	if s.fieldingSide() == SideHome {
		s.HomeErrors++
	} else {
		s.AwayErrors++
	}

	runs := 0
	if s.Bases[2] {
		s.scoreRun(s.Runners[2], false, false)
		s.clearBase(2)
		runs++
	}
	if s.Bases[1] {
		s.moveRunner(1, 2)
	}
	if s.Bases[0] {
		s.moveRunner(0, 1)
	}
	s.placeRunner(0, batterSlot, true)

	s.logf("%s reaches on a fielding error!", s.CurrentBatterName)
	if runs > 0 {
		s.logRuns(runs)
	}
	s.addScorecard(ResultReachedError, 0)
	s.resetCount()
	s.advanceBatter()
	s.checkWalkOff()
}

// recordHit applies a single, double, triple, or homerun.
func (s *State) recordHit(hit Outcome) {
	batterSlot := s.batterSlot()
	box := s.batterBox()
	box.AB++
	box.H++
	if s.battingSide() == SideHome {
		s.HomeHits++
	} else {
		s.AwayHits++
	}
	pl := s.fieldingPitcherLine()
	pl.Hits++

	runs := 0
	score := func(base int) {
		s.scoreRun(s.Runners[base], !s.errRunners[base], true)
		s.clearBase(base)
		runs++
	}

	switch hit {
	case OutcomeSingle:
		if s.Bases[2] {
			score(2)
		}
		if s.Bases[1] {
			s.moveRunner(1, 2)
		}
		if s.Bases[0] {
			s.moveRunner(0, 1)
		}
		s.placeRunner(0, batterSlot, false)
	case OutcomeDouble:
		box.Doubles++
		if s.Bases[2] {
			score(2)
		}
		if s.Bases[1] {
			score(1)
		}
		if s.Bases[0] {
			s.moveRunner(0, 2)
		}
		s.placeRunner(1, batterSlot, false)
	case OutcomeTriple:
		box.Triples++
		for base := 2; base >= 0; base-- {
			if s.Bases[base] {
				score(base)
			}
		}
		s.placeRunner(2, batterSlot, false)
	case OutcomeHomerun:
		box.HR++
		for base := 2; base >= 0; base-- {
			if s.Bases[base] {
				score(base)
			}
		}
		// The batter rounds the bases too.
		s.scoreRun(batterSlot, true, true)
		runs++
	}

	if runs > 0 {
		s.logRuns(runs)
	}
	s.addScorecard(hitResult(hit), runs)
	s.resetCount()
	s.advanceBatter()
	s.checkWalkOff()
}

// sacrificeBunt advances every runner exactly one base and retires the
// batter without charging an at-bat.
func (s *State) sacrificeBunt() {
	rbi := 0
	if s.Bases[2] {
		s.scoreRun(s.Runners[2], !s.errRunners[2], true)
		s.clearBase(2)
		rbi++
	}
	if s.Bases[1] {
		s.moveRunner(1, 2)
	}
	if s.Bases[0] {
		s.moveRunner(0, 1)
	}

	s.fieldingPitcherLine().OutsPitched++
	s.log("Sacrifice bunt!")
	if rbi > 0 {
		s.logRuns(rbi)
	}
	s.addScorecard(ResultSacrifice, rbi)
	s.Outs++
	s.resetCount()
	s.advanceBatter()
	s.checkWalkOff()
	s.afterOuts()
}

// buntSingle puts the batter on first with every runner moving up one base.
func (s *State) buntSingle() {
	batterSlot := s.batterSlot()
	box := s.batterBox()
	box.AB++
	box.H++
	if s.battingSide() == SideHome {
		s.HomeHits++
	} else {
		s.AwayHits++
	}
	s.fieldingPitcherLine().Hits++

	runs := 0
	if s.Bases[2] {
		s.scoreRun(s.Runners[2], !s.errRunners[2], true)
		s.clearBase(2)
		runs++
	}
	if s.Bases[1] {
		s.moveRunner(1, 2)
	}
	if s.Bases[0] {
		s.moveRunner(0, 1)
	}
	s.placeRunner(0, batterSlot, false)

	s.log("Bunt single!")
	if runs > 0 {
		s.logRuns(runs)
	}
	s.addScorecard(ResultSingle, runs)
	s.resetCount()
	s.advanceBatter()
	s.checkWalkOff()
}

// AttemptSteal sends the runner on the given base (0 = first, 1 = second,
// 2 = third, stealing home). Success for second and third rolls the tunable
// steal chance; stealing home uses its fixed window.
func (s *State) AttemptSteal(base int) {
	if s.GameStatus != StatusActive {
		s.reject("Game is final — no more steals.")
		return
	}
	if s.PlayerRole != RoleBatting {
		s.reject("Can't steal — you're not batting right now.")
		return
	}
	if base < 0 || base > 2 {
		s.reject("Can't steal — invalid base.")
		return
	}
	if !s.Bases[base] {
		if base == 2 {
			s.reject("Can't steal home — no runner on 3rd.")
		} else {
			s.reject("Can't steal — no runner on that base.")
		}
		return
	}

	runnerSlot := s.Runners[base]
	runnerName := s.battingLineup()[runnerSlot].Name

	if base == 2 {
		if s.rng.Float64() < s.tuning.StealHomeSuccess {
			earned := !s.errRunners[2]
			s.clearBase(2)
			s.runnerBox(runnerSlot).SB++
			s.scoreRun(runnerSlot, earned, false)
			s.logf("%s steals home!", runnerName)
			s.checkWalkOff()
		} else {
			s.clearBase(2)
			s.Outs++
			s.fieldingPitcherLine().OutsPitched++
			s.logf("%s caught stealing home!", runnerName)
			s.afterOuts()
		}
		return
	}

	if s.Bases[base+1] {
		s.reject("Can't steal — the next base is occupied.")
		return
	}

	if s.rng.Float64() < s.tuning.StealSuccess {
		err := s.errRunners[base]
		s.clearBase(base)
		s.placeRunner(base+1, runnerSlot, err)
		s.runnerBox(runnerSlot).SB++
		s.logf("%s steals %s!", runnerName, baseName(base+1))
	} else {
		s.clearBase(base)
		s.Outs++
		s.fieldingPitcherLine().OutsPitched++
		s.logf("%s caught stealing!", runnerName)
		s.afterOuts()
	}
}

// AttemptPickoff has the pitcher throw to the given base. A fixed window
// decides whether the runner is picked off.
func (s *State) AttemptPickoff(base int) {
	if s.GameStatus != StatusActive {
		s.reject("Game is final — no more pickoffs.")
		return
	}
	if s.PlayerRole != RolePitching {
		s.reject("You can only attempt a pickoff while pitching.")
		return
	}
	if base < 0 || base > 2 || !s.Bases[base] {
		s.reject("Pickoff throw — no runner on that base.")
		return
	}

	runnerSlot := s.Runners[base]
	runnerName := s.battingLineup()[runnerSlot].Name

	if s.rng.Float64() < s.tuning.PickoffSuccess {
		s.clearBase(base)
		s.Outs++
		s.fieldingPitcherLine().OutsPitched++
		s.logf("Picked off! %s is out at %s.", runnerName, baseName(base))
		s.afterOuts()
	} else {
		s.logf("Pickoff throw to %s — %s dives back safe.", baseName(base), runnerName)
	}
}

// --- base-slot helpers ----------------------------------------------------

func (s *State) placeRunner(base, slot int, fromError bool) {
	s.Bases[base] = true
	s.Runners[base] = slot
	s.errRunners[base] = fromError
}

func (s *State) clearBase(base int) {
	s.Bases[base] = false
	s.Runners[base] = noRunner
	s.errRunners[base] = false
}

func (s *State) moveRunner(from, to int) {
	s.placeRunner(to, s.Runners[from], s.errRunners[from])
	s.clearBase(from)
}

// scoreRun credits one run: the team's inning line and total, the scoring
// runner's R, the pitcher's line (earned when the runner did not reach on an
// error), and optionally the batter's RBI.
func (s *State) scoreRun(runnerSlot int, earned, rbi bool) {
	idx := s.Inning - 1
	if s.IsTop {
		s.AwayScore[idx]++
		s.AwayTotal++
	} else {
		s.HomeScore[idx]++
		s.HomeTotal++
	}
	if runnerSlot >= 0 {
		s.runnerBox(runnerSlot).R++
	}
	pl := s.fieldingPitcherLine()
	pl.Runs++
	if earned {
		pl.EarnedRuns++
	}
	if rbi {
		s.batterBox().RBI++
	}
}

func (s *State) resetCount() {
	s.Balls = 0
	s.Strikes = 0
}

// recordOuts adds outs from a completed plate appearance and runs the
// half-inning check.
func (s *State) recordOuts(n int) {
	s.Outs += n
	s.resetCount()
	s.advanceBatter()
	s.afterOuts()
}

// completePlateAppearance books the scorecard entry (and at-bat when
// charged) for outs that do not go through recordHit/strikeout.
func (s *State) completePlateAppearance(result ScorecardResult, chargeAB bool) {
	if chargeAB {
		s.batterBox().AB++
	}
	s.fieldingPitcherLine().OutsPitched++
	s.addScorecard(result, 0)
}

// afterOuts ends the half-inning once three outs are recorded. A game that
// just ended on a walk-off never transitions further.
func (s *State) afterOuts() {
	if s.GameStatus != StatusActive {
		return
	}
	if s.Outs >= 3 {
		s.endHalfInning()
	}
}

// addScorecard appends one plate-appearance record.
func (s *State) addScorecard(result ScorecardResult, rbi int) {
	s.Scorecard = append(s.Scorecard, ScorecardEntry{
		Inning: s.Inning,
		IsTop:  s.IsTop,
		Batter: s.CurrentBatterName,
		Result: result,
		RBI:    rbi,
	})
}

func (s *State) logRuns(n int) {
	s.logf("%d run(s) score!", n)
}

// endHalfInning resets the field, flips the half (or advances the inning),
// rederives the player role, and runs the game-ending checks.
func (s *State) endHalfInning() {
	s.Outs = 0
	s.resetCount()
	for base := 0; base < 3; base++ {
		s.clearBase(base)
	}

	var half string
	if s.IsTop {
		s.IsTop = false
		half = "Bottom"

		// Home already leads entering its last at-bat: no bottom half needed.
		if s.Inning >= regulationInnings && s.HomeTotal > s.AwayTotal {
			s.PlayerRole = s.deriveRole()
			s.endGame()
			return
		}
	} else {
		s.Inning++
		s.IsTop = true
		half = "Top"

		// A completed inning at or past regulation ends the game unless tied.
		if s.Inning > regulationInnings && s.HomeTotal != s.AwayTotal {
			s.PlayerRole = s.deriveRole()
			s.endGame()
			return
		}

		// Extra innings: grow the line score.
		if s.Inning > len(s.AwayScore) {
			s.AwayScore = append(s.AwayScore, 0)
			s.HomeScore = append(s.HomeScore, 0)
		}
	}

	s.PlayerRole = s.deriveRole()
	s.refreshBatter()
	s.logf("--- %s of inning %d ---", half, s.Inning)
}

// checkWalkOff ends the game the moment the home team leads in the bottom
// of the ninth or later.
func (s *State) checkWalkOff() {
	if s.GameStatus != StatusActive {
		return
	}
	if s.Inning >= regulationInnings && !s.IsTop && s.HomeTotal > s.AwayTotal {
		s.endGame()
	}
}

// endGame finalizes the record. Status flips to final exactly once and the
// closing message reads from the user's perspective.
func (s *State) endGame() {
	if s.GameStatus == StatusFinal {
		return
	}
	s.GameStatus = StatusFinal

	homeName := s.HomeTeam
	if homeName == "" {
		homeName = "Home"
	}
	awayName := s.AwayTeam
	if awayName == "" {
		awayName = "Away"
	}

	playerTotal, cpuTotal := s.HomeTotal, s.AwayTotal
	if s.PlayerSide == SideAway {
		playerTotal, cpuTotal = s.AwayTotal, s.HomeTotal
	}
	verdict := "You lose!"
	if playerTotal > cpuTotal {
		verdict = "You win!"
	}
	s.logf("Game Over! Final: %s %d - %s %d. %s", homeName, s.HomeTotal, awayName, s.AwayTotal, verdict)
}

// --- formatting helpers ---------------------------------------------------

func outResult(o Outcome) ScorecardResult {
	switch o {
	case OutcomeGroundout:
		return ResultGroundout
	case OutcomeFlyout:
		return ResultFlyout
	case OutcomeLineout:
		return ResultLineout
	default:
		return ResultPopout
	}
}

func hitResult(o Outcome) ScorecardResult {
	switch o {
	case OutcomeSingle:
		return ResultSingle
	case OutcomeDouble:
		return ResultDouble
	case OutcomeTriple:
		return ResultTriple
	default:
		return ResultHomerun
	}
}

func baseName(base int) string {
	switch base {
	case 0:
		return "1st"
	case 1:
		return "2nd"
	default:
		return "3rd"
	}
}

// formatOutcome turns "strike_swinging" into "Strike Swinging" for the log.
func formatOutcome(o Outcome) string {
	words := strings.Split(string(o), "_")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
