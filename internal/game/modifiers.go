// internal/game/modifiers.go
//
// The modifier pipeline: pure functions that take a weight distribution plus
// a context value and return an adjusted distribution. Stages compose in a
// fixed order for a live at-bat:
//
//	base table → stats → fatigue → weather → time of day → selection
//
// Order matters: later stages operate on already-adjusted weights. No stage
// mutates its input.

package game

import "math"

// League-average baselines for the stats adjustment.
const (
	leagueAVG    = 0.245
	leagueSLG    = 0.395
	leagueKRate  = 0.230
	leagueERA    = 4.30
	leagueKPer9  = 8.20
	leagueBBPer9 = 3.20
)

// maxStatAdj caps any single stat multiplier at ±50%.
const maxStatAdj = 0.50

var hitOutcomes = map[Outcome]bool{
	OutcomeSingle:  true,
	OutcomeDouble:  true,
	OutcomeTriple:  true,
	OutcomeHomerun: true,
}

var battedOutOutcomes = map[Outcome]bool{
	OutcomeGroundout: true,
	OutcomeFlyout:    true,
	OutcomeLineout:   true,
	OutcomePopout:    true,
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

// ApplyStatsMod adjusts a swing distribution for the batter's active stats
// and, when supplied, the pitcher's. Better hitters gain hit weight, power
// hitters gain homerun weight, strikeout-prone batters and high-K/9 pitchers
// raise the whiff weight. The result is renormalized so its total stays
// within 10% of the input total.
func ApplyStatsMod(w Weights, batter BattingStats, pitcher *PitchingStats) Weights {
	hitMult := clamp(batter.AVG/leagueAVG, 1-maxStatAdj, 1+maxStatAdj)
	powerMult := clamp(batter.SLG/leagueSLG, 1-maxStatAdj, 1+maxStatAdj)
	kMult := clamp(batter.KRate/leagueKRate, 1-maxStatAdj, 1+maxStatAdj)
	if batter.HRRate > 0 {
		// A documented HR rate sharpens the power multiplier beyond SLG alone.
		powerMult = clamp(powerMult*(1+batter.HRRate), 1-maxStatAdj, 1+maxStatAdj)
	}

	out := make(Weights, len(w))
	for o, v := range w {
		switch {
		case o == OutcomeStrikeSwinging:
			out[o] = v * kMult
		case o == OutcomeHomerun:
			out[o] = v * powerMult
		case hitOutcomes[o]:
			out[o] = v * hitMult
		case battedOutOutcomes[o]:
			out[o] = v * clamp(1/hitMult, 1-maxStatAdj, 1+maxStatAdj)
		default:
			out[o] = v
		}
	}

	if pitcher != nil {
		eraMult := clamp(pitcher.ERA/leagueERA, 1-maxStatAdj, 1+maxStatAdj)
		k9Mult := clamp(pitcher.KPer9/leagueKPer9, 1-maxStatAdj, 1+maxStatAdj)
		for o := range out {
			switch {
			case o == OutcomeStrikeSwinging:
				out[o] *= k9Mult
			case hitOutcomes[o]:
				out[o] *= eraMult
			}
		}
	}

	return renormalize(out, w.Total())
}

// ApplyTakeStatsMod adjusts a take distribution for the pitcher's command:
// a high BB/9 raises the ball weight, with strike_looking scaled inversely.
func ApplyTakeStatsMod(w Weights, pitcher PitchingStats) Weights {
	bbMult := clamp(pitcher.BBPer9/leagueBBPer9, 1-maxStatAdj, 1+maxStatAdj)
	out := make(Weights, len(w))
	for o, v := range w {
		if o == OutcomeBall {
			out[o] = v * bbMult
		} else {
			out[o] = v * clamp(1/bbMult, 1-maxStatAdj, 1+maxStatAdj)
		}
	}
	return renormalize(out, w.Total())
}

// fatigueKnee is the pitch count beyond which a pitcher starts degrading.
const fatigueKnee = 84

// ApplyFatigueMod scales hit weights up and swinging strikes down once the
// pitch count exceeds the knee. The factor grows linearly with every pitch
// past it, capped at ×1.5, so degradation is monotonic in the count.
func ApplyFatigueMod(w Weights, pitchCount int) Weights {
	if pitchCount <= fatigueKnee {
		return w.Clone()
	}
	factor := math.Min(1+0.01*float64(pitchCount-fatigueKnee), 1.5)
	out := make(Weights, len(w))
	for o, v := range w {
		switch {
		case hitOutcomes[o]:
			out[o] = v * factor
		case o == OutcomeStrikeSwinging:
			out[o] = v / factor
		default:
			out[o] = v
		}
	}
	return out
}

// weatherMults maps each recognized weather condition to per-outcome
// multipliers. Dome and unrecognized conditions are a no-op.
var weatherMults = map[Weather]map[Outcome]float64{
	WeatherWindOut: {
		OutcomeHomerun: 1.25,
		OutcomeFlyout:  1.05,
	},
	WeatherWindIn: {
		OutcomeHomerun: 0.75,
		OutcomeDouble:  0.95,
		OutcomeFlyout:  1.05,
	},
	WeatherRain: {
		OutcomeBall:           1.15,
		OutcomeStrikeSwinging: 0.90,
		OutcomeGroundout:      1.05,
	},
}

// ApplyWeatherMod applies the condition's multipliers; unknown conditions
// (and dome) leave every key unchanged.
func ApplyWeatherMod(w Weights, cond Weather) Weights {
	mults, ok := weatherMults[cond]
	out := w.Clone()
	if !ok {
		return out
	}
	for o, m := range mults {
		if v, present := out[o]; present {
			out[o] = v * m
		}
	}
	return out
}

// ApplyTimeOfDayMod applies fixed visibility multipliers. Night games favor
// the pitcher; day games favor the hitter; twilight is a softer night.
// Unknown values are the identity.
func ApplyTimeOfDayMod(w Weights, tod TimeOfDay) Weights {
	out := w.Clone()
	var hitMult, whiffMult, outMult float64
	switch tod {
	case TimeNight:
		hitMult, whiffMult, outMult = 0.95, 1.10, 1.05
	case TimeDay:
		hitMult, whiffMult, outMult = 1.03, 0.95, 1.0
	case TimeTwilight:
		hitMult, whiffMult, outMult = 0.97, 1.05, 1.0
	default:
		return out
	}
	for o, v := range out {
		switch {
		case hitOutcomes[o]:
			out[o] = v * hitMult
		case o == OutcomeStrikeSwinging:
			out[o] = v * whiffMult
		case o == OutcomeGroundout || o == OutcomeFlyout:
			out[o] = v * outMult
		}
	}
	return out
}

// ErrorChance is the per-play probability that a routine out turns into a
// reached-base-on-error, keyed by time of day. Twilight is the hardest
// fielding light; night games play under stadium lights.
func ErrorChance(tod TimeOfDay) float64 {
	switch tod {
	case TimeDay:
		return 0.04
	case TimeTwilight:
		return 0.06
	case TimeNight:
		return 0.02
	default:
		return 0.02
	}
}

// renormalize rescales weights toward the original total so stacked
// multipliers cannot drift the distribution mass. Entries keep a small
// positive floor so no outcome is silently eliminated.
func renormalize(w Weights, originalTotal float64) Weights {
	total := w.Total()
	if total <= 0 || originalTotal <= 0 {
		return w
	}
	scale := originalTotal / total
	out := make(Weights, len(w))
	for o, v := range w {
		out[o] = math.Max(v*scale, 0.01)
	}
	return out
}
