// internal/game/tables.go
//
// Static outcome probability tables and the weighted selector.
//
// Weights are relative, not percentages: if "single" has weight 12 and the
// table totals 100, a single comes up 12% of the time. The swing tables vary
// by pitch type to reflect real tendencies — curveballs miss bats the most,
// sliders draw fouls, changeups induce groundouts, fastballs get hit hard.
// Take tables vary because breaking balls leave the zone more often than
// fastballs. The bunt table is not keyed by pitch type; its weights sum to
// exactly 100 and every weight is strictly positive.

package game

import "sort"

// Weights maps outcomes to positive relative weights.
type Weights map[Outcome]float64

// outcomeOrder is the canonical iteration order for weighted selection.
// A stable order keeps selection reproducible under a substituted
// RandomSource regardless of map iteration.
var outcomeOrder = []Outcome{
	OutcomeBall,
	OutcomeStrikeLooking,
	OutcomeStrikeSwinging,
	OutcomeFoul,
	OutcomeGroundout,
	OutcomeFlyout,
	OutcomeLineout,
	OutcomePopout,
	OutcomeSacrificeOut,
	OutcomeSingle,
	OutcomeDouble,
	OutcomeTriple,
	OutcomeHomerun,
}

// orderedKeys returns w's keys in canonical order; keys outside the known
// vocabulary follow in lexical order.
func (w Weights) orderedKeys() []Outcome {
	keys := make([]Outcome, 0, len(w))
	seen := make(map[Outcome]bool, len(w))
	for _, o := range outcomeOrder {
		if _, ok := w[o]; ok {
			keys = append(keys, o)
			seen[o] = true
		}
	}
	var extra []Outcome
	for o := range w {
		if !seen[o] {
			extra = append(extra, o)
		}
	}
	sort.Slice(extra, func(i, j int) bool { return extra[i] < extra[j] })
	return append(keys, extra...)
}

// Total sums the positive weights. Zero and negative entries do not count;
// they are excluded from the cumulative scan so a zero-weight key can never
// be selected over a positive-weight alternative.
func (w Weights) Total() float64 {
	var t float64
	for _, v := range w {
		if v > 0 {
			t += v
		}
	}
	return t
}

// Pick draws one outcome from the distribution. The draw is uniform in
// [0, total) and the first key whose cumulative weight exceeds it wins.
// Pick always returns a key present in w.
func (w Weights) Pick(rng RandomSource) Outcome {
	keys := w.orderedKeys()
	total := w.Total()
	if total <= 0 {
		// Degenerate table: fall back to the first key so the contract of
		// returning a present key still holds.
		return keys[0]
	}
	draw := rng.Float64() * total
	var cum float64
	var last Outcome
	for _, o := range keys {
		v := w[o]
		if v <= 0 {
			continue
		}
		cum += v
		last = o
		if draw < cum {
			return o
		}
	}
	return last
}

// Clone returns an independent copy of the distribution.
func (w Weights) Clone() Weights {
	out := make(Weights, len(w))
	for k, v := range w {
		out[k] = v
	}
	return out
}

// cpuPitchWeights is the CPU pitcher's pitch mix (~50% fastballs, matching
// the real-world share).
var cpuPitchWeights = map[PitchType]float64{
	PitchFastball:  50,
	PitchSlider:    20,
	PitchCurveball: 15,
	PitchChangeup:  15,
}

// swingOutcomes are the base distributions when the batter swings.
var swingOutcomes = map[PitchType]Weights{
	PitchFastball: {
		OutcomeStrikeSwinging: 25,
		OutcomeFoul:           20,
		OutcomeGroundout:      15,
		OutcomeFlyout:         12,
		OutcomeLineout:        4,
		OutcomePopout:         1,
		OutcomeSingle:         12,
		OutcomeDouble:         5,
		OutcomeTriple:         1,
		OutcomeHomerun:        5,
	},
	PitchCurveball: {
		OutcomeStrikeSwinging: 35,
		OutcomeFoul:           15,
		OutcomeGroundout:      15,
		OutcomeFlyout:         10,
		OutcomeLineout:        4,
		OutcomePopout:         1,
		OutcomeSingle:         10,
		OutcomeDouble:         4,
		OutcomeTriple:         1,
		OutcomeHomerun:        5,
	},
	PitchSlider: {
		OutcomeStrikeSwinging: 30,
		OutcomeFoul:           18,
		OutcomeGroundout:      16,
		OutcomeFlyout:         10,
		OutcomeLineout:        4,
		OutcomePopout:         1,
		OutcomeSingle:         11,
		OutcomeDouble:         4,
		OutcomeTriple:         1,
		OutcomeHomerun:        5,
	},
	PitchChangeup: {
		OutcomeStrikeSwinging: 28,
		OutcomeFoul:           17,
		OutcomeGroundout:      17,
		OutcomeFlyout:         11,
		OutcomeLineout:        4,
		OutcomePopout:         1,
		OutcomeSingle:         11,
		OutcomeDouble:         5,
		OutcomeTriple:         1,
		OutcomeHomerun:        5,
	},
}

// takeOutcomes are the base distributions when the batter takes the pitch.
var takeOutcomes = map[PitchType]Weights{
	PitchFastball:  {OutcomeStrikeLooking: 55, OutcomeBall: 45},
	PitchCurveball: {OutcomeStrikeLooking: 35, OutcomeBall: 65},
	PitchSlider:    {OutcomeStrikeLooking: 40, OutcomeBall: 60},
	PitchChangeup:  {OutcomeStrikeLooking: 40, OutcomeBall: 60},
}

// buntOutcomes is the single bunt distribution. The weights sum to exactly
// 100 and are all strictly positive.
var buntOutcomes = Weights{
	OutcomeSacrificeOut: 40,
	OutcomeFoul:         25,
	OutcomePopout:       15,
	OutcomeSingle:       10,
	OutcomeGroundout:    10,
}

// SwingTable returns a copy of the swing distribution for the pitch type,
// or false for an out-of-vocabulary pitch.
func SwingTable(pt PitchType) (Weights, bool) {
	t, ok := swingOutcomes[pt]
	if !ok {
		return nil, false
	}
	return t.Clone(), true
}

// TakeTable returns a copy of the take distribution for the pitch type.
func TakeTable(pt PitchType) (Weights, bool) {
	t, ok := takeOutcomes[pt]
	if !ok {
		return nil, false
	}
	return t.Clone(), true
}

// BuntTable returns a copy of the bunt distribution.
func BuntTable() Weights { return buntOutcomes.Clone() }
