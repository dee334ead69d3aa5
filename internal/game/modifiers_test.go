package game

import (
	"math"
	"testing"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestFatigueNoopThroughKnee(t *testing.T) {
	base, _ := SwingTable(PitchFastball)
	for _, count := range []int{0, 50, fatigueKnee} {
		got := ApplyFatigueMod(base, count)
		for o, v := range base {
			if !almostEqual(got[o], v) {
				t.Fatalf("count %d changed %s: %v -> %v", count, o, v, got[o])
			}
		}
	}
}

func TestFatigueScalesPastKnee(t *testing.T) {
	base, _ := SwingTable(PitchFastball)

	got := ApplyFatigueMod(base, fatigueKnee+1)
	if !almostEqual(got[OutcomeSingle], base[OutcomeSingle]*1.01) {
		t.Errorf("single at knee+1: %v, want %v", got[OutcomeSingle], base[OutcomeSingle]*1.01)
	}
	if !almostEqual(got[OutcomeStrikeSwinging], base[OutcomeStrikeSwinging]/1.01) {
		t.Errorf("whiff at knee+1: %v, want %v", got[OutcomeStrikeSwinging], base[OutcomeStrikeSwinging]/1.01)
	}
	if !almostEqual(got[OutcomeGroundout], base[OutcomeGroundout]) {
		t.Errorf("groundout should be untouched by fatigue")
	}

	// The factor caps at 1.5 no matter how deep the count runs.
	capped := ApplyFatigueMod(base, 300)
	if !almostEqual(capped[OutcomeHomerun], base[OutcomeHomerun]*1.5) {
		t.Errorf("homerun at cap: %v, want %v", capped[OutcomeHomerun], base[OutcomeHomerun]*1.5)
	}
}

func TestFatigueMonotonic(t *testing.T) {
	base, _ := SwingTable(PitchSlider)
	prev := -1.0
	for count := fatigueKnee; count <= fatigueKnee+60; count++ {
		v := ApplyFatigueMod(base, count)[OutcomeSingle]
		if v < prev {
			t.Fatalf("hit weight dropped at count %d: %v -> %v", count, prev, v)
		}
		prev = v
	}
}

func TestWeatherMultipliers(t *testing.T) {
	base, _ := SwingTable(PitchFastball)

	out := ApplyWeatherMod(base, WeatherWindOut)
	if !almostEqual(out[OutcomeHomerun], base[OutcomeHomerun]*1.25) {
		t.Errorf("wind_out homerun: %v, want %v", out[OutcomeHomerun], base[OutcomeHomerun]*1.25)
	}

	in := ApplyWeatherMod(base, WeatherWindIn)
	if !almostEqual(in[OutcomeHomerun], base[OutcomeHomerun]*0.75) {
		t.Errorf("wind_in homerun: %v, want %v", in[OutcomeHomerun], base[OutcomeHomerun]*0.75)
	}

	take, _ := TakeTable(PitchSlider)
	rain := ApplyWeatherMod(take, WeatherRain)
	if !almostEqual(rain[OutcomeBall], take[OutcomeBall]*1.15) {
		t.Errorf("rain ball: %v, want %v", rain[OutcomeBall], take[OutcomeBall]*1.15)
	}
	rainSwing := ApplyWeatherMod(base, WeatherRain)
	if !almostEqual(rainSwing[OutcomeStrikeSwinging], base[OutcomeStrikeSwinging]*0.90) {
		t.Errorf("rain whiff: %v, want %v", rainSwing[OutcomeStrikeSwinging], base[OutcomeStrikeSwinging]*0.90)
	}
}

func TestWeatherUnknownIsIdentity(t *testing.T) {
	base, _ := SwingTable(PitchCurveball)
	for _, cond := range []Weather{WeatherDome, WeatherClear, "hail", ""} {
		got := ApplyWeatherMod(base, cond)
		for o, v := range base {
			if !almostEqual(got[o], v) {
				t.Fatalf("weather %q changed %s", cond, o)
			}
		}
	}
}

func TestTimeOfDayExactMultipliers(t *testing.T) {
	base, _ := SwingTable(PitchFastball)

	cases := []struct {
		tod                        TimeOfDay
		hitMult, whiffMult, gfMult float64
	}{
		{TimeNight, 0.95, 1.10, 1.05},
		{TimeDay, 1.03, 0.95, 1.0},
		{TimeTwilight, 0.97, 1.05, 1.0},
	}
	for _, tc := range cases {
		got := ApplyTimeOfDayMod(base, tc.tod)
		if !almostEqual(got[OutcomeSingle], base[OutcomeSingle]*tc.hitMult) {
			t.Errorf("%s single: %v, want %v", tc.tod, got[OutcomeSingle], base[OutcomeSingle]*tc.hitMult)
		}
		if !almostEqual(got[OutcomeHomerun], base[OutcomeHomerun]*tc.hitMult) {
			t.Errorf("%s homerun: %v, want %v", tc.tod, got[OutcomeHomerun], base[OutcomeHomerun]*tc.hitMult)
		}
		if !almostEqual(got[OutcomeStrikeSwinging], base[OutcomeStrikeSwinging]*tc.whiffMult) {
			t.Errorf("%s whiff: %v, want %v", tc.tod, got[OutcomeStrikeSwinging], base[OutcomeStrikeSwinging]*tc.whiffMult)
		}
		if !almostEqual(got[OutcomeGroundout], base[OutcomeGroundout]*tc.gfMult) {
			t.Errorf("%s groundout: %v, want %v", tc.tod, got[OutcomeGroundout], base[OutcomeGroundout]*tc.gfMult)
		}
		if !almostEqual(got[OutcomeFlyout], base[OutcomeFlyout]*tc.gfMult) {
			t.Errorf("%s flyout: %v, want %v", tc.tod, got[OutcomeFlyout], base[OutcomeFlyout]*tc.gfMult)
		}
		if !almostEqual(got[OutcomeFoul], base[OutcomeFoul]) {
			t.Errorf("%s touched foul weight", tc.tod)
		}
	}

	unknown := ApplyTimeOfDayMod(base, "dusk")
	for o, v := range base {
		if !almostEqual(unknown[o], v) {
			t.Fatalf("unknown time of day changed %s", o)
		}
	}
}

func TestErrorChance(t *testing.T) {
	cases := map[TimeOfDay]float64{
		TimeDay:      0.04,
		TimeTwilight: 0.06,
		TimeNight:    0.02,
		"":           0.02,
		"dawn":       0.02,
	}
	for tod, want := range cases {
		if got := ErrorChance(tod); got != want {
			t.Errorf("ErrorChance(%q) = %v, want %v", tod, got, want)
		}
	}
}

func TestStatsModFavorsBetterHitters(t *testing.T) {
	base, _ := SwingTable(PitchFastball)
	scrub := BattingStats{AVG: 0.180, SLG: 0.290, KRate: 0.330}
	star := BattingStats{AVG: 0.320, SLG: 0.560, KRate: 0.150}

	low := ApplyStatsMod(base, scrub, nil)
	high := ApplyStatsMod(base, star, nil)

	if high[OutcomeSingle] <= low[OutcomeSingle] {
		t.Errorf("star single weight %v not above scrub %v", high[OutcomeSingle], low[OutcomeSingle])
	}
	if high[OutcomeHomerun] <= low[OutcomeHomerun] {
		t.Errorf("star homerun weight %v not above scrub %v", high[OutcomeHomerun], low[OutcomeHomerun])
	}
	if high[OutcomeStrikeSwinging] >= low[OutcomeStrikeSwinging] {
		t.Errorf("star whiff weight %v not below scrub %v", high[OutcomeStrikeSwinging], low[OutcomeStrikeSwinging])
	}
}

func TestStatsModTotalWithinTenPercent(t *testing.T) {
	base, _ := SwingTable(PitchChangeup)
	extremes := []BattingStats{
		{AVG: 0.150, SLG: 0.250, KRate: 0.400},
		{AVG: 0.350, SLG: 0.700, KRate: 0.100, HRRate: 0.08},
	}
	pitchers := []*PitchingStats{
		nil,
		{ERA: 1.80, KPer9: 12.5, BBPer9: 1.5},
		{ERA: 6.50, KPer9: 5.0, BBPer9: 5.5},
	}
	want := base.Total()
	for _, b := range extremes {
		for _, p := range pitchers {
			got := ApplyStatsMod(base, b, p).Total()
			if math.Abs(got-want)/want > 0.10 {
				t.Errorf("total drifted to %v (base %v) for batter %+v", got, want, b)
			}
		}
	}
}

func TestStatsModHighStrikeoutPitcher(t *testing.T) {
	base, _ := SwingTable(PitchFastball)
	batter := BattingStats{AVG: leagueAVG, SLG: leagueSLG, KRate: leagueKRate}
	ace := &PitchingStats{ERA: 2.50, KPer9: 12.0, BBPer9: 2.0}
	journeyman := &PitchingStats{ERA: 5.80, KPer9: 6.0, BBPer9: 4.0}

	vsAce := ApplyStatsMod(base, batter, ace)
	vsJourneyman := ApplyStatsMod(base, batter, journeyman)

	if vsAce[OutcomeSingle] >= vsJourneyman[OutcomeSingle] {
		t.Errorf("ace allowed more hit weight (%v) than journeyman (%v)", vsAce[OutcomeSingle], vsJourneyman[OutcomeSingle])
	}
	if vsAce[OutcomeStrikeSwinging] <= vsJourneyman[OutcomeStrikeSwinging] {
		t.Errorf("ace whiff weight %v not above journeyman %v", vsAce[OutcomeStrikeSwinging], vsJourneyman[OutcomeStrikeSwinging])
	}
}

func TestTakeStatsModWildPitcher(t *testing.T) {
	base, _ := TakeTable(PitchFastball)
	wild := ApplyTakeStatsMod(base, PitchingStats{ERA: 4.0, KPer9: 8.0, BBPer9: 5.5})
	painter := ApplyTakeStatsMod(base, PitchingStats{ERA: 4.0, KPer9: 8.0, BBPer9: 1.5})

	if wild[OutcomeBall] <= painter[OutcomeBall] {
		t.Errorf("wild pitcher ball weight %v not above control pitcher %v", wild[OutcomeBall], painter[OutcomeBall])
	}
	for _, got := range []Weights{wild, painter} {
		if math.Abs(got.Total()-base.Total())/base.Total() > 0.10 {
			t.Errorf("take total drifted to %v", got.Total())
		}
	}
}

func TestModifiersDoNotMutateInput(t *testing.T) {
	base, _ := SwingTable(PitchFastball)
	before := base.Clone()

	ApplyStatsMod(base, BattingStats{AVG: 0.350, SLG: 0.650, KRate: 0.100}, &PitchingStats{ERA: 2.0, KPer9: 11.0, BBPer9: 2.0})
	ApplyFatigueMod(base, 120)
	ApplyWeatherMod(base, WeatherWindOut)
	ApplyTimeOfDayMod(base, TimeNight)

	for o, v := range before {
		if !almostEqual(base[o], v) {
			t.Fatalf("pipeline mutated input weight %s", o)
		}
	}
}
