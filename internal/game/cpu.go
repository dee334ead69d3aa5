// internal/game/cpu.go
//
// Decision policies for the computer-controlled side: pitch selection and
// the swing/take choice. Both draw from the record's single RandomSource.

package game

// cpuPitchOrder fixes the scan order for pitch selection, mirroring the
// outcome selector's stable-order contract.
var cpuPitchOrder = []PitchType{PitchFastball, PitchSlider, PitchCurveball, PitchChangeup}

// baseSwingChance is the CPU batter's neutral-count swing rate. Slightly
// above the real-world rate to keep at-bats moving.
const baseSwingChance = 0.60

// PickPitch selects a pitch type from the CPU mix. It always returns a key
// present in the weight table.
func PickPitch(rng RandomSource) PitchType {
	var total float64
	for _, pt := range cpuPitchOrder {
		total += cpuPitchWeights[pt]
	}
	draw := rng.Float64() * total
	var cum float64
	for _, pt := range cpuPitchOrder {
		cum += cpuPitchWeights[pt]
		if draw < cum {
			return pt
		}
	}
	return cpuPitchOrder[len(cpuPitchOrder)-1]
}

// DecideSwing is the CPU batter's swing/take call for the current count.
// With two strikes the batter protects the plate; with three balls he looks
// for a walk. One draw against the count-adjusted chance decides.
func DecideSwing(rng RandomSource, balls, strikes int) bool {
	chance := baseSwingChance
	if strikes == 2 {
		chance += 0.20
	}
	if balls == 3 {
		chance -= 0.25
	}
	return rng.Float64() < chance
}
