// internal/game/sim.go
//
// Simulation driver: runs a game to completion with both sides driven by
// the CPU decision policies, capturing a snapshot after every state-machine
// transition. Used for batch simulation and validation; interactive games
// never pass through here.

package game

// maxSimPitches bounds the simulation loop. A nine-inning game runs
// 250-300 pitches; the cap leaves generous room for extra innings.
const maxSimPitches = 1000

// Simulate plays the game to its terminal state and returns the ordered
// snapshot sequence, starting with the state before the first simulated
// pitch. The caller's record is mutated in place and is the final state.
func (s *State) Simulate() []*State {
	snapshots := []*State{s.Snapshot()}

	for i := 0; s.GameStatus == StatusActive && i < maxSimPitches; i++ {
		s.simulateOnePitch()
		snapshots = append(snapshots, s.Snapshot())
	}
	return snapshots
}

// simulateOnePitch makes both decisions by CPU policy and routes them
// through the same operations interactive play uses.
func (s *State) simulateOnePitch() {
	s.maybeAutoReplacePitcher()

	if s.PlayerRole == RolePitching {
		// The user's side is on the mound; the CPU chooses its pitch.
		s.ProcessPitch(PickPitch(s.rng))
		return
	}

	action := ActionTake
	if DecideSwing(s.rng, s.Balls, s.Strikes) {
		action = ActionSwing
	}
	s.ProcessAtBat(action)
}
