package game

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadTuningDefaults(t *testing.T) {
	for _, path := range []string{"", filepath.Join(t.TempDir(), "missing.yaml")} {
		got, err := LoadTuning(path)
		if err != nil {
			t.Fatalf("LoadTuning(%q): %v", path, err)
		}
		if got != DefaultTuning() {
			t.Errorf("LoadTuning(%q) = %+v, want defaults", path, got)
		}
	}
}

func TestLoadTuningOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tuning.yaml")
	body := []byte("double_play_chance: 0.40\nsteal_success: 0.65\nsteal_home_success: 0.25\npickoff_success: 0.10\nauto_replace_pitch_count: 110\n")
	if err := os.WriteFile(path, body, 0o644); err != nil {
		t.Fatal(err)
	}

	got, err := LoadTuning(path)
	if err != nil {
		t.Fatal(err)
	}
	want := Tuning{
		DoublePlayChance:      0.40,
		StealSuccess:          0.65,
		StealHomeSuccess:      0.25,
		PickoffSuccess:        0.10,
		AutoReplacePitchCount: 110,
	}
	if got != want {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

func TestLoadTuningRejectsBadValues(t *testing.T) {
	cases := map[string]string{
		"probability above one":  "steal_success: 1.2\nauto_replace_pitch_count: 100\n",
		"negative probability":   "pickoff_success: -0.1\nauto_replace_pitch_count: 100\n",
		"ceiling below the fade": "auto_replace_pitch_count: 50\n",
		"unparseable yaml":       "steal_success: [not a number\n",
	}
	for name, body := range cases {
		path := filepath.Join(t.TempDir(), "tuning.yaml")
		if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
			t.Fatal(err)
		}
		got, err := LoadTuning(path)
		if err == nil {
			t.Errorf("%s: expected an error", name)
		}
		if got != DefaultTuning() {
			t.Errorf("%s: bad file must fall back to defaults, got %+v", name, got)
		}
	}
}

func TestTuningOverridesReachTheEngine(t *testing.T) {
	cfg := baseConfig(constRNG{0.45})
	cfg.PlayerSide = SideAway
	tun := DefaultTuning()
	tun.DoublePlayChance = 0.40 // 0.45 draw now misses the double play
	cfg.Tuning = &tun
	s := New(cfg)

	s.placeRunner(0, 8, false)
	s.ProcessAtBat(ActionSwing, WithOutcomeOverride(OutcomeGroundout))
	if s.Outs != 1 {
		t.Fatalf("outs = %d, want 1 with the lowered double-play chance", s.Outs)
	}
}
