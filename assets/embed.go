package assets

import "embed"

//go:embed league.json
var FS embed.FS

// LeagueJSON returns the embedded default league: teams, rosters, and
// pitching staffs with season stats.
func LeagueJSON() ([]byte, error) {
	return FS.ReadFile("league.json")
}
