// internal/httpserver/routes_game.go
//
// HTTP routes for live games and league data.
// Exposes under /game and /teams:
//   - POST /game/new                  → create a game (optionally seeded/featured)
//   - GET  /game/{id}                 → current game state snapshot
//   - POST /game/{id}/pitch           → throw a pitch (user pitching)
//   - POST /game/{id}/at-bat          → swing/take/bunt (user batting)
//   - POST /game/{id}/steal           → send a runner
//   - POST /game/{id}/pickoff        → pickoff throw
//   - POST /game/{id}/pitching-change → bring in a bullpen arm
//   - POST /game/{id}/simulate        → run the game to completion (CPU both sides)
//   - GET  /game/{id}/watch           → websocket: stream a simulation pitch by pitch
//   - GET  /teams, GET /teams/{id}, GET /teams/{id}/pitchers → league data
//   - GET  /matchup/today             → deterministic featured matchup for the date
//
// Invalid in-game actions are not HTTP errors: the engine records why in
// last_play and the handler returns the unchanged state with 200. Unknown
// game IDs are 404; malformed JSON is 400.

package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/baldmike/baseball-game-sub001/internal/game"
	"github.com/baldmike/baseball-game-sub001/internal/matchup"
	"github.com/baldmike/baseball-game-sub001/internal/record"
	"github.com/baldmike/baseball-game-sub001/internal/roster"
	"github.com/baldmike/baseball-game-sub001/internal/store"
)

// mountGame registers the game, teams, and matchup routes.
func (s *Server) mountGame(r chi.Router) {
	r.Post("/game/new", s.handleNewGame)
	r.Route("/game/{id}", func(r chi.Router) {
		r.Get("/", s.handleGetGame)
		r.Post("/pitch", s.handlePitch)
		r.Post("/at-bat", s.handleAtBat)
		r.Post("/steal", s.handleSteal)
		r.Post("/pickoff", s.handlePickoff)
		r.Post("/pitching-change", s.handlePitchingChange)
		r.Post("/simulate", s.handleSimulate)
		r.Get("/watch", s.handleWatch)
	})

	r.Get("/teams", func(w http.ResponseWriter, req *http.Request) {
		_ = json.NewEncoder(w).Encode(roster.Teams())
	})
	r.Get("/teams/{id}", func(w http.ResponseWriter, req *http.Request) {
		id, err := strconv.Atoi(chi.URLParam(req, "id"))
		if err != nil {
			http.Error(w, `{"error":"bad_team_id"}`, http.StatusBadRequest)
			return
		}
		t, ok := roster.ByID(id)
		if !ok {
			http.Error(w, `{"error":"not_found"}`, http.StatusNotFound)
			return
		}
		_ = json.NewEncoder(w).Encode(t)
	})
	r.Get("/teams/{id}/pitchers", func(w http.ResponseWriter, req *http.Request) {
		id, err := strconv.Atoi(chi.URLParam(req, "id"))
		if err != nil {
			http.Error(w, `{"error":"bad_team_id"}`, http.StatusBadRequest)
			return
		}
		t, ok := roster.ByID(id)
		if !ok {
			http.Error(w, `{"error":"not_found"}`, http.StatusNotFound)
			return
		}
		_ = json.NewEncoder(w).Encode(t.Pitchers)
	})

	r.Get("/matchup/today", s.handleTodayMatchup)
}

// newGameReq is the POST /game/new payload. Team IDs of zero mean "pick for
// me"; a seed makes the whole game reproducible.
type newGameReq struct {
	HomeTeamID int     `json:"homeTeamId"`
	AwayTeamID int     `json:"awayTeamId"`
	PlayerSide string  `json:"playerSide"` // "home" (default) | "away"
	Weather    string  `json:"weather"`
	TimeOfDay  string  `json:"timeOfDay"`
	Seed       *uint64 `json:"seed"`
}

// handleNewGame builds a game from league rosters, saves it in the live
// store, and persists an ownership row for history/stats.
func (s *Server) handleNewGame(w http.ResponseWriter, r *http.Request) {
	var req newGameReq
	_ = json.NewDecoder(r.Body).Decode(&req)

	home, ok := roster.ByID(req.HomeTeamID)
	if !ok {
		var err error
		home, err = roster.RandomOpponent(req.AwayTeamID)
		if err != nil {
			http.Error(w, `{"error":"league_unavailable"}`, http.StatusInternalServerError)
			return
		}
	}
	away, ok := roster.ByID(req.AwayTeamID)
	if !ok {
		var err error
		away, err = roster.RandomOpponent(home.ID)
		if err != nil {
			http.Error(w, `{"error":"league_unavailable"}`, http.StatusInternalServerError)
			return
		}
	}
	if home.ID == away.ID {
		http.Error(w, `{"error":"same_team_twice"}`, http.StatusBadRequest)
		return
	}

	cfg, err := s.buildConfig(home, away, req)
	if err != nil {
		log.Error().Err(err).Msg("build game config")
		http.Error(w, `{"error":"roster_error"}`, http.StatusInternalServerError)
		return
	}

	st := game.New(cfg)
	if err := s.store.Save(r.Context(), st); err != nil {
		log.Error().Err(err).Msg("save game")
		http.Error(w, `{"error":"save_failed"}`, http.StatusInternalServerError)
		return
	}

	rec := record.Record{
		GameID:     st.GameID,
		HomeTeam:   home.Name,
		AwayTeam:   away.Name,
		PlayerSide: string(st.PlayerSide),
		StartedAt:  time.Now().UTC().Format(time.RFC3339),
	}
	if me, _ := r.Context().Value(ctxUserKey{}).(*authUser); me != nil {
		rec.UserID = me.ID
	} else {
		rec.AnonID = s.ensureAnonID(w, r)
	}
	if err := s.records.Insert(r.Context(), rec); err != nil {
		log.Warn().Err(err).Str("gameId", st.GameID).Msg("insert game record")
	}

	_ = json.NewEncoder(w).Encode(st.Snapshot())
}

// buildConfig assembles the engine configuration from two rosters.
func (s *Server) buildConfig(home, away *roster.Team, req newGameReq) (game.Config, error) {
	homeLineup, err := roster.Lineup(home.ID)
	if err != nil {
		return game.Config{}, err
	}
	awayLineup, err := roster.Lineup(away.ID)
	if err != nil {
		return game.Config{}, err
	}
	homeStarter, homePen, err := roster.Rotation(home.ID)
	if err != nil {
		return game.Config{}, err
	}
	awayStarter, awayPen, err := roster.Rotation(away.ID)
	if err != nil {
		return game.Config{}, err
	}

	side := game.SideHome
	if req.PlayerSide == string(game.SideAway) {
		side = game.SideAway
	}
	var rng game.RandomSource
	if req.Seed != nil {
		rng = game.NewSeededRNG(*req.Seed)
	}

	return game.Config{
		GameID:           uuid.NewString(),
		HomeTeam:         home.Name,
		AwayTeam:         away.Name,
		HomeAbbreviation: home.Abbreviation,
		AwayAbbreviation: away.Abbreviation,
		HomeLineup:       homeLineup,
		AwayLineup:       awayLineup,
		HomePitcher:      &homeStarter,
		AwayPitcher:      &awayStarter,
		HomeBullpen:      homePen,
		AwayBullpen:      awayPen,
		Weather:          game.Weather(req.Weather),
		TimeOfDay:        game.TimeOfDay(req.TimeOfDay),
		PlayerSide:       side,
		RNG:              rng,
		Tuning:           &s.tuning,
	}, nil
}

// handleGetGame returns the current snapshot.
func (s *Server) handleGetGame(w http.ResponseWriter, r *http.Request) {
	st, ok := s.loadGame(w, r)
	if !ok {
		return
	}
	_ = json.NewEncoder(w).Encode(st.Snapshot())
}

type pitchReq struct {
	PitchType string `json:"pitchType"`
}

// handlePitch throws one pitch while the user is on the mound.
func (s *Server) handlePitch(w http.ResponseWriter, r *http.Request) {
	st, ok := s.loadGame(w, r)
	if !ok {
		return
	}
	var req pitchReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"bad_json"}`, http.StatusBadRequest)
		return
	}
	st.ProcessPitch(game.PitchType(req.PitchType))
	s.persist(w, r, st)
}

type atBatReq struct {
	Action string `json:"action"` // "swing" | "take" | "bunt"
}

// handleAtBat resolves one pitch while the user bats.
func (s *Server) handleAtBat(w http.ResponseWriter, r *http.Request) {
	st, ok := s.loadGame(w, r)
	if !ok {
		return
	}
	var req atBatReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"bad_json"}`, http.StatusBadRequest)
		return
	}
	st.ProcessAtBat(game.BatAction(req.Action))
	s.persist(w, r, st)
}

type baseReq struct {
	Base int `json:"base"` // 0 = first, 1 = second, 2 = third
}

// handleSteal sends the runner on the given base.
func (s *Server) handleSteal(w http.ResponseWriter, r *http.Request) {
	st, ok := s.loadGame(w, r)
	if !ok {
		return
	}
	var req baseReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"bad_json"}`, http.StatusBadRequest)
		return
	}
	st.AttemptSteal(req.Base)
	s.persist(w, r, st)
}

// handlePickoff throws to the given base.
func (s *Server) handlePickoff(w http.ResponseWriter, r *http.Request) {
	st, ok := s.loadGame(w, r)
	if !ok {
		return
	}
	var req baseReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"bad_json"}`, http.StatusBadRequest)
		return
	}
	st.AttemptPickoff(req.Base)
	s.persist(w, r, st)
}

type pitchingChangeReq struct {
	Side      string `json:"side"` // defaults to the player's side
	PitcherID int    `json:"pitcherId"`
}

// handlePitchingChange brings in a named arm from the given side's bullpen.
func (s *Server) handlePitchingChange(w http.ResponseWriter, r *http.Request) {
	st, ok := s.loadGame(w, r)
	if !ok {
		return
	}
	var req pitchingChangeReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"bad_json"}`, http.StatusBadRequest)
		return
	}

	side := st.PlayerSide
	switch req.Side {
	case string(game.SideHome):
		side = game.SideHome
	case string(game.SideAway):
		side = game.SideAway
	}
	pen := st.HomeBullpen
	if side == game.SideAway {
		pen = st.AwayBullpen
	}
	var reliever *game.Pitcher
	for i := range pen {
		if pen[i].ID == req.PitcherID {
			reliever = &pen[i]
			break
		}
	}
	if reliever == nil {
		http.Error(w, `{"error":"unknown_pitcher"}`, http.StatusBadRequest)
		return
	}
	st.SwitchPitcher(side, *reliever)
	s.persist(w, r, st)
}

// simulateRes is the POST /game/{id}/simulate response: the terminal state
// plus the ordered snapshot sequence for replay.
type simulateRes struct {
	Final     *game.State   `json:"final"`
	Snapshots []*game.State `json:"snapshots"`
}

// handleSimulate runs the rest of the game CPU-vs-CPU.
func (s *Server) handleSimulate(w http.ResponseWriter, r *http.Request) {
	st, ok := s.loadGame(w, r)
	if !ok {
		return
	}
	snaps := st.Simulate()
	s.finishIfFinal(r, st)
	if err := s.store.Save(r.Context(), st); err != nil {
		http.Error(w, `{"error":"save_failed"}`, http.StatusInternalServerError)
		return
	}
	_ = json.NewEncoder(w).Encode(simulateRes{Final: st.Snapshot(), Snapshots: snaps})
}

// handleTodayMatchup returns the deterministic featured matchup for today.
func (s *Server) handleTodayMatchup(w http.ResponseWriter, r *http.Request) {
	teams := roster.Teams()
	if len(teams) < 2 {
		http.Error(w, `{"error":"league_unavailable"}`, http.StatusInternalServerError)
		return
	}
	salt := getEnv("MATCHUP_SALT", "local_dev_salt")
	now := time.Now()
	hi, ai := matchup.Pair(now, salt, len(teams))
	_ = json.NewEncoder(w).Encode(map[string]any{
		"date": matchup.DateKey(now),
		"home": teams[hi],
		"away": teams[ai],
	})
}

// --------------------------- shared plumbing -------------------------------

// loadGame resolves {id} to a live game, writing a 404 on a miss.
func (s *Server) loadGame(w http.ResponseWriter, r *http.Request) (*game.State, bool) {
	id := chi.URLParam(r, "id")
	st, err := s.store.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			http.Error(w, `{"error":"not_found"}`, http.StatusNotFound)
		} else {
			http.Error(w, `{"error":"store_error"}`, http.StatusInternalServerError)
		}
		return nil, false
	}
	return st, true
}

// persist saves the game, records the result when it just finished, and
// responds with the fresh snapshot.
func (s *Server) persist(w http.ResponseWriter, r *http.Request, st *game.State) {
	s.finishIfFinal(r, st)
	if err := s.store.Save(r.Context(), st); err != nil {
		http.Error(w, `{"error":"save_failed"}`, http.StatusInternalServerError)
		return
	}
	_ = json.NewEncoder(w).Encode(st.Snapshot())
}

// finishIfFinal stamps the DB record and user stats exactly once per game.
func (s *Server) finishIfFinal(r *http.Request, st *game.State) {
	if st.GameStatus != game.StatusFinal {
		return
	}
	ctx := r.Context()
	first, err := s.records.Finish(ctx, st.GameID, st.HomeTotal, st.AwayTotal, st.Inning,
		time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		log.Warn().Err(err).Str("gameId", st.GameID).Msg("finish game record")
		return
	}
	if !first {
		return
	}

	me, _ := ctx.Value(ctxUserKey{}).(*authUser)
	if me == nil {
		return
	}
	playerWon := st.HomeTotal > st.AwayTotal
	if st.PlayerSide == game.SideAway {
		playerWon = st.AwayTotal > st.HomeTotal
	}
	tx, err := s.db.Begin()
	if err != nil {
		log.Warn().Err(err).Msg("begin stats tx")
		return
	}
	defer func() { _ = tx.Rollback() }()
	if err := s.bumpStats(tx, me.ID, playerWon); err != nil {
		log.Warn().Err(err).Str("user", me.ID).Msg("bump stats")
		return
	}
	_ = tx.Commit()
}
