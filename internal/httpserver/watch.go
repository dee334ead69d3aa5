// internal/httpserver/watch.go
//
// GET /game/{id}/watch upgrades to a websocket and streams a full CPU-vs-CPU
// simulation of the game, one snapshot per pitch, paced for spectating.
// The socket closes after the final snapshot. Writes to an already-final
// game stream only its terminal snapshot.

package httpserver

import (
	"net/http"
	"net/url"
	"os"
	"strconv"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

const (
	// Time allowed to write one snapshot to the peer.
	watchWriteWait = 10 * time.Second

	// Default and maximum pacing between snapshots.
	defaultFrameDelay = 150 * time.Millisecond
	maxFrameDelay     = 2 * time.Second
)

var watchUpgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		if allowed := os.Getenv("CLIENT_ORIGIN"); allowed != "" && origin == allowed {
			return true
		}
		u, err := url.Parse(origin)
		if err != nil {
			return false
		}
		return u.Host == r.Host
	},
}

// handleWatch simulates the game to completion and streams the snapshots.
// An optional ?ms= query parameter sets the pacing between frames.
func (s *Server) handleWatch(w http.ResponseWriter, r *http.Request) {
	st, ok := s.loadGame(w, r)
	if !ok {
		return
	}

	delay := defaultFrameDelay
	if v := r.URL.Query().Get("ms"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			delay = time.Duration(n) * time.Millisecond
			if delay > maxFrameDelay {
				delay = maxFrameDelay
			}
		}
	}

	snaps := st.Simulate()
	s.finishIfFinal(r, st)
	if err := s.store.Save(r.Context(), st); err != nil {
		http.Error(w, `{"error":"save_failed"}`, http.StatusInternalServerError)
		return
	}

	conn, err := watchUpgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Warn().Err(err).Msg("watch upgrade")
		return
	}
	defer conn.Close()

	for i, snap := range snaps {
		_ = conn.SetWriteDeadline(time.Now().Add(watchWriteWait))
		if err := conn.WriteJSON(snap); err != nil {
			// Client went away; stop streaming.
			return
		}
		if i < len(snaps)-1 {
			time.Sleep(delay)
		}
	}
	_ = conn.SetWriteDeadline(time.Now().Add(watchWriteWait))
	_ = conn.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, "game over"))
}
