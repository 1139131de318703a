package api

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/fleetduel/fleetduel-backend/db/analytics"
	mc "github.com/fleetduel/fleetduel-backend/models/connection"
)

// processClientRequests is the per-connection command loop. It owns
// the connection's identity (set on login) and its current game id
// (set on a successful join), resolves each inbound frame to a
// session transition, and triggers a lobby broadcast after every
// command that can change lobby-visible state.
//
// Malformed frames and unrecognized types are dropped without a
// reply; the only explicit error the protocol surfaces is a join
// against a full game, and that one is sent by the game manager.
func (s *Server) processClientRequests(client *mc.Client) {
	var (
		username string
		gameId   string
	)

	defer func() {
		client.Close()
		if username != "" {
			s.Lobby.Logout(username)
		}
		if gameId != "" {
			s.GameManager.HandleDisconnect(gameId, username)
		}
		if username != "" || gameId != "" {
			s.broadcastLobby()
		}
		slog.Info("connection closed", "clientId", client.Id())
	}()

sessionLoop:
	for {
		payload, err := client.ReadMessage()
		if err != nil {
			if !mc.IsExpectedCloseError(err) {
				slog.Warn("failed to read from connection", "clientId", client.Id(), "error", err)
			}
			break sessionLoop
		}

		var envelope mc.Envelope
		if err := json.Unmarshal(payload, &envelope); err != nil {
			continue sessionLoop
		}

		switch envelope.Type {

		case mc.TypeLogin:
			var req mc.ReqLogin
			if err := json.Unmarshal(payload, &req); err != nil || req.Username == "" {
				continue sessionLoop
			}

			username = req.Username
			s.Lobby.Login(username, client)
			_ = client.SendJSON(mc.NewRespLoginSuccess(username))
			s.broadcastLobby()

		case mc.TypeJoinGame:
			var req mc.ReqJoinGame
			if err := json.Unmarshal(payload, &req); err != nil || req.GameId == "" {
				continue sessionLoop
			}
			if req.Username != "" {
				username = req.Username
			}
			if username == "" {
				continue sessionLoop
			}

			joined, created := s.GameManager.Join(req.GameId, username, client)
			if joined {
				gameId = req.GameId
			}
			if created {
				s.recordAnalytics(func(ctx context.Context) error { return s.Analytics.GameCreated(ctx) })
			}
			s.broadcastLobby()

		case mc.TypePlaceShip:
			var req mc.ReqPlaceShip
			if err := json.Unmarshal(payload, &req); err != nil || !req.Board.HasValidDimensions() {
				continue sessionLoop
			}
			if gameId == "" || username == "" {
				continue sessionLoop
			}

			s.GameManager.PlaceBoard(gameId, username, req.Board)
			s.broadcastLobby()

		case mc.TypeMakeMove:
			var req mc.ReqMakeMove
			if err := json.Unmarshal(payload, &req); err != nil || !req.Board.HasValidDimensions() {
				continue sessionLoop
			}
			if gameId == "" || username == "" {
				continue sessionLoop
			}

			if ended := s.GameManager.Fire(gameId, username, req.Board); ended {
				s.recordAnalytics(func(ctx context.Context) error { return s.Analytics.GameFinished(ctx) })
			}
			s.broadcastLobby()

		case mc.TypeRestartGame:
			if gameId == "" {
				continue sessionLoop
			}

			if restarted := s.GameManager.Restart(gameId); restarted {
				s.recordAnalytics(func(ctx context.Context) error { return s.Analytics.GameRestarted(ctx) })
			}
			s.broadcastLobby()

		default:
			// unrecognized command, dropped
		}
	}
}

// recordAnalytics runs one counter update when analytics is wired.
// Counter failures are logged and never interrupt a session.
func (s *Server) recordAnalytics(update func(ctx context.Context) error) {
	if s.Analytics == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), analytics.QuerierCtxTimeout)
	defer cancel()
	if err := update(ctx); err != nil {
		slog.Warn("failed to record analytics", "error", err)
	}
}
