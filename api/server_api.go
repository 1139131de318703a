package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/fleetduel/fleetduel-backend/db/analytics"
	mc "github.com/fleetduel/fleetduel-backend/models/connection"
)

const (
	StageProd = "prod"
	StageDev  = "dev"
)

var (
	defaultPort string = "8000"

	upgrader = websocket.Upgrader{
		// good average time since this is not a high-latency operation such as video streaming
		HandshakeTimeout: time.Second * 5,

		// probably more than enough but this is a good average size
		ReadBufferSize:  2048,
		WriteBufferSize: 2048,
		CheckOrigin:     func(r *http.Request) bool { return true },
	}
)

type Server struct {
	port        string
	stage       string
	Lobby       *LobbyManager
	GameManager *GameManager
	Analytics   *analytics.Manager
}

type Option func(*Server) error

func NewServer(optFuncs ...Option) *Server {
	var server Server
	for _, opt := range optFuncs {
		if err := opt(&server); err != nil {
			panic(err)
		}
	}
	if server.port == "" {
		server.port = defaultPort
	}
	if server.stage == "" {
		server.stage = StageDev
	}

	server.Lobby = NewLobbyManager()
	server.GameManager = NewGameManager()

	return &server
}

func WithPort(port string) Option {
	return func(s *Server) error {
		s.port = port
		return nil
	}
}

func WithStage(stage string) Option {
	return func(s *Server) error {
		if stage != StageProd && stage != StageDev {
			return errInvalidStage(stage)
		}
		s.stage = stage
		return nil
	}
}

// WithAnalytics attaches the optional Postgres counters. A nil
// manager leaves analytics disabled.
func WithAnalytics(m *analytics.Manager) Option {
	return func(s *Server) error {
		s.Analytics = m
		return nil
	}
}

func (s *Server) Port() string {
	return s.port
}

// Routes builds the HTTP surface: the websocket upgrade endpoint and
// a health probe.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Get("/ws", s.HandleWs)
	r.Get("/healthz", s.handleHealthz)
	return r
}

func (s *Server) HandleWs(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Error("failed to upgrade connection", "error", err)
		http.Error(w, "could not open websocket connection", http.StatusBadRequest)
		return
	}

	client := mc.NewClient(uuid.NewString(), conn)
	client.Start()
	slog.Info("a new connection established", "remoteAddr", conn.RemoteAddr().String(), "clientId", client.Id())

	go s.processClientRequests(client)
}

func (s *Server) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

// broadcastLobby recomputes the snapshot and pushes it to everyone
// online. Called after every command that can change lobby-visible
// state.
func (s *Server) broadcastLobby() {
	s.Lobby.Broadcast(s.GameManager.Summaries())
}
