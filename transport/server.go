package transport

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/rumendamyanov/simchess/config"
	"github.com/rumendamyanov/simchess/game"
	"github.com/rumendamyanov/simchess/registry"
)

// Server wires the registry of live games to HTTP and WebSocket transport.
type Server struct {
	config   *config.Config
	logger   *zap.Logger
	registry *registry.Registry
	upgrader websocket.Upgrader
	hub      *hub
	metrics  *metrics
}

// NewServer creates a Server around an existing registry. A cfg.Logging.Level
// of "debug" selects zap's development logger; any other level selects the
// production logger. The Format, OutputPath and ErrorPath logging settings
// are not consulted.
func NewServer(cfg *config.Config, reg *registry.Registry) (*Server, error) {
	logger, err := newLogger(cfg.Logging)
	if err != nil {
		return nil, err
	}

	return &Server{
		config:   cfg,
		logger:   logger,
		registry: reg,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
		hub:     newHub(),
		metrics: newMetrics(),
	}, nil
}

func newLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	if cfg.Level == "debug" {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

// Router builds the gin engine: CORS, REST endpoints, and the WebSocket
// upgrade endpoint.
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	if s.config.Server.CORSEnabled {
		r.Use(s.corsMiddleware())
	}

	r.GET("/health", s.handleHealth)
	if s.metrics != nil && s.config.Metrics.Enabled {
		r.GET(s.config.Metrics.Path, gin.WrapH(promhttp.HandlerFor(s.metrics.registry, promhttp.HandlerOpts{})))
	}

	r.POST("/api/games", s.handleCreateGame)
	r.GET("/api/games/:id", s.handleGetGame)
	r.GET("/ws/games/:id", s.handleWebSocket)

	return r
}

func (s *Server) corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "games": s.registry.Len()})
}

func (s *Server) handleCreateGame(c *gin.Context) {
	g := s.registry.Create()
	s.metrics.gamesCreated.Inc()
	c.JSON(http.StatusCreated, gin.H{"game_id": g.ID(), "game_state": NewGameStateDTO(g.State())})
}

func (s *Server) handleGetGame(c *gin.Context) {
	g, err := s.registry.Get(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "game not found"})
		return
	}
	c.JSON(http.StatusOK, NewGameStateDTO(g.State()))
}

// handleWebSocket upgrades the connection and runs its read loop until the
// socket closes. The game is the one named in the URL path: every inbound
// message is handled against it, whatever game_id the message carries, and
// a "join" message adds the connection to that game's room.
func (s *Server) handleWebSocket(c *gin.Context) {
	gameID := c.Param("id")

	if _, err := s.registry.Get(gameID); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "game not found"})
		return
	}

	conn, err := s.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}

	cl := newClient(conn)
	go cl.writePump()
	defer func() {
		s.hub.leave(cl)
		close(cl.send)
		_ = conn.Close()
	}()

	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			return
		}

		var env InboundEnvelope
		if err := json.Unmarshal(raw, &env); err != nil {
			s.sendError(cl, "malformed message")
			continue
		}
		env.GameID = gameID

		s.dispatch(cl, env)
	}
}

func (s *Server) dispatch(cl *client, env InboundEnvelope) {
	switch env.Type {
	case EventJoin:
		s.handleJoin(cl, env)
	case EventSubmitMove:
		s.handleSubmitMove(cl, env)
	default:
		s.sendError(cl, "unknown event type: "+env.Type)
	}
}

func (s *Server) handleJoin(cl *client, env InboundEnvelope) {
	g, err := s.registry.Get(env.GameID)
	if err != nil {
		s.sendError(cl, "Game not found")
		return
	}

	color, err := g.AssignPlayer(game.PlayerHandle(cl.conn.RemoteAddr().String()))
	if err != nil {
		s.sendError(cl, "Game is full")
		return
	}

	s.hub.join(env.GameID, cl)

	state := NewGameStateDTO(g.State())
	cl.enqueue(mustEncode(OutboundEvent{
		Type:    EventJoined,
		Payload: gin.H{"color": color.String(), "game_state": state},
	}))

	s.hub.broadcast(env.GameID, cl, mustEncode(OutboundEvent{
		Type:    EventPlayerJoined,
		Payload: gin.H{"color": color.String(), "game_state": state},
	}))
}

func (s *Server) handleSubmitMove(cl *client, env InboundEnvelope) {
	g, err := s.registry.Get(env.GameID)
	if err != nil {
		s.sendError(cl, "game not found")
		return
	}

	color, ok := parseColor(env.Color)
	if !ok {
		s.sendError(cl, "invalid color: "+env.Color)
		return
	}

	result, err := g.SubmitMove(color, env.Move)
	if err != nil {
		s.sendError(cl, err.Error())
		return
	}

	s.hub.broadcast(env.GameID, nil, mustEncode(OutboundEvent{
		Type:    EventMoveSubmitted,
		Payload: gin.H{"color": color.String(), "game_state": NewGameStateDTO(g.State())},
	}))

	if result == nil {
		return
	}

	s.metrics.turnsResolved.Inc()
	if result.IllegalityType != "" {
		s.metrics.illegalTurns.WithLabelValues(string(result.IllegalityType)).Inc()
	}
	if result.GameOver {
		s.metrics.gamesFinished.Inc()
	}

	s.hub.broadcast(env.GameID, nil, mustEncode(OutboundEvent{
		Type: EventMovesProcessed,
		Payload: gin.H{
			"result":     NewTurnResultDTO(result),
			"game_state": NewGameStateDTO(g.State()),
		},
	}))
}

func (s *Server) sendError(cl *client, message string) {
	cl.enqueue(mustEncode(OutboundEvent{Type: EventError, Payload: gin.H{"message": message}}))
}

func mustEncode(ev OutboundEvent) []byte {
	data, err := json.Marshal(ev)
	if err != nil {
		// ev is always built from our own DTOs; a marshal failure here means
		// a programming error, not a runtime condition to recover from.
		panic(err)
	}
	return data
}
