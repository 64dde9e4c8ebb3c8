package web

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/Christian103103/HSemulator/internal/config"
	"github.com/Christian103103/HSemulator/internal/game"
	"github.com/Christian103103/HSemulator/internal/log"
	hsnet "github.com/Christian103103/HSemulator/internal/net"
	"github.com/coder/websocket"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// CardInfo is the JSON representation of a card for the /api/cards endpoint.
type CardInfo struct {
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Attack      int      `json:"attack"`
	HP          int      `json:"hp"`
	Tier        int      `json:"tier"`
	Abilities   []string `json:"abilities,omitempty"`
	Battlecry   string   `json:"battlecry,omitempty"`
	EndOfTurn   string   `json:"end_of_turn,omitempty"`
	Reborn      bool     `json:"reborn,omitempty"`
	Summary     string   `json:"summary"`
}

// SimulateRequest configures a bot-versus-bot match run by /api/simulate.
type SimulateRequest struct {
	Seed     int64 `json:"seed"`
	MaxTurns int   `json:"max_turns"`
}

// SimulateResponse is the outcome and full event log of a simulated match.
type SimulateResponse struct {
	GameID string   `json:"game_id"`
	Seed   int64    `json:"seed"`
	Winner int      `json:"winner"` // 0, 1, or -1 for a draw
	Result string   `json:"result"`
	Turns  int      `json:"turns"`
	Health [2]int   `json:"health"`
	Log    []string `json:"log"`
}

// Server is the HTTP front end: card listings, simulations and a websocket
// bridge to a TCP game host.
type Server struct {
	cfg    config.WebConfig
	match  game.MatchConfig
	log    *zap.Logger
	engine *gin.Engine
}

// NewServer creates a new web server. match is the template every simulated
// match is built from.
func NewServer(cfg config.WebConfig, match game.MatchConfig, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	}
	if len(match.Pool) == 0 {
		match.Pool = game.DefaultPool()
	}
	s := &Server{
		cfg:    cfg,
		match:  match,
		log:    logger,
		engine: gin.New(),
	}
	s.engine.Use(gin.Recovery(), s.requestLogger())
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.engine.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := s.engine.Group("/api")
	{
		api.GET("/cards", s.handleCards)
		api.GET("/cards/:name", s.handleCard)
		api.GET("/rules", s.handleRules)
		api.POST("/simulate", s.handleSimulate)
	}

	s.engine.GET("/ws", s.handleWebSocket)
}

// Handler exposes the router, mainly for httptest.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// ListenAndServe serves until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{Addr: s.cfg.Addr, Handler: s.engine}
	errCh := make(chan error, 1)
	go func() {
		s.log.Info("web server listening", zap.String("addr", s.cfg.Addr), zap.String("tcp_addr", s.cfg.TCPAddr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.log.Debug("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("elapsed", time.Since(start)))
	}
}

func cardInfoOf(c *game.Card) CardInfo {
	ci := CardInfo{
		Name:        c.Name,
		Description: c.Description,
		Attack:      c.Attack,
		HP:          c.HP,
		Tier:        c.Tier,
		Abilities:   c.Abilities(),
		Reborn:      c.Reborn,
		Summary:     hsnet.FormatCard(c),
	}
	if ci.Tier == 0 {
		ci.Tier = 1
	}
	if !c.Battlecry.None() {
		ci.Battlecry = c.Battlecry.Kind.String()
	}
	if !c.EndOfTurn.None() {
		ci.EndOfTurn = c.EndOfTurn.Kind.String()
	}
	return ci
}

func (s *Server) handleCards(c *gin.Context) {
	cards := make([]CardInfo, 0, len(s.match.Pool))
	for _, card := range s.match.Pool {
		cards = append(cards, cardInfoOf(card))
	}
	c.JSON(http.StatusOK, cards)
}

func (s *Server) handleCard(c *gin.Context) {
	name := c.Param("name")
	for _, card := range s.match.Pool {
		if card.Name == name {
			c.JSON(http.StatusOK, cardInfoOf(card))
			return
		}
	}
	c.JSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("card %q is not in the pool", name)})
}

func (s *Server) handleRules(c *gin.Context) {
	rules := s.match.Rules
	if rules == (game.Rules{}) {
		rules = game.DefaultRules()
	}
	c.JSON(http.StatusOK, rules)
}

func (s *Server) handleSimulate(c *gin.Context) {
	var req SimulateRequest
	// An empty body means "defaults".
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}
	turnCap := s.match.MaxTurns
	if turnCap <= 0 {
		turnCap = game.DefaultMaxTurns
	}
	if req.MaxTurns < 0 || req.MaxTurns > turnCap {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("max_turns must be within 0..%d", turnCap)})
		return
	}
	if req.Seed == 0 {
		req.Seed = time.Now().UnixNano()
	}

	cfg := s.match
	cfg.Seed = req.Seed
	cfg.Rand = nil
	if req.MaxTurns > 0 {
		cfg.MaxTurns = req.MaxTurns
	}
	events := log.NewMemoryLogger()
	cfg.Logger = events
	cfg.Log = s.log

	m, err := game.NewMatch(cfg, game.NewGreedyController(), game.NewGreedyController())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	winner, err := m.Run(c.Request.Context())
	if err != nil {
		s.log.Warn("simulation aborted", zap.Int64("seed", req.Seed), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	gs := m.State()
	resp := SimulateResponse{
		GameID: m.Session.GameID,
		Seed:   req.Seed,
		Winner: winner,
		Result: gs.Result,
		Turns:  gs.Turn,
		Health: [2]int{gs.Players[0].Health, gs.Players[1].Health},
		Log:    make([]string, 0, len(events.Events())),
	}
	for _, e := range events.Events() {
		resp.Log = append(resp.Log, log.FormatEvent(e))
	}
	c.JSON(http.StatusOK, resp)
}

// handleWebSocket bridges a browser to the TCP game host: the first frame
// carries the player name, after which JSON lines are relayed both ways.
func (s *Server) handleWebSocket(c *gin.Context) {
	wsConn, err := websocket.Accept(c.Writer, c.Request, &websocket.AcceptOptions{
		InsecureSkipVerify: true,
	})
	if err != nil {
		s.log.Warn("websocket accept", zap.Error(err))
		return
	}
	defer wsConn.CloseNow()

	ctx := c.Request.Context()

	_, connectData, err := wsConn.Read(ctx)
	if err != nil {
		s.log.Debug("websocket read connect", zap.Error(err))
		return
	}
	var connectMsg struct {
		Type string `json:"type"`
		Name string `json:"name"`
		Addr string `json:"addr"`
	}
	if err := json.Unmarshal(connectData, &connectMsg); err != nil || connectMsg.Type != "connect" {
		wsConn.Close(websocket.StatusPolicyViolation, "expected connect message")
		return
	}
	addr := connectMsg.Addr
	if addr == "" {
		addr = s.cfg.TCPAddr
	}

	var d net.Dialer
	tcpConn, err := d.DialContext(ctx, "tcp", addr)
	if err != nil {
		errMsg, _ := json.Marshal(hsnet.ServerMessage{
			Type:   "error",
			Result: fmt.Sprintf("Could not connect to game server at %s: %v", addr, err),
		})
		_ = wsConn.Write(ctx, websocket.MessageText, errMsg)
		wsConn.Close(websocket.StatusNormalClosure, "connection failed")
		return
	}
	defer tcpConn.Close()

	if err := json.NewEncoder(tcpConn).Encode(hsnet.ClientMessage{Type: "join", Name: connectMsg.Name}); err != nil {
		s.log.Warn("tcp write join", zap.String("addr", addr), zap.Error(err))
		return
	}
	s.log.Info("websocket bridged", zap.String("addr", addr), zap.String("name", connectMsg.Name))

	done := make(chan struct{})

	// TCP → WebSocket
	go func() {
		defer close(done)
		dec := json.NewDecoder(tcpConn)
		for {
			var msg json.RawMessage
			if err := dec.Decode(&msg); err != nil {
				if !errors.Is(err, io.EOF) {
					s.log.Debug("tcp read", zap.Error(err))
				}
				return
			}
			if err := wsConn.Write(ctx, websocket.MessageText, msg); err != nil {
				s.log.Debug("websocket write", zap.Error(err))
				return
			}
		}
	}()

	// WebSocket → TCP
	go func() {
		for {
			_, data, err := wsConn.Read(ctx)
			if err != nil {
				tcpConn.Close()
				return
			}
			data = append(data, '\n')
			if _, err := tcpConn.Write(data); err != nil {
				s.log.Debug("tcp write", zap.Error(err))
				return
			}
		}
	}()

	<-done
	wsConn.Close(websocket.StatusNormalClosure, "game ended")
}
