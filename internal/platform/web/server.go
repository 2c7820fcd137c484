// Package web serves hitcircle rounds over WebSocket for browser renderers.
// Each connection owns one game.Session; the server ticks it at a fixed
// rate and streams a snapshot plus the tick's events back as JSON.
package web

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/net/websocket"

	"github.com/vovakirdan/hitcircle/internal/config"
	"github.com/vovakirdan/hitcircle/internal/core"
	"github.com/vovakirdan/hitcircle/internal/game"
	"github.com/vovakirdan/hitcircle/internal/storage"
)

// Options configures the server.
type Options struct {
	Catalog  config.Catalog
	Game     config.GameConfig
	TickRate int
	Seed     int64          // 0 seeds each round from the clock
	Store    *storage.Store // nil disables history
	Logger   *log.Logger
}

// Server hosts play sessions over WebSocket.
type Server struct {
	opts   Options
	logger *log.Logger
	ctx    context.Context
	cancel context.CancelFunc
	active atomic.Int64
}

// NewServer creates a server with the given options.
func NewServer(opts Options) *Server {
	if opts.TickRate <= 0 {
		opts.TickRate = 60
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Server{
		opts:   opts,
		logger: logger,
		ctx:    ctx,
		cancel: cancel,
	}
}

// Handler returns the HTTP routes:
//
//	/play?map=<id>&difficulty=<name>  WebSocket play session
//	/maps                             map catalog as JSON
//	/history?map=<id>&limit=<n>       recorded clears, newest first (limit defaults to 20)
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/play", websocket.Handler(s.handlePlay))
	mux.HandleFunc("/maps", s.handleMaps)
	mux.HandleFunc("/history", s.handleHistory)
	return mux
}

// Active returns the number of connected players.
func (s *Server) Active() int {
	return int(s.active.Load())
}

// Close ends every running session.
func (s *Server) Close() {
	s.cancel()
}

// ListenAndServe serves on addr until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("starting web server", "address", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		s.Close()
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down...")
	s.Close()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func (s *Server) handleMaps(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.opts.Catalog.Maps)
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	mapID := r.URL.Query().Get("map")
	if _, err := s.opts.Catalog.Map(mapID); err != nil {
		writeJSON(w, http.StatusNotFound, ErrorMessage{Error: err.Error()})
		return
	}
	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			writeJSON(w, http.StatusBadRequest, ErrorMessage{Error: fmt.Sprintf("invalid limit %q", v)})
			return
		}
		limit = n
	}
	if s.opts.Store == nil {
		writeJSON(w, http.StatusOK, []storage.Result{})
		return
	}

	results, err := s.opts.Store.History(mapID, limit)
	if err != nil {
		s.logger.Error("failed to load history", "map", mapID, "error", err)
		writeJSON(w, http.StatusInternalServerError, ErrorMessage{Error: "history unavailable"})
		return
	}
	writeJSON(w, http.StatusOK, results)
}

// handlePlay runs one session for the lifetime of the connection.
func (s *Server) handlePlay(ws *websocket.Conn) {
	defer ws.Close()
	remote := ws.Request().RemoteAddr
	logger := s.logger.With("remote", remote)

	q := ws.Request().URL.Query()
	sel, err := s.opts.Catalog.Lookup(q.Get("map"), q.Get("difficulty"))
	if err != nil {
		logger.Warn("rejected connection", "error", err)
		_ = websocket.JSON.Send(ws, ErrorMessage{Error: err.Error()})
		return
	}

	session, err := s.newSession(sel, logger)
	if err != nil {
		logger.Error("could not start round", "error", err)
		_ = websocket.JSON.Send(ws, ErrorMessage{Error: err.Error()})
		return
	}

	s.active.Add(1)
	defer s.active.Add(-1)
	logger.Info("player connected", "map", sel.Map.ID, "difficulty", sel.Difficulty.Name)
	defer logger.Info("player disconnected", "map", sel.Map.ID)

	inputs := make(chan Input, 16)
	done := make(chan struct{})
	defer close(done)
	go readLoop(ws, inputs, done, logger)

	if err := s.run(ws, session, inputs); err != nil {
		logger.Debug("session ended", "error", err)
	}
}

func (s *Server) newSession(sel config.Selection, logger *log.Logger) (*game.Session, error) {
	seed := s.opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	runtime := core.RuntimeConfig{TickRate: s.opts.TickRate, Seed: seed}

	opts := []game.Option{game.WithLogger(logger)}
	if s.opts.Store != nil {
		opts = append(opts, game.WithRecorder(s.opts.Store))
	}
	return game.NewSession(sel, s.opts.Game, runtime, opts...)
}

// run ticks session until the client leaves or the server closes.
// Only this goroutine touches the session and writes to ws.
func (s *Server) run(ws *websocket.Conn, session *game.Session, inputs <-chan Input) error {
	ticker := time.NewTicker(time.Second / time.Duration(s.opts.TickRate))
	defer ticker.Stop()

	var edges edgeDetector
	held := core.NewInputFrame()

	for {
		select {
		case <-s.ctx.Done():
			return s.ctx.Err()

		case in, ok := <-inputs:
			if !ok {
				return io.EOF
			}
			held = in.levels()
			edges.observe(in)

		case <-ticker.C:
			frame := held.Clone()
			edges.apply(&frame)
			res := session.Tick(frame)

			msg := Frame{Snapshot: session.Snapshot(), Events: encodeEvents(res.Events)}
			if err := websocket.JSON.Send(ws, msg); err != nil {
				return fmt.Errorf("send frame: %w", err)
			}
		}
	}
}

// readLoop decodes client inputs until the connection fails, then closes out.
func readLoop(ws *websocket.Conn, out chan<- Input, done <-chan struct{}, logger *log.Logger) {
	defer close(out)
	for {
		var in Input
		if err := websocket.JSON.Receive(ws, &in); err != nil {
			if !errors.Is(err, io.EOF) {
				logger.Debug("read failed", "error", err)
			}
			return
		}
		select {
		case out <- in:
		case <-done:
			return
		}
	}
}

// edgeDetector turns expand and pause levels into one-tick pulses.
type edgeDetector struct {
	prevExpand, prevPause bool
	expand, pause         bool
}

func (d *edgeDetector) observe(in Input) {
	if in.Expand && !d.prevExpand {
		d.expand = true
	}
	if in.Pause && !d.prevPause {
		d.pause = true
	}
	d.prevExpand, d.prevPause = in.Expand, in.Pause
}

func (d *edgeDetector) apply(frame *core.InputFrame) {
	if d.expand {
		frame.Set(core.ActionExpand)
	}
	if d.pause {
		frame.Set(core.ActionPause)
	}
	d.expand, d.pause = false, false
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
