// Package web serves a game table to browsers as SVG and keeps every open
// page in sync over a websocket.
package web

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"nhooyr.io/websocket"

	"github.com/jask/playingcards/internal/game"
	"github.com/jask/playingcards/internal/scene"
	"github.com/jask/playingcards/internal/view"
)

var ErrUnknownView = errors.New("unknown view")

// Options configures a Server.
type Options struct {
	// Width and Height size the table in SVG user units.
	Width, Height float64
	// Origins lists the browser origins allowed to connect.
	Origins []string
	// SpriteURL is where pages fetch the card sprite sheet. When SpriteFile
	// is set and SpriteURL is a local path, the server serves the file there.
	SpriteURL  string
	SpriteFile string
}

// Server owns the HTTP surface of one game. Every access to the game goes
// through mu.
type Server struct {
	mu    sync.Mutex
	game  *game.Game
	opts  Options
	allow map[string]struct{}
	hub   *Hub
}

func New(g *game.Game, opts Options) *Server {
	if opts.Width <= 0 {
		opts.Width = 800
	}
	if opts.Height <= 0 {
		opts.Height = 600
	}
	allow := map[string]struct{}{}
	for _, o := range opts.Origins {
		if o != "" {
			allow[o] = struct{}{}
		}
	}
	return &Server{game: g, opts: opts, allow: allow, hub: NewHub()}
}

func (s *Server) Hub() *Hub { return s.hub }

// Handler returns the routes wrapped in CORS handling.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handlePage)
	mux.HandleFunc("GET /table.svg", s.handleTable)
	mux.HandleFunc("GET /ws", s.serveWS)
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	if s.opts.SpriteFile != "" {
		if u, err := url.Parse(s.opts.SpriteURL); err == nil && u.Host == "" && strings.HasPrefix(u.Path, "/") {
			file := s.opts.SpriteFile
			mux.HandleFunc("GET "+u.Path, func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "image/svg+xml")
				http.ServeFile(w, r, file)
			})
		}
	}
	return s.cors(mux)
}

// ListenAndServe serves on addr until ctx is done.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{Addr: addr, Handler: s.Handler(), ReadHeaderTimeout: 10 * time.Second}
	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()
	log.Printf("server listening on %s", addr)
	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		shutdown, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdown)
	}
}

func (s *Server) cors(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if origin != "" {
			if _, ok := s.allow[origin]; ok {
				w.Header().Set("Access-Control-Allow-Origin", origin)
				w.Header().Set("Vary", "Origin")
			}
		}
		if r.Method == http.MethodOptions {
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
			w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// render snapshots the table as an SVG document. Callers hold mu.
func (s *Server) render(ctx context.Context) (string, error) {
	var b strings.Builder
	root := s.game.View().Scene()
	if err := scene.SVG(root, s.opts.Width, s.opts.Height).Render(ctx, &b); err != nil {
		return "", fmt.Errorf("render table: %w", err)
	}
	return b.String(), nil
}

func (s *Server) snapshot(ctx context.Context) (svg, tableID string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	svg, err = s.render(ctx)
	return svg, s.game.View().ID(), err
}

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	svg, id, err := s.snapshot(r.Context())
	if err != nil {
		log.Printf("warn: %v", err)
		http.Error(w, "render failed", http.StatusInternalServerError)
		return
	}
	p := page(s.game.Table().Name(), id, svg)
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := p.Render(r.Context(), w); err != nil {
		log.Printf("warn: write page: %v", err)
	}
}

func (s *Server) handleTable(w http.ResponseWriter, r *http.Request) {
	svg, _, err := s.snapshot(r.Context())
	if err != nil {
		log.Printf("warn: %v", err)
		http.Error(w, "render failed", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "image/svg+xml")
	w.Header().Set("Cache-Control", "no-store")
	_, _ = w.Write([]byte(svg))
}

// apply handles one client request against the game and returns the new
// scene. Clicks bubble from the target view up to the table.
func (s *Server) apply(ctx context.Context, msg message) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	target, ok := s.game.View().Lookup(msg.View)
	if !ok {
		return "", fmt.Errorf("%w %q", ErrUnknownView, msg.View)
	}
	switch msg.T {
	case "click":
		if err := view.Dispatch(target, view.Click, view.Gesture{}); err != nil {
			return "", err
		}
	case "shuffle":
		pv, ok := target.(*view.PileView)
		if !ok {
			return "", fmt.Errorf("shuffle: view %q is not a pile", msg.View)
		}
		if err := pv.Pile().Shuffle(); err != nil {
			return "", err
		}
	default:
		return "", fmt.Errorf("unknown message %q", msg.T)
	}
	return s.render(ctx)
}

// Refresh pushes the current scene to every client, for changes made
// outside a websocket request.
func (s *Server) Refresh(ctx context.Context) error {
	svg, _, err := s.snapshot(ctx)
	if err != nil {
		return err
	}
	s.hub.Broadcast(message{T: "scene", SVG: svg})
	return nil
}

func (s *Server) serveWS(w http.ResponseWriter, r *http.Request) {
	origin := r.Header.Get("Origin")
	if _, ok := s.allow[origin]; origin != "" && !ok {
		http.Error(w, "forbidden origin", http.StatusForbidden)
		return
	}

	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{InsecureSkipVerify: true})
	if err != nil {
		return
	}
	ctx := r.Context()
	c := &client{id: uuid.NewString(), conn: conn, send: make(chan []byte, 64)}
	s.hub.add(c)

	// writer
	go func() {
		ping := time.NewTicker(15 * time.Second)
		defer func() { ping.Stop(); _ = conn.Close(websocket.StatusNormalClosure, "bye") }()
		for {
			select {
			case msg, ok := <-c.send:
				if !ok {
					return
				}
				if err := conn.Write(ctx, websocket.MessageText, msg); err != nil {
					return
				}
			case <-ping.C:
				_ = conn.Ping(ctx)
			}
		}
	}()

	if svg, _, err := s.snapshot(ctx); err == nil {
		s.hub.sendTo(c, message{T: "scene", SVG: svg})
	}

	// reader
	for {
		_, data, err := conn.Read(ctx)
		if err != nil {
			break
		}
		var m message
		if err := json.Unmarshal(data, &m); err != nil {
			s.hub.sendTo(c, message{T: "error", Error: "malformed message"})
			continue
		}
		svg, err := s.apply(ctx, m)
		if err != nil {
			log.Printf("warn: client %s: %v", c.id, err)
			s.hub.sendTo(c, message{T: "error", Error: err.Error()})
			continue
		}
		s.hub.Broadcast(message{T: "scene", SVG: svg})
	}
	s.hub.remove(c)
}
