package web

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"nhooyr.io/websocket"

	"github.com/jask/playingcards/internal/card"
	"github.com/jask/playingcards/internal/game"
	"github.com/jask/playingcards/internal/supplier"
)

func newServer(t *testing.T, opts Options) (*Server, *game.Game) {
	t.Helper()
	g, err := game.New("felt", supplier.NewSVGCards(""))
	require.NoError(t, err)
	t.Cleanup(g.Close)
	require.NoError(t, g.AddDeck(card.NewDeck("main", "maroon", 0)))
	_, err = g.NewPile(game.PileSpec{Name: "A", Deck: "main"})
	require.NoError(t, err)
	_, err = g.NewPile(game.PileSpec{Name: "B"})
	require.NoError(t, err)
	_, err = game.NewShuttle(g, "A", "B")
	require.NoError(t, err)
	if opts.Origins == nil {
		opts.Origins = []string{"http://localhost:8080"}
	}
	return New(g, opts), g
}

func get(t *testing.T, h http.Handler, path string, header http.Header) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for k, v := range header {
		req.Header[k] = v
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	t.Parallel()

	s, _ := newServer(t, Options{})
	rec := get(t, s.Handler(), "/health", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "ok", rec.Body.String())
}

func TestPage(t *testing.T) {
	t.Parallel()

	s, g := newServer(t, Options{})
	rec := get(t, s.Handler(), "/", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))
	body := rec.Body.String()
	require.Contains(t, body, "<title>felt</title>")
	require.Contains(t, body, `data-root="`+g.View().ID()+`"`)
	require.Contains(t, body, "<svg")
	require.Contains(t, body, `new WebSocket(`)

	require.Equal(t, http.StatusNotFound, get(t, s.Handler(), "/missing", nil).Code)
}

func TestTableSVG(t *testing.T) {
	t.Parallel()

	s, g := newServer(t, Options{Width: 640, Height: 480})
	rec := get(t, s.Handler(), "/table.svg", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "image/svg+xml", rec.Header().Get("Content-Type"))
	body := rec.Body.String()
	require.Contains(t, body, `viewBox="0 0 640 480"`)
	require.Contains(t, body, `data-name="A"`)
	require.Contains(t, body, `data-view="`+g.View().ID()+`"`)
	require.Equal(t, 52, strings.Count(body, `data-key="back"`))
}

func TestCORS(t *testing.T) {
	t.Parallel()

	s, _ := newServer(t, Options{})
	h := s.Handler()

	rec := get(t, h, "/health", http.Header{"Origin": {"http://localhost:8080"}})
	require.Equal(t, "http://localhost:8080", rec.Header().Get("Access-Control-Allow-Origin"))

	rec = get(t, h, "/health", http.Header{"Origin": {"http://evil.example"}})
	require.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))

	req := httptest.NewRequest(http.MethodOptions, "/table.svg", nil)
	pre := httptest.NewRecorder()
	h.ServeHTTP(pre, req)
	require.Equal(t, http.StatusNoContent, pre.Code)
}

func TestSpriteFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "cards.svg")
	require.NoError(t, os.WriteFile(path, []byte("<svg/>"), 0o644))
	s, _ := newServer(t, Options{SpriteURL: "/svg-cards.svg", SpriteFile: path})

	rec := get(t, s.Handler(), "/svg-cards.svg", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "<svg/>", rec.Body.String())
}

func TestApply(t *testing.T) {
	t.Parallel()

	s, g := newServer(t, Options{})
	a, _ := g.Pile("A")
	b, _ := g.Pile("B")
	ctx := context.Background()

	// A click on a pile bubbles to the table, where the shuttle listens.
	svg, err := s.apply(ctx, message{T: "click", View: a.View().ID()})
	require.NoError(t, err)
	require.Equal(t, 1, b.Model().Count())
	require.Equal(t, 51, strings.Count(svg, `data-key="back"`))

	_, err = s.apply(ctx, message{T: "shuffle", View: a.View().ID()})
	require.NoError(t, err)
	require.Equal(t, 51, a.Model().Count())

	_, err = s.apply(ctx, message{T: "shuffle", View: g.View().ID()})
	require.Error(t, err)
	_, err = s.apply(ctx, message{T: "click", View: "nope"})
	require.ErrorIs(t, err, ErrUnknownView)
	_, err = s.apply(ctx, message{T: "wave", View: g.View().ID()})
	require.Error(t, err)
}

func readMessage(t *testing.T, ctx context.Context, c *websocket.Conn) message {
	t.Helper()
	_, data, err := c.Read(ctx)
	require.NoError(t, err)
	var m message
	require.NoError(t, json.Unmarshal(data, &m))
	return m
}

func writeMessage(t *testing.T, ctx context.Context, c *websocket.Conn, m message) {
	t.Helper()
	data, err := json.Marshal(m)
	require.NoError(t, err)
	require.NoError(t, c.Write(ctx, websocket.MessageText, data))
}

func TestWebsocket(t *testing.T) {
	t.Parallel()

	s, g := newServer(t, Options{})
	ts := httptest.NewServer(s.Handler())
	t.Cleanup(ts.Close)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"

	c, _, err := websocket.Dial(ctx, url, nil)
	require.NoError(t, err)
	defer c.Close(websocket.StatusNormalClosure, "")

	first := readMessage(t, ctx, c)
	require.Equal(t, "scene", first.T)
	require.Contains(t, first.SVG, `data-name="B"`)

	writeMessage(t, ctx, c, message{T: "click", View: g.View().ID()})
	next := readMessage(t, ctx, c)
	require.Equal(t, "scene", next.T)
	require.Equal(t, 51, strings.Count(next.SVG, `data-key="back"`))

	writeMessage(t, ctx, c, message{T: "click", View: "nope"})
	bad := readMessage(t, ctx, c)
	require.Equal(t, "error", bad.T)
	require.Contains(t, bad.Error, "unknown view")

	require.NoError(t, c.Write(ctx, websocket.MessageText, []byte("{")))
	require.Equal(t, "error", readMessage(t, ctx, c).T)
}

func TestWebsocketForbiddenOrigin(t *testing.T) {
	t.Parallel()

	s, _ := newServer(t, Options{})
	ts := httptest.NewServer(s.Handler())
	t.Cleanup(ts.Close)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"

	_, resp, err := websocket.Dial(ctx, url, &websocket.DialOptions{
		HTTPHeader: http.Header{"Origin": {"http://evil.example"}},
	})
	require.Error(t, err)
	require.NotNil(t, resp)
	require.Equal(t, http.StatusForbidden, resp.StatusCode)
	_, _ = io.Copy(io.Discard, resp.Body)
}

func TestHubBroadcast(t *testing.T) {
	t.Parallel()

	h := NewHub()
	c := &client{id: "x", send: make(chan []byte, 1)}
	h.add(c)
	require.Equal(t, 1, h.Len())

	h.Broadcast(message{T: "scene", SVG: "<svg/>"})
	// full queue drops
	h.Broadcast(message{T: "scene", SVG: "<svg/>"})
	got := <-c.send
	require.JSONEq(t, `{"t":"scene","svg":"<svg/>"}`, string(got))

	h.remove(c)
	require.Zero(t, h.Len())
	h.sendTo(c, message{T: "error"})
	_, open := <-c.send
	require.False(t, open)
}
