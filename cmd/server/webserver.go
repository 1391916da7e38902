package main

import (
	"context"
	"encoding/json"
	"image/png"
	"log"
	"net"
	"net/http"
	"time"

	"github.com/coder/websocket"
)

// wsReadLimit bounds a single websocket message; rendered tiles are far
// smaller.
const wsReadLimit = 32 << 20

// webServer creates the http server serving the static directory, the
// finished frame and its progress. Websocket connections opened on /ws are
// handed to the returned listener.
func webServer(ctx context.Context, addr, staticDir string, s *tileScheduler) (*WebsocketListener, *http.Server) {
	l := NewWSListener(ctx, addr+"/ws")
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", websocketHandler(l))
	mux.HandleFunc("/image.png", imageHandler(s))
	mux.HandleFunc("/status", statusHandler(s))
	mux.Handle("/", http.FileServer(http.Dir(staticDir)))

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}
	return l, srv
}

// websocketHandler upgrades the request and passes the connection on to l
// so it can be accepted.
func websocketHandler(l *WebsocketListener) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c, err := websocket.Accept(w, r, &websocket.AcceptOptions{
			// workers are served from any origin, including file://
			OriginPatterns: []string{"*"},
		})
		if err != nil {
			log.Println(err)
			return
		}
		c.SetReadLimit(wsReadLimit)

		select {
		case l.ch <- c:
		case <-l.ctx.Done():
			c.Close(websocket.StatusGoingAway, "server shutting down")
		}
	}
}

// imageHandler responds with the frame as PNG once every tile is rendered.
func imageHandler(s *tileScheduler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := s.wait(r.Context()); err != nil {
			http.Error(w, "frame not finished", http.StatusServiceUnavailable)
			return
		}
		img, err := s.GetImage()
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "image/png")
		if err := png.Encode(w, &img); err != nil {
			log.Printf("png.Encode: %v", err)
		}
	}
}

func statusHandler(s *tileScheduler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(s.progress()); err != nil {
			log.Printf("status: %v", err)
		}
	}
}

// WebsocketListener implements net.Listener on top of accepted websocket
// connections.
type WebsocketListener struct {
	ch     chan *websocket.Conn
	ctx    context.Context
	cancel context.CancelFunc
	addr   wsAddr
}

func NewWSListener(ctx context.Context, addr string) *WebsocketListener {
	ctx, cancel := context.WithCancel(ctx)
	return &WebsocketListener{
		ch:     make(chan *websocket.Conn),
		ctx:    ctx,
		cancel: cancel,
		addr:   wsAddr{addr: addr},
	}
}

func (l *WebsocketListener) Accept() (net.Conn, error) {
	select {
	case c := <-l.ch:
		return websocket.NetConn(l.ctx, c, websocket.MessageBinary), nil
	case <-l.ctx.Done():
		return nil, net.ErrClosed
	}
}

func (l *WebsocketListener) Addr() net.Addr {
	return l.addr
}

// Close stops accepting and tears down every connection accepted so far.
func (l *WebsocketListener) Close() error {
	l.cancel()
	return nil
}

// wsAddr implements net.Addr
type wsAddr struct {
	addr string
}

func (a wsAddr) Network() string {
	return "ws"
}

func (a wsAddr) String() string {
	return a.addr
}
