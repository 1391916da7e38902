//go:build js && wasm

// webclient.go is a WASM worker for the distributed fractal renderer.
// It connects to the server over a websocket, renders the tiles it is
// handed, paints them onto the page and shows the progress of the frame.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"image"
	"log"
	"net/http"
	"sync"
	"syscall/js"
	"time"

	"github.com/coder/websocket"
	"github.com/marben/irpc"

	fractal "github.com/marben/fractal_explorer"
	"github.com/marben/fractal_explorer/render"
)

func main() {
	logScreenf("Starting WASM web client...")

	loc := js.Global().Get("window").Get("location")
	host := loc.Get("host").String()
	proto := "ws"
	if loc.Get("protocol").String() == "https:" {
		proto = "wss"
	}
	websocketURL := proto + "://" + host + "/ws"
	statusURL := loc.Get("protocol").String() + "//" + host + "/status"

	ctx := context.Background()

	logScreenf("Connecting to fractal server at %s...", websocketURL)
	c, _, err := websocket.Dial(ctx, websocketURL, nil)
	if err != nil {
		logFatalf("websocket.Dial: %v", err)
	}
	conn := websocket.NetConn(ctx, c, websocket.MessageBinary)
	logScreenf("WebSocket connected.")

	go func() {
		if err := progressLoop(ctx, statusURL); err != nil {
			logScreenf("progressLoop: %v", err)
		}
	}()

	renderer := &canvasRenderer{
		RendererImpl: render.RendererImpl{Palette: fractal.HSV{Scale: 4}, Smooth: true},
	}
	rendererService := fractal.NewRendererIrpcService(renderer)
	endpoint := irpc.NewEndpoint(conn, irpc.WithEndpointServices(rendererService))
	logScreenf("IRPC endpoint created.")

	<-endpoint.Context().Done()
	logScreenf("Connection closed after %d tiles: %v", renderer.rendered(), context.Cause(endpoint.Context()))

	// keep the page alive
	select {}
}

// canvasRenderer renders tiles locally and paints each of them onto the
// page canvas before handing it back to the server.
type canvasRenderer struct {
	render.RendererImpl

	mu    sync.Mutex
	w, h  int
	tiles int
}

func (cr *canvasRenderer) RenderTile(p fractal.Params, tile image.Rectangle, imgW, imgH int) (image.RGBA, error) {
	cr.mu.Lock()
	defer cr.mu.Unlock()

	if imgW != cr.w || imgH != cr.h {
		initCanvas(imgW, imgH, "#3a3a6e")
		cr.w, cr.h = imgW, imgH
		logScreenf("Canvas initialized to dimensions %dx%d", imgW, imgH)
	}

	img, err := cr.RendererImpl.RenderTile(p, tile, imgW, imgH)
	if err != nil {
		return img, err
	}
	drawTileToCanvas(&img)
	cr.tiles++
	hudSet("tilesDone", cr.tiles)
	return img, nil
}

func (cr *canvasRenderer) rendered() int {
	cr.mu.Lock()
	defer cr.mu.Unlock()
	return cr.tiles
}

// progressLoop polls the server for the progress of the frame until it is
// done.
func progressLoop(ctx context.Context, url string) error {
	for {
		p, err := fetchProgress(ctx, url)
		if err != nil {
			return err
		}
		hudSet("workersRunning", p.Workers)
		hudSet("progress", fmt.Sprintf("%.1f%%", 100*p.Fraction()))
		if p.Done {
			logScreenf("Frame complete.")
			return nil
		}
		time.Sleep(250 * time.Millisecond)
	}
}

func fetchProgress(ctx context.Context, url string) (fractal.Progress, error) {
	var p fractal.Progress
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return p, err
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return p, fmt.Errorf("GET %s: %w", url, err)
	}
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(&p); err != nil {
		return p, fmt.Errorf("decode status: %w", err)
	}
	return p, nil
}

// logScreenf appends a formatted message to the log element in the DOM.
func logScreenf(format string, a ...any) {
	msg := fmt.Sprintf(format, a...)
	log.Print(msg)

	logElem := js.Global().Get("document").Call("getElementById", "log")
	logElem.Set("textContent", logElem.Get("textContent").String()+msg+"\n")
}

// logFatalf logs a fatal error to the log window and terminates the program.
func logFatalf(format string, a ...any) {
	logScreenf("FATAL: "+format, a...)
	log.Fatalf(format, a...)
}

func hudSet(id string, v any) {
	js.Global().Get("document").Call("getElementById", id).Set("textContent", v)
}
