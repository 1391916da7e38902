// Command cliclient is a worker for the distributed fractal renderer. It
// lends its CPU to the server until the frame is complete, then receives
// the frame over the same connection and saves it as a PNG file.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"image"
	"image/png"
	"log"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/coder/websocket"
	"github.com/marben/irpc"

	fractal "github.com/marben/fractal_explorer"
	"github.com/marben/fractal_explorer/render"
)

func main() {
	log.Printf("Starting CLI client...")
	cfg := defaultConfig()
	cfg.registerFlags(flag.CommandLine)
	flag.Parse()

	if err := run(cfg); err != nil {
		log.Fatalf("FATAL: %v", err)
	}
}

type config struct {
	tcpAddr  string
	wsURL    string
	out      string
	palette  string
	iter     int
	smoothed bool
}

func defaultConfig() config {
	return config{
		tcpAddr: "localhost:8081",
		out:     "fractal.png",
		palette: "hsv",
	}
}

func (c *config) registerFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.tcpAddr, "tcp", c.tcpAddr, "server tcp address")
	fs.StringVar(&c.wsURL, "ws", c.wsURL, "server websocket url, e.g. ws://localhost:8080/ws; overrides -tcp")
	fs.StringVar(&c.out, "o", c.out, "output PNG path")
	fs.StringVar(&c.palette, "palette", c.palette, "gray, gradient, hsv or orbit")
	fs.IntVar(&c.iter, "iter", c.iter, "iteration limit, 0 for the default")
	fs.BoolVar(&c.smoothed, "smooth", c.smoothed, "smooth escape counts")
}

func (c config) renderer() (render.RendererImpl, error) {
	palette, err := fractal.PaletteByName(c.palette)
	if err != nil {
		return render.RendererImpl{}, err
	}
	return render.RendererImpl{
		Escape:       fractal.EscapeConfig{Limit: c.iter},
		Palette:      palette,
		Smooth:       c.smoothed,
		OnTileRender: func(tile image.Rectangle) { log.Printf("Rendering tile: %s", tile) },
	}, nil
}

// run connects to the server, renders tiles for it, receives the finished
// frame and saves it.
func run(cfg config) error {
	renderer, err := cfg.renderer()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	conn, err := dial(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to connect to server: %w", err)
	}

	// The server calls our renderer service to render tiles using our CPU.
	rendererService := fractal.NewRendererIrpcService(renderer)
	ep := irpc.NewEndpoint(conn, irpc.WithEndpointServices(rendererService))
	defer ep.Close()

	log.Printf("Requesting fully rendered image from server...")
	img, err := fetchFrame(ctx, ep)
	if err != nil {
		return err
	}

	log.Printf("Saving rendered image to %q...", cfg.out)
	if err := savePNG(cfg.out, img); err != nil {
		return err
	}
	log.Printf("Fully rendered image saved to %q", cfg.out)
	return nil
}

// fetchFrame asks the server on the other end of ep for the frame. The call
// returns once every tile is rendered, or with an error when ctx is done.
func fetchFrame(ctx context.Context, ep *irpc.Endpoint) (image.Image, error) {
	client, err := fractal.NewImgProviderIrpcClient(ep)
	if err != nil {
		return nil, fmt.Errorf("failed to create ImgProvider client: %w", err)
	}

	// closing the endpoint ends the pending call
	stop := context.AfterFunc(ctx, func() { ep.Close() })
	defer stop()

	img, err := client.GetImage()
	if err != nil {
		return nil, fmt.Errorf("client.GetImage: %w", err)
	}
	return &img, nil
}

func dial(ctx context.Context, cfg config) (net.Conn, error) {
	if cfg.wsURL != "" {
		log.Printf("Connecting to server at %s...", cfg.wsURL)
		c, _, err := websocket.Dial(ctx, cfg.wsURL, nil)
		if err != nil {
			return nil, fmt.Errorf("websocket.Dial: %w", err)
		}
		// the finished frame may arrive as a single message
		c.SetReadLimit(-1)
		return websocket.NetConn(context.Background(), c, websocket.MessageBinary), nil
	}

	log.Printf("Connecting to server on %s...", cfg.tcpAddr)
	var d net.Dialer
	return d.DialContext(ctx, "tcp", cfg.tcpAddr)
}

func savePNG(path string, img image.Image) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() {
		err = errors.Join(err, f.Close())
	}()

	if err := png.Encode(f, img); err != nil {
		return fmt.Errorf("failed to encode PNG: %w", err)
	}
	return nil
}
