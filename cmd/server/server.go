// Command server coordinates distributed rendering of one fractal frame.
// It renders nothing itself: every worker connecting over TCP or websocket
// is handed tiles until the frame is complete.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/marben/irpc"
	"golang.org/x/sync/errgroup"

	fractal "github.com/marben/fractal_explorer"
	"github.com/marben/fractal_explorer/viewport"
)

func main() {
	cfg := defaultConfig()
	cfg.registerFlags(flag.CommandLine)
	flag.Parse()

	if err := run(cfg); err != nil {
		log.Fatalf("run: %+v", err)
	}
}

func run(cfg config) error {
	if err := cfg.validate(); err != nil {
		return err
	}
	p, err := cfg.params()
	if err != nil {
		return err
	}
	sched := newTileScheduler(cfg.width, cfg.height, cfg.tile, p)
	log.Printf("frame %dx%d, %s, domain %v", cfg.width, cfg.height, p.Mode, p.Domain)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	irpcServer := newIrpcServer(sched)

	tcpListener, err := net.Listen("tcp", cfg.tcpAddr)
	if err != nil {
		return fmt.Errorf("net.Listen: %w", err)
	}
	log.Printf("tcp listening on %s", tcpListener.Addr())

	websocketListener, httpServer := webServer(ctx, cfg.httpAddr, cfg.static, sched)
	log.Printf("http listening on %s", cfg.httpAddr)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := httpServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("httpServer: %w", err)
		}
		return nil
	})
	// irpcServer serves both the tcp and the websocket workers
	g.Go(func() error {
		// Serve always fails; only errors before shutdown count
		if err := irpcServer.Serve(tcpListener); ctx.Err() == nil {
			return fmt.Errorf("server.Serve tcp: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		if err := irpcServer.Serve(websocketListener); ctx.Err() == nil {
			return fmt.Errorf("server.Serve ws: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		log.Printf("shutting down")
		if err := irpcServer.Close(); err != nil {
			log.Printf("irpcServer.Close: %v", err)
		}

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	})

	log.Printf("waiting for tcp and websocket workers")
	return g.Wait()
}

// newIrpcServer creates the irpc server coordinating the frame. Every
// connecting worker has to provide a fractal.Renderer, which is used to
// render tiles until the frame is complete. In return any peer may ask for
// the finished frame through fractal.ImgProvider.
func newIrpcServer(sched *tileScheduler) *irpc.Server {
	imgProviderIrpcService := fractal.NewImgProviderIrpcService(sched)

	irpcServer := irpc.NewServer(irpc.WithOnConnect(func(ep *irpc.Endpoint) {
		go func() {
			log.Printf("got connection from: %s", ep.RemoteAddr())

			rendererIrpcClient, err := fractal.NewRendererIrpcClient(ep)
			if err != nil {
				log.Printf("err: new Rendering client: %v", err)
				return
			}
			if err := sched.render(rendererIrpcClient); err != nil {
				log.Printf("err: render on client %q: %v", ep.RemoteAddr(), err)
			}
		}()
	}))
	irpcServer.AddService(imgProviderIrpcService)
	return irpcServer
}

type config struct {
	width, height int
	tile          int
	mode          string
	region        string
	cre, cim      float64
	tcpAddr       string
	httpAddr      string
	static        string
}

func defaultConfig() config {
	return config{
		width:    1920,
		height:   1080,
		tile:     64,
		mode:     "mandelbrot",
		region:   "seahorse",
		cre:      float64(fractal.DefaultC[0]),
		cim:      float64(fractal.DefaultC[1]),
		tcpAddr:  ":8081",
		httpAddr: ":8080",
		static:   "./static",
	}
}

func (c *config) registerFlags(fs *flag.FlagSet) {
	fs.IntVar(&c.width, "width", c.width, "frame width in pixels")
	fs.IntVar(&c.height, "height", c.height, "frame height in pixels")
	fs.IntVar(&c.tile, "tile", c.tile, "tile edge in pixels")
	fs.StringVar(&c.mode, "mode", c.mode, "julia or mandelbrot")
	fs.StringVar(&c.region, "region", c.region, "landmark to frame, empty for the default view ("+strings.Join(fractal.LandmarkNames(), ", ")+")")
	fs.Float64Var(&c.cre, "cre", c.cre, "real part of the julia parameter")
	fs.Float64Var(&c.cim, "cim", c.cim, "imaginary part of the julia parameter")
	fs.StringVar(&c.tcpAddr, "tcp", c.tcpAddr, "tcp listen address for workers")
	fs.StringVar(&c.httpAddr, "http", c.httpAddr, "http listen address for the web client, websocket workers and the frame")
	fs.StringVar(&c.static, "static", c.static, "directory served at /")
}

func (c config) validate() error {
	if c.width <= 0 || c.height <= 0 {
		return fmt.Errorf("invalid frame size %dx%d", c.width, c.height)
	}
	if c.tile <= 0 {
		return fmt.Errorf("invalid tile size %d", c.tile)
	}
	if _, err := fractal.ParseMode(c.mode); err != nil {
		return err
	}
	if c.region != "" {
		if _, err := fractal.Landmark(c.region); err != nil {
			return err
		}
	}
	return nil
}

// params frames the configured view. Without a region the frame gets the
// explorer's default view for the mode at the frame's aspect ratio.
func (c config) params() (fractal.Params, error) {
	mode, err := fractal.ParseMode(c.mode)
	if err != nil {
		return fractal.Params{}, err
	}
	julia := fractal.Complex{Real: c.cre, Imag: c.cim}

	if c.region != "" {
		r, err := fractal.Landmark(c.region)
		if err != nil {
			return fractal.Params{}, err
		}
		return fractal.ParamsFromRegion(r, mode, julia), nil
	}

	return viewport.Frame(c.width, c.height, mode, julia), nil
}
