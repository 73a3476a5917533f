// Package web is a driver that takes its input from a browser over a
// websocket. The driver serves a page whose canvas forwards DOM input
// events; the first browser to connect is the player, later ones spectate
// and take over in connection order when the player leaves.
package web

import (
	"context"
	_ "embed"
	"errors"
	"net/http"

	"github.com/thelolagemann/goinput/pkg/driver"
	"github.com/thelolagemann/goinput/pkg/log"
	"github.com/thelolagemann/goinput/pkg/loop"
	"github.com/thelolagemann/goinput/pkg/raw"
)

//go:embed client.html
var page []byte

func init() {
	d := &webDriver{}
	driver.Install("web", d, []driver.DriverOption{
		{
			Name:        "addr",
			Default:     ":8090",
			Value:       &d.addr,
			Type:        "string",
			Description: "Address to serve the web client on",
		},
	})
}

type webDriver struct {
	addr string

	loop *loop.Loop
	hub  *hub
	log  log.Logger
	srv  *http.Server

	// owned by the loop goroutine
	left, top float64
}

func (d *webDriver) Initialize(l *loop.Loop) error {
	d.loop = l
	d.log = l.Logger()
	d.hub = newHub(d.log, l.Post, func(left, top float64) {
		l.Do(func() { d.left, d.top = left, top })
	})
	return nil
}

// Start serves the client page and runs the loop until ctx is done.
func (d *webDriver) Start(ctx context.Context) error {
	if d.loop == nil {
		return errors.New("web: driver not initialized")
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write(page)
	})
	mux.HandleFunc("/ws", d.hub.serve)
	d.srv = &http.Server{Addr: d.addr, Handler: mux}

	go d.hub.run(ctx)

	serveErr := make(chan error, 1)
	go func() {
		if err := d.srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
			d.loop.Quit()
		}
	}()
	d.log.Infof("web: serving on %s", d.addr)

	err := d.loop.Run(ctx)
	cancel()
	d.Stop()

	select {
	case err := <-serveErr:
		return err
	default:
	}
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func (d *webDriver) Stop() error {
	if d.srv == nil {
		return nil
	}
	return d.srv.Shutdown(context.Background())
}

func (d *webDriver) Target() raw.Target {
	return raw.TargetFunc(func() (float64, float64) { return d.left, d.top })
}

func (d *webDriver) Locker() raw.Locker {
	return d
}

func (d *webDriver) RequestLock() {
	d.hub.toPlayer([]byte{PointerLock, 1})
}

func (d *webDriver) ExitLock() {
	d.hub.toPlayer([]byte{PointerLock, 0})
}
