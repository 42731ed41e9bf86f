package output

import (
	"context"
	"fmt"
	"html/template"
	"net"
	"sync"
	"time"

	routing "github.com/jackwhelpton/fasthttp-routing/v2"
	"github.com/valyala/fasthttp"
)

var viewerPage = template.Must(template.New("viewer").Parse(`<!DOCTYPE html>
<html>
<head><title>{{.Name}}</title></head>
<body>
<img src="{{.ChartPath}}" alt="{{.Name}}" style="max-width: 100%;">
<form method="post" action="/dismiss"><button type="submit">Dismiss</button></form>
</body>
</html>
`))

// Shutdown waits for every open connection, so idle keep-alive connections
// held by the browser must time out quickly for View to return.
const (
	viewerReadTimeout = 2 * time.Second
	viewerIdleTimeout = 500 * time.Millisecond
)

// HTTPViewer serves the chart on a local web page until the page's Dismiss
// button is pressed or the context is cancelled.
type HTTPViewer struct {
	addr string
	// onListen is told the chart name and page URL once the server accepts
	// connections.
	onListen func(name, url string)
}

func NewHTTPViewer(addr string, onListen func(name, url string)) *HTTPViewer {
	if onListen == nil {
		onListen = func(string, string) {}
	}
	return &HTTPViewer{addr: addr, onListen: onListen}
}

func (v *HTTPViewer) View(ctx context.Context, image []byte, format, name string) error {
	ln, err := net.Listen("tcp", v.addr)
	if err != nil {
		return fmt.Errorf("HTTPViewer.View() got err listening on %s: %w", v.addr, err)
	}

	dismissed := make(chan struct{})
	var dismissOnce sync.Once

	chartPath := "/chart." + format
	router := routing.New()
	router.Get("/", func(c *routing.Context) error {
		c.SetContentType("text/html; charset=utf-8")
		return viewerPage.Execute(c.RequestCtx, struct{ Name, ChartPath string }{Name: name, ChartPath: chartPath})
	})
	router.Get(chartPath, func(c *routing.Context) error {
		c.SetContentType(ContentType(format))
		c.SetBody(image)
		return nil
	})
	router.Post("/dismiss", func(c *routing.Context) error {
		dismissOnce.Do(func() { close(dismissed) })
		c.SetConnectionClose()
		return c.Write("dismissed\n")
	})

	server := &fasthttp.Server{
		Handler:         router.HandleRequest,
		ReadTimeout:     viewerReadTimeout,
		IdleTimeout:     viewerIdleTimeout,
		CloseOnShutdown: true,
	}
	serveErr := make(chan error, 1)
	go func() {
		serveErr <- server.Serve(ln)
	}()

	v.onListen(name, fmt.Sprintf("http://%s/", ln.Addr().String()))

	var cancelled error
	select {
	case <-dismissed:
	case <-ctx.Done():
		cancelled = ctx.Err()
	case err := <-serveErr:
		return fmt.Errorf("HTTPViewer.View() got fasthttp server error: %w", err)
	}

	if err := server.Shutdown(); err != nil {
		return fmt.Errorf("HTTPViewer.View() got err shutting down server: %w", err)
	}
	return cancelled
}
