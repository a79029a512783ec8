package oauth

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"time"
)

// callbackResult is what the browser redirect delivers back to us.
type callbackResult struct {
	Code  string
	State string
	Error string
}

// callbackServer is a short-lived localhost HTTP server that receives the
// authorization redirect and hands the query parameters back to the caller.
type callbackServer struct {
	port     int
	srv      *http.Server
	listener net.Listener
	results  chan callbackResult
}

func newCallbackServer(port int) *callbackServer {
	return &callbackServer{port: port, results: make(chan callbackResult, 1)}
}

func (c *callbackServer) start() error {
	ln, err := net.Listen("tcp", fmt.Sprintf("127.0.0.1:%d", c.port))
	if err != nil {
		return fmt.Errorf("listen on callback port: %w", err)
	}
	c.listener = ln

	mux := http.NewServeMux()
	mux.HandleFunc("/callback", func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		res := callbackResult{
			Code:  q.Get("code"),
			State: q.Get("state"),
			Error: q.Get("error"),
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if res.Error != "" {
			fmt.Fprintf(w, "<html><body>Authorization failed: %s. You may close this tab.</body></html>", res.Error)
		} else {
			fmt.Fprint(w, "<html><body>Authorization complete. You may close this tab.</body></html>")
		}
		select {
		case c.results <- res:
		default:
		}
	})

	c.srv = &http.Server{Handler: mux}
	go c.srv.Serve(ln)
	return nil
}

func (c *callbackServer) waitForCallback(timeout time.Duration) (callbackResult, error) {
	select {
	case res := <-c.results:
		return res, nil
	case <-time.After(timeout):
		return callbackResult{}, fmt.Errorf("timed out waiting for authorization callback")
	}
}

func (c *callbackServer) shutdown(ctx context.Context) {
	if c.srv != nil {
		c.srv.Shutdown(ctx)
	}
}
