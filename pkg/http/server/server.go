package server

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"time"
)

type Config struct {
	Port    int
	Timeout time.Duration
}

// New wraps handler in an http.Server bound to config.Port whose base
// context is ctx.
func New(ctx context.Context, handler http.Handler, config Config) *http.Server {
	return &http.Server{
		Addr:    fmt.Sprintf(":%d", config.Port),
		Handler: handler,
		BaseContext: func(_ net.Listener) context.Context {
			return ctx
		},
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      config.Timeout + 10*time.Second,
		IdleTimeout:       time.Minute,
		ReadHeaderTimeout: 5 * time.Second,
	}
}
