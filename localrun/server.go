package localrun

import (
	"context"
	"net/http"
	"time"

	"github.com/aws/aws-lambda-go/lambda"
)

var srv *http.Server

// Serve runs the local server on addr until Close is called.
func Serve(addr string, handler lambda.Handler, opts ...Option) error {
	e := NewEngine(handler, opts...)
	srv = &http.Server{
		Addr:    addr,
		Handler: e,
	}

	e.log.Infof("[Local] Serving %s on %s", e.FunctionName, addr)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Close shuts the server down, waiting up to five seconds for invocations.
func Close() error {
	if srv == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(ctx)
}
