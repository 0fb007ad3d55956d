// Command fake-bookstore runs the in-memory book store service, for trying out the
// contract tests without a real deployment.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bookstore-qa/bookstore-contract-tests/fakestore"
	"github.com/bookstore-qa/bookstore-contract-tests/framework"
)

func main() {
	port := flag.Int("port", 8000, "HTTP listen port")
	verbose := flag.Bool("verbose", false, "log every request")
	flag.Parse()

	logger := log.New(os.Stdout, "[fake-bookstore] ", log.LstdFlags)
	var requestLogger framework.Logger = framework.NullLogger()
	if *verbose {
		requestLogger = logger
	}

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", *port),
		Handler:           fakestore.NewServer(requestLogger),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Printf("Listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Printf("Server error: %s", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	logger.Printf("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Printf("Shutdown error: %s", err)
	}
}
