package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cognicore/speller/pkg/speller"
	"github.com/cognicore/speller/pkg/speller/config"
)

func main() {
	configPath := flag.String("config", getenv("SPELLER_CONFIG", ""), "YAML config file (defaults apply when empty)")
	flag.Parse()

	var cfg *config.Config
	if *configPath == "" {
		def := config.Default()
		cfg = &def
	} else {
		loaded, err := config.Load(*configPath)
		if err != nil {
			log.Fatalf("config: %v", err)
		}
		cfg = loaded
	}
	if err := cfg.ApplyEnv(os.Getenv); err != nil {
		log.Fatalf("config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	s, err := speller.Open(ctx, cfg, log.Printf)
	if err != nil {
		log.Fatalf("init error: %v", err)
	}
	defer s.Close()
	if s.Bootstrapped {
		log.Printf("dictionaries bootstrapped from corpus (%d domain words)", s.Dictionary().DomainLen())
	}

	addr := getenv("HTTP_ADDR", ":8080")
	srv := &http.Server{
		Addr:              addr,
		Handler:           newMux(s),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
	}()

	log.Printf("listening on %s", addr)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal(err)
	}
}

func getenv(key, def string) string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	return v
}
