package main

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/jessevdk/go-flags"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"
)

const (
	userAgent    = "bullseyegolf-light/1.0"
	maxFormBytes = 16 << 10
)

type Server struct {
	pages         *PageRenderer
	scores        *ScoreSubmitter
	submitLimiter *limiter.Limiter
	registry      *prometheus.Registry
	r             chi.Router
}

func main() {
	var opts Options
	parser := flags.NewParser(&opts, flags.Default)
	if _, err := parser.Parse(); err != nil {
		var flagsErr *flags.Error
		if errors.As(err, &flagsErr) && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}
	if err := opts.finalize(); err != nil {
		log.Fatalf("Configuration error: %v", err)
	}

	level, _ := opts.logLevel()
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	s, err := NewServer(&opts, http.DefaultClient, time.Now)
	if err != nil {
		log.Fatalf("Server initialization errored: %v", err)
	}

	slog.Info("listening", "addr", opts.ListenAddr, "api_server", opts.ServerURL)
	log.Fatal(http.ListenAndServe(opts.ListenAddr, s.r))
}

// NewServer wires the upstream client, pages, score submission and routes.
func NewServer(opts *Options, httpClient *http.Client, now func() time.Time) (*Server, error) {
	registry := prometheus.NewRegistry()
	m := newMetrics(registry)

	upstream, err := NewUpstreamClient(opts.ServerURL, httpClient, m)
	if err != nil {
		return nil, err
	}

	s := &Server{
		pages:    NewPageRenderer(upstream, now),
		scores:   NewScoreSubmitter(upstream, m),
		registry: registry,
	}

	if !opts.submitRateDisabled() {
		rate, err := limiter.NewRateFromFormatted(opts.SubmitRate)
		if err != nil {
			return nil, fmt.Errorf("invalid submit rate %q: %w", opts.SubmitRate, err)
		}
		s.submitLimiter = limiter.New(memory.NewStore(), rate)
	}

	s.r = s.routes(opts)
	return s, nil
}

func (s *Server) routes(opts *Options) chi.Router {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	if len(opts.CORSOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: opts.CORSOrigins,
			AllowedMethods: []string{"GET", "POST", "OPTIONS"},
			AllowedHeaders: []string{"Accept", "Content-Type"},
			MaxAge:         300,
		}))
	}

	r.Get("/u", s.GETPage)
	r.Post("/u", s.POSTScore)
	r.Get("/healthz", s.GETHealth)

	static, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	fileServer := http.FileServer(http.FS(static))
	r.Get("/user.css", fileServer.ServeHTTP)
	r.Get("/submit_score.html", fileServer.ServeHTTP)

	if opts.Metrics {
		r.Handle("/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))
	}
	return r
}
