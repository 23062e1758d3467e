package main

import (
	"context"
	"crypto/tls"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/sidereusnuntius/gofinger/internal/config"
	db "github.com/sidereusnuntius/gofinger/internal/db/impl"
	"github.com/sidereusnuntius/gofinger/internal/initialization"
	service "github.com/sidereusnuntius/gofinger/internal/service/impl"
	"github.com/sidereusnuntius/gofinger/internal/state"
	"github.com/sidereusnuntius/gofinger/internal/utils"
	"github.com/sidereusnuntius/gofinger/internal/webfinger"
	"github.com/sidereusnuntius/gofinger/internal/wellknown"
	"golang.org/x/crypto/acme/autocert"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	cfg, err := config.ReadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}
	if cfg.Debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	d, err := initialization.OpenDB(cfg.DbUrl)
	if err != nil {
		log.Fatal().Err(err).Msg("unable to open database")
	}
	defer d.Close()
	log.Info().Msg("database connection established")

	if os.Getenv("SETUP") != "" || cfg.Setup {
		if err = initialization.SetupDB(d, cfg.MigrationsFolder, cfg.DbUrl); err != nil {
			log.Fatal().Err(err).Msg("database setup failed")
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	directory := service.New(db.New(d))
	if cfg.SeedFile != "" {
		if _, err = initialization.Seed(ctx, directory, cfg.SeedFile); err != nil {
			log.Fatal().Err(err).Msg("unable to seed descriptors")
		}
	}

	st := state.State{
		Directory: directory,
		Config:    cfg,
	}

	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	if cfg.Debug {
		router.Use(wellknown.LogRequests)
	}
	wellknown.Mount(&st, router)

	s := &http.Server{
		Addr:              cfg.Addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		log.Info().Msg("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := s.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("shutdown failed")
		}
	}()

	err = listen(s, cfg)
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal().Err(err).Msg("server failed")
	}
}

// listen serves over TLS using, in order of preference, the configured certificate, ACME, or a
// self-signed certificate. Without any of these it falls back to plain HTTP, which WebFinger clients
// are not supposed to accept.
func listen(s *http.Server, cfg config.Configuration) error {
	scheme := "https"
	switch {
	case cfg.TLS.CertFile != "":
		log.Info().Str("cert", cfg.TLS.CertFile).Msg("using configured certificate")
	case len(cfg.TLS.AcmeDomains) > 0:
		m := &autocert.Manager{
			Prompt:     autocert.AcceptTOS,
			HostPolicy: autocert.HostWhitelist(cfg.TLS.AcmeDomains...),
			Cache:      autocert.DirCache(cfg.TLS.AcmeCacheDir),
		}
		s.TLSConfig = m.TLSConfig()
		log.Info().Strs("domains", cfg.TLS.AcmeDomains).Msg("using acme certificates")
	case cfg.TLS.SelfSigned:
		hosts := []string{cfg.Host}
		if h, _, err := net.SplitHostPort(cfg.Host); err == nil {
			hosts = []string{h}
		}
		cert, err := utils.SelfSignedCertificate(hosts, 90*24*time.Hour)
		if err != nil {
			return err
		}
		s.TLSConfig = &tls.Config{Certificates: []tls.Certificate{cert}}
		log.Warn().Strs("hosts", hosts).Msg("using a self-signed certificate")
	default:
		scheme = "http"
		log.Warn().Msg("TLS is not configured, serving plain HTTP; only use this for development")
	}

	log.Info().
		Str("addr", s.Addr).
		Str("example", scheme+"://"+cfg.Host+webfinger.WellKnownPath+"?resource=acct:carol@"+cfg.Host).
		Msg("started server")

	if scheme == "http" {
		return s.ListenAndServe()
	}
	return s.ListenAndServeTLS(cfg.TLS.CertFile, cfg.TLS.KeyFile)
}
