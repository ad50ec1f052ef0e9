// Package main initializes and starts the portfolio server, setting up
// configuration, logging, the content store, the mail relay, services,
// handlers, the web views and optional TLS.
package main

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	nethttp "net/http"

	"go.uber.org/zap"

	"github.com/pngalemo/portfolio/internal/client"
	"github.com/pngalemo/portfolio/internal/config"
	"github.com/pngalemo/portfolio/internal/db"
	"github.com/pngalemo/portfolio/internal/logger"
	"github.com/pngalemo/portfolio/internal/mail"
	"github.com/pngalemo/portfolio/internal/repository"
	"github.com/pngalemo/portfolio/internal/server/handler/http"
	"github.com/pngalemo/portfolio/internal/service"
	"github.com/pngalemo/portfolio/internal/web"
)

var (
	// version holds the build version set via ldflags.
	version string
	// buildDate holds the build timestamp set via ldflags.
	buildDate string
)

// stores bundles the repositories of one backend.
type stores struct {
	profile service.ProfileRepository
	project service.ProjectRepository
	resume  service.ResumeRepository
	ping    func(ctx context.Context) error
	close   func(ctx context.Context) error
}

func main() {
	options, err := config.Parse(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "configuration: %v\n", err)
		os.Exit(2)
	}

	fmt.Printf("Build version: %s\n", cmp.Or(version, "N/A"))
	fmt.Printf("Build date: %s\n", cmp.Or(buildDate, "N/A"))

	log := logger.New()
	defer func() { _ = log.Log.Sync() }()
	if err := log.Init(options.Log.Level); err != nil {
		log.Log.Fatal("failed to init logger", zap.Error(err))
	}
	zapLogger := log.Log

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	st, err := openStores(ctx, options.Database)
	if err != nil {
		zapLogger.Fatal("cannot init database", zap.Error(err))
	}

	relay := mail.NewBreakerRelay(
		mail.NewSMTPRelay(mail.SMTPConfig{
			Host:     options.Mail.Host,
			Port:     options.Mail.Port,
			Username: options.Mail.Username,
			Password: options.Mail.Password,
			Timeout:  options.Mail.Timeout,
			StartTLS: options.Mail.StartTLS,
		}),
		mail.BreakerSettings{
			MaxFailures: options.Breaker.MaxFailures,
			OpenTimeout: options.Breaker.OpenTimeout,
		},
		zapLogger,
	)

	svcOpts := []service.Option{
		service.WithTimeout(options.Database.Timeout),
		service.WithLogger(zapLogger),
	}
	profileService := service.NewProfileService(st.profile, svcOpts...)
	projectService := service.NewProjectService(st.project, svcOpts...)
	resumeService := service.NewResumeService(st.resume, svcOpts...)
	contactService := service.NewContactService(relay, service.ContactConfig{
		From:      options.Mail.Username,
		FromName:  options.Mail.FromName,
		Recipient: options.Mail.Recipient,
	}, zapLogger)

	tlsEnabled := options.Server.TLSCert != "" && options.Server.TLSKey != ""
	// Without an explicit API URL the views call the router in-process, so
	// TLS and per-IP limits see the visitor rather than a loopback dial.
	loopback := &client.HandlerTransport{}
	apiBase := selfAPIBase(options.Server.Address, tlsEnabled)
	apiClient := client.NewWithHTTPClient(apiBase, &nethttp.Client{
		Transport: loopback,
		Timeout:   options.Web.ClientTimeout,
	})
	if options.Web.APIBaseURL != "" {
		apiBase = options.Web.APIBaseURL
		apiClient = client.New(apiBase, options.Web.ClientTimeout)
	}
	webHandler, err := web.New(apiClient, zapLogger, web.Options{
		ContactLimit:  options.RateLimit.Requests,
		ContactWindow: options.RateLimit.Window,
	})
	if err != nil {
		zapLogger.Fatal("cannot load web templates", zap.Error(err))
	}

	router := http.NewRouter(http.Handlers{
		About:    &http.AboutHandler{ProfileService: profileService, Log: zapLogger},
		Projects: &http.ProjectHandler{ProjectService: projectService, Log: zapLogger},
		Resume:   &http.ResumeHandler{ResumeService: resumeService, Log: zapLogger},
		Contact:  &http.ContactHandler{ContactService: contactService, Log: zapLogger},
		Health: &http.HealthHandler{
			Ping:      st.ping,
			MailState: func() string { return relay.State().String() },
			Log:       zapLogger,
		},
	}, http.RouterOptions{
		CORSOrigins:    options.Server.CORSOrigins,
		RequestTimeout: options.Server.RequestTimeout,
		ContactLimit:   options.RateLimit.Requests,
		ContactWindow:  options.RateLimit.Window,
		Web:            webHandler,
	}, zapLogger)
	loopback.Handler = router

	server := &nethttp.Server{
		Addr:              options.Server.Address,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		zapLogger.Info("starting server",
			zap.String("addr", server.Addr),
			zap.Bool("tls", tlsEnabled),
			zap.String("api_base", apiBase),
		)
		if tlsEnabled {
			serveErr <- server.ListenAndServeTLS(options.Server.TLSCert, options.Server.TLSKey)
			return
		}
		serveErr <- server.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if !errors.Is(err, nethttp.ErrServerClosed) {
			zapLogger.Error("server stopped", zap.Error(err))
		}
	case <-ctx.Done():
		zapLogger.Info("shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), options.Server.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		zapLogger.Error("graceful shutdown failed", zap.Error(err))
	}
	if err := st.close(shutdownCtx); err != nil {
		zapLogger.Error("close database", zap.Error(err))
	}
}

// openStores connects to the backend named by the DSN scheme.
func openStores(ctx context.Context, cfg config.DatabaseConfig) (*stores, error) {
	backend, err := cfg.Backend()
	if err != nil {
		return nil, err
	}

	switch backend {
	case config.BackendMongo:
		database, err := db.InitMongo(ctx, cfg.DSN, cfg.Name, cfg.Timeout)
		if err != nil {
			return nil, err
		}
		return &stores{
			profile: repository.NewMongoProfileRepository(database),
			project: repository.NewMongoProjectRepository(database),
			resume:  repository.NewMongoResumeRepository(database),
			ping: func(ctx context.Context) error {
				return database.Client().Ping(ctx, nil)
			},
			close: func(ctx context.Context) error {
				return db.DisconnectMongo(ctx, database)
			},
		}, nil
	default:
		sqlDB, err := db.InitPostgres(ctx, cfg.DSN, cfg.Timeout)
		if err != nil {
			return nil, err
		}
		return &stores{
			profile: repository.NewPostgresProfileRepository(sqlDB),
			project: repository.NewPostgresProjectRepository(sqlDB),
			resume:  repository.NewPostgresResumeRepository(sqlDB),
			ping:    sqlDB.PingContext,
			close: func(context.Context) error {
				return sqlDB.Close()
			},
		}, nil
	}
}

// selfAPIBase is this server's own /api prefix.
func selfAPIBase(addr string, tls bool) string {
	host, port, err := net.SplitHostPort(addr)
	if err != nil {
		host, port = addr, ""
	}
	if host == "" || host == "0.0.0.0" || host == "::" {
		host = "localhost"
	}
	scheme := "http"
	if tls {
		scheme = "https"
	}
	if port == "" {
		return scheme + "://" + host + "/api"
	}
	return scheme + "://" + net.JoinHostPort(host, port) + "/api"
}
