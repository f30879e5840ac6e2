package server

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/dialpro/apiserver/config"
	"github.com/dialpro/apiserver/internal/auth"
	"github.com/dialpro/apiserver/internal/db"
	"github.com/dialpro/apiserver/internal/export"
	"github.com/dialpro/apiserver/internal/handlers"
	"github.com/dialpro/apiserver/internal/metrics"
	"github.com/dialpro/apiserver/internal/mq"
	"github.com/dialpro/apiserver/internal/provider"
	"github.com/dialpro/apiserver/internal/records"
	"github.com/dialpro/apiserver/internal/services"
	"github.com/dialpro/apiserver/internal/session"
	"github.com/dialpro/apiserver/internal/stats"
	"github.com/dialpro/apiserver/internal/storage"
	"github.com/dialpro/apiserver/internal/store"
)

// Server wraps the HTTP server and router.
type Server struct {
	httpServer *http.Server
	router     *chi.Mux
	db         *sql.DB
	broker     *mq.MQ
}

// New constructs a Server: data provider, record store, session
// manager, intent broker, export storage, and the HTTP routes on top.
func New(ctx context.Context, cfg config.Config) (*Server, error) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	var (
		dbConn      *sql.DB
		source      services.RecordSource
		patcher     services.NotePatcher
		followUpSrc services.FollowUpSource
	)
	switch cfg.DataProvider {
	case "postgres":
		conn, err := db.Open(ctx, cfg)
		if err != nil {
			return nil, fmt.Errorf("open database: %w", err)
		}
		dbConn = conn
		callLogRepo := store.NewCallLogRepository(conn, logger)
		source = callLogRepo
		patcher = callLogRepo
		followUpSrc = store.NewFollowUpRepository(conn)
	case "mock", "":
		mock := provider.NewMock()
		source = mock
		followUpSrc = mock
	default:
		return nil, fmt.Errorf("unknown data provider %q", cfg.DataProvider)
	}

	recordStore := records.New(logger)

	broker, err := mq.Connect(ctx, cfg.MQ)
	if err != nil {
		closeQuietly(dbConn)
		return nil, err
	}

	exportStorage, err := newExportStorage(ctx, cfg.Storage)
	if err != nil {
		closeQuietly(dbConn)
		closeBrokerQuietly(broker)
		return nil, err
	}

	intents := services.NewIntentPublisher(broker, cfg.MQ.Channel, logger)
	callLogService := services.NewCallLogService(recordStore, source, patcher, intents, logger)
	if err := callLogService.Load(ctx); err != nil {
		closeQuietly(dbConn)
		closeBrokerQuietly(broker)
		return nil, err
	}

	statsService := services.NewStatsService(recordStore, stats.New())
	followUpService := services.NewFollowUpService(followUpSrc)
	exporter := export.NewExporter(exportStorage)

	verifier := auth.NewVerifier(cfg.Auth.Mode)
	sessionStore := session.NewFileStore(cfg.Session.FilePath)
	delay := time.Duration(cfg.Auth.LoginDelayMillis) * time.Millisecond
	sessions := session.NewManager(verifier, sessionStore, delay, logger)
	if user, ok := sessions.Restore(); ok {
		logger.Info("restored persisted session", "email", user.Email, "role", user.Role)
	}

	jwtSecret := strings.TrimSpace(os.Getenv("JWT_SECRET"))
	if jwtSecret == "" {
		closeQuietly(dbConn)
		closeBrokerQuietly(broker)
		return nil, errors.New("JWT_SECRET is required")
	}

	authMiddleware := handlers.RequireAuth(jwtSecret)

	router := chi.NewRouter()
	router.Use(
		middleware.RequestID,
		middleware.RealIP,
		middleware.Recoverer,
		middleware.Logger,
		middleware.Timeout(60*time.Second),
	)
	router.Get("/healthz", handlers.Healthz)
	router.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{}))
	router.Route("/auth", func(r chi.Router) {
		handlers.AuthRouter(r, sessions, jwtSecret)
	})
	router.Route("/calls", func(r chi.Router) {
		handlers.CallsRouter(r, callLogService, exporter, authMiddleware)
	})
	router.Route("/stats", func(r chi.Router) {
		handlers.StatsRouter(r, statsService, authMiddleware)
	})
	router.Route("/views", func(r chi.Router) {
		handlers.ViewsRouter(r, authMiddleware)
	})
	router.Route("/followups", func(r chi.Router) {
		handlers.FollowUpsRouter(r, followUpService, authMiddleware)
	})

	port := cfg.ServerPort
	if port == 0 {
		port = 8080
	}

	httpServer := &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return &Server{
		httpServer: httpServer,
		router:     router,
		db:         dbConn,
		broker:     broker,
	}, nil
}

// Router exposes the chi router for route registration.
func (s *Server) Router() *chi.Mux {
	return s.router
}

// Start runs the HTTP server.
func (s *Server) Start() error {
	return s.httpServer.ListenAndServe()
}

// Shutdown attempts a graceful shutdown.
func (s *Server) Shutdown() error {
	closeQuietly(s.db)
	closeBrokerQuietly(s.broker)
	return s.httpServer.Close()
}

func newExportStorage(ctx context.Context, cfg config.StorageConfig) (*storage.Storage, error) {
	var backend storage.ObjectStorage
	switch cfg.Backend {
	case "":
		return nil, nil
	case "minio":
		client, err := storage.NewMinioClient(cfg.Minio)
		if err != nil {
			return nil, fmt.Errorf("connect minio: %w", err)
		}
		backend = client
	case "gcs":
		client, err := storage.NewGCSClient(ctx, cfg.GCS)
		if err != nil {
			return nil, fmt.Errorf("connect gcs: %w", err)
		}
		backend = client
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Backend)
	}

	st := storage.NewStorage(backend)
	if err := st.EnsureBucket(ctx); err != nil {
		return nil, fmt.Errorf("ensure export bucket: %w", err)
	}
	return st, nil
}

func closeQuietly(db *sql.DB) {
	if db != nil {
		_ = db.Close()
	}
}

func closeBrokerQuietly(broker *mq.MQ) {
	if broker != nil {
		_ = broker.Close()
	}
}
