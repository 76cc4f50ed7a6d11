package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/Lelo88/pos-inventory-golang/internal/auth"
	"github.com/Lelo88/pos-inventory-golang/internal/checkout"
	"github.com/Lelo88/pos-inventory-golang/internal/config"
	"github.com/Lelo88/pos-inventory-golang/internal/db"
	"github.com/Lelo88/pos-inventory-golang/internal/docs"
	"github.com/Lelo88/pos-inventory-golang/internal/health"
	"github.com/Lelo88/pos-inventory-golang/internal/httpx"
	"github.com/Lelo88/pos-inventory-golang/internal/items"
	"github.com/Lelo88/pos-inventory-golang/internal/report"
)

// appPool es lo que el proceso necesita del pool: ping para readiness y
// acceso a queries para los repositorios.
type appPool interface {
	Ping(ctx context.Context) error
	Close()
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// appDeps agrupa las dependencias de run para poder testear el arranque.
type appDeps struct {
	loadConfig     func() (config.Config, error)
	newPool        func(ctx context.Context, url string) (appPool, error)
	listenAndServe func(addr string, handler http.Handler) error
	logf           func(format string, args ...any)
}

func main() {
	// .env es opcional: en producción las vars vienen del entorno.
	_ = godotenv.Load()

	deps := appDeps{
		loadConfig: config.Load,
		newPool: func(ctx context.Context, url string) (appPool, error) {
			return db.NewPool(ctx, url)
		},
		listenAndServe: http.ListenAndServe,
		logf:           log.Printf,
	}

	if err := run(context.Background(), deps); err != nil {
		log.Fatal(err)
	}
}

func run(ctx context.Context, deps appDeps) error {
	cfg, err := deps.loadConfig()
	if err != nil {
		return err
	}

	pool, err := deps.newPool(ctx, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer pool.Close()

	logger, err := zap.NewProduction()
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	router := buildRouter(cfg, pool, logger)

	addr := ":" + cfg.Port
	deps.logf("listening on %s", addr)
	return deps.listenAndServe(addr, router)
}

// buildRouter arma el router completo: middlewares base, rutas públicas de
// caja, auth y el bloque /admin detrás del middleware de sesión.
func buildRouter(cfg config.Config, pool appPool, logger *zap.Logger) chi.Router {
	r := chi.NewRouter()

	// Middlewares base para trazabilidad y estabilidad.
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(10 * time.Second))

	// Errores de routing se manejan a nivel router.
	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		httpx.Fail(w, req, http.StatusNotFound, "not_found", "resource not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, req *http.Request) {
		httpx.Fail(w, req, http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed")
	})

	healthHandler := health.New(pool)
	r.Get("/health", healthHandler.Health)
	r.Get("/ready", healthHandler.Ready)

	docs.RegisterRoutes(r)

	secret := []byte(cfg.SessionSecret)

	itemsRepository := items.NewRepository(pool)
	codes := items.NewCodeGenerator(itemsRepository)
	itemsService := items.NewService(itemsRepository, codes, logger)
	drafts := checkout.NewSigner(secret, cfg.DraftTTL)
	itemsHandler := items.NewHandler(itemsService, drafts)
	items.RegisterRoutes(r, itemsHandler)

	usersRepository := auth.NewRepository(pool)
	authService := auth.NewService(usersRepository, logger)
	sessions := auth.NewSessions(secret, cfg.SessionTTL)
	authHandler := auth.NewHandler(authService, sessions)
	auth.RegisterRoutes(r, authHandler)

	reportHandler := report.NewHandler(itemsService)

	r.Route("/admin", func(r chi.Router) {
		r.Use(auth.RequireAdmin(sessions))
		items.RegisterAdminRoutes(r, itemsHandler)
		report.RegisterRoutes(r, reportHandler)
	})

	return r
}
