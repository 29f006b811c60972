package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	httpapi "github.com/arcbound/accountd/internal/http"
	"github.com/arcbound/accountd/internal/service"
	"github.com/arcbound/accountd/internal/store"
	"github.com/arcbound/accountd/internal/store/drivers/sqlite"
	"github.com/arcbound/accountd/pkg/httpx"
	"github.com/arcbound/accountd/pkg/jwtx"
	"github.com/arcbound/accountd/pkg/slogx"
)

// Version is stamped at build time via -ldflags.
var Version = "dev"

// Application wires config, storage, services, and the HTTP server.
type Application struct {
	Config Config
	Store  store.Store

	server *http.Server
}

// New opens the database, runs migrations, and assembles the service graph.
func New(cfg Config) (*Application, error) {
	logger := slogx.New(slogx.Config{
		Service: "accountd",
		Version: Version,
		Env:     cfg.Env,
		Level:   cfg.LogLevel,
		Format:  cfg.LogFormat,
	})

	st, err := openDatabase(cfg.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := st.ApplyMigrations(); err != nil {
		_ = st.Close()
		return nil, fmt.Errorf("apply migrations: %w", err)
	}

	signer, err := jwtx.NewHS256([]byte(cfg.SecretKey), cfg.TokenIssuer, 30*time.Second)
	if err != nil {
		_ = st.Close()
		return nil, fmt.Errorf("init token signer: %w", err)
	}

	accounts := &service.AccountService{Store: st}
	tokens := &service.TokenService{
		Signer:     signer,
		Store:      st,
		Issuer:     cfg.TokenIssuer,
		AccessTTL:  cfg.AccessTTL,
		RefreshTTL: cfg.RefreshTTL,
	}
	identity := &service.IdentityService{Verifier: signer, Store: st}

	router := httpapi.NewRouter(accounts, tokens, identity, st,
		slogx.HTTPMiddleware(logger),
		httpx.CORS(cfg.CORSOrigin),
	)
	router.Version = Version

	return &Application{
		Config: cfg,
		Store:  st,
		server: &http.Server{
			Addr:    cfg.Addr(),
			Handler: router,
		},
	}, nil
}

// Run serves HTTP until SIGINT/SIGTERM, then drains connections within the
// configured grace period.
func (a *Application) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		slogx.FromContext(ctx).Info("http server listening", "addr", a.server.Addr)
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	slogx.FromContext(ctx).Info("shutting down", "grace", a.Config.ShutdownGrace)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.Config.ShutdownGrace)
	defer cancel()

	if err := a.server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return a.Store.Close()
}

// openDatabase opens the sqlite store with WAL and a busy timeout, which
// keeps writers from failing fast while another transaction holds the lock.
func openDatabase(path string) (store.Store, error) {
	dsn := fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)", path)
	return sqlite.NewStore(dsn)
}
