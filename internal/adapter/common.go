package adapter

import (
	"fmt"
	"net/http"
	"time"

	"github.com/imposter-project/jsonmock/internal/config"
	"github.com/imposter-project/jsonmock/internal/handler"
	"github.com/imposter-project/jsonmock/internal/interceptor"
	"github.com/imposter-project/jsonmock/internal/router"
	"github.com/imposter-project/jsonmock/internal/store"
	"github.com/imposter-project/jsonmock/pkg/logger"
)

// Server is the assembled application, ready to be run by an adapter
type Server struct {
	Config   *config.ServerConfig
	Provider store.Provider
	Router   *router.Router
	Handler  http.Handler
}

// InitialiseServer performs common initialisation tasks for all adapters
func InitialiseServer(dbFileArg string) (*Server, error) {
	cfg, err := config.LoadServerConfig(dbFileArg)
	if err != nil {
		return nil, err
	}
	logger.Configure(cfg.LogLevel, cfg.LogFile)
	return NewServer(cfg)
}

// NewServer wires the store provider, router, interceptor chain and
// top-level handler for the given configuration
func NewServer(cfg *config.ServerConfig) (*Server, error) {
	startTime := time.Now()
	logger.Infoln("starting jsonmock...")

	provider, err := store.NewProvider(cfg.Store)
	if err != nil {
		return nil, err
	}

	db, err := router.LoadDatabase(cfg.DBFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load database: %w", err)
	}
	rt := router.NewRouter(provider, db)
	logger.Infof("loaded %d collections from %s: %v", len(rt.Collections()), cfg.DBFile, rt.Collections())

	chain := interceptor.NewChain(cfg.Interceptor, rt)
	logger.Debugf("interceptor stages: %v", chain.Stages())

	logger.Debugf("initialisation completed in %v", time.Since(startTime))
	return &Server{
		Config:   cfg,
		Provider: provider,
		Router:   rt,
		Handler: handler.NewHandler(chain, provider, handler.ServerInfo{
			StoreDriver: store.DriverName(cfg.Store.Driver),
			Collections: rt.Collections(),
		}),
	}, nil
}
