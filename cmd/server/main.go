package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"toposcope/internal/config"
	"toposcope/internal/domain"
	"toposcope/internal/handler"
	"toposcope/internal/hub"
	"toposcope/internal/layoutstore"
	"toposcope/internal/repository/sqlite"
	"toposcope/internal/service"
	"toposcope/internal/sim"
	"toposcope/internal/topology"
)

func main() {
	// Command line flags override config file values
	addr := flag.String("addr", "", "HTTP listen address")
	configPath := flag.String("config", "", "config file path")
	dbPath := flag.String("db", "", "SQLite database path for the bundled layout store")
	topologyURL := flag.String("topology", "", "topology endpoint URL")
	topologyFile := flag.String("topology-file", "", "topology snapshot file (overrides -topology)")
	layoutsURL := flag.String("layouts", "", "layout store base URL (empty uses the bundled store)")
	flag.Parse()

	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("Starting toposcope server...")

	// Load configuration
	var cfg *config.Config
	var cfgFile string
	var err error
	if *configPath != "" {
		cfg, cfgFile, err = config.LoadFromPath(*configPath)
	} else {
		cfg, cfgFile, err = config.Load()
	}
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if cfgFile != "" {
		log.Printf("Config loaded from %s", cfgFile)
	}
	if *addr != "" {
		cfg.Addr = *addr
	}
	if *dbPath != "" {
		cfg.Database.Path = *dbPath
	}
	if *topologyURL != "" {
		cfg.Topology.URL = *topologyURL
	}
	if *topologyFile != "" {
		cfg.Topology.File = *topologyFile
	}
	if *layoutsURL != "" {
		cfg.Layouts.URL = *layoutsURL
	}

	// Load the topology. A failure here is fatal: there is nothing to draw.
	graph, err := loadTopology(cfg)
	if err != nil {
		log.Fatalf("Failed to load topology: %v", err)
	}
	log.Printf("Topology loaded: %d nodes, %d edges", len(graph.Nodes()), len(graph.Edges()))
	for _, warning := range graph.Warnings() {
		log.Printf("Topology warning: %s", warning)
	}

	// Bundled layout store
	repo, err := sqlite.New(cfg.Database.Path)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer repo.Close()
	log.Printf("Database opened: %s", cfg.Database.Path)

	// The session saves to the configured external store, or straight into
	// the bundled repository when none is configured.
	var store service.LayoutStore
	if cfg.Layouts.URL != "" {
		store = layoutstore.NewClient(cfg.Layouts.URL)
		log.Printf("Using layout store at %s", cfg.Layouts.URL)
	} else {
		store = repo
		log.Println("Using bundled layout store")
	}

	// Event bus and SSE hub. The run context stops the hub and the
	// simulation loop together during shutdown.
	runCtx, runCancel := context.WithCancel(context.Background())
	defer runCancel()

	eventBus := service.NewEventBus()
	sseHub := hub.New()
	go sseHub.Run(runCtx)
	eventBus.Subscribe(sseHub.Events())

	// Session and simulation loop
	params := sim.DefaultParams()
	if cfg.Sim.Width > 0 {
		params.Width = cfg.Sim.Width
	}
	if cfg.Sim.Height > 0 {
		params.Height = cfg.Sim.Height
	}
	session := service.NewSession(graph, params, store, eventBus)

	tickInterval, err := time.ParseDuration(cfg.Sim.TickInterval)
	if err != nil {
		log.Fatalf("Invalid tick interval %q: %v", cfg.Sim.TickInterval, err)
	}
	runner := service.NewRunner(session, eventBus, tickInterval)
	go func() {
		if err := runner.Run(runCtx); err != nil && !errors.Is(err, context.Canceled) {
			log.Printf("Simulation loop stopped: %v", err)
		}
	}()

	// HTTP handlers
	sessionHandler := handler.NewSessionHandler(session)
	storeHandler := handler.NewStoreHandler(repo)

	mux := http.NewServeMux()

	// Session endpoints
	mux.HandleFunc("GET /api/graph", sessionHandler.GetGraph)
	mux.HandleFunc("GET /api/frame", sessionHandler.GetFrame)
	mux.HandleFunc("POST /api/pointer", sessionHandler.Pointer)
	mux.HandleFunc("POST /api/visibility", sessionHandler.SetVisibility)
	mux.HandleFunc("POST /api/viewport", sessionHandler.SetViewport)

	// Layout endpoints against the configured store
	mux.HandleFunc("GET /api/layouts", sessionHandler.ListLayouts)
	mux.HandleFunc("POST /api/layouts/{name}/save", sessionHandler.SaveLayout)
	mux.HandleFunc("POST /api/layouts/{name}/load", sessionHandler.LoadLayout)

	// Layout document import/export
	mux.HandleFunc("GET /api/export/{format}", sessionHandler.ExportLayout)
	mux.HandleFunc("POST /api/import/{format}", sessionHandler.ImportLayout)

	// Bundled layout store, serving the store contract
	mux.HandleFunc("GET /store/layouts", storeHandler.List)
	mux.HandleFunc("GET /store/layouts/{name}", storeHandler.Get)
	mux.HandleFunc("POST /store/layouts/{name}", storeHandler.Put)

	// SSE events endpoint
	mux.Handle("GET /events", sseHub)

	finalHandler := handler.Chain(mux,
		handler.Recover,
		handler.CORS,
		handler.Logger,
	)

	server := &http.Server{
		Addr:         cfg.Addr,
		Handler:      finalHandler,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 0, // SSE connections stay open
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Listening on %s", cfg.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down...")

	runCancel()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Shutdown error: %v", err)
	}
	log.Println("Server stopped")
}

// loadTopology builds the graph from the configured source, preferring a
// snapshot file over the live endpoint.
func loadTopology(cfg *config.Config) (*domain.Graph, error) {
	if cfg.Topology.File != "" {
		log.Printf("Loading topology from file %s", cfg.Topology.File)
		return topology.LoadFile(cfg.Topology.File)
	}
	if cfg.Topology.URL == "" {
		return nil, errors.New("no topology source configured, set -topology or -topology-file")
	}

	log.Printf("Fetching topology from %s", cfg.Topology.URL)
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	return topology.NewClient(cfg.Topology.URL).Fetch(ctx)
}
