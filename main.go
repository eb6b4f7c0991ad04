package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"pitchprice/config"
	"pitchprice/dataset"
	"pitchprice/httputil"
	"pitchprice/identity"
	"pitchprice/logging"
	"pitchprice/scheduler"
	"pitchprice/server"
	"pitchprice/services"
	"pitchprice/storage"
	"pitchprice/venue"
	"pitchprice/workers"
)

var (
	validate = flag.Bool("validate", false, "Resolve config and load data once, then exit")
)

func main() {
	flag.Parse()
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logFile, err := logging.Setup(cfg.LogPath)
	if err != nil {
		log.Printf("Warning: could not set up file logging: %v", err)
	} else {
		defer logFile.Close()
	}

	log.Println("Starting pitchprice dashboard service...")

	venueData, err := os.ReadFile(cfg.VenueConfigPath)
	if err != nil {
		log.Fatalf("Failed to read venue config %s: %v", cfg.VenueConfigPath, err)
	}

	event, cities, err := venue.Resolve(venueData, cfg.EventID)
	if err != nil {
		// The dashboard cannot render without a city roster
		log.Fatalf("Failed to resolve venue config: %v", err)
	}

	hotels := venue.FlattenHotels(cities)
	log.Printf("Event %s (%s): %d cities, %d hotels", event.Name, event.ID, len(cities), len(hotels))

	eventCfg := cfg.ActiveEvent()
	dashboard := services.NewDashboard(event, cities, eventCfg.ControlCity, cfg.StaleAfter)
	log.Printf("Control city: %s", dashboard.ControlCity())

	ops, err := storage.NewOperationalStore(cfg.DBPath)
	if err != nil {
		log.Fatalf("Failed to open operational store: %v", err)
	}
	defer ops.Close()
	dashboard.SetExclusionStore(ops)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	load, sourceName := buildLoader(ctx, cfg)
	refresh := workers.NewRefreshWorker(dashboard, load, sourceName, ops)
	log.Printf("Observation source: %s", sourceName)

	// Initial load; an empty store is a degraded state, not a failure
	refresh.RefreshNow(ctx)

	if *validate {
		health := dashboard.Health()
		log.Printf("Validation: %d batches, %d observations (%d rate-bearing)",
			health.Batches, health.Observations, health.RateBearing)
		return
	}

	sched := scheduler.New(cfg, refresh)
	if err := sched.Start(); err != nil {
		log.Fatalf("Failed to start scheduler: %v", err)
	}

	go refresh.Run(ctx, 0)

	srv := server.New(dashboard, cfg.DevMode)
	srv.SetRefresher(refresh)
	srv.SetLoadHistory(ops)

	go func() {
		log.Printf("Listening on %s", cfg.ListenAddr)
		if err := srv.Run(cfg.ListenAddr); err != nil {
			log.Fatalf("Server error: %v", err)
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Println("Shutting down...")
	sched.Stop()
	log.Println("Goodbye!")
}

// buildLoader picks the observation source from config. Postgres wins
// when a database URL is set, then S3, then a published HTTP URL, then
// the local data directory.
func buildLoader(ctx context.Context, cfg *config.Config) (workers.LoadFunc, string) {
	if cfg.DatabaseURL != "" {
		pg, err := storage.NewPostgresSource(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("Failed to connect to Postgres: %v", err)
		}
		load := func(ctx context.Context) (*dataset.Store, error) {
			batches, declared, err := pg.LoadBatches(ctx)
			if err != nil {
				return nil, err
			}
			return dataset.Build(batches, declared, identity.BatchesFingerprint(batches), time.Now()), nil
		}
		return load, pg.Name()
	}

	var src dataset.Source
	switch {
	case cfg.S3.Bucket != "":
		s3src, err := storage.NewS3Source(ctx, cfg.S3)
		if err != nil {
			log.Fatalf("Failed to set up S3 source: %v", err)
		}
		src = s3src
	case cfg.DataURL != "":
		clients := httputil.NewClients(cfg.FetchTimeout)
		src = storage.NewHTTPSource(cfg.DataURL, clients.Data)
	default:
		src = storage.NewFileSource(cfg.DataDir)
	}

	load := func(ctx context.Context) (*dataset.Store, error) {
		return dataset.Load(ctx, src, time.Now()), nil
	}
	return load, src.Name()
}
