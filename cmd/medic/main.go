// Command medic receives structured SMS reports and manages the contact hierarchy.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/mukesh2006/medic/internal/adapters/driven/config/file"
	"github.com/mukesh2006/medic/internal/adapters/driven/locale"
	"github.com/mukesh2006/medic/internal/adapters/driven/metrics"
	"github.com/mukesh2006/medic/internal/adapters/driven/storage/memory"
	"github.com/mukesh2006/medic/internal/adapters/driven/storage/mongodb"
	"github.com/mukesh2006/medic/internal/adapters/driven/storage/sqlite"
	"github.com/mukesh2006/medic/internal/adapters/driving/cli"
	"github.com/mukesh2006/medic/internal/core/domain"
	"github.com/mukesh2006/medic/internal/core/ports/driven"
	"github.com/mukesh2006/medic/internal/core/services"
	"github.com/mukesh2006/medic/internal/logger"
	"github.com/mukesh2006/medic/internal/textforms"
)

// version is set at build time via -ldflags.
var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := run(ctx)
	stop()
	logger.Sync()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	// A missing .env is fine; the variables may come from the environment.
	_ = godotenv.Load()

	configStore, err := file.NewConfigStore("")
	if err != nil {
		return fmt.Errorf("opening config: %w", err)
	}
	settingsService := services.NewSettingsService(configStore)
	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("loading settings: %w", err)
	}
	logger.SetVerbose(settings.Verbose)

	store, err := openStore(ctx, settings.Store)
	if err != nil {
		return err
	}
	defer store.Close()

	catalog, err := file.LoadFormCatalog(settings.SMS.FormsPath)
	if err != nil {
		return fmt.Errorf("loading forms: %w", err)
	}
	localizer, err := locale.New()
	if err != nil {
		return fmt.Errorf("loading translations: %w", err)
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	recorder := metrics.New(reg)

	parser := textforms.NewParser(catalog, localizer, settings.SMS.Locale)
	resolver := services.NewFacilityResolver(store, catalog, localizer, settings.SMS.TaskLocale)

	cli.SetVersion(version)
	cli.SetServices(cli.Services{
		Intake: services.NewIntakeService(parser, resolver, store, recorder, settings.Store.Timeout),
		Contacts: services.NewContactService(store,
			services.WithStoreTimeout(settings.Store.Timeout),
			services.WithContactMetrics(recorder),
		),
		Settings: settingsService,
		Forms:    catalog,
		Gatherer: reg,
	})

	return cli.Execute(ctx)
}

func openStore(ctx context.Context, cfg domain.StoreSettings) (driven.DocumentStore, error) {
	logger.Debug("opening %s store", cfg.Driver)

	switch cfg.Driver {
	case domain.StoreDriverSQLite:
		s, err := sqlite.NewStore(cfg.Path)
		if err != nil {
			return nil, fmt.Errorf("opening sqlite store: %w", err)
		}
		return s, nil
	case domain.StoreDriverMongo:
		connectCtx, cancel := context.WithTimeout(ctx, cfg.Timeout)
		defer cancel()
		s, err := mongodb.NewStore(connectCtx, cfg.MongoURI, cfg.MongoDatabase)
		if err != nil {
			return nil, fmt.Errorf("opening mongo store: %w", err)
		}
		return s, nil
	case domain.StoreDriverMemory:
		logger.Warn("using the memory store, documents are lost on exit")
		return memory.NewDocumentStore(), nil
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.Driver)
	}
}
