package app

import (
	"context"
	"fmt"

	"github.com/riskibarqy/matchday-etl/external/espn"
	"github.com/riskibarqy/matchday-etl/external/jobqueue"
	"github.com/riskibarqy/matchday-etl/internal/config"
	"github.com/riskibarqy/matchday-etl/internal/domain/rawdata"
	"github.com/riskibarqy/matchday-etl/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/matchday-etl/internal/infrastructure/repository/postgres"
	"github.com/riskibarqy/matchday-etl/internal/infrastructure/snapshot"
	"github.com/riskibarqy/matchday-etl/internal/platform/logging"
	"github.com/riskibarqy/matchday-etl/internal/usecase"
)

// App holds the wired services for one process. Close releases the database and
// hand-off connections.
type App struct {
	Pipeline *usecase.PipelineService
	Fetch    *usecase.FetchService
	Extract  *usecase.ExtractionService
	Load     *usecase.LoadService

	logger  *logging.Logger
	closers []func() error
}

func New(ctx context.Context, cfg config.Config, logger *logging.Logger) (*App, error) {
	if logger == nil {
		logger = logging.Default()
	}
	a := &App{logger: logger}

	repos, archive, err := a.buildRepositories(ctx, cfg)
	if err != nil {
		_ = a.Close()
		return nil, err
	}
	if !cfg.SnapshotArchiveEnabled {
		archive = nil
	}

	handoff, err := a.buildHandoff(ctx, cfg)
	if err != nil {
		_ = a.Close()
		return nil, err
	}

	feed := espn.NewClient(espn.ClientConfig{
		BaseURL:        cfg.ESPNBaseURL,
		Timeout:        cfg.ESPNTimeout,
		MaxRetries:     cfg.ESPNMaxRetries,
		Logger:         logger,
		CircuitBreaker: cfg.ESPNCircuit,
	})
	parser := espn.NewParser(espn.DefaultLocators()...)
	store := snapshot.NewFileStore(cfg.RawDataDir)

	a.Fetch = usecase.NewFetchService(feed, parser, store, archive, cfg.FetchConcurrency, logger)
	a.Extract = usecase.NewExtractionService(store, parser, logger)
	a.Load = usecase.NewLoadService(repos, logger)
	a.Pipeline = usecase.NewPipelineService(a.Fetch, a.Extract, a.Load, handoff, cfg.LoadWorkers, logger)

	logger.Info("app wired",
		"store_driver", cfg.StoreDriver,
		"raw_data_dir", store.Dir(),
		"espn_base_url", cfg.ESPNBaseURL,
		"fetch_concurrency", cfg.FetchConcurrency,
		"load_workers", cfg.LoadWorkers,
		"snapshot_archive", archive != nil,
	)
	return a, nil
}

func (a *App) buildRepositories(ctx context.Context, cfg config.Config) (usecase.LoadRepositories, rawdata.Repository, error) {
	if cfg.StoreDriver == config.StoreDriverMemory {
		teams := memory.NewTeamRepository()
		return usecase.LoadRepositories{
			Matches:     memory.NewMatchRepository(),
			Teams:       teams,
			TeamStats:   memory.NewTeamStatsRepository(),
			Players:     memory.NewPlayerRepository(teams),
			PlayerStats: memory.NewPlayerStatsRepository(),
			Events:      memory.NewMatchEventRepository(),
		}, memory.NewRawDataRepository(), nil
	}

	db, err := openDB(ctx, cfg)
	if err != nil {
		return usecase.LoadRepositories{}, nil, err
	}
	a.closers = append(a.closers, db.Close)

	return usecase.LoadRepositories{
		Matches:     postgres.NewMatchRepository(db),
		Teams:       postgres.NewTeamRepository(db),
		TeamStats:   postgres.NewTeamStatsRepository(db),
		Players:     postgres.NewPlayerRepository(db),
		PlayerStats: postgres.NewPlayerStatsRepository(db),
		Events:      postgres.NewMatchEventRepository(db),
	}, postgres.NewRawDataRepository(db), nil
}

func (a *App) buildHandoff(ctx context.Context, cfg config.Config) (usecase.Handoff, error) {
	if cfg.RedisURL == "" {
		return usecase.NopHandoff{}, nil
	}
	publisher, err := jobqueue.NewRedisStreamPublisher(ctx, jobqueue.RedisStreamConfig{
		URL:    cfg.RedisURL,
		Stream: cfg.RedisHandoffStream,
	}, a.logger)
	if err != nil {
		return nil, fmt.Errorf("connect hand-off stream: %w", err)
	}
	a.closers = append(a.closers, publisher.Close)
	return publisher, nil
}

// Close runs closers in reverse registration order and returns the first error.
func (a *App) Close() error {
	var first error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil && first == nil {
			first = err
		}
	}
	a.closers = nil
	return first
}
