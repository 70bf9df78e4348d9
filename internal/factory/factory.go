package factory

import (
	"context"
	"io"
	"log/slog"
	"sort"

	"github.com/cockroachdb/errors"

	"github.com/mcoot/wordtiles/internal/dependencies/clock"
	"github.com/mcoot/wordtiles/internal/dependencies/random"
	"github.com/mcoot/wordtiles/internal/services/dictionary"
	"github.com/mcoot/wordtiles/internal/services/game"
	"github.com/mcoot/wordtiles/internal/services/rules"
	"github.com/mcoot/wordtiles/internal/services/scoring"
	"github.com/mcoot/wordtiles/internal/services/stats"
	"github.com/mcoot/wordtiles/internal/services/tilebag"
	"github.com/mcoot/wordtiles/internal/services/timeout"
	"github.com/mcoot/wordtiles/internal/sse"
	"github.com/mcoot/wordtiles/internal/storage"
	"github.com/mcoot/wordtiles/internal/storage/memory"
	redisstorage "github.com/mcoot/wordtiles/internal/storage/redis"
)

// Storage type constants
const (
	StorageTypeMemory = "memory"
	StorageTypeRedis  = "redis"
)

// App contains all wired application components
type App struct {
	// Storage
	Storage storage.Storage

	// External dependencies
	Clock  clock.Clock
	Random random.Random

	// Services
	DictionaryService *dictionary.Service
	RulesEngine       *rules.Engine
	ScoringEngine     *scoring.Engine
	TileService       *tilebag.Service
	StatsService      *stats.Service
	GameController    *game.Controller
	Sweeper           *timeout.Sweeper

	// Notifications
	HubManager  *sse.HubManager
	Broadcaster *sse.Broadcaster

	config Config
	logger *slog.Logger
}

// New creates a new application with all dependencies wired
func New(cfg Config) (*App, error) {
	// Use no-op logger if not provided
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	// Create storage based on type
	var store storage.Storage
	storageType := cfg.StorageType
	if storageType == "" {
		storageType = StorageTypeMemory
	}

	switch storageType {
	case StorageTypeMemory:
		store = memory.New()
	case StorageTypeRedis:
		if cfg.RedisConfig == nil {
			return nil, errors.New("RedisConfig required when StorageType is redis")
		}
		redisStore, err := redisstorage.New(*cfg.RedisConfig)
		if err != nil {
			return nil, err
		}
		store = redisStore
	default:
		return nil, errors.Newf("invalid StorageType %q: must be 'memory' or 'redis'", storageType)
	}

	return newWithDependencies(store, clock.New(), random.New(), cfg, logger), nil
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(store storage.Storage, clk clock.Clock, rnd random.Random, cfg Config, logger *slog.Logger) *App {
	dictService := dictionary.New(store, logger)
	rulesEngine := rules.NewEngine(dictService)
	scoringEngine := scoring.NewEngine()
	tileService := tilebag.New(rnd)
	statsService := stats.New(store, clk, logger)
	hubManager := sse.NewHubManager(logger)
	broadcaster := sse.NewBroadcaster(hubManager, logger)

	gameController := game.NewController(
		store,
		rulesEngine,
		scoringEngine,
		tileService,
		clk,
		game.Hooks{
			Notifier:     broadcaster,
			Achievements: statsService,
			Stats:        statsService,
		},
		game.Config{TurnTimeout: cfg.TurnTimeout},
		logger,
	)
	sweeper := timeout.New(store, gameController, clk, cfg.Sweep, logger)

	return &App{
		Storage:           store,
		Clock:             clk,
		Random:            rnd,
		DictionaryService: dictService,
		RulesEngine:       rulesEngine,
		ScoringEngine:     scoringEngine,
		TileService:       tileService,
		StatsService:      statsService,
		GameController:    gameController,
		Sweeper:           sweeper,
		HubManager:        hubManager,
		Broadcaster:       broadcaster,
		config:            cfg,
		logger:            logger.With(slog.String("component", "factory")),
	}
}

// LoadDictionaries loads every configured word list. A language whose file
// cannot be read falls back to the copy another instance saved to storage.
func (a *App) LoadDictionaries(ctx context.Context) error {
	languages := make([]string, 0, len(a.config.DictionaryPaths))
	for language := range a.config.DictionaryPaths {
		languages = append(languages, language)
	}
	sort.Strings(languages)

	for _, language := range languages {
		path := a.config.DictionaryPaths[language]
		fileErr := a.DictionaryService.LoadFromFile(ctx, language, path)
		if fileErr == nil {
			continue
		}
		a.logger.Warn("could not load dictionary file, trying storage",
			slog.String("language", language),
			slog.String("path", path),
			slog.String("error", fileErr.Error()),
		)
		if err := a.DictionaryService.LoadFromStorage(ctx, language); err != nil {
			return errors.CombineErrors(fileErr, err)
		}
	}
	return nil
}

// Close releases resources held by the app
func (a *App) Close() error {
	a.HubManager.Close()
	if closer, ok := a.Storage.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}
