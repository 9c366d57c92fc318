package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/merchantlab/consult-go/application"
	"github.com/merchantlab/consult-go/domain/cache"
	"github.com/merchantlab/consult-go/domain/knowledge"
	"github.com/merchantlab/consult-go/domain/profile"
	"github.com/merchantlab/consult-go/infrastructure/analysis"
	"github.com/merchantlab/consult-go/infrastructure/classifier"
	"github.com/merchantlab/consult-go/infrastructure/config"
	"github.com/merchantlab/consult-go/infrastructure/llm"
	"github.com/merchantlab/consult-go/infrastructure/logging"
	"github.com/merchantlab/consult-go/infrastructure/planner"
	"github.com/merchantlab/consult-go/infrastructure/resolver"
	"github.com/merchantlab/consult-go/infrastructure/search"
	"github.com/merchantlab/consult-go/infrastructure/storage/memory"
	redisstore "github.com/merchantlab/consult-go/infrastructure/storage/redis"
	"github.com/merchantlab/consult-go/infrastructure/storage/sqlite"
	"github.com/merchantlab/consult-go/infrastructure/synthesizer"
	"github.com/merchantlab/consult-go/pack/consulting"
)

// runtime bundles the engine with everything a command needs.
type runtime struct {
	engine   *application.Engine
	sessions *application.SessionManager
	config   *config.Config
	profiles profile.Store
	cleanup  func()
}

// buildRuntime wires the engine from a config file. An empty path
// uses the defaults.
func buildRuntime(configPath string) (*runtime, error) {
	cfg := config.Default()
	if configPath != "" {
		loaded, err := config.NewLoader().LoadFile(configPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
	})

	provider, err := newProvider(cfg.LLM)
	if err != nil {
		return nil, err
	}

	var cleanups []func()
	cleanup := func() {
		for i := len(cleanups) - 1; i >= 0; i-- {
			cleanups[i]()
		}
	}

	profiles, profileCleanup, err := newProfileStore(cfg)
	if err != nil {
		return nil, err
	}
	if profileCleanup != nil {
		cleanups = append(cleanups, profileCleanup)
	}

	searcher, err := newSearcher(cfg)
	if err != nil {
		cleanup()
		return nil, err
	}

	dataset := analysis.NewDataset()
	if cfg.Data.SalesDir != "" {
		if err := dataset.LoadDir(cfg.Data.SalesDir); err != nil {
			cleanup()
			return nil, err
		}
	}
	analyzer := analysis.NewLLMAnalyzer(provider, dataset, cfg.LLM.Model)

	registry := memory.NewRegistry()
	err = consulting.Register(context.Background(), registry, consulting.Deps{
		Profiles:     profiles,
		Searcher:     searcher,
		Analyzer:     analyzer,
		Provider:     provider,
		Model:        cfg.LLM.Model,
		MaxCardTurns: cfg.Engine.MaxCardTurns,
	})
	if err != nil {
		cleanup()
		return nil, err
	}

	var nameResolver *resolver.Resolver
	if cfg.Data.ProfilesCSV != "" {
		f, err := os.Open(cfg.Data.ProfilesCSV)
		if err != nil {
			cleanup()
			return nil, fmt.Errorf("open roster: %w", err)
		}
		nameResolver, err = resolver.NewFromCSV(f)
		_ = f.Close()
		if err != nil {
			cleanup()
			return nil, err
		}
	}

	engine, err := application.NewEngine(application.EngineConfig{
		Classifier:    classifier.NewLLMClassifier(provider, cfg.LLM.Model),
		Registry:      registry,
		Planner:       planner.New(provider, registry, cfg.LLM.Model, cfg.Engine.MaxPlanSteps),
		Synthesizer:   synthesizer.New(provider, cfg.LLM.Model).WithSearcher(searcher),
		Responder:     synthesizer.NewResponder(),
		Profiles:      profiles,
		Resolver:      nameResolver,
		MaxPlanSteps:  cfg.Engine.MaxPlanSteps,
		HistoryWindow: cfg.Engine.HistoryWindow,
	})
	if err != nil {
		cleanup()
		return nil, err
	}

	return &runtime{
		engine:   engine,
		sessions: application.NewSessionManager(),
		config:   cfg,
		profiles: profiles,
		cleanup:  cleanup,
	}, nil
}

func newProvider(cfg config.LLMConfig) (llm.Provider, error) {
	switch cfg.Provider {
	case "gemini":
		return llm.NewGeminiProvider(llm.GeminiConfig{
			APIKey:  cfg.APIKey,
			BaseURL: cfg.BaseURL,
			Model:   cfg.Model,
			Timeout: cfg.Timeout,
		}), nil
	case "openai":
		return llm.NewOpenAIProvider(llm.OpenAIConfig{
			APIKey:  cfg.APIKey,
			BaseURL: cfg.BaseURL,
			Model:   cfg.Model,
			Timeout: cfg.Timeout,
		}), nil
	case "ollama":
		return llm.NewOllamaProvider(llm.OllamaConfig{
			BaseURL: cfg.BaseURL,
			Model:   cfg.Model,
			Timeout: cfg.Timeout,
		}), nil
	case "mock":
		return llm.NewMockProvider("mock response"), nil
	default:
		return nil, fmt.Errorf("%w: unknown llm provider %q", config.ErrInvalidConfig, cfg.Provider)
	}
}

func newProfileStore(cfg *config.Config) (profile.Store, func(), error) {
	switch cfg.Storage.ProfileDriver {
	case "sqlite":
		store, err := sqlite.NewProfileStore(sqlite.Config{
			DSN:         "file:" + cfg.Storage.SQLitePath + "?cache=shared&mode=rwc",
			AutoMigrate: true,
		})
		if err != nil {
			return nil, nil, err
		}
		return store, func() { _ = store.Close() }, nil
	default:
		store := memory.NewProfileStore()
		if cfg.Data.ProfilesJSON != "" {
			if err := seedProfiles(store, cfg.Data.ProfilesJSON); err != nil {
				return nil, nil, err
			}
		}
		return store, nil, nil
	}
}

func seedProfiles(store *memory.ProfileStore, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read profiles: %w", err)
	}
	var profiles []*profile.Profile
	if err := json.Unmarshal(data, &profiles); err != nil {
		return fmt.Errorf("parse profiles: %w", err)
	}
	for _, p := range profiles {
		if err := store.Seed(p); err != nil {
			return err
		}
	}
	return nil
}

func newSearcher(cfg *config.Config) (knowledge.Searcher, error) {
	inner := search.NewMemorySearcher()
	if cfg.Data.KnowledgeDir != "" {
		if err := search.LoadDir(inner, cfg.Data.KnowledgeDir); err != nil {
			return nil, err
		}
	}

	var results cache.Cache
	switch cfg.Storage.CacheDriver {
	case "redis":
		c, err := redisstore.NewCache(redisstore.Config{
			Address:  cfg.Storage.RedisAddr,
			Password: cfg.Storage.RedisPassword,
		})
		if err != nil {
			return nil, err
		}
		results = c
	default:
		results = memory.NewCache()
	}

	ttl := time.Duration(cfg.Storage.CacheTTLSeconds) * time.Second
	return search.NewCachedSearcher(inner, results, ttl), nil
}
