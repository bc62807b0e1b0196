// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/pdiddy/trialscout/internal/ctgov"
	"github.com/pdiddy/trialscout/internal/history"
	"github.com/pdiddy/trialscout/internal/httputil"
	"github.com/pdiddy/trialscout/internal/literature"
	"github.com/pdiddy/trialscout/internal/names"
	"github.com/pdiddy/trialscout/internal/secrets"
	"github.com/pdiddy/trialscout/internal/trials"
	"github.com/pdiddy/trialscout/pkg/types"
)

// setDefaults registers every config key so that environment variables
// reach viper.Unmarshal even when no config file sets the key.
func setDefaults(v *viper.Viper) {
	v.SetDefault("http.timeout", 20*time.Second)
	v.SetDefault("http.user_agent", "")
	v.SetDefault("http.max_retries", 3)

	v.SetDefault("sources.requests_per_second", 5.0)
	v.SetDefault("sources.pubchem_max_cids", 3)
	v.SetDefault("sources.pubchem_max_synonyms", 25)
	v.SetDefault("sources.chembl_max_molecules", 5)
	v.SetDefault("sources.clinicaltrials_page_size", 50)
	v.SetDefault("sources.openfda_api_key", "")

	v.SetDefault("trials.batch_size", 5)
	v.SetDefault("trials.max_names", 50)
	v.SetDefault("trials.page_size", 100)

	v.SetDefault("literature.max_results", 20)
	v.SetDefault("literature.semantic_scholar_api_key", "")

	v.SetDefault("server.addr", ":3000")
	v.SetDefault("server.requests_per_second", 10.0)
	v.SetDefault("server.burst", 20)
	v.SetDefault("server.cors_origins", []string{"*"})
	v.SetDefault("server.request_timeout", 2*time.Minute)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetDefault("history.enabled", false)
	v.SetDefault("history.path", "data/history.db")
}

// loadConfig decodes the viper settings into a Config and fills API keys
// and the contact address from s where config leaves them empty.
func loadConfig(v *viper.Viper, s secrets.Secrets) (types.Config, error) {
	var cfg types.Config
	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("decoding config: %w", err)
	}

	cfg.Sources.OpenFDAAPIKey = s.Get(secrets.OpenFDAAPIKey, cfg.Sources.OpenFDAAPIKey)
	cfg.Literature.SemanticScholarAPIKey = s.Get(secrets.SemanticScholarAPIKey, cfg.Literature.SemanticScholarAPIKey)
	if cfg.HTTP.UserAgent == "" {
		cfg.HTTP.UserAgent = userAgent(s[secrets.ContactEmail])
	}
	return cfg, nil
}

// userAgent identifies trialscout to upstream registries. Several of them
// ask for a contact address from automated clients.
func userAgent(contact string) string {
	ua := "trialscout/" + version
	if contact != "" {
		ua += " (mailto:" + contact + ")"
	}
	return ua
}

// slogLevel maps a config level name to a slog.Level. Unknown names mean
// info.
func slogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// setupLogger writes to stderr so command output on stdout stays clean.
func setupLogger(level, format string) *slog.Logger {
	return newLogger(os.Stderr, level, format)
}

func newLogger(w io.Writer, level, format string) *slog.Logger {
	opts := &slog.HandlerOptions{Level: slogLevel(level)}
	if strings.EqualFold(format, "json") {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// services holds the components every command is built from.
type services struct {
	cfg        types.Config
	resolver   *names.Resolver
	pipeline   *trials.Pipeline
	literature *literature.SemanticScholar
}

func newServices(cfg types.Config, logger *slog.Logger) *services {
	registry := &trials.ClinicalTrialsRegistry{
		Client:   ctgovClient(cfg),
		PageSize: cfg.Trials.PageSize,
	}
	return &services{
		cfg:        cfg,
		resolver:   names.NewResolver(names.NewSources(cfg.HTTP, cfg.Sources), logger),
		pipeline:   trials.NewPipeline(registry, cfg.Trials, logger),
		literature: literature.New(cfg.HTTP, cfg.Literature, cfg.Sources.RequestsPerSecond),
	}
}

// ctgovClient gives the trial registry its own paced client, separate from
// the trials-registry name source.
func ctgovClient(cfg types.Config) *ctgov.Client {
	return &ctgov.Client{HTTP: httputil.NewClient(cfg.HTTP, cfg.Sources.RequestsPerSecond)}
}

// loadServices reads the global config and builds the services.
func loadServices() (*services, error) {
	cfg, err := loadConfig(viper.GetViper(), loadedSecrets)
	if err != nil {
		return nil, err
	}
	return newServices(cfg, slog.Default()), nil
}

// openHistory opens the history store, or returns nil when history is
// disabled.
func openHistory(cfg types.HistoryConfig) (*history.Store, error) {
	if !cfg.Enabled {
		return nil, nil
	}
	return history.NewStore(cfg)
}
