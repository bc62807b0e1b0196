package types

import "time"

// HTTPConfig holds shared HTTP settings used by every outbound client.
type HTTPConfig struct {
	// Timeout bounds each outbound request (default 20s).
	Timeout time.Duration `json:"timeout" yaml:"timeout" mapstructure:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "trialscout/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent" mapstructure:"user_agent"`

	// MaxRetries is the number of retries on HTTP 429 (default 3). Zero
	// disables retries.
	MaxRetries int `json:"max_retries" yaml:"max_retries" mapstructure:"max_retries"`
}

// SourcesConfig holds settings for the name source adapters.
type SourcesConfig struct {
	// RequestsPerSecond paces calls to each upstream registry (default 5).
	// Zero or negative disables pacing.
	RequestsPerSecond float64 `json:"requests_per_second" yaml:"requests_per_second" mapstructure:"requests_per_second"`

	// PubChemMaxCIDs caps how many compounds are expanded into synonyms (default 3).
	PubChemMaxCIDs int `json:"pubchem_max_cids" yaml:"pubchem_max_cids" mapstructure:"pubchem_max_cids"`

	// PubChemMaxSynonyms caps the synonyms kept per compound (default 25).
	PubChemMaxSynonyms int `json:"pubchem_max_synonyms" yaml:"pubchem_max_synonyms" mapstructure:"pubchem_max_synonyms"`

	// ChEMBLMaxMolecules caps the molecules read from a ChEMBL lookup (default 5).
	ChEMBLMaxMolecules int `json:"chembl_max_molecules" yaml:"chembl_max_molecules" mapstructure:"chembl_max_molecules"`

	// ClinicalTrialsPageSize is the number of studies scanned for intervention
	// names (default 50).
	ClinicalTrialsPageSize int `json:"clinicaltrials_page_size" yaml:"clinicaltrials_page_size" mapstructure:"clinicaltrials_page_size"`

	// OpenFDAAPIKey is an optional key for higher openFDA rate limits.
	OpenFDAAPIKey string `json:"openfda_api_key,omitempty" yaml:"openfda_api_key,omitempty" mapstructure:"openfda_api_key"`
}

// TrialsConfig holds settings for the trial aggregation pipeline.
type TrialsConfig struct {
	// BatchSize is the number of registry searches run concurrently (default 5).
	BatchSize int `json:"batch_size" yaml:"batch_size" mapstructure:"batch_size"`

	// MaxNames caps the names searched per run (default 50).
	MaxNames int `json:"max_names" yaml:"max_names" mapstructure:"max_names"`

	// PageSize is the number of studies requested per name (default 100).
	PageSize int `json:"page_size" yaml:"page_size" mapstructure:"page_size"`
}

// LiteratureConfig holds settings for the Semantic Scholar lookup.
type LiteratureConfig struct {
	// MaxResults is the default number of papers returned (default 20).
	MaxResults int `json:"max_results" yaml:"max_results" mapstructure:"max_results"`

	// SemanticScholarAPIKey is an optional API key for higher rate limits.
	SemanticScholarAPIKey string `json:"semantic_scholar_api_key,omitempty" yaml:"semantic_scholar_api_key,omitempty" mapstructure:"semantic_scholar_api_key"`
}

// ServerConfig holds settings for the HTTP API.
type ServerConfig struct {
	// Addr is the listen address (default ":3000").
	Addr string `json:"addr" yaml:"addr" mapstructure:"addr"`

	// RequestsPerSecond is the sustained per-client request rate (default 10).
	RequestsPerSecond float64 `json:"requests_per_second" yaml:"requests_per_second" mapstructure:"requests_per_second"`

	// Burst is the per-client burst size (default 20).
	Burst int `json:"burst" yaml:"burst" mapstructure:"burst"`

	// CORSOrigins lists the allowed browser origins (default "*").
	CORSOrigins []string `json:"cors_origins" yaml:"cors_origins" mapstructure:"cors_origins"`

	// RequestTimeout bounds a whole API request, including every upstream call.
	RequestTimeout time.Duration `json:"request_timeout" yaml:"request_timeout" mapstructure:"request_timeout"`
}

// LogConfig selects the slog handler.
type LogConfig struct {
	// Level is one of debug, info, warn, error (default info).
	Level string `json:"level" yaml:"level" mapstructure:"level"`

	// Format is text or json (default text).
	Format string `json:"format" yaml:"format" mapstructure:"format"`
}

// HistoryConfig holds settings for the run history store.
type HistoryConfig struct {
	// Enabled turns on recording of aggregation runs.
	Enabled bool `json:"enabled" yaml:"enabled" mapstructure:"enabled"`

	// Path is the SQLite database file (default "data/history.db").
	Path string `json:"path" yaml:"path" mapstructure:"path"`
}

// Config groups every section of the trialscout configuration.
type Config struct {
	HTTP       HTTPConfig       `json:"http" yaml:"http" mapstructure:"http"`
	Sources    SourcesConfig    `json:"sources" yaml:"sources" mapstructure:"sources"`
	Trials     TrialsConfig     `json:"trials" yaml:"trials" mapstructure:"trials"`
	Literature LiteratureConfig `json:"literature" yaml:"literature" mapstructure:"literature"`
	Server     ServerConfig     `json:"server" yaml:"server" mapstructure:"server"`
	Log        LogConfig        `json:"log" yaml:"log" mapstructure:"log"`
	History    HistoryConfig    `json:"history" yaml:"history" mapstructure:"history"`
}
