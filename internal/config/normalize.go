package config

// Defaults applied by Normalize when fields are left unset.
const (
	DefaultWorkers       = 4
	DefaultOutputDir     = "out"
	DefaultLogDir        = "logs"
	DefaultMaxMistakes   = 4
	DefaultMaxInvalid    = 3
	DefaultRetryAttempts = 3
	DefaultBaseDelayMS   = 2000
)

// Normalize fills in defaults for unset fields.
func Normalize(cfg *Config) {
	if cfg.Workers == 0 {
		cfg.Workers = DefaultWorkers
	}
	if cfg.OutputDir == "" {
		cfg.OutputDir = DefaultOutputDir
	}
	if cfg.LogDir == "" {
		cfg.LogDir = DefaultLogDir
	}
	if cfg.Rules.MaxMistakes == 0 {
		cfg.Rules.MaxMistakes = DefaultMaxMistakes
	}
	if cfg.Rules.MaxInvalid == 0 {
		cfg.Rules.MaxInvalid = DefaultMaxInvalid
	}
	if cfg.Retry.MaxAttempts == 0 {
		cfg.Retry.MaxAttempts = DefaultRetryAttempts
	}
	if cfg.Retry.BaseDelayMS == 0 {
		cfg.Retry.BaseDelayMS = DefaultBaseDelayMS
	}
}
