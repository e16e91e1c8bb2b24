package config

// Config is the run configuration loaded from .connections.yml.
type Config struct {
	Inputs    InputsConfig `yaml:"inputs"`
	Rules     RulesConfig  `yaml:"rules"`
	Retry     RetryConfig  `yaml:"retry"`
	Workers   int          `yaml:"workers"`
	OutputDir string       `yaml:"output_dir"`
	LogDir    string       `yaml:"log_dir"`
	Database  string       `yaml:"database"`
}

// InputsConfig locates the puzzle, prompt, and model mapping files.
type InputsConfig struct {
	PuzzlesFile string `yaml:"puzzles_file"`
	PromptFile  string `yaml:"prompt_file"`
	ModelsFile  string `yaml:"models_file"`
}

// RulesConfig carries the game caps; zero values take the defaults.
type RulesConfig struct {
	MaxMistakes int `yaml:"max_mistakes"`
	MaxInvalid  int `yaml:"max_invalid"`
	MaxGuesses  int `yaml:"max_guesses"`
}

// RetryConfig tunes the responder retry policy.
type RetryConfig struct {
	MaxAttempts int `yaml:"max_attempts"`
	BaseDelayMS int `yaml:"base_delay_ms"`
}
