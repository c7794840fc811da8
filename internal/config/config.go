// Package config loads application configuration from defaults, an
// optional YAML file, RANI_* environment variables and command-line flags.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"

	"github.com/ranilearn/rani/internal/llm"
	"github.com/ranilearn/rani/internal/profile"
	"github.com/ranilearn/rani/internal/rewards"
	"github.com/ranilearn/rani/internal/store"
)

// EnvPrefix prefixes every environment override, e.g. RANI_LOG_LEVEL.
const EnvPrefix = "RANI"

// Config holds all configuration for the application.
type Config struct {
	DB         DBConfig         `mapstructure:"db"`
	Log        LogConfig        `mapstructure:"log"`
	Rewards    rewards.Policy   `mapstructure:"rewards"`
	Login      LoginConfig      `mapstructure:"login"`
	Simulation SimulationConfig `mapstructure:"simulation"`
	LLM        llm.Config       `mapstructure:"llm"`
	Update     UpdateConfig     `mapstructure:"update"`
}

// DBConfig locates the SQLite database.
type DBConfig struct {
	// Path overrides the default data directory location.
	Path string `mapstructure:"path"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	// File receives logs while the TUI owns the terminal.
	File string `mapstructure:"file"`
}

// LoginConfig holds the login rules.
type LoginConfig struct {
	Delay      time.Duration `mapstructure:"delay"`
	AdminPhone string        `mapstructure:"admin_phone"`
	MinDigits  int           `mapstructure:"min_digits"`
}

type SimulationConfig struct {
	DemoPIN string `mapstructure:"demo_pin"`
}

// UpdateConfig names the GitHub repository releases are fetched from.
type UpdateConfig struct {
	Owner string `mapstructure:"owner"`
	Repo  string `mapstructure:"repo"`
}

// SetDefaults registers the default value of every key on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("db.path", "")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("log.file", "")

	p := rewards.DefaultPolicy()
	v.SetDefault("rewards.signup_bonus", p.SignupBonus)
	v.SetDefault("rewards.practice_xp", p.PracticeXP)
	v.SetDefault("rewards.question_xp", p.QuestionXP)
	v.SetDefault("rewards.completion_bonus", p.CompletionBonus)
	v.SetDefault("rewards.starting_streak", p.StartingStreak)

	v.SetDefault("login.delay", "800ms")
	v.SetDefault("login.admin_phone", "9999999999")
	v.SetDefault("login.min_digits", 10)

	v.SetDefault("simulation.demo_pin", "1234")

	l := llm.DefaultConfig()
	v.SetDefault("llm.provider", l.Provider)
	v.SetDefault("llm.timeout", l.Timeout.String())
	v.SetDefault("llm.anthropic.api_key", "")
	v.SetDefault("llm.anthropic.model", l.Anthropic.Model)
	v.SetDefault("llm.openai.api_key", "")
	v.SetDefault("llm.openai.model", l.OpenAI.Model)
	v.SetDefault("llm.openai.base_url", "")
	v.SetDefault("llm.gemini.api_key", "")
	v.SetDefault("llm.gemini.model", l.Gemini.Model)
	v.SetDefault("llm.openrouter.api_key", "")
	v.SetDefault("llm.openrouter.model", l.OpenRouter.Model)
	v.SetDefault("llm.openrouter.base_url", l.OpenRouter.BaseURL)
	v.SetDefault("llm.retry.max_attempts", l.Retry.MaxAttempts)
	v.SetDefault("llm.retry.initial_wait", l.Retry.InitialWait.String())
	v.SetDefault("llm.retry.max_wait", l.Retry.MaxWait.String())
	v.SetDefault("llm.retry.multiplier", l.Retry.Multiplier)

	v.SetDefault("update.owner", "ranilearn")
	v.SetDefault("update.repo", "rani")
}

// Load reads configuration into a Config. When file is empty the default
// config file is used if it exists; an explicit file must exist.
func Load(v *viper.Viper, file string) (*Config, error) {
	SetDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		if dir, err := defaultConfigDir(); err == nil {
			v.AddConfigPath(dir)
		}
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// defaultConfigDir returns $XDG_CONFIG_HOME/rani or ~/.config/rani.
func defaultConfigDir() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "rani"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "rani"), nil
}

// Validate reports every invalid setting.
func (c *Config) Validate() error {
	var errs []error
	if _, err := logrus.ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, fmt.Errorf("log.level: %w", err))
	}
	if c.Log.Format != "text" && c.Log.Format != "json" {
		errs = append(errs, fmt.Errorf("log.format must be text or json, got %q", c.Log.Format))
	}
	if err := c.Rewards.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("rewards: %w", err))
	}
	if c.Login.MinDigits < 1 {
		errs = append(errs, fmt.Errorf("login.min_digits must be at least 1, got %d", c.Login.MinDigits))
	}
	if c.Login.Delay < 0 {
		errs = append(errs, errors.New("login.delay must not be negative"))
	}
	if !validPIN(c.Simulation.DemoPIN) {
		errs = append(errs, fmt.Errorf("simulation.demo_pin must be 4 digits, got %q", c.Simulation.DemoPIN))
	}
	return errors.Join(errs...)
}

func validPIN(pin string) bool {
	if len(pin) != 4 {
		return false
	}
	for _, r := range pin {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// DBPath returns the configured database path or the default one.
func (c *Config) DBPath() (string, error) {
	if c.DB.Path != "" {
		return c.DB.Path, nil
	}
	return store.DefaultDBPath()
}

// LogFile returns the configured log file, defaulting to rani.log next to
// the database.
func (c *Config) LogFile() (string, error) {
	if c.Log.File != "" {
		return c.Log.File, nil
	}
	db, err := c.DBPath()
	if err != nil {
		return "", err
	}
	return filepath.Join(filepath.Dir(db), "rani.log"), nil
}

// LoginPolicy combines the login rules with the reward policy's signup
// settings.
func (c *Config) LoginPolicy() profile.LoginPolicy {
	return profile.LoginPolicy{
		Delay:          c.Login.Delay,
		AdminPhone:     c.Login.AdminPhone,
		MinDigits:      c.Login.MinDigits,
		SignupBonus:    c.Rewards.SignupBonus,
		StartingStreak: c.Rewards.StartingStreak,
	}
}
