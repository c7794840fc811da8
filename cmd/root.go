package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/ranilearn/rani/internal/catalog"
	"github.com/ranilearn/rani/internal/config"
	"github.com/ranilearn/rani/internal/i18n"
	"github.com/ranilearn/rani/internal/learner"
	"github.com/ranilearn/rani/internal/logging"
	"github.com/ranilearn/rani/internal/profile"
	"github.com/ranilearn/rani/internal/rewards"
	"github.com/ranilearn/rani/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "rani",
	Short: "Digital and financial literacy lessons",
	Long: "Rani teaches smartphone basics, digital payments and English through short\n" +
		"lessons, quizzes and simulated payment apps, in English, Hindi and Bengali.",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

// ExecuteContext runs the command tree. Cancelling ctx stops the TUI.
func ExecuteContext(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.String("config", "", "Config file (default $XDG_CONFIG_HOME/rani/config.yaml)")
	flags.String("db", "", "Path to SQLite database file (overrides RANI_DB_PATH)")
	flags.String("log-level", "", "Log level (debug, info, warn, error)")
	flags.String("log-format", "", "Log format (text or json)")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(lessonsCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(adminCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(i18nCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(updateCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadConfig reads configuration with the persistent flags taking
// precedence over environment and file.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	v := viper.New()
	if err := bindFlags(v, cmd.Flags()); err != nil {
		return nil, err
	}
	file, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(v, file)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

// flagKeys maps persistent flags to configuration keys.
var flagKeys = map[string]string{
	"db":         "db.path",
	"log-level":  "log.level",
	"log-format": "log.format",
}

// bindFlags binds the flags that were set on the command line. Unset flags
// are left out so they do not shadow environment and file values.
func bindFlags(v *viper.Viper, flags *pflag.FlagSet) error {
	var err error
	flags.VisitAll(func(f *pflag.Flag) {
		key, ok := flagKeys[f.Name]
		if !ok || !f.Changed || err != nil {
			return
		}
		if bindErr := v.BindPFlag(key, f); bindErr != nil {
			err = fmt.Errorf("bind --%s: %w", f.Name, bindErr)
		}
	})
	return err
}

// env is what every subcommand works with.
type env struct {
	cfg    *config.Config
	store  *store.Store
	logger *logrus.Logger
	closer io.Closer
}

func (e *env) Close() {
	if e.store != nil {
		e.store.Close()
	}
	if e.closer != nil {
		e.closer.Close()
	}
}

// openLogFile opens the TUI log file.
var openLogFile = logging.OpenFile

// openEnv loads configuration and opens the database. CLI commands log to
// stderr; the TUI passes toFile so logs stay off the terminal.
func openEnv(cmd *cobra.Command, toFile bool) (*env, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}

	e := &env{cfg: cfg}
	if toFile {
		path, err := cfg.LogFile()
		if err != nil {
			return nil, fmt.Errorf("resolve log file: %w", err)
		}
		e.logger, e.closer, err = openLogFile(cfg.Log, path)
		if err != nil {
			return nil, err
		}
	} else {
		e.logger, err = logging.New(cfg.Log, os.Stderr)
		if err != nil {
			return nil, err
		}
	}

	e.store, err = openStore(cfg, e.logger)
	if err != nil {
		e.Close()
		return nil, err
	}
	return e, nil
}

func openStore(cfg *config.Config, logger *logrus.Logger) (*store.Store, error) {
	dbPath, err := cfg.DBPath()
	if err != nil {
		return nil, fmt.Errorf("resolve DB path: %w", err)
	}
	if err := store.EnsureDir(dbPath); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	logger.WithField("db", dbPath).Debug("opened store")
	return st, nil
}

func (e *env) profiles() *profile.Service {
	repo := profile.NewRepository(e.store.DocumentRepo(), e.logger)
	return profile.NewService(repo, e.cfg.LoginPolicy(), e.logger)
}

// session builds a learner session and restores the stored learner.
func (e *env) session(cmd *cobra.Command) (*learner.Session, learner.Start, error) {
	events := e.store.EventRepo()
	s := learner.New(learner.Deps{
		Profiles: e.profiles(),
		Catalog:  catalog.Default(),
		Tables:   i18n.Default(),
		Ledger:   rewards.NewLedger(events, e.logger),
		Events:   events,
		Policy:   e.cfg.Rewards,
		DemoPIN:  e.cfg.Simulation.DemoPIN,
		Logger:   e.logger,
	})
	start, err := s.Begin(cmd.Context())
	if err != nil {
		return nil, start, fmt.Errorf("restore learner: %w", err)
	}
	return s, start, nil
}
