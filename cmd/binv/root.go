package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/egetools/binv/cmd/binv/tui"
	"github.com/egetools/binv/pkg/binv/config"
	"github.com/egetools/binv/pkg/binv/eget"
	"github.com/egetools/binv/pkg/binv/history"
	"github.com/egetools/binv/pkg/binv/logging"
	"github.com/egetools/binv/pkg/binv/store"
)

var (
	cfgFile string
	rootCmd = &cobra.Command{
		Use:   "binv",
		Short: "Browse and prune binaries installed with eget",
		Long: `binv reads eget's install log and lets you browse, filter, delete,
and update the binaries it tracks.

By default, binv launches an interactive TUI. Use --no-interactive or the
list subcommand for plain output.

Examples:
  binv                       # Browse the install log interactively
  binv list                  # Plain table of installed binaries
  binv list -o json          # JSON output
  binv list -f ripgrep       # Only entries matching "ripgrep"
  binv remove ~/.local/bin/fzf
  binv update junegunn/fzf
  binv history               # What binv has pruned`,
		Args:              cobra.NoArgs,
		PersistentPreRunE: setupLogging,
		RunE:              runRoot,
	}
)

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ~/.config/binv/config.yaml)")
	rootCmd.PersistentFlags().String("log-file", "", "eget install log to browse (default: ~/.local/share/eget/install.log)")
	rootCmd.PersistentFlags().BoolP("no-interactive", "n", false, "disable TUI, use text output")
	rootCmd.PersistentFlags().BoolP("quiet", "q", false, "minimal output")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "debug logging")

	_ = viper.BindPFlag("log_file", rootCmd.PersistentFlags().Lookup("log-file"))
	_ = viper.BindPFlag("no_interactive", rootCmd.PersistentFlags().Lookup("no-interactive"))
	_ = viper.BindPFlag("quiet", rootCmd.PersistentFlags().Lookup("quiet"))
	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
}

// initConfig reads in config file and environment variables.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")

		if xdgConfigHome := os.Getenv("XDG_CONFIG_HOME"); xdgConfigHome != "" {
			viper.AddConfigPath(filepath.Join(xdgConfigHome, "binv"))
		}
		homeDir, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(homeDir, ".config", "binv"))
		}
	}

	viper.SetEnvPrefix("BINV")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	viper.SetDefault("log_file", "")
	viper.SetDefault("eget.binary", config.DefaultEgetBinary)
	viper.SetDefault("history.enabled", true)
	viper.SetDefault("history.dir", "")
	viper.SetDefault("history.retention_days", config.DefaultRetentionDays)
	viper.SetDefault("logging.level", config.DefaultLogLevel)
	viper.SetDefault("logging.path", "")

	// Read config file (ignore if not found).
	_ = viper.ReadInConfig()
}

// setupLogging initializes the file logger before any command runs.
func setupLogging(cmd *cobra.Command, args []string) error {
	level := viper.GetString("logging.level")
	if viper.GetBool("verbose") {
		level = "debug"
	}
	return logging.Init(logging.Config{
		Level: level,
		Path:  viper.GetString("logging.path"),
	})
}

// runRoot launches the TUI, or falls back to the plain listing when
// --no-interactive is set.
func runRoot(cmd *cobra.Command, args []string) error {
	if viper.GetBool("no_interactive") {
		return runList(cmd, args)
	}

	return tui.Run(tui.Options{
		Store:   activeStore(),
		Runner:  activeRunner(),
		History: activeHistory(),
	})
}

// Execute runs the root command.
func Execute() error {
	defer func() {
		_ = logging.Close()
	}()
	return rootCmd.Execute()
}

// activeStore returns the log store for the configured install log.
func activeStore() *store.Store {
	return store.New(viper.GetString("log_file"))
}

// activeRunner returns the eget runner for the configured binary.
func activeRunner() *eget.Runner {
	return eget.NewRunner(viper.GetString("eget.binary"))
}

// activeHistory returns the prune history, or nil when disabled.
// History is best-effort; browsing works without it.
func activeHistory() *history.History {
	cfg, err := config.Load()
	if err != nil {
		h, newErr := history.New(history.DefaultDir())
		if newErr != nil {
			return nil
		}
		return h
	}

	if !cfg.History.Enabled {
		return nil
	}
	dir := cfg.History.Dir
	if dir == "" {
		dir = history.DefaultDir()
	}
	h, err := history.New(dir)
	if err != nil {
		return nil
	}
	return h
}

// printInfo prints a message unless quiet mode is enabled.
func printInfo(format string, args ...interface{}) {
	if !viper.GetBool("quiet") {
		fmt.Printf(format+"\n", args...)
	}
}
