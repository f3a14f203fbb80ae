package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/daybook-hq/daybook/internal/client"
	"github.com/daybook-hq/daybook/internal/client/config"
	"github.com/daybook-hq/daybook/internal/client/sync"
	"github.com/daybook-hq/daybook/internal/daybooksdk"
	"github.com/daybook-hq/daybook/internal/utils"
	"github.com/daybook-hq/daybook/internal/version"
	"github.com/google/uuid"
	"github.com/lmittmann/tint"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	dateKeyLayout  = "2006-01-02"
	configFileName = "config"
)

var (
	home, _ = os.UserHomeDir()
)

var rootCmd = &cobra.Command{
	Use:     "daybook",
	Short:   "Daybook journal sync",
	Long:    "Synchronize the local daily journal with the daybook server.",
	Version: version.Detailed(),
	PreRunE: func(cmd *cobra.Command, args []string) error {
		return loadConfig(cmd)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := &config.Config{
			Path:         viper.ConfigFileUsed(),
			Email:        viper.GetString("email"),
			DataDir:      viper.GetString("data_dir"),
			ServerURL:    viper.GetString("server_url"),
			RefreshToken: viper.GetString("refresh_token"),
		}
		if err := cfg.Validate(); err != nil {
			return err
		}

		key, err := resolveDateKey(cmd)
		if err != nil {
			return err
		}

		// config is valid, errors from here on are not usage errors
		cmd.SilenceUsage = true

		c, err := client.New(cfg, pickResolver(cmd))
		if err != nil {
			return err
		}

		result, err := c.SyncKey(cmd.Context(), key)
		if err != nil {
			return explainSyncError(err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", key, result.Summary())
		return nil
	},
}

func resolveDateKey(cmd *cobra.Command) (string, error) {
	date, _ := cmd.Flags().GetString("date")
	if date == "" {
		return time.Now().Format(dateKeyLayout), nil
	}
	if _, err := time.Parse(dateKeyLayout, date); err != nil {
		return "", fmt.Errorf("invalid --date %q, want YYYY-MM-DD", date)
	}
	return date, nil
}

// pickResolver returns the interactive TUI resolver on a terminal, and the
// abort-on-conflict resolver otherwise (or when --non-interactive is set).
func pickResolver(cmd *cobra.Command) sync.ConflictResolver {
	nonInteractive, _ := cmd.Flags().GetBool("non-interactive")
	if nonInteractive || !isatty.IsTerminal(os.Stdin.Fd()) {
		return sync.AbortResolver{}
	}
	return newTUIResolver()
}

// explainSyncError turns the sync error taxonomy into actionable messages.
func explainSyncError(err error) error {
	switch {
	case errors.Is(err, daybooksdk.ErrUnreachable):
		return fmt.Errorf("%w\ncheck your network connection and try again", err)
	case errors.Is(err, daybooksdk.ErrUnauthorized):
		return fmt.Errorf("%w\ncredentials expired or invalid, run `daybook login`", err)
	case errors.Is(err, sync.ErrResolutionAborted):
		return errors.New("sync aborted, local file and sync state left untouched")
	default:
		return err
	}
}

func init() {
	rootCmd.Flags().SortFlags = false
	rootCmd.Flags().StringP("email", "e", "", "Email for the daybook account")
	rootCmd.Flags().StringP("datadir", "d", config.DefaultDataDir, "Daybook data directory")
	rootCmd.Flags().StringP("server", "s", config.DefaultServerURL, "Daybook server URL")
	rootCmd.Flags().String("date", "", "Date key to sync (YYYY-MM-DD, default today)")
	rootCmd.Flags().Bool("non-interactive", false, "Abort instead of prompting on conflicts")
	rootCmd.PersistentFlags().StringP("config", "c", config.DefaultConfigPath, "Daybook config file")
}

func main() {
	logFile := config.DefaultLogFilePath
	if err := os.MkdirAll(filepath.Dir(logFile), 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create log directory: %v\n", err)
		os.Exit(1)
	}

	file, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open log file: %v\n", err)
		os.Exit(1)
	}
	defer file.Close()

	stderrHandler := tint.NewHandler(os.Stderr, &tint.Options{
		Level:      slog.LevelInfo,
		TimeFormat: time.Kitchen,
		NoColor:    !isatty.IsTerminal(os.Stderr.Fd()),
	})
	fileHandler := slog.NewTextHandler(file, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	})

	logger := slog.New(utils.NewMultiLogHandler(stderrHandler, fileHandler)).
		With("run", uuid.NewString()[:8])
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func loadConfig(cmd *cobra.Command) error {
	// config path
	if cmd.Flag("config").Changed {
		configFilePath, _ := cmd.Flags().GetString("config")
		viper.SetConfigFile(configFilePath)
	} else {
		viper.AddConfigPath(filepath.Join(home, ".daybook"))
		viper.AddConfigPath(filepath.Join(home, ".config/daybook"))
		viper.SetConfigName(configFileName)
		viper.SetConfigType("json")
	}

	// Read config file
	if err := viper.ReadInConfig(); err != nil {
		enoent := errors.Is(err, os.ErrNotExist)
		_, notFound := err.(viper.ConfigFileNotFoundError)
		if !enoent && !notFound {
			return fmt.Errorf("config read '%s': %w", viper.ConfigFileUsed(), err)
		}
	}

	// Bind flags to viper
	viper.BindPFlag("email", cmd.Flags().Lookup("email"))
	viper.BindPFlag("data_dir", cmd.Flags().Lookup("datadir"))
	viper.BindPFlag("server_url", cmd.Flags().Lookup("server"))

	// Set up environment variables
	viper.SetEnvPrefix("DAYBOOK")
	viper.AutomaticEnv()

	return nil
}
