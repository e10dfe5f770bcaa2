package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/baharkarakas/termbank/internal/cli"
	"github.com/baharkarakas/termbank/internal/config"
	"github.com/baharkarakas/termbank/internal/logger"
	"github.com/baharkarakas/termbank/internal/repository"
	"github.com/baharkarakas/termbank/internal/repository/file"
	"github.com/baharkarakas/termbank/internal/repository/sqlite"
	"github.com/baharkarakas/termbank/internal/services"
	"github.com/spf13/cobra"
)

var (
	flagDataDir string
	flagDriver  string
)

var rootCmd = &cobra.Command{
	Use:          "bank",
	Short:        "termbank is a file-backed terminal banking tool",
	Long:         "Register an account, log in, deposit, withdraw and review history.\nAll state persists to the data directory between runs.",
	SilenceUsage: true,
	RunE:         run,
}

func init() {
	rootCmd.Flags().StringVar(&flagDataDir, "data-dir", "", "data directory (overrides DATA_DIR)")
	rootCmd.Flags().StringVar(&flagDriver, "driver", "", "storage driver: file or sqlite (overrides STORAGE_DRIVER)")
}

func run(cmd *cobra.Command, args []string) error {
	cfg := config.Load()
	if flagDataDir != "" {
		cfg.DataDir = flagDataDir
	}
	if flagDriver != "" {
		cfg.StorageDriver = flagDriver
	}
	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}

	log := logger.New(cfg.Env, cfg.DataDir)
	slog.SetDefault(log)

	var repos repository.Repositories
	switch cfg.StorageDriver {
	case "sqlite":
		st, err := sqlite.Open(filepath.Join(cfg.DataDir, "bank.db"))
		if err != nil {
			return err
		}
		defer st.Close()
		repos = sqlite.NewRepositories(st)
	case "file":
		st, err := file.Open(cfg.DataDir)
		if err != nil {
			return err
		}
		repos = file.NewRepositories(st)
	default:
		return fmt.Errorf("unknown storage driver %q", cfg.StorageDriver)
	}
	log.Info("storage ready", "driver", cfg.StorageDriver, "dir", cfg.DataDir)

	accountSvc := services.NewAccountService(repos.Accounts)
	ledgerSvc := services.NewLedgerService(accountSvc, repos.Transactions)

	return cli.New(accountSvc, ledgerSvc, log).Run()
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
