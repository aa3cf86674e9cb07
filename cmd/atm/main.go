// cmd/atm/main.go

// atm 在終端機上執行一次互動式 ATM session。
// 此檔案負責載入設定、建立 logger 與帳本、匯入種子帳戶，
// 然後把標準輸入輸出交給 internal/atm。帳本只存在於記憶體，程式結束即消失。
package main

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"atm/internal/atm"
	"atm/internal/bank"
	"atm/internal/config"
	"atm/internal/storage"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		logrus.WithError(err).Error("atm")
		stop()
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		envFile  string
		seedFile string
		debug    bool
	)
	cmd := &cobra.Command{
		Use:   "atm",
		Short: "Run an interactive in-memory ATM session",
		Long: `atm runs one interactive ATM session against an in-memory ledger.

Accounts are created at startup from a YAML seed file (or the built-in
demo accounts) and disappear when the session ends.

Example:
  atm
  atm --seed accounts.yaml --debug`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(envFile)
			if err != nil {
				return err
			}
			if seedFile != "" {
				cfg.SeedFile = seedFile
			}
			if debug {
				cfg.Debug = true
			}
			if err := cfg.Validate(); err != nil {
				return errors.Wrap(err, "invalid configuration")
			}
			return run(cmd.Context(), cfg, cmd.InOrStdin(), cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}
	cmd.Flags().StringVar(&envFile, "env", "", "env file to load (default is .env when present)")
	cmd.Flags().StringVar(&seedFile, "seed", "", "YAML file with the accounts to create at startup")
	cmd.Flags().BoolVar(&debug, "debug", false, "enable debug logging")
	return cmd
}

func run(ctx context.Context, cfg *config.Config, in io.Reader, out, logOut io.Writer) error {
	log := newLogger(cfg, logOut)

	seeds := storage.DefaultSeed()
	if cfg.SeedFile != "" {
		var err error
		if seeds, err = storage.LoadSeed(cfg.SeedFile); err != nil {
			return err
		}
	}

	ledger := bank.NewLedger(bank.WithLogger(log.WithField("component", "bank")))
	if err := storage.ApplySeed(ledger, seeds); err != nil {
		return err
	}
	log.WithField("accounts", ledger.IDs()).Debug("ledger seeded")

	s := atm.NewSession(ledger, in, out,
		atm.WithLogger(log.WithField("component", "atm")),
		atm.WithMaxAttempts(cfg.MaxLoginAttempts),
		atm.WithStatementDir(cfg.StatementDir),
	)
	err := s.Run(ctx)
	if errors.Is(err, context.Canceled) {
		log.Info("interrupted")
		return nil
	}
	return err
}

func newLogger(cfg *config.Config, w io.Writer) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(w)
	log.SetLevel(cfg.Level())
	log.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "15:04:05.000",
	})
	return log
}
