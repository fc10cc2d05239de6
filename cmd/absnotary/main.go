// absnotary is the command-line companion for the notary hashing and
// credential library: file digests, digest verification, and API key
// management against a local keystore.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/absnotary/libnotary-go/apikey"
	"github.com/absnotary/libnotary-go/config"
	"github.com/absnotary/libnotary-go/digest"
	"github.com/absnotary/libnotary-go/keystore"
	"github.com/absnotary/libnotary-go/validate"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// app carries the loaded configuration and logger for all subcommands.
type app struct {
	cfg config.Config
	log *zap.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}
	var configPath string

	root := &cobra.Command{
		Use:           "absnotary",
		Short:         "Content digests and API key management for document notarization",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(configPath)
			if err != nil {
				return err
			}
			if err := config.ValidateConfig(cfg); err != nil {
				return err
			}
			log, err := newLogger(cfg.LogLevel)
			if err != nil {
				return err
			}
			a.cfg = cfg
			a.log = log
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.log != nil {
				_ = a.log.Sync()
			}
		},
	}

	root.PersistentFlags().StringVar(&configPath, "config", "", "config file path (default: <datadir>/config)")

	root.AddCommand(newHashCmd(a))
	root.AddCommand(newVerifyCmd(a))
	root.AddCommand(newKeygenCmd(a))
	root.AddCommand(newKeysCmd(a))
	return root
}

// loadConfig loads the given config file, or the default location when path
// is empty. A missing file falls back to defaults.
func loadConfig(path string) (config.Config, error) {
	if path == "" {
		path = config.ConfigPath(config.DefaultConfig().DataDir)
	}
	cfg, err := config.LoadConfig(path)
	if errors.Is(err, config.ErrConfigNotFound) {
		return config.DefaultConfig(), nil
	}
	return cfg, err
}

func newLogger(level string) (*zap.Logger, error) {
	var lvl zapcore.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("parse log level: %w", err)
	}
	zcfg := zap.NewProductionConfig()
	zcfg.Level = zap.NewAtomicLevelAt(lvl)
	zcfg.OutputPaths = []string{"stderr"}
	return zcfg.Build()
}

func newHashCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "hash <file>",
		Short: "Compute the 0x-prefixed SHA-256 digest of a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]

			// Size policy is enforced here, not by the hashing core.
			info, err := os.Stat(path)
			if err != nil {
				return err
			}
			if err := validate.FileSize(info.Size(), a.cfg.MaxFileSize); err != nil {
				return err
			}

			r, err := digest.OpenSize(path, a.cfg.ChunkSize)
			if err != nil {
				return err
			}
			defer r.Close()

			d, err := digest.HashReader(cmd.Context(), r)
			if err != nil {
				return err
			}

			a.log.Info("file hashed",
				zap.String("path", path),
				zap.Int64("size", info.Size()),
				zap.String("digest", d.String()),
			)
			fmt.Fprintln(cmd.OutOrStdout(), d)
			return nil
		},
	}
}

func newVerifyCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "verify <file> <digest>",
		Short: "Verify a file against an expected digest",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, expected := args[0], args[1]

			want, err := digest.Parse(expected)
			if err != nil {
				return err
			}

			got, err := digest.HashFileContext(cmd.Context(), path)
			if err != nil {
				return err
			}

			if got != want {
				a.log.Warn("digest mismatch",
					zap.String("path", path),
					zap.String("expected", want.String()),
					zap.String("actual", got.String()),
				)
				fmt.Fprintln(cmd.OutOrStdout(), "MISMATCH")
				return fmt.Errorf("digest mismatch for %s", path)
			}

			fmt.Fprintln(cmd.OutOrStdout(), "OK")
			return nil
		},
	}
}

func newKeygenCmd(a *app) *cobra.Command {
	var label string

	cmd := &cobra.Command{
		Use:   "keygen",
		Short: "Generate an API key and register its hash in the keystore",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if label == "" {
				label = a.cfg.KeyLabel
			}

			key, err := apikey.GenerateConfig(label, apikey.Config{
				RandomBytes:  a.cfg.KeyRandomBytes,
				DisplayChars: a.cfg.KeyDisplayChars,
			})
			if err != nil {
				return err
			}

			store, err := keystore.Open(a.cfg.KeystorePath())
			if err != nil {
				return err
			}
			defer store.Close()

			rec, err := store.Add(key, label)
			if err != nil {
				return err
			}

			a.log.Info("api key issued",
				zap.String("id", rec.ID),
				zap.String("prefix", rec.Prefix),
			)

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "Store this secret now; it will not be shown again.")
			fmt.Fprintf(out, "secret: %s\n", key.Secret)
			fmt.Fprintf(out, "prefix: %s\n", key.Prefix)
			fmt.Fprintf(out, "id:     %s\n", rec.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&label, "label", "", "key label prefix (default from config)")
	return cmd
}

func newKeysCmd(a *app) *cobra.Command {
	keys := &cobra.Command{
		Use:   "keys",
		Short: "Inspect and revoke stored API keys",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List stored API keys",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := keystore.Open(a.cfg.KeystorePath())
			if err != nil {
				return err
			}
			defer store.Close()

			records, err := store.List()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, rec := range records {
				status := "active"
				if rec.Revoked {
					status = "revoked"
				}
				fmt.Fprintf(out, "%s  %s...  %s  created %s\n",
					rec.ID, rec.Prefix, status, rec.CreatedAt.Format("2006-01-02"))
			}
			return nil
		},
	}

	revoke := &cobra.Command{
		Use:   "revoke <id>",
		Short: "Permanently revoke an API key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := keystore.Open(a.cfg.KeystorePath())
			if err != nil {
				return err
			}
			defer store.Close()

			if err := store.Revoke(args[0]); err != nil {
				return err
			}
			a.log.Info("api key revoked", zap.String("id", args[0]))
			fmt.Fprintln(cmd.OutOrStdout(), "revoked", args[0])
			return nil
		},
	}

	keys.AddCommand(list, revoke)
	return keys
}
