package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pumlitsch/vufind-kvo/core/ports/catalog"
	"github.com/pumlitsch/vufind-kvo/pkg/cache"
	"github.com/pumlitsch/vufind-kvo/pkg/cache/inmemory"
	rediscache "github.com/pumlitsch/vufind-kvo/pkg/cache/redis"
	"github.com/pumlitsch/vufind-kvo/services/aleph"
)

type appConfig struct {
	Catalog catalog.Config `mapstructure:"catalog"`
	Cache   cacheConfig    `mapstructure:"cache"`
}

type cacheConfig struct {
	Backend string           `mapstructure:"backend"`
	Redis   rediscache.Config `mapstructure:"redis"`
}

func newRootCmd() *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:           "alephcli",
		Short:         "Query an Aleph ILS installation",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&configPath, "config", "alephcli.yaml", "configuration file")

	root.AddCommand(
		newHoldingCmd(&configPath),
		newLoansCmd(&configPath),
		newFinesCmd(&configPath),
		newProfileCmd(&configPath),
	)
	return root
}

func newHoldingCmd(configPath *string) *cobra.Command {
	var patronID string

	cmd := &cobra.Command{
		Use:   "holding <record-id>",
		Short: "List the items of a bibliographic record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := buildClient(cmd.Context(), *configPath)
			if err != nil {
				return err
			}

			var patron *catalog.Patron
			if patronID != "" {
				patron = &catalog.Patron{ID: patronID}
			}

			holdings, err := client.GetHolding(cmd.Context(), args[0], patron)
			if err != nil {
				return err
			}
			return printJSON(holdings)
		},
	}
	cmd.Flags().StringVar(&patronID, "patron", "", "patron id for hold-eligibility checks")
	return cmd
}

func newLoansCmd(configPath *string) *cobra.Command {
	var history bool

	cmd := &cobra.Command{
		Use:   "loans <patron-id>",
		Short: "List a patron's loans",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := buildClient(cmd.Context(), *configPath)
			if err != nil {
				return err
			}

			loans, err := client.GetTransactions(cmd.Context(), catalog.Patron{ID: args[0]}, history)
			if err != nil {
				return err
			}
			return printJSON(loans)
		},
	}
	cmd.Flags().BoolVar(&history, "history", false, "include returned loans")
	return cmd
}

func newFinesCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "fines <patron-id>",
		Short: "List a patron's financial transactions",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := buildClient(cmd.Context(), *configPath)
			if err != nil {
				return err
			}

			fines, err := client.GetFines(cmd.Context(), catalog.Patron{ID: args[0]})
			if err != nil {
				return err
			}
			return printJSON(fines)
		},
	}
}

func newProfileCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "profile <patron-id>",
		Short: "Show a patron's profile",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := buildClient(cmd.Context(), *configPath)
			if err != nil {
				return err
			}

			profile, err := client.GetProfile(cmd.Context(), catalog.Patron{ID: args[0]})
			if err != nil {
				return err
			}
			return printJSON(profile)
		},
	}
}

func buildClient(ctx context.Context, configPath string) (*aleph.Client, error) {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return nil, err
	}

	lg := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel(cfg.Catalog.Debug),
	}))

	var translator *aleph.Translator
	util := cfg.Catalog.Util
	if util.Tab15 != "" && util.Tab40 != "" && util.TabSubLibrary != "" {
		translator, err = aleph.LoadTranslator(ctx, newCache(cfg.Cache), util)
		if err != nil {
			return nil, err
		}
	}

	return aleph.New(lg, cfg.Catalog, translator)
}

func loadConfig(path string) (appConfig, error) {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return appConfig{}, fmt.Errorf("read config %s: %w", path, err)
	}

	var cfg appConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return appConfig{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

func newCache(cfg cacheConfig) cache.Cache {
	if cfg.Backend == "redis" {
		return rediscache.New(cfg.Redis)
	}
	return inmemory.New()
}

func logLevel(debug bool) slog.Level {
	if debug {
		return slog.LevelDebug
	}
	return slog.LevelInfo
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
