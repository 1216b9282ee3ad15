package main

import (
	"context"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/theplant/restriction/config"
)

type configKey struct{}

func newRootCmd() *cobra.Command {
	var (
		cfgFile string
		verbose bool
	)

	rootCmd := &cobra.Command{
		Use:   "restrict",
		Short: "Render report restrictions as SQL and display text",
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			level := slog.LevelWarn
			if verbose {
				level = slog.LevelDebug
			}
			slog.SetDefault(slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level})))

			if cmd.Name() == "help" || cmd.Name() == "completion" || cmd.Name() == "__complete" {
				return nil
			}
			cfg, err := config.Load(cfgFile, cmd.Root().PersistentFlags())
			if err != nil {
				return err
			}
			slog.Debug("config loaded", "dialect", cfg.Dialect, "locale", cfg.Locale.Tag, "sqlCapable", cfg.SQLCapable)
			cmd.SetContext(context.WithValue(cmd.Context(), configKey{}, cfg))
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default: ./"+config.FileName+")")
	flags.BoolVarP(&verbose, "verbose", "v", false, "verbose logging")
	flags.String("dialect", "", "target dialect (ansi|oracle|mssql|access|excel)")
	flags.String("locale", "", "display locale, a BCP 47 tag")
	flags.String("date-layout", "", "layout of date literals in SQL")
	flags.Bool("sql-capable", true, "source evaluates BETWEEN")

	_ = rootCmd.RegisterFlagCompletionFunc("dialect", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{"ansi", "oracle", "mssql", "access", "excel"}, cobra.ShellCompDirectiveNoFileComp
	})

	rootCmd.AddCommand(newRenderCmd())
	rootCmd.AddCommand(newLinkCmd())
	rootCmd.AddCommand(newOperatorsCmd())
	return rootCmd
}

func getConfig(ctx context.Context) *config.Config {
	if c, ok := ctx.Value(configKey{}).(*config.Config); ok {
		return c
	}
	return &config.Config{SQLCapable: true, Locale: config.Locale{Tag: "en-US"}}
}
