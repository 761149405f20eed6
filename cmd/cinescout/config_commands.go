package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"cinescout/internal/config"
)

func newConfigCommand(configFlag *string) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration utilities",
	}

	configCmd.AddCommand(newConfigInitCommand())
	configCmd.AddCommand(newConfigShowCommand(configFlag))
	configCmd.AddCommand(newConfigValidateCommand(configFlag))

	return configCmd
}

func newConfigInitCommand() *cobra.Command {
	var targetPath string

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a sample configuration file",
		RunE: func(cmd *cobra.Command, args []string) error {
			target := strings.TrimSpace(targetPath)
			if target == "" {
				defaultPath, err := config.DefaultConfigPath()
				if err != nil {
					return fmt.Errorf("determine default config path: %w", err)
				}
				target = defaultPath
			}

			if err := config.WriteSample(target); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Wrote sample configuration to %s\n", target)
			fmt.Fprintln(out, "Edit the file to set tmdb.api_key (or export TMDB_API_KEY) and llm.api_key (or CINESCOUT_LLM_API_KEY).")
			return nil
		},
	}

	cmd.Flags().StringVarP(&targetPath, "path", "p", "", "Destination for the configuration file")
	return cmd
}

func newConfigShowCommand(configFlag *string) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the resolved configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, path, exists, err := config.Load(*configFlag)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			out := cmd.OutOrStdout()
			sectionHeader(out, "Configuration")
			fmt.Fprintf(out, "Path: %s\n", path)
			if !exists {
				fmt.Fprintln(out, "Config file did not exist; defaults were used")
			}
			fmt.Fprintf(out, "Bind: %s\n", cfg.Server.Bind)
			fmt.Fprintf(out, "Catalog base URL: %s\n", cfg.TMDB.BaseURL)
			fmt.Fprintf(out, "Catalog API key set: %t\n", cfg.TMDB.APIKey != "")
			fmt.Fprintf(out, "LLM model: %s\n", cfg.LLM.Model)
			fmt.Fprintf(out, "LLM API key set: %t\n", cfg.LLM.APIKey != "")
			fmt.Fprintf(out, "Extraction parser: %s\n", cfg.Chat.Parser)
			fmt.Fprintf(out, "Session backend: %s\n", cfg.Sessions.Backend)
			if cfg.Sessions.Backend == "sqlite" {
				fmt.Fprintf(out, "Session db: %s\n", cfg.Sessions.Path)
			}
			fmt.Fprintf(out, "Session TTL: %dm, max turns: %d\n", cfg.Sessions.TTLMinutes, cfg.Sessions.MaxTurns)
			fmt.Fprintf(out, "Logging: %s/%s\n", cfg.Logging.Format, cfg.Logging.Level)
			return nil
		},
	}
}

func newConfigValidateCommand(configFlag *string) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Validate the configuration file",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, path, exists, err := config.Load(*configFlag)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Config path: %s\n", path)
			if !exists {
				fmt.Fprintln(out, "Config file did not exist; defaults were used")
			}
			fmt.Fprintln(out, "Configuration valid")
			return nil
		},
	}
}
