package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/smartcat-ai/kicat/internal/config"
	"github.com/smartcat-ai/kicat/internal/provider"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}

		fmt.Printf("Provider:   %s (model %s)\n", cfg.Provider.Name, cfg.Provider.Model)
		fmt.Printf("API key:    %s\n", redactKey(cfg.Provider.APIKey))
		if cfg.Provider.BaseURL != "" {
			fmt.Printf("Base URL:   %s\n", cfg.Provider.BaseURL)
		}
		fmt.Printf("Permission: %s\n", cfg.Permission.Mode)
		fmt.Printf("Memory:     %d turns, %d decisions\n", cfg.Memory.MaxTurns, cfg.Memory.MaxDecisions)
		if cfg.Audit.Path != "" {
			fmt.Printf("Audit log:  %s\n", cfg.Audit.Path)
		} else {
			fmt.Println("Audit log:  disabled")
		}

		if err := cfg.Validate(); err != nil {
			fmt.Println(renderError(err))
		}
		if ok, reason := config.ValidateAPIKey(cfg.Provider.APIKey, cfg.Provider.Name); !ok {
			fmt.Println(renderInfo("Note: " + reason + "; provider questions will be disabled."))
		}
		return nil
	},
}

var configTestCmd = &cobra.Command{
	Use:   "test",
	Short: "Verify provider connectivity and credentials",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		if err := cfg.Validate(); err != nil {
			return err
		}
		if ok, reason := config.ValidateAPIKey(cfg.Provider.APIKey, cfg.Provider.Name); !ok {
			return fmt.Errorf("provider.api_key: %s", reason)
		}

		client, err := provider.New(cfg.Provider)
		if err != nil {
			return err
		}

		fmt.Printf("Testing %s (%s)...\n", client.Name(), cfg.Provider.Model)
		if err := client.Ping(cmd.Context()); err != nil {
			return fmt.Errorf("connection test failed: %w", err)
		}
		fmt.Println("Connection OK.")
		return nil
	},
}

func init() {
	configCmd.AddCommand(configTestCmd)
	rootCmd.AddCommand(configCmd)
}

// redactKey keeps enough of the key to recognize it without exposing it.
func redactKey(key string) string {
	key = strings.TrimSpace(key)
	if key == "" {
		return "(not set)"
	}
	if len(key) <= 8 {
		return "********"
	}
	return key[:6] + "..." + key[len(key)-2:]
}
