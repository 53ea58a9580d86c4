// Package cli provides the command-line interface for calliope.
package cli

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/calliope-player/calliope/internal/config"
	"github.com/calliope-player/calliope/internal/logging"
)

// logger is configured by the root command before any subcommand runs.
var logger = zerolog.Nop()

// CLI holds the loaded configuration for the CLI commands
type CLI struct {
	Config *config.Config
}

// NewCLI loads configuration and returns a CLI instance
func NewCLI() (*CLI, error) {
	if err := config.Init(); err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return &CLI{Config: config.Get()}, nil
}

// NewRootCmd creates the root command for calliope
func NewRootCmd(version, commit, buildDate string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "calliope",
		Short: "A minimalist music player for tiling window managers",
		Long:  `calliope is a small music player; this tool manages its configuration, caches and disk usage.`,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			if err := config.Init(); err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}
			l, err := logging.NewFromAppConfig(&config.Get().Logging)
			if err != nil {
				return fmt.Errorf("failed to configure logging: %w", err)
			}
			logger = l
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	// Version command
	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Printf("calliope %s\n", version)
			fmt.Printf("commit: %s\n", commit)
			fmt.Printf("built: %s\n", buildDate)
		},
	}

	// Init command
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize calliope configuration",
		RunE: func(_ *cobra.Command, _ []string) error {
			cli, err := NewCLI()
			if err != nil {
				return err
			}

			fmt.Printf("calliope %s - Initialization complete!\n", version)
			fmt.Println("Music library:", cli.Config.Library.MusicDir)

			xdgDirs, err := config.GetXDGDirs()
			if err == nil {
				fmt.Println("Configuration directories:")
				fmt.Printf("- Config: %s\n", xdgDirs.ConfigHome)
				fmt.Printf("- Data: %s\n", xdgDirs.DataHome)
				fmt.Printf("- State: %s\n", xdgDirs.StateHome)
			}
			return nil
		},
	}

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(NewDfCmd())
	rootCmd.AddCommand(NewPurgeCmd())
	rootCmd.AddCommand(NewCacheCmd())
	rootCmd.AddCommand(NewConfigCmd())

	return rootCmd
}
