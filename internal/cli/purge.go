package cli

import (
	"bufio"
	"fmt"
	"os"
	"sort"
	"strings"
	"sync"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/calliope-player/calliope/internal/cli/styles"
	"github.com/calliope-player/calliope/internal/config"
	"github.com/calliope-player/calliope/internal/osutil"
)

// PurgeFlags holds all the purge command flags
type PurgeFlags struct {
	Covers  bool
	Network bool
	Logs    bool
	State   bool
	Config  bool
	All     bool
	Force   bool
}

// NewPurgeCmd creates the purge command
func NewPurgeCmd() *cobra.Command {
	var flags PurgeFlags

	cmd := &cobra.Command{
		Use:   "purge",
		Short: "Purge calliope cache and state files",
		Long: `Purge various calliope cache and state files. By default, purges everything.

Available purge targets:
  --covers, -C   Purge the album-cover cache
  --network, -n  Purge the HTTP response cache
  --logs, -l     Purge rotated log files
  --state, -s    Purge all state data (covers, network cache, logs)
  --config, -c   Purge configuration files
  --all, -a      Purge everything (default if no specific flags are provided)

Use --force to skip the confirmation prompt.

Examples:
  calliope purge              # Purge everything (with confirmation)
  calliope purge --force      # Purge everything (no confirmation)
  calliope purge -C -n        # Purge the cover and network caches
  calliope purge -c           # Purge config file only`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return executePurge(flags)
		},
	}

	cmd.Flags().BoolVarP(&flags.Covers, "covers", "C", false, "Purge the album-cover cache")
	cmd.Flags().BoolVarP(&flags.Network, "network", "n", false, "Purge the HTTP response cache")
	cmd.Flags().BoolVarP(&flags.Logs, "logs", "l", false, "Purge rotated log files")
	cmd.Flags().BoolVarP(&flags.State, "state", "s", false, "Purge all state data")
	cmd.Flags().BoolVarP(&flags.Config, "config", "c", false, "Purge configuration files")
	cmd.Flags().BoolVarP(&flags.All, "all", "a", false, "Purge everything")
	cmd.Flags().BoolVarP(&flags.Force, "force", "f", false, "Skip confirmation prompt")

	return cmd
}

// executePurge handles the purge logic
func executePurge(flags PurgeFlags) error {
	targets := determinePurgeTargets(flags)
	if len(targets) == 0 {
		fmt.Println("Nothing to purge.")
		return nil
	}

	paths, err := getPurgePaths(targets)
	if err != nil {
		return fmt.Errorf("failed to get purge paths: %w", err)
	}

	if !flags.Force {
		if !confirmPurge(targets, paths) {
			fmt.Println("Purge cancelled.")
			return nil
		}
	}

	return performPurge(targets, paths)
}

// determinePurgeTargets determines what should be purged based on flags
func determinePurgeTargets(flags PurgeFlags) []string {
	var targets []string

	// If no specific flags are set, or --all is set, purge everything
	if flags.All || (!flags.Covers && !flags.Network && !flags.Logs && !flags.State && !flags.Config) {
		return []string{"covers", "network", "logs", "config"}
	}

	if flags.Covers {
		targets = append(targets, "covers")
	}
	if flags.Network {
		targets = append(targets, "network")
	}
	if flags.Logs {
		targets = append(targets, "logs")
	}
	if flags.State {
		// State includes every cache plus logs
		targets = append(targets, "covers", "network", "logs")
	}
	if flags.Config {
		targets = append(targets, "config")
	}

	// Remove duplicates
	seen := make(map[string]bool)
	var result []string
	for _, target := range targets {
		if !seen[target] {
			seen[target] = true
			result = append(result, target)
		}
	}

	return result
}

// getPurgePaths gets the file/directory paths for each purge target
func getPurgePaths(targets []string) (map[string][]string, error) {
	paths := make(map[string][]string)

	for _, target := range targets {
		switch target {
		case "covers":
			dir, err := config.GetCoversCacheDir()
			if err != nil {
				return nil, fmt.Errorf("failed to get covers cache directory: %w", err)
			}
			paths[target] = []string{dir}

		case "network":
			dir, err := config.GetNetworkCacheDir()
			if err != nil {
				return nil, fmt.Errorf("failed to get network cache directory: %w", err)
			}
			paths[target] = []string{dir}

		case "logs":
			dir, err := config.GetLogDir()
			if err != nil {
				return nil, fmt.Errorf("failed to get log directory: %w", err)
			}
			paths[target] = []string{dir}

		case "config":
			configFile, err := config.GetConfigFile()
			if err != nil {
				return nil, fmt.Errorf("failed to get config file path: %w", err)
			}
			schemaFile := strings.TrimSuffix(configFile, "config.toml") + "config.schema.json"
			paths[target] = []string{configFile, schemaFile}
		}
	}

	return paths, nil
}

// confirmPurge shows a confirmation prompt and returns true if user confirms
func confirmPurge(targets []string, paths map[string][]string) bool {
	fmt.Printf("This will delete the following:\n\n")

	for _, target := range targets {
		fmt.Printf("• %s:\n", strings.ToUpper(target[:1])+target[1:])
		for _, path := range paths[target] {
			if _, err := os.Stat(path); err == nil {
				fmt.Printf("  - %s\n", path)
			} else {
				fmt.Printf("  - %s (not found)\n", path)
			}
		}
	}

	fmt.Printf("\nAre you sure you want to continue? (y/N): ")

	scanner := bufio.NewScanner(os.Stdin)
	if scanner.Scan() {
		response := strings.TrimSpace(strings.ToLower(scanner.Text()))
		return response == "y" || response == "yes"
	}

	return false
}

// performPurge executes the actual deletion. Targets are independent paths,
// so they are removed concurrently.
func performPurge(targets []string, paths map[string][]string) error {
	var (
		mu       sync.Mutex
		failures []string
	)

	var g errgroup.Group
	for _, target := range targets {
		for _, path := range paths[target] {
			target, path := target, path
			g.Go(func() error {
				if err := osutil.RemoveRecursive(path); err != nil {
					mu.Lock()
					failures = append(failures, fmt.Sprintf("%s: %v", path, err))
					mu.Unlock()
					fmt.Println(styles.Error.Render("  ✗ " + target + ": " + path))
					return fmt.Errorf("failed to purge %s: %w", path, err)
				}
				fmt.Println(styles.Success.Render("  ✓ " + target + ": " + path))
				return nil
			})
		}
	}

	if err := g.Wait(); err != nil {
		// g.Wait surfaces one error; the slice keeps them all for the report.
		sort.Strings(failures)
		logger.Error().Int("failed", len(failures)).Msg("purge incomplete")
		return fmt.Errorf("some items could not be deleted:\n%s", strings.Join(failures, "\n"))
	}

	fmt.Println("\nPurge completed successfully!")
	return nil
}
