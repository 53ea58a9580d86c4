package cli

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/calliope-player/calliope/internal/cache"
	"github.com/calliope-player/calliope/internal/cli/styles"
	"github.com/calliope-player/calliope/internal/config"
	"github.com/calliope-player/calliope/internal/format"
	"github.com/calliope-player/calliope/internal/osutil"
)

// NewCacheCmd creates the cache command
func NewCacheCmd() *cobra.Command {
	var purge bool

	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Show album-cover cache status",
		Long:  `Show the location, size and headroom of the album-cover cache, or empty it with --purge.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			cli, err := NewCLI()
			if err != nil {
				return err
			}

			c, err := coverCacheFromConfig(cli.Config, logger)
			if err != nil {
				return err
			}

			if purge {
				if err := c.Purge(); err != nil {
					return err
				}
				fmt.Println(styles.Success.Render("Cover cache purged."))
				return nil
			}

			size, err := c.Size()
			if err != nil {
				return fmt.Errorf("failed to size cover cache: %w", err)
			}
			free := osutil.FileSystemFreeSpaceOrZero(c.Dir())
			capBytes := mbToBytes(cli.Config.Covers.MaxSizeMB)
			floor := mbToBytes(cli.Config.Covers.MinFreeSpaceMB)

			fmt.Println(styles.Title.Render("Album-cover cache"))
			fmt.Println(styles.Row("Location:", c.Dir()))
			fmt.Println(styles.Row("Size:", fmt.Sprintf("%s of %s",
				orDash(format.PrettySize(uint64(size))), orDash(format.PrettySize(capBytes)))))
			fmt.Println(styles.Row("Free:", orDash(format.PrettySize(free))))
			if floor > 0 && free < floor {
				fmt.Println(styles.Error.Render(fmt.Sprintf(
					"Free space is below the %s floor; new covers will be refused.",
					format.PrettySize(floor))))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&purge, "purge", false, "Empty the cover cache")

	return cmd
}

// coverCacheFromConfig opens the cover cache at its configured location with
// the configured cap and free-space floor.
func coverCacheFromConfig(cfg *config.Config, log zerolog.Logger) (*cache.CoverCache, error) {
	dir, err := config.GetCoversCacheDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get covers cache directory: %w", err)
	}
	return cache.NewCoverCache(dir, mbToBytes(cfg.Covers.MaxSizeMB), mbToBytes(cfg.Covers.MinFreeSpaceMB), log)
}

func mbToBytes(mb int) uint64 {
	if mb <= 0 {
		return 0
	}
	return uint64(mb) * 1024 * 1024
}
