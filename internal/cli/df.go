package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/calliope-player/calliope/internal/cli/styles"
	"github.com/calliope-player/calliope/internal/format"
	"github.com/calliope-player/calliope/internal/osutil"
)

// NewDfCmd creates the df command
func NewDfCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "df [path]",
		Short: "Show disk space on the volume holding the music library",
		Long:  `Show capacity and free space of the filesystem containing the given path (default: the configured music library).`,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			cli, err := NewCLI()
			if err != nil {
				return err
			}

			path := cli.Config.Library.MusicDir
			if len(args) > 0 {
				path = args[0]
			}

			capacity, err := osutil.FileSystemCapacity(path)
			if err != nil {
				return fmt.Errorf("failed to query capacity of %s: %w", path, err)
			}
			free, err := osutil.FileSystemFreeSpace(path)
			if err != nil {
				return fmt.Errorf("failed to query free space of %s: %w", path, err)
			}

			used := capacity - free
			percent := 0.0
			if capacity > 0 {
				percent = float64(used) / float64(capacity) * 100
			}

			fmt.Println(styles.Title.Render("Volume containing " + path))
			fmt.Println(styles.Row("Capacity:", orDash(format.PrettySize(capacity))))
			fmt.Println(styles.Row("Used:", fmt.Sprintf("%s (%.0f%%)", orDash(format.PrettySize(used)), percent)))
			fmt.Println(styles.Row("Free:", orDash(format.PrettySize(free))))
			return nil
		},
	}
}

// orDash makes the empty string PrettySize yields on zero explicit.
func orDash(s string) string {
	if s == "" {
		return "0 bytes"
	}
	return s
}
