package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Enigmara-Technologies/bambooclaw-core/internal/cli"
	"github.com/Enigmara-Technologies/bambooclaw-core/internal/download"
	"github.com/Enigmara-Technologies/bambooclaw-core/internal/journal"
)

// NewFetchCmd creates a command to download the agent binary
func NewFetchCmd(c *cli.Container) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "fetch <url>",
		Short: "Download the BambooClaw agent binary",
		Long: `Streams the agent binary from the given URL into the application
directory, reporting progress as it goes. A failed transfer leaves the
partial file in place so a later attempt can overwrite it.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := commandContext()
			defer cancel()
			theme := c.ThemeMgr.GetCurrentTheme()
			url := args[0]

			dest := output
			toDaemonPath := dest == ""
			if toDaemonPath {
				var err error
				dest, err = c.Filesystem.DaemonBinaryPath(c.Adapter.DaemonExecutable())
				if err != nil {
					return err
				}
			}

			theme.Info().Printf("Downloading %s\n", url)
			theme.Subtle().Printf("Destination: %s\n", dest)

			mgr := download.NewManager(download.Config{Logger: c.Logger})
			result, err := mgr.Fetch(ctx, url, dest, download.ObserverFunc(renderProgress))
			fmt.Println()
			if err != nil {
				theme.Error().Printf("Download failed after %d byte(s): %v\n", result.Downloaded, err)
				return err
			}

			if toDaemonPath {
				if err := os.Chmod(dest, 0o755); err != nil {
					theme.Warning().Printf("warning: could not mark agent binary executable: %v\n", err)
				}
			}

			msg := fmt.Sprintf("downloaded %d byte(s) to %s", result.Downloaded, result.Destination)
			theme.Success().Println(msg)
			recordEvent(c, journal.KindDownload, msg)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "destination path (defaults to the agent binary location)")
	return cmd
}

// renderProgress redraws a single progress line after each chunk.
func renderProgress(e download.ProgressEvent) {
	if e.Total > 0 {
		fmt.Printf("\r%s / %s (%.1f%%)", formatBytes(e.Downloaded), formatBytes(e.Total),
			float64(e.Downloaded)/float64(e.Total)*100)
		return
	}
	fmt.Printf("\r%s downloaded", formatBytes(e.Downloaded))
}

func formatBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}
