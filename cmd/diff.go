package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/antonvyukov/snag/internal/compare"
	"github.com/antonvyukov/snag/internal/urlutil"
)

// ErrContentDrift signals that the fetched body no longer matches the local
// baseline. It maps to a non-zero exit status.
var ErrContentDrift = errors.New("content drift detected")

var diffCmd = &cobra.Command{
	Use:   "diff <baseline-file> [url]",
	Short: "Fetch a URL and report drift against a local baseline file",
	Long: `Diff fetches the target, compares the body against a local baseline copy
and prints the change chunks. The exit status is non-zero when the content
has drifted, so the command works in cron jobs and CI checks.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runDiff,
}

func init() {
	rootCmd.AddCommand(diffCmd)
}

func runDiff(cmd *cobra.Command, args []string) error {
	baseline, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("read baseline: %w", err)
	}

	a, err := buildApp()
	if err != nil {
		return err
	}
	defer a.Close()

	target := a.Config.Target
	if len(args) == 2 {
		target = args[1]
	}
	target, err = urlutil.Canonicalize(target, urlutil.Options{DefaultScheme: "https"})
	if err != nil {
		return fmt.Errorf("invalid target: %w", err)
	}

	resp, err := a.Fetcher.Fetch(cmd.Context(), target)
	if err != nil {
		return err
	}

	res := compare.Diff(baseline, resp.Body)
	if err := compare.Render(cmd.OutOrStdout(), res); err != nil {
		return err
	}
	if res.Changed {
		return ErrContentDrift
	}
	return nil
}
