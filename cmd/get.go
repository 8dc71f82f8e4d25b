package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/antonvyukov/snag/internal/urlutil"
)

var getCmd = &cobra.Command{
	Use:   "get [url]",
	Short: "Fetch a URL and emit the response body verbatim to stdout",
	Long: `Fetch performs one outbound GET and writes the captured body to stdout
with no transformation. Without a URL argument the configured default target
is fetched. The response status is not checked: a non-2xx body is emitted
just the same.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runGet,
}

func init() {
	rootCmd.AddCommand(getCmd)
	getCmd.Flags().StringP("output", "o", "-", "write the body to a file instead of stdout")
	_ = viper.BindPFlag("output", getCmd.Flags().Lookup("output"))
}

func runGet(cmd *cobra.Command, args []string) error {
	a, err := buildApp()
	if err != nil {
		return err
	}
	defer a.Close()

	target := a.Config.Target
	if len(args) == 1 {
		target = args[0]
	}
	target, err = urlutil.Canonicalize(target, urlutil.Options{DefaultScheme: "https"})
	if err != nil {
		return fmt.Errorf("invalid target: %w", err)
	}

	// Fetch before touching the output destination: a failed transfer must
	// not clobber a previously written copy.
	resp, err := a.Fetcher.Fetch(cmd.Context(), target)
	if err != nil {
		return err
	}

	var out io.Writer = cmd.OutOrStdout()
	if a.Config.Output != "" && a.Config.Output != "-" {
		f, err := os.Create(a.Config.Output)
		if err != nil {
			return fmt.Errorf("open output file: %w", err)
		}
		defer f.Close()
		out = f
	}

	return a.Fetcher.Emit(out, resp)
}
