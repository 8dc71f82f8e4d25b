package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/antonvyukov/snag/internal/extract"
	"github.com/antonvyukov/snag/internal/urlutil"
)

var linksCmd = &cobra.Command{
	Use:   "links [url]",
	Short: "Fetch a document and list the URLs it references",
	Long: `Links fetches the target like get does, then lists every absolute URL the
document refers to (anchors, stylesheets, scripts, images), one per line.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runLinks,
}

func init() {
	rootCmd.AddCommand(linksCmd)
	linksCmd.Flags().Bool("same-host", false, "only list references on the target's host")
}

func runLinks(cmd *cobra.Command, args []string) error {
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

	sameHost, _ := cmd.Flags().GetBool("same-host")

	resp, err := a.Fetcher.Fetch(cmd.Context(), target)
	if err != nil {
		return err
	}

	links, err := extract.New(a.Logger).Links(target, resp.Body, sameHost)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for _, link := range links {
		fmt.Fprintln(out, link)
	}
	return nil
}
