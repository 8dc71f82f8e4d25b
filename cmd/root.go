// Package cmd provides the snag command-line interface.
//
// Configuration sources, highest priority first:
//  1. Command-line flags (--timeout, --max-redirects, ...)
//  2. SNAG_* environment variables (SNAG_CLIENT_TIMEOUT, ...)
//  3. Config file (.snag.yml in the working directory, or --config/SNAG_CONFIG_FILE)
//  4. Built-in defaults
package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/antonvyukov/snag/internal/app"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands.
// Bare invocation is deliberately a silent no-op: nothing is written to
// stdout and the exit status is zero.
var rootCmd = &cobra.Command{
	Use:   "snag",
	Short: "Fetch a remote resource and emit its body verbatim",
	Long: `snag performs one outbound HTTP GET and writes the response body
byte-for-byte to stdout. All diagnostics go to stderr.

Defaults match the historical one-shot behavior: up to 10 redirect hops,
no timeout, HTTP/1.1, compressed responses transparently decoded.

  snag get https://example.com/site.css     fetch and emit
  snag links https://example.com/           list referenced URLs
  snag diff local.css https://example.com/site.css
                                            report drift against a local copy`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return nil
	},
}

// Execute runs the CLI with the given context.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is .snag.yml, can also use SNAG_CONFIG_FILE env var)")
	registerTransportFlags(rootCmd.PersistentFlags())
}

// registerTransportFlags declares the shared transport flags and binds them
// to their viper keys.
func registerTransportFlags(fs *pflag.FlagSet) {
	fs.String("log-level", "info", "log level (debug, info, warn, error)")
	fs.String("backend", "nethttp", "webclient backend (nethttp, chromedp)")
	fs.Duration("timeout", 0, "whole-transfer timeout, 0 disables the deadline")
	fs.Int("max-redirects", 10, "redirect hop bound")
	fs.Bool("http2", false, "negotiate HTTP/2 instead of pinning HTTP/1.1")
	fs.String("user-agent", "", "override the User-Agent header")

	_ = viper.BindPFlag("log_level", fs.Lookup("log-level"))
	_ = viper.BindPFlag("client.backend", fs.Lookup("backend"))
	_ = viper.BindPFlag("client.timeout", fs.Lookup("timeout"))
	_ = viper.BindPFlag("client.max_redirects", fs.Lookup("max-redirects"))
	_ = viper.BindPFlag("client.http2", fs.Lookup("http2"))
	_ = viper.BindPFlag("client.user_agent", fs.Lookup("user-agent"))
}

// initConfig initializes viper: explicit --config flag wins, then the
// SNAG_CONFIG_FILE environment variable, then .snag.yml in the working
// directory. A missing config file is not an error.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else if envConfigFile := os.Getenv("SNAG_CONFIG_FILE"); envConfigFile != "" {
		viper.SetConfigFile(envConfigFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".snag")
	}

	viper.SetEnvPrefix("SNAG")
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// buildApp assembles the Application from the merged configuration.
func buildApp() (*app.Application, error) {
	cfg, err := app.FromViper(viper.GetViper())
	if err != nil {
		return nil, err
	}
	return app.NewApplication(cfg)
}
