package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for mseo.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mseo",
		Short: "Generate SEO artifacts from a site file",
		Long: `mseo generates HTML meta tags, XML sitemaps, robots.txt rules and
JSON-LD structured data from a declarative site file (.mseo.yaml).

The artifacts can be written to disk, injected into existing HTML pages,
or served over HTTP.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")

	cmd.AddCommand(NewInitCmd())
	cmd.AddCommand(NewGenerateCmd())
	cmd.AddCommand(NewServeCmd())
	cmd.AddCommand(NewInjectCmd())
	cmd.AddCommand(NewCompareCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
