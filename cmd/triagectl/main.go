// Triagectl classifies symptom submissions from the command line using the
// same rules as the voxa server.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	v "github.com/linnemanlabs/go-core/version"
)

const appName = "voxa"
const component = "triagectl"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "triagectl",
		Short:        "Rule-based symptom triage from the command line",
		SilenceUsage: true,
	}

	cmd.AddCommand(classifyCmd())
	cmd.AddCommand(catalogCmd())
	cmd.AddCommand(versionCmd())
	return cmd
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version+build information",
		Run: func(cmd *cobra.Command, _ []string) {
			v.AppName = appName
			v.Component = component
			vi := v.Get()
			fmt.Fprintf(cmd.OutOrStdout(), "%s (%s) %s (commit=%s, go=%s)\n",
				vi.AppName, vi.Component, vi.Version, vi.Commit, vi.GoVersion)
		},
	}
}
