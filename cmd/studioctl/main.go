// AngelaMos | 2026
// main.go

// Command studioctl runs schema migrations and bootstrap tasks against a
// campaign-studio database.
package main

import (
	"fmt"
	"os"

	"github.com/go-extras/cobraflags"
	"github.com/spf13/cobra"

	"github.com/carterperez-dev/campaign-studio/internal/config"
)

const configFlag = "config"

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "studioctl",
		Short: "Operate a campaign-studio deployment",
		Long: `Operational commands for campaign-studio.

Examples:
  studioctl migrate up
  studioctl migrate down --steps 1
  studioctl create-admin --username admin --email admin@example.com
  studioctl gen-secret`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newMigrateCommand())
	root.AddCommand(newCreateAdminCommand())
	root.AddCommand(newGenSecretCommand())
	return root
}

func newConfigFlag() cobraflags.Flag {
	return &cobraflags.StringFlag{
		Name:  configFlag,
		Value: "",
		Usage: "Path to a YAML config file; environment variables override it",
	}
}

func loadConfig(flags map[string]cobraflags.Flag) (*config.Config, error) {
	return config.Load(flags[configFlag].GetString())
}
