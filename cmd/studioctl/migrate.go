// AngelaMos | 2026
// migrate.go

package main

import (
	"fmt"
	"strconv"

	"github.com/go-extras/cobraflags"
	"github.com/spf13/cobra"

	"github.com/carterperez-dev/campaign-studio/internal/core"
	"github.com/carterperez-dev/campaign-studio/migrations"
)

const stepsFlag = "steps"

var migrateFlags = map[string]cobraflags.Flag{
	configFlag: newConfigFlag(),
	stepsFlag: &cobraflags.StringFlag{
		Name:  stepsFlag,
		Value: "1",
		Usage: "Number of migrations to roll back",
	},
}

func newMigrateCommand() *cobra.Command {
	migrateCmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply or roll back the embedded schema migrations",
	}

	upCmd := &cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		Args:  cobra.NoArgs,
		RunE:  migrateUpCommand,
	}

	downCmd := &cobra.Command{
		Use:   "down",
		Short: "Roll back the most recent migrations",
		Args:  cobra.NoArgs,
		RunE:  migrateDownCommand,
	}

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print the applied schema version",
		Args:  cobra.NoArgs,
		RunE:  migrateVersionCommand,
	}

	cobraflags.RegisterMap(upCmd, map[string]cobraflags.Flag{configFlag: migrateFlags[configFlag]})
	cobraflags.RegisterMap(downCmd, migrateFlags)
	cobraflags.RegisterMap(versionCmd, map[string]cobraflags.Flag{configFlag: migrateFlags[configFlag]})

	migrateCmd.AddCommand(upCmd, downCmd, versionCmd)
	return migrateCmd
}

func withMigrator(fn func(*core.Migrator) error) error {
	cfg, err := loadConfig(migrateFlags)
	if err != nil {
		return err
	}

	migrator, err := core.NewMigrator(migrations.FS, cfg.Database.URL)
	if err != nil {
		return err
	}
	defer migrator.Close() //nolint:errcheck // process is exiting

	return fn(migrator)
}

func migrateUpCommand(cmd *cobra.Command, _ []string) error {
	return withMigrator(func(m *core.Migrator) error {
		if err := m.Up(); err != nil {
			return err
		}
		return printVersion(cmd, m)
	})
}

func migrateDownCommand(cmd *cobra.Command, _ []string) error {
	steps, err := strconv.Atoi(migrateFlags[stepsFlag].GetString())
	if err != nil || steps < 1 {
		return fmt.Errorf("--%s must be a positive integer", stepsFlag)
	}

	return withMigrator(func(m *core.Migrator) error {
		if err := m.Down(steps); err != nil {
			return err
		}
		return printVersion(cmd, m)
	})
}

func migrateVersionCommand(cmd *cobra.Command, _ []string) error {
	return withMigrator(func(m *core.Migrator) error {
		return printVersion(cmd, m)
	})
}

func printVersion(cmd *cobra.Command, m *core.Migrator) error {
	version, dirty, err := m.Version()
	if err != nil {
		return err
	}

	state := "clean"
	if dirty {
		state = "dirty"
	}
	cmd.Printf("schema version %d (%s)\n", version, state)
	return nil
}
