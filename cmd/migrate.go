package cmd

import (
	"context"
	"flag"

	"github.com/google/subcommands"

	"stockfolio/database"
)

type migrateCmd struct{}

func (*migrateCmd) Name() string     { return "migrate" }
func (*migrateCmd) Synopsis() string { return "create or update the schema and seed the roles" }
func (*migrateCmd) Usage() string {
	return `stockfolio migrate

  Creates or updates every table and makes sure the "Admin" and "User"
  roles exist. Safe to run repeatedly.
`
}

func (*migrateCmd) SetFlags(*flag.FlagSet) {}

func (*migrateCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	_, log, db, status := bootstrap()
	if status != subcommands.ExitSuccess {
		return status
	}
	defer closeDB(log, db)

	if err := database.Migrate(db); err != nil {
		log.WithError(err).Error("Failed to migrate database")
		return subcommands.ExitFailure
	}
	log.Info("Database migrated")
	return subcommands.ExitSuccess
}
