// Package cmd implements the stockfolio command line: the API server and its
// maintenance tasks.
package cmd

import (
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"stockfolio/config"
)

// Register the subcommands.
func Register(c *subcommands.Commander) {
	c.Register(c.HelpCommand(), "")
	c.Register(c.FlagsCommand(), "")
	c.Register(&serveCmd{}, "server")
	c.Register(&migrateCmd{}, "database")
	c.Register(&seedCmd{}, "database")
}

// bootstrap loads the configuration, builds the logger and opens the
// database. Failures are printed and reported as ExitFailure.
func bootstrap() (*config.Config, *logrus.Logger, *gorm.DB, subcommands.ExitStatus) {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		return nil, nil, nil, subcommands.ExitFailure
	}
	log := config.NewLogger(cfg)

	db, err := config.InitDB(cfg)
	if err != nil {
		log.WithError(err).Error("Failed to connect to database")
		return nil, nil, nil, subcommands.ExitFailure
	}
	return cfg, log, db, subcommands.ExitSuccess
}

func closeDB(log logrus.FieldLogger, db *gorm.DB) {
	sqlDB, err := db.DB()
	if err != nil {
		return
	}
	if err := sqlDB.Close(); err != nil {
		log.WithError(err).Warn("Failed to close database")
	}
}
