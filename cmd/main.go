package main

import (
	"fmt"
	"os"

	"github.com/mikelestevenzamora-tech/football-intel/internal/logger"
	"github.com/mikelestevenzamora-tech/football-intel/pkg/intel"
	"github.com/mikelestevenzamora-tech/football-intel/pkg/server"
	"github.com/mikelestevenzamora-tech/football-intel/pkg/transport"
)

func main() {
	// Configure logging
	logger.SetShowDateTime(true)

	// Set log output to file before any logging occurs
	logger.SetLogOutput('f')

	logger.Info("Starting github.com/mikelestevenzamora-tech/football-intel application")

	if _, err := intel.LoadConfig(); err != nil {
		logger.Error("Configuration error:", err)
		os.Exit(1)
	}

	// Log command line arguments
	if len(os.Args) > 1 {
		logger.Info("Command line arguments received:", len(os.Args)-1)
		for i, arg := range os.Args[1:] {
			logger.Debug(fmt.Sprintf("Argument %d:", i+1), arg)
		}

		// Check for roster import command
		if os.Args[1] == "import-roster" {
			logger.Info("Starting roster import...")
			if err := importRoster(); err != nil {
				logger.Error("Roster import failed:", err)
				os.Exit(1)
			}
			logger.Info("Roster import completed successfully")
			return
		}
	} else {
		logger.Info("No command line arguments provided")
	}

	engine, err := buildEngine()
	if err != nil {
		logger.Error("Failed to build prediction engine:", err)
		os.Exit(1)
	}

	// Initialize the server singleton
	t := transport.NewStdioTransport()
	s := server.InitInstance(t, engine)

	// Start the server
	logger.Info("Starting analytics server...")
	if err := s.Start(); err != nil {
		logger.Error("Server error:", err)
		os.Exit(1)
	}

	logger.Info("Analytics server shutting down")
	intel.CloseDatabase()
}

// importRoster ingests the roster from the configured source and writes
// the sqlite snapshot. The remote stats page takes precedence when a
// roster URL is configured; otherwise the local CSV is used.
func importRoster() error {
	var dataset *intel.Dataset
	var err error

	if intel.Config.RosterURL != "" {
		dataset, err = intel.GetDatasourceInstance().FetchRoster()
	} else {
		dataset, err = intel.LoadCSV(intel.Config.RosterPath)
	}
	if err != nil {
		return err
	}

	if err := intel.Enrich(dataset); err != nil {
		return err
	}

	return dataset.SaveSnapshot()
}

// buildEngine loads the roster and models and wires them together.
// The local CSV takes precedence so a fresh export is picked up without
// re-importing; the sqlite snapshot is the fallback.
func buildEngine() (*intel.Engine, error) {
	var dataset *intel.Dataset
	if _, err := os.Stat(intel.Config.RosterPath); err == nil {
		dataset, err = intel.LoadCSV(intel.Config.RosterPath)
		if err != nil {
			return nil, err
		}
	} else {
		dataset, err = intel.LoadSnapshot()
		if err != nil {
			return nil, fmt.Errorf("no roster available, run 'import-roster' first: %w", err)
		}
	}

	if err := intel.Enrich(dataset); err != nil {
		return nil, err
	}

	models, err := intel.LoadModelSet(intel.Config.ModelsPath)
	if err != nil {
		return nil, err
	}

	return intel.NewEngine(dataset, models)
}
