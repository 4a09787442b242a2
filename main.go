package main

import (
	"context"
	"os"

	"github.com/kabils0918/CryptoTracker/config"
	"github.com/kabils0918/CryptoTracker/source"
	"github.com/kabils0918/CryptoTracker/tracker"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

func main() {
	cfg := config.Parse()

	if cfg.ListSources {
		config.ListSourcesAndExit(source.GetAllNames())
	}

	err := tracker.Run(context.Background(), cfg)
	if errors.Is(err, tracker.ErrNoData) {
		logrus.Error("No data scraped.")
		os.Exit(1)
	}
	if err != nil {
		logrus.WithError(err).Error("Tracker failed")
		os.Exit(1)
	}
	logrus.Info("Script finished.")
}
