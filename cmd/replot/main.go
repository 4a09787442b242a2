// Command replot redraws the price charts from a saved snapshot CSV without
// scraping, useful to check parsing and chart output.
package main

import (
	"os"

	"github.com/kabils0918/CryptoTracker/config"
	"github.com/kabils0918/CryptoTracker/snapshot"
	"github.com/kabils0918/CryptoTracker/tracker"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

func main() {
	cfg := config.Parse()

	if err := tracker.Replot(cfg); err != nil {
		var notFound *snapshot.NotFoundError
		if errors.As(err, &notFound) {
			logrus.Errorf("No CSV found. Checked: %v", notFound.Checked)
			logrus.Error("Make sure the tracker produced one of them first")
		} else {
			logrus.WithError(err).Error("Replot failed")
		}
		os.Exit(1)
	}
}
