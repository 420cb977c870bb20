// Package logger configures the shared logrus instance.
package logger

import (
	"os"
	"strconv"

	"github.com/sirupsen/logrus"
)

// New returns a logger at info level, raised to debug when verbose is
// set or the DEBUG environment variable parses as true.
func New(verbose bool) *logrus.Logger {
	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	if dbg, err := strconv.ParseBool(os.Getenv("DEBUG")); err == nil && dbg {
		verbose = true
	}
	if verbose {
		log.SetLevel(logrus.DebugLevel)
	}
	return log
}
