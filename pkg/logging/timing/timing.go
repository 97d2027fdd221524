package timing

import (
	"time"

	"github.com/sirupsen/logrus"
)

// Timeit returns a func that logs the time elapsed since Timeit was called.
func Timeit(logger logrus.FieldLogger, name string) func() {
	start := time.Now()
	return func() {
		logger.WithField("elapsed", time.Since(start).String()).Debugf("Timeit: %s execution time", name)
	}
}
