package dht

import logger "github.com/d2r2/go-logger"

const logPackage = "dht"

var lg = logger.NewPackageLogger(logPackage, logger.InfoLevel)

// SetDebug turns pulse and frame dumps on or off.
func SetDebug(on bool) error {
	level := logger.InfoLevel
	if on {
		level = logger.DebugLevel
	}
	return logger.ChangePackageLogLevel(logPackage, level)
}
