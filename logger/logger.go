// Package logger wires the process-wide zap logger.
package logger

import "go.uber.org/zap"

// Init replaces zap's global logger. Development gets the console encoder,
// everything else JSON.
func Init(environment string) error {
	var (
		l   *zap.Logger
		err error
	)
	if environment == "development" {
		l, err = zap.NewDevelopment()
	} else {
		l, err = zap.NewProduction()
	}
	if err != nil {
		return err
	}

	zap.ReplaceGlobals(l)
	return nil
}
