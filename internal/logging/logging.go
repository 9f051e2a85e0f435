// Package logging builds the zap logger used at the CLI boundary.
package logging

import "go.uber.org/zap"

// New returns a production logger, or a development logger (human-readable,
// debug level enabled) when verbose is set.
func New(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
