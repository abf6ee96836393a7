package config

import (
	"github.com/MonkyMars/gecho"
)

var logger *gecho.Logger

// InitializeLogger builds the process logger at the level configured for the environment.
func InitializeLogger() *gecho.Logger {
	logger = NewLogger(true)
	return logger
}

// NewLogger returns a logger at the configured level. Middleware loggers usually hide the caller.
func NewLogger(showCaller bool) *gecho.Logger {
	level := gecho.ParseLogLevel(GetLogLevel())
	return gecho.NewLogger(gecho.NewConfig(gecho.WithShowCaller(showCaller), gecho.WithLogLevel(level)))
}

func GetLogger() *gecho.Logger {
	if logger == nil {
		return InitializeLogger()
	}
	return logger
}
