// Package logger builds the zap logger used by the server and the CLI.
//
// Level and Format come from the LOG_LEVEL and LOG_FORMAT settings. Request
// handlers derive a per-request logger with WithRayID:
//
//	l := logger.WithRayID(log, c)
//	l.Error("Detection failed", zap.Error(err))
package logger
