package applog

// Package applog bootstraps the process-wide zap logger for both the client
// binary and the dev API server. Call sites log through zap.S().
