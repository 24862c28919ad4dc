package store

import "time"

// Config aggregates per backend configuration
type Config struct {
	AppName string

	PG PGConfig
}

// PGConfig configures postgres connectivity and tracing
type PGConfig struct {
	Enabled     bool
	URL         string
	MaxConns    int32
	LogSQL      bool
	SlowQueryMs int

	// ConnectAttempts bounds the boot ping loop, default 20
	ConnectAttempts int
	// PingTimeout bounds each boot ping, default 3s
	PingTimeout time.Duration
}
