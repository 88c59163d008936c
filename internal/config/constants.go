package config

import "time"

// Application info
const (
	AppName    = "feedback-pulse"
	AppVersion = "1.0.0"
)

// Server defaults
const (
	DefaultMaxUploadBytes int64 = 10 << 20
	DefaultRequestTimeout       = 25 * time.Second
	DefaultRateLimit            = 20 // requests per second
	DefaultBurstSize            = 40
)

// Telemetry defaults
const (
	DefaultSystemMetricsInterval = 15 * time.Second
)
