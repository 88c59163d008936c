// Package config loads the service configuration.
//
// # Configuration Sources
//
// Configuration is assembled from the following sources, later ones taking
// precedence:
//
//	1. Default values (Default)
//	2. A YAML file: config.yaml or configs/config.yaml
//	3. A .env file in the working directory
//	4. Environment variables
//
// # Environment Variables
//
// All variables use the FEEDBACK_ prefix followed by the section name:
//
//	FEEDBACK_SERVER_PORT=8080
//	FEEDBACK_SERVER_MAX_UPLOAD_BYTES=10485760
//	FEEDBACK_LOGGING_LEVEL=debug
//	FEEDBACK_TELEMETRY_TRACE_EXPORTER=stdout
//
// # Validation
//
// The merged configuration is checked with validator struct tags; Load
// fails on the first invalid value instead of silently correcting it.
package config
