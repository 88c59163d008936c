// Package services implements the business logic layer of the feedback
// analyzer. It sits between the HTTP handlers and the spreadsheet and
// classification packages.
//
// # Available Services
//
//	- AnalysisService: parses an upload and classifies every column
//	- HealthService: liveness, readiness and version information
//
// # Error Handling
//
// Services return typed application errors from internal/errors so the
// central error handler can turn them into problem details:
//
//	- PARSING errors for workbooks that cannot be read
//	- VALIDATION errors for uploads in an unsupported format
//	- context errors when the request is cancelled or times out
//
// Every operation takes a context.Context and observes cancellation.
package services
