// Package app wires the feedback analyzer together and manages its lifecycle.
//
// # Initialization Flow
//
//	1. Load configuration from .env, config.yaml and FEEDBACK_* variables
//	2. Initialize logging and OpenTelemetry
//	3. Parse the page templates
//	4. Create the analysis and health services
//	5. Build the chi router and middleware chain
//	6. Serve until SIGINT or SIGTERM, then shut down gracefully
//
// # Usage
//
//	application, err := app.NewApplication(web.Templates())
//	if err != nil {
//	    os.Exit(1)
//	}
//	if err := application.Run(); err != nil {
//	    os.Exit(1)
//	}
package app
