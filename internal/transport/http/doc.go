// Package http implements the HTTP handlers of the feedback analyzer. Handlers
// stay thin: they read the multipart upload, delegate to the analysis service
// and format the result.
//
// # Routes
//
//	GET  /                  upload form
//	POST /analyze           results page
//	POST /api/analyze       JSON report, or CSV with ?format=csv
//	GET  /api/health        health, plus /live and /ready
//	GET  /api/version       build information
//
// # Error Handling
//
// Every failure is passed to the central ErrorHandler, which writes an
// RFC 7807 problem document:
//
//	report, err := h.service.Analyze(r.Context(), header.Filename, file)
//	if err != nil {
//	    h.errorHandler.HandleError(w, r, err)
//	    return
//	}
package http
