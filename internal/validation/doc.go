// Package validation checks uploaded spreadsheets before they are parsed.
//
// Uploads are described by an Upload value and validated with struct tags
// through go-playground/validator. Failures are returned as API errors that
// the central error handler renders as problem details.
package validation
