package testutil

import (
	"bytes"
	"mime/multipart"
	"testing"

	"github.com/xuri/excelize/v2"
)

// WorkbookBytes builds an in-memory .xlsx whose first sheet holds rows.
func WorkbookBytes(t *testing.T, rows [][]interface{}) []byte {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			t.Fatalf("cell name: %v", err)
		}
		r := row
		if err := f.SetSheetRow("Sheet1", cell, &r); err != nil {
			t.Fatalf("set row %d: %v", i+1, err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatalf("write workbook: %v", err)
	}
	return buf.Bytes()
}

// FeedbackRows is a small survey sheet: a title row, a header row with
// metadata and feedback questions, and four responses.
func FeedbackRows() [][]interface{} {
	return [][]interface{}{
		{"Tech Talk Feedback"},
		{"Timestamp", "Email", "Attendance", "Quality", "Session Feedback"},
		{"2024-03-01 10:00:00", "a@example.com", "yes", "Good", "The session was very informative and helpful"},
		{"2024-03-01 10:05:00", "b@example.com", "yes", "Excellent", "It was boring and confusing at times"},
		{"2024-03-01 10:09:00", "c@example.com", "no", "Good", "Great speaker with clear examples"},
		{"2024-03-01 10:12:00", "d@example.com", "yes", "Fair", "Would attend again next year"},
	}
}

// MultipartBody encodes a single file field as multipart/form-data and
// returns the body with its content type.
func MultipartBody(t *testing.T, field, filename string, content []byte) (*bytes.Buffer, string) {
	t.Helper()

	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	part, err := w.CreateFormFile(field, filename)
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := part.Write(content); err != nil {
		t.Fatalf("write form file: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close multipart writer: %v", err)
	}
	return body, w.FormDataContentType()
}
