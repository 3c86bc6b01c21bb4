package dto

import (
	"steeldesk/internal/core/id"
	"steeldesk/internal/domain/ingest"
)

// UploadResultResponse is what a spreadsheet upload returns: the
// accepted draft lines plus the per-row rejection report. Nothing is
// persisted by an upload.
type UploadResultResponse struct {
	Lines     []LineResponse    `json:"lines"`
	NotFound  []string          `json:"notFound,omitempty"`
	RowErrors []ingest.RowError `json:"rowErrors,omitempty"`

	AcceptedCount int `json:"acceptedCount"`
	RejectedCount int `json:"rejectedCount"`
}

// FromIngestResult creates UploadResultResponse.
func FromIngestResult(res ingest.Result) UploadResultResponse {
	lines := make([]LineResponse, len(res.Lines))
	for i, li := range res.Lines {
		lines[i] = fromLineItem(id.Nil(), i+1, li)
	}

	return UploadResultResponse{
		Lines:         lines,
		NotFound:      res.NotFound,
		RowErrors:     res.RowErrors,
		AcceptedCount: len(res.Lines),
		RejectedCount: len(res.RowErrors),
	}
}

// TemplatesResponse lists the upload header templates per category.
type TemplatesResponse struct {
	Side      string              `json:"side"`
	Templates map[string][]string `json:"templates"`
}
