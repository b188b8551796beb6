package models

// PreviewLength is the number of characters of extracted text returned by an upload.
const PreviewLength = 5000

type UploadedDocument struct {
	Filename    string
	ContentType string
	Data        []byte
}

type ExtractedText struct {
	FullText         string
	TruncatedPreview string
	WasTruncated     bool
}

// NewExtractedText derives the preview fields from fullText. Lengths are counted in runes.
func NewExtractedText(fullText string) *ExtractedText {
	preview, truncated := TruncateRunes(fullText, PreviewLength)
	return &ExtractedText{
		FullText:         fullText,
		TruncatedPreview: preview,
		WasTruncated:     truncated,
	}
}

// TruncateRunes returns the first n runes of s and whether anything was cut.
func TruncateRunes(s string, n int) (string, bool) {
	if len(s) <= n {
		// fewer bytes than n means fewer runes too
		return s, false
	}
	count := 0
	for i := range s {
		if count == n {
			return s[:i], true
		}
		count++
	}
	return s, false
}

type UploadResponse struct {
	Filename  string `json:"filename"`
	Text      string `json:"text"`
	Truncated bool   `json:"truncated"`
}
