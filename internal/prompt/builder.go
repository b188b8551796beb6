// Package prompt turns a task instruction and a document body into the
// message sequence sent to the model.
package prompt

import (
	"github.com/BerylCAtieno/document-analyzer-api/internal/models"
)

const (
	// MaxDocumentChars caps the document body of every prompt.
	MaxDocumentChars = 15000

	SystemInstruction = "You are an expert document analyst. Provide accurate, concise responses."

	RoleSystem = "system"
	RoleUser   = "user"
)

type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Build returns the system instruction followed by a user message holding the
// task instruction and the first MaxDocumentChars characters of text.
func Build(instruction, text string) []Message {
	body, _ := models.TruncateRunes(text, MaxDocumentChars)
	return []Message{
		{Role: RoleSystem, Content: SystemInstruction},
		{Role: RoleUser, Content: instruction + "\n\nDocument Text:\n" + body},
	}
}

// CombineDocuments joins two bodies for comparison. Truncation happens later,
// on the combined body.
func CombineDocuments(first, second string) string {
	return "DOC1:\n" + first + "\n\nDOC2:\n" + second
}
