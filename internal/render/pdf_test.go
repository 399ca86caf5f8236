package render

import (
	"bytes"
	"testing"
	"time"

	"github.com/JonaxDevelopment/discord-transcript-next/internal/normalize"
)

func TestPDFProducesDocument(t *testing.T) {
	msg := msgAt("1", time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC))
	msg.Content = "**bold** and ||hidden||"
	msg.Attachments = []normalize.Attachment{{Name: "pic.png", URL: "https://cdn.example/pic.png"}}

	out, err := PDF(testData(msg), testOptions())
	if err != nil {
		t.Fatalf("PDF failed: %v", err)
	}
	if !bytes.HasPrefix(out, []byte("%PDF")) {
		t.Error("Expected a PDF header")
	}
	if len(out) < 500 {
		t.Errorf("Expected a non-trivial document, got %d bytes", len(out))
	}
}

func TestPDFEmptyTranscript(t *testing.T) {
	out, err := PDF(testData(), testOptions())
	if err != nil {
		t.Fatalf("PDF failed: %v", err)
	}
	if !bytes.HasPrefix(out, []byte("%PDF")) {
		t.Error("Expected a PDF header")
	}
}
