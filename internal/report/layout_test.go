package report

import (
	"strings"
	"testing"

	"charm.land/lipgloss/v2"
)

func TestDetailBuilder_Row(t *testing.T) {
	db := newDetailBuilder(10, lipgloss.NewStyle())
	db.Row("User", "alice")
	db.Row("Empty", "")

	got := db.String()
	if !strings.Contains(got, "User") || !strings.Contains(got, "alice") {
		t.Errorf("Row output = %q, want label and value", got)
	}
	if strings.Contains(got, "Empty") {
		t.Error("Row should skip empty values")
	}
}

func TestDetailBuilder_Section(t *testing.T) {
	db := newDetailBuilder(10, lipgloss.NewStyle())
	db.Section("Document 1")

	got := db.String()
	if !strings.Contains(got, "── Document 1") {
		t.Error("Section should contain heading")
	}
	if !strings.Contains(got, "───") {
		t.Error("Section should contain padding dashes")
	}
}

func TestDetailBuilder_Block(t *testing.T) {
	db := newDetailBuilder(10, lipgloss.NewStyle())
	db.Block("line one\nline two")
	db.Row("A", "1")

	got := db.String()
	if !strings.HasPrefix(got, "line one\nline two\n") {
		t.Errorf("Block output = %q", got)
	}
}
