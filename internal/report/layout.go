package report

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"
)

// detailBuilder accumulates the key-value rows and section headings of the
// text report.
type detailBuilder struct {
	b            strings.Builder
	labelStyle   lipgloss.Style
	sectionStyle lipgloss.Style
}

func newDetailBuilder(labelWidth int, sectionStyle lipgloss.Style) *detailBuilder {
	return &detailBuilder{
		labelStyle:   labelStyle.Width(labelWidth),
		sectionStyle: sectionStyle,
	}
}

// Row writes a labeled value. Empty values are skipped.
func (d *detailBuilder) Row(label, value string) {
	if value == "" {
		return
	}
	fmt.Fprintf(&d.b, "  %s %s\n", d.labelStyle.Render(label), value)
}

// Section writes a heading like "── title ──────".
func (d *detailBuilder) Section(title string) {
	pad := max(40-len(title), 4)
	heading := fmt.Sprintf("── %s %s", title, strings.Repeat("─", pad))
	d.b.WriteString(d.sectionStyle.Render(heading) + "\n")
}

// Block writes pre-rendered, possibly multi-line text followed by a newline.
func (d *detailBuilder) Block(s string) {
	d.b.WriteString(s)
	d.b.WriteString("\n")
}

func (d *detailBuilder) String() string {
	return d.b.String()
}
