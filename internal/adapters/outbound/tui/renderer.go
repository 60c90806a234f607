package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/openkraft/archfit/internal/domain"
)

// ── warm palette ──
var (
	accent    = lipgloss.Color("#D97706") // amber
	fg        = lipgloss.Color("#E8E6E3") // warm light gray
	dim       = lipgloss.Color("#6B7280") // muted gray
	faint     = lipgloss.Color("#3F3F46") // very dim
	success   = lipgloss.Color("#22C55E") // green
	danger    = lipgloss.Color("#EF4444") // red
	warning   = lipgloss.Color("#F59E0B") // amber-yellow
	skipColor = lipgloss.Color("#4B5563") // dark gray
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(accent)

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accent).
			Padding(0, 2)

	dimStyle      = lipgloss.NewStyle().Foreground(dim)
	faintStyle    = lipgloss.NewStyle().Foreground(faint)
	passStyle     = lipgloss.NewStyle().Foreground(success)
	failStyle     = lipgloss.NewStyle().Foreground(danger)
	warnStyle     = lipgloss.NewStyle().Foreground(warning)
	skipStyle     = lipgloss.NewStyle().Foreground(skipColor)
	nameStyle     = lipgloss.NewStyle().Bold(true).Foreground(fg)
	mandatoryTag  = dimStyle.Render("mandatory")
	advisoryTag   = faintStyle.Render("advisory")
	separatorLine = faintStyle.Render(strings.Repeat("─", 64))
)

// Glyph returns the status marker printed before every result line.
func Glyph(s domain.Status) string {
	switch s {
	case domain.StatusPass:
		return "✅"
	case domain.StatusFail:
		return "❌"
	case domain.StatusWarn:
		return "⚠️"
	default:
		return "⏭️"
	}
}

func statusStyle(s domain.Status) lipgloss.Style {
	switch s {
	case domain.StatusPass:
		return passStyle
	case domain.StatusFail:
		return failStyle
	case domain.StatusWarn:
		return warnStyle
	default:
		return skipStyle
	}
}

// RenderReport renders a full run: a header box, one block per outcome and
// the one-line summary last.
func RenderReport(report *domain.Report) string {
	var b strings.Builder

	title := headerStyle.Render("archfit")
	subtitle := dimStyle.Render("architectural fitness functions")
	if report.CommitHash != "" {
		subtitle += dimStyle.Render("  @ " + shortHash(report.CommitHash))
	}
	b.WriteString(boxStyle.Render(title + "  " + subtitle))
	b.WriteString("\n\n")

	for _, o := range report.Outcomes {
		b.WriteString(RenderOutcome(o))
	}

	b.WriteString("\n  " + separatorLine + "\n")
	fmt.Fprintf(&b, "  %s %s\n", summaryGlyph(report), summaryStyle(report).Render(report.Summary()))
	return b.String()
}

// RenderOutcome renders one check: its headline, then each detail line.
func RenderOutcome(o domain.CheckOutcome) string {
	var b strings.Builder

	tag := advisoryTag
	if o.Mandatory {
		tag = mandatoryTag
	}
	fmt.Fprintf(&b, "  %s %s %s  %s\n",
		Glyph(o.Status),
		nameStyle.Render(padRight(o.Name, 11)),
		statusStyle(o.Status).Render(headline(o.Message)),
		tag,
	)

	for _, d := range o.Details {
		if d.Message == headline(o.Message) {
			continue
		}
		fmt.Fprintf(&b, "      %s %s\n", Glyph(d.Status), statusStyle(d.Status).Render(d.Message))
	}
	return b.String()
}

func summaryGlyph(r *domain.Report) string {
	if r.Passed() {
		return Glyph(domain.StatusPass)
	}
	return Glyph(domain.StatusFail)
}

func summaryStyle(r *domain.Report) lipgloss.Style {
	if r.Passed() {
		return passStyle.Bold(true)
	}
	return failStyle.Bold(true)
}

// headline is the first line of a possibly itemized message.
func headline(msg string) string {
	if i := strings.IndexByte(msg, '\n'); i >= 0 {
		return strings.TrimSuffix(msg[:i], ":")
	}
	return msg
}

func shortHash(h string) string {
	if len(h) > 7 {
		return h[:7]
	}
	return h
}

func padRight(s string, n int) string {
	if len(s) >= n {
		return s
	}
	return s + strings.Repeat(" ", n-len(s))
}
