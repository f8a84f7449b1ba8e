package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/rshade/energylabel/internal/rating"
)

// FormTitle is the heading of the form.
const FormTitle = "Energy Efficiency Calculator"

const labelWidth = 22

//nolint:gochecknoglobals // Immutable display labels indexed by field.
var fieldLabels = [fieldCount]string{
	FieldSurface:  "Surface area (m²)",
	FieldYear:     "Construction year",
	FieldWindows:  "Window type",
	FieldHVAC:     "HVAC system",
	FieldLighting: "Lighting",
	FieldClimate:  "Climate zone",
}

// View renders the current view.
func (m *FormModel) View() string {
	if m.state == FormStateQuitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(RenderFormHeader())
	b.WriteString("\n\n")

	for field := range fieldCount {
		b.WriteString(m.renderField(field))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	if m.breakdown != nil {
		b.WriteString(RenderAssessment(m.breakdown.Assessment))
		b.WriteString("\n\n")
	}
	if m.err != nil {
		b.WriteString(RenderFormError(m.err))
		b.WriteString("\n\n")
	}
	switch {
	case m.state == FormStateExporting:
		b.WriteString(lipgloss.NewStyle().Foreground(ColorHighlight).Render("Exporting report..."))
		b.WriteString("\n\n")
	case m.status != "":
		b.WriteString(lipgloss.NewStyle().Foreground(ColorOK).Render(m.status))
		b.WriteString("\n\n")
	}

	b.WriteString(RenderFormHelp())

	if m.width > 0 {
		return lipgloss.NewStyle().MaxWidth(m.width).Render(b.String())
	}
	return b.String()
}

func (m *FormModel) renderField(field int) string {
	focused := field == m.focused

	cursor := "  "
	labelStyle := lipgloss.NewStyle().Foreground(ColorLabel).Width(labelWidth)
	if focused {
		cursor = lipgloss.NewStyle().Foreground(ColorHighlight).Render("▸ ")
		labelStyle = labelStyle.Foreground(ColorHighlight).Bold(true)
	}

	var value string
	switch field {
	case FieldSurface:
		value = m.surface.View()
	case FieldYear:
		value = m.year.View()
	default:
		opt := m.enums[field].value()
		valueStyle := lipgloss.NewStyle().Foreground(ColorValue)
		if focused {
			value = valueStyle.Bold(true).Render("‹ " + opt.label + " ›")
		} else {
			value = valueStyle.Render("  " + opt.label)
		}
	}

	return cursor + labelStyle.Render(fieldLabels[field]) + value
}

// RenderFormHeader renders the boxed form title.
func RenderFormHeader() string {
	return lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorHeader).
		Border(lipgloss.NormalBorder()).
		BorderForeground(ColorBorder).
		Padding(0, 1).
		Render(FormTitle)
}

// RenderAssessment renders the estimated consumption and rating.
func RenderAssessment(a rating.EnergyAssessment) string {
	labelStyle := lipgloss.NewStyle().Foreground(ColorLabel)
	valueStyle := lipgloss.NewStyle().Foreground(ColorValue).Bold(true)

	consumption := fmt.Sprintf("%s %s",
		valueStyle.Render(rating.FormatConsumption(a.ConsumptionKwhPerM2Year)),
		rating.ConsumptionUnit)

	return labelStyle.Render("Estimated consumption: ") + consumption + "\n" +
		labelStyle.Render("Energy rating:         ") + RenderRatingBadge(a.Rating)
}

// RenderFormError renders validation failures one per line.
func RenderFormError(err error) string {
	style := lipgloss.NewStyle().Foreground(ColorError)

	var joined interface{ Unwrap() []error }
	if errors.As(err, &joined) {
		lines := make([]string, 0, len(joined.Unwrap()))
		for _, e := range joined.Unwrap() {
			lines = append(lines, style.Render("✗ "+e.Error()))
		}
		return strings.Join(lines, "\n")
	}
	return style.Render("✗ " + err.Error())
}

// RenderFormHelp renders the keyboard shortcut help text.
func RenderFormHelp() string {
	helpStyle := lipgloss.NewStyle().Foreground(ColorMuted)

	shortcuts := []string{
		"↑/↓/Tab: Navigate",
		"←/→: Change option",
		"Enter: Calculate",
		"Ctrl+E: Export report",
		"Esc: Quit",
	}

	return helpStyle.Render(strings.Join(shortcuts, " | "))
}
