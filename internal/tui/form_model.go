package tui

import (
	"context"
	"strconv"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rshade/energylabel/internal/ingest"
	"github.com/rshade/energylabel/internal/rating"
)

// FormState represents the current state of the form.
type FormState int

const (
	// FormStateEditing indicates the user is filling in the form.
	FormStateEditing FormState = iota
	// FormStateExporting indicates a report export is in progress.
	FormStateExporting
	// FormStateQuitting indicates the application is exiting.
	FormStateQuitting
)

// Field indexes in display order.
const (
	FieldSurface = iota
	FieldYear
	FieldWindows
	FieldHVAC
	FieldLighting
	FieldClimate
	fieldCount
)

const (
	surfaceCharLimit = 12
	yearCharLimit    = 4
	inputWidth       = 14
)

// ExportFunc writes a report for an assessed profile and returns where it
// was written.
type ExportFunc func(ctx context.Context, profile rating.BuildingProfile, assessment rating.EnergyAssessment) (string, error)

// exportDoneMsg is sent when an export finishes.
type exportDoneMsg struct {
	path string
	err  error
}

// option is one choice of an enum selector.
type option struct {
	token string
	label string
}

// selector cycles through a fixed list of options.
type selector struct {
	options []option
	index   int
}

func (s *selector) next() { s.index = (s.index + 1) % len(s.options) }
func (s *selector) prev() { s.index = (s.index + len(s.options) - 1) % len(s.options) }

func (s *selector) value() option { return s.options[s.index] }

func (s *selector) selectToken(token string) {
	for i, o := range s.options {
		if o.token == token {
			s.index = i
			return
		}
	}
}

type labeled interface {
	String() string
	Label() string
}

func newSelector[T labeled](values []T) selector {
	opts := make([]option, 0, len(values))
	for _, v := range values {
		opts = append(opts, option{token: v.String(), label: v.Label()})
	}
	return selector{options: opts}
}

// FormModel is the Bubble Tea model for the interactive assessment form.
type FormModel struct {
	ctx context.Context

	surface textinput.Model
	year    textinput.Model
	enums   [fieldCount]selector

	focused int
	state   FormState

	breakdown *rating.Breakdown
	profile   rating.BuildingProfile
	err       error
	status    string

	exportFn ExportFunc

	width int
}

// NewFormModel creates a form pre-filled from initial. A zero surface or
// year leaves the field empty.
func NewFormModel(ctx context.Context, initial ingest.ProfileInput, exportFn ExportFunc) *FormModel {
	m := &FormModel{
		ctx:      ctx,
		surface:  newNumberInput("m²", surfaceCharLimit),
		year:     newNumberInput("year", yearCharLimit),
		exportFn: exportFn,
		state:    FormStateEditing,
	}

	m.enums[FieldWindows] = newSelector(rating.WindowTypes())
	m.enums[FieldHVAC] = newSelector(rating.HVACTypes())
	m.enums[FieldLighting] = newSelector(rating.LightingTypes())
	m.enums[FieldClimate] = newSelector(rating.ClimateZones())

	if initial.SurfaceM2 != 0 {
		m.surface.SetValue(strconv.FormatFloat(initial.SurfaceM2, 'f', -1, 64))
	}
	if initial.ConstructionYear != 0 {
		m.year.SetValue(strconv.Itoa(initial.ConstructionYear))
	}
	m.enums[FieldWindows].selectToken(canonicalToken(initial.Windows, rating.ParseWindowType))
	m.enums[FieldHVAC].selectToken(canonicalToken(initial.HVAC, rating.ParseHVACType))
	m.enums[FieldLighting].selectToken(canonicalToken(initial.Lighting, rating.ParseLightingType))
	m.enums[FieldClimate].selectToken(canonicalToken(initial.Climate, rating.ParseClimateZone))

	m.surface.Focus()
	return m
}

func newNumberInput(placeholder string, limit int) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = limit
	ti.Width = inputWidth
	ti.Prompt = ""
	return ti
}

// canonicalToken maps aliases such as "HeatPump" to their token form.
func canonicalToken[T interface{ String() string }](raw string, parse func(string) (T, error)) string {
	v, err := parse(raw)
	if err != nil {
		return ""
	}
	return v.String()
}

// Init initializes the model.
func (m *FormModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages and updates the model state.
func (m *FormModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case exportDoneMsg:
		m.state = FormStateEditing
		if msg.err != nil {
			m.err = msg.err
			m.status = ""
			return m, nil
		}
		m.status = "Report written to " + msg.path
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)
	}

	return m, nil
}

// handleKeyMsg processes keyboard input.
func (m *FormModel) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.state == FormStateExporting {
		if msg.String() == "ctrl+c" {
			m.state = FormStateQuitting
			return m, tea.Quit
		}
		return m, nil
	}

	switch msg.String() {
	case "ctrl+c", "esc":
		m.state = FormStateQuitting
		return m, tea.Quit

	case "tab", "down":
		return m, m.focus((m.focused + 1) % fieldCount)

	case "shift+tab", "up":
		return m, m.focus((m.focused + fieldCount - 1) % fieldCount)

	case "left":
		if m.isSelector(m.focused) {
			m.enums[m.focused].prev()
			return m, nil
		}

	case "right":
		if m.isSelector(m.focused) {
			m.enums[m.focused].next()
			return m, nil
		}

	case "enter", "ctrl+s":
		m.Calculate()
		return m, nil

	case "ctrl+e":
		return m, m.export()
	}

	return m.updateFocusedInput(msg)
}

func (m *FormModel) updateFocusedInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.focused {
	case FieldSurface:
		m.surface, cmd = m.surface.Update(msg)
	case FieldYear:
		m.year, cmd = m.year.Update(msg)
	}
	return m, cmd
}

func (m *FormModel) isSelector(field int) bool {
	return field >= FieldWindows && field < fieldCount
}

func (m *FormModel) focus(field int) tea.Cmd {
	m.focused = field
	m.surface.Blur()
	m.year.Blur()
	switch field {
	case FieldSurface:
		return m.surface.Focus()
	case FieldYear:
		return m.year.Focus()
	}
	return nil
}

// Input returns the current form contents as a ProfileInput.
func (m *FormModel) Input() (ingest.ProfileInput, error) {
	return ingest.FromFields(
		m.surface.Value(),
		m.year.Value(),
		m.enums[FieldWindows].value().token,
		m.enums[FieldHVAC].value().token,
		m.enums[FieldLighting].value().token,
		m.enums[FieldClimate].value().token,
	)
}

// Calculate validates the form and estimates consumption. A failure clears
// the previous result and is shown in the view.
func (m *FormModel) Calculate() {
	m.status = ""
	m.breakdown = nil

	in, err := m.Input()
	if err != nil {
		m.err = err
		return
	}
	profile, err := in.Profile()
	if err != nil {
		m.err = err
		return
	}
	breakdown, err := rating.Explain(profile)
	if err != nil {
		m.err = err
		return
	}

	m.err = nil
	m.profile = profile
	m.breakdown = &breakdown
}

// export calculates if needed and starts the export command.
func (m *FormModel) export() tea.Cmd {
	if m.exportFn == nil {
		m.status = "Report export is not available"
		return nil
	}

	m.Calculate()
	if m.breakdown == nil {
		return nil
	}

	m.state = FormStateExporting
	ctx := m.ctx
	exportFn := m.exportFn
	profile := m.profile
	assessment := m.breakdown.Assessment

	return func() tea.Msg {
		path, err := exportFn(ctx, profile, assessment)
		return exportDoneMsg{path: path, err: err}
	}
}

// Result returns the last successful calculation.
func (m *FormModel) Result() (rating.BuildingProfile, rating.Breakdown, bool) {
	if m.breakdown == nil {
		return rating.BuildingProfile{}, rating.Breakdown{}, false
	}
	return m.profile, *m.breakdown, true
}

// Err returns the last validation or export error.
func (m *FormModel) Err() error { return m.err }

// Status returns the last status message.
func (m *FormModel) Status() string { return m.status }

// State returns the current form state.
func (m *FormModel) State() FormState { return m.state }

// Focused returns the index of the focused field.
func (m *FormModel) Focused() int { return m.focused }
