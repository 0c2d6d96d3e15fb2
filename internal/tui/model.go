// Package tui is the interactive terminal front end. It renders the run
// states driven by the pipeline supervisor and collects the operator inputs:
// recipient details, the mode toggles, and the activity file selection.
package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"garmail/internal/domain"
	"garmail/internal/pipeline"
)

// Phase represents the current state of the TUI
type Phase int

const (
	PhaseForm Phase = iota
	PhaseRunning
	PhasePicking
	PhaseDone
	PhaseError
)

// focus positions on the form, in tab order
const (
	focusName = iota
	focusEmail
	focusUnmount
	focusArchive
	focusCount
)

type tickMsg time.Time

// autoStartEvery is how many ticks pass between probes for an already
// mounted watch while the form sits in archive mode.
const autoStartEvery = 10

// Config for the TUI
type Config struct {
	Supervisor *pipeline.Supervisor
	Archive    bool
	Unmount    bool
}

// Model is the main TUI model
type Model struct {
	config Config
	Phase  Phase

	nameInput  textinput.Model
	emailInput textinput.Model
	focus      int
	archive    bool
	unmount    bool
	formErr    string

	spinner       spinner.Model
	progress      progress.Model
	stepText      string
	percent       int
	indeterminate bool
	countdown     int
	showCountdown bool
	runStart      time.Time
	elapsed       time.Duration
	ticks         int

	ask      *pipeline.AskSelection
	cursor   int
	selected map[int]bool

	doneMessage string
	destDir     string
	errMessage  string

	Quitting bool
	width    int
	height   int
}

// NewModel creates a new TUI model
func NewModel(cfg Config) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = spinnerStyle

	p := progress.New(
		progress.WithDefaultGradient(),
		progress.WithWidth(50),
		progress.WithoutPercentage(),
	)

	name := textinput.New()
	name.Placeholder = "Jane Doe"
	name.CharLimit = 64
	name.Width = 32
	name.Focus()

	email := textinput.New()
	email.Placeholder = "jane@example.com"
	email.CharLimit = 128
	email.Width = 32

	return Model{
		config:     cfg,
		Phase:      PhaseForm,
		nameInput:  name,
		emailInput: email,
		archive:    cfg.Archive,
		unmount:    cfg.Unmount,
		spinner:    s,
		progress:   p,
		width:      80,
		height:     24,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, tickCmd())
}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Millisecond*100, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.progress.Width = min(msg.Width-20, 60)
		return m, nil

	case tea.KeyMsg:
		return m.updateKeys(msg)

	case tickMsg:
		return m.updateTick()

	case spinner.TickMsg:
		if m.Phase == PhaseRunning {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}

	case progress.FrameMsg:
		progressModel, cmd := m.progress.Update(msg)
		m.progress = progressModel.(progress.Model)
		return m, cmd
	}

	return m, nil
}

// updateTick drains pending supervisor events, advances the elapsed clock
// and probes for an already mounted watch in archive mode.
func (m Model) updateTick() (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	for {
		var ev pipeline.Event
		select {
		case ev = <-m.config.Supervisor.Events():
		default:
			ev = nil
		}
		if ev == nil {
			break
		}
		var cmd tea.Cmd
		m, cmd = m.applyEvent(ev)
		if cmd != nil {
			cmds = append(cmds, cmd)
		}
	}

	if m.Phase == PhaseRunning {
		m.elapsed = time.Since(m.runStart)
		if m.percent > 0 {
			cmds = append(cmds, m.progress.SetPercent(float64(m.percent)/100))
		}
		cmds = append(cmds, m.spinner.Tick)
	}

	m.ticks++
	if m.Phase == PhaseForm && m.archive && m.ticks%autoStartEvery == 0 {
		if m.config.Supervisor.AutoStart(m.params()) {
			m = m.enterRunning()
		}
	}

	cmds = append(cmds, tickCmd())
	return m, tea.Batch(cmds...)
}

func (m Model) applyEvent(ev pipeline.Event) (Model, tea.Cmd) {
	switch e := ev.(type) {
	case pipeline.Step:
		m.stepText = e.Text
		m.indeterminate = e.Indeterminate
		if e.Percent > 0 {
			m.percent = e.Percent
		}

	case pipeline.Countdown:
		m.showCountdown = !e.Hidden
		m.countdown = e.SecondsLeft

	case pipeline.AskSelection:
		ask := e
		m.ask = &ask
		m.Phase = PhasePicking
		m.cursor = 0
		m.selected = make(map[int]bool)
		if e.Preselect {
			for i := range e.Candidates {
				m.selected[i] = true
			}
		}

	case pipeline.Done:
		m.Phase = PhaseDone
		m.doneMessage = e.Message
		m.destDir = e.DestDir
		m.percent = 100
		// The next watch usually goes to a different recipient.
		m.nameInput.SetValue("")
		m.emailInput.SetValue("")
		return m, ringBell()

	case pipeline.Error:
		m.Phase = PhaseError
		m.errMessage = e.Message
		return m, ringBell()
	}
	return m, nil
}

// ringBell sounds the terminal bell on terminal states so an operator
// across the workshop hears the run finish.
func ringBell() tea.Cmd {
	return tea.Printf("\a")
}

func (m Model) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		m.config.Supervisor.Cancel()
		m.Quitting = true
		return m, tea.Quit
	}

	switch m.Phase {
	case PhaseForm:
		return m.updateForm(msg)
	case PhaseRunning:
		if msg.String() == "esc" {
			m.config.Supervisor.Cancel()
		}
	case PhasePicking:
		return m.updatePicker(msg)
	case PhaseDone, PhaseError:
		switch msg.String() {
		case "q":
			m.Quitting = true
			return m, tea.Quit
		case "r":
			if m.Phase == PhaseError {
				return m.startRun()
			}
		case "enter":
			m = m.resetForm()
			return m, nil
		}
	}
	return m, nil
}

func (m Model) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "tab", "down":
		return m.setFocus((m.focus + 1) % focusCount), nil
	case "shift+tab", "up":
		return m.setFocus((m.focus + focusCount - 1) % focusCount), nil
	case " ", "space":
		switch m.focus {
		case focusUnmount:
			m.unmount = !m.unmount
			return m, nil
		case focusArchive:
			m.archive = !m.archive
			return m, nil
		}
	case "enter":
		return m.startRun()
	}

	var cmd tea.Cmd
	switch m.focus {
	case focusName:
		m.nameInput, cmd = m.nameInput.Update(msg)
	case focusEmail:
		m.emailInput, cmd = m.emailInput.Update(msg)
	}
	return m, cmd
}

func (m Model) setFocus(focus int) Model {
	m.focus = focus
	m.nameInput.Blur()
	m.emailInput.Blur()
	switch focus {
	case focusName:
		m.nameInput.Focus()
	case focusEmail:
		m.emailInput.Focus()
	}
	return m
}

func (m Model) updatePicker(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.ask == nil {
		return m, nil
	}
	switch msg.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.ask.Candidates)-1 {
			m.cursor++
		}
	case " ", "space":
		m.selected[m.cursor] = !m.selected[m.cursor]
	case "a":
		for i := range m.ask.Candidates {
			m.selected[i] = true
		}
	case "esc":
		m.ask.Reply <- nil
		m.ask = nil
		m.Phase = PhaseRunning
	case "enter":
		chosen := make([]domain.ActivityFile, 0, len(m.selected))
		for i, f := range m.ask.Candidates {
			if m.selected[i] {
				chosen = append(chosen, f)
			}
		}
		m.ask.Reply <- chosen
		m.ask = nil
		m.Phase = PhaseRunning
	}
	return m, nil
}

func (m Model) params() pipeline.Params {
	mode := domain.ModeSend
	if m.archive {
		mode = domain.ModeArchive
	}
	return pipeline.Params{
		Mode:    mode,
		Name:    strings.TrimSpace(m.nameInput.Value()),
		Email:   strings.TrimSpace(m.emailInput.Value()),
		Unmount: m.unmount,
	}
}

func (m Model) startRun() (tea.Model, tea.Cmd) {
	p := m.params()
	if p.Mode == domain.ModeSend {
		if p.Name == "" || p.Email == "" {
			m.formErr = "Name and email are required to send."
			m.Phase = PhaseForm
			return m, nil
		}
		if !strings.Contains(p.Email, "@") {
			m.formErr = "That email address does not look right."
			m.Phase = PhaseForm
			return m, nil
		}
	}
	if err := m.config.Supervisor.Start(p); err != nil {
		m.formErr = err.Error()
		return m, nil
	}
	m.formErr = ""
	return m.enterRunning(), nil
}

func (m Model) enterRunning() Model {
	m.Phase = PhaseRunning
	m.runStart = time.Now()
	m.elapsed = 0
	m.percent = 0
	m.stepText = "Starting..."
	m.showCountdown = false
	return m
}

func (m Model) resetForm() Model {
	m.Phase = PhaseForm
	m.stepText = ""
	m.percent = 0
	m.doneMessage = ""
	m.errMessage = ""
	m.showCountdown = false
	return m.setFocus(focusName)
}

func (m Model) View() string {
	if m.Quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n\n")

	switch m.Phase {
	case PhaseForm:
		b.WriteString(m.renderForm())
	case PhaseRunning:
		b.WriteString(m.renderRunning())
	case PhasePicking:
		b.WriteString(m.renderPicker())
	case PhaseDone:
		b.WriteString(m.renderDone())
	case PhaseError:
		b.WriteString(m.renderError())
	}

	b.WriteString("\n")
	b.WriteString(m.renderHelp())
	return b.String()
}

func (m Model) renderHeader() string {
	title := titleStyle.Render(iconWatch + " Garmin Mailer")
	subtitle := subtitleStyle.Render("Activity files off the watch, into a mailbox")
	return lipgloss.JoinVertical(lipgloss.Left, title, subtitle)
}

func checkbox(on bool) string {
	if on {
		return checkedStyle.Render("[x]")
	}
	return "[ ]"
}

func (m Model) renderForm() string {
	var b strings.Builder
	b.WriteString(sectionStyle.Render("New Run"))
	b.WriteString("\n\n")

	cursor := func(focus int) string {
		if m.focus == focus {
			return cursorStyle.Render("> ")
		}
		return "  "
	}

	b.WriteString(fmt.Sprintf("%s%s %s\n", cursor(focusName), labelStyle.Render("Name:"), m.nameInput.View()))
	b.WriteString(fmt.Sprintf("%s%s %s\n\n", cursor(focusEmail), labelStyle.Render("Email:"), m.emailInput.View()))
	b.WriteString(fmt.Sprintf("%s%s %s\n", cursor(focusUnmount), labelStyle.Render("Unmount after:"), checkbox(m.unmount)))
	b.WriteString(fmt.Sprintf("%s%s %s\n", cursor(focusArchive), labelStyle.Render("Archive only:"), checkbox(m.archive)))

	if m.archive {
		b.WriteString("\n")
		b.WriteString(dateStyle.Render("  Waiting for a watch, runs start on their own."))
		b.WriteString("\n")
	}
	if m.formErr != "" {
		b.WriteString("\n")
		b.WriteString(warningStyle.Render("  " + m.formErr))
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) renderRunning() string {
	var b strings.Builder
	b.WriteString(sectionStyle.Render("Run in Progress"))
	b.WriteString("\n\n")

	b.WriteString(fmt.Sprintf("  %s %s\n", m.spinner.View(), m.stepText))
	if m.showCountdown {
		b.WriteString(fmt.Sprintf("\n  %s\n", countdownStyle.Render(fmt.Sprintf("%ds left", m.countdown))))
	}
	if !m.indeterminate && m.percent > 0 {
		b.WriteString(fmt.Sprintf("\n  %s\n", m.progress.ViewAs(float64(m.percent)/100)))
	}
	b.WriteString(fmt.Sprintf("\n  %s\n", dateStyle.Render(fmt.Sprintf("elapsed %s", m.elapsed.Round(time.Second)))))
	return b.String()
}

func (m Model) renderPicker() string {
	var b strings.Builder
	b.WriteString(sectionStyle.Render("Select Activity Files"))
	b.WriteString("\n\n")

	for i, f := range m.ask.Candidates {
		cursor := "  "
		if i == m.cursor {
			cursor = cursorStyle.Render("> ")
		}
		mark := iconEmpty
		if m.selected[i] {
			mark = checkedStyle.Render(iconChecked)
		}
		b.WriteString(fmt.Sprintf("%s%s %s %s  %s  %s\n",
			cursor, mark, iconFile,
			fileNameStyle.Render(fmt.Sprintf("%-24s", f.Name)),
			dateStyle.Render(f.ModTime.Format("2006-01-02 15:04")),
			dateStyle.Render(domain.FormatSize(f.Size)),
		))
	}
	return b.String()
}

func (m Model) renderDone() string {
	var b strings.Builder
	b.WriteString(sectionStyle.Render("Run Complete"))
	b.WriteString("\n\n")
	b.WriteString(fmt.Sprintf("  %s %s\n", successStyle.Render(iconSuccess), successStyle.Render(m.doneMessage)))
	if m.destDir != "" {
		b.WriteString(fmt.Sprintf("\n  %s %s\n", iconArrow, dateStyle.Render(m.destDir)))
	}
	return b.String()
}

func (m Model) renderError() string {
	icon := errorStyle.Render(iconError)
	msg := errorStyle.Render(m.errMessage)
	return highlightBoxStyle.
		BorderForeground(errorColor).
		Render(fmt.Sprintf("%s %s", icon, msg))
}

func (m Model) renderHelp() string {
	var help string
	switch m.Phase {
	case PhaseForm:
		help = "Tab to move • Space to toggle • Enter to start • Ctrl+C to quit"
	case PhaseRunning:
		help = "Esc to cancel • Ctrl+C to quit"
	case PhasePicking:
		help = "↑ ↓ to move • Space to toggle • a all • Enter to confirm • Esc to abort"
	case PhaseDone:
		help = "Enter for the next watch • q to quit"
	case PhaseError:
		help = "r to retry • Enter for the form • q to quit"
	}
	return helpStyle.Render(help)
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
