// Package tui is the terminal surface of the client: a quantity field, the
// adjustment controls, a trigger with a busy indicator, and the pack rows.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/eugenenazirov/package-shark/internal/fetch"
	"github.com/eugenenazirov/package-shark/internal/notify"
	"github.com/eugenenazirov/package-shark/internal/presenter"
	"github.com/eugenenazirov/package-shark/internal/quantity"
)

const (
	cardWidth     = 40
	revealFrame   = presenter.StaggerStep / 2
	defaultNotice = 3 * time.Second
)

// Messages
type (
	fetchDoneMsg struct {
		out fetch.Outcome
	}
	revealTickMsg struct {
		gen int
		at  time.Time
	}
	noticeExpiredMsg struct {
		gen int
	}
)

// Model is the Bubble Tea model for the client.
type Model struct {
	// Dependencies
	ctx      context.Context
	orch     *fetch.Orchestrator
	toast    *notify.Toast
	clock    func() time.Time
	bindings []binding

	// Input
	quantity *quantity.Model
	input    textinput.Model
	spinner  spinner.Model
	styles   Styles

	// Rows entrance
	revealGen   int
	revealStart time.Time
	revealed    time.Duration

	// Toast
	notice         string
	noticeGen      int
	noticeDuration time.Duration
}

// Option configures a Model.
type Option func(*Model)

// WithContext sets the context lookups run under.
func WithContext(ctx context.Context) Option {
	return func(m *Model) {
		m.ctx = ctx
	}
}

// WithNoticeDuration sets how long a failure notice stays visible.
func WithNoticeDuration(d time.Duration) Option {
	return func(m *Model) {
		if d > 0 {
			m.noticeDuration = d
		}
	}
}

// WithClock overrides the time source, primarily for tests.
func WithClock(clock func() time.Time) Option {
	return func(m *Model) {
		m.clock = clock
	}
}

// NewModel builds the model. toast must be the notifier the orchestrator
// reports failures to; the model drains it after every completion.
func NewModel(orch *fetch.Orchestrator, toast *notify.Toast, opts ...Option) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(colorAccent)

	q := quantity.New(0)
	ti := textinput.New()
	ti.Placeholder = "Number of items"
	ti.Prompt = "Items: "
	ti.CharLimit = 19
	ti.Width = 20
	ti.SetValue(q.Text())
	ti.CursorEnd()
	ti.Focus()

	m := Model{
		ctx:            context.Background(),
		orch:           orch,
		toast:          toast,
		clock:          time.Now,
		bindings:       bindings(),
		quantity:       q,
		input:          ti,
		spinner:        sp,
		styles:         DefaultStyles(),
		noticeDuration: defaultNotice,
	}
	for _, opt := range opts {
		opt(&m)
	}
	return m
}

// Init starts the cursor blink and the spinner.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.spinner.Tick)
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case fetchDoneMsg:
		return m.handleFetchDone(msg)

	case revealTickMsg:
		if msg.gen != m.revealGen {
			return m, nil
		}
		m.revealed = msg.at.Sub(m.revealStart)
		if m.revealed < presenter.RevealDuration(m.rows()) {
			return m, m.revealTick()
		}
		return m, nil

	case noticeExpiredMsg:
		if msg.gen == m.noticeGen {
			m.notice = ""
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	switch key {
	case keyQuit, keyEsc:
		return m, tea.Quit
	case keyFetch:
		return m.startFetch()
	}

	for _, b := range m.bindings {
		if b.key == key {
			b.control.Apply(m.quantity)
			m.syncInput()
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.quantity.SetText(m.input.Value())
	m.syncInput()
	return m, cmd
}

// startFetch issues a lookup for the quantity as it is right now. Rows
// disappear immediately and any pending entrance animation is abandoned.
func (m Model) startFetch() (tea.Model, tea.Cmd) {
	req := m.orch.Begin(m.quantity.Value())
	m.revealGen++
	m.revealed = 0

	orch, ctx := m.orch, m.ctx
	return m, func() tea.Msg {
		return fetchDoneMsg{out: orch.Run(ctx, req)}
	}
}

func (m Model) handleFetchDone(msg fetchDoneMsg) (tea.Model, tea.Cmd) {
	switch m.orch.Complete(msg.out) {
	case fetch.Applied:
		m.revealGen++
		m.revealStart = m.clock()
		m.revealed = 0
		return m, m.revealTick()

	case fetch.Failed:
		if m.toast == nil {
			return m, nil
		}
		e, ok := m.toast.Take()
		if !ok {
			return m, nil
		}
		m.notice = e.Message
		m.noticeGen++
		gen := m.noticeGen
		return m, tea.Tick(m.noticeDuration, func(time.Time) tea.Msg {
			return noticeExpiredMsg{gen: gen}
		})
	}
	return m, nil
}

func (m Model) revealTick() tea.Cmd {
	gen := m.revealGen
	return tea.Tick(revealFrame, func(t time.Time) tea.Msg {
		return revealTickMsg{gen: gen, at: t}
	})
}

func (m *Model) syncInput() {
	m.input.SetValue(m.quantity.Text())
	m.input.CursorEnd()
}

func (m Model) rows() []presenter.PackRow {
	return presenter.Rows(m.orch.Results())
}

// View renders the client.
func (m Model) View() string {
	var sb strings.Builder

	sb.WriteString(m.styles.Title.Render("Package Shark"))
	sb.WriteString("\n")

	trigger := "Go"
	if m.orch.State().Status == fetch.InFlight {
		trigger = m.spinner.View()
	}
	sb.WriteString(lipgloss.JoinHorizontal(lipgloss.Center,
		m.input.View(), " ", m.styles.Button.Render(trigger),
	))
	sb.WriteString("\n")

	buttons := make([]string, 0, len(m.bindings))
	for _, b := range m.bindings {
		buttons = append(buttons, m.styles.Button.Render(b.control.Label))
	}
	sb.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, buttons...))
	sb.WriteString("\n")

	sb.WriteString(m.styles.Hint.Render("Enter the number of items you want to order and press enter."))
	sb.WriteString("\n")

	for _, row := range presenter.Visible(m.rows(), m.revealed) {
		sb.WriteString(m.renderRow(row))
		sb.WriteString("\n")
	}

	if m.notice != "" {
		sb.WriteString(m.styles.Toast.Render(m.notice))
		sb.WriteString("\n")
	}

	sb.WriteString(m.styles.HelpBar.Render(m.helpText()))

	return m.styles.App.Render(sb.String())
}

func (m Model) renderRow(row presenter.PackRow) string {
	title := m.styles.CardTitle.Render(row.Title())
	count := m.styles.CardCount.Render(row.Count())
	gap := cardWidth - 2 - lipgloss.Width(title) - lipgloss.Width(count)
	if gap < 1 {
		gap = 1
	}
	return m.styles.Card.Render(title + strings.Repeat(" ", gap) + count)
}

func (m Model) helpText() string {
	parts := []string{"enter go"}
	for _, b := range m.bindings {
		parts = append(parts, fmt.Sprintf("%s %s", b.key, strings.ToLower(b.control.Label)))
	}
	parts = append(parts, "esc quit")
	return strings.Join(parts, " • ")
}
