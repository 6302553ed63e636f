// Package tui provides the Bubble Tea practice interface.
package tui

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/pwdrill/internal/chart"
	"github.com/verte-zerg/pwdrill/internal/model"
	"github.com/verte-zerg/pwdrill/internal/passgen"
	"github.com/verte-zerg/pwdrill/internal/session"
	statsPkg "github.com/verte-zerg/pwdrill/internal/stats"
	"github.com/verte-zerg/pwdrill/internal/store"
	"github.com/verte-zerg/pwdrill/internal/timer"
)

const (
	fieldTarget = iota
	fieldPractice
)

const (
	defaultFeedbackTimeout = 3 * time.Second
	defaultMaskLimit       = 20
	maxHistoryRows         = 8
	chartHeight            = 6
	minFieldWidth          = 20
)

type tickMsg struct {
	id timer.TickID
}

type hideFeedbackMsg struct {
	seq int
}

// Options carries the collaborators of the practice model.
type Options struct {
	// Store records attempt metrics when non-nil.
	Store     *store.Store
	Generator *passgen.Generator
	Words     []string
	Clock     timer.Clock
}

// Model implements the Bubble Tea practice UI and renders session state.
type Model struct {
	config model.Config
	ctrl   *session.Controller
	store  *store.Store
	gen    *passgen.Generator
	words  []string
	now    func() time.Time

	targetInput   textinput.Model
	practiceInput textinput.Model
	focus         int

	width  int
	height int

	feedback        session.Feedback
	feedbackVisible bool
	feedbackSeq     int
	feedbackPending bool

	history  []model.Attempt
	summary  statsPkg.Summary
	selected int
	revealed map[int]bool

	runID      string
	runStarted bool
	seq        int
}

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#C89A3A"))
	labelStyle    = lipgloss.NewStyle().Width(10).Foreground(lipgloss.Color("#8C8C8C"))
	focusStyle    = labelStyle.Copy().Bold(true).Foreground(lipgloss.Color("#F0F0F0"))
	successStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#52C41A"))
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	timerStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A"))
	dimStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	selectedStyle = lipgloss.NewStyle().Background(lipgloss.Color("#303030"))
	footerStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
)

// NewModel constructs a practice TUI model.
func NewModel(cfg model.Config, opts Options) *Model {
	if cfg.FeedbackTimeout <= 0 {
		cfg.FeedbackTimeout = defaultFeedbackTimeout
	}
	if cfg.MaskLimit <= 0 {
		cfg.MaskLimit = defaultMaskLimit
	}
	clock := opts.Clock
	if clock == nil {
		clock = timer.SystemClock{}
	}
	m := &Model{
		config:   cfg,
		store:    opts.Store,
		gen:      opts.Generator,
		words:    opts.Words,
		now:      clock.Now,
		revealed: map[int]bool{},
	}
	m.ctrl = session.NewController(m, clock, cfg.TickInterval, session.Options{ClearTarget: cfg.ClearTarget})

	m.targetInput = newPasswordInput("target password")
	m.practiceInput = newPasswordInput("set a target first")
	m.targetInput.Focus()
	m.focus = fieldTarget
	m.newRun()
	return m
}

func newPasswordInput(placeholder string) textinput.Model {
	ti := textinput.New()
	ti.Prompt = ""
	ti.Placeholder = placeholder
	ti.EchoMode = textinput.EchoPassword
	ti.EchoCharacter = maskRune
	ti.CharLimit = 256
	ti.Width = minFieldWidth
	return ti
}

// Controller exposes the session controller driving the model.
func (m *Model) Controller() *session.Controller {
	return m.ctrl
}

// ShowFeedback implements session.Presenter.
func (m *Model) ShowFeedback(f session.Feedback) {
	m.feedback = f
	m.feedbackVisible = true
	m.feedbackSeq++
	m.feedbackPending = true
}

// ShowHistory implements session.Presenter.
func (m *Model) ShowHistory(attempts []model.Attempt) {
	m.history = attempts
	m.selected = 0
	if len(attempts) == 0 {
		m.revealed = map[int]bool{}
	}
}

// ShowStats implements session.Presenter.
func (m *Model) ShowStats(s statsPkg.Summary) {
	m.summary = s
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resizeInputs()
		return m, nil
	case tickMsg:
		if !m.ctrl.Tick(msg.id) {
			return m, nil
		}
		return m, m.scheduleTick(msg.id)
	case hideFeedbackMsg:
		if msg.seq == m.feedbackSeq {
			m.feedbackVisible = false
		}
		return m, nil
	case tea.KeyMsg:
		cmd := m.handleKey(msg)
		return m, tea.Batch(cmd, m.feedbackCmd())
	default:
		var cmd tea.Cmd
		if m.focus == fieldTarget {
			m.targetInput, cmd = m.targetInput.Update(msg)
		} else {
			m.practiceInput, cmd = m.practiceInput.Update(msg)
		}
		return m, cmd
	}
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "ctrl+c":
		return tea.Quit
	case "tab", "shift+tab":
		m.toggleFocus()
		return nil
	case "ctrl+t":
		m.toggleEcho()
		return nil
	case "enter":
		if m.focus == fieldTarget {
			return m.submitTarget()
		}
		m.submitAttempt()
		return nil
	case "up":
		if m.selected > 0 {
			m.selected--
		}
		return nil
	case "down":
		if m.selected < len(m.history)-1 {
			m.selected++
		}
		return nil
	case "ctrl+o":
		m.toggleReveal()
		return nil
	case "ctrl+l":
		m.clearHistory()
		return nil
	case "ctrl+e":
		m.exportCharts()
		return nil
	case "ctrl+g":
		return m.suggestTarget()
	}
	return m.updateFocused(msg)
}

func (m *Model) updateFocused(msg tea.KeyMsg) tea.Cmd {
	var cmd tea.Cmd
	if m.focus == fieldTarget {
		m.targetInput, cmd = m.targetInput.Update(msg)
		return cmd
	}
	before := m.practiceInput.Value()
	m.practiceInput, cmd = m.practiceInput.Update(msg)
	after := m.practiceInput.Value()
	if after == before {
		return cmd
	}
	if id, ok := m.ctrl.Input(after); ok {
		return tea.Batch(cmd, m.scheduleTick(id))
	}
	return cmd
}

func (m *Model) scheduleTick(id timer.TickID) tea.Cmd {
	return tea.Tick(m.ctrl.Timer.Interval(), func(time.Time) tea.Msg {
		return tickMsg{id: id}
	})
}

func (m *Model) feedbackCmd() tea.Cmd {
	if !m.feedbackPending {
		return nil
	}
	m.feedbackPending = false
	seq := m.feedbackSeq
	return tea.Tick(m.config.FeedbackTimeout, func(time.Time) tea.Msg {
		return hideFeedbackMsg{seq: seq}
	})
}

func (m *Model) toggleFocus() {
	if !m.ctrl.Session.Active() {
		return
	}
	if m.focus == fieldTarget {
		m.focusField(fieldPractice)
	} else {
		m.focusField(fieldTarget)
	}
}

func (m *Model) focusField(field int) {
	m.focus = field
	if field == fieldTarget {
		m.practiceInput.Blur()
		m.targetInput.Focus()
		return
	}
	m.targetInput.Blur()
	m.practiceInput.Focus()
}

func (m *Model) toggleEcho() {
	input := &m.targetInput
	if m.focus == fieldPractice {
		input = &m.practiceInput
	}
	if input.EchoMode == textinput.EchoPassword {
		input.EchoMode = textinput.EchoNormal
	} else {
		input.EchoMode = textinput.EchoPassword
	}
}

func (m *Model) submitTarget() tea.Cmd {
	clearField, err := m.ctrl.SetTarget(m.targetInput.Value())
	if err != nil {
		return nil
	}
	if clearField {
		m.targetInput.SetValue("")
	}
	m.practiceInput.Placeholder = "retype the target"
	m.focusField(fieldPractice)
	return nil
}

func (m *Model) submitAttempt() {
	text := m.practiceInput.Value()
	attempt, ok := m.ctrl.Submit(text)
	if !ok {
		return
	}
	m.practiceInput.SetValue("")
	m.revealed = shiftRevealed(m.revealed)
	m.record(attempt)
}

// shiftRevealed re-keys reveal flags after a new attempt is prepended.
func shiftRevealed(revealed map[int]bool) map[int]bool {
	out := make(map[int]bool, len(revealed))
	for idx, v := range revealed {
		if v {
			out[idx+1] = true
		}
	}
	return out
}

func (m *Model) toggleReveal() {
	if len(m.history) == 0 {
		return
	}
	m.revealed[m.selected] = !m.revealed[m.selected]
}

func (m *Model) clearHistory() {
	m.ctrl.ClearHistory()
	m.newRun()
}

func (m *Model) exportCharts() {
	data := m.summary.Chart
	prefix := "pwdrill-" + m.now().Format("20060102-150405")
	paths, err := chart.Export(m.config.ChartDir, prefix, data)
	if errors.Is(err, chart.ErrNoData) {
		m.ShowFeedback(session.Feedback{Message: "No attempts to chart yet.", Kind: session.FeedbackError})
		return
	}
	if err != nil {
		logErrf("failed to export charts: %v\n", err)
		m.ShowFeedback(session.Feedback{Message: "Chart export failed.", Kind: session.FeedbackError})
		return
	}
	log.Printf("exported charts: %s", strings.Join(paths, ", "))
	m.ShowFeedback(session.Feedback{Message: "Charts saved to " + m.config.ChartDir, Kind: session.FeedbackSuccess})
}

func (m *Model) suggestTarget() tea.Cmd {
	if m.gen == nil || len(m.words) == 0 {
		return nil
	}
	opts := passgen.DefaultOptions()
	if m.config.SuggestWords > 0 {
		opts.Words = m.config.SuggestWords
	}
	m.targetInput.SetValue(m.gen.Passphrase(m.words, opts))
	m.targetInput.CursorEnd()
	m.focusField(fieldTarget)
	return nil
}

func (m *Model) newRun() {
	m.runID = store.NewRunID()
	m.runStarted = false
	m.seq = 0
}

func (m *Model) record(a model.Attempt) {
	if m.store == nil {
		return
	}
	ctx := context.Background()
	if !m.runStarted {
		if err := m.store.StartRun(ctx, m.runID, a.At); err != nil {
			logErrf("failed to start run: %v\n", err)
			return
		}
		m.runStarted = true
	}
	m.seq++
	rec := model.AttemptRecord{
		RunID:      m.runID,
		Seq:        m.seq,
		At:         a.At,
		DurationMs: a.Duration.Milliseconds(),
		Correct:    a.Correct,
		Length:     utf8.RuneCountInString(a.Text),
	}
	if err := m.store.InsertAttempt(ctx, rec); err != nil {
		logErrf("failed to save attempt: %v\n", err)
		return
	}
	log.Printf("recorded attempt %d of run %s", rec.Seq, rec.RunID)
}

func (m *Model) resizeInputs() {
	w := m.contentWidth() - 24
	if w < minFieldWidth {
		w = minFieldWidth
	}
	m.targetInput.Width = w
	m.practiceInput.Width = w
}

func (m *Model) contentWidth() int {
	if m.width == 0 {
		return 80
	}
	w := int(float64(m.width) * 0.90)
	if w < 1 {
		w = 1
	}
	return w
}

// View implements tea.Model.
func (m *Model) View() string {
	width := m.contentWidth()
	sections := []string{
		titleStyle.Render("pwdrill"),
		"",
		m.renderField("Target", fieldTarget, m.targetInput.View(), ""),
		m.renderField("Practice", fieldPractice, m.practiceInput.View(), timerStyle.Render(m.ctrl.Timer.Display())),
		m.renderFeedback(),
		"",
		m.renderStats(),
		m.renderPassFail(width),
	}
	if plot := m.renderChart(width); plot != "" {
		sections = append(sections, plot)
	}
	sections = append(sections, m.renderHistory(width)...)
	sections = append(sections, "", m.renderFooter())
	content := lipgloss.NewStyle().Width(width).Render(strings.Join(sections, "\n"))
	if m.width == 0 || m.height == 0 {
		return content
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Top, content)
}

func (m *Model) renderField(label string, field int, input, suffix string) string {
	style := labelStyle
	if m.focus == field {
		style = focusStyle
	}
	line := style.Render(label) + input
	if field == fieldPractice && !m.ctrl.Session.Active() {
		line = style.Render(label) + dimStyle.Render(m.practiceInput.Placeholder)
	}
	if suffix != "" {
		line += "  " + suffix
	}
	return line
}

func (m *Model) renderFeedback() string {
	if !m.feedbackVisible || m.feedback.Message == "" {
		return ""
	}
	if m.feedback.Kind == session.FeedbackError {
		return errorStyle.Render(m.feedback.Message)
	}
	return successStyle.Render(m.feedback.Message)
}

func (m *Model) renderStats() string {
	s := m.summary
	return fmt.Sprintf("Best %s  Avg correct %s  Avg wrong %s  Avg all %s",
		s.Best, s.AvgCorrect, s.AvgWrong, s.AvgAll)
}

func (m *Model) renderPassFail(width int) string {
	s := m.summary
	label := fmt.Sprintf("Pass %d  Fail %d", s.Passed, s.Failed)
	barWidth := width - len(label) - 2
	if barWidth < 10 {
		barWidth = 10
	}
	if barWidth > 40 {
		barWidth = 40
	}
	total := s.Passed + s.Failed
	if total == 0 {
		return label + "  " + dimStyle.Render(strings.Repeat("░", barWidth))
	}
	passCells := int(float64(s.Passed) / float64(total) * float64(barWidth))
	bar := successStyle.Render(strings.Repeat("█", passCells)) +
		errorStyle.Render(strings.Repeat("█", barWidth-passCells))
	return label + "  " + bar
}

func (m *Model) renderChart(width int) string {
	data := m.summary.Chart
	if data.Empty() {
		return ""
	}
	series := []statsPkg.Series{
		{Name: "Duration", Values: data.Durations},
		{Name: "Running avg", Values: data.RunningAvg},
	}
	return strings.TrimRight(statsPkg.PlotString("Attempt durations (s)", series, statsPkg.PlotWidthFor(width), chartHeight, true), "\n")
}

func (m *Model) renderHistory(width int) []string {
	if len(m.history) == 0 {
		return []string{dimStyle.Render("No attempts yet.")}
	}
	lines := []string{"History"}
	start := 0
	if m.selected >= maxHistoryRows {
		start = m.selected - maxHistoryRows + 1
	}
	end := start + maxHistoryRows
	if end > len(m.history) {
		end = len(m.history)
	}
	textWidth := width - 24
	if textWidth < 8 {
		textWidth = 8
	}
	for i := start; i < end; i++ {
		a := m.history[i]
		status := successStyle.Render("pass")
		if !a.Correct {
			status = errorStyle.Render("fail")
		}
		number := fmt.Sprintf("#%-3d", len(m.history)-i)
		seconds := timer.FormatSeconds(a.Duration)
		textLines := []string{maskText(a.Text, m.config.MaskLimit)}
		if m.revealed[i] {
			textLines = wrapText(a.Text, textWidth)
		}
		for j, text := range textLines {
			var row string
			if j == 0 {
				row = fmt.Sprintf("%s %s  %s  %s", number, status, padRight(text, textWidth), seconds)
			} else {
				row = fmt.Sprintf("%s %s  %s", strings.Repeat(" ", 4), strings.Repeat(" ", 4), text)
			}
			if i == m.selected {
				row = selectedStyle.Render(row)
			}
			lines = append(lines, row)
		}
	}
	return lines
}

func (m *Model) renderFooter() string {
	segments := []string{"tab focus", "enter submit", "ctrl+t show", "ctrl+o reveal", "ctrl+l clear", "ctrl+e export", "ctrl+g suggest", "ctrl+c quit"}
	footer := strings.Join(segments, " · ")
	if spark := statsPkg.Sparkline(m.summary.Chart.Durations); spark != "" {
		footer = "[" + spark + "]  " + footer
	}
	return footerStyle.Render(footer)
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
