package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/daybook-hq/daybook/internal/client/sync"
)

// Styles
var (
	resolveTitleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("14")).Bold(true)
	resolveHelpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	resolveCursorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	resolveBoxStyle    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
)

const txtResolveHelp = "↑/↓ choose · PgUp/PgDn scroll diff · Enter confirm · Esc/Ctrl+C abort"

type resolveChoice struct {
	label      string
	resolution sync.Resolution
}

// "keep local" comes first so the default selection never destroys
// local work
var threeWayChoices = []resolveChoice{
	{"Keep local (push local as-is)", sync.ResolutionKeepLocal},
	{"Adopt remote (overwrite local)", sync.ResolutionAdoptRemote},
	{"Accept merge (local wins in conflicting sections)", sync.ResolutionAcceptMerge},
}

var twoWayChoices = []resolveChoice{
	{"Keep local (push local as-is)", sync.ResolutionKeepLocal},
	{"Adopt remote (overwrite local)", sync.ResolutionAdoptRemote},
}

// tuiResolver implements sync.ConflictResolver with a terminal prompt.
type tuiResolver struct{}

func newTUIResolver() *tuiResolver {
	return &tuiResolver{}
}

func (r *tuiResolver) ResolveConflicts(ctx context.Context, key string, conflicts []string, diff string) (sync.Resolution, error) {
	title := fmt.Sprintf("%s: conflicting sections: %s", key, strings.Join(conflicts, ", "))
	return runResolvePrompt(ctx, title, diff, threeWayChoices)
}

func (r *tuiResolver) ResolveTwoWay(ctx context.Context, key string, diff string) (sync.Resolution, error) {
	title := fmt.Sprintf("%s: documents diverged and could not be merged by section", key)
	return runResolvePrompt(ctx, title, diff, twoWayChoices)
}

var _ sync.ConflictResolver = (*tuiResolver)(nil)

func runResolvePrompt(ctx context.Context, title, diff string, choices []resolveChoice) (sync.Resolution, error) {
	model := newResolveModel(title, diff, choices)
	p := tea.NewProgram(model, tea.WithContext(ctx))

	final, err := p.Run()
	if err != nil {
		// covers ctx cancellation and program kill
		return 0, sync.ErrResolutionAborted
	}

	m, ok := final.(resolveModel)
	if !ok || m.aborted || !m.chosen {
		return 0, sync.ErrResolutionAborted
	}
	return choices[m.cursor].resolution, nil
}

type resolveModel struct {
	title   string
	choices []resolveChoice
	diff    viewport.Model
	cursor  int
	chosen  bool
	aborted bool
}

func newResolveModel(title, diff string, choices []resolveChoice) resolveModel {
	vp := viewport.New(80, 12)
	vp.SetContent(diff)
	return resolveModel{
		title:   title,
		choices: choices,
		diff:    vp,
	}
}

func (m resolveModel) Init() tea.Cmd {
	return nil
}

func (m resolveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.diff.Width = msg.Width - 4
		height := msg.Height - len(m.choices) - 6
		if height < 4 {
			height = 4
		}
		m.diff.Height = height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc", "q":
			m.aborted = true
			return m, tea.Quit
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
			return m, nil
		case "down", "j":
			if m.cursor < len(m.choices)-1 {
				m.cursor++
			}
			return m, nil
		case "enter":
			m.chosen = true
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.diff, cmd = m.diff.Update(msg)
	return m, cmd
}

func (m resolveModel) View() string {
	var b strings.Builder

	b.WriteString(resolveTitleStyle.Render(m.title))
	b.WriteString("\n")
	b.WriteString(resolveBoxStyle.Render(m.diff.View()))
	b.WriteString("\n")

	for i, choice := range m.choices {
		if i == m.cursor {
			b.WriteString(resolveCursorStyle.Render("> " + choice.label))
		} else {
			b.WriteString("  " + choice.label)
		}
		b.WriteString("\n")
	}

	b.WriteString(resolveHelpStyle.Render(txtResolveHelp))
	b.WriteString("\n")
	return b.String()
}
