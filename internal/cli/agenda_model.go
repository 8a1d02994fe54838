package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/avikbasu/docket/internal/cli/formatter"
	"github.com/avikbasu/docket/internal/domain"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// agendaRow is one hearing flattened for display.
type agendaRow struct {
	hearingID  string
	caseNumber string
	slot       string
	status     domain.HearingStatus
	overridden bool
}

// agendaLoadedMsg signals that agenda data has been loaded.
type agendaLoadedMsg struct {
	rows []agendaRow
	err  error
}

// statusChangedMsg reports the outcome of a status transition.
type statusChangedMsg struct{ err error }

type agendaKeyMap struct {
	Up       key.Binding
	Down     key.Binding
	Complete key.Binding
	Adjourn  key.Binding
	Cancel   key.Binding
	Refresh  key.Binding
	Quit     key.Binding
}

func newAgendaKeyMap() agendaKeyMap {
	return agendaKeyMap{
		Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Complete: key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "complete")),
		Adjourn:  key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "adjourn")),
		Cancel:   key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "cancel")),
		Refresh:  key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
		Quit:     key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// agendaModel is the interactive calendar view for one owner.
type agendaModel struct {
	app     *App
	owner   string
	keys    agendaKeyMap
	rows    []agendaRow
	cursor  int
	loading bool
	err     error
	notice  string
}

func newAgendaModel(app *App, owner string) *agendaModel {
	return &agendaModel{
		app:     app,
		owner:   owner,
		keys:    newAgendaKeyMap(),
		loading: true,
	}
}

func (m *agendaModel) Init() tea.Cmd {
	return m.loadAgenda()
}

func (m *agendaModel) loadAgenda() tea.Cmd {
	app, owner := m.app, m.owner
	return func() tea.Msg {
		ctx := context.Background()
		hearings, err := app.Hearings.ListByOwner(ctx, owner)
		if err != nil {
			return agendaLoadedMsg{err: err}
		}

		// Cache case numbers; agendas routinely share a handful of cases.
		numbers := make(map[string]string)
		rows := make([]agendaRow, 0, len(hearings))
		for _, h := range hearings {
			number, seen := numbers[h.CaseID]
			if !seen {
				number = h.CaseID
				if c, err := app.Cases.GetByID(ctx, h.CaseID); err == nil {
					number = c.CaseNumber
				}
				numbers[h.CaseID] = number
			}
			rows = append(rows, agendaRow{
				hearingID:  h.ID,
				caseNumber: number,
				slot:       formatter.FormatLocalSlot(h),
				status:     h.Status,
				overridden: h.Override != nil && h.Override.Allowed,
			})
		}
		return agendaLoadedMsg{rows: rows}
	}
}

func (m *agendaModel) setStatus(row agendaRow, status domain.HearingStatus) tea.Cmd {
	app, owner := m.app, m.owner
	return func() tea.Msg {
		_, err := app.Hearings.SetStatus(context.Background(), row.hearingID, owner, status)
		return statusChangedMsg{err: err}
	}
}

func (m *agendaModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case agendaLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.err = nil
		m.rows = msg.rows
		if m.cursor >= len(m.rows) {
			m.cursor = len(m.rows) - 1
		}
		if m.cursor < 0 {
			m.cursor = 0
		}
		return m, nil

	case statusChangedMsg:
		if msg.err != nil {
			m.notice = formatter.StyleRed.Render(msg.err.Error())
			return m, nil
		}
		m.notice = ""
		m.loading = true
		return m, m.loadAgenda()

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, m.keys.Down):
			if m.cursor < len(m.rows)-1 {
				m.cursor++
			}
		case key.Matches(msg, m.keys.Refresh):
			m.loading = true
			return m, m.loadAgenda()
		case key.Matches(msg, m.keys.Complete):
			if row, ok := m.current(); ok {
				return m, m.setStatus(row, domain.HearingCompleted)
			}
		case key.Matches(msg, m.keys.Adjourn):
			if row, ok := m.current(); ok {
				return m, m.setStatus(row, domain.HearingAdjourned)
			}
		case key.Matches(msg, m.keys.Cancel):
			if row, ok := m.current(); ok {
				return m, m.setStatus(row, domain.HearingCancelled)
			}
		}
	}
	return m, nil
}

func (m *agendaModel) current() (agendaRow, bool) {
	if m.cursor < 0 || m.cursor >= len(m.rows) {
		return agendaRow{}, false
	}
	return m.rows[m.cursor], true
}

func (m *agendaModel) View() string {
	var b strings.Builder
	b.WriteString("\n" + formatter.Header(m.owner+"'s agenda") + "\n")

	switch {
	case m.loading:
		b.WriteString("  " + formatter.Dim("Loading hearings...") + "\n")
	case m.err != nil:
		b.WriteString("  " + formatter.StyleRed.Render("Error: "+m.err.Error()) + "\n")
	case len(m.rows) == 0:
		b.WriteString("  " + formatter.Dim("Nothing on the calendar.") + "\n")
	default:
		for i, row := range m.rows {
			cursor := "  "
			if i == m.cursor {
				cursor = formatter.StyleGreen.Render("▸ ")
			}
			mark := ""
			if row.overridden {
				mark = " " + formatter.StyleYellow.Render("[override]")
			}
			b.WriteString(fmt.Sprintf("%s%s  %s  %s%s\n",
				cursor,
				formatter.StatusBadge(row.status),
				formatter.Bold(row.slot),
				formatter.Dim(row.caseNumber),
				mark))
		}
	}

	if m.notice != "" {
		b.WriteString("\n  " + m.notice + "\n")
	}

	help := make([]string, 0, 6)
	for _, binding := range []key.Binding{m.keys.Complete, m.keys.Adjourn, m.keys.Cancel, m.keys.Refresh, m.keys.Quit} {
		help = append(help, binding.Help().Key+" "+binding.Help().Desc)
	}
	b.WriteString("\n" + formatter.Dim(strings.Join(help, " · ")) + "\n")
	return b.String()
}
