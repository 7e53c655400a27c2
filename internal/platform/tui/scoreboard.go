package tui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-racer/internal/core"
	"github.com/vovakirdan/tui-racer/internal/registry"
	"github.com/vovakirdan/tui-racer/internal/storage"
)

const (
	scoreboardRuns = 50 // Runs listed per mode
	cardWidth      = 24
	boardChrome    = 16 // Rows taken by title, cards, labels and help
)

// runOrder selects which runs the table lists.
type runOrder int

const (
	orderBest runOrder = iota
	orderRecent
)

func (o runOrder) String() string {
	if o == orderRecent {
		return "Recent runs"
	}
	return "Best runs"
}

// ScoreboardKeyMap defines the key bindings for the scoreboard.
type ScoreboardKeyMap struct {
	Up    key.Binding
	Down  key.Binding
	Prev  key.Binding
	Next  key.Binding
	Order key.Binding
	Back  key.Binding
	Quit  key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ScoreboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Prev, k.Next, k.Order, k.Back, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k ScoreboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Prev, k.Next},
		{k.Order, k.Back, k.Quit},
	}
}

// DefaultScoreboardKeyMap returns default key bindings.
func DefaultScoreboardKeyMap() ScoreboardKeyMap {
	return ScoreboardKeyMap{
		Up:    key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "scroll")),
		Down:  key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "scroll")),
		Prev:  key.NewBinding(key.WithKeys("left", "h", "shift+tab"), key.WithHelp("←", "prev road")),
		Next:  key.NewBinding(key.WithKeys("right", "l", "tab"), key.WithHelp("→", "next road")),
		Order: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "best/recent")),
		Back:  key.NewBinding(key.WithKeys("esc", "b"), key.WithHelp("esc", "menu")),
		Quit:  key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// modeCard summarizes one game mode.
type modeCard struct {
	id    string
	title string
	saved int                // Best score the game itself keeps
	stats *storage.GameStats // Nil before the first recorded run
}

func (c modeCard) body() string {
	lines := []string{
		lipgloss.NewStyle().Bold(true).Render(c.title),
		fmt.Sprintf("best     %d", c.saved),
	}
	if c.stats == nil {
		lines = append(lines, "no runs yet")
	} else {
		lines = append(lines,
			fmt.Sprintf("top run  %d", c.stats.HighScore),
			fmt.Sprintf("runs     %d  avg %.0f", c.stats.RunsCount, c.stats.AvgScore),
			fmt.Sprintf("driven   %s", formatDuration(c.stats.TotalTime)),
		)
	}
	return strings.Join(lines, "\n")
}

// ScoreboardModel shows a card per game mode and the runs of the selected
// one, ordered by score or by recency.
type ScoreboardModel struct {
	store     *storage.Store
	modes     []modeCard
	cursor    int
	order     runOrder
	runs      []storage.Run
	table     table.Model
	help      help.Model
	keys      ScoreboardKeyMap
	width     int
	height    int
	quitting  bool
	goingBack bool
}

// NewScoreboardModel creates a scoreboard. store may be nil.
func NewScoreboardModel(store *storage.Store, width, height int) ScoreboardModel {
	m := ScoreboardModel{
		store:  store,
		keys:   DefaultScoreboardKeyMap(),
		help:   help.New(),
		width:  width,
		height: height,
		table:  newRunTable(height),
	}
	m.help.Width = width
	m.modes = loadModeCards(store, core.RuntimeConfig{ScreenW: width, ScreenH: height, TickRate: 60})
	m.loadRuns()
	return m
}

func loadModeCards(store *storage.Store, cfg core.RuntimeConfig) []modeCard {
	var stats map[string]*storage.GameStats
	if store != nil {
		if all, err := store.GetAllGamesStats(); err == nil {
			stats = all
		}
	}

	games := registry.List()
	cards := make([]modeCard, len(games))
	for i, g := range games {
		cards[i] = modeCard{
			id:    g.ID,
			title: g.Title,
			saved: savedBest(store, g.ID, cfg),
			stats: stats[g.ID],
		}
	}
	return cards
}

func newRunTable(height int) table.Model {
	t := table.New(
		table.WithColumns([]table.Column{
			{Title: "#", Width: 4},
			{Title: "Score", Width: 7},
			{Title: "Time", Width: 6},
			{Title: "Run", Width: 9},
			{Title: "Finished", Width: 13},
		}),
		table.WithFocused(true),
		table.WithHeight(max(3, height-boardChrome)),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.Bold(true).Foreground(lipgloss.Color("245"))
	s.Selected = s.Selected.Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57"))
	t.SetStyles(s)
	return t
}

// loadRuns fills the table with runs of the selected mode.
func (m *ScoreboardModel) loadRuns() {
	m.runs = nil
	if m.store != nil && len(m.modes) > 0 {
		id := m.modes[m.cursor].id
		var runs []storage.Run
		var err error
		if m.order == orderRecent {
			runs, err = m.store.RecentRuns(id, scoreboardRuns)
		} else {
			runs, err = m.store.TopScores(id, scoreboardRuns)
		}
		if err == nil {
			m.runs = runs
		}
	}

	rows := make([]table.Row, len(m.runs))
	for i, r := range m.runs {
		rows[i] = table.Row{
			strconv.Itoa(i + 1),
			strconv.Itoa(r.Score),
			formatDuration(r.Duration),
			shortRunID(r.RunID),
			r.CreatedAt.Format("Jan 02 15:04"),
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// shortRunID keeps the first block of a UUID, enough to tell runs apart.
func shortRunID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// formatDuration renders a run length as m:ss.
func formatDuration(d time.Duration) string {
	d = d.Round(time.Second)
	return fmt.Sprintf("%d:%02d", int(d.Minutes()), int(d.Seconds())%60)
}

// Init initializes the scoreboard model.
func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the scoreboard.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Next):
			m.selectMode(m.cursor + 1)
			return m, nil

		case key.Matches(msg, m.keys.Prev):
			m.selectMode(m.cursor - 1)
			return m, nil

		case key.Matches(msg, m.keys.Order):
			if m.order == orderBest {
				m.order = orderRecent
			} else {
				m.order = orderBest
			}
			m.loadRuns()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.table.SetHeight(max(3, msg.Height-boardChrome))
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// selectMode moves the cursor to mode i, wrapping around.
func (m *ScoreboardModel) selectMode(i int) {
	if len(m.modes) == 0 {
		return
	}
	m.cursor = (i%len(m.modes) + len(m.modes)) % len(m.modes)
	m.loadRuns()
}

// View renders the scoreboard.
func (m ScoreboardModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	center := func(s string) string {
		return lipgloss.PlaceHorizontal(m.width, lipgloss.Center, s)
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(center(titleStyle.Render("S C O R E B O A R D")))
	b.WriteString("\n\n")
	b.WriteString(center(m.renderCards()))
	b.WriteString("\n\n")
	b.WriteString(center(dimStyle.Render(m.order.String())))
	b.WriteString("\n")

	if len(m.runs) == 0 {
		empty := dimStyle.Italic(true).Padding(1, 2).
			Render("No runs recorded yet.\nFinish a run to get on the board!")
		b.WriteString(center(empty))
	} else {
		b.WriteString(center(m.table.View()))
	}

	b.WriteString("\n\n")
	b.WriteString(center(dimStyle.Render(m.help.View(m.keys))))
	return b.String()
}

// renderCards lays the mode cards side by side, or only the selected one
// when the row does not fit.
func (m ScoreboardModel) renderCards() string {
	if len(m.modes) == 0 {
		return ""
	}

	card := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Width(cardWidth).
		Padding(0, 1)
	active := card.BorderForeground(lipgloss.Color("229"))

	cards := make([]string, len(m.modes))
	for i, c := range m.modes {
		style := card
		if i == m.cursor {
			style = active
		}
		cards[i] = style.Render(c.body())
	}

	row := lipgloss.JoinHorizontal(lipgloss.Top, cards...)
	if lipgloss.Width(row) > m.width {
		return active.Render(m.modes[m.cursor].body())
	}
	return row
}

// IsGoingBack returns true if user wants to go back to menu.
func (m ScoreboardModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m ScoreboardModel) IsQuitting() bool {
	return m.quitting
}

// RunScoreboard runs the scoreboard on its own in the local terminal.
func RunScoreboard(store *storage.Store, width, height int) error {
	_, err := tea.NewProgram(NewScoreboardModel(store, width, height), tea.WithAltScreen()).Run()
	return err
}
