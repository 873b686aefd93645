package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/suderio/battleround/internal/engine"
	"github.com/suderio/battleround/internal/session"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1).
			MarginBottom(1)

	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#999999"))

	stateBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#874BFD")).
			Padding(1, 2)

	logBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#04B575")).
			Padding(0, 1)

	autocompleteStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("#F25D94"))
)

type suggestion string

func (s suggestion) Title() string       { return string(s) }
func (s suggestion) Description() string { return "" }
func (s suggestion) FilterValue() string { return string(s) }

type replModel struct {
	app         *session.Session
	textInput   textinput.Model
	viewport    viewport.Model
	suggestions list.Model
	history     []string
	historyIdx  int
	logContent  string
	width       int
	height      int
	battleName  string
	showList    bool
}

const welcome = "Welcome to battleround!\nType 'exit' to quit."

func newREPLModel(app *session.Session, battleName string) replModel {
	ti := textinput.New()
	ti.Placeholder = "Enter command (e.g., attack by: user.0 move: tackle)..."
	ti.Focus()
	ti.CharLimit = 256
	ti.Width = 60

	vp := viewport.New(0, 0)
	vp.SetContent(welcome)

	// Configure a minimalist list for autocomplete
	delegate := list.NewDefaultDelegate()
	delegate.ShowDescription = false
	delegate.SetHeight(1)
	delegate.SetSpacing(0)
	sugList := list.New([]list.Item{}, delegate, 50, 7) // Show up to 7 items
	sugList.SetShowTitle(false)
	sugList.SetShowStatusBar(false)
	sugList.SetFilteringEnabled(false) // We filter manually
	sugList.SetShowHelp(false)

	return replModel{
		app:         app,
		textInput:   ti,
		viewport:    vp,
		suggestions: sugList,
		history:     []string{},
		historyIdx:  -1,
		logContent:  welcome,
		battleName:  battleName,
	}
}

func (m *replModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *replModel) updateSuggestions() {
	var items []list.Item
	for _, c := range m.completions(m.textInput.Value()) {
		items = append(items, suggestion(c))
	}

	m.suggestions.SetItems(items)
	m.showList = len(items) > 0
	if m.showList {
		listHeight := min(len(items), 10)
		if listHeight < 4 {
			listHeight = 4
		}
		m.suggestions.SetHeight(listHeight)
		m.suggestions.ResetSelected()
	}
}

var baseCmds = []string{"attack by: ", "item by: ", "swap by: ", "flee by: ", "exit", "quit"}

// completions proposes full input lines extending val.
func (m *replModel) completions(val string) []string {
	if val == "" {
		return nil
	}

	var out []string
	for _, c := range baseCmds {
		if strings.HasPrefix(c, strings.ToLower(val)) && len(val) < len(c) {
			out = append(out, c)
		}
	}

	// Complete the value of the last "key: " typed.
	key, idx := "", -1
	for _, k := range []string{"by: ", "move: ", "to: ", "item: ", "on: "} {
		if i := strings.LastIndex(val, " "+k); i > idx {
			key, idx = k, i
		}
	}
	if idx < 0 {
		return out
	}
	prefix := val[idx+len(key)+1:]
	if strings.Contains(prefix, " ") {
		return out
	}
	base := val[:len(val)-len(prefix)]

	bf := m.app.Battlefield()
	actor, hasActor := actorOf(val)
	var candidates []string
	switch key {
	case "by: ":
		for _, b := range m.app.Waiting() {
			candidates = append(candidates, b.String())
		}
	case "move: ":
		if c := bf.Active(actor); hasActor && c != nil {
			for _, slot := range c.Moves {
				candidates = append(candidates, slot.ID)
			}
		}
	case "to: ":
		if strings.HasPrefix(val, "swap") {
			candidates = benchOf(bf, actor, hasActor)
		} else {
			for _, b := range bf.ActiveBattlers() {
				candidates = append(candidates, b.String())
			}
		}
	case "item: ":
		candidates = m.app.Dex().ItemIDs()
	case "on: ":
		if hasActor {
			for i := range bf.Side(actor.Side).Party(actor.Slot).Len() {
				candidates = append(candidates, strconv.Itoa(i))
			}
		}
	}
	for _, c := range candidates {
		if strings.HasPrefix(c, prefix) && c != prefix {
			out = append(out, base+c+" ")
		}
	}
	return out
}

// actorOf extracts the battler named after "by: ".
func actorOf(val string) (engine.Battler, bool) {
	_, rest, ok := strings.Cut(val, " by: ")
	if !ok {
		return engine.Battler{}, false
	}
	fields := strings.Fields(rest)
	if len(fields) == 0 {
		return engine.Battler{}, false
	}
	b, err := engine.ParseBattler(fields[0])
	return b, err == nil
}

// benchOf lists the party indexes an actor could swap to.
func benchOf(bf *engine.Battlefield, actor engine.Battler, ok bool) []string {
	if !ok || bf.Active(actor) == nil {
		return nil
	}
	side := bf.Side(actor.Side)
	party := side.Party(actor.Slot)
	var out []string
	for i, c := range party.Members() {
		if !c.Fainted() && i != side.ActiveIndex(actor.Slot) {
			out = append(out, strconv.Itoa(i))
		}
	}
	return out
}

func (m *replModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var (
		tiCmd tea.Cmd
		vpCmd tea.Cmd
		lsCmd tea.Cmd
	)

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit

		case tea.KeyUp:
			if m.showList {
				m.suggestions, lsCmd = m.suggestions.Update(msg)
			} else {
				if len(m.history) > 0 {
					if m.historyIdx == -1 {
						m.historyIdx = len(m.history) - 1
					} else if m.historyIdx > 0 {
						m.historyIdx--
					}
					m.textInput.SetValue(m.history[m.historyIdx])
					m.updateSuggestions()
				}
			}

		case tea.KeyDown:
			if m.showList {
				m.suggestions, lsCmd = m.suggestions.Update(msg)
			} else {
				if len(m.history) > 0 && m.historyIdx != -1 {
					if m.historyIdx < len(m.history)-1 {
						m.historyIdx++
						m.textInput.SetValue(m.history[m.historyIdx])
					} else {
						m.historyIdx = -1
						m.textInput.SetValue("")
					}
					m.updateSuggestions()
				}
			}

		case tea.KeyTab:
			if m.showList {
				if i, ok := m.suggestions.SelectedItem().(suggestion); ok {
					m.textInput.SetValue(string(i))
					m.textInput.SetCursor(len(string(i)))
					m.updateSuggestions()
				}
			}

		case tea.KeyEnter:
			val := strings.TrimSpace(m.textInput.Value())
			if val == "exit" || val == "quit" {
				return m, tea.Quit
			}

			if val != "" {
				// Prevent duplicate history entries
				if len(m.history) == 0 || m.history[len(m.history)-1] != val {
					m.history = append(m.history, val)
				}
				m.historyIdx = -1
				m.textInput.SetValue("")
				m.updateSuggestions()

				m.logContent += fmt.Sprintf("\n\n> %s\n", val)
				res, err := m.app.Execute(val)
				switch {
				case err != nil:
					m.logContent += fmt.Sprintf("Error: %v", err)
				case res == nil:
					m.logContent += fmt.Sprintf("Waiting for: %v", m.app.Waiting())
				default:
					var b strings.Builder
					writeTurn(&b, res)
					m.logContent += b.String()
				}

				m.viewport.SetContent(m.logContent)
				m.viewport.GotoBottom()
			}
		default:
			// Normal typing
			m.textInput, tiCmd = m.textInput.Update(msg)
			m.updateSuggestions()
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.viewport.Width = msg.Width - 4
		m.viewport.Height = msg.Height - 30 // Initial conservative estimate
		if m.viewport.Height < 5 {
			m.viewport.Height = 5
		}
		m.suggestions.SetWidth(msg.Width - 6)
	}

	m.viewport, vpCmd = m.viewport.Update(msg)

	// Calculate accurate heights for dynamic components
	titleH := lipgloss.Height(titleStyle.Render("Dummy"))
	stateH := lipgloss.Height(m.renderState())
	inputH := 1

	listAreaHeight := 0
	if m.showList {
		listAreaHeight = m.suggestions.Height() + 2 // +2 for autocompleteStyle borders
	}

	infoH := lipgloss.Height(infoStyle.Render("Dummy"))
	paddingH := 7

	// Total fixed overhead: title + state + input + listArea + info + padding + spacing
	overhead := titleH + stateH + inputH + listAreaHeight + infoH + paddingH + 4

	m.viewport.Height = m.height - overhead
	if m.viewport.Height < 4 {
		m.viewport.Height = 4
	}

	return m, tea.Batch(tiCmd, vpCmd, lsCmd)
}

func (m *replModel) renderState() string {
	stateView := "=== Battle State ===\n\n" + renderField(m.app.Battlefield())
	if !m.app.Over() {
		if waiting := m.app.Waiting(); len(waiting) > 0 {
			stateView += fmt.Sprintf("\nWaiting for: %v", waiting)
		}
	}
	return stateBoxStyle.Width(m.width - 4).Render(stateView)
}

func (m *replModel) View() string {
	if m.width == 0 {
		return "Initializing..."
	}

	title := titleStyle.Render(fmt.Sprintf(" battleround | %s ", m.battleName))
	stateBox := m.renderState()
	logBox := logBoxStyle.Width(m.width - 4).Render(m.viewport.View())

	var inputArea string
	if m.showList {
		inputArea = fmt.Sprintf("%s\n%s", m.textInput.View(), autocompleteStyle.Render(m.suggestions.View()))
	} else {
		inputArea = m.textInput.View()
	}

	mainView := lipgloss.JoinVertical(lipgloss.Left,
		title,
		stateBox,
		logBox,
		"\n",
		inputArea,
		infoStyle.Render("(esc to quit, tab to complete, up/down history)"),
	)

	return mainView + strings.Repeat("\n", 7)
}

// RunTUI runs the interactive shell until the user quits.
func RunTUI(app *session.Session, battleName string) error {
	m := newREPLModel(app, battleName)
	p := tea.NewProgram(&m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
}
