// internal/tui/dialog.go
//
// One-shot dialog models for the wizard. Each dialog is its own bubbletea
// program: the wizard is strictly sequential, so a dialog runs, blocks until
// the administrator answers, and hands the result back. Cancellation (esc or
// ctrl-c, the dialog layer treats both the same) surfaces as ErrCancelled.

package tui

import (
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jsrain/jeos-firstboot/internal/module"
)

// ErrCancelled reports that the administrator dismissed a dialog without
// answering it.
var ErrCancelled = errors.New("tui: cancelled")

// choiceItem implements list.Item for menu entries.
type choiceItem struct {
	value string
	label string
}

func (i choiceItem) Title() string       { return i.label }
func (i choiceItem) Description() string { return i.value }
func (i choiceItem) FilterValue() string { return i.label + " " + i.value }

// menuModel presents a scrollable, filterable selection list.
type menuModel struct {
	banner    string
	title     string
	menu      list.Model
	choice    string
	done      bool
	cancelled bool
}

func newMenuModel(banner, title string, choices []module.Choice, selected string) *menuModel {
	items := make([]list.Item, len(choices))
	index := 0
	for i, c := range choices {
		items[i] = choiceItem{value: c.Value, label: c.Label}
		if c.Value == selected {
			index = i
		}
	}
	delegate := list.NewDefaultDelegate()
	menu := list.New(items, delegate, 72, 18)
	menu.SetShowTitle(false)
	menu.SetShowStatusBar(false)
	menu.SetShowHelp(false)
	menu.Select(index)
	return &menuModel{banner: banner, title: title, menu: menu}
}

func (m *menuModel) Init() tea.Cmd { return nil }

func (m *menuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		// While the filter prompt is open the list owns the keyboard.
		if m.menu.FilterState() != list.Filtering {
			switch msg.Type {
			case tea.KeyEsc, tea.KeyCtrlC:
				m.done = true
				m.cancelled = true
				return m, tea.Quit
			case tea.KeyEnter:
				if item, ok := m.menu.SelectedItem().(choiceItem); ok {
					m.choice = item.value
					m.done = true
					return m, tea.Quit
				}
			}
		}
	case tea.WindowSizeMsg:
		m.menu.SetSize(msg.Width-4, msg.Height-8)
	}
	var cmd tea.Cmd
	m.menu, cmd = m.menu.Update(msg)
	return m, cmd
}

func (m *menuModel) View() string {
	if m.done {
		return ""
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		bannerStyle.Render(m.banner),
		titleStyle.Render(m.title),
		m.menu.View(),
		helpStyle.Render("enter select • / filter • esc cancel"),
	)
}

// inputModel prompts for a single line of text, optionally masked.
type inputModel struct {
	banner    string
	title     string
	input     textinput.Model
	result    string
	done      bool
	cancelled bool
}

func newInputModel(banner, title, value string, password bool) *inputModel {
	input := textinput.New()
	input.SetValue(value)
	input.CharLimit = 256
	input.Width = 48
	if password {
		input.EchoMode = textinput.EchoPassword
		input.EchoCharacter = '*'
	}
	input.Focus()
	return &inputModel{banner: banner, title: title, input: input}
}

func (m *inputModel) Init() tea.Cmd { return textinput.Blink }

func (m *inputModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.Type {
		case tea.KeyEsc, tea.KeyCtrlC:
			m.done = true
			m.cancelled = true
			return m, tea.Quit
		case tea.KeyEnter:
			m.result = m.input.Value()
			m.done = true
			return m, tea.Quit
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *inputModel) View() string {
	if m.done {
		return ""
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		bannerStyle.Render(m.banner),
		dialogStyle.Render(titleStyle.Render(m.title)+"\n\n"+m.input.View()),
		helpStyle.Render("enter accept • esc cancel"),
	)
}

// confirmModel asks a yes/no question.
type confirmModel struct {
	banner    string
	title     string
	warn      bool
	yes       bool
	done      bool
	cancelled bool
}

func newConfirmModel(banner, title string, def bool) *confirmModel {
	return &confirmModel{banner: banner, title: title, yes: def}
}

func (m *confirmModel) Init() tea.Cmd { return nil }

func (m *confirmModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch key.Type {
	case tea.KeyEsc, tea.KeyCtrlC:
		m.done = true
		m.cancelled = true
		return m, tea.Quit
	case tea.KeyEnter:
		m.done = true
		return m, tea.Quit
	case tea.KeyLeft, tea.KeyRight, tea.KeyTab:
		m.yes = !m.yes
		return m, nil
	}
	switch key.String() {
	case "y", "Y":
		m.yes = true
		m.done = true
		return m, tea.Quit
	case "n", "N":
		m.yes = false
		m.done = true
		return m, tea.Quit
	}
	return m, nil
}

func (m *confirmModel) View() string {
	if m.done {
		return ""
	}
	yesButton := buttonStyle.Render("Yes")
	noButton := activeButtonStyle.Render("No")
	if m.yes {
		yesButton = activeButtonStyle.Render("Yes")
		noButton = buttonStyle.Render("No")
	}
	title := titleStyle
	if m.warn {
		title = warnTitleStyle
	}
	body := title.Render(m.title) + "\n\n" +
		lipgloss.JoinHorizontal(lipgloss.Top, yesButton, "  ", noButton)
	return lipgloss.JoinVertical(lipgloss.Left,
		bannerStyle.Render(m.banner),
		dialogStyle.Render(body),
		helpStyle.Render("←/→ switch • y/n answer • enter accept"),
	)
}

// messageModel shows a block of text until the administrator acknowledges it.
type messageModel struct {
	banner string
	title  string
	body   string
	warn   bool
	done   bool
}

func newMessageModel(banner, title, body string, warn bool) *messageModel {
	return &messageModel{banner: banner, title: title, body: body, warn: warn}
}

func (m *messageModel) Init() tea.Cmd { return nil }

func (m *messageModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.Type {
		case tea.KeyEnter, tea.KeyEsc, tea.KeyCtrlC, tea.KeySpace:
			m.done = true
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m *messageModel) View() string {
	if m.done {
		return ""
	}
	title := titleStyle
	if m.warn {
		title = warnTitleStyle
	}
	body := title.Render(m.title)
	if strings.TrimSpace(m.body) != "" {
		body += "\n\n" + m.body
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		bannerStyle.Render(m.banner),
		dialogStyle.Render(body),
		helpStyle.Render("enter continue"),
	)
}
