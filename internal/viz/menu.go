package viz

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/san-kum/clothsim/internal/config"
)

var presetInfo = map[string]string{
	"cube":    "3x3x3 lattice, oscillating wind",
	"curtain": "plane pinned along the top",
	"drop":    "free plane falling to the floor",
	"stiff":   "6x6x6 cube, 20 iterations",
	"sphere":  "shell in noise wind",
}

// Menu lists the presets and opens the live view for the chosen one.
type Menu struct {
	presets []string
	cursor  int
	live    *Model
	err     error
}

func NewMenu() Menu {
	return Menu{presets: config.ListPresets()}
}

func (m Menu) Init() tea.Cmd { return nil }

func (m Menu) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.live != nil {
		next, cmd := m.live.Update(msg)
		live := next.(Model)
		m.live = &live
		return m, cmd
	}

	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch key.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.presets)-1 {
			m.cursor++
		}
	case "enter", " ", "space":
		return m.open(m.presets[m.cursor])
	}
	return m, nil
}

func (m Menu) open(name string) (tea.Model, tea.Cmd) {
	cfg, err := config.GetPreset(name)
	if err != nil {
		m.err = err
		return m, nil
	}
	live, err := NewModel(cfg)
	if err != nil {
		m.err = err
		return m, nil
	}
	m.live = &live
	return m, live.Init()
}

func (m Menu) View() string {
	if m.live != nil {
		return m.live.View()
	}

	var b strings.Builder
	b.WriteString("\n\n    " + menuTitle.Render("CLOTHSIM") + "\n    " + menuSubtle.Render("mass-spring cloth") + "\n    " + menuSubtle.Render("─────────────────────────") + "\n\n")
	for i, name := range m.presets {
		if i == m.cursor {
			b.WriteString(fmt.Sprintf("    %s %s  %s\n", menuCursor.Render("▸"), menuSelected.Render(fmt.Sprintf("%-10s", name)), menuDesc.Render(presetInfo[name])))
		} else {
			b.WriteString(fmt.Sprintf("      %s  %s\n", menuIdle.Render(fmt.Sprintf("%-10s", name)), menuSubtle.Render(presetInfo[name])))
		}
	}
	if m.err != nil {
		b.WriteString("\n    " + statusPaused.Render(m.err.Error()) + "\n")
	}
	b.WriteString("\n    " + keyHints("j/k", "navigate", "enter", "select", "q", "quit") + "\n")
	return b.String()
}

func RunMenu() error {
	_, err := tea.NewProgram(NewMenu(), tea.WithAltScreen()).Run()
	return err
}
