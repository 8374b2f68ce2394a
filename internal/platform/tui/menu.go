package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-match3/internal/core"
	"github.com/vovakirdan/tui-match3/internal/games/match3/levels"
	"github.com/vovakirdan/tui-match3/internal/storage"
)

// Game IDs the menu can start.
const (
	campaignID = "match3"
	endlessID  = "match3_endless"
)

// menuEntry is one line of the main menu.
type menuEntry int

const (
	entryCampaign menuEntry = iota
	entryEndless
	entrySelectLevel
	entryScores
	entryCount
)

func (e menuEntry) String() string {
	switch e {
	case entryCampaign:
		return "Campaign"
	case entryEndless:
		return "Endless"
	case entrySelectLevel:
		return "Select Level..."
	case entryScores:
		return "High Scores"
	default:
		return ""
	}
}

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	selectedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("213"))
	dimStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// MenuModel is the main menu: game mode, level pick and scoreboard.
type MenuModel struct {
	cursor        int
	levelCursor   int
	inLevelSelect bool
	levels        []levels.Level
	levelsWon     int // Highest campaign level won, from storage
	endlessBest   int
	width         int
	height        int
	config        core.RuntimeConfig
	keyMapper     *KeyMapper
	result        MenuResult
	done          bool
}

// MenuResult holds the result of running the menu.
type MenuResult struct {
	GameID          string
	Level           int // 1-based start level, 0 for the first
	Config          core.RuntimeConfig
	WantsScoreboard bool
	Quit            bool
}

// NewMenuModel creates a new menu model. store may be nil.
func NewMenuModel(store *storage.Store, cfg core.RuntimeConfig) MenuModel {
	m := MenuModel{
		levels:    levels.Campaign(),
		width:     cfg.ScreenW,
		height:    cfg.ScreenH,
		config:    cfg,
		keyMapper: NewKeyMapper(),
	}
	if store != nil {
		if won, err := store.HighestLevelWon(campaignID); err == nil {
			m.levelsWon = won
		}
		if best, err := store.HighScore(endlessID); err == nil {
			m.endlessBest = best
		}
	}
	return m
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.inLevelSelect {
			return m.handleLevelKey(m.keyMapper.MapKeyToMenuAction(msg))
		}
		return m.handleKey(m.keyMapper.MapKeyToMenuAction(msg))

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
	}

	return m, nil
}

func (m MenuModel) finish(r MenuResult) (tea.Model, tea.Cmd) {
	r.Config = m.config
	m.result = r
	m.done = true
	return m, tea.Quit
}

// handleKey processes keyboard input on the main list.
func (m MenuModel) handleKey(action MenuAction) (tea.Model, tea.Cmd) {
	switch action {
	case MenuActionQuit:
		return m.finish(MenuResult{Quit: true})

	case MenuActionUp:
		m.cursor = core.Wrap(m.cursor-1, int(entryCount))

	case MenuActionDown:
		m.cursor = core.Wrap(m.cursor+1, int(entryCount))

	case MenuActionScoreboard:
		return m.finish(MenuResult{WantsScoreboard: true})

	case MenuActionSelect:
		switch menuEntry(m.cursor) {
		case entryCampaign:
			return m.finish(MenuResult{GameID: campaignID})
		case entryEndless:
			return m.finish(MenuResult{GameID: endlessID})
		case entrySelectLevel:
			m.inLevelSelect = true
			m.levelCursor = min(m.levelsWon, len(m.levels)-1)
		case entryScores:
			return m.finish(MenuResult{WantsScoreboard: true})
		}
	}

	return m, nil
}

// handleLevelKey processes keyboard input in the level list.
func (m MenuModel) handleLevelKey(action MenuAction) (tea.Model, tea.Cmd) {
	switch action {
	case MenuActionQuit:
		return m.finish(MenuResult{Quit: true})
	case MenuActionUp:
		if m.levelCursor > 0 {
			m.levelCursor--
		}
	case MenuActionDown:
		if m.levelCursor < len(m.levels)-1 {
			m.levelCursor++
		}
	case MenuActionSelect:
		return m.finish(MenuResult{GameID: campaignID, Level: m.levelCursor + 1})
	case MenuActionBack:
		m.inLevelSelect = false
	}
	return m, nil
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.done {
		return ""
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(centerText(titleStyle.Render("M A T C H - 3"), m.width))
	b.WriteString("\n\n")

	if m.inLevelSelect {
		m.viewLevels(&b)
	} else {
		m.viewEntries(&b)
	}

	return b.String()
}

func (m MenuModel) viewEntries(b *strings.Builder) {
	b.WriteString(centerText("Select game mode:", m.width))
	b.WriteString("\n\n")

	for i := range int(entryCount) {
		label := menuEntry(i).String()
		if menuEntry(i) == entryEndless && m.endlessBest > 0 {
			label += fmt.Sprintf(" (best %d)", m.endlessBest)
		}
		line := "  " + label
		if i == m.cursor {
			line = selectedStyle.Render("> " + label)
		}
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText(dimStyle.Render("Enter: Select  |  Tab: Scores  |  Q: Quit"), m.width))
}

func (m MenuModel) viewLevels(b *strings.Builder) {
	b.WriteString(centerText("SELECT LEVEL", m.width))
	b.WriteString("\n\n")

	for i, lvl := range m.levels {
		mark := " "
		if i < m.levelsWon {
			mark = "✓"
		}
		line := fmt.Sprintf("%s %2d. %-16s goal %d", mark, i+1, lvl.Name, lvl.Goal)
		if i == m.levelCursor {
			line = selectedStyle.Render("> " + line)
		} else {
			line = "  " + line
		}
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	if lvl := m.levels[m.levelCursor]; lvl.Description != "" {
		b.WriteString("\n")
		b.WriteString(centerText(dimStyle.Render(lvl.Description), m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText(dimStyle.Render("Enter: Play  |  Esc: Back  |  Q: Quit"), m.width))
}

// Result returns the menu outcome. Valid once the program has exited.
func (m MenuModel) Result() MenuResult {
	if !m.done {
		return MenuResult{Config: m.config, Quit: true}
	}
	return m.result
}

// Done reports whether the user picked something or quit.
func (m MenuModel) Done() bool {
	return m.done
}

// centerText centers text within given width, measuring printable cells.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	return strings.Repeat(" ", (width-w)/2) + text
}

// truncateRunes cuts s to at most n runes.
func truncateRunes(s string, n int) string {
	r := []rune(s)
	if n <= 0 || len(r) <= n {
		return s
	}
	return string(r[:n])
}

// RunMenu runs the menu and returns the selection result.
func RunMenu(store *storage.Store, cfg core.RuntimeConfig) (MenuResult, error) {
	p := tea.NewProgram(
		NewMenuModel(store, cfg),
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return MenuResult{Config: cfg}, err
	}

	m, ok := finalModel.(MenuModel)
	if !ok {
		return MenuResult{Config: cfg, Quit: true}, nil
	}
	return m.Result(), nil
}
