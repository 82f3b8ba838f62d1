package tui

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/tatianab/char-sheet/internal/engine"
	"github.com/tatianab/char-sheet/internal/stats"
)

type sessionState int

const (
	statePlaying sessionState = iota
	stateNarrating
	stateError
)

type model struct {
	state     sessionState
	engine    *engine.Engine
	textInput textinput.Model
	viewport  viewport.Model
	err       error
	log       string
	width     int
	height    int
}

var (
	userStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#EEEEEE")).
			Background(lipgloss.Color("#5F5F87")).
			Bold(true).
			PaddingLeft(1)

	outputStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF5F5F"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888")).
			Italic(true)

	sheetStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(lipgloss.Color("#3C3C3C")).
			PaddingLeft(2).
			Foreground(lipgloss.Color("#AAAAAA"))

	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFA500")).
			Bold(true).
			Underline(true)

	markStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87D787"))
)

func NewModel(eng *engine.Engine) model {
	ti := textinput.New()
	ti.Placeholder = "roll 2d6+3, set DES 14, help..."
	ti.Focus()
	ti.CharLimit = 156
	ti.Width = 40

	return model{
		state:     statePlaying,
		engine:    eng,
		textInput: ti,
		log:       outputStyle.Bold(true).Render("Sheet: "+eng.Name()) + "\n",
	}
}

func (m model) Init() tea.Cmd {
	return textinput.Blink
}

type narrationMsg struct {
	text string
	err  error
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit

		case tea.KeyEnter:
			if m.state == stateError {
				m.state = statePlaying
				m.err = nil
				return m, nil
			}
			if m.state != statePlaying {
				return m, nil
			}
			line := strings.TrimSpace(m.textInput.Value())
			if line == "" {
				return m, nil
			}
			m.textInput.Reset()
			m.appendLog(userStyle.Width(m.logWidth()).Render("> " + line))
			return m.execute(line)
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.viewport.Width == 0 {
			m.viewport = viewport.New(m.logWidth(), msg.Height-6)
		}
		m.viewport.Width = m.logWidth()
		m.viewport.Height = msg.Height - 6
		m.viewport.SetContent(m.log)

	case narrationMsg:
		m.state = statePlaying
		if msg.err != nil {
			m.appendLog(errorStyle.Render(msg.err.Error()))
			return m, nil
		}
		m.engine.AppendNotes(msg.text)
		m.appendLog(outputStyle.Width(m.logWidth()).Render(msg.text))
		m.autosave()
		return m, nil
	}

	if m.state == statePlaying {
		m.textInput, cmd = m.textInput.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m model) execute(line string) (tea.Model, tea.Cmd) {
	res, err := m.engine.Execute(context.Background(), line)
	if err != nil {
		m.appendLog(errorStyle.Render(err.Error()))
		return m, nil
	}
	if res.Quit {
		m.autosave()
		return m, tea.Quit
	}
	if res.Output != "" {
		m.appendLog(outputStyle.Width(m.logWidth()).Render(res.Output))
	}
	if res.Changed {
		m.autosave()
	}
	if res.Pending != nil {
		m.state = stateNarrating
		return m, narrate(res.Pending)
	}
	return m, nil
}

// autosave writes the sheet after every change. A failure is shown but
// does not stop the session.
func (m *model) autosave() {
	if err := m.engine.Save(); err != nil {
		log.Printf("tui: autosave %q: %v", m.engine.Name(), err)
		m.err = err
		m.state = stateError
	}
}

func narrate(pending func(context.Context) (string, error)) tea.Cmd {
	return func() tea.Msg {
		text, err := pending(context.Background())
		return narrationMsg{text, err}
	}
}

func (m *model) appendLog(s string) {
	m.log += "\n" + s + "\n"
	m.viewport.SetContent(m.log)
	m.viewport.GotoBottom()
}

func (m model) logWidth() int {
	return int(float64(m.width) * 0.6)
}

func (m model) View() string {
	var s string

	switch m.state {
	case stateError:
		s = fmt.Sprintf("\n  Error: %v\n\nPress Enter to continue or Esc to quit.", m.err)

	default:
		mainView := lipgloss.JoinHorizontal(lipgloss.Top,
			m.viewport.View(),
			m.renderSheet(),
		)

		help := helpStyle.Render("Type help for commands, quit or Esc to leave.")
		if m.state == stateNarrating {
			help = helpStyle.Render("The narrator is writing...")
		}

		s = lipgloss.JoinVertical(lipgloss.Left,
			mainView,
			"\n"+m.textInput.View(),
			"\n"+help,
		)
	}

	return "\n" + s + "\n"
}

func (m model) renderSheet() string {
	snap := m.engine.Snapshot()
	c := m.engine.Character()
	var b strings.Builder

	b.WriteString(titleStyle.Render("ABILITIES") + "\n")
	for _, a := range stats.Abilities {
		save := " "
		if c.SavingThrowProficient(a) {
			save = markStyle.Render("●")
		}
		fmt.Fprintf(&b, "%s %-3s %2d (%s)  save %s\n", save, a, snap.Scores[a], stats.FormatBonus(snap.Modifiers[a]), stats.FormatBonus(snap.Saves[a]))
	}

	fmt.Fprintf(&b, "\nProficiency %s  Initiative %s\nPassive perception %d\n\n",
		stats.FormatBonus(snap.ProficiencyBonus), stats.FormatBonus(snap.Initiative), snap.PassivePerception)

	b.WriteString(titleStyle.Render("SKILLS") + "\n")
	for _, sk := range stats.Skills {
		mark := " "
		switch c.SkillProficiency(sk.Key) {
		case stats.Proficient:
			mark = markStyle.Render("●")
		case stats.Expertise:
			mark = markStyle.Render("◆")
		}
		fmt.Fprintf(&b, "%s %-20s %3s %s\n", mark, sk.Name, stats.FormatBonus(snap.Skills[sk.Key]), c.Scaling(sk.Key))
	}

	if hist := m.engine.History(); len(hist) > 0 {
		b.WriteString("\n" + titleStyle.Render("LAST ROLL") + "\n" + hist[len(hist)-1] + "\n")
	}

	width := int(float64(m.width) * 0.38)
	return sheetStyle.Width(width).Height(m.viewport.Height).Render(b.String())
}

func Run(eng *engine.Engine) error {
	p := tea.NewProgram(NewModel(eng), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
