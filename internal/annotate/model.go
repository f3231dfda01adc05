package annotate

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
)

// Answers recorded in the keep column
const (
	AnswerKeep = "y"
	AnswerDrop = "n"
)

type keyMap struct {
	Keep key.Binding
	Drop key.Binding
	Skip key.Binding
	Quit key.Binding
}

// ShortHelp implements help.KeyMap
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Keep, k.Drop, k.Skip, k.Quit}
}

// FullHelp implements help.KeyMap
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

var keys = keyMap{
	Keep: key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "keep")),
	Drop: key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "drop")),
	Skip: key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "skip")),
	Quit: key.NewBinding(key.WithKeys("q", "ctrl+c", "esc"), key.WithHelp("q", "save and quit")),
}

// Model is the Bubbletea model of the filtering session
type Model struct {
	sentences  []string
	username   string
	startIndex int

	pos     int
	records []Record
	last    string
	done    bool

	progress progress.Model
	help     help.Model
}

// NewModel creates a session over sentences. Indices in the records are
// offset by startIndex.
func NewModel(sentences []string, username string, startIndex int) Model {
	return Model{
		sentences:  sentences,
		username:   username,
		startIndex: startIndex,
		progress:   progress.New(progress.WithDefaultGradient(), progress.WithWidth(40)),
		help:       help.New(),
	}
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	if len(m.sentences) == 0 {
		return tea.Quit
	}
	return nil
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
		if w := msg.Width - 4; w > 10 && w < 80 {
			m.progress.Width = w
		}
		return m, nil

	case tea.KeyMsg:
		if m.done {
			return m, tea.Quit
		}
		switch {
		case key.Matches(msg, keys.Quit):
			m.done = true
			return m, tea.Quit
		case key.Matches(msg, keys.Keep):
			return m.answer(AnswerKeep)
		case key.Matches(msg, keys.Drop):
			return m.answer(AnswerDrop)
		case key.Matches(msg, keys.Skip):
			m.last = ""
			return m.advance()
		}
	}
	return m, nil
}

func (m Model) answer(a string) (tea.Model, tea.Cmd) {
	m.records = append(m.records, Record{
		Sentence: m.sentences[m.pos],
		Username: m.username,
		Keep:     a,
		Index:    m.startIndex + m.pos,
	})
	m.last = a
	return m.advance()
}

func (m Model) advance() (tea.Model, tea.Cmd) {
	m.pos++
	if m.pos >= len(m.sentences) {
		m.done = true
		return m, tea.Quit
	}
	return m, nil
}

// View renders the current sentence
func (m Model) View() string {
	if m.done {
		return fmt.Sprintf("%s %d answers recorded\n", TitleStyle.Render("Done."), len(m.records))
	}

	var b strings.Builder
	b.WriteString(TitleStyle.Render("Comment filtering"))
	b.WriteString(IndexStyle.Render(fmt.Sprintf("  sentence %d (%d/%d)", m.startIndex+m.pos, m.pos+1, len(m.sentences))))
	b.WriteString("\n\n")
	b.WriteString(SentenceStyle.Render(m.sentences[m.pos]))
	b.WriteString("\n\n")

	switch m.last {
	case AnswerKeep:
		b.WriteString(KeptStyle.Render("previous: kept"))
	case AnswerDrop:
		b.WriteString(DroppedStyle.Render("previous: dropped"))
	}
	b.WriteString("\n")

	b.WriteString(m.progress.ViewAs(float64(m.pos) / float64(len(m.sentences))))
	b.WriteString("\n\nKeep? ")
	b.WriteString(m.help.View(keys))
	b.WriteString("\n")
	return b.String()
}

// Records returns the answers given so far
func (m Model) Records() []Record {
	return m.records
}

// Run starts an interactive session and returns the recorded answers
func Run(sentences []string, username string, startIndex int, opts ...tea.ProgramOption) ([]Record, error) {
	final, err := tea.NewProgram(NewModel(sentences, username, startIndex), opts...).Run()
	if err != nil {
		return nil, err
	}
	return final.(Model).Records(), nil
}
