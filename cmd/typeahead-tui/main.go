// Command typeahead-tui is an interactive terminal demo of the incremental
// suggestion cache. It loads candidates from a newline-separated file and
// re-ranks them live as you type, showing which keystrokes were answered by
// a narrowed scan instead of a full one.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/gcbaptista/go-typeahead/fuzzy"
)

const maxVisibleSuggestions = 10

var (
	titleStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#86AAEC")).Bold(true)
	suggestionStyle = lipgloss.NewStyle().PaddingLeft(2)
	selectedStyle   = lipgloss.NewStyle().PaddingLeft(2).Foreground(lipgloss.Color("#F2C94C")).Bold(true)
	statsStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#6C7086"))
	emptyStyle      = lipgloss.NewStyle().PaddingLeft(2).Foreground(lipgloss.Color("#6C7086")).Italic(true)
)

type model struct {
	input    textinput.Model
	search   *fuzzy.IncrementalSearch
	results  []string
	selected int
	chosen   string
	quitting bool
}

func initialModel(candidates []string) model {
	ti := textinput.New()
	ti.Placeholder = "Start typing..."
	ti.Focus()
	ti.Prompt = "> "
	ti.CharLimit = 100

	search := fuzzy.NewIncrementalSearch(0)
	search.SetCandidates(candidates)

	return model{
		input:   ti,
		search:  search,
		results: search.Query(""),
	}
}

func (m model) Init() tea.Cmd {
	return textinput.Blink
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.quitting = true
			return m, tea.Quit
		case tea.KeyUp:
			if m.selected > 0 {
				m.selected--
			}
			return m, nil
		case tea.KeyDown:
			if m.selected < len(m.visible())-1 {
				m.selected++
			}
			return m, nil
		case tea.KeyEnter:
			if visible := m.visible(); len(visible) > 0 {
				m.chosen = visible[m.selected]
				m.quitting = true
				return m, tea.Quit
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	before := m.input.Value()
	m.input, cmd = m.input.Update(msg)

	if after := m.input.Value(); after != before {
		m.results = m.search.Query(after)
		m.selected = 0
	}
	return m, cmd
}

// visible returns the suggestions that fit on screen.
func (m model) visible() []string {
	if len(m.results) > maxVisibleSuggestions {
		return m.results[:maxVisibleSuggestions]
	}
	return m.results
}

func (m model) View() string {
	if m.quitting {
		if m.chosen != "" {
			return "Picked: " + m.chosen + "\n"
		}
		return ""
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("Typeahead demo"))
	b.WriteString("\n\n")
	b.WriteString(m.input.View())
	b.WriteString("\n\n")

	visible := m.visible()
	if len(visible) == 0 {
		b.WriteString(emptyStyle.Render("No matches"))
		b.WriteString("\n")
	}
	for i, suggestion := range visible {
		if i == m.selected {
			b.WriteString(selectedStyle.Render("▸ " + suggestion))
		} else {
			b.WriteString(suggestionStyle.Render("  " + suggestion))
		}
		b.WriteString("\n")
	}
	if hidden := len(m.results) - len(visible); hidden > 0 {
		b.WriteString(emptyStyle.Render(fmt.Sprintf("  ... and %d more", hidden)))
		b.WriteString("\n")
	}

	stats := m.search.Stats()
	b.WriteString("\n")
	b.WriteString(statsStyle.Render(fmt.Sprintf(
		"matches: %d | cache hits: %d | narrowed scans: %d | full scans: %d",
		len(m.results), stats.Hits, stats.NarrowedScans, stats.FullScans)))
	b.WriteString("\n")
	b.WriteString(statsStyle.Render("↑/↓ select · enter pick · esc quit"))
	b.WriteString("\n")
	return b.String()
}

// loadCandidates reads one candidate per line, skipping blanks.
func loadCandidates(path string) ([]string, error) {
	file, err := os.Open(path) // #nosec G304 -- path comes from the operator's command line
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := file.Close(); err != nil {
			log.Printf("Warning: Failed to close candidate file: %v", err)
		}
	}()

	var candidates []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line != "" {
			candidates = append(candidates, line)
		}
	}
	return candidates, scanner.Err()
}

func main() {
	file := flag.String("file", "", "Newline-separated candidate file (required)")
	flag.Parse()

	if *file == "" {
		fmt.Fprintf(os.Stderr, "Usage: %s --file candidates.txt\n", os.Args[0])
		os.Exit(2)
	}

	candidates, err := loadCandidates(*file)
	if err != nil {
		log.Fatalf("Failed to load candidates: %v", err)
	}
	if len(candidates) == 0 {
		log.Fatalf("No candidates found in %s", *file)
	}

	program := tea.NewProgram(initialModel(candidates))
	final, err := program.Run()
	if err != nil {
		log.Fatalf("TUI error: %v", err)
	}
	if m, ok := final.(model); ok && m.chosen != "" {
		fmt.Println(m.chosen)
	}
}
