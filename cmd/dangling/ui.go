// # cmd/dangling/ui.go
package main

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"dangling/internal/analyzer"
	"dangling/internal/issues"
)

var (
	titleStyle = lipgloss.NewStyle().
			MarginLeft(2).
			Foreground(lipgloss.Color("#3B82F6")).
			Bold(true).
			Render

	docStyle = lipgloss.NewStyle().Margin(1, 2)

	undefinedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F87171")).
			Bold(true)

	externalStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FBBF24")).
			Bold(true)

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#10B981")).
			Bold(true)

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#64748B")).
			Italic(true)
)

type item struct {
	title, desc string
}

func (i item) Title() string       { return i.title }
func (i item) Description() string { return i.desc }
func (i item) FilterValue() string { return i.title + i.desc }

type model struct {
	list       list.Model
	result     *analyzer.Result
	lastUpdate time.Time
}

type updateMsg struct {
	result *analyzer.Result
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" || msg.String() == "q" {
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		h, v := docStyle.GetFrameSize()
		m.list.SetSize(msg.Width-h, msg.Height-v-4)
	case updateMsg:
		m.result = msg.result
		m.lastUpdate = time.Now()

		items := []list.Item{}
		for _, issue := range msg.result.Issues {
			items = append(items, item{
				title: string(issue.Type),
				desc:  fmt.Sprintf("%s:%d %s", issue.File, issue.Line, issue.Message),
			})
		}
		m.list.SetItems(items)
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m model) View() string {
	fileCount := 0
	undefined := 0
	external := 0
	if m.result != nil {
		fileCount = m.result.FilesAnalyzed
		for _, issue := range m.result.Issues {
			switch issue.Type {
			case issues.Undefined:
				undefined++
			case issues.External:
				external++
			}
		}
	}

	status := statusStyle.Render(fmt.Sprintf("Last update: %v | %d files analyzed",
		m.lastUpdate.Format("15:04:05"), fileCount))

	var summary string
	if undefined == 0 && external == 0 {
		summary = successStyle.Render("✅ No import issues")
	} else {
		summary = fmt.Sprintf("⚠️  %s | %s",
			undefinedStyle.Render(fmt.Sprintf("%d undefined", undefined)),
			externalStyle.Render(fmt.Sprintf("%d external", external)))
	}

	header := fmt.Sprintf("%s\n%s | %s\n", titleStyle("Dangling Import Monitor"), status, summary)
	return docStyle.Render(header + "\n" + m.list.View())
}

func initialModel() model {
	l := list.New([]list.Item{}, list.NewDefaultDelegate(), 0, 0)
	l.Title = "Import Issues"
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(true)

	return model{
		list:       l,
		lastUpdate: time.Now(),
	}
}
