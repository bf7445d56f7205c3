package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/contribwall/pkg/integrations/github"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// pickRepository lists the authenticated user's repositories and lets them
// pick one interactively. Used when generate runs without a repo argument.
func (c *CLI) pickRepository(ctx context.Context, client *github.Client) (string, error) {
	spinner := newSpinnerWithContext(ctx, "Loading your repositories...")
	spinner.Start()
	repos, err := client.ListUserRepos(ctx)
	if err != nil {
		spinner.StopWithError("Could not list repositories")
		return "", fmt.Errorf("list repositories: %w (a token is required for interactive selection)", err)
	}
	spinner.Stop()

	if len(repos) == 0 {
		return "", fmt.Errorf("no repositories found for the authenticated user")
	}

	model := newRepoListModel(repos)
	final, err := tea.NewProgram(model, tea.WithContext(ctx)).Run()
	if err != nil {
		return "", fmt.Errorf("repository selection: %w", err)
	}

	m := final.(repoListModel)
	if m.selected == "" {
		return "", fmt.Errorf("no repository selected")
	}
	return m.selected, nil
}

// repoListModel is the bubbletea model for interactive repo selection.
type repoListModel struct {
	repos    []github.Repo
	cursor   int
	offset   int
	height   int
	selected string
}

func newRepoListModel(repos []github.Repo) repoListModel {
	return repoListModel{repos: repos, height: 15}
}

func (m repoListModel) Init() tea.Cmd {
	return nil
}

func (m repoListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
				if m.cursor < m.offset {
					m.offset = m.cursor
				}
			}
		case "down", "j":
			if m.cursor < len(m.repos)-1 {
				m.cursor++
				if m.cursor >= m.offset+m.height {
					m.offset = m.cursor - m.height + 1
				}
			}
		case "enter":
			m.selected = m.repos[m.cursor].FullName
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.height = msg.Height - 6
		if m.height < 5 {
			m.height = 5
		}
	}
	return m, nil
}

func (m repoListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Select Repository"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ select  q quit"))
	b.WriteString("\n\n")

	end := m.offset + m.height
	if end > len(m.repos) {
		end = len(m.repos)
	}

	rows := [][]string{}
	for i := m.offset; i < end; i++ {
		r := m.repos[i]

		cursor := "  "
		if i == m.cursor {
			cursor = "▸ "
		}
		visibility := "public"
		if r.Private {
			visibility = "private"
		}
		rows = append(rows, []string{cursor, r.FullName, visibility, formatRelativeTime(r.UpdatedAt)})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Repository", "Visibility", "Updated").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if m.offset+row == m.cursor {
				return listSelectedStyle
			}
			if col >= 2 {
				return listDimStyle
			}
			return lipgloss.NewStyle().Foreground(colorWhite)
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.cursor+1, len(m.repos))))

	return b.String()
}

func formatRelativeTime(s string) string {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return s
	}

	diff := time.Since(t)
	switch {
	case diff < time.Hour:
		return fmt.Sprintf("%dm ago", int(diff.Minutes()))
	case diff < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(diff.Hours()))
	case diff < 30*24*time.Hour:
		return fmt.Sprintf("%dd ago", int(diff.Hours()/24))
	default:
		return t.Format("Jan 2006")
	}
}
