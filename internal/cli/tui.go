package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/pardot/pkg/integrations/pardot"
)

// List styles
var (
	listDimStyle    = lipgloss.NewStyle().Foreground(colorDim)
	listHeaderStyle = lipgloss.NewStyle().Foreground(colorGray).Bold(true)
)

// =============================================================================
// CampaignListModel - Interactive campaign selection
// =============================================================================

// CampaignListModel is the bubbletea model for picking the tracked campaign.
type CampaignListModel struct {
	Campaigns []pardot.Campaign
	Current   string // campaign id stored in settings, marked in the list
	Cursor    int
	Selected  *pardot.Campaign
	Height    int
	Offset    int
}

// NewCampaignListModel creates a list with the cursor on the current campaign.
func NewCampaignListModel(campaigns []pardot.Campaign, current string) CampaignListModel {
	m := CampaignListModel{Campaigns: campaigns, Current: current, Height: 15}
	for i, c := range campaigns {
		if c.ID == current {
			m.Cursor = i
			break
		}
	}
	m.scroll()
	return m
}

func (m CampaignListModel) Init() tea.Cmd {
	return nil
}

func (m CampaignListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
			}
		case "down", "j":
			if m.Cursor < len(m.Campaigns)-1 {
				m.Cursor++
			}
		case "home", "g":
			m.Cursor = 0
		case "end", "G":
			m.Cursor = max(len(m.Campaigns)-1, 0)
		case "enter":
			if len(m.Campaigns) == 0 {
				return m, nil
			}
			c := m.Campaigns[m.Cursor]
			m.Selected = &c
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.Height = max(msg.Height-8, 5)
	}
	m.scroll()
	return m, nil
}

// scroll keeps the cursor inside the visible window.
func (m *CampaignListModel) scroll() {
	if m.Cursor < m.Offset {
		m.Offset = m.Cursor
	}
	if m.Cursor >= m.Offset+m.Height {
		m.Offset = m.Cursor - m.Height + 1
	}
}

func (m CampaignListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Select Campaign"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ select  q quit"))
	b.WriteString("\n\n")

	end := min(m.Offset+m.Height, len(m.Campaigns))
	rows := make([][]string, 0, end-m.Offset)
	for i := m.Offset; i < end; i++ {
		c := m.Campaigns[i]
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		current := ""
		if c.ID == m.Current {
			current = "✓"
		}
		rows = append(rows, []string{cursor, c.ID, c.Name, current})
	}

	t := campaignTable(rows).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return listHeaderStyle
			}
			idx := m.Offset + row
			switch {
			case idx == m.Cursor:
				return lipgloss.NewStyle().Foreground(colorGreen).Bold(true)
			case idx < len(m.Campaigns) && m.Campaigns[idx].ID == m.Current:
				return lipgloss.NewStyle().Foreground(colorCyan)
			default:
				return lipgloss.NewStyle().Foreground(colorWhite)
			}
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Campaigns))))

	return b.String()
}

// =============================================================================
// Static Table
// =============================================================================

func campaignTable(rows [][]string) *table.Table {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "ID", "Name", "Tracked").
		Rows(rows...)
}

// renderCampaigns renders campaigns as a non-interactive table.
func renderCampaigns(campaigns []pardot.Campaign, current string) string {
	rows := make([][]string, 0, len(campaigns))
	for _, c := range campaigns {
		mark := ""
		if c.ID == current {
			mark = "✓"
		}
		rows = append(rows, []string{"", c.ID, c.Name, mark})
	}
	return campaignTable(rows).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return listHeaderStyle
			}
			return lipgloss.NewStyle().Foreground(colorWhite)
		}).
		Render()
}
