package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	tabStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB")).
			Padding(0, 1)

	activeTabStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	padStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFD700"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

func newInspectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect schema files...",
		Short: "Browse component layouts interactively",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			comps, err := loadLayouts(cmd, args)
			if err != nil {
				return err
			}
			if len(comps) == 0 {
				return fmt.Errorf("no components declared")
			}
			p := tea.NewProgram(newInspectModel(comps), tea.WithAltScreen())
			_, err = p.Run()
			return err
		},
	}
}

type inspectModel struct {
	comps    []componentLayout
	fields   table.Model
	selected int
}

var fieldColumns = []table.Column{
	{Title: "Field", Width: 16},
	{Title: "Type", Width: 14},
	{Title: "Offset", Width: 7},
	{Title: "Size", Width: 6},
	{Title: "Align", Width: 6},
	{Title: "Pad", Width: 4},
}

func newInspectModel(comps []componentLayout) *inspectModel {
	m := &inspectModel{
		comps: comps,
		fields: table.New(
			table.WithColumns(fieldColumns),
			table.WithFocused(true),
			table.WithHeight(12),
		),
	}
	m.fields.SetRows(fieldRows(comps[0]))
	return m
}

func fieldRows(c componentLayout) []table.Row {
	rows := make([]table.Row, len(c.layout.Fields))
	for i, f := range c.layout.Fields {
		rows[i] = table.Row{
			f.Name,
			c.schema.Field(i).TypeString(),
			strconv.FormatUint(uint64(f.Offset), 10),
			strconv.FormatUint(uint64(f.Size), 10),
			strconv.FormatUint(uint64(f.Align), 10),
			strconv.FormatUint(uint64(f.Padding), 10),
		}
	}
	return rows
}

func (m *inspectModel) Init() tea.Cmd {
	return nil
}

func (m *inspectModel) selectComponent(i int) {
	n := len(m.comps)
	m.selected = (i%n + n) % n
	m.fields.SetRows(fieldRows(m.comps[m.selected]))
	m.fields.SetCursor(0)
}

func (m *inspectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			return m, tea.Quit
		case "tab", "right", "l":
			m.selectComponent(m.selected + 1)
			return m, nil
		case "shift+tab", "left", "h":
			m.selectComponent(m.selected - 1)
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.fields, cmd = m.fields.Update(msg)
	return m, cmd
}

func (m *inspectModel) View() string {
	var b strings.Builder
	c := m.comps[m.selected]

	b.WriteString(titleStyle.Render("ecsgen inspect"))
	b.WriteString("\n\n")

	tabs := make([]string, len(m.comps))
	for i, comp := range m.comps {
		style := tabStyle
		if i == m.selected {
			style = activeTabStyle
		}
		tabs[i] = style.Render(comp.schema.Name())
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, tabs...))
	b.WriteString("\n\n")

	fmt.Fprintf(&b, "size %d  align %d\n", c.layout.Size, c.layout.Align)
	switch {
	case c.layout.Placeholder:
		b.WriteString(padStyle.Render("empty component: 1 byte placeholder"))
		b.WriteString("\n")
	default:
		b.WriteString(m.fields.View())
		b.WriteString("\n")
		if c.layout.TrailingPadding > 0 {
			b.WriteString(padStyle.Render(fmt.Sprintf("trailing padding %d", c.layout.TrailingPadding)))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render("tab/←/→: component • ↑/↓: field • q: quit"))
	return b.String()
}
