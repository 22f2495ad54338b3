package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/frame/pkg/graph"
	"github.com/matzehuels/frame/pkg/netlist"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	listHeaderStyle   = lipgloss.NewStyle().Foreground(colorLabel).Bold(true)
)

// inspectCommand creates the inspect command.
func (c *CLI) inspectCommand() *cobra.Command {
	var (
		squares bool
		plain   bool
	)

	cmd := &cobra.Command{
		Use:   "inspect [netlist.yaml]",
		Short: "Browse the nodes of a derived graph",
		Long: `Browse the nodes of a derived graph interactively.

Move with the arrow keys (or j/k); the panel below the table shows the
neighbors of the selected node with their edge weights. Use --plain to
print the node table without the interactive browser.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runInspect(cmd.Context(), args[0], squares, plain)
		},
	}

	cmd.Flags().BoolVar(&squares, "squares", false, "create default squares before deriving the graph")
	cmd.Flags().BoolVar(&plain, "plain", false, "print the node table and exit")

	return cmd
}

func (c *CLI) runInspect(ctx context.Context, input string, squares, plain bool) error {
	n, err := netlist.ReadFile(input)
	if err != nil {
		return err
	}
	if squares {
		if _, err := n.CreateSquares(); err != nil {
			return err
		}
	}

	m := newInspectModel(input, n.Graph())
	if plain {
		m.height = max(n.Graph().NodeCount(), 1)
		fmt.Println(m.table())
		return nil
	}

	_, err = tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	return err
}

// =============================================================================
// inspectModel - Interactive node browser
// =============================================================================

// inspectModel is the bubbletea model for browsing graph nodes.
type inspectModel struct {
	title  string
	g      *graph.Graph
	nodes  []graph.Node
	cursor int
	offset int
	height int
}

func newInspectModel(title string, g *graph.Graph) inspectModel {
	return inspectModel{title: title, g: g, nodes: g.Nodes(), height: 15}
}

func (m inspectModel) Init() tea.Cmd {
	return nil
}

func (m inspectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			m.move(-1)
		case "down", "j":
			m.move(1)
		case "pgup":
			m.move(-m.height)
		case "pgdown":
			m.move(m.height)
		case "home", "g":
			m.move(-len(m.nodes))
		case "end", "G":
			m.move(len(m.nodes))
		}
	case tea.WindowSizeMsg:
		// Leave room for the title, help line and neighbor panel.
		m.height = max(msg.Height-14, 5)
		m.move(0)
	}
	return m, nil
}

// move shifts the cursor by delta, clamped to the node list, and scrolls so
// the cursor stays visible.
func (m *inspectModel) move(delta int) {
	if len(m.nodes) == 0 {
		return
	}
	m.cursor = min(max(m.cursor+delta, 0), len(m.nodes)-1)
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+m.height {
		m.offset = m.cursor - m.height + 1
	}
}

func (m inspectModel) View() string {
	var b strings.Builder

	b.WriteString(styleTitle.Render(m.title))
	b.WriteString("\n")
	b.WriteString(styleMuted.Render(fmt.Sprintf("%d modules · %d hypernodes · %d edges",
		m.g.NodeCount()-m.g.HypernodeCount(), m.g.HypernodeCount(), m.g.EdgeCount())))
	b.WriteString("\n")
	b.WriteString(styleMuted.Render("↑/↓ navigate  q quit"))
	b.WriteString("\n\n")

	if len(m.nodes) == 0 {
		b.WriteString(styleMuted.Render("(empty netlist)"))
		return b.String()
	}

	b.WriteString(m.table())
	b.WriteString("\n\n")
	b.WriteString(m.neighbors())
	b.WriteString("\n")
	b.WriteString(styleMuted.Render(fmt.Sprintf("  [%d/%d]", m.cursor+1, len(m.nodes))))

	return b.String()
}

// table renders the visible window of the node list.
func (m inspectModel) table() string {
	end := min(m.offset+m.height, len(m.nodes))

	rows := make([][]string, 0, end-m.offset)
	for i := m.offset; i < end; i++ {
		n := m.nodes[i]
		cursor := "  "
		if i == m.cursor {
			cursor = "▸ "
		}
		rows = append(rows, []string{
			cursor,
			strconv.Itoa(n.ID),
			n.Name,
			n.Kind.String(),
			formatNumber(n.Mass),
			strconv.Itoa(m.g.Degree(n.ID)),
		})
	}

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorMuted)).
		Headers("", "ID", "Name", "Kind", "Mass", "Degree").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return listHeaderStyle
			}
			idx := m.offset + row
			if idx == m.cursor {
				return listSelectedStyle
			}
			if idx < len(m.nodes) && m.nodes[idx].IsHypernode() {
				return styleMuted
			}
			return lipgloss.NewStyle()
		}).
		Render()
}

// neighbors renders the adjacency of the selected node.
func (m inspectModel) neighbors() string {
	sel := m.nodes[m.cursor]
	var b strings.Builder
	b.WriteString(styleAccent.Render(sel.Name))
	b.WriteString(styleMuted.Render(" is connected to:"))
	b.WriteString("\n")

	nbrs := m.g.Neighbors(sel.ID)
	if len(nbrs) == 0 {
		b.WriteString("  " + styleMuted.Render("nothing"))
		b.WriteString("\n")
	}
	for _, nb := range nbrs {
		other, _ := m.g.Node(nb.ID)
		b.WriteString(fmt.Sprintf("  %s %s %s\n",
			styleMuted.Render(markArrow),
			styleText.Render(other.Name),
			styleMuted.Render("w="+formatNumber(nb.Weight))))
	}
	return b.String()
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'g', 6, 64)
}
