package cli

import (
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/mindmesh/pkg/editor"
	"github.com/matzehuels/mindmesh/pkg/mindmap"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// editModel - Interactive Map Editing
// =============================================================================

// editModel is the bubbletea model for the terminal editor. It drives
// an editor session over the loaded map; the cursor walks the visible
// non-waypoint nodes in a stable order.
type editModel struct {
	mapID   string
	session *editor.Session

	cursor  int
	height  int
	offset  int
	save    bool
	status  string
	connect string // node marked as connect source, empty when inactive

	input   textinput.Model
	editing string // node being renamed or created, empty when no prompt
}

func newEditModel(mapID string, st *mindmap.Store) editModel {
	ti := textinput.New()
	ti.Placeholder = "label"
	ti.CharLimit = 120

	return editModel{
		mapID:   mapID,
		session: editor.NewSession(st),
		height:  15,
		input:   ti,
	}
}

// rows returns the visible non-waypoint nodes the cursor can land on.
// Root first, then by ID, matching the show command's outline.
func (m editModel) rows() []mindmap.Node {
	var rows []mindmap.Node
	for _, n := range m.session.Store().VisibleNodes() {
		if n.IsWaypoint() {
			continue
		}
		rows = append(rows, n)
	}
	sortOutline(rows)
	return rows
}

// sortOutline orders nodes root first, then by ID.
func sortOutline(nodes []mindmap.Node) {
	slices.SortFunc(nodes, func(a, b mindmap.Node) int {
		if a.ID == mindmap.RootNodeID {
			return -1
		}
		if b.ID == mindmap.RootNodeID {
			return 1
		}
		return strings.Compare(a.ID, b.ID)
	})
}

func (m editModel) Init() tea.Cmd {
	return nil
}

func (m editModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.editing != "" {
			return m.updatePrompt(msg)
		}
		return m.updateList(msg)
	case tea.WindowSizeMsg:
		m.height = msg.Height - 8
		if m.height < 5 {
			m.height = 5
		}
	}
	return m, nil
}

// updatePrompt handles keys while the label input is open.
func (m editModel) updatePrompt(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		label := m.input.Value()
		if err := m.session.Store().UpdateNode(m.editing, mindmap.NodePatch{Label: &label}); err != nil {
			m.status = err.Error()
		}
		m.editing = ""
		m.input.Reset()
		m.input.Blur()
		return m, nil
	case "esc":
		m.editing = ""
		m.input.Reset()
		m.input.Blur()
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// updateList handles keys in outline navigation mode.
func (m editModel) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	rows := m.rows()
	if m.cursor >= len(rows) {
		m.cursor = len(rows) - 1
	}

	switch msg.String() {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit

	case "s":
		m.save = true
		return m, tea.Quit

	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
			if m.cursor < m.offset {
				m.offset = m.cursor
			}
		}

	case "down", "j":
		if m.cursor < len(rows)-1 {
			m.cursor++
			if m.cursor >= m.offset+m.height {
				m.offset = m.cursor - m.height + 1
			}
		}

	case "t":
		m.session.SetTool(nextTool(m.session.Tool()))
		m.status = "tool: " + m.session.Tool().String()

	case "a":
		if len(rows) == 0 {
			break
		}
		m.session.SelectNode(rows[m.cursor].ID)
		eff, err := m.session.CreateShortcut(childPosition(rows[m.cursor]))
		if err != nil {
			m.status = err.Error()
			break
		}
		if len(eff.CreatedNodes) == 1 {
			return m.openPrompt(eff.CreatedNodes[0])
		}

	case "c":
		if len(rows) == 0 {
			break
		}
		target := rows[m.cursor].ID
		if m.connect == "" {
			m.connect = target
			m.status = "connect from " + target + ": move to a node and press c"
			break
		}
		source := m.connect
		m.connect = ""
		if _, err := m.session.Connect(source, target); err != nil {
			m.status = err.Error()
			break
		}
		m.status = fmt.Sprintf("connected %s %s %s (%s)", source, iconArrow, target, m.session.Tool())

	case "r":
		if len(rows) == 0 {
			break
		}
		return m.openPrompt(rows[m.cursor].ID)

	case " ":
		if len(rows) == 0 {
			break
		}
		m.session.ToggleCollapse(rows[m.cursor].ID)

	case "d":
		if len(rows) == 0 {
			break
		}
		id := rows[m.cursor].ID
		m.session.SelectNode(id)
		eff := m.session.DeleteSelection()
		if eff.Empty() {
			m.status = "cannot delete " + id
		} else {
			m.status = fmt.Sprintf("deleted %s (+%d edges)", id, len(eff.RemovedEdges))
			if m.cursor > 0 {
				m.cursor--
			}
		}
	}
	return m, nil
}

// openPrompt starts the label input for the given node.
func (m editModel) openPrompt(nodeID string) (tea.Model, tea.Cmd) {
	m.editing = nodeID
	if n, ok := m.session.Store().Node(nodeID); ok {
		m.input.SetValue(n.Label)
	}
	return m, m.input.Focus()
}

// nextTool cycles through the connect tools in display order.
func nextTool(t editor.Tool) editor.Tool {
	tools := editor.Tools()
	for i, candidate := range tools {
		if candidate == t {
			return tools[(i+1)%len(tools)]
		}
	}
	return tools[0]
}

// childPosition offsets a new child below its parent so fresh nodes
// don't stack on one spot.
func childPosition(parent mindmap.Node) mindmap.Position {
	return mindmap.Position{X: parent.Pos.X + 120, Y: parent.Pos.Y + 80}
}

func (m editModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Edit " + m.mapID))
	b.WriteString("  ")
	b.WriteString(listDimStyle.Render("tool: " + m.session.Tool().String()))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ move  a add  c connect  t tool  r rename  ␣ collapse  d delete  s save  q quit"))
	b.WriteString("\n\n")

	rows := m.rows()
	end := m.offset + m.height
	if end > len(rows) {
		end = len(rows)
	}

	for i := m.offset; i < end; i++ {
		n := rows[i]

		cursor := "  "
		if i == m.cursor {
			cursor = "▸ "
		}

		marker := "•"
		if m.session.Store().IsCollapsed(n.ID) {
			marker = "+"
		}
		if n.ID == m.connect {
			marker = "◆"
		}

		style := listNormalStyle
		if i == m.cursor {
			style = listSelectedStyle
		}

		line := cursor + marker + " " + style.Render(n.DisplayLabel())
		line += " " + listDimStyle.Render("("+n.ID+")")
		if n.IsInfo() {
			line += " " + listDimStyle.Render("[info]")
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	if m.editing != "" {
		b.WriteString("\n")
		b.WriteString(listDimStyle.Render("label: "))
		b.WriteString(m.input.View())
		b.WriteString("\n")
	}
	if m.status != "" {
		b.WriteString("\n")
		b.WriteString(listDimStyle.Render(m.status))
		b.WriteString("\n")
	}
	return b.String()
}
