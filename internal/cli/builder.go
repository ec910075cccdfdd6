package cli

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/Firecargit/BizHub-saas/pkg/gateway"
	"github.com/Firecargit/BizHub-saas/pkg/page"
	"github.com/Firecargit/BizHub-saas/pkg/session"
)

// builderRowHeight is the synthetic row geometry the terminal canvas feeds
// the reorder engine: element i occupies [i*h, (i+1)*h).
const builderRowHeight = 60.0

// builderCommand opens the interactive terminal page builder.
func (c *CLI) builderCommand() *cobra.Command {
	var userID string

	cmd := &cobra.Command{
		Use:   "builder",
		Short: "Build a page interactively in the terminal",
		Long:  `Open an interactive canvas: pick widgets from the catalog, place them on the page, reorder and delete them, and save the layout through the persistence gateway.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			gw, err := newGateway(cmd.Context(), cfg)
			if err != nil {
				return err
			}

			sess := sessionFor(userID)
			elements, err := loadMirrored(cmd.Context(), gw, sess)
			if err != nil {
				return err
			}

			store := page.NewStore()
			store.Restore(elements)
			ctrl := page.NewController(page.NewFactory(page.NewCatalog()), store)

			m := newBuilderModel(ctrl, store, gw, sess)
			p := tea.NewProgram(m)
			finalModel, err := p.Run()
			if err != nil {
				return err
			}

			if fm, ok := finalModel.(builderModel); ok && fm.dirty {
				loggerFromContext(cmd.Context()).Warn("unsaved changes discarded", "user", sess.UserID)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&userID, "user", "", "user id to build for (default: local user)")
	return cmd
}

// =============================================================================
// builderModel - Interactive page building
// =============================================================================

// builderPane identifies the focused pane.
type builderPane int

const (
	paneCatalog builderPane = iota
	paneCanvas
)

// saveResultMsg carries the outcome of an asynchronous save.
type saveResultMsg struct {
	err error
}

// builderModel is the bubbletea model for the interactive builder. The
// catalog pane lists widget types; the canvas pane shows placed elements in
// visual order. All mutations go through the drag controller so the builder
// exercises the same gesture semantics as a pointer drag.
type builderModel struct {
	ctrl  *page.Controller
	store *page.Store
	gw    *gateway.Gateway
	sess  *session.Session

	types  []page.ElementType
	pane   builderPane
	cursor int // catalog selection
	row    int // canvas selection
	status string
	saving bool
	dirty  bool
}

func newBuilderModel(ctrl *page.Controller, store *page.Store, gw *gateway.Gateway, sess *session.Session) builderModel {
	return builderModel{
		ctrl:  ctrl,
		store: store,
		gw:    gw,
		sess:  sess,
		types: page.Types(),
	}
}

func (m builderModel) Init() tea.Cmd {
	return nil
}

func (m builderModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case saveResultMsg:
		m.saving = false
		if msg.err != nil {
			m.status = "save failed: " + msg.err.Error()
		} else {
			m.status = "saved"
			m.dirty = false
		}
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "tab":
			if m.pane == paneCatalog {
				m.pane = paneCanvas
			} else {
				m.pane = paneCatalog
			}
		case "up", "k":
			m.cursorUp()
		case "down", "j":
			m.cursorDown()
		case "enter":
			if m.pane == paneCatalog {
				m.addSelected()
			}
		case "K", "shift+up":
			if m.pane == paneCanvas {
				m.moveSelected(-1)
			}
		case "J", "shift+down":
			if m.pane == paneCanvas {
				m.moveSelected(+1)
			}
		case "d", "x":
			if m.pane == paneCanvas {
				m.deleteSelected()
			}
		case "s":
			if !m.saving {
				m.saving = true
				m.status = "saving..."
				return m, m.saveCmd()
			}
		}
	}
	return m, nil
}

func (m *builderModel) cursorUp() {
	if m.pane == paneCatalog {
		if m.cursor > 0 {
			m.cursor--
		}
		return
	}
	if m.row > 0 {
		m.row--
	}
}

func (m *builderModel) cursorDown() {
	if m.pane == paneCatalog {
		if m.cursor < len(m.types)-1 {
			m.cursor++
		}
		return
	}
	if m.row < m.store.Len()-1 {
		m.row++
	}
}

// addSelected places the highlighted catalog widget at the end of the page,
// as a drop below every placed element.
func (m *builderModel) addSelected() {
	t := m.types[m.cursor]
	y := page.CanvasPadding + float64(m.store.Len())*builderRowHeight
	m.ctrl.StartNew(t)
	if err := m.ctrl.Drop(page.CanvasPadding, y, m.candidates()); err != nil {
		m.status = err.Error()
		return
	}
	m.row = m.store.Len() - 1
	m.status = "added " + widgetLabel(t)
	m.dirty = true
}

// moveSelected shifts the selected element one slot up or down by replaying
// the gesture a pointer drag would produce against the row geometry.
func (m *builderModel) moveSelected(dir int) {
	n := m.store.Len()
	if n < 2 {
		return
	}
	target := m.row + dir
	if target < 0 || target >= n {
		return
	}

	snapshot := m.store.Snapshot()
	el := snapshot[m.row]

	// Pointer above the destination row's midpoint inserts before it; a
	// pointer below every midpoint appends at the end.
	var pointerY float64
	if dir < 0 {
		pointerY = float64(target) * builderRowHeight
	} else {
		pointerY = float64(target+1) * builderRowHeight
	}

	m.ctrl.StartMove(el.ID)
	m.ctrl.Over(pointerY, m.candidates())
	if err := m.ctrl.Drop(0, pointerY, m.candidates()); err != nil {
		m.status = err.Error()
		return
	}
	m.row = target
	m.status = "moved " + widgetLabel(el.Type)
	m.dirty = true
}

func (m *builderModel) deleteSelected() {
	snapshot := m.store.Snapshot()
	if m.row >= len(snapshot) {
		return
	}
	el := snapshot[m.row]
	m.store.Remove(el.ID)
	if m.row >= m.store.Len() && m.row > 0 {
		m.row--
	}
	m.status = "removed " + widgetLabel(el.Type)
	m.dirty = true
}

// saveCmd snapshots the page and submits it off the event loop.
func (m builderModel) saveCmd() tea.Cmd {
	snapshot := m.store.Snapshot()
	gw, sess := m.gw, m.sess
	return func() tea.Msg {
		return saveResultMsg{err: gw.Save(context.Background(), sess, snapshot)}
	}
}

// candidates projects the canvas rows into reorder geometry.
func (m builderModel) candidates() []page.Candidate {
	snapshot := m.store.Snapshot()
	out := make([]page.Candidate, len(snapshot))
	for i, el := range snapshot {
		out[i] = page.Candidate{ID: el.ID, Top: float64(i) * builderRowHeight, Height: builderRowHeight}
	}
	return out
}

func (m builderModel) View() string {
	var b strings.Builder

	b.WriteString(styleTitle.Render("BizHub Builder"))
	b.WriteString("  ")
	b.WriteString(styleDim.Render(m.sess.UserID))
	b.WriteString("\n")
	b.WriteString(styleDim.Render("tab: switch pane  enter: add  J/K: reorder  d: delete  s: save  q: quit"))
	b.WriteString("\n\n")

	catalog := m.viewCatalog()
	canvas := m.viewCanvas()
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, catalog, "  ", canvas))

	b.WriteString("\n")
	if m.status != "" {
		b.WriteString(styleStatus.Render(m.status))
		b.WriteString("\n")
	}
	return b.String()
}

func (m builderModel) viewCatalog() string {
	var b strings.Builder
	b.WriteString(styleTypeTag.Render("Widgets"))
	b.WriteString("\n")
	for i, t := range m.types {
		cursor := "  "
		if m.pane == paneCatalog && i == m.cursor {
			cursor = "> "
		}
		line := cursor + widgetLabel(t)
		if m.pane == paneCatalog && i == m.cursor {
			b.WriteString(styleSelected.Render(line))
		} else {
			b.WriteString(styleNormal.Render(line))
		}
		b.WriteString("\n")
	}
	return b.String()
}

func (m builderModel) viewCanvas() string {
	snapshot := m.store.Snapshot()
	if len(snapshot) == 0 {
		return stylePlaceholder.Render("Drag elements here to build your page")
	}

	blocks := make([]string, len(snapshot))
	for i, el := range snapshot {
		header := styleTypeTag.Render(widgetLabel(el.Type))
		if m.pane == paneCanvas && i == m.row {
			header = styleSelected.Render(fmt.Sprintf("> %s", widgetLabel(el.Type)))
		}
		body := styleNormal.Render(contentSummary(el.Content))
		blocks[i] = styleBlock.Render(header + "\n" + body)
	}
	return strings.Join(blocks, "\n")
}
