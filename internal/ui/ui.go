package ui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/trackflix/trackflix/internal/schema"
	"github.com/trackflix/trackflix/internal/session"
	"github.com/trackflix/trackflix/internal/store"
)

// ViewState represents the current view in the TUI.
type ViewState int

const (
	ResourceListView ViewState = iota
	EntityListView
	FormView
	ConfirmDeleteView
)

// Model represents the TUI application state.
type Model struct {
	ctx     context.Context
	view    ViewState
	stores  map[string]*store.Store
	session *session.Session

	width  int
	height int

	resourceList list.Model
	entityList   list.Model
	current      schema.Schema

	inputs   []textinput.Model
	focus    int
	formErrs schema.Result

	pendingDelete int64
	status        string
	err           error

	help help.Model
	keys keyMap
}

// NewModel creates a new TUI model over one store per catalog resource.
func NewModel(ctx context.Context, stores map[string]*store.Store) *Model {
	items := make([]list.Item, 0, len(stores))
	for _, sc := range schema.Catalog() {
		if _, ok := stores[sc.Resource]; ok {
			items = append(items, resourceItem{schema: sc})
		}
	}

	resourceList := list.New(items, list.NewDefaultDelegate(), 0, 0)
	resourceList.Title = "Trackflix Admin"

	return &Model{
		ctx:          ctx,
		view:         ResourceListView,
		stores:       stores,
		resourceList: resourceList,
		help:         help.New(),
		keys:         newKeyMap(),
	}
}

func (m *Model) Init() tea.Cmd {
	return nil
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resourceList.SetSize(msg.Width-4, msg.Height-8)
		m.entityList.SetSize(msg.Width-4, msg.Height-8)
		return m, nil

	case tea.KeyMsg:
		switch m.view {
		case ResourceListView:
			return m.handleResourceListKeys(msg)
		case EntityListView:
			return m.handleEntityListKeys(msg)
		case FormView:
			return m.handleFormKeys(msg)
		case ConfirmDeleteView:
			return m.handleConfirmKeys(msg)
		}

	case refreshedMsg:
		if msg.err != nil {
			m.err = msg.err
			m.view = ResourceListView
			return m, nil
		}
		m.rebuildEntityList()
		m.view = EntityListView
		return m, nil

	case submitDoneMsg:
		var ve *session.ValidationError
		switch {
		case msg.err == nil:
			m.session = nil
			m.inputs = nil
			m.formErrs = nil
			m.status = "Saved"
			m.rebuildEntityList()
			m.view = EntityListView
		case errors.As(msg.err, &ve):
			m.formErrs = ve.Fields
		default:
			m.err = msg.err
		}
		return m, nil

	case deleteDoneMsg:
		if msg.err != nil {
			m.err = msg.err
		} else {
			m.status = "Deleted"
			m.rebuildEntityList()
		}
		m.pendingDelete = 0
		m.view = EntityListView
		return m, nil
	}

	return m.updateLists(msg)
}

// View renders the UI based on the current view state.
func (m *Model) View() string {
	switch m.view {
	case ResourceListView:
		return m.renderResourceList()
	case EntityListView:
		return m.renderEntityList()
	case FormView:
		return m.renderForm()
	case ConfirmDeleteView:
		return m.renderConfirm()
	default:
		return ""
	}
}

func (m *Model) handleResourceListKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "enter":
		if item, ok := m.resourceList.SelectedItem().(resourceItem); ok {
			m.current = item.schema
			m.err = nil
			m.status = ""
			return m, m.refreshCurrent()
		}
	}

	var cmd tea.Cmd
	m.resourceList, cmd = m.resourceList.Update(msg)
	return m, cmd
}

func (m *Model) handleEntityListKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.view = ResourceListView
		m.err = nil
		return m, nil
	case "r":
		return m, m.refreshCurrent()
	case "n":
		m.startCreate()
		return m, nil
	case "e", "enter":
		if item, ok := m.entityList.SelectedItem().(entityItem); ok {
			if err := m.startEdit(item.entity); err != nil {
				m.err = err
			}
		}
		return m, nil
	case "d":
		if item, ok := m.entityList.SelectedItem().(entityItem); ok {
			if id, ok := item.entity.ID(); ok {
				m.pendingDelete = id
				m.view = ConfirmDeleteView
			}
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.entityList, cmd = m.entityList.Update(msg)
	return m, cmd
}

func (m *Model) handleFormKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.session != nil && m.session.Submitting() {
		// A submit is in flight; only quit is honored.
		if s := msg.String(); s == "ctrl+c" {
			return m, tea.Quit
		}
		return m, nil
	}

	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.session.Cancel()
		m.session = nil
		m.inputs = nil
		m.formErrs = nil
		m.view = EntityListView
		return m, nil
	case "up", "shift+tab":
		m.setFocus(m.focus - 1)
		return m, nil
	case "down", "tab", "enter":
		m.setFocus(m.focus + 1)
		return m, nil
	case "ctrl+s":
		return m, m.submitForm()
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)

	field := m.session.Schema().Fields[m.focus]
	if err := m.session.SetField(field.Name, m.inputs[m.focus].Value()); err != nil {
		m.err = err
		return m, cmd
	}
	// Live validation keeps the error column current while typing.
	m.formErrs = m.session.Validate()
	return m, cmd
}

func (m *Model) handleConfirmKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "n", "esc":
		m.pendingDelete = 0
		m.view = EntityListView
		return m, nil
	case "y":
		return m, m.deletePending()
	case "ctrl+c", "q":
		return m, tea.Quit
	}
	return m, nil
}

func (m *Model) updateLists(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.view {
	case ResourceListView:
		m.resourceList, cmd = m.resourceList.Update(msg)
	case EntityListView:
		m.entityList, cmd = m.entityList.Update(msg)
	}
	return m, cmd
}

func (m *Model) currentStore() *store.Store {
	return m.stores[m.current.Resource]
}

func (m *Model) refreshCurrent() tea.Cmd {
	st := m.currentStore()
	resource := m.current.Resource
	return func() tea.Msg {
		return refreshedMsg{resource: resource, err: st.Refresh(m.ctx)}
	}
}

func (m *Model) rebuildEntityList() {
	st := m.currentStore()
	if st == nil {
		return
	}
	entities := st.Items()
	items := make([]list.Item, len(entities))
	for i, entity := range entities {
		items[i] = entityItem{entity: entity, schema: m.current}
	}
	m.entityList = list.New(items, list.NewDefaultDelegate(), 0, 0)
	m.entityList.Title = m.current.Title
	m.entityList.SetSize(m.width-4, m.height-8)
}

// startCreate opens the form with an empty buffer.
func (m *Model) startCreate() {
	m.session = session.New(m.current)
	m.session.BeginCreate(nil)
	m.buildInputs()
	m.view = FormView
}

// startEdit opens the form seeded from the selected entity.
func (m *Model) startEdit(entity schema.Entity) error {
	s := session.New(m.current)
	if err := s.BeginEdit(entity); err != nil {
		return err
	}
	m.session = s
	m.buildInputs()
	m.view = FormView
	return nil
}

func (m *Model) buildInputs() {
	fields := m.session.Schema().Fields
	m.inputs = make([]textinput.Model, len(fields))
	for i, f := range fields {
		input := textinput.New()
		input.Placeholder = f.Label
		input.SetValue(m.session.FieldValue(f.Name))
		input.CharLimit = 512
		m.inputs[i] = input
	}
	m.focus = 0
	m.formErrs = nil
	m.err = nil
	m.inputs[0].Focus()
}

func (m *Model) setFocus(i int) {
	if len(m.inputs) == 0 {
		return
	}
	if i < 0 {
		i = len(m.inputs) - 1
	}
	if i >= len(m.inputs) {
		i = 0
	}
	m.inputs[m.focus].Blur()
	m.focus = i
	m.inputs[m.focus].Focus()
}

func (m *Model) submitForm() tea.Cmd {
	sess := m.session
	st := m.currentStore()
	return func() tea.Msg {
		return submitDoneMsg{err: sess.Submit(m.ctx, st)}
	}
}

func (m *Model) deletePending() tea.Cmd {
	st := m.currentStore()
	id := m.pendingDelete
	return func() tea.Msg {
		if err := st.Remove(m.ctx, id); err != nil {
			return deleteDoneMsg{err: err}
		}
		return deleteDoneMsg{err: st.Refresh(m.ctx)}
	}
}

func (m *Model) renderResourceList() string {
	helpView := m.help.ShortHelpView([]key.Binding{m.keys.enter, m.keys.quit})
	banner := ""
	if m.err != nil {
		banner = styles.err.Render(fmt.Sprintf("Error: %v", m.err)) + "\n\n"
	}
	return fmt.Sprintf("%s%s\n\n%s", banner, m.resourceList.View(), helpView)
}

func (m *Model) renderEntityList() string {
	helpKeys := []key.Binding{m.keys.create, m.keys.edit, m.keys.delete, m.keys.back, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)

	banner := ""
	if m.err != nil {
		banner = styles.err.Render(fmt.Sprintf("Error: %v", m.err)) + "\n\n"
	} else if m.status != "" {
		banner = styles.ok.Render(m.status) + "\n\n"
	}
	return fmt.Sprintf("%s%s\n\n%s", banner, m.entityList.View(), helpView)
}

func (m *Model) renderForm() string {
	var b strings.Builder

	title := fmt.Sprintf("New %s", m.current.Title)
	if m.session.Mode() == session.Editing {
		title = fmt.Sprintf("Edit %s #%d", m.current.Title, m.session.EditingID())
	}
	b.WriteString(styles.title.Render(title))
	b.WriteString("\n")

	for i, f := range m.session.Schema().Fields {
		label := f.Label
		if i == m.focus {
			label = styles.selected.Render(label)
		} else {
			label = styles.label.Render(label)
		}
		b.WriteString(fmt.Sprintf("%s\n%s\n", label, m.inputs[i].View()))
		if msg, ok := m.formErrs[f.Name]; ok {
			b.WriteString(styles.err.Render("  "+msg) + "\n")
		}
	}

	if m.session.Submitting() {
		b.WriteString("\n" + styles.warn.Render("Saving...") + "\n")
	}
	if m.err != nil {
		b.WriteString("\n" + styles.err.Render(fmt.Sprintf("Error: %v", m.err)) + "\n")
	}

	helpKeys := []key.Binding{m.keys.submit, m.keys.back, m.keys.quit}
	b.WriteString("\n" + m.help.ShortHelpView(helpKeys))
	return b.String()
}

func (m *Model) renderConfirm() string {
	title := styles.title.Render(fmt.Sprintf("Delete %s #%d?", m.current.Title, m.pendingDelete))
	info := "\nThe server copy is refetched after deletion.\n"
	helpView := m.help.ShortHelpView([]key.Binding{m.keys.yes, m.keys.no, m.keys.quit})
	return fmt.Sprintf("%s%s\n%s", title, info, helpView)
}
