package view

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/bubbles/filepicker"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/invoicer/internal/client"
	"github.com/MrJamesThe3rd/invoicer/internal/importer"
	"github.com/MrJamesThe3rd/invoicer/internal/item"
)

const importTimeout = 2 * time.Minute

type importState int

const (
	importStateKindSelect importState = iota
	importStateFilePick
	importStateParsing
	importStatePreview
	importStateResult
)

type ImportModel struct {
	CommonModel
	importService *importer.Service

	state        importState
	filePicker   filepicker.Model
	selectedKind importer.Kind
	kindOptions  []importer.Kind
	kindCursor   int

	batch       *importer.Batch
	previewList list.Model
	selected    map[int]bool

	status string
	err    error
}

func NewImportModel(impSvc *importer.Service) ImportModel {
	fp := filepicker.New()
	fp.CurrentDirectory, _ = os.Getwd()
	fp.ShowHidden = false
	fp.DirAllowed = false
	fp.FileAllowed = true
	fp.AllowedTypes = []string{".csv"}
	fp.SetHeight(15)

	return ImportModel{
		importService: impSvc,
		filePicker:    fp,
		kindOptions:   []importer.Kind{importer.KindItems, importer.KindClients},
		selected:      make(map[int]bool),
	}
}

func (m ImportModel) Title() string { return "Import Catalog" }

func (m ImportModel) ShortHelp() string {
	if m.state == importStatePreview {
		return "Space: toggle | a: all | n: none | Enter: import | Esc: cancel"
	}

	return "Esc: back | Enter: select"
}

func (m ImportModel) Init() tea.Cmd {
	return m.filePicker.Init()
}

func (m ImportModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.Type == tea.KeyEsc {
			return m.handleEsc()
		}

		if m.state == importStateKindSelect {
			return m.updateKindSelect(msg)
		}

		if m.state == importStatePreview {
			return m.updatePreview(msg)
		}

	case parseResultMsg:
		if msg.err != nil {
			m.state = importStateResult
			m.err = msg.err
			m.status = fmt.Sprintf("Error: %v", msg.err)

			return m, nil
		}

		m.batch = msg.batch
		m.selected = make(map[int]bool, msg.batch.Len())
		for i := range msg.batch.Len() {
			m.selected[i] = true
		}

		m.state = importStatePreview

		items := previewItems(msg.batch)
		delegate := previewDelegate{selected: &m.selected}
		m.previewList = list.New(items, delegate, 80, 20)
		m.previewList.Title = fmt.Sprintf("%d %s read as %s", msg.batch.Len(), msg.batch.Kind, msg.batch.Charset)
		m.previewList.SetShowStatusBar(false)
		m.previewList.SetFilteringEnabled(false)
		m.previewList.SetShowHelp(false)

		return m, nil

	case storeResultMsg:
		m.state = importStateResult
		if msg.err != nil {
			m.err = msg.err
			m.status = fmt.Sprintf("Error: %v", msg.err)

			return m, nil
		}

		m.status = fmt.Sprintf("Imported %d %s.", msg.count, m.selectedKind)

		return m, nil
	}

	if m.state != importStateFilePick {
		return m, nil
	}

	var cmd tea.Cmd
	m.filePicker, cmd = m.filePicker.Update(msg)

	if didSelect, path := m.filePicker.DidSelectFile(msg); didSelect {
		m.state = importStateParsing
		m.status = fmt.Sprintf("Reading %s...", path)

		return m, m.parseCmd(path)
	}

	return m, cmd
}

func (m ImportModel) handleEsc() (tea.Model, tea.Cmd) {
	switch m.state {
	case importStateFilePick:
		m.state = importStateKindSelect
		return m, nil
	case importStateResult, importStatePreview:
		m.state = importStateKindSelect
		m.batch = nil
		m.err = nil
		m.status = ""
		m.selected = make(map[int]bool)

		return m, nil
	}

	return m, Back
}

func (m ImportModel) updateKindSelect(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyUp:
		if m.kindCursor > 0 {
			m.kindCursor--
		}
	case tea.KeyDown:
		if m.kindCursor < len(m.kindOptions)-1 {
			m.kindCursor++
		}
	case tea.KeyEnter:
		m.selectedKind = m.kindOptions[m.kindCursor]
		m.state = importStateFilePick

		return m, m.filePicker.Init()
	}

	return m, nil
}

func (m ImportModel) updatePreview(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case " ":
		idx := m.previewList.Index()
		m.selected[idx] = !m.selected[idx]

		return m, nil
	case "a":
		for i := range m.batch.Len() {
			m.selected[i] = true
		}

		return m, nil
	case "n":
		for i := range m.batch.Len() {
			m.selected[i] = false
		}

		return m, nil
	case "enter":
		return m, m.storeCmd()
	}

	var cmd tea.Cmd
	m.previewList, cmd = m.previewList.Update(msg)

	return m, cmd
}

func (m ImportModel) View() string {
	switch m.state {
	case importStateKindSelect:
		return m.viewKindSelect()
	case importStateFilePick:
		return lipgloss.NewStyle().Padding(1).Render(
			fmt.Sprintf("Select CSV file with %s:\n\n%s", m.selectedKind, m.filePicker.View()),
		)
	case importStateParsing:
		return lipgloss.NewStyle().Padding(2).Render(m.status)
	case importStatePreview:
		return lipgloss.NewStyle().Padding(1).Render(m.previewList.View())
	case importStateResult:
		status := okStyle(m.status)
		if m.err != nil {
			status = errorStyle(m.status)
		}

		return lipgloss.NewStyle().Padding(2).Render(status + "\n\n(Esc to go back)")
	}

	return ""
}

func (m ImportModel) viewKindSelect() string {
	s := "Import into:\n\n"

	for i, kind := range m.kindOptions {
		cursor := " "
		if i == m.kindCursor {
			cursor = ">"
		}

		s += fmt.Sprintf("%s %s\n", cursor, string(kind))
	}

	return lipgloss.NewStyle().Padding(2).Render(s)
}

// selectedBatch keeps only the rows ticked in the preview.
func selectedBatch(b *importer.Batch, selected map[int]bool) *importer.Batch {
	out := &importer.Batch{Kind: b.Kind, Charset: b.Charset}

	for i, it := range b.Items {
		if selected[i] {
			out.Items = append(out.Items, it)
		}
	}

	for i, c := range b.Clients {
		if selected[i] {
			out.Clients = append(out.Clients, c)
		}
	}

	return out
}

// Messages

type parseResultMsg struct {
	batch *importer.Batch
	err   error
}

type storeResultMsg struct {
	count int
	err   error
}

func (m ImportModel) parseCmd(path string) tea.Cmd {
	kind := m.selectedKind

	return func() tea.Msg {
		f, err := os.Open(path)
		if err != nil {
			return parseResultMsg{err: err}
		}
		defer f.Close()

		batch, err := m.importService.Parse(kind, f)

		return parseResultMsg{batch: batch, err: err}
	}
}

func (m ImportModel) storeCmd() tea.Cmd {
	batch := selectedBatch(m.batch, m.selected)

	return func() tea.Msg {
		if batch.Len() == 0 {
			return storeResultMsg{}
		}

		ctx, cancel := context.WithTimeout(context.Background(), importTimeout)
		defer cancel()

		n, err := m.importService.Store(ctx, batch)

		return storeResultMsg{count: n, err: err}
	}
}

// Preview list

type previewItem struct {
	line1 string
	line2 string
	index int
}

func (i previewItem) Title() string       { return i.line1 }
func (i previewItem) Description() string { return i.line2 }
func (i previewItem) FilterValue() string { return i.line1 }

func previewItems(b *importer.Batch) []list.Item {
	items := make([]list.Item, 0, b.Len())

	for i, it := range b.Items {
		items = append(items, itemPreview(i, it))
	}

	for i, c := range b.Clients {
		items = append(items, clientPreview(i, c))
	}

	return items
}

func itemPreview(i int, it item.CreateParams) previewItem {
	return previewItem{
		index: i,
		line1: fmt.Sprintf("%s  %s", it.Name, it.UnitPrice),
		line2: it.Description,
	}
}

func clientPreview(i int, c client.CreateParams) previewItem {
	return previewItem{
		index: i,
		line1: c.Name,
		line2: fmt.Sprintf("%s  %s", c.Email, c.Address.Country),
	}
}

type previewDelegate struct {
	selected *map[int]bool
}

func (d previewDelegate) Height() int                             { return 2 }
func (d previewDelegate) Spacing() int                            { return 0 }
func (d previewDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }

func (d previewDelegate) Render(w io.Writer, m list.Model, index int, listItem list.Item) {
	row, ok := listItem.(previewItem)
	if !ok {
		return
	}

	checkbox := "[ ]"
	if (*d.selected)[row.index] {
		checkbox = "[x]"
	}

	cursor := "  "
	if index == m.Index() {
		cursor = "> "
	}

	fmt.Fprintf(w, "%s%s %s\n      %s\n", cursor, checkbox, row.line1, row.line2)
}
