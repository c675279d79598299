package view

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/invoicer/internal/invoice"
	"github.com/MrJamesThe3rd/invoicer/internal/money"
)

type invoicesState int

const (
	invoicesStateBrowse invoicesState = iota
	invoicesStatePay
	invoicesStateDelete
)

// statusFilters is the cycle behind the "s" key; the empty status means all.
var statusFilters = append([]invoice.Status{""}, invoice.Statuses...)

type InvoicesModel struct {
	CommonModel
	svc *invoice.Service

	state    invoicesState
	table    table.Model
	invoices []*invoice.Invoice
	form     *huh.Form

	statusIdx int
	loading   bool
	err       error
	status    string

	// Form bindings live behind a pointer so they survive model copies.
	pay *paymentForm
}

type paymentForm struct {
	Amount  string
	Method  invoice.Method
	Date    string
	Note    string
	Confirm bool
}

func NewInvoicesModel(svc *invoice.Service) InvoicesModel {
	return InvoicesModel{
		svc: svc,
		table: newTable([]table.Column{
			{Title: "Number", Width: 12},
			{Title: "Client", Width: 24},
			{Title: "Issued", Width: 12},
			{Title: "Due", Width: 12},
			{Title: "Status", Width: 15},
			{Title: "Total", Width: 12},
			{Title: "Balance", Width: 12},
		}),
		loading: true,
		pay:     &paymentForm{},
	}
}

func (m InvoicesModel) Title() string { return "Invoices" }

func (m InvoicesModel) ShortHelp() string {
	if m.state != invoicesStateBrowse {
		return "Navigate form | Esc: cancel"
	}

	return "Esc: back | s: status filter | p: payment | n: mark sent | m: mark paid | x: delete | r: refresh"
}

func (m InvoicesModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m InvoicesModel) filter() invoice.ListFilter {
	var f invoice.ListFilter
	if s := statusFilters[m.statusIdx]; s != "" {
		f.Status = new(s)
	}

	return f
}

func (m InvoicesModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadInvoicesMsg:
		m.loading = false
		m.err = msg.err
		m.invoices = msg.invoices
		m.refreshTable()

		return m, nil

	case invoiceActionMsg:
		m.status = msg.text
		if msg.err != nil {
			m.status = errorStyle(describeError(msg.err))
		}

		m.state = invoicesStateBrowse
		m.form = nil
		m.table.Focus()

		return m, m.loadCmd()

	case RemoteEventMsg:
		if m.state == invoicesStateBrowse {
			return m, m.loadCmd()
		}

		return m, nil

	case tea.WindowSizeMsg:
		m.table.SetHeight(msg.Height - 10)
		return m, nil
	}

	switch m.state {
	case invoicesStatePay, invoicesStateDelete:
		return m.updateForm(msg)
	}

	return m.updateBrowse(msg)
}

func (m InvoicesModel) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			return m, m.loadCmd()
		case "s":
			m.statusIdx = (m.statusIdx + 1) % len(statusFilters)
			return m, m.loadCmd()
		case "p":
			return m.enterPayMode()
		case "x":
			return m.enterDeleteMode()
		case "n":
			if inv := m.selected(); inv != nil {
				return m, m.markSentCmd(inv.ID)
			}
		case "m":
			if inv := m.selected(); inv != nil {
				return m, m.markPaidCmd(inv.ID)
			}
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m InvoicesModel) selected() *invoice.Invoice {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.invoices) {
		return nil
	}

	return m.invoices[idx]
}

func (m InvoicesModel) enterPayMode() (tea.Model, tea.Cmd) {
	inv := m.selected()
	if inv == nil {
		return m, nil
	}

	*m.pay = paymentForm{
		Amount: inv.BalanceDue().String(),
		Method: invoice.MethodBankTransfer,
		Date:   FormatDate(time.Now()),
	}

	methods := make([]huh.Option[invoice.Method], 0, len(invoice.Methods))
	for _, method := range invoice.Methods {
		methods = append(methods, huh.NewOption(string(method), method))
	}

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("amount").
				Title("Amount").
				Value(&m.pay.Amount).
				Validate(func(s string) error {
					_, err := money.Parse(s)
					return err
				}),
			huh.NewSelect[invoice.Method]().
				Key("method").
				Title("Method").
				Options(methods...).
				Value(&m.pay.Method),
			huh.NewInput().
				Key("date").
				Title("Date").
				Placeholder("YYYY-MM-DD").
				Value(&m.pay.Date).
				Validate(func(s string) error {
					_, err := time.Parse(time.DateOnly, strings.TrimSpace(s))
					return err
				}),
			huh.NewInput().
				Key("note").
				Title("Note").
				Value(&m.pay.Note),
		),
	).WithWidth(45).WithShowHelp(false)

	m.state = invoicesStatePay
	m.table.Blur()

	return m, m.form.Init()
}

func (m InvoicesModel) enterDeleteMode() (tea.Model, tea.Cmd) {
	inv := m.selected()
	if inv == nil {
		return m, nil
	}

	m.pay.Confirm = false
	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(fmt.Sprintf("Delete %s? Its payments are removed too.", inv.Number)).
				Affirmative("Delete").
				Negative("Keep").
				Value(&m.pay.Confirm),
		),
	).WithWidth(45).WithShowHelp(false)

	m.state = invoicesStateDelete
	m.table.Blur()

	return m, m.form.Init()
}

func (m InvoicesModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		m.state = invoicesStateBrowse
		m.form = nil
		m.table.Focus()

		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	inv := m.selected()
	if inv == nil {
		m.state = invoicesStateBrowse
		return m, nil
	}

	if m.state == invoicesStateDelete {
		if !m.pay.Confirm {
			m.state = invoicesStateBrowse
			m.form = nil
			m.table.Focus()

			return m, nil
		}

		return m, m.deleteCmd(inv.ID)
	}

	return m, m.payCmd(inv.ID)
}

func (m InvoicesModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading invoices...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(fmt.Sprintf("Error: %v", m.err))
	}

	label := "All"
	if s := statusFilters[m.statusIdx]; s != "" {
		label = string(s)
	}

	content := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().PaddingBottom(1).Render("Filter: [s] Status: "+activeStyle(label)),
		boxed(m.table.View()),
	)

	if m.state != invoicesStateBrowse && m.form != nil {
		title := "Record Payment"
		if inv := m.selected(); inv != nil && m.state == invoicesStatePay {
			title = fmt.Sprintf("Record Payment for %s\nBalance due: %s",
				inv.Number, money.Format(inv.BalanceDue(), inv.Currency))
		}

		if m.state == invoicesStateDelete {
			title = "Delete Invoice"
		}

		content = lipgloss.JoinHorizontal(lipgloss.Top, content, panel(title, m.form.View()))
	}

	if m.status != "" {
		content = m.status + "\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

func (m *InvoicesModel) refreshTable() {
	rows := make([]table.Row, 0, len(m.invoices))
	for _, inv := range m.invoices {
		rows = append(rows, table.Row{
			inv.Number,
			inv.Client.Name,
			FormatDate(inv.IssueDate),
			FormatDate(inv.DueDate),
			string(inv.Status),
			inv.Total.String(),
			inv.BalanceDue().String(),
		})
	}

	m.table.SetRows(rows)
}

// describeError turns ledger errors into a message the user can act on.
func describeError(err error) string {
	var payErr *invoice.InvalidPaymentAmountError
	if errors.As(err, &payErr) {
		return fmt.Sprintf("Payment must be between 0.01 and %s.", payErr.BalanceDue)
	}

	if errors.Is(err, invoice.ErrConflict) {
		return "The invoice was changed elsewhere. Reloaded, please retry."
	}

	return fmt.Sprintf("Error: %v", err)
}

// Messages

type loadInvoicesMsg struct {
	invoices []*invoice.Invoice
	err      error
}

type invoiceActionMsg struct {
	text string
	err  error
}

func (m InvoicesModel) loadCmd() tea.Cmd {
	filter := m.filter()

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		invoices, err := m.svc.List(ctx, filter)

		return loadInvoicesMsg{invoices: invoices, err: err}
	}
}

func (m InvoicesModel) payCmd(id uuid.UUID) tea.Cmd {
	amount, _ := money.Parse(m.pay.Amount)
	date, _ := time.Parse(time.DateOnly, strings.TrimSpace(m.pay.Date))
	params := invoice.PaymentParams{Amount: amount, Date: &date, Method: m.pay.Method, Note: m.pay.Note}

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		inv, err := m.svc.RecordPayment(ctx, id, params)
		if err != nil {
			return invoiceActionMsg{err: err}
		}

		return invoiceActionMsg{text: okStyle(fmt.Sprintf("Payment recorded on %s, now %s.", inv.Number, inv.Status))}
	}
}

func (m InvoicesModel) markSentCmd(id uuid.UUID) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		inv, err := m.svc.MarkSent(ctx, id)
		if err != nil {
			return invoiceActionMsg{err: err}
		}

		return invoiceActionMsg{text: okStyle(fmt.Sprintf("%s is now %s.", inv.Number, inv.Status))}
	}
}

func (m InvoicesModel) markPaidCmd(id uuid.UUID) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		if _, err := m.svc.MarkPaid(ctx, id); err != nil {
			return invoiceActionMsg{err: err}
		}

		return invoiceActionMsg{text: okStyle("Marked as paid.")}
	}
}

func (m InvoicesModel) deleteCmd(id uuid.UUID) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		n, err := m.svc.Delete(ctx, id)
		if err != nil {
			return invoiceActionMsg{err: err}
		}

		return invoiceActionMsg{text: okStyle(fmt.Sprintf("Deleted %d invoice(s).", n))}
	}
}
