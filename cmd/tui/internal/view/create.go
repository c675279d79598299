package view

import (
	"errors"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/invoicer/internal/client"
	"github.com/MrJamesThe3rd/invoicer/internal/invoice"
	"github.com/MrJamesThe3rd/invoicer/internal/item"
	"github.com/MrJamesThe3rd/invoicer/internal/money"
)

type createState int

const (
	createStateLoading createState = iota
	createStateForm
	createStateSaving
	createStateResult
)

// createForm holds the raw form values; the invoice is built from it on submit.
type createForm struct {
	ClientID    uuid.UUID
	ItemID      uuid.UUID // uuid.Nil for a custom line
	Description string
	Quantity    string
	UnitPrice   string // blank keeps the catalog price
	DueDate     string // blank applies the payment terms
	TaxName     string
	TaxRate     string
	Notes       string
}

type CreateModel struct {
	CommonModel
	invoices *invoice.Service
	clients  *client.Service
	items    *item.Service

	state  createState
	form   *huh.Form
	values *createForm

	clientList []*client.Client
	itemList   []*item.Item

	status string
	err    error
}

func NewCreateModel(invoices *invoice.Service, clients *client.Service, items *item.Service) CreateModel {
	return CreateModel{
		invoices: invoices,
		clients:  clients,
		items:    items,
		values:   &createForm{Quantity: "1"},
	}
}

func (m CreateModel) Title() string { return "New Invoice" }

func (m CreateModel) ShortHelp() string {
	return "Navigate form | Esc: back"
}

func (m CreateModel) Init() tea.Cmd {
	return m.loadCatalogCmd()
}

func (m CreateModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case catalogMsg:
		if msg.err != nil {
			m.state = createStateResult
			m.err = msg.err

			return m, nil
		}

		if len(msg.clients) == 0 {
			m.state = createStateResult
			m.err = errors.New("add a client before creating an invoice")

			return m, nil
		}

		m.clientList = msg.clients
		m.itemList = msg.items
		m.form = m.buildForm()
		m.state = createStateForm

		return m, m.form.Init()

	case createResultMsg:
		m.state = createStateResult
		m.err = msg.err

		if msg.err == nil {
			m.status = fmt.Sprintf("Created %s for %s, total %s.",
				msg.result.Invoice.Number,
				msg.result.Invoice.Client.Name,
				money.Format(msg.result.Invoice.Total, msg.result.Invoice.Currency))

			for _, w := range msg.result.Warnings {
				m.status += "\nWarning: " + w
			}
		}

		return m, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyEsc {
			return m, Back
		}
	}

	if m.state != createStateForm {
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		params, err := m.values.params()
		if err != nil {
			m.state = createStateResult
			m.err = err

			return m, nil
		}

		m.state = createStateSaving

		return m, m.createCmd(params)
	}

	return m, cmd
}

func (m CreateModel) buildForm() *huh.Form {
	clientOpts := make([]huh.Option[uuid.UUID], 0, len(m.clientList))
	for _, c := range m.clientList {
		clientOpts = append(clientOpts, huh.NewOption(c.Name, c.ID))
	}

	itemOpts := []huh.Option[uuid.UUID]{huh.NewOption("(custom line)", uuid.Nil)}
	for _, it := range m.itemList {
		itemOpts = append(itemOpts, huh.NewOption(fmt.Sprintf("%s (%s)", it.Name, it.UnitPrice), it.ID))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[uuid.UUID]().
				Title("Client").
				Options(clientOpts...).
				Value(&m.values.ClientID),
			huh.NewSelect[uuid.UUID]().
				Title("Item").
				Options(itemOpts...).
				Value(&m.values.ItemID),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Description").
				Placeholder("defaults to the item name").
				Value(&m.values.Description),
			huh.NewInput().
				Title("Quantity").
				Value(&m.values.Quantity).
				Validate(validateDecimal),
			huh.NewInput().
				Title("Unit price").
				Placeholder("blank keeps the catalog price").
				Value(&m.values.UnitPrice).
				Validate(validateOptionalMoney),
			huh.NewInput().
				Title("Due date").
				Placeholder("YYYY-MM-DD, blank applies payment terms").
				Value(&m.values.DueDate).
				Validate(validateOptionalDate),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Tax name").
				Placeholder("VAT").
				Value(&m.values.TaxName),
			huh.NewInput().
				Title("Tax rate (%)").
				Value(&m.values.TaxRate).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return nil
					}

					return validateDecimal(s)
				}),
			huh.NewText().
				Title("Notes").
				Value(&m.values.Notes),
		),
	).WithWidth(60).WithShowHelp(false)
}

func (m CreateModel) View() string {
	style := lipgloss.NewStyle().Padding(2)

	switch m.state {
	case createStateLoading:
		return style.Render("Loading clients and items...")
	case createStateSaving:
		return style.Render("Issuing invoice...")
	case createStateResult:
		if m.err != nil {
			return style.Render(errorStyle(describeError(m.err)) + "\n\n(Esc to go back)")
		}

		return style.Render(okStyle(m.status) + "\n\n(Esc to go back)")
	}

	return lipgloss.NewStyle().Padding(1).Render(panel("New Invoice", m.form.View()))
}

func validateDecimal(s string) error {
	if _, err := decimal.NewFromString(strings.TrimSpace(s)); err != nil {
		return fmt.Errorf("not a number: %q", s)
	}

	return nil
}

func validateOptionalMoney(s string) error {
	if strings.TrimSpace(s) == "" {
		return nil
	}

	_, err := money.Parse(s)

	return err
}

func validateOptionalDate(s string) error {
	if strings.TrimSpace(s) == "" {
		return nil
	}

	_, err := time.Parse(time.DateOnly, strings.TrimSpace(s))

	return err
}

// params turns the form into a single-line invoice request.
func (f createForm) params() (invoice.CreateParams, error) {
	qty, err := decimal.NewFromString(strings.TrimSpace(f.Quantity))
	if err != nil {
		return invoice.CreateParams{}, &invoice.ValidationError{Field: "lines[0].quantity", Reason: "is not a number"}
	}

	line := invoice.LineParams{Description: strings.TrimSpace(f.Description), Quantity: qty}
	if f.ItemID != uuid.Nil {
		line.ItemID = new(f.ItemID)
	}

	if strings.TrimSpace(f.UnitPrice) != "" {
		price, err := money.Parse(f.UnitPrice)
		if err != nil {
			return invoice.CreateParams{}, &invoice.ValidationError{Field: "lines[0].unit_price", Reason: err.Error()}
		}

		line.UnitPrice = &price
	} else if f.ItemID == uuid.Nil {
		return invoice.CreateParams{}, &invoice.ValidationError{Field: "lines[0].unit_price", Reason: "is required for a custom line"}
	}

	params := invoice.CreateParams{
		ClientID: new(f.ClientID),
		Lines:    []invoice.LineParams{line},
		Notes:    f.Notes,
	}

	if strings.TrimSpace(f.DueDate) != "" {
		due, err := time.Parse(time.DateOnly, strings.TrimSpace(f.DueDate))
		if err != nil {
			return invoice.CreateParams{}, &invoice.ValidationError{Field: "due_date", Reason: "must be YYYY-MM-DD"}
		}

		params.DueDate = &due
	}

	if strings.TrimSpace(f.TaxRate) != "" {
		rate, err := decimal.NewFromString(strings.TrimSpace(f.TaxRate))
		if err != nil {
			return invoice.CreateParams{}, &invoice.ValidationError{Field: "taxes[0].rate", Reason: "is not a number"}
		}

		name := strings.TrimSpace(f.TaxName)
		if name == "" {
			name = "VAT"
		}

		params.Taxes = []invoice.TaxParams{{Name: name, Rate: rate}}
	}

	return params, nil
}

// Messages

type catalogMsg struct {
	clients []*client.Client
	items   []*item.Item
	err     error
}

type createResultMsg struct {
	result *invoice.Result
	err    error
}

func (m CreateModel) loadCatalogCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		clients, err := m.clients.List(ctx, client.ListFilter{})
		if err != nil {
			return catalogMsg{err: err}
		}

		items, err := m.items.List(ctx)
		if err != nil {
			return catalogMsg{err: err}
		}

		return catalogMsg{clients: clients, items: items}
	}
}

func (m CreateModel) createCmd(params invoice.CreateParams) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		res, err := m.invoices.Create(ctx, params)

		return createResultMsg{result: res, err: err}
	}
}
