package main

import (
	"context"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"

	"github.com/MrJamesThe3rd/invoicer/cmd/tui/internal/view"
	"github.com/MrJamesThe3rd/invoicer/internal/app"
	"github.com/MrJamesThe3rd/invoicer/internal/config"
	"github.com/MrJamesThe3rd/invoicer/internal/database"
	"github.com/MrJamesThe3rd/invoicer/internal/event"
)

type model struct {
	app *app.App

	currentView View

	invoicesView view.InvoicesModel
	createView   view.CreateModel
	reportView   view.ReportModel
	importView   view.ImportModel
}

type View int

const (
	ViewMenu     View = 0
	ViewInvoices View = 1
	ViewCreate   View = 2
	ViewReport   View = 3
	ViewImport   View = 4
)

func initialModel(a *app.App) model {
	return model{
		app:          a,
		currentView:  ViewMenu,
		invoicesView: view.NewInvoicesModel(a.Invoices),
		createView:   view.NewCreateModel(a.Invoices, a.Clients, a.Items),
		reportView:   view.NewReportModel(a.Reports),
		importView:   view.NewImportModel(a.Importer),
	}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.currentView == ViewMenu {
			switch msg.String() {
			case "ctrl+c", "q":
				return m, tea.Quit
			case "1":
				m.currentView = ViewInvoices
				m.invoicesView = view.NewInvoicesModel(m.app.Invoices)

				return m, m.invoicesView.Init()
			case "2":
				m.currentView = ViewCreate
				m.createView = view.NewCreateModel(m.app.Invoices, m.app.Clients, m.app.Items)

				return m, m.createView.Init()
			case "3":
				m.currentView = ViewReport
				m.reportView = view.NewReportModel(m.app.Reports)

				return m, m.reportView.Init()
			case "4":
				m.currentView = ViewImport
				return m, m.importView.Init()
			}
		}
	case view.BackMsg:
		m.currentView = ViewMenu
		return m, nil
	}

	switch m.currentView {
	case ViewInvoices:
		var newModel tea.Model
		newModel, cmd = m.invoicesView.Update(msg)
		m.invoicesView = newModel.(view.InvoicesModel)
	case ViewCreate:
		var newModel tea.Model
		newModel, cmd = m.createView.Update(msg)
		m.createView = newModel.(view.CreateModel)
	case ViewReport:
		var newModel tea.Model
		newModel, cmd = m.reportView.Update(msg)
		m.reportView = newModel.(view.ReportModel)
	case ViewImport:
		var newModel tea.Model
		newModel, cmd = m.importView.Update(msg)
		m.importView = newModel.(view.ImportModel)
	}

	return m, cmd
}

func (m model) View() string {
	switch m.currentView {
	case ViewMenu:
		return lipgloss.NewStyle().Padding(2).Render(
			"Invoicer TUI\n\n" +
				"1. Invoices\n" +
				"2. New Invoice\n" +
				"3. Reports\n" +
				"4. Import Catalog\n\n" +
				"q. Quit",
		)
	case ViewInvoices:
		return m.invoicesView.View() + "\n" + m.invoicesView.ShortHelp()
	case ViewCreate:
		return m.createView.View() + "\n" + m.createView.ShortHelp()
	case ViewReport:
		return m.reportView.View() + "\n" + m.reportView.ShortHelp()
	case ViewImport:
		return m.importView.View() + "\n" + m.importView.ShortHelp()
	}

	return "Unknown View"
}

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// The terminal belongs to the UI; logs go to a file.
	logFile, err := tea.LogToFile("invoicer-tui.log", "tui")
	if err != nil {
		slog.Error("failed to open log file", "error", err)
		os.Exit(1)
	}
	defer logFile.Close()

	logger := cfg.NewLogger(logFile)
	slog.SetDefault(logger)

	db, err := database.New(cfg.ConnectionString())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	a := app.New(db, logger)

	relay, rdb := a.Relay(cfg, logger)
	defer rdb.Close()

	p := tea.NewProgram(initialModel(a))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		err := relay.Listen(ctx, func(env event.Envelope) {
			p.Send(view.RemoteEventMsg{Kind: env.Kind})
		})
		if err != nil {
			slog.Warn("live updates disabled", "error", err)
		}
	}()

	if _, err := p.Run(); err != nil {
		slog.Error("failed to run TUI", "error", err)
		os.Exit(1)
	}
}
