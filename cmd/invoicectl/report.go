package main

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/MrJamesThe3rd/invoicer/internal/export"
	"github.com/MrJamesThe3rd/invoicer/internal/money"
	"github.com/MrJamesThe3rd/invoicer/internal/report"
)

func newReportCmd(e *env) *cobra.Command {
	var rangeFlag string

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Print revenue, per-client and aging rollups",
		RunE: func(cmd *cobra.Command, _ []string) error {
			rng, err := report.ParseRange(rangeFlag)
			if err != nil {
				return err
			}

			a, err := e.app()
			if err != nil {
				return err
			}

			rep, err := a.Reports.Build(cmd.Context(), rng)
			if err != nil {
				return err
			}

			printReport(cmd.OutOrStdout(), rep, e.cfg.App.Currency)

			return nil
		},
	}

	cmd.Flags().StringVar(&rangeFlag, "range", string(report.RangeAll), "all, 30d, 90d or 365d")

	return cmd
}

func printReport(out io.Writer, rep *report.Report, currency string) {
	f := func(m money.Money) string { return money.Format(m, currency) }

	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	defer w.Flush()

	fmt.Fprintf(w, "Range\t%s (as of %s)\n", rep.Range, rep.AsOf.Format(time.DateOnly))
	fmt.Fprintf(w, "Invoices\t%d\n", rep.Summary.InvoiceCount)
	fmt.Fprintf(w, "Revenue\t%s\n", f(rep.Summary.TotalRevenue))
	fmt.Fprintf(w, "Collected\t%s\n", f(rep.Summary.TotalCollected))
	fmt.Fprintf(w, "Outstanding\t%s\n", f(rep.Summary.Outstanding))

	fmt.Fprintln(w, "\nClient\tInvoices\tBilled")

	for _, cr := range rep.ByClient {
		fmt.Fprintf(w, "%s\t%d\t%s\n", cr.ClientName, cr.InvoiceCount, f(cr.TotalBilled))
	}

	fmt.Fprintln(w, "\nAging\tCurrent\t1-30\t31-60\t61-90\t90+")
	fmt.Fprintf(w, "\t%s\t%s\t%s\t%s\t%s\n",
		f(rep.Aging.Current), f(rep.Aging.Days30), f(rep.Aging.Days60), f(rep.Aging.Days90), f(rep.Aging.Over90))
}

func newRemindersCmd(e *env) *cobra.Command {
	var within int

	cmd := &cobra.Command{
		Use:   "reminders",
		Short: "Print a reminder digest of open invoices",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := e.app()
			if err != nil {
				return err
			}

			reminders, err := a.Export.Reminders(cmd.Context(), within)
			if err != nil {
				return err
			}

			fmt.Fprint(cmd.OutOrStdout(), export.Digest(reminders))

			return nil
		},
	}

	cmd.Flags().IntVar(&within, "within", 7, "include invoices due within this many days")

	return cmd
}
