package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/MrJamesThe3rd/invoicer/internal/company"
)

func newSetupCmd(e *env) *cobra.Command {
	var params company.SetupParams

	cmd := &cobra.Command{
		Use:   "setup",
		Short: "Create the company profile",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := e.app()
			if err != nil {
				return err
			}

			if params.Currency == "" {
				params.Currency = e.cfg.App.Currency
			}

			p, err := a.Company.Setup(cmd.Context(), params)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "profile %q created, next invoice %s%d\n",
				p.Name, p.InvoiceNumberPrefix, p.NextInvoiceNumber)

			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&params.Name, "name", "", "company name")
	f.StringVar(&params.Email, "email", "", "billing email")
	f.StringVar(&params.Phone, "phone", "", "phone number")
	f.StringVar(&params.InvoiceNumberPrefix, "prefix", "INV-", "invoice number prefix")
	f.Int64Var(&params.NextInvoiceNumber, "next", 1, "next invoice number")
	f.StringVar(&params.TaxType, "tax-type", "", "tax identifier type, e.g. VAT")
	f.StringVar(&params.TaxNumber, "tax-number", "", "tax identifier")
	f.IntVar(&params.PaymentTermsDays, "terms", company.DefaultPaymentTermsDays, "payment terms in days")
	f.StringVar(&params.Currency, "currency", "", "currency code (defaults to CURRENCY)")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}
