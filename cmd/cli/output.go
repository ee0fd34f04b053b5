package main

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/fatih/color"

	"github.com/iho/fxtransfer/internal/adapter/http/dto"
)

var (
	successColor = color.New(color.FgGreen, color.Bold)
	failedColor  = color.New(color.FgRed, color.Bold)
)

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}

func printAccounts(w io.Writer, accounts []*dto.AccountResponse) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tCURRENCY\tBALANCE")
	for _, a := range accounts {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", a.ID, truncate(a.Name, 24), a.Currency, a.Balance)
	}
	return tw.Flush()
}

func printTransfers(w io.Writer, transfers []*dto.TransferResponse) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tFROM\tTO\tDEBITED\tCREDITED\tFEE\tCREATED")
	for _, t := range transfers {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s %s\t%s %s\t%s\t%s\n",
			t.ID, t.FromAccountID, t.ToAccountID,
			t.AmountDebited, t.FromCurrency,
			t.AmountCredited, t.ToCurrency,
			t.Fee, t.CreatedAt.Format("2006-01-02 15:04:05"))
	}
	return tw.Flush()
}

func printOutcome(w io.Writer, o *dto.TransferOutcomeResponse) {
	if o.Status != "SUCCESS" {
		fmt.Fprintf(w, "%s %s\n", failedColor.Sprint(o.Status), o.Message)
		return
	}

	fmt.Fprintf(w, "%s %s\n", successColor.Sprint(o.Status), o.Message)
	fmt.Fprintf(w, "  transaction: %s\n", o.TransactionID)
	fmt.Fprintf(w, "  debited:     %s %s\n", o.AmountDebited, o.FromCurrency)
	fmt.Fprintf(w, "  fee:         %s %s\n", o.Fee, o.FromCurrency)
	fmt.Fprintf(w, "  credited:    %s %s\n", o.AmountCredited, o.ToCurrency)
}
