package main

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/iho/fxtransfer/internal/adapter/http/dto"
)

const (
	outputText = "text"
	outputJSON = "json"
)

type rootOptions struct {
	baseURL string
	timeout time.Duration
	output  string
}

func (o *rootOptions) client() *apiClient {
	return newAPIClient(o.baseURL, o.timeout)
}

func (o *rootOptions) context(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	return context.WithTimeout(cmd.Context(), o.timeout)
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:           "fxtransfer-cli",
		Short:         "fxtransfer CLI tool",
		Long:          `A command line interface for interacting with the fxtransfer API.`,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if opts.output != outputText && opts.output != outputJSON {
				return fmt.Errorf("unsupported --output %q", opts.output)
			}
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVar(&opts.baseURL, "url", "http://localhost:8080", "Base URL of the fxtransfer API")
	rootCmd.PersistentFlags().DurationVar(&opts.timeout, "timeout", 10*time.Second, "Request timeout")
	rootCmd.PersistentFlags().StringVarP(&opts.output, "output", "o", outputText, "Output format: text or json")

	rootCmd.AddCommand(
		accountsCmd(opts),
		transferCmd(opts),
		transfersCmd(opts),
		fxCmd(opts),
		feeCmd(opts),
	)

	return rootCmd
}

func accountsCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "accounts",
		Short: "Account operations",
	}

	var name, currency, balance string
	createCmd := &cobra.Command{
		Use:   "create",
		Short: "Open a new account",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := opts.context(cmd)
			defer cancel()

			var account dto.AccountResponse
			req := dto.CreateAccountRequest{Name: name, Currency: currency, InitialBalance: balance}
			if err := opts.client().do(ctx, http.MethodPost, "/api/v1/accounts/", req, &account); err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), account)
		},
	}
	createCmd.Flags().StringVar(&name, "name", "", "Account holder name")
	createCmd.Flags().StringVar(&currency, "currency", "", "ISO 4217 currency code")
	createCmd.Flags().StringVar(&balance, "balance", "", "Initial balance")
	_ = createCmd.MarkFlagRequired("name")
	_ = createCmd.MarkFlagRequired("currency")

	var limit, offset int
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List accounts",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := opts.context(cmd)
			defer cancel()

			var resp dto.ListAccountsResponse
			if err := opts.client().do(ctx, http.MethodGet, "/api/v1/accounts/"+pageQuery(limit, offset), nil, &resp); err != nil {
				return err
			}
			if opts.output == outputJSON {
				return printJSON(cmd.OutOrStdout(), resp)
			}
			return printAccounts(cmd.OutOrStdout(), resp.Accounts)
		},
	}
	addPageFlags(listCmd, &limit, &offset)

	getCmd := &cobra.Command{
		Use:   "get ID",
		Short: "Show one account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := opts.context(cmd)
			defer cancel()

			var account dto.AccountResponse
			if err := opts.client().do(ctx, http.MethodGet, "/api/v1/accounts/"+url.PathEscape(args[0]), nil, &account); err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), account)
		},
	}

	cmd.AddCommand(createCmd, listCmd, getCmd)
	return cmd
}

func transferCmd(opts *rootOptions) *cobra.Command {
	var from, to, amount string

	cmd := &cobra.Command{
		Use:   "transfer",
		Short: "Move money between two accounts",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := opts.context(cmd)
			defer cancel()

			var outcome dto.TransferOutcomeResponse
			req := dto.CreateTransferRequest{FromAccountID: from, ToAccountID: to, Amount: amount}
			if err := opts.client().do(ctx, http.MethodPost, "/api/v1/transfers/", req, &outcome); err != nil {
				return err
			}
			if opts.output == outputJSON {
				return printJSON(cmd.OutOrStdout(), outcome)
			}
			printOutcome(cmd.OutOrStdout(), &outcome)
			return nil
		},
	}
	cmd.Flags().StringVar(&from, "from", "", "Source account ID")
	cmd.Flags().StringVar(&to, "to", "", "Destination account ID")
	cmd.Flags().StringVar(&amount, "amount", "", "Amount in the source currency")
	_ = cmd.MarkFlagRequired("from")
	_ = cmd.MarkFlagRequired("to")
	_ = cmd.MarkFlagRequired("amount")

	return cmd
}

func transfersCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "transfers",
		Short: "Inspect the transfer ledger",
	}

	getCmd := &cobra.Command{
		Use:   "get ID",
		Short: "Show one ledger record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := opts.context(cmd)
			defer cancel()

			var transfer dto.TransferResponse
			if err := opts.client().do(ctx, http.MethodGet, "/api/v1/transfers/"+url.PathEscape(args[0]), nil, &transfer); err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), transfer)
		},
	}

	var limit, offset int
	listCmd := &cobra.Command{
		Use:   "list ACCOUNT_ID",
		Short: "List ledger records touching an account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := opts.context(cmd)
			defer cancel()

			var transfers []*dto.TransferResponse
			path := "/api/v1/accounts/" + url.PathEscape(args[0]) + "/transfers" + pageQuery(limit, offset)
			if err := opts.client().do(ctx, http.MethodGet, path, nil, &transfers); err != nil {
				return err
			}
			if opts.output == outputJSON {
				return printJSON(cmd.OutOrStdout(), transfers)
			}
			return printTransfers(cmd.OutOrStdout(), transfers)
		},
	}
	addPageFlags(listCmd, &limit, &offset)

	cmd.AddCommand(getCmd, listCmd)
	return cmd
}

func fxCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fx",
		Short: "Manage FX rates",
	}

	setCmd := &cobra.Command{
		Use:   "set FROM TO RATE",
		Short: "Set the multiplier converting FROM amounts into TO",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := opts.context(cmd)
			defer cancel()

			var rate dto.FxRateResponse
			req := dto.SetFxRateRequest{FromCurrency: args[0], ToCurrency: args[1], Rate: args[2]}
			if err := opts.client().do(ctx, http.MethodPut, "/api/v1/fx-rates/", req, &rate); err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), rate)
		},
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List configured FX rates",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := opts.context(cmd)
			defer cancel()

			var rates []*dto.FxRateResponse
			if err := opts.client().do(ctx, http.MethodGet, "/api/v1/fx-rates/", nil, &rates); err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), rates)
		},
	}

	cmd.AddCommand(setCmd, listCmd)
	return cmd
}

func feeCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fee",
		Short: "Manage the global transfer fee",
	}

	getCmd := &cobra.Command{
		Use:   "get",
		Short: "Show the fee fraction",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := opts.context(cmd)
			defer cancel()

			var fee dto.FeeResponse
			if err := opts.client().do(ctx, http.MethodGet, "/api/v1/fees/", nil, &fee); err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), fee)
		},
	}

	setCmd := &cobra.Command{
		Use:   "set PERCENTAGE",
		Short: "Set the fee fraction, e.g. 0.01 for 1%",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := opts.context(cmd)
			defer cancel()

			var fee dto.FeeResponse
			if err := opts.client().do(ctx, http.MethodPut, "/api/v1/fees/", dto.SetFeeRequest{Percentage: args[0]}, &fee); err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), fee)
		},
	}

	cmd.AddCommand(getCmd, setCmd)
	return cmd
}

func addPageFlags(cmd *cobra.Command, limit, offset *int) {
	cmd.Flags().IntVar(limit, "limit", 20, "Maximum number of results")
	cmd.Flags().IntVar(offset, "offset", 0, "Number of results to skip")
}

func pageQuery(limit, offset int) string {
	q := url.Values{}
	q.Set("limit", strconv.Itoa(limit))
	q.Set("offset", strconv.Itoa(offset))
	return "?" + q.Encode()
}
