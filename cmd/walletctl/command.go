package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/Bluepen/wallet-topup/internal/model"
	"github.com/Bluepen/wallet-topup/internal/service"
	"github.com/Bluepen/wallet-topup/internal/validator"
	"github.com/shopspring/decimal"
)

const (
	cmdTopUp   = "topup"
	cmdBalance = "balance"
	cmdHistory = "history"
)

const usage = `usage:
  walletctl topup -amount 500 [-email e] [-name n]
  walletctl balance
  walletctl history [-type credit|debit] [-reason r] [-limit n]
`

var errUsage = errors.New("invalid arguments")

// Command is one parsed invocation of walletctl.
type Command struct {
	Name     string
	AddFunds service.AddFundsCommand
	Filter   service.TransactionFilter
}

func parseCommand(args []string, v validator.IXValidator, stderr io.Writer) (Command, error) {
	if len(args) == 0 {
		return Command{}, fmt.Errorf("%w: missing command", errUsage)
	}

	cmd := Command{Name: args[0]}
	fs := flag.NewFlagSet("walletctl "+cmd.Name, flag.ContinueOnError)
	fs.SetOutput(stderr)

	switch cmd.Name {
	case cmdTopUp:
		amount := fs.String("amount", "", "amount to add in major units, e.g. 500 or 99.50")
		fs.StringVar(&cmd.AddFunds.PrefillEmail, "email", "", "email to prefill in checkout")
		fs.StringVar(&cmd.AddFunds.PrefillName, "name", "", "name to prefill in checkout")
		if err := fs.Parse(args[1:]); err != nil {
			return Command{}, fmt.Errorf("%w: %w", errUsage, err)
		}

		if err := v.Var(*amount, "required,"+validator.AmountTag); err != nil {
			return Command{}, fmt.Errorf("%w: -amount must be a positive number with at most two decimals", errUsage)
		}
		value, err := decimal.NewFromString(*amount)
		if err != nil {
			return Command{}, fmt.Errorf("%w: -amount: %w", errUsage, err)
		}
		cmd.AddFunds.Amount = value

	case cmdBalance:
		if err := fs.Parse(args[1:]); err != nil {
			return Command{}, fmt.Errorf("%w: %w", errUsage, err)
		}

	case cmdHistory:
		txType := fs.String("type", "", "credit or debit")
		reason := fs.String("reason", "", "transaction reason, e.g. wallet_topup")
		fs.IntVar(&cmd.Filter.Limit, "limit", 0, "maximum rows to print, 0 for all")
		if err := fs.Parse(args[1:]); err != nil {
			return Command{}, fmt.Errorf("%w: %w", errUsage, err)
		}

		cmd.Filter.Type = model.TransactionType(strings.ToLower(*txType))
		switch cmd.Filter.Type {
		case "", model.TransactionTypeCredit, model.TransactionTypeDebit:
		default:
			return Command{}, fmt.Errorf("%w: unknown -type %q", errUsage, *txType)
		}

		cmd.Filter.Reason = model.TransactionReason(strings.ToLower(*reason))
		if cmd.Filter.Reason != "" && !cmd.Filter.Reason.Valid() {
			return Command{}, fmt.Errorf("%w: unknown -reason %q", errUsage, *reason)
		}
		if cmd.Filter.Limit < 0 {
			return Command{}, fmt.Errorf("%w: -limit must not be negative", errUsage)
		}

	default:
		return Command{}, fmt.Errorf("%w: unknown command %q", errUsage, cmd.Name)
	}

	if fs.NArg() > 0 {
		return Command{}, fmt.Errorf("%w: unexpected argument %q", errUsage, fs.Arg(0))
	}

	return cmd, nil
}
