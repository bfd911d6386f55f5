package main

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/Bluepen/wallet-topup/internal/constants"
	"github.com/Bluepen/wallet-topup/internal/service"
	"go.uber.org/zap"
)

const dateLayout = "2006-01-02 15:04"

// Runner executes a parsed command and returns its exit code.
type Runner struct {
	topUp  service.TopUpService
	store  service.WalletStore
	out    io.Writer
	logger *zap.Logger
}

func NewRunner(topUp service.TopUpService, store service.WalletStore, out io.Writer, logger *zap.Logger) *Runner {
	return &Runner{topUp: topUp, store: store, out: out, logger: logger}
}

func (r *Runner) Run(ctx context.Context, cmd Command) int {
	switch cmd.Name {
	case cmdTopUp:
		return r.runTopUp(ctx, cmd.AddFunds)
	case cmdBalance:
		return r.runBalance(ctx)
	case cmdHistory:
		return r.runHistory(ctx, cmd.Filter)
	default:
		r.logger.Error("Unknown command", zap.String("command", cmd.Name))
		return constants.GetExitCode(constants.ErrCodeInternalError)
	}
}

func (r *Runner) runTopUp(ctx context.Context, cmd service.AddFundsCommand) int {
	r.store.Warm(ctx)
	if err := r.store.Fetch(ctx); err == nil {
		r.printBalance("Current balance", r.store.State())
	}

	r.topUp.Subscribe(func(state service.FlowState) {
		if line := progressLine(state); line != "" {
			fmt.Fprintln(r.out, line)
		}
	})

	settlement, err := r.topUp.OpenAddFundsFlow(ctx, cmd)
	switch {
	case err != nil:
		fmt.Fprintln(r.out, "Top-up failed:", r.topUp.State().Error)
		return exitCode(err)
	case settlement.Outcome == service.OutcomeCancelled:
		fmt.Fprintln(r.out, "Top-up cancelled.")
		return constants.GetExitCode(constants.ErrCodePaymentCancelled)
	}

	fmt.Fprintf(r.out, "Added %s. New balance: %s (payment %s)\n",
		cmd.Amount.StringFixed(2), settlement.Balance.StringFixed(2), settlement.PaymentID)

	return 0
}

func (r *Runner) runBalance(ctx context.Context) int {
	r.store.Warm(ctx)
	err := r.store.Fetch(ctx)

	state := r.store.State()
	if err != nil {
		fmt.Fprintln(r.out, "Could not refresh wallet:", state.Error)
		if !state.Loaded {
			return exitCode(err)
		}
	}

	r.printBalance("Balance", state)

	return 0
}

func (r *Runner) runHistory(ctx context.Context, filter service.TransactionFilter) int {
	if err := r.store.Fetch(ctx); err != nil {
		fmt.Fprintln(r.out, "Could not load history:", r.store.State().Error)
		return exitCode(err)
	}

	transactions := r.store.Transactions(filter)
	if len(transactions) == 0 {
		fmt.Fprintln(r.out, "No transactions.")
		return 0
	}

	w := tabwriter.NewWriter(r.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "DATE\tTYPE\tREASON\tAMOUNT\tBALANCE\tDESCRIPTION")
	for _, tx := range transactions {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
			tx.Date.Local().Format(dateLayout),
			tx.Type,
			tx.Reason,
			tx.Amount.StringFixed(2),
			tx.BalanceAfter.StringFixed(2),
			tx.Description,
		)
	}

	if err := w.Flush(); err != nil {
		r.logger.Error("Failed to write history", zap.Error(err))
		return constants.GetExitCode(constants.ErrCodeInternalError)
	}

	return 0
}

func (r *Runner) printBalance(label string, state service.StoreState) {
	suffix := ""
	if state.Snapshot.Stale {
		suffix = fmt.Sprintf(" (cached %s)", state.Snapshot.FetchedAt.Local().Format(time.Kitchen))
	}

	fmt.Fprintf(r.out, "%s: %s %s%s\n", label, state.Snapshot.Balance.StringFixed(2), state.Snapshot.Currency, suffix)
}

func exitCode(err error) int {
	code := service.ErrorCode(err)
	if code == "" {
		code = constants.ErrCodeInternalError
	}

	return constants.GetExitCode(code)
}

func progressLine(state service.FlowState) string {
	switch s := state.(type) {
	case service.LoadingGateway:
		return "Loading payment gateway..."
	case service.CreatingOrder:
		return fmt.Sprintf("Creating order for %s...", s.Amount.StringFixed(2))
	case service.AwaitingGatewayResult:
		return fmt.Sprintf("Waiting for payment of order %s...", s.Order.OrderID)
	case service.Verifying:
		return "Verifying payment..."
	default:
		return ""
	}
}
