package main

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/routewise/dispatch/internal/cli"
	"github.com/routewise/dispatch/internal/model"
	"github.com/spf13/cobra"
)

func payoutsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "payouts",
		Short: "Manage payroll payout requests",
	}

	cmd.AddCommand(payoutsRequestCmd())
	cmd.AddCommand(payoutsListCmd())
	cmd.AddCommand(payoutsApproveCmd())

	return cmd
}

func payoutsRequestCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "request",
		Short: "File a payout request for a driver",
		RunE:  runPayoutsRequest,
	}

	cmd.Flags().String("driver", "", "Driver requesting the payout")
	cmd.Flags().Float64("amount", 0, "Payout amount")
	cmd.Flags().String("from", "", "Pay period start (YYYY-MM-DD)")
	cmd.Flags().String("to", "", "Pay period end (YYYY-MM-DD)")

	_ = cmd.MarkFlagRequired("driver")
	_ = cmd.MarkFlagRequired("amount")

	return cmd
}

func runPayoutsRequest(cmd *cobra.Command, _ []string) error {
	driver, _ := cmd.Flags().GetString("driver")
	amount, _ := cmd.Flags().GetFloat64("amount")
	from, _ := cmd.Flags().GetString("from")
	to, _ := cmd.Flags().GetString("to")
	ctx := cmd.Context()

	store, err := initStorage(ctx)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	defer func() { _ = store.Close() }()

	payout := &model.PayoutRequest{
		ID:          uuid.NewString(),
		Driver:      driver,
		Amount:      amount,
		PeriodStart: from,
		PeriodEnd:   to,
	}
	if err := store.CreatePayoutRequest(ctx, payout); err != nil {
		return err
	}

	fmt.Println(cli.FormatSuccess(fmt.Sprintf("Filed payout request %s for %s ($%.2f)", payout.ID[:8], driver, amount)))
	return nil
}

func payoutsListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List payout requests, newest first",
		RunE: func(cmd *cobra.Command, _ []string) error {
			status, _ := cmd.Flags().GetString("status")
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return fmt.Errorf("failed to initialize storage: %w", err)
			}
			defer func() { _ = store.Close() }()

			payouts, err := store.GetPayoutRequests(ctx, model.PayoutStatus(status))
			if err != nil {
				return err
			}

			if len(payouts) == 0 {
				fmt.Println(cli.SubtleStyle.Render("No payout requests found."))
				return nil
			}

			fmt.Println(cli.FormatTitle("Payout Requests"))
			for _, payout := range payouts {
				line := fmt.Sprintf("%s  [%s]  %s  $%.2f", payout.ID[:8], payout.Status, payout.Driver, payout.Amount)
				if payout.PeriodStart != "" {
					line += cli.SubtleStyle.Render(fmt.Sprintf("  %s to %s", payout.PeriodStart, payout.PeriodEnd))
				}
				fmt.Println(line)
			}
			return nil
		},
	}

	cmd.Flags().String("status", "", "Filter by status (pending, approved, rejected)")

	return cmd
}

func payoutsApproveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "approve <id>",
		Short: "Approve a pending payout request",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			approvedBy, _ := cmd.Flags().GetString("by")
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return fmt.Errorf("failed to initialize storage: %w", err)
			}
			defer func() { _ = store.Close() }()

			payout, err := store.ApprovePayoutRequest(ctx, args[0], approvedBy)
			if err != nil {
				return err
			}
			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Approved $%.2f for %s", payout.Amount, payout.Driver)))
			return nil
		},
	}

	cmd.Flags().String("by", "", "Name of the approver")
	_ = cmd.MarkFlagRequired("by")

	return cmd
}
