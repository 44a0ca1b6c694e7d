package main

import (
	"fmt"

	"github.com/routewise/dispatch/internal/cli"
	"github.com/routewise/dispatch/internal/model"
	"github.com/routewise/dispatch/internal/service"
	"github.com/spf13/cobra"
)

func ticketsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tickets",
		Short: "Manage customer service tickets",
	}

	cmd.AddCommand(ticketsListCmd())
	cmd.AddCommand(ticketsResolveCmd())

	return cmd
}

func ticketsListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tickets, newest first",
		RunE:  runTicketsList,
	}

	cmd.Flags().String("status", "", "Filter by status (open, in_progress, resolved, closed)")
	cmd.Flags().String("customer", "", "Filter by customer name")
	cmd.Flags().Int("limit", 20, "Maximum number of tickets to show")

	return cmd
}

func runTicketsList(cmd *cobra.Command, _ []string) error {
	status, _ := cmd.Flags().GetString("status")
	customer, _ := cmd.Flags().GetString("customer")
	limit, _ := cmd.Flags().GetInt("limit")
	ctx := cmd.Context()

	store, err := initStorage(ctx)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	defer func() { _ = store.Close() }()

	tickets, err := store.GetTickets(ctx, service.TicketFilter{
		Status:   model.TicketStatus(status),
		Customer: customer,
		Limit:    limit,
	})
	if err != nil {
		return err
	}

	if len(tickets) == 0 {
		fmt.Println(cli.SubtleStyle.Render("No tickets found."))
		return nil
	}

	fmt.Println(cli.FormatTitle("Tickets"))
	for _, ticket := range tickets {
		line := fmt.Sprintf("%s  [%s/%s]  %s", ticket.ID[:8], ticket.Status, ticket.Priority, ticket.Customer)
		if ticket.Category != "" {
			line += "  " + ticket.Category
		}
		if ticket.ExpectedResolutionDate != "" {
			line += cli.SubtleStyle.Render("  due " + ticket.ExpectedResolutionDate)
		}
		fmt.Println(line)
	}
	return nil
}

func ticketsResolveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "resolve <id>",
		Short: "Mark a ticket resolved",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			store, err := initStorage(ctx)
			if err != nil {
				return fmt.Errorf("failed to initialize storage: %w", err)
			}
			defer func() { _ = store.Close() }()

			if err := store.UpdateTicketStatus(ctx, args[0], model.TicketResolved); err != nil {
				return err
			}
			fmt.Println(cli.FormatSuccess("Ticket resolved"))
			return nil
		},
	}
}
