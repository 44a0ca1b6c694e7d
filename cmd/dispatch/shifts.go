package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/routewise/dispatch/internal/cli"
	"github.com/routewise/dispatch/internal/engine"
	"github.com/routewise/dispatch/internal/model"
	"github.com/routewise/dispatch/internal/recurrence"
	"github.com/routewise/dispatch/internal/service"
	"github.com/spf13/cobra"
)

func shiftsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "shifts",
		Short: "Manage driver shifts",
	}

	cmd.AddCommand(shiftsListCmd())
	cmd.AddCommand(shiftsAddCmd())
	cmd.AddCommand(shiftsDeleteCmd())

	return cmd
}

func shiftsListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List shifts ordered by date",
		RunE:  runShiftsList,
	}

	cmd.Flags().String("from", "", "Start date (YYYY-MM-DD)")
	cmd.Flags().String("to", "", "End date (YYYY-MM-DD)")
	cmd.Flags().String("driver", "", "Filter by driver name")
	cmd.Flags().String("route", "", "Filter by route")
	cmd.Flags().Int("limit", 50, "Maximum number of shifts to show")

	return cmd
}

func runShiftsList(cmd *cobra.Command, _ []string) error {
	filter := service.ShiftFilter{}
	filter.Driver, _ = cmd.Flags().GetString("driver")
	filter.Route, _ = cmd.Flags().GetString("route")
	filter.Limit, _ = cmd.Flags().GetInt("limit")

	if from, _ := cmd.Flags().GetString("from"); from != "" {
		t, err := time.Parse("2006-01-02", from)
		if err != nil {
			return fmt.Errorf("invalid --from date %q: %w", from, err)
		}
		filter.StartDate = &t
	}
	if to, _ := cmd.Flags().GetString("to"); to != "" {
		t, err := time.Parse("2006-01-02", to)
		if err != nil {
			return fmt.Errorf("invalid --to date %q: %w", to, err)
		}
		filter.EndDate = &t
	}

	ctx := cmd.Context()
	store, err := initStorage(ctx)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	defer func() { _ = store.Close() }()

	shifts, err := store.GetShifts(ctx, filter)
	if err != nil {
		return err
	}

	if len(shifts) == 0 {
		fmt.Println(cli.SubtleStyle.Render("No shifts found."))
		return nil
	}

	fmt.Println(cli.FormatTitle("Shifts"))
	for i := range shifts {
		fmt.Println(cli.RenderShift(&shifts[i]))
	}
	return nil
}

func shiftsAddCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Schedule a shift, optionally as a repeating series",
		Long: `Schedule a single shift, or a whole series with --repeat:

  dispatch shifts add --date 2025-03-10 --driver "John Smith" --route "Route 7" \
    --repeat weekly --days mon,wed --occurrences 5`,
		RunE: runShiftsAdd,
	}

	cmd.Flags().String("date", "", "Shift date (YYYY-MM-DD)")
	cmd.Flags().String("driver", "", "Assigned driver")
	cmd.Flags().String("backup", "", "Backup driver")
	cmd.Flags().String("route", "", "Route")
	cmd.Flags().String("start", "", "Start time, e.g. 6:00")
	cmd.Flags().String("end", "", "End time, e.g. 2:00")
	cmd.Flags().String("vehicle", "", "Vehicle")
	cmd.Flags().String("license", "", "Required license")

	cmd.Flags().String("repeat", "", "Repeat frequency (daily, weekly, monthly)")
	cmd.Flags().String("days", "", "Comma-separated weekdays for weekly repeats, e.g. mon,wed")
	cmd.Flags().Int("interval", 1, "Repeat every N days/weeks/months")
	cmd.Flags().Int("occurrences", 0, "End after N occurrences")
	cmd.Flags().String("until", "", "End on date (YYYY-MM-DD)")

	_ = cmd.MarkFlagRequired("date")
	_ = cmd.MarkFlagRequired("route")

	return cmd
}

func runShiftsAdd(cmd *cobra.Command, _ []string) error {
	shift := &model.Shift{ID: uuid.NewString()}
	shift.Date, _ = cmd.Flags().GetString("date")
	shift.Driver, _ = cmd.Flags().GetString("driver")
	shift.BackupDriver, _ = cmd.Flags().GetString("backup")
	shift.Route, _ = cmd.Flags().GetString("route")
	shift.StartTime, _ = cmd.Flags().GetString("start")
	shift.EndTime, _ = cmd.Flags().GetString("end")
	shift.Vehicle, _ = cmd.Flags().GetString("vehicle")
	shift.LicenseRequired, _ = cmd.Flags().GetString("license")

	ctx := cmd.Context()
	store, err := initStorage(ctx)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	defer func() { _ = store.Close() }()

	repeat, _ := cmd.Flags().GetString("repeat")
	if repeat == "" {
		if err := store.CreateShift(ctx, shift); err != nil {
			return err
		}
		fmt.Println(cli.FormatSuccess(fmt.Sprintf("Scheduled %s on %s", shift.Route, shift.Date)))
		return nil
	}

	rule, err := buildRecurrenceRule(cmd, repeat)
	if err != nil {
		return err
	}

	dispatcher := engine.New(store)
	shifts, err := dispatcher.ScheduleRecurring(ctx, shift, rule)
	if err != nil {
		return err
	}

	fmt.Println(cli.FormatSuccess(fmt.Sprintf("Scheduled %d shifts: %s", len(shifts), recurrence.Summarize(rule))))
	for _, s := range shifts {
		fmt.Println("  " + cli.RenderShift(s))
	}
	return nil
}

func buildRecurrenceRule(cmd *cobra.Command, repeat string) (model.RecurrenceRule, error) {
	rule := model.RecurrenceRule{
		End: model.RecurrenceEnd{Type: model.EndNever},
	}
	rule.Interval, _ = cmd.Flags().GetInt("interval")

	switch repeat {
	case "daily":
		rule.Frequency = model.FrequencyDaily
	case "weekly":
		rule.Frequency = model.FrequencyWeekly
	case "monthly":
		rule.Frequency = model.FrequencyMonthly
	default:
		return rule, fmt.Errorf("invalid --repeat %q: expected daily, weekly, or monthly", repeat)
	}

	if days, _ := cmd.Flags().GetString("days"); days != "" {
		parsed, err := parseWeekdays(days)
		if err != nil {
			return rule, err
		}
		rule.WeeklyDays = parsed
	}

	occurrences, _ := cmd.Flags().GetInt("occurrences")
	until, _ := cmd.Flags().GetString("until")
	switch {
	case occurrences > 0 && until != "":
		return rule, fmt.Errorf("--occurrences and --until are mutually exclusive")
	case occurrences > 0:
		rule.End = model.RecurrenceEnd{Type: model.EndAfterOccurrences, Count: occurrences}
	case until != "":
		t, err := time.Parse("2006-01-02", until)
		if err != nil {
			return rule, fmt.Errorf("invalid --until date %q: %w", until, err)
		}
		rule.End = model.RecurrenceEnd{Type: model.EndOnDate, Date: t}
	}

	return rule, nil
}

var weekdayNames = map[string]time.Weekday{
	"mon": time.Monday,
	"tue": time.Tuesday,
	"wed": time.Wednesday,
	"thu": time.Thursday,
	"fri": time.Friday,
	"sat": time.Saturday,
	"sun": time.Sunday,
}

func parseWeekdays(s string) ([]time.Weekday, error) {
	var days []time.Weekday
	for _, part := range strings.Split(s, ",") {
		name := strings.ToLower(strings.TrimSpace(part))
		if len(name) > 3 {
			name = name[:3]
		}
		day, ok := weekdayNames[name]
		if !ok {
			return nil, fmt.Errorf("invalid weekday %q", part)
		}
		days = append(days, day)
	}
	return days, nil
}

func shiftsDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a shift",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			store, err := initStorage(ctx)
			if err != nil {
				return fmt.Errorf("failed to initialize storage: %w", err)
			}
			defer func() { _ = store.Close() }()

			if err := store.DeleteShift(ctx, args[0]); err != nil {
				return err
			}
			fmt.Println(cli.FormatSuccess("Shift deleted"))
			return nil
		},
	}
}
