// Package engine executes detected intents against storage. It is the layer
// between the prompt console and persistence: the intent package decides WHAT
// the user asked for, the dispatcher carries it out and records the side
// effects (tickets, shifts, unavailability, notifications).
package engine

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/routewise/dispatch/internal/common"
	"github.com/routewise/dispatch/internal/intent"
	"github.com/routewise/dispatch/internal/model"
	"github.com/routewise/dispatch/internal/recurrence"
	"github.com/routewise/dispatch/internal/service"
)

// Dispatcher executes detected intents. The clock is injectable for tests;
// production code uses time.Now.
type Dispatcher struct {
	storage service.Storage
	clock   func() time.Time
	retry   service.RetryOptions
}

// New creates a dispatcher backed by the given storage.
func New(storage service.Storage) *Dispatcher {
	return &Dispatcher{
		storage: storage,
		clock:   time.Now,
		retry: service.RetryOptions{
			MaxAttempts:  3,
			InitialDelay: 100 * time.Millisecond,
		},
	}
}

// WithClock overrides the dispatcher's time source.
func (d *Dispatcher) WithClock(clock func() time.Time) *Dispatcher {
	d.clock = clock
	return d
}

// Result describes what an executed intent produced. Exactly one of Ticket,
// Shifts, or Unavailability is set, matching the action.
type Result struct {
	Ticket         *model.Ticket         `json:"ticket,omitempty"`
	Unavailability *model.Unavailability `json:"unavailability,omitempty"`
	Shifts         []*model.Shift        `json:"shifts,omitempty"`
	Coverage       []string              `json:"coverage,omitempty"`
	Action         model.ActionKind      `json:"action"`
	Message        string                `json:"message"`
	NeedsReview    bool                  `json:"needs_review"`
}

// Analyze runs intent detection over a prompt using the dispatcher's clock.
// A nil result means the prompt was blank.
func (d *Dispatcher) Analyze(text string) *model.DetectedIntent {
	return intent.Extract(text, d.clock())
}

// Execute carries out a detected intent. Intents below the execution floor
// are refused with common.ErrLowConfidence; intents below the review
// threshold still execute but the result is flagged for review.
func (d *Dispatcher) Execute(ctx context.Context, detected *model.DetectedIntent) (*Result, error) {
	if detected == nil {
		return nil, common.ErrNoIntent
	}
	if detected.Confidence < intent.ConfidenceFloor {
		return nil, fmt.Errorf("confidence %.2f: %w", detected.Confidence, common.ErrLowConfidence)
	}

	var (
		result *Result
		err    error
	)
	switch detected.Action {
	case model.ActionCreateTicket:
		result, err = d.executeTicket(ctx, detected)
	case model.ActionScheduleShift:
		result, err = d.executeShift(ctx, detected)
	case model.ActionMarkUnavailable:
		result, err = d.executeUnavailable(ctx, detected)
	default:
		return nil, fmt.Errorf("%w: %s", common.ErrUnsupportedAction, detected.Action)
	}
	if err != nil {
		return nil, err
	}

	result.Action = detected.Action
	result.NeedsReview = detected.Confidence < intent.ConfidenceReview
	return result, nil
}

func (d *Dispatcher) executeTicket(ctx context.Context, detected *model.DetectedIntent) (*Result, error) {
	fields := detected.Fields
	ticket := &model.Ticket{
		ID:       uuid.NewString(),
		Priority: model.PriorityMedium,
	}
	if v, ok := fields.Get(intent.FieldCustomer); ok {
		ticket.Customer = v
	}
	if v, ok := fields.Get(intent.FieldCategory); ok {
		ticket.Category = v
	}
	if v, ok := fields.Get(intent.FieldPriority); ok {
		ticket.Priority = model.TicketPriority(v)
	}
	if v, ok := fields.Get(intent.FieldDescription); ok {
		ticket.Description = v
	}
	if v, ok := fields.Get(intent.FieldDateRequested); ok {
		ticket.DateRequested = v
	}
	if v, ok := fields.Get(intent.FieldExpectedResolutionDate); ok {
		ticket.ExpectedResolutionDate = v
	}
	if v, ok := fields.Get(intent.FieldRoute); ok {
		ticket.Route = v
	}
	if v, ok := fields.Get(intent.FieldDriver); ok {
		ticket.Driver = v
	}
	if v, ok := fields.Get(intent.FieldVehicle); ok {
		ticket.Vehicle = v
	}

	err := common.WithRetry(ctx, func() error {
		return d.storage.CreateTicket(ctx, ticket)
	}, d.retry)
	if err != nil {
		return nil, fmt.Errorf("failed to create ticket: %w", err)
	}

	if ticket.Driver != "" {
		d.notify(ctx, ticket.Driver, "ticket_assigned",
			fmt.Sprintf("Ticket %s for %s involves you", ticket.ID, ticket.Customer))
	}

	return &Result{
		Ticket:  ticket,
		Message: fmt.Sprintf("Created ticket for %s", describeTicket(ticket)),
	}, nil
}

func (d *Dispatcher) executeShift(ctx context.Context, detected *model.DetectedIntent) (*Result, error) {
	shift := d.shiftFromFields(detected.Fields)

	err := common.WithRetry(ctx, func() error {
		return d.storage.CreateShift(ctx, shift)
	}, d.retry)
	if err != nil {
		return nil, fmt.Errorf("failed to create shift: %w", err)
	}

	if shift.Driver != "" {
		d.notify(ctx, shift.Driver, "shift_assigned",
			fmt.Sprintf("You are scheduled for %s on %s", shift.Route, shift.Date))
	}

	return &Result{
		Shifts:  []*model.Shift{shift},
		Message: fmt.Sprintf("Scheduled %s on %s", shift.Route, shift.Date),
	}, nil
}

func (d *Dispatcher) executeUnavailable(ctx context.Context, detected *model.DetectedIntent) (*Result, error) {
	fields := detected.Fields
	record := &model.Unavailability{ID: uuid.NewString()}
	if v, ok := fields.Get(intent.FieldDriver); ok {
		record.Driver = v
	}
	if v, ok := fields.Get(intent.FieldDate); ok {
		record.Date = v
	} else {
		record.Date = d.clock().Format("2006-01-02")
	}
	if v, ok := fields.Get(intent.FieldTimeSlot); ok {
		record.TimeSlot = v
	}
	if v, ok := fields.Get(intent.FieldAffectedRoute); ok {
		record.AffectedRoute = v
	}

	err := common.WithRetry(ctx, func() error {
		return d.storage.SaveUnavailability(ctx, record)
	}, d.retry)
	if err != nil {
		return nil, fmt.Errorf("failed to record unavailability: %w", err)
	}

	coverage, err := d.SuggestCoverage(ctx, record.Date, record.Driver)
	if err != nil {
		// Coverage is advisory; the unavailability record already landed.
		slog.Warn("coverage lookup failed", "date", record.Date, "error", err)
		coverage = nil
	}

	message := fmt.Sprintf("Marked %s unavailable on %s", record.Driver, record.Date)
	if len(coverage) > 0 {
		message += fmt.Sprintf("; %d drivers available for coverage", len(coverage))
	}

	return &Result{
		Unavailability: record,
		Coverage:       coverage,
		Message:        message,
	}, nil
}

// ScheduleRecurring expands a recurrence rule from the base shift's date and
// creates one shift per occurrence in a single batch. All occurrences share a
// recurrence ID so the series can be traced later.
func (d *Dispatcher) ScheduleRecurring(ctx context.Context, base *model.Shift, rule model.RecurrenceRule) ([]*model.Shift, error) {
	if base == nil {
		return nil, fmt.Errorf("base shift is required")
	}
	start, err := time.Parse("2006-01-02", base.Date)
	if err != nil {
		return nil, fmt.Errorf("invalid shift date %q: %w", base.Date, err)
	}

	dates := recurrence.Expand(rule, start, 0)
	if len(dates) == 0 {
		return nil, fmt.Errorf("recurrence rule produced no occurrences")
	}

	recurrenceID := uuid.NewString()
	shifts := make([]*model.Shift, len(dates))
	for i, date := range dates {
		occurrence := *base
		occurrence.ID = uuid.NewString()
		occurrence.Date = date.Format("2006-01-02")
		occurrence.RecurrenceID = recurrenceID
		shifts[i] = &occurrence
	}

	err = common.WithRetry(ctx, func() error {
		return d.storage.CreateShifts(ctx, shifts)
	}, d.retry)
	if err != nil {
		return nil, fmt.Errorf("failed to create recurring shifts: %w", err)
	}

	if base.Driver != "" {
		d.notify(ctx, base.Driver, "shift_assigned",
			fmt.Sprintf("You are scheduled for %s, %d occurrences starting %s",
				base.Route, len(shifts), shifts[0].Date))
	}

	slog.Info("scheduled recurring shifts",
		"recurrence_id", recurrenceID,
		"count", len(shifts),
		"route", base.Route)
	return shifts, nil
}

func (d *Dispatcher) shiftFromFields(fields model.FieldList) *model.Shift {
	shift := &model.Shift{ID: uuid.NewString()}
	if v, ok := fields.Get(intent.FieldDriver); ok {
		shift.Driver = v
	}
	if v, ok := fields.Get(intent.FieldBackupDriver); ok {
		shift.BackupDriver = v
	}
	if v, ok := fields.Get(intent.FieldRoute); ok {
		shift.Route = v
	}
	if v, ok := fields.Get(intent.FieldDate); ok {
		shift.Date = v
	} else {
		// An undated shift request lands on the next calendar day.
		shift.Date = d.clock().AddDate(0, 0, 1).Format("2006-01-02")
	}
	if v, ok := fields.Get(intent.FieldStartTime); ok {
		shift.StartTime = v
	}
	if v, ok := fields.Get(intent.FieldEndTime); ok {
		shift.EndTime = v
	}
	if v, ok := fields.Get(intent.FieldVehicle); ok {
		shift.Vehicle = v
	}
	if v, ok := fields.Get(intent.FieldLicenseRequired); ok {
		shift.LicenseRequired = v
	}
	return shift
}

// notify records a notification best-effort. Delivery failures are logged,
// never surfaced: the primary operation has already committed.
func (d *Dispatcher) notify(ctx context.Context, recipient, kind, message string) {
	err := d.storage.CreateNotification(ctx, &model.Notification{
		ID:        uuid.NewString(),
		Recipient: recipient,
		Kind:      kind,
		Message:   message,
	})
	if err != nil {
		slog.Warn("failed to create notification", "recipient", recipient, "kind", kind, "error", err)
	}
}

func describeTicket(t *model.Ticket) string {
	if t.Customer != "" {
		return t.Customer
	}
	return "unspecified customer"
}
