// Package intent implements the natural-language intent detector behind the
// prompt console. It maps informal scheduling and ticketing phrases to a
// structured action with extracted fields, a fixed per-rule confidence, and
// advisory warnings. Extraction is a pure function of the prompt text and a
// reference instant; there is no model or grammar behind it, only an ordered
// rule list with substring and regex matching.
package intent

import (
	"regexp"
	"strings"
	"time"

	"github.com/routewise/dispatch/internal/model"
)

// Fixed per-rule confidence constants. Callers gate execution on these:
// below ConfidenceFloor the intent is not executable, below
// ConfidenceReview manual form entry is recommended.
const (
	ConfidenceCreateTicket    = 0.92
	ConfidenceScheduleShift   = 0.89
	ConfidenceMarkUnavailable = 0.85
	ConfidenceFallback        = 0.3

	ConfidenceFloor  = 0.3
	ConfidenceReview = 0.6
)

// Field names emitted by the extractor.
const (
	FieldCustomer               = "customer"
	FieldCategory               = "category"
	FieldPriority               = "priority"
	FieldDateRequested          = "dateRequested"
	FieldExpectedResolutionDate = "expectedResolutionDate"
	FieldRoute                  = "route"
	FieldDriver                 = "driver"
	FieldVehicle                = "vehicle"
	FieldBackupDriver           = "backupDriver"
	FieldStartTime              = "startTime"
	FieldEndTime                = "endTime"
	FieldDate                   = "date"
	FieldLicenseRequired        = "licenseRequired"
	FieldTimeSlot               = "timeSlot"
	FieldAffectedRoute          = "affectedRoute"
	FieldDescription            = "description"
)

var (
	routeRegex     = regexp.MustCompile(`(?i)route (\w+)`)
	driverRegex    = regexp.MustCompile(`(?i)driver (\w+)`)
	vehicleRegex   = regexp.MustCompile(`(?i)vehicle (\w+)`)
	driverLeeRegex = regexp.MustCompile(`(?i)driver lee`)
	// En-dash separated hour range with PM implied, e.g. "6–2pm".
	timeRangeRegex = regexp.MustCompile(`(?i)(\d+)–(\d+)pm`)
)

// triggerRule pairs a trigger predicate with its field extractor and fixed
// confidence. Rules are evaluated in order; the first match wins.
type triggerRule struct {
	match      func(lower string) bool
	extract    func(text, lower string, now time.Time) (model.FieldList, []string)
	action     model.ActionKind
	confidence float64
}

// rules is the ordered classification table. Ticket phrasing is checked
// first because it is the most lexically distinctive; "mark"/"unavailable"
// comes after shift scheduling so that "mark ... scheduled" style phrases
// resolve to scheduling. The order is a deliberate tie-break and must not
// be rearranged.
var rules = []triggerRule{
	{
		action:     model.ActionCreateTicket,
		confidence: ConfidenceCreateTicket,
		match: func(lower string) bool {
			return containsAny(lower, "ticket", "request", "issue")
		},
		extract: extractTicketFields,
	},
	{
		action:     model.ActionScheduleShift,
		confidence: ConfidenceScheduleShift,
		match: func(lower string) bool {
			return containsPhrase(lower, "schedule") && containsAny(lower, "shift", "route")
		},
		extract: extractShiftFields,
	},
	{
		action:     model.ActionMarkUnavailable,
		confidence: ConfidenceMarkUnavailable,
		match: func(lower string) bool {
			return containsAny(lower, "unavailable", "mark")
		},
		extract: extractUnavailableFields,
	},
}

// Extract analyzes a free-text prompt and returns the detected intent.
// Blank or whitespace-only input returns nil. Any other input yields exactly
// one intent; unrecognized phrasing degrades to a low-confidence create-ticket
// guess carrying the full input as its description.
func Extract(text string, now time.Time) *model.DetectedIntent {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	lower := strings.ToLower(text)
	for _, rule := range rules {
		if !rule.match(lower) {
			continue
		}
		fields, warnings := rule.extract(text, lower, now)
		return &model.DetectedIntent{
			Action:     rule.action,
			Confidence: rule.confidence,
			Fields:     fields,
			Warnings:   warnings,
		}
	}

	var fields model.FieldList
	fields.Set(FieldDescription, text)
	return &model.DetectedIntent{
		Action:     model.ActionCreateTicket,
		Confidence: ConfidenceFallback,
		Fields:     fields,
		Warnings:   []string{"Could not determine specific action"},
	}
}

func extractTicketFields(text, lower string, now time.Time) (model.FieldList, []string) {
	var fields model.FieldList
	warnings := []string{}

	if customer, ok := findVocab(lower, knownCustomers); ok {
		fields.Set(FieldCustomer, customer)
	} else {
		warnings = append(warnings, "Customer not specified")
	}

	if category, ok := findVocab(lower, knownCategories); ok {
		fields.Set(FieldCategory, category)
	} else {
		warnings = append(warnings, "Category unclear")
	}

	// Priority defaults to Medium without a warning.
	if priority, ok := findVocab(lower, knownPriorities); ok {
		fields.Set(FieldPriority, priority)
	} else {
		fields.Set(FieldPriority, string(model.PriorityMedium))
	}

	if containsPhrase(lower, "today") {
		fields.Set(FieldDateRequested, isoDate(now))
	}
	// Deadline weekdays resolve same-day matches to today, unlike the
	// shift-scheduling path below.
	if containsPhrase(lower, "friday") {
		fields.Set(FieldExpectedResolutionDate, isoDate(nextWeekday(now, time.Friday)))
	}
	if containsPhrase(lower, "wednesday") {
		fields.Set(FieldExpectedResolutionDate, isoDate(nextWeekday(now, time.Wednesday)))
	}

	if route, ok := captureGroup(routeRegex, text); ok {
		fields.Set(FieldRoute, "Route "+route)
	}
	if driver, ok := captureGroup(driverRegex, text); ok {
		fields.Set(FieldDriver, driver)
	}
	if vehicle, ok := captureGroup(vehicleRegex, text); ok {
		fields.Set(FieldVehicle, vehicle)
	}

	return fields, warnings
}

func extractShiftFields(text, lower string, now time.Time) (model.FieldList, []string) {
	var fields model.FieldList
	warnings := []string{}

	if driver, ok := findVocab(lower, knownShiftDrivers); ok {
		fields.Set(FieldDriver, driver)
	} else {
		warnings = append(warnings, "Driver not specified")
	}
	if backup, ok := findVocab(lower, knownBackupDrivers); ok {
		fields.Set(FieldBackupDriver, backup)
	}

	if route, ok := captureGroup(routeRegex, text); ok {
		fields.Set(FieldRoute, "Route "+route)
	} else {
		warnings = append(warnings, "Route not specified")
	}

	if m := timeRangeRegex.FindStringSubmatch(text); m != nil {
		fields.Set(FieldStartTime, m[1]+":00")
		fields.Set(FieldEndTime, m[2]+":00")
	}

	// Shift dates resolve same-day matches to next week, not today.
	if containsPhrase(lower, "tue") {
		fields.Set(FieldDate, isoDate(nextWeekdayStrict(now, time.Tuesday)))
	}

	if vehicle, ok := findVocab(lower, knownVehicles); ok {
		fields.Set(FieldVehicle, vehicle)
	}
	if license, ok := findVocab(lower, knownLicenses); ok {
		fields.Set(FieldLicenseRequired, license)
	}

	return fields, warnings
}

func extractUnavailableFields(text, lower string, now time.Time) (model.FieldList, []string) {
	var fields model.FieldList
	warnings := []string{}

	if driverLeeRegex.MatchString(text) {
		fields.Set(FieldDriver, "Lee")
	} else {
		warnings = append(warnings, "Driver not specified")
	}

	if containsPhrase(lower, "tomorrow") {
		fields.Set(FieldDate, isoDate(now.AddDate(0, 0, 1)))
	}
	if containsPhrase(lower, "morning") {
		fields.Set(FieldTimeSlot, "morning")
	}

	if route, ok := captureGroup(routeRegex, text); ok {
		fields.Set(FieldAffectedRoute, "Route "+route)
	}

	return fields, warnings
}

func containsPhrase(lower, phrase string) bool {
	return strings.Contains(lower, phrase)
}

func containsAny(lower string, phrases ...string) bool {
	for _, p := range phrases {
		if strings.Contains(lower, p) {
			return true
		}
	}
	return false
}

func captureGroup(re *regexp.Regexp, text string) (string, bool) {
	m := re.FindStringSubmatch(text)
	if m == nil {
		return "", false
	}
	return m[1], true
}
