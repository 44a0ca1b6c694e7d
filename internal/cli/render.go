package cli

import (
	"fmt"
	"strings"

	"github.com/routewise/dispatch/internal/intent"
	"github.com/routewise/dispatch/internal/model"
)

// RenderIntent renders a detected intent for terminal display: action label,
// confidence, extracted fields in extraction order, then warnings.
func RenderIntent(detected *model.DetectedIntent) string {
	if detected == nil {
		return SubtleStyle.Render("No intent detected")
	}

	var b strings.Builder
	b.WriteString(BoldStyle.Render(detected.Action.Label()))
	b.WriteString(SubtleStyle.Render(fmt.Sprintf("  (confidence %.2f)", detected.Confidence)))
	b.WriteString("\n")

	for _, field := range detected.Fields {
		b.WriteString(fmt.Sprintf("  %s %s\n",
			TableCellStyle.Render(field.Name+":"),
			field.Value))
	}

	for _, warning := range detected.Warnings {
		b.WriteString("  " + FormatWarning(warning) + "\n")
	}

	if detected.Confidence < intent.ConfidenceReview {
		b.WriteString("  " + SubtleStyle.Render("Low confidence; consider entering this manually.") + "\n")
	}

	return b.String()
}

// RenderShift renders a one-line shift summary.
func RenderShift(shift *model.Shift) string {
	driver := shift.Driver
	if driver == "" {
		driver = SubtleStyle.Render("unassigned")
	}
	line := fmt.Sprintf("%s  %s  %s", shift.Date, shift.Route, driver)
	if shift.StartTime != "" {
		line += fmt.Sprintf("  %s-%s", shift.StartTime, shift.EndTime)
	}
	return line
}
