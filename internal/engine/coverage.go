package engine

import (
	"context"
	"fmt"
)

// SuggestCoverage returns the names of active drivers who have no shift on
// the given date, excluding the driver being covered for. Names come back in
// roster order.
func (d *Dispatcher) SuggestCoverage(ctx context.Context, date, exclude string) ([]string, error) {
	drivers, err := d.storage.GetDrivers(ctx, true)
	if err != nil {
		return nil, fmt.Errorf("failed to load roster: %w", err)
	}

	shifts, err := d.storage.GetShiftsOnDate(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("failed to load shifts for %s: %w", date, err)
	}
	busy := make(map[string]bool, len(shifts))
	for _, shift := range shifts {
		if shift.Driver != "" {
			busy[shift.Driver] = true
		}
	}

	unavailable, err := d.storage.GetUnavailabilityOnDate(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("failed to load unavailability for %s: %w", date, err)
	}
	for _, record := range unavailable {
		busy[record.Driver] = true
	}

	var available []string
	for _, driver := range drivers {
		if driver.Name == exclude || busy[driver.Name] {
			continue
		}
		available = append(available, driver.Name)
	}
	return available, nil
}
