// Package model defines the core domain models used throughout the application.
package model

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// ActionKind identifies the kind of action detected in a free-text prompt.
type ActionKind string

// Action kind constants.
const (
	ActionCreateTicket    ActionKind = "create_ticket"
	ActionScheduleShift   ActionKind = "schedule_shift"
	ActionMarkUnavailable ActionKind = "mark_unavailable"
	ActionSuggestCoverage ActionKind = "suggest_coverage"
	ActionUpdateShift     ActionKind = "update_shift"
)

// Label returns the human-readable name for an action kind.
func (a ActionKind) Label() string {
	switch a {
	case ActionCreateTicket:
		return "Create Ticket"
	case ActionScheduleShift:
		return "Schedule Shift"
	case ActionMarkUnavailable:
		return "Mark Unavailable"
	case ActionSuggestCoverage:
		return "Suggest Coverage"
	case ActionUpdateShift:
		return "Update Shift"
	}
	return "Unknown Action"
}

// Field is a single extracted name/value pair.
type Field struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// FieldList is an ordered collection of extracted fields. Order is the order
// in which fields were extracted from the prompt.
type FieldList []Field

// Set appends a field, replacing the value in place if the name already exists.
func (f *FieldList) Set(name, value string) {
	for i := range *f {
		if (*f)[i].Name == name {
			(*f)[i].Value = value
			return
		}
	}
	*f = append(*f, Field{Name: name, Value: value})
}

// Get returns the value for a field name and whether it was extracted.
func (f FieldList) Get(name string) (string, bool) {
	for _, fld := range f {
		if fld.Name == name {
			return fld.Value, true
		}
	}
	return "", false
}

// Names returns the field names in extraction order.
func (f FieldList) Names() []string {
	names := make([]string, len(f))
	for i, fld := range f {
		names[i] = fld.Name
	}
	return names
}

// MarshalJSON renders the list as a JSON object preserving field order.
func (f FieldList) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, fld := range f {
		if i > 0 {
			buf.WriteByte(',')
		}
		name, err := json.Marshal(fld.Name)
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(fld.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(name)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON parses a JSON object into the list, preserving key order.
func (f *FieldList) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("fields: expected JSON object, got %v", tok)
	}

	*f = (*f)[:0]
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("fields: expected string key, got %v", keyTok)
		}
		var value string
		if err := dec.Decode(&value); err != nil {
			return fmt.Errorf("fields: value for %q: %w", key, err)
		}
		*f = append(*f, Field{Name: key, Value: value})
	}
	return nil
}

// DetectedIntent is the classified result of analyzing a free-text prompt.
type DetectedIntent struct {
	Action     ActionKind `json:"action"`
	Fields     FieldList  `json:"fields"`
	Warnings   []string   `json:"warnings"`
	Confidence float64    `json:"confidence"`
}
