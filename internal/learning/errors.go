package learning

import (
	"encoding/json"
	"errors"
	"fmt"
)

var (
	// ErrUnknownModuleType is returned when a module's type discriminator is missing or unrecognised.
	ErrUnknownModuleType = errors.New("unknown module type")
	// ErrMalformedInput is returned when raw input has a shape no factory can map.
	ErrMalformedInput = errors.New("malformed input")
)

// ConstructionError reports input a factory has no rule for. It is a programming or
// upstream data defect, never a user input problem, and carries the raw payload.
type ConstructionError struct {
	Entity string
	Type   string
	Raw    map[string]any
	Err    error
}

func (e *ConstructionError) Error() string {
	if e == nil {
		return ""
	}
	msg := e.Entity + ": "
	if e.Err != nil {
		msg += e.Err.Error()
	} else {
		msg += "construction failed"
	}
	if e.Type != "" || errors.Is(e.Err, ErrUnknownModuleType) {
		msg += fmt.Sprintf(" %q", e.Type)
	}
	return msg + " in " + renderRaw(e.Raw)
}

func (e *ConstructionError) Unwrap() error { return e.Err }

func renderRaw(raw map[string]any) string {
	b, err := json.Marshal(raw)
	if err != nil {
		return fmt.Sprintf("%v", raw)
	}
	return string(b)
}

func constructionError(entity, typ string, raw map[string]any, err error) error {
	return &ConstructionError{Entity: entity, Type: typ, Raw: raw, Err: err}
}
