package standings

import "fmt"

// ConfigurationError reports an unrecognized display option value
type ConfigurationError struct {
	Option string
	Value  string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("unrecognized %s %q", e.Option, e.Value)
}

// DataIntegrityError reports a missing or malformed field in a team payload
type DataIntegrityError struct {
	Team   string
	Index  int // position in the team's game list, -1 when not game specific
	Field  string
	Reason string
}

func (e *DataIntegrityError) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("team %s: invalid %s: %s", e.Team, e.Field, e.Reason)
	}
	return fmt.Sprintf("team %s game #%d: invalid %s: %s", e.Team, e.Index+1, e.Field, e.Reason)
}

// EmptyInputError reports input with nothing to compute from
type EmptyInputError struct {
	Team   string
	Reason string
}

func (e *EmptyInputError) Error() string {
	if e.Team == "" {
		return fmt.Sprintf("empty input: %s", e.Reason)
	}
	return fmt.Sprintf("empty input for team %s: %s", e.Team, e.Reason)
}
