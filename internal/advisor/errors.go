package advisor

import (
	"errors"
	"fmt"
)

// ErrMissingSettings is returned by every engine when invoked without parsed
// league settings. Engines refuse to run on defaults.
var ErrMissingSettings = errors.New("league settings are required")

// SettingsParseError indicates the raw league configuration could not be
// normalized into LeagueSettings.
type SettingsParseError struct {
	Reason string
}

func (e *SettingsParseError) Error() string {
	return fmt.Sprintf("parsing league settings: %s", e.Reason)
}

// InvalidWaiverTypeError indicates an unrecognized waiver budget mode.
type InvalidWaiverTypeError struct {
	Type string
}

func (e *InvalidWaiverTypeError) Error() string {
	return fmt.Sprintf("invalid waiver type %q", e.Type)
}
