package model

import (
	"errors"
	"strconv"
)

// ErrConfiguration is matched by every *ConfigurationError via errors.Is.
var ErrConfiguration = errors.New("invalid configuration")

// ConfigurationError reports a structurally invalid group definition or cart line.
type ConfigurationError struct {
	GroupID string
	Field   string
	Reason  string
}

// Error returns a human readable description.
func (e *ConfigurationError) Error() string {
	if e.GroupID != "" {
		return "group " + e.GroupID + ": " + e.Field + ": " + e.Reason
	}
	return e.Field + ": " + e.Reason
}

// Is makes errors.Is(err, ErrConfiguration) true.
func (e *ConfigurationError) Is(target error) bool {
	return target == ErrConfiguration
}

func formatID(id int64) string {
	return strconv.FormatInt(id, 10)
}
