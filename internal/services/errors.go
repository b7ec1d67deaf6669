package services

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrFetch         = errors.New("schedule fetch error")
	ErrResolve       = errors.New("channel resolve error")
	ErrInput         = errors.New("input error")
	ErrConfiguration = errors.New("configuration error")
	ErrProcess       = errors.New("process error")
	ErrExternalTool  = errors.New("external tool error")
)

// IssueURL is where users report scraping and configuration breakage.
const IssueURL = "https://github.com/Fenisu/ArenaVision_Launcher/issues"

// Wrap builds an error message that includes component context while tagging
// it with the provided marker for later classification. The marker should be
// one of the exported sentinel errors above.
func Wrap(marker error, component, operation, message string, err error) error {
	detail := buildDetail(component, operation, message)
	if marker == nil {
		marker = ErrExternalTool
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

// IsFatal reports whether err must end the whole run. Input and process
// errors stay inside the session; everything else reaches the exit boundary.
func IsFatal(err error) bool {
	switch {
	case err == nil:
		return false
	case errors.Is(err, ErrInput), errors.Is(err, ErrProcess):
		return false
	default:
		return true
	}
}

// NeedsIssueReport reports whether the failure points at upstream page or
// local setup drift that users should report.
func NeedsIssueReport(err error) bool {
	return errors.Is(err, ErrFetch) || errors.Is(err, ErrResolve) || errors.Is(err, ErrConfiguration)
}

func buildDetail(component, operation, message string) string {
	parts := make([]string, 0, 3)
	if component = strings.TrimSpace(component); component != "" {
		parts = append(parts, component)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "service failure"
	}
	return strings.Join(parts, ": ")
}
