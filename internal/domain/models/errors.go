package models

import "errors"

// Sentinel errors shared across the engine. Callers distinguish conditions
// with errors.Is; wrapped messages carry the context.
var (
	// ErrUnknownProvince is returned for province names outside the
	// administrative registry. Lookups are case-sensitive exact matches.
	ErrUnknownProvince = errors.New("unknown province")

	// ErrReportNotFound is returned when a report id resolves to nothing.
	ErrReportNotFound = errors.New("report not found")

	// ErrInvalidChartSpec marks a structurally invalid chart configuration
	// (caller error).
	ErrInvalidChartSpec = errors.New("invalid chart spec")

	// ErrCorruptChartData marks malformed chart image bytes reaching the
	// renderer. Charts are generated in-process, so this is an internal
	// invariant violation and is never retried.
	ErrCorruptChartData = errors.New("corrupt chart data")

	// ErrInvalidTransition is returned for report lifecycle violations,
	// e.g. finalizing a report that is not a draft.
	ErrInvalidTransition = errors.New("invalid report status transition")
)
