package types

import (
	"errors"
	"fmt"
)

// FailReason classifies a failure so callers can tell "skip this position"
// apart from "abort the whole report".
type FailReason string

const (
	// DataUnavailable: a single position's pool, log, or reward read
	// failed. The position is skipped or degrades to safe defaults.
	DataUnavailable FailReason = "data_unavailable"

	// PriceUnresolved: neither pool leg is the quote currency and no
	// fallback feed quote exists. The leg contributes nothing to
	// valuation, visibly.
	PriceUnresolved FailReason = "price_unresolved"

	// ArithmeticDegenerate: zero HODL value, zero range width, zero daily
	// reward, or a non-finite ratio. Forced to 0 / "N/A", never raised to
	// the caller.
	ArithmeticDegenerate FailReason = "arithmetic_degenerate"

	// ConnectivityFailure: the chain data source is unreachable or the
	// wallet balance is unreadable. Fails the whole report request.
	ConnectivityFailure FailReason = "connectivity_failure"
)

type ReportError struct {
	Reason FailReason
	Inner  error
}

func (e *ReportError) Error() string {
	if e.Inner == nil {
		return string(e.Reason)
	}
	return fmt.Sprintf("%s: %s", e.Reason, e.Inner.Error())
}

func (e *ReportError) Unwrap() error {
	return e.Inner
}

func Fail(reason FailReason, inner error) *ReportError {
	return &ReportError{Reason: reason, Inner: inner}
}

func Failf(reason FailReason, format string, args ...any) *ReportError {
	return &ReportError{Reason: reason, Inner: fmt.Errorf(format, args...)}
}

// ReasonOf extracts the failure reason from an error chain, defaulting to
// DataUnavailable for plain errors.
func ReasonOf(err error) FailReason {
	var re *ReportError
	if errors.As(err, &re) {
		return re.Reason
	}
	return DataUnavailable
}

func IsConnectivityFailure(err error) bool {
	return ReasonOf(err) == ConnectivityFailure
}
