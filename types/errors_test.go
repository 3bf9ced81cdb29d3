package types

import (
	"errors"
	"fmt"
	"testing"
)

func TestReasonOfWrapped(t *testing.T) {
	inner := Failf(PriceUnresolved, "no quote for %s", "WBTC")
	wrapped := fmt.Errorf("building report: %w", inner)

	if ReasonOf(wrapped) != PriceUnresolved {
		t.Fatalf("Reason lost through wrapping, got %s", ReasonOf(wrapped))
	}
}

func TestReasonOfPlainError(t *testing.T) {
	if ReasonOf(errors.New("boom")) != DataUnavailable {
		t.Fatal("Plain errors should default to data_unavailable")
	}
}

func TestFailChaining(t *testing.T) {
	root := errors.New("connection refused")
	err := Fail(ConnectivityFailure, root)

	if !errors.Is(err, root) {
		t.Fatal("Inner error lost from chain")
	}
	if !IsConnectivityFailure(err) {
		t.Fatal("Connectivity classification lost")
	}
	if IsConnectivityFailure(Fail(DataUnavailable, root)) {
		t.Fatal("Misclassified a data failure as connectivity")
	}
}

func TestReportErrorMessage(t *testing.T) {
	err := Failf(ArithmeticDegenerate, "zero range width")
	want := "arithmetic_degenerate: zero range width"
	if err.Error() != want {
		t.Fatalf("Error() = %q, want %q", err.Error(), want)
	}
}
