package model

import (
	"strings"
	"testing"

	"github.com/cockroachdb/apd/v2"
)

func TestProjectBoundNoRewards(t *testing.T) {
	out, err := ProjectBound(
		apd.New(100, 0), apd.New(80, 0), apd.New(80, 0), apd.New(120, 0),
		apd.New(1, 0), apd.New(100, 0),
		apd.New(0, 0), apd.New(0, 0), apd.New(5, 0))
	if err != nil {
		t.Fatal(err)
	}
	if out.DaysToBreakeven.Sign() != 0 {
		t.Fatalf("No reward run rate should yield zero breakeven days, got %s",
			out.DaysToBreakeven.Text('f'))
	}
	if out.Display != "N/A" {
		t.Fatalf("Expected N/A display, got %q", out.Display)
	}
}

func TestProjectBoundWithRewards(t *testing.T) {
	out, err := ProjectBound(
		apd.New(100, 0), apd.New(80, 0), apd.New(80, 0), apd.New(120, 0),
		apd.New(1, 0), apd.New(100, 0),
		apd.New(10, 0), apd.New(2, 0), apd.New(1, 0))
	if err != nil {
		t.Fatal(err)
	}
	if out.ILUsd.Sign() <= 0 {
		t.Fatalf("Expected positive IL in USD, got %s", out.ILUsd.Text('f'))
	}
	if out.DaysToBreakeven.Sign() <= 0 {
		t.Fatalf("Expected positive breakeven days, got %s", out.DaysToBreakeven.Text('f'))
	}
	if out.Display == "N/A" {
		t.Fatal("Expected a rendered breakeven display")
	}
	if !strings.Contains(out.Display, "left") && !strings.Contains(out.Display, "Met") {
		t.Fatalf("Display missing remaining-time suffix: %q", out.Display)
	}
}

func TestProjectBoundMet(t *testing.T) {
	// Huge reward run rate breaks even almost instantly, so a position
	// active for days shows the target as met.
	out, err := ProjectBound(
		apd.New(100, 0), apd.New(80, 0), apd.New(80, 0), apd.New(120, 0),
		apd.New(1, 0), apd.New(100, 0),
		apd.New(1000, 0), apd.New(1000, 0), apd.New(30, 0))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.Display, "(Met)") {
		t.Fatalf("Expected met display, got %q", out.Display)
	}
	if out.TimeRemaining.Sign() >= 0 {
		t.Fatalf("Expected negative remaining time, got %s", out.TimeRemaining.Text('f'))
	}
}

func TestProjectBoundFeesMinusIl(t *testing.T) {
	rewards := apd.New(50, 0)
	out, err := ProjectBound(
		apd.New(100, 0), apd.New(120, 0), apd.New(80, 0), apd.New(120, 0),
		apd.New(1, 0), apd.New(100, 0),
		rewards, apd.New(1, 0), apd.New(1, 0))
	if err != nil {
		t.Fatal(err)
	}
	check := new(apd.Decimal)
	if _, err := dctx.Add(check, out.FeesMinusIl, out.ILUsd); err != nil {
		t.Fatal(err)
	}
	if check.Cmp(rewards) != 0 {
		t.Fatalf("FeesMinusIl + ILUsd should equal rewards: %s + %s != %s",
			out.FeesMinusIl.Text('f'), out.ILUsd.Text('f'), rewards.Text('f'))
	}
}

func TestProjectCurrentAtEntry(t *testing.T) {
	rewards := apd.New(25, 0)
	out, err := ProjectCurrent(
		apd.New(100, 0), apd.New(100, 0), apd.New(80, 0), apd.New(120, 0),
		apd.New(1, 0), apd.New(100, 0), rewards)
	if err != nil {
		t.Fatal(err)
	}
	if !out.ILPercent.IsZero() || !out.ILUsd.IsZero() {
		t.Fatalf("No price move should have zero IL, got %s / %s",
			out.ILPercent.Text('f'), out.ILUsd.Text('f'))
	}
	if out.NetGainLoss.Cmp(rewards) != 0 {
		t.Fatalf("With zero IL net gain should equal rewards, got %s", out.NetGainLoss.Text('f'))
	}
}
