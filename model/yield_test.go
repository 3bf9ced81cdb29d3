package model

import (
	"math/big"
	"testing"
	"time"

	"github.com/cockroachdb/apd/v2"
)

func TestRewardUsdValueFullCredit(t *testing.T) {
	raw := new(big.Int).Exp(big.NewInt(10), big.NewInt(18), nil)
	usd, err := RewardUsdValue(raw, 18, apd.New(2, 0), 100)
	if err != nil {
		t.Fatal(err)
	}
	if usd.Cmp(apd.New(2, 0)) != 0 {
		t.Fatalf("One token at $2 should credit $2, got %s", usd.Text('f'))
	}
}

func TestRewardUsdValueHalfCredit(t *testing.T) {
	raw := new(big.Int).Exp(big.NewInt(10), big.NewInt(18), nil)
	usd, err := RewardUsdValue(raw, 18, apd.New(2, 0), 50)
	if err != nil {
		t.Fatal(err)
	}
	if usd.Cmp(apd.New(1, 0)) != 0 {
		t.Fatalf("Half credit on $2 should be $1, got %s", usd.Text('f'))
	}
}

func TestRewardUsdValueUnpriced(t *testing.T) {
	usd, err := RewardUsdValue(big.NewInt(1000), 6, nil, 100)
	if err != nil {
		t.Fatal(err)
	}
	if !usd.IsZero() {
		t.Fatalf("Unpriced reward should credit zero, got %s", usd.Text('f'))
	}
}

func TestProjectYieldTenDays(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	captured := now.Add(-10 * 24 * time.Hour)

	proj, err := ProjectYield(apd.New(10, 0), apd.New(1000, 0), captured, false, now)
	if err != nil {
		t.Fatal(err)
	}
	if proj.DaysActive.Cmp(apd.New(10, 0)) != 0 {
		t.Fatalf("Expected 10 days active, got %s", proj.DaysActive.Text('f'))
	}
	// (10/1000) / (10/365) * 100 = 36.5
	decsClose(t, proj.AprPercent, apd.New(365, -1))
	decsClose(t, proj.AnnualUsd, apd.New(365, 0))
	decsClose(t, proj.DailyUsd, apd.New(1, 0))
}

func TestProjectYieldFreshBaseline(t *testing.T) {
	now := time.Now()
	proj, err := ProjectYield(apd.New(10, 0), apd.New(1000, 0), now.Add(-time.Hour), true, now)
	if err != nil {
		t.Fatal(err)
	}
	if !proj.AprPercent.IsZero() || !proj.DailyUsd.IsZero() || !proj.AnnualUsd.IsZero() {
		t.Fatal("Fresh baseline should produce a zero projection")
	}
}

func TestProjectYieldZeroValue(t *testing.T) {
	now := time.Now()
	proj, err := ProjectYield(apd.New(10, 0), apd.New(0, 0), now.Add(-24*time.Hour), false, now)
	if err != nil {
		t.Fatal(err)
	}
	if !proj.AprPercent.IsZero() {
		t.Fatalf("Zero position value should produce zero APR, got %s", proj.AprPercent.Text('f'))
	}
	if proj.DaysActive.Sign() <= 0 {
		t.Fatal("Days active should still be recorded")
	}
}

func TestDailyRewardUsd(t *testing.T) {
	daily, err := DailyRewardUsd(apd.New(1000, 0), apd.New(365, -1))
	if err != nil {
		t.Fatal(err)
	}
	if daily.Cmp(apd.New(1, 0)) != 0 {
		t.Fatalf("Expected $1 daily run rate, got %s", daily.Text('f'))
	}
}

func TestDailyRewardUsdZeroApr(t *testing.T) {
	daily, err := DailyRewardUsd(apd.New(1000, 0), apd.New(0, 0))
	if err != nil {
		t.Fatal(err)
	}
	if !daily.IsZero() {
		t.Fatalf("Zero APR should have zero run rate, got %s", daily.Text('f'))
	}
}
