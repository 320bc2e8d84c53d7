package workers

import (
	"testing"
	"time"

	"go.uber.org/zap"
)

func testLogger() *zap.Logger {
	return zap.NewNop()
}

func TestUntilNextFire_LaterToday(t *testing.T) {
	now := time.Date(2026, 3, 9, 8, 0, 0, 0, time.UTC)
	d := UntilNextFire(now, 9, 50, time.UTC)
	if want := time.Hour + 50*time.Minute; d != want {
		t.Errorf("UntilNextFire = %v, want %v", d, want)
	}
}

func TestUntilNextFire_AlreadyPassed(t *testing.T) {
	now := time.Date(2026, 3, 9, 10, 0, 0, 0, time.UTC)
	d := UntilNextFire(now, 9, 50, time.UTC)
	if want := 23*time.Hour + 50*time.Minute; d != want {
		t.Errorf("UntilNextFire = %v, want %v", d, want)
	}
}

func TestUntilNextFire_ExactlyAtFireTime(t *testing.T) {
	// Firing "now" schedules tomorrow, never a zero-duration timer loop.
	now := time.Date(2026, 3, 9, 9, 50, 0, 0, time.UTC)
	d := UntilNextFire(now, 9, 50, time.UTC)
	if want := 24 * time.Hour; d != want {
		t.Errorf("UntilNextFire = %v, want %v", d, want)
	}
}

func TestUntilNextFire_RespectsZone(t *testing.T) {
	dhaka, err := time.LoadLocation("Asia/Dhaka")
	if err != nil {
		t.Fatalf("load location: %v", err)
	}

	// 02:00 UTC is 08:00 in Dhaka, so a 09:50 Dhaka fire is 1h50m away.
	now := time.Date(2026, 3, 9, 2, 0, 0, 0, time.UTC)
	d := UntilNextFire(now, 9, 50, dhaka)
	if want := time.Hour + 50*time.Minute; d != want {
		t.Errorf("UntilNextFire = %v, want %v", d, want)
	}
}

func TestStartStop(t *testing.T) {
	// A worker scheduled far in the future must still stop promptly.
	w := NewAbsenteeSweep(nil, testLogger(), 23, 59, time.UTC)
	w.Start()

	done := make(chan struct{})
	go func() {
		w.Stop()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Stop did not return within 2s")
	}
}
