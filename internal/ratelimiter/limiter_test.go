package ratelimiter

import (
	"testing"
	"time"
)

func TestAllowBurstThenBlock(t *testing.T) {
	l := New(Config{RequestsPerTimeFrame: 3, TimeFrame: time.Minute, Enabled: true})
	for i := 0; i < 3; i++ {
		if ok, _ := l.Allow("1.2.3.4"); !ok {
			t.Fatalf("request %d should pass", i+1)
		}
	}
	ok, retry := l.Allow("1.2.3.4")
	if ok {
		t.Fatal("fourth request should be limited")
	}
	if retry <= 0 || retry > time.Minute {
		t.Fatalf("retry after %v", retry)
	}
	if ok, _ := l.Allow("5.6.7.8"); !ok {
		t.Fatal("other clients are independent")
	}
}

func TestCleanupDropsIdleClients(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	l := New(Config{RequestsPerTimeFrame: 1, TimeFrame: time.Second})
	l.clock = func() time.Time { return now }
	l.Allow("a")

	now = now.Add(10 * time.Second)
	l.Allow("b")
	if n := l.Cleanup(); n != 1 {
		t.Fatalf("expected to drop 1 client, dropped %d", n)
	}
	if ok, _ := l.Allow("a"); !ok {
		t.Fatal("a dropped client starts with a full bucket")
	}
}
