package ratelimit

import "testing"

func TestAllowWithinBurst(t *testing.T) {
	l := New(1, 3)
	defer l.Stop()

	for i := 0; i < 3; i++ {
		if !l.Allow("10.0.0.1") {
			t.Fatalf("request %d denied inside burst", i+1)
		}
	}
	if l.Allow("10.0.0.1") {
		t.Error("request beyond burst allowed")
	}
}

func TestKeysAreIndependent(t *testing.T) {
	l := New(1, 1)
	defer l.Stop()

	if !l.Allow("10.0.0.1") {
		t.Fatal("first key denied")
	}
	if !l.Allow("10.0.0.2") {
		t.Error("second key throttled by first key's bucket")
	}
}

func TestStopClearsState(t *testing.T) {
	l := New(1, 1)
	l.Allow("10.0.0.1")
	l.Stop()

	l.mu.Lock()
	n := len(l.clients)
	l.mu.Unlock()
	if n != 0 {
		t.Errorf("clients after Stop = %d, want 0", n)
	}
}
