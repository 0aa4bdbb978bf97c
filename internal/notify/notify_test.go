package notify

import (
	"errors"
	"testing"
)

func stubLookPath(t *testing.T, found bool) {
	t.Helper()
	orig := lookPath
	lookPath = func(name string) (string, error) {
		if found {
			return "/usr/bin/" + name, nil
		}
		return "", errors.New("not found")
	}
	t.Cleanup(func() { lookPath = orig })
}

func TestRequestPermission(t *testing.T) {
	tests := []struct {
		name    string
		enabled bool
		found   bool
		want    Permission
	}{
		{"disabled in config", false, true, Denied},
		{"no backend", true, false, Unavailable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stubLookPath(t, tt.found)
			if got := RequestPermission(tt.enabled); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNewFallsBackToNop(t *testing.T) {
	for _, perm := range []Permission{Denied, Unavailable} {
		n := New(perm, "")
		if _, ok := n.(Nop); !ok {
			t.Errorf("%s: got %T, want Nop", perm, n)
		}
		if err := n.Notify("t", "b"); err != nil {
			t.Errorf("Nop.Notify: %v", err)
		}
	}
	if _, ok := New(Granted, "").(*Desktop); !ok {
		t.Error("granted permission should yield a desktop notifier")
	}
}
