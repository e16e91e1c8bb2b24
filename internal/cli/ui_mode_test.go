package cli

import (
	"bytes"
	"io"
	"testing"
)

func stubTerminal(t *testing.T, tty bool) {
	t.Helper()
	original := isTerminal
	isTerminal = func(io.Writer) bool { return tty }
	t.Cleanup(func() { isTerminal = original })
}

func TestResolveUIMode(t *testing.T) {
	cases := []struct {
		name     string
		mode     string
		tty      bool
		wantLive bool
		wantWarn bool
		wantErr  bool
	}{
		{name: "auto tty", mode: "auto", tty: true, wantLive: true},
		{name: "auto pipe", mode: "auto", tty: false, wantLive: false},
		{name: "empty defaults to auto", mode: "", tty: true, wantLive: true},
		{name: "live tty", mode: "live", tty: true, wantLive: true},
		{name: "live pipe falls back", mode: "live", tty: false, wantLive: false, wantWarn: true},
		{name: "plain tty", mode: "plain", tty: true, wantLive: false},
		{name: "invalid", mode: "fancy", wantErr: true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			stubTerminal(t, tc.tty)
			decision, err := resolveUIMode(tc.mode, &bytes.Buffer{})
			if tc.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("resolveUIMode: %v", err)
			}
			if decision.useLive != tc.wantLive {
				t.Errorf("useLive = %v, want %v", decision.useLive, tc.wantLive)
			}
			if (decision.warning != "") != tc.wantWarn {
				t.Errorf("warning = %q, want warning %v", decision.warning, tc.wantWarn)
			}
		})
	}
}

func TestDefaultIsTerminal(t *testing.T) {
	if defaultIsTerminal(nil) {
		t.Error("nil writer reported as TTY")
	}
	if defaultIsTerminal(&bytes.Buffer{}) {
		t.Error("buffer reported as TTY")
	}
}
