package core

import "testing"

// TestMessageKind_String verifies kind names used in logs and metrics labels
func TestMessageKind_String(t *testing.T) {
	cases := []struct {
		kind MessageKind
		want string
	}{
		{MessageNop, "NOP"},
		{MessageExit, "EXIT"},
		{MessageTask, "TASK"},
		{MessageDump, "DUMP"},
		{MessageKind(200), "UNKNOWN"},
	}
	for _, c := range cases {
		if got := c.kind.String(); got != c.want {
			t.Errorf("MessageKind(%d).String() = %q, want %q", c.kind, got, c.want)
		}
	}
}
