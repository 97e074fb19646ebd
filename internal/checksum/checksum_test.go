package checksum

import "testing"

func TestSum(t *testing.T) {
	// SHA-256 of the empty string.
	const empty = "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855"
	if got := Sum(nil); got != empty {
		t.Errorf("Sum(nil) = %s", got)
	}
	if Sum([]byte("a")) == Sum([]byte("b")) {
		t.Error("different content should have different sums")
	}
}

func TestTracker(t *testing.T) {
	var tr Tracker
	if !tr.Changed([]byte("theme: dark")) {
		t.Error("first content should count as a change")
	}
	if tr.Changed([]byte("theme: dark")) {
		t.Error("same content reported as changed")
	}
	tr.Remember([]byte("theme: light"))
	if tr.Changed([]byte("theme: light")) {
		t.Error("remembered content reported as changed")
	}
	if !tr.Changed([]byte("theme: dark")) {
		t.Error("new content not reported")
	}
}
