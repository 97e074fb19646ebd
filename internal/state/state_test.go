package state

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/starford/notebookd/internal/refs"
)

func TestTableGet(t *testing.T) {
	var nilTable *ContentTable
	if _, ok := nilTable.Get("x"); ok {
		t.Error("nil table reported a record")
	}

	ref := refs.CreateContentRef()
	tbl := (&ContentTable{}).With(ref, &Content{Ref: ref})
	if _, ok := tbl.Get(""); ok {
		t.Error("empty reference resolved")
	}
	if c, ok := tbl.Get(ref); !ok || c.Ref != ref {
		t.Errorf("Get(%q) = %v, %v", ref, c, ok)
	}
}

func TestTableWithIsCopyOnWrite(t *testing.T) {
	a := (&KernelTable{}).With("k1", &Kernel{Ref: "k1"})
	b := a.With("k2", &Kernel{Ref: "k2"})
	if a.Len() != 1 || b.Len() != 2 {
		t.Fatalf("lens = %d, %d", a.Len(), b.Len())
	}
	if diff := cmp.Diff([]refs.KernelRef{"k1", "k2"}, b.Refs()); diff != "" {
		t.Errorf("refs (-want +got):\n%s", diff)
	}
}

func TestTableWithoutAbsentKeepsIdentity(t *testing.T) {
	a := (&HostTable{}).With("h1", &Host{Ref: "h1"})
	if a.Without("missing") != a {
		t.Error("Without(absent) returned a new table")
	}
	b := a.Without("h1")
	if b == a || b.Len() != 0 || a.Len() != 1 {
		t.Error("Without(present) did not copy")
	}
}

func TestConfig(t *testing.T) {
	var nilCfg *Config
	if got := nilCfg.String("theme", "light"); got != "light" {
		t.Errorf("nil config theme = %q", got)
	}

	c := NewConfig(map[string]any{"theme": "dark"})
	if got := c.String("theme", "light"); got != "dark" {
		t.Errorf("theme = %q", got)
	}
	if got := c.With("theme", "").String("theme", "light"); got != "light" {
		t.Errorf("empty theme = %q, want default", got)
	}

	if c.Merge(map[string]any{"theme": "dark"}) != c {
		t.Error("merge of equal values changed identity")
	}
	merged := c.Merge(map[string]any{"cursorBlinkRate": 530})
	if merged == c || merged.Len() != 2 || c.Len() != 1 {
		t.Error("merge did not copy")
	}

	m := c.Map()
	m["theme"] = "mutated"
	if c.String("theme", "") != "dark" {
		t.Error("Map exposed internal storage")
	}
}

func TestCloneIsShallow(t *testing.T) {
	s := New()
	c := s.Clone()
	if c == s || c.Contents != s.Contents || c.Config != s.Config {
		t.Error("Clone should copy the struct and share tables")
	}
}
