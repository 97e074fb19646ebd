package session

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/starford/notebookd/internal/selectors"
	"github.com/starford/notebookd/internal/state"
	"github.com/starford/notebookd/internal/testutil"
)

func TestDescribe(t *testing.T) {
	st := testutil.DummyState()
	v := Describe(st)

	if v.ContentType != state.ContentNotebook {
		t.Errorf("content type = %q", v.ContentType)
	}
	if v.Filepath != testutil.DummyFilepath {
		t.Errorf("filepath = %q", v.Filepath)
	}
	if v.LastSaved == nil {
		t.Error("last saved should be set")
	}
	if v.CellCount != 2 {
		t.Errorf("cell count = %d, want 2", v.CellCount)
	}
	if v.KernelStatus != "idle" || v.KernelType != state.KernelZeroMQ {
		t.Errorf("kernel = %q/%q", v.KernelStatus, v.KernelType)
	}
	if !v.IsZeroMQKernel || v.IsJupyterHost {
		t.Errorf("classification = zmq:%v jupyter:%v", v.IsZeroMQKernel, v.IsJupyterHost)
	}
	if v.Endpoint != "http://127.0.0.1:8888/" {
		t.Errorf("endpoint = %q", v.Endpoint)
	}
	if v.Theme != selectors.DefaultTheme || v.Version != "test" {
		t.Errorf("theme/version = %q/%q", v.Theme, v.Version)
	}
}

func TestDescribe_EmptyState(t *testing.T) {
	v := Describe(state.New())
	if v.ContentRef != "" || v.CellCount != 0 || v.LastSaved != nil {
		t.Errorf("unexpected view of empty state: %+v", v)
	}
}

func TestDescribe_OmitsHostToken(t *testing.T) {
	st := testutil.DummyState(testutil.WithHostType(state.HostJupyter))
	cur, ok := st.Hosts.Get(st.CurrentHostRef)
	if !ok {
		t.Fatal("no current host")
	}
	h := *cur
	h.Token = "very-secret"
	st = st.Clone()
	st.Hosts = st.Hosts.With(h.Ref, &h)

	data, err := json.Marshal(Describe(st))
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(data), "very-secret") {
		t.Errorf("view leaks host token: %s", data)
	}
}
