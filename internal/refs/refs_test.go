package refs

import (
	"testing"

	"github.com/google/uuid"
)

func TestCreateRefsAreUniqueUUIDs(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		for _, ref := range []string{
			string(CreateContentRef()),
			string(CreateKernelRef()),
			string(CreateKernelspecsRef()),
			string(CreateHostRef()),
		} {
			if _, err := uuid.Parse(ref); err != nil {
				t.Fatalf("ref %q is not a UUID: %v", ref, err)
			}
			if seen[ref] {
				t.Fatalf("duplicate ref %q", ref)
			}
			seen[ref] = true
		}
	}
}
