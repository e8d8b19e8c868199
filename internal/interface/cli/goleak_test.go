package cli

import (
	"testing"

	"go.uber.org/goleak"
)

// TestPackageLeaks runs a full command sequence and checks no goroutine outlives it
func TestPackageLeaks(t *testing.T) {
	defer goleak.VerifyNone(t)

	h := newHarness(t)
	for _, args := range [][]string{{"init"}, {"change", "new", "leak-check"}, {"view"}, {"status", "--json"}} {
		if err := h.run(args...); err != nil {
			t.Fatalf("%v: %v", args, err)
		}
	}
}
