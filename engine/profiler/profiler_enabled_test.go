//go:build profile

package profiler_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/hubastard/canopy/engine/profiler"
)

type speedscope struct {
	Shared struct {
		Frames []struct{ Name string }
	}
	Profiles []struct {
		Type   string
		Events []struct {
			Type  string
			Frame int
		}
	}
}

func decode(t *testing.T) []string {
	t.Helper()
	var buf bytes.Buffer
	if err := profiler.WriteSpeedscope(&buf); err != nil {
		t.Fatal(err)
	}
	var doc speedscope
	if err := json.Unmarshal(buf.Bytes(), &doc); err != nil {
		t.Fatal(err)
	}
	if len(doc.Profiles) != 1 || doc.Profiles[0].Type != "evented" {
		t.Fatalf("profiles = %+v", doc.Profiles)
	}
	var out []string
	for _, e := range doc.Profiles[0].Events {
		out = append(out, e.Type+" "+doc.Shared.Frames[e.Frame].Name)
	}
	return out
}

func TestSpansBalance(t *testing.T) {
	profiler.Init(64)
	outer := profiler.Start("outer")
	inner := profiler.Start("inner")
	inner()
	outer()
	profiler.Start("dangling")

	want := []string{"O outer", "O inner", "C inner", "C outer", "O dangling", "C dangling"}
	if diff := cmp.Diff(want, decode(t)); diff != "" {
		t.Errorf("events (-want +got):\n%s", diff)
	}
}

func TestRingDropsOrphanedCloses(t *testing.T) {
	profiler.Init(2)
	a := profiler.Start("a")
	b := profiler.Start("b")
	b()
	a()

	if err := profiler.WriteSpeedscope(io.Discard); !errors.Is(err, profiler.ErrNoSpans) {
		t.Errorf("WriteSpeedscope = %v, want ErrNoSpans", err)
	}
}
