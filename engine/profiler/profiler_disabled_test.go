//go:build !profile

package profiler_test

import (
	"errors"
	"io"
	"testing"

	"github.com/hubastard/canopy/engine/profiler"
)

func TestDisabledBuild(t *testing.T) {
	profiler.Init(16)
	profiler.Start("scope")()

	if profiler.Enabled() {
		t.Error("Enabled = true without the profile tag")
	}
	if err := profiler.WriteSpeedscope(io.Discard); !errors.Is(err, profiler.ErrDisabled) {
		t.Errorf("WriteSpeedscope = %v, want ErrDisabled", err)
	}
	if _, err := profiler.OpenProfilerGraph(); !errors.Is(err, profiler.ErrDisabled) {
		t.Errorf("OpenProfilerGraph = %v, want ErrDisabled", err)
	}
}
