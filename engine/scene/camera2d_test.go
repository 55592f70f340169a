package scene_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/hubastard/canopy/engine/scene"
)

var approx = cmpopts.EquateApprox(0, 1e-5)

func TestScreenCameraProjectsCorners(t *testing.T) {
	c := scene.NewScreenCamera(800, 600)
	tests := []struct {
		x, y   float32
		nx, ny float32
	}{
		{0, 0, -1, 1},
		{800, 600, 1, -1},
		{400, 300, 0, 0},
	}
	for _, tt := range tests {
		nx, ny := c.Project(tt.x, tt.y)
		if diff := cmp.Diff([2]float32{tt.nx, tt.ny}, [2]float32{nx, ny}, approx); diff != "" {
			t.Errorf("Project(%v, %v) (-want +got):\n%s", tt.x, tt.y, diff)
		}
	}
}

func TestScreenCameraResizeScrollZoom(t *testing.T) {
	c := scene.NewScreenCamera(800, 600)
	c.SetViewportPixels(400, 200)
	if nx, ny := c.Project(400, 200); !cmp.Equal([2]float32{1, -1}, [2]float32{nx, ny}, approx) {
		t.Errorf("after resize bottom-right = %v, %v", nx, ny)
	}

	c.Scroll(100, 50)
	if nx, ny := c.Project(100, 50); !cmp.Equal([2]float32{-1, 1}, [2]float32{nx, ny}, approx) {
		t.Errorf("scrolled origin = %v, %v", nx, ny)
	}

	c.SetZoom(0)
	if c.Zoom != 0.05 {
		t.Errorf("zoom clamped to %v", c.Zoom)
	}
}
