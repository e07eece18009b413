package sim

import (
	"errors"
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"ndlife/pkg/render"
	"ndlife/pkg/rule"
	"ndlife/pkg/video"
)

func stubRecorder(t *testing.T, framerate, w, h int) (*video.Recorder, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "out.raw")
	rec, err := video.NewRecorder(framerate, w, h, path, video.WithCommand("sh", "-c", "cat > "+path))
	if err != nil {
		t.Fatalf("NewRecorder: %v", err)
	}
	return rec, path
}

func TestRunAndRecordFrameCount(t *testing.T) {
	const w, h, scale, ticks = 8, 6, 2, 5

	s, err := Random([]int{h, w}, rule.Classic(), 0.4, 11)
	if err != nil {
		t.Fatalf("Random: %v", err)
	}
	params, err := render.NewDrawParams(
		color.RGBA{A: 255},
		color.RGBA{R: 255, G: 255, B: 255, A: 255},
		scale,
	)
	if err != nil {
		t.Fatalf("NewDrawParams: %v", err)
	}
	rec, path := stubRecorder(t, 5, w*scale, h*scale)

	if err := s.RunAndRecord(ticks, params, rec); err != nil {
		t.Fatalf("RunAndRecord: %v", err)
	}
	if rec.Frames() != ticks+1 {
		t.Fatalf("recorded %d frames, want %d (initial frame plus one per step)", rec.Frames(), ticks+1)
	}
	if err := rec.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading output: %v", err)
	}
	frameLen := w * scale * h * scale * 4
	if len(data) != (ticks+1)*frameLen {
		t.Fatalf("output holds %d bytes, want %d", len(data), (ticks+1)*frameLen)
	}
}

func TestRunAndRecordZeroTicks(t *testing.T) {
	s, err := Zero([]int{4, 4}, rule.Classic())
	if err != nil {
		t.Fatalf("Zero: %v", err)
	}
	params, _ := render.NewDrawParams(color.RGBA{A: 255}, color.RGBA{R: 255, A: 255}, 1)
	rec, _ := stubRecorder(t, 5, 4, 4)
	defer rec.Close()

	if err := s.RunAndRecord(0, params, rec); err != nil {
		t.Fatalf("RunAndRecord(0): %v", err)
	}
	if rec.Frames() != 1 {
		t.Fatalf("recorded %d frames for a zero-tick run, want 1", rec.Frames())
	}
}

func TestRunAndRecordAbortsOnFrameMismatch(t *testing.T) {
	s, err := Zero([]int{4, 4}, rule.Classic())
	if err != nil {
		t.Fatalf("Zero: %v", err)
	}
	params, _ := render.NewDrawParams(color.RGBA{A: 255}, color.RGBA{R: 255, A: 255}, 1)
	// Recorder declared for the wrong dimensions: the very first frame
	// must fail and the run must not advance.
	rec, _ := stubRecorder(t, 5, 10, 10)
	defer rec.Close()

	err = s.RunAndRecord(5, params, rec)
	if !errors.Is(err, video.ErrFrameSize) {
		t.Fatalf("RunAndRecord error = %v, want ErrFrameSize", err)
	}
	if !strings.Contains(err.Error(), "generation 0") {
		t.Fatalf("error %q does not name the failing generation", err)
	}
	if s.Generation() != 0 {
		t.Fatalf("simulation advanced to generation %d after abort", s.Generation())
	}
}
