package video

import (
	"errors"
	"image"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// stubRecorder spawns the recorder over `cat` so tests do not depend on
// ffmpeg being installed. Output lands in the returned file.
func stubRecorder(t *testing.T, w, h int) (*Recorder, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "out.raw")
	rec, err := NewRecorder(5, w, h, path, WithCommand("sh", "-c", "cat > "+path))
	if err != nil {
		t.Fatalf("NewRecorder: %v", err)
	}
	return rec, path
}

func TestNewRecorderValidation(t *testing.T) {
	if _, err := NewRecorder(0, 4, 4, "out.mp4"); err == nil {
		t.Fatal("zero framerate accepted")
	}
	if _, err := NewRecorder(5, 0, 4, "out.mp4"); err == nil {
		t.Fatal("zero width accepted")
	}
	if _, err := NewRecorder(5, 4, 4, ""); err == nil {
		t.Fatal("empty output path accepted")
	}
}

func TestSendFrameSizeMismatch(t *testing.T) {
	rec, _ := stubRecorder(t, 4, 4)
	defer rec.Close()

	err := rec.SendFrame(image.NewRGBA(image.Rect(0, 0, 4, 5)))
	if !errors.Is(err, ErrFrameSize) {
		t.Fatalf("mismatched frame error = %v, want ErrFrameSize", err)
	}
	if !strings.Contains(err.Error(), "expected 4x4") || !strings.Contains(err.Error(), "got 4x5") {
		t.Fatalf("error %q does not name expected and actual dimensions", err)
	}
	if rec.Frames() != 0 {
		t.Fatalf("rejected frame was counted: %d", rec.Frames())
	}
}

func TestFramesStreamInOrder(t *testing.T) {
	const w, h, n = 3, 2, 4
	rec, path := stubRecorder(t, w, h)

	for i := 0; i < n; i++ {
		frame := image.NewRGBA(image.Rect(0, 0, w, h))
		for p := range frame.Pix {
			frame.Pix[p] = uint8(i)
		}
		if err := rec.SendFrame(frame); err != nil {
			t.Fatalf("SendFrame %d: %v", i, err)
		}
	}
	if rec.Frames() != n {
		t.Fatalf("Frames() = %d, want %d", rec.Frames(), n)
	}
	if err := rec.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading output: %v", err)
	}
	frameLen := w * h * 4
	if len(data) != n*frameLen {
		t.Fatalf("output holds %d bytes, want %d", len(data), n*frameLen)
	}
	for i := 0; i < n; i++ {
		if data[i*frameLen] != uint8(i) {
			t.Fatalf("frame %d out of order: leading byte %d", i, data[i*frameLen])
		}
	}
}

func TestCloseIsIdempotent(t *testing.T) {
	rec, _ := stubRecorder(t, 2, 2)
	if err := rec.Close(); err != nil {
		t.Fatalf("first Close: %v", err)
	}
	if err := rec.Close(); err != nil {
		t.Fatalf("second Close: %v", err)
	}
	if err := rec.SendFrame(image.NewRGBA(image.Rect(0, 0, 2, 2))); !errors.Is(err, ErrClosed) {
		t.Fatalf("SendFrame after Close error = %v, want ErrClosed", err)
	}
}

func TestEncoderArgs(t *testing.T) {
	cfg := config{encoderPath: "ffmpeg", pixelFormat: "rgba", codec: "libx264"}
	args := encoderArgs(cfg, 24, 320, 240, "clip.mp4")

	joined := strings.Join(args, " ")
	for _, want := range []string{
		"ffmpeg",
		"-loglevel quiet",
		"-f rawvideo",
		"-pix_fmt rgba",
		"-s 320x240",
		"-framerate 24",
		"-i pipe:0",
		"-c:v libx264",
		"-y clip.mp4",
	} {
		if !strings.Contains(joined, want) {
			t.Fatalf("args %q missing %q", joined, want)
		}
	}

	cfg.verbose = true
	if strings.Contains(strings.Join(encoderArgs(cfg, 24, 320, 240, "clip.mp4"), " "), "-loglevel quiet") {
		t.Fatal("verbose args still silence the encoder")
	}
}

func TestMissingEncoderSurfacesAtConstruction(t *testing.T) {
	_, err := NewRecorder(5, 2, 2, filepath.Join(t.TempDir(), "out.mp4"),
		WithEncoderPath("definitely-not-an-encoder-binary"))
	if err == nil {
		t.Fatal("missing encoder did not error")
	}
}
