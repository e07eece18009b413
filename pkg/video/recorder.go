// Package video records rendered frames into a video file by piping raw
// RGBA data to an external encoder process (ffmpeg by default).
package video

import (
	"errors"
	"fmt"
	"image"
	"io"
	"os"
	"os/exec"
	"strconv"
)

// ErrFrameSize reports a frame whose dimensions differ from the ones the
// recorder was constructed with.
var ErrFrameSize = errors.New("frame size mismatch")

// ErrClosed reports use of a recorder after Close.
var ErrClosed = errors.New("recorder closed")

type config struct {
	encoderPath string
	pixelFormat string
	codec       string
	verbose     bool
	command     []string
}

// Option adjusts recorder construction.
type Option func(*config)

// WithEncoderPath overrides the encoder executable (default "ffmpeg").
func WithEncoderPath(path string) Option {
	return func(c *config) { c.encoderPath = path }
}

// WithPixelFormat overrides the input pixel format (default "rgba").
func WithPixelFormat(format string) Option {
	return func(c *config) { c.pixelFormat = format }
}

// WithCodec overrides the output video codec (default "libx264").
func WithCodec(codec string) Option {
	return func(c *config) { c.codec = codec }
}

// WithVerbose lets the encoder write to the parent's stdout/stderr instead
// of running quietly.
func WithVerbose() Option {
	return func(c *config) { c.verbose = true }
}

// WithCommand replaces the entire encoder invocation with the given argv.
// Frames are still piped to the child's stdin. Mainly for tests, which
// substitute a stub for ffmpeg.
func WithCommand(argv ...string) Option {
	return func(c *config) { c.command = argv }
}

// Recorder owns a child encoder process and streams frames of a fixed size
// to it at a declared frame rate. Frames are written in arrival order; the
// output container is finalized by Close, which must be called to get a
// playable file.
type Recorder struct {
	cmd    *exec.Cmd
	stdin  io.WriteCloser
	w, h   int
	path   string
	frames int

	closed   bool
	closeErr error
}

// NewRecorder spawns the encoder and prepares it to receive width x height
// RGBA frames at the given rate, writing the finished video to outputPath
// (overwriting any existing file).
func NewRecorder(framerate, width, height int, outputPath string, opts ...Option) (*Recorder, error) {
	if framerate <= 0 {
		return nil, fmt.Errorf("non-positive framerate %d", framerate)
	}
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("non-positive frame dimensions %dx%d", width, height)
	}
	if outputPath == "" {
		return nil, fmt.Errorf("empty output path")
	}

	cfg := config{encoderPath: "ffmpeg", pixelFormat: "rgba", codec: "libx264"}
	for _, opt := range opts {
		opt(&cfg)
	}

	argv := cfg.command
	if len(argv) == 0 {
		argv = encoderArgs(cfg, framerate, width, height, outputPath)
	}
	cmd := exec.Command(argv[0], argv[1:]...)
	if cfg.verbose {
		cmd.Stdout = os.Stdout
		cmd.Stderr = os.Stderr
	}
	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, fmt.Errorf("opening encoder stdin: %w", err)
	}
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("starting encoder %q: %w", argv[0], err)
	}
	return &Recorder{cmd: cmd, stdin: stdin, w: width, h: height, path: outputPath}, nil
}

func encoderArgs(cfg config, framerate, width, height int, outputPath string) []string {
	args := []string{cfg.encoderPath}
	if !cfg.verbose {
		args = append(args, "-loglevel", "quiet")
	}
	args = append(args,
		"-f", "rawvideo",
		"-pix_fmt", cfg.pixelFormat,
		"-s", fmt.Sprintf("%dx%d", width, height),
		"-framerate", strconv.Itoa(framerate),
		"-i", "pipe:0",
		"-c:v", cfg.codec,
		"-pix_fmt", "yuv420p",
		"-y", outputPath,
	)
	return args
}

// SendFrame pipes one frame to the encoder. The frame must match the
// dimensions declared at construction exactly.
func (r *Recorder) SendFrame(frame *image.RGBA) error {
	if r.closed {
		return ErrClosed
	}
	b := frame.Bounds()
	if b.Dx() != r.w || b.Dy() != r.h {
		return fmt.Errorf("%w: expected %dx%d, got %dx%d", ErrFrameSize, r.w, r.h, b.Dx(), b.Dy())
	}
	// Write row by row so sub-images with a wider stride stream correctly.
	rowLen := 4 * r.w
	for y := 0; y < r.h; y++ {
		off := frame.PixOffset(b.Min.X, b.Min.Y+y)
		if _, err := r.stdin.Write(frame.Pix[off : off+rowLen]); err != nil {
			return fmt.Errorf("writing frame %d to encoder: %w", r.frames, err)
		}
	}
	r.frames++
	return nil
}

// Frames returns how many frames have been sent so far.
func (r *Recorder) Frames() int { return r.frames }

// Path returns the output file path.
func (r *Recorder) Path() string { return r.path }

// Close flushes the stream and waits for the encoder to finalize the
// output file. It is safe to call more than once; later calls return the
// first result.
func (r *Recorder) Close() error {
	if r.closed {
		return r.closeErr
	}
	r.closed = true
	if err := r.stdin.Close(); err != nil {
		r.closeErr = fmt.Errorf("closing encoder stdin: %w", err)
		r.cmd.Wait()
		return r.closeErr
	}
	if err := r.cmd.Wait(); err != nil {
		r.closeErr = fmt.Errorf("encoder exited with error: %w", err)
	}
	return r.closeErr
}
