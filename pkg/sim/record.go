package sim

import (
	"fmt"

	"ndlife/pkg/render"
	"ndlife/pkg/video"
)

// RunAndRecord advances the state by ticks generations, rendering every
// visited generation (the initial one included, so ticks+1 frames total)
// and sending the frames to the recorder in strict generation order. Any
// rendering or encoding failure aborts the run and is returned with the
// generation it occurred at. The recorder is left open; closing it is the
// caller's responsibility.
func (s *State) RunAndRecord(ticks int, params render.DrawParams, rec *video.Recorder) error {
	return s.Run(ticks, func(st *State) error {
		frame, err := render.Frame(st.Grid(), params)
		if err != nil {
			return fmt.Errorf("rendering frame: %w", err)
		}
		if err := rec.SendFrame(frame); err != nil {
			return fmt.Errorf("recording frame: %w", err)
		}
		return nil
	})
}
