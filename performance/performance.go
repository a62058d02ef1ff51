// This file is part of Gopherds.
//
// Gopherds is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Gopherds is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Gopherds.  If not, see <https://www.gnu.org/licenses/>.

// Package performance measures how fast the console runs the built-in
// demo, with optional CPU and memory profiling.
package performance

import (
	"fmt"
	"io"
	"time"

	"github.com/jetsetilly/gopherds/curated"
	"github.com/jetsetilly/gopherds/demo"
	"github.com/jetsetilly/gopherds/hardware"
	"github.com/jetsetilly/gopherds/renderqueue"
)

// Error patterns returned by Check.
const (
	CheckError = "performance: %v"
)

// Check runs the demo for the stated duration and reports the achieved
// frame rate on output. The run is paced by the vblank clock, so on a
// healthy machine the achieved rate should sit at the configured rate; a
// shortfall means frames are taking longer than their vblank budget.
func Check(output io.Writer, prof Profile, duration string, stereo bool, rate float32) error {
	dur, err := time.ParseDuration(duration)
	if err != nil {
		return curated.Errorf(CheckError, err)
	}

	ds, err := hardware.NewDS()
	if err != nil {
		return curated.Errorf(CheckError, err)
	}
	defer ds.End()

	if rate <= 0 || rate > renderqueue.NativeRate {
		rate = renderqueue.NativeRate
	}
	ds.Render.FrameRate(rate)

	sc, err := demo.NewScene(ds, stereo)
	if err != nil {
		return curated.Errorf(CheckError, err)
	}

	ds.StartClock()

	// a short lead-in lets the pacing accumulators settle before the
	// measurement starts
	for i := 0; i < 5; i++ {
		ds.Render.FrameSync()
		sc.DrawFrame()
	}
	lead := sc.Frame()

	startTime := time.Now()
	deadline := startTime.Add(dur)

	runner := func() error {
		return ds.Run(func() (bool, error) {
			sc.DrawFrame()
			return time.Now().Before(deadline), nil
		})
	}

	if err := RunProfiler(prof, "performance", runner); err != nil {
		return curated.Errorf(CheckError, err)
	}

	ds.Render.WaitDone()
	elapsed := time.Since(startTime).Seconds()
	sc.Close()

	CalcFPS(output, sc.Frame()-lead, elapsed, rate)
	fmt.Fprintf(output, "cpu %.2fms / gpu %.2fms on the final frame\n",
		ds.Render.ProcessingTime(), ds.Render.DrawingTime())

	return nil
}

// CalcFPS writes the achieved frame rate, and how it compares to the
// requested rate, to output.
func CalcFPS(output io.Writer, numFrames int, durationSeconds float64, rate float32) {
	if durationSeconds <= 0 {
		return
	}
	fps := float64(numFrames) / durationSeconds
	fmt.Fprintf(output, "%.2f fps (%.1f%% of %.0f fps target) over %d frames\n",
		fps, 100*fps/float64(rate), rate, numFrames)
}
