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

package main

import (
	"fmt"
	"os"
	"runtime"
	"strings"

	"github.com/jetsetilly/gopherds/demo"
	"github.com/jetsetilly/gopherds/gui/sdldisplay"
	"github.com/jetsetilly/gopherds/hardware"
	"github.com/jetsetilly/gopherds/logger"
	"github.com/jetsetilly/gopherds/modalflag"
	"github.com/jetsetilly/gopherds/performance"
	"github.com/jetsetilly/gopherds/renderqueue"
	"github.com/jetsetilly/gopherds/script"
	"github.com/jetsetilly/gopherds/statsview"
	"github.com/jetsetilly/gopherds/ui/term"
	"github.com/jetsetilly/gopherds/version"
)

// SDL wants its calls on the thread that ran main().
func init() {
	runtime.LockOSThread()
}

func main() {
	md := &modalflag.Modes{Output: os.Stdout}
	md.NewArgs(os.Args[1:])
	md.AddSubModes("RUN", "PERFORMANCE", "SCRIPT", "VERSION")

	echoLog := md.AddBool("log", false, "echo log entries to stderr")

	r, err := md.Parse()
	switch r {
	case modalflag.ParseHelp:
		os.Exit(0)
	case modalflag.ParseError:
		fmt.Fprintf(os.Stderr, "* %s\n", err)
		os.Exit(10)
	}

	if *echoLog {
		logger.SetEcho(os.Stderr)
	}

	switch md.Mode() {
	case "RUN":
		err = emulate(md)
	case "PERFORMANCE":
		err = perform(md)
	case "SCRIPT":
		err = scripted(md)
	case "VERSION":
		fmt.Printf("gopherds %s (%s)\n", version.Version, version.Revision())
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "* %s\n", err)
		os.Exit(10)
	}
}

// emulate runs the built-in demo, either in an SDL window or headless.
func emulate(md *modalflag.Modes) error {
	md.NewMode()
	headless := md.AddBool("headless", false, "run without a window")
	stereo := md.AddBool("stereo", true, "render the top screen in stereo")
	rate := md.AddFloat64("rate", renderqueue.NativeRate, "target frame rate")
	frames := md.AddInt("frames", 0, "stop after this many frames (0 = run until quit)")

	r, err := md.Parse()
	switch r {
	case modalflag.ParseHelp:
		return nil
	case modalflag.ParseError:
		return err
	}

	ds, err := hardware.NewDS()
	if err != nil {
		return err
	}
	defer ds.End()

	ds.Render.FrameRate(float32(*rate))

	sc, err := demo.NewScene(ds, *stereo)
	if err != nil {
		return err
	}

	ds.StartClock()

	if *headless {
		return emulateHeadless(ds, sc, *frames)
	}
	return emulateSDL(ds, sc, *frames)
}

func emulateHeadless(ds *hardware.DS, sc *demo.Scene, frames int) error {
	inp, err := term.NewInput()
	if err != nil {
		return err
	}
	defer inp.Restore()

	fmt.Println("running headless. press q to quit")

	return ds.Run(func() (bool, error) {
		sc.DrawFrame()
		if frames > 0 && sc.Frame() >= frames {
			return false, nil
		}
		if k, ok := inp.KeyPressed(); ok && (k == 'q' || k == 'Q') {
			return false, nil
		}
		return true, nil
	})
}

func emulateSDL(ds *hardware.DS, sc *demo.Scene, frames int) error {
	scr, err := sdldisplay.NewDisplay(ds.Screens)
	if err != nil {
		return err
	}
	defer scr.Destroy()

	// the emulation loop runs in its own goroutine; SDL keeps the main
	// thread for itself
	quit := make(chan struct{})
	done := make(chan error, 1)
	go func() {
		done <- ds.Run(func() (bool, error) {
			select {
			case <-quit:
				return false, nil
			default:
			}
			sc.DrawFrame()
			return frames == 0 || sc.Frame() < frames, nil
		})
	}()

	serviceErr := scr.Service()
	close(quit)

	if err := <-done; err != nil {
		return err
	}
	return serviceErr
}

// perform measures demo throughput, with optional profiling.
func perform(md *modalflag.Modes) error {
	md.NewMode()
	duration := md.AddString("duration", "5s", "length of the measured run")
	stereo := md.AddBool("stereo", true, "render the top screen in stereo")
	rate := md.AddFloat64("rate", renderqueue.NativeRate, "target frame rate")
	profile := md.AddString("profile", "none", "profiles to gather: none, cpu, mem or all")
	stats := md.AddBool("statsview", false, "launch the runtime statistics dashboard")

	r, err := md.Parse()
	switch r {
	case modalflag.ParseHelp:
		return nil
	case modalflag.ParseError:
		return err
	}

	if *stats {
		statsview.Launch(os.Stdout)
	}

	var prof performance.Profile
	switch strings.ToLower(*profile) {
	case "none":
		prof = performance.ProfileNone
	case "cpu":
		prof = performance.ProfileCPU
	case "mem":
		prof = performance.ProfileMem
	case "all":
		prof = performance.ProfileAll
	default:
		return fmt.Errorf("unknown profile: %s", *profile)
	}

	return performance.Check(os.Stdout, prof, *duration, *stereo, float32(*rate))
}

// scripted runs a Lua script against a fresh console.
func scripted(md *modalflag.Modes) error {
	md.NewMode()

	r, err := md.Parse()
	switch r {
	case modalflag.ParseHelp:
		return nil
	case modalflag.ParseError:
		return err
	}

	if len(md.RemainingArgs()) != 1 {
		return fmt.Errorf("script mode needs a single script file")
	}

	ds, err := hardware.NewDS()
	if err != nil {
		return err
	}
	defer ds.End()

	ds.StartClock()
	return script.Run(ds, md.GetArg(0))
}
