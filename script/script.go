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

// Package script drives the console from Lua. Scenes and soak tests can be
// written as small scripts instead of Go programs.
//
// Scripts see a global ds table:
//
//	t = ds.createtarget(400, 240)
//	ds.setoutput(t, "top", "left")
//	ds.framerate(30)
//	while ds.framecount("top") < 300 do
//	    ds.framesync()
//	    ds.framebegin()
//	    ds.drawon(t)
//	    ds.clear(0x202040ff)
//	    ds.rect(10, 10, 64, 48, 0xffaa00ff)
//	    ds.frameend()
//	end
package script

import (
	lua "github.com/yuin/gopher-lua"

	"github.com/jetsetilly/gopherds/curated"
	"github.com/jetsetilly/gopherds/hardware"
	"github.com/jetsetilly/gopherds/hardware/display"
	"github.com/jetsetilly/gopherds/hardware/gpu"
	"github.com/jetsetilly/gopherds/logger"
	"github.com/jetsetilly/gopherds/renderqueue"
	"github.com/jetsetilly/gopherds/screenshot"
)

// Error patterns returned by Run.
const (
	ScriptError = "script: %v"
)

// vm holds the state shared by the registered Lua functions. Targets are
// handed to scripts as integer handles.
type vm struct {
	ds      *hardware.DS
	targets []*renderqueue.RenderTarget
}

// Run executes the Lua script at path against the console. The call
// returns when the script does; outstanding GPU work is drained before
// returning.
func Run(ds *hardware.DS, path string) error {
	L := lua.NewState()
	defer L.Close()

	v := &vm{ds: ds}
	v.register(L)

	logger.Logf("script", "running %s", path)
	if err := L.DoFile(path); err != nil {
		return curated.Errorf(ScriptError, err)
	}

	ds.Render.WaitDone()
	return nil
}

func (v *vm) register(L *lua.LState) {
	mod := L.NewTable()
	L.SetFuncs(mod, map[string]lua.LGFunction{
		"createtarget": v.createTarget,
		"setoutput":    v.setOutput,
		"framerate":    v.frameRate,
		"framecount":   v.frameCount,
		"framesync":    v.frameSync,
		"framebegin":   v.frameBegin,
		"drawon":       v.drawOn,
		"clear":        v.clear,
		"rect":         v.rect,
		"frameend":     v.frameEnd,
		"waitdone":     v.waitDone,
		"screenshot":   v.screenshot,
	})
	L.SetGlobal("ds", mod)
}

// target resolves a script handle, raising a Lua error for bad handles.
func (v *vm) target(L *lua.LState, idx int) *renderqueue.RenderTarget {
	h := L.CheckInt(idx)
	if h < 1 || h > len(v.targets) {
		L.ArgError(idx, "unknown target handle")
		return nil
	}
	return v.targets[h-1]
}

// screenSide parses "top"/"bottom" and "left"/"right" arguments.
func screenSide(L *lua.LState, idx int) (display.Screen, display.Side) {
	s := display.ScreenTop
	if L.CheckString(idx) == "bottom" {
		s = display.ScreenBottom
	}
	side := display.SideLeft
	if L.OptString(idx+1, "left") == "right" {
		side = display.SideRight
	}
	return s, side
}

func (v *vm) createTarget(L *lua.LState) int {
	w := L.CheckInt(1)
	h := L.CheckInt(2)

	t, err := v.ds.Render.CreateRenderTarget(w, h, gpu.RGBA8, gpu.DepthNone)
	if err != nil {
		L.RaiseError("%s", err.Error())
		return 0
	}
	v.targets = append(v.targets, t)

	L.Push(lua.LNumber(len(v.targets)))
	return 1
}

func (v *vm) setOutput(L *lua.LState) int {
	t := v.target(L, 1)
	s, side := screenSide(L, 2)
	v.ds.Render.SetOutput(t, s, side, 0)
	return 0
}

func (v *vm) frameRate(L *lua.LState) int {
	old := v.ds.Render.FrameRate(float32(L.CheckNumber(1)))
	L.Push(lua.LNumber(old))
	return 1
}

func (v *vm) frameCount(L *lua.LState) int {
	s, _ := screenSide(L, 1)
	L.Push(lua.LNumber(v.ds.Render.FrameCounter(s)))
	return 1
}

func (v *vm) frameSync(L *lua.LState) int {
	v.ds.Render.FrameSync()
	return 0
}

func (v *vm) frameBegin(L *lua.LState) int {
	L.Push(lua.LBool(v.ds.Render.FrameBegin(0)))
	return 1
}

func (v *vm) drawOn(L *lua.LState) int {
	v.ds.Render.FrameDrawOn(v.target(L, 1))
	return 0
}

func (v *vm) clear(L *lua.LState) int {
	v.ds.Render.DrawClear(uint32(L.CheckNumber(1)))
	return 0
}

func (v *vm) rect(L *lua.LState) int {
	v.ds.Render.DrawRect(L.CheckInt(1), L.CheckInt(2), L.CheckInt(3), L.CheckInt(4),
		uint32(L.CheckNumber(5)))
	return 0
}

func (v *vm) frameEnd(L *lua.LState) int {
	L.Push(lua.LBool(v.ds.Render.FrameEnd(0)))
	return 1
}

func (v *vm) waitDone(L *lua.LState) int {
	v.ds.Render.WaitDone()
	return 0
}

func (v *vm) screenshot(L *lua.LState) int {
	path := L.CheckString(1)
	s, side := screenSide(L, 2)
	scale := L.OptInt(4, 1)

	v.ds.Render.WaitDone()
	if err := screenshot.Save(v.ds.Screens, s, side, scale, path); err != nil {
		L.RaiseError("%s", err.Error())
	}
	return 0
}
