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

package renderqueue

import (
	"container/list"

	"github.com/jetsetilly/gopherds/curated"
	"github.com/jetsetilly/gopherds/hardware/gpu"
	"github.com/jetsetilly/gopherds/logger"
)

// Error patterns returned by the render target functions.
const (
	NotVRAMResident = "renderqueue: texture is not VRAM resident"
)

// RenderTarget is a VRAM resident image that drawing happens on. Create
// with CreateRenderTarget() or CreateRenderTargetFromTexture() and dispose
// of with DeleteRenderTarget().
type RenderTarget struct {
	fb gpu.FrameBuf

	// buffers created by CreateRenderTarget are owned by the target and
	// freed on deletion. texture backed targets own nothing
	ownsColor bool
	ownsDepth bool

	// output slot link state
	linked        bool
	slot          slot
	transferFlags uint32

	// set by FrameDrawOn, cleared by FrameEnd's transfer pass
	used bool

	// position in the context's registry
	el *list.Element
}

// FrameBuf gives access to the target's framebuffer, for inspection of the
// rendered image.
func (t *RenderTarget) FrameBuf() *gpu.FrameBuf {
	return &t.fb
}

// Dim returns the target's dimensions.
func (t *RenderTarget) Dim() (int, int) {
	return t.fb.Width, t.fb.Height
}

// CreateRenderTarget allocates a fresh render target in VRAM. The colour
// buffer goes to whichever bank has room; the depth buffer, if one is asked
// for, is placed in the opposite bank when possible so the GPU reads and
// writes don't contend for one bank's bandwidth. On any failure all partial
// allocations are unwound.
func (ctx *Context) CreateRenderTarget(width int, height int, cfmt gpu.ColorFormat, dfmt gpu.DepthFormat) (*RenderTarget, error) {
	t := &RenderTarget{}
	t.fb.SetAttrib(width, height)

	color, err := ctx.mem.AllocVRAM(gpu.ColorBufSize(width, height, cfmt))
	if err != nil {
		return nil, err
	}
	t.fb.AttachColor(color, cfmt)
	t.ownsColor = true

	if dfmt != gpu.DepthNone {
		size := gpu.DepthBufSize(width, height, dfmt)
		depth, err := ctx.mem.AllocVRAMAt(size, color.Bank().Opposite())
		if err != nil {
			depth, err = ctx.mem.AllocVRAMAt(size, color.Bank())
		}
		if err != nil {
			if ferr := ctx.mem.Free(color); ferr != nil {
				logger.Log("renderqueue", ferr.Error())
			}
			return nil, err
		}
		t.fb.AttachDepth(depth, dfmt)
		t.ownsDepth = true
	}

	ctx.register(t)
	return t, nil
}

// CreateRenderTargetFromTexture creates a render target aliasing one
// face/level of an existing texture. The texture must be VRAM resident; the
// GPU cannot render to the linear heap. The target does not own the
// texture's storage.
func (ctx *Context) CreateRenderTargetFromTexture(tex *gpu.Texture, face gpu.TexFace, level int) (*RenderTarget, error) {
	if !tex.InVRAM() {
		return nil, curated.Errorf(NotVRAMResident)
	}

	t := &RenderTarget{}
	w, h := tex.LevelDim(level)
	t.fb.SetAttrib(w, h)
	t.fb.AttachColor(tex.FaceBlock(face, level), tex.Fmt)

	ctx.register(t)
	return t, nil
}

// DeleteRenderTarget destroys the target and frees any buffers it owns.
// Deleting a target while a frame is being recorded is fatal: queued
// drawing may still reference its buffers and there is no way to take the
// commands back.
func (ctx *Context) DeleteRenderTarget(t *RenderTarget) {
	ctx.crit.Lock()
	if ctx.inFrame {
		ctx.crit.Unlock()
		fatal("render target deleted while a frame is being recorded")
	}

	if t.linked {
		ctx.linked[t.slot] = nil
		t.linked = false
	}
	ctx.crit.Unlock()

	// linked or not, queued work may still reference the target's buffers
	ctx.waitAndClearQueue(-1)

	ctx.destroy(t)
}

// register the target with the context's registry.
func (ctx *Context) register(t *RenderTarget) {
	ctx.crit.Lock()
	defer ctx.crit.Unlock()
	t.el = ctx.targets.PushBack(t)
}

// destroy frees the target's owned buffers and removes it from the
// registry. The target must already be unlinked.
func (ctx *Context) destroy(t *RenderTarget) {
	if t.ownsColor {
		if err := ctx.mem.Free(t.fb.Color); err != nil {
			logger.Log("renderqueue", err.Error())
		}
		t.ownsColor = false
	}
	if t.ownsDepth {
		if err := ctx.mem.Free(t.fb.Depth); err != nil {
			logger.Log("renderqueue", err.Error())
		}
		t.ownsDepth = false
	}

	ctx.crit.Lock()
	defer ctx.crit.Unlock()
	if t.el != nil {
		ctx.targets.Remove(t.el)
		t.el = nil
	}
}
