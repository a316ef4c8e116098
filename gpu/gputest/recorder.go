// Package gputest provides a gpu.Device that executes nothing and records everything,
// so framebuffer, pass and frame logic can be tested without a GL context.
package gputest

import (
	"errors"
	"fmt"

	"github.com/bloeys/gglm/gglm"
	"github.com/bloeys/nshade/gpu"
)

var _ gpu.Device = &Recorder{}

var ErrCompileFailed = errors.New("gputest: compile failed")

type Texture struct {
	Id     uint32
	Target gpu.TextureTarget
	Format gpu.TextureFormat
	Width  int32
	Height int32
	Params gpu.TextureParams

	// FacesSet counts TexImage2D calls. A complete cube map has 6
	FacesSet     int
	MipmapsBuilt bool
	Deleted      bool

	// Data is what TexImage2D last uploaded. Tests may also fill it to control ReadPixels
	Data []byte
}

type Renderbuffer struct {
	Id      uint32
	Format  gpu.TextureFormat
	Width   int32
	Height  int32
	Deleted bool
}

type FramebufferAttachment struct {
	Id             uint32
	IsRenderbuffer bool
}

type Framebuffer struct {
	Id            uint32
	Attachments   map[gpu.Attachment]FramebufferAttachment
	ColorDisabled bool
	Deleted       bool
}

type VertexAttrib struct {
	Buffer    uint32
	CompCount int32
	Stride    int32
	Offset    int
}

type VertexArray struct {
	Id      uint32
	Attribs map[uint32]VertexAttrib
	Deleted bool
}

type Buffer struct {
	Id      uint32
	Data    []float32
	Usage   gpu.BufUsage
	Deleted bool
}

type Program struct {
	Id      uint32
	Stages  []gpu.ShaderSource
	Deleted bool

	// Uniforms holds the last value set per uniform name: int32, float32, gglm.Vec3 or gglm.Mat4
	Uniforms map[string]any

	locs  map[string]int32
	names map[int32]string
}

type BoundTexture struct {
	Target gpu.TextureTarget
	Id     uint32
}

// Draw is a snapshot of the state a DrawArrays call executed with
type Draw struct {
	Seq         int
	Program     uint32
	Vao         uint32
	Mode        gpu.PrimitiveMode
	First       int32
	Count       int32
	Framebuffer uint32
	Viewport    [4]int32
	DepthTest   bool
	DepthWrite  bool
	DepthFunc   gpu.DepthFunc

	// Textures maps texture unit to what was bound on it
	Textures map[uint32]BoundTexture
	Uniforms map[string]any
}

type Clear struct {
	Seq         int
	Framebuffer uint32
	Mask        gpu.ClearMask
}

type Recorder struct {
	MaxTexSize int32

	// ForceIncomplete makes every non-default framebuffer report incomplete
	ForceIncomplete bool

	// UnsupportedFormats makes framebuffers with an attachment of these formats incomplete,
	// like a device that can't render to them
	UnsupportedFormats map[gpu.TextureFormat]bool

	// CompileErr, when set, is returned (wrapped) by every CompileProgram call
	CompileErr error

	Textures      map[uint32]*Texture
	Renderbuffers map[uint32]*Renderbuffer
	Framebuffers  map[uint32]*Framebuffer
	VertexArrays  map[uint32]*VertexArray
	Buffers       map[uint32]*Buffer
	Programs      map[uint32]*Program

	Draws  []Draw
	Clears []Clear

	BoundFramebuffer uint32
	BoundVertexArray uint32
	BoundArrayBuffer uint32
	CurrentProgram   uint32
	ActiveUnit       uint32
	BoundTextures    map[uint32]BoundTexture

	ViewportRect   [4]int32
	DepthWrite     bool
	CurrDepthFunc  gpu.DepthFunc
	ClearColorRGBA [4]float32
	Enabled        map[gpu.Capability]bool

	nextId  uint32
	nextLoc int32
	seq     int
}

func NewRecorder() *Recorder {
	return &Recorder{
		MaxTexSize:         8192,
		UnsupportedFormats: map[gpu.TextureFormat]bool{},
		Textures:           map[uint32]*Texture{},
		Renderbuffers:      map[uint32]*Renderbuffer{},
		Framebuffers:       map[uint32]*Framebuffer{},
		VertexArrays:       map[uint32]*VertexArray{},
		Buffers:            map[uint32]*Buffer{},
		Programs:           map[uint32]*Program{},
		BoundTextures:      map[uint32]BoundTexture{},
		Enabled:            map[gpu.Capability]bool{},
		DepthWrite:         true,
	}
}

// genId hands out ids unique across all object kinds so assertions can never confuse them
func (r *Recorder) genId() uint32 {
	r.nextId++
	return r.nextId
}

func (r *Recorder) nextSeq() int {
	r.seq++
	return r.seq
}

// ResetCommands forgets recorded draws and clears while keeping all objects and state
func (r *Recorder) ResetCommands() {
	r.Draws = r.Draws[:0]
	r.Clears = r.Clears[:0]
}

func (r *Recorder) MaxTextureSize() int32 {
	return r.MaxTexSize
}

func (r *Recorder) GenFramebuffer() uint32 {
	id := r.genId()
	r.Framebuffers[id] = &Framebuffer{Id: id, Attachments: map[gpu.Attachment]FramebufferAttachment{}}
	return id
}

func (r *Recorder) DeleteFramebuffer(fbo uint32) {

	if fb, ok := r.Framebuffers[fbo]; ok {
		fb.Deleted = true
	}

	if r.BoundFramebuffer == fbo {
		r.BoundFramebuffer = 0
	}
}

func (r *Recorder) BindFramebuffer(fbo uint32) {
	r.BoundFramebuffer = fbo
}

func (r *Recorder) boundFb() *Framebuffer {

	fb := r.Framebuffers[r.BoundFramebuffer]
	if fb == nil {
		panic("gputest: attach call with no framebuffer bound")
	}

	return fb
}

func (r *Recorder) FramebufferTexture(attachment gpu.Attachment, tex uint32) {
	r.boundFb().Attachments[attachment] = FramebufferAttachment{Id: tex}
}

func (r *Recorder) FramebufferRenderbuffer(attachment gpu.Attachment, rbo uint32) {
	r.boundFb().Attachments[attachment] = FramebufferAttachment{Id: rbo, IsRenderbuffer: true}
}

func (r *Recorder) DisableColorBuffer() {
	r.boundFb().ColorDisabled = true
}

func (r *Recorder) IsFramebufferComplete() bool {

	if r.BoundFramebuffer == 0 {
		return true
	}

	if r.ForceIncomplete {
		return false
	}

	fb := r.Framebuffers[r.BoundFramebuffer]
	if fb == nil || fb.Deleted || len(fb.Attachments) == 0 {
		return false
	}

	_, hasColor := fb.Attachments[gpu.Attachment_Color0]
	if !hasColor && !fb.ColorDisabled {
		return false
	}

	var w, h int32 = -1, -1
	for attachment, a := range fb.Attachments {

		format, aw, ah, ok := r.attachmentInfo(a)
		if !ok || aw <= 0 || ah <= 0 || r.UnsupportedFormats[format] {
			return false
		}

		if attachment == gpu.Attachment_Color0 && !format.IsColorFormat() {
			return false
		}

		if attachment != gpu.Attachment_Color0 && !format.IsDepthFormat() {
			return false
		}

		if w == -1 {
			w, h = aw, ah
		} else if w != aw || h != ah {
			return false
		}
	}

	return true
}

func (r *Recorder) attachmentInfo(a FramebufferAttachment) (format gpu.TextureFormat, w, h int32, ok bool) {

	if a.IsRenderbuffer {
		rb := r.Renderbuffers[a.Id]
		if rb == nil || rb.Deleted {
			return 0, 0, 0, false
		}
		return rb.Format, rb.Width, rb.Height, true
	}

	tex := r.Textures[a.Id]
	if tex == nil || tex.Deleted {
		return 0, 0, 0, false
	}

	return tex.Format, tex.Width, tex.Height, true
}

func (r *Recorder) GenTexture() uint32 {
	id := r.genId()
	r.Textures[id] = &Texture{Id: id}
	return id
}

func (r *Recorder) DeleteTexture(tex uint32) {
	if t, ok := r.Textures[tex]; ok {
		t.Deleted = true
	}
}

func (r *Recorder) ActiveTexture(unit uint32) {
	r.ActiveUnit = unit
}

func (r *Recorder) BindTexture(target gpu.TextureTarget, tex uint32) {

	r.BoundTextures[r.ActiveUnit] = BoundTexture{Target: target, Id: tex}

	if t, ok := r.Textures[tex]; ok && t.Target == gpu.TextureTarget_Unknown {
		t.Target = target
	}
}

func (r *Recorder) boundTex(target gpu.TextureTarget) *Texture {

	bt := r.BoundTextures[r.ActiveUnit]
	t := r.Textures[bt.Id]
	if t == nil || bt.Target != target {
		panic(fmt.Sprintf("gputest: no texture of target %d bound on unit %d", target, r.ActiveUnit))
	}

	return t
}

func (r *Recorder) TexImage2D(target gpu.TextureTarget, face int, format gpu.TextureFormat, width, height int32, pixels []byte) {

	t := r.boundTex(target)
	t.Format = format
	t.Width = width
	t.Height = height
	t.FacesSet++

	if pixels != nil {
		t.Data = append(t.Data[:0], pixels...)
	}
}

func (r *Recorder) SetTextureParams(target gpu.TextureTarget, params gpu.TextureParams) {
	r.boundTex(target).Params = params
}

func (r *Recorder) GenerateMipmap(target gpu.TextureTarget) {
	r.boundTex(target).MipmapsBuilt = true
}

func (r *Recorder) GenRenderbuffer() uint32 {
	id := r.genId()
	r.Renderbuffers[id] = &Renderbuffer{Id: id}
	return id
}

func (r *Recorder) DeleteRenderbuffer(rbo uint32) {
	if rb, ok := r.Renderbuffers[rbo]; ok {
		rb.Deleted = true
	}
}

func (r *Recorder) RenderbufferStorage(rbo uint32, format gpu.TextureFormat, width, height int32) {

	rb := r.Renderbuffers[rbo]
	if rb == nil {
		panic(fmt.Sprintf("gputest: unknown renderbuffer %d", rbo))
	}

	rb.Format = format
	rb.Width = width
	rb.Height = height
}

func (r *Recorder) GenVertexArray() uint32 {
	id := r.genId()
	r.VertexArrays[id] = &VertexArray{Id: id, Attribs: map[uint32]VertexAttrib{}}
	return id
}

func (r *Recorder) DeleteVertexArray(vao uint32) {
	if va, ok := r.VertexArrays[vao]; ok {
		va.Deleted = true
	}
}

func (r *Recorder) BindVertexArray(vao uint32) {
	r.BoundVertexArray = vao
}

func (r *Recorder) GenBuffer() uint32 {
	id := r.genId()
	r.Buffers[id] = &Buffer{Id: id}
	return id
}

func (r *Recorder) DeleteBuffer(buf uint32) {
	if b, ok := r.Buffers[buf]; ok {
		b.Deleted = true
	}
}

func (r *Recorder) BindArrayBuffer(buf uint32) {
	r.BoundArrayBuffer = buf
}

func (r *Recorder) ArrayBufferData(values []float32, usage gpu.BufUsage) {

	b := r.Buffers[r.BoundArrayBuffer]
	if b == nil {
		panic("gputest: buffer data with no array buffer bound")
	}

	b.Data = append(b.Data[:0], values...)
	b.Usage = usage
}

func (r *Recorder) VertexAttribPointer(index uint32, compCount, stride int32, offset int) {

	va := r.VertexArrays[r.BoundVertexArray]
	if va == nil {
		panic("gputest: attribute pointer with no vertex array bound")
	}

	va.Attribs[index] = VertexAttrib{
		Buffer:    r.BoundArrayBuffer,
		CompCount: compCount,
		Stride:    stride,
		Offset:    offset,
	}
}

func (r *Recorder) Viewport(x, y, width, height int32) {
	r.ViewportRect = [4]int32{x, y, width, height}
}

func (r *Recorder) ClearColor(red, green, blue, alpha float32) {
	r.ClearColorRGBA = [4]float32{red, green, blue, alpha}
}

func (r *Recorder) Clear(mask gpu.ClearMask) {
	r.Clears = append(r.Clears, Clear{
		Seq:         r.nextSeq(),
		Framebuffer: r.BoundFramebuffer,
		Mask:        mask,
	})
}

func (r *Recorder) Enable(c gpu.Capability) {
	r.Enabled[c] = true
}

func (r *Recorder) Disable(c gpu.Capability) {
	r.Enabled[c] = false
}

func (r *Recorder) DepthMask(write bool) {
	r.DepthWrite = write
}

func (r *Recorder) DepthFunc(f gpu.DepthFunc) {
	r.CurrDepthFunc = f
}

func (r *Recorder) CompileProgram(stages ...gpu.ShaderSource) (uint32, error) {

	if r.CompileErr != nil {
		return 0, fmt.Errorf("%w: %w", ErrCompileFailed, r.CompileErr)
	}

	hasVert, hasFrag := false, false
	for _, s := range stages {
		hasVert = hasVert || s.Type == gpu.ShaderType_Vertex
		hasFrag = hasFrag || s.Type == gpu.ShaderType_Fragment
	}

	if !hasVert || !hasFrag {
		return 0, fmt.Errorf("%w: program needs a vertex and a fragment stage", ErrCompileFailed)
	}

	id := r.genId()
	r.Programs[id] = &Program{
		Id:       id,
		Stages:   stages,
		Uniforms: map[string]any{},
		locs:     map[string]int32{},
		names:    map[int32]string{},
	}

	return id, nil
}

func (r *Recorder) DeleteProgram(prog uint32) {
	if p, ok := r.Programs[prog]; ok {
		p.Deleted = true
	}
}

func (r *Recorder) UseProgram(prog uint32) {
	r.CurrentProgram = prog
}

// UniformLocation returns a stable location for any name, as if every uniform were active
func (r *Recorder) UniformLocation(prog uint32, name string) int32 {

	p := r.Programs[prog]
	if p == nil {
		return -1
	}

	if loc, ok := p.locs[name]; ok {
		return loc
	}

	loc := r.nextLoc
	r.nextLoc++
	p.locs[name] = loc
	p.names[loc] = name
	return loc
}

func (r *Recorder) setUniform(prog uint32, loc int32, v any) {

	if loc == -1 {
		return
	}

	p := r.Programs[prog]
	if p == nil {
		panic(fmt.Sprintf("gputest: set uniform on unknown program %d", prog))
	}

	name, ok := p.names[loc]
	if !ok {
		panic(fmt.Sprintf("gputest: uniform location %d was not queried on program %d", loc, prog))
	}

	p.Uniforms[name] = v
}

func (r *Recorder) SetUniformInt32(prog uint32, loc int32, v int32) {
	r.setUniform(prog, loc, v)
}

func (r *Recorder) SetUniformFloat32(prog uint32, loc int32, v float32) {
	r.setUniform(prog, loc, v)
}

func (r *Recorder) SetUniformVec3(prog uint32, loc int32, v *gglm.Vec3) {
	r.setUniform(prog, loc, *v)
}

func (r *Recorder) SetUniformMat4(prog uint32, loc int32, m *gglm.Mat4) {
	r.setUniform(prog, loc, *m)
}

func (r *Recorder) DrawArrays(mode gpu.PrimitiveMode, first, count int32) {

	d := Draw{
		Seq:         r.nextSeq(),
		Program:     r.CurrentProgram,
		Vao:         r.BoundVertexArray,
		Mode:        mode,
		First:       first,
		Count:       count,
		Framebuffer: r.BoundFramebuffer,
		Viewport:    r.ViewportRect,
		DepthTest:   r.Enabled[gpu.Capability_DepthTest],
		DepthWrite:  r.DepthWrite,
		DepthFunc:   r.CurrDepthFunc,
		Textures:    make(map[uint32]BoundTexture, len(r.BoundTextures)),
		Uniforms:    map[string]any{},
	}

	for unit, bt := range r.BoundTextures {
		d.Textures[unit] = bt
	}

	if p := r.Programs[r.CurrentProgram]; p != nil {
		for k, v := range p.Uniforms {
			d.Uniforms[k] = v
		}
	}

	r.Draws = append(r.Draws, d)
}

// ReadPixels returns the data of the bound framebuffer's colour texture when it holds
// enough bytes for the requested rectangle, and zeros otherwise
func (r *Recorder) ReadPixels(x, y, width, height int32) []byte {

	out := make([]byte, width*height*4)

	fb := r.Framebuffers[r.BoundFramebuffer]
	if fb == nil {
		return out
	}

	a, ok := fb.Attachments[gpu.Attachment_Color0]
	if !ok || a.IsRenderbuffer {
		return out
	}

	tex := r.Textures[a.Id]
	if tex == nil || int32(len(tex.Data)) < tex.Width*tex.Height*4 {
		return out
	}

	for row := int32(0); row < height; row++ {
		srcStart := ((y+row)*tex.Width + x) * 4
		copy(out[row*width*4:(row+1)*width*4], tex.Data[srcStart:srcStart+width*4])
	}

	return out
}

// DrawsWithProgram returns the recorded draws that used prog, in order
func (r *Recorder) DrawsWithProgram(prog uint32) []Draw {

	out := make([]Draw, 0)
	for _, d := range r.Draws {
		if d.Program == prog {
			out = append(out, d)
		}
	}

	return out
}

// LiveTextures counts textures that were created and not deleted
func (r *Recorder) LiveTextures() int {

	n := 0
	for _, t := range r.Textures {
		if !t.Deleted {
			n++
		}
	}

	return n
}
