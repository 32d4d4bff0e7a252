package render

import (
	"unsafe"

	"github.com/bloeys/gglm/gglm"
	"github.com/bloeys/tessera/internal/glyphs"
	"github.com/bloeys/tessera/internal/terminal"
	"github.com/bloeys/tessera/internal/tile"
	"github.com/go-gl/gl/v3.3-core/gl"
)

// Renderer owns every GL object the two-pass batched draw needs: one
// static index buffer, two streaming vertex buffers, a background and
// foreground VAO per vertex buffer, the atlas texture, and the two
// shader programs. It must only be touched on the thread that owns
// the GL context.
type Renderer struct {
	atlas *glyphs.FontAtlas

	cols, rows   int
	tileW, tileH int

	// ClearColor is the frame clear color; background quads matching
	// it are skipped since the clear already painted them.
	ClearColor tile.Color

	bgProgram uint32
	fgProgram uint32

	bgProjLoc int32
	fgProjLoc int32

	ibo     uint32
	vbos    [2]uint32
	bgVAOs  [2]uint32
	fgVAOs  [2]uint32
	texture uint32

	// cur is the vertex buffer the GPU is drawing from; Sync writes
	// into the other one, then flips.
	cur int

	batch Batch

	maxBgQuads int
	maxFgQuads int
}

// New builds the full GL object set for a cols x rows terminal of
// tileW x tileH pixel tiles. The GL context must be current.
func New(atlas *glyphs.FontAtlas, cols, rows, tileW, tileH int) (*Renderer, error) {
	r := &Renderer{
		atlas:      atlas,
		cols:       cols,
		rows:       rows,
		tileW:      tileW,
		tileH:      tileH,
		ClearColor: tile.Black.RGBA(),
		maxBgQuads: cols * rows,
		maxFgQuads: 2 * cols * rows,
	}

	var err error
	if r.bgProgram, err = linkProgram(backgroundVertSrc, backgroundFragSrc); err != nil {
		return nil, err
	}
	if r.fgProgram, err = linkProgram(foregroundVertSrc, foregroundFragSrc); err != nil {
		r.Destroy()
		return nil, err
	}
	if r.bgProjLoc, err = uniformLocation(r.bgProgram, "projection"); err != nil {
		r.Destroy()
		return nil, err
	}
	if r.fgProjLoc, err = uniformLocation(r.fgProgram, "projection"); err != nil {
		r.Destroy()
		return nil, err
	}

	// The index pattern never changes, so it covers the worst case
	// (every tile contributing all three quads) once, as STATIC_DRAW.
	maxQuads := r.maxBgQuads + r.maxFgQuads
	indices := quadIndices(maxQuads)
	gl.GenBuffers(1, &r.ibo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, r.ibo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(indices)*4, gl.Ptr(indices), gl.STATIC_DRAW)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, 0)

	vboBytes := maxQuads * bytesPerQuad
	gl.GenBuffers(2, &r.vbos[0])
	for _, vbo := range r.vbos {
		gl.BindBuffer(gl.ARRAY_BUFFER, vbo)
		gl.BufferData(gl.ARRAY_BUFFER, vboBytes, nil, gl.STREAM_DRAW)
	}
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)

	if err := r.setupVAOs(); err != nil {
		r.Destroy()
		return nil, err
	}
	r.uploadAtlasTexture()

	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	gl.BlendEquation(gl.FUNC_ADD)

	return r, nil
}

// setupVAOs builds one background and one foreground VAO per vertex
// buffer; all four share the one static index buffer.
func (r *Renderer) setupVAOs() error {
	bgPos, err := attribLocation(r.bgProgram, "vertPos")
	if err != nil {
		return err
	}
	bgColor, err := attribLocation(r.bgProgram, "vertColor")
	if err != nil {
		return err
	}
	fgPos, err := attribLocation(r.fgProgram, "vertPos")
	if err != nil {
		return err
	}
	fgColor, err := attribLocation(r.fgProgram, "vertColor")
	if err != nil {
		return err
	}
	fgUV, err := attribLocation(r.fgProgram, "vertUV")
	if err != nil {
		return err
	}

	gl.GenVertexArrays(2, &r.bgVAOs[0])
	gl.GenVertexArrays(2, &r.fgVAOs[0])

	for i := 0; i < 2; i++ {
		gl.BindVertexArray(r.bgVAOs[i])
		gl.BindBuffer(gl.ARRAY_BUFFER, r.vbos[i])
		gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, r.ibo)
		gl.EnableVertexAttribArray(bgPos)
		gl.VertexAttribPointer(bgPos, 2, gl.FLOAT, false, bytesPerVertex, gl.PtrOffset(0))
		gl.EnableVertexAttribArray(bgColor)
		gl.VertexAttribPointer(bgColor, 4, gl.FLOAT, false, bytesPerVertex, gl.PtrOffset(2*4))

		gl.BindVertexArray(r.fgVAOs[i])
		gl.BindBuffer(gl.ARRAY_BUFFER, r.vbos[i])
		gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, r.ibo)
		gl.EnableVertexAttribArray(fgPos)
		gl.VertexAttribPointer(fgPos, 2, gl.FLOAT, false, bytesPerVertex, gl.PtrOffset(0))
		gl.EnableVertexAttribArray(fgColor)
		gl.VertexAttribPointer(fgColor, 4, gl.FLOAT, false, bytesPerVertex, gl.PtrOffset(2*4))
		gl.EnableVertexAttribArray(fgUV)
		gl.VertexAttribPointer(fgUV, 2, gl.FLOAT, false, bytesPerVertex, gl.PtrOffset(6*4))
	}

	gl.BindVertexArray(0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, 0)
	return nil
}

func (r *Renderer) uploadAtlasTexture() {
	gl.GenTextures(1, &r.texture)
	gl.BindTexture(gl.TEXTURE_2D, r.texture)

	img := r.atlas.Img
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, int32(img.Rect.Dx()), int32(img.Rect.Dy()), 0, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(img.Pix))
	gl.GenerateMipmap(gl.TEXTURE_2D)

	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR_MIPMAP_LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.BindTexture(gl.TEXTURE_2D, 0)
}

// SetWindowSize recomputes the projection so the tile x terminal pixel
// extent fits inside a winW x winH window, uniformly scaled and
// letterboxed on the shorter axis, and uploads it to both programs.
func (r *Renderer) SetWindowSize(winW, winH int) {
	gl.Viewport(0, 0, int32(winW), int32(winH))

	contentW := float32(r.cols * r.tileW)
	contentH := float32(r.rows * r.tileH)

	scale := float32(winW) / contentW
	if s := float32(winH) / contentH; s < scale {
		scale = s
	}
	tx := (float32(winW) - contentW*scale) / 2
	ty := (float32(winH) - contentH*scale) / 2

	proj := gglm.Ortho(0, float32(winW), float32(winH), 0, 0, 1)
	fit := gglm.NewTrMatId().Translate(gglm.NewVec3(tx, ty, 0)).Scale(gglm.NewVec3(scale, scale, 1))
	projFit := proj.Mul(fit)

	gl.UseProgram(r.bgProgram)
	gl.UniformMatrix4fv(r.bgProjLoc, 1, false, &projFit.Mat4.Data[0][0])
	gl.UseProgram(r.fgProgram)
	gl.UniformMatrix4fv(r.fgProjLoc, 1, false, &projFit.Mat4.Data[0][0])
	gl.UseProgram(0)
}

// Sync rebuilds the CPU batch from term and streams it into the idle
// vertex buffer (background bytes first, foreground immediately
// after) via a WRITE_ONLY map, then makes that buffer the draw
// target. The GPU keeps consuming the previous buffer meanwhile.
func (r *Renderer) Sync(term *terminal.Terminal) {
	r.cur = 1 - r.cur

	r.batch.Build(term, r.atlas, float32(r.tileW), float32(r.tileH), r.ClearColor)

	gl.BindBuffer(gl.ARRAY_BUFFER, r.vbos[r.cur])
	ptr := gl.MapBuffer(gl.ARRAY_BUFFER, gl.WRITE_ONLY)
	if ptr != nil {
		totalFloats := len(r.batch.Background) + len(r.batch.Foreground)
		dst := unsafe.Slice((*float32)(ptr), totalFloats)
		n := copy(dst, r.batch.Background)
		copy(dst[n:], r.batch.Foreground)
		gl.UnmapBuffer(gl.ARRAY_BUFFER)
	}
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)

	term.ClearDirty()
}

// Render clears the frame and issues the two indexed draws against
// the buffer Sync just filled. The foreground pass starts at the
// index offset right after the background quads, since both passes
// share one continuous index pattern.
func (r *Renderer) Render() {
	cc := r.ClearColor.Vec4()
	gl.ClearColor(cc.R(), cc.G(), cc.B(), cc.A())
	gl.Clear(gl.COLOR_BUFFER_BIT)

	if r.batch.BackgroundQuads > 0 {
		gl.UseProgram(r.bgProgram)
		gl.BindVertexArray(r.bgVAOs[r.cur])
		gl.DrawElements(gl.TRIANGLES, int32(indicesPerQuad*r.batch.BackgroundQuads), gl.UNSIGNED_INT, gl.PtrOffset(0))
	}

	if r.batch.ForegroundQuads > 0 {
		gl.UseProgram(r.fgProgram)
		gl.BindVertexArray(r.fgVAOs[r.cur])
		gl.ActiveTexture(gl.TEXTURE0)
		gl.BindTexture(gl.TEXTURE_2D, r.texture)
		gl.DrawElements(gl.TRIANGLES, int32(indicesPerQuad*r.batch.ForegroundQuads), gl.UNSIGNED_INT, gl.PtrOffset(indicesPerQuad*r.batch.BackgroundQuads*4))
	}

	gl.BindVertexArray(0)
	gl.UseProgram(0)
}

// Destroy releases every GL object in the reverse order of creation.
// Safe to call on a partially constructed Renderer.
func (r *Renderer) Destroy() {
	if r.texture != 0 {
		gl.DeleteTextures(1, &r.texture)
		r.texture = 0
	}
	if r.fgVAOs[0] != 0 {
		gl.DeleteVertexArrays(2, &r.fgVAOs[0])
		r.fgVAOs = [2]uint32{}
	}
	if r.bgVAOs[0] != 0 {
		gl.DeleteVertexArrays(2, &r.bgVAOs[0])
		r.bgVAOs = [2]uint32{}
	}
	if r.vbos[0] != 0 {
		gl.DeleteBuffers(2, &r.vbos[0])
		r.vbos = [2]uint32{}
	}
	if r.ibo != 0 {
		gl.DeleteBuffers(1, &r.ibo)
		r.ibo = 0
	}
	if r.fgProgram != 0 {
		gl.DeleteProgram(r.fgProgram)
		r.fgProgram = 0
	}
	if r.bgProgram != 0 {
		gl.DeleteProgram(r.bgProgram)
		r.bgProgram = 0
	}
}
