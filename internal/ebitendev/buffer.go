package ebitendev

import (
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/hherman1/flowmask/internal/flow"
)

// buffer keeps the quad and its ebiten vertices for the last surface size.
type buffer struct {
	mesh flow.Mesh

	key     [4]int
	cached  []ebiten.Vertex
	indices []uint16
}

func newBuffer(m flow.Mesh) *buffer {
	is := make([]uint16, len(m))
	for i := range is {
		is[i] = uint16(i)
	}
	return &buffer{mesh: m, indices: is}
}

func (b *buffer) Mesh() flow.Mesh { return b.mesh }

// vertices converts the first n vertices of the mesh to ebiten vertices for a dw x dh
// destination and a sw x sh source. Indices are sequential, one per vertex.
func (b *buffer) vertices(dw, dh, sw, sh, n int) ([]ebiten.Vertex, []uint16) {
	n = min(max(n, 0), len(b.mesh))
	key := [4]int{dw, dh, sw, sh}
	if b.cached == nil || b.key != key {
		b.key = key
		b.cached = make([]ebiten.Vertex, len(b.mesh))
		for i, v := range b.mesh {
			b.cached[i] = toEbiten(v, dw, dh, sw, sh)
		}
	}
	return b.cached[:n], b.indices[:n]
}

// toEbiten maps clip space to destination pixels and texture space to source pixels.
// Clip space y points up, texture v and both pixel spaces point down.
func toEbiten(v flow.Vertex, dw, dh, sw, sh int) ebiten.Vertex {
	return ebiten.Vertex{
		DstX:   (v.X + 1) / 2 * float32(dw),
		DstY:   (1 - v.Y) / 2 * float32(dh),
		SrcX:   v.U * float32(sw),
		SrcY:   v.V * float32(sh),
		ColorR: 1,
		ColorG: 1,
		ColorB: 1,
		ColorA: 1,
	}
}
