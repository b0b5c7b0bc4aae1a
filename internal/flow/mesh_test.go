package flow

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuadCoversViewport(t *testing.T) {
	m := Quad()
	fs := m.Floats()
	require.Len(t, fs, VertexCount*Stride)

	decoded, ok := MeshFromFloats(fs)
	require.True(t, ok)
	assert.Equal(t, m, decoded)

	want := [2][3]Vertex{
		{{1, 1, 1, 0}, {-1, 1, 0, 0}, {1, -1, 1, 1}},
		{{1, -1, 1, 1}, {-1, 1, 0, 0}, {-1, -1, 0, 1}},
	}
	assert.Equal(t, want, decoded.Triangles())

	for _, tri := range decoded.Triangles() {
		a, b, c := tri[0], tri[1], tri[2]
		area := (b.X-a.X)*(c.Y-a.Y) - (c.X-a.X)*(b.Y-a.Y)
		assert.NotZero(t, area, "degenerate triangle %v", tri)
		for _, v := range tri {
			// u follows x, v runs from the top edge down
			assert.Equal(t, (v.X+1)/2, v.U)
			assert.Equal(t, (1-v.Y)/2, v.V)
		}
	}
}

func TestQuadIsACopy(t *testing.T) {
	m := Quad()
	m[0].X = 42
	assert.Equal(t, float32(1), Quad()[0].X)
}

func TestMeshFromFloatsRejectsShortBuffer(t *testing.T) {
	_, ok := MeshFromFloats(make([]float32, VertexCount*Stride-1))
	assert.False(t, ok)
}
