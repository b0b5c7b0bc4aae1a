package flow

// Stride is the number of floats in one interleaved vertex: x, y, u, v.
const Stride = 4

// VertexCount is the number of vertices in the quad, two triangles without indices.
const VertexCount = 6

// Vertex is a clip-space position followed by its texture coordinate.
type Vertex struct {
	X, Y float32
	U, V float32
}

// Mesh is the full-screen quad. It is an array so handing it out copies it.
type Mesh [VertexCount]Vertex

// Quad returns two triangles covering (-1,-1)-(1,1) in clip space and (0,0)-(1,1) in texture space.
// Texture v runs down the image: the top edge, y=+1, is v=0, the image's first row.
func Quad() Mesh {
	return Mesh{
		{X: 1, Y: 1, U: 1, V: 0},
		{X: -1, Y: 1, U: 0, V: 0},
		{X: 1, Y: -1, U: 1, V: 1},

		{X: 1, Y: -1, U: 1, V: 1},
		{X: -1, Y: 1, U: 0, V: 0},
		{X: -1, Y: -1, U: 0, V: 1},
	}
}

// Floats returns the interleaved vertex buffer as uploaded to the GPU.
func (m Mesh) Floats() []float32 {
	fs := make([]float32, 0, len(m)*Stride)
	for _, v := range m {
		fs = append(fs, v.X, v.Y, v.U, v.V)
	}
	return fs
}

// Triangles splits the mesh into its two triangles.
func (m Mesh) Triangles() [2][3]Vertex {
	return [2][3]Vertex{
		{m[0], m[1], m[2]},
		{m[3], m[4], m[5]},
	}
}

// MeshFromFloats decodes an interleaved buffer produced by Floats.
func MeshFromFloats(fs []float32) (Mesh, bool) {
	var m Mesh
	if len(fs) != len(m)*Stride {
		return m, false
	}
	for i := range m {
		o := i * Stride
		m[i] = Vertex{X: fs[o], Y: fs[o+1], U: fs[o+2], V: fs[o+3]}
	}
	return m, true
}
