package renderer

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// Vertex is a position and an RGB color, both in float32.
type Vertex struct {
	Position [3]float32
	Color    [3]float32
}

// VertexStride is the byte size of one Vertex in the vertex buffer.
const VertexStride = 24

// vertexBufferLayouts describes Vertex to the pipeline:
// @location(0) position vec3<f32>, @location(1) color vec3<f32>.
func vertexBufferLayouts() []gputypes.VertexBufferLayout {
	return []gputypes.VertexBufferLayout{
		{
			ArrayStride: VertexStride,
			StepMode:    gputypes.VertexStepModeVertex,
			Attributes: []gputypes.VertexAttribute{
				{Format: gputypes.VertexFormatFloat32x3, Offset: 0, ShaderLocation: 0},
				{Format: gputypes.VertexFormatFloat32x3, Offset: 12, ShaderLocation: 1},
			},
		},
	}
}

// Geometry is a static mesh. An empty Geometry means the vertex shader
// generates its own vertices.
type Geometry struct {
	Vertices []Vertex
	Indices  []uint16
}

// Pentagon returns the five-vertex purple pentagon drawn as three triangles.
func Pentagon() Geometry {
	purple := [3]float32{0.5, 0.0, 0.5}
	return Geometry{
		Vertices: []Vertex{
			{Position: [3]float32{-0.0868241, 0.49240386, 0.0}, Color: purple},
			{Position: [3]float32{-0.49513406, 0.06958647, 0.0}, Color: purple},
			{Position: [3]float32{-0.21918549, -0.44939706, 0.0}, Color: purple},
			{Position: [3]float32{0.35966998, -0.3473291, 0.0}, Color: purple},
			{Position: [3]float32{0.44147372, 0.2347359, 0.0}, Color: purple},
		},
		Indices: []uint16{
			0, 1, 4,
			1, 2, 4,
			2, 3, 4,
		},
	}
}

// Empty reports whether the geometry has no vertices.
func (g Geometry) Empty() bool { return len(g.Vertices) == 0 }

// Validate checks that indices form whole triangles and reference existing
// vertices.
func (g Geometry) Validate() error {
	if g.Empty() {
		if len(g.Indices) != 0 {
			return fmt.Errorf("%w: %d indices without vertices", ErrInvalidGeometry, len(g.Indices))
		}
		return nil
	}
	if len(g.Vertices) > math.MaxUint16+1 {
		return fmt.Errorf("%w: %d vertices exceed uint16 indexing", ErrInvalidGeometry, len(g.Vertices))
	}
	if len(g.Indices) == 0 || len(g.Indices)%3 != 0 {
		return fmt.Errorf("%w: index count %d is not a positive multiple of 3", ErrInvalidGeometry, len(g.Indices))
	}
	for i, idx := range g.Indices {
		if int(idx) >= len(g.Vertices) {
			return fmt.Errorf("%w: index %d at %d out of range [0,%d)", ErrInvalidGeometry, idx, i, len(g.Vertices))
		}
	}
	return nil
}

// VertexBytes encodes the vertices little-endian, VertexStride bytes each.
func (g Geometry) VertexBytes() []byte {
	buf := make([]byte, len(g.Vertices)*VertexStride)
	off := 0
	for _, v := range g.Vertices {
		for _, f := range v.Position {
			binary.LittleEndian.PutUint32(buf[off:], math.Float32bits(f))
			off += 4
		}
		for _, f := range v.Color {
			binary.LittleEndian.PutUint32(buf[off:], math.Float32bits(f))
			off += 4
		}
	}
	return buf
}

// IndexBytes encodes the indices as little-endian uint16, zero-padded to a
// multiple of 4 bytes as buffer writes require.
func (g Geometry) IndexBytes() []byte {
	size := align4(uint64(len(g.Indices) * 2))
	buf := make([]byte, size)
	for i, idx := range g.Indices {
		binary.LittleEndian.PutUint16(buf[i*2:], idx)
	}
	return buf
}

// VertexIndexBuffer holds the uploaded geometry.
type VertexIndexBuffer struct {
	vertexBuf   hal.Buffer
	indexBuf    hal.Buffer
	numVertices uint32
	numIndices  uint32
}

// NumVertices returns the vertex count.
func (b *VertexIndexBuffer) NumVertices() uint32 { return b.numVertices }

// NumIndices returns the index count.
func (b *VertexIndexBuffer) NumIndices() uint32 { return b.numIndices }

// uploadGeometry creates the vertex and index buffers and writes g into them.
func uploadGeometry(device hal.Device, queue hal.Queue, g Geometry) (*VertexIndexBuffer, error) {
	if err := g.Validate(); err != nil {
		return nil, err
	}

	vertexData := g.VertexBytes()
	vertexBuf, err := device.CreateBuffer(&hal.BufferDescriptor{
		Label: "polydemo_vertices",
		Size:  uint64(len(vertexData)),
		Usage: gputypes.BufferUsageVertex | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		return nil, fmt.Errorf("renderer: create vertex buffer: %w", err)
	}

	indexData := g.IndexBytes()
	indexBuf, err := device.CreateBuffer(&hal.BufferDescriptor{
		Label: "polydemo_indices",
		Size:  uint64(len(indexData)),
		Usage: gputypes.BufferUsageIndex | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		device.DestroyBuffer(vertexBuf)
		return nil, fmt.Errorf("renderer: create index buffer: %w", err)
	}

	queue.WriteBuffer(vertexBuf, 0, vertexData)
	queue.WriteBuffer(indexBuf, 0, indexData)

	return &VertexIndexBuffer{
		vertexBuf:   vertexBuf,
		indexBuf:    indexBuf,
		numVertices: uint32(len(g.Vertices)),
		numIndices:  uint32(len(g.Indices)),
	}, nil
}

// destroy releases both buffers.
func (b *VertexIndexBuffer) destroy(device hal.Device) {
	if b.indexBuf != nil {
		device.DestroyBuffer(b.indexBuf)
		b.indexBuf = nil
	}
	if b.vertexBuf != nil {
		device.DestroyBuffer(b.vertexBuf)
		b.vertexBuf = nil
	}
}

func align4(n uint64) uint64 {
	return (n + 3) &^ 3
}
