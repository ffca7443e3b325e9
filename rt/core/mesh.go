package core

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

var (
	ErrIndexCount = errors.New("index count is not a multiple of 3")
	ErrIndexRange = errors.New("index out of vertex range")
)

// Vertex is the per-vertex data shared with the shaders. Tags describe the
// vertex buffer layout: one attribute per tagged field, in declaration order.
type Vertex struct {
	Pos [3]float32 `gpu:"layout" location:"0" format:"float3"`
	Col [3]float32 `gpu:"layout" location:"1" format:"float3"`
}

// Shape selects one of the built-in meshes.
type Shape int

const (
	ShapeTriangle Shape = iota
	ShapeCube
)

var shapeNames = [...]string{
	ShapeTriangle: "Triangle",
	ShapeCube:     "Cube",
}

func (s Shape) String() string {
	if s < 0 || int(s) >= len(shapeNames) {
		return fmt.Sprintf("Shape(%d)", int(s))
	}
	return shapeNames[s]
}

// Shapes lists every shape in selector order.
func Shapes() []Shape {
	return []Shape{ShapeTriangle, ShapeCube}
}

// ShapeFromIndex maps a selector index to a Shape.
func ShapeFromIndex(i int) (Shape, bool) {
	if i < 0 || i >= len(shapeNames) {
		return 0, false
	}
	return Shape(i), true
}

// ParseShape resolves a shape by its display name, case-sensitive.
func ParseShape(name string) (Shape, bool) {
	for i, n := range shapeNames {
		if n == name {
			return Shape(i), true
		}
	}
	return 0, false
}

// Mesh is an indexed triangle list. Triangles are wound clockwise as seen
// from the front.
type Mesh struct {
	ID       uuid.UUID
	Shape    Shape
	Vertices []Vertex
	Indices  []uint16
}

func (m *Mesh) IndexCount() int    { return len(m.Indices) }
func (m *Mesh) TriangleCount() int { return len(m.Indices) / 3 }

// Triangle returns the vertex positions of triangle i.
func (m *Mesh) Triangle(i int) (a, b, c [3]float32) {
	return m.Vertices[m.Indices[3*i]].Pos,
		m.Vertices[m.Indices[3*i+1]].Pos,
		m.Vertices[m.Indices[3*i+2]].Pos
}

func (m *Mesh) Validate() error {
	if len(m.Indices)%3 != 0 {
		return fmt.Errorf("%w: %d indices", ErrIndexCount, len(m.Indices))
	}
	for i, idx := range m.Indices {
		if int(idx) >= len(m.Vertices) {
			return fmt.Errorf("%w: indices[%d] = %d, %d vertices", ErrIndexRange, i, idx, len(m.Vertices))
		}
	}
	return nil
}

// BuildMesh returns a fresh copy of the canonical mesh for shape.
func BuildMesh(shape Shape) Mesh {
	var vertices []Vertex
	var indices []uint16

	switch shape {
	case ShapeCube:
		vertices = []Vertex{
			// front, z = 0
			{Pos: [3]float32{-1, 1, 0}, Col: [3]float32{1, 0, 0}},
			{Pos: [3]float32{1, 1, 0}, Col: [3]float32{0, 1, 0}},
			{Pos: [3]float32{1, -1, 0}, Col: [3]float32{0, 0, 1}},
			{Pos: [3]float32{-1, -1, 0}, Col: [3]float32{1, 1, 1}},
			// back, z = 1
			{Pos: [3]float32{-1, 1, 1}, Col: [3]float32{1, 0, 0}},
			{Pos: [3]float32{1, 1, 1}, Col: [3]float32{0, 1, 0}},
			{Pos: [3]float32{1, -1, 1}, Col: [3]float32{0, 0, 1}},
			{Pos: [3]float32{-1, -1, 1}, Col: [3]float32{1, 1, 1}},
		}
		indices = []uint16{
			0, 1, 2, 0, 2, 3, // front
			1, 5, 2, 5, 6, 2, // right
			5, 4, 6, 4, 7, 6, // rear
			4, 0, 7, 0, 3, 7, // left
			4, 1, 0, 4, 5, 1, // top
			3, 2, 7, 7, 2, 6, // bottom
		}
	default:
		shape = ShapeTriangle
		vertices = []Vertex{
			{Pos: [3]float32{0, 1, 0}, Col: [3]float32{1, 0, 0}},
			{Pos: [3]float32{1, -1, 0}, Col: [3]float32{0, 1, 0}},
			{Pos: [3]float32{-1, -1, 0}, Col: [3]float32{0, 0, 1}},
		}
		// top middle, bottom right, bottom left
		indices = []uint16{0, 1, 2}
	}

	return Mesh{
		ID:       uuid.New(),
		Shape:    shape,
		Vertices: vertices,
		Indices:  indices,
	}
}
