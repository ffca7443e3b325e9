package core

import (
	"github.com/go-gl/mathgl/mgl32"
)

// BuildTransform returns the model matrix for the given placement.
// Only scale is applied; translation and rotation are not implemented yet.
func BuildTransform(translation mgl32.Vec3, rx, ry, rz float32, scale float32) mgl32.Mat4 {
	return ScaleMatrix(scale)
}

// ScaleMatrix returns identity with the same scale on x, y and z.
func ScaleMatrix(scale float32) mgl32.Mat4 {
	m := mgl32.Ident4()
	m.Set(0, 0, scale)
	m.Set(1, 1, scale)
	m.Set(2, 2, scale)
	return m
}
