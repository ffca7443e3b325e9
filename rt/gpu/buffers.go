package gpu

import (
	"fmt"

	"github.com/gekko3d/hellomesh/rt/core"
)

// UploadVertices copies the mesh vertices into a new device vertex buffer.
// The caller owns the returned buffer.
func UploadVertices(dev Device, mesh *core.Mesh) (Buffer, error) {
	if len(mesh.Vertices) == 0 {
		return nil, fmt.Errorf("%w: no vertices", ErrEmptyMesh)
	}
	contents, err := Bytes(mesh.Vertices)
	if err != nil {
		return nil, err
	}
	buf, err := dev.CreateBuffer(fmt.Sprintf("Vertex Buffer %s", mesh.ID), BufferUsageVertex, contents)
	if err != nil {
		return nil, fmt.Errorf("%w: vertices of %s: %v", ErrBufferAllocation, mesh.Shape, err)
	}
	return buf, nil
}

// UploadIndices copies the mesh indices as uint16 into a new device index
// buffer, padded to 4 bytes. The caller owns the returned buffer.
func UploadIndices(dev Device, mesh *core.Mesh) (Buffer, error) {
	if len(mesh.Indices) < 3 {
		return nil, fmt.Errorf("%w: %d indices", ErrEmptyMesh, len(mesh.Indices))
	}
	contents, err := Bytes(mesh.Indices)
	if err != nil {
		return nil, err
	}
	buf, err := dev.CreateBuffer(fmt.Sprintf("Index Buffer %s", mesh.ID), BufferUsageIndex, Align4(contents))
	if err != nil {
		return nil, fmt.Errorf("%w: indices of %s: %v", ErrBufferAllocation, mesh.Shape, err)
	}
	return buf, nil
}
