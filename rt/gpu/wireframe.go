package gpu

import (
	"encoding/binary"
)

// LineListIndices turns a triangle list into a line list drawing each
// triangle's three edges. Shared edges are emitted once per triangle.
func LineListIndices(triangles []uint16) []uint16 {
	n := len(triangles) - len(triangles)%3
	lines := make([]uint16, 0, 2*n)
	for i := 0; i < n; i += 3 {
		a, b, c := triangles[i], triangles[i+1], triangles[i+2]
		lines = append(lines, a, b, b, c, c, a)
	}
	return lines
}

// DecodeIndices reads count little-endian uint16 indices from contents.
func DecodeIndices(contents []byte, count int) []uint16 {
	if limit := len(contents) / 2; count > limit {
		count = limit
	}
	out := make([]uint16, count)
	for i := range out {
		out[i] = binary.LittleEndian.Uint16(contents[2*i:])
	}
	return out
}
