package gpu

import (
	"fmt"
	"reflect"
	"strconv"
)

func parseFormat(name string) (VertexFormat, error) {
	switch name {
	case "float2":
		return VertexFormatFloat32x2, nil
	case "float3":
		return VertexFormatFloat32x3, nil
	case "float4":
		return VertexFormatFloat32x4, nil
	default:
		return 0, fmt.Errorf("unsupported vertex layout format: %q", name)
	}
}

// VertexLayoutOf derives a buffer layout from a vertex struct. Fields tagged
// `gpu:"layout"` become attributes at their location; every field counts
// towards the offset and stride.
func VertexLayoutOf(vertexType any) (VertexLayout, error) {
	t := reflect.TypeOf(vertexType)
	if t == nil || t.Kind() != reflect.Struct {
		return VertexLayout{}, fmt.Errorf("vertex must be a struct, got %v", t)
	}

	var attributes []VertexAttribute
	var offset uint64

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)

		if field.Tag.Get("gpu") == "layout" {
			format, err := parseFormat(field.Tag.Get("format"))
			if err != nil {
				return VertexLayout{}, fmt.Errorf("field %s: %w", field.Name, err)
			}
			location, err := strconv.Atoi(field.Tag.Get("location"))
			if err != nil {
				return VertexLayout{}, fmt.Errorf("field %s: bad location: %w", field.Name, err)
			}

			attributes = append(attributes, VertexAttribute{
				Location: uint32(location),
				Offset:   offset,
				Format:   format,
			})
		}

		offset += uint64(field.Type.Size())
	}

	return VertexLayout{
		Stride:     offset,
		Attributes: attributes,
	}, nil
}
