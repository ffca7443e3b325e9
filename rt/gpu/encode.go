package gpu

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"reflect"
)

// Bytes serializes data in little-endian GPU layout: structs field by field,
// arrays and slices element by element, no implicit padding.
func Bytes(data any) ([]byte, error) {
	buf := new(bytes.Buffer)
	if err := writeBytes(reflect.ValueOf(data), buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeBytes(field reflect.Value, buf *bytes.Buffer) error {
	switch field.Kind() {
	case reflect.Ptr:
		if field.IsNil() {
			return fmt.Errorf("nil pointer of type %v", field.Type())
		}
		return writeBytes(field.Elem(), buf)

	case reflect.Slice, reflect.Array:
		for i := 0; i < field.Len(); i++ {
			if err := writeBytes(field.Index(i), buf); err != nil {
				return err
			}
		}

	case reflect.Struct:
		for i := 0; i < field.NumField(); i++ {
			if err := writeBytes(field.Field(i), buf); err != nil {
				return err
			}
		}

	case reflect.Uint8, reflect.Uint16, reflect.Uint32,
		reflect.Int8, reflect.Int16, reflect.Int32,
		reflect.Float32:
		if err := binary.Write(buf, binary.LittleEndian, scalar(field)); err != nil {
			return fmt.Errorf("failed to write scalar field: %w", err)
		}

	default:
		return fmt.Errorf("unsupported gpu data type: %v", field.Type())
	}
	return nil
}

// scalar reads by kind so unexported fields need no Interface() call.
func scalar(v reflect.Value) any {
	switch v.Kind() {
	case reflect.Uint8:
		return uint8(v.Uint())
	case reflect.Uint16:
		return uint16(v.Uint())
	case reflect.Uint32:
		return uint32(v.Uint())
	case reflect.Int8:
		return int8(v.Int())
	case reflect.Int16:
		return int16(v.Int())
	case reflect.Int32:
		return int32(v.Int())
	default:
		return float32(v.Float())
	}
}

// Align4 pads b with zeros to a multiple of 4 bytes, the copy alignment
// GPU buffers require.
func Align4(b []byte) []byte {
	if rem := len(b) % 4; rem != 0 {
		b = append(b, make([]byte, 4-rem)...)
	}
	return b
}
