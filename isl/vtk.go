package isl

import (
	"bytes"
	"fmt"
	"strconv"
)

// Fields is implemented by cell types written to VTK and PGM files.
// FieldValues must return one value per name in FieldNames.
type Fields interface {
	FieldNames() []string
	FieldValues() []float32
}

// FieldNames returns the names of the values written for every cell of type T.
// Numeric types have a single field called "val".
func FieldNames[T any]() []string {
	var zero T
	if fields, ok := any(zero).(Fields); ok {
		return fields.FieldNames()
	}
	if fields, ok := any(&zero).(Fields); ok {
		return fields.FieldNames()
	}
	return []string{"val"}
}

// FieldValues returns the values written for a single cell.
func FieldValues[T any](value T) ([]float32, error) {
	if fields, ok := any(value).(Fields); ok {
		return fields.FieldValues(), nil
	}
	if fields, ok := any(&value).(Fields); ok {
		return fields.FieldValues(), nil
	}
	var f float32
	switch v := any(value).(type) {
	case float32:
		f = v
	case float64:
		f = float32(v)
	case int:
		f = float32(v)
	case int8:
		f = float32(v)
	case int16:
		f = float32(v)
	case int32:
		f = float32(v)
	case int64:
		f = float32(v)
	case uint:
		f = float32(v)
	case uint8:
		f = float32(v)
	case uint16:
		f = float32(v)
	case uint32:
		f = float32(v)
	case uint64:
		f = float32(v)
	case bool:
		if v {
			f = 1
		}
	default:
		return nil, fmt.Errorf("%w: %T provides no field values", ErrFieldCount, value)
	}
	return []float32{f}, nil
}

// Collect the values of every field, one column per field
func fieldColumns[T any](names []string, snapshot Snapshot[T]) ([][]float32, error) {
	columns := make([][]float32, len(names))
	for i := range columns {
		columns[i] = make([]float32, 0, len(snapshot)*len(snapshot[0]))
	}
	for y, row := range snapshot {
		for x, value := range row {
			values, err := FieldValues(value)
			if err != nil {
				return nil, err
			}
			if len(values) != len(names) {
				return nil, fmt.Errorf("%w: cell (%d, %d) has %d values for %d fields",
					ErrFieldCount, x, y, len(values), len(names))
			}
			for i, v := range values {
				columns[i] = append(columns[i], v)
			}
		}
	}
	return columns, nil
}

func appendFloat(buffer []byte, f float32) []byte {
	return strconv.AppendFloat(buffer, float64(f), 'g', -1, 32)
}

// encodeVTK writes a snapshot as a legacy ASCII VTK structured grid with one point per cell.
func encodeVTK[T any](names []string, snapshot Snapshot[T]) ([]byte, error) {
	columns, err := fieldColumns(names, snapshot)
	if err != nil {
		return nil, err
	}
	height := len(snapshot)
	width := len(snapshot[0])
	points := width * height

	var buffer bytes.Buffer
	buffer.WriteString("# vtk DataFile Version 3.0\n")
	buffer.WriteString("output\n")
	buffer.WriteString("ASCII\n")
	buffer.WriteString("DATASET STRUCTURED_GRID\n")
	fmt.Fprintf(&buffer, "DIMENSIONS %d %d 1\n", width, height)
	fmt.Fprintf(&buffer, "POINTS %d float\n", points)
	line := make([]byte, 0, 64)
	for y := 0; y != height; y++ {
		for x := 0; x != width; x++ {
			line = strconv.AppendInt(line[:0], int64(x), 10)
			line = append(line, ' ')
			line = strconv.AppendInt(line, int64(y), 10)
			line = append(line, " 0\n"...)
			buffer.Write(line)
		}
	}
	fmt.Fprintf(&buffer, "POINT_DATA %d\n", points)
	for i, name := range names {
		fmt.Fprintf(&buffer, "SCALARS %s float 1\n", name)
		buffer.WriteString("LOOKUP_TABLE default\n")
		for _, v := range columns[i] {
			line = appendFloat(line[:0], v)
			line = append(line, '\n')
			buffer.Write(line)
		}
	}
	return buffer.Bytes(), nil
}

// encodePGM writes the first field of every cell as a binary grey-scale image.
func encodePGM[T any](snapshot Snapshot[T]) ([]byte, error) {
	greys, err := GreyScale(snapshot, 255)
	if err != nil {
		return nil, err
	}

	var buffer bytes.Buffer
	buffer.WriteString("P5\n")
	buffer.WriteString(strconv.Itoa(len(snapshot[0])))
	buffer.WriteString(" ")
	buffer.WriteString(strconv.Itoa(len(snapshot)))
	buffer.WriteString("\n")
	buffer.WriteString(strconv.Itoa(255))
	buffer.WriteString("\n")
	buffer.Write(greys)
	return buffer.Bytes(), nil
}

// GreyScale maps the first field of every cell to a pixel intensity, row by row.
// Values are scaled from [0, limit].
func GreyScale[T any](snapshot Snapshot[T], limit float32) ([]byte, error) {
	if len(snapshot) == 0 {
		return nil, nil
	}
	greys := make([]byte, 0, len(snapshot)*len(snapshot[0]))
	for _, row := range snapshot {
		for _, value := range row {
			values, err := FieldValues(value)
			if err != nil {
				return nil, err
			}
			if len(values) == 0 {
				return nil, fmt.Errorf("%w: %T has no values to draw", ErrFieldCount, value)
			}
			greys = append(greys, Grey(values[0], limit))
		}
	}
	return greys, nil
}

// Grey maps v in [0, limit] to a pixel intensity, clamping values outside the range.
func Grey(v, limit float32) byte {
	if limit <= 0 || v <= 0 {
		return 0
	}
	if v >= limit {
		return 255
	}
	return byte(v * 255 / limit)
}
