package render

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"math"
)

// WritePLY serializes m as a PLY file, per section 6.2. When ascii is
// false the binary_little_endian payload is written (V records of six
// float32s, then T records of uint8(3) + three uint32 indices); when true,
// the ascii variant is written instead, one vertex/face per line.
func WritePLY(w io.Writer, m Mesh, ascii bool) error {
	bw := bufio.NewWriter(w)
	v, t := m.VertexCount(), m.TriangleCount()

	format := "binary_little_endian 1.0"
	if ascii {
		format = "ascii 1.0"
	}
	header := fmt.Sprintf(
		"ply\nformat %s\nelement vertex %d\nproperty float x\nproperty float y\nproperty float z\nproperty float nx\nproperty float ny\nproperty float nz\nelement face %d\nproperty list uchar uint vertex_indices\nend_header\n",
		format, v, t,
	)
	if _, err := bw.WriteString(header); err != nil {
		return fmt.Errorf("%w: %v", ErrIO, err)
	}

	if ascii {
		for i := 0; i < v; i++ {
			p, n := m.Position(uint32(i)), m.Normal(uint32(i))
			if _, err := fmt.Fprintf(bw, "%g %g %g %g %g %g\n", p.X, p.Y, p.Z, n.X, n.Y, n.Z); err != nil {
				return fmt.Errorf("%w: %v", ErrIO, err)
			}
		}
		for i := 0; i < t; i++ {
			a, b, c := m.Triangle(i)
			if _, err := fmt.Fprintf(bw, "3 %d %d %d\n", a, b, c); err != nil {
				return fmt.Errorf("%w: %v", ErrIO, err)
			}
		}
	} else {
		var buf [24]byte
		for i := 0; i < v; i++ {
			p, n := m.Position(uint32(i)), m.Normal(uint32(i))
			putFloat32LE(buf[0:4], float32(p.X))
			putFloat32LE(buf[4:8], float32(p.Y))
			putFloat32LE(buf[8:12], float32(p.Z))
			putFloat32LE(buf[12:16], float32(n.X))
			putFloat32LE(buf[16:20], float32(n.Y))
			putFloat32LE(buf[20:24], float32(n.Z))
			if _, err := bw.Write(buf[:]); err != nil {
				return fmt.Errorf("%w: %v", ErrIO, err)
			}
		}
		var fbuf [13]byte
		for i := 0; i < t; i++ {
			a, b, c := m.Triangle(i)
			fbuf[0] = 3
			binary.LittleEndian.PutUint32(fbuf[1:5], a)
			binary.LittleEndian.PutUint32(fbuf[5:9], b)
			binary.LittleEndian.PutUint32(fbuf[9:13], c)
			if _, err := bw.Write(fbuf[:]); err != nil {
				return fmt.Errorf("%w: %v", ErrIO, err)
			}
		}
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("%w: %v", ErrIO, err)
	}
	return nil
}

func putFloat32LE(b []byte, f float32) {
	binary.LittleEndian.PutUint32(b, math.Float32bits(f))
}

func float32LE(b []byte) float32 {
	return math.Float32frombits(binary.LittleEndian.Uint32(b))
}

// ReadPLY parses a binary_little_endian PLY file written by WritePLY. It
// exists primarily to support the round-trip invariant of section 8
// ("writing PLY then reading it back yields identical vertex and index
// arrays, modulo 32-bit precision"); it does not attempt to parse arbitrary
// third-party PLY files (no comment lines, no alternate property ordering).
func ReadPLY(r io.Reader) (Mesh, error) {
	br := bufio.NewReader(r)

	var vertexCount, faceCount int
	for {
		line, err := br.ReadString('\n')
		if err != nil {
			return Mesh{}, fmt.Errorf("%w: %v", ErrIO, err)
		}
		switch {
		case hasPrefix(line, "element vertex"):
			fmt.Sscanf(line, "element vertex %d", &vertexCount)
		case hasPrefix(line, "element face"):
			fmt.Sscanf(line, "element face %d", &faceCount)
		case hasPrefix(line, "end_header"):
			goto payload
		}
	}

payload:
	m := Mesh{
		Positions: make([]float64, 0, 3*vertexCount),
		Normals:   make([]float64, 0, 3*vertexCount),
		Indices:   make([]uint32, 0, 3*faceCount),
	}
	var vbuf [24]byte
	for i := 0; i < vertexCount; i++ {
		if _, err := io.ReadFull(br, vbuf[:]); err != nil {
			return Mesh{}, fmt.Errorf("%w: %v", ErrIO, err)
		}
		m.Positions = append(m.Positions,
			float64(float32LE(vbuf[0:4])), float64(float32LE(vbuf[4:8])), float64(float32LE(vbuf[8:12])))
		m.Normals = append(m.Normals,
			float64(float32LE(vbuf[12:16])), float64(float32LE(vbuf[16:20])), float64(float32LE(vbuf[20:24])))
	}
	var fbuf [13]byte
	for i := 0; i < faceCount; i++ {
		if _, err := io.ReadFull(br, fbuf[:]); err != nil {
			return Mesh{}, fmt.Errorf("%w: %v", ErrIO, err)
		}
		m.Indices = append(m.Indices,
			binary.LittleEndian.Uint32(fbuf[1:5]),
			binary.LittleEndian.Uint32(fbuf[5:9]),
			binary.LittleEndian.Uint32(fbuf[9:13]))
	}
	return m, nil
}

func hasPrefix(s, prefix string) bool {
	return len(s) >= len(prefix) && s[:len(prefix)] == prefix
}
