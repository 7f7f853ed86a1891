package render

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
)

// WriteSTL serializes m as a binary STL file, per section 6.3: an 80-byte
// (ignored) header, a little-endian uint32 triangle count, then per
// triangle a float32 face normal, three float32 vertex positions, and a
// trailing uint16 attribute byte count (always zero here).
func WriteSTL(w io.Writer, m Mesh) error {
	bw := bufio.NewWriter(w)

	var header [80]byte
	copy(header[:], "gotessel binary STL")
	if _, err := bw.Write(header[:]); err != nil {
		return fmt.Errorf("%w: %v", ErrIO, err)
	}

	var countBuf [4]byte
	binary.LittleEndian.PutUint32(countBuf[:], uint32(m.TriangleCount()))
	if _, err := bw.Write(countBuf[:]); err != nil {
		return fmt.Errorf("%w: %v", ErrIO, err)
	}

	var rec [50]byte
	for t := 0; t < m.TriangleCount(); t++ {
		a, b, c := m.Triangle(t)
		n := m.FaceNormal(t)
		pa, pb, pc := m.Position(a), m.Position(b), m.Position(c)

		putFloat32LE(rec[0:4], float32(n.X))
		putFloat32LE(rec[4:8], float32(n.Y))
		putFloat32LE(rec[8:12], float32(n.Z))

		putFloat32LE(rec[12:16], float32(pa.X))
		putFloat32LE(rec[16:20], float32(pa.Y))
		putFloat32LE(rec[20:24], float32(pa.Z))

		putFloat32LE(rec[24:28], float32(pb.X))
		putFloat32LE(rec[28:32], float32(pb.Y))
		putFloat32LE(rec[32:36], float32(pb.Z))

		putFloat32LE(rec[36:40], float32(pc.X))
		putFloat32LE(rec[40:44], float32(pc.Y))
		putFloat32LE(rec[44:48], float32(pc.Z))

		rec[48], rec[49] = 0, 0

		if _, err := bw.Write(rec[:]); err != nil {
			return fmt.Errorf("%w: %v", ErrIO, err)
		}
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("%w: %v", ErrIO, err)
	}
	return nil
}
