package render_test

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ifilot/gotessel/render"
)

func TestWriteSTLHeaderAndCount(t *testing.T) {
	m := sampleMesh()
	var buf bytes.Buffer
	require.NoError(t, render.WriteSTL(&buf, m))

	out := buf.Bytes()
	require.Len(t, out, 80+4+50*m.TriangleCount())

	count := binary.LittleEndian.Uint32(out[80:84])
	require.Equal(t, uint32(m.TriangleCount()), count)
}

func TestWriteSTLEmptyMesh(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, render.WriteSTL(&buf, render.Mesh{}))
	require.Len(t, buf.Bytes(), 84)
}
