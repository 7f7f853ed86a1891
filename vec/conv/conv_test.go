package conv_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ifilot/gotessel/vec/conv"
	"github.com/ifilot/gotessel/vec/v3"
	"github.com/ifilot/gotessel/vec/v3i"
)

func TestV3ToV3iTruncates(t *testing.T) {
	require.Equal(t, v3i.Vec{X: 1, Y: -2, Z: 3}, conv.V3ToV3i(v3.Vec{X: 1.9, Y: -2.9, Z: 3.0}))
}

func TestV3iToV3Widens(t *testing.T) {
	require.Equal(t, v3.Vec{X: 1, Y: -2, Z: 3}, conv.V3iToV3(v3i.Vec{X: 1, Y: -2, Z: 3}))
}

func TestRoundTripOnIntegers(t *testing.T) {
	d := v3i.Vec{X: 5, Y: 6, Z: 7}
	require.Equal(t, d, conv.V3ToV3i(conv.V3iToV3(d)))
}
