package domain

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVectorEncodeDecodeRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		vec  Vector
	}{
		{name: "empty", vec: nil},
		{name: "single", vec: Vector{0.5}},
		{name: "typical", vec: Vector{0.1, -0.25, 3.0, 0}},
		{name: "full precision", vec: Vector{0.1234567890123456, -1e-17, math.MaxFloat64, math.SmallestNonzeroFloat64}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			decoded, err := DecodeVector(tt.vec.Encode())
			require.NoError(t, err)
			assert.Equal(t, tt.vec, decoded)
		})
	}
}

func TestVectorEncodeFormat(t *testing.T) {
	// The on-disk format is plain comma-joined decimal text.
	assert.Equal(t, "0.5,-1,2.25", string(Vector{0.5, -1, 2.25}.Encode()))
}

func TestDecodeVectorMalformed(t *testing.T) {
	_, err := DecodeVector([]byte("0.5,oops,1"))
	assert.Error(t, err)
}

func TestCosineSimilarity(t *testing.T) {
	a := Vector{1, 2, 3}
	b := Vector{-2, 0.5, 4}

	t.Run("symmetric", func(t *testing.T) {
		assert.Equal(t, CosineSimilarity(a, b), CosineSimilarity(b, a))
	})

	t.Run("self similarity is one", func(t *testing.T) {
		assert.InDelta(t, 1.0, CosineSimilarity(a, a), 1e-12)
	})

	t.Run("zero vector scores zero", func(t *testing.T) {
		zero := Vector{0, 0, 0}
		assert.Equal(t, 0.0, CosineSimilarity(a, zero))
		assert.Equal(t, 0.0, CosineSimilarity(zero, a))
		assert.Equal(t, 0.0, CosineSimilarity(zero, zero))
	})

	t.Run("orthogonal vectors score zero", func(t *testing.T) {
		assert.InDelta(t, 0.0, CosineSimilarity(Vector{1, 0}, Vector{0, 1}), 1e-12)
	})

	t.Run("opposite vectors score minus one", func(t *testing.T) {
		assert.InDelta(t, -1.0, CosineSimilarity(a, Vector{-1, -2, -3}), 1e-12)
	})

	t.Run("length mismatch scores zero", func(t *testing.T) {
		assert.Equal(t, 0.0, CosineSimilarity(Vector{1, 2}, Vector{1, 2, 3}))
	})
}
