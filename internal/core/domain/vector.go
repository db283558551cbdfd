package domain

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Vector is a fixed-length embedding produced by an embedding model.
// Components are float64 to match the precision of the stored text
// encoding.
type Vector []float64

// Encode serializes the vector as UTF-8 comma-joined decimal floats.
// This is the on-disk embedding format: each component is rendered
// with the shortest representation that round-trips exactly, so
// Decode(Encode(v)) reproduces v bit-for-bit for finite values.
func (v Vector) Encode() []byte {
	if len(v) == 0 {
		return nil
	}

	var b strings.Builder
	for i, f := range v {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.FormatFloat(f, 'g', -1, 64))
	}
	return []byte(b.String())
}

// DecodeVector parses the comma-joined decimal encoding produced by
// Encode. Malformed components are an error, not a zero substitute: a
// chunk row with an unreadable embedding must surface, because scoring
// it with a fabricated vector would silently corrupt rankings.
func DecodeVector(data []byte) (Vector, error) {
	if len(data) == 0 {
		return nil, nil
	}

	fields := strings.Split(string(data), ",")
	v := make(Vector, len(fields))
	for i, field := range fields {
		f, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
		if err != nil {
			return nil, fmt.Errorf("component %d: %w", i, err)
		}
		v[i] = f
	}
	return v, nil
}

// CosineSimilarity returns the cosine of the angle between a and b in
// [-1, 1]. A zero-norm operand yields 0.0 by policy; degenerate
// vectors are a valid "no signal" case, not an error. Vectors of
// different lengths score on the shorter prefix of the dot product
// only when lengths match; mismatched lengths yield 0.0 as well since
// they cannot come from the same embedding model.
func CosineSimilarity(a, b Vector) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0.0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}

	if normA == 0 || normB == 0 {
		return 0.0
	}

	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
