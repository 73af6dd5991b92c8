// Copyright 2025 Quantum-State-Visualizer Authors
// This file is part of the Quantum-State-Visualizer simulation core.

package qsim

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBlochVector(t *testing.T) {
	tests := []struct {
		name    string
		rho     Mat2
		x, y, z float64
	}{
		{name: "ground", rho: Mat2{{1, 0}, {0, 0}}, z: 1},
		{name: "excited", rho: Mat2{{0, 0}, {0, 1}}, z: -1},
		{name: "plus", rho: Mat2{{0.5, 0.5}, {0.5, 0.5}}, x: 1},
		{name: "minus_i", rho: Mat2{{0.5, 0.5i}, {-0.5i, 0.5}}, y: -1},
		{name: "maximally_mixed", rho: Mat2{{0.5, 0}, {0, 0.5}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x, y, z := blochVector(tt.rho)
			assert.InDelta(t, tt.x, x, 1e-12)
			assert.InDelta(t, tt.y, y, 1e-12)
			assert.InDelta(t, tt.z, z, 1e-12)
		})
	}
}

func TestPurity(t *testing.T) {
	assert.InDelta(t, 1.0, purity(Mat2{{1, 0}, {0, 0}}), 1e-12)
	assert.InDelta(t, 0.5, purity(Mat2{{0.5, 0}, {0, 0.5}}), 1e-12)
	assert.InDelta(t, 1.0, purity(Mat2{{0.5, 0.5}, {0.5, 0.5}}), 1e-12)
	// Clamped to [0, 1] even for slightly overshooting input.
	assert.Equal(t, 1.0, purity(Mat2{{1.0000001, 0}, {0, 0}}))
}

func TestHermitizeAndNormalize(t *testing.T) {
	skew := Mat2{{0.5, 0.2 + 0.1i}, {0.2 - 0.3i, 0.5}}
	out, err := hermitizeAndNormalize(skew, 0)
	require.Nil(t, err)
	assert.InDelta(t, 1.0, real(out.trace()), 1e-12)
	assert.Equal(t, out[0][1], out.adjoint()[0][1])
	assert.InDelta(t, 0.2, real(out[0][1]), 1e-12)
	assert.InDelta(t, 0.2, imag(out[0][1]), 1e-12)

	_, err = hermitizeAndNormalize(Mat2{{0.7, 0}, {0, 0.2}}, 3)
	require.NotNil(t, err)
	assert.Equal(t, KindNumerical, err.Kind)
}

func TestMinEigenvalue(t *testing.T) {
	assert.InDelta(t, 0.0, minEigenvalue(Mat2{{1, 0}, {0, 0}}), 1e-12)
	assert.InDelta(t, 0.5, minEigenvalue(Mat2{{0.5, 0}, {0, 0.5}}), 1e-12)
	// Pure |+> state: eigenvalues 0 and 1.
	assert.InDelta(t, 0.0, minEigenvalue(Mat2{{0.5, 0.5}, {0.5, 0.5}}), 1e-12)
	// Indefinite matrix with unit trace.
	assert.Less(t, minEigenvalue(Mat2{{1.0, 0.6}, {0.6, 0.0}}), -1e-3)
}

func TestClipTiny(t *testing.T) {
	assert.Equal(t, 0.0, clipTiny(1e-13))
	assert.Equal(t, 0.0, clipTiny(-1e-13))
	assert.Equal(t, 1e-11, clipTiny(1e-11))
	m := clipMat(Mat2{{complex(1, 1e-15), 0}, {0, complex(-1e-14, 0.25)}})
	assert.Equal(t, complex(1, 0), m[0][0])
	assert.Equal(t, complex(0, 0.25), m[1][1])
}

func TestClampBloch(t *testing.T) {
	// Inside the sphere: untouched.
	x, y, z := clampBloch(0.3, 0, 0.4)
	assert.Equal(t, 0.3, x)
	assert.Equal(t, 0.4, z)

	// Tiny overshoot tolerated.
	x, _, _ = clampBloch(1+5e-10, 0, 0)
	assert.Equal(t, 1+5e-10, x)

	// Larger overshoot rescaled to the unit sphere.
	x, y, z = clampBloch(1.1, 0, 0)
	assert.InDelta(t, 1.0, math.Sqrt(x*x+y*y+z*z), 1e-12)
}

func TestPurityBlochConsistency(t *testing.T) {
	// purity == (1 + |bloch|^2) / 2 for any valid 2x2 state.
	states := []Mat2{
		{{1, 0}, {0, 0}},
		{{0.5, 0.5}, {0.5, 0.5}},
		{{0.5, 0}, {0, 0.5}},
		{{0.75, 0.25i}, {-0.25i, 0.25}},
	}
	for _, rho := range states {
		x, y, z := blochVector(rho)
		want := (1 + x*x + y*y + z*z) / 2
		assert.InDelta(t, want, purity(rho), 1e-6)
	}
}
