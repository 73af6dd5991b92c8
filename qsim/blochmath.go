// Copyright 2025 Quantum-State-Visualizer Authors
// This file is part of the Quantum-State-Visualizer simulation core.

package qsim

import (
	"math"
	"math/cmplx"
)

// Numerical hygiene tolerances shared by the pipelines and the result
// assembler.
const (
	normTolerance  = 1e-8  // trace drift allowed before normalization fails
	traceTolerance = 1e-6  // post-run trace invariant
	hermTolerance  = 1e-9  // post-run hermiticity invariant
	psdTolerance   = 1e-9  // eigenvalue floor for positive semidefiniteness
	blochTolerance = 1e-9  // Bloch norm overshoot before rescaling
	clipThreshold  = 1e-12 // magnitudes at or below this report as exact zero
)

// blochVector maps a 2x2 density matrix to Bloch coordinates:
// x = 2 Re rho01, y = -2 Im rho01, z = Re(rho00 - rho11).
func blochVector(rho Mat2) (x, y, z float64) {
	x = 2 * real(rho[0][1])
	y = -2 * imag(rho[0][1])
	z = real(rho[0][0] - rho[1][1])
	return clipTiny(x), clipTiny(y), clipTiny(z)
}

// purity computes Tr(rho^2), clamped into [0, 1].
func purity(rho Mat2) float64 {
	p := real(rho.mul(rho).trace())
	if p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}

// hermitize symmetrizes rho into (rho + rho-dagger)/2.
func hermitize(rho Mat2) Mat2 {
	adj := rho.adjoint()
	return Mat2{
		{(rho[0][0] + adj[0][0]) / 2, (rho[0][1] + adj[0][1]) / 2},
		{(rho[1][0] + adj[1][0]) / 2, (rho[1][1] + adj[1][1]) / 2},
	}
}

// hermitizeAndNormalize applies the shared post-extraction cleanup: symmetrize
// and divide by the real trace. Trace drift beyond normTolerance indicates a
// kernel bug or extreme degeneracy and fails the run.
func hermitizeAndNormalize(rho Mat2, qubit int) (Mat2, *Error) {
	h := hermitize(rho)
	tr := real(h.trace())
	if math.Abs(tr-1) > normTolerance {
		return Mat2{}, numericalErrorf("qubit %d marginal trace drifted to %.3e", qubit, tr)
	}
	s := complex(1/tr, 0)
	return Mat2{
		{h[0][0] * s, h[0][1] * s},
		{h[1][0] * s, h[1][1] * s},
	}, nil
}

// minEigenvalue returns the smaller eigenvalue of a Hermitian 2x2 matrix via
// the closed form (tr - sqrt(tr^2 - 4 det)) / 2.
func minEigenvalue(rho Mat2) float64 {
	tr := real(rho.trace())
	det := real(rho[0][0]*rho[1][1] - rho[0][1]*rho[1][0])
	disc := tr*tr - 4*det
	if disc < 0 {
		disc = 0
	}
	return (tr - math.Sqrt(disc)) / 2
}

// maxHermDefect returns the largest entry-wise deviation of rho from its
// adjoint.
func maxHermDefect(rho Mat2) float64 {
	adj := rho.adjoint()
	max := 0.0
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			if d := cmplx.Abs(rho[i][j] - adj[i][j]); d > max {
				max = d
			}
		}
	}
	return max
}

// clipTiny reports values of magnitude at or below clipThreshold as exact
// zero.
func clipTiny(v float64) float64 {
	if math.Abs(v) <= clipThreshold {
		return 0
	}
	return v
}

// clipMat applies clipTiny to both components of every entry.
func clipMat(rho Mat2) Mat2 {
	var out Mat2
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			out[i][j] = complex(clipTiny(real(rho[i][j])), clipTiny(imag(rho[i][j])))
		}
	}
	return out
}

// clampBloch rescales a Bloch vector to unit norm when it overshoots the
// sphere by more than blochTolerance; smaller overshoots pass through.
func clampBloch(x, y, z float64) (float64, float64, float64) {
	norm := math.Sqrt(x*x + y*y + z*z)
	if norm > 1+blochTolerance {
		x, y, z = x/norm, y/norm, z/norm
	}
	return x, y, z
}
