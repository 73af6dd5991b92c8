// Copyright 2025 Quantum-State-Visualizer Authors
// This file is part of the Quantum-State-Visualizer simulation core.

package qsim

import "math/cmplx"

// reducedFromState computes the reduced density matrix of one qubit from a
// pure state. Viewing the amplitude vector as an n-axis tensor with the
// target axis moved to the front and the rest flattened, the state becomes a
// 2 x 2^(n-1) matrix V and the marginal is V V-dagger; with the little-endian
// index split that product reduces to three dot products over the basis pairs
// (i, i|bit), so no 4^n intermediate is ever built.
func reducedFromState(amps []complex128, target int) Mat2 {
	bit := 1 << uint(target)
	var r00, r01, r11 complex128
	for i, a0 := range amps {
		if i&bit == 0 {
			a1 := amps[i|bit]
			r00 += a0 * cmplx.Conj(a0)
			r01 += a0 * cmplx.Conj(a1)
			r11 += a1 * cmplx.Conj(a1)
		}
	}
	return Mat2{{r00, r01}, {cmplx.Conj(r01), r11}}
}

// reducedFromDensity traces every qubit except target out of a dense density
// matrix (row-major, dim x dim): entry [a][b] sums rho rows/columns whose
// target bit is a/b and whose remaining bits agree.
func reducedFromDensity(rho []complex128, dim, target int) Mat2 {
	bit := 1 << uint(target)
	var out Mat2
	for i := 0; i < dim; i++ {
		if i&bit != 0 {
			continue
		}
		out[0][0] += rho[i*dim+i]
		out[0][1] += rho[i*dim+(i|bit)]
		out[1][0] += rho[(i|bit)*dim+i]
		out[1][1] += rho[(i|bit)*dim+(i|bit)]
	}
	return out
}
