// Copyright 2025 Quantum-State-Visualizer Authors
// This file is part of the Quantum-State-Visualizer simulation core.

package qsim

import (
	"math"
	"math/cmplx"
)

// Mat2 is a dense 2x2 complex matrix, row major.
type Mat2 [2][2]complex128

func (m Mat2) mul(o Mat2) Mat2 {
	return Mat2{
		{m[0][0]*o[0][0] + m[0][1]*o[1][0], m[0][0]*o[0][1] + m[0][1]*o[1][1]},
		{m[1][0]*o[0][0] + m[1][1]*o[1][0], m[1][0]*o[0][1] + m[1][1]*o[1][1]},
	}
}

func (m Mat2) adjoint() Mat2 {
	return Mat2{
		{cmplx.Conj(m[0][0]), cmplx.Conj(m[1][0])},
		{cmplx.Conj(m[0][1]), cmplx.Conj(m[1][1])},
	}
}

func (m Mat2) trace() complex128 { return m[0][0] + m[1][1] }

// singleQubitMatrix returns the 2x2 matrix for a whitelisted single-qubit
// gate. For the controlled two-qubit gates it returns the target-side block
// (cx -> x, cy -> y, cz -> z, ch -> h). The second return is false for
// mnemonics without a 2x2 representation (swap, ccx, non-gates).
func singleQubitMatrix(name string, params []float64) (Mat2, bool) {
	invSqrt2 := complex(1/math.Sqrt2, 0)
	switch name {
	case "id":
		return Mat2{{1, 0}, {0, 1}}, true
	case "h", "ch":
		return Mat2{{invSqrt2, invSqrt2}, {invSqrt2, -invSqrt2}}, true
	case "x", "cx":
		return Mat2{{0, 1}, {1, 0}}, true
	case "y", "cy":
		return Mat2{{0, -1i}, {1i, 0}}, true
	case "z", "cz":
		return Mat2{{1, 0}, {0, -1}}, true
	case "s":
		return Mat2{{1, 0}, {0, 1i}}, true
	case "sdg":
		return Mat2{{1, 0}, {0, -1i}}, true
	case "t":
		return Mat2{{1, 0}, {0, cmplx.Exp(complex(0, math.Pi/4))}}, true
	case "tdg":
		return Mat2{{1, 0}, {0, cmplx.Exp(complex(0, -math.Pi/4))}}, true
	case "sx":
		// sqrt(X): ((1+i)/2) * [[1, -i], [-i, 1]]
		a := complex(0.5, 0.5)
		b := complex(0.5, -0.5)
		return Mat2{{a, b}, {b, a}}, true
	case "rx":
		c := complex(math.Cos(params[0]/2), 0)
		s := complex(0, -math.Sin(params[0]/2))
		return Mat2{{c, s}, {s, c}}, true
	case "ry":
		c := complex(math.Cos(params[0]/2), 0)
		s := complex(math.Sin(params[0]/2), 0)
		return Mat2{{c, -s}, {s, c}}, true
	case "rz":
		p := cmplx.Exp(complex(0, params[0]/2))
		return Mat2{{cmplx.Conj(p), 0}, {0, p}}, true
	case "u1", "p":
		return Mat2{{1, 0}, {0, cmplx.Exp(complex(0, params[0]))}}, true
	case "u2":
		phi, lam := params[0], params[1]
		return Mat2{
			{invSqrt2, -invSqrt2 * cmplx.Exp(complex(0, lam))},
			{invSqrt2 * cmplx.Exp(complex(0, phi)), invSqrt2 * cmplx.Exp(complex(0, phi+lam))},
		}, true
	case "u3":
		theta, phi, lam := params[0], params[1], params[2]
		c := complex(math.Cos(theta/2), 0)
		s := complex(math.Sin(theta/2), 0)
		return Mat2{
			{c, -s * cmplx.Exp(complex(0, lam))},
			{s * cmplx.Exp(complex(0, phi)), c * cmplx.Exp(complex(0, phi+lam))},
		}, true
	}
	return Mat2{}, false
}
