// Copyright 2025 Quantum-State-Visualizer Authors
// This file is part of the Quantum-State-Visualizer simulation core.

package qsim

import "math/cmplx"

// densityMatrix is a dense 2^n x 2^n mixed state, row major, little-endian
// basis. Owned exclusively by the exact-density pipeline for one run.
type densityMatrix struct {
	n   int
	dim int
	m   []complex128
}

// newDensityMatrix allocates |0...0><0...0| over n qubits.
func newDensityMatrix(n int) (*densityMatrix, *Error) {
	if n < 1 || n > maxDensityQubits {
		return nil, resourceErrorf("density matrix allocation refused for %d qubits (max %d)", n, maxDensityQubits)
	}
	dim := 1 << uint(n)
	m := make([]complex128, dim*dim)
	m[0] = 1
	return &densityMatrix{n: n, dim: dim, m: m}, nil
}

// applyMat conjugates the state by a single-qubit unitary embedded on qubit
// t: rho <- U rho U-dagger, realized as a row pass (left multiply) followed
// by a column pass (right multiply by the adjoint).
func (d *densityMatrix) applyMat(t int, u Mat2) {
	d.applyMatControlled(-1, t, u)
}

// applyMatControlled restricts both passes to rows/columns whose control bit
// is set; c < 0 means unconditioned.
func (d *densityMatrix) applyMatControlled(c, t int, u Mat2) {
	tbit := 1 << uint(t)
	cbit := 0
	if c >= 0 {
		cbit = 1 << uint(c)
	}
	// Left multiply rows.
	for r := 0; r < d.dim; r++ {
		if r&tbit != 0 || r&cbit != cbit {
			continue
		}
		r1 := r | tbit
		for col := 0; col < d.dim; col++ {
			a0, a1 := d.m[r*d.dim+col], d.m[r1*d.dim+col]
			d.m[r*d.dim+col] = u[0][0]*a0 + u[0][1]*a1
			d.m[r1*d.dim+col] = u[1][0]*a0 + u[1][1]*a1
		}
	}
	// Right multiply columns by the adjoint.
	for col := 0; col < d.dim; col++ {
		if col&tbit != 0 || col&cbit != cbit {
			continue
		}
		c1 := col | tbit
		for r := 0; r < d.dim; r++ {
			b0, b1 := d.m[r*d.dim+col], d.m[r*d.dim+c1]
			d.m[r*d.dim+col] = b0*cmplx.Conj(u[0][0]) + b1*cmplx.Conj(u[0][1])
			d.m[r*d.dim+c1] = b0*cmplx.Conj(u[1][0]) + b1*cmplx.Conj(u[1][1])
		}
	}
}

// permute applies a basis permutation to rows and columns.
func (d *densityMatrix) permute(perm func(int) int) {
	next := make([]complex128, len(d.m))
	for r := 0; r < d.dim; r++ {
		pr := perm(r)
		for col := 0; col < d.dim; col++ {
			next[pr*d.dim+perm(col)] = d.m[r*d.dim+col]
		}
	}
	d.m = next
}

// applyGate dispatches a whitelisted gate instruction onto the density
// matrix.
func (d *densityMatrix) applyGate(ins Instruction) *Error {
	switch ins.Gate {
	case "swap":
		abit := 1 << uint(ins.Qubits[0])
		bbit := 1 << uint(ins.Qubits[1])
		d.permute(func(i int) int {
			a := i & abit
			b := i & bbit
			if (a != 0) == (b != 0) {
				return i
			}
			return i ^ (abit | bbit)
		})
		return nil
	case "ccx":
		cbits := 1<<uint(ins.Qubits[0]) | 1<<uint(ins.Qubits[1])
		tbit := 1 << uint(ins.Qubits[2])
		d.permute(func(i int) int {
			if i&cbits == cbits {
				return i ^ tbit
			}
			return i
		})
		return nil
	case "cx", "cy", "cz", "ch":
		u, _ := singleQubitMatrix(ins.Gate, ins.Params)
		d.applyMatControlled(ins.Qubits[0], ins.Qubits[1], u)
		return nil
	}
	u, ok := singleQubitMatrix(ins.Gate, ins.Params)
	if !ok {
		return internalErrorf("no density kernel for gate %q", ins.Gate)
	}
	d.applyMat(ins.Qubits[0], u)
	return nil
}

// measure applies the ensemble view of a computational-basis measurement of
// qubit t: rho <- P0 rho P0 + P1 rho P1, which zeroes every coherence between
// the two subspaces. No outcome is recorded.
func (d *densityMatrix) measure(t int) {
	bit := 1 << uint(t)
	for r := 0; r < d.dim; r++ {
		for col := 0; col < d.dim; col++ {
			if r&bit != col&bit {
				d.m[r*d.dim+col] = 0
			}
		}
	}
}

// resetQubit measures qubit t and folds the bit=1 branch back onto bit=0:
// rho <- P0 rho P0 + X_t P1 rho P1 X_t.
func (d *densityMatrix) resetQubit(t int) {
	d.measure(t)
	bit := 1 << uint(t)
	for r := 0; r < d.dim; r++ {
		if r&bit != 0 {
			continue
		}
		for col := 0; col < d.dim; col++ {
			if col&bit != 0 {
				continue
			}
			d.m[r*d.dim+col] += d.m[(r|bit)*d.dim+(col|bit)]
		}
	}
	for r := 0; r < d.dim; r++ {
		for col := 0; col < d.dim; col++ {
			if r&bit != 0 || col&bit != 0 {
				d.m[r*d.dim+col] = 0
			}
		}
	}
}
