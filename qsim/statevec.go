// Copyright 2025 Quantum-State-Visualizer Authors
// This file is part of the Quantum-State-Visualizer simulation core.

package qsim

import (
	"math"
	"math/rand"
)

// statevector is a dense pure state over n qubits in the little-endian basis
// convention: basis index bit i carries qubit i. It is owned exclusively by
// the pipeline that allocated it.
type statevector struct {
	n    int
	amps []complex128
}

// newStatevector allocates |0...0> over n qubits.
func newStatevector(n int) (*statevector, *Error) {
	if n < 1 || n > MaxQubits {
		return nil, resourceErrorf("statevector allocation refused for %d qubits (max %d)", n, MaxQubits)
	}
	amps := make([]complex128, 1<<uint(n))
	amps[0] = 1
	return &statevector{n: n, amps: amps}, nil
}

// reset returns the state to |0...0> without reallocating.
func (s *statevector) reset() {
	for i := range s.amps {
		s.amps[i] = 0
	}
	s.amps[0] = 1
}

// applyMat applies a 2x2 unitary to qubit t: every basis pair differing only
// in bit t is replaced by its image under u.
func (s *statevector) applyMat(t int, u Mat2) {
	bit := 1 << uint(t)
	for i := range s.amps {
		if i&bit == 0 {
			j := i | bit
			a0, a1 := s.amps[i], s.amps[j]
			s.amps[i] = u[0][0]*a0 + u[0][1]*a1
			s.amps[j] = u[1][0]*a0 + u[1][1]*a1
		}
	}
}

// applyControlled applies the target-side 2x2 block only where the control
// bit is set.
func (s *statevector) applyControlled(c, t int, u Mat2) {
	cbit := 1 << uint(c)
	tbit := 1 << uint(t)
	for i := range s.amps {
		if i&cbit != 0 && i&tbit == 0 {
			j := i | tbit
			a0, a1 := s.amps[i], s.amps[j]
			s.amps[i] = u[0][0]*a0 + u[0][1]*a1
			s.amps[j] = u[1][0]*a0 + u[1][1]*a1
		}
	}
}

// applyCCX flips the target bit where both control bits are set.
func (s *statevector) applyCCX(c1, c2, t int) {
	cbits := 1<<uint(c1) | 1<<uint(c2)
	tbit := 1 << uint(t)
	for i := range s.amps {
		if i&cbits == cbits && i&tbit == 0 {
			j := i | tbit
			s.amps[i], s.amps[j] = s.amps[j], s.amps[i]
		}
	}
}

// applySwap exchanges amplitudes between basis indices differing exactly in
// bits a and b.
func (s *statevector) applySwap(a, b int) {
	abit := 1 << uint(a)
	bbit := 1 << uint(b)
	for i := range s.amps {
		if i&abit != 0 && i&bbit == 0 {
			j := i &^ abit | bbit
			s.amps[i], s.amps[j] = s.amps[j], s.amps[i]
		}
	}
}

// applyGate dispatches a whitelisted gate instruction.
func (s *statevector) applyGate(ins Instruction) *Error {
	switch ins.Gate {
	case "swap":
		s.applySwap(ins.Qubits[0], ins.Qubits[1])
		return nil
	case "ccx":
		s.applyCCX(ins.Qubits[0], ins.Qubits[1], ins.Qubits[2])
		return nil
	case "cx", "cy", "cz", "ch":
		u, _ := singleQubitMatrix(ins.Gate, ins.Params)
		s.applyControlled(ins.Qubits[0], ins.Qubits[1], u)
		return nil
	}
	u, ok := singleQubitMatrix(ins.Gate, ins.Params)
	if !ok {
		return internalErrorf("no statevector kernel for gate %q", ins.Gate)
	}
	s.applyMat(ins.Qubits[0], u)
	return nil
}

// probZero returns the probability of measuring qubit t as 0.
func (s *statevector) probZero(t int) float64 {
	bit := 1 << uint(t)
	p0 := 0.0
	for i, a := range s.amps {
		if i&bit == 0 {
			p0 += real(a)*real(a) + imag(a)*imag(a)
		}
	}
	return p0
}

// collapse performs a projective measurement of qubit t, drawing the outcome
// from rng, zeroing the losing branch and renormalizing the survivor. The
// degenerate probabilities 0 and 1 pass through without scaling.
func (s *statevector) collapse(t int, rng *rand.Rand) int {
	bit := 1 << uint(t)
	p0 := s.probZero(t)

	outcome := 1
	keep := 1 - p0
	if rng.Float64() < p0 {
		outcome = 0
		keep = p0
	}

	scale := complex(1, 0)
	if keep > 0 && math.Abs(keep-1) > 1e-15 {
		scale = complex(1/math.Sqrt(keep), 0)
	}
	for i := range s.amps {
		if (i&bit != 0) == (outcome == 0) {
			s.amps[i] = 0
		} else {
			s.amps[i] *= scale
		}
	}
	return outcome
}

// collapseReset measures qubit t and, on outcome 1, applies X to move the
// surviving weight back to the 0 subspace.
func (s *statevector) collapseReset(t int, rng *rand.Rand) {
	if s.collapse(t, rng) == 1 {
		u, _ := singleQubitMatrix("x", nil)
		s.applyMat(t, u)
	}
}
