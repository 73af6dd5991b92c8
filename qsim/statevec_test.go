// Copyright 2025 Quantum-State-Visualizer Authors
// This file is part of the Quantum-State-Visualizer simulation core.

package qsim

import (
	"math"
	"math/cmplx"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewStatevector(t *testing.T) {
	s, err := newStatevector(3)
	require.Nil(t, err)
	assert.Len(t, s.amps, 8)
	assert.Equal(t, complex128(1), s.amps[0])

	_, err = newStatevector(25)
	require.NotNil(t, err)
	assert.Equal(t, KindResource, err.Kind)
}

func TestStatevectorSingleQubitGates(t *testing.T) {
	t.Run("x_flips", func(t *testing.T) {
		s, _ := newStatevector(1)
		require.Nil(t, s.applyGate(gateIns("x", 0)))
		assert.Equal(t, complex128(0), s.amps[0])
		assert.Equal(t, complex128(1), s.amps[1])
	})

	t.Run("h_makes_equal_superposition", func(t *testing.T) {
		s, _ := newStatevector(1)
		require.Nil(t, s.applyGate(gateIns("h", 0)))
		assert.InDelta(t, 1/math.Sqrt2, real(s.amps[0]), 1e-12)
		assert.InDelta(t, 1/math.Sqrt2, real(s.amps[1]), 1e-12)
	})

	t.Run("sx_twice_is_x", func(t *testing.T) {
		s, _ := newStatevector(1)
		require.Nil(t, s.applyGate(gateIns("sx", 0)))
		require.Nil(t, s.applyGate(gateIns("sx", 0)))
		assert.InDelta(t, 0, cmplx.Abs(s.amps[0]), 1e-12)
		assert.InDelta(t, 1, cmplx.Abs(s.amps[1]), 1e-12)
	})

	t.Run("u3_matches_ry", func(t *testing.T) {
		a, _ := newStatevector(1)
		b, _ := newStatevector(1)
		theta := 1.234
		require.Nil(t, a.applyGate(Instruction{Op: OpGate, Gate: "ry", Qubits: []int{0}, Params: []float64{theta}}))
		require.Nil(t, b.applyGate(Instruction{Op: OpGate, Gate: "u3", Qubits: []int{0}, Params: []float64{theta, 0, 0}}))
		for i := range a.amps {
			assert.InDelta(t, 0, cmplx.Abs(a.amps[i]-b.amps[i]), 1e-12)
		}
	})
}

func TestStatevectorTwoQubitGates(t *testing.T) {
	t.Run("cx_entangles", func(t *testing.T) {
		s, _ := newStatevector(2)
		require.Nil(t, s.applyGate(gateIns("h", 0)))
		require.Nil(t, s.applyGate(gateIns("cx", 0, 1)))
		// Bell state: |00> and |11> only.
		assert.InDelta(t, 1/math.Sqrt2, cmplx.Abs(s.amps[0]), 1e-12)
		assert.InDelta(t, 0, cmplx.Abs(s.amps[1]), 1e-12)
		assert.InDelta(t, 0, cmplx.Abs(s.amps[2]), 1e-12)
		assert.InDelta(t, 1/math.Sqrt2, cmplx.Abs(s.amps[3]), 1e-12)
	})

	t.Run("swap_moves_excitation", func(t *testing.T) {
		s, _ := newStatevector(2)
		require.Nil(t, s.applyGate(gateIns("x", 0)))
		require.Nil(t, s.applyGate(gateIns("swap", 0, 1)))
		assert.Equal(t, complex128(1), s.amps[2])
	})

	t.Run("ccx_needs_both_controls", func(t *testing.T) {
		s, _ := newStatevector(3)
		require.Nil(t, s.applyGate(gateIns("x", 0)))
		require.Nil(t, s.applyGate(gateIns("ccx", 0, 1, 2)))
		// Only one control set: target untouched.
		assert.Equal(t, complex128(1), s.amps[1])

		require.Nil(t, s.applyGate(gateIns("x", 1)))
		require.Nil(t, s.applyGate(gateIns("ccx", 0, 1, 2)))
		// Both controls set: target flips, state |111>.
		assert.Equal(t, complex128(1), s.amps[7])
	})
}

func TestCollapse(t *testing.T) {
	t.Run("deterministic_zero", func(t *testing.T) {
		s, _ := newStatevector(1)
		out := s.collapse(0, rand.New(rand.NewSource(1)))
		assert.Equal(t, 0, out)
		assert.Equal(t, complex128(1), s.amps[0])
	})

	t.Run("deterministic_one", func(t *testing.T) {
		s, _ := newStatevector(1)
		require.Nil(t, s.applyGate(gateIns("x", 0)))
		out := s.collapse(0, rand.New(rand.NewSource(1)))
		assert.Equal(t, 1, out)
		assert.Equal(t, complex128(1), s.amps[1])
	})

	t.Run("renormalizes_survivor", func(t *testing.T) {
		s, _ := newStatevector(1)
		require.Nil(t, s.applyGate(gateIns("h", 0)))
		s.collapse(0, rand.New(rand.NewSource(42)))
		norm := 0.0
		for _, a := range s.amps {
			norm += real(a)*real(a) + imag(a)*imag(a)
		}
		assert.InDelta(t, 1.0, norm, 1e-12)
	})

	t.Run("reset_returns_to_zero", func(t *testing.T) {
		for seed := int64(0); seed < 8; seed++ {
			s, _ := newStatevector(1)
			require.Nil(t, s.applyGate(gateIns("h", 0)))
			s.collapseReset(0, rand.New(rand.NewSource(seed)))
			assert.InDelta(t, 1, cmplx.Abs(s.amps[0]), 1e-12, "seed %d", seed)
			assert.InDelta(t, 0, cmplx.Abs(s.amps[1]), 1e-12, "seed %d", seed)
		}
	})
}

func TestReducedFromState(t *testing.T) {
	t.Run("bell_marginals_are_mixed", func(t *testing.T) {
		s, _ := newStatevector(2)
		require.Nil(t, s.applyGate(gateIns("h", 0)))
		require.Nil(t, s.applyGate(gateIns("cx", 0, 1)))
		for q := 0; q < 2; q++ {
			rho := reducedFromState(s.amps, q)
			assert.InDelta(t, 0.5, real(rho[0][0]), 1e-12)
			assert.InDelta(t, 0.5, real(rho[1][1]), 1e-12)
			assert.InDelta(t, 0, cmplx.Abs(rho[0][1]), 1e-12)
		}
	})

	t.Run("product_state_marginal_is_pure", func(t *testing.T) {
		s, _ := newStatevector(3)
		require.Nil(t, s.applyGate(gateIns("h", 1)))
		rho := reducedFromState(s.amps, 1)
		assert.InDelta(t, 0.5, real(rho[0][0]), 1e-12)
		assert.InDelta(t, 0.5, real(rho[0][1]), 1e-12)
		assert.InDelta(t, 1.0, purity(rho), 1e-12)
	})
}
