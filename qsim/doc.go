// Copyright 2025 Quantum-State-Visualizer Authors
// This file is part of the Quantum-State-Visualizer simulation core.

// Package qsim is the quantum circuit simulation core behind the Bloch
// sphere visualizer. It accepts OpenQASM 2.0 programs, routes each circuit to
// one of three simulation strategies, and reports, per qubit, a reduced 2x2
// density matrix with its Bloch vector and purity.
//
// The package is organized as a pipeline: parse -> validate -> route ->
// simulate -> postprocess -> report. The three strategies share one output
// contract:
//
//   - unitary: statevector evolution for measurement-free circuits up to 20
//     qubits; marginals are extracted directly from the pure state.
//   - exact_density: full density matrix evolution up to 8 qubits; handles
//     measure and reset as ensemble operations.
//   - trajectory: Monte-Carlo sampling of stochastic pure-state trajectories
//     with projective collapse, averaged over a requested shot count.
//
// Basis indices are little endian: bit i of a basis index carries qubit i.
// All numeric work is double-precision complex.
package qsim
