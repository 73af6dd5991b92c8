// Copyright 2025 Quantum-State-Visualizer Authors
// This file is part of the Quantum-State-Visualizer simulation core.

package qsim

import (
	"context"
	"math/cmplx"
	"testing"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runDensity(t *testing.T, src string) *PipelineResult {
	t.Helper()
	res, err := exactDensityPipeline{}.Run(context.Background(), parseCirc(t, src), RunOptions{})
	require.NoError(t, err)
	return res
}

func TestExactDensityMeasuredBell(t *testing.T) {
	res := runDensity(t, heredoc.Doc(`
		OPENQASM 2.0;
		include "qelib1.inc";
		qreg q[2];
		creg c[1];
		h q[0];
		cx q[0], q[1];
		measure q[0] -> c[0];
	`))
	require.Len(t, res.RDMs, 2)
	assert.Equal(t, 0, res.ShotsUsed)
	for q, rho := range res.RDMs {
		x, y, z := blochVector(rho)
		assert.InDelta(t, 0, x, 1e-10, "qubit %d", q)
		assert.InDelta(t, 0, y, 1e-10, "qubit %d", q)
		assert.InDelta(t, 0, z, 1e-10, "qubit %d", q)
		assert.InDelta(t, 0.5, purity(rho), 1e-10, "qubit %d", q)
		assert.InDelta(t, 0.5, real(rho[0][0]), 1e-10)
		assert.InDelta(t, 0.5, real(rho[1][1]), 1e-10)
		assert.InDelta(t, 0, cmplx.Abs(rho[0][1]), 1e-10)
	}
}

func TestExactDensityReset(t *testing.T) {
	res := runDensity(t, heredoc.Doc(`
		OPENQASM 2.0;
		include "qelib1.inc";
		qreg q[1];
		h q[0];
		reset q[0];
	`))
	rho := res.RDMs[0]
	x, y, z := blochVector(rho)
	assert.InDelta(t, 0, x, 1e-10)
	assert.InDelta(t, 0, y, 1e-10)
	assert.InDelta(t, 1, z, 1e-10)
	assert.InDelta(t, 1, purity(rho), 1e-10)
	assert.InDelta(t, 1, real(rho[0][0]), 1e-10)
	assert.InDelta(t, 0, cmplx.Abs(rho[1][1]), 1e-10)
}

func TestExactDensityMeasureThenGate(t *testing.T) {
	// A gate after measurement acts on the decohered ensemble: measuring |+>
	// gives I/2, and a following h leaves I/2 invariant.
	res := runDensity(t, heredoc.Doc(`
		OPENQASM 2.0;
		include "qelib1.inc";
		qreg q[1];
		creg c[1];
		h q[0];
		measure q[0] -> c[0];
		h q[0];
	`))
	rho := res.RDMs[0]
	assert.InDelta(t, 0.5, real(rho[0][0]), 1e-10)
	assert.InDelta(t, 0.5, real(rho[1][1]), 1e-10)
	assert.InDelta(t, 0, cmplx.Abs(rho[0][1]), 1e-10)
	assert.InDelta(t, 0.5, purity(rho), 1e-10)
}

func TestExactDensityUnitaryCircuit(t *testing.T) {
	// The pipeline also accepts purely unitary input within its budget.
	res := runDensity(t, heredoc.Doc(`
		OPENQASM 2.0;
		include "qelib1.inc";
		qreg q[1];
		h q[0];
	`))
	x, _, _ := blochVector(res.RDMs[0])
	assert.InDelta(t, 1, x, 1e-10)
}

func TestExactDensityCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := exactDensityPipeline{}.Run(ctx, parseCirc(t, heredoc.Doc(`
		OPENQASM 2.0;
		include "qelib1.inc";
		qreg q[1];
		h q[0];
	`)), RunOptions{})
	requireKind(t, err, KindCancelled)
}
