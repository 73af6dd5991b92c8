// Copyright 2025 Quantum-State-Visualizer Authors
// This file is part of the Quantum-State-Visualizer simulation core.

package qsim

import (
	"context"

	"github.com/ethereum/go-ethereum/log"
)

// unitaryPipeline evolves a statevector and extracts every per-qubit marginal
// without materializing the full density matrix. It only accepts circuits
// free of measure and reset.
type unitaryPipeline struct{}

func (unitaryPipeline) Kind() PipelineKind { return PipelineUnitary }

func (unitaryPipeline) Run(ctx context.Context, circ *Circuit, _ RunOptions) (*PipelineResult, error) {
	state, aerr := newStatevector(circ.NumQubits)
	if aerr != nil {
		return nil, aerr
	}

	for _, ins := range circ.Instructions {
		if ctx.Err() != nil {
			return nil, cancelErr(ctx)
		}
		switch ins.Op {
		case OpGate:
			if err := state.applyGate(ins); err != nil {
				return nil, err
			}
		case OpBarrier:
			// no-op
		default:
			return nil, internalErrorf("unitary pipeline received non-unitary instruction at line %d", ins.Line)
		}
	}

	rdms := make([]Mat2, circ.NumQubits)
	for q := 0; q < circ.NumQubits; q++ {
		if ctx.Err() != nil {
			return nil, cancelErr(ctx)
		}
		rho, err := hermitizeAndNormalize(reducedFromState(state.amps, q), q)
		if err != nil {
			return nil, err
		}
		rdms[q] = rho
	}

	log.Debug("unitary pipeline finished", "qubits", circ.NumQubits, "ops", len(circ.Instructions))
	return &PipelineResult{RDMs: rdms}, nil
}
