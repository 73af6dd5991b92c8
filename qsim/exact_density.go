// Copyright 2025 Quantum-State-Visualizer Authors
// This file is part of the Quantum-State-Visualizer simulation core.

package qsim

import (
	"context"

	"github.com/ethereum/go-ethereum/log"
)

// exactDensityPipeline evolves the full density matrix, keeping the ensemble
// average at measurements instead of sampling outcomes. Exact for any circuit
// within its qubit budget, unitary or not.
type exactDensityPipeline struct{}

func (exactDensityPipeline) Kind() PipelineKind { return PipelineExactDensity }

func (exactDensityPipeline) Run(ctx context.Context, circ *Circuit, _ RunOptions) (*PipelineResult, error) {
	rho, aerr := newDensityMatrix(circ.NumQubits)
	if aerr != nil {
		return nil, aerr
	}

	for _, ins := range circ.Instructions {
		if ctx.Err() != nil {
			return nil, cancelErr(ctx)
		}
		switch ins.Op {
		case OpGate:
			if err := rho.applyGate(ins); err != nil {
				return nil, err
			}
		case OpMeasure:
			rho.measure(ins.Qubits[0])
		case OpReset:
			rho.resetQubit(ins.Qubits[0])
		case OpBarrier:
			// no-op
		}
	}

	rdms := make([]Mat2, circ.NumQubits)
	for q := 0; q < circ.NumQubits; q++ {
		if ctx.Err() != nil {
			return nil, cancelErr(ctx)
		}
		out, err := hermitizeAndNormalize(reducedFromDensity(rho.m, rho.dim, q), q)
		if err != nil {
			return nil, err
		}
		rdms[q] = out
	}

	log.Debug("exact density pipeline finished", "qubits", circ.NumQubits, "ops", len(circ.Instructions))
	return &PipelineResult{RDMs: rdms}, nil
}
