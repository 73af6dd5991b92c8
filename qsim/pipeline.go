// Copyright 2025 Quantum-State-Visualizer Authors
// This file is part of the Quantum-State-Visualizer simulation core.

package qsim

import "context"

// RunOptions carries the per-request knobs a pipeline may consume. Pipelines
// that do not sample ignore Shots and Seed.
type RunOptions struct {
	Shots   int     // requested trajectory count
	Seed    *uint64 // master seed for reproducible sampling, nil for entropy
	Workers int     // trajectory worker cap, 0 for automatic
}

// PipelineResult is the common output contract of the three strategies: one
// hermitized, trace-normalized 2x2 marginal per qubit.
type PipelineResult struct {
	RDMs      []Mat2
	ShotsUsed int // 0 for non-sampling pipelines
}

// Pipeline is the shared run signature. The set of implementations is closed:
// unitaryPipeline, exactDensityPipeline, trajectoryPipeline. Each run owns
// its state buffers exclusively and polls ctx between instructions (and
// between trajectories); a cancelled run discards all partial state.
type Pipeline interface {
	Kind() PipelineKind
	Run(ctx context.Context, circ *Circuit, opts RunOptions) (*PipelineResult, error)
}

// pipelineFor returns the implementation behind a routed kind.
func pipelineFor(kind PipelineKind) Pipeline {
	switch kind {
	case PipelineUnitary:
		return unitaryPipeline{}
	case PipelineExactDensity:
		return exactDensityPipeline{}
	case PipelineTrajectory:
		return trajectoryPipeline{}
	}
	return nil
}

// cancelErr maps a context failure to the Cancelled kind.
func cancelErr(ctx context.Context) *Error {
	if ctx.Err() == context.DeadlineExceeded {
		return cancelledError("simulation exceeded its wall-clock budget")
	}
	return cancelledError("simulation cancelled by caller")
}
