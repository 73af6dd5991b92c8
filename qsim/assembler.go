// Copyright 2025 Quantum-State-Visualizer Authors
// This file is part of the Quantum-State-Visualizer simulation core.

package qsim

import (
	"fmt"
	"io"
	"math"

	jsoniter "github.com/json-iterator/go"
)

// WireComplex is a complex number in the external [re, im] representation.
type WireComplex [2]float64

// QubitState is the per-qubit entry of a simulation response.
type QubitState struct {
	ID            int               `json:"id"`
	Label         string            `json:"label"`
	BlochCoords   [3]float64        `json:"bloch_coords"`
	Purity        float64           `json:"purity"`
	DensityMatrix [2][2]WireComplex `json:"density_matrix"`
}

// Response is the full result record of one simulation.
type Response struct {
	Qubits               []QubitState `json:"qubits"`
	PipelineUsed         PipelineKind `json:"pipeline_used"`
	ExecutionTimeSeconds float64      `json:"execution_time_seconds"`
	ShotsUsed            int          `json:"shots_used"`
	CircuitInfo          CircuitInfo  `json:"circuit_info"`
}

var wireJSON = jsoniter.ConfigCompatibleWithStandardLibrary

// Encode writes the response as JSON.
func (r *Response) Encode(w io.Writer) error {
	return wireJSON.NewEncoder(w).Encode(r)
}

// assembleResponse post-validates the per-qubit invariants and converts the
// marginals to the wire representation. A violated invariant aborts the whole
// response; nothing partial is ever emitted.
func assembleResponse(kind PipelineKind, res *PipelineResult, info *CircuitInfo, seconds float64) (*Response, error) {
	qubits := make([]QubitState, len(res.RDMs))
	for q, rho := range res.RDMs {
		if err := checkInvariants(q, rho); err != nil {
			return nil, err
		}
		rho = clipMat(rho)
		x, y, z := blochVector(rho)
		x, y, z = clampBloch(x, y, z)
		qubits[q] = QubitState{
			ID:          q,
			Label:       fmt.Sprintf("Q%d", q),
			BlochCoords: [3]float64{x, y, z},
			Purity:      purity(rho),
			DensityMatrix: [2][2]WireComplex{
				{wire(rho[0][0]), wire(rho[0][1])},
				{wire(rho[1][0]), wire(rho[1][1])},
			},
		}
	}
	return &Response{
		Qubits:               qubits,
		PipelineUsed:         kind,
		ExecutionTimeSeconds: seconds,
		ShotsUsed:            res.ShotsUsed,
		CircuitInfo:          *info,
	}, nil
}

// checkInvariants enforces the trace, hermiticity and positivity contracts on
// one marginal. Tiny negative eigenvalues inside psdTolerance are rounding,
// not errors.
func checkInvariants(qubit int, rho Mat2) *Error {
	if tr := real(rho.trace()); math.Abs(tr-1) > traceTolerance {
		return numericalErrorf("qubit %d marginal trace %.9f violates |Tr-1| <= %.0e", qubit, tr, traceTolerance)
	}
	if d := maxHermDefect(rho); d > hermTolerance {
		return numericalErrorf("qubit %d marginal hermiticity defect %.3e exceeds %.0e", qubit, d, hermTolerance)
	}
	if ev := minEigenvalue(rho); ev < -psdTolerance {
		return numericalErrorf("qubit %d marginal eigenvalue %.3e below -%.0e", qubit, ev, psdTolerance)
	}
	return nil
}

func wire(c complex128) WireComplex {
	return WireComplex{real(c), imag(c)}
}
