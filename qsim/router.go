// Copyright 2025 Quantum-State-Visualizer Authors
// This file is part of the Quantum-State-Visualizer simulation core.

package qsim

import (
	"fmt"

	"github.com/ethereum/go-ethereum/log"
)

// PipelineKind names one of the three simulation strategies.
type PipelineKind string

const (
	PipelineUnitary      PipelineKind = "unitary"
	PipelineExactDensity PipelineKind = "exact_density"
	PipelineTrajectory   PipelineKind = "trajectory"
)

// Qubit-count budgets per pipeline.
const (
	maxUnitaryQubits = 20
	maxDensityQubits = 8
	trajectoryWarnAt = 16
)

// Route maps (qubit count, unitarity, shots, optional override) to the
// pipeline that will run the circuit. Caps are hard: an override that
// violates one is rejected rather than corrected. The returned warnings are
// best-effort notes appended to the response metadata.
func Route(info *CircuitInfo, shots int, override PipelineKind) (PipelineKind, []string, error) {
	if override != "" {
		kind, warn, err := routeOverride(info, override)
		if err != nil {
			return "", nil, err
		}
		log.Debug("pipeline override accepted", "pipeline", kind)
		return kind, warn, nil
	}

	n := info.NumQubits
	switch {
	case info.IsUnitary && n <= maxUnitaryQubits:
		return PipelineUnitary, nil, nil
	case info.IsUnitary:
		return "", nil, routerErrorf("unitary circuit with %d qubits is out of budget (max %d); no exact pipeline can hold it", n, maxUnitaryQubits)
	case n <= maxDensityQubits:
		return PipelineExactDensity, nil, nil
	case n <= trajectoryWarnAt:
		return PipelineTrajectory, nil, nil
	default:
		warn := fmt.Sprintf("non-unitary circuit with %d qubits routed to trajectory on a best-effort basis; expect long runtimes", n)
		log.Warn("best-effort trajectory routing", "qubits", n, "shots", shots)
		return PipelineTrajectory, []string{warn}, nil
	}
}

func routeOverride(info *CircuitInfo, override PipelineKind) (PipelineKind, []string, error) {
	n := info.NumQubits
	switch override {
	case PipelineUnitary:
		if !info.IsUnitary {
			return "", nil, routerErrorf("unitary pipeline cannot run a circuit containing measure or reset")
		}
		if n > maxUnitaryQubits {
			return "", nil, routerErrorf("unitary pipeline capped at %d qubits, circuit has %d", maxUnitaryQubits, n)
		}
		return PipelineUnitary, nil, nil
	case PipelineExactDensity:
		if n > maxDensityQubits {
			return "", nil, routerErrorf("exact_density pipeline capped at %d qubits, circuit has %d", maxDensityQubits, n)
		}
		return PipelineExactDensity, nil, nil
	case PipelineTrajectory:
		var warn []string
		if n > trajectoryWarnAt {
			warn = append(warn, fmt.Sprintf("trajectory simulation of %d qubits is best effort; expect long runtimes", n))
		}
		return PipelineTrajectory, warn, nil
	default:
		return "", nil, routerErrorf("unknown pipeline override %q", override)
	}
}
