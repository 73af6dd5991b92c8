// Copyright 2025 Quantum-State-Visualizer Authors
// This file is part of the Quantum-State-Visualizer simulation core.

package qsim

import (
	"fmt"
	"sort"
	"strings"

	mapset "github.com/deckarep/golang-set"
	"github.com/ethereum/go-ethereum/log"
)

// Resource caps enforced by the validator. Rejections name the triggering
// cap.
const (
	MaxQubits     = 24
	MaxOperations = 1000
	MaxShots      = 100000
	MinShots      = 100 // trajectory clamp floor
)

// whitelistedGates is the closed set of unitary gate mnemonics accepted by
// the simulation core.
var whitelistedGates = mapset.NewSet(
	"id", "h", "x", "y", "z", "s", "t", "sdg", "tdg", "sx",
	"rx", "ry", "rz", "u1", "u2", "u3", "p",
	"cx", "cy", "cz", "ch", "swap", "ccx",
)

// Validate checks the circuit against the gate whitelist and the resource
// caps, and classifies it as unitary or non-unitary. Barriers do not affect
// classification. The returned CircuitInfo carries the gate histogram and
// best-effort warnings.
func Validate(circ *Circuit, shots int) (*CircuitInfo, error) {
	if circ.NumQubits > MaxQubits {
		return nil, validationErrorf("circuit has %d qubits, cap is num_qubits <= %d", circ.NumQubits, MaxQubits)
	}
	if len(circ.Instructions) > MaxOperations {
		return nil, validationErrorf("circuit has %d operations, cap is num_operations <= %d", len(circ.Instructions), MaxOperations)
	}
	if shots < 1 || shots > MaxShots {
		return nil, validationErrorf("requested %d shots, cap is 1 <= shots <= %d", shots, MaxShots)
	}

	unitary := true
	var rejected []string
	for _, ins := range circ.Instructions {
		switch ins.Op {
		case OpGate:
			if !whitelistedGates.Contains(ins.Gate) {
				rejected = append(rejected, ins.Gate)
			}
		case OpMeasure, OpReset:
			unitary = false
		}
	}
	if len(rejected) > 0 {
		sort.Strings(rejected)
		return nil, validationErrorf("gate(s) not whitelisted: %s", strings.Join(dedupe(rejected), ", "))
	}

	info := &CircuitInfo{
		NumQubits:     circ.NumQubits,
		NumOperations: len(circ.Instructions),
		IsUnitary:     unitary,
		GateHistogram: circ.histogram(),
	}
	if info.NumOperations > 100 {
		info.Warnings = append(info.Warnings, fmt.Sprintf("large circuit (%d operations) may take time to simulate", info.NumOperations))
	}
	if info.NumQubits > 16 {
		info.Warnings = append(info.Warnings, fmt.Sprintf("high qubit count (%d) may require trajectory simulation", info.NumQubits))
	}

	log.Debug("validated circuit", "qubits", info.NumQubits, "ops", info.NumOperations, "unitary", info.IsUnitary)
	return info, nil
}

func dedupe(sorted []string) []string {
	out := sorted[:0]
	for i, s := range sorted {
		if i == 0 || s != sorted[i-1] {
			out = append(out, s)
		}
	}
	return out
}
