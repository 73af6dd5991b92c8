// Package presets holds the named example circuits the front end's preset
// picker offers. Each preset is a complete OpenQASM 2.0 program accepted by
// the simulation core.
package presets

// Preset is one named example circuit.
type Preset struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	QASM        string `json:"qasm"`
}

// Library lists the built-in presets in display order.
var Library = []Preset{
	{
		ID:          "superposition",
		Name:        "Superposition",
		Description: "Single qubit on the equator of the Bloch sphere",
		QASM: `OPENQASM 2.0;
include "qelib1.inc";
qreg q[1];
h q[0];`,
	},
	{
		ID:          "bell",
		Name:        "Bell State",
		Description: "Two maximally entangled qubits; both marginals fully mixed",
		QASM: `OPENQASM 2.0;
include "qelib1.inc";
qreg q[2];
h q[0];
cx q[0], q[1];`,
	},
	{
		ID:          "ghz",
		Name:        "GHZ State",
		Description: "Three-qubit Greenberger-Horne-Zeilinger state",
		QASM: `OPENQASM 2.0;
include "qelib1.inc";
qreg q[3];
h q[0];
cx q[0], q[1];
cx q[1], q[2];`,
	},
	{
		ID:          "random_unitary",
		Name:        "Random Rotations",
		Description: "Mixed single-qubit rotations with an entangling gate",
		QASM: `OPENQASM 2.0;
include "qelib1.inc";
qreg q[2];
ry(pi/2) q[0];
rx(pi/4) q[1];
cx q[0], q[1];
rz(pi/6) q[0];`,
	},
	{
		ID:          "w_state",
		Name:        "W State",
		Description: "Three-qubit W state via controlled rotations",
		QASM: `OPENQASM 2.0;
include "qelib1.inc";
qreg q[3];
ry(1.91063324) q[0];
cry(pi/2) q[0], q[1];
cx q[1], q[0];
x q[0];
x q[1];
ccx q[0], q[1], q[2];
x q[0];
x q[1];`,
	},
	{
		ID:          "measured_bell",
		Name:        "Measured Bell Pair",
		Description: "Bell pair with one measurement; marginals decohere",
		QASM: `OPENQASM 2.0;
include "qelib1.inc";
qreg q[2];
creg c[1];
h q[0];
cx q[0], q[1];
measure q[0] -> c[0];`,
	},
}

// ByID returns the preset with the given id.
func ByID(id string) (Preset, bool) {
	for _, p := range Library {
		if p.ID == id {
			return p, true
		}
	}
	return Preset{}, false
}
