// Copyright 2025 Quantum-State-Visualizer Authors
// This file is part of the Quantum-State-Visualizer simulation core.

package qsim

import "regexp"

// cryPattern matches a complete controlled-Y-rotation statement on one line:
// cry(theta) ctrl, tgt;
var cryPattern = regexp.MustCompile(`\bcry\s*\(([^()]*(?:\([^()]*\)[^()]*)*)\)\s*([a-zA-Z_][a-zA-Z0-9_]*\[[0-9]+\])\s*,\s*([a-zA-Z_][a-zA-Z0-9_]*\[[0-9]+\])\s*;`)

// ExpandConvenienceGates textually rewrites convenience gates that are not in
// the supported primitive set before parsing. cry(t) a,b becomes
//
//	ry(t/2) b; cx a,b; ry(-t/2) b; cx a,b;
//
// The pass is purely textual and idempotent: every cry statement written on
// one line with indexed operands is rewritten; other cry forms are left as
// they are and the parser rejects them. Rewrites stay on their source line so
// diagnostics keep their line numbers.
func ExpandConvenienceGates(source string) string {
	return cryPattern.ReplaceAllString(source,
		`ry(($1)/2) $3; cx $2,$3; ry(-(($1)/2)) $3; cx $2,$3;`)
}
