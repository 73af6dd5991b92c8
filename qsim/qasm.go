// Copyright 2025 Quantum-State-Visualizer Authors
// This file is part of the Quantum-State-Visualizer simulation core.

package qsim

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/ethereum/go-ethereum/log"
)

// gateShape describes the accepted operand and parameter counts for every
// gate in the OpenQASM 2.0 surface this core supports.
var gateShape = map[string]struct{ qubits, params int }{
	"id": {1, 0}, "h": {1, 0}, "x": {1, 0}, "y": {1, 0}, "z": {1, 0},
	"s": {1, 0}, "t": {1, 0}, "sdg": {1, 0}, "tdg": {1, 0}, "sx": {1, 0},
	"rx": {1, 1}, "ry": {1, 1}, "rz": {1, 1},
	"u1": {1, 1}, "u2": {1, 2}, "u3": {1, 3}, "p": {1, 1},
	"cx": {2, 0}, "cy": {2, 0}, "cz": {2, 0}, "ch": {2, 0},
	"swap": {2, 0}, "ccx": {3, 0},
}

// statement is one semicolon-terminated unit with the line it starts on.
type statement struct {
	text string
	line int
}

// parser holds register context while scanning statements into instructions.
type parser struct {
	qregName string
	qregSize int
	cregName string
	cregSize int
	ins      []Instruction
}

// ParseQASM scans an OpenQASM 2.0 source string into the internal circuit
// form. Convenience gates are textually expanded first (see
// ExpandConvenienceGates). The accepted grammar is the fixed subset of
// section 6.2: version header, qelib1 include, one qreg, optional creg, and
// a linear sequence of gate applications, measurements, resets and barriers.
func ParseQASM(source string) (*Circuit, error) {
	if strings.TrimSpace(source) == "" {
		return nil, parseErrorf(1, "empty QASM source")
	}

	stmts, perr := splitStatements(ExpandConvenienceGates(source))
	if perr != nil {
		return nil, perr
	}
	if len(stmts) < 2 {
		return nil, parseErrorf(1, "program must begin with the OPENQASM 2.0 header and the qelib1.inc include")
	}
	if normalizeSpace(stmts[0].text) != "OPENQASM 2.0" {
		return nil, parseErrorf(stmts[0].line, `first statement must be "OPENQASM 2.0;"`)
	}
	if normalizeSpace(stmts[1].text) != `include "qelib1.inc"` {
		return nil, parseErrorf(stmts[1].line, `second statement must include "qelib1.inc"`)
	}

	p := &parser{}
	for _, st := range stmts[2:] {
		if err := p.statement(st); err != nil {
			return nil, err
		}
	}
	if p.qregSize == 0 {
		return nil, parseErrorf(stmts[len(stmts)-1].line, "missing qreg declaration")
	}

	circ := &Circuit{
		NumQubits:     p.qregSize,
		ClassicalBits: p.cregSize,
		Instructions:  p.ins,
	}
	log.Debug("parsed QASM program", "qubits", circ.NumQubits, "ops", len(circ.Instructions))
	return circ, nil
}

// splitStatements strips // comments and cuts the source into
// semicolon-terminated statements, tracking the line each one starts on.
func splitStatements(source string) ([]statement, *Error) {
	var (
		stmts     []statement
		buf       strings.Builder
		startLine int
	)
	for ln, raw := range strings.Split(source, "\n") {
		line := raw
		if i := strings.Index(line, "//"); i >= 0 {
			line = line[:i]
		}
		for _, r := range line {
			if r == ';' {
				text := strings.TrimSpace(buf.String())
				buf.Reset()
				if text == "" {
					return nil, parseErrorf(ln+1, "empty statement")
				}
				stmts = append(stmts, statement{text: text, line: startLine})
				startLine = 0
				continue
			}
			if startLine == 0 && !unicode.IsSpace(r) {
				startLine = ln + 1
			}
			buf.WriteRune(r)
		}
		buf.WriteRune(' ')
	}
	if strings.TrimSpace(buf.String()) != "" {
		return nil, parseErrorf(startLine, "statement missing terminating ';'")
	}
	return stmts, nil
}

func normalizeSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// splitHead cuts the leading identifier off a statement.
func splitHead(s string) (string, string) {
	i := 0
	for i < len(s) {
		c := s[i]
		if c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (i > 0 && c >= '0' && c <= '9') {
			i++
			continue
		}
		break
	}
	return s[:i], strings.TrimSpace(s[i:])
}

func (p *parser) statement(st statement) *Error {
	head, rest := splitHead(st.text)
	switch head {
	case "":
		return parseErrorf(st.line, "malformed statement %q", st.text)
	case "OPENQASM":
		return parseErrorf(st.line, "duplicate OPENQASM header")
	case "include":
		return parseErrorf(st.line, "only qelib1.inc may be included, once")
	case "qreg":
		return p.declareRegister(rest, st.line, false)
	case "creg":
		return p.declareRegister(rest, st.line, true)
	case "gate", "opaque":
		return parseErrorf(st.line, "custom gate definitions are not supported")
	case "if":
		return parseErrorf(st.line, "classical control is not supported")
	case "measure":
		return p.measure(rest, st.line)
	case "reset":
		return p.reset(rest, st.line)
	case "barrier":
		return p.barrier(rest, st.line)
	}
	shape, ok := gateShape[head]
	if !ok {
		return parseErrorf(st.line, "unsupported gate or statement %q", head)
	}
	return p.gate(head, shape.qubits, shape.params, rest, st.line)
}

// declareRegister handles qreg/creg statements of the form name[n].
func (p *parser) declareRegister(rest string, line int, classical bool) *Error {
	name, size, err := parseRegDecl(rest, line)
	if err != nil {
		return err
	}
	if classical {
		if p.cregSize != 0 {
			return parseErrorf(line, "multiple creg declarations")
		}
		p.cregName, p.cregSize = name, size
		return nil
	}
	if p.qregSize != 0 {
		return parseErrorf(line, "multiple qreg declarations")
	}
	p.qregName, p.qregSize = name, size
	return nil
}

func parseRegDecl(s string, line int) (string, int, *Error) {
	open := strings.Index(s, "[")
	end := strings.Index(s, "]")
	if open <= 0 || end <= open || strings.TrimSpace(s[end+1:]) != "" {
		return "", 0, parseErrorf(line, "malformed register declaration %q", s)
	}
	name := strings.TrimSpace(s[:open])
	if !isIdentifier(name) {
		return "", 0, parseErrorf(line, "invalid register name %q", name)
	}
	size, err := strconv.Atoi(strings.TrimSpace(s[open+1 : end]))
	if err != nil || size < 1 {
		return "", 0, parseErrorf(line, "invalid register size in %q", s)
	}
	return name, size, nil
}

func isIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r == '_', r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case i > 0 && r >= '0' && r <= '9':
		default:
			return false
		}
	}
	return true
}

// parseRef resolves an indexed register reference name[i] against a declared
// register.
func (p *parser) parseRef(tok, wantName string, size int, line int) (int, *Error) {
	tok = strings.TrimSpace(tok)
	open := strings.Index(tok, "[")
	if open <= 0 || !strings.HasSuffix(tok, "]") {
		return 0, parseErrorf(line, "malformed register reference %q", tok)
	}
	name := tok[:open]
	if wantName == "" {
		return 0, parseErrorf(line, "register %q referenced before declaration", name)
	}
	if name != wantName {
		return 0, parseErrorf(line, "unknown register %q", name)
	}
	idx, err := strconv.Atoi(tok[open+1 : len(tok)-1])
	if err != nil || idx < 0 {
		return 0, parseErrorf(line, "invalid index in %q", tok)
	}
	if idx >= size {
		return 0, parseErrorf(line, "index %d out of range for %s[%d]", idx, name, size)
	}
	return idx, nil
}

func (p *parser) qubitRef(tok string, line int) (int, *Error) {
	return p.parseRef(tok, p.qregName, p.qregSize, line)
}

func (p *parser) gate(name string, nq, np int, rest string, line int) *Error {
	params, operands, err := splitParams(rest, line)
	if err != nil {
		return err
	}
	if len(params) != np {
		return parseErrorf(line, "gate %s expects %d parameter(s), got %d", name, np, len(params))
	}
	vals := make([]float64, len(params))
	for i, expr := range params {
		v, eerr := evalExpr(expr, line)
		if eerr != nil {
			return eerr
		}
		vals[i] = v
	}

	toks := strings.Split(operands, ",")
	if operands == "" || len(toks) != nq {
		return parseErrorf(line, "gate %s expects %d operand(s)", name, nq)
	}
	qubits := make([]int, nq)
	for i, tok := range toks {
		q, qerr := p.qubitRef(tok, line)
		if qerr != nil {
			return qerr
		}
		qubits[i] = q
	}
	for i := 0; i < nq; i++ {
		for j := i + 1; j < nq; j++ {
			if qubits[i] == qubits[j] {
				return parseErrorf(line, "gate %s operands must be distinct qubits", name)
			}
		}
	}

	p.ins = append(p.ins, Instruction{Op: OpGate, Gate: name, Qubits: qubits, Params: vals, Clbit: -1, Line: line})
	return nil
}

// splitParams separates an optional leading parenthesized parameter list from
// the operand list.
func splitParams(rest string, line int) ([]string, string, *Error) {
	if !strings.HasPrefix(rest, "(") {
		return nil, rest, nil
	}
	depth := 0
	for i, r := range rest {
		switch r {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				args := splitTopLevel(rest[1:i])
				return args, strings.TrimSpace(rest[i+1:]), nil
			}
		}
	}
	return nil, "", parseErrorf(line, "unbalanced parentheses in %q", rest)
}

// splitTopLevel splits on commas outside parentheses.
func splitTopLevel(s string) []string {
	var (
		parts []string
		depth int
		start int
	)
	for i, r := range s {
		switch r {
		case '(':
			depth++
		case ')':
			depth--
		case ',':
			if depth == 0 {
				parts = append(parts, strings.TrimSpace(s[start:i]))
				start = i + 1
			}
		}
	}
	if tail := strings.TrimSpace(s[start:]); tail != "" || len(parts) > 0 {
		parts = append(parts, tail)
	}
	return parts
}

func (p *parser) measure(rest string, line int) *Error {
	parts := strings.Split(rest, "->")
	if len(parts) != 2 {
		return parseErrorf(line, `measure expects the form "measure q[i] -> c[j]"`)
	}
	q, err := p.qubitRef(parts[0], line)
	if err != nil {
		return err
	}
	if p.cregSize == 0 {
		return parseErrorf(line, "measure requires a creg declaration")
	}
	c, err := p.parseRef(parts[1], p.cregName, p.cregSize, line)
	if err != nil {
		return err
	}
	p.ins = append(p.ins, Instruction{Op: OpMeasure, Qubits: []int{q}, Clbit: c, Line: line})
	return nil
}

func (p *parser) reset(rest string, line int) *Error {
	q, err := p.qubitRef(rest, line)
	if err != nil {
		return err
	}
	p.ins = append(p.ins, Instruction{Op: OpReset, Qubits: []int{q}, Clbit: -1, Line: line})
	return nil
}

// barrier accepts either the whole register or a comma list of indexed
// references. Barriers are kept in the instruction stream as no-ops.
func (p *parser) barrier(rest string, line int) *Error {
	if rest == "" {
		return parseErrorf(line, "barrier expects operands")
	}
	if rest != p.qregName || p.qregSize == 0 {
		for _, tok := range strings.Split(rest, ",") {
			if _, err := p.qubitRef(tok, line); err != nil {
				return err
			}
		}
	}
	p.ins = append(p.ins, Instruction{Op: OpBarrier, Clbit: -1, Line: line})
	return nil
}
