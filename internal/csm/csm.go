// Package csm implements the CSM textual literal format for Cube values:
// a whitespace-insensitive grammar suited to hand-authoring and version
// control, parsed and printed deterministically.
//
//	cube      = leaf / interior
//	leaf      = "s" 1*DIGIT                ; e.g. "s0", "s42", "s255"
//	interior  = "o[" cube cube cube cube cube cube cube cube "]"
package csm

import (
	"errors"
	"fmt"
	"strings"

	"github.com/voxelcore/cube/internal/cube"
)

// Error kinds, each reported with the byte offset where the violation
// was first observed.
var (
	ErrInvalidToken       = errors.New("csm: invalid token")
	ErrChildCountMismatch = errors.New("csm: interior does not have exactly eight children")
	ErrValueOutOfRange    = errors.New("csm: leaf value out of range 0..255")
	ErrUnexpectedEnd      = errors.New("csm: unexpected end of input")
)

// ParseError reports a CSM parse failure with the byte offset it was
// detected at.
type ParseError struct {
	Offset int
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("csm: %s at offset %d", e.Err, e.Offset)
}

func (e *ParseError) Unwrap() error { return e.Err }

func parseErr(offset int, kind error) error {
	return &ParseError{Offset: offset, Err: kind}
}

// Parse parses a CSM literal into a Cube value. Whitespace (space, tab,
// newline, carriage return) is accepted anywhere between tokens.
func Parse(s string) (*cube.Cube, error) {
	p := &parser{src: s}
	p.skipSpace()
	c, err := p.parseCube()
	if err != nil {
		return nil, err
	}
	p.skipSpace()
	if p.pos != len(p.src) {
		return nil, parseErr(p.pos, ErrInvalidToken)
	}
	return c, nil
}

type parser struct {
	src string
	pos int
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r'
}

func (p *parser) skipSpace() {
	for p.pos < len(p.src) && isSpace(p.src[p.pos]) {
		p.pos++
	}
}

func (p *parser) parseCube() (*cube.Cube, error) {
	if p.pos >= len(p.src) {
		return nil, parseErr(p.pos, ErrUnexpectedEnd)
	}
	switch p.src[p.pos] {
	case 's':
		return p.parseLeaf()
	case 'o':
		return p.parseInterior()
	default:
		return nil, parseErr(p.pos, ErrInvalidToken)
	}
}

func (p *parser) parseLeaf() (*cube.Cube, error) {
	start := p.pos
	p.pos++ // consume 's'
	digitsStart := p.pos
	for p.pos < len(p.src) && p.src[p.pos] >= '0' && p.src[p.pos] <= '9' {
		p.pos++
	}
	if p.pos == digitsStart {
		if p.pos >= len(p.src) {
			return nil, parseErr(p.pos, ErrUnexpectedEnd)
		}
		return nil, parseErr(start, ErrInvalidToken)
	}
	val := 0
	for _, d := range p.src[digitsStart:p.pos] {
		val = val*10 + int(d-'0')
		if val > 255 {
			return nil, parseErr(start, ErrValueOutOfRange)
		}
	}
	return cube.Solid(uint8(val)), nil
}

func (p *parser) parseInterior() (*cube.Cube, error) {
	start := p.pos
	if !strings.HasPrefix(p.src[p.pos:], "o[") {
		return nil, parseErr(start, ErrInvalidToken)
	}
	p.pos += 2

	var children [8]*cube.Cube
	for i := 0; i < 8; i++ {
		p.skipSpace()
		if p.pos < len(p.src) && p.src[p.pos] == ']' {
			return nil, parseErr(start, ErrChildCountMismatch)
		}
		c, err := p.parseCube()
		if err != nil {
			return nil, err
		}
		children[i] = c
	}

	p.skipSpace()
	if p.pos >= len(p.src) {
		return nil, parseErr(p.pos, ErrUnexpectedEnd)
	}
	if p.src[p.pos] != ']' {
		// A ninth value where the closing bracket was expected.
		if _, err := p.parseCube(); err == nil {
			return nil, parseErr(start, ErrChildCountMismatch)
		}
		return nil, parseErr(p.pos, ErrInvalidToken)
	}
	p.pos++ // consume ']'

	return cube.Interior(children), nil
}

// Print renders c as a deterministic CSM literal: one child per line,
// each nesting level indented two further spaces inside "o[...]".
func Print(c *cube.Cube) string {
	var b strings.Builder
	printCube(&b, c, 0)
	return b.String()
}

func printCube(b *strings.Builder, c *cube.Cube, indent int) {
	if m, ok := c.IsSolid(); ok {
		fmt.Fprintf(b, "s%d", m)
		return
	}
	kids, _ := c.IsInterior()
	b.WriteString("o[\n")
	childIndent := indent + 2
	pad := strings.Repeat(" ", childIndent)
	for _, k := range kids {
		b.WriteString(pad)
		printCube(b, k, childIndent)
		b.WriteString("\n")
	}
	b.WriteString(strings.Repeat(" ", indent))
	b.WriteString("]")
}
