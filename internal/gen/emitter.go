package gen

import (
	"fmt"
	"strings"
)

// emitter accumulates lines of Rust code at a current indentation level.
type emitter struct {
	sb     strings.Builder
	indent int
	unit   string
}

func newEmitter(unit string) *emitter {
	return &emitter{unit: unit}
}

func (e *emitter) emitLine(s string) {
	if s == "" {
		e.sb.WriteString("\n")
		return
	}

	e.sb.WriteString(strings.Repeat(e.unit, e.indent))
	e.sb.WriteString(s)
	e.sb.WriteString("\n")
}

func (e *emitter) emitLinef(format string, args ...any) {
	e.emitLine(fmt.Sprintf(format, args...))
}

// emitText emits multi-line text, indenting every line.
func (e *emitter) emitText(s string) {
	for _, line := range strings.Split(s, "\n") {
		e.emitLine(line)
	}
}

func (e *emitter) incIndent() { e.indent++ }
func (e *emitter) decIndent() { e.indent-- }

// String returns the emitted code without the final newline.
func (e *emitter) String() string {
	return strings.TrimSuffix(e.sb.String(), "\n")
}
