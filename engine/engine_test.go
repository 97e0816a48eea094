package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCompileErrorTrimsDiagnostic(t *testing.T) {
	err := &CompileError{Stage: "fragment", Log: "0:12: 'foo' : undeclared identifier\n\x00"}
	assert.Equal(t, "fragment shader: 0:12: 'foo' : undeclared identifier", err.Error())
}

func TestCompileErrorIsError(t *testing.T) {
	var err error = &CompileError{Stage: "link", Log: "mismatch"}
	assert.EqualError(t, err, "link shader: mismatch")
}
