package environment_test

import (
	"testing"

	"github.com/quill-lang/quill/internal/environment"
	"github.com/quill-lang/quill/internal/value"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTDZReadBeforeInitThrowsMarker(t *testing.T) {
	env := environment.NewDeclarative(nil)
	env.DeclareUninitialized("x", true)

	_, res := env.GetOwn("x")
	assert.Equal(t, environment.FoundUninitialized, res)

	env.Initialize("x", value.Integer(1))
	v, res := env.GetOwn("x")
	require.Equal(t, environment.Found, res)
	assert.Equal(t, int32(1), v.AsInt32())
}

func TestBlockScopingShadowsOuter(t *testing.T) {
	outer := environment.NewDeclarative(nil)
	outer.DeclareMutable("x", value.Integer(1))

	inner := environment.NewDeclarative(outer)
	inner.DeclareUninitialized("x", true)
	inner.Initialize("x", value.Integer(2))

	v, _, _ := inner.Resolve("x")
	assert.Equal(t, int32(2), v.AsInt32())

	v, _, _ = outer.Resolve("x")
	assert.Equal(t, int32(1), v.AsInt32())
}

func TestConstReassignmentIsImmutableViolation(t *testing.T) {
	env := environment.NewDeclarative(nil)
	env.DeclareImmutable("c", value.Integer(1))

	ok, immutable := env.Assign("c", value.Integer(2))
	assert.True(t, ok)
	assert.True(t, immutable)
}

func TestResolveUnknownIdentifierNotFound(t *testing.T) {
	env := environment.NewDeclarative(nil)
	_, res, frame := env.Resolve("nope")
	assert.Equal(t, environment.NotFound, res)
	assert.Nil(t, frame)
}

func TestArrowFrameInheritsThis(t *testing.T) {
	outer := environment.NewFunctionRecord(nil, value.String("outer-this"), value.Undefined)
	arrow := environment.NewArrowFunctionRecord(outer)

	assert.Equal(t, "outer-this", arrow.This().AsString())
}
