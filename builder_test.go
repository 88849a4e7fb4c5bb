package twen

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadOutputZero(t *testing.T) {
	g, err := Load("Output(0.0)", 44100)
	require.NoError(t, err)
	for i := 0; i < 100; i++ {
		assert.Zero(t, g.Sample())
	}
}

func TestLoadUnknownFunction(t *testing.T) {
	g, err := Load("Foo(1)", 44100)
	var semErr *SemanticError
	require.ErrorAs(t, err, &semErr)
	assert.Nil(t, g)
}

func TestLoadWrongArity(t *testing.T) {
	for _, src := range []string{
		"Sine(440)",
		"Map(1, 2, 3)",
		"CreateStore(1)",
		"Output()",
	} {
		_, err := Load(src, 44100)
		var semErr *SemanticError
		require.ErrorAs(t, err, &semErr, src)
	}
}

func TestWriterRequiresStoreRef(t *testing.T) {
	for _, src := range []string{
		"Writer(1, 2)",
		"x = Sine(440, 1)\nWriter(x, 2)",
		"Writer(y, 2)", // nil binding is not a store
	} {
		_, err := Load(src, 44100)
		var semErr *SemanticError
		require.ErrorAs(t, err, &semErr, src)
		assert.EqualError(t, err, "invalid store id", src)
	}
}

func TestUnboundIdentifierReadsAsZero(t *testing.T) {
	g, err := Load("Output(Add(ghost, 1))", 44100)
	require.NoError(t, err)
	assert.Equal(t, float32(1), g.Sample())
}

func TestNumericParameterCoercion(t *testing.T) {
	// a node reference where Mix expects a plain factor coerces to 0
	g, err := Load("x = Sine(440, 1)\nOutput(Mix(1, 2, x))", 44100)
	require.NoError(t, err)
	assert.Equal(t, float32(1), g.Sample())
}

func TestAliasBinding(t *testing.T) {
	g, err := Load("x = Sine(440, 1.0)\ny = x\nOutput(y)", 44100)
	require.NoError(t, err)
	want := float32(math.Sin(2 * math.Pi * 440 / 44100))
	assert.InDelta(t, want, g.Sample(), 1e-4)
	// the alias refers to the same node, not a copy
	assert.Len(t, g.nodes, 2) // sine + output
}

func TestAssignEvaluatesRightHandSideFirst(t *testing.T) {
	g, err := Load("x = 1\nx = Add(x, 1)\nOutput(x)", 44100)
	require.NoError(t, err)
	assert.Equal(t, float32(2), g.Sample())
}

func TestLastNodeIsOutputWhenNoneDesignated(t *testing.T) {
	g, err := Load("a = Add(2, 3)", 44100)
	require.NoError(t, err)
	assert.Equal(t, float32(5), g.Sample())
}

func TestLastOutputCallWins(t *testing.T) {
	g, err := Load("Output(1)\nOutput(2)", 44100)
	require.NoError(t, err)
	assert.Equal(t, float32(2), g.Sample())
}

func TestWriterIsAPassThroughTap(t *testing.T) {
	g, err := Load("s = CreateStore()\nOutput(Writer(s, 5))", 44100)
	require.NoError(t, err)
	assert.Equal(t, float32(5), g.Sample())
	assert.Equal(t, float32(5), g.store[0])
}

func TestLoadBuildsFreshGraphEachTime(t *testing.T) {
	const src = "Output(Sine(440, 1.0))"
	a, err := Load(src, 44100)
	require.NoError(t, err)
	a.Sample()
	a.Sample()
	b, err := Load(src, 44100)
	require.NoError(t, err)
	// the second graph starts from zero phase regardless of the first
	assert.InDelta(t, math.Sin(2*math.Pi*440/44100), b.Sample(), 1e-4)
}

func TestDeterminism(t *testing.T) {
	const src = `
s = CreateStore()
lfo = LFO(2)
depth = Map(lfo, 0, 1, 200, 800)
osc = Saw(depth, 0.5)
Writer(s, osc)
Output(Mix(osc, Triangle(110, 1), 0.3))
`
	a, err := Load(src, 48000)
	require.NoError(t, err)
	b, err := Load(src, 48000)
	require.NoError(t, err)
	for i := 0; i < 500; i++ {
		require.Equal(t, a.Sample(), b.Sample(), "sample %d", i)
	}
}
