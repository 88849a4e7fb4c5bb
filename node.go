// Package twen is a live-coding audio synthesis engine. A small textual
// language describes a signal graph which Load compiles into a NodeGraph;
// each call to Sample advances every node once and yields the next output
// sample. Audio IO, display and file watching live in cmd/twen and talk
// to the core only through Load and Sample.
package twen

import "math"

const twoPi = 2 * math.Pi

// Phase is an oscillator's running cyclic position. It is owned by
// exactly one node and mutated on every sample.
type Phase struct {
	phase  float32
	step   float32
	period float32
}

func newPhase(sampleRate float32) Phase {
	return Phase{step: twoPi / sampleRate, period: twoPi}
}

func (p *Phase) advance(freq float32) float32 {
	p.phase = float32(math.Mod(float64(p.phase+p.step*freq), float64(p.period)))
	return p.phase
}

type inputKind int

const (
	inputConstant inputKind = iota
	inputNode
	inputStore
)

// Input is a node operand, resolved against current runtime state on
// every sample: a constant, another node's latest output, or a store
// slot.
type Input struct {
	kind inputKind
	v    float32
	id   int
}

func Constant(v float32) Input { return Input{kind: inputConstant, v: v} }
func NodeOutput(id int) Input  { return Input{kind: inputNode, id: id} }
func StoreValue(id int) Input  { return Input{kind: inputStore, id: id} }

func (in Input) resolve(outputs, store []float32) float32 {
	switch in.kind {
	case inputNode:
		return outputs[in.id]
	case inputStore:
		return store[in.id]
	default:
		return in.v
	}
}

type nodeKind int

const (
	nodeNull nodeKind = iota
	nodeSine
	nodeSquare
	nodeSaw
	nodeTriangle
	nodeLFO
	nodeMap
	nodeMix
	nodeAdd
	nodeSub
	nodeMul
	nodeWriter
	nodeOutput
)

// node is a tagged variant; which fields are live depends on kind.
// a/b hold freq/amp for oscillators and the operands everywhere else.
type node struct {
	kind    nodeKind
	ph      Phase
	a, b    Input
	store   int
	fromMin float32
	fromMax float32
	toMin   float32
	toMax   float32
	factor  float32
}

// NodeGraph owns a dense id-indexed node arena, one output slot per
// node, and a grow-only store of persistent scalars. Ids are stable for
// the life of a node; deleted slots are reused LIFO. The graph is not
// safe for concurrent use: callers serialise Sample against any
// mutation or replacement.
type NodeGraph struct {
	sampleRate float32
	nodes      []node
	dead       []int
	outputs    []float32
	store      []float32
	outputNode int
}

func NewNodeGraph(sampleRate float32) *NodeGraph {
	return &NodeGraph{sampleRate: sampleRate, outputNode: -1}
}

func (g *NodeGraph) addNode(n node) int {
	if len(g.dead) > 0 {
		id := g.dead[len(g.dead)-1]
		g.dead = g.dead[:len(g.dead)-1]
		g.nodes[id] = n
		return id
	}
	g.nodes = append(g.nodes, n)
	g.outputs = append(g.outputs, 0)
	return len(g.nodes) - 1
}

// CreateStore appends a zero-initialised persistent scalar and returns
// its index. Store slots are never freed.
func (g *NodeGraph) CreateStore() int {
	g.store = append(g.store, 0)
	return len(g.store) - 1
}

func (g *NodeGraph) CreateSine(freq, amp Input) int {
	return g.addNode(node{kind: nodeSine, ph: newPhase(g.sampleRate), a: freq, b: amp})
}

func (g *NodeGraph) CreateSquare(freq, amp Input) int {
	return g.addNode(node{kind: nodeSquare, ph: newPhase(g.sampleRate), a: freq, b: amp})
}

func (g *NodeGraph) CreateSaw(freq, amp Input) int {
	return g.addNode(node{kind: nodeSaw, ph: newPhase(g.sampleRate), a: freq, b: amp})
}

func (g *NodeGraph) CreateTriangle(freq, amp Input) int {
	return g.addNode(node{kind: nodeTriangle, ph: newPhase(g.sampleRate), a: freq, b: amp})
}

func (g *NodeGraph) CreateLFO(freq Input) int {
	return g.addNode(node{kind: nodeLFO, ph: newPhase(g.sampleRate), a: freq})
}

func (g *NodeGraph) CreateMap(in Input, fromMin, fromMax, toMin, toMax float32) int {
	return g.addNode(node{kind: nodeMap, a: in, fromMin: fromMin, fromMax: fromMax, toMin: toMin, toMax: toMax})
}

func (g *NodeGraph) CreateMix(a, b Input, factor float32) int {
	return g.addNode(node{kind: nodeMix, a: a, b: b, factor: factor})
}

func (g *NodeGraph) CreateAdd(a, b Input) int {
	return g.addNode(node{kind: nodeAdd, a: a, b: b})
}

func (g *NodeGraph) CreateSub(a, b Input) int {
	return g.addNode(node{kind: nodeSub, a: a, b: b})
}

func (g *NodeGraph) CreateMul(a, b Input) int {
	return g.addNode(node{kind: nodeMul, a: a, b: b})
}

func (g *NodeGraph) CreateWriter(store int, value Input) int {
	return g.addNode(node{kind: nodeWriter, store: store, a: value})
}

// CreateOutput records the new node as the designated graph output.
// The latest call wins.
func (g *NodeGraph) CreateOutput(from Input) int {
	id := g.addNode(node{kind: nodeOutput, a: from})
	g.outputNode = id
	return id
}

// DeleteNode nulls the slot and queues the id for reuse. Other ids
// never shift. Deleting an id that is already queued dead is an error.
func (g *NodeGraph) DeleteNode(id int) error {
	for _, d := range g.dead {
		if d == id {
			return &GraphError{ID: id}
		}
	}
	g.nodes[id] = node{}
	g.dead = append(g.dead, id)
	return nil
}

// Sample computes one output sample. Every slot is written exactly
// once, strictly in ascending id order, with no regard for dependency
// topology: an input reading a lower id sees this call's fresh value,
// a higher or equal id sees the previous call's. That ordering is
// load-bearing for feedback patches and must not be replaced with a
// dependency sort. Dead slots read as silence.
func (g *NodeGraph) Sample() float32 {
	for id := range g.nodes {
		n := &g.nodes[id]
		var s float32
		switch n.kind {
		case nodeNull:
			// zero, overwriting whatever the slot last held
		case nodeSine:
			s = sin(n.ph.advance(n.a.resolve(g.outputs, g.store))) * n.b.resolve(g.outputs, g.store)
		case nodeSquare:
			s = -1
			if n.ph.advance(n.a.resolve(g.outputs, g.store)) > n.ph.period/2 {
				s = 1
			}
			s *= n.b.resolve(g.outputs, g.store)
		case nodeSaw:
			ph := n.ph.advance(n.a.resolve(g.outputs, g.store))
			s = (ph/n.ph.period*2 - 1) * n.b.resolve(g.outputs, g.store)
		case nodeTriangle:
			amp := n.b.resolve(g.outputs, g.store)
			ph := n.ph.advance(n.a.resolve(g.outputs, g.store))
			if ph < n.ph.period/2 {
				s = (-1 + 2/(n.ph.period/2)*ph) * amp
			} else {
				s = (3 - 2/(n.ph.period/2)*ph) * amp
			}
		case nodeLFO:
			s = sin(n.ph.advance(n.a.resolve(g.outputs, g.store)))*0.5 + 0.5
		case nodeMap:
			x := n.a.resolve(g.outputs, g.store)
			norm := (x - n.fromMin) / (n.fromMax - n.fromMin)
			s = norm*(n.toMax-n.toMin) + n.toMin
		case nodeMix:
			s = (1-n.factor)*n.a.resolve(g.outputs, g.store) + n.factor*n.b.resolve(g.outputs, g.store)
		case nodeAdd:
			s = n.a.resolve(g.outputs, g.store) + n.b.resolve(g.outputs, g.store)
		case nodeSub:
			s = n.a.resolve(g.outputs, g.store) - n.b.resolve(g.outputs, g.store)
		case nodeMul:
			s = n.a.resolve(g.outputs, g.store) * n.b.resolve(g.outputs, g.store)
		case nodeWriter:
			s = n.a.resolve(g.outputs, g.store)
			g.store[n.store] = s
		case nodeOutput:
			s = n.a.resolve(g.outputs, g.store)
		}
		g.outputs[id] = s
	}
	if len(g.nodes) == 0 {
		return 0
	}
	out := g.outputNode
	if out < 0 {
		out = len(g.nodes) - 1
	}
	return g.outputs[out]
}

func sin(x float32) float32 {
	return float32(math.Sin(float64(x)))
}
