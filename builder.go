package twen

import "fmt"

type valueKind int

const (
	valueNil valueKind = iota
	valueNumber
	valueNode
	valueStore
)

// value is a construction-time binding only; it never participates in
// sampling.
type value struct {
	kind valueKind
	num  float32
	id   int
}

func (v value) input() Input {
	switch v.kind {
	case valueNumber:
		return Constant(v.num)
	case valueNode:
		return NodeOutput(v.id)
	case valueStore:
		return StoreValue(v.id)
	default:
		return Constant(0)
	}
}

// number coerces permissively: anything that is not a number reads as
// zero. Map bounds and Mix factors rely on this.
func (v value) number() float32 {
	if v.kind == valueNumber {
		return v.num
	}
	return 0
}

type builder struct {
	env   map[string]value
	graph *NodeGraph
}

// Load compiles source text into a brand-new NodeGraph. On any lex,
// parse or build error it returns no graph; the caller keeps whatever
// graph it had before. Load never mutates an existing graph.
func Load(src string, sampleRate float32) (*NodeGraph, error) {
	prog, err := parse(src)
	if err != nil {
		return nil, err
	}
	b := &builder{env: make(map[string]value), graph: NewNodeGraph(sampleRate)}
	if _, err := b.visit(prog); err != nil {
		return nil, err
	}
	return b.graph, nil
}

// visit walks the tree depth first, left to right, in declaration
// order. Node ids therefore follow source order, which fixes the
// Sample evaluation order.
func (b *builder) visit(e Expr) (value, error) {
	switch e := e.(type) {
	case *Program:
		for _, s := range e.Statements {
			if _, err := b.visit(s); err != nil {
				return value{}, err
			}
		}
	case *Literal:
		return value{kind: valueNumber, num: e.Value}, nil
	case *Identifier:
		v, ok := b.env[e.Name]
		if !ok {
			// referencing before assignment declares as nil
			b.env[e.Name] = value{}
		}
		return v, nil
	case *Assign:
		v, err := b.visit(e.Value)
		if err != nil {
			return value{}, err
		}
		b.env[e.Target.(*Identifier).Name] = v
	case *Call:
		return b.call(e)
	}
	return value{}, nil
}

func (b *builder) input(e Expr) (Input, error) {
	v, err := b.visit(e)
	return v.input(), err
}

func (b *builder) number(e Expr) (float32, error) {
	v, err := b.visit(e)
	return v.number(), err
}

// operands evaluates the first two arguments, left to right. For
// oscillators they are freq and amp.
func (b *builder) operands(c *Call) (x, y Input, err error) {
	if x, err = b.input(c.Args[0]); err != nil {
		return
	}
	y, err = b.input(c.Args[1])
	return
}

var arities = map[string]int{
	"CreateStore": 0,
	"LFO":         1,
	"Output":      1,
	"Sine":        2,
	"Square":      2,
	"Saw":         2,
	"Triangle":    2,
	"Map":         5,
	"Add":         2,
	"Sub":         2,
	"Mul":         2,
	"Writer":      2,
	"Mix":         3,
}

// call dispatches over the closed set of node constructors.
func (b *builder) call(c *Call) (value, error) {
	n, ok := arities[c.Name]
	if !ok {
		return value{}, &SemanticError{Msg: fmt.Sprintf("unknown function %q", c.Name)}
	}
	if len(c.Args) != n {
		return value{}, &SemanticError{Msg: fmt.Sprintf("%s takes %d arguments, got %d", c.Name, n, len(c.Args))}
	}
	switch c.Name {
	case "CreateStore":
		return value{kind: valueStore, id: b.graph.CreateStore()}, nil
	case "LFO":
		freq, err := b.input(c.Args[0])
		if err != nil {
			return value{}, err
		}
		return value{kind: valueNode, id: b.graph.CreateLFO(freq)}, nil
	case "Output":
		from, err := b.input(c.Args[0])
		if err != nil {
			return value{}, err
		}
		return value{kind: valueNode, id: b.graph.CreateOutput(from)}, nil
	case "Sine":
		freq, amp, err := b.operands(c)
		if err != nil {
			return value{}, err
		}
		return value{kind: valueNode, id: b.graph.CreateSine(freq, amp)}, nil
	case "Square":
		freq, amp, err := b.operands(c)
		if err != nil {
			return value{}, err
		}
		return value{kind: valueNode, id: b.graph.CreateSquare(freq, amp)}, nil
	case "Saw":
		freq, amp, err := b.operands(c)
		if err != nil {
			return value{}, err
		}
		return value{kind: valueNode, id: b.graph.CreateSaw(freq, amp)}, nil
	case "Triangle":
		freq, amp, err := b.operands(c)
		if err != nil {
			return value{}, err
		}
		return value{kind: valueNode, id: b.graph.CreateTriangle(freq, amp)}, nil
	case "Map":
		in, err := b.input(c.Args[0])
		if err != nil {
			return value{}, err
		}
		bounds := make([]float32, 4)
		for i := range bounds {
			if bounds[i], err = b.number(c.Args[i+1]); err != nil {
				return value{}, err
			}
		}
		return value{kind: valueNode, id: b.graph.CreateMap(in, bounds[0], bounds[1], bounds[2], bounds[3])}, nil
	case "Add":
		x, y, err := b.operands(c)
		if err != nil {
			return value{}, err
		}
		return value{kind: valueNode, id: b.graph.CreateAdd(x, y)}, nil
	case "Sub":
		x, y, err := b.operands(c)
		if err != nil {
			return value{}, err
		}
		return value{kind: valueNode, id: b.graph.CreateSub(x, y)}, nil
	case "Mul":
		x, y, err := b.operands(c)
		if err != nil {
			return value{}, err
		}
		return value{kind: valueNode, id: b.graph.CreateMul(x, y)}, nil
	case "Writer":
		target, err := b.visit(c.Args[0])
		if err != nil {
			return value{}, err
		}
		if target.kind != valueStore {
			return value{}, &SemanticError{Msg: "invalid store id"}
		}
		in, err := b.input(c.Args[1])
		if err != nil {
			return value{}, err
		}
		return value{kind: valueNode, id: b.graph.CreateWriter(target.id, in)}, nil
	case "Mix":
		x, y, err := b.operands(c)
		if err != nil {
			return value{}, err
		}
		factor, err := b.number(c.Args[2])
		if err != nil {
			return value{}, err
		}
		return value{kind: valueNode, id: b.graph.CreateMix(x, y, factor)}, nil
	}
	return value{}, nil
}
