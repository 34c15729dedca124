package arith

import (
	"strconv"
	"strings"
)

// node is a node in the abstract syntax tree of an expression.
type node struct {
	kind nodeKind

	// name is the literal text of a nodeNum.
	name string

	left  *node
	right *node
}

type nodeKind int8

const (
	nodeNone nodeKind = iota

	nodeNum // push num

	nodeNeg // negate left
	nodeFac // factorial of left

	nodeAdd // evaluate left, add right
	nodeSub // evaluate left, sub right
	nodeMul // evaluate left, mul right
	nodeDiv // evaluate left, div by right
	nodeMod // evaluate left, remainder by right
	nodePow // evaluate left, exp by right
	nodeAvg // evaluate left, average with right
	nodeMax // evaluate left, max with right
	nodeMin // evaluate left, min with right
)

var nodeKindNames = [...]string{
	nodeNone: "None",
	nodeNum:  "Num",
	nodeNeg:  "Neg",
	nodeFac:  "Fac",
	nodeAdd:  "Add",
	nodeSub:  "Sub",
	nodeMul:  "Mul",
	nodeDiv:  "Div",
	nodeMod:  "Mod",
	nodePow:  "Pow",
	nodeAvg:  "Avg",
	nodeMax:  "Max",
	nodeMin:  "Min",
}

func (k nodeKind) String() string {
	if int(k) < len(nodeKindNames) {
		return nodeKindNames[k]
	}
	return "nodeKind(" + strconv.Itoa(int(k)) + ")"
}

// opsym is the operator symbol for a binary node kind.
func opsym(k nodeKind) string {
	switch k {
	case nodeAdd:
		return "+"
	case nodeSub:
		return "-"
	case nodeMul:
		return "*"
	case nodeDiv:
		return "/"
	case nodeMod:
		return "%"
	case nodePow:
		return "^"
	case nodeAvg:
		return "@"
	case nodeMax:
		return "$"
	case nodeMin:
		return "&"
	default:
		return ""
	}
}

func (n *node) String() string {
	var b strings.Builder
	n.fmt(&b, false)
	return b.String()
}

func (n *node) fmt(b *strings.Builder, square bool) {
	var l, r byte = '(', ')'
	if square {
		l, r = '[', ']'
	}
	b.WriteByte(l)
	defer b.WriteByte(r)
	switch n.kind {
	case nodeNone:
		// Invalid nodes use invalid characters.
		b.WriteByte('#')
		if n.left != nil {
			n.left.fmt(b, !square)
		}
		if n.right != nil {
			n.right.fmt(b, !square)
		}
		b.WriteByte('#')
	case nodeNum:
		b.WriteString(n.name)
	case nodeNeg:
		b.WriteByte('~')
		n.left.fmt(b, !square)
	case nodeFac:
		n.left.fmt(b, !square)
		b.WriteByte('!')
	case nodeAdd, nodeSub, nodeMul, nodeDiv, nodeMod, nodePow, nodeAvg, nodeMax, nodeMin:
		n.left.fmt(b, !square)
		b.WriteByte(' ')
		b.WriteString(opsym(n.kind))
		b.WriteByte(' ')
		n.right.fmt(b, !square)
	default:
		panic("arith: invalid node kind " + n.kind.String() + " after writing " + b.String())
	}
}
