package svgfx

import (
	"fmt"
	"strconv"

	"github.com/gogpu/svgfx/internal/blend"
)

// Composite is feComposite: a Porter-Duff operator, or the arithmetic
// combination k1·i1·i2 + k2·i1 + k3·i2 + k4.
type Composite struct {
	base
	op             blend.Operator
	k1, k2, k3, k4 float64
}

// NewComposite creates a composite with the over operator.
func NewComposite() *Composite {
	return &Composite{op: blend.OperatorOver}
}

func (c *Composite) Type() PrimitiveType { return TypeComposite }

// SetOperator selects the operator by its keyword.
func (c *Composite) SetOperator(name string) error {
	op, ok := blend.ParseOperator(name)
	if !ok {
		return fmt.Errorf("%w: composite operator %q", ErrInvalidAttribute, name)
	}
	c.op = op
	return nil
}

// SetArithmetic switches to the arithmetic operator with the given
// coefficients.
func (c *Composite) SetArithmetic(k1, k2, k3, k4 float64) {
	c.op = blend.OperatorArithmetic
	c.k1, c.k2, c.k3, c.k4 = k1, k2, k3, k4
}

func (c *Composite) SetAttribute(name, value string) error {
	var k *float64
	switch name {
	case "operator":
		return c.SetOperator(value)
	case "k1":
		k = &c.k1
	case "k2":
		k = &c.k2
	case "k3":
		k = &c.k3
	case "k4":
		k = &c.k4
	default:
		return c.setCommon(name, value)
	}
	v, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return fmt.Errorf("%w: %s=%q", ErrInvalidAttribute, name, value)
	}
	*k = v
	return nil
}

func (c *Composite) Render(s *Slot) {
	fn := blend.OperatorFunc(c.op)
	if c.op == blend.OperatorArithmetic {
		fn = blend.Arithmetic(c.k1, c.k2, c.k3, c.k4)
	}
	c.write(s, combine(c.read(s, 0), c.read(s, 1), fn))
}
