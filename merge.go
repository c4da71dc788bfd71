package svgfx

import "github.com/gogpu/svgfx/internal/blend"

// Merge is feMerge: its inputs are layered bottom to top with the over
// operator. Wire the layers with SetInputN.
type Merge struct {
	base
}

// NewMerge creates a merge without layers; it renders transparent.
func NewMerge() *Merge {
	return &Merge{}
}

func (m *Merge) Type() PrimitiveType { return TypeMerge }

func (m *Merge) SetAttribute(name, value string) error {
	return m.setCommon(name, value)
}

// Complexity counts one composite per layer after the first.
func (m *Merge) Complexity(Matrix) float64 {
	return max(1, float64(len(m.inputs)))
}

func (m *Merge) Render(s *Slot) {
	if len(m.inputs) == 0 {
		m.write(s, s.blank(FormatARGB32))
		return
	}
	over := blend.OperatorFunc(blend.OperatorOver)
	acc := m.read(s, 0).Clone()
	for i := 1; i < len(m.inputs); i++ {
		acc = combine(m.read(s, i), acc, over)
	}
	m.write(s, acc)
}
