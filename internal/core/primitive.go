package core

// Primitive is a single visual element submitted to a presentation surface.
// The set of primitives is closed: Sprite and Label.
type Primitive interface {
	primitive()
}

// Sprite is one animation frame of a tile, drawn at a pixel position.
type Sprite struct {
	Pos   Vec2
	Glyph rune
	Color Color
}

// Label is a run of text drawn at a pixel position.
// When Centered is set, Pos.X is ignored and the text is centered horizontally.
type Label struct {
	Pos      Vec2
	Text     string
	Color    Color
	Centered bool
}

func (Sprite) primitive() {}
func (Label) primitive()  {}

// Translate returns a copy of the primitive moved by offset.
func Translate(p Primitive, offset Vec2) Primitive {
	switch v := p.(type) {
	case Sprite:
		v.Pos = v.Pos.Add(offset)
		return v
	case Label:
		v.Pos = v.Pos.Add(offset)
		return v
	default:
		return p
	}
}
