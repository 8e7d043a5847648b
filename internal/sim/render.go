package sim

// Sprite is the per-entity transform a renderer needs. Pool slots hold the
// sprite of the live entity that owns them.
type Sprite struct {
	Position Vec2
	Rotation float64
	ScaleX   float64
	ScaleY   float64
}

// SpriteKind tags a SpriteView.
type SpriteKind int

const (
	SpriteBoat SpriteKind = iota
	SpriteHook
	SpriteFish
	SpriteSpecialFish
	SpriteShark
	SpriteBomb
)

func (k SpriteKind) String() string {
	switch k {
	case SpriteBoat:
		return "boat"
	case SpriteHook:
		return "hook"
	case SpriteFish:
		return "fish"
	case SpriteSpecialFish:
		return "special"
	case SpriteShark:
		return "shark"
	case SpriteBomb:
		return "bomb"
	}
	return "unknown"
}

func spriteKindOf(sp Species) SpriteKind {
	switch sp {
	case SpecialFish:
		return SpriteSpecialFish
	case Shark:
		return SpriteShark
	}
	return SpriteFish
}

// SpriteView is one drawable entity for the current frame.
type SpriteView struct {
	Kind   SpriteKind
	Label  string
	Sprite Sprite
	Active bool // caught creature, or bomb about to detonate
}

const bombSize = 0.15

// syncSprites writes the current transform of every live entity into the
// pool slot it owns.
func (s *Simulation) syncSprites() {
	for _, c := range s.state.Creatures {
		if slot := s.pools[c.Species].Slot(c.Handle); slot != nil {
			*slot = Sprite{
				Position: c.Pos(),
				Rotation: c.Rotation,
				ScaleX:   c.ScaleX * c.Width,
				ScaleY:   c.Width / 2,
			}
		}
	}
	for _, b := range s.state.Bombs {
		if slot := s.bombPool.Slot(b.Handle); slot != nil {
			*slot = Sprite{Position: b.Pos(), ScaleX: bombSize, ScaleY: bombSize}
		}
	}
}

// Sprites returns everything a renderer draws this frame, back to front:
// boat, hook, creatures, bombs.
func (s *Simulation) Sprites() []SpriteView {
	out := make([]SpriteView, 0, 2+len(s.state.Creatures)+len(s.state.Bombs))
	out = append(out, SpriteView{
		Kind:   SpriteBoat,
		Label:  "boat",
		Sprite: s.state.Boat.Transform(s.world, s.phase),
	})
	out = append(out, SpriteView{
		Kind:   SpriteHook,
		Label:  "hook",
		Sprite: Sprite{Position: s.LineTip(), ScaleX: 1, ScaleY: 1},
	})
	for _, c := range s.state.Creatures {
		slot := s.pools[c.Species].Slot(c.Handle)
		if slot == nil {
			continue
		}
		out = append(out, SpriteView{
			Kind:   spriteKindOf(c.Species),
			Label:  c.Label(),
			Sprite: *slot,
			Active: c.Caught,
		})
	}
	for _, b := range s.state.Bombs {
		slot := s.bombPool.Slot(b.Handle)
		if slot == nil {
			continue
		}
		out = append(out, SpriteView{
			Kind:   SpriteBomb,
			Label:  b.Label(),
			Sprite: *slot,
			Active: b.IsExploding,
		})
	}
	return out
}
