package text2d

import "github.com/hajimehoshi/ebiten/v2"

// submitBatches draws the sorted commands onto target in order.
func (s *Scene) submitBatches(target *ebiten.Image) {
	if len(s.commands) == 0 {
		return
	}

	var op ebiten.DrawImageOptions
	for i := range s.commands {
		s.submitSprite(target, &s.commands[i], &op)
	}
}

// submitSprite draws a single command using DrawImage.
func (s *Scene) submitSprite(target *ebiten.Image, cmd *RenderCommand, op *ebiten.DrawImageOptions) {
	if cmd.image == nil {
		return
	}
	op.GeoM.Reset()
	op.GeoM.Concat(commandGeoM(cmd))

	// Apply premultiplied color scale
	op.ColorScale.Reset()
	a := cmd.Color.A
	op.ColorScale.Scale(cmd.Color.R*a, cmd.Color.G*a, cmd.Color.B*a, a)

	op.Filter = cmd.filter
	target.DrawImage(cmd.image, op)
}

// commandGeoM converts a command's transform into an ebiten.GeoM.
func commandGeoM(cmd *RenderCommand) ebiten.GeoM {
	var m ebiten.GeoM
	m.SetElement(0, 0, float64(cmd.Transform[0]))
	m.SetElement(1, 0, float64(cmd.Transform[1]))
	m.SetElement(0, 1, float64(cmd.Transform[2]))
	m.SetElement(1, 1, float64(cmd.Transform[3]))
	m.SetElement(0, 2, float64(cmd.Transform[4]))
	m.SetElement(1, 2, float64(cmd.Transform[5]))
	return m
}
