package text2d

import (
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
	"golang.org/x/image/font/gofont/gobold"
)

func TestSubmitSkipsNilImage(t *testing.T) {
	s := NewScene()
	s.commands = []RenderCommand{{Color: color32{1, 1, 1, 1}}}
	screen := ebiten.NewImage(16, 16)
	s.submitBatches(screen) // should not panic
}

func TestDrawSpritesAndText_Integration(t *testing.T) {
	// Integration test: Draw runs without panic on sprites, smoothed text
	// and unsmoothed text.
	src, err := LoadFontSource(gobold.TTF)
	if err != nil {
		t.Fatal(err)
	}
	s := NewScene()
	s.SetClock(NewFixedClock(1.0 / 60))
	s.ClearColor = RGB(0.17, 0.17, 0.17)

	box := s.Add(NewSprite("box", RGB(0.25, 0.25, 0.75), Vec2{X: 300, Y: 200}))
	box.Transform = FromTranslation(0, -250, 0)
	wrapped := NewText("wrapped", "this text wraps in the box", src.Face(35))
	wrapped.TextBlock.Bounds = &Vec2{X: 300, Y: 200}
	wrapped.Transform = FromTranslation(0, 0, 1)
	box.AddChild(wrapped)

	hard := s.Add(NewText("hard", "unsmoothed", src.Face(35)))
	hard.TextBlock.Smoothing = false
	spin := s.Add(NewText("rotation", "rotation", src.Face(50)))
	spin.Channel = ChannelRotation

	if err := s.Update(); err != nil {
		t.Fatal(err)
	}
	screen := ebiten.NewImage(1280, 720)
	s.Draw(screen)

	if len(s.commands) != 4 {
		t.Errorf("commands = %d, want 4", len(s.commands))
	}
	if s.commands[len(s.commands)-1].image != wrapped.TextBlock.image {
		t.Error("text at z=1 inside the box should be drawn last")
	}
	for _, cmd := range s.commands {
		if cmd.image == hard.TextBlock.image && cmd.filter != ebiten.FilterNearest {
			t.Error("unsmoothed text should be sampled with nearest filtering")
		}
		if cmd.image == spin.TextBlock.image && cmd.filter != ebiten.FilterLinear {
			t.Error("smoothed text should be sampled with linear filtering")
		}
	}
}

func TestTextImageCachedAcrossFrames(t *testing.T) {
	src, err := LoadFontSource(gobold.TTF)
	if err != nil {
		t.Fatal(err)
	}
	tb := NewText("t", "cached", src.Face(35)).TextBlock

	first := tb.renderImage()
	if first == nil {
		t.Fatal("renderImage returned nil")
	}
	if tb.renderImage() != first {
		t.Error("unchanged block should reuse its image")
	}

	tb.Content = "changed"
	tb.Invalidate()
	if tb.renderImage() == first {
		t.Error("invalidated block should rebuild its image")
	}
}
