package text2d

import (
	"encoding/json"
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
)

// replayStep represents a single action in a replay script.
type replayStep struct {
	Action  string  `json:"action"`
	Label   string  `json:"label,omitempty"`
	Seconds float64 `json:"seconds,omitempty"`
	Frames  int     `json:"frames,omitempty"`
}

// replayScript is the top-level JSON structure for a replay script.
type replayScript struct {
	Steps []replayStep `json:"steps"`
}

// Replay drives a scene from a fixed-step clock following a script, so the
// same frames are produced on every run. Attach with Scene.SetReplay.
//
// Actions:
//
//	seek        jump the clock to "seconds"
//	wait        let "frames" frames pass at the fixed step
//	screenshot  capture the frame under "label"
//	quit        make Scene.Update return ErrReplayDone
type Replay struct {
	steps     []replayStep
	cursor    int
	waitCount int
	done      bool
	clock     *FixedClock
}

// LoadReplayScript parses a JSON replay script. The clock advances one
// Ebitengine tick (1/60 s) per frame.
func LoadReplayScript(jsonData []byte) (*Replay, error) {
	var script replayScript
	if err := json.Unmarshal(jsonData, &script); err != nil {
		return nil, fmt.Errorf("parse replay script: %w", err)
	}
	if len(script.Steps) == 0 {
		return nil, fmt.Errorf("parse replay script: no steps")
	}
	for i, st := range script.Steps {
		switch st.Action {
		case "seek", "wait", "screenshot", "quit":
		default:
			return nil, fmt.Errorf("parse replay script: step %d: unknown action %q", i, st.Action)
		}
	}
	return &Replay{
		steps: script.Steps,
		clock: NewFixedClock(1.0 / float64(ebiten.DefaultTPS)),
	}, nil
}

// SetReplay attaches a replay to the scene and makes its fixed-step clock the
// scene clock. Nil detaches and restores a wall clock.
func (s *Scene) SetReplay(r *Replay) {
	s.replay = r
	if r == nil {
		s.SetClock(nil)
		return
	}
	s.clock = r.clock
}

// Done reports whether all steps in the script have been executed.
func (r *Replay) Done() bool {
	return r.done
}

// Clock returns the replay's fixed-step clock.
func (r *Replay) Clock() *FixedClock {
	return r.clock
}

// holding reports whether a queued screenshot has yet to be drawn. Ebitengine
// may run several Updates per Draw.
func (r *Replay) holding(s *Scene) bool {
	return len(s.screenshotQueue) > 0
}

// step advances the replay by one frame. Called from Scene.Update before the
// clock advances. Seeks run together with the step that follows them, so
// "seek" then "screenshot" captures exactly the seeked time. Returns true
// once a quit step is reached.
func (r *Replay) step(s *Scene) bool {
	if r.done {
		return false
	}
	if r.waitCount > 0 {
		r.waitCount--
		return false
	}

	for r.cursor < len(r.steps) {
		st := r.steps[r.cursor]
		r.cursor++

		switch st.Action {
		case "seek":
			r.clock.Seek(st.Seconds)
			continue
		case "screenshot":
			s.Screenshot(st.Label)
		case "wait":
			if st.Frames > 0 {
				r.waitCount = st.Frames - 1 // this frame counts as one
			}
		case "quit":
			r.done = true
			return true
		}
		break
	}

	if r.cursor >= len(r.steps) && r.waitCount == 0 {
		r.done = true
	}
	return false
}
