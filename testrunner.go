package paintview

import (
	"encoding/json"
	"fmt"
)

// testStep represents a single action in a test script.
type testStep struct {
	Action string  `json:"action"`
	X      float64 `json:"x,omitempty"`
	Y      float64 `json:"y,omitempty"`
	FromX  float64 `json:"fromX,omitempty"`
	FromY  float64 `json:"fromY,omitempty"`
	ToX    float64 `json:"toX,omitempty"`
	ToY    float64 `json:"toY,omitempty"`
	Frames int     `json:"frames,omitempty"`
	DeltaY float64 `json:"deltaY,omitempty"`
}

// testScript is the top-level JSON structure for a test script.
type testScript struct {
	Steps []testStep `json:"steps"`
}

// TestRunner replays a scripted sequence of pointer-drag and wheel-zoom
// events against a ViewController, one queued event per Step call. It exists
// to drive deterministic, reproducible input sequences in tests without a
// live pointer device.
type TestRunner struct {
	steps     []testStep
	cursor    int
	waitCount int
	done      bool
	queue     []PointerEvent
	queueKind []pointerEventKind
}

type pointerEventKind uint8

const (
	pointerDown pointerEventKind = iota
	pointerMove
	pointerUp
)

// LoadTestScript parses a JSON test script into a TestRunner.
func LoadTestScript(jsonData []byte) (*TestRunner, error) {
	var script testScript
	if err := json.Unmarshal(jsonData, &script); err != nil {
		return nil, fmt.Errorf("parse test script: %w", err)
	}
	if len(script.Steps) == 0 {
		return nil, fmt.Errorf("parse test script: no steps")
	}
	return &TestRunner{steps: script.Steps}, nil
}

// Done reports whether all steps in the test script have been executed and
// their queued events drained.
func (r *TestRunner) Done() bool {
	return r.done
}

func (r *TestRunner) enqueueClick(x, y float64) {
	r.queue = append(r.queue, PointerEvent{X: x, Y: y}, PointerEvent{X: x, Y: y})
	r.queueKind = append(r.queueKind, pointerDown, pointerUp)
}

func (r *TestRunner) enqueueDrag(fromX, fromY, toX, toY float64, frames int) {
	if frames < 2 {
		frames = 2
	}
	r.queue = append(r.queue, PointerEvent{X: fromX, Y: fromY})
	r.queueKind = append(r.queueKind, pointerDown)
	steps := frames - 2
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps+1)
		x := fromX + (toX-fromX)*t
		y := fromY + (toY-fromY)*t
		r.queue = append(r.queue, PointerEvent{X: x, Y: y})
		r.queueKind = append(r.queueKind, pointerMove)
	}
	r.queue = append(r.queue, PointerEvent{X: toX, Y: toY})
	r.queueKind = append(r.queueKind, pointerUp)
}

// Step advances the runner by one frame against v: it drains one queued
// pointer event if any remain, otherwise counts down a pending wait, then
// executes the next script step.
func (r *TestRunner) Step(v *ViewController) {
	if r.done {
		return
	}
	if len(r.queue) > 0 {
		ev := r.queue[0]
		kind := r.queueKind[0]
		r.queue = r.queue[1:]
		r.queueKind = r.queueKind[1:]
		switch kind {
		case pointerDown:
			v.HandlePointerDown(ev)
		case pointerMove:
			v.HandlePointerMove(ev)
		case pointerUp:
			v.HandlePointerUp(ev)
		}
		r.checkDone()
		return
	}
	if r.waitCount > 0 {
		r.waitCount--
		r.checkDone()
		return
	}
	if r.cursor >= len(r.steps) {
		r.done = true
		return
	}

	st := r.steps[r.cursor]
	r.cursor++

	switch st.Action {
	case "click":
		r.enqueueClick(st.X, st.Y)
	case "drag":
		r.enqueueDrag(st.FromX, st.FromY, st.ToX, st.ToY, st.Frames)
	case "wheel":
		v.HandleWheel(WheelEvent{DeltaY: st.DeltaY, X: st.X, Y: st.Y})
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1
		}
	}
	r.checkDone()
}

func (r *TestRunner) checkDone() {
	if r.cursor >= len(r.steps) && r.waitCount == 0 && len(r.queue) == 0 {
		r.done = true
	}
}
