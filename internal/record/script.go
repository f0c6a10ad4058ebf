package record

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Script is a hand-written pointer sequence, useful for demos and for
// reproducing a drag without recording it.
type Script struct {
	Name        string       `yaml:"name"`
	Description string       `yaml:"description"`
	Preset      string       `yaml:"preset"`
	Steps       []ScriptStep `yaml:"steps"`
}

// ScriptStep is one action. A step with Repeat > 1 is a swipe: it emits
// Repeat moves, each shifted by (DX, DY) and separated by WaitMs.
type ScriptStep struct {
	Kind   string  `yaml:"kind"`
	X      float64 `yaml:"x"`
	Y      float64 `yaml:"y"`
	DX     float64 `yaml:"dx"`
	DY     float64 `yaml:"dy"`
	Repeat int     `yaml:"repeat"`
	WaitMs int     `yaml:"wait_ms"`
}

func LoadScript(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var s Script
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// Events expands the script into timestamped events. Move deltas are taken
// from the previous pointer position.
func (s *Script) Events() ([]Event, error) {
	var (
		at     time.Duration
		last   struct{ x, y float64 }
		events []Event
	)
	emit := func(kind Kind, x, y float64) {
		events = append(events, Event{At: at, Kind: kind, X: x, Y: y, DX: x - last.x, DY: y - last.y})
		last.x, last.y = x, y
	}

	for i, st := range s.Steps {
		kind, err := ParseKind(st.Kind)
		if err != nil {
			return nil, fmt.Errorf("step %d: %w", i+1, err)
		}
		wait := time.Duration(st.WaitMs) * time.Millisecond

		if kind == KindMove && st.Repeat > 1 {
			x, y := st.X, st.Y
			for r := 0; r < st.Repeat; r++ {
				at += wait
				emit(KindMove, x, y)
				x += st.DX
				y += st.DY
			}
			continue
		}

		at += wait
		switch kind {
		case KindUp:
			events = append(events, Event{At: at, Kind: KindUp, X: last.x, Y: last.y})
		default:
			emit(kind, st.X, st.Y)
		}
	}
	return events, nil
}
