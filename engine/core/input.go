package core

// Input keeps the latest key, button and pointer state seen by the run loop.
type Input struct {
	keys           map[Key]bool
	buttons        map[MouseButton]bool
	mouseX, mouseY float64
}

func NewInput() *Input {
	return &Input{keys: map[Key]bool{}, buttons: map[MouseButton]bool{}}
}

func (in *Input) Handle(ev Event) {
	switch e := ev.(type) {
	case EventKey:
		in.keys[e.Key] = e.Down
	case EventMouseMove:
		in.mouseX, in.mouseY = e.X, e.Y
	case EventMouseButton:
		in.buttons[e.Button] = e.Down
		in.mouseX, in.mouseY = e.X, e.Y
	}
}

func (in *Input) IsKeyDown(k Key) bool            { return in.keys[k] }
func (in *Input) IsButtonDown(b MouseButton) bool { return in.buttons[b] }
func (in *Input) Mouse() (float64, float64)       { return in.mouseX, in.mouseY }
