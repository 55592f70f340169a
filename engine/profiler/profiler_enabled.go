//go:build profile

package profiler

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"
)

func Enabled() bool { return true }

// Init sizes the span ring and starts recording. Calling it again drops
// every recorded span.
func Init(capacity int) {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	spans.init(capacity)
}

// Start opens a span and returns the func that closes it.
func Start(name string) func() {
	if !spans.ready.Load() {
		return func() {}
	}
	id := names.intern(name)
	at := time.Now().UnixNano()
	spans.push(event{at: at, name: id, open: true})
	return func() {
		end := time.Now().UnixNano()
		if end < at {
			end = at
		}
		spans.push(event{at: end, name: id})
	}
}

// OpenProfilerGraph writes the recorded spans to a temporary file and
// hands it to the speedscope viewer. The file path is returned even when
// the viewer cannot be launched.
func OpenProfilerGraph() (string, error) {
	path := filepath.Join(os.TempDir(), "canopy.speedscope.json")
	tmp := path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return "", err
	}
	if err := WriteSpeedscope(f); err != nil {
		_ = f.Close()
		_ = os.Remove(tmp)
		return "", err
	}
	if err := f.Close(); err != nil {
		return "", err
	}
	if err := os.Rename(tmp, path); err != nil {
		return "", err
	}
	if err := exec.Command("speedscope", path).Start(); err != nil {
		return path, fmt.Errorf("profiler: launch speedscope: %w", err)
	}
	return path, nil
}

// WriteSpeedscope encodes the recorded spans as an evented speedscope
// profile. Closes without a matching open are dropped and spans still open
// are closed at the last timestamp.
func WriteSpeedscope(w io.Writer) error {
	evs := spans.snapshot()
	frames := names.snapshot()

	var (
		out   []ssEvent
		stack []int
		base  int64
		last  int64 = -1
	)
	if len(evs) > 0 {
		base = evs[0].at
	}
	for _, e := range evs {
		at := max((e.at-base)/1000, last)
		if e.open {
			out = append(out, ssEvent{Type: "O", At: at, Frame: e.name})
			stack = append(stack, e.name)
		} else {
			if len(stack) == 0 || stack[len(stack)-1] != e.name {
				continue
			}
			stack = stack[:len(stack)-1]
			out = append(out, ssEvent{Type: "C", At: at, Frame: e.name})
		}
		last = at
	}
	for i := len(stack) - 1; i >= 0; i-- {
		out = append(out, ssEvent{Type: "C", At: last, Frame: stack[i]})
	}
	if len(out) == 0 {
		return ErrNoSpans
	}

	ssFrames := make([]ssFrame, len(frames))
	for i, n := range frames {
		ssFrames[i] = ssFrame{Name: n}
	}
	doc := ssFile{
		Schema: "https://www.speedscope.app/file-format-schema.json",
		Shared: ssShared{Frames: ssFrames},
		Profiles: []ssProfile{{
			Type:     "evented",
			Name:     "canopy",
			Unit:     "microseconds",
			EndValue: max(last, 0),
			Events:   out,
		}},
		Exporter: "canopy-profiler",
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(&doc)
}

type event struct {
	at   int64
	name int
	open bool
}

// ring keeps the newest events; writers only contend on the cursor.
type ring struct {
	ready  atomic.Bool
	cursor atomic.Uint64
	size   uint64
	evs    []event
}

var spans ring

func (r *ring) init(capacity int) {
	r.ready.Store(false)
	r.size = uint64(capacity)
	r.evs = make([]event, r.size)
	r.cursor.Store(0)
	r.ready.Store(true)
}

func (r *ring) push(e event) {
	i := r.cursor.Add(1) - 1
	r.evs[i%r.size] = e
}

// snapshot returns the retained events in write order.
func (r *ring) snapshot() []event {
	if !r.ready.Load() {
		return nil
	}
	n := r.cursor.Load()
	start := uint64(0)
	if n > r.size {
		start = n - r.size
	}
	out := make([]event, 0, n-start)
	for k := start; k < n; k++ {
		out = append(out, r.evs[k%r.size])
	}
	return out
}

type interner struct {
	mu    sync.Mutex
	names []string
	ids   map[string]int
}

var names = interner{ids: map[string]int{}}

func (in *interner) intern(name string) int {
	in.mu.Lock()
	defer in.mu.Unlock()
	if id, ok := in.ids[name]; ok {
		return id
	}
	id := len(in.names)
	in.ids[name] = id
	in.names = append(in.names, name)
	return id
}

func (in *interner) snapshot() []string {
	in.mu.Lock()
	defer in.mu.Unlock()
	out := make([]string, len(in.names))
	copy(out, in.names)
	return out
}

type ssFile struct {
	Schema   string      `json:"$schema"`
	Shared   ssShared    `json:"shared"`
	Profiles []ssProfile `json:"profiles"`
	Exporter string      `json:"exporter,omitempty"`
}

type ssShared struct {
	Frames []ssFrame `json:"frames"`
}

type ssFrame struct {
	Name string `json:"name"`
}

type ssProfile struct {
	Type       string    `json:"type"`
	Name       string    `json:"name"`
	Unit       string    `json:"unit"`
	StartValue int64     `json:"startValue"`
	EndValue   int64     `json:"endValue"`
	Events     []ssEvent `json:"events"`
}

type ssEvent struct {
	Type  string `json:"type"` // "O" or "C"
	At    int64  `json:"at"`
	Frame int    `json:"frame"`
}
