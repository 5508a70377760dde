package ode

import "fmt"

// Point is one accepted (time, state) pair.
type Point struct {
	T float64
	U State
}

// Trajectory is the append-only ordered history of accepted points from one
// run. Times are strictly increasing and the state dimension is fixed by the
// first entry. Rejected step proposals never reach the trajectory.
type Trajectory struct {
	times  []float64
	states []State
	parts  []Partition
}

// NewTrajectory creates an empty trajectory. parts may be nil for
// unpartitioned systems.
func NewTrajectory(parts []Partition) *Trajectory {
	return &Trajectory{parts: parts}
}

// Append adds an accepted point. The time must exceed the last recorded time
// and the state dimension must match previous entries.
func (tr *Trajectory) Append(t float64, u State) error {
	if n := len(tr.times); n > 0 {
		if t <= tr.times[n-1] {
			return fmt.Errorf("%w: time %g not after %g", ErrInvalidConfig, t, tr.times[n-1])
		}
		if len(u) != len(tr.states[0]) {
			return fmt.Errorf("%w: state dim %d, trajectory dim %d", ErrInvalidConfig, len(u), len(tr.states[0]))
		}
	}
	tr.times = append(tr.times, t)
	tr.states = append(tr.states, u.Clone())
	return nil
}

// Reset drops all recorded points, keeping the partition layout.
func (tr *Trajectory) Reset() {
	tr.times = tr.times[:0]
	tr.states = tr.states[:0]
}

func (tr *Trajectory) Len() int { return len(tr.times) }

// Last returns the most recent accepted point.
func (tr *Trajectory) Last() (float64, State) {
	n := len(tr.times)
	if n == 0 {
		return 0, nil
	}
	return tr.times[n-1], tr.states[n-1].Clone()
}

// At returns the i-th accepted point.
func (tr *Trajectory) At(i int) (float64, State) {
	return tr.times[i], tr.states[i].Clone()
}

// Times returns a copy of the recorded time points.
func (tr *Trajectory) Times() []float64 {
	out := make([]float64, len(tr.times))
	copy(out, tr.times)
	return out
}

// States returns copies of the recorded states.
func (tr *Trajectory) States() []State {
	out := make([]State, len(tr.states))
	for i, s := range tr.states {
		out[i] = s.Clone()
	}
	return out
}

// Recent returns the last k accepted points, oldest first. Used by
// multistep schemes.
func (tr *Trajectory) Recent(k int) []Point {
	n := len(tr.times)
	if k > n {
		k = n
	}
	out := make([]Point, k)
	for i := 0; i < k; i++ {
		out[i] = Point{T: tr.times[n-k+i], U: tr.states[n-k+i].Clone()}
	}
	return out
}

// Partitions returns the partition layout recorded for this trajectory.
func (tr *Trajectory) Partitions() []Partition { return tr.parts }

// View is a read-only window onto a live trajectory. It reflects points
// appended after its creation but offers no mutators.
type View struct {
	tr *Trajectory
}

func (tr *Trajectory) View() View { return View{tr: tr} }

func (v View) Len() int                  { return v.tr.Len() }
func (v View) Times() []float64          { return v.tr.Times() }
func (v View) States() []State           { return v.tr.States() }
func (v View) At(i int) (float64, State) { return v.tr.At(i) }
func (v View) Last() (float64, State)    { return v.tr.Last() }
func (v View) Partitions() []Partition   { return v.tr.Partitions() }

func (v View) Component(name string) ([]State, error) {
	return v.tr.Component(name)
}

// Component extracts the named sub-state sequence for partitioned systems.
func (tr *Trajectory) Component(name string) ([]State, error) {
	for _, p := range tr.parts {
		if p.Name == name {
			out := make([]State, len(tr.states))
			for i, s := range tr.states {
				out[i] = State(s[p.Offset : p.Offset+p.Size]).Clone()
			}
			return out, nil
		}
	}
	return nil, fmt.Errorf("%w: unknown partition %q", ErrInvalidConfig, name)
}
