// Package progress reports load phases of the host and paints them as a bar
// over the splash animation.
package progress

import "fmt"

// State is a snapshot of the reported progress.
type State struct {
	Name   string
	Total  int
	Worked float64
}

// Percentage returns the completed share of Total as an integer in [0, 100].
func (s State) Percentage() int {
	if s.Total <= 0 {
		return 0
	}
	return min(100, int(100*s.Worked/float64(s.Total)))
}

// Label is the text drawn next to the bar, empty while no total is known.
func (s State) Label() string {
	if s.Total <= 0 {
		return ""
	}
	return fmt.Sprintf("%s -- %d%%", s.Name, s.Percentage())
}

func (s *State) begin(name string, total int) {
	s.Name = name
	s.Total = max(total, 0)
	s.Worked = 0
}

// work adds delta keeping Worked monotonic and within Total.
func (s *State) work(delta float64) {
	if delta <= 0 {
		return
	}
	s.Worked = min(s.Worked+delta, float64(s.Total))
}

func (s *State) done() {
	s.Worked = float64(s.Total)
}
