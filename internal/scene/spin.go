package scene

import "github.com/charmbracelet/harmonica"

// Spinner yields the per-tick spin step. Toggling eases the step toward
// its new target on a critically damped spring instead of snapping.
type Spinner struct {
	Step float64 // current degrees per tick

	rate   float64
	target float64
	vel    float64
	spring harmonica.Spring
}

// NewSpinner creates a spinner running at rate degrees per tick when on.
func NewSpinner(fps int, rate float64, on bool) *Spinner {
	s := &Spinner{
		rate: rate,
		// Frequency 4.0 settles in about a second, damping 1.0 never overshoots.
		spring: harmonica.NewSpring(harmonica.FPS(fps), 4.0, 1.0),
	}
	if on {
		s.target = rate
		s.Step = rate
	}
	return s
}

// Spinning reports whether the spinner is heading toward full speed.
func (s *Spinner) Spinning() bool { return s.target != 0 }

// Toggle starts or stops spinning.
func (s *Spinner) Toggle() {
	if s.Spinning() {
		s.target = 0
	} else {
		s.target = s.rate
	}
}

// Next advances the spring one frame and returns the step to apply.
func (s *Spinner) Next() float64 {
	s.Step, s.vel = s.spring.Update(s.Step, s.vel, s.target)
	return s.Step
}
