package state

import "time"

// PlaybackState manages step playback timing. CurrentTime is measured in
// simulation steps; Speed is steps per wall-clock second.
type PlaybackState struct {
	CurrentTime float64
	MaxTime     float64
	Speed       float64
	Playing     bool
	lastUpdate  time.Time
}

// NewPlaybackState creates a playback over steps [0, maxStep].
func NewPlaybackState(maxStep int) *PlaybackState {
	return &PlaybackState{
		MaxTime:    float64(maxStep),
		Speed:      2.0,
		lastUpdate: time.Now(),
	}
}

// TogglePlay toggles playback on/off.
func (p *PlaybackState) TogglePlay() {
	p.Playing = !p.Playing
	if p.Playing {
		p.lastUpdate = time.Now()
		// Reset to start if at end
		if p.CurrentTime >= p.MaxTime {
			p.CurrentTime = 0
		}
	}
}

// Pause stops playback.
func (p *PlaybackState) Pause() {
	p.Playing = false
}

// Reset rewinds to step 0.
func (p *PlaybackState) Reset() {
	p.CurrentTime = 0
	p.Playing = false
}

// Advance advances playback by elapsed time since last update.
func (p *PlaybackState) Advance() {
	if !p.Playing {
		return
	}
	now := time.Now()
	p.AdvanceBy(now.Sub(p.lastUpdate))
	p.lastUpdate = now
}

// AdvanceBy moves playback forward by d of wall-clock time.
func (p *PlaybackState) AdvanceBy(d time.Duration) {
	p.CurrentTime += d.Seconds() * p.Speed
	if p.CurrentTime >= p.MaxTime {
		p.CurrentTime = p.MaxTime
		p.Playing = false
	}
}

// SetTime sets the current playback time, clamped to [0, MaxTime].
func (p *PlaybackState) SetTime(t float64) {
	if t < 0 {
		t = 0
	}
	if t > p.MaxTime {
		t = p.MaxTime
	}
	p.CurrentTime = t
}

// Step returns the simulation step being displayed.
func (p *PlaybackState) Step() int {
	return int(p.CurrentTime)
}

// StepForward pauses and moves to the next whole step.
func (p *PlaybackState) StepForward() {
	p.Pause()
	p.SetTime(float64(p.Step() + 1))
}

// StepBack pauses and moves to the previous whole step.
func (p *PlaybackState) StepBack() {
	p.Pause()
	step := p.Step()
	if float64(step) == p.CurrentTime {
		step--
	}
	p.SetTime(float64(step))
}

// SetSpeed sets the playback speed, clamped to [0.25, 20] steps/s.
func (p *PlaybackState) SetSpeed(speed float64) {
	if speed < 0.25 {
		speed = 0.25
	}
	if speed > 20 {
		speed = 20
	}
	p.Speed = speed
}

// Progress returns current progress as 0-1.
func (p *PlaybackState) Progress() float64 {
	if p.MaxTime <= 0 {
		return 0
	}
	return p.CurrentTime / p.MaxTime
}
