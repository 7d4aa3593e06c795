package orion

import (
	"fmt"
	"log/slog"
)

type State int

const (
	StateUninitialized State = iota
	StateDeviceReady
	StateResourcesLoaded
	StateRendering
	StateStopped
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "Uninitialized"
	case StateDeviceReady:
		return "DeviceReady"
	case StateResourcesLoaded:
		return "ResourcesLoaded"
	case StateRendering:
		return "Rendering"
	case StateStopped:
		return "Stopped"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Frame renders and presents one frame.
type Frame interface {
	RenderFrame() error
}

// Scheduler drives frame production. It only renders once the device is
// ready and the resources are loaded, and stops for good after a failed frame.
type Scheduler struct {
	state State
	frame Frame
	times FrameTimes
}

func NewScheduler() *Scheduler {
	return &Scheduler{}
}

func (s *Scheduler) State() State {
	return s.state
}

// Times returns the timing of the frames rendered so far.
func (s *Scheduler) Times() FrameTimes {
	return s.times
}

// DeviceReady records that the device and the surface are configured.
func (s *Scheduler) DeviceReady() error {
	return s.transition(StateUninitialized, StateDeviceReady)
}

// ResourcesLoaded records that pipeline and buffers exist. Ticks will render
// frame once the scheduler is started.
func (s *Scheduler) ResourcesLoaded(frame Frame) error {
	if frame == nil {
		return fmt.Errorf("%w: frame must not be nil", ErrInvalidTransition)
	}

	if err := s.transition(StateDeviceReady, StateResourcesLoaded); err != nil {
		return err
	}

	s.frame = frame
	return nil
}

func (s *Scheduler) Start() error {
	return s.transition(StateResourcesLoaded, StateRendering)
}

// Stop ends rendering. Further ticks do nothing.
func (s *Scheduler) Stop() {
	if s.state != StateStopped {
		slog.Debug("Stop scheduler", slog.String("state", s.state.String()))
	}

	s.state = StateStopped
	s.frame = nil
}

// Tick renders one frame if the scheduler is rendering and does nothing
// otherwise. A frame that fails stops the scheduler.
func (s *Scheduler) Tick() error {
	if s.state != StateRendering {
		return nil
	}

	if err := s.frame.RenderFrame(); err != nil {
		s.Stop()
		return fmt.Errorf("render frame: %w", err)
	}

	if s.times.Tick() {
		slog.Debug("Frame times",
			slog.Uint64("frames", s.times.FrameCount),
			slog.Float64("fps", s.times.FPS()),
			slog.Duration("average", s.times.AverageDuration),
			slog.Duration("max", s.times.MaxDuration),
		)
	}

	return nil
}

func (s *Scheduler) transition(from, to State) error {
	if s.state != from {
		return fmt.Errorf("%w: %s -> %s, scheduler is %s", ErrInvalidTransition, from, to, s.state)
	}

	slog.Debug("Scheduler transition",
		slog.String("from", from.String()),
		slog.String("to", to.String()),
	)

	s.state = to
	return nil
}
