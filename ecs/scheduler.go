package ecs

// PauseAware is implemented by systems that keep running while the
// scheduler is paused (input, action routing, menus).
type PauseAware interface {
	RunWhilePaused() bool
}

type Scheduler struct {
	systems []System
	paused  bool
}

func NewScheduler(systems ...System) *Scheduler {
	s := &Scheduler{}
	for _, system := range systems {
		s.Add(system)
	}
	return s
}

func (s *Scheduler) Add(system System) {
	if system == nil {
		return
	}
	s.systems = append(s.systems, system)
}

// SetPaused stops every system that does not opt in via PauseAware.
func (s *Scheduler) SetPaused(paused bool) {
	s.paused = paused
}

func (s *Scheduler) Paused() bool {
	return s.paused
}

func (s *Scheduler) Update(w *World) {
	for _, system := range s.systems {
		if s.paused && !runsWhilePaused(system) {
			continue
		}
		system.Update(w)
	}
}

func (s *Scheduler) Systems() []System {
	systems := make([]System, 0, len(s.systems))
	return append(systems, s.systems...)
}

func runsWhilePaused(system System) bool {
	p, ok := system.(PauseAware)
	return ok && p.RunWhilePaused()
}
