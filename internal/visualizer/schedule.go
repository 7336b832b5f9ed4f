package visualizer

// taskSlot holds at most one pending task. Scheduling a new task cancels the
// previous one, and a callback that fires after being superseded or
// cancelled does nothing.
type taskSlot struct {
	task Task
	gen  uint64
}

func (s *taskSlot) schedule(start func(fn func()) Task, fn func()) {
	s.cancel()
	gen := s.gen
	s.task = start(func() {
		if gen != s.gen {
			return
		}
		s.task = nil
		fn()
	})
}

func (s *taskSlot) cancel() {
	if s.task != nil {
		s.task.Cancel()
		s.task = nil
	}
	s.gen++
}

func (s *taskSlot) pending() bool {
	return s.task != nil
}
