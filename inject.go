package faceloop

// InjectAction queues a synthetic user action. Queued actions are applied one
// per frame at the start of Update, before the clock advances, exactly like
// keyboard input.
func (s *Slideshow) InjectAction(a Action) {
	s.injectQueue = append(s.injectQueue, a)
}

// processInjected pops one queued action and applies it. Returns true if an
// action was consumed.
func (s *Slideshow) processInjected() bool {
	if len(s.injectQueue) == 0 {
		return false
	}
	a := s.injectQueue[0]
	copy(s.injectQueue, s.injectQueue[1:])
	s.injectQueue = s.injectQueue[:len(s.injectQueue)-1]
	s.HandleAction(a)
	return true
}
