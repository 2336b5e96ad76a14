package terminal

import "nlterm/pkg/logging"

// startHack begins the progress simulation unless one is already running.
func (s *Session) startHack() {
	if s.hacking {
		return
	}
	s.hacking = true
	s.hackProgress = 0
	s.hackStarted = s.sched.Now()
	s.output("[INITIATING HACK SEQUENCE...]")
	s.sched.After(HackTick, s.hackStep)
}

// hackStep adds a random increment and repeats until progress reaches 100.
func (s *Session) hackStep() {
	s.hackProgress += s.opts.Rand.Float64() * HackMaxStep
	if s.hackProgress < 100 {
		s.touch()
		s.sched.After(HackTick, s.hackStep)
		return
	}

	s.hackProgress = 100
	s.hacking = false
	s.accessGranted = true
	s.appendLines(Line{Kind: LineSuccess, Text: accessGrantedText()})
	elapsed := s.sched.Now().Sub(s.hackStarted)
	s.opts.Observer.HackCompleted(elapsed)
	logging.Debug(terminalSubsystem, "Session %s hack completed after %s", s.id, elapsed)

	s.sched.After(AccessGrantedFor, func() {
		s.accessGranted = false
		s.touch()
	})
}
