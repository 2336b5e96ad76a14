package terminal

import (
	"fmt"

	"nlterm/internal/visitor"
	"nlterm/pkg/logging"
)

// Execute runs raw as a command without echoing it. Unknown input adds
// exactly one error line. It reports false, doing nothing, unless the
// session has finished booting and is not closing.
func (s *Session) Execute(raw string) bool {
	if s.state != StateReady {
		return false
	}
	cmd := ParseCommand(raw)
	s.opts.Observer.CommandExecuted(cmd)
	logging.Debug(terminalSubsystem, "Session %s executing %q as %s", s.id, raw, cmd)

	p := s.opts.Profile
	switch cmd {
	case CmdHelp:
		s.output(helpText(p))
	case CmdAbout:
		s.output(aboutText(p))
	case CmdSkills:
		s.output(skillsText(p))
	case CmdProjects:
		s.output(projectsText(p))
	case CmdContact:
		s.output(contactText(p))
	case CmdVisits:
		s.output(VisitsText(visitor.Load(s.opts.Visitors), s.sched.Now().Location()))
	case CmdGitHub:
		s.success("[OPENING GITHUB...] Redirecting to profile...")
		url := p.GitHubURL
		s.sched.After(GitHubDelay, func() { s.opts.Effects.OpenURL(url) })
	case CmdHack:
		s.startHack()
	case CmdClear:
		s.history = clearedLines()
		s.touch()
	case CmdExit:
		s.output("[CLOSING TERMINAL...] Goodbye!")
		s.sched.After(ExitDelay, s.Close)
	case CmdSudo:
		s.admin = true
		s.success("[ROOT ACCESS GRANTED] Welcome, Administrator.")
	case CmdSudoRoot:
		s.grantRoot()
	case CmdOmega:
		s.omega()
	case CmdUnknown:
		s.appendLines(Line{
			Kind: LineError,
			Text: fmt.Sprintf(`Command not found: "%s". Type 'help' for available commands.`, raw),
		})
	}
	return true
}

func (s *Session) output(text string) {
	s.appendLines(Line{Kind: LineOutput, Text: text})
}

func (s *Session) success(text string) {
	s.appendLines(Line{Kind: LineSuccess, Text: text})
}

// grantRoot blocks further input and hands off to the privileged page.
func (s *Session) grantRoot() {
	if s.rootGranted {
		return
	}
	s.rootGranted = true
	s.success("[ROOT ACCESS GRANTED]")
	s.sched.Sequence(
		Step{Delay: RootRedirectNotice, Fn: func() { s.success("Redirecting to GODMODE...") }},
		Step{Delay: RootRedirectDelay, Fn: func() {
			if err := s.opts.SessionStore.Set(KeyGodMode, "true"); err != nil {
				logging.Warn(terminalSubsystem, "Failed to set %s flag: %v", KeyGodMode, err)
			}
			logging.Info(terminalSubsystem, "Session %s redirecting to %s", s.id, GodModePath)
			s.opts.Effects.Navigate(GodModePath)
		}},
	)
}

func (s *Session) omega() {
	if s.mode != ModeElevated {
		s.appendLines(Line{Kind: LineError, Text: "Access denied. Ultra Mode required."})
		return
	}
	if s.omegaActive {
		return
	}
	s.omegaActive = true
	s.touch()
	s.sched.After(OmegaOverlayFor, func() {
		s.omegaActive = false
		s.mode = ModeNormal
		s.success("[OMEGA PROTOCOL COMPLETE] Returning to normal mode.")
	})
}
