package terminal

import "strings"

// Command is the closed set of actions the interpreter understands.
type Command int

const (
	CmdUnknown Command = iota
	CmdHelp
	CmdAbout
	CmdSkills
	CmdProjects
	CmdGitHub
	CmdContact
	CmdVisits
	CmdHack
	CmdClear
	CmdExit
	CmdSudo
	CmdSudoRoot
	CmdOmega
)

var commandWords = map[string]Command{
	"help":           CmdHelp,
	"about":          CmdAbout,
	"skills":         CmdSkills,
	"projects":       CmdProjects,
	"github":         CmdGitHub,
	"contact":        CmdContact,
	"visits":         CmdVisits,
	"log":            CmdVisits,
	"history":        CmdVisits,
	"hack":           CmdHack,
	"clear":          CmdClear,
	"exit":           CmdExit,
	"sudo":           CmdSudo,
	"sudo nl":        CmdSudo,
	"sudo nl --root": CmdSudoRoot,
	"omega":          CmdOmega,
}

// ParseCommand trims and lowercases raw and matches it against the
// command table. Only whole strings match; there are no arguments.
func ParseCommand(raw string) Command {
	if cmd, ok := commandWords[strings.ToLower(strings.TrimSpace(raw))]; ok {
		return cmd
	}
	return CmdUnknown
}

// String returns the canonical spelling of the command.
func (c Command) String() string {
	switch c {
	case CmdHelp:
		return "help"
	case CmdAbout:
		return "about"
	case CmdSkills:
		return "skills"
	case CmdProjects:
		return "projects"
	case CmdGitHub:
		return "github"
	case CmdContact:
		return "contact"
	case CmdVisits:
		return "visits"
	case CmdHack:
		return "hack"
	case CmdClear:
		return "clear"
	case CmdExit:
		return "exit"
	case CmdSudo:
		return "sudo"
	case CmdSudoRoot:
		return "sudo nl --root"
	case CmdOmega:
		return "omega"
	default:
		return "unknown"
	}
}

// PublicCommands is the command list shown by help, in display order.
// sudo and omega stay unlisted.
var PublicCommands = []Command{
	CmdHelp, CmdAbout, CmdSkills, CmdProjects, CmdGitHub,
	CmdContact, CmdVisits, CmdHack, CmdClear, CmdExit,
}

// AllCommands lists every command, public and hidden.
var AllCommands = []Command{
	CmdHelp, CmdAbout, CmdSkills, CmdProjects, CmdGitHub, CmdContact,
	CmdVisits, CmdHack, CmdClear, CmdExit, CmdSudo, CmdSudoRoot, CmdOmega,
}
