package terminal

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"nlterm/internal/visitor"

	"github.com/mattn/go-runewidth"
)

// Logo is the ASCII banner shown on first boot and after clear.
const Logo = `███╗   ██╗██╗
████╗  ██║██║
██╔██╗ ██║██║
██║╚██╗██║██║
██║ ╚████║███████╗
╚═╝  ╚═══╝╚══════╝`

const (
	boxInner   = 38
	barWidth   = 12
	recentShow = 5
	rule       = "─────────────────────────────"
)

// Profile is the portfolio content the informational commands render.
type Profile struct {
	Name       string
	Role       string
	Location   string
	Experience string
	Passion    string
	Quote      string
	Email      string
	GitHubURL  string
	Instagram  string
	LinkedIn   string
	Version    string
	Skills     []SkillGroup
	Projects   []Project
}

// SkillGroup is one category of the skill matrix.
type SkillGroup struct {
	Category string
	Skills   []Skill
}

// Skill is a named skill with a level in percent.
type Skill struct {
	Name  string
	Level int
}

// Project is one entry of the project list.
type Project struct {
	Name   string
	Status string
	Tech   []string
}

// DefaultProfile is the built-in portfolio content.
func DefaultProfile() Profile {
	return Profile{
		Name:       "Nikola Lutovac",
		Role:       "Vibe Coding Developer",
		Location:   "Montenegro",
		Experience: "1+ year",
		Passion:    "Building digital dreams",
		Quote:      "Code is poetry written in logic.",
		Email:      "hello@example.com",
		GitHubURL:  "https://github.com",
		Instagram:  "@38nikola",
		LinkedIn:   "linkedin.com",
		Version:    "1.0.0",
		Skills: []SkillGroup{
			{Category: "Frontend", Skills: []Skill{{"React", 95}, {"TypeScript", 90}, {"Tailwind", 92}}},
			{Category: "Backend", Skills: []Skill{{"Node.js", 85}, {"Python", 80}, {"SQL", 82}}},
			{Category: "Tools", Skills: []Skill{{"Git", 90}, {"Docker", 75}}},
		},
		Projects: []Project{
			{Name: "Monte Quad Kolašin", Status: "DEPLOYED", Tech: []string{"React", "TypeScript", "Tailwind"}},
			{Name: "CryptoTracker Pro", Status: "DEPLOYED", Tech: []string{"Next.js", "Chart.js"}},
			{Name: "TaskFlow", Status: "DEPLOYED", Tech: []string{"React", "Redux", "Socket.io"}},
			{Name: "DevPortfolio Builder", Status: "DEPLOYED", Tech: []string{"TypeScript", "React", "MDX"}},
		},
	}
}

// Greeting picks the salutation for the hour of t.
func Greeting(t time.Time) string {
	switch h := t.Hour(); {
	case h >= 5 && h < 12:
		return "Good morning"
	case h >= 12 && h < 18:
		return "Good afternoon"
	default:
		return "Good evening"
	}
}

func firstBootLines(p Profile) []Line {
	return []Line{
		{Kind: LineBanner, Text: Logo},
		{Kind: LineOutput, Text: fmt.Sprintf("%s TERMINAL v%s", strings.ToUpper(p.Name), p.Version)},
		{Kind: LineOutput, Text: `Type "help" for available commands.`},
	}
}

func returningBootLines(now time.Time) []Line {
	return []Line{
		{Kind: LineSuccess, Text: "[RECOGNITION PROTOCOL INITIATED...]"},
		{Kind: LineOutput},
		{Kind: LineSuccess, Text: Greeting(now) + ", Operator."},
		{Kind: LineOutput},
		{Kind: LineOutput, Text: "System integrity: STABLE"},
		{Kind: LineOutput, Text: "Access level: ROOT"},
		{Kind: LineOutput, Text: "Memory state: RESTORED"},
		{Kind: LineOutput},
		{Kind: LineOutput, Text: `Type "help" for available commands.`},
	}
}

func clearedLines() []Line {
	return []Line{
		{Kind: LineBanner, Text: Logo},
		{Kind: LineOutput, Text: "Terminal cleared."},
	}
}

func elevatedLines() []Line {
	return []Line{
		{Kind: LineOutput},
		{Kind: LineSuccess, Text: "[ULTRA MODE ACTIVATED]"},
		{Kind: LineSuccess, Text: "Clearance level: OMEGA"},
		{Kind: LineSuccess, Text: "Welcome back, Operator."},
		{Kind: LineOutput},
	}
}

var helpDescriptions = map[Command]string{
	CmdHelp:     "Show this help message",
	CmdAbout:    "Learn about %s",
	CmdSkills:   "View technical skills",
	CmdProjects: "List all projects",
	CmdGitHub:   "Open GitHub profile",
	CmdContact:  "Contact information",
	CmdVisits:   "View visitor log",
	CmdHack:     "[CLASSIFIED] Mini-game",
	CmdClear:    "Clear terminal",
	CmdExit:     "Close terminal",
}

// DescribeCommand returns the help description of a public command, or ""
// for hidden ones.
func DescribeCommand(cmd Command, p Profile) string {
	desc := helpDescriptions[cmd]
	if cmd == CmdAbout {
		firstName := p.Name
		if fields := strings.Fields(p.Name); len(fields) > 0 {
			firstName = fields[0]
		}
		desc = fmt.Sprintf(desc, firstName)
	}
	return desc
}

func helpText(p Profile) string {
	var b strings.Builder
	b.WriteString("Available Commands:\n")
	b.WriteString(rule + "\n")
	for _, cmd := range PublicCommands {
		fmt.Fprintf(&b, "  %-8s - %s\n", cmd, DescribeCommand(cmd, p))
	}
	b.WriteString(rule)
	return b.String()
}

// box draws a double-line frame with a centred title and left-aligned rows.
func box(title string, rows []string) string {
	bar := strings.Repeat("═", boxInner)
	var b strings.Builder
	b.WriteString("╔" + bar + "╗\n")
	b.WriteString("║" + center(title, boxInner) + "║\n")
	b.WriteString("╠" + bar + "╣\n")
	for _, row := range rows {
		row = runewidth.Truncate(row, boxInner-2, "…")
		b.WriteString("║  " + runewidth.FillRight(row, boxInner-2) + "║\n")
	}
	b.WriteString("╚" + bar + "╝")
	return b.String()
}

func center(s string, width int) string {
	s = runewidth.Truncate(s, width, "…")
	left := (width - runewidth.StringWidth(s)) / 2
	return runewidth.FillRight(strings.Repeat(" ", left)+s, width)
}

func aboutText(p Profile) string {
	rows := []string{
		"Location: " + p.Location,
		"Role: " + p.Role,
		"Experience: " + p.Experience,
		"Passion: " + p.Passion,
	}
	out := box(strings.ToUpper(p.Name), rows)
	if p.Quote != "" {
		out += "\n\n" + strconv.Quote(p.Quote)
	}
	return out
}

func skillBar(level int) string {
	level = max(0, min(level, 100))
	filled := (level*barWidth + 50) / 100
	return strings.Repeat("█", filled) + strings.Repeat("░", barWidth-filled)
}

func skillsText(p Profile) string {
	var b strings.Builder
	b.WriteString("[SKILL MATRIX LOADING...]\n")
	for _, group := range p.Skills {
		b.WriteString("\n")
		label := group.Category + ":"
		for i, s := range group.Skills {
			if i > 0 {
				label = ""
			}
			fmt.Fprintf(&b, "%-10s %-11s %s %d%%\n", label, s.Name, skillBar(s.Level), s.Level)
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

func projectsText(p Profile) string {
	var b strings.Builder
	b.WriteString("[ACCESSING PROJECT DATABASE...]\n")
	for i, proj := range p.Projects {
		fmt.Fprintf(&b, "\n%d. %s\n", i+1, proj.Name)
		fmt.Fprintf(&b, "   Status: %s ✓\n", proj.Status)
		fmt.Fprintf(&b, "   Tech: %s\n", strings.Join(proj.Tech, ", "))
	}
	b.WriteString("\nType 'github' to view source code.")
	return b.String()
}

func contactText(p Profile) string {
	github := strings.TrimPrefix(strings.TrimPrefix(p.GitHubURL, "https://"), "http://")
	return box("CONTACT INFORMATION", []string{
		"Email:     " + p.Email,
		"GitHub:    " + github,
		"Instagram: " + p.Instagram,
		"LinkedIn:  " + p.LinkedIn,
	})
}

func formatVisitTime(t time.Time, loc *time.Location) string {
	if t.IsZero() {
		return "N/A"
	}
	return t.In(loc).Format("2 Jan 2006, 15:04")
}

// VisitsText renders the visitor log box shown by the visits command.
func VisitsText(log visitor.Log, loc *time.Location) string {
	var b strings.Builder
	b.WriteString(box("VISITOR LOG", []string{
		"Total Visits: " + strconv.Itoa(log.Total),
		"First Visit:  " + formatVisitTime(log.First, loc),
		"Last Visit:   " + formatVisitTime(log.Last, loc),
	}))
	b.WriteString("\n\nRecent Visits:\n")
	b.WriteString(rule + "\n")
	recent := log.RecentN(recentShow)
	if len(recent) == 0 {
		b.WriteString("  No visits recorded yet.\n")
	}
	for i, v := range recent {
		fmt.Fprintf(&b, "  %d. %s at %s (%s, %s)\n", i+1, v.Date, v.Time, v.Device, v.Screen)
	}
	b.WriteString(rule)
	return b.String()
}

func accessGrantedText() string {
	return box("█ ACCESS GRANTED █", []string{
		"Welcome to the inner sanctum.",
		"You've proven your hacking skills!",
		"",
		"Easter Egg Unlocked: You're in.",
	})
}
