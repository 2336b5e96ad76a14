package app

import (
	"nlterm/internal/config"
	"nlterm/internal/terminal"
)

// ProfileFromConfig overlays the configured profile on the built-in one.
// Empty fields keep their defaults; configured skill and project lists
// replace the defaults whole.
func ProfileFromConfig(pc config.ProfileConfig) terminal.Profile {
	p := terminal.DefaultProfile()
	set := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	set(&p.Name, pc.Name)
	set(&p.Role, pc.Role)
	set(&p.Location, pc.Location)
	set(&p.Experience, pc.Experience)
	set(&p.Passion, pc.Passion)
	set(&p.Quote, pc.Quote)
	set(&p.Email, pc.Email)
	set(&p.GitHubURL, pc.GitHubURL)
	set(&p.Instagram, pc.Instagram)
	set(&p.LinkedIn, pc.LinkedIn)
	set(&p.Version, pc.Version)

	if len(pc.Skills) > 0 {
		p.Skills = make([]terminal.SkillGroup, 0, len(pc.Skills))
		for _, g := range pc.Skills {
			group := terminal.SkillGroup{Category: g.Category}
			for _, s := range g.Skills {
				group.Skills = append(group.Skills, terminal.Skill{Name: s.Name, Level: clampLevel(s.Level)})
			}
			p.Skills = append(p.Skills, group)
		}
	}
	if len(pc.Projects) > 0 {
		p.Projects = make([]terminal.Project, 0, len(pc.Projects))
		for _, pr := range pc.Projects {
			p.Projects = append(p.Projects, terminal.Project{
				Name:   pr.Name,
				Status: pr.Status,
				Tech:   append([]string(nil), pr.Tech...),
			})
		}
	}
	return p
}

func clampLevel(level int) int {
	return max(0, min(level, 100))
}
