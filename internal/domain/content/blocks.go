package content

import (
	"fmt"
	"strings"
)

// Terminal blocks. Each returns the lines one command prints.

// AboutBlock summarizes the developer profile.
func (c *Catalog) AboutBlock() []string {
	p := c.Profile()
	lines := []string{"About Me", strings.Repeat("-", 8)}
	if p.Name != "" {
		lines = append(lines, fmt.Sprintf("%s, %s", p.Name, p.Role))
	}
	lines = append(lines, p.Summary...)
	return lines
}

// SkillsBlock lists the tech stack by category.
func (c *Catalog) SkillsBlock() []string {
	lines := []string{"Skills", strings.Repeat("-", 6)}
	for _, cat := range c.doc.TechStack {
		lines = append(lines, fmt.Sprintf("%-10s %s", cat.Category+":", strings.Join(cat.Items, ", ")))
	}
	return lines
}

// ProjectsBlock lists the folders under the work location with their live links.
func (c *Catalog) ProjectsBlock() []string {
	lines := []string{"Projects", strings.Repeat("-", 8)}
	work, ok := c.Location("work")
	if !ok {
		return append(lines, "No projects yet.")
	}
	for _, n := range work.Children {
		if !n.IsFolder() {
			continue
		}
		line := "* " + n.Name
		for _, child := range n.Children {
			if child.FileType == FileURL && child.Href != "" {
				line += "  " + child.Href
				break
			}
		}
		lines = append(lines, line)
	}
	return lines
}

// ContactBlock lists the email and social links.
func (c *Catalog) ContactBlock() []string {
	lines := []string{"Contact", strings.Repeat("-", 7)}
	if email := c.Profile().Email; email != "" {
		lines = append(lines, "Email: "+email)
	}
	for _, s := range c.doc.Socials {
		lines = append(lines, fmt.Sprintf("%s: %s", s.Text, s.Link))
	}
	return lines
}
