package actioncard

import (
	"fmt"
	"strings"
)

// Markdown renders the card as the markdown block shown to the user.
func (c *Card) Markdown() string {
	b := &strings.Builder{}
	b.WriteString("## Action Card\n")
	for i, r := range c.Recommendations {
		fmt.Fprintf(b, "\n### %d. %s\n", i+1, r.Title)
		fmt.Fprintf(b, "**What:** %s\n", r.What)
		if len(r.Where) > 0 {
			fmt.Fprintf(b, "**Where:** %s\n", strings.Join(r.Where, ", "))
		}
		if len(r.How) > 0 {
			b.WriteString("**How:**\n")
			for _, step := range r.How {
				fmt.Fprintf(b, "- %s\n", step)
			}
		}
		if len(r.Copy) > 0 {
			fmt.Fprintf(b, "**Copy:** %s\n", strings.Join(r.Copy, " / "))
		}
		if r.KPI.Target != "" {
			fmt.Fprintf(b, "**KPI:** %s (%s ~ %s)\n", r.KPI.Target, r.KPI.Range[0], r.KPI.Range[1])
		}
		if len(r.Evidence) > 0 {
			fmt.Fprintf(b, "**Evidence:** %s\n", strings.Join(r.Evidence, "; "))
		}
	}
	return strings.TrimRight(b.String(), "\n")
}
