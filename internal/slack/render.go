package slack

import (
	"fmt"
	"strings"

	"github.com/shubh-37/social-manager/internal/manager"
	"github.com/shubh-37/social-manager/internal/models"
)

const helpText = `*Social Media Manager*

I turn a business website into ready to post content and plan it across the week.

*Commands:*
- ` + "`connect`" + ` - Connect the Facebook page
- ` + "`generate <website> [tone=..] [type=..] [count=N]`" + ` - Profile, news and drafts
- ` + "`drafts`" + ` - Show the drafts
- ` + "`edit <n> <text>`" + ` - Rewrite draft n
- ` + "`drop <n>`" + ` - Remove draft n
- ` + "`schedule [frequency] [days=Mon,Wed,Fri]`" + ` - Plan drafts onto days
- ` + "`view schedule`" + ` - Show the weekly schedule
- ` + "`update <day> <text>`" + ` - Rewrite a scheduled post
- ` + "`remove <day>`" + ` - Delete a scheduled post
- ` + "`publish <day>`" + ` - Publish a scheduled post now
- ` + "`reset schedule`" + ` - Clear the whole week
- ` + "`status`" + ` - Everything at a glance

*Post types:* promo, business_tips, industry_insights, seasonal, general`

func renderConnection(status models.ConnectionStatus) string {
	return "*Facebook:* " + status.String()
}

func renderProfile(p *models.BusinessProfile) string {
	var b strings.Builder
	b.WriteString("*Business profile*\n")
	field := func(label, value string) {
		if strings.TrimSpace(value) != "" {
			fmt.Fprintf(&b, "• %s: %s\n", label, value)
		}
	}
	field("Name", p.Name)
	field("Industry", p.Industry)
	field("Services", p.Services.String())
	field("Audience", p.Audience)
	field("Tone of voice", p.ToneOfVoice)
	field("Unique value", p.UniqueValueProposition)
	return b.String()
}

func renderNews(news []models.NewsItem) string {
	if len(news) == 0 {
		return "*Industry news*\n_No headlines found._\n"
	}
	var b strings.Builder
	b.WriteString("*Industry news*\n")
	for _, item := range news {
		if item.URL != "" {
			fmt.Fprintf(&b, "• <%s|%s>\n", item.URL, item.Headline)
			continue
		}
		fmt.Fprintf(&b, "• %s\n", item.Headline)
	}
	return b.String()
}

func renderDrafts(drafts []string) string {
	if len(drafts) == 0 {
		return "No drafts yet. Run `generate <website>` first."
	}
	var b strings.Builder
	b.WriteString("*Drafts*\n")
	for i, draft := range drafts {
		fmt.Fprintf(&b, "*%d.* %s\n", i+1, draft)
	}
	return strings.TrimRight(b.String(), "\n")
}

// renderGeneration shows what the last generation run produced, stage by
// stage, including the error of whichever stage failed.
func renderGeneration(g manager.GenerationState) string {
	var parts []string
	if g.Profile != nil {
		parts = append(parts, renderProfile(g.Profile))
	}
	if g.ProfileError != "" {
		parts = append(parts, ":x: "+g.ProfileError)
	}
	if g.News != nil {
		parts = append(parts, renderNews(g.News))
	}
	if g.NewsError != "" {
		parts = append(parts, ":x: "+g.NewsError)
	}
	if g.Drafts != nil {
		parts = append(parts, renderDrafts(g.Drafts))
	}
	if g.GenerationError != "" {
		parts = append(parts, ":x: "+g.GenerationError)
	}
	if len(parts) == 0 {
		return "Nothing generated yet."
	}
	return strings.TrimRight(strings.Join(parts, "\n"), "\n")
}

func renderSchedule(schedule models.Schedule) string {
	if len(schedule) == 0 {
		return "No posts scheduled yet."
	}
	var b strings.Builder
	b.WriteString("*Weekly schedule*\n")
	for _, day := range schedule.Days() {
		fmt.Fprintf(&b, "*%s:* %s\n", day, schedule[day])
	}
	return strings.TrimRight(b.String(), "\n")
}

func renderPublish(result *models.PublishResult) string {
	if result == nil {
		return ""
	}
	return fmt.Sprintf("*%s:* %s", result.Day, result.Status())
}

func renderStatus(v manager.View) string {
	parts := []string{renderConnection(v.Connection)}

	g := v.Generation
	switch {
	case g.Running:
		parts = append(parts, "_Generation in progress..._")
	case g.Profile != nil || g.ProfileError != "":
		parts = append(parts, renderGeneration(g))
	}

	if v.Planner.Error != "" {
		parts = append(parts, ":x: "+v.Planner.Error)
	}
	parts = append(parts, renderSchedule(v.Planner.Schedule))

	if v.Publish != nil {
		parts = append(parts, renderPublish(v.Publish))
	}
	return strings.Join(parts, "\n\n")
}
