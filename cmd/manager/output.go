package main

import (
	"fmt"
	"io"

	"github.com/shubh-37/social-manager/internal/manager"
	"github.com/shubh-37/social-manager/internal/models"
)

func printGeneration(w io.Writer, g manager.GenerationState) {
	if p := g.Profile; p != nil {
		fmt.Fprintf(w, "Business: %s (%s)\n", p.Name, p.Industry)
		if len(p.Services) > 0 {
			fmt.Fprintf(w, "Services: %s\n", p.Services)
		}
		if p.Audience != "" {
			fmt.Fprintf(w, "Audience: %s\n", p.Audience)
		}
	}
	if g.ProfileError != "" {
		fmt.Fprintf(w, "Profile error: %s\n", g.ProfileError)
	}

	if len(g.News) > 0 {
		fmt.Fprintln(w, "\nIndustry news:")
		for _, item := range g.News {
			if item.URL != "" {
				fmt.Fprintf(w, "  - %s <%s>\n", item.Headline, item.URL)
			} else {
				fmt.Fprintf(w, "  - %s\n", item.Headline)
			}
		}
	}
	if g.NewsError != "" {
		fmt.Fprintf(w, "News error: %s\n", g.NewsError)
	}

	if len(g.Drafts) > 0 {
		fmt.Fprintln(w, "\nDrafts:")
		for i, draft := range g.Drafts {
			fmt.Fprintf(w, "  %d. %s\n", i+1, draft)
		}
	}
	if g.GenerationError != "" {
		fmt.Fprintf(w, "Generation error: %s\n", g.GenerationError)
	}
}

func printSchedule(w io.Writer, schedule models.Schedule) {
	if len(schedule) == 0 {
		fmt.Fprintln(w, "No posts scheduled.")
		return
	}
	fmt.Fprintln(w, "\nWeekly schedule:")
	for _, day := range schedule.Days() {
		fmt.Fprintf(w, "  %s  %s\n", day, schedule[day])
	}
}
