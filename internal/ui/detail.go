package ui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/jonahtballard/CatBase/internal/models"
	"github.com/jonahtballard/CatBase/internal/ratings"
)

// renderDetail shows one section with its meetings and instructor rating badges
func (m BrowserModel) renderDetail() string {
	res := m.session.Result()
	if m.detail.group >= len(res.Groups) || m.detail.section >= len(res.Groups[m.detail.group].Sections) {
		return NewPageView(m.Layout).
			Title("Section").
			DimText("This section is no longer on the page.").
			Help("esc: back | q: quit").
			Build()
	}
	g := res.Groups[m.detail.group]
	s := g.Sections[m.detail.section]

	b := NewPageView(m.Layout).CustomContent(ViewHeaderWithSubtitle(
		fmt.Sprintf("%s %s · %s", g.Key.Subject, g.Key.CourseNumber, g.Key.Title),
		sectionSummary(s),
		m.Layout.InnerWidth,
	))

	b.Title("Meetings")
	if len(s.Meetings) == 0 {
		b.DimText("  No meetings scheduled")
	}
	for _, mt := range s.Meetings {
		line := "  " + meetingsText([]models.Meeting{mt})
		if mt.Location != "" {
			line += "  " + RenderDim(mt.Location)
		}
		b.Text(line)
	}

	b.Spacing(1).Title("Instructors")
	if len(s.Instructors) == 0 {
		b.DimText("  Staff")
	}
	for _, in := range s.Instructors {
		b.CustomContent(renderInstructor(in, m.badgeFor(in)))
	}

	return b.Status(m.status).
		Help("esc: back | q: quit").
		Build()
}

func sectionSummary(s models.SectionRecord) string {
	parts := []string{}
	if s.CRN != "" {
		parts = append(parts, "CRN "+s.CRN)
	}
	if s.LecLab != "" {
		parts = append(parts, s.LecLab)
	}
	if s.Year != 0 {
		parts = append(parts, strings.TrimSpace(fmt.Sprintf("%s %d", s.Semester, s.Year)))
	} else if s.Semester != "" {
		parts = append(parts, s.Semester)
	}
	if c := creditsText(s.CreditsMin, s.CreditsMax); c != "" {
		parts = append(parts, c+" credits")
	}
	if seats := seatsText(s); seats != "-" {
		if open, _ := s.IsOpen(); open {
			parts = append(parts, seats+" seats taken")
		} else {
			parts = append(parts, seats+" full")
		}
	}
	return strings.Join(parts, " · ")
}

// renderInstructor renders one instructor block: name, contact, badge and extras
func renderInstructor(in models.InstructorRef, badge ratings.Badge) string {
	var sb strings.Builder

	name := in.Name
	contact := in.Email
	if contact == "" {
		contact = in.NetID
	}
	if contact != "" {
		name += "  " + RenderDim(contact)
	}
	sb.WriteString("  " + RenderNormal("• ") + name + "\n")

	text := badge.Text()
	switch badge.State {
	case ratings.StateIdle:
		text = "Ratings not requested"
		sb.WriteString("    " + RenderDim(text) + "\n")
	case ratings.StateLoaded:
		if badge.Profile.IsEmpty() {
			sb.WriteString("    " + RenderDim(text) + "\n")
		} else {
			sb.WriteString("    " + AccentStyle.Render(text) + "\n")
		}
	case ratings.StateError:
		sb.WriteString("    " + RenderError(text) + "\n")
	default:
		sb.WriteString("    " + ProgressStyle.Render(text) + "\n")
	}

	if badge.State != ratings.StateLoaded || badge.Profile == nil {
		return sb.String()
	}
	p := badge.Profile
	if len(p.TopTags) > 0 {
		sb.WriteString("    " + RenderDim("Tags: "+strings.Join(p.TopTags, ", ")) + "\n")
	}
	if d := distributionText(p.RatingDistribution); d != "" {
		sb.WriteString("    " + RenderDim("Distribution: "+d) + "\n")
	}
	if p.ProfileURL != nil && *p.ProfileURL != "" {
		sb.WriteString("    " + RenderDim(*p.ProfileURL) + "\n")
	}
	return sb.String()
}

// distributionBuckets is the display order of the rating histogram
var distributionBuckets = []string{"awesome", "great", "good", "ok", "awful"}

// distributionText renders the rating histogram, known buckets first
func distributionText(dist map[string]int) string {
	if len(dist) == 0 {
		return ""
	}
	var extra []string
	for k := range dist {
		if !containsString(distributionBuckets, k) {
			extra = append(extra, k)
		}
	}
	sort.Strings(extra)

	var parts []string
	for _, k := range append(append([]string{}, distributionBuckets...), extra...) {
		if n, ok := dist[k]; ok {
			parts = append(parts, fmt.Sprintf("%s %d", k, n))
		}
	}
	return strings.Join(parts, " · ")
}
