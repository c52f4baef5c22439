// Package view renders a session state for the terminal.
package view

import (
	"fmt"
	"io"
	"strings"

	"github.com/manifoldco/promptui"

	"github.com/spigell/candidate-matcher/internal/candidate"
	"github.com/spigell/candidate-matcher/internal/ranking"
	"github.com/spigell/candidate-matcher/internal/session"
)

const (
	defaultBarWidth = 20
	indent          = "   "

	ShowDetails = "Show Details"
	HideDetails = "Hide Details"
)

// Renderer writes a session state to out.
type Renderer struct {
	out      io.Writer
	color    bool
	barWidth int
	// ExpandAll renders the details of every entry regardless of the
	// expansion state.
	ExpandAll bool

	highlight func(interface{}) string
	badge     func(interface{}) string
	errStyle  func(interface{}) string
	bold      func(interface{}) string
}

func New(out io.Writer, color bool) *Renderer {
	r := &Renderer{
		out:      out,
		color:    color,
		barWidth: defaultBarWidth,
	}
	if color {
		r.highlight = promptui.Styler(promptui.FGRed, promptui.FGBold)
		r.badge = promptui.Styler(promptui.BGGreen, promptui.FGBlack)
		r.errStyle = promptui.Styler(promptui.FGRed)
		r.bold = promptui.Styler(promptui.FGBold)
	}
	return r
}

// Render writes the banner followed by the labeled result list.
func (r *Renderer) Render(state session.State) {
	r.renderBanner(state.Banner)

	p := state.Presentation()
	for _, entry := range p.Entries {
		r.renderEntry(entry)
	}
}

func (r *Renderer) renderBanner(b session.Banner) {
	switch b.Kind {
	case session.BannerInfo:
		fmt.Fprintf(r.out, "\n  ~  %s\n", b.Message)
	case session.BannerError:
		fmt.Fprintf(r.out, "\n  %s  %s\n", r.style(r.errStyle, "✗"), b.Message)
	}
}

func (r *Renderer) renderEntry(e ranking.Entry) {
	c := e.Candidate
	if c == nil {
		return
	}

	fmt.Fprintf(r.out, "\n● #%d %s", int(e.Rank)+1, r.style(r.bold, c.Name))
	if e.BestMatch {
		fmt.Fprintf(r.out, "  %s", r.style(r.badge, "["+ranking.BestMatchLabel+"]"))
	}
	fmt.Fprintln(r.out)

	fmt.Fprintf(r.out, "%sScore: %s", indent, ScoreText(c))
	if bar, ok := ScoreBar(c, r.barWidth); ok {
		fmt.Fprintf(r.out, "  %s", bar)
	}
	fmt.Fprintln(r.out)

	if !e.Expanded && !r.ExpandAll {
		return
	}

	r.renderDetails(c)
}

func (r *Renderer) renderDetails(c *candidate.Candidate) {
	m := c.Metadata
	r.field("Job Title", or(m.JobTitle, candidate.NoJobTitle))
	r.field("Department", or(m.Department, candidate.NotAvailable))
	r.field("Location", or(m.Location, candidate.NotAvailable))
	r.field("Stage", or(m.Stage, candidate.NotAvailable))

	if len(c.Skills) == 0 {
		r.field("Skills", candidate.NoSkills)
	} else {
		r.field("Skills", r.skills(c.Skills))
	}

	if len(c.QAPairs) > 0 {
		fmt.Fprintf(r.out, "%sQ&A (short):\n", indent)
		for _, pair := range c.QAPairs {
			fmt.Fprintf(r.out, "%s  %d. %s\n", indent, pair.Index, or(pair.Question, candidate.NoQuestion))
			fmt.Fprintf(r.out, "%s     %s\n", indent, or(pair.Answer, candidate.NoAnswer))
		}
	}

	if len(c.Experiences) == 0 {
		r.field("Experiences", candidate.NoExperience)
	} else {
		fmt.Fprintf(r.out, "%sExperiences:\n", indent)
		for _, exp := range c.Experiences {
			fmt.Fprintf(r.out, "%s  • %s\n", indent, exp)
		}
	}

	r.field("Educations", or(c.Education, candidate.NotAvailable))
	r.field("Creation time", or(m.CreationTime, candidate.NotAvailable))
	r.field("Source", or(m.Source, candidate.NotAvailable))
}

func (r *Renderer) field(name, value string) {
	fmt.Fprintf(r.out, "%s%-14s %s\n", indent, name+":", value)
}

func (r *Renderer) skills(tags []candidate.SkillTag) string {
	labels := make([]string, 0, len(tags))
	for _, tag := range tags {
		labels = append(labels, r.skill(tag))
	}
	return strings.Join(labels, ", ")
}

func (r *Renderer) skill(tag candidate.SkillTag) string {
	if !tag.Highlighted {
		return tag.Label
	}
	if r.color {
		return r.highlight(tag.Label)
	}
	return "*" + tag.Label + "*"
}

func (r *Renderer) style(styler func(interface{}) string, s string) string {
	if !r.color || styler == nil {
		return s
	}
	return styler(s)
}

// ScoreText formats the score with two decimals, or N/A when absent.
func ScoreText(c *candidate.Candidate) string {
	if c == nil || !c.HasScore() {
		return candidate.NotAvailable
	}
	return fmt.Sprintf("%.2f", *c.Score)
}

// ScoreBar draws a bar of width cells filled in proportion to the score.
// There is no bar for a candidate without a score.
func ScoreBar(c *candidate.Candidate, width int) (string, bool) {
	if c == nil || width <= 0 {
		return "", false
	}
	percent, ok := c.BarPercent()
	if !ok {
		return "", false
	}
	filled := int(percent*float64(width)/100 + 0.5)
	return "[" + strings.Repeat("█", filled) + strings.Repeat("░", width-filled) + "]", true
}

// ItemLabel is the one-line label of an entry in the selection list.
func ItemLabel(e ranking.Entry) string {
	name := candidate.UnnamedCandidate
	if e.Candidate != nil {
		name = e.Candidate.Name
	}

	toggle := ShowDetails
	if e.Expanded {
		toggle = HideDetails
	}

	label := fmt.Sprintf("#%d %s (score %s) - %s", int(e.Rank)+1, name, ScoreText(e.Candidate), toggle)
	if e.BestMatch {
		label += " [" + ranking.BestMatchLabel + "]"
	}
	return label
}

func or(s *string, fallback string) string {
	if s == nil {
		return fallback
	}
	return *s
}
