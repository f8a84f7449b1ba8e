// Package report renders an energy assessment into an exportable document.
//
// A Report always lists, in order: the title, the six building inputs, the
// estimated consumption and the rating. Metadata (report ID, generation
// time, author) follows those lines.
package report

import (
	"crypto/rand"
	"strconv"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/rshade/energylabel/internal/rating"
)

// Title is the heading of every report.
const Title = "Energy Efficiency Report"

// DefaultFileName is used when no output path is configured.
const DefaultFileName = "energy_report.pdf"

// Report is a single exported assessment.
type Report struct {
	ID          string                  `json:"id" yaml:"id"`
	Title       string                  `json:"title" yaml:"title"`
	Name        string                  `json:"name,omitempty" yaml:"name,omitempty"`
	Author      string                  `json:"author,omitempty" yaml:"author,omitempty"`
	GeneratedAt time.Time               `json:"generated_at" yaml:"generated_at"`
	Profile     rating.BuildingProfile  `json:"profile" yaml:"profile"`
	Assessment  rating.EnergyAssessment `json:"assessment" yaml:"assessment"`
	Unit        string                  `json:"consumption_unit" yaml:"consumption_unit"`
}

// Line is one labelled row of a report.
type Line struct {
	Label string
	Value string
}

// Option configures New.
type Option func(*options)

type options struct {
	now    func() time.Time
	id     string
	author string
	name   string
}

// WithClock sets the clock used for GeneratedAt and the report ID.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

// WithID fixes the report ID.
func WithID(id string) Option {
	return func(o *options) { o.id = id }
}

// WithAuthor records an author in the report metadata.
func WithAuthor(author string) Option {
	return func(o *options) { o.author = author }
}

// WithName records the profile name.
func WithName(name string) Option {
	return func(o *options) { o.name = name }
}

// New builds a report for an already computed assessment.
func New(profile rating.BuildingProfile, assessment rating.EnergyAssessment, opts ...Option) Report {
	o := options{now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}

	generated := o.now().UTC()
	id := o.id
	if id == "" {
		id = ulid.MustNew(ulid.Timestamp(generated), rand.Reader).String()
	}

	return Report{
		ID:          id,
		Title:       Title,
		Name:        o.name,
		Author:      o.author,
		GeneratedAt: generated,
		Profile:     profile,
		Assessment:  assessment,
		Unit:        rating.ConsumptionUnit,
	}
}

// Lines returns the required report rows in document order, title first.
func (r Report) Lines() []Line {
	p := r.Profile
	return []Line{
		{Value: r.Title},
		{Label: "Surface area", Value: strconv.FormatFloat(p.SurfaceAreaM2, 'f', -1, 64) + " m²"},
		{Label: "Construction year", Value: strconv.Itoa(p.ConstructionYear)},
		{Label: "Window type", Value: p.WindowType.String()},
		{Label: "HVAC type", Value: p.HVACType.String()},
		{Label: "Lighting type", Value: p.LightingType.String()},
		{Label: "Climate zone", Value: p.ClimateZone.String()},
		{
			Label: "Estimated consumption",
			Value: rating.FormatPlain(r.Assessment.ConsumptionKwhPerM2Year) + " " + rating.ConsumptionUnit,
		},
		{Label: "Energy rating", Value: string(r.Assessment.Rating)},
	}
}

// Metadata returns the trailing metadata rows.
func (r Report) Metadata() []Line {
	meta := []Line{
		{Label: "Report ID", Value: r.ID},
		{Label: "Generated", Value: r.GeneratedAt.Format(time.RFC3339)},
	}
	if r.Name != "" {
		meta = append(meta, Line{Label: "Profile", Value: r.Name})
	}
	if r.Author != "" {
		meta = append(meta, Line{Label: "Author", Value: r.Author})
	}
	return meta
}

// String renders a line as "Label: Value", or just the value for the title.
func (l Line) String() string {
	if l.Label == "" {
		return l.Value
	}
	return l.Label + ": " + l.Value
}
