package entity

import "strings"

// ResumeSection names one top-level part of a Resume.
type ResumeSection string

const (
	SectionPersonal        ResumeSection = "personal"
	SectionExperience      ResumeSection = "experience"
	SectionEducation       ResumeSection = "education"
	SectionProjects        ResumeSection = "projects"
	SectionExtracurricular ResumeSection = "extracurricular"
)

// ResumeSections lists every known section in document order.
var ResumeSections = []ResumeSection{
	SectionPersonal,
	SectionExperience,
	SectionEducation,
	SectionProjects,
	SectionExtracurricular,
}

// ParseResumeSections turns a comma-separated filter value into known sections.
// Candidates are trimmed and lower-cased; unknown names are dropped, so the
// result may be empty but is never nil.
func ParseResumeSections(raw string) []ResumeSection {
	out := []ResumeSection{}
	for _, part := range strings.Split(raw, ",") {
		name := ResumeSection(strings.ToLower(strings.TrimSpace(part)))
		for _, s := range ResumeSections {
			if s == name {
				out = append(out, s)
				break
			}
		}
	}
	return out
}

// Resume is the single resume document served by the API.
// Empty sections are omitted from its JSON form.
type Resume struct {
	Schema          string            `json:"$schema,omitempty"`
	Personal        *Personal         `json:"personal,omitempty"`
	Experience      []Experience      `json:"experience,omitempty"`
	Education       []Education       `json:"education,omitempty"`
	Projects        []ResumeProject   `json:"projects,omitempty"`
	Extracurricular []Extracurricular `json:"extracurricular,omitempty"`
}

type Personal struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Location  string `json:"location"`
	Website   string `json:"website"`
	GitHub    string `json:"github"`
	LinkedIn  string `json:"linkedin"`
}

type Experience struct {
	Title        string   `json:"title"`
	Organization string   `json:"organization"`
	Location     string   `json:"location,omitempty"`
	StartDate    string   `json:"startDate"`
	EndDate      *string  `json:"endDate,omitempty"`
	Description  string   `json:"description,omitempty"`
	Bullets      []string `json:"bullets,omitempty"`
	Tags         []string `json:"tags,omitempty"`
}

type Education struct {
	Institution string   `json:"institution"`
	Degree      string   `json:"degree"`
	Minors      []string `json:"minors,omitempty"`
	Location    string   `json:"location,omitempty"`
	StartDate   string   `json:"startDate"`
	EndDate     string   `json:"endDate"`
	GPA         string   `json:"gpa"`
}

// ResumeProject is a project entry on the resume, distinct from the catalog's Project.
type ResumeProject struct {
	Title       string   `json:"title"`
	Date        string   `json:"date"`
	Status      string   `json:"status"`
	GitHub      *string  `json:"github,omitempty"`
	LiveURL     *string  `json:"liveUrl,omitempty"`
	Description string   `json:"description"`
	Bullets     []string `json:"bullets,omitempty"`
	Tags        []string `json:"tags,omitempty"`
	Featured    bool     `json:"featured"`
}

type Extracurricular struct {
	Title        string   `json:"title"`
	Type         string   `json:"type"`
	Organization string   `json:"organization"`
	Website      *string  `json:"website,omitempty"`
	Dates        string   `json:"dates"`
	Achievements []string `json:"achievements,omitempty"`
	Description  string   `json:"description,omitempty"`
	Tags         []string `json:"tags,omitempty"`
}

// KeepSections clears every section not named in keep.
func (r *Resume) KeepSections(keep []ResumeSection) {
	want := make(map[ResumeSection]bool, len(keep))
	for _, s := range keep {
		want[s] = true
	}
	if !want[SectionPersonal] {
		r.Personal = nil
	}
	if !want[SectionExperience] {
		r.Experience = nil
	}
	if !want[SectionEducation] {
		r.Education = nil
	}
	if !want[SectionProjects] {
		r.Projects = nil
	}
	if !want[SectionExtracurricular] {
		r.Extracurricular = nil
	}
}

// FilterByTags keeps the tagged entries carrying at least one of tags.
// Personal and education carry no tags and are left alone.
func (r *Resume) FilterByTags(tags []Tag) {
	want := make(map[string]bool, len(tags))
	for _, t := range tags {
		want[string(t)] = true
	}
	r.Experience = keepTagged(r.Experience, func(e Experience) []string { return e.Tags }, want)
	r.Projects = keepTagged(r.Projects, func(p ResumeProject) []string { return p.Tags }, want)
	r.Extracurricular = keepTagged(r.Extracurricular, func(x Extracurricular) []string { return x.Tags }, want)
}

func keepTagged[T any](items []T, tagsOf func(T) []string, want map[string]bool) []T {
	out := items[:0]
	for _, it := range items {
		for _, t := range tagsOf(it) {
			if want[t] {
				out = append(out, it)
				break
			}
		}
	}
	return out
}

// LimitItems truncates every list section to at most n entries.
func (r *Resume) LimitItems(n int) {
	if n < 0 {
		n = 0
	}
	r.Experience = truncate(r.Experience, n)
	r.Education = truncate(r.Education, n)
	r.Projects = truncate(r.Projects, n)
	r.Extracurricular = truncate(r.Extracurricular, n)
}

func truncate[T any](items []T, n int) []T {
	if len(items) > n {
		return items[:n]
	}
	return items
}

// Minimize drops the long-form fields: descriptions, bullets, minors, achievements
// and education locations.
func (r *Resume) Minimize() {
	for i := range r.Experience {
		r.Experience[i].Description = ""
		r.Experience[i].Bullets = nil
	}
	for i := range r.Education {
		r.Education[i].Minors = nil
		r.Education[i].Location = ""
	}
	for i := range r.Projects {
		r.Projects[i].Bullets = nil
	}
	for i := range r.Extracurricular {
		r.Extracurricular[i].Description = ""
		r.Extracurricular[i].Achievements = nil
	}
}
