package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"content-api/internal/common/pagination"
	"content-api/internal/domain/entity"
	postUC "content-api/internal/usecase/post"
)

const (
	outputText = "text"
	outputJSON = "json"
)

type postView struct {
	ContentID       string   `json:"content_id"`
	Slug            string   `json:"slug"`
	Title           string   `json:"title"`
	Summary         string   `json:"summary"`
	PublishedAt     string   `json:"published_at"`
	UpdatedAt       string   `json:"updated_at"`
	Tags            []string `json:"tags"`
	ExternalURL     *string  `json:"external_url,omitempty"`
	Content         *string  `json:"content,omitempty"`
	ReadTimeMinutes int      `json:"read_time_minutes,omitempty"`
}

type postListView struct {
	Posts      []postView          `json:"posts"`
	Pagination pagination.Metadata `json:"pagination"`
}

type tagView struct {
	Tag   string `json:"tag"`
	Count int64  `json:"count"`
}

type projectView struct {
	ID                 string              `json:"id"`
	Slug               string              `json:"slug"`
	Name               string              `json:"name"`
	Description        string              `json:"description"`
	Stage              string              `json:"stage"`
	OpenToContributors bool                `json:"open_to_contributors"`
	ReadmeURL          string              `json:"readme_url,omitempty"`
	Tags               []string            `json:"tags"`
	URLs               []entity.ProjectURL `json:"urls"`
	UpdatedAt          string              `json:"updated_at"`
}

func toPostView(p *entity.Post) postView {
	tags := p.Tags
	if tags == nil {
		tags = []string{}
	}
	return postView{
		ContentID:       p.ContentID,
		Slug:            p.Slug,
		Title:           p.Title,
		Summary:         p.Summary,
		PublishedAt:     p.PublishedAt.UTC().Format(time.RFC3339),
		UpdatedAt:       p.UpdatedAt.UTC().Format(time.RFC3339),
		Tags:            tags,
		ExternalURL:     p.ExternalURL,
		Content:         p.Content,
		ReadTimeMinutes: p.ReadTimeMinutes,
	}
}

func toProjectView(p *entity.Project) projectView {
	v := projectView{
		ID:                 p.ID,
		Slug:               p.Slug,
		Name:               p.Name,
		Description:        p.Description,
		Stage:              p.Stage,
		OpenToContributors: p.OpenToContributors,
		ReadmeURL:          p.ReadmeURL,
		Tags:               p.Tags,
		URLs:               p.URLs,
		UpdatedAt:          p.UpdatedAt.UTC().Format(time.RFC3339),
	}
	if v.Tags == nil {
		v.Tags = []string{}
	}
	if v.URLs == nil {
		v.URLs = []entity.ProjectURL{}
	}
	return v
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func printPostList(w io.Writer, format string, res *postUC.ListResult) error {
	views := make([]postView, 0, len(res.Items))
	for _, p := range res.Items {
		views = append(views, toPostView(p))
	}
	if format == outputJSON {
		return writeJSON(w, postListView{Posts: views, Pagination: res.Pagination})
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "SLUG\tTITLE\tPUBLISHED\tTAGS")
	for _, v := range views {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", v.Slug, v.Title, v.PublishedAt[:10], strings.Join(v.Tags, ","))
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	m := res.Pagination
	more := ""
	if m.HasNext {
		more = ", more available"
	}
	_, err := fmt.Fprintf(w, "\npage %d, %d per page, %d total%s\n", m.Page, m.Limit, m.Total, more)
	return err
}

func printPost(w io.Writer, format string, p *entity.Post) error {
	v := toPostView(p)
	if format == outputJSON {
		return writeJSON(w, v)
	}

	fmt.Fprintf(w, "%s\n", v.Title)
	fmt.Fprintf(w, "slug:      %s\n", v.Slug)
	fmt.Fprintf(w, "published: %s\n", v.PublishedAt)
	if len(v.Tags) > 0 {
		fmt.Fprintf(w, "tags:      %s\n", strings.Join(v.Tags, ", "))
	}
	if v.ExternalURL != nil {
		fmt.Fprintf(w, "external:  %s\n", *v.ExternalURL)
	}
	if v.Content == nil {
		_, err := fmt.Fprintln(w, "\n(no body)")
		return err
	}
	fmt.Fprintf(w, "read time: %d min\n\n", v.ReadTimeMinutes)
	_, err := io.WriteString(w, *v.Content)
	return err
}

func printTags(w io.Writer, format string, counts []entity.TagCount) error {
	views := make([]tagView, 0, len(counts))
	for _, c := range counts {
		views = append(views, tagView{Tag: c.Tag, Count: c.Count})
	}
	if format == outputJSON {
		return writeJSON(w, views)
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "TAG\tPOSTS")
	for _, v := range views {
		fmt.Fprintf(tw, "%s\t%d\n", v.Tag, v.Count)
	}
	return tw.Flush()
}

func printProjects(w io.Writer, format string, projects []*entity.Project) error {
	views := make([]projectView, 0, len(projects))
	for _, p := range projects {
		views = append(views, toProjectView(p))
	}
	if format == outputJSON {
		return writeJSON(w, views)
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "SLUG\tNAME\tSTAGE\tUPDATED")
	for _, v := range views {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", v.Slug, v.Name, v.Stage, v.UpdatedAt[:10])
	}
	return tw.Flush()
}

func printProject(w io.Writer, format string, p *entity.Project) error {
	v := toProjectView(p)
	if format == outputJSON {
		return writeJSON(w, v)
	}

	fmt.Fprintf(w, "%s (%s)\n", v.Name, v.Slug)
	fmt.Fprintf(w, "stage:        %s\n", v.Stage)
	fmt.Fprintf(w, "contributors: %t\n", v.OpenToContributors)
	if v.Description != "" {
		fmt.Fprintf(w, "description:  %s\n", v.Description)
	}
	if v.ReadmeURL != "" {
		fmt.Fprintf(w, "readme:       %s\n", v.ReadmeURL)
	}
	if len(v.Tags) > 0 {
		fmt.Fprintf(w, "tags:         %s\n", strings.Join(v.Tags, ", "))
	}
	for _, u := range v.URLs {
		fmt.Fprintf(w, "link:         %s %s\n", u.Label, u.URL)
	}
	return nil
}

func printDiagnostics(w io.Writer, format string, results []BodyDiagnostic) error {
	if format == outputJSON {
		return writeJSON(w, results)
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "SLUG\tSTATUS\tBYTES\tMS\tERROR")
	ok := 0
	for _, r := range results {
		if r.Status == bodyOK {
			ok++
		}
		fmt.Fprintf(tw, "%s\t%s\t%d\t%d\t%s\n", r.Slug, r.Status, r.Bytes, r.ResponseTime, r.ErrorMessage)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "\n%d/%d bodies OK\n", ok, len(results))
	return err
}

func printResume(w io.Writer, format string, r *entity.Resume) error {
	if format == outputJSON {
		return writeJSON(w, r)
	}

	if p := r.Personal; p != nil {
		fmt.Fprintf(w, "%s %s <%s>\n\n", p.FirstName, p.LastName, p.Email)
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "SECTION\tTITLE\tWHERE\tWHEN")
	for _, e := range r.Experience {
		fmt.Fprintf(tw, "experience\t%s\t%s\t%s\n", e.Title, e.Organization, e.StartDate)
	}
	for _, e := range r.Education {
		fmt.Fprintf(tw, "education\t%s\t%s\t%s\n", e.Degree, e.Institution, e.EndDate)
	}
	for _, p := range r.Projects {
		fmt.Fprintf(tw, "projects\t%s\t%s\t%s\n", p.Title, p.Status, p.Date)
	}
	for _, x := range r.Extracurricular {
		fmt.Fprintf(tw, "extracurricular\t%s\t%s\t%s\n", x.Title, x.Organization, x.Dates)
	}
	return tw.Flush()
}
