package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"content-api/internal/app"
	"content-api/internal/config"
	"content-api/internal/domain/entity"
	"content-api/internal/repository"
	resumeUC "content-api/internal/usecase/resume"
)

// NewPostsCommand creates the posts command group
func NewPostsCommand(opts *options, open opener) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "posts",
		Short: "List and show published posts",
	}
	cmd.AddCommand(newPostsListCommand(opts, open))
	cmd.AddCommand(newPostsGetCommand(opts, open))
	return cmd
}

func newPostsListCommand(opts *options, open opener) *cobra.Command {
	var (
		page   int
		limit  int
		tags   []string
		search string
		sortBy string
		order  string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List one page of published posts",
		Long: `List one page of published posts, newest first.

Posts carrying any of the --tag values match. --search matches title and summary.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			q := repository.ListingQuery{
				Page:   page,
				Limit:  limit,
				Search: search,
				SortBy: repository.ParseSortField(sortBy),
				Order:  repository.ParseSortOrder(order),
			}
			for _, raw := range tags {
				tag, ok := entity.NewTag(raw)
				if !ok {
					return fmt.Errorf("invalid tag %q: use 1-%d letters, digits, '-' or '_'", raw, entity.MaxTagLength)
				}
				q.Tags = append(q.Tags, tag)
			}

			return withApp(cmd, opts, open, func(ctx context.Context, a *app.App) error {
				res, err := a.Posts.List(ctx, q)
				if err != nil {
					return err
				}
				return printPostList(cmd.OutOrStdout(), opts.output, res)
			})
		},
	}

	cmd.Flags().IntVar(&page, "page", 1, "page number, 1-based")
	cmd.Flags().IntVar(&limit, "limit", 10, "posts per page")
	cmd.Flags().StringSliceVarP(&tags, "tag", "t", nil, "only posts with this tag (repeatable)")
	cmd.Flags().StringVarP(&search, "search", "s", "", "case-insensitive title/summary match")
	cmd.Flags().StringVar(&sortBy, "sort", "published_at", "sort field: published_at or title")
	cmd.Flags().StringVar(&order, "order", "desc", "sort order: asc or desc")

	return cmd
}

func newPostsGetCommand(opts *options, open opener) *cobra.Command {
	return &cobra.Command{
		Use:   "get <slug>",
		Short: "Show a published post with its body",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			slug := args[0]
			return withApp(cmd, opts, open, func(ctx context.Context, a *app.App) error {
				post, err := a.Posts.GetFull(ctx, slug)
				if err != nil {
					return err
				}
				if post == nil {
					return fmt.Errorf("post %q not found", slug)
				}
				return printPost(cmd.OutOrStdout(), opts.output, post)
			})
		},
	}
}

// NewTagsCommand creates the tags command
func NewTagsCommand(opts *options, open opener) *cobra.Command {
	return &cobra.Command{
		Use:   "tags",
		Short: "Count published posts per tag",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, opts, open, func(ctx context.Context, a *app.App) error {
				counts, err := a.Posts.AllTags(ctx)
				if err != nil {
					return err
				}
				return printTags(cmd.OutOrStdout(), opts.output, counts)
			})
		},
	}
}

// NewProjectsCommand creates the projects command group
func NewProjectsCommand(opts *options, open opener) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "projects",
		Short: "List and show catalog projects",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List every project, most recently updated first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, opts, open, func(ctx context.Context, a *app.App) error {
				projects, err := a.Projects.List(ctx)
				if err != nil {
					return err
				}
				return printProjects(cmd.OutOrStdout(), opts.output, projects)
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "get <slug>",
		Short: "Show one project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			slug := args[0]
			return withApp(cmd, opts, open, func(ctx context.Context, a *app.App) error {
				project, err := a.Projects.Get(ctx, slug)
				if err != nil {
					return err
				}
				if project == nil {
					return fmt.Errorf("project %q not found", slug)
				}
				return printProject(cmd.OutOrStdout(), opts.output, project)
			})
		},
	})

	return cmd
}

// NewResumeCommand creates the resume command
func NewResumeCommand(opts *options, open opener) *cobra.Command {
	var (
		sections []string
		tags     []string
		minimal  bool
		limit    int
	)

	cmd := &cobra.Command{
		Use:   "resume",
		Short: "Show the resume document",
		Long: `Show the resume document stored in the blob store.

--section keeps only the named sections (personal, experience, education,
projects, extracurricular). --tag keeps tagged entries carrying any of the tags.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var f resumeUC.Filter
			if cmd.Flags().Changed("section") {
				f.Sections = []entity.ResumeSection{}
				for _, raw := range sections {
					parsed := entity.ParseResumeSections(raw)
					if len(parsed) == 0 {
						return fmt.Errorf("unknown section %q", raw)
					}
					f.Sections = append(f.Sections, parsed...)
				}
			}
			for _, raw := range tags {
				tag, ok := entity.NewTag(raw)
				if !ok {
					return fmt.Errorf("invalid tag %q: use 1-%d letters, digits, '-' or '_'", raw, entity.MaxTagLength)
				}
				f.Tags = append(f.Tags, tag)
			}
			f.Minimal = minimal
			if cmd.Flags().Changed("limit") {
				if limit < 0 {
					return fmt.Errorf("--limit must not be negative, got %d", limit)
				}
				f.Limit = &limit
			}

			return withApp(cmd, opts, open, func(ctx context.Context, a *app.App) error {
				doc, err := a.Resume.Get(ctx, f)
				if err != nil {
					return err
				}
				if doc == nil {
					return errors.New("no resume stored")
				}
				return printResume(cmd.OutOrStdout(), opts.output, doc)
			})
		},
	}

	cmd.Flags().StringSliceVar(&sections, "section", nil, "only this section (repeatable)")
	cmd.Flags().StringSliceVarP(&tags, "tag", "t", nil, "only entries with this tag (repeatable)")
	cmd.Flags().BoolVar(&minimal, "minimal", false, "drop descriptions, bullets and other long-form fields")
	cmd.Flags().IntVar(&limit, "limit", resumeUC.MaxLimit, "entries per section")

	return cmd
}

// Body check statuses.
const (
	bodyOK      = "OK"
	bodyMissing = "MISSING"
	bodyError   = "ERROR"
)

// BodyDiagnostic is the result of fetching one post body.
type BodyDiagnostic struct {
	Slug            string `json:"slug"`
	ContentID       string `json:"content_id"`
	Status          string `json:"status"` // "OK", "MISSING", "ERROR"
	Bytes           int    `json:"bytes"`
	ReadTimeMinutes int    `json:"read_time_minutes"`
	ResponseTime    int64  `json:"response_time_ms"`
	ErrorMessage    string `json:"error_message,omitempty"`
}

var errBodiesUnhealthy = errors.New("some post bodies are missing or unreadable")

// NewDiagnoseCommand creates the diagnose command
func NewDiagnoseCommand(opts *options, open opener) *cobra.Command {
	var concurrency int

	cmd := &cobra.Command{
		Use:   "diagnose",
		Short: "Fetch every published post body and report missing or unreadable ones",
		Long: `Walk every published post and fetch its body from the blob store.

Exits non-zero when any body is missing or fails to load.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if concurrency < 1 {
				return fmt.Errorf("--concurrency must be positive, got %d", concurrency)
			}
			return withApp(cmd, opts, open, func(ctx context.Context, a *app.App) error {
				results, err := diagnoseBodies(ctx, a, concurrency)
				if err != nil {
					return err
				}
				if err := printDiagnostics(cmd.OutOrStdout(), opts.output, results); err != nil {
					return err
				}
				for _, r := range results {
					if r.Status != bodyOK {
						return errBodiesUnhealthy
					}
				}
				return nil
			})
		},
	}

	cmd.Flags().IntVarP(&concurrency, "concurrency", "c", 4, "bodies fetched in parallel")
	return cmd
}

// diagnoseBodies pages through every published post and fetches each body.
// Results keep listing order.
func diagnoseBodies(ctx context.Context, a *app.App, concurrency int) ([]BodyDiagnostic, error) {
	var posts []*entity.Post
	q := repository.DefaultListingQuery()
	q.Limit = 50
	for {
		res, err := a.Posts.List(ctx, q)
		if err != nil {
			return nil, err
		}
		posts = append(posts, res.Items...)
		if !res.Pagination.HasNext {
			break
		}
		q.Page++
	}

	results := make([]BodyDiagnostic, len(posts))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)
	for i, p := range posts {
		g.Go(func() error {
			start := time.Now()
			d := BodyDiagnostic{Slug: p.Slug, ContentID: p.ContentID}

			full, err := a.Posts.GetFull(gctx, p.Slug)
			d.ResponseTime = time.Since(start).Milliseconds()
			switch {
			case err != nil:
				d.Status = bodyError
				d.ErrorMessage = err.Error()
			case full == nil || full.Content == nil:
				d.Status = bodyMissing
			default:
				d.Status = bodyOK
				d.Bytes = len(*full.Content)
				d.ReadTimeMinutes = full.ReadTimeMinutes
			}
			results[i] = d
			return nil
		})
	}
	_ = g.Wait()

	return results, ctx.Err()
}

// NewSchemaCommand creates the schema command group
func NewSchemaCommand(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "schema",
		Short: "Manage the development schema",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "apply",
		Short: "Create the content tables if they do not exist",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadAppConfig()
			if err != nil {
				return err
			}
			cfg.DBApplySchema = true

			ctx, cancel := context.WithTimeout(cmd.Context(), opts.timeout)
			defer cancel()

			database, err := app.OpenDatabase(ctx, cfg, opts.logger(cmd))
			if err != nil {
				return err
			}
			if err := database.Close(); err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "schema applied (%s)\n", cfg.DBDriver)
			return err
		},
	})

	return cmd
}
