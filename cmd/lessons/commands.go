package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"pycourse/internal/common/pagination"
	"pycourse/internal/content"
	"pycourse/internal/domain/entity"
	"pycourse/internal/infra/adapter/persistence"
	"pycourse/internal/infra/adapter/persistence/bundle"
	"pycourse/internal/infra/renderer"
	lessonUC "pycourse/internal/usecase/lesson"
	"pycourse/internal/usecase/publish"
)

var errVerifyFailed = errors.New("bundle failed verification")

// openService returns a lesson service over the database when a URL is set,
// and over the embedded bundle otherwise. done is never nil.
func openService(ctx context.Context, opts *options) (svc *lessonUC.Service, done func(), err error) {
	if opts.databaseURL == "" {
		b, err := content.Default()
		if err != nil {
			return nil, nil, err
		}
		return &lessonUC.Service{Repo: bundle.NewLessonRepo(b), Renderer: renderer.NewHTML()}, func() {}, nil
	}

	store, database, err := persistence.Open(ctx, opts.databaseURL)
	if err != nil {
		return nil, nil, err
	}
	return &lessonUC.Service{Repo: store, Renderer: renderer.NewHTML()}, closer(database), nil
}

func closer(database *sql.DB) func() {
	return func() { _ = database.Close() }
}

// ── list ──

func listCmd(opts *options) *cobra.Command {
	var module int
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List published lessons",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, done, err := openService(cmd.Context(), opts)
			if err != nil {
				return err
			}
			defer done()

			var lessons []*entity.Lesson
			if module > 0 {
				lessons, err = svc.ModuleLessons(cmd.Context(), module)
			} else {
				lessons, err = listAll(cmd.Context(), svc)
			}
			if err != nil {
				return err
			}
			return printLessons(cmd.OutOrStdout(), lessons)
		},
	}
	cmd.Flags().IntVarP(&module, "module", "m", 0, "only list lessons of this module")
	return cmd
}

func listAll(ctx context.Context, svc *lessonUC.Service) ([]*entity.Lesson, error) {
	limit := pagination.DefaultConfig().MaxLimit
	var all []*entity.Lesson
	for page := 1; ; page++ {
		res, err := svc.List(ctx, pagination.Params{Page: page, Limit: limit})
		if err != nil {
			return nil, err
		}
		all = append(all, res.Data...)
		if page >= res.Pagination.TotalPages {
			return all, nil
		}
	}
}

func printLessons(w io.Writer, lessons []*entity.Lesson) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tMODULE\tLESSON")
	for _, l := range lessons {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", l.ID(), l.ModuleTitle, l.Title)
	}
	return tw.Flush()
}

// ── show ──

func showCmd(opts *options) *cobra.Command {
	var (
		raw, html bool
		style     string
		width     int
	)
	cmd := &cobra.Command{
		Use:   "show <module> <lesson>",
		Short: "Print one lesson",
		Example: `  lessons show 1 1
  lessons show 2 3 --raw`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseLessonArgs(args[0], args[1])
			if err != nil {
				return err
			}
			svc, done, err := openService(cmd.Context(), opts)
			if err != nil {
				return err
			}
			defer done()

			out := cmd.OutOrStdout()
			switch {
			case html:
				page, _, err := svc.RenderHTML(cmd.Context(), id)
				if err != nil {
					return err
				}
				_, err = out.Write(page)
				return err
			case raw:
				body, err := svc.Body(cmd.Context(), id.Module, id.Lesson)
				if err != nil {
					return err
				}
				_, err = io.WriteString(out, body)
				return err
			default:
				l, err := svc.Get(cmd.Context(), id)
				if err != nil {
					return err
				}
				term, err := renderer.NewTerminal(style, width)
				if err != nil {
					return err
				}
				text, err := term.Render(l.Body)
				if err != nil {
					return err
				}
				_, err = io.WriteString(out, text)
				return err
			}
		},
	}
	cmd.Flags().BoolVar(&raw, "raw", false, "print the markdown source")
	cmd.Flags().BoolVar(&html, "html", false, "print rendered HTML")
	cmd.Flags().StringVar(&style, "style", renderer.StyleAuto, "terminal style: auto, dark, light or notty")
	cmd.Flags().IntVarP(&width, "width", "w", renderer.DefaultWordWrap, "word-wrap column")
	cmd.MarkFlagsMutuallyExclusive("raw", "html")
	return cmd
}

func parseLessonArgs(module, lesson string) (entity.LessonID, error) {
	m, err := strconv.Atoi(module)
	if err != nil {
		return entity.LessonID{}, fmt.Errorf("module %q: %w", module, entity.ErrInvalidLessonID)
	}
	l, err := strconv.Atoi(lesson)
	if err != nil {
		return entity.LessonID{}, fmt.Errorf("lesson %q: %w", lesson, entity.ErrInvalidLessonID)
	}
	return entity.NewLessonID(m, l)
}

// ── search ──

func searchCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "search <terms...>",
		Short: "Find lessons containing every term",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, done, err := openService(cmd.Context(), opts)
			if err != nil {
				return err
			}
			defer done()

			lessons, err := svc.Search(cmd.Context(), strings.Join(args, " "))
			if err != nil {
				return err
			}
			if len(lessons) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "no lessons found")
				return nil
			}
			return printLessons(cmd.OutOrStdout(), lessons)
		},
	}
}

// ── verify ──

func verifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "verify",
		Short: "Check the embedded bundle for publishing problems",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			b, err := content.Default()
			if err != nil {
				return err
			}
			problems := publish.Verify(b)
			out := cmd.OutOrStdout()
			for _, p := range problems {
				fmt.Fprintln(out, p)
			}
			if publish.HasErrors(problems) {
				return errVerifyFailed
			}
			fmt.Fprintf(out, "release %s: %d lessons ok (%d warnings)\n", b.Release(), b.Len(), len(problems))
			return nil
		},
	}
}

// ── publish ──

func publishCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "publish",
		Short: "Publish the embedded bundle as the current database release",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if opts.databaseURL == "" {
				return errors.New("publish needs --database-url or DATABASE_URL")
			}
			b, err := content.Default()
			if err != nil {
				return err
			}
			store, database, err := persistence.Open(cmd.Context(), opts.databaseURL)
			if err != nil {
				return err
			}
			defer closer(database)()

			svc := &publish.Service{Publisher: store}
			report, err := svc.Publish(cmd.Context(), b)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if report.Skipped {
				fmt.Fprintf(out, "release %s already published\n", report.Release)
				return nil
			}
			fmt.Fprintf(out, "published release %s (%d lessons, previous %q) in %s\n",
				report.Release, report.Lessons, report.Previous, report.Duration.Round(time.Millisecond))
			return nil
		},
	}
}
