package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/ivlev/autoslide/internal/apperr"
	"github.com/ivlev/autoslide/internal/imageproc"
	"github.com/ivlev/autoslide/internal/resource"
)

// checkWorkers bounds the number of files stat'ed at once.
const checkWorkers = 8

type refKind string

const (
	refTemplate refKind = "template"
	refNotes    refKind = "notes"
	refImage    refKind = "image"
	refAudio    refKind = "audio"
)

// reference is a file a config points at.
type reference struct {
	Slide int // 0 for the template
	Kind  refKind
	Path  string
}

func (r reference) String() string {
	if r.Slide == 0 {
		return fmt.Sprintf("%s %s", r.Kind, r.Path)
	}
	return fmt.Sprintf("slide %d %s %s", r.Slide, r.Kind, r.Path)
}

func newCheckCmd() *cobra.Command {
	var template string

	cmd := &cobra.Command{
		Use:   "check <config>",
		Short: "Lint a config and verify every file it references",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)
			out := cmd.OutOrStdout()

			p, err := loadProject(args[0], template, "")
			if err != nil {
				return err
			}
			for _, w := range p.cfg.Warnings() {
				printWarning(out, "%s", w)
			}

			refs := collectReferences(p)
			problems, err := checkReferences(ctx, p.loader, p.template, refs)
			if err != nil {
				return err
			}
			logger.Debug("checked references", "count", len(refs))

			missing := 0
			for i, problem := range problems {
				if problem == "" {
					continue
				}
				missing++
				printError(out, "%s: %s", refs[i], problem)
			}
			if missing > 0 {
				return apperr.New(apperr.CodeNotFound, "%d of %d referenced files are missing or unreadable", missing, len(refs))
			}
			printSuccess(out, "%d slides, %d files OK", len(p.cfg.Slides), len(refs))
			return nil
		},
	}

	cmd.Flags().StringVarP(&template, "template", "t", "", "template file (default: template_path from the config)")
	return cmd
}

// collectReferences lists the template followed by every slide's notes
// file, images and audio in config order. Inline notes are not files.
func collectReferences(p *project) []reference {
	refs := []reference{{Kind: refTemplate, Path: p.cfg.TemplatePath}}
	for i, s := range p.cfg.Slides {
		n := i + 1
		base := s.Common()
		if resource.IsMarkdownPath(base.NotesSource) {
			refs = append(refs, reference{Slide: n, Kind: refNotes, Path: base.NotesSource})
		}
		for _, img := range base.Images {
			refs = append(refs, reference{Slide: n, Kind: refImage, Path: img})
		}
		if base.Audio != "" {
			refs = append(refs, reference{Slide: n, Kind: refAudio, Path: base.Audio})
		}
	}
	return refs
}

// checkReferences verifies refs concurrently. The result holds one entry
// per reference: empty when the file is usable, else the problem.
func checkReferences(ctx context.Context, loader *resource.Loader, templatePath string, refs []reference) ([]string, error) {
	problems := make([]string, len(refs))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(checkWorkers)
	for i, ref := range refs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			problems[i] = checkReference(loader, templatePath, ref)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return problems, nil
}

func checkReference(loader *resource.Loader, templatePath string, ref reference) string {
	var path string
	if ref.Kind == refTemplate {
		if _, err := os.Stat(templatePath); err != nil {
			return "not found"
		}
		path = templatePath
	} else {
		resolved, err := loader.Resolver().ResolveAndCheck(ref.Path)
		if err != nil {
			return "not found"
		}
		path = resolved
	}
	if ref.Kind == refImage {
		if err := imageproc.Validate(path); err != nil {
			return fmt.Sprintf("unreadable image: %v", err)
		}
	}
	return ""
}
