// Package importer loads the archive sheet into the catalog store.
//
// Every data line must link a Vimeo video; the video id becomes the project
// id. Lines are inserted or updated in place, and the run produces a Report
// of created, updated, unchanged, invalid and duplicate lines.
package importer

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"slices"
	"strings"

	"github.com/louisbranch/lastro/internal/services/catalog/storage"
)

// DateResolver looks up the publish date of a video as YYYY-MM-DD.
type DateResolver interface {
	PublishDate(ctx context.Context, videoID int64) (string, error)
}

// Store is the subset of the catalog store the importer writes through.
type Store interface {
	GetProject(ctx context.Context, id int64) (storage.Project, error)
	PutProject(ctx context.Context, project storage.Project) error
	CountProjects(ctx context.Context) (int, error)
}

// Importer applies sheet rows to a store.
type Importer struct {
	store     Store
	dates     DateResolver
	dryRun    bool
	sanitizer textSanitizer
}

// Option customizes an Importer.
type Option func(*Importer)

// WithDates resolves publish dates for new projects and for stored
// projects that still lack one.
func WithDates(dates DateResolver) Option {
	return func(im *Importer) {
		im.dates = dates
	}
}

// WithDryRun validates and reports without writing.
func WithDryRun(dryRun bool) Option {
	return func(im *Importer) {
		im.dryRun = dryRun
	}
}

// New builds an importer over store.
func New(store Store, opts ...Option) (*Importer, error) {
	if store == nil {
		return nil, errors.New("catalog store is required")
	}
	im := &Importer{store: store, sanitizer: newTextSanitizer()}
	for _, opt := range opts {
		if opt != nil {
			opt(im)
		}
	}
	return im, nil
}

// ImportSheet reads the sheet at source and imports it.
func (im *Importer) ImportSheet(ctx context.Context, source string, client *http.Client) (Report, error) {
	body, err := OpenSheet(ctx, source, client)
	if err != nil {
		return Report{}, err
	}
	defer body.Close()
	rows, err := ReadSheet(body)
	if err != nil {
		return Report{}, err
	}
	return im.Import(ctx, rows)
}

// importRun carries the state of one pass over the sheet.
type importRun struct {
	report     Report
	unchanged  lineRange
	blank      lineRange
	visited    map[int64]int
	duplicates map[int64]int
}

func (run *importRun) flushUnchanged() {
	run.unchanged.flush(&run.report, "No changes at line %d.", "No changes lines %d to %d.")
}

func (run *importRun) flushBlank() {
	run.blank.flush(&run.report, "Line %d: not a valid link (empty).", "Lines %d to %d: not a valid link (empty).")
}

// Import applies rows in order. A store failure aborts the run; per-line
// problems are reported and skipped.
func (im *Importer) Import(ctx context.Context, rows []Row) (Report, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	run := &importRun{
		report:     Report{DryRun: im.dryRun, Lines: len(rows)},
		visited:    make(map[int64]int),
		duplicates: make(map[int64]int),
	}

	for _, row := range rows {
		if err := ctx.Err(); err != nil {
			return run.report, err
		}
		raw := row.Get(ColumnLink)
		link := CleanLink(raw)
		videoID, ok := VideoID(link)
		if !ok {
			run.flushUnchanged()
			if link == "" || strings.EqualFold(link, "nan") {
				run.blank.extend(row.Line)
				continue
			}
			run.flushBlank()
			run.report.add("Line %d: not a valid link (%s).", row.Line, link)
			run.report.Invalid++
			continue
		}
		run.flushBlank()

		if first, seen := run.visited[videoID]; seen {
			if idx, tracked := run.duplicates[videoID]; tracked {
				run.report.Duplicates[idx].Lines = append(run.report.Duplicates[idx].Lines, row.Line)
			} else {
				run.duplicates[videoID] = len(run.report.Duplicates)
				run.report.Duplicates = append(run.report.Duplicates, Duplicate{VideoID: videoID, Lines: []int{first, row.Line}})
			}
			run.unchanged.extend(row.Line)
			continue
		}
		run.visited[videoID] = row.Line

		incoming := im.projectFromRow(videoID, link, row)
		existing, err := im.store.GetProject(ctx, videoID)
		switch {
		case errors.Is(err, storage.ErrNotFound):
			run.flushUnchanged()
			if err := im.insert(ctx, run, row.Line, incoming); err != nil {
				return run.report, err
			}
		case err != nil:
			return run.report, fmt.Errorf("load project %d: %w", videoID, err)
		default:
			if err := im.update(ctx, run, row.Line, existing, incoming); err != nil {
				return run.report, err
			}
		}
	}
	run.flushUnchanged()
	run.flushBlank()

	stored, err := im.store.CountProjects(ctx)
	if err != nil {
		return run.report, fmt.Errorf("count projects: %w", err)
	}
	run.report.Stored = stored
	return run.report, nil
}

func (im *Importer) insert(ctx context.Context, run *importRun, line int, project storage.Project) error {
	date, ok, err := im.resolveDate(ctx, run, line, project.ID)
	if err != nil || !ok {
		return err
	}
	project.Date = date
	if stored, err := im.put(ctx, run, line, project); err != nil || !stored {
		return err
	}
	run.report.add("Line %d: created new project %d.", line, project.ID)
	run.report.Created++
	return nil
}

func (im *Importer) update(ctx context.Context, run *importRun, line int, existing, incoming storage.Project) error {
	changes := changedFields(existing, incoming)
	if existing.Date == "" && im.dates != nil {
		date, ok, err := im.resolveDate(ctx, run, line, existing.ID)
		if err != nil || !ok {
			return err
		}
		if date != "" {
			incoming.Date = date
			changes = append(changes, "date")
		}
	} else {
		incoming.Date = existing.Date
	}

	if len(changes) == 0 {
		run.unchanged.extend(line)
		run.report.Unchanged++
		return nil
	}
	run.flushUnchanged()
	incoming.CreatedAt = existing.CreatedAt
	if stored, err := im.put(ctx, run, line, incoming); err != nil || !stored {
		return err
	}
	run.report.add("Line %d: updated %d: %s.", line, existing.ID, strings.Join(changes, ", "))
	run.report.Updated++
	return nil
}

// resolveDate returns ok=false when the lookup failed and was reported.
// Only context errors abort the run.
func (im *Importer) resolveDate(ctx context.Context, run *importRun, line int, videoID int64) (string, bool, error) {
	if im.dates == nil {
		return "", true, nil
	}
	date, err := im.dates.PublishDate(ctx, videoID)
	if err == nil {
		return date, true, nil
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return "", false, ctxErr
	}
	run.flushUnchanged()
	run.flushBlank()
	run.report.add("Line %d: error: %d: %v.", line, videoID, err)
	run.report.Failed++
	return "", false, nil
}

// put reports whether the project was written. Dry runs count as written.
func (im *Importer) put(ctx context.Context, run *importRun, line int, project storage.Project) (bool, error) {
	if im.dryRun {
		return true, nil
	}
	err := im.store.PutProject(ctx, project)
	if errors.Is(err, storage.ErrAlreadyExists) {
		run.report.add("Line %d: error: %d: link %s belongs to another project.", line, project.ID, project.Link)
		run.report.Failed++
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("store project %d: %w", project.ID, err)
	}
	return true, nil
}

func (im *Importer) projectFromRow(videoID int64, link string, row Row) storage.Project {
	text := func(column string) string {
		return im.sanitizer.Text(row.Get(column))
	}
	list := func(column string) []string {
		return SeparateElements(text(column))
	}
	return storage.Project{
		ID:         videoID,
		Link:       link,
		Title:      text(ColumnTheme),
		Author:     text(ColumnName),
		Category:   list(ColumnCategories),
		Direction:  list(ColumnDirector),
		Sound:      list(ColumnSound),
		Production: list(ColumnProduction),
		Support:    list(ColumnSupport),
		Assistance: list(ColumnAssistance),
		Research:   list(ColumnResearch),
		Location: ConcatStrings(
			text(ColumnRegion),
			text(ColumnDistrict),
			text(ColumnCouncil),
			text(ColumnPlace),
		),
		Instruments: list(ColumnInstruments),
		Keywords:    SeparateElements(ConcatStrings(text(ColumnKeywords), text(ColumnConcepts))),
		InfoPool: ConcatStrings(
			text(ColumnStory),
			text(ColumnOtherInfo),
			text(ColumnBiographies),
		),
	}
}

// changedFields lists the sheet-driven fields that differ, in report order.
func changedFields(existing, incoming storage.Project) []string {
	var changes []string
	check := func(name string, changed bool) {
		if changed {
			changes = append(changes, name)
		}
	}
	check("title", existing.Title != incoming.Title)
	check("author", existing.Author != incoming.Author)
	check("link", existing.Link != incoming.Link)
	check("category", !slices.Equal(existing.Category, incoming.Category))
	check("direction", !slices.Equal(existing.Direction, incoming.Direction))
	check("sound", !slices.Equal(existing.Sound, incoming.Sound))
	check("production", !slices.Equal(existing.Production, incoming.Production))
	check("support", !slices.Equal(existing.Support, incoming.Support))
	check("assistance", !slices.Equal(existing.Assistance, incoming.Assistance))
	check("research", !slices.Equal(existing.Research, incoming.Research))
	check("location", existing.Location != incoming.Location)
	check("instruments", !slices.Equal(existing.Instruments, incoming.Instruments))
	check("keywords", !slices.Equal(existing.Keywords, incoming.Keywords))
	check("infoPool", existing.InfoPool != incoming.InfoPool)
	return changes
}
