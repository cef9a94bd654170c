package importer

import (
	"fmt"
	"strconv"
	"strings"
)

// Duplicate lists every sheet line that links the same video.
type Duplicate struct {
	VideoID int64
	Lines   []int
}

// Report summarizes one import run. Entries keep the per-line messages in
// sheet order.
type Report struct {
	DryRun     bool
	Lines      int
	Created    int
	Updated    int
	Unchanged  int
	Invalid    int
	Failed     int
	Entries    []string
	Duplicates []Duplicate
	Stored     int
}

func (r *Report) add(format string, args ...any) {
	r.Entries = append(r.Entries, fmt.Sprintf(format, args...))
}

// String renders the report as plain text.
func (r Report) String() string {
	var b strings.Builder
	if r.DryRun {
		b.WriteString("Dry run: nothing was written.\n")
	}
	fmt.Fprintf(&b, "CSV fetched with success! %d lines found.\n", r.Lines)
	for _, entry := range r.Entries {
		b.WriteString(entry)
		b.WriteByte('\n')
	}
	if len(r.Duplicates) > 0 {
		b.WriteString("Duplicate summary:\n")
		for _, dup := range r.Duplicates {
			fmt.Fprintf(&b, "- https://vimeo.com/%d repeated at lines %s\n", dup.VideoID, joinLines(dup.Lines))
		}
	}
	fmt.Fprintf(&b, "Created %d, updated %d, unchanged %d, invalid %d, failed %d.\n",
		r.Created, r.Updated, r.Unchanged, r.Invalid, r.Failed)
	fmt.Fprintf(&b, "%d objects on the database.", r.Stored)
	return b.String()
}

func joinLines(lines []int) string {
	parts := make([]string, len(lines))
	for i, line := range lines {
		parts[i] = strconv.Itoa(line)
	}
	if len(parts) < 2 {
		return strings.Join(parts, "")
	}
	return strings.Join(parts[:len(parts)-1], ", ") + " and " + parts[len(parts)-1]
}

// lineRange accumulates consecutive lines that share one message.
type lineRange struct {
	start int
	end   int
}

func (r *lineRange) extend(line int) {
	if r.start == 0 {
		r.start = line
	}
	r.end = line
}

// flush writes the pending range, if any, using single for one line and
// multi for a span, then resets.
func (r *lineRange) flush(report *Report, single, multi string) {
	if r.start == 0 {
		return
	}
	if r.start == r.end {
		report.add(single, r.start)
	} else {
		report.add(multi, r.start, r.end)
	}
	*r = lineRange{}
}
