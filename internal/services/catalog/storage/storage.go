// Package storage defines persistence contracts for the project catalog.
package storage

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrNotFound indicates a requested project is missing.
	ErrNotFound = errors.New("record not found")
	// ErrAlreadyExists indicates another project already owns the link.
	ErrAlreadyExists = errors.New("record already exists")
)

// Project stores one archive entry. ID is the Vimeo video id the entry links
// to. Date is YYYY-MM-DD, or empty while the publish date is unknown.
type Project struct {
	ID       int64
	Link     string
	Title    string
	Author   string
	Category []string
	Date     string

	Direction  []string
	Sound      []string
	Production []string
	Support    []string
	Assistance []string
	Research   []string

	Location    string
	Instruments []string
	Keywords    []string
	InfoPool    string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// SampleQuery selects a random subset of projects. Where is an optional SQL
// predicate over the projects table with positional Args.
type SampleQuery struct {
	Count int
	Where string
	Args  []any
}

// ProjectStore persists catalog projects.
type ProjectStore interface {
	PutProject(ctx context.Context, project Project) error
	GetProject(ctx context.Context, id int64) (Project, error)
	ListProjects(ctx context.Context) ([]Project, error)
	SampleProjects(ctx context.Context, query SampleQuery) ([]Project, error)
	CountProjects(ctx context.Context) (int, error)
}
