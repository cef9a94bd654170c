// Package routepath stores canonical HTTP paths for web modules.
package routepath

import (
	"net/url"
	"strings"
)

const (
	Root         = "/"
	About        = "/about"
	Health       = "/up"
	StaticPrefix = "/static/"

	APIPrefix            = "/api/"
	Listings             = "/api/listings"
	ListingsPrefix       = "/api/listings/"
	ListingPattern       = ListingsPrefix + "{viewID}"
	ListingMorePattern   = ListingsPrefix + "{viewID}/more"
	ProjectsPrefix       = "/api/projects/"
	ProjectDetailPattern = ProjectsPrefix + "{projectID}"
)

// Listing returns the path of one mounted listing view.
func Listing(viewID string) string {
	return ListingsPrefix + escapeSegment(viewID)
}

// ListingMore returns the load-more path of one mounted listing view.
func ListingMore(viewID string) string {
	return Listing(viewID) + "/more"
}

// Project returns the detail path of one project.
func Project(projectID string) string {
	return ProjectsPrefix + escapeSegment(projectID)
}

func escapeSegment(value string) string {
	return url.PathEscape(strings.TrimSpace(value))
}
