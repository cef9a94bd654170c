// Package templates renders the document shell. Listing cards are drawn by
// the browser script from the listing API; the server only emits the shell
// and its head metadata.
package templates

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/a-h/templ"
	"github.com/louisbranch/lastro/internal/services/web/metadata"
	webi18n "github.com/louisbranch/lastro/internal/services/web/platform/i18n"
	"github.com/louisbranch/lastro/internal/services/web/routepath"
)

// PageContext provides shared layout context for pages.
type PageContext struct {
	Lang        string
	CurrentPath string
	SiteName    string
	NoScript    string
	Head        *metadata.Head
	Nav         webi18n.NavCopy
}

// Document wraps body in the html shell with the head for page.
func Document(page PageContext, body templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		out := &htmlWriter{w: w}
		out.raw("<!DOCTYPE html>\n<html lang=\"")
		out.text(page.Lang)
		out.raw("\">\n<head>\n<meta charset=\"utf-8\">\n")
		out.raw("<meta name=\"viewport\" content=\"width=device-width, initial-scale=1\">\n")
		writeHead(out, page.Head)
		out.raw("<link rel=\"stylesheet\" href=\"" + routepath.StaticPrefix + "app.css\">\n")
		out.raw("<script defer src=\"" + routepath.StaticPrefix + "app.js\"></script>\n")
		out.raw("</head>\n<body>\n")
		writeNav(out, page)
		if out.err != nil {
			return out.err
		}
		if body != nil {
			if err := body.Render(ctx, w); err != nil {
				return err
			}
		}
		if page.NoScript != "" {
			out.raw("<noscript>")
			out.text(page.NoScript)
			out.raw("</noscript>\n")
		}
		out.raw("</body>\n</html>\n")
		return out.err
	})
}

func writeHead(out *htmlWriter, head *metadata.Head) {
	if head == nil {
		return
	}
	out.raw("<title>")
	out.text(head.Title)
	out.raw("</title>\n")
	for _, tag := range head.Tags() {
		out.rawf("<meta %s=\"", tag.Attr)
		out.text(tag.Name)
		out.raw("\" content=\"")
		out.text(tag.Content)
		out.raw("\">\n")
	}
	if head.Canonical != "" {
		out.raw("<link rel=\"canonical\" href=\"")
		out.text(string(templ.URL(head.Canonical)))
		out.raw("\">\n")
	}
}

func writeNav(out *htmlWriter, page PageContext) {
	out.raw("<header class=\"menu\"><a class=\"brand\" href=\"" + routepath.Root + "\">")
	out.text(page.SiteName)
	out.raw("</a><nav>")
	for _, link := range []struct{ href, label string }{
		{routepath.Root, page.Nav.Home},
		{routepath.About, page.Nav.About},
	} {
		out.raw("<a href=\"" + link.href + "\"")
		if link.href == page.CurrentPath {
			out.raw(" aria-current=\"page\"")
		}
		out.raw(">")
		out.text(link.label)
		out.raw("</a>")
	}
	out.raw("</nav></header>\n")
}

// Home renders the listing mount point. The browser script mounts a view
// through the listings API and draws cards into the grid.
func Home(listingCopy webi18n.ListingCopy) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		encoded, err := json.Marshal(listingCopy)
		if err != nil {
			return fmt.Errorf("encode listing copy: %w", err)
		}
		out := &htmlWriter{w: w}
		out.raw("<main class=\"project-block\" id=\"listing\" data-endpoint=\"" + routepath.Listings + "\" data-copy=\"")
		out.text(string(encoded))
		out.raw("\">\n<div class=\"project-block-header\"><h2>")
		out.text(listingCopy.Title)
		out.raw("</h2><span class=\"rule\"></span></div>\n")
		out.raw("<div class=\"project-grid\" data-role=\"grid\"></div>\n")
		out.raw("<div class=\"listing-footer\"><button type=\"button\" data-role=\"load-more\" hidden>")
		out.text(listingCopy.LoadMore)
		out.raw("</button><p class=\"loading\" data-role=\"loading\" hidden>")
		out.text(listingCopy.Loading)
		out.raw("</p></div>\n</main>\n")
		return out.err
	})
}

// About renders the about page body.
func About(aboutCopy webi18n.AboutCopy) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		out := &htmlWriter{w: w}
		out.raw("<main class=\"grid-setup about\">\n<section><span class=\"rule\"></span><h2>")
		out.text(aboutCopy.Contacts)
		out.raw("</h2><div class=\"contacts\"><a href=\"mailto:amusicaportuguesa@gmail.com\">amusicaportuguesa@gmail.com</a></div></section>\n")
		out.raw("<section><span class=\"rule\"></span><h2>")
		out.text(aboutCopy.Title)
		out.raw("</h2>")
		for _, paragraph := range aboutCopy.Paragraphs {
			out.raw("<p>")
			out.text(paragraph)
			out.raw("</p>")
		}
		out.raw("</section>\n</main>\n")
		return out.err
	})
}
