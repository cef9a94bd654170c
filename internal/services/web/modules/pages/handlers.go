// Package pages serves the home and about document shells.
package pages

import (
	"net/http"

	"github.com/a-h/templ"
	"github.com/louisbranch/lastro/internal/services/web/metadata"
	apperrors "github.com/louisbranch/lastro/internal/services/web/platform/errors"
	webi18n "github.com/louisbranch/lastro/internal/services/web/platform/i18n"
	"github.com/louisbranch/lastro/internal/services/web/platform/weberror"
	"github.com/louisbranch/lastro/internal/services/web/routepath"
	webtemplates "github.com/louisbranch/lastro/internal/services/web/templates"
)

type handlers struct {
	routes metadata.Routes
}

func newHandlers(routes metadata.Routes) handlers {
	return handlers{routes: routes}
}

func (h handlers) handleHome(w http.ResponseWriter, r *http.Request) {
	loc, _ := webi18n.ResolveLocalizer(r)
	h.writePage(w, r, routepath.Root, webtemplates.Home(webi18n.Listing(loc)))
}

func (h handlers) handleAbout(w http.ResponseWriter, r *http.Request) {
	loc, _ := webi18n.ResolveLocalizer(r)
	h.writePage(w, r, routepath.About, webtemplates.About(webi18n.About(loc)))
}

func (handlers) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok"))
}

// handleRedirectHome sends unknown page paths to the home view.
func (handlers) handleRedirectHome(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, routepath.Root, http.StatusFound)
}

func (handlers) handleAPINotFound(w http.ResponseWriter, r *http.Request) {
	weberror.WriteJSON(w, r, apperrors.E(apperrors.KindNotFound, "unknown api route"))
}

func (h handlers) writePage(w http.ResponseWriter, r *http.Request, route string, body templ.Component) {
	loc, lang := webi18n.ResolveLocalizer(r)
	page := webtemplates.PageContext{
		Lang:        lang.String(),
		CurrentPath: route,
		SiteName:    loc.Sprintf("core.site.name"),
		NoScript:    loc.Sprintf("web.shell.noscript"),
		Head:        metadata.HeadFor(h.routes.ForRoute(route)),
		Nav:         webi18n.Nav(loc),
	}
	w.Header().Set("Content-Language", page.Lang)
	templ.Handler(webtemplates.Document(page, body)).ServeHTTP(w, r)
}
