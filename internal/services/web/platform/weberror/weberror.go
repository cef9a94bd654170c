// Package weberror writes localized error responses for web modules.
package weberror

import (
	"net/http"
	"strings"

	"github.com/louisbranch/lastro/internal/platform/httpx"
	apperrors "github.com/louisbranch/lastro/internal/services/web/platform/errors"
	webi18n "github.com/louisbranch/lastro/internal/services/web/platform/i18n"
)

var kindKeys = map[apperrors.Kind]string{
	apperrors.KindInvalidInput: "core.error.invalid_input",
	apperrors.KindNotFound:     "core.error.not_found",
	apperrors.KindUnavailable:  "core.error.unavailable",
	apperrors.KindUnknown:      "core.error.internal",
}

// PublicMessage resolves a user-safe localized error message.
func PublicMessage(loc webi18n.Localizer, err error) string {
	if err == nil {
		return ""
	}
	if loc != nil {
		key := apperrors.LocalizationKey(err)
		if key == "" {
			key = kindKeys[apperrors.KindOf(err)]
		}
		if key != "" {
			if localized := strings.TrimSpace(loc.Sprintf(key)); localized != "" && localized != key {
				return localized
			}
		}
	}
	statusCode := apperrors.HTTPStatus(err)
	if statusCode < http.StatusBadRequest {
		statusCode = http.StatusInternalServerError
	}
	return http.StatusText(statusCode)
}

// WriteJSON writes err as a localized JSON error body with the status of
// its kind. Internal failures never echo the underlying message.
func WriteJSON(w http.ResponseWriter, r *http.Request, err error) {
	if w == nil {
		return
	}
	if err == nil {
		w.WriteHeader(http.StatusOK)
		return
	}
	loc, _ := webi18n.ResolveLocalizer(r)
	_ = httpx.WriteJSONError(w, apperrors.HTTPStatus(err), PublicMessage(loc, err))
}
