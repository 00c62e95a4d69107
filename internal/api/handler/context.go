package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// ctxIdentity extracts the auth claims injected by the Auth middleware and
// performs a fast-fail check before any service call: both uid and role must
// be present — their absence means the middleware did not run on this route
// or the token is structurally valid but operationally unusable.
func ctxIdentity(c echo.Context) (uid, role string, err error) {
	uid, _ = c.Get("uid").(string)
	role, _ = c.Get("role").(string)
	if uid == "" || role == "" {
		return "", "", echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return uid, role, nil
}
