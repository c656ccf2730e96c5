package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// ctxActor extracts the auth claims injected by the Auth middleware and
// performs a fast-fail check before any service call: role must be non-empty
// (presence proves the middleware ran). The actor recorded in the activity
// trail is the claim email, falling back to the display name.
func ctxActor(c echo.Context) (actor string, err error) {
	role, _ := c.Get("role").(string)
	if role == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}

	actor, _ = c.Get("email").(string)
	if actor == "" {
		actor, _ = c.Get("name").(string)
	}
	return actor, nil
}
