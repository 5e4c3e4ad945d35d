// Package handler implements the HTTP endpoints.  Catalog and booking
// handlers depend on small service interfaces so they can be exercised
// in tests without a database.
package handler

import (
	"errors"

	"github.com/labstack/echo/v4"
)

var errNoUser = errors.New("no authenticated user in context")

// getUserID reads the authenticated user's ID placed in the context by
// the JWT middleware.
func getUserID(c echo.Context) (uint64, error) {
	if id, ok := c.Get("user_id").(uint64); ok && id > 0 {
		return id, nil
	}
	return 0, errNoUser
}
