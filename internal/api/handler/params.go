package handler

import (
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
)

// queryInt reads an integer query parameter, returning 0 when absent or
// unparseable. Page normalization downstream turns 0 into the defaults.
func queryInt(c echo.Context, name string) int {
	v, err := strconv.Atoi(c.QueryParam(name))
	if err != nil {
		return 0
	}
	return v
}

// queryBool reads an optional boolean query parameter. Absent or malformed
// values return nil so filters can distinguish "unset" from false.
func queryBool(c echo.Context, name string) *bool {
	raw := c.QueryParam(name)
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return nil
	}
	return &v
}

// queryEnum uppercases a query parameter so inbound enum filters accept any
// case.
func queryEnum(c echo.Context, name string) string {
	return enumValue(c.QueryParam(name))
}

// enumValue canonicalizes an inbound enum value to its stored uppercase form.
func enumValue(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}
