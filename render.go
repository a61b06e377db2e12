package archivegen

import (
	"github.com/labstack/echo/v4"
)

// RenderHTML writes an already rendered page as an HTML response.
func RenderHTML(c echo.Context, code int, html []byte) error {
	return c.Blob(code, echo.MIMETextHTMLCharsetUTF8, html)
}
