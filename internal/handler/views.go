package handler

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"time"

	"github.com/gofiber/fiber/v2"

	"jobnexus/internal/middleware"
)

//go:embed views/*.html
var viewFS embed.FS

var views = template.Must(template.New("").Funcs(template.FuncMap{
	"timeAgo":  timeAgo,
	"longDate": func(t time.Time) string { return t.Format("January 2, 2006") },
	"clock":    func(t time.Time) string { return t.Format("3:04 PM") },
	"iso":      func(t time.Time) string { return t.Format(time.RFC3339) },
	"inc":      func(i int) int { return i + 1 },
	"dec":      func(i int) int { return i - 1 },
}).ParseFS(viewFS, "views/*.html"))

type pageData struct {
	Title     string
	Flash     *middleware.Flash
	CSRFToken string
}

func newPageData(c *fiber.Ctx, title string) pageData {
	return pageData{
		Title:     title,
		Flash:     middleware.PopFlash(c),
		CSRFToken: middleware.CSRFToken(c),
	}
}

func render(c *fiber.Ctx, status int, name string, data interface{}) error {
	var buf bytes.Buffer
	if err := views.ExecuteTemplate(&buf, name, data); err != nil {
		return err
	}
	c.Type("html", "utf-8")
	return c.Status(status).Send(buf.Bytes())
}

func timeAgo(t time.Time) string {
	d := time.Since(t)
	switch {
	case d < time.Minute:
		return "Just now"
	case d < time.Hour:
		return plural(int(d/time.Minute), "minute")
	case d < 24*time.Hour:
		return plural(int(d/time.Hour), "hour")
	case d < 7*24*time.Hour:
		return plural(int(d/(24*time.Hour)), "day")
	}
	return t.Format("Jan 2, 2006")
}

func plural(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s ago", unit)
	}
	return fmt.Sprintf("%d %ss ago", n, unit)
}
