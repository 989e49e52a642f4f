package web

import (
	"html/template"
	"strings"
	"time"
)

var templateFuncs = template.FuncMap{
	"formatDate":  formatDate,
	"websiteURL":  websiteURL,
	"seriesColor": seriesColorCSS,
	"initials":    initials,
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("Jan 2, 2006")
}

// websiteURL turns a profile blog entry into a link, adding a scheme when missing.
func websiteURL(blog string) string {
	if strings.HasPrefix(blog, "http://") || strings.HasPrefix(blog, "https://") {
		return blog
	}
	return "https://" + blog
}

func initials(login string) string {
	if len(login) > 2 {
		login = login[:2]
	}
	return strings.ToUpper(login)
}

// seriesColorCSS marks the series colour as safe CSS so hsl() survives escaping.
func seriesColorCSS(repository string) template.CSS {
	return template.CSS(SeriesColor(repository))
}
