// Package report assembles a printable HTML itinerary for one tour: a title
// page followed by a section per stop, with stop descriptions rendered from
// markdown.
package report

import (
	"bytes"
	"fmt"
	"html/template"
	"io"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/wayfarerhq/wayfarer/tour"
)

var md = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
)

const pageTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Tour.Title}}</title>
<style>
body { font-family: Georgia, serif; max-width: 48rem; margin: 2rem auto; padding: 0 1rem; color: #222; }
h1 { border-bottom: 2px solid #222; padding-bottom: .3rem; }
.summary { font-style: italic; color: #555; }
.stop { page-break-inside: avoid; margin-top: 2rem; }
.stop h2 { margin-bottom: .2rem; }
.coords { color: #777; font-size: .85rem; }
.stop img { max-width: 100%; }
@media print { body { margin: 0; } }
</style>
</head>
<body>
<h1>{{.Tour.Title}}</h1>
{{if .Tour.Summary}}<p class="summary">{{.Tour.Summary}}</p>{{end}}
{{if .Tour.CoverURL}}<img src="{{.Tour.CoverURL}}" alt="cover">{{end}}
{{range .Stops}}
<section class="stop">
<h2>{{.Number}}. {{.Title}}</h2>
<p class="coords">{{.Coords}}</p>
{{if .ImageURL}}<img src="{{.ImageURL}}" alt="{{.Title}}">{{end}}
{{.Description}}
</section>
{{end}}
</body>
</html>
`

var page = template.Must(template.New("report").Parse(pageTemplate))

type stopView struct {
	Number      int
	Title       string
	Coords      string
	ImageURL    string
	Description template.HTML
}

type pageData struct {
	Tour  tour.Tour
	Stops []stopView
}

// Write renders the printable report for a tour and its stops.
func Write(w io.Writer, t tour.Tour, stops []tour.Stop) error {
	tour.SortStops(stops)

	views := make([]stopView, 0, len(stops))
	for i, s := range stops {
		var buf bytes.Buffer
		if err := md.Convert([]byte(s.Description), &buf); err != nil {
			return fmt.Errorf("failed to render description of %q: %w", s.Title, err)
		}
		views = append(views, stopView{
			Number:      i + 1,
			Title:       s.Title,
			Coords:      fmt.Sprintf("%.5f, %.5f", s.Lat, s.Lng),
			ImageURL:    s.ImageURL,
			Description: template.HTML(buf.String()), //nolint:gosec
		})
	}

	return page.Execute(w, pageData{Tour: t, Stops: views})
}
