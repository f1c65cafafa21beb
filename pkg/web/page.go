package web

import (
	"bytes"
	_ "embed"
	"fmt"
	"html/template"
	"net/http"
	"strconv"

	"tableflip.dev/routine/pkg/app"
	"tableflip.dev/routine/pkg/progress"
	"tableflip.dev/routine/pkg/weather"
)

//go:embed index.html.tmpl
var indexHTML string

var funcs = template.FuncMap{
	"percent": func(v float64) string { return fmt.Sprintf("%.0f", v) },
	"position": func(s *weather.Snapshot) string {
		return strconv.FormatFloat(s.Position(), 'f', 1, 64)
	},
	"conditionIcon": ConditionIcon,
}

var refreshMeta = template.HTML(fmt.Sprintf(`<meta http-equiv="refresh" content="%d">`, int(RefreshInterval.Seconds())))

var indexTemplate = template.Must(template.New("index").Funcs(funcs).Parse(indexHTML))

type pageData struct {
	app.Dashboard
	Alert       string
	Celebration *progress.Celebration
	RefreshMeta template.HTML
}

// ConditionIcon is the glyph shown for a weather condition.
func ConditionIcon(c weather.Condition) string {
	switch c {
	case weather.Clouds:
		return "☁️"
	case weather.Rain:
		return "🌧️"
	case weather.Snow:
		return "❄️"
	case weather.Thunderstorm:
		return "⛈️"
	default:
		return "☀️"
	}
}

func (s *Server) index(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	data := pageData{
		Dashboard:   s.session.Dashboard(r.Context()),
		Alert:       q.Get("alert"),
		RefreshMeta: refreshMeta,
	}
	if v := q.Get("celebrate"); v != "" {
		if pct, err := strconv.ParseFloat(v, 64); err == nil && pct >= 0 && pct <= 100 {
			c := progress.Celebrate(pct)
			data.Celebration = &c
		}
	}

	var buf bytes.Buffer
	if err := indexTemplate.Execute(&buf, data); err != nil {
		s.logger.Error("render page", "err", err)
		http.Error(w, "render failed", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buf.WriteTo(w)
}
