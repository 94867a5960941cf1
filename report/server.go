package report

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/wayfarerhq/wayfarer/tour"
)

// Handler serves the rendered report for a previously loaded tour so it can
// be previewed in a browser before printing.
func Handler(t tour.Tour, stops []tour.Stop) http.Handler {
	r := mux.NewRouter()
	r.HandleFunc("/", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := Write(w, t, stops); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	}).Methods(http.MethodGet)
	return r
}
