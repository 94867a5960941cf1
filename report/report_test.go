package report

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/wayfarerhq/wayfarer/tour"
)

func sampleTour() (tour.Tour, []tour.Stop) {
	t := tour.Tour{ID: "t1", Title: "Harbor Loop", Summary: "Along the waterfront."}
	stops := []tour.Stop{
		{Title: "Fish Market", Description: "Open since **1874**.", Lat: 57.70, Lng: 11.96, OrderIndex: 1},
		{Title: "Lighthouse", Description: "Built in 1848.", Lat: 57.69, Lng: 11.91, OrderIndex: 0},
	}
	return t, stops
}

func TestWriteRendersStopsInOrder(t *testing.T) {
	tr, stops := sampleTour()
	var buf bytes.Buffer
	if err := Write(&buf, tr, stops); err != nil {
		t.Fatal(err)
	}
	html := buf.String()

	if !strings.Contains(html, "<h1>Harbor Loop</h1>") {
		t.Error("missing tour title")
	}
	lighthouse := strings.Index(html, "1. Lighthouse")
	market := strings.Index(html, "2. Fish Market")
	if lighthouse == -1 || market == -1 {
		t.Fatalf("stops missing or misnumbered:\n%s", html)
	}
	if lighthouse > market {
		t.Error("stops not ordered by order index")
	}
	if !strings.Contains(html, "<strong>1874</strong>") {
		t.Error("markdown in descriptions was not rendered")
	}
}

func TestWriteEscapesTitles(t *testing.T) {
	tr := tour.Tour{Title: `<script>alert("x")</script>`}
	var buf bytes.Buffer
	if err := Write(&buf, tr, nil); err != nil {
		t.Fatal(err)
	}
	if strings.Contains(buf.String(), `<script>alert`) {
		t.Error("tour title was not escaped")
	}
}

func TestHandlerServesReport(t *testing.T) {
	tr, stops := sampleTour()
	srv := httptest.NewServer(Handler(tr, stops))
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); !strings.Contains(ct, "text/html") {
		t.Errorf("content type = %q", ct)
	}
}
