package tour

import (
	"io"

	"gopkg.in/yaml.v3"
)

// Export is the YAML document written by `wayfarer export`: one tour with its
// stops inlined in order.
type Export struct {
	Tour  Tour   `yaml:"tour"`
	Stops []Stop `yaml:"stops"`
}

// WriteYAML writes the tour and its stops as a YAML document. Stops are
// sorted by order index before writing.
func WriteYAML(w io.Writer, t Tour, stops []Stop) error {
	SortStops(stops)
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	defer enc.Close() //nolint:errcheck
	return enc.Encode(Export{Tour: t, Stops: stops})
}

// ReadYAML parses a YAML export back into a tour and its stops.
func ReadYAML(r io.Reader) (Tour, []Stop, error) {
	var ex Export
	if err := yaml.NewDecoder(r).Decode(&ex); err != nil {
		return Tour{}, nil, err
	}
	SortStops(ex.Stops)
	return ex.Tour, ex.Stops, nil
}
