package sink

import (
	"encoding/json"

	"github.com/matzehuels/censusplot/pkg/chart"
)

// RenderJSON exports sc as indented JSON.
func RenderJSON(sc chart.Scene) ([]byte, error) {
	return json.MarshalIndent(sc, "", "  ")
}

// ReadJSON parses a scene exported with [RenderJSON].
func ReadJSON(data []byte) (chart.Scene, error) {
	var sc chart.Scene
	err := json.Unmarshal(data, &sc)
	return sc, err
}
