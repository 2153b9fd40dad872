// Package visualization is the seam for the external chart-rendering
// collaborator. The core never draws images itself; it hands the aligned
// chart data to a Renderer and attaches whatever opaque payload comes back.
package visualization

import (
	"encoding/json"
	"fmt"

	"github.com/username/fasbooks/src/models"
)

// Renderer turns chart data into an opaque visualization payload.
// Implementations may call out to an image service; the default stays
// in-process and emits a chart description document.
type Renderer interface {
	Render(chart models.ChartData) (json.RawMessage, error)
}

type chartDocument struct {
	Type  string           `json:"type"`
	Title string           `json:"title"`
	Data  models.ChartData `json:"data"`
}

type chartDataRenderer struct{}

// NewChartDataRenderer returns the default in-process renderer, which emits
// a grouped-bar chart description of the journal entries.
func NewChartDataRenderer() Renderer {
	return &chartDataRenderer{}
}

func (r *chartDataRenderer) Render(chart models.ChartData) (json.RawMessage, error) {
	doc := chartDocument{
		Type:  "bar",
		Title: "Journal Entries",
		Data:  chart,
	}
	payload, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to encode chart document: %w", err)
	}
	return payload, nil
}
