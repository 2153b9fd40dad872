package visualization

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/username/fasbooks/src/models"
)

func TestChartDataRenderer(t *testing.T) {
	r := NewChartDataRenderer()

	chart := models.ChartData{
		Accounts: []string{"Right of Use Asset (ROU)", "Ijarah Liability"},
		Debits:   []decimal.Decimal{decimal.NewFromInt(489000), decimal.Zero},
		Credits:  []decimal.Decimal{decimal.Zero, decimal.NewFromInt(489000)},
	}
	payload, err := r.Render(chart)
	require.NoError(t, err)

	var doc struct {
		Type  string           `json:"type"`
		Title string           `json:"title"`
		Data  models.ChartData `json:"data"`
	}
	require.NoError(t, json.Unmarshal(payload, &doc))
	assert.Equal(t, "bar", doc.Type)
	assert.Equal(t, "Journal Entries", doc.Title)
	assert.Equal(t, chart.Accounts, doc.Data.Accounts)
	assert.True(t, doc.Data.Debits[0].Equal(decimal.NewFromInt(489000)))
}
