package quote

import (
	"strings"
	"testing"

	"github.com/loganlanou/blindquote/internal/pricing"
	"github.com/stretchr/testify/assert"
)

func TestFabricClass(t *testing.T) {
	tests := []struct {
		name string
		item pricing.LineItem
		want string
	}{
		{"light filter by name", pricing.LineItem{Fabric: "Light-Filter White", FabricType: "B1"}, "bg-light-filter"},
		{"light filter lower case", pricing.LineItem{Fabric: "sunset light-filter", FabricType: "SN"}, "bg-light-filter"},
		{"screen", pricing.LineItem{Fabric: "Mesh", FabricType: "SN"}, "bg-screen"},
		{"blockout B1", pricing.LineItem{FabricType: "B1"}, "bg-blockout"},
		{"blockout B5", pricing.LineItem{FabricType: "B5"}, "bg-blockout"},
		{"not blockout B6", pricing.LineItem{FabricType: "B6"}, ""},
		{"plain", pricing.LineItem{Fabric: "Linen", FabricType: "LF"}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FabricClass(tt.item))
		})
	}
}

func TestAppendixTable_SingleLightFilterItem(t *testing.T) {
	data := &pricing.TemplateData{
		MulTimes: 1,
		Items: []pricing.LineItem{
			{Width: 100, Height: 200, Fabric: "Light-Filter White", FabricType: "LF", LinePrice: 50},
		},
	}

	table := AppendixTable(data)

	assert.Equal(t, 1, strings.Count(table, "<tbody>"))
	assert.Equal(t, 1, countDataRows(table))
	assert.Contains(t, table, `<td data-label="F-NAME" class="bg-light-filter">Light-Filter White</td>`)
	assert.Contains(t, table, `<td data-label="Price" class="text-right">$50.00</td>`)
	assert.Contains(t, table, `<td data-label="#" class="text-center">1</td>`)
}

func TestAppendixTable_ZeroPriceWithNegativeMultiplier(t *testing.T) {
	data := &pricing.TemplateData{
		MulTimes: -1,
		Items: []pricing.LineItem{
			{Width: 100, Height: 200, Fabric: "Linen", LinePrice: 0},
		},
	}

	table := AppendixTable(data)

	assert.Contains(t, table, `<td data-label="Price" class="text-right">$0.00</td>`)
	assert.NotContains(t, table, "$-0.00")
}

func TestAppendixTable_Structure(t *testing.T) {
	table := AppendixTable(&pricing.TemplateData{})

	assert.True(t, strings.HasPrefix(strings.TrimSpace(table), `<table class="detailed-list-table">`))
	assert.Contains(t, table, `<th colspan="8">Roller Blinds - Detailed List</th>`)
	assert.Contains(t, table, "<th>#</th><th>F-NAME</th><th>F-COLOR</th><th>Location</th><th>HD</th><th>Dual</th><th>Motor</th><th>Price</th>")
	assert.Equal(t, 8, strings.Count(table, "<col style="))
	assert.Contains(t, table, `<col style="width: 20%;">`)
	assert.Equal(t, 0, countDataRows(table))
}

func TestAppendixTable_RowsAndIndicators(t *testing.T) {
	data := &pricing.TemplateData{
		MulTimes: 1.5,
		Items: []pricing.LineItem{
			{Width: 1000, Height: 1200, Fabric: "Blockout Grey", FabricType: "B3", Color: "Grey", Location: "Bed 1", Winder: "HD", Dual: "D", Motor: true, LinePrice: 100},
			{Width: 1000, LinePrice: 999},
			{Width: 800, Height: 900, Fabric: "Screen", FabricType: "SN", LinePrice: 20},
		},
	}

	table := AppendixTable(data)
	rows := dataRows(table)
	assert.Len(t, rows, 2)
	assert.NotContains(t, table, "$1498.50", "invalid item is never rendered")

	first := rows[0]
	assert.Contains(t, first, `<td data-label="F-NAME" class="bg-blockout">Blockout Grey</td>`)
	assert.Contains(t, first, `<td data-label="HD" class="text-center">✔</td>`)
	assert.Contains(t, first, `<td data-label="Dual" class="text-center">✔</td>`)
	assert.Contains(t, first, `<td data-label="Motor" class="text-center">✔</td>`)
	assert.Contains(t, first, `<td data-label="Price" class="text-right">$150.00</td>`)

	second := rows[1]
	assert.Contains(t, second, `<td data-label="#" class="text-center">2</td>`, "numbering skips invalid items")
	assert.Contains(t, second, `<td data-label="F-COLOR" class="bg-screen is-empty-cell"></td>`)
	assert.Contains(t, second, `<td data-label="Location" class="is-empty-cell"></td>`)
	assert.Contains(t, second, `<td data-label="HD" class="text-center is-empty-cell"></td>`)
	assert.Contains(t, second, `<td data-label="Price" class="text-right">$30.00</td>`)
}

func TestAppendixTable_EscapesText(t *testing.T) {
	data := &pricing.TemplateData{
		MulTimes: 1,
		Items:    []pricing.LineItem{{Width: 1, Height: 1, Fabric: "Black & White <Duo>"}},
	}

	assert.Contains(t, AppendixTable(data), "Black &amp; White &lt;Duo&gt;")
}

func dataRows(table string) []string {
	body := table[strings.Index(table, "<tbody>"):]
	return strings.Split(body, "<tr>")[1:]
}

func countDataRows(table string) int {
	return len(dataRows(table))
}
