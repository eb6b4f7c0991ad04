package charts

import (
	"fmt"
	"math"
	"sort"

	"pitchprice/models"
)

// The adapter maps derived views onto chart-ready structures the rendering
// layer consumes as-is: {labels, datasets, styling}. Gap points are nils,
// never zeros, so missing buckets render as breaks in the line.

var palette = []string{
	"#4F46E5", "#10B981", "#F59E0B", "#EF4444", "#8B5CF6",
	"#06B6D4", "#EC4899", "#84CC16", "#F97316", "#6366F1",
}

// SeriesData is one renderable series aligned to the chart labels
type SeriesData struct {
	Label string     `json:"label"`
	Data  []*float64 `json:"data"`
	Color string     `json:"color"`
}

// ChartData is a complete line/bar chart payload
type ChartData struct {
	Labels   []string     `json:"labels"`
	Datasets []SeriesData `json:"datasets"`
}

// TableData is a renderable table payload
type TableData struct {
	Columns []string   `json:"columns"`
	Rows    [][]string `json:"rows"`
}

// SummaryCards is the formatted headline block. Empty rate sets show the
// "--" sentinel.
type SummaryCards struct {
	AvgRate    string `json:"avg_rate"`
	MinRate    string `json:"min_rate"`
	MinHotel   string `json:"min_hotel"`
	MaxRate    string `json:"max_rate"`
	MaxHotel   string `json:"max_hotel"`
	HotelCount string `json:"hotel_count"`
}

// BuildSummaryCards formats headline statistics for display
func BuildSummaryCards(s models.RateSummary) SummaryCards {
	cards := SummaryCards{
		AvgRate:    "--",
		MinRate:    "--",
		MaxRate:    "--",
		HotelCount: fmt.Sprintf("%d", s.HotelCount),
	}
	if !s.HasRates {
		return cards
	}

	cards.AvgRate = formatMoney(float64(s.AvgRate))
	if s.Min != nil {
		cards.MinRate = formatMoney(s.Min.Rate)
		cards.MinHotel = s.Min.HotelName
	}
	if s.Max != nil {
		cards.MaxRate = formatMoney(s.Max.Rate)
		cards.MaxHotel = s.Max.HotelName
	}
	return cards
}

// BuildEvolutionChart aligns every hotel series to the shared scrape-date
// axis, leaving nil gaps for dates a hotel was not observed on.
func BuildEvolutionChart(ev models.RateEvolution) ChartData {
	chart := ChartData{Labels: ev.Labels}

	position := make(map[string]int, len(ev.Labels))
	for i, label := range ev.Labels {
		position[label] = i
	}

	for i, series := range ev.Series {
		data := make([]*float64, len(ev.Labels))
		for _, p := range series.Points {
			if idx, ok := position[p.ScrapeDate]; ok {
				rate := p.Rate
				data[idx] = &rate
			}
		}
		chart.Datasets = append(chart.Datasets, SeriesData{
			Label: series.HotelName,
			Data:  data,
			Color: palette[i%len(palette)],
		})
	}
	return chart
}

// BuildSegmentChart renders latest rates as one dataset per segment, with
// hotel names on the label axis in segment display order.
func BuildSegmentChart(groups []models.SegmentGroup) ChartData {
	var chart ChartData
	for _, group := range groups {
		for _, h := range group.Hotels {
			chart.Labels = append(chart.Labels, h.HotelName)
		}
	}

	offset := 0
	for i, group := range groups {
		if len(group.Hotels) == 0 {
			continue
		}
		data := make([]*float64, len(chart.Labels))
		for j, h := range group.Hotels {
			rate := h.Rate
			data[offset+j] = &rate
		}
		offset += len(group.Hotels)
		chart.Datasets = append(chart.Datasets, SeriesData{
			Label: string(group.Segment),
			Data:  data,
			Color: palette[i%len(palette)],
		})
	}
	return chart
}

// BuildLeadTimeChart plots per-city indexed curves on a shared
// days-to-event axis, descending so the chart reads far out to near term.
func BuildLeadTimeChart(curves []models.LeadTimeCurve) ChartData {
	daySet := make(map[int]bool)
	for _, curve := range curves {
		for _, p := range curve.Points {
			daySet[p.DaysToEvent] = true
		}
	}
	days := make([]int, 0, len(daySet))
	for d := range daySet {
		days = append(days, d)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(days)))

	chart := ChartData{Labels: make([]string, len(days))}
	position := make(map[int]int, len(days))
	for i, d := range days {
		chart.Labels[i] = fmt.Sprintf("%d", d)
		position[d] = i
	}

	for i, curve := range curves {
		data := make([]*float64, len(days))
		for _, p := range curve.Points {
			index := roundTo1(p.AvgIndex)
			data[position[p.DaysToEvent]] = &index
		}
		chart.Datasets = append(chart.Datasets, SeriesData{
			Label: curve.City,
			Data:  data,
			Color: palette[i%len(palette)],
		})
	}
	return chart
}

// BuildPremiumTable formats control-city premiums as table rows
func BuildPremiumTable(premiums []models.SegmentPremium) TableData {
	table := TableData{
		Columns: []string{"City", "Segment", "City Avg", "Control Avg", "Premium", "Premium %"},
	}
	for _, p := range premiums {
		table.Rows = append(table.Rows, []string{
			p.City,
			string(p.Segment),
			formatMoney(p.HostAvg),
			formatMoney(p.ControlAvg),
			formatSignedMoney(p.Premium),
			fmt.Sprintf("%+.1f%%", p.PremiumPct),
		})
	}
	return table
}

// BuildAvailabilityTable formats the grid with one column per event date
// plus the trailing current-rate column. Cells show the rate when one
// exists, else the availability status.
func BuildAvailabilityTable(grid models.AvailabilityGrid) TableData {
	table := TableData{Columns: []string{"Hotel", "City"}}
	table.Columns = append(table.Columns, grid.Dates...)
	table.Columns = append(table.Columns, "Current Rate")

	for _, row := range grid.Rows {
		cells := []string{row.HotelName, row.City}
		for _, cell := range row.Cells {
			if cell.HasRate {
				cells = append(cells, formatMoney(cell.Rate))
			} else {
				cells = append(cells, cell.Status)
			}
		}
		if row.Current != nil {
			cells = append(cells, formatMoney(row.Current.Rate))
		} else {
			cells = append(cells, "--")
		}
		table.Rows = append(table.Rows, cells)
	}
	return table
}

func formatMoney(v float64) string {
	return fmt.Sprintf("$%d", int(math.Round(v)))
}

func formatSignedMoney(v float64) string {
	n := int(math.Round(v))
	if n < 0 {
		return fmt.Sprintf("-$%d", -n)
	}
	return fmt.Sprintf("+$%d", n)
}

func roundTo1(v float64) float64 {
	return math.Round(v*10) / 10
}
