package output

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/mfgkit/shopsched/pkg/application/dto"
	"github.com/mfgkit/shopsched/pkg/domain/entities"
)

// GanttChart renders a schedule as an SVG timeline with one lane per
// work center, the same orientation the interactive UI uses
type GanttChart struct {
	Width        int
	Height       int
	MarginLeft   int
	MarginTop    int
	MarginRight  int
	MarginBottom int
	RowHeight    int
	StartTime    time.Time
	EndTime      time.Time
}

// NewGanttChart sizes a chart for the given plan result
func NewGanttChart(result *dto.PlanResult) *GanttChart {
	chart := &GanttChart{
		Width:        1200,
		MarginLeft:   160,
		MarginTop:    60,
		MarginRight:  60,
		MarginBottom: 50,
		RowHeight:    30,
	}

	if len(result.Rows) == 0 {
		chart.Height = 160
		return chart
	}

	startTime := result.Rows[0].Start
	endTime := result.Rows[0].End
	lanes := make(map[entities.WorkCenterID]bool)
	for _, row := range result.Rows {
		if row.Start.Before(startTime) {
			startTime = row.Start
		}
		if row.End.After(endTime) {
			endTime = row.End
		}
		lanes[row.WorkCenterID] = true
	}

	padding := time.Duration(float64(endTime.Sub(startTime)) * 0.05)
	if padding == 0 {
		padding = time.Hour
	}
	chart.StartTime = startTime.Add(-padding)
	chart.EndTime = endTime.Add(padding)
	chart.Height = len(lanes)*chart.RowHeight + chart.MarginTop + chart.MarginBottom

	return chart
}

// GenerateSVG renders the chart
func (gc *GanttChart) GenerateSVG(result *dto.PlanResult) string {
	var svg strings.Builder

	svg.WriteString(fmt.Sprintf(`<svg width="%d" height="%d" xmlns="http://www.w3.org/2000/svg">`, gc.Width, gc.Height))
	svg.WriteString(`<defs><style>`)
	svg.WriteString(`.lane-label { font-family: Arial, sans-serif; font-size: 12px; fill: #333; }`)
	svg.WriteString(`.time-label { font-family: Arial, sans-serif; font-size: 10px; fill: #666; }`)
	svg.WriteString(`.title { font-family: Arial, sans-serif; font-size: 16px; font-weight: bold; fill: #333; }`)
	svg.WriteString(`.grid-line { stroke: #e0e0e0; stroke-width: 1; }`)
	svg.WriteString(`.entry-bar { stroke: #333; stroke-width: 1; }`)
	svg.WriteString(`.entry-text { font-family: Arial, sans-serif; font-size: 9px; fill: white; }`)
	svg.WriteString(`</style></defs>`)
	svg.WriteString(fmt.Sprintf(`<rect width="%d" height="%d" fill="white"/>`, gc.Width, gc.Height))
	svg.WriteString(fmt.Sprintf(`<text x="%d" y="30" class="title">Production Schedule</text>`, gc.MarginLeft))

	if len(result.Rows) == 0 {
		svg.WriteString(fmt.Sprintf(`<text x="%d" y="%d" class="lane-label">No schedule entries</text>`,
			gc.MarginLeft, gc.MarginTop+20))
		svg.WriteString(`</svg>`)
		return svg.String()
	}

	lanes := gc.laneOrder(result.Rows)
	gc.drawTimeAxis(&svg, len(lanes))

	chartWidth := gc.Width - gc.MarginLeft - gc.MarginRight
	total := gc.EndTime.Sub(gc.StartTime)

	for laneIdx, wc := range lanes {
		y := gc.MarginTop + laneIdx*gc.RowHeight
		svg.WriteString(fmt.Sprintf(`<text x="10" y="%d" class="lane-label">%s</text>`,
			y+gc.RowHeight/2+4, wc))

		for _, row := range result.Rows {
			if row.WorkCenterID != wc {
				continue
			}
			x := gc.MarginLeft + int(float64(row.Start.Sub(gc.StartTime))/float64(total)*float64(chartWidth))
			width := int(float64(row.End.Sub(row.Start)) / float64(total) * float64(chartWidth))
			if width < 2 {
				width = 2
			}
			svg.WriteString(fmt.Sprintf(
				`<rect x="%d" y="%d" width="%d" height="%d" fill="%s" class="entry-bar"/>`,
				x, y+4, width, gc.RowHeight-8, gc.barColor(row.OrderID)))
			if width > 40 {
				svg.WriteString(fmt.Sprintf(`<text x="%d" y="%d" class="entry-text">%s/%s</text>`,
					x+3, y+gc.RowHeight/2+3, row.OrderID, row.StepID))
			}
		}
	}

	svg.WriteString(`</svg>`)
	return svg.String()
}

// laneOrder returns work centers sorted for stable lane assignment
func (gc *GanttChart) laneOrder(rows []dto.ScheduleRow) []entities.WorkCenterID {
	seen := make(map[entities.WorkCenterID]bool)
	var lanes []entities.WorkCenterID
	for _, row := range rows {
		if !seen[row.WorkCenterID] {
			seen[row.WorkCenterID] = true
			lanes = append(lanes, row.WorkCenterID)
		}
	}
	sort.Slice(lanes, func(i, j int) bool { return lanes[i] < lanes[j] })
	return lanes
}

// drawTimeAxis draws day grid lines across all lanes
func (gc *GanttChart) drawTimeAxis(svg *strings.Builder, laneCount int) {
	chartWidth := gc.Width - gc.MarginLeft - gc.MarginRight
	total := gc.EndTime.Sub(gc.StartTime)
	gridBottom := gc.MarginTop + laneCount*gc.RowHeight

	day := gc.StartTime.Truncate(24 * time.Hour)
	for !day.After(gc.EndTime) {
		if !day.Before(gc.StartTime) {
			x := gc.MarginLeft + int(float64(day.Sub(gc.StartTime))/float64(total)*float64(chartWidth))
			svg.WriteString(fmt.Sprintf(`<line x1="%d" y1="%d" x2="%d" y2="%d" class="grid-line"/>`,
				x, gc.MarginTop, x, gridBottom))
			svg.WriteString(fmt.Sprintf(`<text x="%d" y="%d" class="time-label">%s</text>`,
				x+2, gridBottom+15, day.Format("01-02")))
		}
		day = day.Add(24 * time.Hour)
	}
}

var barPalette = []string{
	"#4A90D9", "#D0021B", "#7ED321", "#9013FE", "#F5A623", "#50E3C2", "#B8E986", "#BD10E0",
}

// barColor picks a stable color per order so one order is recognizable
// across lanes
func (gc *GanttChart) barColor(orderID entities.OrderID) string {
	var sum int
	for _, r := range string(orderID) {
		sum += int(r)
	}
	return barPalette[sum%len(barPalette)]
}
