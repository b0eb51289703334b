package layout

// Laboratory report table geometry. The result tables sit between y=282 and
// y=758 and need a forced column boundary at x=377 where the unit and the
// reference interval columns touch.
const (
	LabHeaderFirst = "Prestació"
	LabColumnSplit = 377.0
	LabTableTop    = 282.0
	LabTableBottom = 758.0
)

// LabReportOptions returns the table options for the laboratory reports.
func LabReportOptions() TableOptions {
	return TableOptions{
		HeaderFirst: LabHeaderFirst,
		ExtraEdges:  []float64{LabColumnSplit},
		Top:         LabTableTop,
		Bottom:      LabTableBottom,
		EdgeSlack:   10,
	}
}
