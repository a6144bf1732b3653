package types

type ServiceMode string

// Report Service - Accepts timesheet text and returns the derived mileage report
// Archive Service - Stores generated reports from the event stream and serves report history
const (
	ReportService  ServiceMode = "report-service"
	ArchiveService ServiceMode = "archive-service"
)

// ExportFormat is the rendering requested for a report or raw entries.
type ExportFormat string

const (
	FormatJSON ExportFormat = "json"
	FormatXLSX ExportFormat = "xlsx"
	FormatCSV  ExportFormat = "csv"
	FormatPDF  ExportFormat = "pdf"
)

func (f ExportFormat) String() string {
	return string(f)
}

// ChartSource tells where the mileage chart is loaded from.
type ChartSource string

const (
	ChartFromFile     ChartSource = "file"
	ChartFromPostgres ChartSource = "postgres"
)

type UserRole string

func (r UserRole) String() string {
	return string(r)
}

const (
	RoleAdmin UserRole = "ADMIN"
)
