package export

// Dataset defines tabular export content. Rows are positional and must match
// the header order.
type Dataset struct {
	Headers []string
	Rows    [][]string
}

// Format identifies a supported export encoding.
type Format string

const (
	FormatCSV Format = "csv"
	FormatPDF Format = "pdf"
)

// Valid reports whether the format is supported.
func (f Format) Valid() bool {
	return f == FormatCSV || f == FormatPDF
}
