// Package excel renders tabular data sources to XLSX workbooks.
package excel

import (
	"context"

	"github.com/go-faster/errors"
	"github.com/xuri/excelize/v2"
)

// Excel limits sheet names to 31 characters.
const maxSheetName = 31

// DataSource yields a header row and then data rows. Next returns
// ok=false once the rows are exhausted.
type DataSource interface {
	Headers() []string
	SheetName() string
	Rows(ctx context.Context) (next func() (row []any, ok bool, err error), err error)
}

type ExportOptions struct {
	IncludeHeaders bool
	AutoFilter     bool
	FreezeHeader   bool
	// MaxRows caps data rows; 0 means no limit.
	MaxRows int
}

func DefaultExportOptions() *ExportOptions {
	return &ExportOptions{
		IncludeHeaders: true,
		AutoFilter:     true,
		FreezeHeader:   true,
	}
}

type StyleOptions struct {
	HeaderBold  bool
	HeaderFill  string
	ColumnWidth float64
}

func DefaultStyleOptions() *StyleOptions {
	return &StyleOptions{
		HeaderBold:  true,
		HeaderFill:  "#E0E0E0",
		ColumnWidth: 20,
	}
}

type ExcelExporter struct {
	opts  *ExportOptions
	style *StyleOptions
}

// NewExcelExporter falls back to the defaults for nil options.
func NewExcelExporter(opts *ExportOptions, style *StyleOptions) *ExcelExporter {
	if opts == nil {
		opts = DefaultExportOptions()
	}
	if style == nil {
		style = DefaultStyleOptions()
	}
	return &ExcelExporter{opts: opts, style: style}
}

func (e *ExcelExporter) Export(ctx context.Context, ds DataSource) ([]byte, error) {
	f := excelize.NewFile()
	defer func() {
		_ = f.Close()
	}()

	sheet := sheetName(ds.SheetName())
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, errors.Wrap(err, "rename sheet")
	}

	headers := ds.Headers()
	row := 1
	if e.opts.IncludeHeaders && len(headers) > 0 {
		if err := e.writeRow(f, sheet, row, toAny(headers)); err != nil {
			return nil, err
		}
		if err := e.styleHeader(f, sheet, len(headers)); err != nil {
			return nil, err
		}
		row++
	}

	next, err := ds.Rows(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "open rows")
	}
	written := 0
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if e.opts.MaxRows > 0 && written >= e.opts.MaxRows {
			break
		}
		values, ok, err := next()
		if err != nil {
			return nil, errors.Wrap(err, "read row")
		}
		if !ok {
			break
		}
		if err := e.writeRow(f, sheet, row, values); err != nil {
			return nil, err
		}
		row++
		written++
	}

	if e.opts.IncludeHeaders && len(headers) > 0 {
		if err := e.finishHeader(f, sheet, len(headers), row-1); err != nil {
			return nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, errors.Wrap(err, "write workbook")
	}
	return buf.Bytes(), nil
}

func (e *ExcelExporter) writeRow(f *excelize.File, sheet string, row int, values []any) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return errors.Wrapf(err, "write row %d", row)
	}
	return nil
}

func (e *ExcelExporter) styleHeader(f *excelize.File, sheet string, cols int) error {
	style := &excelize.Style{Font: &excelize.Font{Bold: e.style.HeaderBold}}
	if e.style.HeaderFill != "" {
		style.Fill = excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{e.style.HeaderFill}}
	}
	id, err := f.NewStyle(style)
	if err != nil {
		return errors.Wrap(err, "header style")
	}
	last, err := excelize.ColumnNumberToName(cols)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, "A1", last+"1", id); err != nil {
		return errors.Wrap(err, "apply header style")
	}
	if e.style.ColumnWidth > 0 {
		if err := f.SetColWidth(sheet, "A", last, e.style.ColumnWidth); err != nil {
			return errors.Wrap(err, "column width")
		}
	}
	return nil
}

func (e *ExcelExporter) finishHeader(f *excelize.File, sheet string, cols, lastRow int) error {
	if e.opts.AutoFilter {
		ref, err := excelize.CoordinatesToCellName(cols, lastRow)
		if err != nil {
			return err
		}
		if err := f.AutoFilter(sheet, "A1:"+ref, nil); err != nil {
			return errors.Wrap(err, "auto filter")
		}
	}
	if e.opts.FreezeHeader {
		if err := f.SetPanes(sheet, &excelize.Panes{
			Freeze:      true,
			YSplit:      1,
			TopLeftCell: "A2",
			ActivePane:  "bottomLeft",
		}); err != nil {
			return errors.Wrap(err, "freeze header")
		}
	}
	return nil
}

// SliceDataSource serves rows held in memory.
type SliceDataSource struct {
	sheet   string
	headers []string
	rows    [][]any
}

func NewSliceDataSource(sheet string, headers []string, rows [][]any) *SliceDataSource {
	return &SliceDataSource{sheet: sheet, headers: headers, rows: rows}
}

func (s *SliceDataSource) Headers() []string {
	return s.headers
}

func (s *SliceDataSource) SheetName() string {
	return s.sheet
}

func (s *SliceDataSource) Rows(ctx context.Context) (func() ([]any, bool, error), error) {
	i := 0
	return func() ([]any, bool, error) {
		if i >= len(s.rows) {
			return nil, false, nil
		}
		row := s.rows[i]
		i++
		return row, true, nil
	}, nil
}

func sheetName(name string) string {
	if name == "" {
		return "Sheet1"
	}
	r := []rune(name)
	if len(r) > maxSheetName {
		r = r[:maxSheetName]
	}
	return string(r)
}

func toAny(values []string) []any {
	out := make([]any, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}
