package report

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/xuri/excelize/v2"

	"github.com/coperex/case-analysis/internal/core/domain"
	"github.com/coperex/case-analysis/internal/core/ports"
	"github.com/coperex/case-analysis/internal/core/query"
)

const (
	sheetName  = "Empresas"
	filePrefix = "enterprises_report"
	fileExt    = ".xlsx"
)

var headers = []any{
	"Name", "Email", "Address", "Website", "Impact Level",
	"Founding Year", "Years of Experience", "Category", "Description",
}

var columnWidths = map[string]float64{
	"A": 30, "B": 30, "C": 40, "D": 30, "E": 14,
	"F": 14, "G": 20, "H": 20, "I": 60,
}

// XLSXGenerator writes enterprise reports as spreadsheets into a directory
// served statically under baseURL.
type XLSXGenerator struct {
	dir     string
	baseURL string
	log     zerolog.Logger
}

var _ ports.ReportGenerator = (*XLSXGenerator)(nil)

func NewXLSXGenerator(dir, baseURL string, log zerolog.Logger) *XLSXGenerator {
	return &XLSXGenerator{dir: dir, baseURL: strings.TrimRight(baseURL, "/"), log: log}
}

// Generate renders rows into the deterministic file for filter, replacing any
// previous report with the same name.
func (g *XLSXGenerator) Generate(ctx context.Context, filter query.Filter, rows []domain.Enterprise) (*ports.ReportResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := os.MkdirAll(g.dir, 0o755); err != nil {
		return nil, fmt.Errorf("create report dir: %w", err)
	}

	book, err := render(rows)
	if err != nil {
		return nil, err
	}
	defer book.Close()

	name := FileName(filter)
	if err := g.writeAtomic(book, filepath.Join(g.dir, name)); err != nil {
		return nil, err
	}

	g.log.Debug().Str("file", name).Int("rows", len(rows)).Msg("report written")
	return &ports.ReportResult{
		FileName: name,
		URL:      g.baseURL + "/" + name,
		Rows:     len(rows),
	}, nil
}

func (g *XLSXGenerator) writeAtomic(book *excelize.File, dst string) (err error) {
	tmp, err := os.Create(filepath.Join(g.dir, "."+uuid.NewString()+".tmp"))
	if err != nil {
		return fmt.Errorf("create temp report: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmp.Name())
		}
	}()

	if err = book.Write(tmp); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	if err = tmp.Sync(); err != nil {
		return fmt.Errorf("sync report: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("close report: %w", err)
	}
	if err = os.Rename(tmp.Name(), dst); err != nil {
		return fmt.Errorf("publish report: %w", err)
	}
	return nil
}

func render(rows []domain.Enterprise) (*excelize.File, error) {
	book := excelize.NewFile()
	if err := book.SetSheetName("Sheet1", sheetName); err != nil {
		book.Close()
		return nil, fmt.Errorf("name sheet: %w", err)
	}

	bold, err := book.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		book.Close()
		return nil, fmt.Errorf("header style: %w", err)
	}

	if err := book.SetSheetRow(sheetName, "A1", &headers); err != nil {
		book.Close()
		return nil, fmt.Errorf("write header: %w", err)
	}
	if err := book.SetCellStyle(sheetName, "A1", "I1", bold); err != nil {
		book.Close()
		return nil, fmt.Errorf("style header: %w", err)
	}
	for col, width := range columnWidths {
		if err := book.SetColWidth(sheetName, col, col, width); err != nil {
			book.Close()
			return nil, fmt.Errorf("column width: %w", err)
		}
	}

	for i, e := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			book.Close()
			return nil, err
		}
		row := []any{
			e.Name, e.Email, e.Address, e.Website, string(e.ImpactLevel),
			e.FoundingYear, e.YearsOfExperience, e.Category, e.Description,
		}
		if err := book.SetSheetRow(sheetName, cell, &row); err != nil {
			book.Close()
			return nil, fmt.Errorf("write row %d: %w", i+2, err)
		}
	}
	return book, nil
}

// FileName derives the report name from the filter so identical requests
// always target the same file.
func FileName(f query.Filter) string {
	var b strings.Builder
	b.WriteString(filePrefix)

	sort := string(f.Sort)
	if sort == "" {
		sort = "default"
	}
	b.WriteString("_" + sort)

	if f.Category != "" {
		b.WriteString("_cat-" + categoryKey(f.Category))
	}
	if f.ImpactLevel != "" {
		b.WriteString("_impact-" + slug(string(f.ImpactLevel)))
	}
	if f.MinYearsOfExperience != nil {
		b.WriteString("_exp-" + strconv.Itoa(*f.MinYearsOfExperience))
	}
	b.WriteString(fileExt)
	return b.String()
}

// categoryKey keeps the name readable while staying unique per category:
// matching is exact, so the slug is suffixed with a digest of the raw value.
func categoryKey(category string) string {
	sum := sha256.Sum256([]byte(category))
	digest := hex.EncodeToString(sum[:4])
	if s := slug(category); s != "" {
		return s + "-" + digest
	}
	return digest
}

func slug(s string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(strings.TrimSpace(s)) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			dash = false
		case !dash && b.Len() > 0:
			b.WriteByte('-')
			dash = true
		}
	}
	return strings.TrimRight(b.String(), "-")
}
