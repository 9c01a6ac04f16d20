package sheets

import (
	"context"
	"fmt"
	"log/slog"
	"math"

	"github.com/Veraticus/paddy-ledger/internal/layout"
	"github.com/Veraticus/paddy-ledger/internal/render"
	"github.com/xuri/excelize/v2"
)

// a4PaperSize is the OOXML paper size code for A4.
const a4PaperSize = 9

// Block is where one quadrant's ledger starts on the sheet. Each ledger
// takes two columns (label, value); a spacer column and a spacer row
// separate quadrants.
type Block struct {
	Quadrant layout.Quadrant
	Col      int
	Row      int
}

// Writer writes composed pages to xlsx files.
type Writer struct {
	logger *slog.Logger
	config Config
}

// NewWriter creates a new xlsx writer.
func NewWriter(config Config, logger *slog.Logger) (*Writer, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Writer{config: config, logger: logger}, nil
}

// Blocks returns the top-left cell of each filled slot.
func Blocks(page layout.Page) []Block {
	topRows := 0
	for _, s := range page.Filled() {
		if s.Quadrant.Row() == 0 && len(s.Document.Lines) > topRows {
			topRows = len(s.Document.Lines)
		}
	}

	var out []Block
	for _, s := range page.Filled() {
		b := Block{Quadrant: s.Quadrant, Col: 1, Row: 1}
		if !page.Full {
			b.Col += s.Quadrant.Column() * 3
			if s.Quadrant.Row() == 1 {
				b.Row += topRows + 1
			}
		}
		out = append(out, b)
	}
	return out
}

// FontSize is the point size used for a slot: the base size times the
// slot's effective scale, rounded to a half point.
func (w *Writer) FontSize(scale layout.Scale) float64 {
	size := w.config.BaseFontSize * scale.Effective()
	if size <= 0 {
		size = w.config.BaseFontSize
	}
	return math.Round(size*2) / 2
}

// Write saves page as an xlsx workbook at path.
func (w *Writer) Write(ctx context.Context, page layout.Page, path string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			w.logger.Warn("failed to close workbook", "error", err)
		}
	}()

	sheet := w.config.SheetName
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}
	if err := w.setupPage(f, sheet); err != nil {
		return err
	}

	filled := page.Filled()
	for i, block := range Blocks(page) {
		if err := w.writeSlot(f, sheet, block, filled[i]); err != nil {
			return fmt.Errorf("failed to write %s: %w", block.Quadrant, err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}

	w.logger.Info("exported page",
		"path", path,
		"slots", len(filled),
		"position", page.Position)
	return nil
}

func (w *Writer) setupPage(f *excelize.File, sheet string) error {
	size := a4PaperSize
	orientation := "portrait"
	if err := f.SetPageLayout(sheet, &excelize.PageLayoutOptions{
		Size:        &size,
		Orientation: &orientation,
	}); err != nil {
		return fmt.Errorf("failed to set page layout: %w", err)
	}

	zero := 0.0
	if err := f.SetPageMargins(sheet, &excelize.PageLayoutMarginsOptions{
		Top: &zero, Bottom: &zero, Left: &zero, Right: &zero, Header: &zero, Footer: &zero,
	}); err != nil {
		return fmt.Errorf("failed to set page margins: %w", err)
	}

	for _, cols := range [][2]string{{"A", "D"}, {"B", "E"}} {
		width := w.config.LabelWidth
		if cols[0] == "B" {
			width = w.config.ValueWidth
		}
		for _, c := range cols {
			if err := f.SetColWidth(sheet, c, c, width); err != nil {
				return fmt.Errorf("failed to set column width: %w", err)
			}
		}
	}
	return f.SetColWidth(sheet, "C", "C", 3)
}

func (w *Writer) writeSlot(f *excelize.File, sheet string, block Block, slot layout.Slot) error {
	styles, err := w.newStyles(f, w.FontSize(slot.Scale))
	if err != nil {
		return err
	}

	for i, line := range slot.Document.Lines {
		row := block.Row + i
		left, err := excelize.CoordinatesToCellName(block.Col, row)
		if err != nil {
			return err
		}
		right, err := excelize.CoordinatesToCellName(block.Col+1, row)
		if err != nil {
			return err
		}

		pair := styles.plain
		switch line.Role {
		case render.RoleSeparator:
			pair = styles.rule
		case render.RoleHeader, render.RoleFinal:
			pair = styles.bold
		}

		if line.Role != render.RoleSeparator {
			if err := f.SetCellValue(sheet, left, line.Left); err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, right, line.Right); err != nil {
				return err
			}
		}
		if err := f.SetCellStyle(sheet, left, left, pair.left); err != nil {
			return err
		}
		if err := f.SetCellStyle(sheet, right, right, pair.right); err != nil {
			return err
		}
	}
	return nil
}

// stylePair holds the style ids for a label cell and its value cell.
type stylePair struct {
	left  int
	right int
}

type slotStyles struct {
	plain stylePair
	bold  stylePair
	rule  stylePair
}

func (w *Writer) newStyles(f *excelize.File, size float64) (slotStyles, error) {
	rule := []excelize.Border{{Type: "bottom", Color: "000000", Style: 1}}

	pair := func(bold bool, border []excelize.Border) (stylePair, error) {
		var p stylePair
		for _, align := range []string{"left", "right"} {
			id, err := f.NewStyle(&excelize.Style{
				Font:      &excelize.Font{Family: w.config.FontFamily, Size: size, Bold: bold},
				Border:    border,
				Alignment: &excelize.Alignment{Horizontal: align},
			})
			if err != nil {
				return p, fmt.Errorf("failed to create style: %w", err)
			}
			if align == "left" {
				p.left = id
			} else {
				p.right = id
			}
		}
		return p, nil
	}

	var s slotStyles
	var err error
	if s.plain, err = pair(false, nil); err != nil {
		return s, err
	}
	if s.bold, err = pair(true, nil); err != nil {
		return s, err
	}
	if s.rule, err = pair(false, rule); err != nil {
		return s, err
	}
	return s, nil
}
