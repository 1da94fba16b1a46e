package infra

// pdf.go — Internal PDF ticket generation using go-pdf/fpdf.
// Generates A7-size thermal receipt-style tickets for a pedido:
//   - Restaurant header
//   - Short order id, date, state
//   - Line table (product / presentation, quantity, subtotal)
//   - Bold total and optional notes
//
// The output file is saved to storagePath/pedido_{id8}.pdf.

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/CoronelSam/ezdd-proyect-sub000/internal/model"

	"github.com/go-pdf/fpdf"
)

// GenerateTicketPDF renders a receipt-style ticket for a hydrated Pedido.
// storagePath is the directory where the PDF will be written (created if needed).
// Returns the absolute path to the generated file.
func GenerateTicketPDF(pedido *model.Pedido, storagePath string) (string, error) {
	if err := os.MkdirAll(storagePath, 0755); err != nil {
		return "", fmt.Errorf("pdf: create storage dir: %w", err)
	}

	shortID := pedido.ID.String()[:8]
	fileName := fmt.Sprintf("pedido_%s.pdf", shortID)
	filePath := filepath.Join(storagePath, fileName)

	// A7 ≈ 74mm × 105mm — close to thermal receipt paper
	pdf := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "mm",
		Size:           fpdf.SizeType{Wd: 74, Ht: 105},
	})
	pdf.SetMargins(4, 4, 4)
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 8 // total margins = 8mm

	// ── Header ───────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 13)
	pdf.CellFormat(contentW, 7, "Restaurante", "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 8)
	pdf.CellFormat(contentW, 5, "Comanda de Pedido", "", 1, "C", false, 0, "")
	pdf.Ln(2)

	// ── Pedido info ───────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 8)
	pdf.CellFormat(contentW, 5, fmt.Sprintf("Pedido %s", shortID), "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 7)
	pdf.CellFormat(contentW, 4, pedido.FechaPedido.Format("02/01/2006  15:04"), "", 1, "L", false, 0, "")
	pdf.CellFormat(contentW, 4, fmt.Sprintf("Estado: %s", pedido.Estado), "", 1, "L", false, 0, "")
	pdf.Ln(2)

	// ── Line table ────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 7)
	pdf.CellFormat(contentW*0.55, 4, "Producto", "B", 0, "L", false, 0, "")
	pdf.CellFormat(contentW*0.15, 4, "Cant", "B", 0, "R", false, 0, "")
	pdf.CellFormat(contentW*0.30, 4, "Subtotal", "B", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 7)
	for _, d := range pedido.Detalles {
		nombre := ""
		if d.Producto != nil {
			nombre = d.Producto.Nombre
		}
		if d.Presentacion != nil {
			nombre = fmt.Sprintf("%s (%s)", nombre, d.Presentacion.Nombre)
		}
		pdf.CellFormat(contentW*0.55, 4, nombre, "", 0, "L", false, 0, "")
		pdf.CellFormat(contentW*0.15, 4, fmt.Sprintf("%d", d.Cantidad), "", 0, "R", false, 0, "")
		pdf.CellFormat(contentW*0.30, 4, d.Subtotal.StringFixed(2), "", 1, "R", false, 0, "")
		if d.Instrucciones != nil && *d.Instrucciones != "" {
			pdf.SetFont("Helvetica", "I", 6)
			pdf.CellFormat(contentW, 3, "  * "+*d.Instrucciones, "", 1, "L", false, 0, "")
			pdf.SetFont("Helvetica", "", 7)
		}
	}
	pdf.Ln(1)

	// ── Total ─────────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(contentW*0.55, 5, "TOTAL", "T", 0, "L", false, 0, "")
	pdf.CellFormat(contentW*0.45, 5, pedido.Total.StringFixed(2), "T", 1, "R", false, 0, "")

	if pedido.Notas != nil && *pedido.Notas != "" {
		pdf.Ln(2)
		pdf.SetFont("Helvetica", "", 6)
		pdf.MultiCell(contentW, 3, "Notas: "+*pedido.Notas, "", "L", false)
	}

	if err := pdf.OutputFileAndClose(filePath); err != nil {
		return "", fmt.Errorf("pdf: write %s: %w", filePath, err)
	}
	return filePath, nil
}
