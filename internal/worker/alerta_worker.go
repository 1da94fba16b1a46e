package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/CoronelSam/ezdd-proyect-sub000/internal/infra"

	"github.com/rs/zerolog/log"
)

// AlertaStockWorker mails low-stock alerts to the configured address.
type AlertaStockWorker struct {
	mailer       *infra.Mailer
	destinatario string
}

func NewAlertaStockWorker(mailer *infra.Mailer, destinatario string) *AlertaStockWorker {
	return &AlertaStockWorker{mailer: mailer, destinatario: destinatario}
}

func (w *AlertaStockWorker) Process(_ context.Context, raw json.RawMessage) error {
	var payload AlertaStockPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return fmt.Errorf("alerta_stock: payload inválido: %w", err)
	}
	if len(payload.Items) == 0 {
		return nil
	}
	if w.destinatario == "" {
		log.Debug().Msg("alerta_stock: sin destinatario configurado, se omite el envío")
		return nil
	}

	var b strings.Builder
	b.WriteString("Insumos por debajo del stock mínimo:\n\n")
	for _, item := range payload.Items {
		fmt.Fprintf(&b, "  - %s: %s %s (mínimo %s)\n",
			item.Insumo, item.CantidadActual, item.UnidadMedida, item.StockMinimo)
	}
	b.WriteString("\nRevise el inventario y genere órdenes de compra si corresponde.\n")

	subject := fmt.Sprintf("Alerta de stock bajo (%d insumos)", len(payload.Items))
	if err := w.mailer.SendAlerta(w.destinatario, subject, b.String()); err != nil {
		return fmt.Errorf("alerta_stock: envío de correo: %w", err)
	}

	log.Info().Int("insumos", len(payload.Items)).Msg("alerta_stock: correo enviado")
	return nil
}
