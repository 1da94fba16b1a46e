// Package notify defines the notification sink the order engine publishes to.
// The core only depends on the Publisher interface; delivery, rooms and
// subscriptions belong to whatever transport sits behind it.
package notify

import (
	"context"

	"github.com/CoronelSam/ezdd-proyect-sub000/internal/dto"
)

// Topics published by the order engine.
const (
	TopicPedidoCreado    = "pedido:creado"
	TopicPedidoEstado    = "pedido:estado_cambiado"
	TopicPedidoCancelado = "pedido:cancelado"
)

// Publisher is the notification sink. Implementations must be safe for
// concurrent use. Publish errors are the caller's to log — order flow never
// fails because a notification could not be delivered.
type Publisher interface {
	Publish(ctx context.Context, topic string, payload interface{}) error
}

// PedidoCreadoPayload acompaña TopicPedidoCreado y TopicPedidoCancelado.
type PedidoCreadoPayload struct {
	Pedido dto.PedidoResponse `json:"pedido"`
}

// EstadoCambiadoPayload acompaña TopicPedidoEstado con el par anterior→nuevo.
type EstadoCambiadoPayload struct {
	PedidoID       string             `json:"pedido_id"`
	EstadoAnterior string             `json:"estado_anterior"`
	EstadoNuevo    string             `json:"estado_nuevo"`
	Pedido         dto.PedidoResponse `json:"pedido"`
}
