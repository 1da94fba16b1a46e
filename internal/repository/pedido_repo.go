package repository

import (
	"context"
	"time"

	"github.com/CoronelSam/ezdd-proyect-sub000/internal/dto"
	"github.com/CoronelSam/ezdd-proyect-sub000/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PedidoRepository interface {
	CrearTx(tx *gorm.DB, p *model.Pedido) error
	ObtenerPorID(ctx context.Context, id uuid.UUID) (*model.Pedido, error)
	// ObtenerHidratado carga cliente, usuario y detalles con sus productos.
	ObtenerHidratado(ctx context.Context, id uuid.UUID) (*model.Pedido, error)
	Listar(ctx context.Context, filter dto.PedidoFilter) ([]model.Pedido, int64, error)
	ActualizarEstado(ctx context.Context, id uuid.UUID, estado string) error
	DB() *gorm.DB
}

type pedidoRepo struct{ db *gorm.DB }

func NewPedidoRepository(db *gorm.DB) PedidoRepository { return &pedidoRepo{db: db} }

func (r *pedidoRepo) CrearTx(tx *gorm.DB, p *model.Pedido) error {
	return tx.Create(p).Error
}

func (r *pedidoRepo) ObtenerPorID(ctx context.Context, id uuid.UUID) (*model.Pedido, error) {
	var p model.Pedido
	if err := r.db.WithContext(ctx).First(&p, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *pedidoRepo) ObtenerHidratado(ctx context.Context, id uuid.UUID) (*model.Pedido, error) {
	var p model.Pedido
	err := r.db.WithContext(ctx).
		Preload("Cliente").
		Preload("Usuario").
		Preload("Detalles").
		Preload("Detalles.Producto").
		Preload("Detalles.Presentacion").
		First(&p, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *pedidoRepo) Listar(ctx context.Context, filter dto.PedidoFilter) ([]model.Pedido, int64, error) {
	q := r.db.WithContext(ctx).Model(&model.Pedido{})

	if filter.Estado != "" && filter.Estado != "all" {
		q = q.Where("estado = ?", filter.Estado)
	}
	if filter.ClienteID != "" {
		q = q.Where("cliente_id = ?", filter.ClienteID)
	}
	if filter.Fecha != "" {
		if fecha, err := time.Parse("2006-01-02", filter.Fecha); err == nil {
			q = q.Where("fecha_pedido >= ? AND fecha_pedido < ?", fecha, fecha.AddDate(0, 0, 1))
		}
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	var pedidos []model.Pedido
	err := q.Preload("Cliente").Preload("Usuario").
		Preload("Detalles").Preload("Detalles.Producto").Preload("Detalles.Presentacion").
		Order("fecha_pedido DESC").Offset(offset).Limit(filter.Limit).
		Find(&pedidos).Error
	return pedidos, total, err
}

func (r *pedidoRepo) ActualizarEstado(ctx context.Context, id uuid.UUID, estado string) error {
	return r.db.WithContext(ctx).Model(&model.Pedido{}).Where("id = ?", id).
		Update("estado", estado).Error
}

func (r *pedidoRepo) DB() *gorm.DB { return r.db }
