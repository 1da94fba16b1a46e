package repository

import (
	"context"
	"errors"

	"github.com/CoronelSam/ezdd-proyect-sub000/internal/dto"
	"github.com/CoronelSam/ezdd-proyect-sub000/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// InventarioRepository defines data access for the stock ledger:
// the per-ingredient running total plus the append-only movement log.
type InventarioRepository interface {
	// ObtenerRegistroParaActualizar reads (or lazily creates at zero) the
	// InventarioInsumo row for an ingredient, holding a FOR UPDATE row lock
	// for the remainder of the transaction. Concurrent movements against the
	// same ingredient serialize on this lock.
	ObtenerRegistroParaActualizar(tx *gorm.DB, insumoID uuid.UUID) (*model.InventarioInsumo, error)
	ActualizarCantidadTx(tx *gorm.DB, registroID uuid.UUID, cantidad decimal.Decimal) error
	CrearMovimientoTx(tx *gorm.DB, m *model.MovimientoInventario) error
	EliminarMovimientoTx(tx *gorm.DB, id uuid.UUID) error

	ObtenerMovimiento(ctx context.Context, id uuid.UUID) (*model.MovimientoInventario, error)
	ObtenerMovimientoHidratado(ctx context.Context, id uuid.UUID) (*model.MovimientoInventario, error)
	ListarMovimientos(ctx context.Context, filter dto.MovimientoFilter) ([]model.MovimientoInventario, int64, error)
	ObtenerRegistro(ctx context.Context, insumoID uuid.UUID) (*model.InventarioInsumo, error)
	ListarRegistros(ctx context.Context) ([]model.InventarioInsumo, error)

	// DB exposes the underlying *gorm.DB so services can open transactions.
	DB() *gorm.DB
}

type inventarioRepo struct{ db *gorm.DB }

func NewInventarioRepository(db *gorm.DB) InventarioRepository { return &inventarioRepo{db: db} }

func (r *inventarioRepo) ObtenerRegistroParaActualizar(tx *gorm.DB, insumoID uuid.UUID) (*model.InventarioInsumo, error) {
	var reg model.InventarioInsumo
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("insumo_id = ?", insumoID).
		First(&reg).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		reg = model.InventarioInsumo{InsumoID: insumoID, CantidadActual: decimal.Zero}
		if err := tx.Create(&reg).Error; err != nil {
			return nil, err
		}
		// Re-read under lock: another tx may have created it first.
		err = tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("insumo_id = ?", insumoID).
			First(&reg).Error
	}
	if err != nil {
		return nil, err
	}
	return &reg, nil
}

func (r *inventarioRepo) ActualizarCantidadTx(tx *gorm.DB, registroID uuid.UUID, cantidad decimal.Decimal) error {
	return tx.Model(&model.InventarioInsumo{}).Where("id = ?", registroID).
		Update("cantidad_actual", cantidad).Error
}

func (r *inventarioRepo) CrearMovimientoTx(tx *gorm.DB, m *model.MovimientoInventario) error {
	return tx.Create(m).Error
}

func (r *inventarioRepo) EliminarMovimientoTx(tx *gorm.DB, id uuid.UUID) error {
	return tx.Delete(&model.MovimientoInventario{}, "id = ?", id).Error
}

func (r *inventarioRepo) ObtenerMovimiento(ctx context.Context, id uuid.UUID) (*model.MovimientoInventario, error) {
	var m model.MovimientoInventario
	if err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *inventarioRepo) ObtenerMovimientoHidratado(ctx context.Context, id uuid.UUID) (*model.MovimientoInventario, error) {
	var m model.MovimientoInventario
	err := r.db.WithContext(ctx).
		Preload("Insumo").Preload("Pedido").Preload("Usuario").
		First(&m, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *inventarioRepo) ListarMovimientos(ctx context.Context, filter dto.MovimientoFilter) ([]model.MovimientoInventario, int64, error) {
	q := r.db.WithContext(ctx).Model(&model.MovimientoInventario{})
	if filter.InsumoID != "" {
		q = q.Where("insumo_id = ?", filter.InsumoID)
	}
	if filter.Tipo != "" {
		q = q.Where("tipo = ?", filter.Tipo)
	}
	if filter.PedidoID != "" {
		q = q.Where("pedido_id = ?", filter.PedidoID)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	var movimientos []model.MovimientoInventario
	err := q.Preload("Insumo").Preload("Usuario").
		Order("created_at DESC").Offset(offset).Limit(filter.Limit).
		Find(&movimientos).Error
	return movimientos, total, err
}

func (r *inventarioRepo) ObtenerRegistro(ctx context.Context, insumoID uuid.UUID) (*model.InventarioInsumo, error) {
	var reg model.InventarioInsumo
	err := r.db.WithContext(ctx).Preload("Insumo").
		Where("insumo_id = ?", insumoID).First(&reg).Error
	if err != nil {
		return nil, err
	}
	return &reg, nil
}

func (r *inventarioRepo) ListarRegistros(ctx context.Context) ([]model.InventarioInsumo, error) {
	var regs []model.InventarioInsumo
	err := r.db.WithContext(ctx).Preload("Insumo").Find(&regs).Error
	return regs, err
}

func (r *inventarioRepo) DB() *gorm.DB { return r.db }
