package repository

import (
	"context"

	"github.com/CoronelSam/ezdd-proyect-sub000/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PresentacionRepository defines data access for price variants.
type PresentacionRepository interface {
	Crear(ctx context.Context, p *model.Presentacion) error
	CrearTx(tx *gorm.DB, p *model.Presentacion) error
	ObtenerPorID(ctx context.Context, id uuid.UUID) (*model.Presentacion, error)
	ListarPorProducto(ctx context.Context, productoID uuid.UUID, incluirInactivas bool) ([]model.Presentacion, error)
	Actualizar(ctx context.Context, p *model.Presentacion) error
	ActualizarTx(tx *gorm.DB, p *model.Presentacion) error
	Desactivar(ctx context.Context, id uuid.UUID) error
	Reactivar(ctx context.Context, id uuid.UUID) error
	EliminarPermanente(ctx context.Context, id uuid.UUID) error
	// LimpiarDefaultTx clears es_default on every sibling variant of the
	// product except excepto — used when promoting a new default inside a tx.
	LimpiarDefaultTx(tx *gorm.DB, productoID uuid.UUID, excepto uuid.UUID) error
	ContarRecetas(ctx context.Context, id uuid.UUID) (int64, error)
	ContarLineasPedido(ctx context.Context, id uuid.UUID) (int64, error)
	DB() *gorm.DB
}

type presentacionRepo struct{ db *gorm.DB }

func NewPresentacionRepository(db *gorm.DB) PresentacionRepository {
	return &presentacionRepo{db: db}
}

func (r *presentacionRepo) Crear(ctx context.Context, p *model.Presentacion) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *presentacionRepo) CrearTx(tx *gorm.DB, p *model.Presentacion) error {
	return tx.Create(p).Error
}

func (r *presentacionRepo) ObtenerPorID(ctx context.Context, id uuid.UUID) (*model.Presentacion, error) {
	var p model.Presentacion
	err := r.db.WithContext(ctx).Preload("Producto").First(&p, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *presentacionRepo) ListarPorProducto(ctx context.Context, productoID uuid.UUID, incluirInactivas bool) ([]model.Presentacion, error) {
	var list []model.Presentacion
	q := r.db.WithContext(ctx).Where("producto_id = ?", productoID).Order("nombre asc")
	if !incluirInactivas {
		q = q.Where("activo = true")
	}
	err := q.Find(&list).Error
	return list, err
}

func (r *presentacionRepo) Actualizar(ctx context.Context, p *model.Presentacion) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *presentacionRepo) ActualizarTx(tx *gorm.DB, p *model.Presentacion) error {
	return tx.Save(p).Error
}

func (r *presentacionRepo) Desactivar(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.Presentacion{}).Where("id = ?", id).Update("activo", false).Error
}

func (r *presentacionRepo) Reactivar(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.Presentacion{}).Where("id = ?", id).Update("activo", true).Error
}

func (r *presentacionRepo) EliminarPermanente(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Presentacion{}, "id = ?", id).Error
}

func (r *presentacionRepo) LimpiarDefaultTx(tx *gorm.DB, productoID uuid.UUID, excepto uuid.UUID) error {
	return tx.Model(&model.Presentacion{}).
		Where("producto_id = ? AND id <> ?", productoID, excepto).
		Update("es_default", false).Error
}

func (r *presentacionRepo) ContarRecetas(ctx context.Context, id uuid.UUID) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&model.Receta{}).
		Where("presentacion_id = ?", id).Count(&total).Error
	return total, err
}

func (r *presentacionRepo) ContarLineasPedido(ctx context.Context, id uuid.UUID) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&model.DetallePedido{}).
		Where("presentacion_id = ?", id).Count(&total).Error
	return total, err
}

func (r *presentacionRepo) DB() *gorm.DB { return r.db }
