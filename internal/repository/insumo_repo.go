package repository

import (
	"context"

	"github.com/CoronelSam/ezdd-proyect-sub000/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type InsumoRepository interface {
	Crear(ctx context.Context, i *model.Insumo) error
	ObtenerPorID(ctx context.Context, id uuid.UUID) (*model.Insumo, error)
	ObtenerPorNombre(ctx context.Context, nombre string) (*model.Insumo, error)
	Listar(ctx context.Context, incluirInactivos bool) ([]model.Insumo, error)
	Actualizar(ctx context.Context, i *model.Insumo) error
	Desactivar(ctx context.Context, id uuid.UUID) error
	Reactivar(ctx context.Context, id uuid.UUID) error
	ContarRecetas(ctx context.Context, id uuid.UUID) (int64, error)
}

type insumoRepo struct{ db *gorm.DB }

func NewInsumoRepository(db *gorm.DB) InsumoRepository { return &insumoRepo{db: db} }

func (r *insumoRepo) Crear(ctx context.Context, i *model.Insumo) error {
	return r.db.WithContext(ctx).Create(i).Error
}

func (r *insumoRepo) ObtenerPorID(ctx context.Context, id uuid.UUID) (*model.Insumo, error) {
	var i model.Insumo
	if err := r.db.WithContext(ctx).First(&i, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &i, nil
}

func (r *insumoRepo) ObtenerPorNombre(ctx context.Context, nombre string) (*model.Insumo, error) {
	var i model.Insumo
	if err := r.db.WithContext(ctx).Where("lower(nombre) = lower(?)", nombre).First(&i).Error; err != nil {
		return nil, err
	}
	return &i, nil
}

func (r *insumoRepo) Listar(ctx context.Context, incluirInactivos bool) ([]model.Insumo, error) {
	var list []model.Insumo
	q := r.db.WithContext(ctx).Order("nombre asc")
	if !incluirInactivos {
		q = q.Where("activo = true")
	}
	err := q.Find(&list).Error
	return list, err
}

func (r *insumoRepo) Actualizar(ctx context.Context, i *model.Insumo) error {
	return r.db.WithContext(ctx).Save(i).Error
}

func (r *insumoRepo) Desactivar(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.Insumo{}).Where("id = ?", id).Update("activo", false).Error
}

func (r *insumoRepo) Reactivar(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.Insumo{}).Where("id = ?", id).Update("activo", true).Error
}

func (r *insumoRepo) ContarRecetas(ctx context.Context, id uuid.UUID) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&model.Receta{}).
		Where("insumo_id = ?", id).Count(&total).Error
	return total, err
}
