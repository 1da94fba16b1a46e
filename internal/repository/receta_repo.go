package repository

import (
	"context"

	"github.com/CoronelSam/ezdd-proyect-sub000/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type RecetaRepository interface {
	Crear(ctx context.Context, rec *model.Receta) error
	ObtenerPorID(ctx context.Context, id uuid.UUID) (*model.Receta, error)
	ObtenerVinculo(ctx context.Context, presentacionID, insumoID uuid.UUID) (*model.Receta, error)
	ListarPorPresentacion(ctx context.Context, presentacionID uuid.UUID) ([]model.Receta, error)
	Actualizar(ctx context.Context, rec *model.Receta) error
	Eliminar(ctx context.Context, id uuid.UUID) error
}

type recetaRepo struct{ db *gorm.DB }

func NewRecetaRepository(db *gorm.DB) RecetaRepository { return &recetaRepo{db: db} }

func (r *recetaRepo) Crear(ctx context.Context, rec *model.Receta) error {
	return r.db.WithContext(ctx).Create(rec).Error
}

func (r *recetaRepo) ObtenerPorID(ctx context.Context, id uuid.UUID) (*model.Receta, error) {
	var rec model.Receta
	err := r.db.WithContext(ctx).Preload("Insumo").First(&rec, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func (r *recetaRepo) ObtenerVinculo(ctx context.Context, presentacionID, insumoID uuid.UUID) (*model.Receta, error) {
	var rec model.Receta
	err := r.db.WithContext(ctx).
		Where("presentacion_id = ? AND insumo_id = ?", presentacionID, insumoID).
		First(&rec).Error
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func (r *recetaRepo) ListarPorPresentacion(ctx context.Context, presentacionID uuid.UUID) ([]model.Receta, error) {
	var list []model.Receta
	err := r.db.WithContext(ctx).Preload("Insumo").
		Where("presentacion_id = ?", presentacionID).Find(&list).Error
	return list, err
}

func (r *recetaRepo) Actualizar(ctx context.Context, rec *model.Receta) error {
	return r.db.WithContext(ctx).Save(rec).Error
}

func (r *recetaRepo) Eliminar(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Receta{}, "id = ?", id).Error
}
