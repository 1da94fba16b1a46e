package service

import (
	"context"
	"fmt"

	"github.com/CoronelSam/ezdd-proyect-sub000/internal/apierror"
	"github.com/CoronelSam/ezdd-proyect-sub000/internal/dto"
	"github.com/CoronelSam/ezdd-proyect-sub000/internal/model"
	"github.com/CoronelSam/ezdd-proyect-sub000/internal/repository"

	"github.com/google/uuid"
)

type InsumoService interface {
	Crear(ctx context.Context, req dto.CrearInsumoRequest) (*dto.InsumoResponse, error)
	Obtener(ctx context.Context, id uuid.UUID) (*dto.InsumoResponse, error)
	Listar(ctx context.Context, incluirInactivos bool) ([]dto.InsumoResponse, error)
	Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarInsumoRequest) (*dto.InsumoResponse, error)
	Desactivar(ctx context.Context, id uuid.UUID) error
	Reactivar(ctx context.Context, id uuid.UUID) (*dto.InsumoResponse, error)
}

type insumoService struct {
	repo repository.InsumoRepository
}

func NewInsumoService(repo repository.InsumoRepository) InsumoService {
	return &insumoService{repo: repo}
}

func (s *insumoService) Crear(ctx context.Context, req dto.CrearInsumoRequest) (*dto.InsumoResponse, error) {
	if existing, err := s.repo.ObtenerPorNombre(ctx, req.Nombre); err == nil && existing != nil {
		return nil, apierror.Conflict(fmt.Sprintf("ya existe un insumo con el nombre %q", req.Nombre))
	}
	if req.CostoCompra.IsNegative() || req.StockMinimo.IsNegative() {
		return nil, apierror.Validation("costo_compra y stock_minimo no pueden ser negativos")
	}

	ins := model.Insumo{
		Nombre:       req.Nombre,
		UnidadMedida: req.UnidadMedida,
		CostoCompra:  req.CostoCompra,
		StockMinimo:  req.StockMinimo,
		Activo:       true,
	}
	if err := s.repo.Crear(ctx, &ins); err != nil {
		return nil, err
	}
	return insumoToResponse(&ins), nil
}

func (s *insumoService) Obtener(ctx context.Context, id uuid.UUID) (*dto.InsumoResponse, error) {
	ins, err := s.repo.ObtenerPorID(ctx, id)
	if err != nil {
		return nil, apierror.NotFound("insumo no encontrado")
	}
	return insumoToResponse(ins), nil
}

func (s *insumoService) Listar(ctx context.Context, incluirInactivos bool) ([]dto.InsumoResponse, error) {
	list, err := s.repo.Listar(ctx, incluirInactivos)
	if err != nil {
		return nil, err
	}
	out := make([]dto.InsumoResponse, 0, len(list))
	for i := range list {
		out = append(out, *insumoToResponse(&list[i]))
	}
	return out, nil
}

func (s *insumoService) Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarInsumoRequest) (*dto.InsumoResponse, error) {
	ins, err := s.repo.ObtenerPorID(ctx, id)
	if err != nil {
		return nil, apierror.NotFound("insumo no encontrado")
	}

	if req.Nombre != nil && *req.Nombre != ins.Nombre {
		if existing, err := s.repo.ObtenerPorNombre(ctx, *req.Nombre); err == nil && existing != nil {
			return nil, apierror.Conflict(fmt.Sprintf("ya existe un insumo con el nombre %q", *req.Nombre))
		}
		ins.Nombre = *req.Nombre
	}
	if req.UnidadMedida != nil {
		ins.UnidadMedida = *req.UnidadMedida
	}
	if req.CostoCompra != nil {
		if req.CostoCompra.IsNegative() {
			return nil, apierror.Validation("costo_compra no puede ser negativo")
		}
		ins.CostoCompra = *req.CostoCompra
	}
	if req.StockMinimo != nil {
		if req.StockMinimo.IsNegative() {
			return nil, apierror.Validation("stock_minimo no puede ser negativo")
		}
		ins.StockMinimo = *req.StockMinimo
	}

	if err := s.repo.Actualizar(ctx, ins); err != nil {
		return nil, err
	}
	return insumoToResponse(ins), nil
}

// Desactivar no exige receta vacía: las recetas que referencian un insumo
// inactivo siguen existiendo, pero el consumo de pedidos lo omite.
func (s *insumoService) Desactivar(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.ObtenerPorID(ctx, id); err != nil {
		return apierror.NotFound("insumo no encontrado")
	}
	return s.repo.Desactivar(ctx, id)
}

func (s *insumoService) Reactivar(ctx context.Context, id uuid.UUID) (*dto.InsumoResponse, error) {
	ins, err := s.repo.ObtenerPorID(ctx, id)
	if err != nil {
		return nil, apierror.NotFound("insumo no encontrado")
	}
	if err := s.repo.Reactivar(ctx, id); err != nil {
		return nil, err
	}
	ins.Activo = true
	return insumoToResponse(ins), nil
}

func insumoToResponse(i *model.Insumo) *dto.InsumoResponse {
	return &dto.InsumoResponse{
		ID:           i.ID.String(),
		Nombre:       i.Nombre,
		UnidadMedida: i.UnidadMedida,
		CostoCompra:  i.CostoCompra,
		StockMinimo:  i.StockMinimo,
		Activo:       i.Activo,
	}
}
