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

type CategoriaService interface {
	Crear(ctx context.Context, req dto.CrearCategoriaRequest) (*dto.CategoriaResponse, error)
	Listar(ctx context.Context, incluirInactivas bool) ([]dto.CategoriaResponse, error)
	Obtener(ctx context.Context, id uuid.UUID) (*dto.CategoriaResponse, error)
	Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarCategoriaRequest) (*dto.CategoriaResponse, error)
	Desactivar(ctx context.Context, id uuid.UUID) (*dto.DesactivarCategoriaResponse, error)
	Reactivar(ctx context.Context, id uuid.UUID) (*dto.CategoriaResponse, error)
	EliminarPermanente(ctx context.Context, id uuid.UUID) error
}

type categoriaService struct {
	repo repository.CategoriaRepository
}

func NewCategoriaService(repo repository.CategoriaRepository) CategoriaService {
	return &categoriaService{repo: repo}
}

func (s *categoriaService) Crear(ctx context.Context, req dto.CrearCategoriaRequest) (*dto.CategoriaResponse, error) {
	if existing, err := s.repo.ObtenerPorNombre(ctx, req.Nombre); err == nil && existing != nil {
		return nil, apierror.Conflict(fmt.Sprintf("ya existe una categoría con el nombre %q", req.Nombre))
	}

	cat := model.Categoria{
		Nombre:      req.Nombre,
		Descripcion: req.Descripcion,
		Activo:      true,
	}
	if err := s.repo.Crear(ctx, &cat); err != nil {
		return nil, err
	}
	return categoriaToResponse(&cat), nil
}

func (s *categoriaService) Listar(ctx context.Context, incluirInactivas bool) ([]dto.CategoriaResponse, error) {
	cats, err := s.repo.Listar(ctx, incluirInactivas)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CategoriaResponse, 0, len(cats))
	for i := range cats {
		out = append(out, *categoriaToResponse(&cats[i]))
	}
	return out, nil
}

func (s *categoriaService) Obtener(ctx context.Context, id uuid.UUID) (*dto.CategoriaResponse, error) {
	cat, err := s.repo.ObtenerPorID(ctx, id)
	if err != nil {
		return nil, apierror.NotFound("categoría no encontrada")
	}
	return categoriaToResponse(cat), nil
}

func (s *categoriaService) Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarCategoriaRequest) (*dto.CategoriaResponse, error) {
	cat, err := s.repo.ObtenerPorID(ctx, id)
	if err != nil {
		return nil, apierror.NotFound("categoría no encontrada")
	}

	if req.Nombre != nil && *req.Nombre != cat.Nombre {
		if existing, err := s.repo.ObtenerPorNombre(ctx, *req.Nombre); err == nil && existing != nil {
			return nil, apierror.Conflict(fmt.Sprintf("ya existe una categoría con el nombre %q", *req.Nombre))
		}
		cat.Nombre = *req.Nombre
	}
	if req.Descripcion != nil {
		cat.Descripcion = req.Descripcion
	}

	if err := s.repo.Actualizar(ctx, cat); err != nil {
		return nil, err
	}
	return categoriaToResponse(cat), nil
}

// Desactivar marks the category inactive without touching its products.
// The response reports how many products still reference it so the client can
// warn the operator — deactivation never cascades.
func (s *categoriaService) Desactivar(ctx context.Context, id uuid.UUID) (*dto.DesactivarCategoriaResponse, error) {
	if _, err := s.repo.ObtenerPorID(ctx, id); err != nil {
		return nil, apierror.NotFound("categoría no encontrada")
	}

	afectados, err := s.repo.ContarProductos(ctx, id, true)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Desactivar(ctx, id); err != nil {
		return nil, err
	}
	return &dto.DesactivarCategoriaResponse{
		ID:                 id.String(),
		Activo:             false,
		ProductosAfectados: afectados,
	}, nil
}

func (s *categoriaService) Reactivar(ctx context.Context, id uuid.UUID) (*dto.CategoriaResponse, error) {
	cat, err := s.repo.ObtenerPorID(ctx, id)
	if err != nil {
		return nil, apierror.NotFound("categoría no encontrada")
	}
	if err := s.repo.Reactivar(ctx, id); err != nil {
		return nil, err
	}
	cat.Activo = true
	return categoriaToResponse(cat), nil
}

// EliminarPermanente removes the row outright. Refused while any product
// (active or not) still references the category.
func (s *categoriaService) EliminarPermanente(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.ObtenerPorID(ctx, id); err != nil {
		return apierror.NotFound("categoría no encontrada")
	}
	total, err := s.repo.ContarProductos(ctx, id, false)
	if err != nil {
		return err
	}
	if total > 0 {
		return apierror.Conflict(fmt.Sprintf("la categoría tiene %d producto(s) asociado(s); desactívela en su lugar", total))
	}
	return s.repo.EliminarPermanente(ctx, id)
}

func categoriaToResponse(c *model.Categoria) *dto.CategoriaResponse {
	return &dto.CategoriaResponse{
		ID:          c.ID,
		Nombre:      c.Nombre,
		Descripcion: c.Descripcion,
		Activo:      c.Activo,
	}
}
