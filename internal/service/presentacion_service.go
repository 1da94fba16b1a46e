package service

import (
	"context"
	"fmt"

	"github.com/CoronelSam/ezdd-proyect-sub000/internal/apierror"
	"github.com/CoronelSam/ezdd-proyect-sub000/internal/dto"
	"github.com/CoronelSam/ezdd-proyect-sub000/internal/model"
	"github.com/CoronelSam/ezdd-proyect-sub000/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PresentacionService interface {
	Crear(ctx context.Context, req dto.CrearPresentacionRequest) (*dto.PresentacionResponse, error)
	Obtener(ctx context.Context, id uuid.UUID) (*dto.PresentacionResponse, error)
	ListarPorProducto(ctx context.Context, productoID uuid.UUID, incluirInactivas bool) ([]dto.PresentacionResponse, error)
	Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarPresentacionRequest) (*dto.PresentacionResponse, error)
	Desactivar(ctx context.Context, id uuid.UUID) error
	Reactivar(ctx context.Context, id uuid.UUID) (*dto.PresentacionResponse, error)
	EliminarPermanente(ctx context.Context, id uuid.UUID) error
}

type presentacionService struct {
	repo         repository.PresentacionRepository
	productoRepo repository.ProductoRepository
}

func NewPresentacionService(repo repository.PresentacionRepository, productoRepo repository.ProductoRepository) PresentacionService {
	return &presentacionService{repo: repo, productoRepo: productoRepo}
}

// Crear exige producto existente y activo. Cuando es_default viene en true,
// la limpieza de la bandera en las hermanas y la creación corren en la misma
// transacción para que nunca haya dos defaults visibles.
func (s *presentacionService) Crear(ctx context.Context, req dto.CrearPresentacionRequest) (*dto.PresentacionResponse, error) {
	prodID, err := uuid.Parse(req.ProductoID)
	if err != nil {
		return nil, apierror.Validation("producto_id inválido")
	}
	if _, err := productoActivo(ctx, s.productoRepo, prodID); err != nil {
		return nil, err
	}
	if req.Precio.IsNegative() {
		return nil, apierror.Validation("el precio no puede ser negativo")
	}

	pres := model.Presentacion{
		ProductoID:  prodID,
		Nombre:      req.Nombre,
		Descripcion: req.Descripcion,
		Precio:      req.Precio,
		EsDefault:   req.EsDefault,
		Activo:      true,
	}

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if err := s.repo.CrearTx(tx, &pres); err != nil {
			return err
		}
		if pres.EsDefault {
			return s.repo.LimpiarDefaultTx(tx, prodID, pres.ID)
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}
	return presentacionToResponse(&pres), nil
}

func (s *presentacionService) Obtener(ctx context.Context, id uuid.UUID) (*dto.PresentacionResponse, error) {
	pres, err := s.repo.ObtenerPorID(ctx, id)
	if err != nil {
		return nil, apierror.NotFound("presentación no encontrada")
	}
	return presentacionToResponse(pres), nil
}

func (s *presentacionService) ListarPorProducto(ctx context.Context, productoID uuid.UUID, incluirInactivas bool) ([]dto.PresentacionResponse, error) {
	if _, err := s.productoRepo.ObtenerPorID(ctx, productoID); err != nil {
		return nil, apierror.NotFound("producto no encontrado")
	}
	list, err := s.repo.ListarPorProducto(ctx, productoID, incluirInactivas)
	if err != nil {
		return nil, err
	}
	out := make([]dto.PresentacionResponse, 0, len(list))
	for i := range list {
		out = append(out, *presentacionToResponse(&list[i]))
	}
	return out, nil
}

func (s *presentacionService) Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarPresentacionRequest) (*dto.PresentacionResponse, error) {
	pres, err := s.repo.ObtenerPorID(ctx, id)
	if err != nil {
		return nil, apierror.NotFound("presentación no encontrada")
	}

	if req.Nombre != nil {
		pres.Nombre = *req.Nombre
	}
	if req.Descripcion != nil {
		pres.Descripcion = req.Descripcion
	}
	if req.Precio != nil {
		if req.Precio.IsNegative() {
			return nil, apierror.Validation("el precio no puede ser negativo")
		}
		pres.Precio = *req.Precio
	}

	promover := req.EsDefault != nil && *req.EsDefault && !pres.EsDefault
	if req.EsDefault != nil {
		pres.EsDefault = *req.EsDefault
	}

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if err := s.repo.ActualizarTx(tx, pres); err != nil {
			return err
		}
		if promover {
			return s.repo.LimpiarDefaultTx(tx, pres.ProductoID, pres.ID)
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}
	return presentacionToResponse(pres), nil
}

func (s *presentacionService) Desactivar(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.ObtenerPorID(ctx, id); err != nil {
		return apierror.NotFound("presentación no encontrada")
	}
	return s.repo.Desactivar(ctx, id)
}

// Reactivar falla si el producto padre está inactivo.
func (s *presentacionService) Reactivar(ctx context.Context, id uuid.UUID) (*dto.PresentacionResponse, error) {
	pres, err := s.repo.ObtenerPorID(ctx, id)
	if err != nil {
		return nil, apierror.NotFound("presentación no encontrada")
	}
	prod, err := s.productoRepo.ObtenerPorID(ctx, pres.ProductoID)
	if err == nil && !prod.Activo {
		return nil, apierror.Conflict(fmt.Sprintf("el producto %q está inactivo; reactívelo primero", prod.Nombre))
	}
	if err := s.repo.Reactivar(ctx, id); err != nil {
		return nil, err
	}
	pres.Activo = true
	return presentacionToResponse(pres), nil
}

// EliminarPermanente se rehúsa mientras la presentación tenga receta o
// aparezca en líneas de pedido.
func (s *presentacionService) EliminarPermanente(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.ObtenerPorID(ctx, id); err != nil {
		return apierror.NotFound("presentación no encontrada")
	}
	recetas, err := s.repo.ContarRecetas(ctx, id)
	if err != nil {
		return err
	}
	if recetas > 0 {
		return apierror.Conflict(fmt.Sprintf("la presentación tiene %d receta(s) asociada(s); elimínelas primero", recetas))
	}
	lineas, err := s.repo.ContarLineasPedido(ctx, id)
	if err != nil {
		return err
	}
	if lineas > 0 {
		return apierror.Conflict(fmt.Sprintf("la presentación aparece en %d línea(s) de pedido; desactívela en su lugar", lineas))
	}
	return s.repo.EliminarPermanente(ctx, id)
}

func presentacionToResponse(p *model.Presentacion) *dto.PresentacionResponse {
	return &dto.PresentacionResponse{
		ID:          p.ID.String(),
		ProductoID:  p.ProductoID.String(),
		Nombre:      p.Nombre,
		Descripcion: p.Descripcion,
		Precio:      p.Precio,
		EsDefault:   p.EsDefault,
		Activo:      p.Activo,
	}
}
