package service

import (
	"context"
	"fmt"

	"github.com/CoronelSam/ezdd-proyect-sub000/internal/apierror"
	"github.com/CoronelSam/ezdd-proyect-sub000/internal/dto"
	"github.com/CoronelSam/ezdd-proyect-sub000/internal/model"
	"github.com/CoronelSam/ezdd-proyect-sub000/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type RecetaService interface {
	CrearVinculo(ctx context.Context, req dto.CrearRecetaRequest) (*dto.RecetaResponse, error)
	ListarPorPresentacion(ctx context.Context, presentacionID uuid.UUID) ([]dto.RecetaResponse, error)
	Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarRecetaRequest) (*dto.RecetaResponse, error)
	Eliminar(ctx context.Context, id uuid.UUID) error
	CalcularCostoProduccion(ctx context.Context, presentacionID uuid.UUID) (*dto.CostoProduccionResponse, error)
	DuplicarReceta(ctx context.Context, req dto.DuplicarRecetaRequest) (*dto.DuplicarRecetaResponse, error)
}

type recetaService struct {
	repo             repository.RecetaRepository
	presentacionRepo repository.PresentacionRepository
	insumoRepo       repository.InsumoRepository
}

func NewRecetaService(
	repo repository.RecetaRepository,
	presentacionRepo repository.PresentacionRepository,
	insumoRepo repository.InsumoRepository,
) RecetaService {
	return &recetaService{repo: repo, presentacionRepo: presentacionRepo, insumoRepo: insumoRepo}
}

// CrearVinculo crea la arista presentación×insumo. Ambos extremos deben
// existir y estar activos. El par es único: un segundo vínculo sobre el
// mismo par es Conflict, no upsert.
func (s *recetaService) CrearVinculo(ctx context.Context, req dto.CrearRecetaRequest) (*dto.RecetaResponse, error) {
	presID, err := uuid.Parse(req.PresentacionID)
	if err != nil {
		return nil, apierror.Validation("presentacion_id inválido")
	}
	insID, err := uuid.Parse(req.InsumoID)
	if err != nil {
		return nil, apierror.Validation("insumo_id inválido")
	}
	if !req.CantidadRequerida.IsPositive() {
		return nil, apierror.Validation("cantidad_requerida debe ser mayor que cero")
	}

	if _, err := presentacionActiva(ctx, s.presentacionRepo, presID); err != nil {
		return nil, err
	}
	ins, err := insumoActivo(ctx, s.insumoRepo, insID)
	if err != nil {
		return nil, err
	}

	if existing, err := s.repo.ObtenerVinculo(ctx, presID, insID); err == nil && existing != nil {
		return nil, apierror.Conflict(fmt.Sprintf("la receta ya incluye el insumo %q; actualice la cantidad en su lugar", ins.Nombre))
	}

	rec := model.Receta{
		PresentacionID:    presID,
		InsumoID:          insID,
		CantidadRequerida: req.CantidadRequerida,
	}
	if err := s.repo.Crear(ctx, &rec); err != nil {
		return nil, err
	}
	rec.Insumo = ins
	return recetaToResponse(&rec), nil
}

func (s *recetaService) ListarPorPresentacion(ctx context.Context, presentacionID uuid.UUID) ([]dto.RecetaResponse, error) {
	if _, err := s.presentacionRepo.ObtenerPorID(ctx, presentacionID); err != nil {
		return nil, apierror.NotFound("presentación no encontrada")
	}
	recetas, err := s.repo.ListarPorPresentacion(ctx, presentacionID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.RecetaResponse, 0, len(recetas))
	for i := range recetas {
		out = append(out, *recetaToResponse(&recetas[i]))
	}
	return out, nil
}

func (s *recetaService) Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarRecetaRequest) (*dto.RecetaResponse, error) {
	rec, err := s.repo.ObtenerPorID(ctx, id)
	if err != nil {
		return nil, apierror.NotFound("vínculo de receta no encontrado")
	}
	if !req.CantidadRequerida.IsPositive() {
		return nil, apierror.Validation("cantidad_requerida debe ser mayor que cero")
	}
	rec.CantidadRequerida = req.CantidadRequerida
	if err := s.repo.Actualizar(ctx, rec); err != nil {
		return nil, err
	}
	return recetaToResponse(rec), nil
}

func (s *recetaService) Eliminar(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.ObtenerPorID(ctx, id); err != nil {
		return apierror.NotFound("vínculo de receta no encontrado")
	}
	return s.repo.Eliminar(ctx, id)
}

// CalcularCostoProduccion suma cantidad_requerida × costo_compra de cada
// insumo de la receta. Una presentación sin receta no es error: responde
// costo cero con sin_receta=true.
func (s *recetaService) CalcularCostoProduccion(ctx context.Context, presentacionID uuid.UUID) (*dto.CostoProduccionResponse, error) {
	if _, err := s.presentacionRepo.ObtenerPorID(ctx, presentacionID); err != nil {
		return nil, apierror.NotFound("presentación no encontrada")
	}
	recetas, err := s.repo.ListarPorPresentacion(ctx, presentacionID)
	if err != nil {
		return nil, err
	}

	resp := &dto.CostoProduccionResponse{
		PresentacionID: presentacionID.String(),
		CostoTotal:     decimal.Zero,
		SinReceta:      len(recetas) == 0,
		Detalle:        make([]dto.CostoInsumoDetalle, 0, len(recetas)),
	}
	for i := range recetas {
		rec := &recetas[i]
		if rec.Insumo == nil {
			continue
		}
		costo := rec.CantidadRequerida.Mul(rec.Insumo.CostoCompra)
		resp.CostoTotal = resp.CostoTotal.Add(costo)
		resp.Detalle = append(resp.Detalle, dto.CostoInsumoDetalle{
			InsumoID:          rec.InsumoID.String(),
			Insumo:            rec.Insumo.Nombre,
			UnidadMedida:      rec.Insumo.UnidadMedida,
			CantidadRequerida: rec.CantidadRequerida,
			CostoUnitario:     rec.Insumo.CostoCompra,
			CostoTotal:        costo,
		})
	}
	return resp, nil
}

// DuplicarReceta copia los vínculos de una presentación a otra. Los pares ya
// presentes en el destino se omiten, nunca se sobreescriben.
func (s *recetaService) DuplicarReceta(ctx context.Context, req dto.DuplicarRecetaRequest) (*dto.DuplicarRecetaResponse, error) {
	origenID, err := uuid.Parse(req.OrigenID)
	if err != nil {
		return nil, apierror.Validation("origen_id inválido")
	}
	destinoID, err := uuid.Parse(req.DestinoID)
	if err != nil {
		return nil, apierror.Validation("destino_id inválido")
	}
	if origenID == destinoID {
		return nil, apierror.Validation("origen y destino deben ser presentaciones distintas")
	}

	if _, err := s.presentacionRepo.ObtenerPorID(ctx, origenID); err != nil {
		return nil, apierror.NotFound("presentación origen no encontrada")
	}
	if _, err := s.presentacionRepo.ObtenerPorID(ctx, destinoID); err != nil {
		return nil, apierror.NotFound("presentación destino no encontrada")
	}

	origen, err := s.repo.ListarPorPresentacion(ctx, origenID)
	if err != nil {
		return nil, err
	}
	if len(origen) == 0 {
		return nil, apierror.Conflict("la presentación origen no tiene receta que copiar")
	}

	copiadas, omitidas := 0, 0
	for i := range origen {
		src := &origen[i]
		if existing, err := s.repo.ObtenerVinculo(ctx, destinoID, src.InsumoID); err == nil && existing != nil {
			omitidas++
			continue
		}
		nuevo := model.Receta{
			PresentacionID:    destinoID,
			InsumoID:          src.InsumoID,
			CantidadRequerida: src.CantidadRequerida,
		}
		if err := s.repo.Crear(ctx, &nuevo); err != nil {
			return nil, err
		}
		copiadas++
	}

	return &dto.DuplicarRecetaResponse{
		OrigenID:  origenID.String(),
		DestinoID: destinoID.String(),
		Copiadas:  copiadas,
		Omitidas:  omitidas,
	}, nil
}

func recetaToResponse(r *model.Receta) *dto.RecetaResponse {
	resp := &dto.RecetaResponse{
		ID:                r.ID.String(),
		PresentacionID:    r.PresentacionID.String(),
		InsumoID:          r.InsumoID.String(),
		CantidadRequerida: r.CantidadRequerida,
	}
	if r.Insumo != nil {
		resp.Insumo = r.Insumo.Nombre
		resp.UnidadMedida = r.Insumo.UnidadMedida
	}
	return resp
}
