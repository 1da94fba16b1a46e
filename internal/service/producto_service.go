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

type ProductoService interface {
	Crear(ctx context.Context, req dto.CrearProductoRequest) (*dto.ProductoResponse, error)
	Obtener(ctx context.Context, id uuid.UUID) (*dto.ProductoResponse, error)
	Listar(ctx context.Context, filter dto.ProductoFilter) (*dto.ProductoListResponse, error)
	Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarProductoRequest) (*dto.ProductoResponse, error)
	Desactivar(ctx context.Context, id uuid.UUID) (*dto.DesactivarProductoResponse, error)
	Reactivar(ctx context.Context, id uuid.UUID) (*dto.ProductoResponse, error)
	EliminarPermanente(ctx context.Context, id uuid.UUID) error
}

type productoService struct {
	repo          repository.ProductoRepository
	categoriaRepo repository.CategoriaRepository
}

func NewProductoService(repo repository.ProductoRepository, categoriaRepo repository.CategoriaRepository) ProductoService {
	return &productoService{repo: repo, categoriaRepo: categoriaRepo}
}

func (s *productoService) Crear(ctx context.Context, req dto.CrearProductoRequest) (*dto.ProductoResponse, error) {
	catID, err := uuid.Parse(req.CategoriaID)
	if err != nil {
		return nil, apierror.Validation("categoria_id inválido")
	}
	cat, err := categoriaActiva(ctx, s.categoriaRepo, catID)
	if err != nil {
		return nil, err
	}

	// El precio plano del payload se descarta: los precios viven en las
	// presentaciones. El campo heredado solo sobrevive en filas antiguas.
	p := model.Producto{
		Nombre:      req.Nombre,
		Descripcion: req.Descripcion,
		CategoriaID: catID,
		ImagenURL:   req.ImagenURL,
		Activo:      true,
	}
	if err := s.repo.Crear(ctx, &p); err != nil {
		return nil, err
	}
	p.Categoria = cat
	return productoToResponse(&p), nil
}

func (s *productoService) Obtener(ctx context.Context, id uuid.UUID) (*dto.ProductoResponse, error) {
	p, err := s.repo.ObtenerConPresentaciones(ctx, id)
	if err != nil {
		return nil, apierror.NotFound("producto no encontrado")
	}
	return productoToResponse(p), nil
}

func (s *productoService) Listar(ctx context.Context, filter dto.ProductoFilter) (*dto.ProductoListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 20
	}
	productos, total, err := s.repo.Listar(ctx, filter)
	if err != nil {
		return nil, err
	}
	data := make([]dto.ProductoResponse, 0, len(productos))
	for i := range productos {
		data = append(data, *productoToResponse(&productos[i]))
	}
	return &dto.ProductoListResponse{
		Data:  data,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}, nil
}

func (s *productoService) Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarProductoRequest) (*dto.ProductoResponse, error) {
	p, err := s.repo.ObtenerPorID(ctx, id)
	if err != nil {
		return nil, apierror.NotFound("producto no encontrado")
	}

	if req.CategoriaID != nil {
		catID, err := uuid.Parse(*req.CategoriaID)
		if err != nil {
			return nil, apierror.Validation("categoria_id inválido")
		}
		if _, err := categoriaActiva(ctx, s.categoriaRepo, catID); err != nil {
			return nil, err
		}
		p.CategoriaID = catID
	}
	if req.Nombre != nil {
		p.Nombre = *req.Nombre
	}
	if req.Descripcion != nil {
		p.Descripcion = req.Descripcion
	}
	if req.ImagenURL != nil {
		p.ImagenURL = req.ImagenURL
	}
	if req.PresentacionDefaultID != nil {
		defID, err := uuid.Parse(*req.PresentacionDefaultID)
		if err != nil {
			return nil, apierror.Validation("presentacion_default_id inválido")
		}
		p.PresentacionDefaultID = &defID
	}

	if err := s.repo.Actualizar(ctx, p); err != nil {
		return nil, err
	}
	return productoToResponse(p), nil
}

// Desactivar oculta el producto del menú. Sus presentaciones conservan su
// propio flag activo: la respuesta informa cuántas quedan activas.
func (s *productoService) Desactivar(ctx context.Context, id uuid.UUID) (*dto.DesactivarProductoResponse, error) {
	if _, err := s.repo.ObtenerPorID(ctx, id); err != nil {
		return nil, apierror.NotFound("producto no encontrado")
	}
	afectadas, err := s.repo.ContarPresentaciones(ctx, id, true)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Desactivar(ctx, id); err != nil {
		return nil, err
	}
	return &dto.DesactivarProductoResponse{
		ID:                      id.String(),
		Activo:                  false,
		PresentacionesAfectadas: afectadas,
	}, nil
}

// Reactivar falla si la categoría del producto sigue inactiva: primero hay
// que reactivar la categoría.
func (s *productoService) Reactivar(ctx context.Context, id uuid.UUID) (*dto.ProductoResponse, error) {
	p, err := s.repo.ObtenerPorID(ctx, id)
	if err != nil {
		return nil, apierror.NotFound("producto no encontrado")
	}
	cat, err := s.categoriaRepo.ObtenerPorID(ctx, p.CategoriaID)
	if err == nil && !cat.Activo {
		return nil, apierror.Conflict(fmt.Sprintf("la categoría %q está inactiva; reactívela primero", cat.Nombre))
	}
	if err := s.repo.Reactivar(ctx, id); err != nil {
		return nil, err
	}
	p.Activo = true
	return productoToResponse(p), nil
}

// EliminarPermanente se rehúsa mientras el producto conserve presentaciones
// (activas o no) o aparezca en líneas de pedido: ni las variantes quedan
// huérfanas ni el historial de ventas se rompe.
func (s *productoService) EliminarPermanente(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.ObtenerPorID(ctx, id); err != nil {
		return apierror.NotFound("producto no encontrado")
	}
	presentaciones, err := s.repo.ContarPresentaciones(ctx, id, false)
	if err != nil {
		return err
	}
	if presentaciones > 0 {
		return apierror.Conflict(fmt.Sprintf("el producto tiene %d presentación(es); elimínelas primero", presentaciones))
	}
	lineas, err := s.repo.ContarLineasPedido(ctx, id)
	if err != nil {
		return err
	}
	if lineas > 0 {
		return apierror.Conflict(fmt.Sprintf("el producto aparece en %d línea(s) de pedido; desactívelo en su lugar", lineas))
	}
	return s.repo.EliminarPermanente(ctx, id)
}

func productoToResponse(p *model.Producto) *dto.ProductoResponse {
	resp := &dto.ProductoResponse{
		ID:          p.ID.String(),
		Nombre:      p.Nombre,
		Descripcion: p.Descripcion,
		CategoriaID: p.CategoriaID.String(),
		ImagenURL:   p.ImagenURL,
		Precio:      p.Precio,
		Activo:      p.Activo,
	}
	if p.Categoria != nil {
		resp.Categoria = p.Categoria.Nombre
	}
	if p.PresentacionDefaultID != nil {
		s := p.PresentacionDefaultID.String()
		resp.PresentacionDefaultID = &s
	}
	for i := range p.Presentaciones {
		resp.Presentaciones = append(resp.Presentaciones, *presentacionToResponse(&p.Presentaciones[i]))
	}
	return resp
}
