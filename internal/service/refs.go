package service

// refs.go
// Resolución compartida de referencias cruzadas. Cada helper distingue
// "no existe" de "existe pero inactivo" con mensajes distintos; ambos
// casos son ReferenceInvalid.

import (
	"context"
	"fmt"

	"github.com/CoronelSam/ezdd-proyect-sub000/internal/apierror"
	"github.com/CoronelSam/ezdd-proyect-sub000/internal/model"
	"github.com/CoronelSam/ezdd-proyect-sub000/internal/repository"

	"github.com/google/uuid"
)

func categoriaActiva(ctx context.Context, repo repository.CategoriaRepository, id uuid.UUID) (*model.Categoria, error) {
	cat, err := repo.ObtenerPorID(ctx, id)
	if err != nil {
		return nil, apierror.ReferenceInvalid("la categoría indicada no existe")
	}
	if !cat.Activo {
		return nil, apierror.ReferenceInvalid(fmt.Sprintf("la categoría %q está inactiva", cat.Nombre))
	}
	return cat, nil
}

func productoActivo(ctx context.Context, repo repository.ProductoRepository, id uuid.UUID) (*model.Producto, error) {
	prod, err := repo.ObtenerPorID(ctx, id)
	if err != nil {
		return nil, apierror.ReferenceInvalid("el producto indicado no existe")
	}
	if !prod.Activo {
		return nil, apierror.ReferenceInvalid(fmt.Sprintf("el producto %q está inactivo", prod.Nombre))
	}
	return prod, nil
}

func presentacionActiva(ctx context.Context, repo repository.PresentacionRepository, id uuid.UUID) (*model.Presentacion, error) {
	pres, err := repo.ObtenerPorID(ctx, id)
	if err != nil {
		return nil, apierror.ReferenceInvalid("la presentación indicada no existe")
	}
	if !pres.Activo {
		return nil, apierror.ReferenceInvalid(fmt.Sprintf("la presentación %q está inactiva", pres.Nombre))
	}
	return pres, nil
}

func insumoActivo(ctx context.Context, repo repository.InsumoRepository, id uuid.UUID) (*model.Insumo, error) {
	ins, err := repo.ObtenerPorID(ctx, id)
	if err != nil {
		return nil, apierror.ReferenceInvalid("el insumo indicado no existe")
	}
	if !ins.Activo {
		return nil, apierror.ReferenceInvalid(fmt.Sprintf("el insumo %q está inactivo", ins.Nombre))
	}
	return ins, nil
}

func clienteActivo(ctx context.Context, repo repository.ClienteRepository, id uuid.UUID) (*model.Cliente, error) {
	cliente, err := repo.ObtenerPorID(ctx, id)
	if err != nil {
		return nil, apierror.ReferenceInvalid("el cliente indicado no existe")
	}
	if !cliente.Activo {
		return nil, apierror.ReferenceInvalid(fmt.Sprintf("el cliente %q está inactivo", cliente.Nombre))
	}
	return cliente, nil
}

func usuarioActivo(ctx context.Context, repo repository.UsuarioRepository, id uuid.UUID) (*model.Usuario, error) {
	u, err := repo.ObtenerPorID(ctx, id)
	if err != nil {
		return nil, apierror.ReferenceInvalid("el usuario indicado no existe")
	}
	if !u.Activo {
		return nil, apierror.ReferenceInvalid(fmt.Sprintf("el usuario %q está inactivo", u.Username))
	}
	return u, nil
}
