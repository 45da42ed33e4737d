package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/bazaarline/importer/internal/core/domain"
	"github.com/bazaarline/importer/internal/core/port"
)

var _ port.IdentityResolver = NameIdentity{}
var _ port.IdentityResolver = NameOrSlugIdentity{}

// NameIdentity treats two products as the same when their names are
// equal. Used on the message path.
type NameIdentity struct {
	Catalog port.ProductCatalog
}

func (r NameIdentity) FindExisting(
	ctx context.Context, p domain.ExtractedProduct,
) (domain.CatalogProduct, bool, error) {
	const op = "NameIdentity.FindExisting"

	existing, err := r.Catalog.ProductByName(ctx, p.Name)
	if errors.Is(err, domain.ErrNotFound) {
		return domain.CatalogProduct{}, false, nil
	}
	if err != nil {
		return domain.CatalogProduct{}, false, fmt.Errorf("%s: %w", op, err)
	}
	return existing, true, nil
}

// NameOrSlugIdentity matches on name first, then on the derived slug.
// Used on the batch path, where renamed rows should still hit the
// same stored product.
type NameOrSlugIdentity struct {
	Catalog port.ProductCatalog
}

func (r NameOrSlugIdentity) FindExisting(
	ctx context.Context, p domain.ExtractedProduct,
) (domain.CatalogProduct, bool, error) {
	const op = "NameOrSlugIdentity.FindExisting"

	existing, err := r.Catalog.ProductByName(ctx, p.Name)
	if err == nil {
		return existing, true, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return domain.CatalogProduct{}, false, fmt.Errorf("%s: %w", op, err)
	}

	existing, err = r.Catalog.ProductBySlug(ctx, p.Slug)
	if errors.Is(err, domain.ErrNotFound) {
		return domain.CatalogProduct{}, false, nil
	}
	if err != nil {
		return domain.CatalogProduct{}, false, fmt.Errorf("%s: %w", op, err)
	}
	return existing, true, nil
}
