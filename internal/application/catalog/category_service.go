package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/ims/backend/internal/domain/catalog"
	"github.com/ims/backend/internal/domain/shared"
)

// CategoryService handles category-related business operations
type CategoryService struct {
	categoryRepo catalog.CategoryRepository
	productRepo  catalog.ProductRepository
}

// NewCategoryService creates a new CategoryService
func NewCategoryService(categoryRepo catalog.CategoryRepository, productRepo catalog.ProductRepository) *CategoryService {
	return &CategoryService{
		categoryRepo: categoryRepo,
		productRepo:  productRepo,
	}
}

// Create creates a new category
func (s *CategoryService) Create(ctx context.Context, req CreateCategoryRequest) (*CategoryResponse, error) {
	exists, err := s.categoryRepo.ExistsByName(ctx, req.Name)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Category with this name already exists")
	}

	category, err := catalog.NewCategory(req.Name, req.Description)
	if err != nil {
		return nil, err
	}

	if err := s.categoryRepo.Save(ctx, category); err != nil {
		return nil, err
	}

	response := ToCategoryResponse(category)
	return &response, nil
}

// GetByID retrieves a category by ID
func (s *CategoryService) GetByID(ctx context.Context, categoryID uuid.UUID) (*CategoryResponse, error) {
	category, err := s.categoryRepo.FindByID(ctx, categoryID)
	if err != nil {
		return nil, err
	}

	response := ToCategoryResponse(category)
	return &response, nil
}

// List retrieves categories with pagination
func (s *CategoryService) List(ctx context.Context, page, pageSize int, search string) ([]CategoryResponse, int64, error) {
	filter := shared.DefaultFilter()
	if page > 0 {
		filter.Page = page
	}
	if pageSize > 0 {
		filter.PageSize = pageSize
	}
	filter.OrderBy = "name"
	filter.OrderDir = "asc"
	filter.Search = search

	categories, total, err := s.categoryRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]CategoryResponse, 0, len(categories))
	for _, category := range categories {
		responses = append(responses, ToCategoryResponse(category))
	}

	return responses, total, nil
}

// Update updates a category
func (s *CategoryService) Update(ctx context.Context, categoryID uuid.UUID, req UpdateCategoryRequest) (*CategoryResponse, error) {
	category, err := s.categoryRepo.FindByID(ctx, categoryID)
	if err != nil {
		return nil, err
	}

	if req.Name != category.Name {
		exists, err := s.categoryRepo.ExistsByName(ctx, req.Name)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, shared.NewDomainError("ALREADY_EXISTS", "Category with this name already exists")
		}
	}

	if err := category.Update(req.Name, req.Description); err != nil {
		return nil, err
	}

	if err := s.categoryRepo.Save(ctx, category); err != nil {
		return nil, err
	}

	response := ToCategoryResponse(category)
	return &response, nil
}

// Delete removes a category. A category still assigned to products cannot
// be deleted
func (s *CategoryService) Delete(ctx context.Context, categoryID uuid.UUID) error {
	if _, err := s.categoryRepo.FindByID(ctx, categoryID); err != nil {
		return err
	}

	count, err := s.productRepo.CountByCategory(ctx, categoryID)
	if err != nil {
		return err
	}
	if count > 0 {
		return shared.NewDomainError("CONFLICT", "Category is assigned to products")
	}

	return s.categoryRepo.Delete(ctx, categoryID)
}
