package category

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	validator "github.com/go-playground/validator/v10"

	"github.com/taxstack/gst-api/internal/common"
)

// Input captures the payload for creating a category. Validation runs
// explicitly before any write; there is no implicit coercion.
type Input struct {
	Name     string   `json:"name" validate:"required"`
	Rate     float64  `json:"rate" validate:"gte=0,lte=100"`
	Keywords []string `json:"keywords"`
	Active   *bool    `json:"active"`
}

// Service orchestrates category reads and writes with an optional
// read-through cache in front of the store.
type Service struct {
	store    Store
	cache    *Cache
	validate *validator.Validate
}

// ServiceConfig groups Service dependencies.
type ServiceConfig struct {
	Store Store
	Cache *Cache
}

// NewService constructs a Service instance.
func NewService(cfg ServiceConfig) (*Service, error) {
	if cfg.Store == nil {
		return nil, errors.New("category: store is required")
	}
	return &Service{
		store:    cfg.Store,
		cache:    cfg.Cache,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}, nil
}

// List returns all categories, served from cache when warm.
func (s *Service) List(ctx context.Context) ([]Category, error) {
	var cached []Category
	if ok, err := s.cache.GetList(ctx, &cached); err == nil && ok {
		return cached, nil
	}
	categories, err := s.store.ListCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	_ = s.cache.SetList(ctx, categories)
	return categories, nil
}

// Create validates and persists a new category, invalidating the cached list.
func (s *Service) Create(ctx context.Context, input Input) (Category, error) {
	if err := s.validate.Struct(input); err != nil {
		return Category{}, validationError(err)
	}
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return Category{}, common.ValidationError("name is required", map[string]any{"field": "name"})
	}
	active := true
	if input.Active != nil {
		active = *input.Active
	}
	keywords := make([]string, 0, len(input.Keywords))
	for _, kw := range input.Keywords {
		trimmed := strings.TrimSpace(kw)
		if trimmed != "" {
			keywords = append(keywords, trimmed)
		}
	}

	created, err := s.store.InsertCategory(ctx, Category{
		Name:     name,
		Rate:     input.Rate,
		Keywords: keywords,
		Active:   active,
	})
	if err != nil {
		return Category{}, fmt.Errorf("insert category: %w", err)
	}
	_ = s.cache.Invalidate(ctx)
	return created, nil
}

func validationError(err error) error {
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) {
		details := make(map[string]string, len(fieldErrs))
		for _, fe := range fieldErrs {
			details[strings.ToLower(fe.Field())] = fe.Tag()
		}
		return &common.AppError{
			Code:       "VALIDATION_ERROR",
			Message:    "invalid category payload",
			HTTPStatus: http.StatusBadRequest,
			Err:        err,
			Details:    details,
		}
	}
	return common.ValidationError("invalid category payload", nil)
}
