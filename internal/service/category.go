package service

import (
	"fmt"
	"strings"

	"github.com/isodigm/blogcms/internal/domain"
	"github.com/isodigm/blogcms/internal/errors"
	"github.com/isodigm/blogcms/internal/sanitize"
)

type CategoryService interface {
	CreateCategory(draft domain.CategoryDraftData) (domain.Category, error)
	UpdateCategory(id int64, draft domain.CategoryDraftData) (domain.Category, error)
	DeleteCategory(id int64) error
	Categories() ([]domain.Category, error)
}

type CategoryStorage interface {
	SaveCategory(category domain.Category) (int64, error)
	Category(id int64) (domain.Category, error)
	UpdateCategory(category domain.Category) error
	DeleteCategory(id int64) error
	Categories() ([]domain.Category, error)
	CategorySlugTaken(slug string, excludeId int64) (bool, error)
}

type Categories struct {
	storage CategoryStorage
}

func NewCategories(storage CategoryStorage) *Categories {
	return &Categories{storage: storage}
}

func (c *Categories) CreateCategory(draft domain.CategoryDraftData) (domain.Category, error) {
	category, err := c.fromDraft(draft)
	if err != nil {
		return domain.Category{}, err
	}
	// Raw name, not the sanitized one: sanitization entity-escapes '&' etc.
	category.Slug, err = c.uniqueSlug(slugify(draft.Name), 0)
	if err != nil {
		return domain.Category{}, err
	}

	id, err := c.storage.SaveCategory(category)
	if err != nil {
		return domain.Category{}, err
	}
	return c.storage.Category(id)
}

func (c *Categories) UpdateCategory(id int64, draft domain.CategoryDraftData) (domain.Category, error) {
	existing, err := c.storage.Category(id)
	if err != nil {
		return domain.Category{}, err
	}

	category, err := c.fromDraft(draft)
	if err != nil {
		return domain.Category{}, err
	}
	category.Id = existing.Id
	category.Slug = existing.Slug
	if category.Name != existing.Name {
		category.Slug, err = c.uniqueSlug(slugify(draft.Name), id)
		if err != nil {
			return domain.Category{}, err
		}
	}

	if err := c.storage.UpdateCategory(category); err != nil {
		return domain.Category{}, err
	}
	return c.storage.Category(id)
}

func (c *Categories) DeleteCategory(id int64) error {
	return c.storage.DeleteCategory(id)
}

func (c *Categories) Categories() ([]domain.Category, error) {
	return c.storage.Categories()
}

func (c *Categories) fromDraft(draft domain.CategoryDraftData) (domain.Category, error) {
	name := sanitize.Strict(draft.Name)
	if name == "" {
		return domain.Category{}, errors.BadRequest("Category name is required")
	}
	color := strings.TrimSpace(draft.Color)
	if color == "" {
		color = "#3b82f6"
	}
	if !validHexColor(color) {
		return domain.Category{}, errors.BadRequest("Color must be a hex value like #3b82f6")
	}
	return domain.Category{
		Name:            name,
		Description:     sanitize.Strict(draft.Description),
		Color:           color,
		MetaDescription: sanitize.Strict(draft.MetaDescription),
	}, nil
}

func (c *Categories) uniqueSlug(base string, excludeId int64) (string, error) {
	slug := base
	for i := 2; ; i++ {
		taken, err := c.storage.CategorySlugTaken(slug, excludeId)
		if err != nil {
			return "", err
		}
		if !taken {
			return slug, nil
		}
		slug = fmt.Sprintf("%s-%d", base, i)
	}
}

func validHexColor(s string) bool {
	if len(s) != 7 || s[0] != '#' {
		return false
	}
	for _, r := range s[1:] {
		switch {
		case r >= '0' && r <= '9', r >= 'a' && r <= 'f', r >= 'A' && r <= 'F':
		default:
			return false
		}
	}
	return true
}
