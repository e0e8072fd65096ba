package postgres

import (
	"context"
	"database/sql"

	"eventplanner/internal/domain"
)

type categoryRepository struct {
	DB *sql.DB
}

func NewCategoryRepository(db *sql.DB) domain.CategoryRepository {
	return &categoryRepository{DB: db}
}

func (r *categoryRepository) Create(ctx context.Context, c *domain.Category) error {
	query := `INSERT INTO categories (name, slug) VALUES ($1, $2) RETURNING id`
	err := r.DB.QueryRowContext(ctx, query, c.Name, c.Slug).Scan(&c.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrInvalidInput
		}
		return err
	}
	return nil
}

func (r *categoryRepository) List(ctx context.Context) ([]*domain.Category, error) {
	rows, err := r.DB.QueryContext(ctx, `SELECT id, name, slug FROM categories ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectCategories(rows)
}

func (r *categoryRepository) ListByEventID(ctx context.Context, eventID string) ([]*domain.Category, error) {
	query := `
		SELECT c.id, c.name, c.slug
		FROM categories c
		JOIN event_categories ec ON ec.category_id = c.id
		WHERE ec.event_id = $1
		ORDER BY c.name
	`
	rows, err := r.DB.QueryContext(ctx, query, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectCategories(rows)
}

func collectCategories(rows *sql.Rows) ([]*domain.Category, error) {
	var cats []*domain.Category
	for rows.Next() {
		c := &domain.Category{}
		if err := rows.Scan(&c.ID, &c.Name, &c.Slug); err != nil {
			return nil, err
		}
		cats = append(cats, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if cats == nil {
		cats = []*domain.Category{}
	}
	return cats, nil
}

type tagRepository struct {
	DB *sql.DB
}

func NewTagRepository(db *sql.DB) domain.TagRepository {
	return &tagRepository{DB: db}
}

func (r *tagRepository) Create(ctx context.Context, t *domain.Tag) error {
	query := `INSERT INTO tags (name, slug) VALUES ($1, $2) RETURNING id`
	err := r.DB.QueryRowContext(ctx, query, t.Name, t.Slug).Scan(&t.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrInvalidInput
		}
		return err
	}
	return nil
}

func (r *tagRepository) List(ctx context.Context) ([]*domain.Tag, error) {
	rows, err := r.DB.QueryContext(ctx, `SELECT id, name, slug FROM tags ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectTags(rows)
}

func (r *tagRepository) ListByEventID(ctx context.Context, eventID string) ([]*domain.Tag, error) {
	query := `
		SELECT t.id, t.name, t.slug
		FROM tags t
		JOIN event_tags et ON et.tag_id = t.id
		WHERE et.event_id = $1
		ORDER BY t.name
	`
	rows, err := r.DB.QueryContext(ctx, query, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectTags(rows)
}

func collectTags(rows *sql.Rows) ([]*domain.Tag, error) {
	var tags []*domain.Tag
	for rows.Next() {
		t := &domain.Tag{}
		if err := rows.Scan(&t.ID, &t.Name, &t.Slug); err != nil {
			return nil, err
		}
		tags = append(tags, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if tags == nil {
		tags = []*domain.Tag{}
	}
	return tags, nil
}
