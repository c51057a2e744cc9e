package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"blogsmith/internal/model"
)

// DBTX is the subset of database/sql used by Queries, satisfied by both
// *sql.DB and *sql.Tx.
type DBTX interface {
	ExecContext(context.Context, string, ...any) (sql.Result, error)
	QueryContext(context.Context, string, ...any) (*sql.Rows, error)
	QueryRowContext(context.Context, string, ...any) *sql.Row
}

// Queries provides typed access to the content store tables.
type Queries struct {
	db DBTX
}

// New creates a Queries instance bound to the given database handle.
func New(db DBTX) *Queries {
	return &Queries{db: db}
}

// WithTx returns a Queries instance bound to the given transaction.
func (q *Queries) WithTx(tx *sql.Tx) *Queries {
	return &Queries{db: tx}
}

// publishedFilter excludes draft documents by their id prefix.
const publishedFilter = "id NOT LIKE '" + model.DraftIDPrefix + "%'"

// CreateAuthorParams holds the fields for creating an author document.
type CreateAuthorParams struct {
	ID        string
	Name      string
	Slug      string
	CreatedAt time.Time
}

// CreateAuthor inserts an author reference document.
func (q *Queries) CreateAuthor(ctx context.Context, arg CreateAuthorParams) (model.Author, error) {
	_, err := q.db.ExecContext(ctx,
		`INSERT INTO authors (id, name, slug, created_at) VALUES (?, ?, ?, ?)`,
		arg.ID, arg.Name, arg.Slug, arg.CreatedAt,
	)
	if err != nil {
		return model.Author{}, fmt.Errorf("creating author: %w", err)
	}
	return model.Author{ID: arg.ID, Name: arg.Name, Slug: arg.Slug, CreatedAt: arg.CreatedAt}, nil
}

// GetAuthorBySlug returns the author document with the given slug.
func (q *Queries) GetAuthorBySlug(ctx context.Context, slug string) (model.Author, error) {
	var a model.Author
	err := q.db.QueryRowContext(ctx,
		`SELECT id, name, slug, created_at FROM authors WHERE slug = ?`, slug,
	).Scan(&a.ID, &a.Name, &a.Slug, &a.CreatedAt)
	return a, err
}

// GetAuthorByID returns the author document with the given id.
func (q *Queries) GetAuthorByID(ctx context.Context, id string) (model.Author, error) {
	var a model.Author
	err := q.db.QueryRowContext(ctx,
		`SELECT id, name, slug, created_at FROM authors WHERE id = ?`, id,
	).Scan(&a.ID, &a.Name, &a.Slug, &a.CreatedAt)
	return a, err
}

// CreateCategoryParams holds the fields for creating a category document.
type CreateCategoryParams struct {
	ID        string
	Title     string
	Slug      string
	CreatedAt time.Time
}

// CreateCategory inserts a category reference document.
func (q *Queries) CreateCategory(ctx context.Context, arg CreateCategoryParams) (model.Category, error) {
	_, err := q.db.ExecContext(ctx,
		`INSERT INTO categories (id, title, slug, created_at) VALUES (?, ?, ?, ?)`,
		arg.ID, arg.Title, arg.Slug, arg.CreatedAt,
	)
	if err != nil {
		return model.Category{}, fmt.Errorf("creating category: %w", err)
	}
	return model.Category{ID: arg.ID, Title: arg.Title, Slug: arg.Slug, CreatedAt: arg.CreatedAt}, nil
}

// GetCategoryByTitle returns the category document with the exact title.
func (q *Queries) GetCategoryByTitle(ctx context.Context, title string) (model.Category, error) {
	var c model.Category
	err := q.db.QueryRowContext(ctx,
		`SELECT id, title, slug, created_at FROM categories WHERE title = ?`, title,
	).Scan(&c.ID, &c.Title, &c.Slug, &c.CreatedAt)
	return c, err
}

// GetCategoryBySlug returns the category document with the given slug.
func (q *Queries) GetCategoryBySlug(ctx context.Context, slug string) (model.Category, error) {
	var c model.Category
	err := q.db.QueryRowContext(ctx,
		`SELECT id, title, slug, created_at FROM categories WHERE slug = ?`, slug,
	).Scan(&c.ID, &c.Title, &c.Slug, &c.CreatedAt)
	return c, err
}

// ListCategories returns all category documents ordered by title.
func (q *Queries) ListCategories(ctx context.Context) ([]model.Category, error) {
	rows, err := q.db.QueryContext(ctx,
		`SELECT id, title, slug, created_at FROM categories ORDER BY title`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []model.Category
	for rows.Next() {
		var c model.Category
		if err := rows.Scan(&c.ID, &c.Title, &c.Slug, &c.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// CreateAssetParams holds the fields for creating an asset record.
type CreateAssetParams struct {
	ID        string
	Filename  string
	MimeType  string
	Size      int64
	Width     int64
	Height    int64
	FilePath  string
	CreatedAt time.Time
}

// CreateAsset inserts an asset record for an uploaded binary.
func (q *Queries) CreateAsset(ctx context.Context, arg CreateAssetParams) (model.Asset, error) {
	_, err := q.db.ExecContext(ctx,
		`INSERT INTO assets (id, filename, mime_type, size, width, height, file_path, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		arg.ID, arg.Filename, arg.MimeType, arg.Size, arg.Width, arg.Height, arg.FilePath, arg.CreatedAt,
	)
	if err != nil {
		return model.Asset{}, fmt.Errorf("creating asset: %w", err)
	}
	return model.Asset{
		ID: arg.ID, Filename: arg.Filename, MimeType: arg.MimeType,
		Size: arg.Size, Width: arg.Width, Height: arg.Height,
		FilePath: arg.FilePath, CreatedAt: arg.CreatedAt,
	}, nil
}

// GetAssetByID returns the asset record with the given id.
func (q *Queries) GetAssetByID(ctx context.Context, id string) (model.Asset, error) {
	var a model.Asset
	err := q.db.QueryRowContext(ctx,
		`SELECT id, filename, mime_type, size, width, height, file_path, created_at
		 FROM assets WHERE id = ?`, id,
	).Scan(&a.ID, &a.Filename, &a.MimeType, &a.Size, &a.Width, &a.Height, &a.FilePath, &a.CreatedAt)
	return a, err
}

// CountPostsBySlug counts post documents (drafts included) with the given slug.
func (q *Queries) CountPostsBySlug(ctx context.Context, slug string) (int64, error) {
	var n int64
	err := q.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM posts WHERE slug = ?`, slug,
	).Scan(&n)
	return n, err
}

// CreatePostParams holds the fields for creating a post document.
type CreatePostParams struct {
	ID              string
	Title           string
	Slug            string
	Excerpt         string
	PublishedAt     time.Time
	AuthorID        string
	ImageID         string
	Body            []model.Block
	MetaTitle       string
	MetaDescription string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// CreatePost inserts a post document. The body is stored as a JSON array of
// blocks. Category links are added separately with AddPostCategory.
func (q *Queries) CreatePost(ctx context.Context, arg CreatePostParams) (model.Post, error) {
	body, err := json.Marshal(arg.Body)
	if err != nil {
		return model.Post{}, fmt.Errorf("encoding post body: %w", err)
	}

	var imageID any
	if arg.ImageID != "" {
		imageID = arg.ImageID
	}

	_, err = q.db.ExecContext(ctx,
		`INSERT INTO posts (id, title, slug, excerpt, published_at, author_id, image_id,
		                    body, meta_title, meta_description, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		arg.ID, arg.Title, arg.Slug, arg.Excerpt, arg.PublishedAt, arg.AuthorID, imageID,
		string(body), arg.MetaTitle, arg.MetaDescription, arg.CreatedAt, arg.UpdatedAt,
	)
	if err != nil {
		return model.Post{}, fmt.Errorf("creating post: %w", err)
	}

	return model.Post{
		ID: arg.ID, Title: arg.Title, Slug: arg.Slug, Excerpt: arg.Excerpt,
		PublishedAt: arg.PublishedAt, AuthorID: arg.AuthorID, ImageID: arg.ImageID,
		Body: arg.Body, SEO: model.SEOMeta{MetaTitle: arg.MetaTitle, MetaDescription: arg.MetaDescription},
		CreatedAt: arg.CreatedAt, UpdatedAt: arg.UpdatedAt,
	}, nil
}

// AddPostCategory links a post document to a category reference document.
func (q *Queries) AddPostCategory(ctx context.Context, postID, categoryID string, position int) error {
	_, err := q.db.ExecContext(ctx,
		`INSERT INTO post_categories (post_id, category_id, position) VALUES (?, ?, ?)`,
		postID, categoryID, position,
	)
	if err != nil {
		return fmt.Errorf("linking post category: %w", err)
	}
	return nil
}

const postColumns = `id, title, slug, excerpt, published_at, author_id,
	COALESCE(image_id, ''), body, meta_title, meta_description, created_at, updated_at`

// scanPost scans a post row from a query using postColumns.
func scanPost(row interface{ Scan(...any) error }) (model.Post, error) {
	var p model.Post
	var body string
	err := row.Scan(&p.ID, &p.Title, &p.Slug, &p.Excerpt, &p.PublishedAt, &p.AuthorID,
		&p.ImageID, &body, &p.SEO.MetaTitle, &p.SEO.MetaDescription, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return model.Post{}, err
	}
	if err := json.Unmarshal([]byte(body), &p.Body); err != nil {
		return model.Post{}, fmt.Errorf("decoding post body: %w", err)
	}
	return p, nil
}

// GetPublishedPostBySlug returns the published (non-draft) post with the given slug.
func (q *Queries) GetPublishedPostBySlug(ctx context.Context, slug string) (model.Post, error) {
	row := q.db.QueryRowContext(ctx,
		`SELECT `+postColumns+` FROM posts WHERE slug = ? AND `+publishedFilter, slug)
	p, err := scanPost(row)
	if err != nil {
		return model.Post{}, err
	}
	p.CategoryIDs, err = q.listPostCategoryIDs(ctx, p.ID)
	return p, err
}

// ListPublishedPosts returns published posts, newest first.
func (q *Queries) ListPublishedPosts(ctx context.Context, limit int64) ([]model.Post, error) {
	rows, err := q.db.QueryContext(ctx,
		`SELECT `+postColumns+` FROM posts WHERE `+publishedFilter+`
		 ORDER BY published_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	return collectPosts(rows)
}

// ListPublishedPostsByCategory returns published posts linked to a category, newest first.
func (q *Queries) ListPublishedPostsByCategory(ctx context.Context, categoryID string) ([]model.Post, error) {
	rows, err := q.db.QueryContext(ctx,
		`SELECT `+postColumns+` FROM posts
		 WHERE `+publishedFilter+`
		   AND id IN (SELECT post_id FROM post_categories WHERE category_id = ?)
		 ORDER BY published_at DESC`, categoryID)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	return collectPosts(rows)
}

func collectPosts(rows *sql.Rows) ([]model.Post, error) {
	var out []model.Post
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (q *Queries) listPostCategoryIDs(ctx context.Context, postID string) ([]string, error) {
	rows, err := q.db.QueryContext(ctx,
		`SELECT category_id FROM post_categories WHERE post_id = ? ORDER BY position`, postID)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// CreateEventParams holds the fields for creating an event log entry.
type CreateEventParams struct {
	Level     string
	Category  string
	Message   string
	Metadata  string
	CreatedAt time.Time
}

// CreateEvent inserts an event log entry.
func (q *Queries) CreateEvent(ctx context.Context, arg CreateEventParams) (model.Event, error) {
	res, err := q.db.ExecContext(ctx,
		`INSERT INTO events (level, category, message, metadata, created_at) VALUES (?, ?, ?, ?, ?)`,
		arg.Level, arg.Category, arg.Message, arg.Metadata, arg.CreatedAt,
	)
	if err != nil {
		return model.Event{}, fmt.Errorf("creating event: %w", err)
	}
	id, _ := res.LastInsertId()
	return model.Event{
		ID: id, Level: arg.Level, Category: arg.Category,
		Message: arg.Message, Metadata: arg.Metadata, CreatedAt: arg.CreatedAt,
	}, nil
}

// ListRecentEvents returns the newest event log entries.
func (q *Queries) ListRecentEvents(ctx context.Context, limit int64) ([]model.Event, error) {
	rows, err := q.db.QueryContext(ctx,
		`SELECT id, level, category, message, metadata, created_at
		 FROM events ORDER BY created_at DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []model.Event
	for rows.Next() {
		var e model.Event
		if err := rows.Scan(&e.ID, &e.Level, &e.Category, &e.Message, &e.Metadata, &e.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
