package writer

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"blogsmith/internal/model"
)

// fakeGenerator returns canned documents per topic and records calls.
type fakeGenerator struct {
	blogErr    map[string]error
	imageErr   map[string]error
	blogCalls  []string
	imageCalls []string
}

func (f *fakeGenerator) GenerateBlog(_ context.Context, topic string) (*GeneratedBlog, error) {
	f.blogCalls = append(f.blogCalls, topic)
	if err := f.blogErr[topic]; err != nil {
		return nil, err
	}
	return &GeneratedBlog{
		Title:          "Post about " + topic,
		Slug:           topic,
		Excerpt:        "excerpt",
		SEOTitle:       "seo " + topic,
		SEODescription: "desc",
		Category:       "DevOps",
		Content: []Section{
			{Heading: "", Paragraphs: []string{"intro"}},
			{Heading: "Point", Paragraphs: []string{"body"}},
		},
	}, nil
}

func (f *fakeGenerator) GenerateThumbnail(_ context.Context, topic string) ([]byte, error) {
	f.imageCalls = append(f.imageCalls, topic)
	if err := f.imageErr[topic]; err != nil {
		return nil, err
	}
	return []byte("png-bytes"), nil
}

// fakeStore is an in-memory ContentStore.
type fakeStore struct {
	existingSlugs map[string]bool
	uploads       []string
	authors       map[string]string
	categories    map[string]string
	created       []model.Post
	createErr     error
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		existingSlugs: make(map[string]bool),
		authors:       make(map[string]string),
		categories:    make(map[string]string),
	}
}

func (f *fakeStore) SlugExists(_ context.Context, slug string) (bool, error) {
	return f.existingSlugs[slug], nil
}

func (f *fakeStore) UploadImage(_ context.Context, _ []byte, filename string) (model.Asset, error) {
	f.uploads = append(f.uploads, filename)
	return model.Asset{ID: "asset-" + filename}, nil
}

func (f *fakeStore) EnsureAuthor(_ context.Context, name string) (string, error) {
	if id, ok := f.authors[name]; ok {
		return id, nil
	}
	id := "author-" + name
	f.authors[name] = id
	return id, nil
}

func (f *fakeStore) EnsureCategory(_ context.Context, title string) (string, error) {
	if id, ok := f.categories[title]; ok {
		return id, nil
	}
	id := "category-" + title
	f.categories[title] = id
	return id, nil
}

func (f *fakeStore) CreatePost(_ context.Context, post model.Post) (model.Post, error) {
	if f.createErr != nil {
		return model.Post{}, f.createErr
	}
	if post.ID == "" {
		post.ID = uuid.NewString()
	}
	f.created = append(f.created, post)
	f.existingSlugs[post.Slug] = true
	return post, nil
}

func newTestRunner(gen BlogGenerator, store ContentStore, opts Options) *Runner {
	if opts.TopicDelay == 0 {
		opts.TopicDelay = time.Millisecond
	}
	r := NewRunner(gen, store, discardLogger(), opts)
	r.now = func() time.Time { return time.Date(2026, 5, 20, 8, 0, 0, 0, time.UTC) }
	return r
}

func TestRunCreatesDrafts(t *testing.T) {
	gen := &fakeGenerator{}
	store := newFakeStore()
	r := newTestRunner(gen, store, Options{
		Topics:      []string{"alpha", "beta"},
		PostsPerRun: 2,
		AuthorName:  "AI-GPT-4o",
	})

	sum, err := r.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if sum.Created != 2 || sum.Skipped != 0 || sum.Failed != 0 {
		t.Fatalf("summary = %+v", sum)
	}

	for _, post := range store.created {
		if !strings.HasPrefix(post.ID, model.DraftIDPrefix) {
			t.Errorf("post id %q lacks draft prefix", post.ID)
		}
		if post.AuthorID != "author-AI-GPT-4o" {
			t.Errorf("author = %q", post.AuthorID)
		}
		if len(post.CategoryIDs) != 1 || post.CategoryIDs[0] != "category-DevOps" {
			t.Errorf("categories = %v", post.CategoryIDs)
		}
		if len(post.Body) != 3 {
			t.Errorf("body has %d blocks, want 3", len(post.Body))
		}
	}
}

func TestRunAutoPublishAssignsStoreID(t *testing.T) {
	gen := &fakeGenerator{}
	store := newFakeStore()
	r := newTestRunner(gen, store, Options{
		Topics:      []string{"alpha"},
		PostsPerRun: 1,
		AutoPublish: true,
	})

	if _, err := r.Run(context.Background()); err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if len(store.created) != 1 {
		t.Fatalf("created %d posts, want 1", len(store.created))
	}
	post := store.created[0]
	if post.IsDraft() {
		t.Errorf("auto-published post %q is a draft", post.ID)
	}
	if post.ID == "" {
		t.Error("store did not assign an id")
	}
}

func TestRunSkipsDuplicateSlug(t *testing.T) {
	gen := &fakeGenerator{}
	store := newFakeStore()
	store.existingSlugs["alpha"] = true

	r := newTestRunner(gen, store, Options{
		Topics:      []string{"alpha", "beta"},
		PostsPerRun: 2,
	})

	sum, err := r.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if sum.Skipped != 1 || sum.Created != 1 {
		t.Fatalf("summary = %+v", sum)
	}

	// No image was generated and no post created for the skipped topic
	for _, topic := range gen.imageCalls {
		if topic == "alpha" {
			t.Error("thumbnail generated for skipped topic")
		}
	}
	for _, post := range store.created {
		if post.Slug == "alpha" {
			t.Error("post created for skipped topic")
		}
	}
}

func TestRunTextFailureIsolation(t *testing.T) {
	gen := &fakeGenerator{
		blogErr: map[string]error{
			"alpha": &GenerationError{Kind: "text", Err: errors.New("api down")},
		},
	}
	store := newFakeStore()
	r := newTestRunner(gen, store, Options{
		Topics:      []string{"alpha", "beta"},
		PostsPerRun: 2,
	})

	sum, err := r.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if sum.Failed != 1 || sum.Created != 1 {
		t.Fatalf("summary = %+v", sum)
	}

	// The failed topic never reached image generation or upload
	if len(gen.imageCalls) != 1 || gen.imageCalls[0] != "beta" {
		t.Errorf("image calls = %v", gen.imageCalls)
	}
	if len(store.uploads) != 1 {
		t.Errorf("uploads = %v", store.uploads)
	}
	// The next topic still ran to completion
	if len(store.created) != 1 || store.created[0].Slug != "beta" {
		t.Errorf("created = %+v", store.created)
	}
}

func TestRunStoreFailureIsolation(t *testing.T) {
	gen := &fakeGenerator{}
	store := newFakeStore()
	store.createErr = fmt.Errorf("disk full")

	r := newTestRunner(gen, store, Options{
		Topics:      []string{"alpha", "beta"},
		PostsPerRun: 2,
	})

	sum, err := r.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if sum.Failed != 2 {
		t.Fatalf("summary = %+v", sum)
	}
	if len(gen.blogCalls) != 2 {
		t.Errorf("blog calls = %v, want both topics attempted", gen.blogCalls)
	}
}

func TestRunCancellation(t *testing.T) {
	gen := &fakeGenerator{}
	store := newFakeStore()
	r := newTestRunner(gen, store, Options{
		Topics:      []string{"alpha", "beta", "gamma"},
		PostsPerRun: 3,
		TopicDelay:  time.Hour,
	})

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(50 * time.Millisecond)
		cancel()
	}()

	sum, err := r.Run(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Run() error = %v, want context.Canceled", err)
	}
	if sum.Created == 0 {
		t.Error("no topic completed before cancellation")
	}
	if sum.Created == 3 {
		t.Error("all topics completed despite hour-long delay")
	}
}

func TestRunEmptySlugFromGenerator(t *testing.T) {
	gen := &emptySlugGenerator{}
	store := newFakeStore()
	r := newTestRunner(gen, store, Options{
		Topics:      []string{"alpha"},
		PostsPerRun: 1,
	})

	sum, err := r.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if sum.Failed != 1 {
		t.Fatalf("summary = %+v", sum)
	}
}

// emptySlugGenerator returns a document whose slug and title slugify to nothing.
type emptySlugGenerator struct{}

func (e *emptySlugGenerator) GenerateBlog(context.Context, string) (*GeneratedBlog, error) {
	return &GeneratedBlog{
		Title:   "!!!",
		Slug:    "???",
		Content: []Section{{Heading: "H", Paragraphs: []string{"p"}}},
	}, nil
}

func (e *emptySlugGenerator) GenerateThumbnail(context.Context, string) ([]byte, error) {
	return []byte("png"), nil
}
