package writer

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
)

const validBlogJSON = `{
	"title": "Terraform State at Scale",
	"slug": "terraform-state-at-scale",
	"excerpt": "State files grow teeth.",
	"seoTitle": "Terraform State at Scale",
	"seoDescription": "What breaks first when state grows.",
	"category": "DevOps",
	"content": [
		{"heading": "", "paragraphs": ["Intro paragraph."]},
		{"heading": "Remote State", "paragraphs": ["First point.", "Second point."]}
	]
}`

type stubChat struct {
	response string
	err      error
}

func (s *stubChat) ChatJSON(context.Context, string, string) (string, error) {
	return s.response, s.err
}

type stubImage struct {
	data []byte
	err  error
}

func (s *stubImage) GenerateImage(context.Context, string) ([]byte, error) {
	return s.data, s.err
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestParseGeneratedBlog(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"plain json", validBlogJSON, false},
		{"json code fence", "```json\n" + validBlogJSON + "\n```", false},
		{"bare code fence", "```\n" + validBlogJSON + "\n```", false},
		{"surrounding prose", "Here is the post:\n" + validBlogJSON + "\nHope it helps!", false},
		{"not json", "sorry, I cannot do that", true},
		{"missing title", `{"slug":"x","content":[{"heading":"H","paragraphs":["p"]}]}`, true},
		{"missing content", `{"title":"T","slug":"t"}`, true},
		{"empty content array", `{"title":"T","content":[]}`, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			blog, err := parseGeneratedBlog(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				var schemaErr *SchemaError
				if !errors.As(err, &schemaErr) {
					t.Errorf("error %v is not a SchemaError", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if blog.Title != "Terraform State at Scale" {
				t.Errorf("title = %q", blog.Title)
			}
			if len(blog.Content) != 2 {
				t.Errorf("got %d sections, want 2", len(blog.Content))
			}
		})
	}
}

func TestGenerateBlogAPIError(t *testing.T) {
	g := NewGenerator(&stubChat{err: errors.New("boom")}, &stubImage{}, discardLogger())

	_, err := g.GenerateBlog(context.Background(), "GitOps")
	var genErr *GenerationError
	if !errors.As(err, &genErr) {
		t.Fatalf("error %v is not a GenerationError", err)
	}
	if genErr.Kind != "text" {
		t.Errorf("kind = %q, want text", genErr.Kind)
	}
}

func TestGenerateBlogEmptyCompletion(t *testing.T) {
	g := NewGenerator(&stubChat{response: "   "}, &stubImage{}, discardLogger())

	_, err := g.GenerateBlog(context.Background(), "GitOps")
	var genErr *GenerationError
	if !errors.As(err, &genErr) {
		t.Fatalf("error %v is not a GenerationError", err)
	}
}

func TestGenerateThumbnail(t *testing.T) {
	g := NewGenerator(&stubChat{}, &stubImage{data: []byte{0x89, 'P', 'N', 'G'}}, discardLogger())

	data, err := g.GenerateThumbnail(context.Background(), "GitOps")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(data) != 4 {
		t.Errorf("got %d bytes, want 4", len(data))
	}
}

func TestGenerateThumbnailEmptyPayload(t *testing.T) {
	g := NewGenerator(&stubChat{}, &stubImage{data: nil}, discardLogger())

	_, err := g.GenerateThumbnail(context.Background(), "GitOps")
	var genErr *GenerationError
	if !errors.As(err, &genErr) {
		t.Fatalf("error %v is not a GenerationError", err)
	}
	if genErr.Kind != "image" {
		t.Errorf("kind = %q, want image", genErr.Kind)
	}
}
