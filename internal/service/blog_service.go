package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"apebrain-backend/internal/ai"
	"apebrain-backend/internal/dto"
	"apebrain-backend/internal/images"
	"apebrain-backend/internal/model"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
)

type BlogRepo interface {
	Insert(ctx context.Context, b *model.BlogPost) error
	FindByID(ctx context.Context, id string) (*model.BlogPost, error)
	FindByStatus(ctx context.Context, status string) ([]*model.BlogPost, error)
	Update(ctx context.Context, id string, fields bson.M) error
	Delete(ctx context.Context, id string) error
}

type BlogService struct {
	repo    BlogRepo
	writer  ai.Writer
	fetcher images.Fetcher
	log     *slog.Logger
}

func NewBlogService(repo BlogRepo, writer ai.Writer, fetcher images.Fetcher, log *slog.Logger) *BlogService {
	return &BlogService{repo: repo, writer: writer, fetcher: fetcher, log: log}
}

// Generate produces a draft from keywords, optionally decorated with a stock
// photo. A failed image fetch degrades to a text-only draft.
func (s *BlogService) Generate(ctx context.Context, keywords string) (*dto.GenerateBlogResponse, error) {
	if s.writer == nil {
		return nil, ai.ErrNotConfigured
	}

	draft, err := s.writer.GenerateDraft(ctx, keywords)
	if err != nil {
		return nil, fmt.Errorf("failed to generate blog: %w", err)
	}

	resp := &dto.GenerateBlogResponse{Title: draft.Title, Content: draft.Content}

	if s.fetcher != nil {
		uri, err := s.fetcher.FetchDataURI(keywords)
		if err != nil {
			s.log.Warn("image fetch failed, continuing without image", "error", err)
		} else {
			resp.ImageBase64 = uri
		}
	}
	return resp, nil
}

// Create persists a post, keeping a caller-supplied id when present.
func (s *BlogService) Create(ctx context.Context, req dto.BlogCreateRequest) (*model.BlogPost, error) {
	post := &model.BlogPost{
		ID:          req.ID,
		Title:       req.Title,
		Content:     req.Content,
		Keywords:    req.Keywords,
		ImageURL:    req.ImageURL,
		ImageBase64: req.ImageBase64,
		AudioURL:    req.AudioURL,
		Status:      req.Status,
		CreatedAt:   time.Now().UTC(),
	}
	if post.ID == "" {
		post.ID = uuid.NewString()
	}
	if post.Status == "" {
		post.Status = model.BlogStatusDraft
	}

	if err := s.repo.Insert(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

// List returns posts filtered by status. "all" disables the filter; the
// default for the public listing is published.
func (s *BlogService) List(ctx context.Context, status string) ([]*model.BlogPost, error) {
	if status == "" {
		status = model.BlogStatusPublished
	}
	if status == "all" {
		status = ""
	}
	return s.repo.FindByStatus(ctx, status)
}

func (s *BlogService) Get(ctx context.Context, id string) (*model.BlogPost, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *BlogService) Update(ctx context.Context, id string, req dto.BlogUpdateRequest) (*model.BlogPost, error) {
	fields := bson.M{}
	if req.Title != nil {
		fields["title"] = *req.Title
	}
	if req.Content != nil {
		fields["content"] = *req.Content
	}
	if req.Keywords != nil {
		fields["keywords"] = *req.Keywords
	}
	if req.Status != nil {
		fields["status"] = *req.Status
	}
	if req.ImageURL != nil {
		fields["image_url"] = *req.ImageURL
	}
	if req.AudioURL != nil {
		fields["audio_url"] = *req.AudioURL
	}
	if len(fields) == 0 {
		return nil, ErrNoFields
	}

	if err := s.repo.Update(ctx, id, fields); err != nil {
		return nil, err
	}
	return s.repo.FindByID(ctx, id)
}

func (s *BlogService) Publish(ctx context.Context, id string) error {
	return s.repo.Update(ctx, id, bson.M{
		"status":       model.BlogStatusPublished,
		"published_at": time.Now().UTC(),
	})
}

func (s *BlogService) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

// AttachImage stores an uploaded image as an inline data-URI on the post.
func (s *BlogService) AttachImage(ctx context.Context, id, dataURI string) error {
	return s.repo.Update(ctx, id, bson.M{"image_url": dataURI})
}

// AttachAudio stores an uploaded audio file as an inline data-URI.
func (s *BlogService) AttachAudio(ctx context.Context, id, dataURI string) error {
	return s.repo.Update(ctx, id, bson.M{"audio_url": dataURI})
}
