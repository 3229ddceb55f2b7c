package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"

	"apebrain-backend/internal/ai"
	"apebrain-backend/internal/dto"
	"apebrain-backend/internal/model"
	"apebrain-backend/internal/repository"
)

type fakeBlogRepo struct {
	posts map[string]*model.BlogPost
}

func newFakeBlogRepo(posts ...*model.BlogPost) *fakeBlogRepo {
	r := &fakeBlogRepo{posts: map[string]*model.BlogPost{}}
	for _, p := range posts {
		r.posts[p.ID] = p
	}
	return r
}

func (r *fakeBlogRepo) Insert(_ context.Context, b *model.BlogPost) error {
	r.posts[b.ID] = b
	return nil
}

func (r *fakeBlogRepo) FindByID(_ context.Context, id string) (*model.BlogPost, error) {
	p, ok := r.posts[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return p, nil
}

func (r *fakeBlogRepo) FindByStatus(_ context.Context, status string) ([]*model.BlogPost, error) {
	var out []*model.BlogPost
	for _, p := range r.posts {
		if status == "" || p.Status == status {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *fakeBlogRepo) Update(_ context.Context, id string, fields bson.M) error {
	p, ok := r.posts[id]
	if !ok {
		return repository.ErrNotFound
	}
	if v, ok := fields["title"]; ok {
		p.Title = v.(string)
	}
	if v, ok := fields["status"]; ok {
		p.Status = v.(string)
	}
	if v, ok := fields["image_url"]; ok {
		p.ImageURL = v.(string)
	}
	if v, ok := fields["audio_url"]; ok {
		p.AudioURL = v.(string)
	}
	return nil
}

func (r *fakeBlogRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.posts[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.posts, id)
	return nil
}

type fakeWriter struct {
	draft *ai.Draft
	err   error
}

func (w *fakeWriter) GenerateDraft(context.Context, string) (*ai.Draft, error) {
	return w.draft, w.err
}

type fakeFetcher struct {
	uri string
	err error
}

func (f *fakeFetcher) FetchDataURI(string) (string, error) { return f.uri, f.err }

func (f *fakeFetcher) FetchDataURIs(string, int) ([]string, error) {
	if f.err != nil {
		return nil, f.err
	}
	return []string{f.uri}, nil
}

func TestGenerateDraftWithImage(t *testing.T) {
	svc := NewBlogService(newFakeBlogRepo(),
		&fakeWriter{draft: &ai.Draft{Title: "Reishi Benefits", Content: "On reishi."}},
		&fakeFetcher{uri: "data:image/jpeg;base64,AAAA"},
		testLogger())

	resp, err := svc.Generate(context.Background(), "reishi benefits")
	require.NoError(t, err)
	assert.Equal(t, "Reishi Benefits", resp.Title)
	assert.Equal(t, "On reishi.", resp.Content)
	assert.Equal(t, "data:image/jpeg;base64,AAAA", resp.ImageBase64)
}

func TestGenerateDegradesWhenImageFails(t *testing.T) {
	svc := NewBlogService(newFakeBlogRepo(),
		&fakeWriter{draft: &ai.Draft{Title: "T", Content: "C"}},
		&fakeFetcher{err: errors.New("pexels down")},
		testLogger())

	resp, err := svc.Generate(context.Background(), "reishi")
	require.NoError(t, err)
	assert.Empty(t, resp.ImageBase64)
}

func TestGenerateWithoutWriter(t *testing.T) {
	svc := NewBlogService(newFakeBlogRepo(), nil, &fakeFetcher{}, testLogger())

	_, err := svc.Generate(context.Background(), "reishi")
	assert.ErrorIs(t, err, ai.ErrNotConfigured)
}

func TestCreateDefaultsToDraft(t *testing.T) {
	svc := NewBlogService(newFakeBlogRepo(), nil, nil, testLogger())

	post, err := svc.Create(context.Background(), dto.BlogCreateRequest{Title: "T", Content: "C"})
	require.NoError(t, err)
	assert.NotEmpty(t, post.ID)
	assert.Equal(t, model.BlogStatusDraft, post.Status)
}

func TestListDefaultsToPublished(t *testing.T) {
	repo := newFakeBlogRepo(
		&model.BlogPost{ID: "b1", Status: model.BlogStatusPublished},
		&model.BlogPost{ID: "b2", Status: model.BlogStatusDraft},
	)
	svc := NewBlogService(repo, nil, nil, testLogger())

	published, err := svc.List(context.Background(), "")
	require.NoError(t, err)
	require.Len(t, published, 1)
	assert.Equal(t, "b1", published[0].ID)

	all, err := svc.List(context.Background(), "all")
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestUpdateRequiresFields(t *testing.T) {
	svc := NewBlogService(newFakeBlogRepo(&model.BlogPost{ID: "b1"}), nil, nil, testLogger())

	_, err := svc.Update(context.Background(), "b1", dto.BlogUpdateRequest{})
	assert.ErrorIs(t, err, ErrNoFields)
}

func TestPublish(t *testing.T) {
	repo := newFakeBlogRepo(&model.BlogPost{ID: "b1", Status: model.BlogStatusDraft})
	svc := NewBlogService(repo, nil, nil, testLogger())

	require.NoError(t, svc.Publish(context.Background(), "b1"))
	assert.Equal(t, model.BlogStatusPublished, repo.posts["b1"].Status)
}
