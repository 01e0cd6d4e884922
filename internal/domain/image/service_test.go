package image

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/photoproof/photoproof-api/internal/domain/tag"
	"github.com/photoproof/photoproof-api/internal/pkg/storage"
)

const (
	testStudioID  = "11111111-1111-1111-1111-111111111111"
	testProjectID = "22222222-2222-2222-2222-222222222222"
	testCatID     = "33333333-3333-3333-3333-333333333333"
	testImageID   = "44444444-4444-4444-4444-444444444444"
)

type repoStub struct {
	image      *Image
	lastFilter ListFilter
	updated    *Image
	// categoryOwners maps category id to owning project id
	categoryOwners map[string]string
}

func (r *repoStub) CreateWithVersion(context.Context, *Image, []*Version) error { return nil }
func (r *repoStub) GetByID(context.Context, string) (*Image, error)             { return nil, nil }
func (r *repoStub) GetByProjectAndID(_ context.Context, id, projectID string) (*Image, error) {
	if r.image != nil && r.image.ID == id && r.image.ProjectID == projectID {
		copied := *r.image
		return &copied, nil
	}
	return nil, nil
}
func (r *repoStub) FindByOriginalName(context.Context, string, *string, string) (*Image, error) {
	return nil, nil
}
func (r *repoStub) List(_ context.Context, _ string, filter ListFilter) ([]*Image, int, error) {
	r.lastFilter = filter
	return []*Image{}, 0, nil
}
func (r *repoStub) ListByProject(context.Context, string) ([]*Image, error) { return nil, nil }
func (r *repoStub) VersionsByImage(context.Context, string) ([]*Version, error) {
	return []*Version{}, nil
}
func (r *repoStub) SetSelected(context.Context, string, bool) error { return nil }
func (r *repoStub) SetFavorite(context.Context, string, bool) error { return nil }
func (r *repoStub) Update(_ context.Context, img *Image, _ *string) error {
	r.updated = img
	return nil
}
func (r *repoStub) Delete(context.Context, *Image) error { return nil }
func (r *repoStub) CategoryProject(_ context.Context, categoryID string) (string, error) {
	return r.categoryOwners[categoryID], nil
}
func (r *repoStub) ProjectStudioID(_ context.Context, projectID string) (string, error) {
	if projectID == testProjectID {
		return testStudioID, nil
	}
	return "", nil
}

type tagRepoStub struct {
	replaced []string
}

func (t *tagRepoStub) GetOrCreate(context.Context, string, string) (*tag.Tag, error) {
	return nil, nil
}
func (t *tagRepoStub) GetByName(context.Context, string, string) (*tag.Tag, error) {
	return nil, nil
}
func (t *tagRepoStub) ListByStudio(context.Context, string) ([]*tag.Tag, error) { return nil, nil }
func (t *tagRepoStub) NamesByImage(context.Context, string) ([]string, error) {
	return t.replaced, nil
}
func (t *tagRepoStub) Attach(context.Context, string, string) error             { return nil }
func (t *tagRepoStub) Detach(context.Context, string, string) error             { return nil }
func (t *tagRepoStub) IsAttached(context.Context, string, string) (bool, error) { return false, nil }
func (t *tagRepoStub) ReplaceImageTags(_ context.Context, _, _ string, names []string) error {
	t.replaced = names
	return nil
}

type storeStub struct{}

func (s *storeStub) Save(context.Context, string, io.Reader, string) (int64, error) { return 0, nil }
func (s *storeStub) Open(context.Context, string) (io.ReadCloser, error)           { return nil, nil }
func (s *storeStub) Delete(context.Context, string) error                          { return nil }
func (s *storeStub) Exists(context.Context, string) (bool, error)                  { return false, nil }
func (s *storeStub) Stat(context.Context, string) (*storage.FileInfo, error)       { return nil, nil }
func (s *storeStub) URL(key string) string                                         { return "/files/" + key }

func newTestService(repo *repoStub, tags *tagRepoStub) *Service {
	return NewService(repo, tags, &storeStub{}, 200)
}

func storedImage() *Image {
	catID := testCatID
	return &Image{
		ID:                 testImageID,
		ProjectID:          testProjectID,
		CategoryID:         &catID,
		OriginalFileName:   "wedding.jpg",
		StorageKeyOriginal: "projects/p/c/wedding.jpg",
		UploadedAt:         time.Now().UTC(),
	}
}

func TestListCapsPageSize(t *testing.T) {
	repo := &repoStub{}
	svc := newTestService(repo, &tagRepoStub{})

	_, _, err := svc.List(context.Background(), testStudioID, testProjectID, ListFilter{Limit: 10000, Offset: -5})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if repo.lastFilter.Limit != 200 {
		t.Fatalf("expected capped limit 200, got %d", repo.lastFilter.Limit)
	}
	if repo.lastFilter.Offset != 0 {
		t.Fatalf("expected clamped offset 0, got %d", repo.lastFilter.Offset)
	}
}

func TestListForeignStudio(t *testing.T) {
	svc := newTestService(&repoStub{}, &tagRepoStub{})

	_, _, err := svc.List(context.Background(), "55555555-5555-5555-5555-555555555555", testProjectID, ListFilter{})
	if !errors.Is(err, ErrProjectNotFound) {
		t.Fatalf("expected ErrProjectNotFound, got %v", err)
	}
}

func TestUpdateRejectsForeignCategory(t *testing.T) {
	repo := &repoStub{
		image:          storedImage(),
		categoryOwners: map[string]string{"other-cat": "another-project"},
	}
	svc := newTestService(repo, &tagRepoStub{})

	foreign := "other-cat"
	_, err := svc.Update(context.Background(), testStudioID, testProjectID, testImageID, &UpdateImageRequest{CategoryID: &foreign})
	if !errors.Is(err, ErrInvalidCategory) {
		t.Fatalf("expected ErrInvalidCategory, got %v", err)
	}
	if repo.updated != nil {
		t.Fatalf("rejected move must not persist")
	}
}

func TestUpdateMovesToOwnCategory(t *testing.T) {
	repo := &repoStub{
		image:          storedImage(),
		categoryOwners: map[string]string{"own-cat": testProjectID},
	}
	svc := newTestService(repo, &tagRepoStub{})

	target := "own-cat"
	detail, err := svc.Update(context.Background(), testStudioID, testProjectID, testImageID, &UpdateImageRequest{CategoryID: &target})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if detail.Image.CategoryID == nil || *detail.Image.CategoryID != "own-cat" {
		t.Fatalf("expected category own-cat, got %v", detail.Image.CategoryID)
	}
	if repo.updated == nil {
		t.Fatalf("move not persisted")
	}
}

func TestUpdateClearsCategory(t *testing.T) {
	repo := &repoStub{image: storedImage()}
	svc := newTestService(repo, &tagRepoStub{})

	empty := ""
	detail, err := svc.Update(context.Background(), testStudioID, testProjectID, testImageID, &UpdateImageRequest{CategoryID: &empty})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if detail.Image.CategoryID != nil {
		t.Fatalf("expected uncategorized image, got %v", *detail.Image.CategoryID)
	}
}

func TestUpdateRatingBounds(t *testing.T) {
	repo := &repoStub{image: storedImage()}
	svc := newTestService(repo, &tagRepoStub{})

	for _, rating := range []int{-1, 6} {
		r := rating
		_, err := svc.Update(context.Background(), testStudioID, testProjectID, testImageID, &UpdateImageRequest{Rating: &r})
		if !errors.Is(err, ErrInvalidRating) {
			t.Fatalf("rating %d: expected ErrInvalidRating, got %v", rating, err)
		}
	}

	five := 5
	detail, err := svc.Update(context.Background(), testStudioID, testProjectID, testImageID, &UpdateImageRequest{Rating: &five})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if detail.Image.Rating != 5 {
		t.Fatalf("expected rating 5, got %d", detail.Image.Rating)
	}
}

func TestUpdateReplacesTags(t *testing.T) {
	repo := &repoStub{image: storedImage()}
	tags := &tagRepoStub{}
	svc := newTestService(repo, tags)

	names := []string{"favorites", "print"}
	detail, err := svc.Update(context.Background(), testStudioID, testProjectID, testImageID, &UpdateImageRequest{Tags: &names})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(tags.replaced) != 2 {
		t.Fatalf("expected tag replacement, got %v", tags.replaced)
	}
	if len(detail.Tags) != 2 {
		t.Fatalf("expected tags in the detail view, got %v", detail.Tags)
	}
}

func TestGetUnknownImage(t *testing.T) {
	svc := newTestService(&repoStub{}, &tagRepoStub{})

	_, err := svc.Get(context.Background(), testStudioID, testProjectID, "missing")
	if !errors.Is(err, ErrImageNotFound) {
		t.Fatalf("expected ErrImageNotFound, got %v", err)
	}
}
