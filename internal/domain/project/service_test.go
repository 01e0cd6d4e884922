package project

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/photoproof/photoproof-api/internal/domain/category"
	"github.com/photoproof/photoproof-api/internal/domain/client"
	"github.com/photoproof/photoproof-api/internal/domain/image"
	"github.com/photoproof/photoproof-api/internal/domain/tag"
	"github.com/photoproof/photoproof-api/internal/pkg/storage"
)

const (
	testStudioID = "11111111-1111-1111-1111-111111111111"
	testClientID = "66666666-6666-6666-6666-666666666666"
)

type repoStub struct {
	projects   []*Project
	settings   map[string]*Settings
	categories []string
}

func (r *repoStub) Create(_ context.Context, p *Project, s *Settings, categoryNames []string) error {
	r.projects = append(r.projects, p)
	if r.settings == nil {
		r.settings = map[string]*Settings{}
	}
	r.settings[p.ID] = s
	r.categories = categoryNames
	return nil
}
func (r *repoStub) GetByID(_ context.Context, id string) (*Project, error) {
	for _, p := range r.projects {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, nil
}
func (r *repoStub) GetByAccessURL(_ context.Context, accessURL string) (*Project, error) {
	for _, p := range r.projects {
		if p.AccessURL == accessURL {
			return p, nil
		}
	}
	return nil, nil
}
func (r *repoStub) List(context.Context, string, ListFilter) ([]*Project, int, error) {
	return r.projects, len(r.projects), nil
}
func (r *repoStub) Update(context.Context, *Project) error { return nil }
func (r *repoStub) Delete(context.Context, *Project) error { return nil }
func (r *repoStub) GetSettings(_ context.Context, projectID string) (*Settings, error) {
	return r.settings[projectID], nil
}
func (r *repoStub) UpdateSettings(context.Context, *Settings) error { return nil }

type clientRepoStub struct{ client *client.Client }

func (r *clientRepoStub) Create(context.Context, *client.Client) error { return nil }
func (r *clientRepoStub) GetByID(_ context.Context, id string) (*client.Client, error) {
	if r.client != nil && r.client.ID == id {
		return r.client, nil
	}
	return nil, nil
}
func (r *clientRepoStub) GetByStudioAndEmail(context.Context, string, string) (*client.Client, error) {
	return nil, nil
}
func (r *clientRepoStub) List(context.Context, string, client.ListFilter) ([]*client.Client, int, error) {
	return nil, 0, nil
}
func (r *clientRepoStub) Update(context.Context, *client.Client) error  { return nil }
func (r *clientRepoStub) Delete(context.Context, string) error          { return nil }
func (r *clientRepoStub) RecountProjects(context.Context, string) error { return nil }

type categoryRepoStub struct{}

func (r *categoryRepoStub) Create(context.Context, *category.Category) error { return nil }
func (r *categoryRepoStub) GetByID(context.Context, string) (*category.Category, error) {
	return nil, nil
}
func (r *categoryRepoStub) GetByName(context.Context, string, string) (*category.Category, error) {
	return nil, nil
}
func (r *categoryRepoStub) ListByProject(context.Context, string) ([]*category.Category, error) {
	return []*category.Category{}, nil
}
func (r *categoryRepoStub) DefaultForProject(context.Context, string) (*category.Category, error) {
	return nil, nil
}
func (r *categoryRepoStub) Update(context.Context, *category.Category) error { return nil }
func (r *categoryRepoStub) Delete(context.Context, string) error             { return nil }
func (r *categoryRepoStub) ProjectStudioID(context.Context, string) (string, error) {
	return testStudioID, nil
}
func (r *categoryRepoStub) Recount(context.Context, string) error { return nil }

type imageRepoStub struct{}

func (r *imageRepoStub) CreateWithVersion(context.Context, *image.Image, []*image.Version) error {
	return nil
}
func (r *imageRepoStub) GetByID(context.Context, string) (*image.Image, error) { return nil, nil }
func (r *imageRepoStub) GetByProjectAndID(context.Context, string, string) (*image.Image, error) {
	return nil, nil
}
func (r *imageRepoStub) FindByOriginalName(context.Context, string, *string, string) (*image.Image, error) {
	return nil, nil
}
func (r *imageRepoStub) List(context.Context, string, image.ListFilter) ([]*image.Image, int, error) {
	return nil, 0, nil
}
func (r *imageRepoStub) ListByProject(context.Context, string) ([]*image.Image, error) {
	return []*image.Image{}, nil
}
func (r *imageRepoStub) VersionsByImage(context.Context, string) ([]*image.Version, error) {
	return nil, nil
}
func (r *imageRepoStub) SetSelected(context.Context, string, bool) error     { return nil }
func (r *imageRepoStub) SetFavorite(context.Context, string, bool) error     { return nil }
func (r *imageRepoStub) Update(context.Context, *image.Image, *string) error { return nil }
func (r *imageRepoStub) Delete(context.Context, *image.Image) error          { return nil }
func (r *imageRepoStub) CategoryProject(context.Context, string) (string, error) {
	return "", nil
}
func (r *imageRepoStub) ProjectStudioID(context.Context, string) (string, error) {
	return testStudioID, nil
}

type tagRepoStub struct{}

func (t *tagRepoStub) GetOrCreate(context.Context, string, string) (*tag.Tag, error) {
	return nil, nil
}
func (t *tagRepoStub) GetByName(context.Context, string, string) (*tag.Tag, error) {
	return nil, nil
}
func (t *tagRepoStub) ListByStudio(context.Context, string) ([]*tag.Tag, error) { return nil, nil }
func (t *tagRepoStub) NamesByImage(context.Context, string) ([]string, error)   { return nil, nil }
func (t *tagRepoStub) Attach(context.Context, string, string) error             { return nil }
func (t *tagRepoStub) Detach(context.Context, string, string) error             { return nil }
func (t *tagRepoStub) IsAttached(context.Context, string, string) (bool, error) { return false, nil }
func (t *tagRepoStub) ReplaceImageTags(context.Context, string, string, []string) error {
	return nil
}

type storeStub struct{}

func (s *storeStub) Save(context.Context, string, io.Reader, string) (int64, error) { return 0, nil }
func (s *storeStub) Open(context.Context, string) (io.ReadCloser, error)           { return nil, nil }
func (s *storeStub) Delete(context.Context, string) error                          { return nil }
func (s *storeStub) Exists(context.Context, string) (bool, error)                  { return false, nil }
func (s *storeStub) Stat(context.Context, string) (*storage.FileInfo, error)       { return nil, nil }
func (s *storeStub) URL(key string) string                                         { return "/files/" + key }

func newTestService(repo *repoStub, clients *clientRepoStub) *Service {
	images := image.NewService(&imageRepoStub{}, &tagRepoStub{}, &storeStub{}, 200)
	return NewService(repo, clients, &categoryRepoStub{}, images)
}

func ownedClient() *client.Client {
	return &client.Client{ID: testClientID, StudioID: testStudioID, FullName: "Ada Example"}
}

func TestCreateSetsDefaults(t *testing.T) {
	repo := &repoStub{}
	svc := newTestService(repo, &clientRepoStub{client: ownedClient()})

	p, err := svc.Create(context.Background(), testStudioID, &CreateProjectRequest{
		Name:     "Spring Wedding",
		ClientID: testClientID,
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if p.Status != StatusDraft {
		t.Fatalf("expected draft status, got %s", p.Status)
	}
	if p.AccessURL == "" {
		t.Fatalf("expected generated access url")
	}
	if len(repo.categories) != 1 || repo.categories[0] != category.DefaultCategoryName {
		t.Fatalf("expected starter category %q, got %v", category.DefaultCategoryName, repo.categories)
	}
	settings := repo.settings[p.ID]
	if settings == nil || !settings.AllowDownloads || !settings.AllowComments || !settings.AllowFavorites {
		t.Fatalf("expected permissive default settings, got %+v", settings)
	}
}

func TestCreateAccessURLsAreUnique(t *testing.T) {
	repo := &repoStub{}
	svc := newTestService(repo, &clientRepoStub{client: ownedClient()})

	req := &CreateProjectRequest{Name: "Shoot", ClientID: testClientID}
	first, err := svc.Create(context.Background(), testStudioID, req)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	second, err := svc.Create(context.Background(), testStudioID, req)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if first.AccessURL == second.AccessURL {
		t.Fatalf("access urls must differ")
	}
}

func TestCreateForeignClient(t *testing.T) {
	foreign := ownedClient()
	foreign.StudioID = "55555555-5555-5555-5555-555555555555"
	svc := newTestService(&repoStub{}, &clientRepoStub{client: foreign})

	_, err := svc.Create(context.Background(), testStudioID, &CreateProjectRequest{
		Name:     "Shoot",
		ClientID: testClientID,
	})
	if !errors.Is(err, ErrClientNotFound) {
		t.Fatalf("expected ErrClientNotFound, got %v", err)
	}
}

func TestGetByAccessURLExpired(t *testing.T) {
	past := time.Now().Add(-time.Hour)
	repo := &repoStub{projects: []*Project{{
		ID:        "p-1",
		StudioID:  testStudioID,
		ClientID:  testClientID,
		AccessURL: "abc123",
		ExpiresAt: &past,
	}}}
	svc := newTestService(repo, &clientRepoStub{client: ownedClient()})

	_, err := svc.GetByAccessURL(context.Background(), "abc123")
	if !errors.Is(err, ErrGalleryExpired) {
		t.Fatalf("expected ErrGalleryExpired, got %v", err)
	}
}

func TestGetByAccessURLUnknown(t *testing.T) {
	svc := newTestService(&repoStub{}, &clientRepoStub{client: ownedClient()})

	_, err := svc.GetByAccessURL(context.Background(), "missing")
	if !errors.Is(err, ErrProjectNotFound) {
		t.Fatalf("expected ErrProjectNotFound, got %v", err)
	}
}

func TestGetByAccessURLLive(t *testing.T) {
	future := time.Now().Add(24 * time.Hour)
	repo := &repoStub{
		projects: []*Project{{
			ID:        "p-1",
			StudioID:  testStudioID,
			ClientID:  testClientID,
			AccessURL: "abc123",
			ExpiresAt: &future,
		}},
		settings: map[string]*Settings{"p-1": {ProjectID: "p-1", AllowDownloads: true}},
	}
	svc := newTestService(repo, &clientRepoStub{client: ownedClient()})

	detail, err := svc.GetByAccessURL(context.Background(), "abc123")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if detail.Client == nil || detail.Client.ID != testClientID {
		t.Fatalf("expected client in gallery view, got %+v", detail.Client)
	}
}

func TestGetForeignStudio(t *testing.T) {
	repo := &repoStub{projects: []*Project{{ID: "p-1", StudioID: testStudioID, ClientID: testClientID}}}
	svc := newTestService(repo, &clientRepoStub{client: ownedClient()})

	_, err := svc.Get(context.Background(), "55555555-5555-5555-5555-555555555555", "p-1")
	if !errors.Is(err, ErrProjectNotFound) {
		t.Fatalf("expected ErrProjectNotFound, got %v", err)
	}
}
