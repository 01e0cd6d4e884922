package upload

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/photoproof/photoproof-api/internal/domain/category"
	"github.com/photoproof/photoproof-api/internal/domain/image"
	"github.com/photoproof/photoproof-api/internal/domain/project"
	"github.com/photoproof/photoproof-api/internal/domain/tag"
	"github.com/photoproof/photoproof-api/internal/pkg/storage"
)

const (
	testStudioID  = "11111111-1111-1111-1111-111111111111"
	testProjectID = "22222222-2222-2222-2222-222222222222"
	testCatID     = "33333333-3333-3333-3333-333333333333"
)

type projectRepoStub struct{ project *project.Project }

func (r *projectRepoStub) Create(context.Context, *project.Project, *project.Settings, []string) error {
	return nil
}
func (r *projectRepoStub) GetByID(_ context.Context, id string) (*project.Project, error) {
	if r.project != nil && r.project.ID == id {
		return r.project, nil
	}
	return nil, nil
}
func (r *projectRepoStub) GetByAccessURL(context.Context, string) (*project.Project, error) {
	return nil, nil
}
func (r *projectRepoStub) List(context.Context, string, project.ListFilter) ([]*project.Project, int, error) {
	return nil, 0, nil
}
func (r *projectRepoStub) Update(context.Context, *project.Project) error { return nil }
func (r *projectRepoStub) Delete(context.Context, *project.Project) error { return nil }
func (r *projectRepoStub) GetSettings(context.Context, string) (*project.Settings, error) {
	return nil, nil
}
func (r *projectRepoStub) UpdateSettings(context.Context, *project.Settings) error { return nil }

type categoryRepoStub struct{ categories []*category.Category }

func (r *categoryRepoStub) Create(context.Context, *category.Category) error { return nil }
func (r *categoryRepoStub) GetByID(_ context.Context, id string) (*category.Category, error) {
	for _, c := range r.categories {
		if c.ID == id {
			return c, nil
		}
	}
	return nil, nil
}
func (r *categoryRepoStub) GetByName(context.Context, string, string) (*category.Category, error) {
	return nil, nil
}
func (r *categoryRepoStub) ListByProject(context.Context, string) ([]*category.Category, error) {
	return r.categories, nil
}
func (r *categoryRepoStub) DefaultForProject(context.Context, string) (*category.Category, error) {
	if len(r.categories) == 0 {
		return nil, nil
	}
	return r.categories[0], nil
}
func (r *categoryRepoStub) Update(context.Context, *category.Category) error { return nil }
func (r *categoryRepoStub) Delete(context.Context, string) error             { return nil }
func (r *categoryRepoStub) ProjectStudioID(context.Context, string) (string, error) {
	return testStudioID, nil
}
func (r *categoryRepoStub) Recount(context.Context, string) error { return nil }

type imageRepoStub struct{ created []*image.Image }

func (r *imageRepoStub) CreateWithVersion(_ context.Context, img *image.Image, _ []*image.Version) error {
	r.created = append(r.created, img)
	return nil
}
func (r *imageRepoStub) GetByID(context.Context, string) (*image.Image, error) { return nil, nil }
func (r *imageRepoStub) GetByProjectAndID(context.Context, string, string) (*image.Image, error) {
	return nil, nil
}
func (r *imageRepoStub) FindByOriginalName(_ context.Context, projectID string, categoryID *string, name string) (*image.Image, error) {
	for _, img := range r.created {
		if img.ProjectID != projectID || img.OriginalFileName != name {
			continue
		}
		if (img.CategoryID == nil) != (categoryID == nil) {
			continue
		}
		if img.CategoryID != nil && *img.CategoryID != *categoryID {
			continue
		}
		return img, nil
	}
	return nil, nil
}
func (r *imageRepoStub) List(context.Context, string, image.ListFilter) ([]*image.Image, int, error) {
	return nil, 0, nil
}
func (r *imageRepoStub) ListByProject(context.Context, string) ([]*image.Image, error) {
	return nil, nil
}
func (r *imageRepoStub) VersionsByImage(context.Context, string) ([]*image.Version, error) {
	return nil, nil
}
func (r *imageRepoStub) SetSelected(context.Context, string, bool) error { return nil }
func (r *imageRepoStub) SetFavorite(context.Context, string, bool) error { return nil }
func (r *imageRepoStub) Update(context.Context, *image.Image, *string) error {
	return nil
}
func (r *imageRepoStub) Delete(context.Context, *image.Image) error { return nil }
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
func (t *tagRepoStub) IsAttached(context.Context, string, string) (bool, error) {
	return false, nil
}
func (t *tagRepoStub) ReplaceImageTags(context.Context, string, string, []string) error {
	return nil
}

type memStore struct{ files map[string][]byte }

func newMemStore() *memStore { return &memStore{files: map[string][]byte{}} }

func (m *memStore) Save(_ context.Context, key string, reader io.Reader, _ string) (int64, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return 0, err
	}
	m.files[key] = data
	return int64(len(data)), nil
}
func (m *memStore) Open(_ context.Context, key string) (io.ReadCloser, error) {
	data, ok := m.files[key]
	if !ok {
		return nil, errors.New("not found")
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}
func (m *memStore) Delete(_ context.Context, key string) error {
	delete(m.files, key)
	return nil
}
func (m *memStore) Exists(_ context.Context, key string) (bool, error) {
	_, ok := m.files[key]
	return ok, nil
}
func (m *memStore) Stat(_ context.Context, key string) (*storage.FileInfo, error) {
	data, ok := m.files[key]
	if !ok {
		return nil, errors.New("not found")
	}
	return &storage.FileInfo{Key: key, Size: int64(len(data))}, nil
}
func (m *memStore) URL(key string) string { return "/files/" + key }

func newTestService(store *memStore) (*Service, *imageRepoStub) {
	projects := &projectRepoStub{project: &project.Project{ID: testProjectID, StudioID: testStudioID}}
	categories := &categoryRepoStub{categories: []*category.Category{
		{ID: testCatID, ProjectID: testProjectID, Name: category.DefaultCategoryName},
	}}
	images := &imageRepoStub{}
	views := image.NewService(images, &tagRepoStub{}, store, 200)
	return NewService(projects, categories, images, views, store, nil), images
}

func validJPEG() []byte {
	data := make([]byte, 4096)
	copy(data, []byte{0xFF, 0xD8, 0xFF, 0xE0})
	for i := 4; i < len(data); i++ {
		data[i] = byte(i * 13 % 256)
	}
	return data
}

func TestInitiateDeterministicUploadID(t *testing.T) {
	svc, _ := newTestService(newMemStore())

	req := &InitiateRequest{
		ProjectID: testProjectID,
		Files:     []InitiateFile{{FileName: "wedding-001.jpg", FileSize: 4096}},
	}

	first, err := svc.Initiate(context.Background(), testStudioID, req)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	second, err := svc.Initiate(context.Background(), testStudioID, req)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	if len(first.UploadURLs) != 1 || len(second.UploadURLs) != 1 {
		t.Fatalf("expected one target per request")
	}
	if first.UploadURLs[0].UploadID != second.UploadURLs[0].UploadID {
		t.Fatalf("upload id not deterministic: %s vs %s",
			first.UploadURLs[0].UploadID, second.UploadURLs[0].UploadID)
	}
	if first.UploadURLs[0].CategoryID == nil || *first.UploadURLs[0].CategoryID != testCatID {
		t.Fatalf("expected default category %s, got %v", testCatID, first.UploadURLs[0].CategoryID)
	}
}

func TestInitiateRejectsForeignCategory(t *testing.T) {
	svc, _ := newTestService(newMemStore())

	foreign := "99999999-9999-9999-9999-999999999999"
	req := &InitiateRequest{
		ProjectID: testProjectID,
		Files:     []InitiateFile{{FileName: "a.jpg", CategoryID: &foreign}},
	}

	if _, err := svc.Initiate(context.Background(), testStudioID, req); !errors.Is(err, ErrInvalidCategory) {
		t.Fatalf("expected ErrInvalidCategory, got %v", err)
	}
}

func TestStreamRejectsEmptyBody(t *testing.T) {
	store := newMemStore()
	svc, _ := newTestService(store)

	err := svc.Stream(context.Background(), testStudioID, testProjectID, testCatID, "a.jpg", strings.NewReader(""))
	if !errors.Is(err, ErrEmptyUpload) {
		t.Fatalf("expected ErrEmptyUpload, got %v", err)
	}
	if len(store.files) != 0 {
		t.Fatalf("empty upload left %d files behind", len(store.files))
	}
}

func TestStreamSanitizesFileName(t *testing.T) {
	store := newMemStore()
	svc, _ := newTestService(store)

	err := svc.Stream(context.Background(), testStudioID, testProjectID, testCatID,
		"../../etc/passwd", bytes.NewReader(validJPEG()))
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	want := fmt.Sprintf("projects/%s/%s/passwd", testProjectID, testCatID)
	if _, ok := store.files[want]; !ok {
		t.Fatalf("expected sanitized key %s, have %v", want, keysOf(store.files))
	}
}

func TestCompleteRejectsCorruptImageAndDeletesFile(t *testing.T) {
	store := newMemStore()
	svc, images := newTestService(store)

	body := strings.Repeat("this image does not exist ", 10)
	if err := svc.Stream(context.Background(), testStudioID, testProjectID, testCatID, "fake.jpg", strings.NewReader(body)); err != nil {
		t.Fatalf("stream failed: %v", err)
	}

	_, err := svc.Complete(context.Background(), testStudioID, &CompleteRequest{
		ProjectID:        testProjectID,
		CategoryID:       strPtr(testCatID),
		FileName:         "fake.jpg",
		OriginalFileName: "fake.jpg",
	})
	if !errors.Is(err, ErrCorruptImage) {
		t.Fatalf("expected ErrCorruptImage, got %v", err)
	}
	if len(store.files) != 0 {
		t.Fatalf("corrupted file not deleted from storage")
	}
	if len(images.created) != 0 {
		t.Fatalf("corrupted upload must not create an image record")
	}
}

func TestCompleteMissingFile(t *testing.T) {
	svc, _ := newTestService(newMemStore())

	_, err := svc.Complete(context.Background(), testStudioID, &CompleteRequest{
		ProjectID:        testProjectID,
		CategoryID:       strPtr(testCatID),
		FileName:         "never-streamed.jpg",
		OriginalFileName: "never-streamed.jpg",
	})
	if !errors.Is(err, ErrFileNotStreamed) {
		t.Fatalf("expected ErrFileNotStreamed, got %v", err)
	}
}

func TestCompleteIsIdempotent(t *testing.T) {
	store := newMemStore()
	svc, images := newTestService(store)

	if err := svc.Stream(context.Background(), testStudioID, testProjectID, testCatID, "wedding.jpg", bytes.NewReader(validJPEG())); err != nil {
		t.Fatalf("stream failed: %v", err)
	}

	req := &CompleteRequest{
		ProjectID:        testProjectID,
		CategoryID:       strPtr(testCatID),
		FileName:         "wedding.jpg",
		OriginalFileName: "wedding.jpg",
	}

	first, err := svc.Complete(context.Background(), testStudioID, req)
	if err != nil {
		t.Fatalf("first complete failed: %v", err)
	}
	if first.AlreadyExists {
		t.Fatalf("first complete must not report alreadyExists")
	}

	second, err := svc.Complete(context.Background(), testStudioID, req)
	if err != nil {
		t.Fatalf("second complete failed: %v", err)
	}
	if !second.AlreadyExists {
		t.Fatalf("second complete must report alreadyExists")
	}
	if second.Image.ID != first.Image.ID {
		t.Fatalf("idempotent complete returned a different image")
	}
	if len(images.created) != 1 {
		t.Fatalf("expected exactly one image record, got %d", len(images.created))
	}
}

func TestCompleteRecordsSizeAndContentType(t *testing.T) {
	store := newMemStore()
	svc, _ := newTestService(store)

	payload := validJPEG()
	if err := svc.Stream(context.Background(), testStudioID, testProjectID, testCatID, "shot.jpg", bytes.NewReader(payload)); err != nil {
		t.Fatalf("stream failed: %v", err)
	}

	resp, err := svc.Complete(context.Background(), testStudioID, &CompleteRequest{
		ProjectID:        testProjectID,
		CategoryID:       strPtr(testCatID),
		FileName:         "shot.jpg",
		OriginalFileName: "shot.jpg",
		FileSize:         1, // declared size is advisory, actual bytes win
	})
	if err != nil {
		t.Fatalf("complete failed: %v", err)
	}
	if resp.Image.FileSizeBytes != int64(len(payload)) {
		t.Fatalf("expected actual size %d, got %d", len(payload), resp.Image.FileSizeBytes)
	}
	if resp.Image.ContentType != "image/jpeg" {
		t.Fatalf("expected image/jpeg, got %s", resp.Image.ContentType)
	}
}

func strPtr(s string) *string { return &s }

func keysOf(m map[string][]byte) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	return keys
}
