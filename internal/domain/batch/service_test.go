package batch

import (
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/photoproof/photoproof-api/internal/domain/comment"
	"github.com/photoproof/photoproof-api/internal/domain/image"
	"github.com/photoproof/photoproof-api/internal/domain/project"
	"github.com/photoproof/photoproof-api/internal/domain/tag"
)

const (
	testStudioID  = "11111111-1111-1111-1111-111111111111"
	testProjectID = "22222222-2222-2222-2222-222222222222"
	testImageID   = "44444444-4444-4444-4444-444444444444"
)

type imageRepoStub struct {
	selected  map[string]bool
	favorites map[string]bool
}

func (r *imageRepoStub) CreateWithVersion(context.Context, *image.Image, []*image.Version) error {
	return nil
}
func (r *imageRepoStub) GetByID(context.Context, string) (*image.Image, error) { return nil, nil }
func (r *imageRepoStub) GetByProjectAndID(_ context.Context, id, projectID string) (*image.Image, error) {
	if id == testImageID && projectID == testProjectID {
		return &image.Image{ID: testImageID, ProjectID: testProjectID}, nil
	}
	return nil, nil
}
func (r *imageRepoStub) FindByOriginalName(context.Context, string, *string, string) (*image.Image, error) {
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
func (r *imageRepoStub) SetSelected(_ context.Context, id string, selected bool) error {
	if r.selected == nil {
		r.selected = map[string]bool{}
	}
	r.selected[id] = selected
	return nil
}
func (r *imageRepoStub) SetFavorite(_ context.Context, id string, favorite bool) error {
	if r.favorites == nil {
		r.favorites = map[string]bool{}
	}
	r.favorites[id] = favorite
	return nil
}
func (r *imageRepoStub) Update(context.Context, *image.Image, *string) error { return nil }
func (r *imageRepoStub) Delete(context.Context, *image.Image) error          { return nil }
func (r *imageRepoStub) CategoryProject(context.Context, string) (string, error) {
	return "", nil
}
func (r *imageRepoStub) ProjectStudioID(context.Context, string) (string, error) {
	return testStudioID, nil
}

type commentRepoStub struct{ created []*comment.Comment }

func (r *commentRepoStub) Create(_ context.Context, c *comment.Comment) error {
	r.created = append(r.created, c)
	return nil
}
func (r *commentRepoStub) GetByID(context.Context, string) (*comment.Comment, error) {
	return nil, nil
}
func (r *commentRepoStub) ListByImage(context.Context, string) ([]*comment.Comment, error) {
	return nil, nil
}
func (r *commentRepoStub) SetResolved(context.Context, string, bool) error { return nil }
func (r *commentRepoStub) Delete(context.Context, string) error            { return nil }
func (r *commentRepoStub) ImageOwnership(context.Context, string) (string, string, error) {
	return testProjectID, testStudioID, nil
}

type tagRepoStub struct {
	attached map[string]bool
}

func (r *tagRepoStub) GetOrCreate(_ context.Context, studioID, name string) (*tag.Tag, error) {
	return &tag.Tag{ID: "tag-" + name, StudioID: studioID, Name: name}, nil
}
func (r *tagRepoStub) GetByName(context.Context, string, string) (*tag.Tag, error) {
	return nil, nil
}
func (r *tagRepoStub) ListByStudio(context.Context, string) ([]*tag.Tag, error) { return nil, nil }
func (r *tagRepoStub) NamesByImage(context.Context, string) ([]string, error)   { return nil, nil }
func (r *tagRepoStub) Attach(_ context.Context, imageID, tagID string) error {
	if r.attached == nil {
		r.attached = map[string]bool{}
	}
	r.attached[imageID+"/"+tagID] = true
	return nil
}
func (r *tagRepoStub) Detach(_ context.Context, imageID, tagID string) error {
	delete(r.attached, imageID+"/"+tagID)
	return nil
}
func (r *tagRepoStub) IsAttached(_ context.Context, imageID, tagID string) (bool, error) {
	return r.attached[imageID+"/"+tagID], nil
}
func (r *tagRepoStub) ReplaceImageTags(context.Context, string, string, []string) error {
	return nil
}

type projectRepoStub struct{}

func (r *projectRepoStub) Create(context.Context, *project.Project, *project.Settings, []string) error {
	return nil
}
func (r *projectRepoStub) GetByID(_ context.Context, id string) (*project.Project, error) {
	if id == testProjectID {
		return &project.Project{ID: testProjectID, StudioID: testStudioID}, nil
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

func newTestService() (*Service, *imageRepoStub, *commentRepoStub, *tagRepoStub) {
	images := &imageRepoStub{}
	comments := &commentRepoStub{}
	tags := &tagRepoStub{}
	svc := NewService(images, comments, tags, &projectRepoStub{})
	return svc, images, comments, tags
}

func selectAction(clientActionID string) Action {
	photoID, projectID := testImageID, testProjectID
	return Action{
		ClientActionID: clientActionID,
		ActionType:     ActionSelect,
		PhotoID:        &photoID,
		ProjectID:      &projectID,
	}
}

func TestProcessDuplicateClientActionID(t *testing.T) {
	svc, _, _, _ := newTestService()

	resp := svc.Process(context.Background(), testStudioID, &Request{
		Actions: []Action{selectAction("a-1"), selectAction("a-1")},
	})

	if len(resp.Accepted) != 1 || resp.Accepted[0] != "a-1" {
		t.Fatalf("expected accepted [a-1], got %v", resp.Accepted)
	}
	if len(resp.Failed) != 1 {
		t.Fatalf("expected 1 failure, got %d", len(resp.Failed))
	}
	if resp.Failed[0].Reason != "duplicate client_action_id in batch" {
		t.Fatalf("unexpected failure reason: %s", resp.Failed[0].Reason)
	}
	if resp.Metadata.ProcessedCount != 1 || resp.Metadata.TotalCount != 2 {
		t.Fatalf("unexpected metadata: %+v", resp.Metadata)
	}
}

func TestProcessPartialFailure(t *testing.T) {
	svc, images, _, _ := newTestService()

	missing := "99999999-9999-9999-9999-999999999999"
	projectID := testProjectID
	bad := Action{
		ClientActionID: "a-2",
		ActionType:     ActionSelect,
		PhotoID:        &missing,
		ProjectID:      &projectID,
	}

	good1 := selectAction("a-1")
	good1.Payload = map[string]interface{}{"selected": true}
	good3 := selectAction("a-3")
	good3.Payload = map[string]interface{}{"selected": true}

	resp := svc.Process(context.Background(), testStudioID, &Request{
		Actions: []Action{good1, bad, good3},
	})

	if len(resp.Accepted) != 2 || resp.Accepted[0] != "a-1" || resp.Accepted[1] != "a-3" {
		t.Fatalf("expected accepted [a-1 a-3], got %v", resp.Accepted)
	}
	if len(resp.Failed) != 1 || resp.Failed[0].ClientActionID != "a-2" {
		t.Fatalf("expected a-2 to fail, got %+v", resp.Failed)
	}
	if resp.Metadata.ProcessedCount != 2 || resp.Metadata.TotalCount != 3 {
		t.Fatalf("unexpected metadata: %+v", resp.Metadata)
	}
	if !images.selected[testImageID] {
		t.Fatalf("accepted select did not flag the image")
	}
}

func TestProcessResponseWireFormat(t *testing.T) {
	svc, _, _, _ := newTestService()

	missing := "99999999-9999-9999-9999-999999999999"
	projectID := testProjectID
	bad := Action{
		ClientActionID: "a-2",
		ActionType:     ActionSelect,
		PhotoID:        &missing,
		ProjectID:      &projectID,
	}

	resp := svc.Process(context.Background(), testStudioID, &Request{
		Actions: []Action{selectAction("a-1"), bad, selectAction("a-3")},
	})

	data, err := json.Marshal(resp)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	body := string(data)
	if !strings.Contains(body, `"accepted":["a-1","a-3"]`) {
		t.Fatalf("accepted must serialize as an id list, got %s", body)
	}
	if !strings.Contains(body, `"processed_count":2`) || !strings.Contains(body, `"total_count":3`) {
		t.Fatalf("unexpected metadata serialization: %s", body)
	}
}

func TestProcessSelectMissingPayloadClears(t *testing.T) {
	svc, images, _, _ := newTestService()
	images.selected = map[string]bool{testImageID: true}

	resp := svc.Process(context.Background(), testStudioID, &Request{Actions: []Action{selectAction("a-1")}})
	if len(resp.Accepted) != 1 {
		t.Fatalf("expected acceptance, failures: %+v", resp.Failed)
	}
	if images.selected[testImageID] {
		t.Fatalf("select without payload must clear the flag")
	}
}

func TestProcessCommentRequiresText(t *testing.T) {
	svc, _, comments, _ := newTestService()

	action := selectAction("a-1")
	action.ActionType = ActionComment
	action.Payload = map[string]interface{}{"commentText": "   "}

	resp := svc.Process(context.Background(), testStudioID, &Request{Actions: []Action{action}})
	if len(resp.Accepted) != 0 || len(resp.Failed) != 1 {
		t.Fatalf("blank comment must fail, got %+v", resp)
	}
	if len(comments.created) != 0 {
		t.Fatalf("blank comment must not be stored")
	}
}

func TestProcessCommentUsesClientTimestamp(t *testing.T) {
	svc, _, comments, _ := newTestService()

	when := time.Date(2026, 3, 14, 10, 30, 0, 0, time.UTC)
	action := selectAction("a-1")
	action.ActionType = ActionComment
	action.Timestamp = &when
	action.Payload = map[string]interface{}{"commentText": "love this one"}

	resp := svc.Process(context.Background(), testStudioID, &Request{Actions: []Action{action}})
	if len(resp.Accepted) != 1 {
		t.Fatalf("expected acceptance, failures: %+v", resp.Failed)
	}
	if len(comments.created) != 1 {
		t.Fatalf("expected one stored comment, got %d", len(comments.created))
	}
	c := comments.created[0]
	if c.Body != "love this one" || c.AuthorType != comment.AuthorClient {
		t.Fatalf("unexpected comment: %+v", c)
	}
	if c.AuthorName != "Client" {
		t.Fatalf("expected default author name, got %s", c.AuthorName)
	}
	if !c.CreatedAt.Equal(when) {
		t.Fatalf("expected client timestamp %v, got %v", when, c.CreatedAt)
	}
}

func TestProcessApproveAttachesAndDetaches(t *testing.T) {
	svc, _, _, tags := newTestService()

	approve := selectAction("a-1")
	approve.ActionType = ActionApprove
	approve.Payload = map[string]interface{}{"approved": true}

	resp := svc.Process(context.Background(), testStudioID, &Request{Actions: []Action{approve}})
	if len(resp.Accepted) != 1 {
		t.Fatalf("expected acceptance, failures: %+v", resp.Failed)
	}
	key := testImageID + "/tag-" + tag.ApprovedTagName
	if !tags.attached[key] {
		t.Fatalf("approve did not attach the approved tag")
	}

	// A bare approve reads approved as false and revokes
	revoke := selectAction("a-2")
	revoke.ActionType = ActionApprove

	resp = svc.Process(context.Background(), testStudioID, &Request{Actions: []Action{revoke}})
	if len(resp.Accepted) != 1 {
		t.Fatalf("expected acceptance, failures: %+v", resp.Failed)
	}
	if tags.attached[key] {
		t.Fatalf("approve without payload did not detach the tag")
	}
}

func TestProcessUnknownActionType(t *testing.T) {
	svc, _, _, _ := newTestService()

	action := selectAction("a-1")
	action.ActionType = "rotate"

	resp := svc.Process(context.Background(), testStudioID, &Request{Actions: []Action{action}})
	if len(resp.Accepted) != 0 || len(resp.Failed) != 1 {
		t.Fatalf("unknown action must fail, got %+v", resp)
	}
}

func TestProcessDownloadAlwaysSucceeds(t *testing.T) {
	svc, _, _, _ := newTestService()

	action := selectAction("a-1")
	action.ActionType = ActionDownload

	resp := svc.Process(context.Background(), testStudioID, &Request{Actions: []Action{action}})
	if len(resp.Accepted) != 1 || len(resp.Failed) != 0 {
		t.Fatalf("download must be accepted, got %+v", resp)
	}
}

func TestProcessForeignStudioProject(t *testing.T) {
	svc, _, _, _ := newTestService()

	resp := svc.Process(context.Background(), "55555555-5555-5555-5555-555555555555", &Request{
		Actions: []Action{selectAction("a-1")},
	})
	if len(resp.Accepted) != 0 || len(resp.Failed) != 1 {
		t.Fatalf("foreign studio must not touch the project, got %+v", resp)
	}
}
