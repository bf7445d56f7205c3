package publish

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/matzehuels/contribwall/pkg/integrations/github"
)

const annotation = `<!-- {"contributors":["alice","bob"],"bots":[],"collaborators":[]} -->`

type memStore struct {
	docs   map[string]string
	writes int
}

func newMemStore() *memStore {
	return &memStore{docs: make(map[string]string)}
}

func (s *memStore) Read(_ context.Context, path string) (string, bool, error) {
	content, ok := s.docs[path]
	return content, ok, nil
}

func (s *memStore) Write(_ context.Context, path, content, _ string) error {
	s.docs[path] = content
	s.writes++
	return nil
}

func TestGateCreateThenUnchanged(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	gate := NewGate(store)
	content := annotation + "\n<svg></svg>"

	prior, err := gate.Check(ctx, "wall.svg", annotation)
	if err != nil {
		t.Fatalf("Check: %v", err)
	}
	if prior.Exists || prior.Unchanged {
		t.Fatalf("prior = %+v, want zero", prior)
	}

	outcome, err := gate.Publish(ctx, "wall.svg", content, "chore: update wall", prior)
	if err != nil {
		t.Fatalf("Publish: %v", err)
	}
	if outcome != OutcomeCreated {
		t.Fatalf("outcome = %q, want created", outcome)
	}

	// Same fingerprint again: the gate must short-circuit before any write.
	prior, err = gate.Check(ctx, "wall.svg", annotation)
	if err != nil {
		t.Fatalf("Check: %v", err)
	}
	if !prior.Exists || !prior.Unchanged {
		t.Fatalf("prior = %+v, want exists and unchanged", prior)
	}
	outcome, err = gate.Publish(ctx, "wall.svg", content, "chore: update wall", prior)
	if err != nil {
		t.Fatalf("Publish: %v", err)
	}
	if outcome != OutcomeUnchanged {
		t.Fatalf("outcome = %q, want unchanged", outcome)
	}
	if store.writes != 1 {
		t.Fatalf("writes = %d, want 1", store.writes)
	}
}

func TestGateUpdatesOnNewFingerprint(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	store.docs["wall.svg"] = annotation + "\n<svg>old</svg>"
	gate := NewGate(store)

	next := `<!-- {"contributors":["alice","bob","carol"],"bots":[],"collaborators":[]} -->`
	prior, err := gate.Check(ctx, "wall.svg", next)
	if err != nil {
		t.Fatalf("Check: %v", err)
	}
	if !prior.Exists || prior.Unchanged {
		t.Fatalf("prior = %+v, want exists and changed", prior)
	}

	outcome, err := gate.Publish(ctx, "wall.svg", next+"\n<svg>new</svg>", "chore: update wall", prior)
	if err != nil {
		t.Fatalf("Publish: %v", err)
	}
	if outcome != OutcomeUpdated {
		t.Fatalf("outcome = %q, want updated", outcome)
	}
	if store.docs["wall.svg"] != next+"\n<svg>new</svg>" {
		t.Fatal("stored document was not replaced")
	}
}

func TestFileStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewFileStore()
	path := filepath.Join(t.TempDir(), "out", "wall.svg")

	if _, found, err := store.Read(ctx, path); err != nil || found {
		t.Fatalf("Read missing = (%v, %v), want (false, nil)", found, err)
	}
	if err := store.Write(ctx, path, "<svg/>", "ignored"); err != nil {
		t.Fatalf("Write: %v", err)
	}
	content, found, err := store.Read(ctx, path)
	if err != nil || !found {
		t.Fatalf("Read = (%v, %v)", found, err)
	}
	if content != "<svg/>" {
		t.Fatalf("content = %q", content)
	}
	if _, err := os.Stat(filepath.Dir(path)); err != nil {
		t.Fatalf("parent dir not created: %v", err)
	}
}

func TestRepoStoreCarriesSHAIntoWrite(t *testing.T) {
	ctx := context.Background()
	var gotPut map[string]string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/repos/octo/widgets/contents/wall.svg" {
			t.Errorf("path = %q", r.URL.Path)
		}
		switch r.Method {
		case http.MethodGet:
			fmt.Fprintf(w, `{"path":"wall.svg","sha":"abc123","content":%q,"encoding":"base64"}`,
				base64.StdEncoding.EncodeToString([]byte("<svg>old</svg>")))
		case http.MethodPut:
			if err := json.NewDecoder(r.Body).Decode(&gotPut); err != nil {
				t.Errorf("decode put body: %v", err)
			}
			w.Write([]byte(`{}`))
		default:
			t.Errorf("method = %q", r.Method)
		}
	}))
	defer srv.Close()

	client := github.NewClient("test-token", nil, 0)
	client.SetBaseURL(srv.URL)
	store := NewRepoStore(client, "octo", "widgets")

	content, found, err := store.Read(ctx, "wall.svg")
	if err != nil || !found {
		t.Fatalf("Read = (%v, %v)", found, err)
	}
	if content != "<svg>old</svg>" {
		t.Fatalf("content = %q", content)
	}

	if err := store.Write(ctx, "wall.svg", "<svg>new</svg>", "chore: update wall"); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if gotPut["sha"] != "abc123" {
		t.Errorf("put sha = %q, want abc123", gotPut["sha"])
	}
	if gotPut["message"] != "chore: update wall" {
		t.Errorf("put message = %q", gotPut["message"])
	}
	if decoded, _ := base64.StdEncoding.DecodeString(gotPut["content"]); string(decoded) != "<svg>new</svg>" {
		t.Errorf("put content = %q", decoded)
	}
}

func TestRepoStoreCreateOmitsSHA(t *testing.T) {
	ctx := context.Background()
	var gotPut map[string]string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			http.NotFound(w, r)
		case http.MethodPut:
			if err := json.NewDecoder(r.Body).Decode(&gotPut); err != nil {
				t.Errorf("decode put body: %v", err)
			}
			w.Write([]byte(`{}`))
		}
	}))
	defer srv.Close()

	client := github.NewClient("test-token", nil, 0)
	client.SetBaseURL(srv.URL)
	store := NewRepoStore(client, "octo", "widgets")

	if _, found, err := store.Read(ctx, "wall.svg"); err != nil || found {
		t.Fatalf("Read missing = (%v, %v), want (false, nil)", found, err)
	}
	if err := store.Write(ctx, "wall.svg", "<svg/>", "chore: add wall"); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if sha, ok := gotPut["sha"]; ok && sha != "" {
		t.Errorf("put sha = %q, want omitted", sha)
	}
}
