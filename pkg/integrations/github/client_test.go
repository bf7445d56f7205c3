package github

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/matzehuels/contribwall/pkg/errors"
	"github.com/matzehuels/contribwall/pkg/pagination"
)

func newTestClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c := NewClient("test-token", nil, 0)
	c.SetBaseURL(srv.URL)
	return c, srv
}

func TestListContributors(t *testing.T) {
	c, srv := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/repos/octo/widgets/contributors" {
			t.Errorf("path = %q", r.URL.Path)
		}
		if got := r.URL.Query().Get("per_page"); got != "100" {
			t.Errorf("per_page = %q, want 100", got)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-token" {
			t.Errorf("Authorization = %q", got)
		}

		w.Header().Set("Link", fmt.Sprintf(`<%s/repos/octo/widgets/contributors?page=2>; rel="next", <%s/repos/octo/widgets/contributors?page=3>; rel="last"`,
			"http://"+r.Host, "http://"+r.Host))
		fmt.Fprint(w, `[
			{"login":"alice","avatar_url":"https://a/alice","html_url":"https://g/alice","type":"User","contributions":42},
			{"login":"dep-bot[bot]","avatar_url":"https://a/bot","html_url":"https://g/bot","type":"Bot","contributions":7}
		]`)
	}))
	_ = srv

	items, hint, err := c.ListContributors(context.Background(), "octo", "widgets", 1)
	if err != nil {
		t.Fatalf("ListContributors error: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("len = %d, want 2", len(items))
	}
	if items[0].Login != "alice" || items[0].Contributions != 42 {
		t.Errorf("first item = %+v", items[0])
	}
	if items[1].Type != "Bot" {
		t.Errorf("second item type = %q, want Bot", items[1].Type)
	}
	if hint != (pagination.Hint{Next: 2, Last: 3}) {
		t.Errorf("hint = %+v, want next=2 last=3", hint)
	}
}

func TestListCollaboratorsAffiliation(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("affiliation"); got != "direct" {
			t.Errorf("affiliation = %q, want direct", got)
		}
		fmt.Fprint(w, `[{"login":"maint","avatar_url":"https://a/m","html_url":"https://g/m","type":"User"}]`)
	}))

	items, hint, err := c.ListCollaborators(context.Background(), "octo", "widgets", AffiliationDirect, 1)
	if err != nil {
		t.Fatalf("ListCollaborators error: %v", err)
	}
	if len(items) != 1 || items[0].Login != "maint" {
		t.Errorf("items = %+v", items)
	}
	if hint.HasMore() {
		t.Error("hint should report no further pages")
	}
}

func TestListCollaboratorsRejectsBadAffiliation(t *testing.T) {
	c := NewClient("", nil, 0)
	if _, _, err := c.ListCollaborators(context.Background(), "o", "r", "everyone", 1); err == nil {
		t.Fatal("expected error for invalid affiliation")
	}
}

func TestAffiliationValid(t *testing.T) {
	for _, a := range []Affiliation{AffiliationAll, AffiliationDirect, AffiliationOutside} {
		if !a.Valid() {
			t.Errorf("%q should be valid", a)
		}
	}
	if Affiliation("everyone").Valid() {
		t.Error("unknown affiliation should be invalid")
	}
}

func TestListUserReposPaginates(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		page := r.URL.Query().Get("page")
		switch page {
		case "1":
			w.Header().Set("Link", fmt.Sprintf(`<http://%s/user/repos?page=2>; rel="next", <http://%s/user/repos?page=2>; rel="last"`, r.Host, r.Host))
			fmt.Fprint(w, `[{"id":1,"full_name":"octo/one"}]`)
		case "2":
			fmt.Fprint(w, `[{"id":2,"full_name":"octo/two"}]`)
		default:
			t.Errorf("unexpected page %q", page)
		}
	}))

	repos, err := c.ListUserRepos(context.Background())
	if err != nil {
		t.Fatalf("ListUserRepos error: %v", err)
	}
	if len(repos) != 2 || repos[0].FullName != "octo/one" || repos[1].FullName != "octo/two" {
		t.Errorf("repos = %+v, want octo/one then octo/two", repos)
	}
}

func TestParseRepoRef(t *testing.T) {
	tests := []struct {
		ref     string
		owner   string
		repo    string
		wantErr bool
	}{
		{"octo/widgets", "octo", "widgets", false},
		{"octo/my.repo-1_x", "octo", "my.repo-1_x", false},
		{"no-slash", "", "", true},
		{"/widgets", "", "", true},
		{"-bad/widgets", "", "", true},
	}
	for _, tt := range tests {
		owner, repo, err := ParseRepoRef(tt.ref)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseRepoRef(%q) err = %v, wantErr %v", tt.ref, err, tt.wantErr)
			continue
		}
		if err != nil && errors.GetCode(err) != errors.ErrCodeInvalidRepo {
			t.Errorf("ParseRepoRef(%q) code = %v, want %v", tt.ref, errors.GetCode(err), errors.ErrCodeInvalidRepo)
		}
		if owner != tt.owner || repo != tt.repo {
			t.Errorf("ParseRepoRef(%q) = %q/%q, want %q/%q", tt.ref, owner, repo, tt.owner, tt.repo)
		}
	}
}
