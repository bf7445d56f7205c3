package github

// Contributor is an entry from the repository contributors listing.
// Type distinguishes machine accounts ("Bot") from users ("User").
type Contributor struct {
	Login         string `json:"login"`
	AvatarURL     string `json:"avatar_url"`
	HTMLURL       string `json:"html_url"`
	Type          string `json:"type"`
	Contributions int    `json:"contributions"`
}

// Collaborator is an entry from the repository collaborators listing.
type Collaborator struct {
	Login     string `json:"login"`
	AvatarURL string `json:"avatar_url"`
	HTMLURL   string `json:"html_url"`
	Type      string `json:"type"`
}

// Repo represents a GitHub repository, as listed for the authenticated user.
type Repo struct {
	ID            int64  `json:"id"`
	Name          string `json:"name"`
	FullName      string `json:"full_name"`
	Description   string `json:"description"`
	Private       bool   `json:"private"`
	DefaultBranch string `json:"default_branch"`
	UpdatedAt     string `json:"updated_at"`
}

// FileContent is a repository file fetched through the contents API.
// SHA is the blob SHA required for content-addressed overwrites.
type FileContent struct {
	Path    string
	SHA     string
	Content []byte
}

// Affiliation filters the collaborators listing.
type Affiliation string

// Collaborator affiliation values accepted by the listing endpoint.
const (
	AffiliationAll     Affiliation = "all"     // every collaborator
	AffiliationDirect  Affiliation = "direct"  // explicitly granted access
	AffiliationOutside Affiliation = "outside" // access via organization membership only
)

// Valid reports whether a is a recognized affiliation value.
func (a Affiliation) Valid() bool {
	switch a {
	case AffiliationAll, AffiliationDirect, AffiliationOutside:
		return true
	}
	return false
}

// apiContentResponse is the internal contents API response structure.
type apiContentResponse struct {
	Name     string `json:"name"`
	Path     string `json:"path"`
	SHA      string `json:"sha"`
	Size     int    `json:"size"`
	Content  string `json:"content"`
	Encoding string `json:"encoding"`
}
