package gallery

// Category identifies which section of the wall a user belongs to.
// A user appears in exactly one section.
type Category string

// Wall sections.
const (
	CategoryContributor  Category = "contributor"
	CategoryBot          Category = "bot"
	CategoryCollaborator Category = "collaborator"
)

// RawUser is a record from a hosting-API listing, before classification.
// Bot distinguishes machine accounts; Contributions is zero for collaborator
// records (the listing doesn't report it).
type RawUser struct {
	Login         string
	AvatarURL     string
	ProfileURL    string
	Bot           bool
	Contributions int
}

// User is one tile of the wall. Avatar starts as the remote URL and is
// replaced with an embeddable data URI by the avatar pipeline. Box is
// assigned by [Arrange] before any avatar is fetched.
type User struct {
	Name          string // display name, possibly truncated
	Login         string // full login
	Avatar        string
	URL           string
	Category      Category
	Contributions int
	Box           Box
}

// Sections holds the three disjoint user sequences of a wall.
type Sections struct {
	Contributors  []User
	Bots          []User
	Collaborators []User
}

// Counts returns the per-section sizes in contributor, bot, collaborator order.
func (s Sections) Counts() (contributors, bots, collaborators int) {
	return len(s.Contributors), len(s.Bots), len(s.Collaborators)
}
