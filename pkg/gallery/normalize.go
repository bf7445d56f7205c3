package gallery

import "sort"

// NormalizeOptions controls classification, ordering, and trimming of the
// raw listings.
type NormalizeOptions struct {
	// IncludeBots keeps bot contributors in the contributor section in
	// addition to the bots section.
	IncludeBots bool

	// Sort orders contributors and bots by contribution count, descending.
	// The sort is stable: ties keep their listing order.
	Sort bool

	// Truncate shortens display names longer than this many characters,
	// appending an ellipsis. 0 disables truncation.
	Truncate int

	// MaxPerSection caps each section's length after sorting. 0 means no cap.
	MaxPerSection int

	// Excluded logins are dropped from every section before anything else.
	// Matching is case-sensitive and exact.
	Excluded map[string]struct{}
}

// Normalize classifies raw contributor and collaborator records into the
// three disjoint wall sections.
//
// Contributor records flagged as bots route to the bots section, and also to
// the contributors section when IncludeBots is set. Collaborator records are
// never classified as bots. Exclusion happens before sorting, truncation, and
// any index assignment, so excluded users never consume a grid cell.
func Normalize(contributors, collaborators []RawUser, opts NormalizeOptions) Sections {
	var s Sections

	for _, raw := range contributors {
		if _, drop := opts.Excluded[raw.Login]; drop {
			continue
		}
		if raw.Bot {
			s.Bots = append(s.Bots, newUser(raw, CategoryBot, opts.Truncate))
			if !opts.IncludeBots {
				continue
			}
		}
		s.Contributors = append(s.Contributors, newUser(raw, CategoryContributor, opts.Truncate))
	}

	for _, raw := range collaborators {
		if _, drop := opts.Excluded[raw.Login]; drop {
			continue
		}
		s.Collaborators = append(s.Collaborators, newUser(raw, CategoryCollaborator, opts.Truncate))
	}

	if opts.Sort {
		sortByContributions(s.Contributors)
		sortByContributions(s.Bots)
	}

	if opts.MaxPerSection > 0 {
		s.Contributors = head(s.Contributors, opts.MaxPerSection)
		s.Bots = head(s.Bots, opts.MaxPerSection)
		s.Collaborators = head(s.Collaborators, opts.MaxPerSection)
	}

	return s
}

func newUser(raw RawUser, cat Category, truncate int) User {
	return User{
		Name:          displayName(raw.Login, truncate),
		Login:         raw.Login,
		Avatar:        raw.AvatarURL,
		URL:           raw.ProfileURL,
		Category:      cat,
		Contributions: raw.Contributions,
	}
}

// displayName truncates login only when it exceeds the limit.
func displayName(login string, truncate int) string {
	if truncate <= 0 {
		return login
	}
	runes := []rune(login)
	if len(runes) <= truncate {
		return login
	}
	return string(runes[:truncate]) + "…"
}

// sortByContributions sorts descending; stability keeps listing order for ties.
func sortByContributions(users []User) {
	sort.SliceStable(users, func(i, j int) bool {
		return users[i].Contributions > users[j].Contributions
	})
}

func head(users []User, n int) []User {
	if len(users) <= n {
		return users
	}
	return users[:n]
}
