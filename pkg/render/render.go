// Package render turns an arranged gallery into an SVG document.
//
// Rendering is pure templating: every tile position, section height, and the
// total canvas height are computed by the layout engine before any template
// runs, so templates only substitute values and never do math. Both the
// document and the per-user item templates are logic-less mustache and can be
// overridden to restyle the wall without touching layout code.
package render

import (
	"strings"

	"github.com/cbroglie/mustache"

	"github.com/matzehuels/contribwall/pkg/errors"
	"github.com/matzehuels/contribwall/pkg/gallery"
)

// Context is the data handed to the document template. Section markup is
// pre-rendered; all dimensions come from the layout engine, including the
// vertical offset of each section group.
type Context struct {
	Width               int    `json:"width"`
	TotalHeight         int    `json:"totalHeight"`
	ContributorsHeight  int    `json:"contributorsHeight"`
	BotsHeight          int    `json:"botsHeight"`
	CollaboratorsHeight int    `json:"collaboratorsHeight"`
	BotsOffset          int    `json:"botsOffset"`
	CollaboratorsOffset int    `json:"collaboratorsOffset"`
	Contributors        string `json:"contributors"`
	Bots                string `json:"bots"`
	Collaborators       string `json:"collaborators"`
}

// data exposes the context under the lower-camel names templates use.
func (c Context) data() map[string]any {
	return map[string]any{
		"width":               c.Width,
		"totalHeight":         c.TotalHeight,
		"contributorsHeight":  c.ContributorsHeight,
		"botsHeight":          c.BotsHeight,
		"collaboratorsHeight": c.CollaboratorsHeight,
		"botsOffset":          c.BotsOffset,
		"collaboratorsOffset": c.CollaboratorsOffset,
		"contributors":        c.Contributors,
		"bots":                c.Bots,
		"collaborators":       c.Collaborators,
	}
}

// Options selects the templates to render with. Empty fields fall back to the
// built-in defaults.
type Options struct {
	SVGTemplate  string
	ItemTemplate string
}

// Renderer produces the final SVG text for a wall.
type Renderer struct {
	svgTmpl  *mustache.Template
	itemTmpl *mustache.Template
}

// New parses the configured templates. Template errors surface here, before
// any network or image work is done.
func New(opts Options) (*Renderer, error) {
	svgSrc := opts.SVGTemplate
	if svgSrc == "" {
		svgSrc = DefaultSVGTemplate
	}
	itemSrc := opts.ItemTemplate
	if itemSrc == "" {
		itemSrc = DefaultItemTemplate
	}

	svgTmpl, err := mustache.ParseString(svgSrc)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse svg template")
	}
	itemTmpl, err := mustache.ParseString(itemSrc)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse item template")
	}
	return &Renderer{svgTmpl: svgTmpl, itemTmpl: itemTmpl}, nil
}

// Render produces the SVG for an arranged wall. Every user must already have
// a Box assigned and an embedded avatar.
func (r *Renderer) Render(s *gallery.Sections, heights gallery.Heights, width int) (string, error) {
	contributors, err := r.renderSection(s.Contributors)
	if err != nil {
		return "", err
	}
	bots, err := r.renderSection(s.Bots)
	if err != nil {
		return "", err
	}
	collaborators, err := r.renderSection(s.Collaborators)
	if err != nil {
		return "", err
	}

	return r.svgTmpl.Render(Context{
		Width:               width,
		TotalHeight:         heights.Total,
		ContributorsHeight:  heights.Contributors,
		BotsHeight:          heights.Bots,
		CollaboratorsHeight: heights.Collaborators,
		BotsOffset:          heights.Contributors,
		CollaboratorsOffset: heights.Contributors + heights.Bots,
		Contributors:        contributors,
		Bots:                bots,
		Collaborators:       collaborators,
	}.data())
}

func (r *Renderer) renderSection(users []gallery.User) (string, error) {
	items := make([]string, 0, len(users))
	for _, u := range users {
		item, err := r.itemTmpl.Render(itemContext(u))
		if err != nil {
			return "", errors.Wrap(errors.ErrCodeInvalidInput, err, "render item for %s", u.Login)
		}
		items = append(items, strings.TrimSpace(item))
	}
	return strings.Join(items, "\n"), nil
}

// Baseline offset of the name label below its tile.
const labelOffset = 12

// itemContext flattens a user and its assigned box into the fields the item
// template sees. Label coordinates are precomputed like everything else.
func itemContext(u gallery.User) map[string]any {
	return map[string]any{
		"labelX": u.Box.X + u.Box.Width/2,
		"labelY": u.Box.Y + u.Box.Height + labelOffset,
		"name":          u.Name,
		"login":         u.Login,
		"avatar":        u.Avatar,
		"url":           u.URL,
		"type":          string(u.Category),
		"contributions": u.Contributions,
		"x":             u.Box.X,
		"y":             u.Box.Y,
		"width":         u.Box.Width,
		"height":        u.Box.Height,
	}
}
