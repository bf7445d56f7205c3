package cli

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	"github.com/matzehuels/contribwall/pkg/integrations/github"
	"github.com/matzehuels/contribwall/pkg/pipeline"
)

// configFileName is the config file looked up in the working directory when
// --config is not given.
const configFileName = ".contribwall.toml"

// Config mirrors the generation knobs that make sense in a checked-in file.
// Booleans are pointers so an absent key is distinguishable from false.
type Config struct {
	Repo                 string   `toml:"repo"`
	Sort                 *bool    `toml:"sort"`
	IncludeBots          *bool    `toml:"include_bots"`
	IncludeCollaborators *bool    `toml:"include_collaborators"`
	Affiliation          string   `toml:"affiliation"`
	Round                *bool    `toml:"round"`
	Truncate             int      `toml:"truncate"`
	MaxPerSection        int      `toml:"max_per_section"`
	Excluded             []string `toml:"exclude"`
	SVGWidth             int      `toml:"svg_width"`
	AvatarSize           int      `toml:"avatar_size"`
	AvatarMargin         int      `toml:"avatar_margin"`
	NameHeight           int      `toml:"name_height"`
	SVGPath              string   `toml:"svg_path"`
	CommitMessage        string   `toml:"commit_message"`
}

// loadConfig reads the config file at path, or the default file in the
// working directory when path is empty. A missing default file is not an
// error; a missing explicit file is.
func loadConfig(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		path = configFileName
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		if explicit {
			return nil, fmt.Errorf("config file %s does not exist", path)
		}
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return &cfg, nil
}

// apply copies config values into opts for every knob whose flag was not
// explicitly set on the command line. Flags always win over the file.
func (c *Config) apply(cmd *cobra.Command, opts *pipeline.Options) {
	set := func(name string) bool { return cmd.Flags().Changed(name) }

	if c.Repo != "" {
		opts.Repo = c.Repo
	}
	if c.Sort != nil && !set("sort") {
		opts.Sort = *c.Sort
	}
	if c.IncludeBots != nil && !set("include-bots") {
		opts.IncludeBots = *c.IncludeBots
	}
	if c.IncludeCollaborators != nil && !set("include-collaborators") {
		opts.IncludeCollaborators = *c.IncludeCollaborators
	}
	if c.Affiliation != "" && !set("affiliation") {
		opts.Affiliation = github.Affiliation(c.Affiliation)
	}
	if c.Round != nil && !set("round") {
		opts.Round = *c.Round
	}
	if c.Truncate != 0 && !set("truncate") {
		opts.Truncate = c.Truncate
	}
	if c.MaxPerSection != 0 && !set("max-per-section") {
		opts.MaxPerSection = c.MaxPerSection
	}
	if len(c.Excluded) > 0 && !set("exclude") {
		opts.Excluded = c.Excluded
	}
	if c.SVGWidth != 0 && !set("svg-width") {
		opts.SVGWidth = c.SVGWidth
	}
	if c.AvatarSize != 0 && !set("avatar-size") {
		opts.AvatarSize = c.AvatarSize
	}
	if c.AvatarMargin != 0 && !set("avatar-margin") {
		opts.AvatarMargin = c.AvatarMargin
	}
	if c.NameHeight != 0 && !set("name-height") {
		opts.NameHeight = c.NameHeight
	}
	if c.SVGPath != "" && !set("svg-path") {
		opts.SVGPath = c.SVGPath
	}
	if c.CommitMessage != "" && !set("message") {
		opts.CommitMessage = c.CommitMessage
	}
}
