package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/roach88/portalsearch/internal/profile"
)

// ProfileInfo describes one search profile.
type ProfileInfo struct {
	Name         string `json:"name"`
	CombineWords bool   `json:"combine_words"`
	Match        string `json:"match"`
	Author       string `json:"author"`
}

// NewProfilesCommand creates the profiles command.
func NewProfilesCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "profiles",
		Short:         "List search profiles and how they differ",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runProfiles(rootOpts, cmd)
		},
	}
}

func runProfiles(opts *RootOptions, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)

	var infos []ProfileInfo
	for _, p := range profile.All() {
		t := p.Traits()
		info := ProfileInfo{
			Name:         p.String(),
			CombineWords: t.CombineWords,
			Match:        "rich",
			Author:       "@name",
		}
		if t.Match == profile.MatchPlain {
			info.Match = "plain"
		}
		if t.Author == profile.AuthorLong {
			info.Author = "author:name"
		}
		infos = append(infos, info)
	}

	return formatter.Render(infos, func(w io.Writer) error {
		fmt.Fprintf(w, "%-10s %-14s %-6s %s\n", "PROFILE", "COMBINE WORDS", "MATCH", "AUTHOR")
		for _, info := range infos {
			fmt.Fprintf(w, "%-10s %-14t %-6s %s\n", info.Name, info.CombineWords, info.Match, info.Author)
		}
		return nil
	})
}
