package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"git.home.luguber.info/inful/devlog/internal/compiler"
	ferrors "git.home.luguber.info/inful/devlog/internal/foundation/errors"
	"git.home.luguber.info/inful/devlog/internal/seo"
)

// ShowCmd implements the 'show' command.
type ShowCmd struct {
	ID   string `arg:"" help:"Post identifier"`
	JSON bool   `help:"Print JSON"`
}

type showOutput struct {
	SEO         seo.Record         `json:"seo"`
	Fingerprint string             `json:"fingerprint"`
	Outline     []compiler.Heading `json:"outline"`
	Languages   []string           `json:"languages"`
	Images      []string           `json:"images"`
	Links       []string           `json:"external_links"`
}

func (s *ShowCmd) Run(root *CLI) error {
	cfg, err := root.LoadConfig()
	if err != nil {
		return err
	}
	res, err := runBuild(context.Background(), cfg)
	if err != nil {
		return err
	}
	post, ok := res.Index.Get(s.ID)
	if !ok {
		return ferrors.NewError(ferrors.CategoryNotFound, "post not found").WithContext("id", s.ID).Build()
	}
	record, _ := res.SEO.MetadataFor(s.ID)
	out := showOutput{
		SEO:         record,
		Fingerprint: post.Fingerprint,
		Outline:     post.Body.Outline,
		Languages:   post.Body.Languages,
		Images:      post.Body.Images,
		Links:       post.Body.ExternalLinks,
	}

	if s.JSON {
		enc := json.NewEncoder(root.out())
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}

	w := root.out()
	fmt.Fprintf(w, "Title:       %s\n", record.Title)
	fmt.Fprintf(w, "Description: %s\n", record.Description)
	fmt.Fprintf(w, "Published:   %s\n", record.OpenGraph.PublishedTime)
	fmt.Fprintf(w, "Canonical:   %s\n", record.Canonical)
	fmt.Fprintf(w, "Tags:        %s\n", strings.Join(record.Keywords, ", "))
	fmt.Fprintf(w, "Fingerprint: %s\n", post.Fingerprint)
	if len(out.Languages) > 0 {
		fmt.Fprintf(w, "Languages:   %s\n", strings.Join(out.Languages, ", "))
	}
	if len(out.Outline) > 0 {
		fmt.Fprintln(w, "Outline:")
		for _, h := range out.Outline {
			fmt.Fprintf(w, "  %s%s (#%s)\n", strings.Repeat("  ", max(0, h.Level-1)), h.Text, h.Anchor)
		}
	}
	return nil
}
