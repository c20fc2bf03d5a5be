package commands

import (
	"context"
	"fmt"
	"strings"
	"text/tabwriter"
	"time"

	"git.home.luguber.info/inful/devlog/internal/index"
)

// ListCmd implements the 'list' command.
type ListCmd struct {
	Tag  string `short:"t" help:"Only posts carrying this tag"`
	Page int    `short:"p" help:"Page index, 0-based" default:"0"`
	Size int    `short:"s" help:"Page size (default listing.page_size)"`
}

func (l *ListCmd) Run(root *CLI) error {
	cfg, err := root.LoadConfig()
	if err != nil {
		return err
	}
	res, err := runBuild(context.Background(), cfg)
	if err != nil {
		return err
	}
	size := l.Size
	if size < 1 {
		size = cfg.Listing.PageSize
	}

	page := index.Select(res.Index.OrderedByDate(), index.View{Tag: l.Tag, Page: l.Page}, size)
	w := tabwriter.NewWriter(root.out(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "DATE\tID\tTITLE\tTAGS")
	for _, p := range page.Posts {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
			p.Frontmatter.Date.Format(time.DateOnly), p.ID, p.Frontmatter.Title, strings.Join(p.Frontmatter.Tags, ", "))
	}
	if err := w.Flush(); err != nil {
		return err
	}
	if page.PageCount > 0 {
		fmt.Fprintf(root.out(), "page %d of %d, %d posts\n", l.Page+1, page.PageCount, page.Total)
	} else {
		fmt.Fprintln(root.out(), "no posts")
	}
	return nil
}
