package index

import (
	"slices"
	"sort"
)

// OrderByDate returns a new slice ordered by date descending, ties by id
// ascending. The input is not modified.
func OrderByDate(posts []*Post) []*Post {
	out := slices.Clone(posts)
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if !a.Frontmatter.Date.Equal(b.Frontmatter.Date) {
			return a.Frontmatter.Date.After(b.Frontmatter.Date)
		}
		return a.ID < b.ID
	})
	return out
}

// FilterByTag keeps posts carrying tag, compared case-sensitively. An empty
// tag returns posts unchanged.
func FilterByTag(posts []*Post, tag string) []*Post {
	if tag == "" {
		return posts
	}
	out := make([]*Post, 0, len(posts))
	for _, p := range posts {
		if p.Frontmatter.HasTag(tag) {
			out = append(out, p)
		}
	}
	return out
}

// Paginate returns page (0-based) of posts. A size below 1 or a page outside
// [0, PageCount) yields an empty page.
func Paginate(posts []*Post, size, page int) []*Post {
	if size < 1 || page < 0 || page >= PageCount(len(posts), size) {
		return []*Post{}
	}
	start := page * size
	end := min(start+size, len(posts))
	return posts[start:end:end]
}

// PageCount is ceil(n/size), 0 for an invalid size.
func PageCount(n, size int) int {
	if size < 1 || n <= 0 {
		return 0
	}
	return (n + size - 1) / size
}

// PageWindow returns up to width consecutive page indexes around current,
// shifted to stay within [0, total).
func PageWindow(current, total, width int) []int {
	if total <= 0 || width <= 0 {
		return []int{}
	}
	current = max(0, min(current, total-1))
	start := max(0, current-width/2)
	end := min(total, start+width)
	if end-start < width {
		start = max(0, end-width)
	}
	out := make([]int, 0, end-start)
	for i := start; i < end; i++ {
		out = append(out, i)
	}
	return out
}

// TagCount is a tag and the number of posts carrying it.
type TagCount struct {
	Tag   string `json:"tag"`
	Count int    `json:"count"`
}

// Tags returns the distinct tags of posts, most used first, then by name.
func Tags(posts []*Post) []TagCount {
	counts := make(map[string]int)
	for _, p := range posts {
		seen := make(map[string]bool, len(p.Frontmatter.Tags))
		for _, t := range p.Frontmatter.Tags {
			if !seen[t] {
				seen[t] = true
				counts[t]++
			}
		}
	}
	out := make([]TagCount, 0, len(counts))
	for t, n := range counts {
		out = append(out, TagCount{Tag: t, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Tag < out[j].Tag
	})
	return out
}

// View is a caller-owned listing state.
type View struct {
	Tag  string `json:"tag"`  // empty means no filter
	Page int    `json:"page"` // 0-based
}

// Toggle selects tag, or clears it when it is already active. The page
// always resets to the first one.
func (v View) Toggle(tag string) View {
	if v.Tag == tag {
		return View{}
	}
	return View{Tag: tag}
}

// Page is one listing page with the metadata needed to render pagination.
type Page struct {
	View      View    `json:"view"`
	Posts     []*Post `json:"posts"`
	Total     int     `json:"total"` // posts matching the view's tag
	PageSize  int     `json:"page_size"`
	PageCount int     `json:"page_count"`
	HasPrev   bool    `json:"has_prev"`
	HasNext   bool    `json:"has_next"`
}

// Select filters posts by the view's tag and cuts out its page.
func Select(posts []*Post, v View, size int) Page {
	filtered := FilterByTag(posts, v.Tag)
	count := PageCount(len(filtered), size)
	return Page{
		View:      v,
		Posts:     Paginate(filtered, size, v.Page),
		Total:     len(filtered),
		PageSize:  size,
		PageCount: count,
		HasPrev:   v.Page > 0 && v.Page < count,
		HasNext:   v.Page >= 0 && v.Page+1 < count,
	}
}
