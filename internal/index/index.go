package index

import (
	"fmt"
	"slices"
	"sort"
	"strings"

	cerrors "git.home.luguber.info/inful/devlog/internal/content/errors"
)

// DuplicateIDError lists every identifier claimed by more than one document.
type DuplicateIDError struct {
	IDs []string
}

func (e *DuplicateIDError) Error() string {
	return fmt.Sprintf("%s: %s", cerrors.ErrDuplicateID, strings.Join(e.IDs, ", "))
}

func (e *DuplicateIDError) Unwrap() error { return cerrors.ErrDuplicateID }

// CheckUnique reports all duplicated identifiers in one *DuplicateIDError.
func CheckUnique(ids []string) error {
	seen := make(map[string]int, len(ids))
	for _, id := range ids {
		seen[id]++
	}
	var dups []string
	for id, n := range seen {
		if n > 1 {
			dups = append(dups, id)
		}
	}
	if len(dups) == 0 {
		return nil
	}
	sort.Strings(dups)
	return &DuplicateIDError{IDs: dups}
}

// Index is the immutable collection of posts of one build. It is never
// mutated after Build returns, so concurrent readers need no locking.
type Index struct {
	byID   map[string]*Post
	byName []*Post // id ascending
	byDate []*Post // date descending, id ascending
}

// Build assembles an index. Duplicate identifiers fail the whole build and no
// index is returned. Nil entries are ignored.
func Build(posts []*Post) (*Index, error) {
	ids := make([]string, 0, len(posts))
	kept := make([]*Post, 0, len(posts))
	for _, p := range posts {
		if p == nil {
			continue
		}
		ids = append(ids, p.ID)
		kept = append(kept, p)
	}
	if err := CheckUnique(ids); err != nil {
		return nil, err
	}

	idx := &Index{byID: make(map[string]*Post, len(kept))}
	for _, p := range kept {
		idx.byID[p.ID] = p
	}
	idx.byName = slices.Clone(kept)
	sort.Slice(idx.byName, func(i, j int) bool { return idx.byName[i].ID < idx.byName[j].ID })
	idx.byDate = OrderByDate(kept)
	return idx, nil
}

// Len returns the number of posts.
func (x *Index) Len() int { return len(x.byName) }

// Get returns the post with exactly this id.
func (x *Index) Get(id string) (*Post, bool) {
	p, ok := x.byID[id]
	return p, ok
}

// All returns every post, id ascending. The slice is fresh on every call.
func (x *Index) All() []*Post { return slices.Clone(x.byName) }

// OrderedByDate returns every post newest first.
func (x *Index) OrderedByDate() []*Post { return slices.Clone(x.byDate) }

// Recent returns the n newest posts.
func (x *Index) Recent(n int) []*Post {
	if n <= 0 {
		return []*Post{}
	}
	return slices.Clone(x.byDate[:min(n, len(x.byDate))])
}

// IDs returns every identifier, ascending.
func (x *Index) IDs() []string {
	out := make([]string, len(x.byName))
	for i, p := range x.byName {
		out[i] = p.ID
	}
	return out
}
