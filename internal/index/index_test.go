package index

import (
	"errors"
	"fmt"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	cerrors "git.home.luguber.info/inful/devlog/internal/content/errors"
	"git.home.luguber.info/inful/devlog/internal/frontmatter"
)

func day(d int) time.Time {
	return time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, d)
}

func mkPost(id string, d int, tags ...string) *Post {
	return &Post{ID: id, Frontmatter: frontmatter.Meta{Title: id, Description: id, Date: day(d), Tags: tags}}
}

func idsOf(posts []*Post) []string {
	out := make([]string, len(posts))
	for i, p := range posts {
		out[i] = p.ID
	}
	return out
}

// tenPosts returns p00..p09 where p00 is the newest.
func tenPosts() []*Post {
	posts := make([]*Post, 10)
	for i := range posts {
		posts[i] = mkPost(fmt.Sprintf("p%02d", i), 10-i)
	}
	return posts
}

func TestBuildAndGet(t *testing.T) {
	idx, err := Build([]*Post{mkPost("b", 1), nil, mkPost("a", 2), mkPost("c", 0)})
	require.NoError(t, err)
	require.Equal(t, 3, idx.Len())

	p, ok := idx.Get("a")
	require.True(t, ok)
	require.Equal(t, "a", p.ID)
	_, ok = idx.Get("A")
	require.False(t, ok)

	require.Equal(t, []string{"a", "b", "c"}, idsOf(idx.All()))
	require.Equal(t, []string{"a", "b", "c"}, idx.IDs())
	require.Equal(t, []string{"a", "b", "c"}, idsOf(idx.OrderedByDate()))
}

func TestAllReturnsFreshSlice(t *testing.T) {
	idx, err := Build([]*Post{mkPost("a", 1), mkPost("b", 2)})
	require.NoError(t, err)
	first := idx.All()
	first[0] = nil
	require.Equal(t, []string{"a", "b"}, idsOf(idx.All()))
}

func TestBuildDuplicates(t *testing.T) {
	idx, err := Build([]*Post{mkPost("hello", 1), mkPost("x", 1), mkPost("hello", 2), mkPost("x", 3), mkPost("ok", 0)})
	require.Nil(t, idx)
	require.ErrorIs(t, err, cerrors.ErrDuplicateID)

	var dup *DuplicateIDError
	require.True(t, errors.As(err, &dup))
	require.Equal(t, []string{"hello", "x"}, dup.IDs)
	require.Contains(t, err.Error(), "hello, x")
}

func TestCheckUnique(t *testing.T) {
	require.NoError(t, CheckUnique([]string{"a", "b"}))
	require.NoError(t, CheckUnique(nil))
	require.ErrorIs(t, CheckUnique([]string{"a", "a"}), cerrors.ErrDuplicateID)
}

func TestOrderByDate(t *testing.T) {
	posts := []*Post{mkPost("b", 1), mkPost("c", 3), mkPost("a", 1), mkPost("d", 2)}
	input := idsOf(posts)

	ordered := OrderByDate(posts)
	require.Equal(t, []string{"c", "d", "a", "b"}, idsOf(ordered))
	require.Equal(t, input, idsOf(posts), "input must not be mutated")
	require.Equal(t, idsOf(ordered), idsOf(OrderByDate(ordered)), "idempotent")

	// Any permutation sorts to the same order.
	r := rand.New(rand.NewSource(7))
	for i := 0; i < 20; i++ {
		shuffled := OrderByDate(posts)
		r.Shuffle(len(shuffled), func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })
		require.Equal(t, idsOf(ordered), idsOf(OrderByDate(shuffled)))
	}
}

func TestFilterByTag(t *testing.T) {
	posts := []*Post{mkPost("a", 1, "go", "web"), mkPost("b", 2, "Go"), mkPost("c", 3, "go")}

	require.Equal(t, []string{"a", "c"}, idsOf(FilterByTag(posts, "go")))
	require.Equal(t, []string{"b"}, idsOf(FilterByTag(posts, "Go")))
	require.Empty(t, FilterByTag(posts, "rust"))

	same := FilterByTag(posts, "")
	require.Equal(t, idsOf(posts), idsOf(same))
	require.Same(t, &posts[0], &same[0])

	for _, p := range FilterByTag(posts, "web") {
		require.True(t, p.Frontmatter.HasTag("web"))
	}
}

func TestPaginate(t *testing.T) {
	posts := OrderByDate(tenPosts())

	require.Equal(t, []string{"p00", "p01", "p02", "p03"}, idsOf(Paginate(posts, 4, 0)))
	require.Equal(t, []string{"p08", "p09"}, idsOf(Paginate(posts, 4, 2)))
	require.Empty(t, Paginate(posts, 4, 3))
	require.Empty(t, Paginate(posts, 4, -1))
	require.Empty(t, Paginate(posts, 0, 0))
	require.Empty(t, Paginate(nil, 4, 0))

	var all []*Post
	for page := 0; page < PageCount(len(posts), 3); page++ {
		all = append(all, Paginate(posts, 3, page)...)
	}
	require.Equal(t, idsOf(posts), idsOf(all))
}

func TestPageCount(t *testing.T) {
	require.Equal(t, 3, PageCount(10, 4))
	require.Equal(t, 2, PageCount(8, 4))
	require.Equal(t, 0, PageCount(0, 4))
	require.Equal(t, 0, PageCount(5, 0))
}

func TestPageWindow(t *testing.T) {
	cases := []struct {
		current, total, width int
		want                  []int
	}{
		{0, 10, 5, []int{0, 1, 2, 3, 4}},
		{5, 10, 5, []int{3, 4, 5, 6, 7}},
		{9, 10, 5, []int{5, 6, 7, 8, 9}},
		{1, 3, 5, []int{0, 1, 2}},
		{42, 3, 5, []int{0, 1, 2}},
		{0, 0, 5, []int{}},
		{2, 6, 4, []int{0, 1, 2, 3}},
	}
	for _, tc := range cases {
		require.Equal(t, tc.want, PageWindow(tc.current, tc.total, tc.width), "%+v", tc)
	}
}

func TestRecent(t *testing.T) {
	idx, err := Build(tenPosts())
	require.NoError(t, err)
	require.Equal(t, []string{"p00", "p01", "p02", "p03"}, idsOf(idx.Recent(4)))
	require.Len(t, idx.Recent(50), 10)
	require.Empty(t, idx.Recent(0))
}

func TestTags(t *testing.T) {
	posts := []*Post{mkPost("a", 1, "go", "web"), mkPost("b", 2, "go", "go"), mkPost("c", 3, "ai", "web"), mkPost("d", 4, "go")}
	require.Equal(t, []TagCount{{"go", 3}, {"web", 2}, {"ai", 1}}, Tags(posts))
	require.Empty(t, Tags(nil))
}

func TestViewToggle(t *testing.T) {
	v := View{Page: 3}
	v = v.Toggle("go")
	require.Equal(t, View{Tag: "go"}, v)

	v.Page = 2
	v = v.Toggle("web")
	require.Equal(t, View{Tag: "web"}, v)

	v.Page = 1
	require.Equal(t, View{}, v.Toggle("web"))
}

func TestSelect(t *testing.T) {
	posts := OrderByDate(tenPosts())
	for _, p := range posts[:5] {
		p.Frontmatter.Tags = []string{"go"}
	}

	page := Select(posts, View{Tag: "go", Page: 1}, 4)
	require.Equal(t, []string{"p04"}, idsOf(page.Posts))
	require.Equal(t, 5, page.Total)
	require.Equal(t, 2, page.PageCount)
	require.True(t, page.HasPrev)
	require.False(t, page.HasNext)

	first := Select(posts, View{}, 4)
	require.Equal(t, 10, first.Total)
	require.False(t, first.HasPrev)
	require.True(t, first.HasNext)

	beyond := Select(posts, View{Page: 7}, 4)
	require.Empty(t, beyond.Posts)
	require.False(t, beyond.HasPrev)
	require.False(t, beyond.HasNext)
}

func TestFingerprint(t *testing.T) {
	meta := frontmatter.Meta{Title: "t", Description: "d", Date: day(0), Tags: []string{"go"}}
	a, err := Fingerprint(meta, []byte("body"))
	require.NoError(t, err)
	require.NotEmpty(t, a)

	b, err := Fingerprint(meta, []byte("body"))
	require.NoError(t, err)
	require.Equal(t, a, b)

	c, err := Fingerprint(meta, []byte("body!"))
	require.NoError(t, err)
	require.NotEqual(t, a, c)

	meta.Tags = []string{"rust"}
	d, err := Fingerprint(meta, []byte("body"))
	require.NoError(t, err)
	require.NotEqual(t, a, d)
}
