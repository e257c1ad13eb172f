package feedcache

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Guyuepp/Go-Clean-Architecture-Feed/domain"
)

func TestPageSetEmpty(t *testing.T) {
	ps := &PageSet{}

	assert.True(t, ps.HasMore(), "a set that never fetched should want the first page")
	assert.Equal(t, "", ps.NextCursor())
	assert.Equal(t, 0, ps.Len())
	assert.Empty(t, ps.Posts())
}

func TestPageSetAppend(t *testing.T) {
	ps := &PageSet{}

	ps.Append(domain.FeedPage{Posts: makePage(30, 29, 28), NextCursor: "c1"})
	assert.True(t, ps.HasMore())
	assert.Equal(t, "c1", ps.NextCursor())
	assert.Equal(t, 3, ps.Len())

	ps.Append(domain.FeedPage{Posts: makePage(27, 26), NextCursor: ""})
	assert.False(t, ps.HasMore(), "empty next cursor ends the stream")
	assert.Equal(t, 5, ps.Len())

	var got []int64
	for _, p := range ps.Posts() {
		got = append(got, p.ID)
	}
	assert.Equal(t, []int64{30, 29, 28, 27, 26}, got)
}

func TestPageSetApplyLikeKeepsIdentity(t *testing.T) {
	ps := &PageSet{}
	ps.Append(domain.FeedPage{Posts: makePage(1, 2), NextCursor: "c1"})
	ps.Append(domain.FeedPage{Posts: makePage(3, 4), NextCursor: "c2"})

	before := ps.Pages()
	page0, page1 := before[0], before[1]

	ps.applyLike(LikeDelta{PostID: 3, Added: true})

	after := ps.Pages()
	assert.Same(t, &page0[0], &after[0][0], "page without the post keeps its identity")
	assert.NotSame(t, &page1[0], &after[1][0], "page with the post is replaced by a patched copy")
	assert.Equal(t, int64(6), after[1][0].LikeCount)
}
