package client

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type recordingSink struct {
	titles []string
}

func (r *recordingSink) SetTitle(title string) {
	r.titles = append(r.titles, title)
}

func (r *recordingSink) last() string {
	if len(r.titles) == 0 {
		return ""
	}
	return r.titles[len(r.titles)-1]
}

func TestTitleInitSplitsOnSeparator(t *testing.T) {
	sink := &recordingSink{}
	tc := NewTitleController(sink, " | ", zap.NewNop())

	tc.Init("Page | Site")

	assert.Equal(t, "Page", tc.PageTitle())
	assert.Equal(t, "Site", tc.BaseTitle())
	assert.Equal(t, "Page | Site", sink.last())
}

func TestTitleInitWithoutSeparator(t *testing.T) {
	tc := NewTitleController(nil, " | ", zap.NewNop())

	tc.Init("Just A Site")

	assert.Empty(t, tc.PageTitle())
	assert.Equal(t, "Just A Site", tc.BaseTitle())
	assert.Equal(t, "Just A Site", tc.Rendered())
}

func TestTitleUpdateRoundTrip(t *testing.T) {
	sink := &recordingSink{}
	tc := NewTitleController(sink, " | ", zap.NewNop())
	tc.Init("Page | Site")

	// Clearing the page title leaves the base alone.
	tc.Update("", "", "")
	assert.Equal(t, "Site", sink.last())

	// Setting a new page title re-renders with the stored base.
	tc.Update("New", "", "")
	assert.Equal(t, "New | Site", sink.last())
}

func TestTitleUpdateEmptyMeansNotSupplied(t *testing.T) {
	tc := NewTitleController(nil, " | ", zap.NewNop())
	tc.Init("Page | Site")

	// Empty base and separator must not erase the stored values.
	tc.Update("Other", "", "")
	assert.Equal(t, "Site", tc.BaseTitle())
	assert.Equal(t, "Other | Site", tc.Rendered())

	// Supplied values overwrite.
	tc.Update("Other", "NewSite", " - ")
	assert.Equal(t, "NewSite", tc.BaseTitle())
	assert.Equal(t, "Other - NewSite", tc.Rendered())
}

func TestTitleDefaultSeparator(t *testing.T) {
	tc := NewTitleController(nil, "", zap.NewNop())
	tc.Update("Page", "Site", "")
	assert.Equal(t, "Page | Site", tc.Rendered())
}
