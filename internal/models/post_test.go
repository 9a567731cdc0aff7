package models

import (
	"strings"
	"testing"
	"time"
)

// TestPostClassification verifies that the four logical states are derived
// correctly from the stored (status, published_at) pair at a fixed
// evaluation time.
func TestPostClassification(t *testing.T) {
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)

	tests := []struct {
		name        string
		status      PostStatus
		publishedAt *time.Time
		isPublished bool
		isScheduled bool
		isDraft     bool
		isArchived  bool
	}{
		{
			name:        "published in the past",
			status:      PostStatusPublished,
			publishedAt: &past,
			isPublished: true,
		},
		{
			name:        "published exactly now",
			status:      PostStatusPublished,
			publishedAt: &now,
			isPublished: true,
		},
		{
			name:        "published in the future is scheduled",
			status:      PostStatusPublished,
			publishedAt: &future,
			isScheduled: true,
		},
		{
			name:    "draft without timestamp",
			status:  PostStatusDraft,
			isDraft: true,
		},
		{
			name:        "draft with stale timestamp stays draft",
			status:      PostStatusDraft,
			publishedAt: &past,
			isDraft:     true,
		},
		{
			name:       "archived without timestamp",
			status:     PostStatusArchived,
			isArchived: true,
		},
		{
			name:        "archived keeps its timestamp but is not published",
			status:      PostStatusArchived,
			publishedAt: &past,
			isArchived:  true,
		},
		{
			name:   "published without timestamp is neither live nor scheduled",
			status: PostStatusPublished,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &Post{Status: tt.status, PublishedAt: tt.publishedAt}
			if got := p.IsPublishedAt(now); got != tt.isPublished {
				t.Errorf("IsPublishedAt = %v, want %v", got, tt.isPublished)
			}
			if got := p.IsScheduledAt(now); got != tt.isScheduled {
				t.Errorf("IsScheduledAt = %v, want %v", got, tt.isScheduled)
			}
			if got := p.IsDraft(); got != tt.isDraft {
				t.Errorf("IsDraft = %v, want %v", got, tt.isDraft)
			}
			if got := p.IsArchived(); got != tt.isArchived {
				t.Errorf("IsArchived = %v, want %v", got, tt.isArchived)
			}
		})
	}
}

// TestScheduledBecomesPublished verifies that a scheduled post flips to
// published purely by the clock passing its timestamp, with no writes.
func TestScheduledBecomesPublished(t *testing.T) {
	at := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	p := &Post{Status: PostStatusPublished, PublishedAt: &at}

	before := at.Add(-time.Minute)
	if !p.IsScheduledAt(before) || p.IsPublishedAt(before) {
		t.Errorf("before timestamp: scheduled=%v published=%v, want true/false",
			p.IsScheduledAt(before), p.IsPublishedAt(before))
	}

	after := at.Add(time.Minute)
	if p.IsScheduledAt(after) || !p.IsPublishedAt(after) {
		t.Errorf("after timestamp: scheduled=%v published=%v, want false/true",
			p.IsScheduledAt(after), p.IsPublishedAt(after))
	}
}

// TestCalculateReadingTime exercises reading-time estimation over plain
// text, markup, and boundary word counts.
func TestCalculateReadingTime(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    int
	}{
		{name: "empty content", content: "", want: 1},
		{name: "single word", content: "hello", want: 1},
		{name: "exactly one minute", content: strings.Repeat("word ", 200), want: 1},
		{name: "just over one minute", content: strings.Repeat("word ", 201), want: 2},
		{name: "five minutes", content: strings.Repeat("word ", 1000), want: 5},
		{name: "html tags are not words", content: "<p>hello <b>world</b></p>", want: 1},
		{
			name:    "markup stripped before counting",
			content: "<div class=\"x\">" + strings.Repeat("word ", 300) + "</div>",
			want:    2,
		},
		{name: "only markup", content: "<p></p><br/><hr>", want: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CalculateReadingTime(tt.content); got != tt.want {
				t.Errorf("CalculateReadingTime = %d, want %d", got, tt.want)
			}
		})
	}
}
