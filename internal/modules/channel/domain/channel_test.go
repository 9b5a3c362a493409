package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestChannel_Matches(t *testing.T) {
	ch := &Channel{ID: -1001234567890, Username: "DevJobs", Title: "Dev Jobs"}

	tests := []struct {
		name   string
		id     int64
		handle string
		title  string
		want   bool
	}{
		{"same id only", -1001234567890, "", "", true},
		{"same handle only", 1, "devjobs", "", true},
		{"handle with at sign", 1, "@DEVJOBS", "", true},
		{"same title only", 1, "", "Dev Jobs", true},
		{"title is case sensitive", 1, "", "dev jobs", false},
		{"nothing in common", 1, "other", "Other", false},
		{"empty handle and title", 1, "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ch.Matches(tt.id, tt.handle, tt.title))
		})
	}
}

func TestChannel_EmptyHandleNeverMatchesEmptyUsername(t *testing.T) {
	ch := &Channel{ID: 5}
	assert.False(t, ch.Matches(6, "", ""))
	assert.False(t, ch.Matches(6, "@", ""))
}

func TestChannel_Presentation(t *testing.T) {
	named := &Channel{ID: -100123, Username: "golang_jobs", Title: "Go Jobs"}
	assert.Equal(t, "@golang_jobs", named.Handle())
	assert.Equal(t, "https://t.me/golang_jobs", named.Link())
	assert.Equal(t, "Go Jobs", named.DisplayName())

	bare := &Channel{ID: -100123}
	assert.Empty(t, bare.Handle())
	assert.Empty(t, bare.Link())
	assert.Equal(t, "Channel ID: -100123", bare.DisplayName())
	assert.Equal(t, "@x", (&Channel{Username: "x"}).DisplayName())
}

func TestChatInfo_IsChannel(t *testing.T) {
	assert.True(t, (&ChatInfo{Type: ChatTypeChannel}).IsChannel())
	assert.False(t, (&ChatInfo{Type: ChatTypeSupergroup}).IsChannel())
	assert.False(t, (*ChatInfo)(nil).IsChannel())

	typ, err := ParseChatType("Channel")
	assert.NoError(t, err)
	assert.Equal(t, ChatTypeChannel, typ)
	_, err = ParseChatType("bot")
	assert.ErrorIs(t, err, ErrInvalidChatType)
}
