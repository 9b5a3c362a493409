package domain

import (
	"strconv"
	"strings"
	"time"
)

// Channel represents a tracked Telegram channel
type Channel struct {
	ID       int64     `json:"id" db:"id"`
	Username string    `json:"username" db:"username"`
	Title    string    `json:"title" db:"title"`
	AddedBy  int64     `json:"added_by" db:"added_by"`
	AddedAt  time.Time `json:"added_at" db:"added_at"`
}

// ChatInfo is what the transport reports about a chat.
type ChatInfo struct {
	ID       int64
	Type     ChatType
	Title    string
	Username string
}

// IsChannel reports whether the chat is a broadcast channel.
func (c *ChatInfo) IsChannel() bool {
	return c != nil && c.Type == ChatTypeChannel
}

// NormalizeHandle strips whitespace and a leading "@" from a handle.
func NormalizeHandle(handle string) string {
	return strings.TrimPrefix(strings.TrimSpace(handle), "@")
}

// Handle returns the "@"-prefixed handle, or an empty string.
func (c *Channel) Handle() string {
	if c.Username == "" {
		return ""
	}
	return "@" + c.Username
}

// Link returns the public t.me link of the channel, or an empty string
// for channels without a handle.
func (c *Channel) Link() string {
	if c.Username == "" {
		return ""
	}
	return "https://t.me/" + c.Username
}

// DisplayName returns the title, falling back to the handle and the id.
func (c *Channel) DisplayName() string {
	switch {
	case c.Title != "":
		return c.Title
	case c.Username != "":
		return c.Handle()
	default:
		return PlaceholderTitle(c.ID)
	}
}

// Matches applies the registry identity rule: same id, or same handle, or
// same title. Empty handles and titles never match.
func (c *Channel) Matches(id int64, handle, title string) bool {
	if c.ID == id {
		return true
	}
	handle = NormalizeHandle(handle)
	if handle != "" && strings.EqualFold(c.Username, handle) {
		return true
	}
	return title != "" && c.Title == title
}

// PlaceholderTitle is the title given to channels registered by id alone.
func PlaceholderTitle(id int64) string {
	return "Channel ID: " + strconv.FormatInt(id, 10)
}
