package domain

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// RawPost is a channel post as delivered by the transport
type RawPost struct {
	ChannelID       int64
	ChannelUsername string
	ChannelTitle    string
	MessageID       int
	Text            string
	Caption         string
}

// Body returns the text of the post, or its caption for media posts.
func (r RawPost) Body() string {
	if r.Text != "" {
		return r.Text
	}
	return r.Caption
}

// Post is the record of a processed channel post
type Post struct {
	ChannelID       int64     `json:"channel_id" db:"channel_id"`
	MessageID       int       `json:"message_id" db:"message_id"`
	ChannelUsername string    `json:"channel_username" db:"channel_username"`
	ChannelTitle    string    `json:"channel_title" db:"channel_title"`
	Text            string    `json:"text" db:"text"`
	Link            string    `json:"link" db:"link"`
	ProcessedAt     time.Time `json:"processed_at" db:"processed_at"`
}

// DispatchTask carries one new post to the notification dispatcher
type DispatchTask struct {
	ID              string
	ChannelID       int64
	ChannelUsername string
	ChannelTitle    string
	MessageID       int
	Text            string
	Link            string
}

// Title returns the channel title, falling back to the handle.
func (t *DispatchTask) Title() string {
	if t.ChannelTitle != "" {
		return t.ChannelTitle
	}
	if t.ChannelUsername != "" {
		return "@" + t.ChannelUsername
	}
	return strconv.FormatInt(t.ChannelID, 10)
}

// Permalink builds the public link of a channel message. Channels without
// a handle get the private /c/ form with the "-100" id prefix removed.
func Permalink(channelID int64, username string, messageID int) string {
	if username = strings.TrimPrefix(username, "@"); username != "" {
		return fmt.Sprintf("https://t.me/%s/%d", username, messageID)
	}
	internal := strings.TrimPrefix(strconv.FormatInt(channelID, 10), "-100")
	return fmt.Sprintf("https://t.me/c/%s/%d", strings.TrimPrefix(internal, "-"), messageID)
}
