package domain

import (
	"fmt"
	"time"
)

// DefaultItemLimit is how many posts a channel feed carries.
const DefaultItemLimit = 50

// FeedConfig describes the header of a channel RSS feed
type FeedConfig struct {
	ChannelID int64     `json:"channel_id"`
	Title     string    `json:"title"`
	Link      string    `json:"link"`
	Updated   time.Time `json:"updated"`
}

// SelfLink returns the URL the feed is served at.
func SelfLink(baseURL string, channelID int64) string {
	return fmt.Sprintf("%s/rss/%d", baseURL, channelID)
}
