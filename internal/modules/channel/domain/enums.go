//go:generate go run github.com/abice/go-enum --file=$GOFILE --names --nocase

package domain

// ChatType is the kind of a Telegram chat
// ENUM(private,group,supergroup,channel)
type ChatType string
