package cache

import "fmt"

type Prefix string

const (
	// SentMessages maps a remote idMessage to the time it was sent.
	SentMessages Prefix = "sent_messages"
	// MediaObjects holds media uploaded for sendFileByUrl.
	MediaObjects Prefix = "media"
)

func (p Prefix) Key(id string) string {
	return fmt.Sprintf("%s:%s", p, id)
}
