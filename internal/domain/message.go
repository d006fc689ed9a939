package domain

import "time"

type InboundMessage struct {
	Channel      string
	ChatID       string
	SenderID     string
	SenderHandle string // display handle (e.g. Telegram username), may be empty
	Content      string
	Timestamp    time.Time
}

type OutboundMessage struct {
	Channel string
	ChatID  string
	Content string
}
