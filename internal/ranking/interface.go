package ranking

import "context"

// Publisher delivers match-recorded events to a topic.
type Publisher interface {
	SendMessage(ctx context.Context, topic string, data any) error
}
