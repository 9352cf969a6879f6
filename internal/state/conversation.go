package state

import (
	"context"

	"github.com/rcliao/calmish/internal/events"
	"github.com/rcliao/calmish/internal/model"
)

// AppendConversationMessage adds msg to the end of the conversation log.
// A zero Timestamp is replaced with the current time.
func (s *Store) AppendConversationMessage(ctx context.Context, msg model.Message) (model.Message, error) {
	if err := check(messageInput{Role: msg.Role, Text: msg.Text}); err != nil {
		return model.Message{}, err
	}
	err := s.apply(ctx, func() ([]write, events.Event) {
		if msg.Timestamp.IsZero() {
			msg.Timestamp = s.now()
		}
		s.conversations = append(s.conversations, msg)
		return []write{{model.DomainConversations, s.conversations}}, events.MessageAppended{Message: msg}
	})
	return msg, err
}
