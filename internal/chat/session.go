package chat

import (
	"context"

	"go.uber.org/zap"

	"github.com/rcliao/calmish/internal/model"
	"github.com/rcliao/calmish/internal/state"
)

// DefaultHistoryTurns bounds how much of the log is sent with each message.
const DefaultHistoryTurns = 20

// Session runs conversations against the state store's log.
type Session struct {
	client *Client
	store  *state.Store
	turns  int
	logger *zap.Logger
}

// NewSession creates a Session. turns <= 0 selects DefaultHistoryTurns.
func NewSession(client *Client, st *state.Store, turns int, logger *zap.Logger) *Session {
	if turns <= 0 {
		turns = DefaultHistoryTurns
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Session{client: client, store: st, turns: turns, logger: logger.With(zap.String("component", "chat_session"))}
}

// Send records text as a user message, asks for a reply and records it.
// Invalid input is rejected before anything is recorded. When the remote
// call fails the user message stays in the log and the returned error is a
// *Error. Persistence failures are logged and do not abort the exchange.
func (s *Session) Send(ctx context.Context, text string) (model.Message, error) {
	profile := s.store.Profile()
	req := Request{
		Message:         text,
		History:         s.store.Conversation().Tail(s.turns),
		UserDisplayName: profile.Name,
	}
	if err := s.client.Check(req); err != nil {
		return model.Message{}, err
	}

	if _, err := s.store.AppendConversationMessage(ctx, model.Message{Role: model.RoleUser, Text: text}); err != nil {
		if !state.IsNotPersisted(err) {
			return model.Message{}, err
		}
		s.logger.Warn("user message not persisted", zap.Error(err))
	}

	resp, err := s.client.Reply(ctx, req)
	if err != nil {
		return model.Message{}, err
	}

	reply, err := s.store.AppendConversationMessage(ctx, model.Message{
		Role:      model.RoleAssistant,
		Text:      resp.ReplyText,
		Timestamp: resp.Timestamp,
	})
	if err != nil && !state.IsNotPersisted(err) {
		return model.Message{}, err
	}
	if err != nil {
		s.logger.Warn("reply not persisted", zap.Error(err))
	}
	return reply, nil
}
