// Package chat talks to the remote companion model on behalf of the user.
//
// The remote service is opaque: a Generator turns a prompt into reply text.
// Client validates requests and maps failures onto user-facing messages.
// Session ties a Client to the state store so every exchange lands in the
// conversation log.
package chat

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/rcliao/calmish/internal/model"
)

// MaxMessageLength bounds a single user message, in characters.
const MaxMessageLength = 2000

const defaultDisplayName = "there"

// Prompt is everything a Generator needs for one reply.
type Prompt struct {
	System  string
	History []model.Message
	Message string
}

// Generator produces a reply for a prompt.
type Generator interface {
	Generate(ctx context.Context, p Prompt) (string, error)
}

// Request is one user turn.
type Request struct {
	Message         string `validate:"required,max=2000"`
	History         []model.Message
	UserDisplayName string
}

// Response is the companion's reply.
type Response struct {
	ReplyText string    `json:"replyText"`
	Timestamp time.Time `json:"timestamp"`
}

// Client validates requests and calls a Generator.
type Client struct {
	gen      Generator
	validate *validator.Validate
	logger   *zap.Logger
	now      func() time.Time
}

// NewClient creates a Client. A nil gen yields a Client whose every call
// fails with ErrUnavailable.
func NewClient(gen Generator, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		gen:      gen,
		validate: validator.New(validator.WithRequiredStructEnabled()),
		logger:   logger.With(zap.String("component", "chat")),
		now:      time.Now,
	}
}

// SystemPrompt returns the persona instructions addressed to name.
func SystemPrompt(name string) string {
	if strings.TrimSpace(name) == "" {
		name = defaultDisplayName
	}
	return fmt.Sprintf(`You are Calmish, a warm, empathetic wellness companion for women over 40.
You're supportive, gentle, and understanding. Always address the user by name (%s) when possible.

Your responses should be:
- Warm and validating
- Supportive without being dismissive
- Practical but gentle
- Understanding of life transitions
- Encouraging self-care and boundaries

Keep responses concise but meaningful, typically 2-4 sentences unless more detail is needed.
If someone shares something difficult, acknowledge their feelings before offering support.`, name)
}

// Check validates req without calling the generator. Failures are *Error.
func (c *Client) Check(req Request) error {
	req.Message = strings.TrimSpace(req.Message)
	err := c.validate.Struct(req)
	if err == nil {
		return nil
	}
	msg := msgRequired
	var ve validator.ValidationErrors
	if errors.As(err, &ve) && len(ve) > 0 && ve[0].Tag() == "max" {
		msg = msgTooLong
	}
	return &Error{UserMessage: msg, Err: fmt.Errorf("%w: %v", ErrInvalidRequest, err)}
}

// Reply sends req to the generator. Every error is a *Error.
func (c *Client) Reply(ctx context.Context, req Request) (Response, error) {
	if err := c.Check(req); err != nil {
		return Response{}, err
	}
	if c.gen == nil {
		return Response{}, &Error{UserMessage: msgUnavailable, Err: ErrUnavailable}
	}

	start := c.now()
	text, err := c.gen.Generate(ctx, Prompt{
		System:  SystemPrompt(req.UserDisplayName),
		History: req.History,
		Message: strings.TrimSpace(req.Message),
	})
	if err != nil {
		ce := classify(err)
		c.logger.Warn("chat reply failed", zap.Error(err), zap.String("user_message", ce.UserMessage))
		return Response{}, ce
	}
	if strings.TrimSpace(text) == "" {
		return Response{}, &Error{UserMessage: msgDefault, Err: errors.New("empty reply")}
	}

	c.logger.Debug("chat reply",
		zap.Int("history", len(req.History)),
		zap.Duration("took", c.now().Sub(start)))
	return Response{ReplyText: text, Timestamp: c.now()}, nil
}
