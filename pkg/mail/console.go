package mail

import (
	"context"
	"sync"

	"go.uber.org/zap"
)

// ConsoleSender logs messages instead of delivering them. Sent messages are
// retained so callers can inspect them.
type ConsoleSender struct {
	from   From
	logger *zap.Logger

	mu   sync.Mutex
	sent []Message
}

func NewConsoleSender(from From, logger *zap.Logger) *ConsoleSender {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ConsoleSender{from: from, logger: logger}
}

func (s *ConsoleSender) Send(ctx context.Context, msg Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := msg.Validate(); err != nil {
		return err
	}
	msg.Subject = s.from.subject(msg.Subject)

	from := s.from.address()
	s.logger.Info("email",
		zap.String("from", from.String()),
		zap.String("to", joinAddresses(msg.To)),
		zap.String("cc", joinAddresses(msg.Cc)),
		zap.String("subject", msg.Subject),
		zap.String("body", msg.Text),
	)

	s.mu.Lock()
	s.sent = append(s.sent, msg)
	s.mu.Unlock()
	return nil
}

// Sent returns a copy of every delivered message.
func (s *ConsoleSender) Sent() []Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Message, len(s.sent))
	copy(out, s.sent)
	return out
}
