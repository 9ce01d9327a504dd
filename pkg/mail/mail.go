package mail

import (
	"context"
	"fmt"
	"net/mail"
	"strings"
)

// Message is an outbound email.
type Message struct {
	To      []mail.Address
	Cc      []mail.Address
	Subject string
	Text    string
	HTML    string
}

// Validate reports whether the message can be delivered.
func (m Message) Validate() error {
	if len(m.To) == 0 {
		return fmt.Errorf("mail: at least one recipient required")
	}
	for _, addr := range append(append([]mail.Address{}, m.To...), m.Cc...) {
		if _, err := mail.ParseAddress(addr.Address); err != nil {
			return fmt.Errorf("mail: invalid address %q: %w", addr.Address, err)
		}
	}
	if strings.TrimSpace(m.Text) == "" && strings.TrimSpace(m.HTML) == "" {
		return fmt.Errorf("mail: empty body")
	}
	return nil
}

// Sender delivers messages.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// From identifies the sending mailbox and subject prefix shared by senders.
type From struct {
	Name    string
	Address string
	AppName string
}

func (f From) subject(s string) string {
	if f.AppName == "" {
		return s
	}
	return "[" + f.AppName + "] " + s
}

func (f From) address() mail.Address {
	return mail.Address{Name: f.Name, Address: f.Address}
}

func joinAddresses(addrs []mail.Address) string {
	out := make([]string, 0, len(addrs))
	for _, a := range addrs {
		out = append(out, a.String())
	}
	return strings.Join(out, ", ")
}
