package notifications

import (
	"context"
	"fmt"
	"log/slog"
)

const (
	TypeLeaveApproved  = "leave_approved"
	TypeLeaveRejected  = "leave_rejected"
	TypeLeaveCancelled = "leave_cancelled"
)

const JobNotify = "notify_email"

type Mailer interface {
	Send(ctx context.Context, from, to, subject, body string) error
}

// Dispatcher matches jobs.Queue; a nil Dispatcher sends inline.
type Dispatcher interface {
	Enqueue(jobType string, run func(context.Context) error) bool
}

type Message struct {
	Type    string
	To      string
	Subject string
	Body    string
}

type Service struct {
	Mailer      Mailer
	Dispatch    Dispatcher
	DefaultFrom string
}

func New(mailer Mailer, dispatch Dispatcher, from string) *Service {
	if from == "" {
		from = "no-reply@example.com"
	}
	return &Service{Mailer: mailer, Dispatch: dispatch, DefaultFrom: from}
}

// Notify delivers msg in the background. Delivery failures are logged only.
func (s *Service) Notify(ctx context.Context, msg Message) {
	if s == nil || s.Mailer == nil || msg.To == "" {
		return
	}
	send := func(jobCtx context.Context) error {
		if err := s.Mailer.Send(jobCtx, s.DefaultFrom, msg.To, msg.Subject, msg.Body); err != nil {
			slog.Warn("notification email send failed", "type", msg.Type, "err", err)
			return err
		}
		return nil
	}
	if s.Dispatch == nil {
		_ = send(context.WithoutCancel(ctx))
		return
	}
	s.Dispatch.Enqueue(JobNotify, send)
}

// LeaveDecision builds the message sent to an employee when their request
// changes state.
func LeaveDecision(ntype, to, name, category string, days int, start, end string) Message {
	var verb string
	switch ntype {
	case TypeLeaveApproved:
		verb = "approved"
	case TypeLeaveRejected:
		verb = "rejected"
	default:
		verb = "cancelled"
	}
	return Message{
		Type:    ntype,
		To:      to,
		Subject: fmt.Sprintf("Your %s leave request was %s", category, verb),
		Body: fmt.Sprintf("Hello %s,\n\nYour %s leave request for %d day(s) from %s to %s was %s.\n",
			name, category, days, start, end, verb),
	}
}
