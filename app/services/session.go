package services

import (
	"context"
	"log/slog"

	"github.com/Sah2Sah2/Lab3-DB-SimpleStoreWithMongoDB/app/models"
	"github.com/Sah2Sah2/Lab3-DB-SimpleStoreWithMongoDB/pkg/logger"
)

// ShoppingState is where a session's shopping run stands.
type ShoppingState int

const (
	NotStarted ShoppingState = iota
	Selecting
	Saved
	PaidOut
)

func (s ShoppingState) String() string {
	switch s {
	case Selecting:
		return "selecting"
	case Saved:
		return "saved"
	case PaidOut:
		return "paid"
	default:
		return "not started"
	}
}

// Session is one logged-in customer at the console. It carries the
// customer and the current shopping run.
type Session struct {
	Customer models.Customer

	state     ShoppingState
	selection *models.Selection
	log       *slog.Logger
}

// NewSession opens a session for c.
func NewSession(c models.Customer) *Session {
	return &Session{
		Customer:  c,
		selection: models.NewSelection(),
		log:       logger.L.With("customer", c.Name),
	}
}

// Context tags ctx with the session's logger.
func (s *Session) Context(ctx context.Context) context.Context {
	return logger.InjectLogger(ctx, s.log)
}

// StartShopping begins a run with an empty selection. It is a no-op while a
// run is in progress.
func (s *Session) StartShopping() {
	if s.state == Selecting {
		return
	}
	s.selection = models.NewSelection()
	s.state = Selecting
}

// Add puts qty units of p into the selection.
func (s *Session) Add(p models.Product, qty int) error {
	if s.state != Selecting {
		return ErrSessionClosed
	}
	if qty < 1 {
		return ErrInvalidQuantity
	}
	s.selection.Add(p, qty)
	return nil
}

// Abandon drops an unsaved run so the next StartShopping begins empty.
func (s *Session) Abandon() {
	if s.state != Selecting {
		return
	}
	s.selection = models.NewSelection()
	s.state = NotStarted
}

func (s *Session) State() ShoppingState { return s.state }

// Selection returns the current run's selection.
func (s *Session) Selection() *models.Selection { return s.selection }

func (s *Session) finish(state ShoppingState) {
	s.state = state
}
