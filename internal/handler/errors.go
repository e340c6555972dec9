package handler

import (
	"context"
	"fmt"

	"github.com/go-faster/errors"
	"github.com/go-faster/sdk/zctx"
	"go.uber.org/zap"

	"github.com/xenking/ercm/internal/console"
	"github.com/xenking/ercm/internal/domain/article"
	"github.com/xenking/ercm/internal/domain/client"
	"github.com/xenking/ercm/internal/domain/order"
	"github.com/xenking/ercm/internal/domain/user"
)

var (
	errNoClients  = errors.New("no clients")
	errNoArticles = errors.New("no orderable articles")
)

// reportedError marks a failure that was already shown to the operator and
// ended the screen it happened on.
type reportedError struct {
	err error
}

func (e *reportedError) Error() string { return e.err.Error() }
func (e *reportedError) Unwrap() error { return e.err }

// report shows err to the operator. It returns nil when the current screen can
// carry on after a re-prompt and a non-nil error when the screen has to end.
func (h *Handler) report(ctx context.Context, err error) error {
	var handled *reportedError
	switch {
	case err == nil:
		return nil
	case ctx.Err() != nil:
		return ctx.Err()
	case errors.Is(err, console.ErrAborted), errors.As(err, &handled):
		return nil
	}

	lg := zctx.From(ctx)
	if msg, ok := describe(err); ok {
		lg.Debug("Input rejected", zap.Error(err))
		h.out.Error("%s", msg)
		return nil
	}

	lg.Error("Operation failed", zap.Error(err))
	h.out.Error("Das hat leider nicht geklappt: %v", err)
	return &reportedError{err: err}
}

// describe converts recoverable domain errors to operator messages.
func describe(err error) (string, bool) {
	var rangeErr *order.OutOfRangeError
	if errors.As(err, &rangeErr) {
		return fmt.Sprintf("Die Anzahl für Artikel %s muss zwischen %d und %d liegen.",
			rangeErr.ArticleID, rangeErr.Min, rangeErr.Max), true
	}

	var refErr *order.InvalidReferenceError
	if errors.As(err, &refErr) {
		kind := "Datensatz"
		switch refErr.Kind {
		case order.KindClient:
			kind = "Kunde"
		case order.KindArticle:
			kind = "Artikel"
		}
		return fmt.Sprintf("%s %s wurde nicht gefunden.", kind, refErr.ID), true
	}

	switch {
	case errors.Is(err, order.ErrEmptyPositions):
		return "Eine Bestellung braucht mindestens einen Artikel.", true
	case errors.Is(err, errNoClients):
		return "Es sind keine Kunden vorhanden.", true
	case errors.Is(err, errNoArticles):
		return "Es sind keine bestellbaren Artikel vorhanden.", true
	case errors.Is(err, article.ErrInvalid), errors.Is(err, client.ErrInvalid):
		return fmt.Sprintf("Ungültige Eingabe: %v", err), true
	case errors.Is(err, user.ErrInvalidUsername):
		return "Dieser Benutzername ist nicht zulässig!", true
	case errors.Is(err, user.ErrUsernameTaken):
		return "Dieser Benutzername ist bereits vergeben!", true
	case errors.Is(err, user.ErrEmptyPassword):
		return "Das Passwort darf nicht leer sein.", true
	case errors.Is(err, user.ErrBadCredentials):
		return "Benutzername oder Passwort nicht gefunden.", true
	case errors.Is(err, user.ErrForbidden):
		return "Diese Aktion ist nur für Administratoren verfügbar.", true
	case errors.Is(err, article.ErrNotFound),
		errors.Is(err, client.ErrNotFound),
		errors.Is(err, order.ErrNotFound),
		errors.Is(err, user.ErrNotFound):
		return "Der Datensatz wurde nicht gefunden.", true
	}
	return "", false
}
