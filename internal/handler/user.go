package handler

import (
	"context"
	"fmt"

	"github.com/xenking/ercm/internal/console"
	"github.com/xenking/ercm/internal/domain/user"
)

func (h *Handler) userMenu(ctx context.Context) error {
	if err := h.requireAdmin(); err != nil {
		return err
	}
	return h.menu(ctx, "Nutzerverwaltung", "Zurück gehen", static(
		action{"Benutzer anlegen", h.createUser},
		action{"Benutzer bearbeiten", h.editUser},
		action{"Benutzer löschen", h.deleteUsers},
	))
}

func (h *Handler) createUser(ctx context.Context) error {
	if err := h.requireAdmin(); err != nil {
		return err
	}
	name, err := h.askUsername(ctx, "Neuen Benutzernamen eingeben:", "", "")
	if err != nil {
		return err
	}
	password, err := h.ask.Text(ctx, "Passwort eingeben:", "", false)
	if err != nil {
		return err
	}
	admin, err := h.ask.Confirm(ctx, "Soll der Benutzer Administratorrechte erhalten?")
	if err != nil {
		return err
	}

	u, err := h.users.Create(ctx, name, password, admin)
	if err != nil {
		return err
	}
	logMutation(ctx, "users", "create", u.ID)
	h.out.Success("Erfolgreich hinzugefügt!")
	return nil
}

// askUsername re-prompts until the name is valid and not used by an account
// other than exceptID.
func (h *Handler) askUsername(ctx context.Context, message, initial, exceptID string) (string, error) {
	for {
		name, err := h.ask.Text(ctx, message, initial, false)
		if err != nil {
			return "", err
		}
		err = h.users.CheckUsername(ctx, name, exceptID)
		if err == nil {
			return name, nil
		}
		if msg, ok := describe(err); ok {
			h.out.Error("%s", msg)
			continue
		}
		return "", err
	}
}

func (h *Handler) editUser(ctx context.Context) error {
	if err := h.requireAdmin(); err != nil {
		return err
	}
	u, err := h.pickUser(ctx)
	if err != nil || u == nil {
		return err
	}

	field, err := h.ask.Select(ctx, "Was möchten Sie ändern?", []console.Choice{
		{Title: "Benutzername", Value: string(user.FieldUsername)},
		{Title: "Passwort", Value: string(user.FieldPassword)},
		{Title: "Administratorrechte", Value: string(user.FieldIsAdmin)},
	})
	if err != nil {
		return err
	}

	switch user.Field(field) {
	case user.FieldUsername:
		name, err := h.askUsername(ctx, "Neuen Benutzernamen eingeben:", u.Username, u.ID)
		if err != nil {
			return err
		}
		err = h.users.Rename(ctx, u, name)
		if err != nil {
			return err
		}
	case user.FieldPassword:
		password, err := h.ask.Text(ctx, "Neues Passwort eingeben:", "", false)
		if err != nil {
			return err
		}
		if err := h.users.SetPassword(ctx, u, password); err != nil {
			return err
		}
	case user.FieldIsAdmin:
		admin, err := h.ask.Confirm(ctx, fmt.Sprintf("Soll %s Administratorrechte haben?", u.Username))
		if err != nil {
			return err
		}
		if err := h.users.SetAdmin(ctx, u, admin); err != nil {
			return err
		}
	}
	if h.session != nil && h.session.ID == u.ID {
		*h.session = *u
	}
	logMutation(ctx, "users", "edit:"+field, u.ID)
	h.out.Success("Erfolgreich geändert!")
	return nil
}

// deleteUsers removes accounts. The logged-in account is not offered.
func (h *Handler) deleteUsers(ctx context.Context) error {
	if err := h.requireAdmin(); err != nil {
		return err
	}
	users, err := h.users.List(ctx)
	if err != nil {
		return err
	}
	choices := make([]console.Choice, 0, len(users))
	for _, u := range users {
		if h.session != nil && u.ID == h.session.ID {
			continue
		}
		choices = append(choices, console.Choice{Title: u.Username, Value: u.ID})
	}
	if len(choices) == 0 {
		h.out.Warning("Es sind keine weiteren Benutzer vorhanden.")
		return nil
	}

	ids, err := h.ask.MultiSelect(ctx, "Welche Benutzer möchten Sie löschen?", choices)
	if err != nil || len(ids) == 0 {
		return err
	}
	ok, err := h.ask.Confirm(ctx, fmt.Sprintf("%d Benutzer wirklich löschen?", len(ids)))
	if err != nil || !ok {
		return err
	}
	if err := h.users.Delete(ctx, ids); err != nil {
		return err
	}
	logMutation(ctx, "users", "delete", ids...)
	h.out.Success("Erfolgreich gelöscht!")
	return nil
}

func (h *Handler) pickUser(ctx context.Context) (*user.User, error) {
	users, err := h.users.List(ctx)
	if err != nil {
		return nil, err
	}
	if len(users) == 0 {
		h.out.Warning("Es sind keine Benutzer vorhanden.")
		return nil, nil
	}
	choices := make([]console.Choice, 0, len(users))
	for _, u := range users {
		label := u.Username
		if u.IsAdmin {
			label += " (Admin)"
		}
		choices = append(choices, console.Choice{Title: label, Value: u.ID})
	}
	id, err := h.ask.Select(ctx, "Welchen Benutzer möchten Sie bearbeiten?", choices)
	if err != nil {
		return nil, err
	}
	for i := range users {
		if users[i].ID == id {
			return &users[i], nil
		}
	}
	return nil, user.ErrNotFound
}
