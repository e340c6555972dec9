package handler

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/xenking/ercm/internal/console"
	"github.com/xenking/ercm/internal/domain/client"
	"github.com/xenking/ercm/internal/domain/order"
)

// clientField asks for one attribute of a client and stores the answer in c.
type clientField struct {
	field client.Field
	title string
	ask   func(ctx context.Context, c *client.Client) error
}

func (h *Handler) clientFields() []clientField {
	text := func(field client.Field, title, message string, get func(c *client.Client) *string) clientField {
		return clientField{field, title, func(ctx context.Context, c *client.Client) (err error) {
			p := get(c)
			*p, err = h.ask.Text(ctx, message, *p, false)
			return err
		}}
	}
	return []clientField{
		text(client.FieldFirstname, "Vorname", "Vornamen eingeben:", func(c *client.Client) *string { return &c.Firstname }),
		text(client.FieldLastname, "Nachname", "Nachnamen eingeben:", func(c *client.Client) *string { return &c.Lastname }),
		text(client.FieldStreet, "Straße", "Straße eingeben:", func(c *client.Client) *string { return &c.Street }),
		text(client.FieldHouseNo, "Hausnummer", "Hausnummer eingeben:", func(c *client.Client) *string { return &c.HouseNo }),
		text(client.FieldCity, "Ort", "Ort eingeben:", func(c *client.Client) *string { return &c.City }),
		text(client.FieldZip, "Postleitzahl", "Postleitzahl eingeben:", func(c *client.Client) *string { return &c.Zip }),
		{client.FieldDiscount, "Kundenrabatt", func(ctx context.Context, c *client.Client) (err error) {
			c.Discount, err = h.ask.Decimal(ctx, "Kundenrabatt in Prozent eingeben:", c.Discount, decimal.Zero, hundred)
			return err
		}},
	}
}

func (h *Handler) clientMenu(ctx context.Context) error {
	return h.menu(ctx, "Kundenverwaltung", "Zurück gehen", h.withSnapshot(func(s *snapshot) []action {
		return []action{
			{"Kunde nach ID suchen", func(ctx context.Context) error {
				return h.findClient(ctx, s.clients, clientChoicesByID)
			}},
			{"Kunde nach Name suchen", func(ctx context.Context) error {
				return h.findClient(ctx, s.clients, clientChoicesByName)
			}},
			{"Kunde anlegen", h.createClient},
			{"Kunden löschen", func(ctx context.Context) error {
				return h.deleteClients(ctx, s.clients)
			}},
		}
	}))
}

func (h *Handler) findClient(ctx context.Context, clients []client.Client, choices func([]client.Client) []console.Choice) error {
	if len(clients) == 0 {
		return errNoClients
	}
	id, err := h.ask.Select(ctx, "Welchen Kunden möchten Sie auswählen?", choices(clients))
	if err != nil {
		return err
	}
	return h.clientActions(ctx, id)
}

func (h *Handler) clientActions(ctx context.Context, id string) error {
	return h.menu(ctx, "Was möchten Sie mit dem Kunden tun?", "Zurück gehen", h.withSnapshot(func(s *snapshot) []action {
		c, ok := client.Find(s.clients, id)
		if !ok {
			return nil
		}
		h.printClient(c)
		return []action{
			{"Kunde bearbeiten", func(ctx context.Context) error {
				return h.editClient(ctx, c)
			}},
			{"Statistik anzeigen", func(context.Context) error {
				h.printClientStats(c, order.StatsForClient(s.orders, c.ID))
				return nil
			}},
			{"Bestellung für diesen Kunden erfassen", func(ctx context.Context) error {
				return h.createOrder(ctx, orderPreset{clientID: c.ID})
			}},
		}
	}))
}

func (h *Handler) createClient(ctx context.Context) error {
	if err := h.requireAdmin(); err != nil {
		return err
	}
	for {
		c := &client.Client{ID: h.newID(), Discount: decimal.Zero}
		for _, f := range h.clientFields() {
			if err := f.ask(ctx, c); err != nil {
				return err
			}
		}
		if err := c.Validate(); err != nil {
			return err
		}
		if err := h.clients.Create(ctx, c); err != nil {
			return err
		}
		logMutation(ctx, "clients", "create", c.ID)
		h.out.Success("Erfolgreich hinzugefügt!")

		more, err := h.ask.Confirm(ctx, "Möchten Sie einen weiteren Kunden hinzufügen?")
		if err != nil || !more {
			return err
		}
	}
}

func (h *Handler) editClient(ctx context.Context, c *client.Client) error {
	if err := h.requireAdmin(); err != nil {
		return err
	}
	fields := h.clientFields()
	choices := make([]console.Choice, 0, len(fields))
	for _, f := range fields {
		choices = append(choices, console.Choice{Title: f.title, Value: string(f.field)})
	}
	picked, err := h.ask.Select(ctx, "Was möchten Sie ändern?", choices)
	if err != nil {
		return err
	}

	edited := *c
	for _, f := range fields {
		if string(f.field) != picked {
			continue
		}
		if err := f.ask(ctx, &edited); err != nil {
			return err
		}
		if err := edited.Validate(); err != nil {
			return err
		}
		if err := h.clients.Update(ctx, &edited, f.field); err != nil {
			return err
		}
		logMutation(ctx, "clients", "edit:"+picked, c.ID)
		h.out.Success("Erfolgreich geändert!")
	}
	return nil
}

// deleteClients removes clients without touching the orders that reference
// them.
func (h *Handler) deleteClients(ctx context.Context, clients []client.Client) error {
	if err := h.requireAdmin(); err != nil {
		return err
	}
	if len(clients) == 0 {
		return errNoClients
	}
	ids, err := h.ask.MultiSelect(ctx, "Welche Kunden möchten Sie löschen?", clientChoicesByName(clients))
	if err != nil || len(ids) == 0 {
		return err
	}
	ok, err := h.ask.Confirm(ctx, fmt.Sprintf("%d Kunden wirklich löschen?", len(ids)))
	if err != nil || !ok {
		return err
	}
	if err := h.clients.Delete(ctx, ids); err != nil {
		return err
	}
	logMutation(ctx, "clients", "delete", ids...)
	h.out.Success("Erfolgreich gelöscht!")
	return nil
}

func (h *Handler) printClient(c *client.Client) {
	h.out.Title(c.FullName())
	h.out.Field("ID:", c.ID)
	h.out.Field("Anschrift:", fmt.Sprintf("%s %s, %s %s", c.Street, c.HouseNo, c.Zip, c.City))
	h.out.Field("Kundenrabatt:", h.out.Format().Percent(c.Discount))
}

func (h *Handler) printClientStats(c *client.Client, st order.ClientStats) {
	f := h.out.Format()
	h.out.Title("Statistik: " + c.FullName())
	h.out.Field("Bestellungen:", f.Int(st.Orders))
	h.out.Field("Gesamtumsatz:", f.Money(st.Total))
	h.out.Field("Durchschnittlicher Bestellwert:", f.Money(st.Average))
}

func clientChoicesByID(clients []client.Client) []console.Choice {
	out := make([]console.Choice, 0, len(clients))
	for _, c := range clients {
		out = append(out, console.Choice{Title: c.ID, Value: c.ID})
	}
	return out
}

func clientChoicesByName(clients []client.Client) []console.Choice {
	out := make([]console.Choice, 0, len(clients))
	for _, c := range clients {
		out = append(out, console.Choice{Title: c.FullName(), Value: c.ID})
	}
	return out
}
