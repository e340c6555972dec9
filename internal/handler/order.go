package handler

import (
	"context"
	"fmt"

	"github.com/go-faster/errors"

	"github.com/xenking/ercm/internal/console"
	"github.com/xenking/ercm/internal/domain/article"
	"github.com/xenking/ercm/internal/domain/order"
)

// orderPreset preselects the client or the first article of a new order.
type orderPreset struct {
	clientID  string
	articleID string
}

func (h *Handler) orderMenu(ctx context.Context) error {
	return h.menu(ctx, "Bestellungsverwaltung", "Zurück gehen", h.withSnapshot(func(s *snapshot) []action {
		return []action{
			{"Bestellung nach ID suchen", func(ctx context.Context) error {
				return h.findOrder(ctx, s.orders, orderChoicesByID)
			}},
			{"Bestellung nach Beschreibung suchen", func(ctx context.Context) error {
				return h.findOrder(ctx, s.orders, orderChoicesByDescription)
			}},
			{"Bestellung anlegen", func(ctx context.Context) error {
				return h.createOrder(ctx, orderPreset{})
			}},
			{"Bestellungen löschen", func(ctx context.Context) error {
				return h.deleteOrders(ctx, s.orders)
			}},
		}
	}))
}

func (h *Handler) findOrder(ctx context.Context, orders []order.Order, choices func([]order.Order) []console.Choice) error {
	if len(orders) == 0 {
		h.out.Warning("Es sind keine Bestellungen vorhanden.")
		return nil
	}
	id, err := h.ask.Select(ctx, "Welche Bestellung möchten Sie auswählen?", choices(orders))
	if err != nil {
		return err
	}
	return h.orderActions(ctx, id)
}

func (h *Handler) orderActions(ctx context.Context, id string) error {
	return h.menu(ctx, "Was möchten Sie mit der Bestellung tun?", "Zurück gehen", h.withSnapshot(func(s *snapshot) []action {
		o, ok := lookupOrder(s.orders, id)
		if !ok {
			return nil
		}
		return []action{
			{"Bestellung anzeigen", func(context.Context) error {
				PrintSummary(h.out, order.Summarize(o, s.articles, s.clients))
				return nil
			}},
			{"Kunde ändern", func(ctx context.Context) error {
				return h.editOrderClient(ctx, s, o)
			}},
			{"Artikel ändern", func(ctx context.Context) error {
				return h.editOrderArticles(ctx, s, o)
			}},
		}
	}))
}

// createOrder collects a client and positions, prices and stores the order and
// offers to take the next one.
func (h *Handler) createOrder(ctx context.Context, preset orderPreset) error {
	for {
		s, err := h.load(ctx)
		if err != nil {
			return err
		}
		if len(s.clients) == 0 {
			return errNoClients
		}

		clientID := preset.clientID
		if clientID == "" {
			clientID, err = h.ask.Select(ctx, "Welcher Kunde hat die Bestellung getätigt?", clientChoicesByName(s.clients))
			if err != nil {
				return err
			}
		}
		lines, err := h.collectLines(ctx, s.articles, preset.articleID)
		if err != nil {
			return err
		}

		o, err := h.orders.Create(ctx, order.CreateRequest{ClientID: clientID, Lines: lines})
		if err != nil {
			return err
		}
		logMutation(ctx, "orders", "create", o.ID)
		h.out.Success("Erfolgreich hinzugefügt!")
		PrintSummary(h.out, order.Summarize(o, s.articles, s.clients))

		next, err := h.ask.Select(ctx, "Wie möchten Sie fortfahren?", []console.Choice{
			{Title: "Neue Bestellung aufnehmen", Value: "again"},
			{Title: "Zurück zur Auswahl", Value: "back"},
		})
		if err != nil || next != "again" {
			return err
		}
		preset = orderPreset{}
	}
}

// collectLines asks for positions until the operator declines to add another
// one. Only articles available today are offered.
func (h *Handler) collectLines(ctx context.Context, articles []article.Article, presetID string) ([]order.Line, error) {
	available := article.Available(articles, h.orders.Today())
	if len(available) == 0 {
		return nil, errNoArticles
	}
	if presetID != "" {
		if _, ok := article.Find(available, presetID); !ok {
			h.out.Warning("Der Artikel ist noch nicht bestellbar.")
			presetID = ""
		}
	}

	var lines []order.Line
	for {
		id := presetID
		presetID = ""
		if id == "" {
			var err error
			id, err = h.ask.Select(ctx, "Welchen Artikel hat der Kunde bestellt?", articleChoicesByDescription(available))
			if err != nil {
				return nil, err
			}
		}
		a, ok := article.Find(available, id)
		if !ok {
			return nil, &order.InvalidReferenceError{Kind: order.KindArticle, ID: id}
		}

		qty, err := h.ask.Int(ctx,
			fmt.Sprintf("In welcher Anzahl wurde %q bestellt? (%d bis %d Stück)", a.Description, a.MinOrderLength, a.MaxOrderLength),
			a.MinOrderLength, a.MinOrderLength, a.MaxOrderLength,
		)
		if err != nil {
			return nil, err
		}
		lines = append(lines, order.Line{ArticleID: a.ID, Quantity: qty})

		more, err := h.ask.Confirm(ctx, "Möchten Sie einen weiteren Artikel hinzufügen?")
		if err != nil {
			return nil, err
		}
		if !more {
			return lines, nil
		}
	}
}

func (h *Handler) editOrderClient(ctx context.Context, s *snapshot, o *order.Order) error {
	if len(s.clients) == 0 {
		return errNoClients
	}
	clientID, err := h.ask.Select(ctx, "Welcher Kunde hat die Bestellung getätigt?", clientChoicesByName(s.clients))
	if err != nil {
		return err
	}
	edited, err := h.orders.EditClient(ctx, o.ID, clientID)
	if err != nil {
		return err
	}
	logMutation(ctx, "orders", "edit:client", o.ID)
	h.out.Success("Erfolgreich geändert!")
	PrintSummary(h.out, order.Summarize(edited, s.articles, s.clients))
	return nil
}

func (h *Handler) editOrderArticles(ctx context.Context, s *snapshot, o *order.Order) error {
	lines, err := h.collectLines(ctx, s.articles, "")
	if err != nil {
		return err
	}
	edited, err := h.orders.EditArticles(ctx, o.ID, lines)
	if err != nil {
		return err
	}
	logMutation(ctx, "orders", "edit:positions", o.ID)
	h.out.Success("Erfolgreich geändert!")
	PrintSummary(h.out, order.Summarize(edited, s.articles, s.clients))
	return nil
}

func (h *Handler) deleteOrders(ctx context.Context, orders []order.Order) error {
	if len(orders) == 0 {
		h.out.Warning("Es sind keine Bestellungen vorhanden.")
		return nil
	}
	ids, err := h.ask.MultiSelect(ctx, "Welche Bestellungen möchten Sie löschen?", orderChoicesByDescription(orders))
	if err != nil || len(ids) == 0 {
		return err
	}
	ok, err := h.ask.Confirm(ctx, fmt.Sprintf("%d Bestellungen wirklich löschen?", len(ids)))
	if err != nil || !ok {
		return err
	}
	if err := h.orders.Delete(ctx, ids); err != nil {
		return errors.Wrap(err, "delete orders")
	}
	logMutation(ctx, "orders", "delete", ids...)
	h.out.Success("Erfolgreich gelöscht!")
	return nil
}

// PrintSummary prints the order overview shown after creating or editing an
// order.
func PrintSummary(out *console.Printer, s order.Summary) {
	f := out.Format()
	out.Title("Zusammenfassung der Bestellung")
	out.Field("ID der Bestellung:", s.OrderID)
	out.Field("Bestellung getätigt von:", s.ClientName)
	out.Field("Bestelldatum:", f.Date(s.OrderDate))
	out.Field("Frühestes Lieferdatum:", f.Date(s.DeliveryDate))
	out.Field("Bestellbetrag:", f.Money(s.Price))
	out.Field("Bestellte Artikel:", "")
	for _, l := range s.Lines {
		out.Bullet("%s, Anzahl: %s Stück, Positionsbetrag: %s", l.Article, f.Int(l.Amount), f.Money(l.PositionPrice))
	}
	out.Field("Gesamt gewährter Rabatt:", f.Percent(s.TotalDiscount))
	out.Field("Bestellbeschreibung:", s.Description)
}

func lookupOrder(orders []order.Order, id string) (*order.Order, bool) {
	for i := range orders {
		if orders[i].ID == id {
			return &orders[i], true
		}
	}
	return nil, false
}

func orderChoicesByID(orders []order.Order) []console.Choice {
	out := make([]console.Choice, 0, len(orders))
	for _, o := range orders {
		out = append(out, console.Choice{Title: o.ID, Value: o.ID})
	}
	return out
}

func orderChoicesByDescription(orders []order.Order) []console.Choice {
	out := make([]console.Choice, 0, len(orders))
	for _, o := range orders {
		out = append(out, console.Choice{Title: o.Description, Value: o.ID})
	}
	return out
}
