package handler

import (
	"context"
	"fmt"
	"math"

	"github.com/shopspring/decimal"

	"github.com/xenking/ercm/internal/console"
	"github.com/xenking/ercm/internal/domain/article"
	"github.com/xenking/ercm/internal/domain/order"
)

var (
	hundred   = decimal.NewFromInt(100)
	maxAmount = decimal.New(1, 9)
)

// articleField asks for one attribute of an article and stores the answer in a.
type articleField struct {
	field article.Field
	title string
	ask   func(ctx context.Context, a *article.Article) error
}

func (h *Handler) articleFields() []articleField {
	return []articleField{
		{article.FieldDescription, "Bezeichnung", func(ctx context.Context, a *article.Article) (err error) {
			a.Description, err = h.ask.Text(ctx, "Bezeichnung des Artikels eingeben:", a.Description, false)
			return err
		}},
		{article.FieldDate, "Markteinführungsdatum", func(ctx context.Context, a *article.Article) (err error) {
			a.Date, err = h.ask.Date(ctx, "Ab wann ist der Artikel bestellbar?", a.Date)
			return err
		}},
		{article.FieldPrice, "Preis", func(ctx context.Context, a *article.Article) (err error) {
			a.Price, err = h.ask.Decimal(ctx, "Preis pro Stück eingeben:", a.Price, decimal.Zero, maxAmount)
			return err
		}},
		{article.FieldDeliveryTime, "Lieferzeit", func(ctx context.Context, a *article.Article) (err error) {
			a.DeliveryTime, err = h.ask.Int(ctx, "Lieferzeit in Tagen eingeben:", a.DeliveryTime, 0, math.MaxInt32)
			return err
		}},
		{article.FieldMinOrderLength, "Mindestbestellmenge", func(ctx context.Context, a *article.Article) (err error) {
			a.MinOrderLength, err = h.ask.Int(ctx, "Mindestbestellmenge eingeben:", a.MinOrderLength, 0, math.MaxInt32)
			return err
		}},
		{article.FieldMaxOrderLength, "Maximalbestellmenge", func(ctx context.Context, a *article.Article) (err error) {
			a.MaxOrderLength, err = h.ask.Int(ctx, "Maximalbestellmenge eingeben:", a.MaxOrderLength, a.MinOrderLength, math.MaxInt32)
			return err
		}},
		{article.FieldDiscountLength, "Rabattmenge", func(ctx context.Context, a *article.Article) (err error) {
			a.DiscountLength, err = h.ask.Int(ctx, "Ab welcher Stückzahl gilt der Rabatt?", a.DiscountLength, 0, math.MaxInt32)
			return err
		}},
		{article.FieldDiscountPercent, "Rabatt", func(ctx context.Context, a *article.Article) (err error) {
			a.DiscountPercent, err = h.ask.Decimal(ctx, "Rabatt in Prozent eingeben:", a.DiscountPercent, decimal.Zero, hundred)
			return err
		}},
	}
}

func (h *Handler) articleMenu(ctx context.Context) error {
	return h.menu(ctx, "Artikelverwaltung", "Zurück gehen", h.withSnapshot(func(s *snapshot) []action {
		return []action{
			{"Artikel nach ID suchen", func(ctx context.Context) error {
				return h.findArticle(ctx, s.articles, articleChoicesByID)
			}},
			{"Artikel nach Bezeichnung suchen", func(ctx context.Context) error {
				return h.findArticle(ctx, s.articles, articleChoicesByDescription)
			}},
			{"Artikel anlegen", h.createArticle},
			{"Artikel löschen", func(ctx context.Context) error {
				return h.deleteArticles(ctx, s.articles)
			}},
		}
	}))
}

func (h *Handler) findArticle(ctx context.Context, articles []article.Article, choices func([]article.Article) []console.Choice) error {
	if len(articles) == 0 {
		h.out.Warning("Es sind keine Artikel vorhanden.")
		return nil
	}
	id, err := h.ask.Select(ctx, "Welchen Artikel möchten Sie auswählen?", choices(articles))
	if err != nil {
		return err
	}
	return h.articleActions(ctx, id)
}

func (h *Handler) articleActions(ctx context.Context, id string) error {
	return h.menu(ctx, "Was möchten Sie mit dem Artikel tun?", "Zurück gehen", h.withSnapshot(func(s *snapshot) []action {
		a, ok := article.Find(s.articles, id)
		if !ok {
			return nil
		}
		h.printArticle(a)
		return []action{
			{"Artikel bearbeiten", func(ctx context.Context) error {
				return h.editArticle(ctx, a)
			}},
			{"Statistik anzeigen", func(context.Context) error {
				h.printArticleStats(a, order.StatsForArticle(s.orders, a.ID))
				return nil
			}},
			{"Bestellung für diesen Artikel erfassen", func(ctx context.Context) error {
				return h.createOrder(ctx, orderPreset{articleID: a.ID})
			}},
		}
	}))
}

func (h *Handler) createArticle(ctx context.Context) error {
	if err := h.requireAdmin(); err != nil {
		return err
	}
	for {
		a := &article.Article{
			ID:           h.newID(),
			Date:         h.today(),
			DeliveryTime: article.DefaultDeliveryTime,
		}
		for _, f := range h.articleFields() {
			if err := f.ask(ctx, a); err != nil {
				return err
			}
		}
		if err := a.Validate(); err != nil {
			return err
		}
		if err := h.articles.Create(ctx, a); err != nil {
			return err
		}
		logMutation(ctx, "articles", "create", a.ID)
		h.out.Success("Erfolgreich hinzugefügt!")

		more, err := h.ask.Confirm(ctx, "Möchten Sie einen weiteren Artikel hinzufügen?")
		if err != nil || !more {
			return err
		}
	}
}

func (h *Handler) editArticle(ctx context.Context, a *article.Article) error {
	if err := h.requireAdmin(); err != nil {
		return err
	}
	fields := h.articleFields()
	choices := make([]console.Choice, 0, len(fields))
	for _, f := range fields {
		choices = append(choices, console.Choice{Title: f.title, Value: string(f.field)})
	}
	picked, err := h.ask.Select(ctx, "Was möchten Sie ändern?", choices)
	if err != nil {
		return err
	}

	edited := *a
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
		if err := h.articles.Update(ctx, &edited, f.field); err != nil {
			return err
		}
		logMutation(ctx, "articles", "edit:"+picked, a.ID)
		h.out.Success("Erfolgreich geändert!")
	}
	return nil
}

func (h *Handler) deleteArticles(ctx context.Context, articles []article.Article) error {
	if err := h.requireAdmin(); err != nil {
		return err
	}
	if len(articles) == 0 {
		h.out.Warning("Es sind keine Artikel vorhanden.")
		return nil
	}
	ids, err := h.ask.MultiSelect(ctx, "Welche Artikel möchten Sie löschen?", articleChoicesByDescription(articles))
	if err != nil || len(ids) == 0 {
		return err
	}
	ok, err := h.ask.Confirm(ctx, fmt.Sprintf("%d Artikel wirklich löschen?", len(ids)))
	if err != nil || !ok {
		return err
	}
	if err := h.articles.Delete(ctx, ids); err != nil {
		return err
	}
	logMutation(ctx, "articles", "delete", ids...)
	h.out.Success("Erfolgreich gelöscht!")
	return nil
}

func (h *Handler) printArticle(a *article.Article) {
	f := h.out.Format()
	h.out.Title(a.Description)
	h.out.Field("ID:", a.ID)
	h.out.Field("Bestellbar ab:", f.Date(a.Date))
	h.out.Field("Preis:", f.Money(a.Price))
	h.out.Field("Lieferzeit:", fmt.Sprintf("%s Tage", f.Int(a.DeliveryTime)))
	h.out.Field("Bestellmenge:", fmt.Sprintf("%s bis %s Stück", f.Int(a.MinOrderLength), f.Int(a.MaxOrderLength)))
	h.out.Field("Rabatt:", fmt.Sprintf("%s ab %s Stück", f.Percent(a.DiscountPercent), f.Int(a.DiscountLength)))
}

func (h *Handler) printArticleStats(a *article.Article, st order.ArticleStats) {
	f := h.out.Format()
	h.out.Title("Statistik: " + a.Description)
	h.out.Field("Bestellungen:", f.Int(st.Orders))
	h.out.Field("Bestellte Stück:", f.Int(st.Units))
	h.out.Field("Umsatz:", f.Money(st.Revenue))
}

func articleChoicesByID(articles []article.Article) []console.Choice {
	out := make([]console.Choice, 0, len(articles))
	for _, a := range articles {
		out = append(out, console.Choice{Title: a.ID, Value: a.ID})
	}
	return out
}

func articleChoicesByDescription(articles []article.Article) []console.Choice {
	out := make([]console.Choice, 0, len(articles))
	for _, a := range articles {
		out = append(out, console.Choice{Title: a.Description, Value: a.ID})
	}
	return out
}
