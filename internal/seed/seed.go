// Package seed loads the bundled deal and card catalog and writes it to a store.
package seed

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/Garvkhullar/cashflow4.0-official/internal/core/domain"
	portsrepo "github.com/Garvkhullar/cashflow4.0-official/internal/core/ports/repositories"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

//go:embed catalog.json
var catalogJSON []byte

type rawDeal struct {
	Name          string          `json:"name"`
	Cost          decimal.Decimal `json:"cost"`
	PassiveIncome decimal.Decimal `json:"passiveIncome"`
	DealType      string          `json:"dealType"`
}

type rawCard struct {
	Name        string          `json:"name"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
}

type rawCatalog struct {
	Deals     []rawDeal `json:"deals"`
	Chances   []rawCard `json:"chances"`
	Penalties []rawCard `json:"penalties"`
}

// Catalog is the parsed seed data.
type Catalog struct {
	Deals []domain.Deal
	Cards []domain.Card
}

// Result counts what Apply wrote.
type Result struct {
	Deals     int
	Chances   int
	Penalties int
}

// DealID derives a stable id from the deal name so reseeding updates rows in place.
func DealID(name string) string {
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte("deal:"+strings.ToLower(name))).String()
}

// CardID derives a stable id from the card kind and name.
func CardID(kind domain.CardKind, name string) string {
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte(string(kind)+":"+strings.ToLower(name))).String()
}

// Load parses the embedded catalog.
func Load() (*Catalog, error) {
	return Parse(catalogJSON)
}

// Parse validates raw catalog JSON. Unknown fields are rejected.
func Parse(data []byte) (*Catalog, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()

	var raw rawCatalog
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}

	catalog := &Catalog{
		Deals: make([]domain.Deal, 0, len(raw.Deals)),
		Cards: make([]domain.Card, 0, len(raw.Chances)+len(raw.Penalties)),
	}
	seen := make(map[string]struct{})

	for _, d := range raw.Deals {
		class, err := domain.ParseDealClass(d.DealType)
		if err != nil {
			return nil, fmt.Errorf("deal %q: %w", d.Name, err)
		}
		if strings.TrimSpace(d.Name) == "" || !d.Cost.IsPositive() || d.PassiveIncome.IsNegative() {
			return nil, fmt.Errorf("deal %q has an empty name, non-positive cost or negative income", d.Name)
		}
		id := DealID(d.Name)
		if _, dup := seen[id]; dup {
			return nil, fmt.Errorf("deal %q listed twice", d.Name)
		}
		seen[id] = struct{}{}
		catalog.Deals = append(catalog.Deals, domain.Deal{
			DealID:        id,
			DealType:      class,
			Name:          d.Name,
			Cost:          d.Cost,
			PassiveIncome: d.PassiveIncome,
			Owners:        []domain.DealOwner{},
		})
	}

	addCards := func(kind domain.CardKind, cards []rawCard) error {
		for _, c := range cards {
			if strings.TrimSpace(c.Name) == "" {
				return fmt.Errorf("%s card without a name", kind)
			}
			if kind == domain.CardPenalty && !c.Amount.IsPositive() {
				return fmt.Errorf("penalty %q must have a positive amount", c.Name)
			}
			id := CardID(kind, c.Name)
			if _, dup := seen[id]; dup {
				return fmt.Errorf("%s card %q listed twice", kind, c.Name)
			}
			seen[id] = struct{}{}
			catalog.Cards = append(catalog.Cards, domain.Card{
				CardID:      id,
				Kind:        kind,
				Name:        c.Name,
				Amount:      c.Amount,
				Description: c.Description,
			})
		}
		return nil
	}
	if err := addCards(domain.CardChance, raw.Chances); err != nil {
		return nil, err
	}
	if err := addCards(domain.CardPenalty, raw.Penalties); err != nil {
		return nil, err
	}

	return catalog, nil
}

// Apply upserts every catalog entry. Deal owners already recorded are kept.
func Apply(ctx context.Context, catalog *Catalog, deals portsrepo.DealWriter, cards portsrepo.CardWriter) (Result, error) {
	var res Result
	for _, d := range catalog.Deals {
		if err := deals.SaveDeal(ctx, d); err != nil {
			return res, fmt.Errorf("seeding deal %q: %w", d.Name, err)
		}
		res.Deals++
	}
	for _, c := range catalog.Cards {
		if err := cards.SaveCard(ctx, c); err != nil {
			return res, fmt.Errorf("seeding %s card %q: %w", c.Kind, c.Name, err)
		}
		if c.Kind == domain.CardChance {
			res.Chances++
		} else {
			res.Penalties++
		}
	}
	return res, nil
}
