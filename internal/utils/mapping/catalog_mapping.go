package mapping

import (
	"github.com/Garvkhullar/cashflow4.0-official/internal/core/domain"
	"github.com/Garvkhullar/cashflow4.0-official/internal/models"
	"github.com/shopspring/decimal"
)

// ToModelDeal converts a domain Deal to a model Deal
func ToModelDeal(d domain.Deal) models.Deal {
	m := models.Deal{
		DealID:        d.DealID,
		DealType:      string(d.DealType),
		Name:          d.Name,
		Cost:          d.Cost,
		PassiveIncome: d.PassiveIncome,
		Owners: convertSlice(d.Owners, func(o domain.DealOwner) models.DealOwner {
			return models.DealOwner{TableID: o.TableID, TeamID: o.TeamID}
		}),
	}
	if d.DownPayment.Valid {
		dp := d.DownPayment.Decimal
		m.DownPayment = &dp
	}
	return m
}

// ToDomainDeal converts a model Deal to a domain Deal
func ToDomainDeal(m models.Deal) domain.Deal {
	d := domain.Deal{
		DealID:        m.DealID,
		DealType:      domain.DealClass(m.DealType),
		Name:          m.Name,
		Cost:          m.Cost,
		PassiveIncome: m.PassiveIncome,
		Owners: convertSlice(m.Owners, func(o models.DealOwner) domain.DealOwner {
			return domain.DealOwner{TableID: o.TableID, TeamID: o.TeamID}
		}),
	}
	if m.DownPayment != nil {
		d.DownPayment = decimal.NewNullDecimal(*m.DownPayment)
	}
	return d
}

// ToDomainDealSlice converts a slice of model Deals to a slice of domain Deals
func ToDomainDealSlice(ms []models.Deal) []domain.Deal {
	return convertSlice(ms, ToDomainDeal)
}

// ToModelCard converts a domain Card to a model Card
func ToModelCard(d domain.Card) models.Card {
	return models.Card{
		CardID:      d.CardID,
		Kind:        string(d.Kind),
		Name:        d.Name,
		Amount:      d.Amount,
		Description: d.Description,
	}
}

// ToDomainCard converts a model Card to a domain Card
func ToDomainCard(m models.Card) domain.Card {
	return domain.Card{
		CardID:      m.CardID,
		Kind:        domain.CardKind(m.Kind),
		Name:        m.Name,
		Amount:      m.Amount,
		Description: m.Description,
	}
}

// ToDomainCardSlice converts a slice of model Cards to a slice of domain Cards
func ToDomainCardSlice(ms []models.Card) []domain.Card {
	return convertSlice(ms, ToDomainCard)
}
