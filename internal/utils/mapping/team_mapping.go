package mapping

import (
	"github.com/Garvkhullar/cashflow4.0-official/internal/core/domain"
	"github.com/Garvkhullar/cashflow4.0-official/internal/models"
)

// convertSlice maps every element and never returns nil, so stored JSON is always an array.
func convertSlice[From, To any](in []From, fn func(From) To) []To {
	out := make([]To, len(in))
	for i, v := range in {
		out[i] = fn(v)
	}
	return out
}

func toModelEMI(d domain.EMISchedule) models.EMISchedule {
	return models.EMISchedule{
		DealID:           d.DealID,
		TotalLoan:        d.TotalLoan,
		EMI:              d.EMI,
		InstallmentsLeft: d.InstallmentsLeft,
		InterestRate:     d.InterestRate,
	}
}

func toDomainEMI(m models.EMISchedule) domain.EMISchedule {
	return domain.EMISchedule{
		DealID:           m.DealID,
		TotalLoan:        m.TotalLoan,
		EMI:              m.EMI,
		InstallmentsLeft: m.InstallmentsLeft,
		InterestRate:     m.InterestRate,
	}
}

func toModelLot(d domain.Lot) models.Lot {
	return models.Lot{Name: d.Name, Quantity: d.Quantity, PurchasePrice: d.PurchasePrice}
}

func toDomainLot(m models.Lot) domain.Lot {
	return domain.Lot{Name: m.Name, Quantity: m.Quantity, PurchasePrice: m.PurchasePrice}
}

func toModelCardRecord(d domain.CardRecord) models.CardRecord {
	return models.CardRecord{CardID: d.CardID, Name: d.Name, Amount: d.Amount, Date: d.Date}
}

func toDomainCardRecord(m models.CardRecord) domain.CardRecord {
	return domain.CardRecord{CardID: m.CardID, Name: m.Name, Amount: m.Amount, Date: m.Date}
}

func identity[T any](v T) T { return v }

// ToModelTeam converts a domain Team to a model Team
func ToModelTeam(d domain.Team) models.Team {
	return models.Team{
		TeamID:              d.TeamID,
		TableID:             d.TableID,
		TableName:           d.TableName,
		TeamName:            d.TeamName,
		Code:                d.Code,
		Cash:                d.Cash,
		Income:              d.Income,
		PassiveIncome:       d.PassiveIncome,
		Assets:              d.Assets,
		Expenses:            d.Expenses,
		SmallDealLoan:       d.SmallDealLoan,
		BigDealLoan:         d.BigDealLoan,
		PersonalLoan:        d.PersonalLoan,
		StocksLoan:          d.StocksLoan,
		CryptoLoan:          d.CryptoLoan,
		SmallDealEmis:       convertSlice(d.SmallDealEmis, toModelEMI),
		BigDealEmis:         convertSlice(d.BigDealEmis, toModelEMI),
		Deals:               convertSlice(d.Deals, identity[string]),
		Stocks:              convertSlice(d.Stocks, toModelLot),
		Crypto:              convertSlice(d.Crypto, toModelLot),
		IsAssetsFrozen:      d.IsAssetsFrozen,
		PaydayFrozenTurn:    d.PaydayFrozenTurn,
		IsVacationOn:        d.IsVacationOn,
		VacationPaydaysLeft: d.VacationPaydaysLeft,
		NextPaydayTax:       d.NextPaydayTax,
		PaydayMultiplier:    d.PaydayMultiplier,
		LoanInterestRate:    d.LoanInterestRate,
		FutureCounter:       d.FutureCounter,
		OptionsCounter:      d.OptionsCounter,
		PaydayCounter:       d.PaydayCounter,
		Penalties:           convertSlice(d.Penalties, toModelCardRecord),
		Chances:             convertSlice(d.Chances, toModelCardRecord),
		Version:             d.Version,
		AuditFields:         toModelAudit(d.AuditFields),
	}
}

// ToDomainTeam converts a model Team to a domain Team
func ToDomainTeam(m models.Team) domain.Team {
	return domain.Team{
		TeamID:              m.TeamID,
		TableID:             m.TableID,
		TableName:           m.TableName,
		TeamName:            m.TeamName,
		Code:                m.Code,
		Cash:                m.Cash,
		Income:              m.Income,
		PassiveIncome:       m.PassiveIncome,
		Assets:              m.Assets,
		Expenses:            m.Expenses,
		SmallDealLoan:       m.SmallDealLoan,
		BigDealLoan:         m.BigDealLoan,
		PersonalLoan:        m.PersonalLoan,
		StocksLoan:          m.StocksLoan,
		CryptoLoan:          m.CryptoLoan,
		SmallDealEmis:       convertSlice(m.SmallDealEmis, toDomainEMI),
		BigDealEmis:         convertSlice(m.BigDealEmis, toDomainEMI),
		Deals:               convertSlice(m.Deals, identity[string]),
		Stocks:              convertSlice(m.Stocks, toDomainLot),
		Crypto:              convertSlice(m.Crypto, toDomainLot),
		IsAssetsFrozen:      m.IsAssetsFrozen,
		PaydayFrozenTurn:    m.PaydayFrozenTurn,
		IsVacationOn:        m.IsVacationOn,
		VacationPaydaysLeft: m.VacationPaydaysLeft,
		NextPaydayTax:       m.NextPaydayTax,
		PaydayMultiplier:    m.PaydayMultiplier,
		LoanInterestRate:    m.LoanInterestRate,
		FutureCounter:       m.FutureCounter,
		OptionsCounter:      m.OptionsCounter,
		PaydayCounter:       m.PaydayCounter,
		Penalties:           convertSlice(m.Penalties, toDomainCardRecord),
		Chances:             convertSlice(m.Chances, toDomainCardRecord),
		Version:             m.Version,
		AuditFields:         toDomainAudit(m.AuditFields),
	}
}

// ToDomainTeamSlice converts a slice of model Teams to a slice of domain Teams
func ToDomainTeamSlice(ms []models.Team) []domain.Team {
	return convertSlice(ms, ToDomainTeam)
}

func toModelAudit(d domain.AuditFields) models.AuditFields {
	return models.AuditFields(d)
}

func toDomainAudit(m models.AuditFields) domain.AuditFields {
	return domain.AuditFields(m)
}
