package ledger

import (
	"github.com/Garvkhullar/cashflow4.0-official/internal/core/domain"
	"github.com/Garvkhullar/cashflow4.0-official/internal/utils"
	"github.com/shopspring/decimal"
)

// FreezePhase records how the freeze state machine treated a payday.
type FreezePhase int

const (
	// NotFrozen is a regular payday.
	NotFrozen FreezePhase = iota
	// FrozenExpensesOnly charged expenses with zero income.
	FrozenExpensesOnly
	// FrozenReleased unfroze the team and paid the full net.
	FrozenReleased
)

// PaydaySummary reports the values one settlement produced.
type PaydaySummary struct {
	PaydayNumber         int
	TaxExempt            bool
	Multiplier           decimal.Decimal
	EMIExpense           decimal.Decimal
	PersonalLoanInterest decimal.Decimal
	Expenses             decimal.Decimal
	Net                  decimal.Decimal
	Tax                  decimal.Decimal
	Credited             decimal.Decimal
	Shortfall            decimal.Decimal
	Phase                FreezePhase
}

// Settlement carries one payday's working values between steps.
// The steps are exported so the turn sequencer owns their order.
type Settlement struct {
	engine *Engine
	team   *domain.Team
	trail  *Trail
	sum    PaydaySummary
}

// BeginPayday opens a settlement for t.
func (e *Engine) BeginPayday(t *domain.Team, trail *Trail) *Settlement {
	return &Settlement{
		engine: e,
		team:   t,
		trail:  trail,
		sum:    PaydaySummary{Multiplier: decimal.NewFromInt(1)},
	}
}

// TickCounters decrements running future/options counters.
func (s *Settlement) TickCounters() {
	t := s.team
	for _, c := range []Counter{CounterFuture, CounterOptions} {
		f := c.field(t)
		if *f <= 0 {
			continue
		}
		*f--
		if *f == 0 {
			s.trail.Addf("Team %s: %s position expired.", t.TeamName, c)
		}
	}
}

// ResetExpenses drops expenses back to the base amount until they are accrued.
func (s *Settlement) ResetExpenses() {
	s.team.Expenses = s.engine.rules.BaseExpense
}

// ApplyVacation consumes one vacation payday, which makes this payday tax-exempt.
func (s *Settlement) ApplyVacation() {
	t := s.team
	if !t.IsVacationOn {
		return
	}
	if t.VacationPaydaysLeft > 0 {
		s.sum.TaxExempt = true
		t.VacationPaydaysLeft--
	}
	if t.VacationPaydaysLeft == 0 {
		t.IsVacationOn = false
		s.trail.Addf("Team %s: vacation is over.", t.TeamName)
	}
}

// ResolveMultiplier reads the market multiplier stored on the team.
func (s *Settlement) ResolveMultiplier() {
	if m := s.team.PaydayMultiplier; m.IsPositive() {
		s.sum.Multiplier = m
	}
}

// AmortizeEMIs pays one installment of every active schedule and drops
// schedules once exhausted. The final installment clears any rounding remainder.
func (s *Settlement) AmortizeEMIs() {
	t := s.team
	for _, class := range []domain.DealClass{domain.DealClassSmall, domain.DealClassBig} {
		emis := t.Emis(class)
		paid := decimal.Zero
		kept := (*emis)[:0]
		for _, e := range *emis {
			if e.Exhausted() {
				continue
			}
			installment := e.EMI
			if e.InstallmentsLeft == 1 || installment.GreaterThan(e.TotalLoan) {
				installment = e.TotalLoan
			}
			e.TotalLoan = clampZero(e.TotalLoan.Sub(installment))
			e.InstallmentsLeft--
			if e.TotalLoan.IsZero() {
				e.InstallmentsLeft = 0
			}
			paid = paid.Add(installment)
			s.trail.Addf("%s Deal EMI paid: %s. Remaining loan: %s. Installments left: %d",
				classLabel(class), utils.FormatMoneyFixed(installment), utils.FormatMoneyFixed(e.TotalLoan), e.InstallmentsLeft)
			if !e.Exhausted() {
				kept = append(kept, e)
			}
		}
		*emis = kept
		loan := domain.LoanForDeal(class).Balance(t)
		*loan = clampZero(loan.Sub(paid))
		s.sum.EMIExpense = s.sum.EMIExpense.Add(paid)
	}
}

// AccrueExpenses sets expenses to base plus EMIs paid plus personal-loan interest.
func (s *Settlement) AccrueExpenses() {
	s.sum.PersonalLoanInterest = s.engine.personalLoanInterest(s.team)
	s.team.Expenses = s.engine.rules.BaseExpense.
		Add(s.sum.EMIExpense).
		Add(s.sum.PersonalLoanInterest).
		Round(0)
	s.sum.Expenses = s.team.Expenses
}

// ComputeNet scales income minus expenses by the market multiplier.
func (s *Settlement) ComputeNet() {
	t := s.team
	s.sum.Net = t.Income.Add(t.PassiveIncome).Sub(t.Expenses).Mul(s.sum.Multiplier).Round(0)
}

// ApplyTax consumes the one-shot tax flag. Vacation exemption wins over tax,
// and a payday that pays expenses only leaves the flag armed.
func (s *Settlement) ApplyTax() {
	t := s.team
	if !t.NextPaydayTax {
		return
	}
	switch {
	case s.sum.TaxExempt:
		t.NextPaydayTax = false
		s.trail.Addf("Team %s: vacation exemption waived the payday tax.", t.TeamName)
	case t.IsAssetsFrozen && t.PaydayFrozenTurn == 0:
		return
	case !s.sum.Net.IsPositive():
		t.NextPaydayTax = false
		s.trail.Addf("Team %s: no tax due on a payday of %s.", t.TeamName, utils.FormatMoney(s.sum.Net))
	default:
		s.sum.Tax = s.sum.Net.Mul(s.engine.rules.TaxRate).Round(0)
		s.sum.Net = s.sum.Net.Sub(s.sum.Tax)
		t.NextPaydayTax = false
		s.trail.Addf("Team %s: tax of %s deducted at %s.", t.TeamName, utils.FormatMoney(s.sum.Tax), utils.FormatRate(s.engine.rules.TaxRate))
	}
}

// SettleCash runs the freeze state machine and moves money into cash.
func (s *Settlement) SettleCash() {
	t, e := s.team, s.engine
	switch {
	case t.IsAssetsFrozen && t.PaydayFrozenTurn == 0:
		s.sum.Phase = FrozenExpensesOnly
		s.sum.Credited = t.Expenses.Neg()
		t.PaydayFrozenTurn = 1
		s.trail.Addf("Team %s: Assets are frozen. Payday income is zero. Expenses of %s have been deducted.", t.TeamName, utils.FormatMoney(t.Expenses))
		s.sum.Shortfall = e.deduct(t, t.Expenses, s.trail)
	case t.IsAssetsFrozen:
		s.sum.Phase = FrozenReleased
		t.IsAssetsFrozen = false
		t.PaydayFrozenTurn = 0
		s.sum.Credited = s.sum.Net
		s.trail.Addf("Team %s: Assets are no longer frozen. Your net payday is %s.", t.TeamName, utils.FormatMoney(s.sum.Net))
		s.credit()
	default:
		s.sum.Credited = s.sum.Net
		s.trail.Addf("Team %s: You received a net payday of %s.", t.TeamName, utils.FormatMoney(s.sum.Net))
		s.credit()
	}
}

func (s *Settlement) credit() {
	if s.sum.Net.IsNegative() {
		s.sum.Shortfall = s.engine.deduct(s.team, s.sum.Net.Neg(), s.trail)
		return
	}
	s.team.Cash = s.team.Cash.Add(s.sum.Net)
}

// Finish bumps the payday counter and writes the summary line.
func (s *Settlement) Finish() PaydaySummary {
	t := s.team
	t.PaydayCounter++
	s.sum.PaydayNumber = t.PaydayCounter
	s.trail.Addf("Team %s payday #%d settled: income %s, passive %s, expenses %s, multiplier x%s, tax %s, cash now %s.",
		t.TeamName, t.PaydayCounter, utils.FormatMoney(t.Income), utils.FormatMoney(t.PassiveIncome),
		utils.FormatMoney(t.Expenses), s.sum.Multiplier, utils.FormatMoney(s.sum.Tax), utils.FormatMoney(t.Cash))
	return s.sum
}

func classLabel(c domain.DealClass) string {
	if c == domain.DealClassBig {
		return "Big"
	}
	return "Small"
}
