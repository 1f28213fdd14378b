package ledger

import (
	"fmt"
	"time"

	"github.com/Garvkhullar/cashflow4.0-official/internal/apperrors"
	"github.com/Garvkhullar/cashflow4.0-official/internal/core/domain"
	"github.com/Garvkhullar/cashflow4.0-official/internal/utils"
	"github.com/shopspring/decimal"
)

// Engine applies game actions to teams according to a fixed set of Rules.
type Engine struct {
	rules Rules
	now   func() time.Time
}

// NewEngine creates an Engine. The rules are expected to be validated already.
func NewEngine(rules Rules) *Engine {
	return &Engine{rules: rules, now: time.Now}
}

// WithClock swaps the time source used for card history entries.
func (e *Engine) WithClock(now func() time.Time) *Engine {
	e.now = now
	return e
}

// Rules returns the balance parameters the engine was built with.
func (e *Engine) Rules() Rules {
	return e.rules
}

// ExpensesFor computes base expense plus active EMIs plus personal-loan interest, rounded to whole units.
// It reads the team only, so calling it repeatedly yields the same value.
func (e *Engine) ExpensesFor(t *domain.Team) decimal.Decimal {
	total := e.rules.BaseExpense
	for _, s := range t.SmallDealEmis {
		if !s.Exhausted() {
			total = total.Add(s.EMI)
		}
	}
	for _, s := range t.BigDealEmis {
		if !s.Exhausted() {
			total = total.Add(s.EMI)
		}
	}
	total = total.Add(e.personalLoanInterest(t))
	return total.Round(0)
}

// RecomputeExpenses overwrites t.Expenses with ExpensesFor(t).
func (e *Engine) RecomputeExpenses(t *domain.Team) {
	t.Expenses = e.ExpensesFor(t)
}

func (e *Engine) personalLoanInterest(t *domain.Team) decimal.Decimal {
	if !t.PersonalLoan.IsPositive() {
		return decimal.Zero
	}
	return t.PersonalLoan.Mul(e.rules.PersonalLoanRate)
}

// Borrow adds a personal loan. Interest is only charged at the next payday.
func (e *Engine) Borrow(t *domain.Team, amount decimal.Decimal, trail *Trail) error {
	if err := requirePositive("loan amount", amount); err != nil {
		return err
	}
	t.PersonalLoan = t.PersonalLoan.Add(amount)
	t.Cash = t.Cash.Add(amount)
	e.RecomputeExpenses(t)
	trail.Addf("Team %s borrowed a loan of %s.", t.TeamName, utils.FormatMoney(amount))
	return nil
}

// Repay pays down the selected loan from cash.
// Deal loans only shrink expenses through EMI processing at payday.
func (e *Engine) Repay(t *domain.Team, amount decimal.Decimal, kind domain.LoanKind, trail *Trail) error {
	if err := requirePositive("repayment amount", amount); err != nil {
		return err
	}
	balance := kind.Balance(t)
	if amount.GreaterThan(*balance) {
		return fmt.Errorf("%w: only %s outstanding on %s", apperrors.ErrInsufficientFunds, utils.FormatMoney(*balance), kind)
	}
	if amount.GreaterThan(t.Cash) {
		return fmt.Errorf("%w: not enough cash to repay %s", apperrors.ErrInsufficientFunds, utils.FormatMoney(amount))
	}
	*balance = balance.Sub(amount)
	t.Cash = t.Cash.Sub(amount)
	e.RecomputeExpenses(t)
	trail.Addf("Team %s repaid %s of %s.", t.TeamName, utils.FormatMoney(amount), kind)
	return nil
}

// Freeze starts the two-payday freeze. Freezing again restarts it.
func (e *Engine) Freeze(t *domain.Team, trail *Trail) {
	t.IsAssetsFrozen = true
	t.PaydayFrozenTurn = 0
	trail.Addf("Team %s has had their assets frozen.", t.TeamName)
}

// SetTax arms the one-shot tax for the next payday.
func (e *Engine) SetTax(t *domain.Team, trail *Trail) {
	t.NextPaydayTax = true
	trail.Addf("Team %s will be taxed %s on their next payday.", t.TeamName, utils.FormatRate(e.rules.TaxRate))
}

// ToggleVacation starts or cancels the tax-exempt vacation countdown.
func (e *Engine) ToggleVacation(t *domain.Team, on bool, trail *Trail) {
	if on {
		t.IsVacationOn = true
		t.VacationPaydaysLeft = e.rules.VacationPaydays
		trail.Addf("Team %s went on vacation for %d paydays.", t.TeamName, t.VacationPaydaysLeft)
		return
	}
	t.IsVacationOn = false
	t.VacationPaydaysLeft = 0
	trail.Addf("Team %s is back from vacation.", t.TeamName)
}

// Counter names one of the decrementing buffs.
type Counter string

const (
	CounterFuture  Counter = "future"
	CounterOptions Counter = "options"
)

// ParseCounter validates a raw counter name.
func ParseCounter(s string) (Counter, error) {
	switch c := Counter(s); c {
	case CounterFuture, CounterOptions:
		return c, nil
	}
	return "", fmt.Errorf("%w: unknown counter %q", apperrors.ErrValidation, s)
}

func (c Counter) field(t *domain.Team) *int {
	if c == CounterOptions {
		return &t.OptionsCounter
	}
	return &t.FutureCounter
}

// ToggleCounter activates an idle counter for CounterPaydays paydays, or clears a running one.
func (e *Engine) ToggleCounter(t *domain.Team, c Counter, trail *Trail) {
	f := c.field(t)
	if *f > 0 {
		*f = 0
		trail.Addf("Team %s cancelled their %s position.", t.TeamName, c)
		return
	}
	*f = e.rules.CounterPaydays
	trail.Addf("Team %s opened a %s position for %d paydays.", t.TeamName, c, *f)
}

// CashUnit says how AdjustCash interprets its value.
type CashUnit string

const (
	UnitNumber  CashUnit = "number"
	UnitPercent CashUnit = "percent"
)

// CashOp says whether AdjustCash adds or deducts.
type CashOp string

const (
	OpAdd    CashOp = "add"
	OpDeduct CashOp = "deduct"
)

// CashAdjustment is a manual correction to a team's cash.
type CashAdjustment struct {
	Value decimal.Decimal
	Unit  CashUnit
	Op    CashOp
}

// AdjustCash applies a manual correction. Percentages are of current cash. Cash never drops below zero.
func (e *Engine) AdjustCash(t *domain.Team, adj CashAdjustment, trail *Trail) (decimal.Decimal, error) {
	if err := requirePositive("value", adj.Value); err != nil {
		return decimal.Zero, err
	}
	var delta decimal.Decimal
	switch adj.Unit {
	case UnitNumber:
		delta = adj.Value
	case UnitPercent:
		delta = t.Cash.Mul(adj.Value).Div(decimal.NewFromInt(100)).Round(2)
	default:
		return decimal.Zero, fmt.Errorf("%w: unknown unit %q", apperrors.ErrValidation, adj.Unit)
	}
	switch adj.Op {
	case OpAdd:
		t.Cash = t.Cash.Add(delta)
		trail.Addf("Team %s cash increased by %s.", t.TeamName, utils.FormatMoney(delta))
	case OpDeduct:
		if delta.GreaterThan(t.Cash) {
			delta = t.Cash
		}
		t.Cash = t.Cash.Sub(delta)
		trail.Addf("Team %s cash decreased by %s.", t.TeamName, utils.FormatMoney(delta))
	default:
		return decimal.Zero, fmt.Errorf("%w: unknown operation %q", apperrors.ErrValidation, adj.Op)
	}
	return delta, nil
}

// ApplyMarketMode rewrites the team's market-derived fields.
func (e *Engine) ApplyMarketMode(t *domain.Team, mode domain.MarketMode) {
	eff := e.rules.Effect(mode)
	t.PaydayMultiplier = eff.PaydayMultiplier
	t.LoanInterestRate = eff.LoanInterestRate
}

// NewTeam builds a team with starting balances under the given market mode.
func (e *Engine) NewTeam(teamID, tableID, tableName, teamName, code string, mode domain.MarketMode) *domain.Team {
	t := &domain.Team{
		TeamID:    teamID,
		TableID:   tableID,
		TableName: tableName,
		TeamName:  teamName,
		Code:      code,
		Cash:      e.rules.StartingCash,
		Income:    e.rules.StartingIncome,
	}
	e.ApplyMarketMode(t, mode)
	e.RecomputeExpenses(t)
	return t
}

// deduct takes amount from cash and turns any shortfall into personal loan.
func (e *Engine) deduct(t *domain.Team, amount decimal.Decimal, trail *Trail) decimal.Decimal {
	t.Cash = t.Cash.Sub(amount)
	if !t.Cash.IsNegative() {
		return decimal.Zero
	}
	shortfall := t.Cash.Neg()
	t.Cash = decimal.Zero
	t.PersonalLoan = t.PersonalLoan.Add(shortfall)
	trail.Addf("Team %s was short by %s, which was added to their personal loan.", t.TeamName, utils.FormatMoney(shortfall))
	return shortfall
}

func requirePositive(field string, v decimal.Decimal) error {
	if !v.IsPositive() {
		return fmt.Errorf("%w: %s must be greater than zero", apperrors.ErrValidation, field)
	}
	return nil
}

func clampZero(v decimal.Decimal) decimal.Decimal {
	if v.IsNegative() {
		return decimal.Zero
	}
	return v
}
