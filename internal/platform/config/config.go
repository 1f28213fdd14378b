package config

import (
	"fmt"
	"log"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/Garvkhullar/cashflow4.0-official/internal/core/domain"
	"github.com/Garvkhullar/cashflow4.0-official/internal/core/ledger"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// Store drivers accepted in STORE_DRIVER.
const (
	DriverPostgres = "postgres"
	DriverMongo    = "mongo"
)

// Config holds application configuration.
type Config struct {
	Port         string
	IsProduction bool

	StoreDriver    string
	DatabaseURL    string
	MongoURI       string
	MongoDatabase  string
	MigrationsPath string

	JWTSecret         string
	JWTExpiryDuration time.Duration
	JWTIssuer         string

	AdminUsername     string
	AdminPasswordHash string

	CORSAllowedOrigins []string
	LoginRateLimit     string
	LogTailLimit       int
	DiceSeed           uint64

	Game GameBalance
}

// GameBalance is the raw game balance read from the environment.
type GameBalance struct {
	BaseExpense      string
	TaxRate          string
	PersonalLoanRate string
	InstallmentPlans string
	VacationPaydays  int
	CounterPaydays   int
	DefaultLoanRate  string
	StartingCash     string
	StartingIncome   string
	BullMultiplier   string
	BullLoanRate     string
	BearMultiplier   string
	BearLoanRate     string
	NormalMultiplier string
	NormalLoanRate   string
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("PORT", "8080")
	v.SetDefault("IS_PRODUCTION", false)
	v.SetDefault("STORE_DRIVER", DriverPostgres)
	v.SetDefault("PGSQL_URL", "")
	v.SetDefault("MONGODB_URI", "mongodb://localhost:27017")
	v.SetDefault("MONGODB_DATABASE", "cashflow")
	v.SetDefault("MIGRATIONS_PATH", "file://migrations")
	v.SetDefault("JWT_SECRET", "a-very-secret-key-should-be-longer-and-random")
	v.SetDefault("JWT_EXPIRY_DURATION", "12h")
	v.SetDefault("JWT_ISSUER", "cashflow-game")
	v.SetDefault("ADMIN_USERNAME", "admin")
	v.SetDefault("ADMIN_PASSWORD_HASH", "")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	v.SetDefault("LOGIN_RATE_LIMIT", "10-M")
	v.SetDefault("LOG_TAIL_LIMIT", 50)
	v.SetDefault("DICE_SEED", 0)

	v.SetDefault("GAME_BASE_EXPENSE", "300000")
	v.SetDefault("GAME_TAX_RATE", "0.40")
	v.SetDefault("GAME_PERSONAL_LOAN_RATE", "0.18")
	v.SetDefault("GAME_INSTALLMENT_PLANS", "4:0.08,6:0.14,7:0.28")
	v.SetDefault("GAME_VACATION_PAYDAYS", 2)
	v.SetDefault("GAME_COUNTER_PAYDAYS", 3)
	v.SetDefault("GAME_DEFAULT_LOAN_RATE", "0.10")
	v.SetDefault("GAME_STARTING_CASH", "500000")
	v.SetDefault("GAME_STARTING_INCOME", "500000")
	v.SetDefault("GAME_MARKET_BULL_MULTIPLIER", "1.25")
	v.SetDefault("GAME_MARKET_BULL_LOAN_RATE", "0.07")
	v.SetDefault("GAME_MARKET_BEAR_MULTIPLIER", "0.75")
	v.SetDefault("GAME_MARKET_BEAR_LOAN_RATE", "0.18")
	v.SetDefault("GAME_MARKET_NORMAL_MULTIPLIER", "1")
	v.SetDefault("GAME_MARKET_NORMAL_LOAN_RATE", "0.10")
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	cfg := &Config{
		Port:              v.GetString("PORT"),
		IsProduction:      v.GetBool("IS_PRODUCTION"),
		StoreDriver:       strings.ToLower(v.GetString("STORE_DRIVER")),
		DatabaseURL:       v.GetString("PGSQL_URL"),
		MongoURI:          v.GetString("MONGODB_URI"),
		MongoDatabase:     v.GetString("MONGODB_DATABASE"),
		MigrationsPath:    v.GetString("MIGRATIONS_PATH"),
		JWTSecret:         v.GetString("JWT_SECRET"),
		JWTIssuer:         v.GetString("JWT_ISSUER"),
		AdminUsername:     v.GetString("ADMIN_USERNAME"),
		AdminPasswordHash: v.GetString("ADMIN_PASSWORD_HASH"),
		LoginRateLimit:    v.GetString("LOGIN_RATE_LIMIT"),
		LogTailLimit:      v.GetInt("LOG_TAIL_LIMIT"),
		DiceSeed:          v.GetUint64("DICE_SEED"),
		Game: GameBalance{
			BaseExpense:      v.GetString("GAME_BASE_EXPENSE"),
			TaxRate:          v.GetString("GAME_TAX_RATE"),
			PersonalLoanRate: v.GetString("GAME_PERSONAL_LOAN_RATE"),
			InstallmentPlans: v.GetString("GAME_INSTALLMENT_PLANS"),
			VacationPaydays:  v.GetInt("GAME_VACATION_PAYDAYS"),
			CounterPaydays:   v.GetInt("GAME_COUNTER_PAYDAYS"),
			DefaultLoanRate:  v.GetString("GAME_DEFAULT_LOAN_RATE"),
			StartingCash:     v.GetString("GAME_STARTING_CASH"),
			StartingIncome:   v.GetString("GAME_STARTING_INCOME"),
			BullMultiplier:   v.GetString("GAME_MARKET_BULL_MULTIPLIER"),
			BullLoanRate:     v.GetString("GAME_MARKET_BULL_LOAN_RATE"),
			BearMultiplier:   v.GetString("GAME_MARKET_BEAR_MULTIPLIER"),
			BearLoanRate:     v.GetString("GAME_MARKET_BEAR_LOAN_RATE"),
			NormalMultiplier: v.GetString("GAME_MARKET_NORMAL_MULTIPLIER"),
			NormalLoanRate:   v.GetString("GAME_MARKET_NORMAL_LOAN_RATE"),
		},
	}

	for _, origin := range strings.Split(v.GetString("CORS_ALLOWED_ORIGINS"), ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			cfg.CORSAllowedOrigins = append(cfg.CORSAllowedOrigins, origin)
		}
	}

	// Load JWT Expiry Duration (e.g., "60m", "12h")
	jwtExpiryStr := v.GetString("JWT_EXPIRY_DURATION")
	jwtExpiryDuration, err := time.ParseDuration(jwtExpiryStr)
	if err != nil {
		jwtExpiryDuration = 12 * time.Hour
		log.Printf("Warning: Invalid value for JWT_EXPIRY_DURATION ('%s'). Defaulting to %s.\n", jwtExpiryStr, jwtExpiryDuration)
	}
	cfg.JWTExpiryDuration = jwtExpiryDuration

	switch cfg.StoreDriver {
	case DriverPostgres:
		if cfg.DatabaseURL == "" {
			log.Println("Warning: PGSQL_URL environment variable not set.")
		}
	case DriverMongo:
	default:
		return nil, fmt.Errorf("unsupported STORE_DRIVER %q", cfg.StoreDriver)
	}

	if cfg.AdminPasswordHash == "" {
		log.Println("Warning: ADMIN_PASSWORD_HASH not set. Admin login is disabled.")
	}
	if cfg.LogTailLimit <= 0 {
		cfg.LogTailLimit = 50
	}

	return cfg, nil
}

// Rules converts the game balance settings into validated ledger rules.
func (c *Config) Rules() (ledger.Rules, error) {
	g := c.Game
	var (
		r   ledger.Rules
		err error
	)
	p := decimalParser{}
	r.BaseExpense = p.parse("GAME_BASE_EXPENSE", g.BaseExpense)
	r.TaxRate = p.parse("GAME_TAX_RATE", g.TaxRate)
	r.PersonalLoanRate = p.parse("GAME_PERSONAL_LOAN_RATE", g.PersonalLoanRate)
	r.DefaultLoanRate = p.parse("GAME_DEFAULT_LOAN_RATE", g.DefaultLoanRate)
	r.StartingCash = p.parse("GAME_STARTING_CASH", g.StartingCash)
	r.StartingIncome = p.parse("GAME_STARTING_INCOME", g.StartingIncome)
	r.MarketEffects = map[domain.MarketMode]ledger.MarketEffect{
		domain.MarketBull: {
			PaydayMultiplier: p.parse("GAME_MARKET_BULL_MULTIPLIER", g.BullMultiplier),
			LoanInterestRate: p.parse("GAME_MARKET_BULL_LOAN_RATE", g.BullLoanRate),
		},
		domain.MarketBear: {
			PaydayMultiplier: p.parse("GAME_MARKET_BEAR_MULTIPLIER", g.BearMultiplier),
			LoanInterestRate: p.parse("GAME_MARKET_BEAR_LOAN_RATE", g.BearLoanRate),
		},
		domain.MarketNormal: {
			PaydayMultiplier: p.parse("GAME_MARKET_NORMAL_MULTIPLIER", g.NormalMultiplier),
			LoanInterestRate: p.parse("GAME_MARKET_NORMAL_LOAN_RATE", g.NormalLoanRate),
		},
	}
	if p.err != nil {
		return ledger.Rules{}, p.err
	}
	r.VacationPaydays = g.VacationPaydays
	r.CounterPaydays = g.CounterPaydays

	if r.InstallmentPlans, err = ParseInstallmentPlans(g.InstallmentPlans); err != nil {
		return ledger.Rules{}, err
	}
	if err := r.Validate(); err != nil {
		return ledger.Rules{}, err
	}
	return r, nil
}

// ParseInstallmentPlans reads "4:0.08,6:0.14" into a plan table.
func ParseInstallmentPlans(s string) (map[int]decimal.Decimal, error) {
	plans := make(map[int]decimal.Decimal)
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		n, rate, ok := strings.Cut(part, ":")
		if !ok {
			return nil, fmt.Errorf("GAME_INSTALLMENT_PLANS: %q is not installments:rate", part)
		}
		count, err := strconv.Atoi(strings.TrimSpace(n))
		if err != nil {
			return nil, fmt.Errorf("GAME_INSTALLMENT_PLANS: bad installment count %q: %w", n, err)
		}
		r, err := decimal.NewFromString(strings.TrimSpace(rate))
		if err != nil {
			return nil, fmt.Errorf("GAME_INSTALLMENT_PLANS: bad rate %q: %w", rate, err)
		}
		if _, dup := plans[count]; dup {
			return nil, fmt.Errorf("GAME_INSTALLMENT_PLANS: plan %d listed twice", count)
		}
		plans[count] = r
	}
	return plans, nil
}

// PlanSummary renders a plan table back into its env form, sorted by count.
func PlanSummary(plans map[int]decimal.Decimal) string {
	keys := make([]int, 0, len(plans))
	for k := range plans {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = fmt.Sprintf("%d:%s", k, plans[k].String())
	}
	return strings.Join(parts, ",")
}

// decimalParser keeps the first parse error so Rules can read every key in one pass.
type decimalParser struct {
	err error
}

func (p *decimalParser) parse(key, raw string) decimal.Decimal {
	if p.err != nil {
		return decimal.Zero
	}
	v, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		p.err = fmt.Errorf("%s: invalid decimal %q: %w", key, raw, err)
		return decimal.Zero
	}
	return v
}
