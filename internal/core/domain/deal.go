package domain

import (
	"fmt"

	"github.com/Garvkhullar/cashflow4.0-official/internal/apperrors"
	"github.com/shopspring/decimal"
)

// DealClass separates the small and big deal catalogs.
type DealClass string

const (
	DealClassSmall DealClass = "small"
	DealClassBig   DealClass = "big"
)

// ParseDealClass validates a raw class string.
func ParseDealClass(s string) (DealClass, error) {
	switch c := DealClass(s); c {
	case DealClassSmall, DealClassBig:
		return c, nil
	}
	return "", fmt.Errorf("%w: unknown deal class %q", apperrors.ErrValidation, s)
}

// AssetClass separates stock and crypto holdings.
type AssetClass string

const (
	AssetClassStock  AssetClass = "stock"
	AssetClassCrypto AssetClass = "crypto"
)

// ParseAssetClass validates a raw class string.
func ParseAssetClass(s string) (AssetClass, error) {
	switch c := AssetClass(s); c {
	case AssetClassStock, AssetClassCrypto:
		return c, nil
	}
	return "", fmt.Errorf("%w: unknown asset class %q", apperrors.ErrValidation, s)
}

// DealOwner records which team bought a deal on a given table.
type DealOwner struct {
	TableID string `json:"tableId"`
	TeamID  string `json:"teamId"`
}

// Deal is a catalog investment. At most one owner per table.
type Deal struct {
	DealID        string              `json:"dealId"`
	DealType      DealClass           `json:"dealType"`
	Name          string              `json:"name"`
	Cost          decimal.Decimal     `json:"cost"`
	PassiveIncome decimal.Decimal     `json:"passiveIncome"`
	DownPayment   decimal.NullDecimal `json:"downPayment"`
	Owners        []DealOwner         `json:"owners"`
}

// OwnerOnTable returns the owner registered for tableID, if any.
func (d *Deal) OwnerOnTable(tableID string) (DealOwner, bool) {
	for _, o := range d.Owners {
		if o.TableID == tableID {
			return o, true
		}
	}
	return DealOwner{}, false
}
