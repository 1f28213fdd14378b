package mapping

import (
	"github.com/Garvkhullar/cashflow4.0-official/internal/core/domain"
	"github.com/Garvkhullar/cashflow4.0-official/internal/models"
)

// ToModelTable converts a domain Table to a model Table
func ToModelTable(d domain.Table) models.Table {
	return models.Table{
		TableID:      d.TableID,
		Username:     d.Username,
		PasswordHash: d.PasswordHash,
		AuditFields:  toModelAudit(d.AuditFields),
	}
}

// ToDomainTable converts a model Table to a domain Table
func ToDomainTable(m models.Table) domain.Table {
	return domain.Table{
		TableID:      m.TableID,
		Username:     m.Username,
		PasswordHash: m.PasswordHash,
		AuditFields:  toDomainAudit(m.AuditFields),
	}
}

// ToModelTableLog converts a domain TableLog to a model TableLog
func ToModelTableLog(d domain.TableLog) models.TableLog {
	return models.TableLog{LogID: d.LogID, TableID: d.TableID, Message: d.Message, Timestamp: d.Timestamp}
}

// ToDomainTableLog converts a model TableLog to a domain TableLog
func ToDomainTableLog(m models.TableLog) domain.TableLog {
	return domain.TableLog{LogID: m.LogID, TableID: m.TableID, Message: m.Message, Timestamp: m.Timestamp.UTC()}
}

// ToDomainTableLogSlice converts a slice of model TableLogs to a slice of domain TableLogs
func ToDomainTableLogSlice(ms []models.TableLog) []domain.TableLog {
	return convertSlice(ms, ToDomainTableLog)
}

// ToModelGameConfig converts a domain GameConfig to a model GameConfig
func ToModelGameConfig(d domain.GameConfig) models.GameConfig {
	return models.GameConfig{
		ConfigID:   d.ConfigID,
		MarketMode: string(d.MarketMode),
		UpdatedAt:  d.UpdatedAt,
		UpdatedBy:  d.UpdatedBy,
	}
}

// ToDomainGameConfig converts a model GameConfig to a domain GameConfig
func ToDomainGameConfig(m models.GameConfig) domain.GameConfig {
	return domain.GameConfig{
		ConfigID:   m.ConfigID,
		MarketMode: domain.MarketMode(m.MarketMode),
		UpdatedAt:  m.UpdatedAt,
		UpdatedBy:  m.UpdatedBy,
	}
}
