package mapping

import (
	"github.com/ledgerkit/ledgerkit/internal/core/domain"
	"github.com/ledgerkit/ledgerkit/internal/models"
)

// ToModelTransaction converts a domain Transaction to a model Transaction.
func ToModelTransaction(d domain.Transaction) models.Transaction {
	return models.Transaction{
		TransactionID: d.TransactionID,
		Hash:          d.Hash,
		Date:          d.Date,
		Amount:        d.Amount,
		Description:   d.Description,
		Counterparty:  strOrNil(d.Counterparty),
		Reference:     strOrNil(d.Reference),
		Source:        d.Source,
		Status:        models.TransactionStatus(d.Status),
		RawData:       d.RawData,
		AuditFields:   ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainTransaction converts a model Transaction to a domain Transaction.
func ToDomainTransaction(m models.Transaction) domain.Transaction {
	return domain.Transaction{
		TransactionID: m.TransactionID,
		Hash:          m.Hash,
		Date:          m.Date,
		Amount:        m.Amount,
		Description:   m.Description,
		Counterparty:  strOrEmpty(m.Counterparty),
		Reference:     strOrEmpty(m.Reference),
		Source:        m.Source,
		Status:        domain.TransactionStatus(m.Status),
		RawData:       m.RawData,
		AuditFields:   ToDomainAuditFields(m.AuditFields),
	}
}
