package mapping

import (
	"github.com/ledgerkit/ledgerkit/internal/core/domain"
	"github.com/ledgerkit/ledgerkit/internal/models"
)

// ToModelClassification converts a domain classification to its model form.
func ToModelClassification(d domain.TransactionClassification) models.Classification {
	return models.Classification{
		ClassificationID: d.ClassificationID,
		TransactionID:    d.TransactionID,
		DebitAccountID:   d.DebitAccountID,
		CreditAccountID:  d.CreditAccountID,
		Confidence:       d.Confidence,
		RuleName:         strOrNil(d.RuleName),
		Rationale:        d.Rationale,
		Status:           models.ClassificationStatus(d.Status),
		AuditFields:      ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainClassification converts a model classification to its domain form.
func ToDomainClassification(m models.Classification) domain.TransactionClassification {
	return domain.TransactionClassification{
		ClassificationID: m.ClassificationID,
		TransactionID:    m.TransactionID,
		DebitAccountID:   m.DebitAccountID,
		CreditAccountID:  m.CreditAccountID,
		Confidence:       m.Confidence,
		RuleName:         strOrEmpty(m.RuleName),
		Rationale:        m.Rationale,
		Status:           domain.ClassificationStatus(m.Status),
		AuditFields:      ToDomainAuditFields(m.AuditFields),
	}
}
