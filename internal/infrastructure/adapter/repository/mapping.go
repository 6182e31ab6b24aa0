package repository

import (
	"github.com/damilare-oj/vtu-processor/internal/domain/entity"
	"github.com/damilare-oj/vtu-processor/internal/infrastructure/adapter/model"
)

func userToEntity(m *model.User) *entity.User {
	return &entity.User{
		ID:          m.ID,
		Email:       m.Email,
		Name:        m.Name,
		BalanceKobo: m.BalanceKobo,
		RewardKobo:  m.RewardKobo,
		Role:        m.Role,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

func transactionToEntity(m *model.Transaction) *entity.Transaction {
	return &entity.Transaction{
		ID:             m.ID,
		Reference:      m.Reference,
		UserID:         m.UserID,
		CounterpartyID: m.CounterpartyID,
		Type:           entity.TransactionType(m.Type),
		Status:         entity.TransactionStatus(m.Status),
		AmountKobo:     m.AmountKobo,
		APIAmountKobo:  m.APIAmountKobo,
		BalanceBefore:  m.BalanceBefore,
		BalanceAfter:   m.BalanceAfter,
		Description:    m.Description,
		Network:        m.Network,
		Plan:           m.Plan,
		Phone:          m.Phone,
		ProviderRef:    m.ProviderRef,
		APIResponse:    m.APIResponse,
		ErrorMessage:   m.ErrorMessage,
		CreatedAt:      m.CreatedAt,
		ProcessedAt:    m.ProcessedAt,
	}
}

func transactionToModel(t *entity.Transaction) *model.Transaction {
	return &model.Transaction{
		ID:             t.ID,
		Reference:      t.Reference,
		UserID:         t.UserID,
		CounterpartyID: t.CounterpartyID,
		Type:           string(t.Type),
		Status:         string(t.Status),
		AmountKobo:     t.AmountKobo,
		APIAmountKobo:  t.APIAmountKobo,
		BalanceBefore:  t.BalanceBefore,
		BalanceAfter:   t.BalanceAfter,
		Description:    t.Description,
		Network:        t.Network,
		Plan:           t.Plan,
		Phone:          t.Phone,
		ProviderRef:    t.ProviderRef,
		APIResponse:    t.APIResponse,
		ErrorMessage:   t.ErrorMessage,
		CreatedAt:      t.CreatedAt,
		ProcessedAt:    t.ProcessedAt,
	}
}

func planToEntity(m *model.Plan) *entity.Plan {
	return &entity.Plan{
		ID:        m.ID,
		Code:      m.Code,
		Product:   entity.TransactionType(m.Product),
		Network:   m.Network,
		Name:      m.Name,
		PriceKobo: m.PriceKobo,
		Active:    m.Active,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func giftCardToEntity(m *model.GiftCard) *entity.GiftCard {
	return &entity.GiftCard{
		ID:         m.ID,
		Code:       m.Code,
		AmountKobo: m.AmountKobo,
		ExpiresAt:  m.ExpiresAt,
		IsRedeemed: m.IsRedeemed,
		RedeemedBy: m.RedeemedBy,
		RedeemedAt: m.RedeemedAt,
		CreatedAt:  m.CreatedAt,
	}
}
