package release

import (
	"errors"
	"strings"

	"atolye-backend/internal/models"

	"github.com/shopspring/decimal"
)

// Düzeltme reddi sebepleri. Hepsi kullanıcıya olduğu gibi gösterilir.
var (
	ErrInvalidNumber      = errors.New("miktar geçerli bir sayı olmalı")
	ErrNegativeAmount     = errors.New("miktar negatif olamaz")
	ErrNoChange           = errors.New("yeni miktar mevcut miktarla aynı olamaz")
	ErrIncreaseNotAllowed = errors.New("çıkış miktarı artırılamaz; fazlası için yeni bir çıkış oluşturun")
)

// CorrectionIntent: Doğrulanmış düzeltme. Delta depoya iade edilecek farktır;
// iadenin kendisi handler katmanında yapılır, policy sadece hesaplar.
type CorrectionIntent struct {
	ReleaseID uint
	OldAmount decimal.Decimal
	NewAmount decimal.Decimal
	Delta     decimal.Decimal
}

// parseAmount: Wire'dan gelen decimal string'i doğrular (yeni çıkışlar için).
func parseAmount(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero, ErrInvalidNumber
	}
	if d.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero, errors.New("miktar 0'dan büyük olmalı")
	}
	return d, nil
}

// ProposeCorrection: Çıkış düzeltmesini doğrular. Düzeltme kesinlikle tek yönlüdür:
// miktar yalnızca azalabilir. Artış yeni bir çıkış kaydı olmalıdır, düzenleme değil;
// geçmiş tüketim sessizce şişirilemez.
func ProposeCorrection(rel *models.Release, newAmountStr string) (*CorrectionIntent, error) {
	newAmount, err := decimal.NewFromString(strings.TrimSpace(newAmountStr))
	if err != nil {
		return nil, ErrInvalidNumber
	}

	// Negatif miktar iade deltasını çıkışın kendisinden büyük yapar; sıfıra indirme
	// (tam iade) serbesttir, eksiye indirme değil.
	if newAmount.IsNegative() {
		return nil, ErrNegativeAmount
	}

	if newAmount.Equal(rel.Amount) {
		return nil, ErrNoChange
	}
	if newAmount.GreaterThan(rel.Amount) {
		return nil, ErrIncreaseNotAllowed
	}

	return &CorrectionIntent{
		ReleaseID: rel.ID,
		OldAmount: rel.Amount,
		NewAmount: newAmount,
		Delta:     rel.Amount.Sub(newAmount),
	}, nil
}
