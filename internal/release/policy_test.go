package release

import (
	"errors"
	"testing"

	"atolye-backend/internal/models"

	"github.com/shopspring/decimal"
)

func rel(amount string) *models.Release {
	return &models.Release{
		ID:     7,
		Amount: decimal.RequireFromString(amount),
	}
}

func TestProposeCorrection_Ladder(t *testing.T) {
	cases := []struct {
		name      string
		current   string
		newAmount string
		wantErr   error
		wantDelta string
	}{
		{"sayı değil", "10", "abc", ErrInvalidNumber, ""},
		{"boş", "10", "", ErrInvalidNumber, ""},
		{"değişiklik yok", "10", "10", ErrNoChange, ""},
		{"değişiklik yok (ondalık eş)", "10", "10.00", ErrNoChange, ""},
		{"artış yasak", "10", "12", ErrIncreaseNotAllowed, ""},
		{"küçük artış da yasak", "10", "10.0001", ErrIncreaseNotAllowed, ""},
		{"negatif yasak", "10", "-5", ErrNegativeAmount, ""},
		{"geçerli azaltma", "10", "7", nil, "3"},
		{"ondalık azaltma", "2.5", "1.25", nil, "1.25"},
		{"sıfıra indirme (tam iade)", "10", "0", nil, "10"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			intent, err := ProposeCorrection(rel(tc.current), tc.newAmount)

			if tc.wantErr != nil {
				if !errors.Is(err, tc.wantErr) {
					t.Fatalf("err = %v, beklenen %v", err, tc.wantErr)
				}
				if intent != nil {
					t.Error("reddedilen düzeltme intent üretmemeli")
				}
				return
			}

			if err != nil {
				t.Fatalf("beklenmeyen hata: %v", err)
			}
			if !intent.Delta.Equal(decimal.RequireFromString(tc.wantDelta)) {
				t.Errorf("delta = %s, beklenen %s", intent.Delta, tc.wantDelta)
			}
			if intent.ReleaseID != 7 {
				t.Errorf("releaseID = %d, beklenen 7", intent.ReleaseID)
			}
		})
	}
}

func TestProposeCorrection_NegativeNeverInflatesDelta(t *testing.T) {
	// Negatif miktar kabul edilseydi iade deltası (10 - (-5) = 15) çıkışın
	// kendisini aşar ve depoya hiç verilmemiş malzeme iade edilirdi
	intent, err := ProposeCorrection(rel("10"), "-5")
	if !errors.Is(err, ErrNegativeAmount) {
		t.Fatalf("err = %v, beklenen ErrNegativeAmount", err)
	}
	if intent != nil {
		t.Error("negatif düzeltme intent üretmemeli")
	}
}

func TestProposeCorrection_WhitespaceTolerant(t *testing.T) {
	intent, err := ProposeCorrection(rel("10"), "  7 ")
	if err != nil {
		t.Fatalf("boşluklu miktar reddedildi: %v", err)
	}
	if !intent.NewAmount.Equal(decimal.RequireFromString("7")) {
		t.Errorf("newAmount = %s", intent.NewAmount)
	}
}

func draft(mt models.MaterialType, amount string) ReleaseDraft {
	return ReleaseDraft{MaterialType: mt, Amount: decimal.RequireFromString(amount)}
}

func TestRequiresProof(t *testing.T) {
	// 0.3m LENGTH + 50 adet PIECE: adetler toplama girmez
	items := []ReleaseDraft{
		draft(models.MaterialLength, "0.3"),
		draft(models.MaterialPiece, "50"),
	}
	if got := TotalLengthAmount(items); !got.Equal(decimal.RequireFromString("0.3")) {
		t.Errorf("toplam = %s, beklenen 0.3", got)
	}
	if RequiresProof(items) {
		t.Error("0.3m için kanıt istenmemeli")
	}

	// 0.3 + 0.3 = 0.6 > 0.5: kanıt zorunlu
	items = append(items, draft(models.MaterialLength, "0.3"))
	if got := TotalLengthAmount(items); !got.Equal(decimal.RequireFromString("0.6")) {
		t.Errorf("toplam = %s, beklenen 0.6", got)
	}
	if !RequiresProof(items) {
		t.Error("0.6m için kanıt zorunlu olmalı")
	}
}

func TestRequiresProof_ExactThreshold(t *testing.T) {
	// Eşik strict: tam 0.5 kanıt istemez
	items := []ReleaseDraft{draft(models.MaterialLength, "0.5")}
	if RequiresProof(items) {
		t.Error("tam 0.5m kanıt istememeli")
	}
}
