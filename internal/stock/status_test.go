package stock

import (
	"math"
	"testing"
)

func TestClassify_Bands(t *testing.T) {
	cases := []struct {
		name      string
		available float64
		threshold float64
		want      StockStatus
	}{
		{"sıfır stok", 0, 5, StatusOutOfStock},
		{"sıfır stok, sıfır eşik", 0, 0, StatusOutOfStock},
		{"eşiğin altı", 3, 5, StatusCritical},
		{"eşiğin hemen altı", 4.99, 5, StatusCritical},
		{"tam eşik", 5, 5, StatusWarning},
		{"eşik artı bir", 6, 5, StatusWarning},
		{"eşik artı bir buçuk", 6.5, 5, StatusGood},
		{"eşik artı iki", 7, 5, StatusGood},
		{"bol stok", 100, 5, StatusGood},
		{"eşik sıfır, az stok", 0.5, 0, StatusWarning},
		{"eşik sıfır, bol stok", 2, 0, StatusGood},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Classify(tc.available, tc.threshold); got != tc.want {
				t.Errorf("Classify(%v, %v) = %v, beklenen %v", tc.available, tc.threshold, got, tc.want)
			}
		})
	}
}

func TestClassify_ZeroIsAlwaysOutOfStock(t *testing.T) {
	for _, threshold := range []float64{0, 1, 5, 100, 1e9} {
		if got := Classify(0, threshold); got != StatusOutOfStock {
			t.Errorf("Classify(0, %v) = %v, beklenen OUT_OF_STOCK", threshold, got)
		}
	}
}

func TestClassify_NonFiniteInputs(t *testing.T) {
	if got := Classify(math.NaN(), 5); got != StatusOutOfStock {
		t.Errorf("NaN available = %v, beklenen OUT_OF_STOCK", got)
	}
	if got := Classify(-3, 5); got != StatusOutOfStock {
		t.Errorf("negatif available = %v, beklenen OUT_OF_STOCK", got)
	}
	// Bozuk eşik 0 sayılır; pozitif stok asla OUT_OF_STOCK olmamalı
	if got := Classify(10, math.NaN()); got == StatusOutOfStock {
		t.Errorf("NaN threshold ile pozitif stok OUT_OF_STOCK olmamalı, got %v", got)
	}
}
