package stock

import (
	"encoding/json"
	"testing"
)

func TestDistribution_ListShape(t *testing.T) {
	raw := []byte(`[
		{"inventoryName":"Merkez","total":10,"unstarted":6,"started":3,"finished":1},
		{"inventoryName":"Sahil","total":4,"unstarted":4,"started":0,"finished":0}
	]`)

	var d Distribution
	if err := json.Unmarshal(raw, &d); err != nil {
		t.Fatalf("liste şekli çözülemedi: %v", err)
	}

	if got := d.QuantityFor("Merkez"); got != 6 {
		t.Errorf("QuantityFor(Merkez) = %v, beklenen 6 (unstarted)", got)
	}
	if got := d.QuantityFor("Sahil"); got != 4 {
		t.Errorf("QuantityFor(Sahil) = %v, beklenen 4", got)
	}
	if got := d.QuantityFor("Yok"); got != 0 {
		t.Errorf("olmayan depo için %v döndü, beklenen 0", got)
	}
	// Eşleşme büyük/küçük harfe duyarlı
	if got := d.QuantityFor("merkez"); got != 0 {
		t.Errorf("küçük harfli isim eşleşmemeli, got %v", got)
	}
}

func TestDistribution_MapShape(t *testing.T) {
	raw := []byte(`{"Merkez": 12.5, "Sahil": 0}`)

	var d Distribution
	if err := json.Unmarshal(raw, &d); err != nil {
		t.Fatalf("map şekli çözülemedi: %v", err)
	}

	if got := d.QuantityFor("Merkez"); got != 12.5 {
		t.Errorf("QuantityFor(Merkez) = %v, beklenen 12.5", got)
	}
	if got := d.QuantityFor("Sahil"); got != 0 {
		t.Errorf("QuantityFor(Sahil) = %v, beklenen 0", got)
	}
	if got := d.QuantityFor("Depo3"); got != 0 {
		t.Errorf("olmayan anahtar için %v döndü, beklenen 0", got)
	}

	// Map şeklinde gelen dağılım map şeklinde serileşmeli
	out, err := json.Marshal(d)
	if err != nil {
		t.Fatalf("serileştirilemedi: %v", err)
	}
	var m map[string]float64
	if err := json.Unmarshal(out, &m); err != nil {
		t.Fatalf("map şekli korunmamış: %s", out)
	}
	if m["Merkez"] != 12.5 {
		t.Errorf("round-trip sonrası Merkez = %v", m["Merkez"])
	}
}

func TestDistribution_UnrecognizedShapes(t *testing.T) {
	// null, skaler ve bozuk şekiller hata üretmez, boş dağılım sayılır
	for _, raw := range []string{`null`, `42`, `"foo"`, `true`} {
		var d Distribution
		if err := json.Unmarshal([]byte(raw), &d); err != nil {
			t.Errorf("%s için hata döndü: %v", raw, err)
		}
		if got := d.QuantityFor("Merkez"); got != 0 {
			t.Errorf("%s şekli için %v döndü, beklenen 0", raw, got)
		}
	}
}

func TestDistribution_EmptyListMarshalsAsArray(t *testing.T) {
	var d Distribution
	out, err := json.Marshal(d)
	if err != nil {
		t.Fatalf("serileştirilemedi: %v", err)
	}
	if string(out) != "[]" {
		t.Errorf("boş dağılım %s olarak serileşti, beklenen []", out)
	}
}
