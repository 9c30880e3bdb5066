package stock

import (
	"encoding/json"
	"sort"

	"atolye-backend/internal/models"
)

// DistributionEntry: Malzemenin tek depodaki stok kırılımı (liste şekli).
type DistributionEntry struct {
	InventoryName string  `json:"inventoryName"`
	Total         float64 `json:"total"`
	Unstarted     float64 `json:"unstarted"`
	Started       float64 `json:"started"`
	Finished      float64 `json:"finished"`
}

// Distribution: Malzemenin depo dağılımı. Wire üzerinde iki şekil geçerlidir:
// kayıt listesi (AREAL) veya inventoryName -> miktar map'i (LENGTH/PIECE).
// JSON sınırında tek iç temsile (kayıt listesi) normalize edilir; sonraki kod
// şekle göre dallanmaz. Tanınmayan şekil boş dağılım sayılır, hata değildir.
type Distribution struct {
	entries  []DistributionEntry
	mapShape bool // map şeklinde geldi, aynı şekilde servis edilir
}

func NewListDistribution(entries []DistributionEntry) Distribution {
	return Distribution{entries: entries}
}

func NewMapDistribution(m map[string]float64) Distribution {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names) // map sırası deterministik değil

	entries := make([]DistributionEntry, 0, len(m))
	for _, name := range names {
		entries = append(entries, DistributionEntry{
			InventoryName: name,
			Total:         m[name],
			Unstarted:     m[name],
		})
	}
	return Distribution{entries: entries, mapShape: true}
}

// QuantityFor: Depodaki henüz hiçbir kesime girmemiş miktar. Depo dağılımda yoksa 0;
// bu bir hata durumu değildir ("kavramsal olarak var, miktarı sıfır").
func (d Distribution) QuantityFor(inventoryName string) float64 {
	for _, e := range d.entries {
		if e.InventoryName == inventoryName {
			return e.Unstarted
		}
	}
	return 0
}

func (d Distribution) Entries() []DistributionEntry {
	return d.entries
}

func (d *Distribution) UnmarshalJSON(data []byte) error {
	*d = Distribution{}

	var list []DistributionEntry
	if err := json.Unmarshal(data, &list); err == nil {
		d.entries = list
		return nil
	}

	var m map[string]float64
	if err := json.Unmarshal(data, &m); err == nil {
		*d = NewMapDistribution(m)
		return nil
	}

	// null, skaler veya başka bir şekil: boş dağılım
	return nil
}

func (d Distribution) MarshalJSON() ([]byte, error) {
	if d.mapShape {
		m := make(map[string]float64, len(d.entries))
		for _, e := range d.entries {
			m[e.InventoryName] = e.Unstarted
		}
		return json.Marshal(m)
	}
	if d.entries == nil {
		return json.Marshal([]DistributionEntry{})
	}
	return json.Marshal(d.entries)
}

// DistributionFor: Stok satırlarından wire dağılımını kurar. AREAL malzeme liste
// şeklini, LENGTH/PIECE map şeklini kullanır (iki şekil de sahada yaşıyor).
// Inventory ilişkisinin preload edilmiş olması beklenir.
func DistributionFor(mat *models.Material, stocks []models.InventoryStock) Distribution {
	if mat.Type == models.MaterialAreal {
		entries := make([]DistributionEntry, 0, len(stocks))
		for _, s := range stocks {
			entries = append(entries, DistributionEntry{
				InventoryName: s.Inventory.Name,
				Total:         s.Total,
				Unstarted:     s.Unstarted,
				Started:       s.Started,
				Finished:      s.Finished,
			})
		}
		return NewListDistribution(entries)
	}

	m := make(map[string]float64, len(stocks))
	for _, s := range stocks {
		m[s.Inventory.Name] = s.Unstarted
	}
	return NewMapDistribution(m)
}
