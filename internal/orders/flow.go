package orders

import "math"

// Stages: Her siparişin sırayla geçtiği 9 aşama. Sıra sabittir, aşama atlanmaz,
// geri dönülmez. Aşama ilerletme backend uçlarında yapılır; buradaki fonksiyonlar
// sadece okur ve türetir.
var Stages = []string{
	"PRE-ACCEPTED",
	"PRE-PAYMENT CONFIRMED",
	"CNC-STARTED",
	"CNC-COMPLETED",
	"ASSEMBLY-STARTED",
	"ASSEMBLY-COMPLETED",
	"DANDI-STARTED",
	"REM-ACCEPTED",
	"REM-CONFIRMED",
}

// StageIndex: Durumun akıştaki sırası. Bilinmeyen durum 0 sayılır; ilerleme
// hesabı asla negatif indeks görmez, hata üretmez.
func StageIndex(status string) int {
	for i, s := range Stages {
		if s == status {
			return i
		}
	}
	return 0
}

// ContainerProgress: Konteynerdeki siparişlerin toplu ilerleme yüzdesi.
// round(Σ stageIndex / ((aşamaSayısı-1) × siparişSayısı) × 100), [0,100] aralığına sabitlenir.
func ContainerProgress(statuses []string) int {
	if len(statuses) == 0 {
		return 0
	}

	sum := 0
	for _, st := range statuses {
		sum += StageIndex(st)
	}

	p := int(math.Round(float64(sum) / float64((len(Stages)-1)*len(statuses)) * 100))
	if p < 0 {
		p = 0
	}
	if p > 100 {
		p = 100
	}
	return p
}

// StageCounts: Her aşamadaki sipariş sayısı (timeline görünümü için).
// Tanınmayan durumlar hiçbir aşamaya sayılmaz.
func StageCounts(statuses []string) []int {
	counts := make([]int, len(Stages))
	for _, st := range statuses {
		for i, s := range Stages {
			if s == st {
				counts[i]++
				break
			}
		}
	}
	return counts
}
