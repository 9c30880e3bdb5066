package orders

import "testing"

func TestStageIndex(t *testing.T) {
	cases := []struct {
		status string
		want   int
	}{
		{"PRE-ACCEPTED", 0},
		{"PRE-PAYMENT CONFIRMED", 1},
		{"CNC-STARTED", 2},
		{"CNC-COMPLETED", 3},
		{"ASSEMBLY-STARTED", 4},
		{"ASSEMBLY-COMPLETED", 5},
		{"DANDI-STARTED", 6},
		{"REM-ACCEPTED", 7},
		{"REM-CONFIRMED", 8},
		{"BOGUS", 0},
		{"", 0},
	}

	for _, tc := range cases {
		if got := StageIndex(tc.status); got != tc.want {
			t.Errorf("StageIndex(%q) = %d, beklenen %d", tc.status, got, tc.want)
		}
	}
}

func TestContainerProgress(t *testing.T) {
	// 2 sipariş, aşama 2 ve 4: round((2+4)/(8*2)*100) = round(37.5) = 38
	got := ContainerProgress([]string{"CNC-STARTED", "ASSEMBLY-STARTED"})
	if got != 38 {
		t.Errorf("progress = %d, beklenen 38", got)
	}

	// Hepsi son aşamada: 100
	if got := ContainerProgress([]string{"REM-CONFIRMED", "REM-CONFIRMED"}); got != 100 {
		t.Errorf("tamamlanmış konteyner = %d, beklenen 100", got)
	}

	// Hepsi ilk aşamada: 0
	if got := ContainerProgress([]string{"PRE-ACCEPTED"}); got != 0 {
		t.Errorf("yeni konteyner = %d, beklenen 0", got)
	}

	// Bilinmeyen durumlar 0. aşama sayılır
	if got := ContainerProgress([]string{"BOGUS", "REM-CONFIRMED"}); got != 50 {
		t.Errorf("bilinmeyen durumlu konteyner = %d, beklenen 50", got)
	}

	// Boş konteyner bölme hatası üretmez
	if got := ContainerProgress(nil); got != 0 {
		t.Errorf("boş konteyner = %d, beklenen 0", got)
	}
}

func TestStageCounts(t *testing.T) {
	statuses := []string{
		"CNC-STARTED", "CNC-STARTED", "REM-CONFIRMED", "BOGUS",
	}
	counts := StageCounts(statuses)

	if len(counts) != len(Stages) {
		t.Fatalf("aşama sayısı %d, beklenen %d", len(counts), len(Stages))
	}
	if counts[2] != 2 {
		t.Errorf("CNC-STARTED sayısı %d, beklenen 2", counts[2])
	}
	if counts[8] != 1 {
		t.Errorf("REM-CONFIRMED sayısı %d, beklenen 1", counts[8])
	}
	// Tanınmayan durum hiçbir aşamaya sayılmaz
	total := 0
	for _, c := range counts {
		total += c
	}
	if total != 3 {
		t.Errorf("toplam sayım %d, beklenen 3", total)
	}
}
