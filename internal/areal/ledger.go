package areal

import (
	"sort"

	"atolye-backend/internal/models"
)

// Levha yaşam döngüsü üç durumdan geçer ve geri dönmez:
//
//	Yeni    (started=false, finished=false) - hiç kesim kaydı yok
//	Başladı (started=true,  finished=false) - en az bir kesim var, levha bitmedi
//	Bitti   (finished=true)                 - levha tamamen tüketildi
//
// Geçişler backend'de kesim kaydı (CuttingFile) eklenince yapılır; bu paket
// sadece bayrakları okur ve sınıflandırır.

// AvailableFullSheets: Hiç kesime girmemiş tam levha sayısı.
func AvailableFullSheets(pieces []models.ArealPiece) int {
	count := 0
	for _, p := range pieces {
		if !p.Started && !p.Finished {
			count++
		}
	}
	return count
}

// ActivePieces: Kesim geçmişi olan veya bayrağı set edilmiş levhalar.
// Başlamış-ama-bitmemiş levhalar bitmiş levhalardan önce gelir; aynı kategorideki
// levhaların giriş sırası korunur (stable, tek karşılaştırmalı sıralama).
func ActivePieces(pieces []models.ArealPiece) []models.ArealPiece {
	active := make([]models.ArealPiece, 0, len(pieces))
	for _, p := range pieces {
		if p.Started || p.Finished || len(p.CuttingFiles) > 0 {
			active = append(active, p)
		}
	}

	sort.SliceStable(active, func(i, j int) bool {
		return !active[i].Finished && active[j].Finished
	})

	return active
}

// AreaM2: Levha alanı. Boyutlar cm cinsinden saklanır, alan m² raporlanır.
func AreaM2(widthCm, heightCm float64) float64 {
	return widthCm * heightCm / 10000
}

// LatestCut: Levhanın güncel kesim kaydı. CuttingFiles sorgudan tarihe göre azalan
// sırada gelir; ilk eleman en yeni kesimdir, gerisi geçmiştir. Yeniden sıralanmaz.
func LatestCut(p *models.ArealPiece) *models.CuttingFile {
	if len(p.CuttingFiles) == 0 {
		return nil
	}
	return &p.CuttingFiles[0]
}
