package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ReleasesCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "atolye_releases_created_total",
		Help: "Oluşturulan malzeme çıkışı sayısı",
	})

	CorrectionsApplied = promauto.NewCounter(prometheus.CounterOpts{
		Name: "atolye_corrections_applied_total",
		Help: "Uygulanan çıkış düzeltmesi sayısı",
	})

	CorrectionsRejected = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "atolye_corrections_rejected_total",
		Help: "Reddedilen çıkış düzeltmesi sayısı",
	}, []string{"reason"})
)
