package metrics_test

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http/httptest"
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/aydmirov/call-logging/internal/metrics"
)

func TestMetrics(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Metrics Suite")
}

var _ = Describe("Metrics", func() {
	var m *metrics.Metrics

	BeforeEach(func() {
		m = metrics.NewMetrics()
	})

	It("counts entries, exits and faults per target", func() {
		m.RecordEntry("service.UserService.FindByID")
		m.RecordEntry("service.UserService.FindByID")
		m.RecordExit("service.UserService.FindByID")
		m.RecordFault("service.UserService.FindByID")

		snap := m.Snapshot()
		Expect(snap.TotalCalls).To(Equal(int64(2)))
		Expect(snap.TotalFaults).To(Equal(int64(1)))

		target := snap.Targets["service.UserService.FindByID"]
		Expect(target.Entries).To(Equal(int64(2)))
		Expect(target.Exits).To(Equal(int64(1)))
		Expect(target.Faults).To(Equal(int64(1)))
	})

	It("counts repository calls separately", func() {
		m.RecordRepositoryCall("UserStore.Save")
		m.RecordRepositoryCall("UserStore.Save")

		snap := m.Snapshot()
		Expect(snap.TotalRepository).To(Equal(int64(2)))
		Expect(snap.Targets["UserStore.Save"].RepositoryCalls).To(Equal(int64(2)))
	})

	It("reports uptime", func() {
		snap := m.Snapshot()
		Expect(snap.Uptime).To(BeNumerically(">=", 0))
	})
})

var _ = Describe("Collector", func() {
	var (
		collector *metrics.Collector
		ctx       context.Context
		cancel    context.CancelFunc
	)

	BeforeEach(func() {
		collector = metrics.NewCollector(100, slog.Default())
		ctx, cancel = context.WithCancel(context.Background())
		collector.Start(ctx)
	})

	AfterEach(func() {
		cancel()
	})

	It("processes posted events", func() {
		collector.EventChannel() <- metrics.Event{
			Type:      metrics.EventCallEntered,
			Timestamp: time.Now(),
			Target:    "service.UserService.Register",
		}
		collector.EventChannel() <- metrics.Event{
			Type:      metrics.EventCallCompleted,
			Timestamp: time.Now(),
			Target:    "service.UserService.Register",
		}

		Eventually(func() int64 {
			return collector.Snapshot().TotalCalls
		}).Should(Equal(int64(1)))

		target := collector.Snapshot().Targets["service.UserService.Register"]
		Expect(target.Exits).To(Equal(int64(1)))
	})

	It("serves a JSON snapshot over HTTP", func() {
		collector.EventChannel() <- metrics.Event{
			Type:   metrics.EventRepositoryCall,
			Target: "UserStore.List",
		}

		Eventually(func() int64 {
			return collector.Snapshot().TotalRepository
		}).Should(Equal(int64(1)))

		rec := httptest.NewRecorder()
		collector.Handler()(rec, httptest.NewRequest("GET", "/metrics", nil))

		Expect(rec.Header().Get("Content-Type")).To(Equal("application/json"))

		var snap metrics.Snapshot
		Expect(json.Unmarshal(rec.Body.Bytes(), &snap)).To(Succeed())
		Expect(snap.TotalRepository).To(Equal(int64(1)))
	})
})
