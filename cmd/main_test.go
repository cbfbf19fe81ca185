package main

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/aydmirov/call-logging/internal/interceptor"
	"github.com/aydmirov/call-logging/internal/metrics"
	"github.com/aydmirov/call-logging/internal/service"
	"github.com/aydmirov/call-logging/internal/sqllog"
	"github.com/aydmirov/call-logging/internal/store"
	"github.com/aydmirov/call-logging/pkg/logger"
)

func TestMain(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Main Suite")
}

var _ = Describe("setupRouter", func() {
	var (
		db        *sql.DB
		buf       *bytes.Buffer
		mux       *http.ServeMux
		collector *metrics.Collector
	)

	BeforeEach(func() {
		var err error
		db, err = store.Open(":memory:")
		Expect(err).NotTo(HaveOccurred())

		buf = &bytes.Buffer{}
		log := logger.NewWithWriter(buf, "debug", false, "dev")

		collector = metrics.NewCollector(100, log)
		calls := interceptor.New(log, interceptor.WithBasePackage("service"))
		sqlCalls := sqllog.NewInterceptor(log, sqllog.NewSettings(true, sqllog.LevelInfo))
		buf.Reset()

		users := service.NewUserService(store.NewUserStore(db, sqlCalls), calls)
		orders := store.NewOrderStore(db, sqlCalls)
		mux = setupRouter(users, orders, collector)
	})

	AfterEach(func() {
		Expect(db.Close()).To(Succeed())
	})

	createUser := func(body string) *httptest.ResponseRecorder {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/users", strings.NewReader(body))
		mux.ServeHTTP(rec, req)
		return rec
	}

	It("creates and retrieves a user", func() {
		rec := createUser(`{"name":"Ann","email":"ann@example.com"}`)
		Expect(rec.Code).To(Equal(http.StatusCreated))

		var created store.User
		Expect(json.Unmarshal(rec.Body.Bytes(), &created)).To(Succeed())
		Expect(created.ID).To(BeNumerically(">", 0))

		rec = httptest.NewRecorder()
		mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/users/1", nil))
		Expect(rec.Code).To(Equal(http.StatusOK))
		Expect(rec.Body.String()).To(ContainSubstring(`"name":"Ann"`))
	})

	It("rejects an invalid registration", func() {
		rec := createUser(`{"name":"","email":"ann@example.com"}`)
		Expect(rec.Code).To(Equal(http.StatusBadRequest))
	})

	It("returns 404 for a missing user", func() {
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/users/99", nil))
		Expect(rec.Code).To(Equal(http.StatusNotFound))
	})

	It("deletes a user", func() {
		createUser(`{"name":"Ann","email":"ann@example.com"}`)

		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/users/1", nil))
		Expect(rec.Code).To(Equal(http.StatusNoContent))
	})

	It("records orders for a user", func() {
		createUser(`{"name":"Ann","email":"ann@example.com"}`)

		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/users/1/orders", strings.NewReader(`{"total":12.5}`))
		mux.ServeHTTP(rec, req)
		Expect(rec.Code).To(Equal(http.StatusCreated))

		rec = httptest.NewRecorder()
		mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/users/1/orders", nil))
		Expect(rec.Code).To(Equal(http.StatusOK))
		Expect(rec.Body.String()).To(ContainSubstring(`"total":12.5`))
	})

	It("logs service and repository calls along the way", func() {
		createUser(`{"name":"Ann","email":"ann@example.com"}`)

		out := buf.String()
		Expect(out).To(ContainSubstring("Enter: service.UserService.Register()"))
		Expect(out).To(ContainSubstring("[SQL] UserStore.Save() called"))
	})

	It("exposes the metrics snapshot", func() {
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
		Expect(rec.Code).To(Equal(http.StatusOK))
		Expect(rec.Header().Get("Content-Type")).To(Equal("application/json"))
	})
})
