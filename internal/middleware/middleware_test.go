package middleware_test

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/aydmirov/call-logging/internal/interceptor"
	"github.com/aydmirov/call-logging/internal/middleware"
	"github.com/aydmirov/call-logging/pkg/logger"
)

func TestMiddleware(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Middleware Suite")
}

var _ = Describe("CallLogger", func() {
	var buf *bytes.Buffer

	BeforeEach(func() {
		buf = &bytes.Buffer{}
	})

	newWrapped := func(basePackage string, next http.Handler) http.Handler {
		log := logger.NewWithWriter(buf, "debug", false, "dev")
		calls := interceptor.New(log, interceptor.WithBasePackage(basePackage))
		buf.Reset()
		return middleware.New(log, calls).Wrap("http.Router", next)
	}

	It("serves the wrapped handler unchanged", func() {
		handler := newWrapped("", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusCreated)
			_, _ = w.Write([]byte("made"))
		}))

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/users", nil))

		Expect(rec.Code).To(Equal(http.StatusCreated))
		Expect(rec.Body.String()).To(Equal("made"))
	})

	It("logs the request as an intercepted call", func() {
		handler := newWrapped("", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		}))

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/users/1", nil))

		out := buf.String()
		Expect(out).To(ContainSubstring("Enter: http.Router.GET() with arguments = [/users/1]"))
		Expect(out).To(ContainSubstring("Exit: http.Router.GET() with result = 200"))
	})

	It("logs a server error as a fault", func() {
		handler := newWrapped("", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/boom", nil))

		Expect(rec.Code).To(Equal(http.StatusInternalServerError))
		Expect(buf.String()).To(ContainSubstring("Exception in http.Router.GET()"))
	})

	It("skips interception logging outside the base package", func() {
		handler := newWrapped("service", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		}))

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/users", nil))

		out := buf.String()
		Expect(out).NotTo(ContainSubstring("Enter:"))
		Expect(out).To(ContainSubstring("Received request"))
		Expect(out).To(ContainSubstring("Completed request"))
	})

	It("reports the forwarded client address", func() {
		handler := newWrapped("", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-Forwarded-For", "203.0.113.9, 10.0.0.1")

		handler.ServeHTTP(httptest.NewRecorder(), req)

		Expect(buf.String()).To(ContainSubstring("from=203.0.113.9"))
	})
})
