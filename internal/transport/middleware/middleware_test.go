package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/frahmantamala/workforce-ops/internal/auth"
	"github.com/frahmantamala/workforce-ops/internal/core/role"
)

var ok = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
})

var _ = Describe("RequireRole", func() {
	serve := func(p *auth.Principal) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/users", nil)
		if p != nil {
			req = req.WithContext(auth.ContextWithUser(req.Context(), p))
		}
		rec := httptest.NewRecorder()
		RequireAdmin(ok).ServeHTTP(rec, req)
		return rec
	}

	It("returns 401 without a user", func() {
		Expect(serve(nil).Code).To(Equal(http.StatusUnauthorized))
	})

	It("returns 403 for non-admin roles", func() {
		rec := serve(&auth.Principal{ID: "u1", Role: role.Supervisor})
		Expect(rec.Code).To(Equal(http.StatusForbidden))
		Expect(rec.Body.String()).To(ContainSubstring("Admin access required"))
	})

	It("lets admins through", func() {
		Expect(serve(&auth.Principal{ID: "u1", Role: role.Admin}).Code).To(Equal(http.StatusOK))
	})
})

var _ = Describe("RecoveryMiddleware", func() {
	It("converts panics into a generic 500", func() {
		panicky := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			panic("database exploded")
		})
		rec := httptest.NewRecorder()
		RecoveryMiddleware(panicky).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		Expect(rec.Code).To(Equal(http.StatusInternalServerError))
		Expect(rec.Body.String()).NotTo(ContainSubstring("exploded"))
	})
})

var _ = Describe("RequestID", func() {
	It("echoes the caller's trace id", func() {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(TraceHeader, "trace-123")
		rec := httptest.NewRecorder()
		RequestID(ok).ServeHTTP(rec, req)
		Expect(rec.Header().Get(TraceHeader)).To(Equal("trace-123"))
	})

	It("generates one when missing", func() {
		rec := httptest.NewRecorder()
		RequestID(ok).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		Expect(rec.Header().Get(TraceHeader)).NotTo(BeEmpty())
	})
})

var _ = Describe("CORS", func() {
	It("answers preflight requests for allowed origins", func() {
		req := httptest.NewRequest(http.MethodOptions, "/issues", nil)
		req.Header.Set("Origin", "http://localhost:3000")
		req.Header.Set("Access-Control-Request-Method", "POST")
		rec := httptest.NewRecorder()
		CORS([]string{"http://localhost:3000"})(ok).ServeHTTP(rec, req)

		Expect(rec.Code).To(Equal(http.StatusNoContent))
		Expect(rec.Header().Get("Access-Control-Allow-Origin")).To(Equal("http://localhost:3000"))
	})

	It("does not echo unknown origins", func() {
		req := httptest.NewRequest(http.MethodGet, "/issues", nil)
		req.Header.Set("Origin", "http://evil.test")
		rec := httptest.NewRecorder()
		CORS([]string{"http://localhost:3000"})(ok).ServeHTTP(rec, req)

		Expect(rec.Code).To(Equal(http.StatusOK))
		Expect(rec.Header().Get("Access-Control-Allow-Origin")).To(BeEmpty())
	})
})

var _ = Describe("masking", func() {
	It("filters sensitive JSON fields at any depth", func() {
		out := maskBody([]byte(`{"email":"a@b.co","password":"hunter2","nested":{"refresh_token":"x"}}`))
		Expect(out).To(ContainSubstring("a@b.co"))
		Expect(out).NotTo(ContainSubstring("hunter2"))
		Expect(strings.Count(out, filtered)).To(Equal(2))
	})

	It("filters sensitive headers", func() {
		h := http.Header{}
		h.Set("Authorization", "Bearer abc")
		h.Set("Accept", "application/json")
		masked := maskHeaders(h)
		Expect(masked["Authorization"]).To(Equal(filtered))
		Expect(masked["Accept"]).To(Equal("application/json"))
	})
})
