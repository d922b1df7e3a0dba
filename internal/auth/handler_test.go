package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"golang.org/x/crypto/bcrypt"
)

var _ = Describe("Handler", func() {
	var (
		h       *Handler
		tokens  *JWTTokenGenerator
		service *Service
	)

	BeforeEach(func() {
		tokens = NewJWTTokenGenerator(
			"test-access-secret-0123456789abcdef",
			"test-refresh-secret-0123456789abcdef",
			15*time.Minute,
			24*time.Hour,
		)
		service = NewService(NewLocalProvider(newMemoryCredentials(), tokens, bcrypt.MinCost), newMemoryProfiles(), nil, nil)
		h = NewHandler(service)
	})

	post := func(handler http.HandlerFunc, body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
		rec := httptest.NewRecorder()
		handler(rec, req)
		return rec
	}

	It("signs up and wraps the profile in a user field", func() {
		rec := post(h.Signup, `{"email":"a@example.com","password":"password123","name":"A"}`)
		Expect(rec.Code).To(Equal(http.StatusOK))

		var body map[string]map[string]interface{}
		Expect(json.Unmarshal(rec.Body.Bytes(), &body)).To(Succeed())
		Expect(body["user"]["email"]).To(Equal("a@example.com"))
		Expect(body["user"]["role"]).To(Equal("employee"))
	})

	It("returns 400 for a malformed signup body", func() {
		Expect(post(h.Signup, `{"email":`).Code).To(Equal(http.StatusBadRequest))
	})

	It("returns 409 for a duplicate signup", func() {
		post(h.Signup, `{"email":"a@example.com","password":"password123","name":"A"}`)
		Expect(post(h.Signup, `{"email":"a@example.com","password":"password123","name":"B"}`).Code).To(Equal(http.StatusConflict))
	})

	It("logs in with the signup credentials", func() {
		post(h.Signup, `{"email":"a@example.com","password":"password123","name":"A"}`)

		rec := post(h.Login, `{"email":"a@example.com","password":"password123"}`)
		Expect(rec.Code).To(Equal(http.StatusOK))

		var pair Tokens
		Expect(json.Unmarshal(rec.Body.Bytes(), &pair)).To(Succeed())
		Expect(pair.AccessToken).NotTo(BeEmpty())

		refreshed := post(h.RefreshToken, `{"refresh_token":"`+pair.RefreshToken+`"}`)
		Expect(refreshed.Code).To(Equal(http.StatusOK))
	})

	It("returns 401 for bad credentials", func() {
		Expect(post(h.Login, `{"email":"a@example.com","password":"nope"}`).Code).To(Equal(http.StatusUnauthorized))
	})

	Describe("AuthMiddleware", func() {
		var (
			reached *Principal
			next    http.Handler
		)

		BeforeEach(func() {
			reached = nil
			next = h.AuthMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				reached, _ = UserFromContext(r.Context())
				w.WriteHeader(http.StatusOK)
			}))
		})

		serve := func(authorization string) *httptest.ResponseRecorder {
			req := httptest.NewRequest(http.MethodGet, "/profile", nil)
			if authorization != "" {
				req.Header.Set("Authorization", authorization)
			}
			rec := httptest.NewRecorder()
			next.ServeHTTP(rec, req)
			return rec
		}

		It("attaches the profile for a valid token", func() {
			user, err := service.Signup(context.Background(), SignupRequest{Email: "a@example.com", Password: "password123", Name: "A"})
			Expect(err).NotTo(HaveOccurred())
			token, err := tokens.GenerateAccessToken(user.ID)
			Expect(err).NotTo(HaveOccurred())

			rec := serve("Bearer " + token)
			Expect(rec.Code).To(Equal(http.StatusOK))
			Expect(reached).NotTo(BeNil())
			Expect(reached.ID).To(Equal(user.ID))
		})

		It("returns 401 without a header", func() {
			Expect(serve("").Code).To(Equal(http.StatusUnauthorized))
			Expect(reached).To(BeNil())
		})

		It("returns 401 for an unknown token", func() {
			Expect(serve("Bearer nonsense").Code).To(Equal(http.StatusUnauthorized))
		})
	})
})
