package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/arka-labs/course-market-api/internal/models"
	"github.com/arka-labs/course-market-api/internal/service"
)

func newGuardedRouter(class models.PrincipalClass) (*gin.Engine, *service.TokenService) {
	gin.SetMode(gin.TestMode)
	tokens := service.NewTokenService(service.TokenConfig{
		LearnerSecret:    "learner-secret",
		InstructorSecret: "instructor-secret",
		Expiry:           time.Hour,
	})
	router := gin.New()
	router.GET("/guarded", RequireClass(tokens, class), func(c *gin.Context) {
		claims, ok := Claims(c)
		if !ok {
			c.Status(http.StatusInternalServerError)
			return
		}
		c.String(http.StatusOK, claims.PrincipalID)
	})
	return router, tokens
}

func TestRequireClassAcceptsValidToken(t *testing.T) {
	router, tokens := newGuardedRouter(models.ClassLearner)
	token, _, err := tokens.Issue(models.ClassLearner, "learner-1", "learner@example.com")
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}

	recorder := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/guarded", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(recorder, req)

	if recorder.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d", recorder.Code)
	}
	if recorder.Body.String() != "learner-1" {
		t.Fatalf("unexpected principal: %s", recorder.Body.String())
	}
}

func TestRequireClassMissingHeader(t *testing.T) {
	router, _ := newGuardedRouter(models.ClassLearner)

	recorder := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/guarded", nil)
	router.ServeHTTP(recorder, req)

	if recorder.Code != http.StatusUnauthorized {
		t.Fatalf("unexpected status: %d", recorder.Code)
	}
}

func TestRequireClassMalformedHeader(t *testing.T) {
	router, _ := newGuardedRouter(models.ClassLearner)

	recorder := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/guarded", nil)
	req.Header.Set("Authorization", "Token abc")
	router.ServeHTTP(recorder, req)

	if recorder.Code != http.StatusUnauthorized {
		t.Fatalf("unexpected status: %d", recorder.Code)
	}
}

func TestRequireClassRejectsOtherClassToken(t *testing.T) {
	router, tokens := newGuardedRouter(models.ClassInstructor)
	token, _, err := tokens.Issue(models.ClassLearner, "learner-1", "learner@example.com")
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}

	recorder := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/guarded", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(recorder, req)

	if recorder.Code != http.StatusUnauthorized {
		t.Fatalf("unexpected status: %d", recorder.Code)
	}
}
