package observation

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/teachscope/teachscope/internal/dto"
	"github.com/teachscope/teachscope/internal/service"
)

// stubObservationService overrides only what a test needs; calling anything
// else panics, which is the point.
type stubObservationService struct {
	service.ObservationService
	validation service.ValidationResult
}

func (s stubObservationService) Validate(id uint) (service.ValidationResult, error) {
	return s.validation, nil
}

func TestValidateObservationBodyMatchesDocumentedShape(t *testing.T) {
	gin.SetMode(gin.TestMode)
	ctrl := NewObservationController(stubObservationService{
		validation: service.ValidationResult{
			IsValid: false,
			Errors:  []string{"observedAt is required", "presentStudents cannot exceed totalStudents"},
		},
	})
	router := gin.New()
	router.GET("/observations/:id/validate", ctrl.ValidateObservation)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/observations/1/validate", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	var body dto.ValidationCheckResponse
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if body.IsValid {
		t.Error("is_valid = true, want false")
	}
	if len(body.Errors) != 2 {
		t.Errorf("errors = %v, want both rule failures", body.Errors)
	}

	// The wire keys are part of the contract, not just the struct shape.
	var raw map[string]json.RawMessage
	json.Unmarshal(w.Body.Bytes(), &raw)
	for _, key := range []string{"is_valid", "errors"} {
		if _, ok := raw[key]; !ok {
			t.Errorf("response missing %q key", key)
		}
	}
}
