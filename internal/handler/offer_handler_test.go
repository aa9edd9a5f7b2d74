package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tims-dev/tims-admin-bff/internal/backend"
	"github.com/tims-dev/tims-admin-bff/internal/models"
	"github.com/tims-dev/tims-admin-bff/internal/service"
	"github.com/tims-dev/tims-admin-bff/pkg/config"
)

func offerBackendStub() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/Offer/GetOffers", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]models.Offer{{ID: 1, Name: "Summer Special", DiscountPercent: 20}}) //nolint:errcheck
	})
	mux.HandleFunc("/Offer/InsertOffer", func(w http.ResponseWriter, r *http.Request) {
		var payload models.Offer
		json.NewDecoder(r.Body).Decode(&payload) //nolint:errcheck
		payload.ID = 2
		json.NewEncoder(w).Encode(map[string]interface{}{ //nolint:errcheck
			"isSuccess": true,
			"message":   "offer created",
			"data":      payload,
		})
	})
	return mux
}

func newOfferRouter(t *testing.T) (*gin.Engine, func()) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	server := httptest.NewServer(offerBackendStub())
	client := backend.NewClient(config.BackendConfig{BaseURL: server.URL, Timeout: 5 * time.Second}, nil, nil)
	api := backend.NewAPI(client)
	screen := service.NewScreen(api.Offers, func(o models.Offer) []string {
		return []string{o.Name}
	}, nil)

	router := gin.New()
	NewOfferHandler(api.Offers, screen, nil).Register(router.Group("/offers"))
	return router, server.Close
}

func TestOfferHandlerList(t *testing.T) {
	router, cleanup := newOfferRouter(t)
	defer cleanup()

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/offers", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Summer Special")
}

func TestOfferHandlerCreate(t *testing.T) {
	router, cleanup := newOfferRouter(t)
	defer cleanup()

	w := httptest.NewRecorder()
	body := strings.NewReader(`{"name":"Winter Deal","discountPercent":15,"validFrom":"2026-01-01","validTo":"2026-02-01","isActive":true}`)
	req, _ := http.NewRequest(http.MethodPost, "/offers", body)
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)
	var envelope struct {
		Data models.Offer `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	assert.Equal(t, int64(2), envelope.Data.ID)
	assert.Equal(t, "Winter Deal", envelope.Data.Name)
}

func TestOfferHandlerCreateInvalidPercentRejected(t *testing.T) {
	router, cleanup := newOfferRouter(t)
	defer cleanup()

	w := httptest.NewRecorder()
	body := strings.NewReader(`{"name":"Winter Deal","discountPercent":150,"isActive":true}`)
	req, _ := http.NewRequest(http.MethodPost, "/offers", body)
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)
	var envelope struct {
		Meta map[string]map[string]string `json:"meta"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	assert.Equal(t, "must be between 1 and 100", envelope.Meta["fieldErrors"]["discountPercent"])
}
