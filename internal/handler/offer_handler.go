package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/tims-dev/tims-admin-bff/internal/backend"
	"github.com/tims-dev/tims-admin-bff/internal/form"
	"github.com/tims-dev/tims-admin-bff/internal/models"
	"github.com/tims-dev/tims-admin-bff/internal/service"
	appErrors "github.com/tims-dev/tims-admin-bff/pkg/errors"
	"github.com/tims-dev/tims-admin-bff/pkg/response"
)

// OfferHandler serves the discount-offer screens. Offers have no
// associations, so the handler is the ResourceHandler flow routed through the
// offer form for its validation rules.
type OfferHandler struct {
	api      *backend.Resource[models.Offer]
	screen   *service.Screen[models.Offer]
	validate *validator.Validate
}

// NewOfferHandler constructs the offer handler.
func NewOfferHandler(api *backend.Resource[models.Offer], screen *service.Screen[models.Offer], validate *validator.Validate) *OfferHandler {
	if validate == nil {
		validate = form.NewValidator()
	}
	return &OfferHandler{api: api, screen: screen, validate: validate}
}

// Register mounts the offer routes onto the group.
func (h *OfferHandler) Register(group *gin.RouterGroup) {
	group.GET("", h.List)
	group.GET("/:id", h.Get)
	group.POST("", h.Create)
	group.PUT("/:id", h.Update)
	group.DELETE("/:id", h.Delete)
}

// List returns the filtered, paginated offers.
func (h *OfferHandler) List(c *gin.Context) {
	query, page, size := listParams(c)
	items, pagination, err := h.screen.List(c.Request.Context(), query, page, size)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, items, pagination)
}

// Get returns one offer for the details view.
func (h *OfferHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	item, err := h.screen.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, item, nil)
}

// Create submits a new offer through the form controller.
func (h *OfferHandler) Create(c *gin.Context) {
	h.submit(c, 0)
}

// Update submits changes to an existing offer.
func (h *OfferHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	h.submit(c, id)
}

func (h *OfferHandler) submit(c *gin.Context, id int64) {
	var values form.OfferValues
	if err := c.ShouldBindJSON(&values); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}

	f := form.NewOfferForm(h.api, h.validate)
	if err := f.Load(c.Request.Context(), id); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrBackend.Code, appErrors.ErrBackend.Status, f.LoadErr()))
		return
	}
	f.Values = values

	result := f.Submit(c.Request.Context())
	if !result.IsSuccess {
		if f.Errors().Any() {
			fieldErrorResponse(c, result.Message, f.Errors())
			return
		}
		response.Error(c, resultError(result.Message, result.HTTPStatusCode))
		return
	}
	if id == 0 {
		response.Created(c, result.Data)
		return
	}
	response.JSON(c, http.StatusOK, result.Data, nil)
}

// Delete runs the delete-then-refresh flow.
func (h *OfferHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	message, err := h.screen.Delete(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"message": message}, nil)
}
