package form

import (
	"context"

	"github.com/go-playground/validator/v10"

	"github.com/tims-dev/tims-admin-bff/internal/backend"
	"github.com/tims-dev/tims-admin-bff/internal/models"
)

type offerAPI interface {
	GetByID(ctx context.Context, id int64) (*models.Offer, error)
	Insert(ctx context.Context, payload models.Offer) backend.Result[models.Offer]
	Update(ctx context.Context, id int64, payload models.Offer) backend.Result[models.Offer]
}

// OfferValues are the fields of the offer form.
type OfferValues struct {
	Name            string      `json:"name" validate:"required"`
	DiscountPercent int         `json:"discountPercent"`
	ValidFrom       models.Date `json:"validFrom"`
	ValidTo         models.Date `json:"validTo"`
	IsActive        bool        `json:"isActive"`
	Remarks         string      `json:"remarks"`
}

// OfferForm drives the discount-offer workflow. Offers have no associations;
// the form exists for its validation rules: alphabetic name, 1-100 percent
// and date ordering with the error rendered on valid-to.
type OfferForm struct {
	Base

	api      offerAPI
	validate *validator.Validate

	editID int64
	Values OfferValues
}

// NewOfferForm builds an unloaded offer form.
func NewOfferForm(api offerAPI, validate *validator.Validate) *OfferForm {
	if validate == nil {
		validate = NewValidator()
	}
	f := &OfferForm{api: api, validate: validate}
	f.Values.IsActive = true
	return f
}

// Load fetches the existing offer when editing; creating needs no options.
func (f *OfferForm) Load(ctx context.Context, id int64) error {
	f.setPhase(PhaseLoading)
	f.editID = id

	if id != 0 {
		existing, err := f.api.GetByID(ctx, id)
		if err != nil {
			f.setLoadErr("failed to load offer")
			return err
		}
		f.Values = OfferValues{
			Name:            existing.Name,
			DiscountPercent: existing.DiscountPercent,
			ValidFrom:       existing.ValidFrom,
			ValidTo:         existing.ValidTo,
			IsActive:        existing.IsActive,
			Remarks:         existing.Remarks,
		}
	}

	f.setPhase(PhaseEditing)
	return nil
}

// Validate runs the offer's field rules and stores the messages.
func (f *OfferForm) Validate() bool {
	errs := FieldErrors{}
	CollectStruct(f.validate, errs, f.Values)
	CheckAlphaName(errs, "name", f.Values.Name)
	CheckPercent(errs, "discountPercent", f.Values.DiscountPercent)
	CheckDateOrder(errs, "validTo", f.Values.ValidFrom, f.Values.ValidTo)
	f.setErrors(errs)
	return !errs.Any()
}

// Submit validates and forwards the offer to the backend.
func (f *OfferForm) Submit(ctx context.Context) backend.Result[models.Offer] {
	if !f.Validate() {
		return backend.Failure[models.Offer]("please correct the highlighted fields", 0)
	}
	if !f.beginSubmit() {
		return backend.Failure[models.Offer]("a submission is already in progress", 0)
	}
	defer f.endSubmit()

	payload := models.Offer{
		ID:              f.editID,
		Name:            f.Values.Name,
		DiscountPercent: f.Values.DiscountPercent,
		ValidFrom:       f.Values.ValidFrom,
		ValidTo:         f.Values.ValidTo,
		IsActive:        f.Values.IsActive,
		Remarks:         f.Values.Remarks,
	}

	if f.editID != 0 {
		return f.api.Update(ctx, f.editID, payload)
	}
	return f.api.Insert(ctx, payload)
}
