package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"

	"veluna/internal/delivery/api/response"
	"veluna/internal/domain/entity"
	"veluna/internal/usecase"
)

// RecordHandler serves list, get, save and delete for one back-office collection
type RecordHandler[T entity.Record] struct {
	recordUC usecase.RecordUsecase[T]
	name     string
	activity activityRecorder
}

// NewRecordHandler creates a handler over recordUC. name appears in activity log entries.
func NewRecordHandler[T entity.Record](recordUC usecase.RecordUsecase[T], name string, adminUC usecase.AdminUsecase, logger *slog.Logger) *RecordHandler[T] {
	return &RecordHandler[T]{
		recordUC: recordUC,
		name:     name,
		activity: activityRecorder{adminUC: adminUC, logger: logger},
	}
}

// List returns every record
func (h *RecordHandler[T]) List(c echo.Context) error {
	records, err := h.recordUC.List(c.Request().Context())
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, records)
}

// Get returns one record
func (h *RecordHandler[T]) Get(c echo.Context) error {
	id, ok := paramID(c, "id")
	if !ok {
		return invalidID(c)
	}

	record, err := h.recordUC.Get(c.Request().Context(), id)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, record)
}

// Create saves a new record
func (h *RecordHandler[T]) Create(c echo.Context) error {
	var record T
	if err := c.Bind(&record); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid "+h.name+" input")
	}
	if record.GetID() != 0 {
		return response.BadRequest(c, "INVALID_ID", "A new "+h.name+" must not carry an id")
	}

	return h.save(c, record, http.StatusCreated)
}

// Update replaces the record named by the id path parameter
func (h *RecordHandler[T]) Update(c echo.Context) error {
	id, ok := paramID(c, "id")
	if !ok {
		return invalidID(c)
	}

	var record T
	if err := c.Bind(&record); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid "+h.name+" input")
	}
	if record.GetID() != id {
		return response.BadRequest(c, "INVALID_ID", "Body id does not match the path")
	}

	if _, err := h.recordUC.Get(c.Request().Context(), id); err != nil {
		return response.HandleAppError(c, err)
	}

	return h.save(c, record, http.StatusOK)
}

func (h *RecordHandler[T]) save(c echo.Context, record T, status int) error {
	saved, err := h.recordUC.Save(c.Request().Context(), record)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	h.activity.record(c, "save_"+h.name, strconv.FormatInt((*saved).GetID(), 10))

	return response.Success(c, status, saved)
}

// Delete removes a record
func (h *RecordHandler[T]) Delete(c echo.Context) error {
	id, ok := paramID(c, "id")
	if !ok {
		return invalidID(c)
	}

	if err := h.recordUC.Delete(c.Request().Context(), id); err != nil {
		return response.HandleAppError(c, err)
	}

	h.activity.record(c, "delete_"+h.name, strconv.FormatInt(id, 10))

	return response.Message(c, http.StatusOK, "Deleted")
}

// RecordHandlerParams holds dependencies for the record handlers, injected by Fx.
type RecordHandlerParams struct {
	fx.In

	Couriers       usecase.RecordUsecase[entity.Courier]
	ShippingZones  usecase.RecordUsecase[entity.ShippingZone]
	PaymentMethods usecase.RecordUsecase[entity.PaymentMethod]
	EmailCampaigns usecase.RecordUsecase[entity.EmailCampaign]
	Reviews        usecase.RecordUsecase[entity.Review]
	Categories     usecase.RecordUsecase[entity.Category]
	AdminUC        usecase.AdminUsecase
	Logger         *slog.Logger
}

// RecordHandlers groups the handlers of every generic back-office collection
type RecordHandlers struct {
	Couriers       *RecordHandler[entity.Courier]
	ShippingZones  *RecordHandler[entity.ShippingZone]
	PaymentMethods *RecordHandler[entity.PaymentMethod]
	EmailCampaigns *RecordHandler[entity.EmailCampaign]
	Reviews        *RecordHandler[entity.Review]
	Categories     *RecordHandler[entity.Category]
}

// NewRecordHandlers is the constructor for RecordHandlers
func NewRecordHandlers(params RecordHandlerParams) *RecordHandlers {
	return &RecordHandlers{
		Couriers:       NewRecordHandler(params.Couriers, "courier", params.AdminUC, params.Logger),
		ShippingZones:  NewRecordHandler(params.ShippingZones, "shipping_zone", params.AdminUC, params.Logger),
		PaymentMethods: NewRecordHandler(params.PaymentMethods, "payment_method", params.AdminUC, params.Logger),
		EmailCampaigns: NewRecordHandler(params.EmailCampaigns, "email_campaign", params.AdminUC, params.Logger),
		Reviews:        NewRecordHandler(params.Reviews, "review", params.AdminUC, params.Logger),
		Categories:     NewRecordHandler(params.Categories, "category", params.AdminUC, params.Logger),
	}
}
