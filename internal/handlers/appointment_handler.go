package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	domain "github.com/BruksfildServices01/makeup-studio/internal/domain/appointment"
	"github.com/BruksfildServices01/makeup-studio/internal/dto"
	"github.com/BruksfildServices01/makeup-studio/internal/httperr"
	"github.com/BruksfildServices01/makeup-studio/internal/httpresp"
	"github.com/BruksfildServices01/makeup-studio/internal/middleware"
	"github.com/BruksfildServices01/makeup-studio/internal/timezone"
	ucAppointment "github.com/BruksfildServices01/makeup-studio/internal/usecase/appointment"
)

// ======================================================
// HANDLER
// ======================================================

type AppointmentHandler struct {
	create       *ucAppointment.CreateAppointment
	updateStatus *ucAppointment.UpdateAppointmentStatus
	cancel       *ucAppointment.CancelAppointment
	get          *ucAppointment.GetAppointment
	list         *ucAppointment.ListAppointments
	listByEmail  *ucAppointment.ListAppointmentsByEmail
	availability *ucAppointment.GetAvailability

	// Studio timezone, used for timestamps and dates sent without an offset.
	loc *time.Location
}

func NewAppointmentHandler(
	create *ucAppointment.CreateAppointment,
	updateStatus *ucAppointment.UpdateAppointmentStatus,
	cancel *ucAppointment.CancelAppointment,
	get *ucAppointment.GetAppointment,
	list *ucAppointment.ListAppointments,
	listByEmail *ucAppointment.ListAppointmentsByEmail,
	availability *ucAppointment.GetAvailability,
	loc *time.Location,
) *AppointmentHandler {
	return &AppointmentHandler{
		create:       create,
		updateStatus: updateStatus,
		cancel:       cancel,
		get:          get,
		list:         list,
		listByEmail:  listByEmail,
		availability: availability,
		loc:          loc,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateAppointmentRequest struct {
	AppointmentDate string `json:"appointmentDate"`
	ClientName      string `json:"clientName"`
	PhoneNumber     string `json:"phoneNumber"`
	Email           string `json:"email"`
	ServiceIDs      []uint `json:"serviceIds"`
}

type UpdateStatusRequest struct {
	Status *domain.Status `json:"status"`
}

// ======================================================
// CREATE
// ======================================================

func (h *AppointmentHandler) Create(c *gin.Context) {
	var req CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Malformed request body.")
		return
	}

	var start time.Time
	if req.AppointmentDate != "" {
		t, err := timezone.ParseDateTime(req.AppointmentDate, h.loc)
		if err != nil {
			httperr.Respond(c, httperr.ErrValidation([]httperr.FieldError{
				{Field: "appointmentDate", Rule: "datetime"},
			}))
			return
		}
		start = t
	}

	caller, _ := middleware.IdentityFrom(c)

	ap, err := h.create.Execute(c.Request.Context(), ucAppointment.CreateAppointmentInput{
		AppointmentDate: start,
		ClientName:      req.ClientName,
		PhoneNumber:     req.PhoneNumber,
		Email:           req.Email,
		ServiceIDs:      req.ServiceIDs,
		Actor:           caller.Email,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.Created(c, dto.NewAppointmentDTO(*ap))
}

// ======================================================
// READ
// ======================================================

func (h *AppointmentHandler) ListAll(c *gin.Context) {
	out, err := h.list.Execute(c.Request.Context())
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, out)
}

func (h *AppointmentHandler) GetByID(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		httperr.BadRequest(c, "invalid_id", "Invalid appointment id.")
		return
	}

	ap, err := h.get.Execute(c.Request.Context(), id)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, dto.NewAppointmentDTO(*ap))
}

// ListMine lists the appointments booked under the caller's email.
func (h *AppointmentHandler) ListMine(c *gin.Context) {
	caller, _ := middleware.IdentityFrom(c)

	out, err := h.listByEmail.Execute(c.Request.Context(), caller.Email)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, out)
}

// ======================================================
// STATUS
// ======================================================

func (h *AppointmentHandler) UpdateStatus(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		httperr.BadRequest(c, "invalid_id", "Invalid appointment id.")
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Status == nil {
		httperr.Respond(c, httperr.ErrValidation([]httperr.FieldError{
			{Field: "status", Rule: "oneof", Param: "Pending Confirmed Cancelled Completed"},
		}))
		return
	}

	caller, _ := middleware.IdentityFrom(c)

	_, err := h.updateStatus.Execute(c.Request.Context(), ucAppointment.UpdateStatusInput{
		ID:     id,
		Status: *req.Status,
		Actor:  caller.Email,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.NoContent(c)
}

func (h *AppointmentHandler) Cancel(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		httperr.BadRequest(c, "invalid_id", "Invalid appointment id.")
		return
	}

	caller, _ := middleware.IdentityFrom(c)

	if _, err := h.cancel.Execute(c.Request.Context(), id, caller); err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.NoContent(c)
}

// ======================================================
// AVAILABILITY
// ======================================================

// Availability serves ?date=YYYY-MM-DD&serviceIds=1,2.
func (h *AppointmentHandler) Availability(c *gin.Context) {
	var fields []httperr.FieldError

	date, err := timezone.ParseDate(c.Query("date"), h.loc)
	if err != nil {
		fields = append(fields, httperr.FieldError{Field: "date", Rule: "datetime", Param: "2006-01-02"})
	}

	ids, ok := parseIDList(c.QueryArray("serviceIds"))
	if !ok {
		fields = append(fields, httperr.FieldError{Field: "serviceIds", Rule: "gt", Param: "0"})
	}

	if len(fields) > 0 {
		httperr.Respond(c, httperr.ErrValidation(fields))
		return
	}

	slots, err := h.availability.Execute(c.Request.Context(), domain.AvailabilityInput{
		Date:       date,
		ServiceIDs: ids,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, gin.H{
		"date":  date.Format("2006-01-02"),
		"slots": slots,
	})
}
