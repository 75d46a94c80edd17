package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/makeup-studio/internal/httperr"
	"github.com/BruksfildServices01/makeup-studio/internal/httpresp"
	"github.com/BruksfildServices01/makeup-studio/internal/middleware"
	ucCatalog "github.com/BruksfildServices01/makeup-studio/internal/usecase/catalog"
)

// ======================================================
// HANDLER
// ======================================================

type ServiceHandler struct {
	list   *ucCatalog.ListServices
	get    *ucCatalog.GetService
	create *ucCatalog.CreateService
	update *ucCatalog.UpdateService
	delete *ucCatalog.DeleteService
}

func NewServiceHandler(
	list *ucCatalog.ListServices,
	get *ucCatalog.GetService,
	create *ucCatalog.CreateService,
	update *ucCatalog.UpdateService,
	delete *ucCatalog.DeleteService,
) *ServiceHandler {
	return &ServiceHandler{
		list:   list,
		get:    get,
		create: create,
		update: update,
		delete: delete,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateServiceRequest struct {
	Name            string  `json:"name"`
	DurationMinutes int     `json:"durationMinutes"`
	Price           float64 `json:"price"`
}

type UpdateServiceRequest struct {
	Name            *string  `json:"name"`
	DurationMinutes *int     `json:"durationMinutes"`
	Price           *float64 `json:"price"`
}

// ======================================================
// READ
// ======================================================

func (h *ServiceHandler) List(c *gin.Context) {
	services, err := h.list.Execute(c.Request.Context())
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, services)
}

func (h *ServiceHandler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		httperr.BadRequest(c, "invalid_id", "Invalid service id.")
		return
	}

	s, err := h.get.Execute(c.Request.Context(), id)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, s)
}

// ======================================================
// WRITE (Admin)
// ======================================================

func (h *ServiceHandler) Create(c *gin.Context) {
	var req CreateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Malformed request body.")
		return
	}

	caller, _ := middleware.IdentityFrom(c)

	s, err := h.create.Execute(c.Request.Context(), ucCatalog.CreateServiceInput{
		Name:            req.Name,
		DurationMinutes: req.DurationMinutes,
		Price:           req.Price,
		Actor:           caller.Email,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.Created(c, s)
}

func (h *ServiceHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		httperr.BadRequest(c, "invalid_id", "Invalid service id.")
		return
	}

	var req UpdateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Malformed request body.")
		return
	}

	caller, _ := middleware.IdentityFrom(c)

	s, err := h.update.Execute(c.Request.Context(), ucCatalog.UpdateServiceInput{
		ID:              id,
		Name:            req.Name,
		DurationMinutes: req.DurationMinutes,
		Price:           req.Price,
		Actor:           caller.Email,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, s)
}

func (h *ServiceHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		httperr.BadRequest(c, "invalid_id", "Invalid service id.")
		return
	}

	caller, _ := middleware.IdentityFrom(c)

	if err := h.delete.Execute(c.Request.Context(), id, caller.Email); err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.NoContent(c)
}
