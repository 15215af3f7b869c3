package web

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"gitlab.com/velorent/booking-widget/internal/booking/form"
	"gitlab.com/velorent/booking-widget/internal/booking/guard"
	"gitlab.com/velorent/booking-widget/internal/booking/quote"
	"gitlab.com/velorent/booking-widget/internal/booking/session"
	"gitlab.com/velorent/booking-widget/internal/booking/submit"
	"gitlab.com/velorent/booking-widget/internal/catalog"
	"gitlab.com/velorent/booking-widget/internal/schema"
	"gitlab.com/velorent/booking-widget/internal/store/interfaces"
)

type handlers struct {
	sessions     *session.Store
	submitGuard  *guard.Guard
	orchestrator *submit.Orchestrator
	lister       interfaces.WithListRecentBookings
	pinger       interfaces.WithPing
}

type fieldChange struct {
	Field string `json:"field" binding:"required"`
	Value string `json:"value"`
}

type sessionView struct {
	SessionID string            `json:"sessionId"`
	Form      form.Form         `json:"form"`
	Quote     schema.PriceQuote `json:"quote"`
}

func (h *handlers) view(id string, f form.Form) sessionView {
	return sessionView{
		SessionID: id,
		Form:      f,
		Quote:     quoteFor(f.Request),
	}
}

// quoteFor recomputes the derived quote from the current form state. A model
// missing from the catalog yields the zero quote.
func quoteFor(r schema.BookingRequest) schema.PriceQuote {
	vehicle, _ := catalog.Lookup(r.VehicleModel)
	return quote.Calculate(vehicle.PricePerDay, r.BookingType, r.DayCount, r.WeekCount, r.VehicleModel)
}

func (h *handlers) openSession(c *gin.Context) {
	id := session.NewID()
	f := form.Open()

	if err := h.sessions.Save(c.Request.Context(), id, f); err != nil {
		HandleError(c, http.StatusInternalServerError, "Failed to open a widget session", err)
		return
	}

	c.JSON(http.StatusCreated, h.view(id, f))
}

func (h *handlers) getSession(c *gin.Context) {
	id := c.Params.ByName("id")

	f, ok := h.sessions.Load(c.Request.Context(), id)
	if !ok {
		HandleError(c, http.StatusNotFound, "Unknown widget session", nil)
		return
	}

	c.JSON(http.StatusOK, h.view(id, f))
}

func (h *handlers) patchField(c *gin.Context) {
	id := c.Params.ByName("id")

	var change fieldChange
	if err := c.ShouldBindJSON(&change); err != nil {
		HandleError(c, http.StatusBadRequest, "Failed to bind the field change", err)
		return
	}

	f, ok := h.sessions.Load(c.Request.Context(), id)
	if !ok {
		HandleError(c, http.StatusNotFound, "Unknown widget session", nil)
		return
	}

	// The stored form still says "editing" while another instance is
	// submitting, so the lock is the authority here.
	held, err := h.submitGuard.Held(c.Request.Context(), id)
	if err != nil {
		HandleError(c, http.StatusInternalServerError, "Failed to inspect the submission lock", err)
		return
	}
	if held {
		HandleError(c, http.StatusConflict, "A submission is in flight", nil)
		return
	}

	if err := f.SetField(change.Field, change.Value); err != nil {
		switch {
		case errors.Is(err, form.ErrSubmissionInFlight):
			HandleError(c, http.StatusConflict, "A submission is in flight", err)
		case errors.Is(err, form.ErrNotEditing):
			HandleError(c, http.StatusConflict, "The form is no longer editable", err)
		default:
			HandleError(c, http.StatusBadRequest, "Invalid field change", err)
		}
		return
	}

	if err := h.sessions.Save(c.Request.Context(), id, f); err != nil {
		HandleError(c, http.StatusInternalServerError, "Failed to save the widget session", err)
		return
	}

	c.JSON(http.StatusOK, h.view(id, f))
}

func (h *handlers) submitSession(c *gin.Context) {
	id := c.Params.ByName("id")
	logger := c.MustGet("logger").(*zerolog.Logger)

	f, ok := h.sessions.Load(c.Request.Context(), id)
	if !ok {
		HandleError(c, http.StatusNotFound, "Unknown widget session", nil)
		return
	}

	acquired, err := h.submitGuard.Acquire(c.Request.Context(), id)
	if err != nil {
		HandleError(c, http.StatusInternalServerError, "Failed to acquire the submission lock", err)
		return
	}

	if !acquired {
		HandleError(c, http.StatusConflict, "A submission is already in flight", nil)
		return
	}

	defer h.submitGuard.Release(c.Request.Context(), id)

	if err := f.BeginSubmit(); err != nil {
		HandleError(c, http.StatusConflict, "The form cannot be submitted", err)
		return
	}

	if len(f.Errors) > 0 {
		if err := h.sessions.Save(c.Request.Context(), id, f); err != nil {
			HandleError(c, http.StatusInternalServerError, "Failed to save the widget session", err)
			return
		}

		c.JSON(http.StatusUnprocessableEntity, h.view(id, f))
		return
	}

	result := h.orchestrator.Submit(c.Request.Context(), f.Request, quoteFor(f.Request), logger)

	_ = f.FinishSubmit(result.Succeeded())

	if err := h.sessions.Save(c.Request.Context(), id, f); err != nil {
		logger.Err(err).Msg("Failed to save the terminal session state")
	}

	c.JSON(http.StatusOK, gin.H{
		"sessionId": id,
		"form":      f,
		"result":    result,
	})
}

func (h *handlers) closeSession(c *gin.Context) {
	id := c.Params.ByName("id")

	f, ok := h.sessions.Load(c.Request.Context(), id)
	if !ok {
		HandleError(c, http.StatusNotFound, "Unknown widget session", nil)
		return
	}

	held, err := h.submitGuard.Held(c.Request.Context(), id)
	if err != nil {
		HandleError(c, http.StatusInternalServerError, "Failed to inspect the submission lock", err)
		return
	}
	if held {
		HandleError(c, http.StatusConflict, "Closing is blocked while submitting", nil)
		return
	}

	if err := f.Close(); err != nil {
		HandleError(c, http.StatusConflict, "Closing is blocked while submitting", err)
		return
	}

	if err := h.sessions.Drop(c.Request.Context(), id); err != nil {
		HandleError(c, http.StatusInternalServerError, "Failed to discard the widget session", err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *handlers) getCatalog(c *gin.Context) {
	vehicles := catalog.Models()

	out := make([]gin.H, 0, len(vehicles))
	for _, vehicle := range vehicles {
		out = append(out, gin.H{
			"model":       vehicle.Model,
			"pricePerDay": schema.RoundedFloat(vehicle.PricePerDay),
		})
	}

	c.JSON(http.StatusOK, gin.H{"vehicles": out})
}

func (h *handlers) storeDiagnostics(c *gin.Context) {
	logger := c.MustGet("logger").(*zerolog.Logger)

	bookingType := schema.BookingTypeDaily
	if c.Query("type") == string(schema.BookingTypeWeekly) {
		bookingType = schema.BookingTypeWeekly
	}

	limit, _ := strconv.Atoi(c.Query("limit"))

	reachable := true
	var pingError string
	if err := h.pinger.Ping(c.Request.Context(), logger); err != nil {
		reachable = false
		pingError = err.Error()
	}

	list, err := h.lister.ListRecentBookings(c.Request.Context(), schema.ListParams{
		BookingType: bookingType,
		Limit:       limit,
	}, logger)
	if err != nil {
		HandleError(c, http.StatusInternalServerError, "Failed listing recent bookings", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"reachable": reachable,
		"pingError": pingError,
		"bookings":  list.Bookings,
		"errors":    list.Errors,
	})
}
