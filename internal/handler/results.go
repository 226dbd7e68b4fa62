package handler

import (
	"io"
	"net/http"
	"strconv"
	"sync"

	"github.com/labstack/echo/v4"

	"github.com/NemoTravel/results/internal/cache"
	"github.com/NemoTravel/results/internal/models"
	"github.com/NemoTravel/results/internal/parser"
	"github.com/NemoTravel/results/internal/store"
	"github.com/NemoTravel/results/pkg/currency"
)

// ResultsHandler owns the live results sessions: one store per loaded
// search, rebuilt from the snapshot cache when a session is not in memory.
type ResultsHandler struct {
	mu       sync.RWMutex
	sessions map[int]*store.Store
	cache    cache.Cache
}

func NewResultsHandler(c cache.Cache) *ResultsHandler {
	return &ResultsHandler{
		sessions: make(map[int]*store.Store),
		cache:    c,
	}
}

// Load parses a search response document and opens a results session for it.
func (h *ResultsHandler) Load(c echo.Context) error {
	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid_request",
			Message: "Failed to read request body: " + err.Error(),
			Code:    http.StatusBadRequest,
		})
	}

	snapshot, err := parser.Parse(body)
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "parse_error",
			Message: "Failed to parse search response: " + err.Error(),
			Code:    http.StatusBadRequest,
		})
	}

	_ = h.cache.Set(c.Request().Context(), snapshot)

	h.mu.Lock()
	if existing, ok := h.sessions[snapshot.SearchID]; ok {
		existing.Close()
	}
	session := store.New(snapshot)
	h.sessions[snapshot.SearchID] = session
	h.mu.Unlock()

	return c.JSON(http.StatusOK, resultsInfo(session.Snapshot()))
}

// Flights returns the visible flights of the current leg with their
// relative display prices.
func (h *ResultsHandler) Flights(c echo.Context) error {
	session, ok := h.session(c)
	if !ok {
		return sessionNotFound(c)
	}

	state := session.Snapshot()
	derived := session.Derived()

	flights := make([]models.FlightView, 0, len(derived.VisibleFlights))
	for _, flight := range derived.VisibleFlights {
		view := models.FlightView{
			Flight:      flight,
			Price:       flight.TotalPrice,
			NewFlightID: flight.ID,
		}

		if candidate, ok := derived.RelativePrices[flight.ID]; ok {
			view.Price = candidate.Price
			view.IsRT = candidate.IsRT
			view.NewFlightID = candidate.NewFlightID
		}

		// First-leg prices are "trip from" totals; later legs show the
		// surcharge over the cheapest option, so they carry a sign.
		if state.CurrentLeg == 0 {
			view.PriceFormatted = currency.Format(view.Price)
		} else {
			view.PriceFormatted = currency.FormatDelta(view.Price)
		}

		flights = append(flights, view)
	}

	return c.JSON(http.StatusOK, models.FlightsResponse{
		LegID:        state.CurrentLeg,
		IsLastLeg:    state.IsLastLeg(),
		Flights:      flights,
		TotalCount:   len(derived.LegFlights),
		HasHidden:    derived.HasHidden,
		HasTransfers: derived.HasTransfers,
		MinPrice:     derived.MinPrices[state.CurrentLeg],
		TotalPrice:   derived.TotalPrice,
	})
}

// SelectFlight records the user's choice and advances the funnel.
func (h *ResultsHandler) SelectFlight(c echo.Context) error {
	session, ok := h.session(c)
	if !ok {
		return sessionNotFound(c)
	}

	var req models.SelectFlightRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	session.SelectFlight(req.LegID, req.FlightID)

	return c.JSON(http.StatusOK, selectionResponse(session))
}

// GoBack navigates one leg back, dropping the selections made from there on.
func (h *ResultsHandler) GoBack(c echo.Context) error {
	session, ok := h.session(c)
	if !ok {
		return sessionNotFound(c)
	}

	session.GoBack()

	return c.JSON(http.StatusOK, selectionResponse(session))
}

// SetFilters replaces the session's filter and sort state.
func (h *ResultsHandler) SetFilters(c echo.Context) error {
	session, ok := h.session(c)
	if !ok {
		return sessionNotFound(c)
	}

	var req models.FiltersRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	session.SetFilters(req.FilterState())
	session.SetSorting(req.SortSpec())
	session.SetShowAll(req.ShowAll)

	return h.Flights(c)
}

// FareFamilies returns the fare-family price deltas and combination
// validity for the completed selection.
func (h *ResultsHandler) FareFamilies(c echo.Context) error {
	session, ok := h.session(c)
	if !ok {
		return sessionNotFound(c)
	}

	derived := session.Derived()

	return c.JSON(http.StatusOK, models.FareFamiliesResponse{
		Valid:      derived.CombinationsValid,
		Prices:     derived.FamilyPrices,
		TotalPrice: derived.TotalPrice,
	})
}

// SelectFamily records a fare-family choice for one segment.
func (h *ResultsHandler) SelectFamily(c echo.Context) error {
	session, ok := h.session(c)
	if !ok {
		return sessionNotFound(c)
	}

	var req models.SelectFamilyRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	session.SelectFamily(req.LegID, req.SegmentID, req.Family)

	return h.FareFamilies(c)
}

func (h *ResultsHandler) session(c echo.Context) (*store.Store, bool) {
	searchID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return nil, false
	}

	h.mu.RLock()
	session, ok := h.sessions[searchID]
	h.mu.RUnlock()
	if ok {
		return session, true
	}

	snapshot, ok := h.cache.Get(c.Request().Context(), searchID)
	if !ok {
		return nil, false
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if session, ok := h.sessions[searchID]; ok {
		return session, true
	}

	session = store.New(snapshot)
	h.sessions[searchID] = session
	return session, true
}

func bindAndValidate(c echo.Context, req interface {
	Validate() error
}) error {
	if err := c.Bind(req); err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid_request",
			Message: "Failed to parse request body: " + err.Error(),
			Code:    http.StatusBadRequest,
		})
	}

	if err := req.Validate(); err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "validation_error",
			Message: err.Error(),
			Code:    http.StatusBadRequest,
		})
	}

	return nil
}

func sessionNotFound(c echo.Context) error {
	return c.JSON(http.StatusNotFound, models.ErrorResponse{
		Error:   "session_not_found",
		Message: "No results session for this search id",
		Code:    http.StatusNotFound,
	})
}

func resultsInfo(state store.State) models.ResultsInfo {
	return models.ResultsInfo{
		SearchID:   state.SearchID,
		Legs:       state.Legs,
		CurrentLeg: state.CurrentLeg,
		Currency:   state.Currency,
	}
}

func selectionResponse(session *store.Store) models.SelectionResponse {
	state := session.Snapshot()

	return models.SelectionResponse{
		CurrentLeg:        state.CurrentLeg,
		SelectionComplete: state.SelectionComplete(),
		TotalPrice:        session.Derived().TotalPrice,
	}
}

func HealthHandler(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status": "ok",
	})
}
