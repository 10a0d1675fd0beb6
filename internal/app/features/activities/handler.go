// internal/app/features/activities/handler.go
package activities

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	activitystore "github.com/pitchside/pitchside/internal/app/store/activities"
	userstore "github.com/pitchside/pitchside/internal/app/store/users"
	"github.com/pitchside/pitchside/internal/app/system/auth"
	"github.com/pitchside/pitchside/internal/app/system/geo"
	"github.com/pitchside/pitchside/internal/app/system/httpjson"
	"github.com/pitchside/pitchside/internal/app/system/paging"
	"github.com/pitchside/pitchside/internal/app/system/patch"
	"github.com/pitchside/pitchside/internal/app/system/timeouts"
	"github.com/pitchside/pitchside/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler serves sport activity endpoints.
type Handler struct {
	activities *activitystore.Store
	users      *userstore.Store
	log        *zap.Logger
}

func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{
		activities: activitystore.New(db),
		users:      userstore.New(db),
		log:        logger,
	}
}

// activityResponse decorates an activity with its derived capacity view and,
// for proximity searches, the distance from the search point.
type activityResponse struct {
	models.SportActivity
	AvailableSlots *int     `json:"available_slots"`
	DistanceKm     *float64 `json:"distance_km,omitempty"`
}

func present(a models.SportActivity, from *activitystore.LocationFilter) activityResponse {
	resp := activityResponse{
		SportActivity:  a,
		AvailableSlots: a.AvailableSlots(),
	}
	if from != nil && a.Latitude != nil && a.Longitude != nil {
		d := geo.RoundKm(geo.DistanceKm(from.Latitude, from.Longitude, *a.Latitude, *a.Longitude))
		resp.DistanceKm = &d
	}
	return resp
}

func presentAll(acts []models.SportActivity, from *activitystore.LocationFilter) []activityResponse {
	out := make([]activityResponse, 0, len(acts))
	for _, a := range acts {
		out = append(out, present(a, from))
	}
	return out
}

type createRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	SportType   string `json:"sport_type"`

	Location  string   `json:"location"`
	Address   string   `json:"address"`
	City      string   `json:"city"`
	Country   string   `json:"country"`
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
	RadiusKm  *float64 `json:"radius_km"`

	ScheduledDate   *time.Time `json:"scheduled_date"`
	StartTime       *time.Time `json:"start_time"`
	EndTime         *time.Time `json:"end_time"`
	DurationMinutes *int       `json:"duration_minutes"`

	MaxParticipants *int `json:"max_participants"`
	MinParticipants int  `json:"min_participants"`

	SkillLevelRequired string   `json:"skill_level_required"`
	CostPerPerson      float64  `json:"cost_per_person"`
	Currency           string   `json:"currency"`
	EquipmentProvided  bool     `json:"equipment_provided"`
	EquipmentNeeded    string   `json:"equipment_needed"`
	IsPublic           *bool    `json:"is_public"`
	Tags               []string `json:"tags"`
}

// Create handles POST /api/activities.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	creatorID, ok := auth.CurrentUserID(r)
	if !ok {
		httpjson.WriteError(w, http.StatusUnauthorized, httpjson.CodeUnauthorized, "authentication required")
		return
	}

	var req createRequest
	if !httpjson.Decode(w, r, &req) {
		return
	}
	if req.Name == "" {
		httpjson.WriteError(w, http.StatusBadRequest, httpjson.CodeBadRequest, "name is required")
		return
	}
	if !models.IsValidSportType(req.SportType) {
		httpjson.WriteError(w, http.StatusBadRequest, httpjson.CodeBadRequest, "unknown sport type")
		return
	}
	if (req.Latitude == nil) != (req.Longitude == nil) {
		httpjson.WriteError(w, http.StatusBadRequest, httpjson.CodeBadRequest, "latitude and longitude must be provided together")
		return
	}
	if req.MaxParticipants != nil && *req.MaxParticipants < 1 {
		httpjson.WriteError(w, http.StatusBadRequest, httpjson.CodeBadRequest, "max_participants must be at least 1")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	// The creator becomes the first participant, so a dangling creator id
	// must be rejected before the insert.
	exists, err := h.users.Exists(ctx, creatorID)
	if err != nil {
		h.log.Error("creator lookup failed", zap.Error(err))
		httpjson.WriteError(w, http.StatusInternalServerError, httpjson.CodeInternal, "could not create activity")
		return
	}
	if !exists {
		httpjson.WriteError(w, http.StatusUnprocessableEntity, httpjson.CodeInvalid, "creator does not exist")
		return
	}

	isPublic := true
	if req.IsPublic != nil {
		isPublic = *req.IsPublic
	}
	currency := req.Currency
	if currency == "" {
		currency = "EUR"
	}

	a, err := h.activities.Create(ctx, models.SportActivity{
		Name:               req.Name,
		Description:        req.Description,
		SportType:          req.SportType,
		Location:           req.Location,
		Address:            req.Address,
		City:               req.City,
		Country:            req.Country,
		Latitude:           req.Latitude,
		Longitude:          req.Longitude,
		RadiusKm:           req.RadiusKm,
		ScheduledDate:      req.ScheduledDate,
		StartTime:          req.StartTime,
		EndTime:            req.EndTime,
		DurationMinutes:    req.DurationMinutes,
		MaxParticipants:    req.MaxParticipants,
		MinParticipants:    req.MinParticipants,
		SkillLevelRequired: req.SkillLevelRequired,
		CostPerPerson:      req.CostPerPerson,
		Currency:           currency,
		EquipmentProvided:  req.EquipmentProvided,
		EquipmentNeeded:    req.EquipmentNeeded,
		IsPublic:           isPublic,
		Tags:               req.Tags,
		CreatedBy:          creatorID,
	})
	if err != nil {
		h.log.Error("activity create failed", zap.Error(err))
		httpjson.WriteError(w, http.StatusInternalServerError, httpjson.CodeInternal, "could not create activity")
		return
	}

	httpjson.Write(w, http.StatusCreated, present(a, nil))
}

// List handles GET /api/activities?limit=&offset=.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	page := paging.FromRequest(r)

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	acts, err := h.activities.List(ctx, page.Limit, page.Offset)
	if err != nil {
		h.writeStoreError(w, err)
		return
	}
	httpjson.Write(w, http.StatusOK, presentAll(acts, nil))
}

// Get handles GET /api/activities/{id}.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	a, err := h.activities.GetByID(ctx, id)
	if err != nil {
		h.writeStoreError(w, err)
		return
	}
	if err := h.activities.IncrementViews(ctx, id); err != nil {
		h.log.Warn("view counter update failed", zap.Error(err))
	}
	httpjson.Write(w, http.StatusOK, present(*a, nil))
}

// GetByUniqueID handles GET /api/activities/unique/{uniqueId}.
func (h *Handler) GetByUniqueID(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	a, err := h.activities.GetByUniqueID(ctx, chi.URLParam(r, "uniqueID"))
	if err != nil {
		h.writeStoreError(w, err)
		return
	}
	httpjson.Write(w, http.StatusOK, present(*a, nil))
}

// GetByUser handles GET /api/activities/user/{userID}.
func (h *Handler) GetByUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathID(w, r, "userID")
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	acts, err := h.activities.GetByUser(ctx, userID)
	if err != nil {
		h.writeStoreError(w, err)
		return
	}
	httpjson.Write(w, http.StatusOK, presentAll(acts, nil))
}

// GetBySportType handles GET /api/activities/type/{sportType}.
func (h *Handler) GetBySportType(w http.ResponseWriter, r *http.Request) {
	sportType := chi.URLParam(r, "sportType")
	if !models.IsValidSportType(sportType) {
		httpjson.WriteError(w, http.StatusBadRequest, httpjson.CodeBadRequest, "unknown sport type")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	acts, err := h.activities.GetBySportType(ctx, sportType)
	if err != nil {
		h.writeStoreError(w, err)
		return
	}
	httpjson.Write(w, http.StatusOK, presentAll(acts, nil))
}

// GetActive handles GET /api/activities/active.
func (h *Handler) GetActive(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	acts, err := h.activities.GetActive(ctx)
	if err != nil {
		h.writeStoreError(w, err)
		return
	}
	httpjson.Write(w, http.StatusOK, presentAll(acts, nil))
}

// Search handles GET /api/activities/search.
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	filter, ok := parseSearchQuery(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	acts, err := h.activities.Search(ctx, filter)
	if err != nil {
		h.writeStoreError(w, err)
		return
	}
	httpjson.Write(w, http.StatusOK, presentAll(acts, filter.Location))
}

// updateRequest mirrors activitystore.Update with tri-state fields.
type updateRequest struct {
	Name               patch.Field[string]    `json:"name"`
	Description        patch.Field[string]    `json:"description"`
	Location           patch.Field[string]    `json:"location"`
	Address            patch.Field[string]    `json:"address"`
	City               patch.Field[string]    `json:"city"`
	Country            patch.Field[string]    `json:"country"`
	Latitude           patch.Field[float64]   `json:"latitude"`
	Longitude          patch.Field[float64]   `json:"longitude"`
	RadiusKm           patch.Field[float64]   `json:"radius_km"`
	ScheduledDate      patch.Field[time.Time] `json:"scheduled_date"`
	StartTime          patch.Field[time.Time] `json:"start_time"`
	EndTime            patch.Field[time.Time] `json:"end_time"`
	DurationMinutes    patch.Field[int]       `json:"duration_minutes"`
	MaxParticipants    patch.Field[int]       `json:"max_participants"`
	SkillLevelRequired patch.Field[string]    `json:"skill_level_required"`
	CostPerPerson      patch.Field[float64]   `json:"cost_per_person"`
	EquipmentProvided  patch.Field[bool]      `json:"equipment_provided"`
	EquipmentNeeded    patch.Field[string]    `json:"equipment_needed"`
	Status             patch.Field[string]    `json:"status"`
	IsActive           patch.Field[bool]      `json:"is_active"`
	IsPublic           patch.Field[bool]      `json:"is_public"`
	Tags               patch.Field[[]string]  `json:"tags"`
}

// Update handles PUT /api/activities/{id}. Only the creator may edit.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	current, ok := auth.CurrentUserID(r)
	if !ok {
		httpjson.WriteError(w, http.StatusUnauthorized, httpjson.CodeUnauthorized, "authentication required")
		return
	}

	var req updateRequest
	if !httpjson.Decode(w, r, &req) {
		return
	}
	if req.Name.IsNull() {
		httpjson.WriteError(w, http.StatusBadRequest, httpjson.CodeBadRequest, "name cannot be cleared")
		return
	}
	if v, set := req.MaxParticipants.Value(); set && v < 1 {
		httpjson.WriteError(w, http.StatusBadRequest, httpjson.CodeBadRequest, "max_participants must be at least 1")
		return
	}

	// Coordinates move together.
	if req.Latitude.Present() != req.Longitude.Present() ||
		req.Latitude.IsNull() != req.Longitude.IsNull() {
		httpjson.WriteError(w, http.StatusBadRequest, httpjson.CodeBadRequest, "latitude and longitude must be set or cleared together")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	existing, err := h.activities.GetByID(ctx, id)
	if err != nil {
		h.writeStoreError(w, err)
		return
	}
	if existing.CreatedBy != current {
		httpjson.WriteError(w, http.StatusForbidden, httpjson.CodeForbidden, "only the creator may edit this activity")
		return
	}

	a, err := h.activities.Apply(ctx, id, activitystore.Update{
		Name:               req.Name,
		Description:        req.Description,
		Location:           req.Location,
		Address:            req.Address,
		City:               req.City,
		Country:            req.Country,
		Latitude:           req.Latitude,
		Longitude:          req.Longitude,
		RadiusKm:           req.RadiusKm,
		ScheduledDate:      req.ScheduledDate,
		StartTime:          req.StartTime,
		EndTime:            req.EndTime,
		DurationMinutes:    req.DurationMinutes,
		MaxParticipants:    req.MaxParticipants,
		SkillLevelRequired: req.SkillLevelRequired,
		CostPerPerson:      req.CostPerPerson,
		EquipmentProvided:  req.EquipmentProvided,
		EquipmentNeeded:    req.EquipmentNeeded,
		Status:             req.Status,
		IsActive:           req.IsActive,
		IsPublic:           req.IsPublic,
		Tags:               req.Tags,
	})
	if err != nil {
		h.writeStoreError(w, err)
		return
	}
	httpjson.Write(w, http.StatusOK, present(*a, nil))
}

// Delete handles DELETE /api/activities/{id}. Only the creator may delete.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	current, ok := auth.CurrentUserID(r)
	if !ok {
		httpjson.WriteError(w, http.StatusUnauthorized, httpjson.CodeUnauthorized, "authentication required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	existing, err := h.activities.GetByID(ctx, id)
	if err != nil {
		h.writeStoreError(w, err)
		return
	}
	if existing.CreatedBy != current {
		httpjson.WriteError(w, http.StatusForbidden, httpjson.CodeForbidden, "only the creator may delete this activity")
		return
	}

	if err := h.activities.Delete(ctx, id); err != nil {
		h.writeStoreError(w, err)
		return
	}
	httpjson.Write(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// Join handles POST /api/activities/{id}/join.
func (h *Handler) Join(w http.ResponseWriter, r *http.Request) {
	h.membership(w, r, h.activities.Join)
}

// Leave handles POST /api/activities/{id}/leave.
func (h *Handler) Leave(w http.ResponseWriter, r *http.Request) {
	h.membership(w, r, h.activities.Leave)
}

func (h *Handler) membership(w http.ResponseWriter, r *http.Request, op func(context.Context, primitive.ObjectID, primitive.ObjectID) (*models.SportActivity, error)) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	current, ok := auth.CurrentUserID(r)
	if !ok {
		httpjson.WriteError(w, http.StatusUnauthorized, httpjson.CodeUnauthorized, "authentication required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	a, err := op(ctx, id, current)
	if err != nil {
		h.writeStoreError(w, err)
		return
	}
	httpjson.Write(w, http.StatusOK, present(*a, nil))
}

// writeStoreError maps activity store errors onto HTTP status codes:
// missing documents 404, membership conflicts 409, the rest 500.
func (h *Handler) writeStoreError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, activitystore.ErrNotFound):
		httpjson.WriteError(w, http.StatusNotFound, httpjson.CodeNotFound, "activity not found")
	case errors.Is(err, activitystore.ErrActivityFull),
		errors.Is(err, activitystore.ErrAlreadyJoined),
		errors.Is(err, activitystore.ErrNotAMember):
		httpjson.WriteError(w, http.StatusConflict, httpjson.CodeConflict, err.Error())
	default:
		h.log.Error("activity store error", zap.Error(err))
		httpjson.WriteError(w, http.StatusInternalServerError, httpjson.CodeInternal, "activity operation failed")
	}
}

func pathID(w http.ResponseWriter, r *http.Request, name string) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, name))
	if err != nil {
		httpjson.WriteError(w, http.StatusBadRequest, httpjson.CodeBadRequest, "invalid id")
		return primitive.NilObjectID, false
	}
	return id, true
}
