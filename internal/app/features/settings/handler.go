// internal/app/features/settings/handler.go
package settings

import (
	"context"
	"net/http"

	settingsstore "github.com/pitchside/pitchside/internal/app/store/settings"
	"github.com/pitchside/pitchside/internal/app/system/auth"
	"github.com/pitchside/pitchside/internal/app/system/httpjson"
	"github.com/pitchside/pitchside/internal/app/system/patch"
	"github.com/pitchside/pitchside/internal/app/system/timeouts"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler serves the current user's settings.
type Handler struct {
	settings *settingsstore.Store
	log      *zap.Logger
}

func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{settings: settingsstore.New(db), log: logger}
}

// Get handles GET /api/settings. The defaults document is created on first
// read.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	current, ok := auth.CurrentUserID(r)
	if !ok {
		httpjson.WriteError(w, http.StatusUnauthorized, httpjson.CodeUnauthorized, "authentication required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	st, err := h.settings.Get(ctx, current)
	if err != nil {
		h.log.Error("settings get failed", zap.Error(err))
		httpjson.WriteError(w, http.StatusInternalServerError, httpjson.CodeInternal, "could not load settings")
		return
	}
	httpjson.Write(w, http.StatusOK, st)
}

// updateRequest mirrors settingsstore.Update with tri-state fields.
type updateRequest struct {
	EmailNotifications       patch.Field[bool]     `json:"email_notifications"`
	PushNotifications        patch.Field[bool]     `json:"push_notifications"`
	NotifyOnFollow           patch.Field[bool]     `json:"notify_on_follow"`
	NotifyOnLike             patch.Field[bool]     `json:"notify_on_like"`
	NotifyOnComment          patch.Field[bool]     `json:"notify_on_comment"`
	NotifyOnInvite           patch.Field[bool]     `json:"notify_on_invite"`
	NotifyOnMessage          patch.Field[bool]     `json:"notify_on_message"`
	NotifyOnActivityReminder patch.Field[bool]     `json:"notify_on_activity_reminder"`
	ProfileVisibility        patch.Field[string]   `json:"profile_visibility"`
	ShowLocation             patch.Field[bool]     `json:"show_location"`
	ShowEmail                patch.Field[bool]     `json:"show_email"`
	ShowPhoneNumber          patch.Field[bool]     `json:"show_phone_number"`
	PreferredSports          patch.Field[[]string] `json:"preferred_sports"`
	MaxDistanceKm            patch.Field[float64]  `json:"max_distance_km"`
	Language                 patch.Field[string]   `json:"language"`
	Theme                    patch.Field[string]   `json:"theme"`
	MeasurementUnit          patch.Field[string]   `json:"measurement_unit"`
}

// Update handles PUT /api/settings.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	current, ok := auth.CurrentUserID(r)
	if !ok {
		httpjson.WriteError(w, http.StatusUnauthorized, httpjson.CodeUnauthorized, "authentication required")
		return
	}

	var req updateRequest
	if !httpjson.Decode(w, r, &req) {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	st, err := h.settings.Apply(ctx, current, settingsstore.Update{
		EmailNotifications:       req.EmailNotifications,
		PushNotifications:        req.PushNotifications,
		NotifyOnFollow:           req.NotifyOnFollow,
		NotifyOnLike:             req.NotifyOnLike,
		NotifyOnComment:          req.NotifyOnComment,
		NotifyOnInvite:           req.NotifyOnInvite,
		NotifyOnMessage:          req.NotifyOnMessage,
		NotifyOnActivityReminder: req.NotifyOnActivityReminder,
		ProfileVisibility:        req.ProfileVisibility,
		ShowLocation:             req.ShowLocation,
		ShowEmail:                req.ShowEmail,
		ShowPhoneNumber:          req.ShowPhoneNumber,
		PreferredSports:          req.PreferredSports,
		MaxDistanceKm:            req.MaxDistanceKm,
		Language:                 req.Language,
		Theme:                    req.Theme,
		MeasurementUnit:          req.MeasurementUnit,
	})
	if err != nil {
		h.log.Error("settings update failed", zap.Error(err))
		httpjson.WriteError(w, http.StatusInternalServerError, httpjson.CodeInternal, "could not update settings")
		return
	}
	httpjson.Write(w, http.StatusOK, st)
}
