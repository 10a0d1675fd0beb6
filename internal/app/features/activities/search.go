// internal/app/features/activities/search.go
package activities

import (
	"net/http"
	"strconv"
	"time"

	activitystore "github.com/pitchside/pitchside/internal/app/store/activities"
	"github.com/pitchside/pitchside/internal/app/system/httpjson"
	"github.com/pitchside/pitchside/internal/domain/models"
)

// parseSearchQuery builds a SearchFilter from query parameters, answering 400
// on invalid input. Understood parameters:
//
//	sportType          one of the recognized sport types
//	isActive           true | false | any      (default true)
//	lat, lon, radiusKm proximity search, all three required together
//	startDate, endDate RFC 3339 bounds on scheduled_date
//	hasAvailableSlots  true to keep only joinable activities
func parseSearchQuery(w http.ResponseWriter, r *http.Request) (activitystore.SearchFilter, bool) {
	q := r.URL.Query()
	var f activitystore.SearchFilter

	if st := q.Get("sportType"); st != "" {
		if !models.IsValidSportType(st) {
			httpjson.WriteError(w, http.StatusBadRequest, httpjson.CodeBadRequest, "unknown sport type")
			return f, false
		}
		f.SportType = st
	}

	switch q.Get("isActive") {
	case "", "true":
		f.Active = activitystore.ActiveOnly
	case "false":
		f.Active = activitystore.InactiveOnly
	case "any":
		f.Active = activitystore.ActiveAny
	default:
		httpjson.WriteError(w, http.StatusBadRequest, httpjson.CodeBadRequest, "isActive must be true, false, or any")
		return f, false
	}

	lat, latSet, ok := queryFloat(w, q.Get("lat"), "lat")
	if !ok {
		return f, false
	}
	lon, lonSet, ok := queryFloat(w, q.Get("lon"), "lon")
	if !ok {
		return f, false
	}
	radius, radiusSet, ok := queryFloat(w, q.Get("radiusKm"), "radiusKm")
	if !ok {
		return f, false
	}
	switch {
	case latSet && lonSet && radiusSet:
		if radius < 0 {
			httpjson.WriteError(w, http.StatusBadRequest, httpjson.CodeBadRequest, "radiusKm must not be negative")
			return f, false
		}
		f.Location = &activitystore.LocationFilter{Latitude: lat, Longitude: lon, RadiusKm: radius}
	case !latSet && !lonSet && !radiusSet:
	default:
		httpjson.WriteError(w, http.StatusBadRequest, httpjson.CodeBadRequest, "lat, lon, and radiusKm must be provided together")
		return f, false
	}

	start, ok := queryTime(w, q.Get("startDate"), "startDate")
	if !ok {
		return f, false
	}
	end, ok := queryTime(w, q.Get("endDate"), "endDate")
	if !ok {
		return f, false
	}
	if start != nil && end != nil && start.After(*end) {
		httpjson.WriteError(w, http.StatusBadRequest, httpjson.CodeBadRequest, "startDate must not be after endDate")
		return f, false
	}
	f.Start, f.End = start, end

	switch q.Get("hasAvailableSlots") {
	case "", "false":
	case "true":
		f.HasAvailableSlots = true
	default:
		httpjson.WriteError(w, http.StatusBadRequest, httpjson.CodeBadRequest, "hasAvailableSlots must be true or false")
		return f, false
	}

	return f, true
}

func queryFloat(w http.ResponseWriter, raw, name string) (val float64, set, ok bool) {
	if raw == "" {
		return 0, false, true
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		httpjson.WriteError(w, http.StatusBadRequest, httpjson.CodeBadRequest, name+" must be a number")
		return 0, false, false
	}
	return v, true, true
}

func queryTime(w http.ResponseWriter, raw, name string) (*time.Time, bool) {
	if raw == "" {
		return nil, true
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		httpjson.WriteError(w, http.StatusBadRequest, httpjson.CodeBadRequest, name+" must be an RFC 3339 timestamp")
		return nil, false
	}
	return &t, true
}
