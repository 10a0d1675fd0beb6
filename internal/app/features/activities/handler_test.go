package activities_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/pitchside/pitchside/internal/app/features/activities"
	activitystore "github.com/pitchside/pitchside/internal/app/store/activities"
	"github.com/pitchside/pitchside/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type envelope struct {
	Data  json.RawMessage `json:"data"`
	Error *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("failed to parse response envelope: %v", err)
	}
	return env
}

func TestJoin_ErrorMapping(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fx := testutil.NewFixtures(t, db)
	handler := activities.NewHandler(db, zap.NewNop())
	ctx, cancel := testutil.TestContext()
	defer cancel()

	creator := fx.CreateUser(ctx, "creator", "creator@example.com")
	max := 1
	full := fx.CreateActivity(ctx, creator.ID, "full game", testutil.ActivityOpts{
		MaxParticipants: &max,
		Participants:    []primitive.ObjectID{creator.ID},
	})
	open := fx.CreateActivity(ctx, creator.ID, "open game", testutil.ActivityOpts{
		Participants: []primitive.ObjectID{creator.ID},
	})

	tests := []struct {
		name       string
		activityID string
		user       primitive.ObjectID
		wantStatus int
		wantCode   string
	}{
		{"missing activity", primitive.NewObjectID().Hex(), primitive.NewObjectID(), http.StatusNotFound, "not_found"},
		{"full activity", full.ID.Hex(), primitive.NewObjectID(), http.StatusConflict, "conflict"},
		{"already joined", open.ID.Hex(), creator.ID, http.StatusConflict, "conflict"},
		{"bad id", "not-an-id", creator.ID, http.StatusBadRequest, "bad_request"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("POST", "/api/activities/"+tt.activityID+"/join", nil)
			req = testutil.WithChiURLParam(req, "id", tt.activityID)
			req = testutil.AsUser(req, tt.user, "tester")
			rec := httptest.NewRecorder()

			handler.Join(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			env := decodeEnvelope(t, rec)
			if env.Error == nil || env.Error.Code != tt.wantCode {
				t.Errorf("error envelope = %+v, want code %q", env.Error, tt.wantCode)
			}
		})
	}
}

func TestJoin_Success(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fx := testutil.NewFixtures(t, db)
	handler := activities.NewHandler(db, zap.NewNop())
	ctx, cancel := testutil.TestContext()
	defer cancel()

	creator := fx.CreateUser(ctx, "creator", "creator@example.com")
	joiner := fx.CreateUser(ctx, "joiner", "joiner@example.com")
	act := fx.CreateActivity(ctx, creator.ID, "pickup", testutil.ActivityOpts{
		Participants: []primitive.ObjectID{creator.ID},
	})

	req := httptest.NewRequest("POST", "/api/activities/"+act.ID.Hex()+"/join", nil)
	req = testutil.WithChiURLParam(req, "id", act.ID.Hex())
	req = testutil.AsUser(req, joiner.ID, joiner.Username)
	rec := httptest.NewRecorder()

	handler.Join(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body: %s", rec.Code, rec.Body.String())
	}
	env := decodeEnvelope(t, rec)
	var got struct {
		CurrentParticipants int  `json:"current_participants"`
		AvailableSlots      *int `json:"available_slots"`
	}
	if err := json.Unmarshal(env.Data, &got); err != nil {
		t.Fatalf("failed to parse activity: %v", err)
	}
	if got.CurrentParticipants != 2 {
		t.Errorf("current_participants = %d, want 2", got.CurrentParticipants)
	}
	if got.AvailableSlots != nil {
		t.Errorf("available_slots for unlimited activity = %v, want null", got.AvailableSlots)
	}
}

func TestCreate_CreatorMustExist(t *testing.T) {
	db := testutil.SetupTestDB(t)
	handler := activities.NewHandler(db, zap.NewNop())

	body := `{"name":"ghost game","sport_type":"soccer"}`
	req := httptest.NewRequest("POST", "/api/activities", strings.NewReader(body))
	req = testutil.AsUser(req, primitive.NewObjectID(), "ghost")
	rec := httptest.NewRecorder()

	handler.Create(rec, req)

	if rec.Code != http.StatusUnprocessableEntity {
		t.Errorf("status = %d, want 422; body: %s", rec.Code, rec.Body.String())
	}
	env := decodeEnvelope(t, rec)
	if env.Error == nil || env.Error.Code != "unprocessable" {
		t.Errorf("error envelope = %+v, want code unprocessable", env.Error)
	}
}

func TestUpdate_CoordinatesMoveTogether(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fx := testutil.NewFixtures(t, db)
	handler := activities.NewHandler(db, zap.NewNop())
	ctx, cancel := testutil.TestContext()
	defer cancel()

	creator := fx.CreateUser(ctx, "creator", "creator@example.com")
	lat, lon := 51.0543, 3.7174
	act := fx.CreateActivity(ctx, creator.ID, "located game", testutil.ActivityOpts{
		Latitude:  &lat,
		Longitude: &lon,
	})

	tests := []struct {
		name string
		body string
		want int
	}{
		{"clear latitude alone", `{"latitude": null}`, http.StatusBadRequest},
		{"set longitude alone", `{"longitude": 3.8}`, http.StatusBadRequest},
		{"set one clear other", `{"latitude": 51.1, "longitude": null}`, http.StatusBadRequest},
		{"clear both", `{"latitude": null, "longitude": null}`, http.StatusOK},
		{"set both", `{"latitude": 50.8503, "longitude": 4.3517}`, http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("PUT", "/api/activities/"+act.ID.Hex(), strings.NewReader(tt.body))
			req = testutil.WithChiURLParam(req, "id", act.ID.Hex())
			req = testutil.AsUser(req, creator.ID, creator.Username)
			rec := httptest.NewRecorder()

			handler.Update(rec, req)

			if rec.Code != tt.want {
				t.Errorf("status = %d, want %d; body: %s", rec.Code, tt.want, rec.Body.String())
			}
		})
	}

	// The rejected patches must not have touched either coordinate: the last
	// accepted patch set both, so both must still be present and paired.
	got, err := activitystore.New(db).GetByID(ctx, act.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Latitude == nil || got.Longitude == nil {
		t.Fatalf("coordinates unpaired after updates: lat=%v lon=%v", got.Latitude, got.Longitude)
	}
	if *got.Latitude != 50.8503 || *got.Longitude != 4.3517 {
		t.Errorf("coordinates = (%v, %v), want (50.8503, 4.3517)", *got.Latitude, *got.Longitude)
	}
}

func TestSearch_QueryValidation(t *testing.T) {
	db := testutil.SetupTestDB(t)
	handler := activities.NewHandler(db, zap.NewNop())
	user := primitive.NewObjectID()

	tests := []struct {
		name  string
		query string
		want  int
	}{
		{"empty", "", http.StatusOK},
		{"valid sport", "sportType=tennis", http.StatusOK},
		{"unknown sport", "sportType=quidditch", http.StatusBadRequest},
		{"bad isActive", "isActive=maybe", http.StatusBadRequest},
		{"partial location", "lat=51.0", http.StatusBadRequest},
		{"full location", "lat=51.0&lon=3.7&radiusKm=10", http.StatusOK},
		{"negative radius", "lat=51.0&lon=3.7&radiusKm=-1", http.StatusBadRequest},
		{"bad date", "startDate=tomorrow", http.StatusBadRequest},
		{"inverted range", "startDate=2026-06-02T00:00:00Z&endDate=2026-06-01T00:00:00Z", http.StatusBadRequest},
		{"date range ok", "startDate=2026-06-01T00:00:00Z&endDate=2026-06-02T00:00:00Z", http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/api/activities/search?"+tt.query, nil)
			req = testutil.AsUser(req, user, "tester")
			rec := httptest.NewRecorder()

			handler.Search(rec, req)

			if rec.Code != tt.want {
				t.Errorf("status = %d, want %d; body: %s", rec.Code, tt.want, rec.Body.String())
			}
		})
	}
}

func TestSearch_DistanceRoundedInResults(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fx := testutil.NewFixtures(t, db)
	handler := activities.NewHandler(db, zap.NewNop())
	ctx, cancel := testutil.TestContext()
	defer cancel()

	creator := fx.CreateUser(ctx, "creator", "creator@example.com")
	lat, lon := 51.1043, 3.7174
	fx.CreateActivity(ctx, creator.ID, "nearby", testutil.ActivityOpts{
		Latitude:  &lat,
		Longitude: &lon,
	})

	req := httptest.NewRequest("GET", "/api/activities/search?lat=51.0543&lon=3.7174&radiusKm=10", nil)
	req = testutil.AsUser(req, creator.ID, creator.Username)
	rec := httptest.NewRecorder()

	handler.Search(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d; body: %s", rec.Code, rec.Body.String())
	}
	env := decodeEnvelope(t, rec)
	var got []struct {
		Name       string   `json:"name"`
		DistanceKm *float64 `json:"distance_km"`
	}
	if err := json.Unmarshal(env.Data, &got); err != nil {
		t.Fatalf("failed to parse results: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 result, got %d", len(got))
	}
	if got[0].DistanceKm == nil {
		t.Fatal("expected distance_km in proximity search results")
	}
	// ~5.56 km between the two points.
	d := *got[0].DistanceKm
	if d < 5 || d > 6 {
		t.Errorf("distance_km = %v, want ~5.56", d)
	}
}
