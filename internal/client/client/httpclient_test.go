package client

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/healthnav/internal/client/config"
	"github.com/dmitrijs2005/healthnav/internal/client/models"
	"github.com/dmitrijs2005/healthnav/internal/logging"
)

func newTestClient(t *testing.T, h http.HandlerFunc) *HTTPClient {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	c, err := NewHTTPClient(config.APIConfig{
		BaseURL: srv.URL + "/",
		Timeout: 2 * time.Second,
		Headers: map[string]string{"Accept": "application/json", "Content-Type": "application/json"},
	}, logging.Discard())
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func TestNewHTTPClient_RejectsBadBaseURL(t *testing.T) {
	_, err := NewHTTPClient(config.APIConfig{BaseURL: "not a url"}, logging.Discard())
	assert.Error(t, err)

	_, err = NewHTTPClient(config.APIConfig{BaseURL: "://x"}, logging.Discard())
	assert.Error(t, err)
}

func TestLogin_SendsMultipartAndDecodes(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/users/auth/login", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		assert.Empty(t, r.Header.Get("Authorization"))

		assert.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "a@b.com", r.FormValue("email"))
		assert.Equal(t, "secret", r.FormValue("password"))

		writeJSON(w, http.StatusOK, map[string]any{
			"user":          map[string]any{"id": 7, "email": "a@b.com", "name": "Ann"},
			"access_token":  "a.b.c",
			"refresh_token": "r.r.r",
		})
	})

	resp, err := c.Login(context.Background(), models.Credentials{Email: "a@b.com", Password: "secret"})
	require.NoError(t, err)
	require.NotNil(t, resp.User)
	assert.Equal(t, models.FlexID("7"), resp.User.ID)
	assert.Equal(t, "Ann", resp.User.Name)
	assert.True(t, resp.Complete())
}

func TestLogin_ServerMessageBecomesAPIError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "Invalid credentials"})
	})

	_, err := c.Login(context.Background(), models.Credentials{Email: "a@b.com", Password: "x"})
	require.Error(t, err)

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusUnauthorized, apiErr.Status)
	assert.Equal(t, "Invalid credentials", apiErr.Error())
	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.NotErrorIs(t, err, ErrNotFound)
}

func TestAPIError_NoMessage(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = io.WriteString(w, "<html>nope</html>")
	})

	err := c.DeleteAlert(context.Background(), "a.b.c", "5")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, "Request failed with status code 404", err.Error())
}

func TestTransportFailureIsUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c, err := NewHTTPClient(config.APIConfig{BaseURL: url, Timeout: time.Second}, logging.Discard())
	require.NoError(t, err)

	err = c.Ping(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestRegister_SendsCoordinatesAndOptionalFields(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/users/auth/register", r.URL.Path)
		assert.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "37.7749", r.FormValue("location_lat"))
		assert.Equal(t, "-122.4194", r.FormValue("location_lng"))
		assert.Equal(t, "70", r.FormValue("weight"))
		_, hasHeight := r.MultipartForm.Value["height"]
		assert.False(t, hasHeight)
		writeJSON(w, http.StatusCreated, map[string]string{"message": "User registered"})
	})

	resp, err := c.Register(context.Background(), models.RegisterData{
		Name: "Ann", Email: "a@b.com", Password: "abcdef",
		Weight: 70, LocationLat: 37.7749, LocationLng: -122.4194,
	})
	require.NoError(t, err)
	assert.Equal(t, "User registered", resp.Message)
	assert.Nil(t, resp.User)
	assert.False(t, resp.Complete())
}

func TestUpdateProfile_SendsIDAndOnlyKnownFields(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/users/crud", r.URL.Path)
		assert.Equal(t, "Bearer a.b.c", r.Header.Get("Authorization"))
		assert.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "42", r.FormValue("id"))
		assert.Equal(t, "peanuts", r.FormValue("allergies"))
		assert.Len(t, r.MultipartForm.Value, 2)
		writeJSON(w, http.StatusOK, map[string]any{"user": map[string]any{"allergies": "peanuts"}})
	})

	got, err := c.UpdateProfile(context.Background(), "a.b.c", "42", models.UserPatch{Allergies: models.Ptr("peanuts")})
	require.NoError(t, err)
	require.NotNil(t, got.Allergies)
	assert.Equal(t, "peanuts", *got.Allergies)
	assert.Nil(t, got.Height)
}

func TestGetProfile_AcceptsBareUser(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "42", r.URL.Query().Get("id"))
		writeJSON(w, http.StatusOK, map[string]any{"id": "42", "height": 180})
	})

	got, err := c.GetProfile(context.Background(), "a.b.c", "42")
	require.NoError(t, err)
	require.NotNil(t, got.Height)
	assert.Equal(t, 180.0, *got.Height)
}

func TestRefresh_SendsJSONWithoutBearer(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/auth/refresh", r.URL.Path)
		assert.Empty(t, r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		var body map[string]string
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "r.r.r", body["refresh_token"])
		writeJSON(w, http.StatusOK, map[string]string{"access_token": "n.n.n", "refresh_token": "m.m.m"})
	})

	tp, err := c.Refresh(context.Background(), "r.r.r")
	require.NoError(t, err)
	assert.Equal(t, models.TokenPair{AccessToken: "n.n.n", RefreshToken: "m.m.m"}, *tp)
}

func TestLogout_SendsBearer(t *testing.T) {
	called := false
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		called = true
		assert.Equal(t, "/auth/logout", r.URL.Path)
		assert.Equal(t, "Bearer a.b.c", r.Header.Get("Authorization"))
		w.WriteHeader(http.StatusNoContent)
	})

	require.NoError(t, c.Logout(context.Background(), "a.b.c"))
	assert.True(t, called)
}

func TestAlerts_CRUD(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /alerts", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer a.b.c", r.Header.Get("Authorization"))
		writeJSON(w, http.StatusOK, []map[string]any{{"id": 1, "alert_level": "high"}})
	})
	mux.HandleFunc("GET /alerts/{id}", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"id": r.PathValue("id"), "title": "one"})
	})
	mux.HandleFunc("POST /alerts", func(w http.ResponseWriter, r *http.Request) {
		var in models.CardInput
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&in))
		writeJSON(w, http.StatusCreated, map[string]any{"id": "new", "title": in.Title, "color": in.Color})
	})
	mux.HandleFunc("PUT /alerts/{id}", func(w http.ResponseWriter, r *http.Request) {
		var in models.CardInput
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&in))
		writeJSON(w, http.StatusOK, map[string]any{"alert": map[string]any{"id": r.PathValue("id"), "title": in.Title}})
	})
	mux.HandleFunc("DELETE /alerts/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	c := newTestClient(t, mux.ServeHTTP)
	ctx := context.Background()

	list, err := c.ListAlerts(ctx, "a.b.c")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "high", list[0].AlertLevel)

	one, err := c.GetAlert(ctx, "a.b.c", "9")
	require.NoError(t, err)
	assert.Equal(t, models.FlexID("9"), one.ID)

	created, err := c.CreateAlert(ctx, "a.b.c", models.CardInput{Title: "T", Color: models.ColorGreen})
	require.NoError(t, err)
	assert.Equal(t, "T", created.Title)
	assert.Equal(t, "green", created.Color)

	updated, err := c.UpdateAlert(ctx, "a.b.c", "9", models.CardInput{Title: "U"})
	require.NoError(t, err)
	assert.Equal(t, models.FlexID("9"), updated.ID)
	assert.Equal(t, "U", updated.Title)

	require.NoError(t, c.DeleteAlert(ctx, "a.b.c", "9"))
}

func TestSendChatMessage_ThreadHandshake(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/send_message", r.URL.Path)
		if r.ContentLength == 0 {
			writeJSON(w, http.StatusOK, map[string]string{"thread_id": "t1", "message": "<p>Hello</p>"})
			return
		}
		assert.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "t1", r.FormValue("thread_id"))
		writeJSON(w, http.StatusOK, map[string]string{"thread_id": "t1", "message": "echo: " + r.FormValue("message")})
	})
	ctx := context.Background()

	first, err := c.SendChatMessage(ctx, "a.b.c", "", "")
	require.NoError(t, err)
	assert.Equal(t, "t1", first.ThreadID)

	reply, err := c.SendChatMessage(ctx, "a.b.c", first.ThreadID, "hi")
	require.NoError(t, err)
	assert.Equal(t, "echo: hi", reply.Message)
}

func TestContextCancellation(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.ListAlerts(ctx, "a.b.c")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnavailable)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestListAlerts_SkipsUndecodableRecords(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `[{"id":1,"title":"ok"},{"id":{"nested":true}},{"id":3,"latitude":"48.1","longitude":"11.5"}]`)
	})

	list, err := c.ListAlerts(context.Background(), "a.b.c")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, models.FlexID("1"), list[0].ID)
	assert.Equal(t, models.FlexID("3"), list[1].ID)
	require.NotNil(t, list[1].Latitude)
	assert.Equal(t, 48.1, *list[1].Latitude)
}
