package client_test

import (
	"context"
	"errors"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"appointhub-api/internal/auth"
	"appointhub-api/internal/handler"
	"appointhub-api/internal/model"
	"appointhub-api/internal/service"
	"appointhub-api/pkg/client"
)

const secret = "test-secret"

func newServer(t *testing.T) (*httptest.Server, *service.MemStore) {
	t.Helper()
	st := service.NewMemStore()
	audit := service.NewAuditService(st)
	h := handler.New(
		service.NewAuthService(st, secret),
		service.NewAppointmentService(st, audit),
		audit,
	)
	srv := httptest.NewServer(handler.Routes(h, secret, "http://localhost:5173", zerolog.Nop()))
	t.Cleanup(srv.Close)
	return srv, st
}

func userClient(t *testing.T, srv *httptest.Server, name, email string) *client.Client {
	t.Helper()
	c := client.New(client.Config{BaseURL: srv.URL})
	_, err := c.Register(context.Background(), name, email, "pw123456")
	require.NoError(t, err)
	_, err = c.Login(context.Background(), email, "pw123456")
	require.NoError(t, err)
	return c
}

func adminClient(t *testing.T, srv *httptest.Server, st *service.MemStore) *client.Client {
	t.Helper()
	u := &model.User{
		ID:        uuid.New().String(),
		Email:     "admin@example.com",
		Name:      "Admin",
		Role:      model.RoleAdmin,
		CreatedAt: time.Now().UTC(),
	}
	require.NoError(t, st.CreateUser(context.Background(), u))
	tok, err := auth.MakeToken(u, secret)
	require.NoError(t, err)

	c := client.New(client.Config{BaseURL: srv.URL})
	c.SetToken(tok)
	return c
}

func mustCreate(t *testing.T, c *client.Client, title string) *model.Appointment {
	t.Helper()
	a, err := c.CreateAppointment(context.Background(), client.CreateAppointment{
		Title: title,
		Date:  time.Now().Add(24 * time.Hour).UTC(),
	})
	require.NoError(t, err)
	return a
}

func strptr(s string) *string { return &s }

func statusptr(s model.Status) *model.Status { return &s }

func TestAuthFlow(t *testing.T) {
	srv, _ := newServer(t)
	c := userClient(t, srv, "Alice", "alice@example.com")

	me, err := c.Me(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", me.Email)
	assert.Equal(t, model.RoleUser, me.Role)
}

func TestAPIError(t *testing.T) {
	srv, _ := newServer(t)
	c := client.New(client.Config{BaseURL: srv.URL})

	_, err := c.Appointments(context.Background())
	var apiErr *client.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 401, apiErr.StatusCode)
	assert.Equal(t, "Token required", apiErr.Message)
	assert.Contains(t, apiErr.Error(), "401")
}

func TestAppointmentCRUD(t *testing.T) {
	srv, st := newServer(t)
	alice := userClient(t, srv, "Alice", "alice@example.com")
	admin := adminClient(t, srv, st)

	a := mustCreate(t, alice, "Checkup")
	assert.Equal(t, model.StatusPending, a.Status)

	got, err := alice.Appointment(context.Background(), a.ID)
	require.NoError(t, err)
	assert.Equal(t, "Checkup", got.Title)

	upd, err := alice.UpdateAppointment(context.Background(), a.ID, client.UpdateAppointment{
		Title: strptr("Dental checkup"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Dental checkup", upd.Title)

	approved, err := admin.UpdateAppointment(context.Background(), a.ID, client.UpdateAppointment{
		Status: statusptr(model.StatusApproved),
	})
	require.NoError(t, err)
	assert.Equal(t, model.StatusApproved, approved.Status)

	require.NoError(t, alice.DeleteAppointment(context.Background(), a.ID))

	_, err = alice.Appointment(context.Background(), a.ID)
	var apiErr *client.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 404, apiErr.StatusCode)
	assert.Equal(t, "Not found", apiErr.Message)
}

func TestAdminCalls(t *testing.T) {
	srv, st := newServer(t)
	alice := userClient(t, srv, "Alice", "alice@example.com")
	admin := adminClient(t, srv, st)

	mustCreate(t, alice, "Checkup")

	stats, err := admin.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Total)
	assert.Equal(t, 1, stats.Pending)

	logs, err := admin.AuditLogs(context.Background(), "all")
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, model.ActionCreate, logs[0].Action)

	_, err = alice.Stats(context.Background())
	var apiErr *client.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 403, apiErr.StatusCode)
}

func TestCacheUpdateConfirmed(t *testing.T) {
	srv, _ := newServer(t)
	alice := userClient(t, srv, "Alice", "alice@example.com")
	a := mustCreate(t, alice, "Checkup")

	cache := client.NewAppointmentCache(alice)
	require.NoError(t, cache.Refresh(context.Background()))

	err := cache.Update(context.Background(), a.ID, client.UpdateAppointment{
		Title: strptr("Dental checkup"),
	})
	require.NoError(t, err)

	items := cache.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "Dental checkup", items[0].Title)

	// server agrees
	got, err := alice.Appointment(context.Background(), a.ID)
	require.NoError(t, err)
	assert.Equal(t, "Dental checkup", got.Title)
}

func TestCacheUpdateRollsBack(t *testing.T) {
	srv, _ := newServer(t)
	alice := userClient(t, srv, "Alice", "alice@example.com")
	a := mustCreate(t, alice, "Checkup")

	cache := client.NewAppointmentCache(alice)
	require.NoError(t, cache.Refresh(context.Background()))

	// owners may not set status, so the server rejects this patch
	err := cache.Update(context.Background(), a.ID, client.UpdateAppointment{
		Status: statusptr(model.StatusApproved),
	})
	var apiErr *client.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 403, apiErr.StatusCode)

	items := cache.Items()
	require.Len(t, items, 1)
	assert.Equal(t, model.StatusPending, items[0].Status, "local view must roll back")
}

func TestCacheDelete(t *testing.T) {
	srv, st := newServer(t)
	alice := userClient(t, srv, "Alice", "alice@example.com")
	admin := adminClient(t, srv, st)

	a := mustCreate(t, alice, "keep")
	b := mustCreate(t, alice, "remove")

	cache := client.NewAppointmentCache(alice)
	require.NoError(t, cache.Refresh(context.Background()))
	require.Len(t, cache.Items(), 2)

	require.NoError(t, cache.Delete(context.Background(), b.ID))
	items := cache.Items()
	require.Len(t, items, 1)
	assert.Equal(t, a.ID, items[0].ID)

	// server deletes the other record behind the cache's back; the local
	// removal then fails with 404 and comes back
	require.NoError(t, admin.DeleteAppointment(context.Background(), a.ID))
	err := cache.Delete(context.Background(), a.ID)
	require.Error(t, err)
	var apiErr *client.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, 404, apiErr.StatusCode)
	require.Len(t, cache.Items(), 1, "snapshot restored on failure")
}
