//go:build e2e
// +build e2e

package e2e_test

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"gorm.io/gorm"
	"roomies-go/internal/auth"
	"roomies-go/internal/config"
	"roomies-go/internal/db"
	expensedomain "roomies-go/internal/domain/expense"
	householddomain "roomies-go/internal/domain/household"
	invitationdomain "roomies-go/internal/domain/invitation"
	taskdomain "roomies-go/internal/domain/task"
	userdomain "roomies-go/internal/domain/user"
	"roomies-go/internal/email"
	expenserepo "roomies-go/internal/repository/postgres/expense"
	householdrepo "roomies-go/internal/repository/postgres/household"
	invitationrepo "roomies-go/internal/repository/postgres/invitation"
	taskrepo "roomies-go/internal/repository/postgres/task"
	userrepo "roomies-go/internal/repository/postgres/user"
	"roomies-go/internal/transport/httpserver"
	"roomies-go/internal/transport/httpserver/handler"
	authmw "roomies-go/internal/transport/httpserver/middleware"
	"roomies-go/pkg/logger"
)

type testEnv struct {
	server *httptest.Server
	db     *gorm.DB
}

func setupE2E(t *testing.T) *testEnv {
	t.Helper()

	dsn := os.Getenv("E2E_DB_DSN")
	if dsn == "" {
		t.Skip("E2E_DB_DSN not set; skipping e2e tests")
	}

	log := logger.New(io.Discard, slog.LevelError, "json")

	dbConn, err := db.NewPostgres(config.DBConfig{DSN: dsn}, log)
	if err != nil {
		t.Fatalf("db connect: %v", err)
	}
	if err := db.Migrate(dbConn); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	if err := cleanDB(dbConn); err != nil {
		t.Fatalf("clean db: %v", err)
	}

	users := userdomain.NewService(userrepo.NewPostgres(dbConn))
	households := householddomain.NewService(householdrepo.NewPostgres(dbConn))
	invitations := invitationdomain.NewService(
		invitationrepo.NewPostgres(dbConn), households, email.NoopMailer{}, 7*24*time.Hour, log)
	expenses := expensedomain.NewService(expenserepo.NewPostgres(dbConn), households)
	tasks := taskdomain.NewService(taskrepo.NewPostgres(dbConn), households)

	tokens := auth.NewTokenManager("e2e-secret", time.Hour, 24*time.Hour)
	handlers := handler.New(users, households, invitations, expenses, tasks, tokens, false, log)
	session := authmw.NewSessionAuth(tokens, users)
	router := httpserver.NewRouter(config.Config{}, handlers, session)

	server := httptest.NewServer(router)

	return &testEnv{server: server, db: dbConn}
}

func (e *testEnv) Close() {
	e.server.Close()
	sqlDB, err := e.db.DB()
	if err == nil {
		_ = sqlDB.Close()
	}
}

func cleanDB(dbConn *gorm.DB) error {
	tables := []string{"payments", "splits", "expenses", "tasks", "invitations", "memberships", "households", "users"}
	for _, table := range tables {
		if err := dbConn.Exec("DELETE FROM " + table).Error; err != nil {
			return err
		}
	}
	return nil
}

func (e *testEnv) request(t *testing.T, method, path, token string, body any) (*http.Response, []byte) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequest(method, e.server.URL+path, reader)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	defer resp.Body.Close()
	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return resp, payload
}

func (e *testEnv) registerAndLogin(t *testing.T, emailAddr, name string) string {
	t.Helper()

	resp, body := e.request(t, http.MethodPost, "/api/auth/register", "", map[string]string{
		"email": emailAddr, "name": name, "password": "hunter2hunter2",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("register %s: status %d body %s", emailAddr, resp.StatusCode, body)
	}

	resp, body = e.request(t, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email": emailAddr, "password": "hunter2hunter2",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("login %s: status %d body %s", emailAddr, resp.StatusCode, body)
	}

	var login struct {
		Session struct {
			AccessToken string `json:"access_token"`
		} `json:"session"`
	}
	if err := json.Unmarshal(body, &login); err != nil {
		t.Fatalf("decode login: %v", err)
	}
	return login.Session.AccessToken
}

func TestProvisionUserAgainstStore(t *testing.T) {
	env := setupE2E(t)
	defer env.Close()

	// Provisioned accounts carry caller-chosen ids that are not uuids.
	resp, body := env.request(t, http.MethodPost, "/api/users", "", map[string]string{
		"id": "u1", "name": "Ann", "email": "a@x.com",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("provision: status %d body %s", resp.StatusCode, body)
	}
	var created struct {
		Message string `json:"message"`
		User    struct {
			ID string `json:"id"`
		} `json:"user"`
	}
	if err := json.Unmarshal(body, &created); err != nil {
		t.Fatalf("decode provision response: %v", err)
	}
	if created.Message != "User registered successfully" || created.User.ID != "u1" {
		t.Fatalf("unexpected provision response: %s", body)
	}

	resp, body = env.request(t, http.MethodPost, "/api/users", "", map[string]string{
		"id": "u2", "email": "b@x.com",
	})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("missing name: expected 400, got %d body %s", resp.StatusCode, body)
	}
	var failure struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &failure); err != nil {
		t.Fatalf("decode failure response: %v", err)
	}
	if failure.Message != "Missing required fields" {
		t.Fatalf("unexpected failure message: %q", failure.Message)
	}

	resp, _ = env.request(t, http.MethodPost, "/api/users", "", map[string]string{
		"id": "u1", "name": "Ann Again", "email": "other@x.com",
	})
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("duplicate id: expected 409, got %d", resp.StatusCode)
	}
}

func TestHouseholdLifecycle(t *testing.T) {
	env := setupE2E(t)
	defer env.Close()

	adminToken := env.registerAndLogin(t, "admin@e2e.test", "Admin")
	inviteeToken := env.registerAndLogin(t, "invitee@e2e.test", "Invitee")

	// Create a household; creator becomes ADMIN.
	resp, body := env.request(t, http.MethodPost, "/api/households", adminToken, map[string]string{
		"name": "E2E Flat", "address": "Test Street 1",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create household: status %d body %s", resp.StatusCode, body)
	}
	var hh struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(body, &hh); err != nil {
		t.Fatalf("decode household: %v", err)
	}

	// Invite the second user.
	resp, body = env.request(t, http.MethodPost, "/api/invitations", adminToken, map[string]string{
		"email": "invitee@e2e.test", "householdId": hh.ID,
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create invitation: status %d body %s", resp.StatusCode, body)
	}

	// Duplicate pending invitation is rejected by the unique index.
	resp, _ = env.request(t, http.MethodPost, "/api/invitations", adminToken, map[string]string{
		"email": "invitee@e2e.test", "householdId": hh.ID,
	})
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("duplicate invitation: expected 409, got %d", resp.StatusCode)
	}

	// The invitee sees and accepts it.
	resp, body = env.request(t, http.MethodGet, "/api/invitations", inviteeToken, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("list invitations: status %d body %s", resp.StatusCode, body)
	}
	var invs []struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(body, &invs); err != nil {
		t.Fatalf("decode invitations: %v", err)
	}
	if len(invs) != 1 {
		t.Fatalf("expected one invitation, got %d", len(invs))
	}

	resp, body = env.request(t, http.MethodPatch, "/api/invitations/"+invs[0].ID, inviteeToken, map[string]string{
		"status": "ACCEPTED",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("accept invitation: status %d body %s", resp.StatusCode, body)
	}

	// Both are now members.
	resp, body = env.request(t, http.MethodGet, "/api/households/"+hh.ID+"/members", inviteeToken, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("list members: status %d body %s", resp.StatusCode, body)
	}
	var members []struct {
		UserID string `json:"userId"`
		Role   string `json:"role"`
	}
	if err := json.Unmarshal(body, &members); err != nil {
		t.Fatalf("decode members: %v", err)
	}
	if len(members) != 2 {
		t.Fatalf("expected two members, got %d", len(members))
	}

	var inviteeID, adminID string
	for _, m := range members {
		switch m.Role {
		case "ADMIN":
			adminID = m.UserID
		case "MEMBER":
			inviteeID = m.UserID
		}
	}
	if adminID == "" || inviteeID == "" {
		t.Fatalf("expected one ADMIN and one MEMBER, got %+v", members)
	}

	// Shared expense, equal split.
	resp, body = env.request(t, http.MethodPost, "/api/expenses", adminToken, map[string]any{
		"householdId": hh.ID,
		"title":       "Groceries",
		"amount":      90.0,
		"date":        "2026-08-01",
		"splitType":   "EQUAL",
		"splits": []map[string]any{
			{"userId": adminID},
			{"userId": inviteeID},
		},
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create expense: status %d body %s", resp.StatusCode, body)
	}
	var exp struct {
		Payments []struct {
			ID     string  `json:"id"`
			UserID string  `json:"userId"`
			Amount float64 `json:"amount"`
		} `json:"payments"`
	}
	if err := json.Unmarshal(body, &exp); err != nil {
		t.Fatalf("decode expense: %v", err)
	}
	if len(exp.Payments) != 1 {
		t.Fatalf("expected one payment for the non-creator split, got %d", len(exp.Payments))
	}

	// The invitee settles their share.
	resp, body = env.request(t, http.MethodPut, "/api/payments/"+exp.Payments[0].ID, inviteeToken, map[string]string{
		"status": "COMPLETED",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("settle payment: status %d body %s", resp.StatusCode, body)
	}

	// Balances are now even.
	resp, body = env.request(t, http.MethodGet, "/api/expenses/balances?householdId="+hh.ID, adminToken, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("balances: status %d body %s", resp.StatusCode, body)
	}
	var balances struct {
		Balances []struct {
			UserID string  `json:"userId"`
			Net    float64 `json:"net"`
		} `json:"balances"`
		Settlements []any `json:"settlements"`
	}
	if err := json.Unmarshal(body, &balances); err != nil {
		t.Fatalf("decode balances: %v", err)
	}
	for _, b := range balances.Balances {
		if b.Net != 0 {
			t.Fatalf("expected settled balances, got %+v", balances.Balances)
		}
	}
	if len(balances.Settlements) != 0 {
		t.Fatalf("expected no settlement edges, got %d", len(balances.Settlements))
	}
}

func TestTaskRecurrenceE2E(t *testing.T) {
	env := setupE2E(t)
	defer env.Close()

	token := env.registerAndLogin(t, "solo@e2e.test", "Solo")

	resp, body := env.request(t, http.MethodPost, "/api/households", token, map[string]string{
		"name": "Solo Flat",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create household: status %d body %s", resp.StatusCode, body)
	}
	var hh struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(body, &hh); err != nil {
		t.Fatalf("decode household: %v", err)
	}

	resp, body = env.request(t, http.MethodPost, "/api/tasks", token, map[string]any{
		"householdId":    hh.ID,
		"title":          "Water plants",
		"dueDate":        "2026-08-01",
		"recurring":      true,
		"recurrenceRule": "WEEKLY",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create task: status %d body %s", resp.StatusCode, body)
	}
	var created struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(body, &created); err != nil {
		t.Fatalf("decode task: %v", err)
	}

	resp, body = env.request(t, http.MethodPost, "/api/tasks/"+created.ID+"/complete", token, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("complete task: status %d body %s", resp.StatusCode, body)
	}

	resp, body = env.request(t, http.MethodGet, "/api/tasks?householdId="+hh.ID+"&status=PENDING", token, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("list tasks: status %d body %s", resp.StatusCode, body)
	}
	var list struct {
		Tasks []struct {
			DueDate time.Time `json:"dueDate"`
		} `json:"tasks"`
	}
	if err := json.Unmarshal(body, &list); err != nil {
		t.Fatalf("decode tasks: %v", err)
	}
	if len(list.Tasks) != 1 {
		t.Fatalf("expected one successor task, got %d", len(list.Tasks))
	}
	want := time.Date(2026, 8, 8, 0, 0, 0, 0, time.UTC)
	if !list.Tasks[0].DueDate.Equal(want) {
		t.Fatalf("expected successor due %v, got %v", want, list.Tasks[0].DueDate)
	}
}
