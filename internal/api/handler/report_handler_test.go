package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/rs/zerolog"

	"github.com/inest/inest-backend/internal/api/middleware"
	"github.com/inest/inest-backend/internal/core/domain"
	"github.com/inest/inest-backend/internal/core/service"
	"github.com/inest/inest-backend/internal/testutil"
)

func newReportHandler() *ReportHandler {
	return NewReportHandler(service.NewReportService(testutil.NewReportRepo(), zerolog.Nop()))
}

func TestReportHandler_SubmitAnonymousAndOwned(t *testing.T) {
	e := newTestEcho()
	h := newReportHandler()

	c, rec := jsonContext(e, http.MethodPost, "/api/whistlenest", `{"subject":"Noise","description":"Loud at night","type":"abuse"}`)
	if err := h.Submit(c); err != nil {
		t.Fatalf("anonymous submit: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	var anon map[string]any
	_ = json.Unmarshal(rec.Body.Bytes(), &anon)
	if anon["userId"] != nil || anon["status"] != "pending" {
		t.Fatalf("unexpected anonymous report: %+v", anon)
	}

	c, rec = jsonContext(e, http.MethodPost, "/api/whistlenest", `{"subject":"Leak","description":"Pipe","type":"service issue"}`)
	middleware.SetIdentity(c, domain.Identity{UserID: "u1", Role: domain.RoleStudent})
	if err := h.Submit(c); err != nil {
		t.Fatalf("owned submit: %v", err)
	}
	var owned map[string]any
	_ = json.Unmarshal(rec.Body.Bytes(), &owned)
	if owned["userId"] != "u1" {
		t.Fatalf("expected owner u1, got %+v", owned)
	}

	c, rec = jsonContext(e, http.MethodGet, "/api/whistlenest/user", "")
	middleware.SetIdentity(c, domain.Identity{UserID: "u1", Role: domain.RoleStudent})
	if err := h.ListMine(c); err != nil {
		t.Fatalf("list mine: %v", err)
	}
	var mine []map[string]any
	_ = json.Unmarshal(rec.Body.Bytes(), &mine)
	if len(mine) != 1 || mine[0]["subject"] != "Leak" {
		t.Fatalf("unexpected own reports: %+v", mine)
	}

	c, rec = jsonContext(e, http.MethodGet, "/api/whistlenest/admin", "")
	if err := h.ListAll(c); err != nil {
		t.Fatalf("list all: %v", err)
	}
	var all []map[string]any
	_ = json.Unmarshal(rec.Body.Bytes(), &all)
	if len(all) != 2 {
		t.Fatalf("expected 2 reports, got %d", len(all))
	}
}

func TestReportHandler_SubmitInvalidType(t *testing.T) {
	e := newTestEcho()
	h := newReportHandler()

	c, _ := jsonContext(e, http.MethodPost, "/api/whistlenest", `{"subject":"s","description":"d","type":"gossip"}`)
	if err := h.Submit(c); !errors.Is(err, domain.ErrBadRequest) {
		t.Fatalf("expected bad request, got %v", err)
	}
}

func TestReportHandler_ListMineRequiresIdentity(t *testing.T) {
	e := newTestEcho()
	h := newReportHandler()

	c, _ := jsonContext(e, http.MethodGet, "/api/whistlenest/user", "")
	if code := httpCode(t, h.ListMine(c)); code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", code)
	}
}

func TestReportHandler_UpdateStatus(t *testing.T) {
	e := newTestEcho()
	h := newReportHandler()

	c, rec := jsonContext(e, http.MethodPost, "/api/whistlenest", `{"subject":"s","description":"d","type":"suggestion"}`)
	if err := h.Submit(c); err != nil {
		t.Fatalf("submit: %v", err)
	}
	var created domain.Report
	_ = json.Unmarshal(rec.Body.Bytes(), &created)

	c, rec = jsonContext(e, http.MethodPatch, "/api/whistlenest/"+created.ID+"/status", `{"status":"resolved"}`)
	c.SetParamNames("id")
	c.SetParamValues(created.ID)
	if err := h.UpdateStatus(c); err != nil {
		t.Fatalf("update status: %v", err)
	}
	var updated domain.Report
	_ = json.Unmarshal(rec.Body.Bytes(), &updated)
	if updated.Status != domain.ReportResolved {
		t.Fatalf("expected resolved, got %s", updated.Status)
	}

	c, _ = jsonContext(e, http.MethodPatch, "/api/whistlenest/"+created.ID+"/status", `{"status":"archived"}`)
	c.SetParamNames("id")
	c.SetParamValues(created.ID)
	if err := h.UpdateStatus(c); !errors.Is(err, domain.ErrBadRequest) {
		t.Fatalf("expected bad request, got %v", err)
	}

	c, _ = jsonContext(e, http.MethodPatch, "/api/whistlenest/missing/status", `{"status":"resolved"}`)
	c.SetParamNames("id")
	c.SetParamValues("missing")
	if err := h.UpdateStatus(c); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}
