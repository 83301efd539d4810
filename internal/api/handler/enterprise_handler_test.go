package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/coperex/case-analysis/internal/api/middleware"
	"github.com/coperex/case-analysis/internal/core/domain"
	"github.com/coperex/case-analysis/internal/core/ports"
	"github.com/coperex/case-analysis/internal/core/query"
)

type stubEnterpriseService struct {
	registerFn   func(ctx context.Context, in ports.RegisterEnterpriseInput) (*domain.Enterprise, error)
	listFn       func(ctx context.Context, f query.Filter, p query.Page) ([]domain.Enterprise, error)
	updateFn     func(ctx context.Context, id string, patch domain.EnterprisePatch) (*domain.Enterprise, error)
	reportFn     func(ctx context.Context, f query.Filter) (*ports.ReportResult, error)
	emailTakenFn func(ctx context.Context, email, excludeID string) (bool, error)
}

func (s *stubEnterpriseService) Register(ctx context.Context, in ports.RegisterEnterpriseInput) (*domain.Enterprise, error) {
	return s.registerFn(ctx, in)
}

func (s *stubEnterpriseService) List(ctx context.Context, f query.Filter, p query.Page) ([]domain.Enterprise, error) {
	return s.listFn(ctx, f, p)
}

func (s *stubEnterpriseService) Update(ctx context.Context, id string, patch domain.EnterprisePatch) (*domain.Enterprise, error) {
	return s.updateFn(ctx, id, patch)
}

func (s *stubEnterpriseService) GenerateReport(ctx context.Context, f query.Filter) (*ports.ReportResult, error) {
	return s.reportFn(ctx, f)
}

func (s *stubEnterpriseService) EmailTaken(ctx context.Context, email, excludeID string) (bool, error) {
	if s.emailTakenFn == nil {
		return false, nil
	}
	return s.emailTakenFn(ctx, email, excludeID)
}

func newEnterpriseHandler(svc *stubEnterpriseService) *EnterpriseHandler {
	return NewEnterpriseHandler(svc, testValidator(), zerolog.Nop())
}

func withAdmin(c echo.Context) echo.Context {
	c.Set(middleware.AdminKey, &domain.Admin{ID: "admin-1", Role: domain.RoleAdmin})
	return c
}

const validEnterpriseBody = `{
	"name":"TechCorp","email":"Info@TechCorp.com","phone":"12345678","address":"Av. Reforma 1",
	"impactLevel":"Alto","foundingYear":2010,"category":"Tech",
	"socialMedia":{"facebook":"fb.com/techcorp"}
}`

func TestEnterpriseHandler_Register_Success(t *testing.T) {
	e := newTestEcho()
	svc := &stubEnterpriseService{
		registerFn: func(ctx context.Context, in ports.RegisterEnterpriseInput) (*domain.Enterprise, error) {
			if in.Name != "TechCorp" || in.ImpactLevel != domain.ImpactHigh || in.FoundingYear != 2010 {
				t.Fatalf("unexpected input: %+v", in)
			}
			if in.SocialMedia.Facebook != "fb.com/techcorp" {
				t.Fatalf("social media not mapped: %+v", in.SocialMedia)
			}
			return &domain.Enterprise{ID: "e1", Name: in.Name, ImpactLevel: in.ImpactLevel, FoundingYear: 2010, YearsOfExperience: 14}, nil
		},
	}

	c, rec := newJSONContext(e, http.MethodPost, "/enterprise/registerEnterprise", validEnterpriseBody)
	if err := newEnterpriseHandler(svc).Register(withAdmin(c)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var resp struct {
		Msg        string            `json:"msg"`
		Enterprise domain.Enterprise `json:"enterprise"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.Enterprise.ID != "e1" || resp.Enterprise.YearsOfExperience != 14 {
		t.Fatalf("unexpected enterprise: %+v", resp.Enterprise)
	}
}

func TestEnterpriseHandler_Register_RequiresAdmin(t *testing.T) {
	e := newTestEcho()
	c, _ := newJSONContext(e, http.MethodPost, "/enterprise/registerEnterprise", validEnterpriseBody)

	if err := newEnterpriseHandler(&stubEnterpriseService{}).Register(c); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestEnterpriseHandler_Register_AggregatesViolations(t *testing.T) {
	e := newTestEcho()
	svc := &stubEnterpriseService{
		registerFn: func(ctx context.Context, in ports.RegisterEnterpriseInput) (*domain.Enterprise, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}

	body := `{"name":"","email":"x","phone":"1","address":"","impactLevel":"Extremo","foundingYear":2030,"category":""}`
	c, _ := newJSONContext(e, http.MethodPost, "/enterprise/registerEnterprise", body)
	fields := violationFields(t, newEnterpriseHandler(svc).Register(withAdmin(c)))

	for _, want := range []string{"name", "email", "phone", "address", "impactLevel", "foundingYear", "category"} {
		if !hasField(fields, want) {
			t.Errorf("expected violation on %s, got %v", want, fields)
		}
	}
}

func TestEnterpriseHandler_Register_EmailTaken(t *testing.T) {
	e := newTestEcho()
	svc := &stubEnterpriseService{
		emailTakenFn: func(ctx context.Context, email, excludeID string) (bool, error) {
			if excludeID != "" {
				t.Fatalf("registration must not exclude any id")
			}
			return true, nil
		},
	}

	c, _ := newJSONContext(e, http.MethodPost, "/enterprise/registerEnterprise", validEnterpriseBody)
	fields := violationFields(t, newEnterpriseHandler(svc).Register(withAdmin(c)))
	if len(fields) != 1 || fields[0] != "email" {
		t.Fatalf("expected email violation, got %v", fields)
	}
}

func TestEnterpriseHandler_Register_LookupFailureAborts(t *testing.T) {
	e := newTestEcho()
	boom := errors.New("mongo down")
	svc := &stubEnterpriseService{
		emailTakenFn: func(ctx context.Context, email, excludeID string) (bool, error) { return false, boom },
	}

	c, _ := newJSONContext(e, http.MethodPost, "/enterprise/registerEnterprise", validEnterpriseBody)
	if err := newEnterpriseHandler(svc).Register(withAdmin(c)); !errors.Is(err, boom) {
		t.Fatalf("expected lookup error, got %v", err)
	}
}

func TestEnterpriseHandler_List_PassesFilterAndPage(t *testing.T) {
	e := newTestEcho()
	svc := &stubEnterpriseService{
		listFn: func(ctx context.Context, f query.Filter, p query.Page) ([]domain.Enterprise, error) {
			if f.Category != "Tech" || f.ImpactLevel != domain.ImpactMedium || f.Sort != query.SortNameDesc {
				t.Fatalf("unexpected filter: %+v", f)
			}
			if f.MinYearsOfExperience == nil || *f.MinYearsOfExperience != 5 {
				t.Fatalf("unexpected years filter: %v", f.MinYearsOfExperience)
			}
			if p.Limit != 20 || p.Offset != 40 {
				t.Fatalf("unexpected page: %+v", p)
			}
			return []domain.Enterprise{{ID: "e1"}}, nil
		},
	}

	c, rec := newJSONContext(e, http.MethodGet, "/enterprise/list?category=Tech&impactLevel=Medio&yearsOfExperience=5&sort=nameZA&limite=20&desde=40", "")
	if err := newEnterpriseHandler(svc).List(withAdmin(c)); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp struct {
		Enterprises []domain.Enterprise `json:"enterprises"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(resp.Enterprises) != 1 {
		t.Fatalf("expected 1 enterprise, got %d", len(resp.Enterprises))
	}
}

func TestEnterpriseHandler_List_DefaultsWhenNoParams(t *testing.T) {
	e := newTestEcho()
	svc := &stubEnterpriseService{
		listFn: func(ctx context.Context, f query.Filter, p query.Page) ([]domain.Enterprise, error) {
			if f.MinYearsOfExperience != nil || f.Sort != query.SortNone {
				t.Fatalf("unexpected filter: %+v", f)
			}
			if p != (query.Page{}) {
				t.Fatalf("unexpected page: %+v", p)
			}
			return []domain.Enterprise{}, nil
		},
	}

	c, rec := newJSONContext(e, http.MethodGet, "/enterprise/list", "")
	if err := newEnterpriseHandler(svc).List(withAdmin(c)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Body.String() != "{\"enterprises\":[]}\n" {
		t.Fatalf("expected empty list, got %s", rec.Body.String())
	}
}

func TestEnterpriseHandler_List_RejectsBadQuery(t *testing.T) {
	e := newTestEcho()
	svc := &stubEnterpriseService{
		listFn: func(ctx context.Context, f query.Filter, p query.Page) ([]domain.Enterprise, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}

	c, _ := newJSONContext(e, http.MethodGet, "/enterprise/list?impactLevel=Extremo&yearsOfExperience=-1&sort=random&limite=500&desde=abc", "")
	fields := violationFields(t, newEnterpriseHandler(svc).List(withAdmin(c)))

	for _, want := range []string{"impactLevel", "yearsOfExperience", "sort", "limite", "desde"} {
		if !hasField(fields, want) {
			t.Errorf("expected violation on %s, got %v", want, fields)
		}
	}
}

func TestEnterpriseHandler_Update_ValidatesSuppliedFieldsOnly(t *testing.T) {
	e := newTestEcho()
	svc := &stubEnterpriseService{
		updateFn: func(ctx context.Context, id string, patch domain.EnterprisePatch) (*domain.Enterprise, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}

	c, _ := newJSONContext(e, http.MethodPut, "/enterprise/updateEnterprise/e1", `{"phone":"1"}`)
	c.SetParamNames("uid")
	c.SetParamValues("e1")

	fields := violationFields(t, newEnterpriseHandler(svc).Update(withAdmin(c)))
	if len(fields) != 1 || fields[0] != "phone" {
		t.Fatalf("expected only phone violation, got %v", fields)
	}
}

func TestEnterpriseHandler_Update_RejectsEmptyBody(t *testing.T) {
	e := newTestEcho()
	svc := &stubEnterpriseService{
		updateFn: func(ctx context.Context, id string, patch domain.EnterprisePatch) (*domain.Enterprise, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}

	c, _ := newJSONContext(e, http.MethodPut, "/enterprise/updateEnterprise/e1", `{}`)
	c.SetParamNames("uid")
	c.SetParamValues("e1")

	fields := violationFields(t, newEnterpriseHandler(svc).Update(withAdmin(c)))
	if len(fields) != 1 || fields[0] != "body" {
		t.Fatalf("expected a single body violation, got %v", fields)
	}
}

func TestEnterpriseHandler_Update_Success(t *testing.T) {
	e := newTestEcho()
	var checkedExclude string
	svc := &stubEnterpriseService{
		emailTakenFn: func(ctx context.Context, email, excludeID string) (bool, error) {
			checkedExclude = excludeID
			return false, nil
		},
		updateFn: func(ctx context.Context, id string, patch domain.EnterprisePatch) (*domain.Enterprise, error) {
			if id != "e1" {
				t.Fatalf("unexpected id %s", id)
			}
			if patch.Name == nil || *patch.Name != "NewName" || patch.Phone != nil {
				t.Fatalf("unexpected patch: %+v", patch)
			}
			return &domain.Enterprise{ID: id, Name: *patch.Name, Email: *patch.Email}, nil
		},
	}

	c, rec := newJSONContext(e, http.MethodPut, "/enterprise/updateEnterprise/e1", `{"name":"NewName","email":"new@corp.com"}`)
	c.SetParamNames("uid")
	c.SetParamValues("e1")

	if err := newEnterpriseHandler(svc).Update(withAdmin(c)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if checkedExclude != "e1" {
		t.Fatalf("uniqueness check must exclude the updated enterprise, got %q", checkedExclude)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["success"] != true {
		t.Fatalf("expected success=true, got %v", resp["success"])
	}
}

func TestEnterpriseHandler_Update_NotFound(t *testing.T) {
	e := newTestEcho()
	svc := &stubEnterpriseService{
		updateFn: func(ctx context.Context, id string, patch domain.EnterprisePatch) (*domain.Enterprise, error) {
			return nil, domain.ErrEnterpriseNotFound
		},
	}

	c, _ := newJSONContext(e, http.MethodPut, "/enterprise/updateEnterprise/missing", `{"category":"Agro"}`)
	c.SetParamNames("uid")
	c.SetParamValues("missing")

	if err := newEnterpriseHandler(svc).Update(withAdmin(c)); !errors.Is(err, domain.ErrEnterpriseNotFound) {
		t.Fatalf("expected ErrEnterpriseNotFound, got %v", err)
	}
}

func TestEnterpriseHandler_GenerateReport(t *testing.T) {
	e := newTestEcho()
	svc := &stubEnterpriseService{
		reportFn: func(ctx context.Context, f query.Filter) (*ports.ReportResult, error) {
			if f.Category != "Tech" || f.Sort != query.SortExperience {
				t.Fatalf("unexpected filter: %+v", f)
			}
			return &ports.ReportResult{FileName: "r.xlsx", URL: "/reports/r.xlsx", Rows: 3}, nil
		},
	}

	c, rec := newJSONContext(e, http.MethodGet, "/enterprise/generateReport?category=Tech&sort=experience&limite=abc", "")
	if err := newEnterpriseHandler(svc).GenerateReport(withAdmin(c)); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["downloadUrl"] != "/reports/r.xlsx" {
		t.Fatalf("unexpected downloadUrl %q", resp["downloadUrl"])
	}
}
