package directory

import (
	"context"
	"testing"
)

// stubStore resolves employee numbers from a fixed map and records upserts.
type stubStore struct {
	numbers  map[string]string
	upserted []Employee
}

func (s *stubStore) Get(ctx context.Context, tenantID, employeeID string) (Employee, error) {
	return Employee{}, ErrNotFound
}

func (s *stubStore) GetByUserID(ctx context.Context, tenantID, userID string) (Employee, error) {
	return Employee{}, ErrNotFound
}

func (s *stubStore) List(ctx context.Context, tenantID string, activeOnly bool) ([]Employee, error) {
	return nil, nil
}

func (s *stubStore) ListTeam(ctx context.Context, tenantID, managerID string) ([]Employee, error) {
	return nil, nil
}

func (s *stubStore) ListEvaluators(ctx context.Context, tenantID string) ([]Employee, error) {
	return nil, nil
}

func (s *stubStore) IsManagerOf(ctx context.Context, tenantID, managerID, employeeID string) (bool, error) {
	return false, nil
}

func (s *stubStore) SetActive(ctx context.Context, tenantID, employeeID string, active bool) error {
	return nil
}

func (s *stubStore) IDByNumber(ctx context.Context, tenantID, employeeNumber string) (string, error) {
	id, ok := s.numbers[employeeNumber]
	if !ok {
		return "", ErrNotFound
	}
	return id, nil
}

func (s *stubStore) Upsert(ctx context.Context, tenantID string, emp Employee) (string, error) {
	s.upserted = append(s.upserted, emp)
	return "emp-new", nil
}

func (s *stubStore) UpsertWithLogin(ctx context.Context, tenantID string, emp Employee, passwordHash, roleName string) (string, error) {
	s.upserted = append(s.upserted, emp)
	return "emp-new", nil
}

func TestImportRosterLeavesUnknownManagerUnset(t *testing.T) {
	store := &stubStore{numbers: map[string]string{}}
	svc := NewService(store)

	result, err := svc.ImportRoster(context.Background(), "t1", []RosterRow{
		{Line: 2, EmployeeNumber: "E100", FullName: "Ada Nilsson", ManagerNumber: "E999"},
	})
	if err != nil {
		t.Fatalf("import failed: %v", err)
	}
	if result.Imported != 1 {
		t.Fatalf("row should still import, got %d", result.Imported)
	}
	if len(result.Unresolved) != 1 {
		t.Fatalf("unresolved manager should be reported, got %+v", result.Unresolved)
	}
	if len(store.upserted) != 1 || store.upserted[0].ManagerID != "" {
		t.Fatalf("manager link must stay empty, got %+v", store.upserted)
	}
}

func TestImportRosterResolvesKnownManager(t *testing.T) {
	store := &stubStore{numbers: map[string]string{"E001": "id-mgr"}}
	svc := NewService(store)

	result, err := svc.ImportRoster(context.Background(), "t1", []RosterRow{
		{Line: 2, EmployeeNumber: "E100", FullName: "Ada Nilsson", ManagerNumber: "E001"},
	})
	if err != nil {
		t.Fatalf("import failed: %v", err)
	}
	if result.Imported != 1 || len(result.Unresolved) != 0 {
		t.Fatalf("unexpected result: %+v", result)
	}
	if store.upserted[0].ManagerID != "id-mgr" {
		t.Fatalf("manager link not resolved, got %q", store.upserted[0].ManagerID)
	}
}

func TestImportRosterSkipsIncompleteRows(t *testing.T) {
	store := &stubStore{numbers: map[string]string{}}
	svc := NewService(store)

	result, err := svc.ImportRoster(context.Background(), "t1", []RosterRow{
		{Line: 2, EmployeeNumber: "", FullName: "No Number"},
		{Line: 3, EmployeeNumber: "E101", FullName: ""},
	})
	if err != nil {
		t.Fatalf("import failed: %v", err)
	}
	if result.Imported != 0 || len(result.Skipped) != 2 {
		t.Fatalf("both rows should be skipped, got %+v", result)
	}
	if len(store.upserted) != 0 {
		t.Fatalf("nothing should be written, got %d upserts", len(store.upserted))
	}
}
