package services

import (
	"context"
	"testing"
	"time"

	"valleycars/internal/domain"
	"valleycars/internal/pricing"

	"github.com/DATA-DOG/go-sqlmock"
)

var (
	carCols  = []string{"id", "name", "category", "base_price", "per_km", "image_url", "active", "created_at"}
	ruleCols = []string{"id", "rule_name", "type", "scope", "value", "active", "created_at"}
	created  = time.Date(2026, 1, 5, 8, 0, 0, 0, time.UTC)
	saturday = time.Date(2026, 10, 17, 10, 0, 0, 0, time.UTC)
)

func expectCar(mock sqlmock.Sqlmock, id string, base, perKm int64, active bool) {
	mock.ExpectQuery("FROM cars WHERE id = \\?").WithArgs(id).
		WillReturnRows(sqlmock.NewRows(carCols).AddRow(id, "Audi A6", "luxury", base, perKm, nil, active, created))
}

func TestEstimateServiceAppliesRulesInOrder(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	expectCar(mock, "car-1", 16000, 0, true)
	mock.ExpectQuery("FROM price_rules WHERE active = 1 ORDER BY created_at ASC, id ASC").
		WillReturnRows(sqlmock.NewRows(ruleCols).
			AddRow("r1", "Srinagar Discount", "discount", "srinagar", -0.15, true, created).
			AddRow("r2", "Weekend Surcharge", "surcharge", "weekend", 0.1, true, created.Add(time.Minute)).
			AddRow("r3", "Outside Surcharge", "surcharge", "outside_srinagar", 0.2, true, created.Add(2*time.Minute)))

	svc := EstimateService{DB: db, Now: func() time.Time { return saturday }}
	res, err := svc.Estimate(context.Background(), domain.EstimateRequest{CarID: "car-1", Scope: "srinagar"})
	if err != nil {
		t.Fatalf("Estimate: %v", err)
	}

	est := res.Estimate
	if est.Total != 14960 {
		t.Fatalf("total = %d, want 14960", est.Total)
	}
	if len(est.Adjustments) != 2 {
		t.Fatalf("expected 2 adjustments, got %#v", est.Adjustments)
	}
	if est.Adjustments[0].RuleID != "r1" || est.Adjustments[0].Delta != -2400 {
		t.Fatalf("first adjustment = %#v", est.Adjustments[0])
	}
	if est.Adjustments[1].RuleID != "r2" || est.Adjustments[1].Delta != 1360 {
		t.Fatalf("second adjustment = %#v", est.Adjustments[1])
	}
	if res.Car.ID != "car-1" || res.Scope != pricing.ScopeSrinagar || res.Date != "2026-10-17T10:00:00Z" {
		t.Fatalf("unexpected result envelope: %#v", res)
	}
	if !pricing.Reconciles(est) {
		t.Fatalf("breakdown does not reconcile: %#v", est)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestEstimateServiceDerivesScopeFromPins(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	expectCar(mock, "car-1", 9000, 20, true)
	mock.ExpectQuery("FROM price_rules WHERE active = 1").
		WillReturnRows(sqlmock.NewRows(ruleCols).
			AddRow("r3", "Outside Surcharge", "surcharge", "outside_srinagar", 0.1, true, created))

	tuesday := time.Date(2026, 10, 20, 10, 0, 0, 0, time.UTC)
	svc := EstimateService{DB: db, Now: func() time.Time { return tuesday }}
	res, err := svc.Estimate(context.Background(), domain.EstimateRequest{
		CarID:   "car-1",
		Kms:     domain.Num(100),
		Pickup:  "Dal Gate, Srinagar 190001",
		Dropoff: "Pahalgam 192126",
	})
	if err != nil {
		t.Fatalf("Estimate: %v", err)
	}
	if res.Scope != pricing.ScopeOutsideSrinagar {
		t.Fatalf("scope = %q, want outside_srinagar", res.Scope)
	}
	// (9000 + 20*100) * 1.1
	if res.Estimate.PerKmComponent != 2000 || res.Estimate.Total != 12100 {
		t.Fatalf("unexpected estimate: %#v", res.Estimate)
	}
}

func TestEstimateServiceInactiveCarIsNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	expectCar(mock, "car-9", 16000, 0, false)

	_, err = EstimateService{DB: db}.Estimate(context.Background(), domain.EstimateRequest{CarID: "car-9"})
	if !domain.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("rules must not be loaded for an inactive car: %v", err)
	}
}

func TestEstimateServiceRejectsInvalidRequest(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	_, err = EstimateService{DB: db}.Estimate(context.Background(), domain.EstimateRequest{CarID: "car-1", Scope: "mars"})
	if !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("no query expected: %v", err)
	}
}
