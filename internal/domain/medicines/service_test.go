package medicines

import (
	"context"
	"testing"
	"time"
)

type fakeRepo struct {
	byID  map[string]Medicine
	order []string
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{byID: map[string]Medicine{}}
}

func (r *fakeRepo) Create(ctx context.Context, m Medicine) error {
	r.byID[m.ID] = m
	r.order = append(r.order, m.ID)
	return nil
}

func (r *fakeRepo) Update(ctx context.Context, m Medicine) error {
	if _, ok := r.byID[m.ID]; !ok {
		return ErrNotFound
	}
	r.byID[m.ID] = m
	return nil
}

func (r *fakeRepo) GetByID(ctx context.Context, id string) (Medicine, error) {
	m, ok := r.byID[id]
	if !ok {
		return Medicine{}, ErrNotFound
	}
	return m, nil
}

func (r *fakeRepo) ListByUser(ctx context.Context, userID string) ([]Medicine, error) {
	out := make([]Medicine, 0)
	for _, id := range r.order {
		if m := r.byID[id]; m.UserID == userID {
			out = append(out, m)
		}
	}
	return out, nil
}

func newTestService() (*Service, *fakeRepo) {
	repo := newFakeRepo()
	svc := NewService(repo)
	svc.now = func() time.Time {
		return time.Date(2025, 3, 10, 9, 30, 0, 0, time.UTC)
	}
	return svc, repo
}

func TestCreate_DefaultsAndDates(t *testing.T) {
	svc, _ := newTestService()

	m, err := svc.Create(context.Background(), "user-1", CreateInput{
		Name:         "  Paracetamol ",
		Dosage:       "500mg",
		Times:        []string{"09:00", "21:00"},
		DurationDays: 10,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if m.ID == "" {
		t.Fatal("expected generated id")
	}
	if m.Name != "Paracetamol" {
		t.Fatalf("expected trimmed name, got %q", m.Name)
	}
	if m.DaysLeft != 10 {
		t.Fatalf("expected days left = duration, got %v", m.DaysLeft)
	}
	if m.FoodInstruction != FoodAfter {
		t.Fatalf("expected default food instruction after, got %s", m.FoodInstruction)
	}
	if m.CreatedAt != "2025-03-10" {
		t.Fatalf("expected created at 2025-03-10, got %s", m.CreatedAt)
	}
}

func TestCreate_Validation(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	cases := []struct {
		name string
		in   CreateInput
	}{
		{"empty name", CreateInput{Times: []string{"09:00"}, DurationDays: 5}},
		{"zero duration", CreateInput{Name: "X", Times: []string{"09:00"}}},
		{"no times", CreateInput{Name: "X", DurationDays: 5}},
		{"blank times only", CreateInput{Name: "X", Times: []string{" ", ""}, DurationDays: 5}},
		{"unpadded hour", CreateInput{Name: "X", Times: []string{"9:00"}, DurationDays: 5}},
		{"bad time", CreateInput{Name: "X", Times: []string{"25:00"}, DurationDays: 5}},
		{"bad food instruction", CreateInput{Name: "X", Times: []string{"09:00"}, DurationDays: 5, FoodInstruction: "brunch"}},
	}
	for _, c := range cases {
		if _, err := svc.Create(ctx, "user-1", c.in); err != ErrInvalidInput {
			t.Fatalf("%s: expected ErrInvalidInput, got %v", c.name, err)
		}
	}
}

func TestCreate_KeepsTimeOrderAsGiven(t *testing.T) {
	svc, _ := newTestService()

	m, err := svc.Create(context.Background(), "user-1", CreateInput{
		Name:         "Metformin",
		Times:        []string{"21:00", "07:00"},
		DurationDays: 30,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if len(m.Times) != 2 || m.Times[0] != "21:00" || m.Times[1] != "07:00" {
		t.Fatalf("times reordered: %v", m.Times)
	}
}

func TestUpdateDaysLeft_Clamps(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	m, err := svc.Create(ctx, "user-1", CreateInput{
		Name: "X", Times: []string{"09:00"}, DurationDays: 10,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	got, err := svc.UpdateDaysLeft(ctx, m.ID, -3)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if got.DaysLeft != 0 {
		t.Fatalf("expected clamp to 0, got %v", got.DaysLeft)
	}

	got, err = svc.UpdateDaysLeft(ctx, m.ID, 99)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if got.DaysLeft != 10 {
		t.Fatalf("expected clamp to duration, got %v", got.DaysLeft)
	}
}

func TestAdjustDaysLeft_DeltaAndClamp(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	m, err := svc.Create(ctx, "user-1", CreateInput{
		Name: "X", Times: []string{"09:00", "21:00"}, DurationDays: 10,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	got, err := svc.AdjustDaysLeft(ctx, m.ID, -0.5)
	if err != nil {
		t.Fatalf("adjust: %v", err)
	}
	if got.DaysLeft != 9.5 {
		t.Fatalf("expected 9.5, got %v", got.DaysLeft)
	}

	got, err = svc.AdjustDaysLeft(ctx, m.ID, +5)
	if err != nil {
		t.Fatalf("adjust: %v", err)
	}
	if got.DaysLeft != 10 {
		t.Fatalf("expected clamp to 10, got %v", got.DaysLeft)
	}
}

func TestAdjustDaysLeft_UnknownMedicine(t *testing.T) {
	svc, _ := newTestService()
	if _, err := svc.AdjustDaysLeft(context.Background(), "nope", -1); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestProgressPercent(t *testing.T) {
	cases := []struct {
		duration int
		daysLeft float64
		want     int
	}{
		{10, 10, 0},
		{10, 5, 50},
		{10, 0, 100},
		{3, 2, 33},
		{3, 1, 67},
		{0, 0, 0},
	}
	for _, c := range cases {
		m := Medicine{DurationDays: c.duration, DaysLeft: c.daysLeft}
		if got := ProgressPercent(m); got != c.want {
			t.Fatalf("progress(%d, %v): expected %d, got %d", c.duration, c.daysLeft, c.want, got)
		}
	}
}

func TestWarningFor(t *testing.T) {
	cases := []struct {
		daysLeft float64
		want     SupplyWarning
	}{
		{10, SupplyOK},
		{5.5, SupplyOK},
		{5, SupplyWarn},
		{3, SupplyWarn},
		{2, SupplyLow},
		{0, SupplyLow},
	}
	for _, c := range cases {
		if got := WarningFor(c.daysLeft); got != c.want {
			t.Fatalf("warning(%v): expected %s, got %s", c.daysLeft, c.want, got)
		}
	}
}
