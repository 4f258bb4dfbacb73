package commission

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/gymcore-api/internal/domain/entity"
	"github.com/sangkips/gymcore-api/internal/domain/enum"
)

func block(staff string, purchased, remaining int, price string) entity.ServiceSession {
	return entity.ServiceSession{
		ID:                uuid.New(),
		Domain:            enum.DomainPT,
		StaffName:         staff,
		ClientName:        "client",
		SessionsPurchased: purchased,
		SessionsRemaining: remaining,
		PricePerSession:   d(price),
		CreatedAt:         time.Date(2024, 3, 2, 10, 0, 0, 0, time.UTC),
	}
}

func TestAggregateSessionUsageExample(t *testing.T) {
	usage := AggregateSessionUsage("Sara", testWindow(t), []entity.ServiceSession{block("Sara", 10, 4, "100")}, DefaultTiers())

	sc, ok := usage.For("Sara")
	if !ok {
		t.Fatal("no entry for Sara")
	}
	if sc.TotalUsedSessions != 6 {
		t.Errorf("TotalUsedSessions = %d, want 6", sc.TotalUsedSessions)
	}
	if !sc.TotalSessionsValue.Equal(d("600")) {
		t.Errorf("TotalSessionsValue = %s, want 600", sc.TotalSessionsValue)
	}
	if !sc.Percentage.Equal(d("25")) || !sc.Commission.Equal(d("150")) || !sc.GymShare.Equal(d("450")) {
		t.Errorf("split = %s%% %s/%s, want 25%% 150/450", sc.Percentage, sc.Commission, sc.GymShare)
	}
	if len(sc.Sessions) != 1 {
		t.Errorf("Sessions = %d, want 1", len(sc.Sessions))
	}
}

func TestAggregateSessionUsageRanking(t *testing.T) {
	w := testWindow(t)
	late := time.Date(2024, 4, 5, 0, 0, 0, 0, time.UTC)
	expired := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)

	future := block("Sara", 10, 0, "500")
	future.StartDate = &late
	old := block("Omar", 10, 0, "500")
	old.ExpiryDate = &expired

	sessions := []entity.ServiceSession{
		block("Sara", 10, 4, "100"),
		block(" Sara", 5, 5, "100"),
		block("Omar", 20, 0, "300"),
		block("Lina", 3, 5, "100"),
		block("Lina", 4, -1, "100"),
		block("Lina", 4, 2, "-10"),
		block("  ", 4, 2, "100"),
		future,
		old,
	}

	usage := AggregateSessionUsage("", w, sessions, DefaultTiers())

	if len(usage.Rankings) != 2 {
		t.Fatalf("Rankings = %d entries, want 2: %+v", len(usage.Rankings), usage.Rankings)
	}
	if usage.Rankings[0].StaffName != "Omar" || usage.Rankings[1].StaffName != "Sara" {
		t.Errorf("order = %s, %s; want Omar, Sara", usage.Rankings[0].StaffName, usage.Rankings[1].StaffName)
	}

	omar := usage.Rankings[0]
	if !omar.TotalSessionsValue.Equal(d("6000")) || !omar.Percentage.Equal(d("30")) || !omar.Commission.Equal(d("1800")) {
		t.Errorf("Omar = %+v", omar)
	}
	sara := usage.Rankings[1]
	if sara.TotalUsedSessions != 6 || len(sara.Sessions) != 2 {
		t.Errorf("Sara used %d over %d blocks, want 6 over 2", sara.TotalUsedSessions, len(sara.Sessions))
	}
	if len(usage.Anomalies) != 4 {
		t.Errorf("Anomalies = %d, want 4: %+v", len(usage.Anomalies), usage.Anomalies)
	}
	for _, sc := range usage.Rankings {
		if sc.TotalSessionsValue.IsNegative() {
			t.Errorf("%s has negative value %s", sc.StaffName, sc.TotalSessionsValue)
		}
	}
}

func TestAggregateSessionUsageNameFilter(t *testing.T) {
	sessions := []entity.ServiceSession{block("Sara", 10, 4, "100"), block("Omar", 20, 0, "300")}

	usage := AggregateSessionUsage(" Sara ", testWindow(t), sessions, DefaultTiers())
	if len(usage.Rankings) != 1 || usage.Rankings[0].StaffName != "Sara" {
		t.Errorf("Rankings = %+v, want Sara only", usage.Rankings)
	}
	if _, ok := usage.For("Omar"); ok {
		t.Error("Omar should be filtered out")
	}
}

func TestAggregateSessionUsageIgnoresNameCase(t *testing.T) {
	sessions := []entity.ServiceSession{block("Sara", 10, 4, "100"), block(" sara", 5, 3, "100")}

	usage := AggregateSessionUsage("SARA", testWindow(t), sessions, DefaultTiers())
	if len(usage.Rankings) != 1 {
		t.Fatalf("Rankings = %+v, want a single Sara entry", usage.Rankings)
	}
	if got := usage.Rankings[0].TotalUsedSessions; got != 8 {
		t.Errorf("TotalUsedSessions = %d, want 8", got)
	}
	if _, ok := usage.For("sara"); !ok {
		t.Error("For should match regardless of case")
	}
}
