package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/avetrov/finance-service/internal/models"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func datePtr(y int, m time.Month, d int) *time.Time {
	t := date(y, m, d)
	return &t
}

func monthlyItem(day int, last *time.Time) models.RecurringItem {
	return models.RecurringItem{
		ID:                1,
		UserID:            1,
		Kind:              models.RecurringExpense,
		Name:              "Rent",
		Amount:            decimal.NewFromInt(500),
		Frequency:         models.FrequencyMonthly,
		DayOfMonth:        day,
		IsActive:          true,
		LastGeneratedDate: last,
	}
}

func TestShouldGenerateMonthly(t *testing.T) {
	tests := []struct {
		name  string
		day   int
		last  *time.Time
		today time.Time
		want  bool
	}{
		{"never generated, before day", 15, nil, date(2024, time.March, 14), false},
		{"never generated, on day", 15, nil, date(2024, time.March, 15), true},
		{"never generated, after day", 15, nil, date(2024, time.March, 20), true},
		{"day 1, first of month", 1, nil, date(2024, time.March, 1), true},
		{"already generated this month", 15, datePtr(2024, time.March, 15), date(2024, time.March, 28), false},
		{"generated last month", 15, datePtr(2024, time.February, 15), date(2024, time.March, 15), true},
		{"generated last year same month", 15, datePtr(2023, time.March, 15), date(2024, time.March, 15), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item := monthlyItem(tt.day, tt.last)
			require.Equal(t, tt.want, ShouldGenerate(item, tt.today))
		})
	}
}

func TestShouldGenerateMonthlyDayClipped(t *testing.T) {
	// a day-of-month beyond the month length is due on the month's last day
	item := monthlyItem(31, nil)
	require.False(t, ShouldGenerate(item, date(2024, time.April, 29)))
	require.True(t, ShouldGenerate(item, date(2024, time.April, 30)))
}

func TestShouldGenerateWeekly(t *testing.T) {
	item := monthlyItem(1, nil)
	item.Frequency = models.FrequencyWeekly

	// first occurrence anchors to day-of-month
	item.DayOfMonth = 10
	require.False(t, ShouldGenerate(item, date(2024, time.March, 9)))
	require.True(t, ShouldGenerate(item, date(2024, time.March, 10)))

	// 6 whole days is not enough, 7 is
	item.LastGeneratedDate = datePtr(2024, time.March, 10)
	require.False(t, ShouldGenerate(item, date(2024, time.March, 16)))
	require.True(t, ShouldGenerate(item, date(2024, time.March, 17)))
}

func TestShouldGenerateBiWeekly(t *testing.T) {
	item := monthlyItem(1, datePtr(2024, time.March, 1))
	item.Frequency = models.FrequencyBiWeekly
	require.False(t, ShouldGenerate(item, date(2024, time.March, 14)))
	require.True(t, ShouldGenerate(item, date(2024, time.March, 15)))
}

func TestShouldGenerateInactive(t *testing.T) {
	item := monthlyItem(1, nil)
	item.IsActive = false
	require.False(t, ShouldGenerate(item, date(2024, time.March, 15)))
}

func TestEffectiveDateClipsToMonthLength(t *testing.T) {
	item := monthlyItem(31, nil)
	got := EffectiveDate(item, date(2024, time.April, 30))
	require.Equal(t, date(2024, time.April, 30), got)
}

func TestEffectiveDateWeeklyUsesToday(t *testing.T) {
	item := monthlyItem(10, nil)
	item.Frequency = models.FrequencyWeekly

	// first occurrence anchors to the day-of-month
	require.Equal(t, date(2024, time.March, 10), EffectiveDate(item, date(2024, time.March, 12)))

	// subsequent occurrences carry today's date, so the schedule drifts
	// with late invocations
	item.LastGeneratedDate = datePtr(2024, time.March, 10)
	require.Equal(t, date(2024, time.March, 19), EffectiveDate(item, date(2024, time.March, 19)))
}

func TestRecordGenerated(t *testing.T) {
	item := monthlyItem(15, nil)
	at := date(2024, time.March, 15)
	updated := RecordGenerated(item, at)
	require.NotNil(t, updated.LastGeneratedDate)
	require.Equal(t, at, *updated.LastGeneratedDate)
	require.Nil(t, item.LastGeneratedDate)
}

func TestMonthlyEquivalent(t *testing.T) {
	item := monthlyItem(1, nil)
	item.Amount = decimal.NewFromInt(100)

	item.Frequency = models.FrequencyWeekly
	require.True(t, MonthlyEquivalent(item).Equal(decimal.NewFromInt(400)))

	item.Frequency = models.FrequencyBiWeekly
	require.True(t, MonthlyEquivalent(item).Equal(decimal.NewFromInt(200)))

	item.Frequency = models.FrequencyMonthly
	require.True(t, MonthlyEquivalent(item).Equal(decimal.NewFromInt(100)))
}

func TestMonthlyEndToEnd(t *testing.T) {
	// recurring monthly expense on day 28, generated in January
	item := monthlyItem(28, datePtr(2024, time.January, 28))

	require.False(t, ShouldGenerate(item, date(2024, time.February, 15)))
	require.True(t, ShouldGenerate(item, date(2024, time.February, 28)))
	require.Equal(t, date(2024, time.February, 28), EffectiveDate(item, date(2024, time.February, 28)))
}

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	return log
}

func TestGenerateDue(t *testing.T) {
	due := monthlyItem(10, nil)
	notDue := monthlyItem(25, nil)
	notDue.ID = 2
	notDue.Name = "Gym"

	items := newFakeRecurringStore(due, notDue)
	txs := newFakeTransactionStore()
	engine := NewRecurrenceEngine(items, txs, testLogger())

	today := date(2024, time.March, 12)
	count, err := engine.GenerateDue(context.Background(), 1, today)
	require.NoError(t, err)
	require.Equal(t, 1, count)
	require.Len(t, txs.created, 1)

	tx := txs.created[0]
	require.Equal(t, models.TransactionExpense, tx.Type)
	require.Equal(t, date(2024, time.March, 10), tx.Date)
	require.NotNil(t, tx.GenerationMarker)
	require.Equal(t, "recurring:1", *tx.GenerationMarker)
	require.Equal(t, today, items.stamped[1])

	// the stamp makes a second pass in the same month a no-op
	count, err = engine.GenerateDue(context.Background(), 1, today)
	require.NoError(t, err)
	require.Equal(t, 0, count)
	require.Len(t, txs.created, 1)
}

func TestGenerateDueMarkerGuard(t *testing.T) {
	// the item looks due by its own stamp, but a transaction carrying
	// its marker already exists for the month; the second guard holds
	item := monthlyItem(10, nil)
	items := newFakeRecurringStore(item)
	txs := newFakeTransactionStore()
	txs.markers[GenerationMarker(item)] = true
	engine := NewRecurrenceEngine(items, txs, testLogger())

	count, err := engine.GenerateDue(context.Background(), 1, date(2024, time.March, 12))
	require.NoError(t, err)
	require.Equal(t, 0, count)
	require.Empty(t, txs.created)
	require.Empty(t, items.stamped)
}

func TestGenerateDueContinueOnError(t *testing.T) {
	item := monthlyItem(10, nil)
	items := newFakeRecurringStore(item)
	txs := newFakeTransactionStore()
	txs.createErr = fmt.Errorf("insert rejected")
	engine := NewRecurrenceEngine(items, txs, testLogger())

	count, err := engine.GenerateDue(context.Background(), 1, date(2024, time.March, 12))
	require.NoError(t, err)
	require.Equal(t, 0, count)
	// a failed insert must not stamp the item
	require.Empty(t, items.stamped)
}

func TestGenerateDueIncomeType(t *testing.T) {
	item := monthlyItem(10, nil)
	item.Kind = models.RecurringIncome
	items := newFakeRecurringStore(item)
	txs := newFakeTransactionStore()
	engine := NewRecurrenceEngine(items, txs, testLogger())

	_, err := engine.GenerateDue(context.Background(), 1, date(2024, time.March, 12))
	require.NoError(t, err)
	require.Len(t, txs.created, 1)
	require.Equal(t, models.TransactionIncome, txs.created[0].Type)
}

func TestRecordNowNotDue(t *testing.T) {
	item := monthlyItem(25, nil)
	items := newFakeRecurringStore(item)
	txs := newFakeTransactionStore()
	engine := NewRecurrenceEngine(items, txs, testLogger())

	got, tx, err := engine.RecordNow(context.Background(), item, date(2024, time.March, 12))
	require.NoError(t, err)
	require.Nil(t, tx)
	require.Nil(t, got.LastGeneratedDate)
	require.Empty(t, txs.created)
}

func TestRecordNowOmitsMarker(t *testing.T) {
	// the interactive path stamps the item but leaves no marker, so it
	// does not feed the batch path's lookup guard
	item := monthlyItem(10, nil)
	items := newFakeRecurringStore(item)
	txs := newFakeTransactionStore()
	engine := NewRecurrenceEngine(items, txs, testLogger())

	today := date(2024, time.March, 12)
	got, tx, err := engine.RecordNow(context.Background(), item, today)
	require.NoError(t, err)
	require.NotNil(t, tx)
	require.Nil(t, tx.GenerationMarker)
	require.NotNil(t, got.LastGeneratedDate)
	require.Equal(t, today, items.stamped[1])
}
