package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/nzsnyn/pos-sub000/config"
	"github.com/nzsnyn/pos-sub000/models"

	"github.com/bsm/redislock"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Period string

const (
	PeriodDaily   Period = "daily"
	PeriodWeekly  Period = "weekly"
	PeriodMonthly Period = "monthly"
)

func (p Period) Valid() bool {
	switch p {
	case PeriodDaily, PeriodWeekly, PeriodMonthly:
		return true
	}
	return false
}

// BucketBounds mengembalikan [start, end) bucket yang memuat t, dihitung di loc.
// Minggu dimulai hari Minggu.
func BucketBounds(p Period, t time.Time, loc *time.Location) (time.Time, time.Time) {
	t = t.In(loc)
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
	switch p {
	case PeriodWeekly:
		start := day.AddDate(0, 0, -int(day.Weekday()))
		return start, start.AddDate(0, 0, 7)
	case PeriodMonthly:
		start := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, loc)
		return start, start.AddDate(0, 1, 0)
	default:
		return day, day.AddDate(0, 0, 1)
	}
}

type BucketStats struct {
	Period    Period    `json:"period"`
	Start     time.Time `json:"start"`
	End       time.Time `json:"end"`
	IsCurrent bool      `json:"is_current"`
	models.StatsTotals
}

type StatsComparison struct {
	Current  BucketStats                `json:"current"`
	Previous BucketStats                `json:"previous"`
	Changes  map[string]decimal.Decimal `json:"changes"`
}

const (
	pastBucketCacheTTL = 24 * time.Hour
	recomputeLockTTL   = 10 * time.Second
)

type StatsService struct {
	db     *gorm.DB
	agg    *Aggregator
	rdb    *redis.Client
	locker *redislock.Client
	loc    *time.Location
	now    func() time.Time
	log    *logrus.Logger
}

func NewStatsService(db *gorm.DB, agg *Aggregator, opt Options) *StatsService {
	return &StatsService{
		db:     db,
		agg:    agg,
		rdb:    opt.Redis,
		locker: opt.Locker,
		loc:    opt.Location,
		now:    opt.Now,
		log:    opt.Logger,
	}
}

// Bucket mengembalikan statistik bucket yang memuat date.
// Bucket berjalan selalu dihitung ulang dan di-upsert. Bucket lampau dibaca dari tabel
// hanya kalau baris itu dihitung setelah bucket selesai; kalau belum, dihitung ulang sekali lagi.
func (s *StatsService) Bucket(ctx context.Context, p Period, date time.Time) (BucketStats, error) {
	if !p.Valid() {
		return BucketStats{}, invalid("Periode tidak valid")
	}
	start, end := BucketBounds(p, date, s.loc)
	curStart, _ := BucketBounds(p, s.now(), s.loc)
	if start.After(curStart) {
		return BucketStats{}, invalid("Tanggal tidak boleh melewati hari ini")
	}
	out := BucketStats{Period: p, Start: start, End: end, IsCurrent: start.Equal(curStart)}

	if out.IsCurrent {
		totals, err := s.recomputeCurrent(ctx, p, start, end)
		if err != nil {
			return BucketStats{}, err
		}
		out.StatsTotals = totals
		return out, nil
	}

	key := cacheKey(p, start)
	if totals, ok := s.cacheGet(ctx, key); ok {
		out.StatsTotals = totals
		return out, nil
	}

	totals, computedAt, found, err := s.loadStored(ctx, p, start)
	if err != nil {
		return BucketStats{}, err
	}
	// baris yang tersimpan saat bucket masih berjalan belum final
	if !found || computedAt.Before(end) {
		agg, err := s.agg.Range(ctx, start, end)
		if err != nil {
			return BucketStats{}, err
		}
		totals = agg.Totals()
		if err := s.store(ctx, p, start, end, totals); err != nil {
			return BucketStats{}, err
		}
	}
	s.cacheSet(ctx, key, totals)
	out.StatsTotals = totals
	return out, nil
}

func (s *StatsService) recomputeCurrent(ctx context.Context, p Period, start, end time.Time) (models.StatsTotals, error) {
	agg, err := s.agg.Range(ctx, start, end)
	if err != nil {
		return models.StatsTotals{}, err
	}
	totals := agg.Totals()

	// antar instance: hanya pemegang lock yang menulis; yang lain cukup mengembalikan hasil hitungannya
	if s.locker != nil {
		lock, err := s.locker.Obtain(ctx, "stats-lock:"+cacheKey(p, start), recomputeLockTTL, nil)
		if errors.Is(err, redislock.ErrNotObtained) {
			return totals, nil
		}
		if err != nil {
			config.LogError(s.log, "service", "recomputeCurrent", "gagal ambil lock statistik", cacheKey(p, start), err)
			return totals, nil
		}
		defer func() { _ = lock.Release(context.Background()) }()
	}

	if err := s.store(ctx, p, start, end, totals); err != nil {
		return models.StatsTotals{}, err
	}
	return totals, nil
}

// Compare mengembalikan bucket yang memuat date, bucket sebelumnya, dan persentase perubahannya.
func (s *StatsService) Compare(ctx context.Context, p Period, date time.Time) (StatsComparison, error) {
	cur, err := s.Bucket(ctx, p, date)
	if err != nil {
		return StatsComparison{}, err
	}
	// satu detik sebelum start pasti berada di bucket sebelumnya
	prev, err := s.Bucket(ctx, p, cur.Start.Add(-time.Second))
	if err != nil {
		return StatsComparison{}, err
	}
	return StatsComparison{Current: cur, Previous: prev, Changes: compareTotals(cur.StatsTotals, prev.StatsTotals)}, nil
}

func compareTotals(cur, prev models.StatsTotals) map[string]decimal.Decimal {
	n := decimal.NewFromInt
	return map[string]decimal.Decimal{
		"total_sales":         CalculateChange(n(cur.TotalSales), n(prev.TotalSales)),
		"total_transactions":  CalculateChange(n(cur.TotalTransactions), n(prev.TotalTransactions)),
		"total_profit":        CalculateChange(cur.TotalProfit, prev.TotalProfit),
		"total_customers":     CalculateChange(n(cur.TotalCustomers), n(prev.TotalCustomers)),
		"total_items_sold":    CalculateChange(n(cur.TotalItemsSold), n(prev.TotalItemsSold)),
		"average_order_value": CalculateChange(cur.AverageOrderValue, prev.AverageOrderValue),
	}
}

func (s *StatsService) loadStored(ctx context.Context, p Period, start time.Time) (models.StatsTotals, time.Time, bool, error) {
	db := s.db.WithContext(ctx)
	var (
		res        *gorm.DB
		totals     models.StatsTotals
		computedAt time.Time
	)
	switch p {
	case PeriodWeekly:
		var row models.WeeklyStats
		res = db.Where("week_start = ?", start.UTC()).Limit(1).Find(&row)
		totals, computedAt = row.StatsTotals, row.ComputedAt
	case PeriodMonthly:
		var row models.MonthlyStats
		res = db.Where("year = ? AND month = ?", start.Year(), int(start.Month())).Limit(1).Find(&row)
		totals, computedAt = row.StatsTotals, row.ComputedAt
	default:
		var row models.DailyStats
		res = db.Where("date = ?", start.UTC()).Limit(1).Find(&row)
		totals, computedAt = row.StatsTotals, row.ComputedAt
	}
	if res.Error != nil {
		return models.StatsTotals{}, time.Time{}, false, res.Error
	}
	return totals, computedAt, res.RowsAffected > 0, nil
}

func (s *StatsService) store(ctx context.Context, p Period, start, end time.Time, totals models.StatsTotals) error {
	db := s.db.WithContext(ctx)
	now := s.now().UTC()
	switch p {
	case PeriodWeekly:
		row := models.WeeklyStats{WeekStart: start.UTC(), WeekEnd: end.UTC(), StatsTotals: totals, ComputedAt: now}
		return db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "week_start"}},
			UpdateAll: true,
		}).Create(&row).Error
	case PeriodMonthly:
		row := models.MonthlyStats{Year: start.Year(), Month: int(start.Month()), StatsTotals: totals, ComputedAt: now}
		return db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "year"}, {Name: "month"}},
			UpdateAll: true,
		}).Create(&row).Error
	default:
		row := models.DailyStats{Date: start.UTC(), StatsTotals: totals, ComputedAt: now}
		return db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "date"}},
			UpdateAll: true,
		}).Create(&row).Error
	}
}

func cacheKey(p Period, start time.Time) string {
	return fmt.Sprintf("stats:%s:%s", p, start.Format("2006-01-02"))
}

func (s *StatsService) cacheGet(ctx context.Context, key string) (models.StatsTotals, bool) {
	var totals models.StatsTotals
	if s.rdb == nil {
		return totals, false
	}
	val, err := s.rdb.Get(ctx, key).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			config.LogError(s.log, "service", "cacheGet", "gagal baca cache statistik", key, err)
		}
		return totals, false
	}
	if err := json.Unmarshal([]byte(val), &totals); err != nil {
		return totals, false
	}
	return totals, true
}

func (s *StatsService) cacheSet(ctx context.Context, key string, totals models.StatsTotals) {
	if s.rdb == nil {
		return
	}
	b, err := json.Marshal(totals)
	if err != nil {
		return
	}
	if err := s.rdb.Set(ctx, key, b, pastBucketCacheTTL).Err(); err != nil {
		config.LogError(s.log, "service", "cacheSet", "gagal simpan cache statistik", key, err)
	}
}
