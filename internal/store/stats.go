package store

import (
	"context"
	"fmt"

	entsql "entgo.io/ent/dialect/sql"

	"github.com/skillpulse/skillpulse/internal/category"
)

var categoryStatColumns = []string{
	"user_id",
	"category",
	"total_quizzes",
	"correct_count",
	"correct_rate",
	"average_difficulty",
	"last_answered_sec",
	"last_answered_nanos",
	"weekly_trend",
	"monthly_trend",
}

func scanCategoryStat(rows *entsql.Rows) (CategoryStat, error) {
	var s CategoryStat
	err := rows.Scan(
		&s.UserID,
		&s.Category,
		&s.TotalQuizzes,
		&s.CorrectCount,
		&s.CorrectRate,
		&s.AverageDifficulty,
		&s.LastAnsweredAt.Seconds,
		&s.LastAnsweredAt.Nanos,
		&s.WeeklyTrend,
		&s.MonthlyTrend,
	)
	return s, err
}

func (r *sqliteRepo) GetCategoryStat(ctx context.Context, userID string, cat category.Category) (*CategoryStat, error) {
	b := builder()
	q, args := b.Select(categoryStatColumns...).
		From(b.Table(CategoryStatsTable.Name)).
		Where(entsql.And(
			entsql.EQ("user_id", userID),
			entsql.EQ("category", string(cat)),
		)).
		Limit(1).
		Query()

	var found *CategoryStat
	err := r.query(ctx, q, args, func(rows *entsql.Rows) error {
		s, err := scanCategoryStat(rows)
		if err != nil {
			return err
		}
		found = &s
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("query category stat: %w", err)
	}
	return found, nil
}

func (r *sqliteRepo) PutCategoryStat(ctx context.Context, s CategoryStat) error {
	q, args := builder().Insert(CategoryStatsTable.Name).
		Columns(categoryStatColumns...).
		Values(
			s.UserID,
			string(s.Category),
			s.TotalQuizzes,
			s.CorrectCount,
			s.CorrectRate,
			s.AverageDifficulty,
			s.LastAnsweredAt.Seconds,
			s.LastAnsweredAt.Nanos,
			s.WeeklyTrend,
			s.MonthlyTrend,
		).
		OnConflict(
			entsql.ConflictColumns("user_id", "category"),
			entsql.ResolveWithNewValues(),
		).
		Query()

	if _, err := r.exec(ctx, q, args); err != nil {
		return fmt.Errorf("save category stat: %w", err)
	}
	return nil
}

func (r *sqliteRepo) ListCategoryStats(ctx context.Context, userID string) ([]CategoryStat, error) {
	b := builder()
	q, args := b.Select(categoryStatColumns...).
		From(b.Table(CategoryStatsTable.Name)).
		Where(entsql.EQ("user_id", userID)).
		OrderBy("category").
		Query()

	var stats []CategoryStat
	err := r.query(ctx, q, args, func(rows *entsql.Rows) error {
		s, err := scanCategoryStat(rows)
		if err != nil {
			return err
		}
		stats = append(stats, s)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("query category stats: %w", err)
	}
	return stats, nil
}

func (r *sqliteRepo) IncrementUserTotals(ctx context.Context, userID string, correct bool) (UserTotals, error) {
	inc := 0
	if correct {
		inc = 1
	}
	q, args := builder().Insert(UserTotalsTable.Name).
		Columns("user_id", "total_answers", "total_correct").
		Values(userID, 1, inc).
		OnConflict(
			entsql.ConflictColumns("user_id"),
			entsql.ResolveWith(func(u *entsql.UpdateSet) {
				u.Add("total_answers", 1)
				u.Add("total_correct", inc)
			}),
		).
		Returning("total_answers", "total_correct").
		Query()

	totals := UserTotals{UserID: userID}
	err := r.query(ctx, q, args, func(rows *entsql.Rows) error {
		return rows.Scan(&totals.TotalAnswers, &totals.TotalCorrect)
	})
	if err != nil {
		return UserTotals{}, fmt.Errorf("increment user totals: %w", err)
	}
	return totals, nil
}

func (r *sqliteRepo) GetUserTotals(ctx context.Context, userID string) (UserTotals, error) {
	b := builder()
	q, args := b.Select("total_answers", "total_correct").
		From(b.Table(UserTotalsTable.Name)).
		Where(entsql.EQ("user_id", userID)).
		Query()

	totals := UserTotals{UserID: userID}
	err := r.query(ctx, q, args, func(rows *entsql.Rows) error {
		return rows.Scan(&totals.TotalAnswers, &totals.TotalCorrect)
	})
	if err != nil {
		return UserTotals{}, fmt.Errorf("query user totals: %w", err)
	}
	return totals, nil
}
