package store

import (
	"context"
	"fmt"

	entsql "entgo.io/ent/dialect/sql"
)

var teamAggregateColumns = []string{
	"period",
	"experience_level",
	"category",
	"average_correct_rate",
	"total_quizzes",
	"active_users",
	"percentile_25",
	"percentile_50",
	"percentile_75",
	"percentile_90",
}

func (r *sqliteRepo) PutTeamAggregate(ctx context.Context, agg TeamAggregate) error {
	q, args := builder().Insert(TeamAggregatesTable.Name).
		Columns(teamAggregateColumns...).
		Values(
			agg.Key.Period,
			string(agg.Key.Level),
			string(agg.Key.Category),
			agg.AverageCorrectRate,
			agg.TotalQuizzes,
			agg.ActiveUsers,
			agg.Percentile25,
			agg.Percentile50,
			agg.Percentile75,
			agg.Percentile90,
		).
		OnConflict(
			entsql.ConflictColumns("period", "experience_level", "category"),
			entsql.ResolveWithNewValues(),
		).
		Query()

	if _, err := r.exec(ctx, q, args); err != nil {
		return fmt.Errorf("save team aggregate: %w", err)
	}
	return nil
}

func (r *sqliteRepo) GetTeamAggregate(ctx context.Context, key AggregateKey) (*TeamAggregate, error) {
	b := builder()
	q, args := b.Select(teamAggregateColumns...).
		From(b.Table(TeamAggregatesTable.Name)).
		Where(entsql.And(
			entsql.EQ("period", key.Period),
			entsql.EQ("experience_level", string(key.Level)),
			entsql.EQ("category", string(key.Category)),
		)).
		Limit(1).
		Query()

	var found *TeamAggregate
	err := r.query(ctx, q, args, func(rows *entsql.Rows) error {
		var agg TeamAggregate
		if err := rows.Scan(
			&agg.Key.Period,
			&agg.Key.Level,
			&agg.Key.Category,
			&agg.AverageCorrectRate,
			&agg.TotalQuizzes,
			&agg.ActiveUsers,
			&agg.Percentile25,
			&agg.Percentile50,
			&agg.Percentile75,
			&agg.Percentile90,
		); err != nil {
			return err
		}
		found = &agg
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("query team aggregate: %w", err)
	}
	return found, nil
}
