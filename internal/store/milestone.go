package store

import (
	"context"
	"database/sql"
	"fmt"

	entsql "entgo.io/ent/dialect/sql"
	"github.com/google/uuid"

	"github.com/skillpulse/skillpulse/internal/category"
)

var milestoneColumns = []string{
	"milestone_id",
	"user_id",
	"milestone_type",
	"category",
	"scope",
	"achievement",
	"metadata",
	"achieved_sec",
	"achieved_nanos",
}

func (r *sqliteRepo) InsertMilestone(ctx context.Context, rec MilestoneRecord) (bool, error) {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	meta, err := jsonColumn(rec.Metadata, len(rec.Metadata) == 0)
	if err != nil {
		return false, fmt.Errorf("marshal milestone metadata: %w", err)
	}

	q, args := builder().Insert(MilestonesTable.Name).
		Columns(milestoneColumns...).
		Values(
			rec.ID,
			rec.UserID,
			rec.Type,
			string(rec.Category),
			rec.Scope,
			rec.Achievement,
			meta,
			rec.AchievedAt.Seconds,
			rec.AchievedAt.Nanos,
		).
		OnConflict(
			entsql.ConflictColumns("user_id", "milestone_type", "scope"),
			entsql.DoNothing(),
		).
		Query()

	n, err := r.exec(ctx, q, args)
	if err != nil {
		return false, fmt.Errorf("save milestone: %w", err)
	}
	return n > 0, nil
}

func (r *sqliteRepo) ListMilestones(ctx context.Context, userID, milestoneType string, cat category.Category) ([]MilestoneRecord, error) {
	preds := []*entsql.Predicate{
		entsql.EQ("user_id", userID),
		entsql.EQ("milestone_type", milestoneType),
	}
	if cat != "" {
		preds = append(preds, entsql.EQ("category", string(cat)))
	}
	return r.listMilestones(ctx, entsql.And(preds...))
}

func (r *sqliteRepo) ListMilestonesByUser(ctx context.Context, userID string) ([]MilestoneRecord, error) {
	return r.listMilestones(ctx, entsql.EQ("user_id", userID))
}

func (r *sqliteRepo) listMilestones(ctx context.Context, where *entsql.Predicate) ([]MilestoneRecord, error) {
	b := builder()
	q, args := b.Select(milestoneColumns...).
		From(b.Table(MilestonesTable.Name)).
		Where(where).
		OrderBy("id").
		Query()

	var records []MilestoneRecord
	err := r.query(ctx, q, args, func(rows *entsql.Rows) error {
		var (
			m    MilestoneRecord
			meta sql.NullString
		)
		if err := rows.Scan(
			&m.ID,
			&m.UserID,
			&m.Type,
			&m.Category,
			&m.Scope,
			&m.Achievement,
			&meta,
			&m.AchievedAt.Seconds,
			&m.AchievedAt.Nanos,
		); err != nil {
			return err
		}
		if err := decodeJSONColumn(meta, &m.Metadata); err != nil {
			return fmt.Errorf("decode milestone metadata: %w", err)
		}
		records = append(records, m)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("query milestones: %w", err)
	}
	return records, nil
}
