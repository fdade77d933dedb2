package store

import (
	"context"
	"database/sql"
	"fmt"

	entsql "entgo.io/ent/dialect/sql"

	"github.com/skillpulse/skillpulse/internal/category"
)

var profileColumns = []string{
	"user_id",
	"experience_level",
	"years_of_experience",
	"focus_areas",
	"goal",
	"self_assessment",
	"created_sec",
	"created_nanos",
	"updated_sec",
	"updated_nanos",
}

func (r *sqliteRepo) GetProfile(ctx context.Context, userID string) (*Profile, error) {
	b := builder()
	q, args := b.Select(profileColumns...).
		From(b.Table(ProfilesTable.Name)).
		Where(entsql.EQ("user_id", userID)).
		Limit(1).
		Query()

	var found *Profile
	err := r.query(ctx, q, args, func(rows *entsql.Rows) error {
		var (
			p                     Profile
			focus, selfAssessment sql.NullString
		)
		if err := rows.Scan(
			&p.UserID,
			&p.Level,
			&p.YearsOfExperience,
			&focus,
			&p.Goal,
			&selfAssessment,
			&p.CreatedAt.Seconds,
			&p.CreatedAt.Nanos,
			&p.UpdatedAt.Seconds,
			&p.UpdatedAt.Nanos,
		); err != nil {
			return err
		}
		if err := decodeJSONColumn(focus, &p.FocusAreas); err != nil {
			return fmt.Errorf("decode focus areas: %w", err)
		}
		if err := decodeJSONColumn(selfAssessment, &p.SelfAssessment); err != nil {
			return fmt.Errorf("decode self assessment: %w", err)
		}
		found = &p
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("query profile: %w", err)
	}
	return found, nil
}

func (r *sqliteRepo) PutProfile(ctx context.Context, p Profile) error {
	focus, err := jsonColumn(p.FocusAreas, len(p.FocusAreas) == 0)
	if err != nil {
		return fmt.Errorf("marshal focus areas: %w", err)
	}
	self, err := jsonColumn(p.SelfAssessment, len(p.SelfAssessment) == 0)
	if err != nil {
		return fmt.Errorf("marshal self assessment: %w", err)
	}

	q, args := builder().Insert(ProfilesTable.Name).
		Columns(profileColumns...).
		Values(
			p.UserID,
			string(p.Level),
			p.YearsOfExperience,
			focus,
			p.Goal,
			self,
			p.CreatedAt.Seconds,
			p.CreatedAt.Nanos,
			p.UpdatedAt.Seconds,
			p.UpdatedAt.Nanos,
		).
		OnConflict(
			entsql.ConflictColumns("user_id"),
			entsql.ResolveWithNewValues(),
		).
		Query()

	if _, err := r.exec(ctx, q, args); err != nil {
		return fmt.Errorf("save profile: %w", err)
	}
	return nil
}

func (r *sqliteRepo) ListProfilesByLevel(ctx context.Context, level category.Level) ([]string, error) {
	b := builder()
	q, args := b.Select("user_id").
		From(b.Table(ProfilesTable.Name)).
		Where(entsql.EQ("experience_level", string(level))).
		OrderBy("user_id").
		Query()

	var ids []string
	err := r.query(ctx, q, args, func(rows *entsql.Rows) error {
		var id string
		if err := rows.Scan(&id); err != nil {
			return err
		}
		ids = append(ids, id)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("query profiles by level: %w", err)
	}
	return ids, nil
}
