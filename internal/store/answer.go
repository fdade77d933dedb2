package store

import (
	"context"
	"fmt"

	entsql "entgo.io/ent/dialect/sql"
	"github.com/google/uuid"

	"github.com/skillpulse/skillpulse/internal/category"
	"github.com/skillpulse/skillpulse/internal/clock"
)

var answerColumns = []string{
	"answer_id",
	"sequence",
	"quiz_id",
	"user_id",
	"category",
	"difficulty",
	"selected_index",
	"correct",
	"answered_sec",
	"answered_nanos",
}

func (r *sqliteRepo) AppendAnswer(ctx context.Context, rec *AnswerRecord) error {
	seqNum, err := r.seq.Next(ctx, r.conn)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}

	q, args := builder().Insert(AnswersTable.Name).
		Columns(answerColumns...).
		Values(
			rec.ID,
			seqNum,
			rec.QuizID,
			rec.UserID,
			string(rec.Category),
			string(rec.Difficulty),
			rec.SelectedIndex,
			rec.Correct,
			rec.AnsweredAt.Seconds,
			rec.AnsweredAt.Nanos,
		).
		Query()

	if _, err := r.exec(ctx, q, args); err != nil {
		return fmt.Errorf("save answer: %w", err)
	}
	rec.Sequence = seqNum
	return nil
}

func (r *sqliteRepo) RecordAnswer(ctx context.Context, rec *AnswerRecord, stat CategoryStat) (UserTotals, error) {
	staged := *rec
	var totals UserTotals
	err := r.withTx(ctx, func(tx *sqliteRepo) error {
		if err := tx.AppendAnswer(ctx, &staged); err != nil {
			return err
		}
		t, err := tx.IncrementUserTotals(ctx, staged.UserID, staged.Correct)
		if err != nil {
			return err
		}
		totals = t
		return tx.PutCategoryStat(ctx, stat)
	})
	if err != nil {
		return UserTotals{}, fmt.Errorf("record answer: %w", err)
	}
	*rec = staged
	return totals, nil
}

func (r *sqliteRepo) ListAnswersInPeriod(ctx context.Context, period clock.Period, cat category.Category) ([]AnswerRecord, error) {
	start, end := period.Bounds()
	preds := []*entsql.Predicate{
		entsql.GTE("answered_sec", start.Seconds),
		entsql.LT("answered_sec", end.Seconds),
	}
	if cat != "" {
		preds = append(preds, entsql.EQ("category", string(cat)))
	}

	b := builder()
	q, args := b.Select(answerColumns...).
		From(b.Table(AnswersTable.Name)).
		Where(entsql.And(preds...)).
		OrderBy("sequence").
		Query()

	var records []AnswerRecord
	err := r.query(ctx, q, args, func(rows *entsql.Rows) error {
		var a AnswerRecord
		if err := rows.Scan(
			&a.ID,
			&a.Sequence,
			&a.QuizID,
			&a.UserID,
			&a.Category,
			&a.Difficulty,
			&a.SelectedIndex,
			&a.Correct,
			&a.AnsweredAt.Seconds,
			&a.AnsweredAt.Nanos,
		); err != nil {
			return err
		}
		records = append(records, a)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("query answers in %s: %w", period, err)
	}
	return records, nil
}
