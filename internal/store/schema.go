package store

import (
	"entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"
)

// Table and column definitions for auto-migration. Timestamps are stored as
// (seconds, nanos) integer pairs.
var (
	// CategoryStatsColumns holds the columns for the "category_stats" table.
	CategoryStatsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt, Increment: true},
		{Name: "user_id", Type: field.TypeString},
		{Name: "category", Type: field.TypeString},
		{Name: "total_quizzes", Type: field.TypeInt, Default: 0},
		{Name: "correct_count", Type: field.TypeInt, Default: 0},
		{Name: "correct_rate", Type: field.TypeFloat64, Default: 0},
		{Name: "average_difficulty", Type: field.TypeFloat64, Default: 0},
		{Name: "last_answered_sec", Type: field.TypeInt64, Default: 0},
		{Name: "last_answered_nanos", Type: field.TypeInt32, Default: 0},
		{Name: "weekly_trend", Type: field.TypeFloat64, Default: 0},
		{Name: "monthly_trend", Type: field.TypeFloat64, Default: 0},
	}
	// CategoryStatsTable holds the schema information for the "category_stats" table.
	CategoryStatsTable = &schema.Table{
		Name:       "category_stats",
		Columns:    CategoryStatsColumns,
		PrimaryKey: []*schema.Column{CategoryStatsColumns[0]},
		Indexes: []*schema.Index{
			{
				Name:    "categorystat_user_id_category",
				Unique:  true,
				Columns: []*schema.Column{CategoryStatsColumns[1], CategoryStatsColumns[2]},
			},
		},
	}

	// AnswersColumns holds the columns for the "answers" table.
	AnswersColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt, Increment: true},
		{Name: "answer_id", Type: field.TypeString, Unique: true},
		{Name: "sequence", Type: field.TypeInt64, Unique: true},
		{Name: "quiz_id", Type: field.TypeString},
		{Name: "user_id", Type: field.TypeString},
		{Name: "category", Type: field.TypeString},
		{Name: "difficulty", Type: field.TypeString},
		{Name: "selected_index", Type: field.TypeInt},
		{Name: "correct", Type: field.TypeBool},
		{Name: "answered_sec", Type: field.TypeInt64},
		{Name: "answered_nanos", Type: field.TypeInt32},
	}
	// AnswersTable holds the schema information for the "answers" table.
	AnswersTable = &schema.Table{
		Name:       "answers",
		Columns:    AnswersColumns,
		PrimaryKey: []*schema.Column{AnswersColumns[0]},
		Indexes: []*schema.Index{
			{
				Name:    "answer_answered_sec",
				Unique:  false,
				Columns: []*schema.Column{AnswersColumns[9]},
			},
			{
				Name:    "answer_user_id",
				Unique:  false,
				Columns: []*schema.Column{AnswersColumns[4]},
			},
		},
	}

	// UserTotalsColumns holds the columns for the "user_totals" table.
	UserTotalsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt, Increment: true},
		{Name: "user_id", Type: field.TypeString, Unique: true},
		{Name: "total_answers", Type: field.TypeInt, Default: 0},
		{Name: "total_correct", Type: field.TypeInt, Default: 0},
	}
	// UserTotalsTable holds the schema information for the "user_totals" table.
	UserTotalsTable = &schema.Table{
		Name:       "user_totals",
		Columns:    UserTotalsColumns,
		PrimaryKey: []*schema.Column{UserTotalsColumns[0]},
	}

	// MilestonesColumns holds the columns for the "milestones" table.
	MilestonesColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt, Increment: true},
		{Name: "milestone_id", Type: field.TypeString, Unique: true},
		{Name: "user_id", Type: field.TypeString},
		{Name: "milestone_type", Type: field.TypeString},
		{Name: "category", Type: field.TypeString, Default: ""},
		{Name: "scope", Type: field.TypeString, Default: ""},
		{Name: "achievement", Type: field.TypeString},
		{Name: "metadata", Type: field.TypeJSON, Nullable: true},
		{Name: "achieved_sec", Type: field.TypeInt64},
		{Name: "achieved_nanos", Type: field.TypeInt32},
	}
	// MilestonesTable holds the schema information for the "milestones" table.
	MilestonesTable = &schema.Table{
		Name:       "milestones",
		Columns:    MilestonesColumns,
		PrimaryKey: []*schema.Column{MilestonesColumns[0]},
		Indexes: []*schema.Index{
			{
				Name:    "milestone_user_id_milestone_type_scope",
				Unique:  true,
				Columns: []*schema.Column{MilestonesColumns[2], MilestonesColumns[3], MilestonesColumns[5]},
			},
		},
	}

	// ProfilesColumns holds the columns for the "profiles" table.
	ProfilesColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt, Increment: true},
		{Name: "user_id", Type: field.TypeString, Unique: true},
		{Name: "experience_level", Type: field.TypeString},
		{Name: "years_of_experience", Type: field.TypeFloat64, Default: 0},
		{Name: "focus_areas", Type: field.TypeJSON, Nullable: true},
		{Name: "goal", Type: field.TypeString, Default: ""},
		{Name: "self_assessment", Type: field.TypeJSON, Nullable: true},
		{Name: "created_sec", Type: field.TypeInt64},
		{Name: "created_nanos", Type: field.TypeInt32},
		{Name: "updated_sec", Type: field.TypeInt64},
		{Name: "updated_nanos", Type: field.TypeInt32},
	}
	// ProfilesTable holds the schema information for the "profiles" table.
	ProfilesTable = &schema.Table{
		Name:       "profiles",
		Columns:    ProfilesColumns,
		PrimaryKey: []*schema.Column{ProfilesColumns[0]},
		Indexes: []*schema.Index{
			{
				Name:    "profile_experience_level",
				Unique:  false,
				Columns: []*schema.Column{ProfilesColumns[2]},
			},
		},
	}

	// TeamAggregatesColumns holds the columns for the "team_aggregates" table.
	TeamAggregatesColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt, Increment: true},
		{Name: "period", Type: field.TypeString},
		{Name: "experience_level", Type: field.TypeString, Default: ""},
		{Name: "category", Type: field.TypeString, Default: ""},
		{Name: "average_correct_rate", Type: field.TypeFloat64},
		{Name: "total_quizzes", Type: field.TypeInt},
		{Name: "active_users", Type: field.TypeInt},
		{Name: "percentile_25", Type: field.TypeFloat64},
		{Name: "percentile_50", Type: field.TypeFloat64},
		{Name: "percentile_75", Type: field.TypeFloat64},
		{Name: "percentile_90", Type: field.TypeFloat64},
	}
	// TeamAggregatesTable holds the schema information for the "team_aggregates" table.
	TeamAggregatesTable = &schema.Table{
		Name:       "team_aggregates",
		Columns:    TeamAggregatesColumns,
		PrimaryKey: []*schema.Column{TeamAggregatesColumns[0]},
		Indexes: []*schema.Index{
			{
				Name:    "teamaggregate_period_experience_level_category",
				Unique:  true,
				Columns: []*schema.Column{TeamAggregatesColumns[1], TeamAggregatesColumns[2], TeamAggregatesColumns[3]},
			},
		},
	}

	// Tables holds all the tables in the schema.
	Tables = []*schema.Table{
		CategoryStatsTable,
		AnswersTable,
		UserTotalsTable,
		MilestonesTable,
		ProfilesTable,
		TeamAggregatesTable,
	}
)
