package store

import (
	"entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"
)

// Table declarations in the shape ent's migrate package generates. They
// are applied with schema.NewMigrate on Open.
var (
	// DocumentsColumns holds the columns for the "documents" table.
	DocumentsColumns = []*schema.Column{
		{Name: "key", Type: field.TypeString, Unique: true},
		{Name: "value", Type: field.TypeString, Size: 2147483647},
		{Name: "updated_at", Type: field.TypeTime},
	}
	// DocumentsTable holds the schema information for the "documents" table.
	DocumentsTable = &schema.Table{
		Name:       "documents",
		Columns:    DocumentsColumns,
		PrimaryKey: []*schema.Column{DocumentsColumns[0]},
	}

	// LessonEventsColumns holds the columns for the "lesson_events" table.
	LessonEventsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt, Increment: true},
		{Name: "sequence", Type: field.TypeInt64, Unique: true},
		{Name: "timestamp", Type: field.TypeTime},
		{Name: "attempt_id", Type: field.TypeString},
		{Name: "profile_id", Type: field.TypeString},
		{Name: "lesson_id", Type: field.TypeString},
		{Name: "action", Type: field.TypeString},
		{Name: "step_index", Type: field.TypeInt, Default: 0},
		{Name: "score", Type: field.TypeInt, Default: 0},
		{Name: "total_questions", Type: field.TypeInt, Default: 0},
		{Name: "xp", Type: field.TypeInt, Default: 0},
	}
	// LessonEventsTable holds the schema information for the "lesson_events" table.
	LessonEventsTable = &schema.Table{
		Name:       "lesson_events",
		Columns:    LessonEventsColumns,
		PrimaryKey: []*schema.Column{LessonEventsColumns[0]},
		Indexes: []*schema.Index{
			{
				Name:    "lessonevent_lesson_id_action",
				Unique:  false,
				Columns: []*schema.Column{LessonEventsColumns[5], LessonEventsColumns[6]},
			},
		},
	}

	// RewardEventsColumns holds the columns for the "reward_events" table.
	RewardEventsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt, Increment: true},
		{Name: "sequence", Type: field.TypeInt64, Unique: true},
		{Name: "timestamp", Type: field.TypeTime},
		{Name: "profile_id", Type: field.TypeString},
		{Name: "lesson_id", Type: field.TypeString, Default: ""},
		{Name: "kind", Type: field.TypeString},
		{Name: "amount", Type: field.TypeInt},
	}
	// RewardEventsTable holds the schema information for the "reward_events" table.
	RewardEventsTable = &schema.Table{
		Name:       "reward_events",
		Columns:    RewardEventsColumns,
		PrimaryKey: []*schema.Column{RewardEventsColumns[0]},
		Indexes: []*schema.Index{
			{
				Name:    "rewardevent_profile_id",
				Unique:  false,
				Columns: []*schema.Column{RewardEventsColumns[3]},
			},
		},
	}

	// LlmRequestEventsColumns holds the columns for the "llm_request_events" table.
	LlmRequestEventsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt, Increment: true},
		{Name: "sequence", Type: field.TypeInt64, Unique: true},
		{Name: "timestamp", Type: field.TypeTime},
		{Name: "provider", Type: field.TypeString},
		{Name: "model", Type: field.TypeString},
		{Name: "purpose", Type: field.TypeString},
		{Name: "input_tokens", Type: field.TypeInt},
		{Name: "output_tokens", Type: field.TypeInt},
		{Name: "latency_ms", Type: field.TypeInt64},
		{Name: "success", Type: field.TypeBool},
		{Name: "error_message", Type: field.TypeString, Default: ""},
		{Name: "request_body", Type: field.TypeString, Size: 2147483647, Default: ""},
		{Name: "response_body", Type: field.TypeString, Size: 2147483647, Default: ""},
	}
	// LlmRequestEventsTable holds the schema information for the "llm_request_events" table.
	LlmRequestEventsTable = &schema.Table{
		Name:       "llm_request_events",
		Columns:    LlmRequestEventsColumns,
		PrimaryKey: []*schema.Column{LlmRequestEventsColumns[0]},
	}

	// Tables holds all the tables in the schema.
	Tables = []*schema.Table{
		DocumentsTable,
		LessonEventsTable,
		RewardEventsTable,
		LlmRequestEventsTable,
	}
)
