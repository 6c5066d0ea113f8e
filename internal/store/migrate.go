package store

import (
	"context"
	"fmt"

	"entgo.io/ent/dialect"
	"entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"
)

const (
	collectionsTable = "collections"
	llmRequestsTable = "llm_requests"
)

var (
	// CollectionsColumns holds the columns for the "collections" table.
	// Each row stores one whole collection as a JSON array.
	CollectionsColumns = []*schema.Column{
		{Name: "bucket", Type: field.TypeString},
		{Name: "payload", Type: field.TypeString, Size: 2147483647},
		{Name: "updated_at", Type: field.TypeInt64},
	}
	// CollectionsTable holds the schema information for the "collections" table.
	CollectionsTable = &schema.Table{
		Name:       collectionsTable,
		Columns:    CollectionsColumns,
		PrimaryKey: []*schema.Column{CollectionsColumns[0]},
	}

	// LLMRequestsColumns holds the columns for the "llm_requests" table.
	LLMRequestsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt, Increment: true},
		{Name: "timestamp", Type: field.TypeInt64},
		{Name: "provider", Type: field.TypeString},
		{Name: "model", Type: field.TypeString},
		{Name: "purpose", Type: field.TypeString},
		{Name: "input_tokens", Type: field.TypeInt, Default: 0},
		{Name: "output_tokens", Type: field.TypeInt, Default: 0},
		{Name: "latency_ms", Type: field.TypeInt64, Default: 0},
		{Name: "success", Type: field.TypeBool},
		{Name: "error_message", Type: field.TypeString, Size: 2147483647, Default: ""},
		{Name: "request_body", Type: field.TypeString, Size: 2147483647, Default: ""},
		{Name: "response_body", Type: field.TypeString, Size: 2147483647, Default: ""},
	}
	// LLMRequestsTable holds the schema information for the "llm_requests" table.
	LLMRequestsTable = &schema.Table{
		Name:       llmRequestsTable,
		Columns:    LLMRequestsColumns,
		PrimaryKey: []*schema.Column{LLMRequestsColumns[0]},
		Indexes: []*schema.Index{
			{
				Name:    "llmrequest_timestamp",
				Unique:  false,
				Columns: []*schema.Column{LLMRequestsColumns[1]},
			},
			{
				Name:    "llmrequest_purpose",
				Unique:  false,
				Columns: []*schema.Column{LLMRequestsColumns[4]},
			},
		},
	}

	// Tables holds all the tables in the schema.
	Tables = []*schema.Table{
		CollectionsTable,
		LLMRequestsTable,
	}
)

// migrate creates or upgrades the tables in Tables.
func migrate(ctx context.Context, drv dialect.Driver) error {
	m, err := schema.NewMigrate(drv)
	if err != nil {
		return fmt.Errorf("new migrate: %w", err)
	}
	return m.Create(ctx, Tables...)
}
