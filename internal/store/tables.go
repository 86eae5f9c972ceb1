package store

import (
	"entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"
)

// Table and column names.
const (
	slotsTable     = "kv_slots"
	slotKey        = "key"
	slotValue      = "value"
	slotUpdatedAt  = "updated_at"
	eventsTable    = "llm_request_events"
	eventID        = "id"
	eventTimestamp = "timestamp"
	eventProvider  = "provider"
	eventModel     = "model"
	eventPurpose   = "purpose"
	eventInTokens  = "input_tokens"
	eventOutTokens = "output_tokens"
	eventLatency   = "latency_ms"
	eventSuccess   = "success"
	eventError     = "error_message"
	eventRequest   = "request_body"
	eventResponse  = "response_body"
)

var (
	// KVSlotsColumns holds the columns for the "kv_slots" table.
	KVSlotsColumns = []*schema.Column{
		{Name: slotKey, Type: field.TypeString},
		{Name: slotValue, Type: field.TypeString, Size: 2147483647},
		{Name: slotUpdatedAt, Type: field.TypeInt64},
	}
	// KVSlotsTable holds the schema information for the "kv_slots" table.
	KVSlotsTable = &schema.Table{
		Name:       slotsTable,
		Columns:    KVSlotsColumns,
		PrimaryKey: []*schema.Column{KVSlotsColumns[0]},
	}

	// LLMRequestEventsColumns holds the columns for the "llm_request_events" table.
	LLMRequestEventsColumns = []*schema.Column{
		{Name: eventID, Type: field.TypeInt, Increment: true},
		{Name: eventTimestamp, Type: field.TypeInt64},
		{Name: eventProvider, Type: field.TypeString},
		{Name: eventModel, Type: field.TypeString},
		{Name: eventPurpose, Type: field.TypeString},
		{Name: eventInTokens, Type: field.TypeInt, Default: 0},
		{Name: eventOutTokens, Type: field.TypeInt, Default: 0},
		{Name: eventLatency, Type: field.TypeInt64},
		{Name: eventSuccess, Type: field.TypeBool},
		{Name: eventError, Type: field.TypeString, Default: ""},
		{Name: eventRequest, Type: field.TypeString, Size: 2147483647, Default: ""},
		{Name: eventResponse, Type: field.TypeString, Size: 2147483647, Default: ""},
	}
	// LLMRequestEventsTable holds the schema information for the "llm_request_events" table.
	LLMRequestEventsTable = &schema.Table{
		Name:       eventsTable,
		Columns:    LLMRequestEventsColumns,
		PrimaryKey: []*schema.Column{LLMRequestEventsColumns[0]},
		Indexes: []*schema.Index{
			{
				Name:    "llmrequestevent_purpose",
				Unique:  false,
				Columns: []*schema.Column{LLMRequestEventsColumns[4]},
			},
		},
	}

	// Tables holds all the tables in the schema.
	Tables = []*schema.Table{
		KVSlotsTable,
		LLMRequestEventsTable,
	}
)
