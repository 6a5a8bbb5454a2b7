// Package render converts schema-less records into displayable
// label/value pairs. It is pure: no I/O, no logging.
package render

import (
	"fmt"

	"iusearch/model"
)

// Pair is one displayable row of a record.
type Pair struct {
	Label string
	Value string
}

// internalFields are excluded from the generic field list: identifiers are
// internal, and table_name is shown as a provenance header elsewhere.
var internalFields = map[string]bool{
	"id":         true,
	"_id":        true,
	"table_name": true,
}

// Fields maps a record to ordered label/value pairs. Field order follows the
// record's own wire order; no sorting is imposed. Nil values render as the
// literal "N/A", everything else via its canonical string form.
func Fields(rec *model.Record) []Pair {
	if rec == nil {
		return nil
	}
	pairs := make([]Pair, 0, rec.Len())
	for _, key := range rec.Keys() {
		if internalFields[key] {
			continue
		}
		value, _ := rec.Get(key)
		display := "N/A"
		if value != nil {
			display = model.ScalarString(value)
		}
		pairs = append(pairs, Pair{Label: key, Value: display})
	}
	return pairs
}

// ListKey produces a stable identity for a record within one result list:
// the id (or _id) when present, otherwise the record's index, suffixed with
// the source table. Two records sharing an identifier but differing by
// source table stay distinct.
func ListKey(rec *model.Record, index int) string {
	id := fmt.Sprintf("%d", index)
	if rec != nil {
		if recID, ok := rec.Identifier(); ok {
			id = recID
		}
	}
	table := ""
	if rec != nil {
		table = rec.TableName()
	}
	return id + "-" + table
}

// TableHeader is the provenance line shown above a record in result lists.
func TableHeader(rec *model.Record) string {
	if rec == nil || rec.TableName() == "" {
		return "Table: Unknown"
	}
	return "Table: " + rec.TableName()
}
