package services

import (
	"time"

	"github.com/aarondl/null/v8"

	"event-rental/internal/graph"
)

// The set helpers copy a field from doc only when the payload carried it.

func setString(doc *graph.Document, field string, dst *string) {
	if v, ok := doc.Scalar(field); ok {
		*dst = v.Str
	}
}

func setNullString(doc *graph.Document, field string, dst *null.String) {
	v, ok := doc.Scalar(field)
	if !ok {
		return
	}
	if v.Null {
		*dst = null.String{}
		return
	}
	*dst = null.StringFrom(v.Str)
}

func setTime(doc *graph.Document, field string, dst *time.Time) {
	if v, ok := doc.Scalar(field); ok {
		*dst = v.Time
	}
}

func setInt(doc *graph.Document, field string, dst *int64) {
	if v, ok := doc.Scalar(field); ok {
		*dst = v.Int
	}
}

func setRef(res *graph.Resolved, field string, dst *uint64) {
	if id, ok := res.One(field); ok {
		*dst = id
	}
}

func setNullRef(res *graph.Resolved, field string, dst *null.Uint64) {
	id, ok := res.One(field)
	if !ok {
		return
	}
	if id == 0 {
		*dst = null.Uint64{}
		return
	}
	*dst = null.Uint64From(id)
}
