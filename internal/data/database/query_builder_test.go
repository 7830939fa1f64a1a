package database

import (
	"strings"
	"testing"
)

func TestBuildListQuery_BasicSelect(t *testing.T) {
	opts := NewListQueryOptions("seeds")
	query, args := BuildListQuery(opts)

	expected := `SELECT * FROM "seeds"`
	if query != expected {
		t.Errorf("Expected query %q, got %q", expected, query)
	}
	if len(args) != 0 {
		t.Errorf("Expected 0 args, got %d", len(args))
	}
}

func TestBuildListQuery_WithColumns(t *testing.T) {
	opts := NewListQueryOptions("job_archive",
		WithColumns("job_hash", "job_title", "status"),
	)
	query, args := BuildListQuery(opts)

	expected := `SELECT "job_hash", "job_title", "status" FROM "job_archive"`
	if query != expected {
		t.Errorf("Expected query %q, got %q", expected, query)
	}
	if len(args) != 0 {
		t.Errorf("Expected 0 args, got %d", len(args))
	}
}

func TestBuildListQuery_WithQualifiedColumns(t *testing.T) {
	opts := NewListQueryOptions("job_archive",
		WithColumns("job_archive.job_hash", "companies.company_name"),
	)
	query, args := BuildListQuery(opts)

	expected := `SELECT "job_archive"."job_hash", "companies"."company_name" FROM "job_archive"`
	if query != expected {
		t.Errorf("Expected query %q, got %q", expected, query)
	}
	if len(args) != 0 {
		t.Errorf("Expected 0 args, got %d", len(args))
	}
}

func TestBuildListQuery_CountOnly(t *testing.T) {
	opts := NewListQueryOptions("seeds",
		WithCountOnly(),
		WithCondition(WhereCond("is_hit", Equal, true)),
	)
	query, args := BuildListQuery(opts)

	expected := `SELECT COUNT(*) FROM "seeds" WHERE "is_hit" = $1`
	if query != expected {
		t.Errorf("Expected query %q, got %q", expected, query)
	}
	if len(args) != 1 || args[0] != true {
		t.Errorf("Expected args [true], got %v", args)
	}
}

func TestBuildListQuery_WhereEqualAndCompare(t *testing.T) {
	opts := NewListQueryOptions("job_archive",
		WithCondition(WhereCond("status", Equal, "open")),
		WithCondition(WhereCond("time_to_fill", GreaterThan, 30)),
	)
	query, args := BuildListQuery(opts)

	expected := `SELECT * FROM "job_archive" WHERE "status" = $1 AND "time_to_fill" > $2`
	if query != expected {
		t.Errorf("Expected query %q, got %q", expected, query)
	}
	if len(args) != 2 || args[0] != "open" || args[1] != 30 {
		t.Errorf("Expected args [open, 30], got %v", args)
	}
}

func TestBuildListQuery_WhereILike(t *testing.T) {
	opts := NewListQueryOptions("companies",
		WithCondition(WhereCond("company_name", ILike, "%acme%")),
	)
	query, args := BuildListQuery(opts)

	expected := `SELECT * FROM "companies" WHERE "company_name" ILIKE $1`
	if query != expected {
		t.Errorf("Expected query %q, got %q", expected, query)
	}
	if len(args) != 1 || args[0] != "%acme%" {
		t.Errorf("Expected args [%%acme%%], got %v", args)
	}
}

func TestBuildListQuery_WhereIn_StringSlice(t *testing.T) {
	opts := NewListQueryOptions("job_archive",
		WithCondition(WhereCond("work_type", In, []string{"remote", "hybrid"})),
	)
	query, args := BuildListQuery(opts)

	expected := `SELECT * FROM "job_archive" WHERE "work_type" IN ($1, $2)`
	if query != expected {
		t.Errorf("Expected query %q, got %q", expected, query)
	}
	if len(args) != 2 || args[0] != "remote" || args[1] != "hybrid" {
		t.Errorf("Expected args [remote, hybrid], got %v", args)
	}
}

func TestBuildListQuery_WhereIn_IntSlice(t *testing.T) {
	opts := NewListQueryOptions("seeds",
		WithCondition(WhereCond("tier", In, []int{1, 2})),
	)
	query, args := BuildListQuery(opts)

	expected := `SELECT * FROM "seeds" WHERE "tier" IN ($1, $2)`
	if query != expected {
		t.Errorf("Expected query %q, got %q", expected, query)
	}
	if len(args) != 2 || args[0] != 1 || args[1] != 2 {
		t.Errorf("Expected args [1, 2], got %v", args)
	}
}

func TestBuildListQuery_WhereIn_EmptySliceDropped(t *testing.T) {
	opts := NewListQueryOptions("seeds",
		WithCondition(WhereCond("tier", In, []int{})),
	)
	query, args := BuildListQuery(opts)

	expected := `SELECT * FROM "seeds"`
	if query != expected {
		t.Errorf("Expected query %q, got %q", expected, query)
	}
	if len(args) != 0 {
		t.Errorf("Expected 0 args, got %d", len(args))
	}
}

func TestBuildListQuery_WhereCustom_NoParams(t *testing.T) {
	opts := NewListQueryOptions("seeds",
		WithCondition(WhereRawCond("last_tested IS NULL")),
	)
	query, args := BuildListQuery(opts)

	expected := `SELECT * FROM "seeds" WHERE last_tested IS NULL`
	if query != expected {
		t.Errorf("Expected query %q, got %q", expected, query)
	}
	if len(args) != 0 {
		t.Errorf("Expected 0 args, got %d", len(args))
	}
}

func TestBuildListQuery_WhereCustom_MultipleParams(t *testing.T) {
	opts := NewListQueryOptions("job_archive",
		WithCondition(WhereRawCond("first_seen BETWEEN $1 AND $2", "2025-01-01", "2025-02-01")),
	)
	query, args := BuildListQuery(opts)

	expected := `SELECT * FROM "job_archive" WHERE first_seen BETWEEN $1 AND $2`
	if query != expected {
		t.Errorf("Expected query %q, got %q", expected, query)
	}
	if len(args) != 2 || args[0] != "2025-01-01" || args[1] != "2025-02-01" {
		t.Errorf("Expected args [2025-01-01, 2025-02-01], got %v", args)
	}
}

func TestBuildListQuery_WhereCustom_RepeatedPlaceholder(t *testing.T) {
	opts := NewListQueryOptions("seeds",
		WithCondition(WhereRawCond("(total_tested > $1 OR total_hits > $1)", 5)),
	)
	query, args := BuildListQuery(opts)

	expected := `SELECT * FROM "seeds" WHERE (total_tested > $1 OR total_hits > $1)`
	if query != expected {
		t.Errorf("Expected query %q, got %q", expected, query)
	}
	if len(args) != 1 || args[0] != 5 {
		t.Errorf("Expected args [5], got %v", args)
	}
}

func TestBuildListQuery_WhereCustom_RenumbersAfterStandardCondition(t *testing.T) {
	opts := NewListQueryOptions("job_archive",
		WithCondition(WhereCond("status", Equal, "open")),
		WithCondition(WhereRawCond("time_to_fill > $1", 14)),
	)
	query, args := BuildListQuery(opts)

	expected := `SELECT * FROM "job_archive" WHERE "status" = $1 AND time_to_fill > $2`
	if query != expected {
		t.Errorf("Expected query %q, got %q", expected, query)
	}
	if len(args) != 2 || args[0] != "open" || args[1] != 14 {
		t.Errorf("Expected args [open, 14], got %v", args)
	}
}

func TestBuildListQuery_OrderBy(t *testing.T) {
	opts := NewListQueryOptions("job_archive",
		WithOrderBy("last_seen", "DESC"),
	)
	query, args := BuildListQuery(opts)

	expected := `SELECT * FROM "job_archive" ORDER BY "last_seen" DESC`
	if query != expected {
		t.Errorf("Expected query %q, got %q", expected, query)
	}
	if len(args) != 0 {
		t.Errorf("Expected 0 args, got %d", len(args))
	}
}

func TestBuildListQuery_OrderBy_InvalidDirectionDropped(t *testing.T) {
	opts := NewListQueryOptions("job_archive",
		WithOrderBy("last_seen", "DESC; DROP TABLE job_archive"),
	)
	query, _ := BuildListQuery(opts)

	expected := `SELECT * FROM "job_archive" ORDER BY "last_seen"`
	if query != expected {
		t.Errorf("Expected query %q, got %q", expected, query)
	}
}

func TestBuildListQuery_LimitOffset(t *testing.T) {
	opts := NewListQueryOptions("companies",
		WithLimit(10),
		WithOffset(20),
	)
	query, args := BuildListQuery(opts)

	expected := `SELECT * FROM "companies" LIMIT $1 OFFSET $2`
	if query != expected {
		t.Errorf("Expected query %q, got %q", expected, query)
	}
	if len(args) != 2 || args[0] != 10 || args[1] != 20 {
		t.Errorf("Expected args [10, 20], got %v", args)
	}
}

func TestBuildListQuery_ComplexQuery(t *testing.T) {
	opts := NewListQueryOptions("job_archive",
		WithColumns("job_hash", "job_title", "work_type"),
		WithCondition(WhereCond("status", Equal, "open")),
		WithCondition(WhereCond("work_type", In, []string{"remote", "hybrid"})),
		WithCondition(WhereRawCond("first_seen > $1", "2025-01-01")),
		WithOrderBy("last_seen", "DESC"),
		WithLimit(50),
		WithOffset(0),
	)
	query, args := BuildListQuery(opts)

	expected := `SELECT "job_hash", "job_title", "work_type" FROM "job_archive"` +
		` WHERE "status" = $1 AND "work_type" IN ($2, $3) AND first_seen > $4` +
		` ORDER BY "last_seen" DESC LIMIT $5 OFFSET $6`
	if query != expected {
		t.Errorf("Expected query %q, got %q", expected, query)
	}
	if len(args) != 6 {
		t.Errorf("Expected 6 args, got %d: %v", len(args), args)
	}
}

func TestBuildListQuery_SQLInjectionPrevention(t *testing.T) {
	// Attempt SQL injection via table name
	opts := NewListQueryOptions("seeds; DROP TABLE seeds;--")
	query, _ := BuildListQuery(opts)

	// The entire malicious string becomes a quoted identifier
	expected := `SELECT * FROM "seeds; DROP TABLE seeds;--"`
	if query != expected {
		t.Errorf("Expected %q, got %q", expected, query)
	}
	if !strings.Contains(query, `"seeds; DROP TABLE seeds;--"`) {
		t.Errorf("Table name not properly quoted: %q", query)
	}
}

func TestBuildListQuery_FieldInjectionQuoted(t *testing.T) {
	opts := NewListQueryOptions("seeds",
		WithCondition(WhereCond(`tier" = 1 OR "1"="1`, Equal, 2)),
	)
	query, _ := BuildListQuery(opts)

	// Embedded quotes are doubled, so the field stays one identifier
	if !strings.Contains(query, `"tier"" = 1 OR ""1""=""1"`) {
		t.Errorf("Field name not properly quoted: %q", query)
	}
}

func TestBuildListQuery_NilOptions(t *testing.T) {
	query, args := BuildListQuery(nil)
	if query != "" || args != nil {
		t.Errorf("Expected empty query and nil args, got %q %v", query, args)
	}
}
