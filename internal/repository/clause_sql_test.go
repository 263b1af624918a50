package repository

import (
	"strings"
	"testing"

	"github.com/google/uuid"

	"fitwork/internal/domain/matching"
	"fitwork/internal/domain/seeker"
)

func TestCompileClauses_EmptyIsTrue(t *testing.T) {
	where, args, err := compileClauses(nil)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if where != "TRUE" || len(args) != 0 {
		t.Fatalf("got %q args=%v", where, args)
	}
}

func TestCompileClauses_NilClausesAreVacuous(t *testing.T) {
	where, args, err := compileClauses([]matching.Clause{nil, matching.Hiring{}, nil})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if where != "(is_hiring AND status = $1)" {
		t.Fatalf("got %q", where)
	}
	if len(args) != 1 || args[0] != "active" {
		t.Fatalf("got args %v", args)
	}
}

func TestCompileClauses_LocationPairs(t *testing.T) {
	loc := matching.LocationIn{
		{City: "서울", District: "강동구"},
		{City: "경기", District: seeker.DistrictEntireCity},
	}
	where, args, err := compileClauses([]matching.Clause{loc})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	want := "((city = $1 AND district = $2) OR city = $3)"
	if where != want {
		t.Fatalf("got %q, want %q", where, want)
	}
	if len(args) != 3 || args[0] != "서울" || args[1] != "강동구" || args[2] != "경기" {
		t.Fatalf("got args %v", args)
	}
}

func TestCompileClauses_TagAndOverlapClauses(t *testing.T) {
	clauses := []matching.Clause{
		matching.PreferenceLacks("여성"),
		matching.QualificationHas("초보가능"),
		matching.WorkTimeAny{"오후"},
	}
	where, args, err := compileClauses(clauses)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	want := "NOT ($1 = ANY(preferences)) AND $2 = ANY(qualifications) AND work_times && $3"
	if where != want {
		t.Fatalf("got %q, want %q", where, want)
	}
	if len(args) != 3 {
		t.Fatalf("got args %v", args)
	}
}

func TestCompileClauses_AndFlattensAndBindsInOrder(t *testing.T) {
	c := matching.And{
		matching.GenderIn{"either", "male"},
		nil,
		matching.PreferenceLacks("여성"),
	}
	where, args, err := compileClauses([]matching.Clause{c})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	want := "(gender_target = ANY($1) AND NOT ($2 = ANY(preferences)))"
	if where != want {
		t.Fatalf("got %q, want %q", where, want)
	}
	if len(args) != 2 {
		t.Fatalf("got args %v", args)
	}
	targets, ok := args[0].([]string)
	if !ok || len(targets) != 2 || targets[0] != "either" {
		t.Fatalf("got gender args %v", args[0])
	}
}

func TestCompileClauses_ExclusionSet(t *testing.T) {
	a, b := uuid.New(), uuid.New()
	where, args, err := compileClauses([]matching.Clause{matching.NotIn{a: {}, b: {}}})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if where != "NOT (id = ANY($1))" {
		t.Fatalf("got %q", where)
	}
	ids, ok := args[0].([]uuid.UUID)
	if !ok || len(ids) != 2 {
		t.Fatalf("got args %v", args)
	}
	if !(ids[0].String() < ids[1].String()) {
		t.Fatalf("exclusion ids not in stable order: %v", ids)
	}
}

func TestCompileClauses_EmptyExclusionDropsOut(t *testing.T) {
	where, args, err := compileClauses([]matching.Clause{matching.NotIn{}, matching.None{}})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if where != "FALSE" || len(args) != 0 {
		t.Fatalf("got %q args=%v", where, args)
	}
}

func TestCompileClauses_MatchesCascadeTierShape(t *testing.T) {
	p := seeker.Profile{
		Gender:    seeker.GenderMale,
		Location:  map[string][]string{"서울": {"강동구"}},
		WorkTimes: []string{"오후"},
	}
	tiers := matching.Tiers(p)
	for _, tier := range tiers {
		where, _, err := compileClauses(tier.Clauses)
		if err != nil {
			t.Fatalf("tier %s: %v", tier.Name, err)
		}
		if strings.TrimSpace(where) == "" {
			t.Fatalf("tier %s compiled to an empty filter", tier.Name)
		}
	}
}
