package repository

import (
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"

	"fitwork/internal/domain/listing"
	"fitwork/internal/domain/matching"
	"fitwork/internal/domain/seeker"
)

// compileClauses turns a clause set into a WHERE body plus positional args.
// This is the Postgres side of the predicate combinators: the in-memory Eval
// in domain/matching defines the semantics, this must agree with it.
func compileClauses(clauses []matching.Clause) (string, []any, error) {
	b := &sqlBuilder{}
	conds := make([]string, 0, len(clauses))
	for _, c := range clauses {
		frag, err := b.compile(c)
		if err != nil {
			return "", nil, err
		}
		if frag == "" {
			continue
		}
		conds = append(conds, frag)
	}
	if len(conds) == 0 {
		return "TRUE", nil, nil
	}
	return strings.Join(conds, " AND "), b.args, nil
}

type sqlBuilder struct {
	args []any
}

func (b *sqlBuilder) bind(v any) string {
	b.args = append(b.args, v)
	return fmt.Sprintf("$%d", len(b.args))
}

func (b *sqlBuilder) compile(c matching.Clause) (string, error) {
	switch cl := c.(type) {
	case nil:
		return "", nil
	case matching.And:
		conds := make([]string, 0, len(cl))
		for _, child := range cl {
			frag, err := b.compile(child)
			if err != nil {
				return "", err
			}
			if frag == "" {
				continue
			}
			conds = append(conds, frag)
		}
		if len(conds) == 0 {
			return "", nil
		}
		return "(" + strings.Join(conds, " AND ") + ")", nil
	case matching.None:
		return "FALSE", nil
	case matching.GenderIn:
		targets := make([]string, 0, len(cl))
		for _, t := range cl {
			targets = append(targets, string(t))
		}
		return "gender_target = ANY(" + b.bind(targets) + ")", nil
	case matching.PreferenceHas:
		return b.bind(string(cl)) + " = ANY(preferences)", nil
	case matching.PreferenceLacks:
		return "NOT (" + b.bind(string(cl)) + " = ANY(preferences))", nil
	case matching.QualificationHas:
		return b.bind(string(cl)) + " = ANY(qualifications)", nil
	case matching.QualificationLacks:
		return "NOT (" + b.bind(string(cl)) + " = ANY(qualifications))", nil
	case matching.LocationIn:
		if len(cl) == 0 {
			return "FALSE", nil
		}
		disjuncts := make([]string, 0, len(cl))
		for _, cd := range cl {
			if cd.District == seeker.DistrictEntireCity {
				disjuncts = append(disjuncts, "city = "+b.bind(cd.City))
				continue
			}
			disjuncts = append(disjuncts, "(city = "+b.bind(cd.City)+" AND district = "+b.bind(cd.District)+")")
		}
		return "(" + strings.Join(disjuncts, " OR ") + ")", nil
	case matching.CityIn:
		if len(cl) == 0 {
			return "FALSE", nil
		}
		return "city = ANY(" + b.bind([]string(cl)) + ")", nil
	case matching.WorkTimeAny:
		return "work_times && " + b.bind([]string(cl)), nil
	case matching.WorkTypeAny:
		return "work_types && " + b.bind([]string(cl)), nil
	case matching.Hiring:
		return "(is_hiring AND status = " + b.bind(string(listing.StatusActive)) + ")", nil
	case matching.NotIn:
		if len(cl) == 0 {
			return "", nil
		}
		ids := make([]uuid.UUID, 0, len(cl))
		for id := range cl {
			ids = append(ids, id)
		}
		sort.Slice(ids, func(i, j int) bool { return ids[i].String() < ids[j].String() })
		return "NOT (id = ANY(" + b.bind(ids) + "))", nil
	default:
		return "", fmt.Errorf("unsupported clause type %T", c)
	}
}
