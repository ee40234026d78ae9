package ast

import (
	"strings"
)

// NormalArms returns the arms guarded by case labels.
func (u *Union) NormalArms() []*UnionArm {
	arms := make([]*UnionArm, 0, len(u.Arms))
	for _, a := range u.Arms {
		if !a.Default {
			arms = append(arms, a)
		}
	}
	return arms
}

func (u *Union) DefaultArm() *UnionArm {
	for _, a := range u.Arms {
		if a.Default {
			return a
		}
	}
	return nil
}

// DiscriminantType resolves the discriminant to its enum, following
// typedefs. It returns nil without error for integer and bool
// discriminants, for which no member coverage can be computed.
func (u *Union) DiscriminantType() (*Enum, error) {
	return u.discriminantType.get(func() (*Enum, error) {
		d := u.Discriminant
		if d == nil {
			return nil, nil
		}
		if _, ok := d.Declaration.(*SimpleDecl); !ok {
			return nil, &DiscriminantError{Union: u.Name, Type: d.Declaration.Kind(), Position: d.Position}
		}
		ts := d.Declaration.Typespec()
		seen := map[*Typedef]struct{}{}
		for {
			switch t := ts.(type) {
			case *Int, *UnsignedInt, *Hyper, *UnsignedHyper, *Bool:
				return nil, nil
			case *Simple:
				def, err := t.Resolve()
				if err != nil {
					return nil, err
				}
				switch def := def.(type) {
				case *Enum:
					return def, nil
				case *Typedef:
					if _, loop := seen[def]; loop {
						return nil, &DiscriminantError{Union: u.Name, Type: "circular typedef " + def.Name, Position: d.Position}
					}
					seen[def] = struct{}{}
					if _, ok := def.Declaration.(*SimpleDecl); !ok {
						return nil, &DiscriminantError{Union: u.Name, Type: def.Declaration.Kind() + " " + def.Name, Position: d.Position}
					}
					ts = def.Declaration.Typespec()
				default:
					return nil, &DiscriminantError{Union: u.Name, Type: def.Kind() + " " + def.Identifier(), Position: d.Position}
				}
			default:
				return nil, &DiscriminantError{Union: u.Name, Type: t.Kind(), Position: d.Position}
			}
		}
	})
}

// ResolvedCase maps a case label to the discriminant enum member it selects.
// Identifiers match member names case-insensitively and numbers match member
// values. For integer discriminants the result is nil; identifier labels
// must then name a const.
func (u *Union) ResolvedCase(c *UnionCase) (*EnumMember, error) {
	enum, err := u.DiscriminantType()
	if err != nil {
		return nil, err
	}
	if enum == nil {
		if c.Literal {
			return nil, nil
		}
		if def, err := lookup(u.Root(), c.Value); err == nil {
			if _, ok := def.(*Const); ok {
				return nil, nil
			}
		}
		return nil, &CaseResolutionError{Union: u.Name, Case: c.Value, Position: c.Position}
	}
	var m *EnumMember
	if c.Literal {
		m = enum.MemberByValue(c.Number)
	} else {
		m = enum.MemberByName(c.Value)
	}
	if m == nil {
		return nil, &CaseResolutionError{Union: u.Name, Case: c.Value, Type: enum.Name, Position: c.Position}
	}
	return m, nil
}

// CaseProcessed reports whether a normal arm carries a case label equal to
// value, ignoring case. Over an enum discriminant, a numeric label also
// processes the member it resolves to. The default arm never counts.
func (u *Union) CaseProcessed(value string) bool {
	labels, _ := u.processed.get(func() (map[string]struct{}, error) {
		labels := make(map[string]struct{})
		for _, a := range u.NormalArms() {
			for _, c := range a.Cases {
				labels[strings.ToLower(c.Value)] = struct{}{}
				if m, err := u.ResolvedCase(c); err == nil && m != nil {
					labels[strings.ToLower(m.Name)] = struct{}{}
				}
			}
		}
		return labels, nil
	})
	_, ok := labels[strings.ToLower(value)]
	return ok
}

// UnhandledMembers returns the discriminant enum members that no normal arm
// names. They are routed to the default arm when there is one.
func (u *Union) UnhandledMembers() ([]*EnumMember, error) {
	enum, err := u.DiscriminantType()
	if err != nil || enum == nil {
		return nil, err
	}
	var out []*EnumMember
	for _, m := range enum.Members {
		if !u.CaseProcessed(m.Name) {
			out = append(out, m)
		}
	}
	return out, nil
}

// Exhaustive reports whether every discriminant value selects an arm.
// Integer discriminants are exhaustive only with a default arm.
func (u *Union) Exhaustive() (bool, error) {
	if u.DefaultArm() != nil {
		return true, nil
	}
	enum, err := u.DiscriminantType()
	if err != nil || enum == nil {
		return false, err
	}
	unhandled, err := u.UnhandledMembers()
	if err != nil {
		return false, err
	}
	return len(unhandled) == 0, nil
}
