package parser

import (
	"strings"

	"github.com/manav03panchal/crewboard/internal/errors"
	"github.com/manav03panchal/crewboard/internal/model"
)

// ResolveMember finds a member by full id, unique id prefix, or
// case-insensitive name.
func ResolveMember(p *model.Project, ref string) (*model.Member, error) {
	ref = strings.TrimSpace(ref)
	if m, ok := p.FindMember(ref); ok {
		return m, nil
	}

	var match *model.Member
	for i := range p.Members {
		m := &p.Members[i]
		if strings.EqualFold(m.Name, ref) || (len(ref) >= 4 && strings.HasPrefix(m.ID, ref)) {
			if match != nil && match.ID != m.ID {
				return nil, errors.NewUserErrorWithField("member", ref, "member reference is ambiguous",
					"Use the member id from 'crewboard member list'.")
			}
			match = m
		}
	}
	if match == nil {
		return nil, errors.NewUserErrorFrom(errors.ErrMemberNotFound, "member", ref)
	}
	return match, nil
}

// ResolveMembers resolves every reference and returns the member ids.
func ResolveMembers(p *model.Project, refs []string) ([]string, error) {
	ids := make([]string, 0, len(refs))
	for _, ref := range refs {
		m, err := ResolveMember(p, ref)
		if err != nil {
			return nil, err
		}
		ids = append(ids, m.ID)
	}
	return ids, nil
}

// ResolveTask finds a task by full id or unique id prefix.
func ResolveTask(p *model.Project, ref string) (*model.Task, error) {
	ref = strings.TrimSpace(ref)
	if t, ok := p.FindTask(ref); ok {
		return t, nil
	}

	var match *model.Task
	if len(ref) >= 4 {
		for i := range p.Tasks {
			t := &p.Tasks[i]
			if !strings.HasPrefix(t.ID, ref) {
				continue
			}
			if match != nil {
				return nil, errors.NewUserErrorWithField("task", ref, "task id prefix is ambiguous",
					"Use more characters of the task id.")
			}
			match = t
		}
	}
	if match == nil {
		return nil, errors.NewUserErrorFrom(errors.ErrTaskNotFound, "task", ref)
	}
	return match, nil
}
