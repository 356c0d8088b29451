package command

import "slices"

// edge is one allowed status change.
type edge struct {
	from []string
	to   string
}

// machine maps an action to the statuses it may start from and the status
// it leads to.
type machine map[string]edge

func (m machine) next(action, current string) (string, error) {
	e, ok := m[action]
	if !ok {
		return "", invalidf("unknown action %q", action)
	}
	if !slices.Contains(e.from, current) {
		return "", transitionf("cannot %s from %s", action, current)
	}
	return e.to, nil
}

// allows reports whether action is valid from current.
func (m machine) allows(action, current string) bool {
	_, err := m.next(action, current)
	return err == nil
}
