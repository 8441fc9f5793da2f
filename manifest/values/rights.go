package values

import (
	"fmt"
	"sort"
)

// Right is a single directory access right.
type Right string

const (
	RightConnect     Right = "connect"
	RightEnumerate   Right = "enumerate"
	RightTraverse    Right = "traverse"
	RightReadBytes   Right = "read_bytes"
	RightWriteBytes  Right = "write_bytes"
	RightExecute     Right = "execute"
	RightGetAttrs    Right = "get_attributes"
	RightUpdateAttrs Right = "update_attributes"
	RightModifyDir   Right = "modify_directory"
	RightAdmin       Right = "admin"
)

var baseRights = map[Right]bool{
	RightConnect:     true,
	RightEnumerate:   true,
	RightTraverse:    true,
	RightReadBytes:   true,
	RightWriteBytes:  true,
	RightExecute:     true,
	RightGetAttrs:    true,
	RightUpdateAttrs: true,
	RightModifyDir:   true,
	RightAdmin:       true,
}

// Alias token expansions. Each alias expands to the base rights a
// reader, writer, or executor of a directory needs.
var rightAliases = map[string][]Right{
	"r*":  {RightConnect, RightEnumerate, RightTraverse, RightReadBytes, RightGetAttrs},
	"w*":  {RightConnect, RightEnumerate, RightTraverse, RightWriteBytes, RightModifyDir, RightUpdateAttrs},
	"x*":  {RightConnect, RightEnumerate, RightTraverse, RightExecute},
	"rw*": {RightConnect, RightEnumerate, RightTraverse, RightReadBytes, RightWriteBytes, RightModifyDir, RightGetAttrs, RightUpdateAttrs},
	"rx*": {RightConnect, RightEnumerate, RightTraverse, RightReadBytes, RightExecute, RightGetAttrs},
}

// ExpandRights expands a rights token list (base rights and aliases)
// into the full base-right set. A token contributing a right already
// contributed by an earlier token is an error, as is an unknown token.
func ExpandRights(tokens []string) ([]Right, error) {
	seen := make(map[Right]bool)
	for _, token := range tokens {
		var expansion []Right
		if alias, ok := rightAliases[token]; ok {
			expansion = alias
		} else if baseRights[Right(token)] {
			expansion = []Right{Right(token)}
		} else {
			return nil, fmt.Errorf("invalid right %q", token)
		}
		for _, right := range expansion {
			if seen[right] {
				return nil, fmt.Errorf("right %q is duplicated by token %q", right, token)
			}
			seen[right] = true
		}
	}
	expanded := make([]Right, 0, len(seen))
	for right := range seen {
		expanded = append(expanded, right)
	}
	sort.Slice(expanded, func(i, j int) bool { return expanded[i] < expanded[j] })
	return expanded, nil
}
