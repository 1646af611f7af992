package board

import (
	"fmt"
	"strings"
)

// Kind identifies which sibling list a draggable token belongs to.
type Kind string

const (
	KindProject Kind = "project"
	KindProduct Kind = "product"
	KindStage   Kind = "stage"
)

const tokenSep = "-"

// EncodeToken derives the draggable identity for an entity. Project and
// product tokens are prefixed with their kind tag; stage tokens are the raw
// stage id, since stages never share a drag context with other kinds.
func EncodeToken(kind Kind, id string) string {
	switch kind {
	case KindProject, KindProduct:
		return string(kind) + tokenSep + id
	default:
		return id
	}
}

// DecodeToken is the inverse of EncodeToken. A token without a known kind
// prefix decodes as a stage id. An empty token is a programmer error and is
// reported as such.
func DecodeToken(token string) (Kind, string, error) {
	if token == "" {
		return "", "", fmt.Errorf("empty drag token")
	}
	for _, kind := range []Kind{KindProject, KindProduct} {
		prefix := string(kind) + tokenSep
		if strings.HasPrefix(token, prefix) {
			id := strings.TrimPrefix(token, prefix)
			if id == "" {
				return "", "", fmt.Errorf("drag token %q has no entity id", token)
			}
			return kind, id, nil
		}
	}
	return KindStage, token, nil
}
