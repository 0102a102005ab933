package functions

import (
	"fmt"

	"github.com/google/uuid"
)

// defaultNamespace is the implementation-chosen default namespace spec
// §4.7 allows when uuid5/uuid3's namespace argument is omitted. uuid.Nil
// is the simplest deterministic choice and matches google/uuid's own
// fallback convention for namespace-less hashing.
var defaultNamespace = uuid.Nil

// Uuid5 implements uuid5(input [,namespace]) (spec §4.7/S7): RFC 4122 v5.
func Uuid5(input, namespace string) (string, error) {
	ns, err := resolveNamespace(namespace)
	if err != nil {
		return "", err
	}
	return uuid.NewSHA1(ns, []byte(input)).String(), nil
}

// Uuid3 is uuid5's MD5-based sibling (RFC 4122 v3), supplementing the
// spec's table with the other deterministic UUID version google/uuid
// exposes (SPEC_FULL.md DOMAIN STACK).
func Uuid3(input, namespace string) (string, error) {
	ns, err := resolveNamespace(namespace)
	if err != nil {
		return "", err
	}
	return uuid.NewMD5(ns, []byte(input)).String(), nil
}

func resolveNamespace(namespace string) (uuid.UUID, error) {
	if namespace == "" {
		return defaultNamespace, nil
	}
	ns, err := uuid.Parse(namespace)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid uuid namespace %q: %w", namespace, err)
	}
	return ns, nil
}
