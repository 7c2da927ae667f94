// Copyright (C) 2026 Eric Rodriguez. All rights reserved.
// Use of this source code is governed by the MIT
// license that can be found in the LICENSE file.

package main

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/erodriguez000/tinystore/pkg/datastore"
)

// formatObject renders a record as "{k1: v1, k2: v2}" with the id first
// and the remaining keys sorted, so output is stable across runs.
func formatObject(obj datastore.Object) string {
	keys := make([]string, 0, len(obj))
	for k := range obj {
		if k == "id" {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)
	if _, ok := obj["id"]; ok {
		keys = append([]string{"id"}, keys...)
	}

	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = fmt.Sprintf("%s: %v", k, obj[k])
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

// formatValue renders a single column value for tab-separated output,
// truncating anything unreasonably wide.
func formatValue(v any) string {
	s := fmt.Sprintf("%v", v)
	if len(s) > 80 {
		s = s[:80] + "..."
	}
	return s
}

// printJSON writes v to stdout as indented JSON.
func printJSON(v any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}
