package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDiffLanguages(t *testing.T) {
	tests := []struct {
		name        string
		res         resource
		wantUnion   []string
		wantMissing []missingTranslation
	}{
		{
			name: "key missing in second language",
			res: resource{Namespace: "common", Languages: []language{
				{"en", keyTree{{"welcome", "Welcome"}, {"counter", keyTree{{"button", "count"}}}}},
				{"ru", keyTree{{"welcome", "Привет"}}},
			}},
			wantUnion: []string{"welcome", "counter.button"},
			wantMissing: []missingTranslation{
				{Namespace: "common", Key: "counter.button", Languages: []string{"ru"}},
			},
		},
		{
			name: "keys present everywhere",
			res: resource{Namespace: "roles", Languages: []language{
				{"en", keyTree{{"admin", "Admin"}}},
				{"ru", keyTree{{"admin", "Админ"}}},
			}},
			wantUnion: []string{"admin"},
		},
		{
			name: "union follows first-seen order across languages",
			res: resource{Namespace: "n", Languages: []language{
				{"en", keyTree{{"a", "1"}}},
				{"de", keyTree{{"b", "2"}, {"a", "1"}}},
				{"fr", keyTree{{"c", "3"}}},
			}},
			wantUnion: []string{"a", "b", "c"},
			wantMissing: []missingTranslation{
				{Namespace: "n", Key: "a", Languages: []string{"fr"}},
				{Namespace: "n", Key: "b", Languages: []string{"en", "fr"}},
				{Namespace: "n", Key: "c", Languages: []string{"en", "de"}},
			},
		},
		{
			name: "non-string leaf counts as missing",
			res: resource{Namespace: "n", Languages: []language{
				{"en", keyTree{{"count", "3"}}},
				{"ru", keyTree{{"count", nil}}},
			}},
			wantUnion: []string{"count"},
			wantMissing: []missingTranslation{
				{Namespace: "n", Key: "count", Languages: []string{"ru"}},
			},
		},
		{
			name: "single language never misses keys",
			res: resource{Namespace: "n", Languages: []language{
				{"en", keyTree{{"a", "1"}}},
			}},
			wantUnion: []string{"a"},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			union, missing := diffLanguages(tc.res, ".")
			assert.Equal(t, tc.wantUnion, union)
			assert.Equal(t, tc.wantMissing, missing)
		})
	}
}
