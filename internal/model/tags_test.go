package model

import (
	"reflect"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"xivcrit.app/backend/internal/model/types"
)

// tagKeys splits a raw struct tag into its keys.
func tagKeys(tag string) []string {
	var keys []string
	for tag != "" {
		tag = strings.TrimLeft(tag, " ")
		i := strings.Index(tag, `:"`)
		if i < 0 {
			break
		}
		keys = append(keys, tag[:i])
		rest := tag[i+2:]
		j := strings.Index(rest, `"`)
		if j < 0 {
			break
		}
		tag = rest[j+1:]
	}
	return keys
}

// Model structs carry only tags something actually reads. Tags of tooling
// that has since been removed should go with it.
func TestModelTagKeys(t *testing.T) {
	read := map[string]bool{"bun": true, "json": true, "validate": true}
	structs := []any{
		Encounter{}, PlayerAnalysis{}, PartyAnalysis{},
		AnalysisError{}, PartyAnalysisError{}, AccessRecord{},
		types.JobBuildStats{}, types.PlayerAnalysisRequest{}, types.PartyAnalysisRequest{},
		types.AnalysisTask{}, types.PartyAnalysisTask{},
	}

	for _, s := range structs {
		rt := reflect.TypeOf(s)
		for i := 0; i < rt.NumField(); i++ {
			f := rt.Field(i)
			for _, key := range tagKeys(string(f.Tag)) {
				assert.Truef(t, read[key], "%s.%s carries unread tag key %q", rt.Name(), f.Name, key)
			}
		}
	}
}
