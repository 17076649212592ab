package models

import (
	"testing"

	"github.com/mmdatafocus/insights_backend/utils"
)

func TestMarkReadOutcome(t *testing.T) {
	cases := []struct {
		name         string
		rowsAffected int64
		alertExists  bool
		want         error
	}{
		{"freshly flipped", 1, true, nil},
		{"already read re-ack", 0, true, nil},
		{"missing alert", 0, false, utils.ErrorRecordNotFound},
	}
	for _, tc := range cases {
		if got := markReadOutcome(tc.rowsAffected, tc.alertExists); got != tc.want {
			t.Fatalf("%s: expected %v, got %v", tc.name, tc.want, got)
		}
	}
}
