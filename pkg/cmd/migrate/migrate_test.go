package migrate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPrepareURLForDB(t *testing.T) {
	tests := []struct {
		url  string
		want string
	}{
		{"postgresql://u:p@host:5432/frt", "postgresql://u:p@host:5432/frt?sslmode=disable"},
		{"postgresql://u:p@host/frt?x=1", "postgresql://u:p@host/frt?x=1&sslmode=disable"},
		{"postgresql://u:p@host/frt?sslmode=require", "postgresql://u:p@host/frt?sslmode=require"},
	}
	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			assert.Equal(t, tt.want, prepareURLForDB(tt.url))
		})
	}
}
