package product

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"
)

func TestParseSort(t *testing.T) {
	tests := []struct {
		name string
		sort string
		want bson.D
	}{
		{
			name: "default newest first",
			sort: "-createdAt",
			want: bson.D{{Key: "created_at", Value: -1}},
		},
		{
			name: "ascending price",
			sort: "price",
			want: bson.D{{Key: "price", Value: 1}},
		},
		{
			name: "descending price",
			sort: "-price",
			want: bson.D{{Key: "price", Value: -1}},
		},
		{
			name: "name ascending",
			sort: "name",
			want: bson.D{{Key: "name", Value: 1}},
		},
		{
			name: "unknown key falls back to newest first",
			sort: "__proto__",
			want: bson.D{{Key: "created_at", Value: -1}},
		},
		{
			name: "empty key falls back to newest first",
			sort: "",
			want: bson.D{{Key: "created_at", Value: -1}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, parseSort(tt.sort))
		})
	}
}
