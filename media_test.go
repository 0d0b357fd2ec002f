package githubbridge

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMergeAcceptHeaders(t *testing.T) {
	tests := []struct {
		name   string
		values []string
		want   string
	}{
		{
			name:   "empty input yields the v3 default",
			values: nil,
			want:   MediaTypeV3,
		},
		{
			name:   "preview type stays first",
			values: []string{MediaTypeReactionsPreview},
			want:   MediaTypeReactionsPreview + ", " + MediaTypeV3,
		},
		{
			name:   "default is not duplicated",
			values: []string{MediaTypeV3},
			want:   MediaTypeV3,
		},
		{
			name:   "comma separated value is split and deduplicated",
			values: []string{MediaTypeTopicsPreview + ", " + MediaTypeTopicsPreview},
			want:   MediaTypeTopicsPreview + ", " + MediaTypeV3,
		},
		{
			name:   "blank entries are dropped",
			values: []string{"", "  "},
			want:   MediaTypeV3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, mergeAcceptHeaders(tt.values...))
		})
	}
}
