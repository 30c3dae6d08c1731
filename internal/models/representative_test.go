package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func strptr(s string) *string { return &s }

func TestFullAddress(t *testing.T) {
	tests := []struct {
		name string
		rep  Representative
		want string
	}{
		{
			name: "all parts known",
			rep: Representative{
				Street: strptr("123 Main St"),
				City:   strptr("Austin"),
				State:  strptr("TX"),
				Zip:    strptr("73301"),
			},
			want: "123 Main St, Austin, TX, 73301",
		},
		{
			name: "partial address",
			rep: Representative{
				City:  strptr("Austin"),
				State: strptr("TX"),
			},
			want: "Austin, TX",
		},
		{
			name: "no address",
			rep:  Representative{Name: "Jane Smith"},
			want: "Address not available",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.rep.FullAddress())
		})
	}
}
