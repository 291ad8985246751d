package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCallerCanAccess(t *testing.T) {
	tests := []struct {
		name    string
		caller  Caller
		ownerID uint64
		want    bool
	}{
		{
			name:    "owner can access own resource",
			caller:  Caller{UserID: 1},
			ownerID: 1,
			want:    true,
		},
		{
			name:    "non-owner cannot access foreign resource",
			caller:  Caller{UserID: 1},
			ownerID: 2,
			want:    false,
		},
		{
			name:    "admin can access foreign resource",
			caller:  Caller{UserID: 1, IsAdmin: true},
			ownerID: 2,
			want:    true,
		},
		{
			name:    "admin can access own resource",
			caller:  Caller{UserID: 1, IsAdmin: true},
			ownerID: 1,
			want:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.caller.CanAccess(tt.ownerID))
		})
	}
}
