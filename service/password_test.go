package service_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stockfolio/service"
)

func TestCheckPasswordPolicy(t *testing.T) {
	tests := []struct {
		name     string
		password string
		problems int
	}{
		{"meets every rule", "Correct-Horse1", 0},
		{"too short", "Sh0rt!pw", 1},
		{"no digit", "NoDigitsHere!!", 1},
		{"no lower case", "ALLUPPER123!!", 1},
		{"no upper case", "alllower123!!", 1},
		{"no symbol", "NoSymbols12345", 1},
		{"empty", "", 5},
		{"non-ascii letters count as symbols", "Pässwörd12345", 0},
		{"exactly 72 bytes", "Aa1!" + strings.Repeat("x", 68), 0},
		{"longer than bcrypt accepts", "Aa1!" + strings.Repeat("x", 80), 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := service.CheckPasswordPolicy(tt.password)
			if tt.problems == 0 {
				assert.NoError(t, err)
				return
			}
			var policyErr *service.PasswordPolicyError
			require.True(t, errors.As(err, &policyErr), "expected *PasswordPolicyError, got %v", err)
			assert.Len(t, policyErr.Problems, tt.problems)
			assert.ErrorIs(t, err, service.ErrRegistrationFailed)
		})
	}
}
