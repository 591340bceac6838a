package security

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTextSanitizer(t *testing.T) {
	s := NewTextSanitizer()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"plain text untouched", "Go developer & team lead", "Go developer & team lead"},
		{"script removed", "Hello<script>alert(1)</script> world", "Hello world"},
		{"tags stripped", "<b>Senior</b> <a href=\"x\" onclick=\"y\">role</a>", "Senior role"},
		{"whitespace trimmed", "  padded  ", "padded"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, s.Sanitize(tt.in))
		})
	}
}
