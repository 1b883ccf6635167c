package waypoint_test

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xy-planning-network/waypoint"
)

func TestMask(t *testing.T) {
	for _, tc := range []struct {
		name string
		vals url.Values
		key  string
		want url.Values
	}{
		{"zero", url.Values{}, "", url.Values{}},
		{
			"mismatch",
			url.Values{"password": []string{"hunter2"}},
			"passwrod",
			url.Values{"password": []string{"hunter2"}},
		},
		{
			"match",
			url.Values{"password": []string{"hunter2"}},
			"password",
			url.Values{"password": []string{waypoint.LogMaskVal}},
		},
		{
			"squash-multiple",
			url.Values{"password": []string{"hunter2", "hunter3"}},
			"password",
			url.Values{"password": []string{waypoint.LogMaskVal}},
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			waypoint.Mask(tc.vals, tc.key)
			require.Equal(t, tc.want, tc.vals)
		})
	}
}

func TestMaskMap(t *testing.T) {
	// Arrange
	m := map[string]any{
		"email":    "dev@example.com",
		"password": "hunter2",
		"profile": map[string]any{
			"password": "hunter3",
			"name":     "dev",
		},
	}

	// Act
	waypoint.MaskMap(m, "password")

	// Assert
	require.Equal(t, map[string]any{
		"email":    "dev@example.com",
		"password": waypoint.LogMaskVal,
		"profile": map[string]any{
			"password": waypoint.LogMaskVal,
			"name":     "dev",
		},
	}, m)
}
