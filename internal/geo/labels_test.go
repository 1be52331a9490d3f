package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveLabel(t *testing.T) {
	tests := []struct {
		name        string
		planName    string
		description string
		want        string
	}{
		{
			name:     "region suffix",
			planName: "esim_10GB_30D_EUR",
			want:     "Europe",
		},
		{
			name:     "region suffix with version",
			planName: "esim_10GB_30D_EUR_V2",
			want:     "Europe",
		},
		{
			name:     "five letter region code",
			planName: "esim_5GB_15D_LATAM",
			want:     "Latin America",
		},
		{
			name:     "country suffix",
			planName: "esim_1GB_7D_ES",
			want:     "Spain",
		},
		{
			name:     "country suffix with version",
			planName: "esim_1GB_7D_ES_V3",
			want:     "Spain",
		},
		{
			// "NAM" ends in "AM" (Armenia); the region table must win.
			name:     "region beats ISO2 reading of the same suffix",
			planName: "esim_20GB_30D_NAM",
			want:     "North America",
		},
		{
			name:        "description token fallback",
			planName:    "monthly-data-pack",
			description: "Data bundle valid in FR only",
			want:        "France",
		},
		{
			name:        "description token must be isolated",
			planName:    "monthly-data-pack",
			description: "PREMIUM bundle", // no isolated 2-letter token
			want:        "",
		},
		{
			name:     "unrecognized trailing code resolves empty",
			planName: "esim_1GB_7D_QQ",
			want:     "",
		},
		{
			name:     "no code at all",
			planName: "basic-plan",
			want:     "",
		},
		{
			name: "empty inputs",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ResolveLabel(tt.planName, tt.description))
		})
	}
}

// Every region code must resolve through a plan name ending in it, and take
// precedence over any ISO2 reading of the same suffix.
func TestResolveLabelAllRegionCodes(t *testing.T) {
	for code, label := range Regions {
		assert.Equal(t, label, ResolveLabel("esim_5GB_30D_"+code, ""), "code %s", code)
		assert.Equal(t, label, ResolveLabel("esim_5GB_30D_"+code+"_V2", ""), "code %s versioned", code)
	}
}

func TestResolveLabelAllCountryCodes(t *testing.T) {
	for code, name := range Countries {
		assert.Equal(t, name, ResolveLabel("esim_1GB_7D_"+code, ""), "code %s", code)
	}
}
