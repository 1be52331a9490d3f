package plan

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func raw(name, desc, data, validity, price string) Raw {
	return Raw{
		Name:        flex(name),
		Description: flex(desc),
		Data:        flex(data),
		Validity:    flex(validity),
		Price:       flex(price),
	}
}

func TestIsUnlimitedConventions(t *testing.T) {
	tests := []struct {
		name string
		raw  Raw
		want bool
	}{
		{"description mentions unlimited", raw("p", "Unlimited data for Spain", "50", "30", "40"), true},
		{"description case insensitive", raw("p", "UNLIMITED surf pack", "50", "30", "40"), true},
		{"sku contains unl", Raw{SKU: flex("esim_UNL_30D_ES"), Data: flex("10")}, true},
		{"data literal unlimited", raw("p", "", "Unlimited", "30", "40"), true},
		{"data literal unl", raw("p", "", "unl", "30", "40"), true},
		{"data zero numeral", raw("p", "", "0", "30", "40"), true},
		{"data zero number", Raw{Data: flex("0.0")}, true},
		{"finite plan", raw("p", "5GB for Spain", "5", "30", "19.9"), false},
		{"empty data is not unlimited", raw("p", "", "", "30", "40"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plans := Normalize([]Raw{tt.raw})
			require.Len(t, plans, 1)
			assert.Equal(t, tt.want, plans[0].IsUnlimited)
		})
	}
}

func TestNormalizeOrdering(t *testing.T) {
	raws := []Raw{
		raw("unl", "Unlimited data", "0", "7", "5.00"), // cheap but unlimited: still last
		raw("big", "", "20", "30", "45.00"),
		raw("small", "", "1", "7", "4.50"),
		raw("mid", "", "5", "30", "19.90"),
	}

	plans := Normalize(raws)
	require.Len(t, plans, 4)

	var names []string
	for _, p := range plans {
		names = append(names, p.Name)
	}
	assert.Equal(t, []string{"small", "mid", "big", "unl"}, names)
}

func TestNormalizeTieBreaking(t *testing.T) {
	raws := []Raw{
		raw("5gb-60d", "", "5", "60", "30.00"),
		raw("5gb-30d-pricey", "", "5", "30", "25.00"),
		raw("5gb-30d", "", "5", "30", "19.90"),
	}

	plans := Normalize(raws)
	require.Len(t, plans, 3)
	assert.Equal(t, "5gb-30d", plans[0].Name)
	assert.Equal(t, "5gb-30d-pricey", plans[1].Name)
	assert.Equal(t, "5gb-60d", plans[2].Name)
}

func TestNormalizeUnlimitedTiesBrokenByDays(t *testing.T) {
	raws := []Raw{
		raw("unl-30", "Unlimited", "0", "30", "50"),
		raw("unl-7", "Unlimited", "0", "7", "20"),
	}

	plans := Normalize(raws)
	require.Len(t, plans, 2)
	assert.Equal(t, "unl-7", plans[0].Name)
}

func TestRawDecodingToleratesNumbers(t *testing.T) {
	payload := `[{"name":"esim_5GB_30D_ES","data":5,"validity":30,"price":19.9},
	             {"name":"esim_UNL_7D_ES","data":"Unlimited","validity":"7","price":"20.00"}]`

	var raws []Raw
	require.NoError(t, json.Unmarshal([]byte(payload), &raws))

	plans := Normalize(raws)
	require.Len(t, plans, 2)
	assert.Equal(t, 5.0, plans[0].GB)
	assert.Equal(t, 30, plans[0].Days)
	assert.Equal(t, 19.9, plans[0].Price)
	assert.True(t, plans[1].IsUnlimited)
}

func TestFormat(t *testing.T) {
	finite := Plan{GB: 5, Days: 30, Price: 19.9}
	assert.Equal(t, "5 GB / 30 days — $19.90", Format(finite))

	fractional := Plan{GB: 0.5, Days: 7, Price: 4.5}
	assert.Equal(t, "0.5 GB / 7 days — $4.50", Format(fractional))

	unl := Plan{IsUnlimited: true, Days: 30, Price: 49}
	assert.Equal(t, "Unlimited data / 30 days — $49.00", Format(unl))
}

func TestSummary(t *testing.T) {
	raws := []Raw{
		raw("a", "", "1", "7", "4.50"),
		raw("b", "", "5", "30", "19.90"),
		raw("c", "", "Unlimited", "30", "49.00"),
		raw("d", "", "10", "30", "29.00"),
	}
	plans := Normalize(raws)

	top3 := Summary(plans, 3)
	assert.Equal(t, 3, len(strings.Split(top3, "; ")))
	assert.Equal(t, "1 GB / 7 days — $4.50; 5 GB / 30 days — $19.90; 10 GB / 30 days — $29.00", top3)

	// k beyond the list length takes everything
	all := Summary(plans, 20)
	assert.Equal(t, 4, len(strings.Split(all, "; ")))
	assert.True(t, strings.HasSuffix(all, "Unlimited data / 30 days — $49.00"))
}

func TestClampLimit(t *testing.T) {
	assert.Equal(t, DefaultSummaryLen, ClampLimit(0))
	assert.Equal(t, DefaultSummaryLen, ClampLimit(-3))
	assert.Equal(t, 3, ClampLimit(3))
	assert.Equal(t, MaxSummaryLen, ClampLimit(500))
}
