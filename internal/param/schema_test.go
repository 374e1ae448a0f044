package param

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type trayHolder struct {
	Spacing   float64
	MaxTrays  int
	DutyLimit *float64
	Passes    *int
	Weights   []float64
}

func newTraySchema() *Schema[trayHolder] {
	return NewSchema(
		Double("Spacing", "Tray spacing (m)", func(h *trayHolder) *float64 { return &h.Spacing }, WithDefault(0.6)),
		Int("MaxTrays", "Maximum number of trays", func(h *trayHolder) *int { return &h.MaxTrays }, WithDefault(200)),
		OptionalDouble("DutyLimit", "Upper bound on reboiler duty (MW)", func(h *trayHolder) **float64 { return &h.DutyLimit }),
		OptionalInt("Passes", "Number of liquid passes", func(h *trayHolder) **int { return &h.Passes }, WithDefault(2)),
	)
}

func TestSchema_Descriptors(t *testing.T) {
	s := newTraySchema()

	expected := []Descriptor{
		{Key: "Spacing", Label: "Tray spacing (m) (default 0.6)", Default: 0.6, Nullable: false, Kind: KindDouble},
		{Key: "MaxTrays", Label: "Maximum number of trays (default 200)", Default: 200, Nullable: false, Kind: KindInt},
		{Key: "DutyLimit", Label: "Upper bound on reboiler duty (MW)", Default: nil, Nullable: true, Kind: KindOptionalDouble},
		{Key: "Passes", Label: "Number of liquid passes (default 2)", Default: 2, Nullable: true, Kind: KindOptionalInt},
	}

	if diff := cmp.Diff(expected, s.Descriptors()); diff != "" {
		t.Errorf("Descriptors() mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, []string{"Spacing", "MaxTrays", "DutyLimit", "Passes"}, s.Keys())
	assert.Equal(t, "trayHolder", s.TypeName())
}

func TestSchema_DescriptorsArePure(t *testing.T) {
	s := newTraySchema()

	first := s.Descriptors()
	second := s.Descriptors()
	require.Equal(t, len(first), len(second))
	for i := range first {
		assert.True(t, first[i] == second[i], "descriptor %d differs between extractions", i)
	}

	// Callers own the returned slice.
	first[0].Label = "changed"
	assert.Equal(t, "Tray spacing (m) (default 0.6)", s.Descriptors()[0].Label)

	// A second schema over the same declarations extracts the same values.
	assert.Equal(t, first[1:], newTraySchema().Descriptors()[1:])
}

func TestSchema_DefaultLabelFormatting(t *testing.T) {
	type costs struct {
		Scost float64
		OpHrs float64
	}
	s := NewSchema(
		Double("Scost", "Steam cost (USD/MJ)", func(h *costs) *float64 { return &h.Scost }, WithDefault(5.09*1e-3)),
		Double("OpHrs", "Hours of operation in a year", func(h *costs) *float64 { return &h.OpHrs }, WithDefault(8000.0)),
	)

	d, ok := s.Lookup("Scost")
	require.True(t, ok)
	assert.Equal(t, "Steam cost (USD/MJ) (default 0.00509)", d.Label)

	d, ok = s.Lookup("OpHrs")
	require.True(t, ok)
	assert.Equal(t, "Hours of operation in a year (default 8000)", d.Label)

	_, ok = s.Lookup("Missing")
	assert.False(t, ok)
}

func TestNewSchema_RegistrationErrorsPanic(t *testing.T) {
	testCases := []struct {
		name  string
		build func()
	}{
		{
			name: "key names no field",
			build: func() {
				NewSchema(Double("Spaceing", "typo", func(h *trayHolder) *float64 { return &h.Spacing }))
			},
		},
		{
			name: "key names unexported field",
			build: func() {
				type holder struct{ hidden float64 }
				NewSchema(Double("hidden", "", func(h *holder) *float64 { return &h.hidden }))
			},
		},
		{
			name: "kind does not match field type",
			build: func() {
				type holder struct{ MaxTrays float64 }
				NewSchema(Int("MaxTrays", "", func(h *holder) *int { return new(int) }))
			},
		},
		{
			name: "optional kind on required field",
			build: func() {
				NewSchema(OptionalDouble("Spacing", "", func(h *trayHolder) **float64 { return &h.DutyLimit }))
			},
		},
		{
			name: "accessor addresses another field",
			build: func() {
				type holder struct{ A, B float64 }
				NewSchema(Double("A", "", func(h *holder) *float64 { return &h.B }))
			},
		},
		{
			name: "accessor returns nil",
			build: func() {
				NewSchema(Double("Spacing", "", func(h *trayHolder) *float64 { return nil }))
			},
		},
		{
			name: "duplicate key",
			build: func() {
				NewSchema(
					Double("Spacing", "", func(h *trayHolder) *float64 { return &h.Spacing }),
					Double("Spacing", "", func(h *trayHolder) *float64 { return &h.Spacing }),
				)
			},
		},
		{
			name: "empty key",
			build: func() {
				NewSchema(Double("", "", func(h *trayHolder) *float64 { return &h.Spacing }))
			},
		},
		{
			name: "holder is not a struct",
			build: func() {
				NewSchema[float64]()
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			require.Panics(t, tc.build)
		})
	}
}

func TestDescriptor_StringAndRequired(t *testing.T) {
	d := Required("FeedQuality")
	assert.Equal(t, "FeedQuality", d.String())
	assert.Equal(t, Descriptor{Key: "FeedQuality", Label: "FeedQuality"}, d)
	assert.False(t, d.HasDefault())
	assert.False(t, d.Nullable)
}

func TestDescriptor_JSON(t *testing.T) {
	d, ok := newTraySchema().Lookup("Passes")
	require.True(t, ok)

	b, err := json.Marshal(d)
	require.NoError(t, err)
	assert.JSONEq(t, `{"key":"Passes","label":"Number of liquid passes (default 2)","default":2,"nullable":true,"kind":"optional_int"}`, string(b))
}

func TestKind_String(t *testing.T) {
	assert.Equal(t, "double", KindDouble.String())
	assert.Equal(t, "optional_double", KindOptionalDouble.String())
	assert.Equal(t, "int", KindInt.String())
	assert.Equal(t, "optional_int", KindOptionalInt.String())
	assert.Equal(t, "Kind(9)", Kind(9).String())
}
