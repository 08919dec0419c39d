package audit

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// sampleExport mixes plain, wrapped and broken dates with numeric and
// string ages, the way real directory exports arrive
const sampleExport = `[
  {"DisplayName":"Ana Ruiz","EmailAddress":"ana@x.com","Estado":"Bloqueado","DiasDesdeCambioClave":120,"UltimaFechaCambio":"2024-01-01"},
  {"DisplayName":"Leo Gomez","EmailAddress":"leo@x.com","Estado":"Activo","DiasDesdeCambioClave":10,"UltimaFechaCambio":"2025-06-01"},
  {"DisplayName":"Juan Pérez","EmailAddress":"jperez@x.com","Estado":"Deshabilitado","DiasDesdeCambioClave":"200","UltimaFechaCambio":{"value":"/Date(1704067200000)/","DateTime":"Monday, January 1, 2024 12:00:00 AM"}},
  {"DisplayName":"Mariana Soto","EmailAddress":"juan.p@example.com","Estado":"Activo","DiasDesdeCambioClave":95,"UltimaFechaCambio":"garbage"},
  {"DisplayName":"Pedro Diaz","EmailAddress":null,"Estado":"Activo","DiasDesdeCambioClave":"n/a","UltimaFechaCambio":null},
  {"DisplayName":"Susana Vega","EmailAddress":"svega@x.com","Estado":"Suspendido","DiasDesdeCambioClave":90,"UltimaFechaCambio":"2025-07-15T08:30:00"}
]`

func mustNormalize(t *testing.T, input string) *Dataset {
	t.Helper()
	records, err := Decode(strings.NewReader(input))
	require.NoError(t, err)
	ds, err := Normalize(records)
	require.NoError(t, err)
	return ds
}
