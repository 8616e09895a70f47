package backup

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/darzi/pkg/types"
)

func TestWriteCSV(t *testing.T) {
	store := setupStore(t)
	_, err := store.Insert(&types.Waskat{Name: "Karim", Qad: "38", RegistrationDate: "2024-02-02"})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, store, types.KindWaskat))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "id,name,phoneNumber,qad,shana,baghal,kamar,soreen,astin,yakhan,yakhanValue,farmaish,registrationDate", lines[0])
	assert.Equal(t, "1,Karim,,38,,,,,,,,,2024-02-02", lines[1])
}

func TestWriteCSVEmptyKindHasHeader(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, setupStore(t), types.KindCustomer))

	header := strings.TrimSpace(buf.String())
	assert.True(t, strings.HasPrefix(header, "id,name,phoneNumber,qad,"))
	assert.NotContains(t, header, "\n")
}

func TestWriteCSVInvalidKind(t *testing.T) {
	var buf bytes.Buffer
	err := WriteCSV(&buf, setupStore(t), types.Kind("admin"))
	assert.ErrorIs(t, err, types.ErrInvalidKind)
}
