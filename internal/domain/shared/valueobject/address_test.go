package valueobject

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDeliveryAddress(t *testing.T) {
	t.Run("normalizes state and zip code", func(t *testing.T) {
		addr, err := NewDeliveryAddress(" Rua Augusta ", "100", "Consolação", "São Paulo", "sp", "01305-000")
		require.NoError(t, err)
		assert.Equal(t, "Rua Augusta", addr.Street())
		assert.Equal(t, "SP", addr.State())
		assert.Equal(t, "01305000", addr.ZipCode())
		assert.Equal(t, "01305-000", addr.FormattedZipCode())
	})

	tests := []struct {
		name    string
		street  string
		number  string
		hood    string
		city    string
		state   string
		zip     string
		wantErr string
	}{
		{"missing street", "", "1", "Centro", "Santos", "SP", "11010000", "street"},
		{"missing number", "Rua A", "", "Centro", "Santos", "SP", "11010000", "number"},
		{"missing neighborhood", "Rua A", "1", "", "Santos", "SP", "11010000", "neighborhood"},
		{"missing city", "Rua A", "1", "Centro", "", "SP", "11010000", "city"},
		{"missing state", "Rua A", "1", "Centro", "Santos", "", "11010000", "state"},
		{"unknown state", "Rua A", "1", "Centro", "Santos", "XX", "11010000", "invalid state"},
		{"short zip", "Rua A", "1", "Centro", "Santos", "SP", "1101-000", "zip code"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewDeliveryAddress(tt.street, tt.number, tt.hood, tt.city, tt.state, tt.zip)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestDeliveryAddress_FullAddress(t *testing.T) {
	t.Run("all fields", func(t *testing.T) {
		addr := MustNewDeliveryAddress("Rua Augusta", "100", "Consolação", "São Paulo", "SP", "01305000",
			WithComplement("Apto 12"), WithReference("Próximo ao metrô"))
		assert.Equal(t,
			"Rua Augusta, 100 - Apto 12, Consolação, São Paulo - SP, CEP: 01305-000, Ref: Próximo ao metrô",
			addr.FullAddress())
	})

	t.Run("optional fields omitted", func(t *testing.T) {
		addr := MustNewDeliveryAddress("Rua Augusta", "100", "Consolação", "São Paulo", "SP", "01305000")
		assert.Equal(t, "Rua Augusta, 100, Consolação, São Paulo - SP, CEP: 01305-000", addr.FullAddress())
		assert.NotContains(t, addr.FullAddress(), "Ref:")
	})

	t.Run("empty address", func(t *testing.T) {
		assert.Equal(t, "", DeliveryAddress{}.FullAddress())
		assert.True(t, DeliveryAddress{}.IsEmpty())
	})
}

func TestIsValidStateCode(t *testing.T) {
	assert.Len(t, BrazilianStates, 27)
	assert.True(t, IsValidStateCode("DF"))
	assert.True(t, IsValidStateCode("rj"))
	assert.False(t, IsValidStateCode("ZZ"))
}

func TestFormatZipCode(t *testing.T) {
	assert.Equal(t, "01305-000", FormatZipCode("01305000"))
	assert.Equal(t, "123", FormatZipCode("123"))
}

func TestDeliveryAddress_JSON(t *testing.T) {
	addr := MustNewDeliveryAddress("Rua Augusta", "100", "Consolação", "São Paulo", "SP", "01305000",
		WithComplement("Apto 12"))

	data, err := json.Marshal(addr)
	require.NoError(t, err)

	var decoded DeliveryAddress
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.True(t, decoded.Equals(addr))

	t.Run("invalid payload is rejected", func(t *testing.T) {
		var d DeliveryAddress
		err := json.Unmarshal([]byte(`{"street":"Rua A","number":"1","neighborhood":"B","city":"C","state":"QQ","zipCode":"11010000"}`), &d)
		assert.Error(t, err)
	})
}
