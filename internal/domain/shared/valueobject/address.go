package valueobject

import (
	"encoding/json"
	"fmt"
	"strings"
)

// BrazilianState is a federative unit (UF) of Brazil
type BrazilianState struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// BrazilianStates lists the 27 federative units in form display order
var BrazilianStates = []BrazilianState{
	{Code: "AC", Name: "Acre"},
	{Code: "AL", Name: "Alagoas"},
	{Code: "AP", Name: "Amapá"},
	{Code: "AM", Name: "Amazonas"},
	{Code: "BA", Name: "Bahia"},
	{Code: "CE", Name: "Ceará"},
	{Code: "DF", Name: "Distrito Federal"},
	{Code: "ES", Name: "Espírito Santo"},
	{Code: "GO", Name: "Goiás"},
	{Code: "MA", Name: "Maranhão"},
	{Code: "MT", Name: "Mato Grosso"},
	{Code: "MS", Name: "Mato Grosso do Sul"},
	{Code: "MG", Name: "Minas Gerais"},
	{Code: "PA", Name: "Pará"},
	{Code: "PB", Name: "Paraíba"},
	{Code: "PR", Name: "Paraná"},
	{Code: "PE", Name: "Pernambuco"},
	{Code: "PI", Name: "Piauí"},
	{Code: "RJ", Name: "Rio de Janeiro"},
	{Code: "RN", Name: "Rio Grande do Norte"},
	{Code: "RS", Name: "Rio Grande do Sul"},
	{Code: "RO", Name: "Rondônia"},
	{Code: "RR", Name: "Roraima"},
	{Code: "SC", Name: "Santa Catarina"},
	{Code: "SP", Name: "São Paulo"},
	{Code: "SE", Name: "Sergipe"},
	{Code: "TO", Name: "Tocantins"},
}

// IsValidStateCode reports whether code is one of the 27 UF codes (case-insensitive)
func IsValidStateCode(code string) bool {
	code = strings.ToUpper(strings.TrimSpace(code))
	for _, s := range BrazilianStates {
		if s.Code == code {
			return true
		}
	}
	return false
}

// DeliveryAddress is a value object representing a Brazilian delivery address.
// It is immutable - use the With* methods to derive modified copies.
type DeliveryAddress struct {
	street       string
	number       string
	complement   string
	neighborhood string
	city         string
	state        string
	zipCode      string
	reference    string
}

// AddressOption is a functional option for configuring DeliveryAddress
type AddressOption func(*DeliveryAddress)

// WithComplement sets the optional complement (apartment, block, ...)
func WithComplement(complement string) AddressOption {
	return func(a *DeliveryAddress) {
		a.complement = strings.TrimSpace(complement)
	}
}

// WithReference sets the optional delivery reference point
func WithReference(reference string) AddressOption {
	return func(a *DeliveryAddress) {
		a.reference = strings.TrimSpace(reference)
	}
}

// NewDeliveryAddress creates a new DeliveryAddress. Street, number,
// neighborhood, city, state and zip code are required. The zip code is
// stored as its 8 digits; the state is stored upper-cased.
func NewDeliveryAddress(street, number, neighborhood, city, state, zipCode string, opts ...AddressOption) (DeliveryAddress, error) {
	addr := DeliveryAddress{
		street:       strings.TrimSpace(street),
		number:       strings.TrimSpace(number),
		neighborhood: strings.TrimSpace(neighborhood),
		city:         strings.TrimSpace(city),
		state:        strings.ToUpper(strings.TrimSpace(state)),
		zipCode:      OnlyDigits(zipCode),
	}

	for _, opt := range opts {
		opt(&addr)
	}

	if err := addr.validate(); err != nil {
		return DeliveryAddress{}, err
	}
	return addr, nil
}

// MustNewDeliveryAddress creates a new DeliveryAddress, panics on error
func MustNewDeliveryAddress(street, number, neighborhood, city, state, zipCode string, opts ...AddressOption) DeliveryAddress {
	addr, err := NewDeliveryAddress(street, number, neighborhood, city, state, zipCode, opts...)
	if err != nil {
		panic(err)
	}
	return addr
}

func (a DeliveryAddress) validate() error {
	if a.street == "" {
		return fmt.Errorf("street cannot be empty")
	}
	if len(a.street) > 200 {
		return fmt.Errorf("street cannot exceed 200 characters")
	}
	if a.number == "" {
		return fmt.Errorf("number cannot be empty")
	}
	if a.neighborhood == "" {
		return fmt.Errorf("neighborhood cannot be empty")
	}
	if a.city == "" {
		return fmt.Errorf("city cannot be empty")
	}
	if a.state == "" {
		return fmt.Errorf("state cannot be empty")
	}
	if !IsValidStateCode(a.state) {
		return fmt.Errorf("invalid state code: %s", a.state)
	}
	if len(a.zipCode) != 8 {
		return fmt.Errorf("zip code must have 8 digits")
	}
	return nil
}

// Street returns the street name
func (a DeliveryAddress) Street() string { return a.street }

// Number returns the street number
func (a DeliveryAddress) Number() string { return a.number }

// Complement returns the optional complement
func (a DeliveryAddress) Complement() string { return a.complement }

// Neighborhood returns the neighborhood (bairro)
func (a DeliveryAddress) Neighborhood() string { return a.neighborhood }

// City returns the city
func (a DeliveryAddress) City() string { return a.city }

// State returns the two-letter UF code
func (a DeliveryAddress) State() string { return a.state }

// ZipCode returns the 8-digit CEP without mask
func (a DeliveryAddress) ZipCode() string { return a.zipCode }

// Reference returns the optional reference point
func (a DeliveryAddress) Reference() string { return a.reference }

// IsEmpty returns true if the address has no data
func (a DeliveryAddress) IsEmpty() bool {
	return a == DeliveryAddress{}
}

// FormattedZipCode returns the CEP masked as 00000-000
func (a DeliveryAddress) FormattedZipCode() string {
	return FormatZipCode(a.zipCode)
}

// FullAddress composes a single-line address. Optional parts that are empty
// are left out along with their separators.
func (a DeliveryAddress) FullAddress() string {
	if a.IsEmpty() {
		return ""
	}

	var b strings.Builder
	b.WriteString(a.street)
	if a.number != "" {
		b.WriteString(", ")
		b.WriteString(a.number)
	}
	if a.complement != "" {
		b.WriteString(" - ")
		b.WriteString(a.complement)
	}

	parts := []string{b.String()}
	if a.neighborhood != "" {
		parts = append(parts, a.neighborhood)
	}

	cityState := a.city
	if a.state != "" {
		if cityState != "" {
			cityState += " - "
		}
		cityState += a.state
	}
	if cityState != "" {
		parts = append(parts, cityState)
	}
	if a.zipCode != "" {
		parts = append(parts, "CEP: "+a.FormattedZipCode())
	}
	if a.reference != "" {
		parts = append(parts, "Ref: "+a.reference)
	}
	return strings.Join(parts, ", ")
}

// String implements fmt.Stringer
func (a DeliveryAddress) String() string {
	return a.FullAddress()
}

// Equals returns true if both addresses hold the same data
func (a DeliveryAddress) Equals(other DeliveryAddress) bool {
	return a == other
}

// FormatZipCode masks an 8-digit CEP as 00000-000. Inputs with any other
// number of digits are returned unchanged.
func FormatZipCode(zip string) string {
	digits := OnlyDigits(zip)
	if len(digits) != 8 {
		return zip
	}
	return digits[:5] + "-" + digits[5:]
}

// AddressDTO is the wire and storage form of DeliveryAddress
type AddressDTO struct {
	Street       string `json:"street"`
	Number       string `json:"number"`
	Complement   string `json:"complement,omitempty"`
	Neighborhood string `json:"neighborhood"`
	City         string `json:"city"`
	State        string `json:"state"`
	ZipCode      string `json:"zipCode"`
	Reference    string `json:"reference,omitempty"`
}

// ToDTO converts DeliveryAddress to AddressDTO
func (a DeliveryAddress) ToDTO() AddressDTO {
	return AddressDTO{
		Street:       a.street,
		Number:       a.number,
		Complement:   a.complement,
		Neighborhood: a.neighborhood,
		City:         a.city,
		State:        a.state,
		ZipCode:      a.zipCode,
		Reference:    a.reference,
	}
}

// ToAddress converts AddressDTO back to DeliveryAddress, applying validation
func (dto AddressDTO) ToAddress() (DeliveryAddress, error) {
	return NewDeliveryAddress(dto.Street, dto.Number, dto.Neighborhood, dto.City, dto.State, dto.ZipCode,
		WithComplement(dto.Complement), WithReference(dto.Reference))
}

// MarshalJSON implements json.Marshaler
func (a DeliveryAddress) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.ToDTO())
}

// UnmarshalJSON implements json.Unmarshaler. Decoding goes through
// NewDeliveryAddress so persisted or bound addresses are validated.
func (a *DeliveryAddress) UnmarshalJSON(data []byte) error {
	var dto AddressDTO
	if err := json.Unmarshal(data, &dto); err != nil {
		return err
	}
	addr, err := dto.ToAddress()
	if err != nil {
		return err
	}
	*a = addr
	return nil
}
