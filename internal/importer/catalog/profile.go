package catalog

// field is a logical column of a catalog file.
type field string

const (
	fieldName        field = "name"
	fieldDescription field = "description"
	fieldUnitPrice   field = "unit_price"
	fieldEmail       field = "email"
	fieldStreet      field = "street"
	fieldCity        field = "city"
	fieldState       field = "state"
	fieldPostalCode  field = "postal_code"
	fieldCountry     field = "country"
)

// layout describes one kind of catalog file. Header cells are matched case-insensitively
// against the aliases; files without a header are read in positional order.
type layout struct {
	positional []field
	required   []field
	aliases    map[field][]string
}

var itemLayout = layout{
	positional: []field{fieldName, fieldDescription, fieldUnitPrice},
	required:   []field{fieldName, fieldUnitPrice},
	aliases: map[field][]string{
		fieldName:        {"name", "item", "nome", "artigo"},
		fieldDescription: {"description", "descrição", "descricao"},
		fieldUnitPrice:   {"unit_price", "unit price", "price", "preço", "preco", "preço unitário"},
	},
}

var clientLayout = layout{
	positional: []field{fieldName, fieldEmail, fieldStreet, fieldCity, fieldState, fieldPostalCode, fieldCountry},
	required:   []field{fieldName},
	aliases: map[field][]string{
		fieldName:       {"name", "client", "cliente", "nome"},
		fieldEmail:      {"email", "e-mail"},
		fieldStreet:     {"street", "address", "morada", "rua"},
		fieldCity:       {"city", "cidade", "localidade"},
		fieldState:      {"state", "region", "distrito"},
		fieldPostalCode: {"postal_code", "postal code", "zip", "código postal", "codigo postal"},
		fieldCountry:    {"country", "país", "pais"},
	},
}
