package schema

import "github.com/hamba/avro/v2"

const ImportedProductSchemaTextV1 = `{
	"type": "record",
	"namespace": "importer",
	"name": "imported_product",
	"fields" : [
		{"name": "product_id", "type": "long"},
		{"name": "name", "type": "string"},
		{"name": "slug", "type": "string"},
		{"name": "category", "type": "string"},
		{"name": "price", "type": "long"},
		{"name": "currency", "type": "string"},
		{"name": "stock", "type": "int"},
		{"name": "action", "type": "string"}
	]
}`

// ImportedProductV1 is the wire form of one catalog upsert.
type ImportedProductV1 struct {
	ProductID int64  `avro:"product_id"`
	Name      string `avro:"name"`
	Slug      string `avro:"slug"`
	Category  string `avro:"category"`
	Price     int64  `avro:"price"`
	Currency  string `avro:"currency"`
	Stock     int    `avro:"stock"`
	Action    string `avro:"action"`
}

func ImportedProductV1Avro() avro.Schema {
	return avro.MustParse(ImportedProductSchemaTextV1)
}
