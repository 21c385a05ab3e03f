package http

import (
	"fmt"
	"io"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/xeipuuv/gojsonschema"
)

const maxBodyBytes = 16 << 10

const schemaCheckout = `{
  "type": "object",
  "properties": {
    "buyer_reference":    { "type": "string", "maxLength": 128 },
    "purchase_kind":      { "type": "string", "enum": ["DROP_IN", "CLASS_PACK"] },
    "purchase_reference": { "type": "string", "minLength": 1, "maxLength": 128 },
    "discount_code":      { "type": ["string", "null"], "maxLength": 64 },
    "use_wallet":         { "type": "boolean" }
  },
  "required": ["purchase_kind", "purchase_reference"],
  "additionalProperties": false
}`

const schemaConfirm = `{
  "type": "object",
  "properties": {
    "gateway_order_id":   { "type": "string", "minLength": 1, "maxLength": 128 },
    "gateway_payment_id": { "type": "string", "maxLength": 128 },
    "signature":          { "type": "string", "maxLength": 256 },
    "error_code":         { "type": "string", "maxLength": 128 },
    "error_description":  { "type": "string", "maxLength": 1024 }
  },
  "required": ["gateway_order_id"],
  "additionalProperties": false
}`

var (
	checkoutLoader = gojsonschema.NewStringLoader(schemaCheckout)
	confirmLoader  = gojsonschema.NewStringLoader(schemaConfirm)
)

// readBody reads the request body once, bounded by maxBodyBytes.
func readBody(ctx *gin.Context) ([]byte, error) {
	body, err := io.ReadAll(io.LimitReader(ctx.Request.Body, maxBodyBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	if len(body) > maxBodyBytes {
		return nil, fmt.Errorf("body larger than %d bytes", maxBodyBytes)
	}
	return body, nil
}

// validateJSONSchema reads the request body and checks it against schema.
func validateJSONSchema(ctx *gin.Context, schema gojsonschema.JSONLoader) ([]byte, error) {
	body, err := readBody(ctx)
	if err != nil {
		return nil, err
	}
	return body, checkSchema(body, schema)
}

func checkSchema(body []byte, schema gojsonschema.JSONLoader) error {
	result, err := gojsonschema.Validate(schema, gojsonschema.NewBytesLoader(body))
	if err != nil {
		return fmt.Errorf("schema validation error: %w", err)
	}
	if !result.Valid() {
		var sb strings.Builder
		for _, e := range result.Errors() {
			sb.WriteString(e.String())
			sb.WriteString("; ")
		}
		return fmt.Errorf("request does not conform to schema: %s", sb.String())
	}
	return nil
}
